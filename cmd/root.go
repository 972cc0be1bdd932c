package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/config"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/exitcode"
	"github.com/spf13/cobra"
)

var (
	flagConfigPath string
	flagDataDir    string
	flagLogFormat  string
)

var rootCmd = &cobra.Command{
	Use:          "cipstem",
	Short:        "CIP/STEM data pipeline and lookup tool",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `cipstem builds and queries the CIP 2020 STEM-eligibility dataset:
it scrapes the NCES CIP site, parses the DHS STEM Designated Degree
Program List, merges the two into a search index, and serves lookups
against that index.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to cipstem.yaml (default: ./cipstem.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Override the data directory")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text or json")
}

// loadConfig merges cipstem.yaml with global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return nil, err
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// codedError carries a process exit code alongside the cause.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, err: err}
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var ce *codedError
		if errors.As(err, &ce) {
			os.Exit(ce.code)
		}
		os.Exit(exitcode.UsageError)
	}
}
