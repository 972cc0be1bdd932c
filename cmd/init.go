package cmd

import (
	"fmt"
	"os"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/config"
	"github.com/spf13/cobra"
)

var flagInitForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default cipstem.yaml and create the data tree",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&flagInitForce, "force", false, "Overwrite an existing cipstem.yaml")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	path := flagConfigPath
	if path == "" {
		path = config.DefaultFile
	}

	if _, err := os.Stat(path); err == nil && !flagInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.Default()
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	printOK("", fmt.Sprintf("wrote %s", path))

	for _, dir := range []string{cfg.RawNCESDir(), cfg.RawDHSDir(), cfg.ProcessedDir(), cfg.DetailCacheDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}
	printOK("", fmt.Sprintf("created data tree under %s", cfg.DataDir))
	return nil
}
