package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/dhs"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/exitcode"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/logging"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse raw sources into processed artifacts",
}

var parseDHSCmd = &cobra.Command{
	Use:   "dhs",
	Short: "Parse the downloaded DHS PDF into the STEM list artifact",
	RunE:  runParseDHS,
}

func init() {
	parseCmd.AddCommand(parseDHSCmd)
	rootCmd.AddCommand(parseCmd)
}

func runParseDHS(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.Setup(cfg.LogFormat)

	unlock, err := acquireDataLock(cfg, 10*time.Second)
	if err != nil {
		return err
	}
	defer unlock()

	pdfPath := cfg.DHSPDFPath()
	text, err := dhs.ExtractText(pdfPath)
	if err != nil {
		return withCode(exitcode.ParseError, fmt.Errorf("cannot extract text from %s (run 'cipstem fetch dhs' first): %w", pdfPath, err))
	}

	rows := dhs.ParseText(text)
	list := &dhs.List{
		Source: dhs.Source{
			Publisher: "DHS (ICE SEVP)",
			Type:      "STEM Designated Degree Program List",
			PDFFile:   filepath.Base(pdfPath),
		},
		Records:     rows,
		RecordCount: len(rows),
	}
	if err := dhs.Validate(list); err != nil {
		return withCode(exitcode.ValidationError, err)
	}

	if err := writeJSON(cfg.DHSListPath(), list); err != nil {
		return withCode(exitcode.ParseError, err)
	}

	log.Info().Int("records", len(rows)).Str("artifact", cfg.DHSListPath()).Msg("STEM list parsed")
	printOK("", fmt.Sprintf("parsed %d STEM codes to %s", len(rows), cfg.DHSListPath()))
	return nil
}
