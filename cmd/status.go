package cmd

import (
	"fmt"
	"os"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/index"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which pipeline artifacts exist in the data tree",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printSection("Raw sources")
	reportFile("browse page", cfg.BrowseHTMLPath())
	reportFile("detail URLs", cfg.DetailURLsPath())
	reportFile("DHS PDF", cfg.DHSPDFPath())

	printSection("Processed artifacts")
	reportFile("nces dataset", cfg.NCESDatasetPath())
	reportFile("dhs stem list", cfg.DHSListPath())
	reportFile("overlay", cfg.OverlayPath())
	reportFile("index", cfg.IndexPath())

	printSection("Index manifest")
	manifestPath := index.ManifestPath(cfg.IndexPath())
	m, err := index.ReadManifest(manifestPath)
	if err != nil {
		printMiss("", "no index manifest (run 'cipstem build index')")
		return nil
	}
	printInfo("", fmt.Sprintf("%d records, generated %s", m.RecordCount, m.GeneratedUTC))
	if err := index.VerifyManifest(cfg.IndexPath(), manifestPath); err != nil {
		printWarn("", fmt.Sprintf("checksum mismatch: %v", err))
	} else {
		printOK("", "checksum verified")
	}
	return nil
}

func reportFile(name, path string) {
	info, err := os.Stat(path)
	if err != nil {
		printMiss(name, path)
		return
	}
	printOK(name, fmt.Sprintf("%s (%d bytes)", path, info.Size()))
}
