package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/config"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/index"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/search"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run pre-flight environment and artifact checks",
	Long: `Check that cipstem's configuration, data tree, and built index are in
a usable state. Run this command when something seems wrong.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("cipstem doctor")
	fmt.Println()

	// ── Check 1: configuration loads and validates ────────────────────────
	fmt.Println("[ configuration ]")
	cfg, loadErr := loadConfig()
	if loadErr != nil {
		failD("%v", loadErr)
		cfg = config.Default()
	} else {
		printOK("", fmt.Sprintf("data_dir=%s site_dir=%s", cfg.DataDir, cfg.SiteDir))
	}
	fmt.Println()

	// ── Check 2: data tree writable ───────────────────────────────────────
	fmt.Println("[ data tree ]")
	probe := filepath.Join(cfg.DataDir, ".doctor-probe")
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		failD("cannot create data dir %s: %v", cfg.DataDir, err)
	} else if err := os.WriteFile(probe, nil, 0o644); err != nil {
		failD("data dir %s is not writable: %v", cfg.DataDir, err)
	} else {
		_ = os.Remove(probe)
		printOK("", fmt.Sprintf("%s is writable", cfg.DataDir))
	}
	fmt.Println()

	// ── Check 3: index integrity ──────────────────────────────────────────
	fmt.Println("[ index ]")
	idxPath := cfg.IndexPath()
	if _, err := os.Stat(idxPath); os.IsNotExist(err) {
		printWarn("", "no built index — run the pipeline (fetch, parse, build) first")
	} else if err := index.VerifyManifest(idxPath, index.ManifestPath(idxPath)); err != nil {
		failD("index integrity: %v", err)
	} else {
		printOK("", "manifest checksum matches")

		// Smoke-test the loaded index through the engine.
		idx, err := index.Load(idxPath)
		if err != nil {
			failD("index loads: %v", err)
		} else {
			eng := search.NewEngine(idx.Records)
			got := eng.Search(search.Options{Query: "", Limit: 1})
			if len(idx.Records) > 0 && len(got) == 0 {
				failD("engine returned nothing for a browse over %d records", len(idx.Records))
			} else {
				printOK("", fmt.Sprintf("engine answers queries over %d records", len(idx.Records)))
			}
		}
	}
	fmt.Println()

	// ── Check 4: site directory ───────────────────────────────────────────
	fmt.Println("[ site ]")
	if _, err := os.Stat(cfg.SiteDir); os.IsNotExist(err) {
		printWarn("", fmt.Sprintf("site dir %s does not exist yet (publish will create it)", cfg.SiteDir))
	} else {
		printOK("", fmt.Sprintf("site dir exists: %s", cfg.SiteDir))
	}
	fmt.Println()

	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	printOK("", "all checks passed")
	return nil
}
