package cmd

import (
	"fmt"
	"time"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/dhs"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/exitcode"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/fetch"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/index"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/logging"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/nces"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/overlay"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build processed artifacts from fetched sources",
}

var buildNCESCmd = &cobra.Command{
	Use:   "nces",
	Short: "Scrape every cipdetail page into the NCES dataset artifact",
	RunE:  runBuildNCES,
}

var buildOverlayCmd = &cobra.Command{
	Use:   "overlay",
	Short: "Merge the NCES dataset with the DHS STEM list",
	RunE:  runBuildOverlay,
}

var buildIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the frontend search index from the overlay",
	RunE:  runBuildIndex,
}

var buildAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Run nces, overlay, and index builds in order",
	RunE:  runBuildAll,
}

func init() {
	buildCmd.AddCommand(buildNCESCmd)
	buildCmd.AddCommand(buildOverlayCmd)
	buildCmd.AddCommand(buildIndexCmd)
	buildCmd.AddCommand(buildAllCmd)
	rootCmd.AddCommand(buildCmd)
}

func runBuildNCES(cmd *cobra.Command, _ []string) error {
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

	var artifact detailURLsArtifact
	if err := readJSON(cfg.DetailURLsPath(), &artifact); err != nil {
		return withCode(exitcode.BuildError, err)
	}

	f := newFetcher(cfg)
	log.Info().
		Str("run_id", f.RunID()).
		Int("urls", len(artifact.URLs)).
		Int("concurrency", cfg.Concurrency).
		Msg("building nces dataset")

	ds, err := nces.BuildDataset(cmd.Context(), f, log, artifact.URLs, nces.BuildOptions{
		CacheDir:    cfg.DetailCacheDir(),
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		return withCode(exitcode.BuildError, err)
	}

	summary, err := nces.Validate(ds)
	if err != nil {
		return withCode(exitcode.ValidationError, err)
	}
	if summary.ParseWarnings > 0 {
		printWarn("", fmt.Sprintf("%d of %d records carry parse warnings", summary.ParseWarnings, summary.Total))
	}

	if err := writeJSON(cfg.NCESDatasetPath(), ds); err != nil {
		return withCode(exitcode.BuildError, err)
	}
	printOK("", fmt.Sprintf("wrote %d records to %s", ds.RecordCount, cfg.NCESDatasetPath()))
	return nil
}

func runBuildOverlay(_ *cobra.Command, _ []string) error {
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

	var ds nces.Dataset
	if err := readJSON(cfg.NCESDatasetPath(), &ds); err != nil {
		return withCode(exitcode.BuildError, err)
	}
	var list dhs.List
	if err := readJSON(cfg.DHSListPath(), &list); err != nil {
		return withCode(exitcode.BuildError, err)
	}

	// DHS provenance rides along from the fetch step; an absent manifest
	// only degrades the overlay's source block.
	prov, err := fetch.ReadManifest(fetch.ManifestPath(cfg.DHSPDFPath()))
	if err != nil {
		log.Warn().Err(err).Msg("no DHS fetch manifest; overlay source block will be empty")
		prov = &fetch.Provenance{}
	}

	doc := overlay.Build(&ds, &list, prov)

	summary, err := overlay.Validate(doc)
	if err != nil {
		return withCode(exitcode.ValidationError, err)
	}
	if summary.MissingInNCES > 0 {
		printWarn("", fmt.Sprintf("%d DHS STEM codes missing from the NCES snapshot", summary.MissingInNCES))
	}

	if err := writeJSON(cfg.OverlayPath(), doc); err != nil {
		return withCode(exitcode.BuildError, err)
	}

	log.Info().
		Int("records", len(doc.Records)).
		Int("stem", summary.STEMEligible).
		Msg("overlay built")
	printOK("", fmt.Sprintf("wrote %d records (%d STEM) to %s", len(doc.Records), summary.STEMEligible, cfg.OverlayPath()))
	return nil
}

func runBuildIndex(_ *cobra.Command, _ []string) error {
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

	var doc overlay.Document
	if err := readJSON(cfg.OverlayPath(), &doc); err != nil {
		return withCode(exitcode.BuildError, err)
	}

	idx, err := index.Build(&doc)
	if err != nil {
		return withCode(exitcode.BuildError, err)
	}
	manifest, err := index.Write(idx, cfg.IndexPath())
	if err != nil {
		return withCode(exitcode.BuildError, err)
	}

	log.Info().
		Int("records", manifest.RecordCount).
		Str("sha256", manifest.SHA256).
		Msg("index built")
	printOK("", fmt.Sprintf("wrote %d records to %s", manifest.RecordCount, cfg.IndexPath()))
	printOK("", fmt.Sprintf("manifest %s", index.ManifestPath(cfg.IndexPath())))
	return nil
}

// pipelineError tags a failure with the phase it occurred in, so that a
// multi-step run reports where it stopped.
type pipelineError struct {
	Phase string
	Err   error
}

func (e *pipelineError) Error() string { return fmt.Sprintf("phase %s: %v", e.Phase, e.Err) }
func (e *pipelineError) Unwrap() error { return e.Err }

func runBuildAll(cmd *cobra.Command, args []string) error {
	phases := []struct {
		name string
		run  func(*cobra.Command, []string) error
	}{
		{"nces", runBuildNCES},
		{"overlay", runBuildOverlay},
		{"index", runBuildIndex},
	}
	for _, p := range phases {
		if err := p.run(cmd, args); err != nil {
			return &pipelineError{Phase: p.name, Err: err}
		}
	}
	return nil
}
