package cmd

import (
	"fmt"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/dhs"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/exitcode"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/index"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/nces"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/overlay"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:       "validate {nces|dhs|overlay|index}",
	Short:     "Check a processed artifact against its quality gates",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"nces", "dhs", "overlay", "index"},
	RunE:      runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	switch args[0] {
	case "nces":
		var ds nces.Dataset
		if err := readJSON(cfg.NCESDatasetPath(), &ds); err != nil {
			return withCode(exitcode.ValidationError, err)
		}
		s, err := nces.Validate(&ds)
		if err != nil {
			return withCode(exitcode.ValidationError, err)
		}
		printOK("nces", fmt.Sprintf("%d records, %d parse warnings, %d missing core fields", s.Total, s.ParseWarnings, s.MissingCore))

	case "dhs":
		var list dhs.List
		if err := readJSON(cfg.DHSListPath(), &list); err != nil {
			return withCode(exitcode.ValidationError, err)
		}
		if err := dhs.Validate(&list); err != nil {
			return withCode(exitcode.ValidationError, err)
		}
		printOK("dhs", fmt.Sprintf("%d STEM codes", list.RecordCount))

	case "overlay":
		var doc overlay.Document
		if err := readJSON(cfg.OverlayPath(), &doc); err != nil {
			return withCode(exitcode.ValidationError, err)
		}
		s, err := overlay.Validate(&doc)
		if err != nil {
			return withCode(exitcode.ValidationError, err)
		}
		printOK("overlay", fmt.Sprintf("%d records, %d STEM, %d missing in NCES snapshot", s.Total, s.STEMEligible, s.MissingInNCES))

	case "index":
		if err := index.VerifyManifest(cfg.IndexPath(), index.ManifestPath(cfg.IndexPath())); err != nil {
			return withCode(exitcode.ValidationError, err)
		}
		idx, err := index.Load(cfg.IndexPath())
		if err != nil {
			return withCode(exitcode.ValidationError, err)
		}
		printOK("index", fmt.Sprintf("%d records, manifest checksum verified", len(idx.Records)))

	default:
		return fmt.Errorf("unknown artifact %q (want nces, dhs, overlay, or index)", args[0])
	}
	return nil
}
