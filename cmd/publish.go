package cmd

import (
	"fmt"
	"time"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/exitcode"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/index"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/logging"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/site"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Copy the built index into the static-site data directory",
	RunE:  runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(_ *cobra.Command, _ []string) error {
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

	// Never publish an index whose checksum no longer matches its manifest.
	if err := index.VerifyManifest(cfg.IndexPath(), index.ManifestPath(cfg.IndexPath())); err != nil {
		return withCode(exitcode.ValidationError, err)
	}

	copied, err := site.Publish(cfg.ProcessedDir(), cfg.SiteDir)
	if err != nil {
		return withCode(exitcode.PublishError, err)
	}

	log.Info().Int("files", len(copied)).Str("dest", cfg.SiteDir).Msg("published")
	for _, f := range copied {
		printOK("", fmt.Sprintf("published %s", f))
	}
	return nil
}
