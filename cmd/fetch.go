package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/exitcode"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/fetch"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/logging"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/nces"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download raw upstream sources into the data tree",
}

var fetchNCESCmd = &cobra.Command{
	Use:   "nces",
	Short: "Fetch the NCES CIP 2020 browse page and extract detail URLs",
	RunE:  runFetchNCES,
}

var fetchDHSCmd = &cobra.Command{
	Use:   "dhs",
	Short: "Fetch the DHS STEM Designated Degree Program List PDF",
	RunE:  runFetchDHS,
}

func init() {
	fetchCmd.AddCommand(fetchNCESCmd)
	fetchCmd.AddCommand(fetchDHSCmd)
	rootCmd.AddCommand(fetchCmd)
}

func runFetchNCES(cmd *cobra.Command, _ []string) error {
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

	f := newFetcher(cfg)
	log.Info().Str("run_id", f.RunID()).Str("url", cfg.NCESBrowseURL).Msg("fetching browse page")

	ctx, cancel := context.WithTimeout(cmd.Context(), fetch.DefaultTimeout)
	defer cancel()

	body, prov, err := f.Get(ctx, cfg.NCESBrowseURL)
	if err != nil {
		return withCode(exitcode.FetchError, err)
	}
	if err := fetch.Save(cfg.BrowseHTMLPath(), body, prov); err != nil {
		return withCode(exitcode.FetchError, err)
	}

	urls, err := nces.ExtractDetailURLs(string(body))
	if err != nil {
		return withCode(exitcode.ParseError, err)
	}
	artifact := detailURLsArtifact{
		SourceURL: cfg.NCESBrowseURL,
		Count:     len(urls),
		URLs:      urls,
	}
	if err := writeJSON(cfg.DetailURLsPath(), artifact); err != nil {
		return withCode(exitcode.FetchError, err)
	}

	log.Info().Int("detail_urls", len(urls)).Str("sha256", prov.SHA256).Msg("browse page saved")
	printOK("", fmt.Sprintf("saved %s (%d bytes)", cfg.BrowseHTMLPath(), prov.Bytes))
	printOK("", fmt.Sprintf("extracted %d detail URLs to %s", len(urls), cfg.DetailURLsPath()))
	return nil
}

func runFetchDHS(cmd *cobra.Command, _ []string) error {
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

	f := newFetcher(cfg)
	log.Info().Str("run_id", f.RunID()).Str("url", cfg.DHSPDFURL).Msg("fetching STEM list PDF")

	ctx, cancel := context.WithTimeout(cmd.Context(), fetch.DefaultTimeout)
	defer cancel()

	body, prov, err := f.Get(ctx, cfg.DHSPDFURL)
	if err != nil {
		return withCode(exitcode.FetchError, err)
	}
	if err := fetch.Save(cfg.DHSPDFPath(), body, prov); err != nil {
		return withCode(exitcode.FetchError, err)
	}

	log.Info().Int("bytes", prov.Bytes).Str("sha256", prov.SHA256).Msg("STEM list PDF saved")
	printOK("", fmt.Sprintf("saved %s (%d bytes)", cfg.DHSPDFPath(), prov.Bytes))
	return nil
}
