package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/index"
	"github.com/HeyAvijitRoy/cip-stem-intelligence/internal/search"
	"github.com/spf13/cobra"
)

var (
	flagSearchIndex string
	flagSearchSTEM  bool
	flagSearchLimit int
	flagSearchJSON  bool
	flagSearchFull  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Look up CIP codes by code, fragment, or keyword",
	Long: `Search the built CIP/STEM index.

The query may be a full CIP code (14.0901), a family (14), a subfamily
(14.09), a partial code with implied trailing zeros (14.9), or free-text
keywords matched against titles and definitions. An empty query browses
the whole index.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&flagSearchIndex, "index", "", "Index path or http(s) URL (default: built index in the data tree)")
	searchCmd.Flags().BoolVar(&flagSearchSTEM, "stem", false, "Only show DHS STEM-eligible programs")
	searchCmd.Flags().IntVar(&flagSearchLimit, "limit", 0, "Maximum results (0 = config default, -1 = unlimited)")
	searchCmd.Flags().BoolVar(&flagSearchJSON, "json", false, "Emit results as JSON")
	searchCmd.Flags().BoolVar(&flagSearchFull, "full", false, "Show full definitions instead of one line per result")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	source := flagSearchIndex
	if source == "" {
		source = cfg.IndexPath()
	}
	idx, err := loadIndexFrom(cmd.Context(), source)
	if err != nil {
		return err
	}

	limit := flagSearchLimit
	switch {
	case limit == 0:
		limit = cfg.SearchLimit
	case limit < 0:
		limit = 0 // unlimited
	}

	query := strings.Join(args, " ")
	eng := search.NewEngine(idx.Records)
	results := eng.Search(search.Options{
		Query:    query,
		STEMOnly: flagSearchSTEM,
		Limit:    limit,
	})

	if flagSearchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	printSearchResults(query, results)
	return nil
}

// loadIndexFrom reads the index from a local path or an http(s) URL.
func loadIndexFrom(ctx context.Context, source string) (*index.Index, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return index.Fetch(ctx, http.DefaultClient, source)
	}
	idx, err := index.Load(source)
	if err != nil {
		return nil, fmt.Errorf("%w (run 'cipstem build index' first or pass --index)", err)
	}
	return idx, nil
}

func printSearchResults(query string, results []index.Record) {
	if query == "" {
		fmt.Printf("\ncipstem browse\n\n")
	} else {
		fmt.Printf("\ncipstem search %q\n\n", query)
	}
	fmt.Printf("Results (%d found):\n", len(results))
	if len(results) == 0 {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, r := range results {
		stem := ""
		if r.STEMEligible {
			stem = "STEM"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", r.Code, stem, r.Title)
		if flagSearchFull && r.Definition != "" {
			fmt.Fprintf(w, "  \t\t%s\n", r.Definition)
		}
	}
	_ = w.Flush()
}
