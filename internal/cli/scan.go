package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SaschaOnTour/rlm/internal/cache"
	"github.com/SaschaOnTour/rlm/internal/config"
	"github.com/SaschaOnTour/rlm/internal/extract"
	"github.com/SaschaOnTour/rlm/internal/scan"
	"github.com/SaschaOnTour/rlm/internal/store"
)

const roundTo = 10 * time.Millisecond

// newRegistry applies the configured size limit to all extractors.
func newRegistry(cfg *config.Config) *extract.Registry {
	return extract.NewRegistry(extract.WithMaxInputSize(cfg.Limits.MaxFileSize))
}

var scanQuiet bool

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a directory tree into the local store",
	Long: `Walk a directory, extract every file matched by the configured
include patterns, and persist the results in the SQLite store under
.rlm/. Files that fail to parse are counted and skipped.

The path defaults to the project root.

Examples:
  rlm scan
  rlm scan ./services --quiet`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "suppress progress output")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	target := rootDir
	if len(args) == 1 {
		target = args[0]
	}

	st, err := store.Open(storePath(cfg))
	if err != nil {
		return err
	}
	defer st.Close()

	opts := []scan.Option{scan.WithReporter(NewCLIProgressReporter(scanQuiet))}

	// Capacity 0 disables the cache.
	if cfg.Cache.Capacity > 0 {
		resultCache, err := cache.New(cfg.Cache.Capacity)
		if err != nil {
			return err
		}
		defer resultCache.Close()
		opts = append(opts, scan.WithCache(resultCache))
	}

	scanner := scan.NewScanner(newRegistry(cfg), st, opts...)

	stats, err := scanner.Run(cmd.Context(), target, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if scanQuiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%d files, %d errors (%s)\n",
			stats.Files, stats.Errors, stats.Duration.Round(roundTo))
	}
	return nil
}
