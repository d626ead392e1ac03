package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/SaschaOnTour/rlm/internal/scan"
)

// CLIProgressReporter implements progress reporting with a progress bar.
type CLIProgressReporter struct {
	quiet   bool
	fileBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnDiscoveryStart() {
	if c.quiet {
		return
	}
	log.Println("Discovering files...")
}

func (c *CLIProgressReporter) OnDiscoveryComplete(totalFiles int) {
	if c.quiet {
		return
	}
	log.Printf("Extracting %d files\n", totalFiles)

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Extracting files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnFileProcessed(fileName string) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *scan.Stats) {
	if c.quiet {
		return
	}
	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}

	fmt.Println()
	fmt.Printf("✓ Scan complete: %d files in %.1fs\n", stats.Files, stats.Duration.Seconds())
	if stats.Errors > 0 {
		fmt.Printf("  Skipped (parse errors): %d\n", stats.Errors)
	}
	if stats.CacheHits > 0 {
		fmt.Printf("  Cache hits: %d\n", stats.CacheHits)
	}
}
