package scan

// ProgressReporter provides callbacks for reporting scan progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnDiscoveryStart is called when file discovery begins.
	OnDiscoveryStart()

	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(totalFiles int)

	// OnFileProcessed is called after each file, hit or error.
	OnFileProcessed(fileName string)

	// OnComplete is called when the scan finishes.
	OnComplete(stats *Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()               {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(int)         {}
func (n *NoOpProgressReporter) OnFileProcessed(fileName string) {}
func (n *NoOpProgressReporter) OnComplete(stats *Stats)         {}
