//go:generate mockgen -destination=./mocks/orchestrator.go . StackResolver,Downloader,Unpacker

package orchestrator

import (
	"context"

	"github.com/glorpus-work/mdshare/pkg/download"
	"github.com/glorpus-work/mdshare/pkg/repository"
)

// StackResolver is the subset of the repository used by the orchestrator.
type StackResolver interface {
	Stack(pattern string) ([]repository.StackEntry, error)
}

// Downloader makes a catalogue entry available in a working directory.
type Downloader interface {
	DownloadIfNeeded(ctx context.Context, name, workingDir string, maxAttempts int, force bool, progress download.Progress) (string, error)
}

// Unpacker extracts the top-level members of a container.
type Unpacker interface {
	ExtractTopLevel(ctx context.Context, archivePath, destDir string) ([]string, error)
}

// Orchestrator ties the repository, the download manager and the archive
// manager together for fetches.
type Orchestrator struct {
	Resolver StackResolver
	DL       Downloader
	Unpacker Unpacker
	Hooks    Hooks // Hooks for progress and event notifications
}

// Event phases.
const (
	PhaseResolving   = "resolving"
	PhaseDownloading = "downloading"
	PhaseUnpacking   = "unpacking"
	PhaseDone        = "done"
	PhaseError       = "error"
)

// Event represents a simple progress notification.
type Event struct {
	Phase string // resolving|downloading|unpacking|done|error
	ID    string // catalogue name
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// FetchOptions control a fetch.
type FetchOptions struct {
	// WorkingDir receives the fetched files. Empty means a fresh temporary
	// directory.
	WorkingDir  string
	MaxAttempts int
	Force       bool
	// Progress is optional.
	Progress ProgressReporter
}

// TotalLabel is the display name of the aggregate stage registered when more
// than one entry has to be downloaded.
const TotalLabel = "total"

// Stage is one progress bar: a file to download, or the aggregate.
type Stage struct {
	Name      string
	Total     int64
	Aggregate bool
}

// ProgressReporter displays byte progress for a set of stages. Stages are
// addressed by their index in the slice passed to Start, so a file may carry
// any name, including TotalLabel.
type ProgressReporter interface {
	Start(stages []Stage)
	Advance(stage int, n int)
	Finish()
}

type noProgressReporter struct{}

func (noProgressReporter) Start([]Stage)    {}
func (noProgressReporter) Advance(int, int) {}
func (noProgressReporter) Finish()          {}
