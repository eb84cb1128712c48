package mdshare

import (
	"log/slog"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/glorpus-work/mdshare/pkg/orchestrator"
)

// LogProgress reports each finished download through slog. It is the
// fallback display for callers without a terminal.
type LogProgress struct {
	mu     sync.Mutex
	stages []orchestrator.Stage
	done   []int64
}

// NewLogProgress creates a LogProgress.
func NewLogProgress() *LogProgress {
	return &LogProgress{}
}

// Start implements orchestrator.ProgressReporter.
func (p *LogProgress) Start(stages []orchestrator.Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stages = stages
	p.done = make([]int64, len(stages))
}

// Advance implements orchestrator.ProgressReporter.
func (p *LogProgress) Advance(stage int, n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if stage < 0 || stage >= len(p.stages) || p.stages[stage].Aggregate {
		return
	}
	s := p.stages[stage]
	before := p.done[stage]
	p.done[stage] = before + int64(n)
	if before < s.Total && p.done[stage] >= s.Total {
		slog.Info("downloaded", slog.String("file", s.Name), slog.String("size", humanize.Bytes(uint64(s.Total))))
	}
}

// Finish implements orchestrator.ProgressReporter.
func (p *LogProgress) Finish() {}
