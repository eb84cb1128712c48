package cli

import (
	"io"
	"os"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/glorpus-work/mdshare/pkg/mdshare"
	"github.com/glorpus-work/mdshare/pkg/orchestrator"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/cwriter"
	"github.com/vbauerster/mpb/v8/decor"
)

// newProgressReporter draws bars when out is a terminal and logs each
// finished download otherwise.
func newProgressReporter(out io.Writer) orchestrator.ProgressReporter {
	if f, ok := out.(*os.File); ok && cwriter.IsTerminal(int(f.Fd())) {
		return newBarProgress(out)
	}
	return mdshare.NewLogProgress()
}

// barProgress renders one mpb bar per download stage. The aggregate stage
// comes last, so it is drawn below the files.
type barProgress struct {
	mu        sync.Mutex
	out       io.Writer
	opts      []mpb.ContainerOption
	container *mpb.Progress
	bars      []*mpb.Bar
	dynamic   []bool
}

func newBarProgress(out io.Writer, opts ...mpb.ContainerOption) *barProgress {
	return &barProgress{out: out, opts: opts}
}

// Start implements orchestrator.ProgressReporter.
func (p *barProgress) Start(stages []orchestrator.Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.container, p.bars, p.dynamic = nil, nil, nil
	if len(stages) == 0 {
		return
	}

	p.container = mpb.New(append([]mpb.ContainerOption{mpb.WithOutput(p.out)}, p.opts...)...)
	p.bars = make([]*mpb.Bar, len(stages))
	p.dynamic = make([]bool, len(stages))
	for i, s := range stages {
		p.dynamic[i] = s.Total <= 0
		p.bars[i] = p.container.AddBar(s.Total,
			mpb.BarWidth(ProgressBarWidth),
			mpb.PrependDecorators(decor.Name(shortName(s.Name), decor.WC{W: ProgressNameWidth, C: decor.DindentRight})),
			mpb.AppendDecorators(decor.Any(byteCounters, decor.WCSyncSpace)),
		)
	}
}

// Advance implements orchestrator.ProgressReporter.
func (p *barProgress) Advance(stage int, n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if stage < 0 || stage >= len(p.bars) {
		return
	}
	p.bars[stage].IncrBy(n)
}

// Finish implements orchestrator.ProgressReporter. Bars of stages that did
// not run to completion are aborted so the container can shut down.
func (p *barProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.container == nil {
		return
	}
	for i, bar := range p.bars {
		if p.dynamic[i] {
			bar.SetTotal(-1, true)
			continue
		}
		bar.Abort(false)
	}
	p.container.Wait()
	p.container = nil
}

func byteCounters(s decor.Statistics) string {
	return humanize.Bytes(uint64(max(s.Current, 0))) + " / " + humanize.Bytes(uint64(max(s.Total, 0)))
}

func shortName(name string) string {
	if len(name) > ProgressNameWidth {
		return "..." + name[len(name)-ProgressNameWidth+3:]
	}
	return name
}
