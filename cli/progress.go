package cli

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/fatih/color"
)

// ProgressPrinter renders discovery progress on a single terminal line
type ProgressPrinter struct {
	out     io.Writer
	mu      sync.Mutex
	last    int
	started bool
	style   *color.Color
}

// NewProgressPrinter creates a printer writing to out
func NewProgressPrinter(out io.Writer) *ProgressPrinter {
	return &ProgressPrinter{
		out:   out,
		last:  -1,
		style: color.New(color.FgCyan),
	}
}

// Report prints the rounded percentage and the host being tried. It matches
// discovery.ProgressFunc.
func (p *ProgressPrinter) Report(percent float64, host string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rounded := int(math.Round(percent))
	p.last = rounded
	p.started = true
	p.style.Fprintf(p.out, "\rScanning... %3d%% (trying %s)", rounded, host)
}

// Done terminates the progress line
func (p *ProgressPrinter) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		fmt.Fprintln(p.out)
		p.started = false
	}
}

// Last returns the last reported rounded percentage, or -1
func (p *ProgressPrinter) Last() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}
