package worker

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Progress tracks and displays tile rendering progress on stderr.
type Progress struct {
	startTime time.Time
	output    io.Writer
	total     int
	completed int
	failed    int
	mu        sync.Mutex
	enabled   bool
}

// NewProgress creates a progress tracker for the given task count.
func NewProgress(total int, enabled bool) *Progress {
	return &Progress{
		total:     total,
		startTime: time.Now(),
		output:    os.Stderr,
		enabled:   enabled,
	}
}

// Callback returns a ProgressFunc suitable for Pool's Config.
func (p *Progress) Callback() ProgressFunc {
	return p.update
}

func (p *Progress) update(completed, total, failed int) {
	p.mu.Lock()
	p.completed = completed
	p.total = total
	p.failed = failed
	enabled := p.enabled
	line := p.lineLocked()
	p.mu.Unlock()

	if enabled {
		fmt.Fprintf(p.output, "\r%s", line)
		if completed == total {
			fmt.Fprintln(p.output)
		}
	}
}

// Summary returns a final one-line report suitable for logging.
func (p *Progress) Summary() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lineLocked()
}

func (p *Progress) lineLocked() string {
	elapsed := time.Since(p.startTime).Round(time.Second)
	pct := 0.0
	if p.total > 0 {
		pct = float64(p.completed) / float64(p.total) * 100
	}
	s := fmt.Sprintf("rendered %d/%d tiles (%.1f%%) in %s", p.completed, p.total, pct, elapsed)
	if p.failed > 0 {
		s += fmt.Sprintf(", %d failed", p.failed)
	}
	return s
}
