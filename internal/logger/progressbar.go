package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ProgressBar is an ASCII progress bar with a spinner and elapsed time.
// Counters are atomic so the search can update them from any worker while the
// redraw loop reads them. It satisfies search.Progress.
type ProgressBar struct {
	total   atomic.Int64
	current atomic.Int64

	writer      io.Writer
	width       int
	enableColor bool
	interactive bool
	started     time.Time

	mu           sync.Mutex // serializes frame writes
	frame        int
	stop         chan struct{}
	done         chan struct{}
	startOnce    sync.Once
	finalizeOnce sync.Once
}

// NewProgressBar creates a progress bar drawing to w.
// Frames are only drawn when w is a terminal.
func NewProgressBar(w io.Writer, width int, enableColor bool) *ProgressBar {
	if width < 1 {
		width = 40
	}
	return &ProgressBar{
		writer:      w,
		width:       width,
		enableColor: enableColor,
		interactive: isInteractive(w),
		started:     time.Now(),
	}
}

// isInteractive reports whether w is a terminal file.
func isInteractive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetTotal replaces the total.
func (pb *ProgressBar) SetTotal(n int64) {
	pb.total.Store(n)
}

// IncrementTotal grows the total by delta.
func (pb *ProgressBar) IncrementTotal(delta int64) {
	pb.total.Add(delta)
}

// Advance moves the position forward by n.
func (pb *ProgressBar) Advance(n int64) {
	pb.current.Add(n)
}

// Current returns the current position.
func (pb *ProgressBar) Current() int64 {
	return pb.current.Load()
}

// Total returns the current total.
func (pb *ProgressBar) Total() int64 {
	return pb.total.Load()
}

// Percentage returns the progress percentage (0-100)
func (pb *ProgressBar) Percentage() int {
	return percentage(pb.current.Load(), pb.total.Load())
}

func percentage(current, total int64) int {
	if total <= 0 {
		return 0
	}
	perc := (current * 100) / total
	if perc > 100 {
		perc = 100
	}
	if perc < 0 {
		perc = 0
	}
	return int(perc)
}

// Start launches the redraw loop. It is a no-op when the writer is not a terminal.
func (pb *ProgressBar) Start(interval time.Duration) {
	if !pb.interactive {
		return
	}
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	pb.startOnce.Do(func() {
		pb.stop = make(chan struct{})
		pb.done = make(chan struct{})
		go pb.loop(interval)
	})
}

func (pb *ProgressBar) loop(interval time.Duration) {
	defer close(pb.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-pb.stop:
			return
		case <-ticker.C:
			pb.draw("")
		}
	}
}

// Finalize stops the redraw loop and snaps the position to the total. When
// entries appeared after they were counted the total grows to the position.
// Safe to call more than once.
func (pb *ProgressBar) Finalize() {
	pb.finalizeOnce.Do(func() {
		if pb.stop != nil {
			close(pb.stop)
			<-pb.done
		}

		current := pb.current.Load()
		if current > pb.total.Load() {
			pb.total.Store(current)
		}
		pb.current.Store(pb.total.Load())

		if pb.interactive {
			pb.draw("\n")
		}
	})
}

func (pb *ProgressBar) draw(suffix string) {
	line := pb.Render()

	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.frame++
	fmt.Fprintf(pb.writer, "\r\x1b[2K%s%s", line, suffix)
}

// Render generates the full frame: spinner, elapsed time, and bar.
func (pb *ProgressBar) Render() string {
	pb.mu.Lock()
	spinner := spinnerFrames[pb.frame%len(spinnerFrames)]
	pb.mu.Unlock()

	current := pb.current.Load()
	total := pb.total.Load()
	bar := renderBar(current, total, pb.width)

	if pb.enableColor {
		if percentage(current, total) < 100 {
			bar = color.New(color.FgCyan).Sprint(bar)
		} else {
			bar = color.New(color.FgGreen).Sprint(bar)
		}
		spinner = color.New(color.FgGreen).Sprint(spinner)
	}

	return fmt.Sprintf("%s %s %s", spinner, formatElapsed(time.Since(pb.started)), bar)
}

// renderBar generates the ASCII bar with counter and percentage.
// Format: "[=====     ] 5/10 (50%)"
func renderBar(current, total int64, width int) string {
	perc := percentage(current, total)

	filled := (perc * width) / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(strings.Repeat("=", filled))
	b.WriteString(strings.Repeat(" ", width-filled))
	b.WriteString("]")
	fmt.Fprintf(&b, " %d/%d (%d%%)", current, total, perc)
	return b.String()
}

// formatElapsed formats d as HH:MM:SS.
func formatElapsed(d time.Duration) string {
	secs := int64(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
}
