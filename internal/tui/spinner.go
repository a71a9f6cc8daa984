// Package tui provides terminal user interface components for Flow.
package tui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// spinnerFrames are the braille animation frames shared by the terminal
// spinner and the generation progress view.
//
//nolint:gochecknoglobals // fixed animation frames
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerInterval is the update interval for spinner animation.
const SpinnerInterval = 100 * time.Millisecond

// TerminalSpinner animates a one-line status message for short waits that
// happen outside the generation progress view, like the preflight tool check
// in flow new. All writes go through the spinner's mutex so a Stop never
// interleaves with an animation frame.
type TerminalSpinner struct {
	mu      sync.Mutex
	out     io.Writer
	styles  *Styles
	message string
	done    chan struct{}
	running bool
}

// NewTerminalSpinner creates a spinner that writes to w.
func NewTerminalSpinner(w io.Writer) *TerminalSpinner {
	return &TerminalSpinner{out: w, styles: NewStyles()}
}

// Start begins the animation. Starting a running spinner only swaps the
// message.
func (s *TerminalSpinner) Start(ctx context.Context, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = message
	if s.running {
		return
	}
	s.running = true
	s.done = make(chan struct{})
	go s.animate(ctx, s.done)
}

// Stop halts the animation and erases the spinner line. Extra calls are
// no-ops.
func (s *TerminalSpinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// StopWithError halts the animation and prints a styled failure line in its
// place.
func (s *TerminalSpinner) StopWithError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	_, _ = fmt.Fprintln(s.out, s.styles.Error.Render("✗ "+message))
}

// stopLocked closes the animation goroutine and erases the line. Callers
// hold s.mu.
func (s *TerminalSpinner) stopLocked() {
	if !s.running {
		return
	}
	s.running = false
	close(s.done)
	s.eraseLine()
}

// eraseLine returns the cursor to column zero and clears to end of line,
// then flushes so a backgrounded terminal does not buffer the escape
// sequence. Callers hold s.mu.
func (s *TerminalSpinner) eraseLine() {
	_, _ = fmt.Fprint(s.out, "\r\033[K")
	if f, ok := s.out.(interface{ Sync() error }); ok {
		_ = f.Sync()
	}
}

// animate redraws the spinner line on every tick until done closes or ctx
// ends. The done channel is captured at Start time so a later Start cannot
// race with this goroutine.
func (s *TerminalSpinner) animate(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(SpinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-done:
			// Stop erased the line already.
			return
		case <-ctx.Done():
			s.mu.Lock()
			if s.running {
				s.running = false
				s.eraseLine()
			}
			s.mu.Unlock()
			return
		case <-ticker.C:
			s.mu.Lock()
			if !s.running {
				s.mu.Unlock()
				return
			}
			glyph := s.styles.Info.Render(spinnerFrames[frame%len(spinnerFrames)])
			_, _ = fmt.Fprintf(s.out, "\r\033[K%s %s", glyph, s.message)
			s.mu.Unlock()
		}
	}
}

// FormatDuration renders a millisecond count the way the progress view shows
// step times: "250ms" under a second, "1.2s" from there up.
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}
