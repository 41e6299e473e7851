// Package clip copies text to the user's clipboard through a chain of
// mechanisms: the native system clipboard first, an OSC 52 terminal escape
// sequence next, and finally an on-screen manual-copy dialog that always
// works because it only asks the user to select text themselves.
package clip

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"go.hushlink.app/hushlink/display"
)

const (
	successIndicator  = "✓ Copied"
	successBackground = "#12b886"

	// How long the success indicator stays on a feedback target before reverting.
	feedbackRevertDelay = 2000 * time.Millisecond
)

// Scheduler runs a callback once after a delay. The returned function cancels
// the pending run. A real timer backs production use; tests substitute a
// virtual clock.
type Scheduler interface {
	Schedule(fn func(), delay time.Duration) (cancel func())
}

// TimerScheduler schedules on real wall-clock timers.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(fn func(), delay time.Duration) func() {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}

// Surface renders the manual-copy dialog. ShowDialog receives text that has
// already been HTML-escaped and returns a function that removes the dialog.
type Surface interface {
	ShowDialog(escapedText string) (dismiss func())
}

// TerminalSurface renders the manual-copy dialog as a framed block of text.
type TerminalSurface struct {
	W io.Writer
}

func (s TerminalSurface) ShowDialog(escapedText string) func() {
	fmt.Fprintln(s.W, "── copy manually ──────────────────────")
	fmt.Fprintln(s.W, escapedText)
	fmt.Fprintln(s.W, "── select the text above and copy it ──")
	return func() {}
}

// Target is a UI element whose visual state is transiently mutated to signal
// a successful copy. Busy suppresses conflicting hover styling while the
// success state is showing.
type Target struct {
	Indicator  string
	Background string
	Busy       bool
}

// Copier drives the fallback chain. It owns the single optional reference to
// the currently-open manual dialog: invoking the copier while a dialog is
// open replaces it.
type Copier struct {
	writePrimary  func(text string) error
	writeFallback func(text string) error
	surface       Surface
	scheduler     Scheduler

	dismissDialog func()
}

// NewCopier builds a Copier wired to the real system clipboard, OSC 52 on
// stderr, and the given surface for the manual fallback.
func NewCopier(surface Surface, scheduler Scheduler) *Copier {
	c := &Copier{
		writeFallback: writeOsc52,
		surface:       surface,
		scheduler:     scheduler,
	}
	// atotto/clipboard knows at init time whether a native clipboard exists
	// on this platform; an unavailable primary skips straight to OSC 52.
	if !clipboard.Unsupported {
		c.writePrimary = clipboard.WriteAll
	}
	return c
}

// writeOsc52 emits the text as an OSC 52 escape sequence, which terminal
// emulators translate into a clipboard write even over SSH.
func writeOsc52(text string) error {
	_, err := osc52.New(text).WriteTo(os.Stderr)
	return err
}

// CopyToClipboard attempts each mechanism in strict order, first success
// wins. Failures in the first two tiers are contained and logged without the
// payload; the manual dialog is the terminal state and cannot fail.
func (c *Copier) CopyToClipboard(text string, target *Target) {
	if c.writePrimary != nil {
		if err := attemptWrite(c.writePrimary, text); err == nil {
			c.ShowCopySuccess(target)
			return
		} else {
			slog.Debug("native clipboard write failed, trying OSC 52", "err", err)
		}
	}

	if c.writeFallback != nil {
		if err := attemptWrite(c.writeFallback, text); err == nil {
			c.ShowCopySuccess(target)
			return
		} else {
			slog.Debug("fallback copy failed, showing manual dialog", "err", err)
		}
	}

	c.showManualDialog(text)
}

// attemptWrite contains panics as ordinary errors so a misbehaving clipboard
// backend can never take down the caller.
func attemptWrite(write func(string) error, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard write panicked: %v", r)
		}
	}()
	return write(text)
}

// showManualDialog replaces any open dialog with a fresh one holding the
// escaped payload. At most one dialog exists at a time.
func (c *Copier) showManualDialog(text string) {
	if c.dismissDialog != nil {
		c.dismissDialog()
	}
	c.dismissDialog = c.surface.ShowDialog(display.EscapeHTML(text))
}

// DismissDialog closes the manual dialog if one is open.
func (c *Copier) DismissDialog() {
	if c.dismissDialog != nil {
		c.dismissDialog()
		c.dismissDialog = nil
	}
}

// ShowCopySuccess flips the target into its success state and schedules the
// revert. The revert is deliberately not cancellable: two rapid successful
// copies on the same target schedule two independent timers, and the second
// revert restores the state it captured, which is the success state. The
// quirk is pinned by tests rather than fixed.
func (c *Copier) ShowCopySuccess(target *Target) {
	if target == nil {
		return
	}

	origIndicator := target.Indicator
	origBackground := target.Background
	target.Indicator = successIndicator
	target.Background = successBackground
	target.Busy = true

	c.scheduler.Schedule(func() {
		target.Indicator = origIndicator
		target.Background = origBackground
		target.Busy = false
	}, feedbackRevertDelay)
}
