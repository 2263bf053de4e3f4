package progressbar

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ANSI sequences.
const (
	cursorHide = "\x1b[?25l"
	cursorShow = "\x1b[?25h"
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[0;31m"
	colorGreen = "\x1b[0;32m"
)

// guard is shared by every Renderer in the process, so the cursor is hidden
// once and shown once no matter how many renderers come and go.
var guard cursorGuard

type cursorGuard struct {
	mu   sync.Mutex
	refs int
	// gen changes every time the cursor is restored, so leases taken before a
	// forced restore cannot release a later hide.
	gen    int
	out    io.Writer
	sigCh  chan os.Signal
	doneCh chan struct{}
}

type cursorLease struct {
	gen  int
	once sync.Once
}

// acquire hides the cursor on the first lease and optionally installs the
// signal trap.
func (g *cursorGuard) acquire(out io.Writer, trap bool) (*cursorLease, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.refs == 0 {
		if _, err := io.WriteString(out, cursorHide); err != nil {
			return nil, err
		}
		g.out = out
	}
	if trap && g.sigCh == nil {
		g.trapLocked()
	}
	g.refs++
	return &cursorLease{gen: g.gen}, nil
}

// release drops a lease and shows the cursor when it was the last one.
func (g *cursorGuard) release(l *cursorLease) error {
	var err error
	l.once.Do(func() {
		g.mu.Lock()
		defer g.mu.Unlock()

		if l.gen != g.gen || g.refs == 0 {
			return
		}
		g.refs--
		if g.refs == 0 {
			err = g.restoreLocked()
		}
	})
	return err
}

func (g *cursorGuard) restoreLocked() error {
	g.stopTrapLocked()
	out := g.out
	g.out = nil
	g.refs = 0
	g.gen++
	if out == nil {
		return nil
	}
	_, err := io.WriteString(out, cursorShow)
	return err
}

// trapLocked restores the cursor on SIGINT or SIGTERM, then re-raises the
// signal with the default disposition so the process still terminates.
func (g *cursorGuard) trapLocked() {
	sigCh := make(chan os.Signal, 1)
	doneCh := make(chan struct{})
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	g.sigCh, g.doneCh = sigCh, doneCh

	go func() {
		select {
		case sig := <-sigCh:
			g.mu.Lock()
			_ = g.restoreLocked()
			g.mu.Unlock()

			signal.Reset(sig)
			if p, err := os.FindProcess(os.Getpid()); err == nil {
				_ = p.Signal(sig)
			}
		case <-doneCh:
		}
	}()
}

func (g *cursorGuard) stopTrapLocked() {
	if g.sigCh == nil {
		return
	}
	signal.Stop(g.sigCh)
	close(g.doneCh)
	g.sigCh, g.doneCh = nil, nil
}

// RestoreCursor shows the cursor if any Renderer still holds it hidden. It is
// meant to be deferred in main, to cover panics and early returns that skip
// Close. Renderers still open afterwards keep working but no longer own the
// cursor.
func RestoreCursor() error {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	if guard.refs == 0 {
		return nil
	}
	return guard.restoreLocked()
}
