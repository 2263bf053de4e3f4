package progressbar

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"
)

// DefaultWidth is the line width used when Options.Width is zero.
const DefaultWidth = 80

// Options configures a Renderer.
type Options struct {
	// Width is the line width in display columns. Lines shorter than Width are
	// padded with spaces; longer ones are written as they are.
	// Default: 80
	Width int

	// Output is where lines are written. It is borrowed, not closed.
	// Default: os.Stdout
	Output io.Writer

	// Style sets the format template and bar glyphs.
	// Default: DefaultStyle()
	Style *Style

	// Plain disables the cursor and color escape sequences, for output that is
	// not a terminal.
	Plain bool

	// NoSignalTrap leaves SIGINT and SIGTERM to the caller, who then has to
	// call Close or RestoreCursor on the way out.
	//
	// Without it, the first such signal restores the cursor, resets the
	// signal to its default disposition and raises it again, which ends the
	// process. signal.Notify and signal.NotifyContext registrations of the
	// caller are reset too and never see the signal. Set NoSignalTrap when the
	// program handles shutdown itself.
	NoSignalTrap bool

	// Now returns the current time.
	// Default: time.Now
	Now func() time.Time

	// Logger receives debug events.
	// Default: discarded
	Logger logrus.FieldLogger
}

// Renderer draws one progress line for a counter running from 0 to max.
// It is not safe for concurrent use.
type Renderer struct {
	max     int
	width   int
	current int
	// history maps each checkpoint reached in the current cycle to the time it
	// was reached. Checkpoint 0 holds the start of the cycle.
	history map[int]time.Time

	style Style
	tmpl  template

	out   io.Writer
	plain bool
	now   func() time.Time
	log   logrus.FieldLogger
	lease *cursorLease
}

// New creates a Renderer for max checkpoints, hides the cursor and starts the
// first cycle. The caller should Close it when done.
func New(max int, opts Options) (*Renderer, error) {
	if max <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMax, max)
	}
	if opts.Width < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWidth, opts.Width)
	}
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}

	style := DefaultStyle()
	if opts.Style != nil {
		style = *opts.Style
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		max:   max,
		width: opts.Width,
		style: style,
		tmpl:  parseTemplate(style.Format),
		out:   opts.Output,
		plain: opts.Plain,
		now:   opts.Now,
		log:   opts.Logger,
	}

	if !opts.Plain {
		lease, err := guard.acquire(opts.Output, !opts.NoSignalTrap)
		if err != nil {
			return nil, fmt.Errorf("hide cursor: %w", err)
		}
		r.lease = lease
	}

	r.reset()
	return r, nil
}

// Advance moves the counter one checkpoint forward and redraws.
func (r *Renderer) Advance() error {
	return r.Update(r.current + 1)
}

// Update moves the counter to value and redraws. Values above max are clamped
// to max, which completes the cycle; values below zero are clamped to zero.
func (r *Renderer) Update(value int) error {
	if value > r.max {
		value = r.max
	}
	if value < 0 {
		value = 0
	}
	r.current = value
	r.history[value] = r.now()
	return r.display(false)
}

// Stop commits the current line with the time in red and resets the counter,
// whether or not max was reached.
func (r *Renderer) Stop() error {
	return r.display(true)
}

// Close releases the hidden cursor. The cursor is shown again once every open
// Renderer has been closed. Close is idempotent.
func (r *Renderer) Close() error {
	if r.lease == nil {
		return nil
	}
	lease := r.lease
	r.lease = nil
	return guard.release(lease)
}

// Current returns the counter value.
func (r *Renderer) Current() int { return r.current }

// Max returns the number of checkpoints in a cycle.
func (r *Renderer) Max() int { return r.max }

// Width returns the line width in display columns.
func (r *Renderer) Width() int { return r.width }

// Style returns a copy of the current style.
func (r *Renderer) Style() Style { return r.style }

// SetStyle replaces the whole style after validating it.
func (r *Renderer) SetStyle(s Style) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.style = s
	r.tmpl = parseTemplate(s.Format)
	return nil
}

// SetFormat replaces the line template.
func (r *Renderer) SetFormat(format string) error {
	return r.Set(FieldFormat, format)
}

// SetDoneChar replaces the glyph of the completed part of the bar.
func (r *Renderer) SetDoneChar(c rune) error {
	return r.Set(FieldDoneChar, string(c))
}

// SetCursorChar replaces the glyph at the current position.
func (r *Renderer) SetCursorChar(c rune) error {
	return r.Set(FieldCursorChar, string(c))
}

// SetRemainingChar replaces the glyph of the part not reached yet.
func (r *Renderer) SetRemainingChar(c rune) error {
	return r.Set(FieldRemainingChar, string(c))
}

// Get returns a style field by name. See Style.Get.
func (r *Renderer) Get(field string) (string, error) {
	return r.style.Get(field)
}

// Set assigns a style field by name. See Style.Set.
func (r *Renderer) Set(field, value string) error {
	s := r.style
	if err := s.Set(field, value); err != nil {
		return err
	}
	return r.SetStyle(s)
}

// display runs one render cycle: it writes exactly one line, ended by "\r"
// while the cycle is running and by "\n" once it is complete or stopped.
func (r *Renderer) display(stop bool) error {
	end := stop || r.current == r.max
	line, err := r.buildLine(end, stop)
	if err != nil {
		return err
	}

	if end {
		r.log.WithFields(logrus.Fields{
			"current": r.current,
			"max":     r.max,
			"stopped": stop,
		}).Debug("progress cycle finished")
		r.reset()
		line += "\n"
	} else {
		line += "\r"
	}

	if _, err := io.WriteString(r.out, line); err != nil {
		return fmt.Errorf("write progress line: %w", err)
	}
	return nil
}

// buildLine substitutes every placeholder and pads the result to the line
// width. The bar gets the columns the rest of the line leaves free.
func (r *Renderer) buildLine(end, stop bool) (string, error) {
	pct, err := r.percentString()
	if err != nil {
		return "", err
	}
	eta := r.etaString()

	value := func(seg segment) string {
		switch seg.kind {
		case phCurrent:
			return strconv.Itoa(r.current)
		case phMax:
			return strconv.Itoa(r.max)
		case phPercent:
			return pct
		case phETA:
			return eta
		case phBar:
			return ""
		}
		return seg.text
	}

	occupied := 0
	for _, seg := range r.tmpl {
		occupied += runewidth.StringWidth(value(seg))
	}
	bar := r.barString(r.width - occupied)
	used := occupied + r.tmpl.count(phBar)*runewidth.StringWidth(bar)

	shownETA := eta
	if end && eta != etaUnknown {
		shownETA = r.decorateTime(eta, stop)
	}

	var b strings.Builder
	for _, seg := range r.tmpl {
		switch seg.kind {
		case phBar:
			b.WriteString(bar)
		case phETA:
			b.WriteString(shownETA)
		default:
			b.WriteString(value(seg))
		}
	}
	if used < r.width {
		b.WriteString(strings.Repeat(" ", r.width-used))
	}
	return b.String(), nil
}

// decorateTime colors the time red on a forced stop and swaps it for the
// complete marker otherwise.
func (r *Renderer) decorateTime(eta string, stop bool) string {
	switch {
	case stop && r.plain:
		return eta
	case stop:
		return colorRed + eta + colorReset
	case r.plain:
		return completeMarker
	default:
		return colorGreen + completeMarker + colorReset
	}
}

// reset starts a new cycle.
func (r *Renderer) reset() {
	r.current = 0
	r.history = map[int]time.Time{0: r.now()}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
