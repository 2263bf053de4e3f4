package progressbar

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DefaultFormat is the template used when no Style is given.
const DefaultFormat = "#current#/#max# [#bar#] #percent# #eta#"

// Names of the configurable fields, as accepted by Get and Set.
const (
	FieldFormat        = "format"
	FieldDoneChar      = "doneChar"
	FieldCursorChar    = "cursorChar"
	FieldRemainingChar = "remainingChar"
)

// Style holds the parts of a Renderer that may change after construction.
type Style struct {
	// Format is the line template. See the package documentation for the
	// recognized placeholders.
	Format string

	// Done fills the part of the bar that is complete.
	Done rune

	// Cursor marks the current position inside the bar.
	Cursor rune

	// Remaining fills the part of the bar that is not reached yet.
	Remaining rune
}

// DefaultStyle returns the "=>-" style with DefaultFormat.
func DefaultStyle() Style {
	return Style{
		Format:    DefaultFormat,
		Done:      '=',
		Cursor:    '>',
		Remaining: '-',
	}
}

// Validate checks every field and reports the first invalid one as a
// *FieldError.
func (s Style) Validate() error {
	if err := validateFormat(s.Format); err != nil {
		return &FieldError{Field: FieldFormat, Err: err}
	}
	glyphs := []struct {
		field string
		r     rune
	}{
		{FieldDoneChar, s.Done},
		{FieldCursorChar, s.Cursor},
		{FieldRemainingChar, s.Remaining},
	}
	for _, g := range glyphs {
		if err := validateGlyph(g.r); err != nil {
			return &FieldError{Field: g.field, Err: err}
		}
	}
	return nil
}

// Get returns the value of the named field as a string.
func (s Style) Get(field string) (string, error) {
	switch canonicalField(field) {
	case FieldFormat:
		return s.Format, nil
	case FieldDoneChar:
		return string(s.Done), nil
	case FieldCursorChar:
		return string(s.Cursor), nil
	case FieldRemainingChar:
		return string(s.Remaining), nil
	}
	return "", &FieldError{Field: field, Err: ErrUnknownField}
}

// Set validates value and assigns it to the named field. Glyph fields take a
// single character. s is left untouched on error.
func (s *Style) Set(field, value string) error {
	name := canonicalField(field)
	switch name {
	case FieldFormat:
		if err := validateFormat(value); err != nil {
			return &FieldError{Field: name, Err: err}
		}
		s.Format = value
		return nil
	case FieldDoneChar, FieldCursorChar, FieldRemainingChar:
		r, err := parseGlyph(value)
		if err != nil {
			return &FieldError{Field: name, Err: err}
		}
		switch name {
		case FieldDoneChar:
			s.Done = r
		case FieldCursorChar:
			s.Cursor = r
		default:
			s.Remaining = r
		}
		return nil
	}
	return &FieldError{Field: field, Err: ErrUnknownField}
}

// canonicalField accepts the camel-case names, their snake-case spelling used
// in config files, and the legacy *BarChar names.
func canonicalField(field string) string {
	switch field {
	case FieldFormat:
		return FieldFormat
	case FieldDoneChar, "done_char", "doneBarChar":
		return FieldDoneChar
	case FieldCursorChar, "cursor_char", "currentPosChar":
		return FieldCursorChar
	case FieldRemainingChar, "remaining_char", "remainingBarChar":
		return FieldRemainingChar
	}
	return field
}

func parseGlyph(value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("%w: got %q", ErrInvalidGlyph, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	if err := validateGlyph(r); err != nil {
		return 0, err
	}
	return r, nil
}

func validateGlyph(r rune) error {
	if r == utf8.RuneError || !unicode.IsPrint(r) || runewidth.RuneWidth(r) != 1 {
		return fmt.Errorf("%w: got %q", ErrInvalidGlyph, r)
	}
	return nil
}

func validateFormat(format string) error {
	if format == "" {
		return fmt.Errorf("%w: empty template", ErrInvalidFormat)
	}
	if strings.ContainsAny(format, "\r\n") {
		return fmt.Errorf("%w: line breaks are not allowed", ErrInvalidFormat)
	}
	return nil
}
