package progressbar

import "strings"

type placeholder int

const (
	literal placeholder = iota
	phCurrent
	phMax
	phPercent
	phETA
	phBar
)

var placeholders = map[string]placeholder{
	"current": phCurrent,
	"max":     phMax,
	"percent": phPercent,
	"eta":     phETA,
	"bar":     phBar,
}

type segment struct {
	kind placeholder
	text string // only for literal
}

// template is a format string split into literal text and placeholders.
// Substituted values are never scanned again, so a value that happens to look
// like "#max#" is printed as is.
type template []segment

func parseTemplate(format string) template {
	var (
		segs template
		lit  strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{kind: literal, text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(format); {
		if format[i] == '#' {
			if end := strings.IndexByte(format[i+1:], '#'); end >= 0 {
				if kind, ok := placeholders[format[i+1:i+1+end]]; ok {
					flush()
					segs = append(segs, segment{kind: kind})
					i += end + 2
					continue
				}
			}
		}
		lit.WriteByte(format[i])
		i++
	}
	flush()
	return segs
}

func (t template) count(kind placeholder) int {
	n := 0
	for _, seg := range t {
		if seg.kind == kind {
			n++
		}
	}
	return n
}
