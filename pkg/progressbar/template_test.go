package progressbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   template
	}{
		{
			name:   "default",
			format: DefaultFormat,
			want: template{
				{kind: phCurrent},
				{text: "/"},
				{kind: phMax},
				{text: " ["},
				{kind: phBar},
				{text: "] "},
				{kind: phPercent},
				{text: " "},
				{kind: phETA},
			},
		},
		{
			name:   "literal only",
			format: "working...",
			want:   template{{text: "working..."}},
		},
		{
			name:   "unknown names stay literal",
			format: "#foo# #eta",
			want:   template{{text: "#foo# #eta"}},
		},
		{
			name:   "doubled hashes",
			format: "##bar##",
			want:   template{{text: "#"}, {kind: phBar}, {text: "#"}},
		},
		{
			name:   "adjacent placeholders",
			format: "#current##max#",
			want:   template{{kind: phCurrent}, {kind: phMax}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTemplate(tt.format))
		})
	}
}

func TestTemplateCount(t *testing.T) {
	tmpl := parseTemplate("[#bar#] #percent# [#bar#]")
	assert.Equal(t, 2, tmpl.count(phBar))
	assert.Equal(t, 0, tmpl.count(phETA))
}
