package progressbar

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentString(t *testing.T) {
	tests := []struct {
		current, max int
		want         string
	}{
		{0, 100, "  0.00%"},
		{1, 3, " 33.33%"},
		{2, 3, " 66.67%"},
		{50, 100, " 50.00%"},
		{999, 1000, " 99.90%"},
		{100, 100, "100.00%"},
	}

	for _, tt := range tests {
		r := &Renderer{current: tt.current, max: tt.max}
		got, err := r.percentString()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "percentString(%d/%d)", tt.current, tt.max)
	}
}

func TestPercentStringIsFixedWidth(t *testing.T) {
	for _, max := range []int{1, 7, 1343} {
		for current := 0; current <= max; current++ {
			r := &Renderer{current: current, max: max}
			got, err := r.percentString()
			require.NoError(t, err)
			require.Len(t, got, 7, "%d/%d", current, max)
			require.Equal(t, byte('%'), got[6])
		}
	}
}

func TestPercentZeroMaxIsInvalidState(t *testing.T) {
	r := &Renderer{max: 0}
	_, err := r.percentString()
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestBarStringLengthMatchesAvailable(t *testing.T) {
	for _, max := range []int{1, 3, 10, 97} {
		for current := 0; current <= max; current++ {
			for available := -2; available <= 45; available++ {
				r := &Renderer{current: current, max: max, style: DefaultStyle()}
				want := available
				if want < 0 {
					want = 0
				}
				got := r.barString(available)
				require.Equal(t, want, utf8.RuneCountInString(got), "current=%d max=%d available=%d", current, max, available)
			}
		}
	}
}

func TestBarStringZones(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		available int
		want      string
	}{
		{"empty", 0, 10, ">---------"},
		{"half", 5, 10, "=====>----"},
		{"one short", 9, 10, "=========="},
		{"full", 10, 10, "=========="},
		{"single column", 0, 1, "="},
		{"no room", 5, 0, ""},
		{"rounds down", 3, 7, "==>----"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Renderer{current: tt.current, max: 10, style: DefaultStyle()}
			assert.Equal(t, tt.want, r.barString(tt.available))
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{-time.Second, "00:00:00"},
		{59*time.Second + 900*time.Millisecond, "00:00:59"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{100 * time.Hour, "100:00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatClock(tt.in), "formatClock(%v)", tt.in)
	}
}

func TestETAExtrapolation(t *testing.T) {
	r, _, clock := newTestRenderer(t, 100, Options{Plain: true})
	assert.Equal(t, etaUnknown, r.etaString())

	clock.Advance(10 * time.Second)
	require.NoError(t, r.Update(25))
	assert.Equal(t, "00:00:30", r.etaString())

	clock.Advance(10 * time.Second)
	require.NoError(t, r.Update(50))
	assert.Equal(t, "00:00:20", r.etaString())

	clock.Advance(3 * time.Hour)
	require.NoError(t, r.Update(51))
	assert.Equal(t, "02:53:15", r.etaString())
}

func TestETAUnknownAtZero(t *testing.T) {
	r, _, clock := newTestRenderer(t, 100, Options{Plain: true})

	clock.Advance(time.Minute)
	require.NoError(t, r.Update(10))
	require.NoError(t, r.Update(0))

	assert.Len(t, r.history, 2)
	assert.Equal(t, etaUnknown, r.etaString())
}
