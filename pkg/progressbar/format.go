package progressbar

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// etaUnknown is shown until a second checkpoint has been recorded.
const etaUnknown = "--:--:--"

// completeMarker replaces the time on natural completion. It is as wide as
// HH:MM:SS so the line does not shift.
const completeMarker = "Complete"

func (r *Renderer) percent() (float64, error) {
	if r.max <= 0 {
		return 0, fmt.Errorf("%w: max is %d", ErrInvalidState, r.max)
	}
	return float64(r.current) * 100 / float64(r.max), nil
}

// percentString renders the completion as a fixed 7 column field, from
// "  0.00%" to "100.00%".
func (r *Renderer) percentString() (string, error) {
	p, err := r.percent()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%6.2f%%", p), nil
}

// etaString extrapolates the remaining time linearly from the time spent
// between the start of the cycle and the latest checkpoint.
func (r *Renderer) etaString() string {
	if len(r.history) <= 1 || r.current <= 0 {
		return etaUnknown
	}
	latest, ok := r.history[r.current]
	if !ok {
		return etaUnknown
	}
	elapsed := latest.Sub(r.history[0])
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := time.Duration(float64(elapsed) * float64(r.max-r.current) / float64(r.current))
	return formatClock(remaining)
}

// formatClock formats d as HH:MM:SS. Hours are not folded into days.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s%3600/60, s%60)
}

// barString draws a bar exactly available columns wide. Columns before the
// position are done, the column at the position holds the cursor (or is done
// when it is the last one) and the rest are remaining.
func (r *Renderer) barString(available int) string {
	if available <= 0 {
		return ""
	}
	position := int(int64(r.current) * int64(available) / int64(r.max))
	if position >= available {
		position = available - 1
	}

	var b strings.Builder
	b.Grow(available * utf8.UTFMax)
	for i := 0; i < available; i++ {
		switch {
		case i < position:
			b.WriteRune(r.style.Done)
		case i == position && position == available-1:
			b.WriteRune(r.style.Done)
		case i == position:
			b.WriteRune(r.style.Cursor)
		default:
			b.WriteRune(r.style.Remaining)
		}
	}
	return b.String()
}
