package progress

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatBytes formats b with IEC units, e.g. "1.5 KiB".
func FormatBytes(b int64) string {
	if b < 0 {
		return "-" + humanize.IBytes(uint64(-b))
	}
	return humanize.IBytes(uint64(b))
}

// ParseBytes parses a human-readable byte string (e.g., "256MiB", "1GB").
func ParseBytes(s string) (int64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid byte string: %s", s)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("byte string out of range: %s", s)
	}
	return int64(n), nil
}
