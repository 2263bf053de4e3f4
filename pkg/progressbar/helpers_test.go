package progressbar

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// recorder keeps every Write as a separate entry, so each render cycle can be
// inspected on its own.
type recorder struct {
	writes []string
}

func (w *recorder) Write(p []byte) (int, error) {
	w.writes = append(w.writes, string(p))
	return len(p), nil
}

func (w *recorder) last() string {
	if len(w.writes) == 0 {
		return ""
	}
	return w.writes[len(w.writes)-1]
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

// newTestRenderer returns a renderer writing to a recorder, with the cursor
// sequence already consumed and the renderer closed at cleanup.
func newTestRenderer(t *testing.T, max int, opts Options) (*Renderer, *recorder, *fakeClock) {
	t.Helper()
	rec := &recorder{}
	clock := newFakeClock()
	opts.Output = rec
	opts.Now = clock.Now
	opts.NoSignalTrap = true

	r, err := New(max, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	rec.writes = nil
	return r, rec, clock
}

func newTestLogger() (*logrus.Logger, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}
