package progress

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovikovRoman/ProgressBarCLI/pkg/progressbar"
)

type updates struct {
	values []int
	err    error
}

func (u *updates) Update(v int) error {
	u.values = append(u.values, v)
	return u.err
}

func TestCheckpoints(t *testing.T) {
	tests := []struct {
		total, chunk int64
		want         int
	}{
		{0, 10, 1},
		{-1, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{100, 10, 10},
		{DefaultChunkSize * 3, 0, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Checkpoints(tt.total, tt.chunk), "Checkpoints(%d, %d)", tt.total, tt.chunk)
	}
}

func TestCounterMovesOncePerChunk(t *testing.T) {
	u := &updates{}
	c := NewCounter(u, Options{Total: 35, ChunkSize: 10})
	require.Equal(t, 4, c.Max())

	for i := 0; i < 35; i += 5 {
		n, err := c.Write(make([]byte, 5))
		require.NoError(t, err)
		require.Equal(t, 5, n)
	}

	assert.Equal(t, []int{1, 2, 3}, u.values)
	assert.Equal(t, int64(35), c.Written())

	require.NoError(t, c.Finish())
	assert.Equal(t, []int{1, 2, 3, 4}, u.values)

	require.NoError(t, c.Finish())
	assert.Equal(t, []int{1, 2, 3, 4}, u.values, "second Finish must not redraw")
}

func TestCounterOnlyFinishCompletes(t *testing.T) {
	u := &updates{}
	c := NewCounter(u, Options{Total: 20, ChunkSize: 10})

	_, err := c.Write(make([]byte, 20))
	require.NoError(t, err)
	_, err = c.Write(make([]byte, 100))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, u.values, "overshooting the total must not reach the last checkpoint")

	single := &updates{}
	c = NewCounter(single, Options{Total: 5, ChunkSize: 10})
	_, err = c.Write(make([]byte, 5))
	require.NoError(t, err)
	assert.Empty(t, single.values)

	require.NoError(t, c.Finish())
	assert.Equal(t, []int{1}, single.values)
}

func TestCounterUnknownTotal(t *testing.T) {
	u := &updates{}
	c := NewCounter(u, Options{ChunkSize: 4})

	_, err := io.Copy(c, strings.NewReader("some bytes of unknown length"))
	require.NoError(t, err)
	assert.Empty(t, u.values)

	require.NoError(t, c.Finish())
	assert.Equal(t, []int{1}, u.values)
}

func TestCounterKeepsFirstError(t *testing.T) {
	u := &updates{err: errors.New("terminal gone")}
	c := NewCounter(u, Options{Total: 20, ChunkSize: 10})

	n, err := c.Write(make([]byte, 10))
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	require.EqualError(t, c.Err(), "terminal gone")

	require.EqualError(t, c.Finish(), "terminal gone")
}

func TestCounterDrivesRenderer(t *testing.T) {
	var out bytes.Buffer
	bar, err := progressbar.New(Checkpoints(64, 16), progressbar.Options{
		Output: &out,
		Plain:  true,
		Width:  30,
	})
	require.NoError(t, err)
	defer bar.Close()

	c := NewCounter(bar, Options{Total: 64, ChunkSize: 16})
	_, err = io.Copy(c, bytes.NewReader(make([]byte, 64)))
	require.NoError(t, err)
	require.NoError(t, c.Finish())

	assert.Equal(t, 0, bar.Current())
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
	assert.Contains(t, out.String(), "4/4 [")
	assert.Contains(t, out.String(), "Complete")
}
