package progressbar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorHiddenOnNewAndShownOnClose(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(3, Options{Output: &buf, NoSignalTrap: true})
	require.NoError(t, err)
	assert.Equal(t, cursorHide, buf.String())

	require.NoError(t, r.Close())
	assert.Equal(t, cursorHide+cursorShow, buf.String())

	require.NoError(t, r.Close())
	assert.Equal(t, cursorHide+cursorShow, buf.String(), "second Close must not write")
}

func TestCursorSharedBetweenRenderers(t *testing.T) {
	var buf bytes.Buffer
	first, err := New(3, Options{Output: &buf, NoSignalTrap: true})
	require.NoError(t, err)
	second, err := New(5, Options{Output: &buf, NoSignalTrap: true})
	require.NoError(t, err)

	require.NoError(t, first.Close())
	assert.Equal(t, 0, strings.Count(buf.String(), cursorShow))

	require.NoError(t, second.Close())
	assert.Equal(t, 1, strings.Count(buf.String(), cursorHide))
	assert.Equal(t, 1, strings.Count(buf.String(), cursorShow))
}

func TestRestoreCursorForcesShow(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(3, Options{Output: &buf, NoSignalTrap: true})
	require.NoError(t, err)

	require.NoError(t, RestoreCursor())
	assert.Equal(t, cursorHide+cursorShow, buf.String())

	require.NoError(t, RestoreCursor())
	require.NoError(t, r.Close())
	assert.Equal(t, cursorHide+cursorShow, buf.String())

	// a later renderer hides the cursor again and its lease is not disturbed
	// by the stale one
	next, err := New(3, Options{Output: &buf, NoSignalTrap: true})
	require.NoError(t, err)
	require.NoError(t, next.Close())
	assert.Equal(t, cursorHide+cursorShow+cursorHide+cursorShow, buf.String())
}

func TestPlainRendererLeavesCursorAlone(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(3, Options{Output: &buf, Plain: true})
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Empty(t, buf.String())
}

func TestSignalTrapLifecycle(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(3, Options{Output: &buf})
	require.NoError(t, err)

	guard.mu.Lock()
	installed := guard.sigCh != nil
	guard.mu.Unlock()
	assert.True(t, installed, "trap should be installed")

	require.NoError(t, r.Close())

	guard.mu.Lock()
	installed = guard.sigCh != nil
	guard.mu.Unlock()
	assert.False(t, installed, "trap should be removed with the last lease")
}

func TestNoSignalTrapLeavesSignalsToCaller(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(3, Options{Output: &buf, NoSignalTrap: true})
	require.NoError(t, err)
	defer r.Close()

	guard.mu.Lock()
	installed := guard.sigCh != nil
	guard.mu.Unlock()
	assert.False(t, installed, "no trap may be installed when the caller handles signals")
	assert.Equal(t, cursorHide, buf.String())
}

func TestHideCursorWriteError(t *testing.T) {
	_, err := New(3, Options{Output: failingWriter{}, NoSignalTrap: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hide cursor")

	guard.mu.Lock()
	defer guard.mu.Unlock()
	assert.Equal(t, 0, guard.refs)
}
