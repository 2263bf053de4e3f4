package progress

// DefaultChunkSize is the number of bytes per checkpoint when none is given.
const DefaultChunkSize = 4 * 1024 * 1024

// Updater receives checkpoint positions. *progressbar.Renderer implements it.
type Updater interface {
	Update(value int) error
}

// Options configures a Counter.
type Options struct {
	// Total is the expected number of bytes. Zero or negative means unknown;
	// the line then stays at zero until Finish.
	Total int64

	// ChunkSize is the number of bytes per checkpoint.
	// Default: 4MiB
	ChunkSize int64
}

// Counter maps bytes written to checkpoints. Writes never fail: a rendering
// error is kept and returned by Err, so a broken terminal does not abort the
// transfer being measured.
//
// Writing stops one checkpoint short of the last one. Only Finish completes
// the line, so a transfer that fails after its last byte is never shown as
// complete.
//
// A Counter is not safe for concurrent use.
type Counter struct {
	bar     Updater
	opts    Options
	max     int
	written int64
	last    int
	err     error
}

// NewCounter creates a Counter that drives bar.
func NewCounter(bar Updater, opts Options) *Counter {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	return &Counter{
		opts: opts,
		max:  Checkpoints(opts.Total, opts.ChunkSize),
		bar:  bar,
	}
}

// Checkpoints returns how many checkpoints a transfer of total bytes takes in
// chunks of chunkSize. Unknown or empty totals count as one checkpoint.
func Checkpoints(total, chunkSize int64) int {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if total <= 0 {
		return 1
	}
	return int((total + chunkSize - 1) / chunkSize)
}

// Write counts p and moves the bar when a checkpoint boundary is crossed.
func (c *Counter) Write(p []byte) (int, error) {
	c.written += int64(len(p))
	c.moveTo(c.checkpoint(c.written))
	return len(p), nil
}

// Finish moves the bar to the last checkpoint, completing the line.
func (c *Counter) Finish() error {
	c.moveTo(c.max)
	return c.err
}

// Written returns the number of bytes counted so far.
func (c *Counter) Written() int64 {
	return c.written
}

// Max returns the number of checkpoints.
func (c *Counter) Max() int {
	return c.max
}

// Err returns the first error reported by the bar.
func (c *Counter) Err() error {
	return c.err
}

func (c *Counter) checkpoint(written int64) int {
	if c.opts.Total <= 0 {
		return 0
	}
	cp := int(written / c.opts.ChunkSize)
	if cp >= c.max {
		cp = c.max - 1
	}
	return cp
}

func (c *Counter) moveTo(cp int) {
	if cp == c.last {
		return
	}
	c.last = cp
	if err := c.bar.Update(cp); err != nil && c.err == nil {
		c.err = err
	}
}
