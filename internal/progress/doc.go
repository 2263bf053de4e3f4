// Package progress connects byte streams to a progress line.
//
// A Counter is an io.Writer that turns the number of bytes written through it
// into checkpoints and pushes them to a progressbar.Renderer. One checkpoint
// stands for one chunk, so a 1 GiB copy in 4 MiB chunks draws a 256 step bar.
//
// # Usage
//
//	max := progress.Checkpoints(size, chunkSize)
//	bar, _ := progressbar.New(max, progressbar.Options{})
//	counter := progress.NewCounter(bar, progress.Options{
//	    Total:     size,
//	    ChunkSize: chunkSize,
//	})
//
//	io.Copy(dst, io.TeeReader(src, counter))
//	counter.Finish()
//
// Byte sizes are formatted and parsed with go-humanize: FormatBytes prints IEC
// units ("256 MiB"), ParseBytes accepts both IEC and SI ("1KiB" is 1024,
// "1KB" is 1000).
package progress
