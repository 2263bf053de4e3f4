// Package transfer streams objects into blob storage chunk by chunk.
//
// Sources are either another bucket (Copy) or an HTTP URL (Fetch). Buckets are
// gocloud.dev/blob buckets, so any registered scheme works: file://, mem://,
// gs://, s3://.
//
// # Usage
//
//	res, err := transfer.Copy(ctx, src, "in/data.bin", dst, "out/data.bin", transfer.Options{
//	    ChunkSize: 4 << 20,
//	    OnStart: func(size int64) (io.Writer, error) {
//	        // size the progress line now that the total is known
//	        return counter, nil
//	    },
//	})
//
// Every chunk read from the source is written to the destination and then to
// the progress writer returned by OnStart, so a progress.Counter with the same
// chunk size advances exactly one checkpoint per chunk.
//
// # Cancellation
//
// Cancelling ctx aborts the destination writer: nothing is committed and the
// destination key keeps its previous content, if any.
package transfer
