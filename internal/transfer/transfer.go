package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	pbhttp "github.com/NovikovRoman/ProgressBarCLI/internal/http"
	"github.com/NovikovRoman/ProgressBarCLI/internal/logging"
	"github.com/NovikovRoman/ProgressBarCLI/internal/progress"
)

// Common errors.
var (
	ErrSourceNotFound = errors.New("transfer: source not found")
	ErrSizeMismatch   = errors.New("transfer: size mismatch")
)

// Destination metadata keys.
const (
	// SourceMetadataKey holds the source key or URL.
	SourceMetadataKey = "source"
	// ETagMetadataKey holds the ETag reported by an HTTP source.
	ETagMetadataKey = "source-etag"
	// LastModifiedMetadataKey holds the Last-Modified time reported by an
	// HTTP source, in RFC 3339.
	LastModifiedMetadataKey = "source-last-modified"
)

// Options configures a transfer.
type Options struct {
	// ChunkSize is the number of bytes read and written at a time.
	// Default: 4MiB
	ChunkSize int64

	// OnStart is called with the source size (-1 if unknown) before the first
	// byte is copied. The returned writer, if not nil, receives every chunk
	// after it is written to the destination.
	OnStart func(size int64) (io.Writer, error)

	// Logger receives start and finish events.
	// Default: logging.Component("transfer")
	Logger logrus.FieldLogger
}

// Result summarizes a finished transfer.
type Result struct {
	Bytes       int64
	ContentType string
}

// Copy copies srcKey from src to dstKey in dst.
func Copy(ctx context.Context, src *blob.Bucket, srcKey string, dst *blob.Bucket, dstKey string, opts Options) (*Result, error) {
	opts = withDefaults(opts)

	attrs, err := src.Attributes(ctx, srcKey)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, srcKey)
		}
		return nil, fmt.Errorf("source attributes: %w", err)
	}

	r, err := src.NewReader(ctx, srcKey, nil)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer r.Close()

	log := opts.Logger.WithFields(logrus.Fields{
		"src":                 srcKey,
		logging.KeyFieldKey:   dstKey,
		logging.BytesFieldKey: attrs.Size,
	})
	return stream(ctx, r, attrs.Size, dst, dstKey, &blob.WriterOptions{
		ContentType: attrs.ContentType,
		Metadata:    map[string]string{SourceMetadataKey: srcKey},
	}, opts, log)
}

// Fetch downloads url into dstKey in dst.
func Fetch(ctx context.Context, client *pbhttp.Client, url string, dst *blob.Bucket, dstKey string, opts Options) (*Result, error) {
	opts = withDefaults(opts)

	info, err := client.Head(ctx, url)
	if err != nil {
		if errors.Is(err, pbhttp.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, url)
		}
		return nil, fmt.Errorf("get file info: %w", err)
	}

	body, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer body.Close()

	log := opts.Logger.WithFields(logrus.Fields{
		logging.URLFieldKey:   url,
		logging.KeyFieldKey:   dstKey,
		logging.BytesFieldKey: info.Size,
	})
	metadata := map[string]string{SourceMetadataKey: url}
	if info.ETag != "" {
		metadata[ETagMetadataKey] = info.ETag
	}
	if !info.LastModified.IsZero() {
		metadata[LastModifiedMetadataKey] = info.LastModified.UTC().Format(time.RFC3339)
	}
	return stream(ctx, body, info.Size, dst, dstKey, &blob.WriterOptions{
		ContentType: info.ContentType,
		Metadata:    metadata,
	}, opts, log)
}

func withDefaults(opts Options) Options {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = progress.DefaultChunkSize
	}
	if opts.Logger == nil {
		opts.Logger = logging.Component("transfer")
	}
	return opts
}

// stream copies r to dst in chunks. Any failure cancels the writer context
// before closing it, which tells the driver to discard the partial object.
//
// Once OnStart has returned, a progress line may be drawn on the terminal, so
// everything logged from then on is at debug level.
func stream(ctx context.Context, r io.Reader, size int64, dst *blob.Bucket, key string, wopts *blob.WriterOptions, opts Options, log logrus.FieldLogger) (*Result, error) {
	log.Info("transfer started")

	var report io.Writer = io.Discard
	if opts.OnStart != nil {
		w, err := opts.OnStart(size)
		if err != nil {
			return nil, err
		}
		if w != nil {
			report = w
		}
	}

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := dst.NewWriter(wctx, key, wopts)
	if err != nil {
		return nil, fmt.Errorf("open destination: %w", err)
	}
	abort := func(err error) (*Result, error) {
		cancel()
		_ = w.Close()
		log.WithError(err).Debug("transfer aborted")
		return nil, err
	}

	buf := make([]byte, opts.ChunkSize)
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return abort(err)
		}
		n, readErr := io.ReadFull(r, buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return abort(fmt.Errorf("write destination: %w", err))
			}
			written += int64(n)
			_, _ = report.Write(buf[:n])
		}
		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
		if readErr != nil {
			return abort(fmt.Errorf("read source: %w", readErr))
		}
	}

	if size >= 0 && written != size {
		return abort(fmt.Errorf("%w: expected %d bytes, got %d", ErrSizeMismatch, size, written))
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("commit destination: %w", err)
	}

	log.WithField(logging.BytesFieldKey, written).Debug("transfer finished")
	return &Result{Bytes: written, ContentType: wopts.ContentType}, nil
}
