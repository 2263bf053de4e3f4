//go:build integration

package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"

	"github.com/NovikovRoman/ProgressBarCLI/internal/testutils"
	"github.com/NovikovRoman/ProgressBarCLI/internal/transfer"
)

func TestS3RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	minio := testutils.StartMinio(t, ctx)
	bucketURL := minio.CreateBucket(t, ctx, "progressbar-test")

	data := make([]byte, 1<<20)
	for i := range data {
		data[i] = byte(i % 256)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Header().Set("Content-Type", "application/octet-stream")
		if r.Method == http.MethodGet {
			w.Write(data)
		}
	}))
	defer server.Close()

	t.Run("fetch", func(t *testing.T) {
		res := runCLI(t, ctx, "fetch",
			"--url", server.URL+"/blob.bin",
			"--to", bucketURL,
			"--dest", "in/blob.bin",
			"--chunk-size", "256KiB",
		)
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, "4/4 [")
	})

	t.Run("copy", func(t *testing.T) {
		dst := t.TempDir()
		res := runCLI(t, ctx, "copy",
			"--from", bucketURL,
			"--key", "in/blob.bin",
			"--to", fileURL(dst),
			"--dest", "blob.bin",
			"--chunk-size", "128KiB",
		)
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, "8/8 [")

		got, err := os.ReadFile(filepath.Join(dst, "blob.bin"))
		require.NoError(t, err)
		assert.True(t, bytes.Equal(data, got))
	})

	t.Run("metadata", func(t *testing.T) {
		bkt, err := blob.OpenBucket(ctx, bucketURL)
		require.NoError(t, err)
		defer bkt.Close()

		attrs, err := bkt.Attributes(ctx, "in/blob.bin")
		require.NoError(t, err)
		assert.Equal(t, int64(len(data)), attrs.Size)
		assert.Equal(t, server.URL+"/blob.bin", attrs.Metadata[transfer.SourceMetadataKey])
	})

	t.Run("missing key", func(t *testing.T) {
		res := runCLI(t, ctx, "copy", "--from", bucketURL, "--key", "nope", "--to", fileURL(t.TempDir()))
		assert.Equal(t, ExitSourceNotAccess, res.code)
	})
}
