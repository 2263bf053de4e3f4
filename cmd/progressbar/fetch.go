package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gocloud.dev/blob"

	pbhttp "github.com/NovikovRoman/ProgressBarCLI/internal/http"
	"github.com/NovikovRoman/ProgressBarCLI/internal/logging"
	"github.com/NovikovRoman/ProgressBarCLI/internal/progress"
	"github.com/NovikovRoman/ProgressBarCLI/internal/transfer"
)

type fetchOptions struct {
	url       string
	to        string
	dest      string
	chunkSize string
}

func newFetchCmd(root *rootOptions) *cobra.Command {
	o := &fetchOptions{}
	cmd := &cobra.Command{
		Use:     "fetch",
		Short:   "Download an HTTP URL into a bucket",
		Example: `  progressbar fetch --url https://example.com/big.iso --to file:///tmp --dest big.iso`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, root)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.url, "url", "", "source URL (required)")
	flags.StringVar(&o.to, "to", "", "destination bucket URL (required)")
	flags.StringVar(&o.dest, "dest", "", "destination object key (required)")
	flags.StringVar(&o.chunkSize, "chunk-size", "", "bytes per checkpoint, e.g. 4MiB (default from config)")
	return cmd
}

func (o *fetchOptions) run(cmd *cobra.Command, root *rootOptions) error {
	if err := requireFlags(cmd, "url", "to", "dest"); err != nil {
		return err
	}
	cfg, err := root.load(cmd)
	if err != nil {
		return err
	}
	if err := overrideChunkSize(&cfg, o.chunkSize); err != nil {
		return err
	}

	ctx := cmd.Context()
	dst, err := blob.OpenBucket(ctx, o.to)
	if err != nil {
		return withCode(ExitStorageError, fmt.Errorf("open destination bucket: %w", err))
	}
	defer dst.Close()

	client := pbhttp.NewClient(pbhttp.Options{
		Timeout:         30 * time.Second,
		RetryAttempts:   cfg.Retry.Attempts,
		RetryBackoff:    cfg.Retry.Backoff,
		RetryMaxBackoff: cfg.Retry.MaxBackoff,
		UserAgent:       "progressbar/" + version,
		Logger:          logging.Component("http"),
	})

	log := logging.Component("fetch").WithField(logging.BucketFieldKey, o.to)
	s := newSession(cmd, cfg)
	start := time.Now()

	res, err := transfer.Fetch(ctx, client, o.url, dst, o.dest, transfer.Options{
		ChunkSize: cfg.ChunkSize,
		OnStart:   s.start,
		Logger:    log,
	})
	if ferr := s.finish(err != nil); ferr != nil && err == nil {
		log.WithError(ferr).Warn("progress line failed")
	}
	if err != nil {
		return classify(ctx, err)
	}

	log.WithFields(logging.Fields{
		logging.URLFieldKey:   o.url,
		logging.KeyFieldKey:   o.dest,
		logging.BytesFieldKey: res.Bytes,
		"elapsed":             time.Since(start).Round(time.Millisecond).String(),
	}).Infof("fetched %s", progress.FormatBytes(res.Bytes))
	return nil
}
