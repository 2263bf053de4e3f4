package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/NovikovRoman/ProgressBarCLI/internal/config"
	"github.com/NovikovRoman/ProgressBarCLI/internal/logging"
	"github.com/NovikovRoman/ProgressBarCLI/internal/progress"
	"github.com/NovikovRoman/ProgressBarCLI/internal/transfer"
)

type copyOptions struct {
	from      string
	key       string
	to        string
	dest      string
	chunkSize string
}

func newCopyCmd(root *rootOptions) *cobra.Command {
	o := &copyOptions{}
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy an object from one bucket to another",
		Example: `  progressbar copy --from file:///var/data --key dump.sql --to s3://backups --dest 2024/dump.sql
  progressbar copy --from gs://src --key big.iso --to file:///tmp --chunk-size 16MiB`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, root)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.from, "from", "", "source bucket URL (required)")
	flags.StringVar(&o.key, "key", "", "source object key (required)")
	flags.StringVar(&o.to, "to", "", "destination bucket URL (required)")
	flags.StringVar(&o.dest, "dest", "", "destination object key (default: same as --key)")
	flags.StringVar(&o.chunkSize, "chunk-size", "", "bytes per checkpoint, e.g. 4MiB (default from config)")
	return cmd
}

func (o *copyOptions) run(cmd *cobra.Command, root *rootOptions) error {
	if err := requireFlags(cmd, "from", "key", "to"); err != nil {
		return err
	}
	cfg, err := root.load(cmd)
	if err != nil {
		return err
	}
	if err := overrideChunkSize(&cfg, o.chunkSize); err != nil {
		return err
	}
	dest := o.dest
	if dest == "" {
		dest = o.key
	}

	ctx := cmd.Context()
	src, err := blob.OpenBucket(ctx, o.from)
	if err != nil {
		return withCode(ExitStorageError, fmt.Errorf("open source bucket: %w", err))
	}
	defer src.Close()

	dst, err := blob.OpenBucket(ctx, o.to)
	if err != nil {
		return withCode(ExitStorageError, fmt.Errorf("open destination bucket: %w", err))
	}
	defer dst.Close()

	log := logging.Component("copy").WithField(logging.BucketFieldKey, o.to)
	s := newSession(cmd, cfg)
	start := time.Now()

	res, err := transfer.Copy(ctx, src, o.key, dst, dest, transfer.Options{
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
		logging.KeyFieldKey:   dest,
		logging.BytesFieldKey: res.Bytes,
		"elapsed":             time.Since(start).Round(time.Millisecond).String(),
	}).Infof("copied %s", progress.FormatBytes(res.Bytes))
	return nil
}

// overrideChunkSize applies a --chunk-size flag on top of the configuration.
func overrideChunkSize(cfg *config.Config, value string) error {
	if value == "" {
		return nil
	}
	size, err := progress.ParseBytes(value)
	if err != nil {
		return invalidArgs("--chunk-size: %w", err)
	}
	if size <= 0 {
		return invalidArgs("--chunk-size must be positive")
	}
	cfg.ChunkSize = size
	return nil
}
