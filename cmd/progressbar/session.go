package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gocloud.dev/gcerrors"
	"golang.org/x/term"

	"github.com/NovikovRoman/ProgressBarCLI/internal/config"
	pbhttp "github.com/NovikovRoman/ProgressBarCLI/internal/http"
	"github.com/NovikovRoman/ProgressBarCLI/internal/logging"
	"github.com/NovikovRoman/ProgressBarCLI/internal/progress"
	"github.com/NovikovRoman/ProgressBarCLI/internal/transfer"
	"github.com/NovikovRoman/ProgressBarCLI/pkg/progressbar"
)

// session owns the progress line of one transfer. The renderer is created
// once the source size is known.
type session struct {
	cfg   config.Config
	out   io.Writer
	bar   *progressbar.Renderer
	count *progress.Counter
}

func newSession(cmd *cobra.Command, cfg config.Config) *session {
	return &session{cfg: cfg, out: cmd.OutOrStdout()}
}

// start sizes the renderer to one checkpoint per chunk and returns the writer
// that moves it. It matches transfer.Options.OnStart.
func (s *session) start(size int64) (io.Writer, error) {
	style, err := s.cfg.Style()
	if err != nil {
		return nil, err
	}
	bar, err := progressbar.New(progress.Checkpoints(size, s.cfg.ChunkSize), progressbar.Options{
		Width:        s.cfg.Width,
		Output:       s.out,
		Style:        &style,
		Plain:        s.cfg.Plain || !isTerminal(s.out),
		NoSignalTrap: true,
		Logger:       logging.Component("progressbar"),
	})
	if err != nil {
		return nil, fmt.Errorf("create progress line: %w", err)
	}
	s.bar = bar
	s.count = progress.NewCounter(bar, progress.Options{
		Total:     size,
		ChunkSize: s.cfg.ChunkSize,
	})
	if err := bar.Update(0); err != nil {
		return nil, fmt.Errorf("draw progress line: %w", err)
	}
	return s.count, nil
}

// finish completes the line after a successful transfer. A failed one is
// committed with Stop so the time shows in red. The cursor is released either
// way.
func (s *session) finish(failed bool) error {
	if s.bar == nil {
		return nil
	}
	var err error
	if failed {
		err = s.bar.Stop()
	} else {
		err = s.count.Finish()
	}
	if cerr := s.bar.Close(); err == nil {
		err = cerr
	}
	return err
}

// isTerminal reports whether w is a terminal. Tests replace it to get escape
// sequences on a buffer.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// classify attaches an exit code to a transfer error.
func classify(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		return withCode(ExitGeneralError, fmt.Errorf("interrupted: %w", err))
	case errors.Is(err, transfer.ErrSourceNotFound),
		errors.Is(err, pbhttp.ErrForbidden),
		errors.Is(err, pbhttp.ErrUnauthorized),
		errors.Is(err, pbhttp.ErrServerError):
		return withCode(ExitSourceNotAccess, err)
	case errors.Is(err, transfer.ErrSizeMismatch):
		return withCode(ExitGeneralError, err)
	}
	switch gcerrors.Code(err) {
	case gcerrors.OK, gcerrors.Unknown:
		return withCode(ExitGeneralError, err)
	default:
		return withCode(ExitStorageError, err)
	}
}
