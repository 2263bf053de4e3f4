// Command progressbar copies objects between buckets and from HTTP sources
// into buckets, drawing a single progress line while it works.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/NovikovRoman/ProgressBarCLI/pkg/progressbar"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitInvalidArgs     = 2
	ExitSourceNotAccess = 3
	ExitStorageError    = 5
)

// exitError carries the process exit code of a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

func invalidArgs(format string, args ...any) error {
	return withCode(ExitInvalidArgs, fmt.Errorf(format, args...))
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() { _ = progressbar.RestoreCursor() }()

	return execute(ctx, args, os.Stdout, os.Stderr)
}

// execute runs the command line in args and maps the outcome to an exit code.
// Errors that do not carry a code come from argument parsing.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitInvalidArgs
}
