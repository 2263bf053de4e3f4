// Package progressbar renders a single-line progress indicator that redraws
// itself in place on a terminal stream.
//
// A Renderer tracks a bounded counter (current out of max). On every update it
// rebuilds one line from a format template, pads it to a fixed width and writes
// it terminated by a carriage return, so the next update overwrites it. When the
// counter reaches max, or Stop is called, the line is committed with a newline
// and the renderer resets itself for another run.
//
// # Usage
//
//	bar, err := progressbar.New(100, progressbar.Options{Width: 60})
//	if err != nil {
//	    return err
//	}
//	defer bar.Close()
//
//	for i := 0; i < 100; i++ {
//	    doWork(i)
//	    bar.Advance()
//	}
//
// # Format
//
// The template recognizes five placeholders, resolved in a single pass:
//
//	#current#  current checkpoint
//	#max#      total checkpoints
//	#percent#  completion, e.g. " 42.00%"
//	#eta#      estimated time remaining as HH:MM:SS, "--:--:--" until known
//	#bar#      the bar; it takes every column the rest of the line leaves free
//
// The default template produces lines such as
//
//	42/100 [=================>-----------------------]  42.00% 00:01:13
//
// # Cursor
//
// The cursor is hidden while any Renderer is open and shown again when the last
// one is closed. A SIGINT/SIGTERM trap restores it before the process dies,
// unless Options.NoSignalTrap is set. Call RestoreCursor from main for the
// remaining exit paths.
//
// The trap kills the process: after showing the cursor it resets the signal
// and raises it again, so handlers installed with signal.Notify or
// signal.NotifyContext never run. Programs that shut down on their own, such
// as ones that cancel a context on SIGINT, must set Options.NoSignalTrap and
// call Close themselves.
package progressbar
