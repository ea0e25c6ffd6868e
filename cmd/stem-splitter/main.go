package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/stem-splitter/internal/separate"
)

var version = "dev"

func main() {
	a := &app{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		executor: separate.NewExecExecutor(),
		// Signals are only caught while the child runs; at the prompts the
		// default handling ends the process.
		runContext: func() (context.Context, context.CancelFunc) {
			return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		},
	}

	os.Exit(a.run(os.Args[1:]))
}
