// Command minic checks MiniC source files.
//
// Usage:
//
//	minic check <file.mc>...
//	minic tokens <file.mc>
//	minic ast [--json] [--typed] <file.mc>
//	minic watch <file.mc>...
//	minic version [--json]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		// Diagnostics have already been printed.
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "minic: %v\n", err)
		}
		os.Exit(1)
	}
}
