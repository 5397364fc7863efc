// Command eventctl runs the attendee desk from a terminal: import a roster,
// check people in, hand out lunch and kits, and export reports.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(describe(err)))
		return 1
	}
	return 0
}
