// Command dualcheck evaluates expressions with dual numbers and checks their
// derivatives against symbolic and numerical references.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/born-ml/dualdiff/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}
