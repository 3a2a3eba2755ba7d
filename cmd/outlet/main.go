package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/primarytix/outlet/internal/cmd"
	"github.com/primarytix/outlet/internal/errors"
	"github.com/primarytix/outlet/internal/exitcode"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		if ctx.Err() == context.Canceled {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled")
			exitcode.Exit(exitcode.Interrupted)
		}

		msg := err.Error()
		var oerr *errors.OutletError
		if stderrors.As(err, &oerr) {
			msg = oerr.UserMessage()
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
		exitcode.ExitWithError(err)
	}
	exitcode.Exit(exitcode.Success)
}
