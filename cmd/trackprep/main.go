package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return
	}
	code := exitCode(err)
	if !errors.Is(err, context.Canceled) && !isSilent(err) {
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(code)
}
