package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	kagicmder "github.com/papercomputeco/kagi/cmd/kagi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := kagicmder.NewKagiCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
