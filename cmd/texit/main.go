package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd(viper.New())
	if err := root.ExecuteContext(ctx); err != nil {
		if err == errRenderFailed {
			os.Exit(1)
		}
		fatal(err)
	}
}
