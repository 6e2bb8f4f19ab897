package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/hybridauth/internal/buildinfo"
	"github.com/dmitrijs2005/hybridauth/internal/cli"
	"github.com/dmitrijs2005/hybridauth/internal/config"
	"github.com/dmitrijs2005/hybridauth/internal/flagx"
	"github.com/dmitrijs2005/hybridauth/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	for _, arg := range flagx.Positional(config.KnownFlags) {
		if arg == "version" {
			return
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx, "shutdown", "error", err)
		}
	}()

	// unblocks the REPL's pending read on interrupt
	go func() {
		<-ctx.Done()
		_ = os.Stdin.Close()
	}()

	app.Run(ctx)
}
