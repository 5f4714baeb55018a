package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/korewaChino/midkb/internal/config"
	"github.com/korewaChino/midkb/internal/logger"
	"github.com/korewaChino/midkb/sdk/contracts"
	"github.com/korewaChino/midkb/sdk/midkb"
)

func main() {
	configPath := flag.String("config", "config.toml", "Path to the TOML configuration file")
	debug := flag.Bool("debug", false, "Log every translated event")
	flag.Parse()

	log := logger.NewZapLogger()
	level := contracts.InfoLevel
	if *debug {
		level = contracts.DebugLevel
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load configuration", log.Field().Error("error", err))
	}

	binder, err := midkb.New(cfg,
		contracts.WithLogger(log),
		contracts.WithLogLevel(level),
	)
	if err != nil {
		log.Fatal("failed to start", log.Field().Error("error", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	err = binder.Run(ctx)
	if cerr := binder.Close(); cerr != nil {
		log.Warn("closing binder", log.Field().Error("error", cerr))
	}
	if err != nil {
		log.Fatal("translation stopped", log.Field().Error("error", err))
	}
}
