package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wroger/gymtrack/internal/buildinfo"
	"github.com/wroger/gymtrack/internal/client/cli"
	"github.com/wroger/gymtrack/internal/client/config"
	"github.com/wroger/gymtrack/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	// Missing .env is fine, the config falls back to defaults.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel, os.Stderr)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)

}
