package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"scopereport/internal"
	"scopereport/internal/config"
	"scopereport/internal/container"
	"scopereport/ui"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatal("Invalid server configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level), os.Stderr)

	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatal("Failed to initialise:", err)
	}
	defer c.Close()

	app := ui.NewApp(ui.Config{
		Port:            cfg.Server.Port,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, c.ReportService, c.LoadDocument, logger)

	log.Printf("Serving report on http://localhost:%s", cfg.Server.Port)
	if err := app.Start(ctx); err != nil {
		log.Fatal(err)
	}
}
