package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iamvkosarev/perplexity-chat/config"
	"github.com/iamvkosarev/perplexity-chat/internal/app"
)

func main() {
	cfgPath := flag.String("config", "", "path to the yaml config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logFile := app.SetupLogger(cfg.Log)
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = app.RunWeb(ctx, cfg); err != nil {
		log.Printf("web front-end stopped: %v", err)
		os.Exit(1)
	}
}
