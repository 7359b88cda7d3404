package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/iamvkosarev/perplexity-chat/config"
	"github.com/iamvkosarev/perplexity-chat/internal/app"
)

func main() {
	cfgPath := flag.String("config", "", "path to the yaml config file")
	contextName := flag.String("context", "", "saved conversation to continue")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logFile := app.SetupLogger(cfg.Log)
	defer logFile.Close()

	if err = app.RunConsole(context.Background(), cfg, *contextName); err != nil {
		log.Printf("console front-end stopped: %v", err)
		fmt.Fprintln(os.Stderr, err)
		logFile.Close()
		os.Exit(1)
	}
}
