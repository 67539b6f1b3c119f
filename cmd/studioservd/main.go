package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/eastdocs/studioctl/internal/server"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("studioservd", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Path to config file")
	envPath := fs.String("env-file", "", "Path to a .env file (default .env if present)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// A missing .env file is fine; explicit paths must exist.
	if *envPath != "" {
		if err := godotenv.Load(*envPath); err != nil {
			return fmt.Errorf("load env file %s: %w", *envPath, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	logger, err := server.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, logger, version)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
