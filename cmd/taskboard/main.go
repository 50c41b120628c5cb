// Package main is the entry point for the taskboard CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"taskboard/internal/backend/googletasks"
	"taskboard/internal/backend/rest"
	"taskboard/internal/cli"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newService)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

// newService picks the backend named in the config.
func newService(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
	switch cfg.Backend {
	case config.BackendREST:
		return rest.New(ctx, cfg, rest.WithLogger(logger))
	case config.BackendGoogle:
		return googletasks.New(ctx, cfg)
	}
	return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
}
