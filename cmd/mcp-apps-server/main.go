// The mcp-apps-server binary serves the demo MCP apps over stdio or
// streamable HTTP.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/swapp1990/mcp-apps/internal/catalog"
	"github.com/swapp1990/mcp-apps/internal/config"
	"github.com/swapp1990/mcp-apps/internal/mcpserver"
	"github.com/swapp1990/mcp-apps/internal/querylog"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/ports"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	log, err := config.NewLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	store := catalog.NewStore(cfg.CatalogPath, log)
	if err := store.Load(); err != nil {
		// An empty catalog still serves the regex and loan apps.
		log.Warn("catalog unavailable", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}

	var qlog ports.QueryLogger
	if cfg.QueryLogPath != "" {
		qlog = querylog.New(cfg.QueryLogPath, log)
	}

	srv := mcpserver.New(store, qlog, log)

	switch cfg.Mode {
	case config.ModeHTTP:
		return srv.ServeHTTP(cfg.Addr)
	case config.ModeStdio:
		return srv.ServeStdio()
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}
}
