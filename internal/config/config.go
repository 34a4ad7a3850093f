// Package config loads process configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Serving modes for the MCP apps server.
const (
	ModeStdio = "stdio"
	ModeHTTP  = "http"
)

// Config holds everything the binaries need.
type Config struct {
	// Mode selects stdio or streamable-HTTP serving.
	Mode string

	// Addr is the HTTP listen address (http mode only).
	Addr string

	// CatalogPath is the catalog JSON document.
	CatalogPath string

	// QueryLogPath is the JSONL query log; empty disables logging.
	QueryLogPath string

	// Debug switches the logger to development output.
	Debug bool
}

// Load reads configuration. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Mode:         getenv("MCP_APPS_MODE", ModeStdio),
		Addr:         getenv("MCP_APPS_ADDR", ":8931"),
		CatalogPath:  getenv("MCP_APPS_CATALOG", "data/catalog.json"),
		QueryLogPath: getenv("MCP_APPS_QUERYLOG", ""),
		Debug:        os.Getenv("MCP_APPS_DEBUG") != "",
	}
}

// NewLogger builds the process logger. Stdio servers must keep stdout
// clean for the protocol, so logs always go to stderr.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}

		return cfg.Build()
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}

	return cfg.Build()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
