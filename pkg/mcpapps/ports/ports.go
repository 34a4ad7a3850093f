// Package ports defines the interfaces the app domain needs from
// infrastructure: contracts shaped by domain needs, not by the external
// systems that satisfy them.
package ports

import "github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/appsearch"

// CatalogStore is the read-side contract of the app catalog. Implemented
// by the JSON-document store; read-only at request time.
type CatalogStore interface {
	// SearchApps returns catalog apps matching the filter, ordered per
	// the search engine rules.
	SearchApps(f appsearch.Filter) []appsearch.App

	// GetAppByName finds an app by case-insensitive exact name or id.
	GetAppByName(name string) (appsearch.App, bool)
}

// QueryEntry is one fire-and-forget query log record. The logger fills
// in identity and timestamp.
type QueryEntry struct {
	Tool         string         `json:"tool"`
	Params       map[string]any `json:"params,omitempty"`
	ResultsCount int            `json:"resultsCount"`
	AppNames     []string       `json:"appNames,omitempty"`
}

// QueryLogger appends query records best-effort. Implementations must
// swallow every failure: a log write must never affect a tool result.
type QueryLogger interface {
	Log(entry QueryEntry)
}
