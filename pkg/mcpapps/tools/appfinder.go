package tools

import (
	"fmt"
	"strings"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/appsearch"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/ports"
)

// Bounds for a compare_apps request.
const (
	minCompareApps = 2
	maxCompareApps = 4
)

const defaultAlternativesLimit = 5

// AppFinder handles the app-finder tools against an injected catalog
// store. The query logger is optional and best-effort.
type AppFinder struct {
	Store ports.CatalogStore
	Log   ports.QueryLogger
}

// Search runs search_apps.
func (h *AppFinder) Search(f appsearch.Filter) (ToolResult, error) {
	results := h.Store.SearchApps(f)

	h.logQuery("search_apps", map[string]any{"query": f.Query}, results)

	return ToolResult{
		Text: formatSearchText(f, results),
		Envelope: envelope.SearchEnvelope{
			Query:   f.Query,
			Filter:  f,
			Results: results,
			Total:   len(results),
		},
	}, nil
}

// Details runs get_app_details.
func (h *AppFinder) Details(name string) (ToolResult, error) {
	if strings.TrimSpace(name) == "" {
		return ToolResult{}, fmt.Errorf("app name must not be empty")
	}

	app, ok := h.Store.GetAppByName(name)
	if !ok {
		return ToolResult{}, fmt.Errorf("no app named %q in the catalog", name)
	}

	h.logQuery("get_app_details", map[string]any{"name": name}, []appsearch.App{app})

	return ToolResult{
		Text:     formatDetailText(app),
		Envelope: envelope.DetailEnvelope{App: app},
	}, nil
}

// Compare runs compare_apps over 2-4 named apps.
func (h *AppFinder) Compare(names []string) (ToolResult, error) {
	if len(names) < minCompareApps || len(names) > maxCompareApps {
		return ToolResult{}, fmt.Errorf(
			"compare requires between %d and %d app names, got %d",
			minCompareApps, maxCompareApps, len(names),
		)
	}

	apps := make([]appsearch.App, 0, len(names))
	for _, name := range names {
		app, ok := h.Store.GetAppByName(name)
		if !ok {
			return ToolResult{}, fmt.Errorf("no app named %q in the catalog", name)
		}
		apps = append(apps, app)
	}

	h.logQuery("compare_apps", map[string]any{"names": names}, apps)

	return ToolResult{
		Text:     formatCompareText(apps),
		Envelope: envelope.CompareAppsEnvelope{Apps: apps},
	}, nil
}

// Alternatives runs get_alternatives for a named app.
func (h *AppFinder) Alternatives(name string, limit int) (ToolResult, error) {
	subject, ok := h.Store.GetAppByName(name)
	if !ok {
		return ToolResult{}, fmt.Errorf("no app named %q in the catalog", name)
	}

	if limit <= 0 {
		limit = defaultAlternativesLimit
	}

	all := h.Store.SearchApps(appsearch.Filter{Category: subject.Category})
	alts := appsearch.Alternatives(all, subject, limit)

	h.logQuery("get_alternatives", map[string]any{"name": name}, alts)

	return ToolResult{
		Text: formatAlternativesText(subject, alts),
		Envelope: envelope.AlternativesEnvelope{
			Subject:      subject,
			Alternatives: alts,
		},
	}, nil
}

// logQuery records a query best-effort; the logger swallows failures.
func (h *AppFinder) logQuery(tool string, params map[string]any, apps []appsearch.App) {
	if h.Log == nil {
		return
	}

	names := make([]string, 0, len(apps))
	for _, a := range apps {
		names = append(names, a.Name)
	}

	h.Log.Log(ports.QueryEntry{
		Tool:         tool,
		Params:       params,
		ResultsCount: len(apps),
		AppNames:     names,
	})
}

func formatSearchText(f appsearch.Filter, results []appsearch.App) string {
	var b strings.Builder

	if f.Query != "" {
		fmt.Fprintf(&b, "Found %d apps matching %q:\n", len(results), f.Query)
	} else {
		fmt.Fprintf(&b, "Found %d apps:\n", len(results))
	}

	for i, app := range results {
		fmt.Fprintf(&b, "%d. %s (%s) - %s, %.1f stars (%d reviews)\n",
			i+1, app.Name, app.Category, formatPrice(app.Price), app.Rating, app.ReviewCount)
	}

	if len(results) == 0 {
		b.WriteString("Try a broader query or drop a filter.\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatDetailText(app appsearch.App) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", app.Name, app.Category)
	fmt.Fprintf(&b, "Platform: %s | Price: %s | Rating: %.1f stars (%d reviews)\n",
		app.Platform, formatPrice(app.Price), app.Rating, app.ReviewCount)

	if app.Description != "" {
		fmt.Fprintf(&b, "%s\n", app.Description)
	}
	if len(app.Features) > 0 {
		fmt.Fprintf(&b, "Features: %s\n", strings.Join(app.Features, ", "))
	}
	if len(app.Pros) > 0 {
		fmt.Fprintf(&b, "Pros: %s\n", strings.Join(app.Pros, "; "))
	}
	if len(app.Cons) > 0 {
		fmt.Fprintf(&b, "Cons: %s\n", strings.Join(app.Cons, "; "))
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatCompareText(apps []appsearch.App) string {
	var b strings.Builder

	names := make([]string, 0, len(apps))
	for _, a := range apps {
		names = append(names, a.Name)
	}
	fmt.Fprintf(&b, "Comparing %s:\n", strings.Join(names, " vs "))

	for _, app := range apps {
		fmt.Fprintf(&b, "- %s: %s, %.1f stars (%d reviews), %s\n",
			app.Name, formatPrice(app.Price), app.Rating, app.ReviewCount, app.Platform)
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatAlternativesText(subject appsearch.App, alts []appsearch.App) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Found %d alternatives to %s (%s):\n",
		len(alts), subject.Name, subject.Category)

	for i, app := range alts {
		fmt.Fprintf(&b, "%d. %s - %s, %.1f stars\n",
			i+1, app.Name, formatPrice(app.Price), app.Rating)
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatPrice(price float64) string {
	if price == 0 {
		return "free"
	}

	return fmt.Sprintf("$%.2f", price)
}
