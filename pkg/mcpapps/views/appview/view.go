// Package appview renders app-finder envelopes. All of its interactions
// (category filter, sort order, detail drill-down, compare toggles) are
// pure re-renders of already-delivered data; it never recomputes the
// underlying search.
package appview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/appsearch"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/views"
)

// Sort orders for the search results list.
const (
	SortRelevance = "relevance"
	SortRating    = "rating"
	SortPrice     = "price"
	SortName      = "name"
)

// View is the app-finder view instance. Single-threaded, event-driven:
// not safe for concurrent use.
type View struct {
	env        envelope.Envelope
	fallback   string
	hasContent bool
	cancelled  bool
	theme      string

	categoryFilter string
	sortOrder      string
	detailName     string
	hiddenApps     map[string]bool
}

// New creates an empty view showing the waiting placeholder.
func New() *View {
	return &View{sortOrder: SortRelevance, hiddenApps: map[string]bool{}}
}

// Marker implements views.View.
func (*View) Marker() string { return envelope.MarkerAppSearch }

// ApplyContent implements views.View. A new delivery resets all
// interaction state.
func (v *View) ApplyContent(blocks []envelope.Block) {
	v.cancelled = false
	v.env = nil
	v.fallback = ""
	v.categoryFilter = ""
	v.sortOrder = SortRelevance
	v.detailName = ""
	v.hiddenApps = map[string]bool{}

	decoded := envelope.Extract(blocks, envelope.MarkerAppSearch)
	switch decoded.Kind {
	case envelope.KindEnvelope:
		v.env = decoded.Env
		v.hasContent = true
	case envelope.KindText:
		v.fallback = decoded.Text
		v.hasContent = true
	case envelope.KindEmpty:
		v.hasContent = false
	}
}

// Cancel implements views.View.
func (v *View) Cancel() { v.cancelled = true }

// ApplyTheme implements views.View.
func (v *View) ApplyTheme(theme string) { v.theme = theme }

// SetCategoryFilter narrows the rendered search results to one category.
// Empty clears the filter.
func (v *View) SetCategoryFilter(category string) { v.categoryFilter = category }

// SetSortOrder reorders the rendered search results.
func (v *View) SetSortOrder(order string) { v.sortOrder = order }

// ShowDetail drills into one app from the delivered results. Empty
// returns to the list.
func (v *View) ShowDetail(name string) { v.detailName = name }

// ToggleApp hides or shows one column of the compare grid.
func (v *View) ToggleApp(name string) {
	key := strings.ToLower(name)
	v.hiddenApps[key] = !v.hiddenApps[key]
}

// Render implements views.View with one exhaustive dispatch over the
// envelope variants.
func (v *View) Render() views.RenderModel {
	m := views.RenderModel{Title: "App Finder", Theme: v.theme}

	switch {
	case v.cancelled:
		m.Status = views.StatusCancelled
		m.Sections = []views.Section{{Lines: []string{"Tool call cancelled."}}}

		return m
	case !v.hasContent:
		m.Status = views.StatusWaiting
		m.Sections = []views.Section{{Lines: []string{"Waiting for data..."}}}

		return m
	case v.fallback != "":
		m.Status = views.StatusFallback
		m.Sections = []views.Section{{Lines: []string{v.fallback}}}

		return m
	}

	m.Status = views.StatusRendered

	switch env := v.env.(type) {
	case envelope.SearchEnvelope:
		m.Sections = v.renderSearch(env)
	case envelope.DetailEnvelope:
		m.Sections = renderDetail(env.App)
	case envelope.CompareAppsEnvelope:
		m.Sections = v.renderCompare(env)
	case envelope.AlternativesEnvelope:
		m.Sections = renderAlternatives(env)
	case envelope.ErrorEnvelope:
		m.Sections = []views.Section{{Heading: "Error", Lines: []string{env.Message}}}
	}

	return m
}

// renderSearch applies the local filter/sort/drill-down state to the
// delivered results.
func (v *View) renderSearch(env envelope.SearchEnvelope) []views.Section {
	if v.detailName != "" {
		if app, ok := appsearch.MatchName(env.Results, v.detailName); ok {
			return renderDetail(app)
		}
	}

	shown := make([]appsearch.App, 0, len(env.Results))
	for _, app := range env.Results {
		if v.categoryFilter != "" && !strings.EqualFold(app.Category, v.categoryFilter) {
			continue
		}
		shown = append(shown, app)
	}

	switch v.sortOrder {
	case SortRating:
		sort.SliceStable(shown, func(i, j int) bool { return shown[i].Rating > shown[j].Rating })
	case SortPrice:
		sort.SliceStable(shown, func(i, j int) bool { return shown[i].Price < shown[j].Price })
	case SortName:
		sort.SliceStable(shown, func(i, j int) bool { return shown[i].Name < shown[j].Name })
	}

	heading := fmt.Sprintf("Results for %q (%d of %d)", env.Query, len(shown), env.Total)
	if v.categoryFilter != "" {
		heading += fmt.Sprintf(", category %s", v.categoryFilter)
	}

	s := views.Section{Heading: heading}
	for _, app := range shown {
		s.Lines = append(s.Lines, fmt.Sprintf("%s (%s) - %s, %.1f stars",
			app.Name, app.Category, priceLabel(app.Price), app.Rating))
	}
	if len(shown) == 0 {
		s.Lines = append(s.Lines, "No apps match the current filter.")
	}

	return []views.Section{s}
}

func (v *View) renderCompare(env envelope.CompareAppsEnvelope) []views.Section {
	s := views.Section{Heading: "Comparison"}

	for _, app := range env.Apps {
		if v.hiddenApps[strings.ToLower(app.Name)] {
			continue
		}
		s.Lines = append(s.Lines, fmt.Sprintf(
			"%s: %s, %.1f stars (%d reviews), %s",
			app.Name, priceLabel(app.Price), app.Rating, app.ReviewCount, app.Platform))
	}

	return []views.Section{s}
}

func renderDetail(app appsearch.App) []views.Section {
	info := views.Section{
		Heading: fmt.Sprintf("%s (%s)", app.Name, app.Category),
		Lines: []string{
			fmt.Sprintf("%s | %s | %.1f stars (%d reviews)",
				app.Platform, priceLabel(app.Price), app.Rating, app.ReviewCount),
		},
	}
	if app.Description != "" {
		info.Lines = append(info.Lines, app.Description)
	}

	sections := []views.Section{info}

	if len(app.Features) > 0 {
		sections = append(sections, views.Section{Heading: "Features", Lines: app.Features})
	}
	if len(app.Pros) > 0 {
		sections = append(sections, views.Section{Heading: "Pros", Lines: app.Pros})
	}
	if len(app.Cons) > 0 {
		sections = append(sections, views.Section{Heading: "Cons", Lines: app.Cons})
	}

	return sections
}

func renderAlternatives(env envelope.AlternativesEnvelope) []views.Section {
	s := views.Section{
		Heading: fmt.Sprintf("Alternatives to %s", env.Subject.Name),
	}

	for _, app := range env.Alternatives {
		s.Lines = append(s.Lines, fmt.Sprintf("%s - %s, %.1f stars",
			app.Name, priceLabel(app.Price), app.Rating))
	}
	if len(env.Alternatives) == 0 {
		s.Lines = append(s.Lines, "No alternatives found.")
	}

	return []views.Section{s}
}

func priceLabel(price float64) string {
	if price == 0 {
		return "free"
	}

	return fmt.Sprintf("$%.2f", price)
}
