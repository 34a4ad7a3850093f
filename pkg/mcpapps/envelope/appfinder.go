package envelope

import "github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/appsearch"

// App finder viewTypes.
const (
	ViewTypeSearch       = "search"
	ViewTypeDetail       = "detail"
	ViewTypeCompareApps  = "compare"
	ViewTypeAlternatives = "alternatives"
)

// SearchEnvelope carries the results of an app search.
type SearchEnvelope struct {
	Query   string           `json:"query"`
	Filter  appsearch.Filter `json:"filter"`
	Results []appsearch.App  `json:"results"`
	Total   int              `json:"total"`
}

func (SearchEnvelope) Marker() string   { return MarkerAppSearch }
func (SearchEnvelope) ViewType() string { return ViewTypeSearch }
func (SearchEnvelope) envelope()        {}

// DetailEnvelope carries a single app for the detail drill-down view.
type DetailEnvelope struct {
	App appsearch.App `json:"app"`
}

func (DetailEnvelope) Marker() string   { return MarkerAppSearch }
func (DetailEnvelope) ViewType() string { return ViewTypeDetail }
func (DetailEnvelope) envelope()        {}

// CompareAppsEnvelope carries 2-4 apps for the comparison grid.
type CompareAppsEnvelope struct {
	Apps []appsearch.App `json:"apps"`
}

func (CompareAppsEnvelope) Marker() string   { return MarkerAppSearch }
func (CompareAppsEnvelope) ViewType() string { return ViewTypeCompareApps }
func (CompareAppsEnvelope) envelope()        {}

// AlternativesEnvelope carries alternatives to a subject app.
type AlternativesEnvelope struct {
	Subject      appsearch.App   `json:"subject"`
	Alternatives []appsearch.App `json:"alternatives"`
}

func (AlternativesEnvelope) Marker() string   { return MarkerAppSearch }
func (AlternativesEnvelope) ViewType() string { return ViewTypeAlternatives }
func (AlternativesEnvelope) envelope()        {}
