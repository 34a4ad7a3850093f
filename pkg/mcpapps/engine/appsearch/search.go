// Package appsearch implements the app-finder search engine: keyword,
// category, platform, price and rating filtering over a catalog of apps,
// with an additive relevance score used to order keyword searches.
package appsearch

import (
	"sort"
	"strings"
)

// App is one catalog entry. The catalog document is append-mostly:
// mutated only by the offline importer, read-only at request time.
type App struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Platform    string   `json:"platform"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Developer   string   `json:"developer,omitempty"`
	Features    []string `json:"features,omitempty"`
	Pros        []string `json:"pros,omitempty"`
	Cons        []string `json:"cons,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// Filter narrows and orders a search. Zero values mean "no constraint";
// price and rating bounds use pointers so zero is a usable bound.
type Filter struct {
	Query     string   `json:"query,omitempty"`
	Category  string   `json:"category,omitempty"`
	Platform  string   `json:"platform,omitempty"`
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
	MinRating *float64 `json:"minRating,omitempty"`
	Limit     int      `json:"limit,omitempty"`
}

// Relevance score weights for keyword searches.
const (
	nameWeight        = 10
	descriptionWeight = 5
	featureWeight     = 3
)

// Score computes the additive relevance of app for a keyword query: name
// match weight 10, description weight 5, each feature match weight 3,
// plus the app's star rating.
func Score(app App, query string) float64 {
	q := strings.ToLower(query)
	score := app.Rating

	if strings.Contains(strings.ToLower(app.Name), q) {
		score += nameWeight
	}
	if strings.Contains(strings.ToLower(app.Description), q) {
		score += descriptionWeight
	}
	for _, f := range app.Features {
		if strings.Contains(strings.ToLower(f), q) {
			score += featureWeight
		}
	}

	return score
}

// matches reports whether app satisfies every constraint in f except the
// keyword query, which only affects ordering (a keyword search still
// requires a nonzero score to include the app).
func matches(app App, f Filter) bool {
	if f.Category != "" && !strings.EqualFold(app.Category, f.Category) {
		return false
	}
	if f.Platform != "" && !strings.Contains(strings.ToLower(app.Platform), strings.ToLower(f.Platform)) {
		return false
	}
	if f.MaxPrice != nil && app.Price > *f.MaxPrice {
		return false
	}
	if f.MinRating != nil && app.Rating < *f.MinRating {
		return false
	}

	return true
}

// Search filters apps and orders the result: by relevance score
// descending when a keyword query is present, by rating descending
// otherwise. Ordering is stable so equal-score apps keep catalog order.
func Search(apps []App, f Filter) []App {
	out := []App{}

	for _, app := range apps {
		if !matches(app, f) {
			continue
		}
		if f.Query != "" && Score(app, f.Query) <= app.Rating {
			// No field matched the keyword at all.
			continue
		}
		out = append(out, app)
	}

	if f.Query != "" {
		sort.SliceStable(out, func(i, j int) bool {
			return Score(out[i], f.Query) > Score(out[j], f.Query)
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	}

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}

	return out
}

// MatchName finds an app by case-insensitive exact match on name or id.
func MatchName(apps []App, name string) (App, bool) {
	for _, app := range apps {
		if strings.EqualFold(app.Name, name) || strings.EqualFold(app.ID, name) {
			return app, true
		}
	}

	return App{}, false
}

// Alternatives returns apps in the same category as subject, excluding
// the subject itself, ordered by rating descending.
func Alternatives(apps []App, subject App, limit int) []App {
	out := []App{}

	for _, app := range apps {
		if strings.EqualFold(app.ID, subject.ID) && strings.EqualFold(app.Name, subject.Name) {
			continue
		}
		if !strings.EqualFold(app.Category, subject.Category) {
			continue
		}
		out = append(out, app)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}
