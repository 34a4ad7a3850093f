// The catalogimport binary maps an iTunes-style lookup feed into the
// app catalog document. It is an offline tool; the server only ever
// reads the document it writes.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/swapp1990/mcp-apps/internal/catalog"
	"github.com/swapp1990/mcp-apps/internal/config"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/appsearch"
)

// feed is the subset of the iTunes lookup response the importer reads.
type feed struct {
	ResultCount int         `json:"resultCount"`
	Results     []feedEntry `json:"results"`
}

type feedEntry struct {
	BundleID      string   `json:"bundleId"`
	TrackName     string   `json:"trackName"`
	Description   string   `json:"description"`
	PrimaryGenre  string   `json:"primaryGenreName"`
	Price         float64  `json:"price"`
	AverageRating float64  `json:"averageUserRating"`
	RatingCount   int      `json:"userRatingCount"`
	ArtistName    string   `json:"artistName"`
	Genres        []string `json:"genres"`
	TrackViewURL  string   `json:"trackViewUrl"`
	Kind          string   `json:"kind"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		feedArg  = flag.String("feed", "", "feed source: a file path or an http(s) URL (required)")
		platform = flag.String("platform", "ios", "platform tag to assign to imported apps")
		timeout  = flag.Duration("timeout", 30*time.Second, "fetch timeout for URL feeds")
	)
	flag.Parse()

	if *feedArg == "" {
		flag.Usage()

		return fmt.Errorf("missing -feed")
	}

	cfg := config.Load()

	log, err := config.NewLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	raw, err := readFeed(*feedArg, *timeout)
	if err != nil {
		return err
	}

	var f feed
	if err := json.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse feed: %w", err)
	}

	store := catalog.NewStore(cfg.CatalogPath, log)
	if err := store.Load(); err != nil {
		// A fresh catalog starts from the empty document.
		log.Warn("starting a new catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}

	imported := 0
	for _, entry := range f.Results {
		app, ok := mapEntry(entry, *platform)
		if !ok {
			continue
		}
		store.Upsert(app)
		imported++
	}

	if err := store.Save(); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}

	log.Info("catalog imported",
		zap.Int("feedEntries", len(f.Results)),
		zap.Int("imported", imported),
		zap.String("path", cfg.CatalogPath),
	)

	return nil
}

func readFeed(src string, timeout time.Duration) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		client := &http.Client{Timeout: timeout}

		resp, err := client.Get(src)
		if err != nil {
			return nil, fmt.Errorf("fetch feed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch feed: unexpected status %s", resp.Status)
		}

		return io.ReadAll(resp.Body)
	}

	raw, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	return raw, nil
}

// mapEntry converts one feed entry to a catalog app. Entries without a
// name are skipped; software kinds other than apps are skipped too.
func mapEntry(e feedEntry, platform string) (appsearch.App, bool) {
	if e.TrackName == "" {
		return appsearch.App{}, false
	}
	if e.Kind != "" && e.Kind != "software" && e.Kind != "mac-software" {
		return appsearch.App{}, false
	}

	id := e.BundleID
	if id == "" {
		id = slug(e.TrackName)
	}

	return appsearch.App{
		ID:          id,
		Name:        e.TrackName,
		Description: e.Description,
		Category:    e.PrimaryGenre,
		Platform:    platform,
		Price:       e.Price,
		Rating:      e.AverageRating,
		ReviewCount: e.RatingCount,
		Developer:   e.ArtistName,
		Features:    e.Genres,
		URL:         e.TrackViewURL,
	}, true
}

func slug(name string) string {
	s := strings.ToLower(name)
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)

	return strings.Trim(s, "-")
}
