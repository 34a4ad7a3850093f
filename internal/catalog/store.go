// Package catalog implements the app catalog store: a read-mostly JSON
// document with an explicit load/reload lifecycle. The store is
// constructed and injected rather than lazily initialized from global
// state, so first-call latency is visible and tests can point it at
// fixtures.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/appsearch"
)

// Document is the on-disk catalog shape.
type Document struct {
	Version      int             `json:"version"`
	LastModified time.Time       `json:"lastModified"`
	Apps         []appsearch.App `json:"apps"`
}

// Store serves catalog reads from an in-memory snapshot of the document.
// Mutation happens only through the offline importer (Upsert + Save);
// request-time access is read-only.
type Store struct {
	path string
	log  *zap.Logger

	mu  sync.RWMutex
	doc Document
}

// NewStore creates a store for the document at path. Call Load before
// serving.
func NewStore(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}

	return &Store{path: path, log: log}
}

// Load reads the document from disk.
func (s *Store) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", s.path, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("catalog: parse %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()

	s.log.Info("catalog loaded",
		zap.String("path", s.path),
		zap.Int("version", doc.Version),
		zap.Int("apps", len(doc.Apps)),
	)

	return nil
}

// Reload re-reads the document, picking up offline importer changes.
func (s *Store) Reload() error {
	return s.Load()
}

// SearchApps implements ports.CatalogStore.
func (s *Store) SearchApps(f appsearch.Filter) []appsearch.App {
	s.mu.RLock()
	apps := s.doc.Apps
	s.mu.RUnlock()

	return appsearch.Search(apps, f)
}

// GetAppByName implements ports.CatalogStore.
func (s *Store) GetAppByName(name string) (appsearch.App, bool) {
	s.mu.RLock()
	apps := s.doc.Apps
	s.mu.RUnlock()

	return appsearch.MatchName(apps, name)
}

// Snapshot returns a copy of the current document.
func (s *Store) Snapshot() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := s.doc
	doc.Apps = append([]appsearch.App(nil), s.doc.Apps...)

	return doc
}

// Upsert inserts or replaces an app, keyed by case-insensitive name or
// id. Importer-only; bumps nothing until Save.
func (s *Store) Upsert(app appsearch.App) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.doc.Apps {
		if strings.EqualFold(existing.Name, app.Name) || strings.EqualFold(existing.ID, app.ID) {
			s.doc.Apps[i] = app

			return
		}
	}

	s.doc.Apps = append(s.doc.Apps, app)
}

// Save bumps the document version, stamps it, and writes it atomically
// (temp file + rename) so a concurrent reader never sees a torn file.
func (s *Store) Save() error {
	s.mu.Lock()
	s.doc.Version++
	s.doc.LastModified = time.Now().UTC()
	doc := s.doc
	s.mu.Unlock()

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("catalog: marshal document: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(s.path), "."+filepath.Base(s.path)+".tmp")
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("catalog: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("catalog: rename %s: %w", tmp, err)
	}

	s.log.Info("catalog saved",
		zap.String("path", s.path),
		zap.Int("version", doc.Version),
		zap.Int("apps", len(doc.Apps)),
	)

	return nil
}
