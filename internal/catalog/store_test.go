package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/appsearch"
)

func writeDoc(t *testing.T, path string, doc Document) {
	t.Helper()

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeDoc(t, path, Document{
		Version: 1,
		Apps: []appsearch.App{
			{ID: "alpha", Name: "Alpha", Category: "Tools", Rating: 4.5},
			{ID: "beta", Name: "Beta", Category: "Tools", Rating: 4.0},
		},
	})

	s := NewStore(path, nil)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	if got := s.SearchApps(appsearch.Filter{Category: "tools"}); len(got) != 2 {
		t.Errorf("search: got %d apps", len(got))
	}

	app, ok := s.GetAppByName("ALPHA")
	if !ok || app.ID != "alpha" {
		t.Errorf("get by name: got %v %v", app.ID, ok)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope.json"), nil)

	if err := s.Load(); err == nil {
		t.Error("expected an error for a missing document")
	}
}

func TestLoadMalformedFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path, nil)
	if err := s.Load(); err == nil {
		t.Error("expected a parse error")
	}
}

func TestReloadPicksUpChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeDoc(t, path, Document{Version: 1, Apps: []appsearch.App{{ID: "a", Name: "A"}}})

	s := NewStore(path, nil)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	writeDoc(t, path, Document{Version: 2, Apps: []appsearch.App{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
	}})

	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot(); got.Version != 2 || len(got.Apps) != 2 {
		t.Errorf("reload: got version %d with %d apps", got.Version, len(got.Apps))
	}
}

func TestUpsertAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	writeDoc(t, path, Document{Version: 3, Apps: []appsearch.App{
		{ID: "alpha", Name: "Alpha", Rating: 4.0},
	}})

	s := NewStore(path, nil)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	// Replace by case-insensitive name, then insert a new one.
	s.Upsert(appsearch.App{ID: "alpha", Name: "ALPHA", Rating: 4.9})
	s.Upsert(appsearch.App{ID: "new", Name: "Newcomer", Rating: 3.9})

	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	fresh := NewStore(path, nil)
	if err := fresh.Load(); err != nil {
		t.Fatal(err)
	}

	doc := fresh.Snapshot()
	if doc.Version != 4 {
		t.Errorf("version bump: got %d, want 4", doc.Version)
	}
	if len(doc.Apps) != 2 {
		t.Fatalf("apps: got %d", len(doc.Apps))
	}
	if doc.Apps[0].Rating != 4.9 {
		t.Errorf("upsert replace: got %+v", doc.Apps[0])
	}
	if doc.LastModified.IsZero() {
		t.Error("lastModified not stamped")
	}
}
