package tasks

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bmoreira/tubecrate/internal/models"
	"github.com/bmoreira/tubecrate/internal/repositories"
	"github.com/bmoreira/tubecrate/internal/shared"
	"github.com/bmoreira/tubecrate/internal/storage"
)

func newTestEngine(t *testing.T) (*BackupEngine, *repositories.Catalog) {
	t.Helper()

	logger := shared.NewLogger(io.Discard)
	store, err := storage.Open("", storage.Options{Logger: logger})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	catalog := repositories.NewCatalog(store, logger)
	return NewBackupEngine(catalog, logger), catalog
}

func seedCatalog(t *testing.T, catalog *repositories.Catalog) (models.Category, models.Category, models.Video, models.Video) {
	t.Helper()

	music, err := catalog.Categories.Create("Music")
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	gaming, err := catalog.Categories.Create("Gaming")
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	inMusic, err := catalog.AddVideo(models.VideoMetadata{ExternalRef: "aaa11111111", Title: "Track"}, music.ID)
	if err != nil {
		t.Fatalf("add video failed: %v", err)
	}
	inGaming, err := catalog.AddVideo(models.VideoMetadata{ExternalRef: "bbb11111111", Title: "Run"}, gaming.ID)
	if err != nil {
		t.Fatalf("add video failed: %v", err)
	}
	return music, gaming, inMusic, inGaming
}

func TestExport(t *testing.T) {
	t.Run("full scope carries everything", func(t *testing.T) {
		engine, catalog := newTestEngine(t)
		seedCatalog(t, catalog)

		snap, err := engine.Export(ScopeAll)
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if snap.Version != models.SnapshotVersion {
			t.Errorf("unexpected version %q", snap.Version)
		}
		if snap.ExportedAt.IsZero() {
			t.Error("expected an export timestamp")
		}
		if len(snap.Categories) != 2 || len(snap.Videos) != 2 {
			t.Errorf("expected 2+2 entries, got %d+%d", len(snap.Categories), len(snap.Videos))
		}
	})

	t.Run("category scope keeps full video records", func(t *testing.T) {
		engine, catalog := newTestEngine(t)
		music, gaming, inMusic, _ := seedCatalog(t, catalog)
		// A video in both categories must export with both edges intact.
		catalog.Videos.AddToCategory(inMusic.ID, gaming.ID)

		snap, err := engine.Export(music.ID)
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if len(snap.Categories) != 1 || snap.Categories[0].ID != music.ID {
			t.Errorf("unexpected categories: %v", snap.Categories)
		}
		if len(snap.Videos) != 1 || snap.Videos[0].ID != inMusic.ID {
			t.Fatalf("unexpected videos: %v", snap.Videos)
		}
		if !snap.Videos[0].CategoryIDs.Has(gaming.ID) {
			t.Error("scoped export truncated the video's membership set")
		}
	})

	t.Run("unknown category scope", func(t *testing.T) {
		engine, _ := newTestEngine(t)

		if _, err := engine.Export("missing"); !errors.Is(err, shared.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})

	t.Run("empty catalog exports empty sequences", func(t *testing.T) {
		engine, _ := newTestEngine(t)

		snap, err := engine.Export(ScopeAll)
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if snap.Categories == nil || snap.Videos == nil {
			t.Error("sequences must be present even when empty")
		}

		data, _ := json.Marshal(snap)
		if !strings.Contains(string(data), `"categories":[]`) {
			t.Errorf("expected empty array in JSON, got %s", data)
		}
	})
}

func TestExportToFile(t *testing.T) {
	t.Run("writes indented JSON to the given path", func(t *testing.T) {
		engine, catalog := newTestEngine(t)
		seedCatalog(t, catalog)

		path := filepath.Join(t.TempDir(), "backup.json")
		got, err := engine.ExportToFile(ScopeAll, path)
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if got != path {
			t.Errorf("expected path %s, got %s", path, got)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if _, err := ParseSnapshot(data); err != nil {
			t.Errorf("written file should round-trip: %v", err)
		}
	})

	t.Run("default filename embeds the date", func(t *testing.T) {
		engine, catalog := newTestEngine(t)
		music, _, _, _ := seedCatalog(t, catalog)

		date := time.Now().Format("2006-01-02")
		if name := engine.defaultFilename(ScopeAll, time.Now()); name != "youtube-organizer-backup-"+date+".json" {
			t.Errorf("unexpected full-export name %q", name)
		}
		if name := engine.defaultFilename(music.ID, time.Now()); name != "category-music-"+date+".json" {
			t.Errorf("unexpected scoped name %q", name)
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *models.Snapshot {
		return &models.Snapshot{
			Version:    models.SnapshotVersion,
			Categories: []models.Category{{ID: "c1", Name: "Music"}},
			Videos: []models.Video{{
				ID: "v1", ExternalRef: "aaa11111111", Title: "Track",
				CategoryIDs: models.IDSet{"c1"},
			}},
		}
	}

	t.Run("accepts a well-formed snapshot", func(t *testing.T) {
		if err := Validate(valid()); err != nil {
			t.Errorf("expected valid, got %v", err)
		}
	})

	t.Run("accepts empty sequences", func(t *testing.T) {
		snap := &models.Snapshot{Categories: []models.Category{}, Videos: []models.Video{}}
		if err := Validate(snap); err != nil {
			t.Errorf("expected valid, got %v", err)
		}
	})

	t.Run("tolerates unknown version", func(t *testing.T) {
		snap := valid()
		snap.Version = "9.9.9"
		if err := Validate(snap); err != nil {
			t.Errorf("version should not be enforced, got %v", err)
		}
	})

	t.Run("rejects missing sequences", func(t *testing.T) {
		snap := valid()
		snap.Categories = nil
		if err := Validate(snap); !errors.Is(err, shared.ErrInvalidSnapshot) {
			t.Errorf("expected ErrInvalidSnapshot, got %v", err)
		}

		snap = valid()
		snap.Videos = nil
		if err := Validate(snap); !errors.Is(err, shared.ErrInvalidSnapshot) {
			t.Errorf("expected ErrInvalidSnapshot, got %v", err)
		}
	})

	t.Run("rejects malformed entries", func(t *testing.T) {
		snap := valid()
		snap.Categories[0].Name = ""
		if err := Validate(snap); !errors.Is(err, shared.ErrInvalidSnapshot) {
			t.Errorf("expected ErrInvalidSnapshot for nameless category, got %v", err)
		}

		snap = valid()
		snap.Videos[0].CategoryIDs = nil
		if err := Validate(snap); !errors.Is(err, shared.ErrInvalidSnapshot) {
			t.Errorf("expected ErrInvalidSnapshot for video without membership sequence, got %v", err)
		}
	})
}

func TestParseSnapshot(t *testing.T) {
	t.Run("rejects non-JSON", func(t *testing.T) {
		if _, err := ParseSnapshot([]byte("not json")); !errors.Is(err, shared.ErrInvalidSnapshot) {
			t.Errorf("expected ErrInvalidSnapshot, got %v", err)
		}
	})

	t.Run("round-trips an exported snapshot", func(t *testing.T) {
		engine, catalog := newTestEngine(t)
		seedCatalog(t, catalog)

		snap, _ := engine.Export(ScopeAll)
		data, err := json.Marshal(snap)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}

		parsed, err := ParseSnapshot(data)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if len(parsed.Categories) != 2 || len(parsed.Videos) != 2 {
			t.Errorf("round trip lost entries: %d+%d", len(parsed.Categories), len(parsed.Videos))
		}
	})
}

func TestImport(t *testing.T) {
	t.Run("merge keeps current entries and adds unseen ones", func(t *testing.T) {
		engine, catalog := newTestEngine(t)
		music, _, _, _ := seedCatalog(t, catalog)

		// The snapshot carries the existing Music category under its
		// current id with a different name, plus a brand new category.
		snap := &models.Snapshot{
			Categories: []models.Category{
				{ID: music.ID, Name: "Stale Music Name"},
				{ID: "new-cat", Name: "Imported"},
			},
			Videos: []models.Video{{
				ID: "new-vid", ExternalRef: "zzz11111111", Title: "Imported Track",
				CategoryIDs: models.IDSet{"new-cat"},
			}},
		}

		result, err := engine.Import(snap, ImportMerge)
		if err != nil {
			t.Fatalf("import failed: %v", err)
		}
		if result.CategoriesAdded != 1 || result.VideosAdded != 1 {
			t.Errorf("unexpected additions: %+v", result)
		}
		if result.TotalCategories != 3 || result.TotalVideos != 3 {
			t.Errorf("unexpected totals: %+v", result)
		}

		// Current entry wins over the snapshot's version of it.
		got, _ := catalog.Categories.GetByID(music.ID)
		if got.Name != "Music" {
			t.Errorf("current category overwritten: %q", got.Name)
		}
		if _, ok := catalog.Videos.GetByID("new-vid"); !ok {
			t.Error("snapshot video not added")
		}
	})

	t.Run("merge is idempotent", func(t *testing.T) {
		engine, catalog := newTestEngine(t)
		seedCatalog(t, catalog)

		snap, _ := engine.Export(ScopeAll)

		first, err := engine.Import(&snap, ImportMerge)
		if err != nil {
			t.Fatalf("first import failed: %v", err)
		}
		if first.CategoriesAdded != 0 || first.VideosAdded != 0 {
			t.Errorf("merge of own export should add nothing: %+v", first)
		}

		second, err := engine.Import(&snap, ImportMerge)
		if err != nil {
			t.Fatalf("second import failed: %v", err)
		}
		if second.TotalCategories != first.TotalCategories || second.TotalVideos != first.TotalVideos {
			t.Errorf("repeat merge changed totals: %+v vs %+v", first, second)
		}
	})

	t.Run("replace adopts the snapshot verbatim", func(t *testing.T) {
		engine, catalog := newTestEngine(t)
		seedCatalog(t, catalog)

		snap := &models.Snapshot{
			Categories: []models.Category{{ID: "only", Name: "Only"}},
			Videos:     []models.Video{},
		}

		result, err := engine.Import(snap, ImportReplace)
		if err != nil {
			t.Fatalf("import failed: %v", err)
		}
		if result.TotalCategories != 1 || result.TotalVideos != 0 {
			t.Errorf("unexpected totals: %+v", result)
		}
		if catalog.Videos.Count() != 0 {
			t.Error("replace should discard current videos")
		}
	})

	t.Run("shrinking replace reports zero additions", func(t *testing.T) {
		engine, catalog := newTestEngine(t)
		seedCatalog(t, catalog)

		snap := &models.Snapshot{
			Categories: []models.Category{{ID: "only", Name: "Only"}},
			Videos:     []models.Video{},
		}

		result, err := engine.Import(snap, ImportReplace)
		if err != nil {
			t.Fatalf("import failed: %v", err)
		}
		if result.CategoriesAdded != 0 || result.VideosAdded != 0 {
			t.Errorf("shrink should not report negative additions: %+v", result)
		}
	})

	t.Run("invalid snapshot leaves catalog untouched", func(t *testing.T) {
		engine, catalog := newTestEngine(t)
		seedCatalog(t, catalog)

		snap := &models.Snapshot{Videos: []models.Video{}}
		if _, err := engine.Import(snap, ImportReplace); !errors.Is(err, shared.ErrInvalidSnapshot) {
			t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
		}
		if catalog.Categories.Count() != 2 || catalog.Videos.Count() != 2 {
			t.Error("rejected import mutated the catalog")
		}
	})
}

func TestImportFile(t *testing.T) {
	engine, catalog := newTestEngine(t)
	seedCatalog(t, catalog)

	path := filepath.Join(t.TempDir(), "backup.json")
	if _, err := engine.ExportToFile(ScopeAll, path); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	result, err := engine.ImportFile(path, ImportMerge)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.CategoriesAdded != 0 || result.VideosAdded != 0 {
		t.Errorf("importing own export should add nothing: %+v", result)
	}

	if _, err := engine.ImportFile(filepath.Join(t.TempDir(), "missing.json"), ImportMerge); err == nil {
		t.Error("expected error for missing file")
	}
}
