package tasks

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bmoreira/tubecrate/internal/models"
	"github.com/bmoreira/tubecrate/internal/repositories"
	"github.com/bmoreira/tubecrate/internal/shared"
	"github.com/charmbracelet/log"
)

// ImportMode selects the reconciliation strategy for an import.
type ImportMode int

const (
	// ImportMerge keeps all current data and adds only snapshot entries
	// with previously unseen ids.
	ImportMerge ImportMode = iota

	// ImportReplace discards current data and adopts the snapshot verbatim.
	ImportReplace
)

// ImportResult summarizes what an import changed.
type ImportResult struct {
	CategoriesAdded int
	VideosAdded     int
	TotalCategories int
	TotalVideos     int
}

// BackupEngine applies snapshot exports and imports to the catalog.
type BackupEngine struct {
	catalog *repositories.Catalog
	logger  *log.Logger
}

// NewBackupEngine creates an engine bound to the given catalog.
func NewBackupEngine(catalog *repositories.Catalog, logger *log.Logger) *BackupEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &BackupEngine{catalog: catalog, logger: logger}
}

// Export produces a snapshot of the current collections. scope is
// ScopeAll or a category id; an unknown category id is an error rather
// than an empty snapshot.
func (e *BackupEngine) Export(scope string) (models.Snapshot, error) {
	if scope != ScopeAll {
		if _, ok := e.catalog.Categories.GetByID(scope); !ok {
			return models.Snapshot{}, fmt.Errorf("export scope %s: %w", scope, shared.ErrCategoryNotFound)
		}
	}
	return Export(e.catalog.Categories.All(), e.catalog.Videos.All(), scope), nil
}

// ExportToFile writes a snapshot as indented JSON. An empty path picks
// a default name in the working directory; the chosen path is returned.
func (e *BackupEngine) ExportToFile(scope, path string) (string, error) {
	snap, err := e.Export(scope)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = e.defaultFilename(scope, snap.ExportedAt)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	e.logger.Info("exported snapshot", "path", path, "categories", len(snap.Categories), "videos", len(snap.Videos))
	return path, nil
}

// Import validates the snapshot and applies it with the given mode.
// Validation failures leave the catalog untouched.
func (e *BackupEngine) Import(snap *models.Snapshot, mode ImportMode) (*ImportResult, error) {
	if err := Validate(snap); err != nil {
		return nil, err
	}

	currentCats := e.catalog.Categories.All()
	currentVids := e.catalog.Videos.All()

	var cats []models.Category
	var vids []models.Video
	if mode == ImportReplace {
		cats, vids = Replace(snap)
	} else {
		cats, vids = Merge(snap, currentCats, currentVids)
	}

	e.catalog.Categories.ReplaceAll(cats)
	e.catalog.Videos.ReplaceAll(vids)

	// A replace can shrink the collections; the Added counters report
	// growth only, never a negative delta.
	result := &ImportResult{
		CategoriesAdded: max(len(cats)-len(currentCats), 0),
		VideosAdded:     max(len(vids)-len(currentVids), 0),
		TotalCategories: len(cats),
		TotalVideos:     len(vids),
	}
	e.logger.Info("imported snapshot",
		"mode", modeName(mode),
		"categories", result.TotalCategories,
		"videos", result.TotalVideos)
	return result, nil
}

// ImportFile reads, validates, and applies a snapshot file.
func (e *BackupEngine) ImportFile(path string, mode ImportMode) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	snap, err := ParseSnapshot(data)
	if err != nil {
		return nil, err
	}

	return e.Import(snap, mode)
}

// defaultFilename mirrors the names the browser build produced:
// youtube-organizer-backup-YYYY-MM-DD.json for full exports,
// category-<name>-YYYY-MM-DD.json for scoped ones.
func (e *BackupEngine) defaultFilename(scope string, at time.Time) string {
	date := at.Format("2006-01-02")
	if scope == ScopeAll {
		return fmt.Sprintf("youtube-organizer-backup-%s.json", date)
	}

	name := scope
	if cat, ok := e.catalog.Categories.GetByID(scope); ok {
		name = cat.Name
	}
	return fmt.Sprintf("category-%s-%s.json", shared.SafeFilename(name), date)
}

func modeName(mode ImportMode) string {
	if mode == ImportReplace {
		return "replace"
	}
	return "merge"
}
