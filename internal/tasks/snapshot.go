package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bmoreira/tubecrate/internal/models"
	"github.com/bmoreira/tubecrate/internal/shared"
)

// ScopeAll selects every category and video for export. Any other
// scope value is taken as a category id.
const ScopeAll = "all"

// Export builds a snapshot of the given collections. A category-scoped
// export keeps only that category and the videos holding an edge to it;
// selected videos carry their full record, including memberships in
// other categories.
func Export(categories []models.Category, videos []models.Video, scope string) models.Snapshot {
	snap := models.Snapshot{
		Version:    models.SnapshotVersion,
		ExportedAt: time.Now(),
	}

	if scope == ScopeAll {
		snap.Categories = append([]models.Category{}, categories...)
		snap.Videos = cloneVideos(videos)
		return snap
	}

	snap.Categories = []models.Category{}
	for _, c := range categories {
		if c.ID == scope {
			snap.Categories = append(snap.Categories, c)
		}
	}

	snap.Videos = []models.Video{}
	for _, v := range videos {
		if v.CategoryIDs.Has(scope) {
			snap.Videos = append(snap.Videos, cloneVideo(v))
		}
	}
	return snap
}

// ParseSnapshot decodes UTF-8 snapshot text and validates its structure.
func ParseSnapshot(data []byte) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidSnapshot, err)
	}
	if err := Validate(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Validate checks the structural shape of a snapshot: categories and
// videos must be present as sequences, every category must carry an id
// and a name, every video an id, external reference, title, and a
// category id sequence. Validation never mutates anything.
func Validate(snap *models.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: no data", shared.ErrInvalidSnapshot)
	}
	if snap.Categories == nil {
		return fmt.Errorf(`%w: missing "categories"`, shared.ErrInvalidSnapshot)
	}
	if snap.Videos == nil {
		return fmt.Errorf(`%w: missing "videos"`, shared.ErrInvalidSnapshot)
	}

	for i, c := range snap.Categories {
		if c.ID == "" || c.Name == "" {
			return fmt.Errorf("%w: category %d is malformed", shared.ErrInvalidSnapshot, i)
		}
	}

	for i, v := range snap.Videos {
		if v.ID == "" || v.ExternalRef == "" || v.Title == "" || v.CategoryIDs == nil {
			return fmt.Errorf("%w: video %d is malformed", shared.ErrInvalidSnapshot, i)
		}
	}

	return nil
}

// Merge unions the snapshot into the current collections keyed by id:
// current entries always win, snapshot entries with unseen ids are
// appended in snapshot order. Merging the same snapshot twice yields
// the same result as merging it once.
func Merge(snap *models.Snapshot, categories []models.Category, videos []models.Video) ([]models.Category, []models.Video) {
	mergedCats := append([]models.Category{}, categories...)
	seenCats := make(map[string]bool, len(categories))
	for _, c := range categories {
		seenCats[c.ID] = true
	}
	for _, c := range snap.Categories {
		if !seenCats[c.ID] {
			mergedCats = append(mergedCats, c)
			seenCats[c.ID] = true
		}
	}

	mergedVids := cloneVideos(videos)
	seenVids := make(map[string]bool, len(videos))
	for _, v := range videos {
		seenVids[v.ID] = true
	}
	for _, v := range snap.Videos {
		if !seenVids[v.ID] {
			mergedVids = append(mergedVids, cloneVideo(v))
			seenVids[v.ID] = true
		}
	}

	return mergedCats, mergedVids
}

// Replace discards the current collections and adopts the snapshot's
// verbatim. Callers validate first.
func Replace(snap *models.Snapshot) ([]models.Category, []models.Video) {
	return append([]models.Category{}, snap.Categories...), cloneVideos(snap.Videos)
}

func cloneVideo(v models.Video) models.Video {
	v.CategoryIDs = v.CategoryIDs.Clone()
	return v
}

func cloneVideos(videos []models.Video) []models.Video {
	out := make([]models.Video, len(videos))
	for i, v := range videos {
		out[i] = cloneVideo(v)
	}
	return out
}
