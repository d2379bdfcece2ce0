package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/bmoreira/tubecrate/internal/models"
	"github.com/bmoreira/tubecrate/internal/shared"
	"github.com/bmoreira/tubecrate/internal/storage"
	"github.com/charmbracelet/log"
)

// VideoRepository owns the collection of video records and each
// record's set of category memberships.
type VideoRepository struct {
	store  *storage.Store
	logger *log.Logger

	mu     sync.RWMutex
	videos []models.Video
}

// NewVideoRepository creates a repository hydrated from the store.
func NewVideoRepository(store *storage.Store, logger *log.Logger) *VideoRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	r := &VideoRepository{store: store, logger: logger}
	if !store.Read(storage.KeyVideos, &r.videos) {
		r.videos = []models.Video{}
	}
	return r
}

// Create builds a new unwatched, non-favorite record from fetched
// metadata, belonging to exactly one category, and persists.
func (r *VideoRepository) Create(meta models.VideoMetadata, categoryID string) models.Video {
	r.mu.Lock()
	defer r.mu.Unlock()

	video := models.Video{
		ID:          shared.GenerateID(),
		ExternalRef: meta.ExternalRef,
		AddedAt:     time.Now(),
		CategoryIDs: models.IDSet{categoryID},
	}
	video.ApplyMetadata(meta)

	r.videos = append(r.videos, video)
	r.persist()

	r.logger.Info("added video", "id", video.ID, "title", video.Title, "category", categoryID)
	return video
}

// Update overwrites a video's descriptive metadata with a fresh fetch.
func (r *VideoRepository) Update(id string, meta models.VideoMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("update %s: %w", id, shared.ErrVideoNotFound)
	}

	r.videos[idx].ApplyMetadata(meta)
	r.persist()
	return nil
}

// Delete removes the video record.
func (r *VideoRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete %s: %w", id, shared.ErrVideoNotFound)
	}

	r.videos = append(r.videos[:idx], r.videos[idx+1:]...)
	r.persist()
	return nil
}

// DeleteMany removes every matching record; unknown ids are skipped.
func (r *VideoRepository) DeleteMany(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := toSet(ids)
	kept := r.videos[:0]
	for _, v := range r.videos {
		if !drop[v.ID] {
			kept = append(kept, v)
		}
	}
	r.videos = kept
	r.persist()
}

// ToggleWatched flips the watched flag.
func (r *VideoRepository) ToggleWatched(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("toggle watched %s: %w", id, shared.ErrVideoNotFound)
	}

	r.videos[idx].Watched = !r.videos[idx].Watched
	r.persist()
	return nil
}

// ToggleFavorite flips the favorite flag.
func (r *VideoRepository) ToggleFavorite(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("toggle favorite %s: %w", id, shared.ErrVideoNotFound)
	}

	r.videos[idx].Favorite = !r.videos[idx].Favorite
	r.persist()
	return nil
}

// SetWatchedMany sets (not toggles) the watched flag on every matching
// record; unknown ids are skipped.
func (r *VideoRepository) SetWatchedMany(ids []string, watched bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	match := toSet(ids)
	for i := range r.videos {
		if match[r.videos[i].ID] {
			r.videos[i].Watched = watched
		}
	}
	r.persist()
}

// AddToCategory idempotently inserts categoryID into the video's
// membership set (the UI's "copy" operation).
func (r *VideoRepository) AddToCategory(id, categoryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("copy %s: %w", id, shared.ErrVideoNotFound)
	}

	r.videos[idx].CategoryIDs = r.videos[idx].CategoryIDs.Add(categoryID)
	r.persist()
	return nil
}

// AddManyToCategory is the bulk form of AddToCategory; unknown ids are skipped.
func (r *VideoRepository) AddManyToCategory(ids []string, categoryID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	match := toSet(ids)
	for i := range r.videos {
		if match[r.videos[i].ID] {
			r.videos[i].CategoryIDs = r.videos[i].CategoryIDs.Add(categoryID)
		}
	}
	r.persist()
}

// MoveToCategory removes fromCategoryID and idempotently inserts
// toCategoryID as one uninterrupted step, so the video is never
// observed missing both edges. Moving within the same category is a
// net no-op on the edge set.
func (r *VideoRepository) MoveToCategory(id, fromCategoryID, toCategoryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("move %s: %w", id, shared.ErrVideoNotFound)
	}

	moveEdge(&r.videos[idx], fromCategoryID, toCategoryID)
	r.persist()
	return nil
}

// MoveManyToCategory is the bulk form of MoveToCategory; unknown ids are skipped.
func (r *VideoRepository) MoveManyToCategory(ids []string, fromCategoryID, toCategoryID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	match := toSet(ids)
	for i := range r.videos {
		if match[r.videos[i].ID] {
			moveEdge(&r.videos[i], fromCategoryID, toCategoryID)
		}
	}
	r.persist()
}

// RemoveCategoryEdge strips categoryID from every video's membership
// set. Videos survive, possibly as orphans.
func (r *VideoRepository) RemoveCategoryEdge(categoryID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.videos {
		r.videos[i].CategoryIDs = r.videos[i].CategoryIDs.Remove(categoryID)
	}
	r.persist()
}

// PurgeCategory strips categoryID from every video and deletes the
// videos left with no memberships by that strip, all within one
// mutation. Pre-existing orphans are untouched. Returns the number of
// videos deleted.
func (r *VideoRepository) PurgeCategory(categoryID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	kept := r.videos[:0]
	for _, v := range r.videos {
		if v.CategoryIDs.Has(categoryID) {
			v.CategoryIDs = v.CategoryIDs.Remove(categoryID)
			if v.Orphan() {
				deleted++
				continue
			}
		}
		kept = append(kept, v)
	}
	r.videos = kept
	r.persist()
	return deleted
}

// DeleteOrphans removes every video with an empty membership set and
// returns how many were removed.
func (r *VideoRepository) DeleteOrphans() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	kept := r.videos[:0]
	for _, v := range r.videos {
		if v.Orphan() {
			deleted++
			continue
		}
		kept = append(kept, v)
	}
	r.videos = kept
	r.persist()

	if deleted > 0 {
		r.logger.Info("removed orphan videos", "count", deleted)
	}
	return deleted
}

// GetByID returns a copy of the video with the given id.
func (r *VideoRepository) GetByID(id string) (models.Video, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.indexOf(id); idx >= 0 {
		return cloneVideo(r.videos[idx]), true
	}
	return models.Video{}, false
}

// GetByCategory returns copies of every video belonging to categoryID,
// in insertion order.
func (r *VideoRepository) GetByCategory(categoryID string) []models.Video {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Video{}
	for _, v := range r.videos {
		if v.CategoryIDs.Has(categoryID) {
			out = append(out, cloneVideo(v))
		}
	}
	return out
}

// Orphans returns copies of every video with no memberships.
func (r *VideoRepository) Orphans() []models.Video {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Video{}
	for _, v := range r.videos {
		if v.Orphan() {
			out = append(out, cloneVideo(v))
		}
	}
	return out
}

// CountsByCategory maps category id to the number of member videos. A
// video with N memberships increments N counters.
func (r *VideoRepository) CountsByCategory() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, v := range r.videos {
		for _, catID := range v.CategoryIDs {
			counts[catID]++
		}
	}
	return counts
}

// All returns a copy of the collection in insertion order.
func (r *VideoRepository) All() []models.Video {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Video, len(r.videos))
	for i, v := range r.videos {
		out[i] = cloneVideo(v)
	}
	return out
}

// Count returns the number of videos.
func (r *VideoRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.videos)
}

// ReplaceAll swaps the entire collection, used by snapshot import.
func (r *VideoRepository) ReplaceAll(videos []models.Video) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.videos = make([]models.Video, len(videos))
	for i, v := range videos {
		r.videos[i] = cloneVideo(v)
	}
	r.persist()
}

func (r *VideoRepository) indexOf(id string) int {
	for i := range r.videos {
		if r.videos[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *VideoRepository) persist() {
	if err := r.store.Write(storage.KeyVideos, r.videos); err != nil {
		r.logger.Error("failed to persist videos; changes will not survive a restart", "err", err)
	}
}

func moveEdge(v *models.Video, fromCategoryID, toCategoryID string) {
	if fromCategoryID == toCategoryID {
		return
	}
	v.CategoryIDs = v.CategoryIDs.Remove(fromCategoryID).Add(toCategoryID)
}

func cloneVideo(v models.Video) models.Video {
	v.CategoryIDs = v.CategoryIDs.Clone()
	return v
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
