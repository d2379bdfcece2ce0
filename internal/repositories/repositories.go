package repositories

import (
	"fmt"

	"github.com/bmoreira/tubecrate/internal/models"
	"github.com/bmoreira/tubecrate/internal/shared"
	"github.com/bmoreira/tubecrate/internal/storage"
	"github.com/charmbracelet/log"
)

// CascadeMode selects what happens to member videos when their
// category is deleted. Both modes strip the membership edge from every
// video in the same call, so a dangling edge never survives a category
// deletion.
type CascadeMode int

const (
	// CascadeKeepOrphans strips the edges and keeps the videos; those
	// left with no memberships become orphans reachable by a later
	// sweep.
	CascadeKeepOrphans CascadeMode = iota

	// CascadeDeleteOrphans strips the edges and deletes the videos
	// orphaned by the strip. Videos with other memberships survive.
	CascadeDeleteOrphans
)

// Catalog binds the two repositories and owns every mutation that
// crosses the category/video boundary.
type Catalog struct {
	Categories *CategoryRepository
	Videos     *VideoRepository

	logger *log.Logger
}

// NewCatalog hydrates both repositories from the store.
func NewCatalog(store *storage.Store, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Catalog{
		Categories: NewCategoryRepository(store, logger),
		Videos:     NewVideoRepository(store, logger),
		logger:     logger,
	}
}

// AddVideo creates a video from fetched metadata inside an existing category.
func (c *Catalog) AddVideo(meta models.VideoMetadata, categoryID string) (models.Video, error) {
	if _, ok := c.Categories.GetByID(categoryID); !ok {
		return models.Video{}, fmt.Errorf("add video to %s: %w", categoryID, shared.ErrCategoryNotFound)
	}
	return c.Videos.Create(meta, categoryID), nil
}

// DeleteCategory removes the category and cascades per mode.
func (c *Catalog) DeleteCategory(id string, mode CascadeMode) error {
	if _, ok := c.Categories.GetByID(id); !ok {
		return fmt.Errorf("delete category %s: %w", id, shared.ErrCategoryNotFound)
	}

	switch mode {
	case CascadeDeleteOrphans:
		deleted := c.Videos.PurgeCategory(id)
		c.logger.Info("deleted category videos", "category", id, "count", deleted)
	default:
		c.Videos.RemoveCategoryEdge(id)
	}

	return c.Categories.Delete(id)
}
