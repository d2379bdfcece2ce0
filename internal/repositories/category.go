package repositories

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bmoreira/tubecrate/internal/models"
	"github.com/bmoreira/tubecrate/internal/shared"
	"github.com/bmoreira/tubecrate/internal/storage"
	"github.com/charmbracelet/log"
)

// Category name bounds, after trimming.
const (
	minNameLength = 2
	maxNameLength = 50
)

// CategoryRepository owns the ordered collection of categories.
type CategoryRepository struct {
	store  *storage.Store
	logger *log.Logger

	mu         sync.RWMutex
	categories []models.Category
}

// NewCategoryRepository creates a repository hydrated from the store.
// An absent or undecodable record yields an empty collection.
func NewCategoryRepository(store *storage.Store, logger *log.Logger) *CategoryRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	r := &CategoryRepository{store: store, logger: logger}
	if !store.Read(storage.KeyCategories, &r.categories) {
		r.categories = []models.Category{}
	}
	return r
}

// Create validates name, appends a new category with a fresh id and the
// current timestamp, and persists the collection.
func (r *CategoryRepository) Create(name string) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trimmed, err := r.validateName(name, "")
	if err != nil {
		return models.Category{}, err
	}

	category := models.Category{
		ID:        shared.GenerateID(),
		Name:      trimmed,
		CreatedAt: time.Now(),
	}

	r.categories = append(r.categories, category)
	r.persist()

	r.logger.Info("created category", "id", category.ID, "name", category.Name)
	return category, nil
}

// Rename applies the same validation as Create, excluding the renamed
// category from the duplicate check.
func (r *CategoryRepository) Rename(id, newName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("rename %s: %w", id, shared.ErrCategoryNotFound)
	}

	trimmed, err := r.validateName(newName, id)
	if err != nil {
		return err
	}

	r.categories[idx].Name = trimmed
	r.persist()
	return nil
}

// Delete removes the category record. Cascading the membership edges is
// the Catalog's job; use [Catalog.DeleteCategory] from application code.
func (r *CategoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete %s: %w", id, shared.ErrCategoryNotFound)
	}

	r.categories = append(r.categories[:idx], r.categories[idx+1:]...)
	r.persist()
	return nil
}

// GetByID returns the category with the given id.
func (r *CategoryRepository) GetByID(id string) (models.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.indexOf(id); idx >= 0 {
		return r.categories[idx], true
	}
	return models.Category{}, false
}

// Exists reports whether a category with the given name exists,
// compared case-insensitively against the trimmed input.
func (r *CategoryRepository) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findByName(strings.TrimSpace(name), "") >= 0
}

// All returns a copy of the collection in insertion order.
func (r *CategoryRepository) All() []models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Count returns the number of categories.
func (r *CategoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.categories)
}

// ReplaceAll swaps the entire collection, used by snapshot import.
func (r *CategoryRepository) ReplaceAll(categories []models.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories = make([]models.Category, len(categories))
	copy(r.categories, categories)
	r.persist()
}

// validateName trims name and enforces length and case-insensitive
// uniqueness. excludeID skips one category in the duplicate check (the
// one being renamed). Callers must hold the lock.
func (r *CategoryRepository) validateName(name, excludeID string) (string, error) {
	trimmed := strings.TrimSpace(name)

	switch {
	case trimmed == "":
		return "", fmt.Errorf("%w: %w", shared.ErrValidation, shared.ErrEmptyName)
	case utf8.RuneCountInString(trimmed) < minNameLength:
		return "", fmt.Errorf("%w: %w", shared.ErrValidation, shared.ErrNameTooShort)
	case utf8.RuneCountInString(trimmed) > maxNameLength:
		return "", fmt.Errorf("%w: %w", shared.ErrValidation, shared.ErrNameTooLong)
	}

	if r.findByName(trimmed, excludeID) >= 0 {
		return "", fmt.Errorf("%w: %w", shared.ErrValidation, shared.ErrDuplicateName)
	}

	return trimmed, nil
}

func (r *CategoryRepository) indexOf(id string) int {
	for i := range r.categories {
		if r.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *CategoryRepository) findByName(name, excludeID string) int {
	for i := range r.categories {
		if r.categories[i].ID == excludeID {
			continue
		}
		if strings.EqualFold(r.categories[i].Name, name) {
			return i
		}
	}
	return -1
}

func (r *CategoryRepository) persist() {
	if err := r.store.Write(storage.KeyCategories, r.categories); err != nil {
		r.logger.Error("failed to persist categories; changes will not survive a restart", "err", err)
	}
}
