package services

import (
	"context"

	"github.com/bmoreira/tubecrate/internal/models"
)

// MetadataService fetches descriptive metadata for an external video
// reference. Implementations fail with the typed errors in
// internal/shared (invalid credential, quota exceeded, not found,
// request failure).
type MetadataService interface {
	// FetchVideo resolves an external video reference to its metadata.
	FetchVideo(ctx context.Context, externalRef string) (*models.VideoMetadata, error)

	// TestAPIKey probes the API with a known public video to verify the
	// configured credential works.
	TestAPIKey(ctx context.Context) error

	// Name returns the provider name.
	Name() string
}
