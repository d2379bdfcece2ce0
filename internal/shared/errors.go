package shared

import "fmt"

var (
	// Validation errors
	ErrValidation      = fmt.Errorf("validation failed")
	ErrEmptyName       = fmt.Errorf("category name cannot be empty")
	ErrNameTooShort    = fmt.Errorf("category name must be at least 2 characters")
	ErrNameTooLong     = fmt.Errorf("category name must be at most 50 characters")
	ErrDuplicateName   = fmt.Errorf("a category with this name already exists")
	ErrInvalidSnapshot = fmt.Errorf("invalid snapshot structure")

	// Lookup errors
	ErrCategoryNotFound = fmt.Errorf("category not found")
	ErrVideoNotFound    = fmt.Errorf("video not found")

	// Persistence errors (non-fatal; in-memory state stays authoritative)
	ErrStorageFull    = fmt.Errorf("storage capacity exceeded")
	ErrStorageCorrupt = fmt.Errorf("stored value could not be decoded")

	// Metadata API errors
	ErrMissingAPIKey   = fmt.Errorf("missing API key")
	ErrInvalidAPIKey   = fmt.Errorf("invalid API key")
	ErrQuotaExceeded   = fmt.Errorf("API quota exceeded")
	ErrMetadataMissing = fmt.Errorf("video not found or is private")
	ErrAPIRequest      = fmt.Errorf("API request failed")
	ErrInvalidVideoURL = fmt.Errorf("invalid YouTube URL or video ID")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
