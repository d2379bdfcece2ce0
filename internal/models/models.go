package models

import "time"

// Category is a user-defined grouping bucket for videos.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// VideoMetadata is the descriptive data fetched once from the metadata
// API at creation time and stored verbatim on the video record.
type VideoMetadata struct {
	ExternalRef  string    `json:"externalRef"`
	Title        string    `json:"title"`
	Channel      string    `json:"channel"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	ViewCount    int64     `json:"viewCount"`
	Duration     string    `json:"durationIso8601"`
	PublishedAt  time.Time `json:"publishedAt"`
	Description  string    `json:"description"`
}

// Video is a stored reference to an externally hosted video plus
// user-assigned state and category memberships.
type Video struct {
	ID           string    `json:"id"`
	ExternalRef  string    `json:"externalRef"`
	Title        string    `json:"title"`
	Channel      string    `json:"channel"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	ViewCount    int64     `json:"viewCount"`
	Duration     string    `json:"durationIso8601"`
	PublishedAt  time.Time `json:"publishedAt"`
	Description  string    `json:"description"`
	AddedAt      time.Time `json:"addedAt"`
	Watched      bool      `json:"watched"`
	Favorite     bool      `json:"favorite"`
	CategoryIDs  IDSet     `json:"categoryIds"`
}

// ApplyMetadata overwrites the descriptive fields with freshly fetched
// metadata. User state and memberships are untouched.
func (v *Video) ApplyMetadata(meta VideoMetadata) {
	v.Title = meta.Title
	v.Channel = meta.Channel
	v.ThumbnailURL = meta.ThumbnailURL
	v.ViewCount = meta.ViewCount
	v.Duration = meta.Duration
	v.PublishedAt = meta.PublishedAt
	v.Description = meta.Description
}

// Orphan reports whether the video has no category memberships.
func (v *Video) Orphan() bool {
	return len(v.CategoryIDs) == 0
}

// Settings is the user-preferences record persisted alongside the
// collections. Preferences set at runtime override config.toml defaults.
type Settings struct {
	DefaultSort string `json:"defaultSort"`
}

// SnapshotVersion is the format version written into every snapshot.
const SnapshotVersion = "1.0.0"

// Snapshot is a self-contained copy of both collections, used for
// export and import.
type Snapshot struct {
	Version    string     `json:"version"`
	ExportedAt time.Time  `json:"exportedAt"`
	Categories []Category `json:"categories"`
	Videos     []Video    `json:"videos"`
}
