// Package services defines the metadata fetch collaborator consumed at
// video-creation time, and its YouTube Data API v3 implementation. The
// core stores fetched metadata verbatim and never retries or caches on
// the collaborator's behalf.
package services
