// Package models defines the persisted entities of the video organizer.
//
// Two collections exist: categories (named grouping buckets) and videos
// (references to externally hosted videos plus user state). Their
// relationship is many-to-many through each video's category id set.
// Snapshot is the self-contained export/import representation of both
// collections.
package models
