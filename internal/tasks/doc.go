// Package tasks implements snapshot reconciliation: exporting the
// category and video collections into a portable snapshot, validating
// externally supplied snapshots, and applying them back through merge
// or replace semantics.
//
// The pure snapshot algebra (Export, Validate, Merge) lives in
// snapshot.go and never touches store state; BackupEngine orchestrates
// it against the repositories and the filesystem.
package tasks
