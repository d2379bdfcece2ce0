// Package repositories implements the in-memory entity stores for
// categories and videos and their best-effort persistence.
//
// Each repository exclusively owns its collection: callers receive
// copies, never a mutable handle into internal state. Every mutating
// operation re-persists the full collection synchronously before
// returning; a persistence failure is logged and swallowed, leaving the
// in-memory collection authoritative for the session.
//
// Missing-id discipline: single-id mutators return
// [shared.ErrVideoNotFound] / [shared.ErrCategoryNotFound]; bulk
// variants silently skip unknown ids and never fail as a whole.
package repositories
