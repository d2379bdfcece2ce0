// Package storage implements the local key-value persistence layer.
//
// Values are JSON blobs stored under well-known keys in a single bbolt
// bucket. The store is capacity-bounded: writes that would push the
// total stored size past the configured limit fail with
// [shared.ErrStorageFull] instead of growing the file. Reads never
// fail; an absent or undecodable value leaves the caller's fallback in
// place. Callers are expected to keep their in-memory collections
// authoritative and treat persistence as best-effort.
package storage

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
	"unicode/utf16"

	"github.com/bmoreira/tubecrate/internal/shared"
	"github.com/charmbracelet/log"
	bolt "go.etcd.io/bbolt"
)

// Well-known keys. The names are carried over from the original browser
// build so a converted localStorage dump maps one-to-one.
const (
	KeyCategories = "yt_organizer_categories"
	KeyVideos     = "yt_organizer_videos"
	KeySettings   = "yt_organizer_settings"
)

// DefaultLimit is the default capacity bound in bytes (~5MB, the
// localStorage quota the layout was designed around).
const DefaultLimit = 5 * 1024 * 1024

var bucketRecords = []byte("records")

// Options configures a Store.
type Options struct {
	// Limit is the capacity bound in bytes. Zero means DefaultLimit.
	Limit int
	// Logger receives decode/write failure reports. Nil means a default logger.
	Logger *log.Logger
}

// Store is a capacity-bounded key-value store backed by bbolt, with an
// in-memory mirror so reads after a failed disk write still observe the
// session's state.
type Store struct {
	db     *bolt.DB
	limit  int
	logger *log.Logger

	mu    sync.RWMutex
	cache map[string][]byte
}

// Open opens (or creates) the store at path. An empty path yields a
// memory-only store with no persistence, which tests rely on.
func Open(path string, opts Options) (*Store, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	s := &Store{limit: opts.Limit, logger: opts.Logger, cache: make(map[string][]byte)}

	if path == "" {
		return s, nil
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecords)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	s.db = db

	// Warm the mirror so Usage and capacity checks see persisted data.
	db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRecords).ForEach(func(k, v []byte) error {
			data := make([]byte, len(v))
			copy(data, v)
			s.cache[string(k)] = data
			return nil
		})
	})

	return s, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Read unmarshals the value stored under key into dest. It returns
// false (leaving dest untouched beyond a failed unmarshal attempt) when
// the key is absent or the stored value cannot be decoded; decode
// failures are logged, never surfaced.
func (s *Store) Read(key string, dest any) bool {
	s.mu.RLock()
	data, ok := s.cache[key]
	s.mu.RUnlock()

	if !ok {
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Error("failed to decode stored value", "key", key, "err", err)
		return false
	}
	return true
}

// Write serializes value and stores it under key. The in-memory mirror
// is always updated so the session keeps its state; the error reports a
// capacity or disk failure the caller may log and otherwise ignore.
func (s *Store) Write(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}

	if s.wouldExceedLimit(key, data) {
		return fmt.Errorf("cannot store %s (%d bytes): %w", key, utf16Size(data), shared.ErrStorageFull)
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRecords).Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

// Remove deletes the value stored under key, if any.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRecords).Delete([]byte(key))
	})
}

// Clear removes every application key.
func (s *Store) Clear() {
	for _, key := range []string{KeyCategories, KeyVideos, KeySettings} {
		s.Remove(key)
	}
}

// Usage describes current capacity consumption.
type Usage struct {
	Used       int     // bytes currently stored
	Total      int     // capacity bound in bytes
	Percentage float64 // Used/Total * 100
}

// Usage reports the store's capacity consumption.
func (s *Store) Usage() Usage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	used := 0
	for k, v := range s.cache {
		used += utf16Size([]byte(k)) + utf16Size(v)
	}
	return Usage{Used: used, Total: s.limit, Percentage: float64(used) / float64(s.limit) * 100}
}

func (s *Store) wouldExceedLimit(key string, data []byte) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	used := 0
	for k, v := range s.cache {
		if k == key {
			continue
		}
		used += utf16Size([]byte(k)) + utf16Size(v)
	}
	return used+utf16Size([]byte(key))+utf16Size(data) > s.limit
}

// utf16Size returns the size of data in bytes when encoded as UTF-16,
// matching how browsers account localStorage quota. ASCII-only JSON
// comes out at exactly 2x its UTF-8 length.
func utf16Size(data []byte) int {
	return 2 * len(utf16.Encode([]rune(string(data))))
}
