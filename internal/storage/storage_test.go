package storage

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/bmoreira/tubecrate/internal/shared"
)

// newMemStore creates a memory-only store with a quiet logger
func newMemStore(t *testing.T, limit int) *Store {
	t.Helper()

	s, err := Open("", Options{Limit: limit, Logger: shared.NewLogger(io.Discard)})
	if err != nil {
		t.Fatalf("failed to open memory store: %v", err)
	}
	return s
}

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStore(t *testing.T) {
	t.Run("Read", func(t *testing.T) {
		t.Run("returns written value", func(t *testing.T) {
			s := newMemStore(t, 0)

			if err := s.Write("key", record{Name: "tutorials", Count: 3}); err != nil {
				t.Fatalf("write failed: %v", err)
			}

			var got record
			if !s.Read("key", &got) {
				t.Fatal("expected read to succeed")
			}
			if got.Name != "tutorials" || got.Count != 3 {
				t.Errorf("unexpected value: %+v", got)
			}
		})

		t.Run("returns false for absent key", func(t *testing.T) {
			s := newMemStore(t, 0)

			got := record{Name: "fallback"}
			if s.Read("missing", &got) {
				t.Fatal("expected read to fail")
			}
			if got.Name != "fallback" {
				t.Errorf("expected fallback to survive, got %+v", got)
			}
		})

		t.Run("returns false on undecodable value", func(t *testing.T) {
			s := newMemStore(t, 0)

			if err := s.Write("key", "just a string"); err != nil {
				t.Fatalf("write failed: %v", err)
			}

			var got []record
			if s.Read("key", &got) {
				t.Fatal("expected decode failure to report false")
			}
		})

		t.Run("write is immediately visible", func(t *testing.T) {
			s := newMemStore(t, 0)

			for i := 0; i < 3; i++ {
				if err := s.Write("key", record{Count: i}); err != nil {
					t.Fatalf("write %d failed: %v", i, err)
				}
				var got record
				if !s.Read("key", &got) || got.Count != i {
					t.Fatalf("read after write %d returned %+v", i, got)
				}
			}
		})
	})

	t.Run("Write", func(t *testing.T) {
		t.Run("rejects values past the capacity bound", func(t *testing.T) {
			s := newMemStore(t, 64)

			big := make([]record, 100)
			err := s.Write("key", big)
			if err == nil {
				t.Fatal("expected capacity error")
			}
			if !errors.Is(err, shared.ErrStorageFull) {
				t.Errorf("expected ErrStorageFull, got %v", err)
			}
		})

		t.Run("counts replacement against the bound, not addition", func(t *testing.T) {
			s := newMemStore(t, 70)

			if err := s.Write("key", record{Name: "first"}); err != nil {
				t.Fatalf("first write failed: %v", err)
			}
			// Rewriting the same key must not double-count the old value.
			if err := s.Write("key", record{Name: "second"}); err != nil {
				t.Fatalf("rewrite failed: %v", err)
			}
		})

		t.Run("failed write leaves previous value readable", func(t *testing.T) {
			s := newMemStore(t, 120)

			if err := s.Write("key", record{Name: "small"}); err != nil {
				t.Fatalf("write failed: %v", err)
			}

			big := make([]record, 100)
			if err := s.Write("key", big); err == nil {
				t.Fatal("expected capacity error")
			}

			var got record
			if !s.Read("key", &got) || got.Name != "small" {
				t.Errorf("expected previous value to survive, got %+v", got)
			}
		})
	})

	t.Run("Remove", func(t *testing.T) {
		s := newMemStore(t, 0)

		if err := s.Write("key", record{}); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		s.Remove("key")

		var got record
		if s.Read("key", &got) {
			t.Error("expected key to be gone")
		}

		// Removing an absent key is a no-op.
		s.Remove("missing")
	})

	t.Run("Usage", func(t *testing.T) {
		s := newMemStore(t, 1000)

		if u := s.Usage(); u.Used != 0 || u.Total != 1000 {
			t.Errorf("unexpected empty usage: %+v", u)
		}

		if err := s.Write("key", record{Name: "x"}); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		u := s.Usage()
		if u.Used == 0 {
			t.Error("expected non-zero usage after write")
		}
		if u.Percentage <= 0 {
			t.Errorf("expected positive percentage, got %f", u.Percentage)
		}
	})

	t.Run("persistence round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.db")
		logger := shared.NewLogger(io.Discard)

		s, err := Open(path, Options{Logger: logger})
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		if err := s.Write(KeyCategories, []record{{Name: "music", Count: 1}}); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if err := s.Close(); err != nil {
			t.Fatalf("close failed: %v", err)
		}

		reopened, err := Open(path, Options{Logger: logger})
		if err != nil {
			t.Fatalf("failed to reopen store: %v", err)
		}
		defer reopened.Close()

		var got []record
		if !reopened.Read(KeyCategories, &got) {
			t.Fatal("expected persisted value to be readable")
		}
		if len(got) != 1 || got[0].Name != "music" {
			t.Errorf("unexpected persisted value: %+v", got)
		}
	})
}

func TestUTF16Size(t *testing.T) {
	if n := utf16Size([]byte(`{"a":1}`)); n != 14 {
		t.Errorf("ASCII JSON should weigh 2 bytes per char, got %d", n)
	}
	// Characters outside the BMP take two UTF-16 code units.
	if n := utf16Size([]byte("𝄞")); n != 4 {
		t.Errorf("surrogate pair should weigh 4 bytes, got %d", n)
	}
}
