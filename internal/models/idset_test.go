package models

import (
	"reflect"
	"testing"
)

func TestIDSet(t *testing.T) {
	t.Run("Has", func(t *testing.T) {
		s := IDSet{"a", "b"}

		if !s.Has("a") {
			t.Error("expected a to be present")
		}
		if s.Has("c") {
			t.Error("expected c to be absent")
		}
		if (IDSet)(nil).Has("a") {
			t.Error("nil set should contain nothing")
		}
	})

	t.Run("Add", func(t *testing.T) {
		t.Run("appends new id", func(t *testing.T) {
			s := IDSet{"a"}.Add("b")
			if !reflect.DeepEqual(s, IDSet{"a", "b"}) {
				t.Errorf("unexpected set: %v", s)
			}
		})

		t.Run("is idempotent", func(t *testing.T) {
			s := IDSet{"a", "b"}.Add("a")
			if !reflect.DeepEqual(s, IDSet{"a", "b"}) {
				t.Errorf("duplicate add changed set: %v", s)
			}
		})
	})

	t.Run("Remove", func(t *testing.T) {
		t.Run("preserves order of remaining ids", func(t *testing.T) {
			s := IDSet{"a", "b", "c"}.Remove("b")
			if !reflect.DeepEqual(s, IDSet{"a", "c"}) {
				t.Errorf("unexpected set: %v", s)
			}
		})

		t.Run("absent id is a no-op", func(t *testing.T) {
			s := IDSet{"a"}.Remove("z")
			if !reflect.DeepEqual(s, IDSet{"a"}) {
				t.Errorf("unexpected set: %v", s)
			}
		})

		t.Run("does not alias the original backing array", func(t *testing.T) {
			orig := IDSet{"a", "b", "c"}
			_ = orig.Remove("a").Add("x")
			if !reflect.DeepEqual(orig, IDSet{"a", "b", "c"}) {
				t.Errorf("original mutated: %v", orig)
			}
		})
	})

	t.Run("Clone", func(t *testing.T) {
		orig := IDSet{"a", "b"}
		clone := orig.Clone()
		clone[0] = "z"
		if orig[0] != "a" {
			t.Error("clone shares backing array with original")
		}
		if (IDSet)(nil).Clone() != nil {
			t.Error("nil clone should stay nil")
		}
	})
}

func TestVideoOrphan(t *testing.T) {
	v := Video{CategoryIDs: IDSet{"cat"}}
	if v.Orphan() {
		t.Error("video with membership reported as orphan")
	}
	v.CategoryIDs = v.CategoryIDs.Remove("cat")
	if !v.Orphan() {
		t.Error("video without membership not reported as orphan")
	}
}
