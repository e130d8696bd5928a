package session

import (
	"context"
	"testing"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	got, err := s.Get(ctx, "unknown")
	if err != nil || got != nil {
		t.Fatalf("unknown session: got %v err=%v", got, err)
	}

	st := &State{UserID: 1, HolderID: 7, Section: 2}
	if err := s.Put(ctx, "sid-1", st); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	got, err = s.Get(ctx, "sid-1")
	if err != nil || got == nil {
		t.Fatalf("get failed: %v err=%v", got, err)
	}
	if got.HolderID != 7 || got.Section != 2 {
		t.Fatalf("unexpected state %+v", got)
	}

	// returned state is a copy, mutating it must not affect the store
	got.Section = 5
	again, _ := s.Get(ctx, "sid-1")
	if again.Section != 2 {
		t.Fatalf("store state mutated through returned copy: %+v", again)
	}

	if err := s.Delete(ctx, "sid-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got, _ = s.Get(ctx, "sid-1")
	if got != nil {
		t.Fatalf("expected nil after delete got %+v", got)
	}
}

func TestMemoryStoreSessionIsolation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Put(ctx, "a", &State{UserID: 1, HolderID: 1, Section: 1})
	_ = s.Put(ctx, "b", &State{UserID: 2, HolderID: 2, Section: 4})

	a, _ := s.Get(ctx, "a")
	b, _ := s.Get(ctx, "b")
	if a.Section != 1 || b.Section != 4 {
		t.Fatalf("sessions leaked into each other: a=%+v b=%+v", a, b)
	}
}
