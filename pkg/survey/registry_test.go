package survey

import "testing"

func TestDefaultRegistryShape(t *testing.T) {
	r := DefaultRegistry()
	if r.Count() != 5 {
		t.Fatalf("expected 5 sections got %d", r.Count())
	}
	if r.MinID() != SectionHolderInfo || r.MaxID() != SectionRemarks {
		t.Fatalf("unexpected bounds min=%d max=%d", r.MinID(), r.MaxID())
	}
	prev := 0
	for _, s := range r.Sections() {
		if s.ID <= prev {
			t.Fatalf("sections not in ascending order at id %d", s.ID)
		}
		prev = s.ID
	}
	// only the holder-information section can run without a holder id
	for _, s := range r.Sections() {
		needs := s.ID != SectionHolderInfo
		if s.NeedsHolderID != needs {
			t.Fatalf("section %d NeedsHolderID=%v", s.ID, s.NeedsHolderID)
		}
	}
}

func TestNewRegistryRejectsBadOrder(t *testing.T) {
	if _, err := NewRegistry([]Section{{ID: 2}, {ID: 1}}); err == nil {
		t.Fatalf("expected error for descending ids")
	}
	if _, err := NewRegistry([]Section{{ID: 0}}); err == nil {
		t.Fatalf("expected error for non-positive id")
	}
	if _, err := NewRegistry(nil); err == nil {
		t.Fatalf("expected error for empty registry")
	}
}

func TestRegistryLookup(t *testing.T) {
	r := DefaultRegistry()
	s, ok := r.Get(SectionLabour)
	if !ok || s.Label != "Holding Labour" {
		t.Fatalf("lookup failed: ok=%v label=%q", ok, s.Label)
	}
	if r.Valid(99) {
		t.Fatalf("id 99 should not be valid")
	}
}
