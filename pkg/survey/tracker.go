package survey

import "sort"

// CompletionStore is the persistence view the tracker needs: which sections
// have a completion record for a holder.
type CompletionStore interface {
	CompletedSections(holderID uint) ([]int, error)
}

// Tracker computes the completed-section set for a holder. Persistence
// errors propagate to the caller, which must treat the set as empty rather
// than skipping mandatory sections (fail-closed).
type Tracker struct {
	store CompletionStore
	reg   *Registry
}

func NewTracker(store CompletionStore, reg *Registry) *Tracker {
	return &Tracker{store: store, reg: reg}
}

// Completed returns the set of registered sections done for holderID.
// Progress rows for ids no longer in the registry are ignored.
func (t *Tracker) Completed(holderID uint) (map[int]bool, error) {
	ids, err := t.store.CompletedSections(holderID)
	if err != nil {
		return nil, err
	}
	done := make(map[int]bool, len(ids))
	for _, id := range ids {
		if t.reg.Valid(id) {
			done[id] = true
		}
	}
	return done, nil
}

// CompletedList is Completed flattened to a sorted slice, convenient for
// API payloads.
func (t *Tracker) CompletedList(holderID uint) ([]int, error) {
	done, err := t.Completed(holderID)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(done))
	for id := range done {
		out = append(out, id)
	}
	sort.Ints(out)
	return out, nil
}
