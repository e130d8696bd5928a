package survey

import "fmt"

// Section identifiers. These are ordering keys referenced by stored
// progress rows and must never be renumbered; new sections are appended.
const (
	SectionHolderInfo = 1
	SectionLocation   = 2
	SectionHousehold  = 3
	SectionLabour     = 4
	SectionRemarks    = 5
)

// Section describes one step of the census instrument.
type Section struct {
	ID            int
	Label         string
	NeedsHolderID bool
}

// Registry is the fixed, ordered catalog of survey sections. Read-only at
// run time.
type Registry struct {
	sections []Section
	byID     map[int]Section
}

// NewRegistry builds a registry from sections ordered by ascending id.
func NewRegistry(sections []Section) (*Registry, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("registry needs at least one section")
	}
	byID := make(map[int]Section, len(sections))
	prev := 0
	for _, s := range sections {
		if s.ID <= prev {
			return nil, fmt.Errorf("section ids must be ascending and positive, got %d after %d", s.ID, prev)
		}
		byID[s.ID] = s
		prev = s.ID
	}
	return &Registry{sections: sections, byID: byID}, nil
}

// DefaultRegistry returns the census instrument sections.
func DefaultRegistry() *Registry {
	r, err := NewRegistry([]Section{
		{ID: SectionHolderInfo, Label: "Holder Information", NeedsHolderID: false},
		{ID: SectionLocation, Label: "Farm Location", NeedsHolderID: true},
		{ID: SectionHousehold, Label: "Household Information", NeedsHolderID: true},
		{ID: SectionLabour, Label: "Holding Labour", NeedsHolderID: true},
		{ID: SectionRemarks, Label: "General Remarks", NeedsHolderID: true},
	})
	if err != nil {
		panic(err) // static data, cannot fail
	}
	return r
}

// Sections returns the ordered section list.
func (r *Registry) Sections() []Section {
	out := make([]Section, len(r.sections))
	copy(out, r.sections)
	return out
}

// Get looks up a section by id.
func (r *Registry) Get(id int) (Section, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// Valid reports whether id is a registered section.
func (r *Registry) Valid(id int) bool {
	_, ok := r.byID[id]
	return ok
}

func (r *Registry) MinID() int { return r.sections[0].ID }

func (r *Registry) MaxID() int { return r.sections[len(r.sections)-1].ID }

func (r *Registry) Count() int { return len(r.sections) }
