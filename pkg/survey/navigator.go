package survey

// Navigator decides which section a session should be on. The cursor itself
// is transient session state; completion is derived from persisted progress
// rows, so a fresh session recomputes the same initial section.
type Navigator struct {
	reg *Registry
}

func NewNavigator(reg *Registry) *Navigator {
	return &Navigator{reg: reg}
}

// InitialSection is the lowest-numbered section not yet completed. When the
// whole instrument is complete it stays on the last section; the terminal
// handling is a presentation concern.
func (n *Navigator) InitialSection(completed map[int]bool) int {
	for _, s := range n.reg.Sections() {
		if !completed[s.ID] {
			return s.ID
		}
	}
	return n.reg.MaxID()
}

// Advance moves the cursor forward one section.
func (n *Navigator) Advance(current int) (int, error) {
	if !n.reg.Valid(current) {
		return 0, ErrUnknownSection
	}
	if current >= n.reg.MaxID() {
		return current, ErrAtLastSection
	}
	next := current
	for _, s := range n.reg.Sections() {
		if s.ID > current {
			next = s.ID
			break
		}
	}
	return next, nil
}

// Retreat moves the cursor back one section.
func (n *Navigator) Retreat(current int) (int, error) {
	if !n.reg.Valid(current) {
		return 0, ErrUnknownSection
	}
	if current <= n.reg.MinID() {
		return current, ErrAtFirstSection
	}
	prev := current
	for _, s := range n.reg.Sections() {
		if s.ID >= current {
			break
		}
		prev = s.ID
	}
	return prev, nil
}

// Jump selects any registered section. There is no forward-progress gating:
// a holder may revisit or skip ahead regardless of completion state.
func (n *Navigator) Jump(id int) (int, error) {
	if !n.reg.Valid(id) {
		return 0, ErrUnknownSection
	}
	return id, nil
}

// State is what a dashboard renders for one holder session: the active
// section and overall progress.
type State struct {
	Current   Section `json:"current"`
	Completed []int   `json:"completed"`
	Total     int     `json:"total"`
	Progress  float64 `json:"progress"`
}

// StateFor assembles the render state for a cursor. An unknown cursor
// (e.g. a section removed from the registry) falls back to the initial rule.
func (n *Navigator) StateFor(cursor int, completed map[int]bool) State {
	if !n.reg.Valid(cursor) {
		cursor = n.InitialSection(completed)
	}
	sec, _ := n.reg.Get(cursor)
	ids := make([]int, 0, len(completed))
	for _, s := range n.reg.Sections() {
		if completed[s.ID] {
			ids = append(ids, s.ID)
		}
	}
	return State{
		Current:   sec,
		Completed: ids,
		Total:     n.reg.Count(),
		Progress:  float64(len(ids)) / float64(n.reg.Count()),
	}
}
