package editor

// SelectionState is the coarse state of the selection set.
type SelectionState int

const (
	NoneSelected SelectionState = iota
	SinglePrimary
	MultiSelected
)

func (s SelectionState) String() string {
	switch s {
	case SinglePrimary:
		return "single"
	case MultiSelected:
		return "multi"
	default:
		return "none"
	}
}

// Selection tracks the selected object ids and the primary one. Members
// keep insertion order so that removing the primary can promote the most
// recently added remaining member. The primary is always a member.
type Selection struct {
	ids     []string
	primary string
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// IDs returns a copy of the selected ids in insertion order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Primary returns the primary id, or "" when nothing is selected.
func (s *Selection) Primary() string {
	return s.primary
}

func (s *Selection) Len() int {
	return len(s.ids)
}

func (s *Selection) Contains(id string) bool {
	return s.indexOf(id) >= 0
}

func (s *Selection) State() SelectionState {
	switch len(s.ids) {
	case 0:
		return NoneSelected
	case 1:
		return SinglePrimary
	default:
		return MultiSelected
	}
}

// Click collapses the selection to the clicked object unless it already
// is the sole selection.
func (s *Selection) Click(id string) {
	if len(s.ids) == 1 && s.ids[0] == id {
		return
	}
	s.ids = []string{id}
	s.primary = id
}

// ToggleClick adds or removes id. An added object becomes primary. If the
// removed object was primary, the most recently added remaining member is
// promoted.
func (s *Selection) ToggleClick(id string) {
	if i := s.indexOf(id); i >= 0 {
		s.remove(i)
		return
	}
	s.ids = append(s.ids, id)
	s.primary = id
}

// BackgroundClick clears the selection unless the pointer moved while
// panning.
func (s *Selection) BackgroundClick(dragged bool) {
	if dragged {
		return
	}
	s.Clear()
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = nil
	s.primary = ""
}

// Set replaces the selection. The last id becomes primary; duplicates are
// dropped.
func (s *Selection) Set(ids ...string) {
	s.Clear()
	for _, id := range ids {
		if s.indexOf(id) < 0 {
			s.ids = append(s.ids, id)
		}
	}
	if len(s.ids) > 0 {
		s.primary = s.ids[len(s.ids)-1]
	}
}

// Retain drops every member for which keep returns false, promoting a new
// primary if needed. It reconciles the selection after undo or deletion.
func (s *Selection) Retain(keep func(id string) bool) {
	for i := len(s.ids) - 1; i >= 0; i-- {
		if !keep(s.ids[i]) {
			s.remove(i)
		}
	}
}

func (s *Selection) indexOf(id string) int {
	for i, v := range s.ids {
		if v == id {
			return i
		}
	}
	return -1
}

func (s *Selection) remove(i int) {
	id := s.ids[i]
	s.ids = append(s.ids[:i:i], s.ids[i+1:]...)
	if s.primary != id {
		return
	}
	if len(s.ids) == 0 {
		s.primary = ""
		return
	}
	s.primary = s.ids[len(s.ids)-1]
}
