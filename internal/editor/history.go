package editor

import "github.com/piwi3910/StandPlan/internal/model"

// MaxHistoryDepth bounds the undo stack.
const MaxHistoryDepth = 20

// Snapshot captures the full layout at a point in time.
type Snapshot struct {
	Layout model.Layout
	Label  string // Human-readable description (e.g. "Move Selection")
}

// History is a bounded undo stack of layout snapshots, most recent last.
// There is no redo.
type History struct {
	undoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History holding at most MaxHistoryDepth snapshots.
func NewHistory() *History {
	return &History{
		maxDepth: MaxHistoryDepth,
	}
}

// Push saves a snapshot onto the undo stack, evicting the oldest entry
// once the stack is full. It must be called before the change is applied.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, MakeSnapshot(s.Layout, s.Label))
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
}

// Pop removes and returns the most recent snapshot, or false if the stack
// is empty.
func (h *History) Pop() (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	return last, true
}

// CanUndo returns true if there is at least one snapshot to restore.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.undoStack)
}

// Labels returns the snapshot labels, oldest first.
func (h *History) Labels() []string {
	out := make([]string, len(h.undoStack))
	for i, s := range h.undoStack {
		out[i] = s.Label
	}
	return out
}

// Clear removes all history.
func (h *History) Clear() {
	h.undoStack = nil
}

// MakeSnapshot deep-copies the layout so later edits never reach into
// stored history.
func MakeSnapshot(l model.Layout, label string) Snapshot {
	return Snapshot{
		Layout: l.Clone(),
		Label:  label,
	}
}
