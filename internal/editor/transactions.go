package editor

import "github.com/piwi3910/StandPlan/internal/model"

// Mutator derives a new layout from a private copy of the current one.
type Mutator func(model.Layout) model.Layout

// Transactions owns the current layout and its undo history. Every change
// goes through Commit or Replace, so every change is undoable.
type Transactions struct {
	current model.Layout
	history *History
}

// NewTransactions starts from a copy of the given layout with empty history.
func NewTransactions(initial model.Layout) *Transactions {
	return &Transactions{
		current: initial.Clone(),
		history: NewHistory(),
	}
}

// Commit pushes the current layout onto history then replaces it with the
// mutator's result.
func (t *Transactions) Commit(label string, mutate Mutator) {
	t.history.Push(Snapshot{Layout: t.current, Label: label})
	t.current = mutate(t.current.Clone())
}

// Replace pushes the current layout onto history and takes ownership of
// next. Callers build next from their own copy and must not touch it
// afterwards.
func (t *Transactions) Replace(label string, next model.Layout) {
	t.history.Push(Snapshot{Layout: t.current, Label: label})
	t.current = next
}

// Undo restores the most recent snapshot. It is a no-op on an empty stack.
func (t *Transactions) Undo() (string, bool) {
	snap, ok := t.history.Pop()
	if !ok {
		return "", false
	}
	t.current = snap.Layout
	return snap.Label, true
}

// Current returns a deep copy of the current layout.
func (t *Transactions) Current() model.Layout {
	return t.current.Clone()
}

// Reset replaces the layout without recording history, e.g. after opening
// a file.
func (t *Transactions) Reset(l model.Layout) {
	t.current = l.Clone()
	t.history.Clear()
}

// History exposes the undo stack for read-only inspection.
func (t *Transactions) History() *History {
	return t.history
}

// view returns the current layout without copying; callers must not
// mutate it.
func (t *Transactions) view() model.Layout {
	return t.current
}
