package editor

import (
	"fmt"
	"testing"

	"github.com/piwi3910/StandPlan/internal/model"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != MaxHistoryDepth {
		t.Errorf("expected maxDepth %d, got %d", MaxHistoryDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if _, ok := h.Pop(); ok {
		t.Error("pop on empty history should fail")
	}
}

func TestHistory_PushAndPop(t *testing.T) {
	h := NewHistory()
	l := model.NewLayout()
	l.Name = "first"
	h.Push(Snapshot{Layout: l, Label: "initial"})

	l.Name = "second"
	h.Push(Snapshot{Layout: l, Label: "rename"})

	snap, ok := h.Pop()
	if !ok {
		t.Fatal("pop should succeed")
	}
	if snap.Label != "rename" || snap.Layout.Name != "second" {
		t.Errorf("expected most recent snapshot, got %q/%q", snap.Label, snap.Layout.Name)
	}
	snap, _ = h.Pop()
	if snap.Layout.Name != "first" {
		t.Errorf("expected first snapshot, got %q", snap.Layout.Name)
	}
	if h.CanUndo() {
		t.Error("history should be empty")
	}
}

func TestHistory_MaxDepth(t *testing.T) {
	h := NewHistory()
	for i := 0; i < MaxHistoryDepth+5; i++ {
		h.Push(Snapshot{Layout: model.NewLayout(), Label: fmt.Sprintf("step %d", i)})
	}
	if h.Len() != MaxHistoryDepth {
		t.Fatalf("expected %d snapshots, got %d", MaxHistoryDepth, h.Len())
	}
	labels := h.Labels()
	if labels[0] != "step 5" {
		t.Errorf("expected oldest kept snapshot 'step 5', got %q", labels[0])
	}
}

func TestHistory_SnapshotIsDeepCopy(t *testing.T) {
	h := NewHistory()
	l := model.NewLayout()
	s := model.NewStand(model.ShapeRectangle, "hall")
	s.Position = &model.Point{X: 10, Y: 10}
	l.Stands = append(l.Stands, s)

	h.Push(Snapshot{Layout: l, Label: "before"})
	l.Stands[0].Position.X = 50

	snap, _ := h.Pop()
	if snap.Layout.Stands[0].Position.X != 10 {
		t.Errorf("snapshot should be unaffected by later edits, got x=%v", snap.Layout.Stands[0].Position.X)
	}
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory()
	h.Push(Snapshot{Layout: model.NewLayout()})
	h.Clear()
	if h.CanUndo() {
		t.Error("expected no history after clear")
	}
}

func TestTransactions_CommitAndUndo(t *testing.T) {
	tx := NewTransactions(model.NewLayout())
	tx.Commit("rename", func(l model.Layout) model.Layout {
		l.Name = "Expo"
		return l
	})
	if got := tx.Current().Name; got != "Expo" {
		t.Errorf("expected name Expo, got %q", got)
	}
	label, ok := tx.Undo()
	if !ok || label != "rename" {
		t.Errorf("undo returned %q, %v", label, ok)
	}
	if got := tx.Current().Name; got != "Untitled" {
		t.Errorf("expected name Untitled after undo, got %q", got)
	}
	if _, ok := tx.Undo(); ok {
		t.Error("undo on empty history should be a no-op")
	}
}

func TestTransactions_MutatorGetsPrivateCopy(t *testing.T) {
	start := model.NewLayout()
	s := model.NewStand(model.ShapeRectangle, "hall")
	s.Position = &model.Point{X: 1, Y: 1}
	start.Stands = append(start.Stands, s)
	tx := NewTransactions(start)

	tx.Commit("move", func(l model.Layout) model.Layout {
		l.Stands[0].Position.X = 42
		return l
	})
	tx.Undo()
	if got := tx.Current().Stands[0].Position.X; got != 1 {
		t.Errorf("expected x=1 after undo, got %v", got)
	}
	if start.Stands[0].Position.X != 1 {
		t.Error("initial layout passed to NewTransactions was modified")
	}
}

func TestTransactions_Replace(t *testing.T) {
	tx := NewTransactions(model.NewLayout())
	next := tx.Current()
	next.Name = "Expo"
	tx.Replace("rename", next)

	if got := tx.Current().Name; got != "Expo" {
		t.Errorf("expected name Expo, got %q", got)
	}
	if tx.History().Len() != 1 {
		t.Errorf("expected one snapshot, got %d", tx.History().Len())
	}
	label, ok := tx.Undo()
	if !ok || label != "rename" {
		t.Errorf("undo returned %q, %v", label, ok)
	}
	if got := tx.Current().Name; got != "Untitled" {
		t.Errorf("expected name Untitled after undo, got %q", got)
	}
}

func TestTransactions_Reset(t *testing.T) {
	tx := NewTransactions(model.NewLayout())
	tx.Commit("a", func(l model.Layout) model.Layout { return l })
	next := model.NewLayout()
	next.Name = "Loaded"
	tx.Reset(next)
	if tx.History().CanUndo() {
		t.Error("reset should drop history")
	}
	if tx.Current().Name != "Loaded" {
		t.Errorf("expected Loaded, got %q", tx.Current().Name)
	}
}
