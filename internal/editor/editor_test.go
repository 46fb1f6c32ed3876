package editor

import (
	"encoding/json"
	"testing"

	"github.com/piwi3910/StandPlan/internal/engine"
	"github.com/piwi3910/StandPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hall(w, d float64) model.Container {
	return model.Container{ID: "hall", Name: "Hall", Kind: model.StructureHall, Width: w, Depth: d}
}

func stand(id string, c model.Container, x, y, w, d float64) model.Stand {
	s := model.NewStand(model.ShapeRectangle, c.ID)
	s.ID = id
	s.Number = id
	s.Width = w
	s.Depth = d
	s.Position = &model.Point{X: engine.ToPercent(x, c.Width), Y: engine.ToPercent(y, c.Depth)}
	s.RecomputeArea()
	return s
}

func newTestEditor(c model.Container, stands ...model.Stand) *Editor {
	l := model.NewLayout()
	l.Containers = []model.Container{c}
	l.Stands = append(l.Stands, stands...)
	return New(l, DefaultOptions())
}

func position(t *testing.T, e *Editor, id string) model.Point {
	t.Helper()
	fp, ok := e.Layout().Footprint(id)
	require.True(t, ok, "object %s exists", id)
	require.True(t, fp.IsPlaced(), "object %s is placed", id)
	return *fp.Position
}

func requireValid(t *testing.T, e *Editor) {
	t.Helper()
	require.Empty(t, engine.Validate(e.Layout()))
}

func TestAddStand_FirstFreeCell(t *testing.T) {
	e := newTestEditor(hall(10, 10))

	s, placed := e.AddStand(model.ShapeRectangle)
	require.True(t, placed)
	assert.Equal(t, model.Point{X: 0, Y: 0}, *s.Position)
	assert.Equal(t, "1", s.Number)
	assert.Equal(t, 9.0, s.Area)
	assert.Equal(t, s.ID, e.Selection().Primary())

	s2, placed := e.AddStand(model.ShapeRectangle)
	require.True(t, placed)
	assert.InDelta(t, 30.0, s2.Position.X, 1e-9)
	assert.Equal(t, "2", s2.Number)
	requireValid(t, e)
}

func TestAddStand_LShape(t *testing.T) {
	e := newTestEditor(hall(10, 10))
	s, placed := e.AddStand(model.ShapeL)
	require.True(t, placed)
	assert.Equal(t, model.ShapeL, s.Shape)
	assert.Equal(t, 16.0, s.Area)
}

func TestAddStand_FullContainerGoesToBacklog(t *testing.T) {
	c := hall(4, 4)
	e := newTestEditor(c, stand("big", c, 0, 0, 4, 4))

	s, placed := e.AddStand(model.ShapeRectangle)
	assert.False(t, placed)
	assert.False(t, s.IsPlaced())
	assert.Len(t, e.Layout().Backlog(), 1)
	assert.True(t, e.CanUndo())
}

func TestAddStand_NoContainer(t *testing.T) {
	e := New(model.NewLayout(), DefaultOptions())
	_, placed := e.AddStand(model.ShapeRectangle)
	assert.False(t, placed)
	assert.False(t, e.CanUndo())
	assert.Empty(t, e.Layout().Stands)
}

func TestAddUtilitySpace(t *testing.T) {
	e := newTestEditor(hall(20, 20))
	u, placed := e.AddUtilitySpace(model.UtilityStage)
	require.True(t, placed)
	assert.Equal(t, "Stage", u.Label)
	assert.Equal(t, 8.0, u.Width)
	assert.Equal(t, []string{u.ID}, e.Selection().IDs())
	assert.Equal(t, []string{"Add Stage"}, e.History().Labels())
}

func TestAddContainer_BecomesActive(t *testing.T) {
	e := newTestEditor(hall(10, 10))
	c := e.AddContainer("Marquee", model.StructureMarquee, 0, 12)
	assert.Equal(t, model.DefaultContainerWidth, c.Width)
	assert.Equal(t, 12.0, c.Depth)
	assert.Equal(t, 10+ContainerGap, c.OffsetX, "placed right of the hall")

	active, ok := e.ActiveContainer()
	require.True(t, ok)
	assert.Equal(t, c.ID, active.ID)

	s, _ := e.AddStand(model.ShapeRectangle)
	assert.Equal(t, c.ID, s.ContainerID)

	assert.True(t, e.SetActiveContainer("hall"))
	assert.False(t, e.SetActiveContainer("nope"))
}

func TestMoveSelection(t *testing.T) {
	c := hall(10, 10)
	e := newTestEditor(c, stand("a", c, 0, 0, 3, 3))
	e.Selection().Set("a")

	require.True(t, e.MoveSelection(2, 1))
	p := position(t, e, "a")
	assert.InDelta(t, 20.0, p.X, 1e-9)
	assert.InDelta(t, 10.0, p.Y, 1e-9)
}

func TestMoveSelection_RejectsCollision(t *testing.T) {
	c := hall(10, 10)
	e := newTestEditor(c, stand("a", c, 0, 0, 3, 3), stand("b", c, 4, 0, 3, 3))
	e.Selection().Set("a")
	before := e.Layout()

	assert.False(t, e.MoveSelection(2, 0), "would overlap b")
	assert.Equal(t, before, e.Layout())
	assert.False(t, e.CanUndo())

	assert.False(t, e.MoveSelection(-1, 0), "would leave the container")
	assert.Equal(t, before, e.Layout())
}

func TestMoveSelection_BatchRevertsOnlyColliding(t *testing.T) {
	c := hall(20, 10)
	e := newTestEditor(c,
		stand("a", c, 0, 0, 3, 3),
		stand("b", c, 10, 0, 3, 3),
		stand("wall", c, 4, 0, 1, 3),
	)
	e.Selection().Set("a", "b")

	require.True(t, e.MoveSelection(2, 0))
	assert.InDelta(t, 0.0, position(t, e, "a").X, 1e-9, "a is blocked by the wall")
	assert.InDelta(t, 60.0, position(t, e, "b").X, 1e-9)
	requireValid(t, e)
}

func TestMoveSelection_FollowerIntoVacatedSpotIsReverted(t *testing.T) {
	c := hall(20, 10)
	// b moves into a's old spot while a is blocked, so a stays and b must revert too
	e := newTestEditor(c,
		stand("a", c, 3, 0, 3, 3),
		stand("b", c, 0, 0, 3, 3),
		stand("wall", c, 6, 0, 1, 3),
	)
	e.Selection().Set("a", "b")

	assert.False(t, e.MoveSelection(3, 0))
	assert.False(t, e.CanUndo())
	requireValid(t, e)
}

func TestNudge_UsesSteps(t *testing.T) {
	c := hall(10, 10)
	e := newTestEditor(c, stand("a", c, 5, 5, 1, 1))
	e.Selection().Set("a")

	require.True(t, e.Nudge(1, 0, false))
	assert.InDelta(t, 60.0, position(t, e, "a").X, 1e-9)
	require.True(t, e.Nudge(0, -1, true))
	assert.InDelta(t, 49.0, position(t, e, "a").Y, 1e-9)
}

func TestRotateSelection(t *testing.T) {
	c := hall(10, 10)
	e := newTestEditor(c, stand("a", c, 0, 0, 4, 2), stand("b", c, 0, 7, 6, 2))
	e.Selection().Set("a", "b")

	require.True(t, e.RotateSelection(90))
	l := e.Layout()
	a, _ := l.Footprint("a")
	b, _ := l.Footprint("b")
	assert.Equal(t, 90, a.Rotation)
	assert.Equal(t, 0, b.Rotation, "b rotated would leave the container")

	require.True(t, e.RotateSelection(270))
	a, _ = e.Layout().Footprint("a")
	assert.Equal(t, 0, a.Rotation)
}

func TestDeleteSelection_SoftRemoves(t *testing.T) {
	c := hall(10, 10)
	e := newTestEditor(c, stand("a", c, 0, 0, 3, 3))
	e.Selection().Set("a")

	require.True(t, e.DeleteSelection())
	fp, ok := e.Layout().Footprint("a")
	require.True(t, ok)
	assert.False(t, fp.IsPlaced())
	assert.Equal(t, NoneSelected, e.Selection().State())

	assert.False(t, e.DeleteSelection(), "empty selection is a no-op")
}

func TestPurgeSelection(t *testing.T) {
	c := hall(10, 10)
	e := newTestEditor(c, stand("a", c, 0, 0, 3, 3), stand("b", c, 4, 0, 3, 3))
	e.Selection().Set("a")

	require.True(t, e.PurgeSelection())
	l := e.Layout()
	require.Len(t, l.Stands, 1)
	assert.Equal(t, "b", l.Stands[0].ID)

	require.True(t, e.Undo())
	assert.Len(t, e.Layout().Stands, 2)
}

func TestDuplicateSelection(t *testing.T) {
	c := hall(20, 20)
	e := newTestEditor(c, stand("a", c, 0, 0, 2, 2))
	e.Selection().Set("a")

	require.True(t, e.DuplicateSelection(3))
	l := e.Layout()
	require.Len(t, l.Stands, 2)
	clone := l.Stands[1]
	assert.NotEqual(t, "a", clone.ID)
	assert.Len(t, clone.ID, 8)
	assert.Equal(t, "1", clone.Number, "no numeric stand numbers yet")
	require.True(t, clone.IsPlaced())
	assert.InDelta(t, 15.0, clone.Position.X, 1e-9)
	assert.InDelta(t, 15.0, clone.Position.Y, 1e-9)
	assert.Equal(t, []string{clone.ID}, e.Selection().IDs())
	requireValid(t, e)
}

func TestDuplicateSelection_FallsBackToFreeCell(t *testing.T) {
	c := hall(10, 10)
	e := newTestEditor(c, stand("a", c, 0, 0, 3, 3))
	e.Selection().Set("a")

	require.True(t, e.DuplicateSelection(0), "configured 1 m offset overlaps the original")
	clone := e.Layout().Stands[1]
	require.True(t, clone.IsPlaced())
	assert.InDelta(t, 30.0, clone.Position.X, 1e-9)
	assert.InDelta(t, 0.0, clone.Position.Y, 1e-9)
	requireValid(t, e)
}

func TestDuplicateSelection_BacklogWhenFull(t *testing.T) {
	c := hall(3, 3)
	e := newTestEditor(c, stand("a", c, 0, 0, 3, 3))
	e.Selection().Set("a")

	require.True(t, e.DuplicateSelection(1))
	clone := e.Layout().Stands[1]
	assert.False(t, clone.IsPlaced())
}

func TestAlignSelection_Scenario(t *testing.T) {
	c := hall(20, 10)
	e := newTestEditor(c, stand("A", c, 0, 0, 4, 4), stand("B", c, 5, 0, 3, 3))
	e.Selection().Set("B")

	require.True(t, e.AlignSelection(engine.EdgeLeft))
	assert.InDelta(t, 20.0, position(t, e, "B").X, 1e-9)
	requireValid(t, e)

	assert.False(t, e.AlignSelection(engine.EdgeLeft), "already aligned")
}

func TestAlignSelection_OverlappingResultsAreReverted(t *testing.T) {
	c := hall(20, 10)
	e := newTestEditor(c, stand("A", c, 2, 0, 3, 3), stand("B", c, 10, 0, 3, 3))
	e.Selection().Set("A", "B")

	// Both snap to the left wall; the second one then collides and stays
	assert.True(t, e.AlignSelection(engine.EdgeLeft))
	requireValid(t, e)
	assert.InDelta(t, 0.0, position(t, e, "A").X, 1e-9)
	assert.InDelta(t, 50.0, position(t, e, "B").X, 1e-9)
}

func TestAlignSelection_EmptySelection(t *testing.T) {
	e := newTestEditor(hall(10, 10))
	assert.False(t, e.AlignSelection(engine.EdgeTop))
	assert.False(t, e.CanUndo())
}

func TestSetProperty_StandGeometry(t *testing.T) {
	c := hall(20, 20)
	s := model.NewStand(model.ShapeL, c.ID)
	s.ID = "l"
	s.Position = &model.Point{}
	e := newTestEditor(c, s)
	e.Selection().Set("l")

	require.True(t, e.SetProperty("width", "6"))
	got := e.Layout().Stands[0]
	assert.Equal(t, 6.0, got.Width)
	assert.Equal(t, 20.0, got.Area)

	assert.False(t, e.SetProperty("width", "abc"), "unparsable input keeps the prior value")

	require.True(t, e.SetProperty("depth", "-2"))
	got = e.Layout().Stands[0]
	assert.Equal(t, 1.0, got.Depth)
	assert.Equal(t, 2.0, got.Area)

	require.True(t, e.SetProperty("cutout-width", "0"))
	got = e.Layout().Stands[0]
	assert.Equal(t, 0.0, got.CutoutWidth)
	assert.Equal(t, 6.0, got.Area)

	require.True(t, e.SetProperty("shape", "rectangle"))
	assert.Equal(t, model.ShapeRectangle, e.Layout().Stands[0].Shape)
}

func TestSetProperty_NonFiniteKeepsPriorValue(t *testing.T) {
	c := hall(20, 20)
	s := model.NewStand(model.ShapeL, c.ID)
	s.ID = "l"
	s.Position = &model.Point{}
	e := newTestEditor(c, s)
	e.Selection().Set("l")

	for _, prop := range []string{"width", "depth", "cutout-width", "cutout-depth"} {
		for _, value := range []string{"NaN", "Inf", "-Inf", "+inf"} {
			assert.False(t, e.SetProperty(prop, value), "%s=%s", prop, value)
		}
	}
	got := e.Layout().Stands[0]
	assert.Equal(t, 5.0, got.Width)
	assert.Equal(t, 2.0, got.CutoutWidth)
	assert.Equal(t, 16.0, got.Area)
	assert.False(t, e.CanUndo())

	// Unplaced stands skip the collision check, so the parser alone guards them
	require.True(t, e.DeleteSelection())
	e.Selection().Set("l")
	assert.False(t, e.SetProperty("width", "NaN"))
	assert.Equal(t, 5.0, e.Layout().Stands[0].Width)

	_, err := json.Marshal(e.Layout())
	require.NoError(t, err)
}

func TestSetProperty_CollidingResizeReverts(t *testing.T) {
	c := hall(10, 10)
	e := newTestEditor(c, stand("a", c, 0, 0, 3, 3), stand("b", c, 4, 0, 3, 3))
	e.Selection().Set("a")

	assert.False(t, e.SetProperty("width", "5"))
	assert.Equal(t, 3.0, e.Layout().Stands[0].Width)
	assert.False(t, e.CanUndo())
}

func TestSetProperty_NonGeometryFields(t *testing.T) {
	c := hall(10, 10)
	e := newTestEditor(c, stand("a", c, 0, 0, 3, 3))
	door := model.NewUtilitySpace(model.UtilityDoor, c.ID)
	door.ID = "door"
	next := e.Layout()
	next.Utilities = append(next.Utilities, door)
	e.Load(next)
	e.Selection().Set("a", "door")

	require.True(t, e.SetProperty("color", "#FF0000"))
	l := e.Layout()
	assert.Equal(t, "#FF0000", l.Stands[0].Color)
	assert.Equal(t, "#FF0000", l.Utilities[0].Color)

	require.True(t, e.SetProperty("label", "Main Entrance"))
	assert.Equal(t, "Main Entrance", e.Layout().Utilities[0].Label)

	require.True(t, e.SetProperty("number", "A1"))
	assert.Equal(t, "A1", e.Layout().Stands[0].Number)

	require.True(t, e.SetProperty("mirror-h", "true"))
	assert.True(t, e.Layout().Stands[0].MirrorH)

	assert.False(t, e.SetProperty("category", "spaceport"))
	assert.False(t, e.SetProperty("nonsense", "1"))
}

func TestUndo_RoundTrip(t *testing.T) {
	c := hall(30, 30)
	e := newTestEditor(c, stand("a", c, 0, 0, 2, 2))
	original := e.Layout()

	e.Selection().Set("a")
	for i := 0; i < 10; i++ {
		require.True(t, e.MoveSelection(1, 0))
		require.True(t, e.RotateSelection(90))
	}
	assert.Equal(t, 20, e.History().Len())

	for i := 0; i < 20; i++ {
		require.True(t, e.Undo())
	}
	assert.Equal(t, original, e.Layout())
	assert.False(t, e.Undo(), "empty history is a no-op")
	assert.Equal(t, original, e.Layout())
}

func TestUndo_HistoryIsBounded(t *testing.T) {
	c := hall(50, 10)
	e := newTestEditor(c, stand("a", c, 0, 0, 1, 1))
	e.Selection().Set("a")

	for i := 0; i < 25; i++ {
		require.True(t, e.MoveSelection(1, 0))
	}
	assert.Equal(t, MaxHistoryDepth, e.History().Len())
	for e.Undo() {
	}
	assert.InDelta(t, engine.ToPercent(5, 50), position(t, e, "a").X, 1e-9, "oldest five snapshots were evicted")
}

func TestUndo_ReconcilesSelection(t *testing.T) {
	e := newTestEditor(hall(10, 10))
	s, _ := e.AddStand(model.ShapeRectangle)
	require.Equal(t, s.ID, e.Selection().Primary())

	require.True(t, e.Undo())
	assert.Equal(t, NoneSelected, e.Selection().State())
}

func TestMovePlaceable(t *testing.T) {
	c := hall(10, 10)
	other := model.Container{ID: "tent", Name: "Tent", Kind: model.StructureMarquee, Width: 5, Depth: 5}
	e := newTestEditor(c, stand("a", c, 0, 0, 3, 3), stand("b", c, 5, 5, 3, 3))
	next := e.Layout()
	next.Containers = append(next.Containers, other)
	e.Load(next)

	assert.False(t, e.MovePlaceable("a", "hall", 40, 40), "drop onto b is rejected")
	assert.InDelta(t, 0.0, position(t, e, "a").X, 1e-9)

	require.True(t, e.MovePlaceable("a", "hall", 0, 50))
	assert.InDelta(t, 50.0, position(t, e, "a").Y, 1e-9)

	require.True(t, e.MovePlaceable("a", "tent", 0, 0))
	fp, _ := e.Layout().Footprint("a")
	assert.Equal(t, "tent", fp.ContainerID)

	assert.False(t, e.MovePlaceable("a", "missing", 0, 0))
	assert.False(t, e.MovePlaceable("ghost", "hall", 0, 0))
}

func TestPlaceBacklog(t *testing.T) {
	c := hall(10, 10)
	a := stand("a", c, 0, 0, 3, 3)
	b := stand("b", c, 0, 0, 3, 3)
	b.Position = nil
	orphan := stand("c", c, 0, 0, 3, 3)
	orphan.Position = nil
	orphan.ContainerID = "gone"
	e := newTestEditor(c, a, b, orphan)

	assert.Equal(t, 2, e.PlaceBacklog())
	assert.Empty(t, e.Layout().Backlog())
	fp, _ := e.Layout().Footprint("c")
	assert.Equal(t, "hall", fp.ContainerID)
	requireValid(t, e)
	assert.Equal(t, []string{"Place Backlog"}, e.History().Labels())

	assert.Equal(t, 0, e.PlaceBacklog())
}

func TestImportStands(t *testing.T) {
	c := hall(6, 3)
	e := newTestEditor(c)
	in := []model.Stand{
		{Footprint: model.Footprint{Width: 3, Depth: 3}, Number: "A1", Shape: model.ShapeRectangle},
		{Footprint: model.Footprint{Width: 3, Depth: 3}, Shape: model.ShapeRectangle},
		{Footprint: model.Footprint{Width: 3, Depth: 3}, Shape: model.ShapeRectangle},
	}

	assert.Equal(t, 2, e.ImportStands(in))
	l := e.Layout()
	require.Len(t, l.Stands, 3)
	assert.Equal(t, "A1", l.Stands[0].Number)
	assert.Equal(t, "1", l.Stands[1].Number)
	assert.Equal(t, "2", l.Stands[2].Number)
	assert.False(t, l.Stands[2].IsPlaced())
	assert.Equal(t, 9.0, l.Stands[0].Area)
	assert.Equal(t, 1, e.History().Len())
	requireValid(t, e)
}

func TestHistorySnapshotsAreIndependent(t *testing.T) {
	c := hall(10, 10)
	e := newTestEditor(c, stand("a", c, 0, 0, 3, 3))
	e.Selection().Set("a")
	require.True(t, e.MoveSelection(1, 1))

	// Mutating a returned copy must not reach the editor
	l := e.Layout()
	l.Stands[0].Position.X = 99
	assert.InDelta(t, 10.0, position(t, e, "a").X, 1e-9)

	require.True(t, e.Undo())
	assert.InDelta(t, 0.0, position(t, e, "a").X, 1e-9)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.NudgeStep = 2
	cfg.FineNudgeStep = -1
	opts := OptionsFromConfig(cfg)
	assert.Equal(t, 2.0, opts.NudgeStep)
	assert.Equal(t, 0.1, opts.FineNudgeStep)
	assert.Equal(t, 1.0, opts.DuplicateOffset)
}

func TestAddPresetStand(t *testing.T) {
	e := newTestEditor(hall(20, 20))
	preset := model.NewStandPreset("Corner 6x6", model.ShapeL, 6, 6).WithCutout(3, 3)

	s, placed := e.AddPresetStand(preset)
	require.True(t, placed)
	assert.Equal(t, 27.0, s.Area)
	assert.Equal(t, "hall", s.ContainerID)
	assert.Equal(t, []string{"Add Corner 6x6"}, e.History().Labels())
}
