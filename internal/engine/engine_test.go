package engine

import (
	"testing"

	"github.com/piwi3910/StandPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContainer(w, d float64) model.Container {
	return model.Container{ID: "hall", Name: "Hall", Kind: model.StructureHall, Width: w, Depth: d}
}

// placedStand builds a rectangular stand at the given meter position.
func placedStand(id string, c model.Container, x, y, w, d float64) model.Stand {
	s := model.NewStand(model.ShapeRectangle, c.ID)
	s.ID = id
	s.Width = w
	s.Depth = d
	s.Position = &model.Point{X: ToPercent(x, c.Width), Y: ToPercent(y, c.Depth)}
	s.RecomputeArea()
	return s
}

func TestCoordinates_RoundTrip(t *testing.T) {
	assert.InDelta(t, 5.0, ToMeters(25, 20), 1e-9)
	assert.InDelta(t, 25.0, ToPercent(5, 20), 1e-9)
	assert.Equal(t, 0.0, ToPercent(5, 0))
	assert.InDelta(t, 60.0, MetersToPixels(3), 1e-9)
	assert.InDelta(t, 3.0, PixelsToMeters(60), 1e-9)
}

func TestEffectiveDimensions_RotationSymmetry(t *testing.T) {
	w, d := EffectiveDimensions(5, 3, 0)
	assert.Equal(t, 5.0, w)
	assert.Equal(t, 3.0, d)

	w, d = EffectiveDimensions(5, 3, 90)
	assert.Equal(t, 3.0, w)
	assert.Equal(t, 5.0, d)

	for _, r := range []int{0, 30, 45, 90, 134, 135, 180, 224, 225, 270, 314, 315, -90, 450} {
		w1, d1 := EffectiveDimensions(5, 3, r)
		w2, d2 := EffectiveDimensions(5, 3, r+360)
		assert.Equal(t, w1, w2, "rotation %d", r)
		assert.Equal(t, d1, d2, "rotation %d", r)
	}
}

func TestEffectiveDimensions_QuarterTurnBands(t *testing.T) {
	tests := []struct {
		rotation int
		swapped  bool
	}{
		{0, false},
		{44, false},
		{45, true},
		{134, true},
		{135, false},
		{180, false},
		{225, true},
		{314, true},
		{315, false},
		{-90, true},
		{-180, false},
	}
	for _, tt := range tests {
		w, _ := EffectiveDimensions(4, 2, tt.rotation)
		assert.Equal(t, tt.swapped, w == 2, "rotation %d", tt.rotation)
	}
}

func TestBoundingBoxInMeters(t *testing.T) {
	c := testContainer(20, 10)
	fp := model.Footprint{ContainerID: c.ID, Width: 4, Depth: 2, Rotation: 90, Position: &model.Point{X: 50, Y: 10}}

	box, ok := BoundingBoxInMeters(fp, c.Width, c.Depth)
	require.True(t, ok)
	assert.InDelta(t, 10.0, box.Left, 1e-9)
	assert.InDelta(t, 1.0, box.Top, 1e-9)
	assert.InDelta(t, 12.0, box.Right, 1e-9)
	assert.InDelta(t, 5.0, box.Bottom, 1e-9)
	assert.Equal(t, 2.0, box.Width)
	assert.Equal(t, 4.0, box.Height)

	_, ok = BoundingBoxInMeters(fp.Unplaced(), c.Width, c.Depth)
	assert.False(t, ok)
}

func TestBox_TouchingIsNotOverlap(t *testing.T) {
	a := newBox(0, 0, 3, 3)
	b := newBox(3, 0, 3, 3)
	assert.False(t, a.Overlaps(b, Tolerance))
	assert.False(t, b.Overlaps(a, Tolerance))

	// Drift below tolerance is absorbed
	c := newBox(2.995, 0, 3, 3)
	assert.False(t, a.Overlaps(c, Tolerance))

	d := newBox(2.5, 2.5, 3, 3)
	assert.True(t, a.Overlaps(d, Tolerance))
}

func TestLShapeClipMask(t *testing.T) {
	l := model.NewStand(model.ShapeL, "hall")
	mask := LShapeClipMask(l)
	require.Len(t, mask, 6)
	assert.Equal(t, model.Point{X: 0, Y: 0}, mask[0])
	assert.InDelta(t, 60.0, mask[1].X, 1e-9) // 5 m wide, 2 m cutout
	assert.InDelta(t, 50.0, mask[2].Y, 1e-9) // 4 m deep, 2 m cutout
	assert.Equal(t, model.Point{X: 100, Y: 100}, mask[4])

	rect := model.NewStand(model.ShapeRectangle, "hall")
	assert.Nil(t, LShapeClipMask(rect))

	l.CutoutDepth = 0
	assert.Nil(t, LShapeClipMask(l))
}

func TestIsColliding_Bounds(t *testing.T) {
	c := testContainer(10, 10)

	assert.False(t, IsColliding(Candidate{X: 70, Y: 70, Width: 3, Depth: 3}, c, nil, nil))
	assert.True(t, IsColliding(Candidate{X: 80, Y: 0, Width: 3, Depth: 3}, c, nil, nil))
	assert.True(t, IsColliding(Candidate{X: -1, Y: 0, Width: 3, Depth: 3}, c, nil, nil))

	// A 2x5 stand fits at 60% depth only when rotated
	assert.False(t, IsColliding(Candidate{X: 0, Y: 50, Width: 2, Depth: 5}, c, nil, nil))
	assert.True(t, IsColliding(Candidate{X: 0, Y: 60, Width: 2, Depth: 5}, c, nil, nil))
	assert.False(t, IsColliding(Candidate{X: 0, Y: 60, Width: 2, Depth: 5, Rotation: 90}, c, nil, nil))
}

func TestIsColliding_RejectsOverlap(t *testing.T) {
	c := testContainer(10, 10)
	occupant := placedStand("a", c, 0, 0, 3, 3)

	cand := Candidate{ID: "b", X: 0, Y: 0, Width: 3, Depth: 3}
	assert.True(t, IsColliding(cand, c, []model.Stand{occupant}, nil))

	// Own id is excluded from the obstacle set
	cand.ID = "a"
	assert.False(t, IsColliding(cand, c, []model.Stand{occupant}, nil))
}

func TestIsColliding_NewObjectSeesEmptyIDObstacle(t *testing.T) {
	c := testContainer(10, 10)
	anonymous := placedStand("", c, 0, 0, 3, 3)

	assert.True(t, IsColliding(Candidate{X: 0, Y: 0, Width: 3, Depth: 3}, c, []model.Stand{anonymous}, nil))

	pos, ok := FindFreePosition(3, 3, 0, c, []model.Stand{anonymous}, nil)
	require.True(t, ok)
	assert.NotEqual(t, model.Point{X: 0, Y: 0}, pos)
}

func TestIsColliding_IgnoresUnplacedAndOtherContainers(t *testing.T) {
	c := testContainer(10, 10)
	unplaced := placedStand("a", c, 0, 0, 3, 3)
	unplaced.Position = nil
	elsewhere := placedStand("b", c, 0, 0, 3, 3)
	elsewhere.ContainerID = "other"

	door := model.NewUtilitySpace(model.UtilityDoor, c.ID)
	door.Position = &model.Point{X: 0, Y: 0}

	cand := Candidate{ID: "x", X: 0, Y: 0, Width: 3, Depth: 3}
	assert.False(t, IsColliding(cand, c, []model.Stand{unplaced, elsewhere}, nil))
	assert.True(t, IsColliding(cand, c, nil, []model.UtilitySpace{door}))
}

func TestIsLayoutColliding(t *testing.T) {
	c := testContainer(10, 10)
	l := model.NewLayout()
	l.Containers = []model.Container{c}
	l.Stands = []model.Stand{
		placedStand("a", c, 0, 0, 3, 3),
		placedStand("b", c, 2, 2, 3, 3),
		placedStand("c", c, 6, 6, 3, 3),
	}

	assert.True(t, IsLayoutColliding(l, "a"))
	assert.True(t, IsLayoutColliding(l, "b"))
	assert.False(t, IsLayoutColliding(l, "c"))
	assert.False(t, IsLayoutColliding(l, "missing"))

	l.Stands[2].ContainerID = "gone"
	assert.True(t, IsLayoutColliding(l, "c"))
}

func TestFindFreePosition_EmptyContainer(t *testing.T) {
	c := testContainer(10, 10)
	p, ok := FindFreePosition(3, 3, 0, c, nil, nil)
	require.True(t, ok)
	assert.Equal(t, model.Point{X: 0, Y: 0}, p)
}

func TestFindFreePosition_SkipsOccupant(t *testing.T) {
	c := testContainer(10, 10)
	occupant := placedStand("a", c, 0, 0, 3, 3)

	p, ok := FindFreePosition(3, 3, 0, c, []model.Stand{occupant}, nil)
	require.True(t, ok)
	assert.InDelta(t, 30.0, p.X, 1e-9, "first grid cell right of the occupant")
	assert.InDelta(t, 0.0, p.Y, 1e-9)

	cand := Candidate{X: p.X, Y: p.Y, Width: 3, Depth: 3}
	assert.False(t, IsColliding(cand, c, []model.Stand{occupant}, nil))
}

func TestFindFreePosition_NextRow(t *testing.T) {
	c := testContainer(6, 6)
	wide := placedStand("a", c, 0, 0, 6, 2)

	p, ok := FindFreePosition(3, 3, 0, c, []model.Stand{wide}, nil)
	require.True(t, ok)
	assert.InDelta(t, 0.0, p.X, 1e-9)
	assert.InDelta(t, ToPercent(2, 6), p.Y, 1e-9)
}

func TestFindFreePosition_FullContainer(t *testing.T) {
	c := testContainer(4, 4)
	full := placedStand("a", c, 0, 0, 4, 4)

	p, ok := FindFreePosition(1, 1, 0, c, []model.Stand{full}, nil)
	assert.False(t, ok)
	assert.Equal(t, model.Point{}, p)

	_, ok = FindFreePosition(5, 5, 0, testContainer(4, 4), nil, nil)
	assert.False(t, ok, "object larger than the container never fits")
}

func TestSnapToGrid(t *testing.T) {
	assert.Equal(t, 0.0, SnapToGrid(0.2))
	assert.Equal(t, 0.5, SnapToGrid(0.3))
	assert.Equal(t, 2.5, SnapToGrid(2.74))
	assert.Equal(t, 3.0, SnapToGrid(2.76))
}

func alignLayout() model.Layout {
	c := testContainer(20, 10)
	l := model.NewLayout()
	l.Containers = []model.Container{c}
	l.Stands = []model.Stand{
		placedStand("A", c, 0, 0, 4, 4),
		placedStand("B", c, 5, 0, 3, 3),
	}
	return l
}

func TestAlign_LeftSnapsToFacingNeighbor(t *testing.T) {
	l := alignLayout()

	updates := Align(l, []string{"B"}, EdgeLeft)
	require.Len(t, updates, 1)
	assert.Equal(t, "B", updates[0].ID)
	assert.InDelta(t, 20.0, updates[0].X, 1e-9, "left edge at 4 m")
	assert.InDelta(t, 0.0, updates[0].Y, 1e-9)
}

func TestAlign_LeftIgnoresNonFacingObstacle(t *testing.T) {
	l := alignLayout()
	// Move B below A's vertical extent
	l.Stands[1].Position.Y = ToPercent(5, 10)

	updates := Align(l, []string{"B"}, EdgeLeft)
	require.Len(t, updates, 1)
	assert.InDelta(t, 0.0, updates[0].X, 1e-9, "snaps to the wall")
}

func TestAlign_RightAndWalls(t *testing.T) {
	l := alignLayout()

	updates := Align(l, []string{"A"}, EdgeRight)
	require.Len(t, updates, 1)
	assert.InDelta(t, ToPercent(1, 20), updates[0].X, 1e-9, "A's right edge meets B at 5 m")

	updates = Align(l, []string{"B"}, EdgeRight)
	require.Len(t, updates, 1)
	assert.InDelta(t, ToPercent(17, 20), updates[0].X, 1e-9)

	updates = Align(l, []string{"B"}, EdgeBottom)
	require.Len(t, updates, 1)
	assert.InDelta(t, ToPercent(7, 10), updates[0].Y, 1e-9)

	updates = Align(l, []string{"B"}, EdgeTop)
	require.Len(t, updates, 1)
	assert.InDelta(t, 0.0, updates[0].Y, 1e-9)
}

func TestAlign_TopSnapsBelowNeighbor(t *testing.T) {
	c := testContainer(20, 10)
	l := model.NewLayout()
	l.Containers = []model.Container{c}
	l.Stands = []model.Stand{
		placedStand("A", c, 0, 0, 4, 4),
		placedStand("B", c, 1, 6, 2, 2),
	}

	updates := Align(l, []string{"B"}, EdgeTop)
	require.Len(t, updates, 1)
	assert.InDelta(t, ToPercent(4, 10), updates[0].Y, 1e-9)
	assert.InDelta(t, ToPercent(1, 20), updates[0].X, 1e-9)
}

func TestAlign_CenterIgnoresObstacles(t *testing.T) {
	l := alignLayout()

	updates := Align(l, []string{"B"}, EdgeCenterX)
	require.Len(t, updates, 1)
	assert.InDelta(t, ToPercent(8.5, 20), updates[0].X, 1e-9)
	assert.InDelta(t, 0.0, updates[0].Y, 1e-9)

	updates = Align(l, []string{"B"}, EdgeCenterY)
	require.Len(t, updates, 1)
	assert.InDelta(t, ToPercent(3.5, 10), updates[0].Y, 1e-9)
}

func TestAlign_SelectedObjectsAreNotObstacles(t *testing.T) {
	l := alignLayout()

	updates := Align(l, []string{"A", "B"}, EdgeLeft)
	require.Len(t, updates, 2)
	for _, u := range updates {
		assert.InDelta(t, 0.0, u.X, 1e-9, u.ID)
	}
}

func TestAlign_SkipsUnplacedAndMissing(t *testing.T) {
	l := alignLayout()
	l.Stands[1].Position = nil

	assert.Empty(t, Align(l, []string{"B", "nope"}, EdgeLeft))
}

func TestParseEdge(t *testing.T) {
	e, err := ParseEdge(" Center-X ")
	require.NoError(t, err)
	assert.Equal(t, EdgeCenterX, e)

	_, err = ParseEdge("diagonal")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := testContainer(10, 10)
	l := model.NewLayout()
	l.Containers = []model.Container{c}
	l.Stands = []model.Stand{
		placedStand("a", c, 0, 0, 3, 3),
		placedStand("b", c, 3, 0, 3, 3),
	}
	assert.Empty(t, Validate(l))

	l.Stands = append(l.Stands,
		placedStand("c", c, 1, 1, 3, 3),
		placedStand("d", c, 9, 9, 3, 3),
	)
	orphan := placedStand("e", c, 0, 0, 1, 1)
	orphan.ContainerID = "gone"
	l.Stands = append(l.Stands, orphan)

	got := Validate(l)
	assert.Contains(t, got, Violation{Kind: ViolationOutOfBounds, ID: "d"})
	assert.Contains(t, got, Violation{Kind: ViolationUnknownContainer, ID: "e"})
	assert.Contains(t, got, Violation{Kind: ViolationOverlap, ID: "a", OtherID: "c"})
	assert.Contains(t, got, Violation{Kind: ViolationOverlap, ID: "b", OtherID: "c"})
	assert.Len(t, got, 4)
}

func assertOutline(t *testing.T, want, got []Vec) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].X, got[i].X, 1e-9, "point %d x", i)
		assert.InDelta(t, want[i].Y, got[i].Y, 1e-9, "point %d y", i)
	}
}

func TestStandOutline_Rectangle(t *testing.T) {
	c := testContainer(20, 10)
	s := placedStand("a", c, 10, 2, 4, 2)
	s.Rotation = 90

	got, ok := StandOutline(s, c.Width, c.Depth)
	require.True(t, ok)
	assertOutline(t, []Vec{{12, 2}, {12, 6}, {10, 6}, {10, 2}}, got)
}

func TestStandOutline_LRotationAndMirror(t *testing.T) {
	c := testContainer(20, 10)
	s := placedStand("l", c, 10, 0, 4, 4)
	s.Shape = model.ShapeL
	s.CutoutWidth, s.CutoutDepth = 2, 2

	got, ok := StandOutline(s, c.Width, c.Depth)
	require.True(t, ok)
	assertOutline(t, []Vec{{10, 0}, {12, 0}, {12, 2}, {14, 2}, {14, 4}, {10, 4}}, got)

	// a quarter turn moves the cutout to the bottom-right
	s.Rotation = 90
	got, _ = StandOutline(s, c.Width, c.Depth)
	assertOutline(t, []Vec{{14, 0}, {14, 2}, {12, 2}, {12, 4}, {10, 4}, {10, 0}}, got)

	// mirroring horizontally moves it to the top-left
	s.Rotation = 0
	s.MirrorH = true
	got, _ = StandOutline(s, c.Width, c.Depth)
	assertOutline(t, []Vec{{14, 0}, {12, 0}, {12, 2}, {10, 2}, {10, 4}, {14, 4}}, got)

	s.Position = nil
	_, ok = StandOutline(s, c.Width, c.Depth)
	assert.False(t, ok)
}

func TestCutoutBox(t *testing.T) {
	c := testContainer(20, 10)
	s := placedStand("l", c, 10, 0, 4, 4)
	_, ok := CutoutBox(s, c.Width, c.Depth)
	assert.False(t, ok, "rectangles have no cutout")

	s.Shape = model.ShapeL
	s.CutoutWidth, s.CutoutDepth = 2, 1
	box, ok := CutoutBox(s, c.Width, c.Depth)
	require.True(t, ok)
	assert.InDelta(t, 12.0, box.Left, 1e-9)
	assert.InDelta(t, 0.0, box.Top, 1e-9)
	assert.InDelta(t, 2.0, box.Width, 1e-9)
	assert.InDelta(t, 1.0, box.Height, 1e-9)

	s.Rotation = 180
	box, _ = CutoutBox(s, c.Width, c.Depth)
	assert.InDelta(t, 10.0, box.Left, 1e-9)
	assert.InDelta(t, 3.0, box.Top, 1e-9)
}
