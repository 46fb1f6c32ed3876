package model

import (
	"math"
	"strconv"

	"github.com/google/uuid"
)

// Default pavilion dimensions in meters, applied when a container is
// missing a usable width or depth.
const (
	DefaultContainerWidth = 40.0
	DefaultContainerDepth = 30.0
)

// newID returns a short random identifier.
func newID() string {
	return uuid.New().String()[:8]
}

// NewID exposes the identifier generator for packages that clone entities.
func NewID() string {
	return newID()
}

// StructureKind describes how a pavilion is built.
type StructureKind string

const (
	StructureHall    StructureKind = "hall"     // Enclosed exhibition hall
	StructureMarquee StructureKind = "marquee"  // Temporary tent structure
	StructureOpenAir StructureKind = "open-air" // Open lot, no walls
)

func (k StructureKind) String() string {
	switch k {
	case StructureMarquee:
		return "Marquee"
	case StructureOpenAir:
		return "Open Air"
	default:
		return "Hall"
	}
}

// Container is a rectangular pavilion that hosts stands and utility spaces.
type Container struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Kind    StructureKind `json:"kind"`
	Width   float64       `json:"width"`    // meters
	Depth   float64       `json:"depth"`    // meters
	OffsetX float64       `json:"offset_x"` // meters, position on the shared canvas
	OffsetY float64       `json:"offset_y"` // meters
}

func NewContainer(name string, kind StructureKind, w, d float64) Container {
	return Container{
		ID:    newID(),
		Name:  name,
		Kind:  kind,
		Width: w,
		Depth: d,
	}.Normalized()
}

// Normalized returns a copy with defaults applied to any missing or
// invalid dimension.
func (c Container) Normalized() Container {
	if !validDimension(c.Width) {
		c.Width = DefaultContainerWidth
	}
	if !validDimension(c.Depth) {
		c.Depth = DefaultContainerDepth
	}
	if c.Kind == "" {
		c.Kind = StructureHall
	}
	return c
}

func validDimension(v float64) bool {
	return v > 0 && IsFinite(v)
}

// Point is a position expressed as a percentage of the container's
// width (X) and depth (Y). It marks the top-left corner of the rotated
// footprint.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Footprint holds the geometry every placeable object shares.
type Footprint struct {
	ContainerID string  `json:"container_id"`
	Width       float64 `json:"width"` // meters
	Depth       float64 `json:"depth"` // meters
	Rotation    int     `json:"rotation"`
	Position    *Point  `json:"position,omitempty"` // nil while in the unplaced backlog
	MirrorH     bool    `json:"mirror_h,omitempty"`
	MirrorV     bool    `json:"mirror_v,omitempty"`
}

// IsPlaced reports whether the object sits inside its container.
func (f Footprint) IsPlaced() bool {
	return f.Position != nil
}

// NormalizedRotation returns the rotation folded into [0, 360).
func (f Footprint) NormalizedRotation() int {
	r := f.Rotation % 360
	if r < 0 {
		r += 360
	}
	return r
}

// normalized folds the rotation, replaces unusable sizes with w and d and
// sends objects with a non-finite position back to the backlog.
func (f Footprint) normalized(w, d float64) Footprint {
	if !validDimension(f.Width) {
		f.Width = w
	}
	if !validDimension(f.Depth) {
		f.Depth = d
	}
	f.Rotation = f.NormalizedRotation()
	if f.Position != nil && !(IsFinite(f.Position.X) && IsFinite(f.Position.Y)) {
		f.Position = nil
	}
	return f
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// At returns a copy of the footprint positioned at x, y percent.
func (f Footprint) At(x, y float64) Footprint {
	f.Position = &Point{X: x, Y: y}
	return f
}

// Unplaced returns a copy of the footprint moved to the backlog.
func (f Footprint) Unplaced() Footprint {
	f.Position = nil
	return f
}

func (f Footprint) clone() Footprint {
	if f.Position != nil {
		p := *f.Position
		f.Position = &p
	}
	return f
}

// Shape is the outline class of a stand.
type Shape string

const (
	ShapeRectangle Shape = "rectangle"
	ShapeL         Shape = "L"
)

// ParseShape maps user input onto a Shape, defaulting to rectangle.
func ParseShape(s string) Shape {
	switch s {
	case "L", "l", "l-shape", "L-shape":
		return ShapeL
	default:
		return ShapeRectangle
	}
}

// Kind tags the concrete type behind a Placeable.
type Kind int

const (
	KindStand Kind = iota
	KindUtility
)

func (k Kind) String() string {
	if k == KindUtility {
		return "Utility"
	}
	return "Stand"
}

// Placeable is implemented by Stand and UtilitySpace.
type Placeable interface {
	PlaceableID() string
	PlaceableKind() Kind
	Geometry() Footprint
}

// Stand is an exhibitor stand.
type Stand struct {
	Footprint
	ID          string  `json:"id"`
	Number      string  `json:"number"`
	Shape       Shape   `json:"shape"`
	CutoutWidth float64 `json:"cutout_width,omitempty"` // meters, L only
	CutoutDepth float64 `json:"cutout_depth,omitempty"` // meters, L only
	Area        float64 `json:"area"`                   // square meters
	OccupantID  string  `json:"occupant_id,omitempty"`
	Color       string  `json:"color"`
	ImageRef    string  `json:"image_ref,omitempty"`
}

// Default stand dimensions in meters.
const (
	DefaultStandWidth   = 3.0
	DefaultStandDepth   = 3.0
	DefaultLStandWidth  = 5.0
	DefaultLStandDepth  = 4.0
	DefaultLCutoutWidth = 2.0
	DefaultLCutoutDepth = 2.0
	DefaultStandColor   = "#4CAF50"
)

// NewStand creates an unplaced stand of the given shape with default
// dimensions.
func NewStand(shape Shape, containerID string) Stand {
	s := Stand{
		Footprint: Footprint{
			ContainerID: containerID,
			Width:       DefaultStandWidth,
			Depth:       DefaultStandDepth,
		},
		ID:    newID(),
		Shape: ShapeRectangle,
		Color: DefaultStandColor,
	}
	if shape == ShapeL {
		s.Shape = ShapeL
		s.Width = DefaultLStandWidth
		s.Depth = DefaultLStandDepth
		s.CutoutWidth = DefaultLCutoutWidth
		s.CutoutDepth = DefaultLCutoutDepth
	}
	s.RecomputeArea()
	return s
}

func (s Stand) PlaceableID() string { return s.ID }
func (s Stand) PlaceableKind() Kind { return KindStand }
func (s Stand) Geometry() Footprint { return s.Footprint }

// HasCutout reports whether the stand is an L with a usable cutout.
func (s Stand) HasCutout() bool {
	return s.Shape == ShapeL && s.CutoutWidth > 0 && s.CutoutDepth > 0
}

// ComputeArea returns the floor area of the stand. L-shaped stands lose
// their cutout; the result is never negative.
func (s Stand) ComputeArea() float64 {
	area := s.Width * s.Depth
	if s.Shape == ShapeL {
		area -= s.CutoutWidth * s.CutoutDepth
	}
	return math.Max(0, area)
}

// RecomputeArea refreshes the persisted Area field.
func (s *Stand) RecomputeArea() {
	s.Area = s.ComputeArea()
}

// Normalized returns a copy that is safe to lay out: unusable dimensions
// get the shape defaults, cutouts that do not fit are cleared and the
// area is recomputed.
func (s Stand) Normalized() Stand {
	s.Shape = ParseShape(string(s.Shape))
	if s.ID == "" {
		s.ID = newID()
	}
	w, d := DefaultStandWidth, DefaultStandDepth
	if s.Shape == ShapeL {
		w, d = DefaultLStandWidth, DefaultLStandDepth
	}
	s.Footprint = s.Footprint.normalized(w, d)
	if s.Shape != ShapeL || !validCutout(s.CutoutWidth, s.Width) || !validCutout(s.CutoutDepth, s.Depth) {
		s.CutoutWidth, s.CutoutDepth = 0, 0
	}
	s.RecomputeArea()
	return s
}

func validCutout(v, limit float64) bool {
	return validDimension(v) && v < limit
}

// UtilitySpace is a non-exhibitor facility (door, restroom, stage...).
type UtilitySpace struct {
	Footprint
	ID       string          `json:"id"`
	Category UtilityCategory `json:"category"`
	Label    string          `json:"label"`
	Color    string          `json:"color"`
}

// NewUtilitySpace creates an unplaced utility space sized from the
// category defaults.
func NewUtilitySpace(category UtilityCategory, containerID string) UtilitySpace {
	d := category.Defaults()
	return UtilitySpace{
		Footprint: Footprint{
			ContainerID: containerID,
			Width:       d.Width,
			Depth:       d.Depth,
		},
		ID:       newID(),
		Category: category,
		Label:    d.Label,
		Color:    d.Color,
	}
}

// Normalized returns a copy with a usable id and size; invalid dimensions
// fall back to the category defaults.
func (u UtilitySpace) Normalized() UtilitySpace {
	if u.ID == "" {
		u.ID = newID()
	}
	d := u.Category.Defaults()
	u.Footprint = u.Footprint.normalized(d.Width, d.Depth)
	return u
}

func (u UtilitySpace) PlaceableID() string { return u.ID }
func (u UtilitySpace) PlaceableKind() Kind { return KindUtility }
func (u UtilitySpace) Geometry() Footprint { return u.Footprint }

// Layout is the full record the engine manages: pavilions plus every
// stand and utility space placed in (or waiting for) them.
type Layout struct {
	Name       string         `json:"name"`
	Containers []Container    `json:"containers"`
	Stands     []Stand        `json:"stands"`
	Utilities  []UtilitySpace `json:"utilities"`
}

func NewLayout() Layout {
	return Layout{
		Name:       "Untitled",
		Containers: []Container{},
		Stands:     []Stand{},
		Utilities:  []UtilitySpace{},
	}
}

// Clone returns a deep copy. Snapshots taken before a mutation must never
// share positions with the mutated record.
func (l Layout) Clone() Layout {
	cp := Layout{Name: l.Name}
	if l.Containers != nil {
		cp.Containers = make([]Container, len(l.Containers))
		copy(cp.Containers, l.Containers)
	}
	if l.Stands != nil {
		cp.Stands = make([]Stand, len(l.Stands))
		for i, s := range l.Stands {
			s.Footprint = s.Footprint.clone()
			cp.Stands[i] = s
		}
	}
	if l.Utilities != nil {
		cp.Utilities = make([]UtilitySpace, len(l.Utilities))
		for i, u := range l.Utilities {
			u.Footprint = u.Footprint.clone()
			cp.Utilities[i] = u
		}
	}
	return cp
}

// Container looks up a pavilion by id.
func (l Layout) Container(id string) (Container, bool) {
	for _, c := range l.Containers {
		if c.ID == id {
			return c, true
		}
	}
	return Container{}, false
}

// Placeables returns stands followed by utility spaces.
func (l Layout) Placeables() []Placeable {
	out := make([]Placeable, 0, len(l.Stands)+len(l.Utilities))
	for _, s := range l.Stands {
		out = append(out, s)
	}
	for _, u := range l.Utilities {
		out = append(out, u)
	}
	return out
}

// Placeable looks up a stand or utility space by id.
func (l Layout) Placeable(id string) (Placeable, bool) {
	for _, s := range l.Stands {
		if s.ID == id {
			return s, true
		}
	}
	for _, u := range l.Utilities {
		if u.ID == id {
			return u, true
		}
	}
	return nil, false
}

// Footprint returns the geometry of the object with the given id.
func (l Layout) Footprint(id string) (Footprint, bool) {
	p, ok := l.Placeable(id)
	if !ok {
		return Footprint{}, false
	}
	return p.Geometry(), true
}

// SetFootprint replaces the geometry of the object with the given id in
// place. Callers work on a clone.
func (l *Layout) SetFootprint(id string, f Footprint) bool {
	for i := range l.Stands {
		if l.Stands[i].ID == id {
			l.Stands[i].Footprint = f
			return true
		}
	}
	for i := range l.Utilities {
		if l.Utilities[i].ID == id {
			l.Utilities[i].Footprint = f
			return true
		}
	}
	return false
}

// Backlog returns every object without a position.
func (l Layout) Backlog() []Placeable {
	var out []Placeable
	for _, p := range l.Placeables() {
		if !p.Geometry().IsPlaced() {
			out = append(out, p)
		}
	}
	return out
}

// NextStandNumber returns one more than the highest numeric stand number.
func (l Layout) NextStandNumber() string {
	highest := 0
	for _, s := range l.Stands {
		if n, err := strconv.Atoi(s.Number); err == nil && n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1)
}

// ReplacePlaceable overwrites the stand or utility space with the same id.
func (l *Layout) ReplacePlaceable(p Placeable) bool {
	switch v := p.(type) {
	case Stand:
		for i := range l.Stands {
			if l.Stands[i].ID == v.ID {
				l.Stands[i] = v
				return true
			}
		}
	case UtilitySpace:
		for i := range l.Utilities {
			if l.Utilities[i].ID == v.ID {
				l.Utilities[i] = v
				return true
			}
		}
	}
	return false
}

// Remove drops every stand and utility space whose id is in ids and
// returns how many were removed.
func (l *Layout) Remove(ids map[string]bool) int {
	removed := 0
	stands := l.Stands[:0:0]
	for _, s := range l.Stands {
		if ids[s.ID] {
			removed++
			continue
		}
		stands = append(stands, s)
	}
	utilities := l.Utilities[:0:0]
	for _, u := range l.Utilities {
		if ids[u.ID] {
			removed++
			continue
		}
		utilities = append(utilities, u)
	}
	l.Stands = stands
	l.Utilities = utilities
	return removed
}
