// Package editor is the layout editing engine a host UI drives. An Editor
// owns the current layout, its undo history, the selection and the active
// pavilion, and exposes every user action as a command. Commands that
// would break the bounds or non-overlap rules are rejected and leave the
// layout untouched.
package editor

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/StandPlan/internal/engine"
	"github.com/piwi3910/StandPlan/internal/model"
)

// Options tunes the editing commands. All values are meters.
type Options struct {
	DuplicateOffset       float64
	NudgeStep             float64
	FineNudgeStep         float64
	DefaultStandWidth     float64
	DefaultStandDepth     float64
	DefaultContainerWidth float64
	DefaultContainerDepth float64
}

// DefaultOptions returns the built-in editing options.
func DefaultOptions() Options {
	return OptionsFromConfig(model.DefaultAppConfig())
}

// OptionsFromConfig derives editing options from user preferences.
func OptionsFromConfig(cfg model.AppConfig) Options {
	cfg = cfg.Sanitized()
	return Options{
		DuplicateOffset:       cfg.DuplicateOffset,
		NudgeStep:             cfg.NudgeStep,
		FineNudgeStep:         cfg.FineNudgeStep,
		DefaultStandWidth:     cfg.DefaultStandWidth,
		DefaultStandDepth:     cfg.DefaultStandDepth,
		DefaultContainerWidth: cfg.DefaultContainerWidth,
		DefaultContainerDepth: cfg.DefaultContainerDepth,
	}
}

// Editor is the single owner of the editable layout.
type Editor struct {
	tx        *Transactions
	selection *Selection
	active    string
	opts      Options
	logger    *log.Logger
}

// New creates an editor for a copy of the given layout. The first
// pavilion becomes the active one.
func New(l model.Layout, opts Options) *Editor {
	e := &Editor{
		tx:        NewTransactions(l),
		selection: NewSelection(),
		opts:      opts,
		logger:    log.New(io.Discard),
	}
	if len(l.Containers) > 0 {
		e.active = l.Containers[0].ID
	}
	return e
}

// SetLogger replaces the discard logger.
func (e *Editor) SetLogger(l *log.Logger) {
	if l != nil {
		e.logger = l
	}
}

func (e *Editor) Options() Options {
	return e.opts
}

// SetOptions replaces the editing defaults, e.g. after a settings change.
func (e *Editor) SetOptions(opts Options) {
	e.opts = opts
}

// Layout returns a copy of the current layout.
func (e *Editor) Layout() model.Layout {
	return e.tx.Current()
}

// Selection exposes the selection for queries. Use the selection commands
// to change it.
func (e *Editor) Selection() *Selection {
	return e.selection
}

// CanUndo reports whether there is history to restore.
func (e *Editor) CanUndo() bool {
	return e.tx.History().CanUndo()
}

// History returns the undo stack for display.
func (e *Editor) History() *History {
	return e.tx.History()
}

// Load replaces the layout, dropping history and selection.
func (e *Editor) Load(l model.Layout) {
	e.tx.Reset(l)
	e.selection.Clear()
	e.active = ""
	if len(l.Containers) > 0 {
		e.active = l.Containers[0].ID
	}
}

// ActiveContainer returns the pavilion new objects are added to.
func (e *Editor) ActiveContainer() (model.Container, bool) {
	view := e.tx.view()
	if c, ok := view.Container(e.active); ok {
		return c, true
	}
	if len(view.Containers) > 0 {
		return view.Containers[0], true
	}
	return model.Container{}, false
}

// SetActiveContainer switches the pavilion new objects are added to.
func (e *Editor) SetActiveContainer(id string) bool {
	if _, ok := e.tx.view().Container(id); !ok {
		return false
	}
	e.active = id
	return true
}

// commit records a labelled change that replaces the layout with next.
func (e *Editor) commit(label string, next model.Layout) {
	e.tx.Replace(label, next)
	e.logger.Debug("commit", "label", label, "history", e.tx.History().Len())
}

// ContainerGap separates pavilions laid out side by side on the canvas,
// in meters.
const ContainerGap = 5.0

// AddContainer adds a pavilion to the right of the existing ones and makes
// it active. Invalid dimensions fall back to the configured defaults.
func (e *Editor) AddContainer(name string, kind model.StructureKind, width, depth float64) model.Container {
	if width <= 0 {
		width = e.opts.DefaultContainerWidth
	}
	if depth <= 0 {
		depth = e.opts.DefaultContainerDepth
	}
	c := model.NewContainer(name, kind, width, depth)
	next := e.tx.view().Clone()
	for _, other := range next.Containers {
		if right := other.OffsetX + other.Width + ContainerGap; right > c.OffsetX {
			c.OffsetX = right
		}
	}
	next.Containers = append(next.Containers, c)
	e.commit("Add Pavilion", next)
	e.active = c.ID
	return c
}

// AddStand adds a stand to the active pavilion at the first free grid
// cell and selects it. When the pavilion is full the stand goes to the
// backlog and the result is false. Without any pavilion nothing happens.
func (e *Editor) AddStand(shape model.Shape) (model.Stand, bool) {
	s := model.NewStand(shape, "")
	if s.Shape == model.ShapeRectangle {
		s.Width = e.opts.DefaultStandWidth
		s.Depth = e.opts.DefaultStandDepth
		s.RecomputeArea()
	}
	return e.addStand(s, "Add Stand")
}

// AddPresetStand adds a stand built from an inventory preset, following
// the same rules as AddStand.
func (e *Editor) AddPresetStand(p model.StandPreset) (model.Stand, bool) {
	return e.addStand(p.ToStand(""), "Add "+p.Name)
}

func (e *Editor) addStand(s model.Stand, label string) (model.Stand, bool) {
	c, ok := e.ActiveContainer()
	if !ok {
		return model.Stand{}, false
	}
	next := e.tx.view().Clone()

	s.ContainerID = c.ID
	s.Number = next.NextStandNumber()
	p, placed := engine.FindFreePosition(s.Width, s.Depth, s.Rotation, c, next.Stands, next.Utilities)
	if placed {
		s.Position = &p
	} else {
		e.logger.Debug("no free cell, stand goes to backlog", "container", c.ID, "stand", s.Number)
	}

	next.Stands = append(next.Stands, s)
	e.commit(label, next)
	e.selection.Set(s.ID)
	return s, placed
}

// AddUtilitySpace adds a utility space to the active pavilion, following
// the same rules as AddStand.
func (e *Editor) AddUtilitySpace(category model.UtilityCategory) (model.UtilitySpace, bool) {
	c, ok := e.ActiveContainer()
	if !ok {
		return model.UtilitySpace{}, false
	}
	next := e.tx.view().Clone()

	u := model.NewUtilitySpace(category, c.ID)
	p, placed := engine.FindFreePosition(u.Width, u.Depth, u.Rotation, c, next.Stands, next.Utilities)
	if placed {
		u.Position = &p
	} else {
		e.logger.Debug("no free cell, utility goes to backlog", "container", c.ID, "category", category)
	}

	next.Utilities = append(next.Utilities, u)
	e.commit("Add "+u.Label, next)
	e.selection.Set(u.ID)
	return u, placed
}

// MoveSelection shifts every selected placed object by dx, dy meters.
// Objects that would collide stay where they are.
func (e *Editor) MoveSelection(dx, dy float64) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	return e.editSelection("Move", func(l model.Layout, p model.Placeable) (model.Placeable, bool) {
		fp := p.Geometry()
		if !fp.IsPlaced() {
			return p, false
		}
		c, ok := l.Container(fp.ContainerID)
		if !ok {
			return p, false
		}
		moved := fp.At(fp.Position.X+engine.ToPercent(dx, c.Width), fp.Position.Y+engine.ToPercent(dy, c.Depth))
		return withFootprint(p, moved), true
	})
}

// Nudge moves the selection one keyboard step in the given direction.
// Fine selects the precision step.
func (e *Editor) Nudge(dirX, dirY int, fine bool) bool {
	step := e.opts.NudgeStep
	if fine {
		step = e.opts.FineNudgeStep
	}
	return e.MoveSelection(float64(dirX)*step, float64(dirY)*step)
}

// RotateSelection adds degrees to every selected object's rotation.
// Objects whose rotated footprint would collide keep their rotation.
func (e *Editor) RotateSelection(degrees int) bool {
	if degrees == 0 {
		return false
	}
	return e.editSelection("Rotate", func(_ model.Layout, p model.Placeable) (model.Placeable, bool) {
		fp := p.Geometry()
		fp.Rotation = engine.NormalizeRotation(fp.Rotation + degrees)
		return withFootprint(p, fp), true
	})
}

// DeleteSelection returns every selected placed object to the backlog and
// clears the selection.
func (e *Editor) DeleteSelection() bool {
	if e.selection.Len() == 0 {
		return false
	}
	next := e.tx.view().Clone()
	removed := 0
	for _, id := range e.selection.IDs() {
		fp, ok := next.Footprint(id)
		if !ok || !fp.IsPlaced() {
			continue
		}
		next.SetFootprint(id, fp.Unplaced())
		removed++
	}
	if removed == 0 {
		return false
	}
	e.commit("Remove", next)
	e.selection.Clear()
	return true
}

// PurgeSelection deletes every selected object from the layout.
func (e *Editor) PurgeSelection() bool {
	if e.selection.Len() == 0 {
		return false
	}
	ids := make(map[string]bool, e.selection.Len())
	for _, id := range e.selection.IDs() {
		ids[id] = true
	}
	next := e.tx.view().Clone()
	if next.Remove(ids) == 0 {
		return false
	}
	e.commit("Delete", next)
	e.selection.Clear()
	return true
}

// DuplicateSelection clones every selected object with fresh ids and
// selects the clones. A placed clone sits offset meters right of and below
// its original; if that spot is taken it goes to the first free cell, and
// failing that to the backlog. A non-positive offset uses the configured
// one.
func (e *Editor) DuplicateSelection(offset float64) bool {
	if e.selection.Len() == 0 {
		return false
	}
	if offset <= 0 {
		offset = e.opts.DuplicateOffset
	}
	next := e.tx.view().Clone()

	var clones []string
	for _, id := range e.selection.IDs() {
		p, ok := next.Placeable(id)
		if !ok {
			continue
		}
		fp := duplicateFootprint(next, p.Geometry(), offset)
		switch v := p.(type) {
		case model.Stand:
			v.ID = model.NewID()
			v.Number = next.NextStandNumber()
			v.Footprint = fp
			next.Stands = append(next.Stands, v)
			clones = append(clones, v.ID)
		case model.UtilitySpace:
			v.ID = model.NewID()
			v.Footprint = fp
			next.Utilities = append(next.Utilities, v)
			clones = append(clones, v.ID)
		}
	}
	if len(clones) == 0 {
		return false
	}
	e.commit("Duplicate", next)
	e.selection.Set(clones...)
	return true
}

// duplicateFootprint picks the position of a clone of fp within l.
func duplicateFootprint(l model.Layout, fp model.Footprint, offset float64) model.Footprint {
	if !fp.IsPlaced() {
		return fp.Unplaced()
	}
	c, ok := l.Container(fp.ContainerID)
	if !ok {
		return fp.Unplaced()
	}
	shifted := fp.At(fp.Position.X+engine.ToPercent(offset, c.Width), fp.Position.Y+engine.ToPercent(offset, c.Depth))
	cand, _ := engine.CandidateOf("", shifted)
	if !engine.IsColliding(cand, c, l.Stands, l.Utilities) {
		return shifted
	}
	if p, found := engine.FindFreePosition(fp.Width, fp.Depth, fp.Rotation, c, l.Stands, l.Utilities); found {
		return fp.At(p.X, p.Y)
	}
	return fp.Unplaced()
}

// AlignSelection snaps each selected object against its nearest facing
// neighbor or wall. Objects whose aligned position collides stay put.
func (e *Editor) AlignSelection(edge engine.Edge) bool {
	if e.selection.Len() == 0 {
		return false
	}
	view := e.tx.view()
	updates := engine.Align(view, e.selection.IDs(), edge)
	if len(updates) == 0 {
		return false
	}
	next := view.Clone()
	prior := make(map[string]model.Placeable, len(updates))
	var order []string
	for _, u := range updates {
		p, _ := next.Placeable(u.ID)
		fp := p.Geometry()
		if fp.Position.X == u.X && fp.Position.Y == u.Y {
			continue
		}
		prior[u.ID] = p
		order = append(order, u.ID)
		next.SetFootprint(u.ID, fp.At(u.X, u.Y))
	}
	return e.settle("Align "+string(edge), next, prior, order)
}

// Undo restores the layout before the last change and drops selected ids
// that no longer exist.
func (e *Editor) Undo() bool {
	label, ok := e.tx.Undo()
	if !ok {
		return false
	}
	view := e.tx.view()
	e.selection.Retain(func(id string) bool {
		_, exists := view.Placeable(id)
		return exists
	})
	if _, exists := view.Container(e.active); !exists {
		e.active = ""
	}
	e.logger.Debug("undo", "label", label, "history", e.tx.History().Len())
	return true
}

// MovePlaceable commits a drag-drop of one object to a percentage
// position, possibly in another pavilion. A drop that would collide is
// rejected.
func (e *Editor) MovePlaceable(id, containerID string, x, y float64) bool {
	view := e.tx.view()
	p, ok := view.Placeable(id)
	if !ok {
		return false
	}
	c, ok := view.Container(containerID)
	if !ok {
		return false
	}
	fp := p.Geometry()
	if fp.IsPlaced() && fp.ContainerID == containerID && fp.Position.X == x && fp.Position.Y == y {
		return false
	}
	fp.ContainerID = containerID
	fp = fp.At(x, y)

	cand, _ := engine.CandidateOf(id, fp)
	if engine.IsColliding(cand, c, view.Stands, view.Utilities) {
		e.logger.Debug("drop rejected", "id", id, "container", containerID, "x", x, "y", y)
		return false
	}
	next := view.Clone()
	next.SetFootprint(id, fp)
	e.commit("Move", next)
	return true
}

// PlaceBacklog auto-places every unplaced object at the first free cell
// of its pavilion, or of the active pavilion if its own is gone. It
// returns how many objects were placed.
func (e *Editor) PlaceBacklog() int {
	next := e.tx.view().Clone()
	active, hasActive := e.ActiveContainer()
	placed := 0
	for _, p := range next.Backlog() {
		fp := p.Geometry()
		c, ok := next.Container(fp.ContainerID)
		if !ok {
			if !hasActive {
				continue
			}
			c = active
			fp.ContainerID = c.ID
		}
		pos, found := engine.FindFreePosition(fp.Width, fp.Depth, fp.Rotation, c, next.Stands, next.Utilities)
		if !found {
			continue
		}
		next.SetFootprint(p.PlaceableID(), fp.At(pos.X, pos.Y))
		placed++
	}
	if placed > 0 {
		e.commit("Place Backlog", next)
	}
	return placed
}

// ImportStands adds stands to the active pavilion in one change. Missing
// ids and numbers are generated and each stand is placed at the first free
// cell or left in the backlog. It returns how many stands were placed.
func (e *Editor) ImportStands(stands []model.Stand) int {
	c, ok := e.ActiveContainer()
	if !ok || len(stands) == 0 {
		return 0
	}
	next := e.tx.view().Clone()
	placed := 0
	for _, s := range stands {
		if _, taken := next.Placeable(s.ID); s.ID == "" || taken {
			s.ID = model.NewID()
		}
		if s.Number == "" {
			s.Number = next.NextStandNumber()
		}
		if s.Color == "" {
			s.Color = model.DefaultStandColor
		}
		s.ContainerID = c.ID
		s.Position = nil
		s.RecomputeArea()
		if p, found := engine.FindFreePosition(s.Width, s.Depth, s.Rotation, c, next.Stands, next.Utilities); found {
			s.Position = &p
			placed++
		}
		next.Stands = append(next.Stands, s)
	}
	e.commit("Import Stands", next)
	e.logger.Debug("imported stands", "count", len(stands), "placed", placed)
	return placed
}

// editFunc derives the edited version of one selected object. The bool is
// false when the object is not affected.
type editFunc func(l model.Layout, p model.Placeable) (model.Placeable, bool)

// editSelection applies edit to every selected object and commits the
// result after collision settling.
func (e *Editor) editSelection(label string, edit editFunc) bool {
	if e.selection.Len() == 0 {
		return false
	}
	next := e.tx.view().Clone()
	prior := make(map[string]model.Placeable)
	var order []string
	for _, id := range e.selection.IDs() {
		p, ok := next.Placeable(id)
		if !ok {
			continue
		}
		edited, changed := edit(next, p)
		if !changed {
			continue
		}
		prior[id] = p
		order = append(order, id)
		next.ReplacePlaceable(edited)
	}
	return e.settle(label, next, prior, order)
}

// settle reverts changed objects that collide until no changed object
// collides, then commits if anything is still changed. Objects later in
// order yield to earlier ones.
func (e *Editor) settle(label string, next model.Layout, prior map[string]model.Placeable, order []string) bool {
	kept := len(order)
	for {
		reverted := false
		for i := len(order) - 1; i >= 0; i-- {
			id := order[i]
			p, pending := prior[id]
			if !pending {
				continue
			}
			if engine.IsLayoutColliding(next, id) {
				next.ReplacePlaceable(p)
				delete(prior, id)
				kept--
				reverted = true
				e.logger.Debug("change rejected", "label", label, "id", id)
			}
		}
		if !reverted {
			break
		}
	}
	if kept == 0 {
		return false
	}
	e.commit(label, next)
	return true
}

func withFootprint(p model.Placeable, fp model.Footprint) model.Placeable {
	switch v := p.(type) {
	case model.Stand:
		v.Footprint = fp
		return v
	case model.UtilitySpace:
		v.Footprint = fp
		return v
	}
	return p
}
