package interact

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/piwi3910/StandPlan/internal/editor"
	"github.com/piwi3910/StandPlan/internal/engine"
	"github.com/piwi3910/StandPlan/internal/model"
)

// keyPlus is the name fyne reports for a shifted "=" on most layouts.
const keyPlus fyne.KeyName = "+"

// RotateStep is the rotation applied by the keyboard shortcut.
const RotateStep = 90

// DragPreview describes where a dragged object would land.
type DragPreview struct {
	ID          string
	ContainerID string
	X, Y        float64 // percent, snapped
	Valid       bool
}

type dragState struct {
	id           string
	grabX, grabY float64 // meters from the object's top-left to the cursor
	current      fyne.Position
}

// Controller translates device input into editor commands.
type Controller struct {
	editor *editor.Editor
	view   Viewport
	size   fyne.Size

	spaceHeld   bool
	textFocus   bool
	pointerDown bool
	panning     bool
	background  bool // pointer went down on empty canvas
	moved       bool
	last        fyne.Position
	drag        *dragState

	// OnExitFullScreen is called when Escape is pressed with nothing
	// selected.
	OnExitFullScreen func()
}

// NewController binds a controller to an editor.
func NewController(e *editor.Editor) *Controller {
	return &Controller{
		editor: e,
		view:   NewViewport(),
	}
}

func (c *Controller) Editor() *editor.Editor {
	return c.editor
}

// Viewport returns the current view transform.
func (c *Controller) Viewport() Viewport {
	return c.view
}

// SetCanvasSize records the drawable size used to anchor keyboard zoom.
func (c *Controller) SetCanvasSize(size fyne.Size) {
	c.size = size
}

// SetTextFocus suppresses keyboard shortcuts while a text input has focus.
func (c *Controller) SetTextFocus(focused bool) {
	c.textFocus = focused
}

// PointerDown starts a pan, a selection change or a drag.
func (c *Controller) PointerDown(pos fyne.Position, button desktop.MouseButton, mods fyne.KeyModifier) {
	c.pointerDown = true
	c.moved = false
	c.background = false
	c.last = pos

	if button == desktop.MouseButtonTertiary || c.spaceHeld {
		c.panning = true
		return
	}
	if button != desktop.MouseButtonPrimary {
		return
	}

	hit, ok := c.HitTest(pos)
	if !ok {
		c.panning = true
		c.background = true
		return
	}

	if isCommand(mods) {
		c.editor.Dispatch(editor.Command{Kind: editor.CmdToggleSelect, ID: hit.ID})
		if !c.editor.Selection().Contains(hit.ID) {
			return
		}
	} else {
		c.editor.Dispatch(editor.Command{Kind: editor.CmdSelect, ID: hit.ID})
	}
	c.drag = &dragState{id: hit.ID, grabX: hit.GrabX, grabY: hit.GrabY, current: pos}
}

// PointerMove pans the view or updates the drag position.
func (c *Controller) PointerMove(pos fyne.Position) {
	if !c.pointerDown {
		return
	}
	switch {
	case c.panning:
		c.view.Pan(float64(pos.X-c.last.X), float64(pos.Y-c.last.Y))
		c.moved = true
	case c.drag != nil:
		c.drag.current = pos
		c.moved = true
	}
	c.last = pos
}

// PointerUp finishes the gesture. A drag that moved is committed through
// the editor if the drop is valid; a background click that did not pan
// clears the selection.
func (c *Controller) PointerUp(pos fyne.Position) bool {
	defer c.endGesture()

	if c.panning {
		if c.background {
			return c.editor.Dispatch(editor.Command{Kind: editor.CmdBackgroundClick, Dragged: c.moved})
		}
		return false
	}
	if c.drag == nil || !c.moved {
		return false
	}
	c.drag.current = pos
	preview, ok := c.preview()
	if !ok {
		return false
	}
	return c.editor.Dispatch(editor.Command{
		Kind:        editor.CmdMovePlaceable,
		ID:          preview.ID,
		ContainerID: preview.ContainerID,
		X:           preview.X,
		Y:           preview.Y,
	})
}

// Pressed reports whether a gesture is in progress.
func (c *Controller) Pressed() bool {
	return c.pointerDown
}

// CancelGesture abandons any pan or drag without committing.
func (c *Controller) CancelGesture() {
	c.endGesture()
}

func (c *Controller) endGesture() {
	c.pointerDown = false
	c.panning = false
	c.background = false
	c.drag = nil
}

// StartBacklogDrag begins dragging an object from outside the canvas,
// typically the unplaced list. The cursor grabs the object's center.
func (c *Controller) StartBacklogDrag(id string) bool {
	fp, ok := c.editor.Layout().Footprint(id)
	if !ok {
		return false
	}
	w, d := engine.EffectiveDimensions(fp.Width, fp.Depth, fp.Rotation)
	c.pointerDown = true
	c.panning = false
	c.moved = true
	c.drag = &dragState{id: id, grabX: w / 2, grabY: d / 2, current: c.last}
	return true
}

// Drag reports the drop target of the object being dragged.
func (c *Controller) Drag() (DragPreview, bool) {
	if c.drag == nil || !c.moved {
		return DragPreview{}, false
	}
	return c.preview()
}

// preview computes the snapped drop position. The second result is false
// if the cursor is outside every pavilion.
func (c *Controller) preview() (DragPreview, bool) {
	l := c.editor.Layout()
	wx, wy := c.view.ScreenToWorld(c.drag.current)
	container, ok := ContainerAt(l, wx, wy)
	if !ok {
		return DragPreview{}, false
	}
	fp, ok := l.Footprint(c.drag.id)
	if !ok {
		return DragPreview{}, false
	}

	left := engine.SnapToGrid(wx - container.OffsetX - c.drag.grabX)
	top := engine.SnapToGrid(wy - container.OffsetY - c.drag.grabY)
	p := DragPreview{
		ID:          c.drag.id,
		ContainerID: container.ID,
		X:           engine.ToPercent(left, container.Width),
		Y:           engine.ToPercent(top, container.Depth),
	}
	fp.ContainerID = container.ID
	cand, _ := engine.CandidateOf(c.drag.id, fp.At(p.X, p.Y))
	p.Valid = !engine.IsColliding(cand, container, l.Stands, l.Utilities)
	return p, true
}

// Scroll zooms around the cursor.
func (c *Controller) Scroll(pos fyne.Position, deltaY float32) {
	switch {
	case deltaY > 0:
		c.view.ZoomAt(pos, ZoomStep)
	case deltaY < 0:
		c.view.ZoomAt(pos, 1/ZoomStep)
	}
}

// KeyDown handles a key press and reports whether it was consumed.
func (c *Controller) KeyDown(name fyne.KeyName, mods fyne.KeyModifier) bool {
	if c.textFocus {
		return false
	}
	command := isCommand(mods)
	shift := mods&fyne.KeyModifierShift != 0

	if command {
		switch {
		case name == fyne.KeyZ:
			c.editor.Dispatch(editor.Command{Kind: editor.CmdUndo})
		case name == fyne.KeyD:
			c.editor.Dispatch(editor.Command{Kind: editor.CmdDuplicate})
		case shift && name == fyne.KeyR:
			c.editor.Dispatch(editor.Command{Kind: editor.CmdAddStand, Shape: model.ShapeRectangle})
		case shift && name == fyne.KeyL:
			c.editor.Dispatch(editor.Command{Kind: editor.CmdAddStand, Shape: model.ShapeL})
		default:
			return false
		}
		return true
	}

	switch name {
	case fyne.KeySpace:
		c.spaceHeld = true
	case fyne.KeyDelete, fyne.KeyBackspace:
		c.editor.Dispatch(editor.Command{Kind: editor.CmdDelete})
	case fyne.KeyLeft:
		c.editor.Dispatch(editor.Command{Kind: editor.CmdNudge, DX: -1, Fine: shift})
	case fyne.KeyRight:
		c.editor.Dispatch(editor.Command{Kind: editor.CmdNudge, DX: 1, Fine: shift})
	case fyne.KeyUp:
		c.editor.Dispatch(editor.Command{Kind: editor.CmdNudge, DY: -1, Fine: shift})
	case fyne.KeyDown:
		c.editor.Dispatch(editor.Command{Kind: editor.CmdNudge, DY: 1, Fine: shift})
	case fyne.KeyR:
		c.editor.Dispatch(editor.Command{Kind: editor.CmdRotate, Degrees: RotateStep})
	case fyne.KeyEscape:
		if c.editor.Selection().Len() == 0 {
			if c.OnExitFullScreen != nil {
				c.OnExitFullScreen()
			}
		} else {
			c.editor.Dispatch(editor.Command{Kind: editor.CmdClearSelection})
		}
	case keyPlus, fyne.KeyEqual:
		c.Zoom(ZoomStep)
	case fyne.KeyMinus:
		c.Zoom(1 / ZoomStep)
	case fyne.Key0:
		c.ResetView()
	default:
		return false
	}
	return true
}

// KeyUp releases the space-to-pan modifier.
func (c *Controller) KeyUp(name fyne.KeyName) {
	if name == fyne.KeySpace {
		c.spaceHeld = false
	}
}

// Zoom scales the view about the canvas center.
func (c *Controller) Zoom(factor float64) {
	c.view.ZoomAt(c.center(), factor)
}

// ResetView restores the default pan and zoom.
func (c *Controller) ResetView() {
	c.view.Reset()
}

func (c *Controller) center() fyne.Position {
	return fyne.NewPos(c.size.Width/2, c.size.Height/2)
}

func isCommand(mods fyne.KeyModifier) bool {
	return mods&(fyne.KeyModifierControl|fyne.KeyModifierSuper) != 0
}
