package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/StandPlan/internal/engine"
	"github.com/piwi3910/StandPlan/internal/interact"
	"github.com/piwi3910/StandPlan/internal/model"
)

var (
	backgroundColor   = color.NRGBA{R: 60, G: 63, B: 65, A: 255}
	floorFill         = color.NRGBA{R: 245, G: 245, B: 240, A: 255}
	floorStroke       = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	activeFloorStroke = color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	gridStroke        = color.NRGBA{R: 225, G: 225, B: 218, A: 255}
	objectStroke      = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	selectedStroke    = color.NRGBA{R: 255, G: 152, B: 0, A: 255}
	validPreview      = color.NRGBA{R: 76, G: 175, B: 80, A: 110}
	invalidPreview    = color.NRGBA{R: 244, G: 67, B: 54, A: 110}
	standFallback     = color.NRGBA{R: 76, G: 175, B: 80, A: 220}
	utilityFallback   = color.NRGBA{R: 158, G: 158, B: 158, A: 200}
)

// gridMeters is the spacing of the floor grid lines.
const gridMeters = 5.0

// FloorCanvas renders every pavilion of the editor's layout through the
// controller's viewport and forwards pointer input to the controller.
type FloorCanvas struct {
	widget.BaseWidget
	ctrl     *interact.Controller
	carrying bool // a backlog object follows the pointer until the next click

	// OnChanged is called after input that may have changed the layout or
	// the selection.
	OnChanged func()
}

func NewFloorCanvas(ctrl *interact.Controller) *FloorCanvas {
	fc := &FloorCanvas{ctrl: ctrl}
	fc.ExtendBaseWidget(fc)
	return fc
}

func (fc *FloorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newFloorCanvasRenderer(fc)
}

// Resize keeps the controller's zoom anchor in sync with the widget size.
func (fc *FloorCanvas) Resize(size fyne.Size) {
	fc.ctrl.SetCanvasSize(size)
	fc.BaseWidget.Resize(size)
}

// StartCarry attaches an unplaced object to the pointer. The next primary
// click on the canvas drops it.
func (fc *FloorCanvas) StartCarry(id string) bool {
	if !fc.ctrl.StartBacklogDrag(id) {
		return false
	}
	fc.carrying = true
	return true
}

// Carrying reports whether a backlog object is attached to the pointer.
func (fc *FloorCanvas) Carrying() bool {
	return fc.carrying
}

// CancelCarry drops the carried object back into the backlog.
func (fc *FloorCanvas) CancelCarry() {
	if !fc.carrying {
		return
	}
	fc.carrying = false
	fc.ctrl.CancelGesture()
	fc.Refresh()
}

func (fc *FloorCanvas) changed() {
	fc.Refresh()
	if fc.OnChanged != nil {
		fc.OnChanged()
	}
}

// MouseDown implements desktop.Mouseable.
func (fc *FloorCanvas) MouseDown(ev *desktop.MouseEvent) {
	if fc.carrying {
		if ev.Button == desktop.MouseButtonPrimary {
			fc.carrying = false
			fc.ctrl.PointerUp(ev.Position)
			fc.changed()
		}
		return
	}
	fc.ctrl.PointerDown(ev.Position, ev.Button, ev.Modifier)
	fc.changed()
}

// MouseUp implements desktop.Mouseable.
func (fc *FloorCanvas) MouseUp(ev *desktop.MouseEvent) {
	if fc.carrying || !fc.ctrl.Pressed() {
		return
	}
	fc.ctrl.PointerUp(ev.Position)
	fc.changed()
}

// MouseIn implements desktop.Hoverable.
func (fc *FloorCanvas) MouseIn(ev *desktop.MouseEvent) {
	fc.MouseMoved(ev)
}

// MouseMoved implements desktop.Hoverable. Only a carried object follows
// a pointer with no button held.
func (fc *FloorCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if !fc.carrying {
		return
	}
	fc.ctrl.PointerMove(ev.Position)
	fc.Refresh()
}

// MouseOut implements desktop.Hoverable.
func (fc *FloorCanvas) MouseOut() {}

// Dragged implements fyne.Draggable.
func (fc *FloorCanvas) Dragged(ev *fyne.DragEvent) {
	fc.ctrl.PointerMove(ev.Position)
	fc.Refresh()
}

// DragEnd implements fyne.Draggable. The drop itself is handled in MouseUp.
func (fc *FloorCanvas) DragEnd() {}

// Scrolled implements fyne.Scrollable.
func (fc *FloorCanvas) Scrolled(ev *fyne.ScrollEvent) {
	fc.ctrl.Scroll(ev.Position, ev.Scrolled.DY)
	fc.Refresh()
}

type floorCanvasRenderer struct {
	fc      *FloorCanvas
	size    fyne.Size
	objects []fyne.CanvasObject
}

func newFloorCanvasRenderer(fc *FloorCanvas) *floorCanvasRenderer {
	r := &floorCanvasRenderer{fc: fc}
	r.rebuild()
	return r
}

func nrgba(hex string, fallback color.NRGBA) color.NRGBA {
	red, green, blue, ok := model.ParseHexColor(hex)
	if !ok {
		return fallback
	}
	return color.NRGBA{R: red, G: green, B: blue, A: fallback.A}
}

func (r *floorCanvasRenderer) rect(fill, stroke color.Color, strokeWidth float32, pos fyne.Position, size fyne.Size) {
	rc := canvas.NewRectangle(fill)
	rc.StrokeColor = stroke
	rc.StrokeWidth = strokeWidth
	rc.Move(pos)
	rc.Resize(size)
	r.objects = append(r.objects, rc)
}

func (r *floorCanvasRenderer) text(s string, size float32, c color.Color, center fyne.Position) {
	t := canvas.NewText(s, c)
	t.TextSize = size
	t.Alignment = fyne.TextAlignCenter
	ms := t.MinSize()
	t.Move(fyne.NewPos(center.X-ms.Width/2, center.Y-ms.Height/2))
	t.Resize(ms)
	r.objects = append(r.objects, t)
}

// boxOnScreen converts a container-relative meter box to screen space.
func (r *floorCanvasRenderer) boxOnScreen(c model.Container, b engine.Box) (fyne.Position, fyne.Size) {
	view := r.fc.ctrl.Viewport()
	pos := view.WorldToScreen(c.OffsetX+b.Left, c.OffsetY+b.Top)
	return pos, fyne.NewSize(view.Length(b.Width), view.Length(b.Height))
}

func (r *floorCanvasRenderer) rebuild() {
	r.objects = nil
	r.rect(backgroundColor, color.Transparent, 0, fyne.NewPos(0, 0), r.size)

	e := r.fc.ctrl.Editor()
	l := e.Layout()
	sel := e.Selection()
	active, _ := e.ActiveContainer()

	for _, c := range l.Containers {
		r.drawContainer(c, c.ID == active.ID)
	}

	for _, u := range l.Utilities {
		c, ok := l.Container(u.ContainerID)
		if !ok {
			continue
		}
		box, ok := engine.BoundingBoxInMeters(u.Footprint, c.Width, c.Depth)
		if !ok {
			continue
		}
		pos, size := r.boxOnScreen(c, box)
		stroke, width := objectStroke, float32(1)
		if sel.Contains(u.ID) {
			stroke, width = selectedStroke, 3
		}
		r.rect(nrgba(u.Color, utilityFallback), stroke, width, pos, size)
		if size.Width > 30 && size.Height > 14 {
			r.text(u.Label, 10, color.Black, fyne.NewPos(pos.X+size.Width/2, pos.Y+size.Height/2))
		}
	}

	for _, s := range l.Stands {
		c, ok := l.Container(s.ContainerID)
		if !ok {
			continue
		}
		box, ok := engine.BoundingBoxInMeters(s.Footprint, c.Width, c.Depth)
		if !ok {
			continue
		}
		pos, size := r.boxOnScreen(c, box)
		stroke, width := objectStroke, float32(1)
		switch {
		case s.ID == sel.Primary():
			stroke, width = selectedStroke, 4
		case sel.Contains(s.ID):
			stroke, width = selectedStroke, 2
		}
		r.rect(nrgba(s.Color, standFallback), stroke, width, pos, size)
		// nothing may occupy the cutout, so painting it as floor is exact
		if cut, ok := engine.CutoutBox(s, c.Width, c.Depth); ok {
			cpos, csize := r.boxOnScreen(c, cut)
			r.rect(floorFill, color.Transparent, 0, cpos, csize)
		}
		if size.Width > 20 && size.Height > 14 {
			r.text(s.Number, 11, color.Black, fyne.NewPos(pos.X+size.Width/2, pos.Y+size.Height/2))
		}
	}

	r.drawPreview(l)
}

func (r *floorCanvasRenderer) drawContainer(c model.Container, active bool) {
	view := r.fc.ctrl.Viewport()
	origin := view.WorldToScreen(c.OffsetX, c.OffsetY)
	size := fyne.NewSize(view.Length(c.Width), view.Length(c.Depth))

	stroke := floorStroke
	if active {
		stroke = activeFloorStroke
	}
	r.rect(floorFill, stroke, 2, origin, size)

	// grid lines are skipped when they would crowd together
	if view.Length(gridMeters) >= 12 {
		for x := gridMeters; x < c.Width; x += gridMeters {
			line := canvas.NewLine(gridStroke)
			line.Position1 = view.WorldToScreen(c.OffsetX+x, c.OffsetY)
			line.Position2 = view.WorldToScreen(c.OffsetX+x, c.OffsetY+c.Depth)
			r.objects = append(r.objects, line)
		}
		for y := gridMeters; y < c.Depth; y += gridMeters {
			line := canvas.NewLine(gridStroke)
			line.Position1 = view.WorldToScreen(c.OffsetX, c.OffsetY+y)
			line.Position2 = view.WorldToScreen(c.OffsetX+c.Width, c.OffsetY+y)
			r.objects = append(r.objects, line)
		}
	}

	title := canvas.NewText(c.Name, color.White)
	title.TextSize = 12
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Move(fyne.NewPos(origin.X, origin.Y-title.MinSize().Height-2))
	r.objects = append(r.objects, title)
}

// drawPreview shows where the dragged object would land.
func (r *floorCanvasRenderer) drawPreview(l model.Layout) {
	preview, ok := r.fc.ctrl.Drag()
	if !ok {
		return
	}
	c, ok := l.Container(preview.ContainerID)
	if !ok {
		return
	}
	fp, ok := l.Footprint(preview.ID)
	if !ok {
		return
	}
	box, ok := engine.BoundingBoxInMeters(fp.At(preview.X, preview.Y), c.Width, c.Depth)
	if !ok {
		return
	}
	fill := validPreview
	if !preview.Valid {
		fill = invalidPreview
	}
	pos, size := r.boxOnScreen(c, box)
	r.rect(fill, selectedStroke, 1, pos, size)
}

func (r *floorCanvasRenderer) Layout(size fyne.Size) {
	if size != r.size {
		r.size = size
		r.rebuild()
	}
}

func (r *floorCanvasRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.fc)
}

func (r *floorCanvasRenderer) Destroy()                     {}
func (r *floorCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *floorCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}
