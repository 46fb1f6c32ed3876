package interact

import (
	"fyne.io/fyne/v2"

	"github.com/piwi3910/StandPlan/internal/engine"
	"github.com/piwi3910/StandPlan/internal/model"
)

// Hit is the object under the cursor.
type Hit struct {
	ID          string
	ContainerID string
	GrabX       float64 // meters from the object's left edge
	GrabY       float64 // meters from the object's top edge
}

// ContainerAt returns the pavilion containing the canvas point wx, wy in
// meters. Later pavilions win where they overlap on the canvas.
func ContainerAt(l model.Layout, wx, wy float64) (model.Container, bool) {
	for i := len(l.Containers) - 1; i >= 0; i-- {
		c := l.Containers[i]
		if wx >= c.OffsetX && wx <= c.OffsetX+c.Width && wy >= c.OffsetY && wy <= c.OffsetY+c.Depth {
			return c, true
		}
	}
	return model.Container{}, false
}

// HitTest finds the topmost placed object under a screen position.
// Utility spaces draw above stands, so they are tested first.
func (c *Controller) HitTest(pos fyne.Position) (Hit, bool) {
	l := c.editor.Layout()
	wx, wy := c.view.ScreenToWorld(pos)
	container, ok := ContainerAt(l, wx, wy)
	if !ok {
		return Hit{}, false
	}
	lx, ly := wx-container.OffsetX, wy-container.OffsetY

	objects := l.Placeables()
	for i := len(objects) - 1; i >= 0; i-- {
		fp := objects[i].Geometry()
		if fp.ContainerID != container.ID {
			continue
		}
		box, ok := engine.BoundingBoxInMeters(fp, container.Width, container.Depth)
		if !ok {
			continue
		}
		if lx >= box.Left && lx <= box.Right && ly >= box.Top && ly <= box.Bottom {
			return Hit{
				ID:          objects[i].PlaceableID(),
				ContainerID: container.ID,
				GrabX:       lx - box.Left,
				GrabY:       ly - box.Top,
			}, true
		}
	}
	return Hit{}, false
}
