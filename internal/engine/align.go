package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/StandPlan/internal/model"
)

// Edge selects an alignment mode.
type Edge string

const (
	EdgeLeft    Edge = "left"
	EdgeRight   Edge = "right"
	EdgeTop     Edge = "top"
	EdgeBottom  Edge = "bottom"
	EdgeCenterX Edge = "center-x"
	EdgeCenterY Edge = "center-y"
)

// Edges lists every alignment mode in menu order.
var Edges = []Edge{EdgeLeft, EdgeRight, EdgeTop, EdgeBottom, EdgeCenterX, EdgeCenterY}

// ParseEdge converts user input to an Edge.
func ParseEdge(s string) (Edge, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, e := range Edges {
		if string(e) == norm {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown alignment %q", s)
}

// Update is a new percentage position for one object.
type Update struct {
	ID string
	X  float64
	Y  float64
}

// obstacle is a non-selected placed object in the moving object's container.
type obstacle struct {
	id  string
	box Box
}

// Align computes new positions for each selected object. Objects are
// aligned independently, each against its own nearest facing neighbor or
// the container wall, not as a rigid group. Unplaced or unknown ids are
// skipped.
func Align(l model.Layout, selected []string, edge Edge) []Update {
	isSelected := make(map[string]bool, len(selected))
	for _, id := range selected {
		isSelected[id] = true
	}

	var updates []Update
	for _, id := range selected {
		fp, ok := l.Footprint(id)
		if !ok || !fp.IsPlaced() {
			continue
		}
		container, ok := l.Container(fp.ContainerID)
		if !ok {
			continue
		}
		box, _ := BoundingBoxInMeters(fp, container.Width, container.Depth)
		obstacles := collectObstacles(l, container, isSelected)

		left, top := alignBox(box, edge, container, obstacles)
		updates = append(updates, Update{
			ID: id,
			X:  ToPercent(left, container.Width),
			Y:  ToPercent(top, container.Depth),
		})
	}
	return updates
}

func collectObstacles(l model.Layout, container model.Container, skip map[string]bool) []obstacle {
	var out []obstacle
	for _, p := range l.Placeables() {
		id := p.PlaceableID()
		fp := p.Geometry()
		if skip[id] || fp.ContainerID != container.ID {
			continue
		}
		if b, ok := BoundingBoxInMeters(fp, container.Width, container.Depth); ok {
			out = append(out, obstacle{id: id, box: b})
		}
	}
	return out
}

// alignBox returns the new top-left corner of box in meters.
func alignBox(box Box, edge Edge, container model.Container, obstacles []obstacle) (float64, float64) {
	left, top := box.Left, box.Top

	switch edge {
	case EdgeLeft:
		// Nearest right edge among obstacles to the left that face the box
		left = 0
		for _, o := range obstacles {
			if o.box.Right <= box.Left+Tolerance && o.box.overlapsVertically(box, Tolerance) {
				left = math.Max(left, o.box.Right)
			}
		}

	case EdgeRight:
		limit := container.Width
		for _, o := range obstacles {
			if o.box.Left >= box.Right-Tolerance && o.box.overlapsVertically(box, Tolerance) {
				limit = math.Min(limit, o.box.Left)
			}
		}
		left = limit - box.Width

	case EdgeTop:
		top = 0
		for _, o := range obstacles {
			if o.box.Bottom <= box.Top+Tolerance && o.box.overlapsHorizontally(box, Tolerance) {
				top = math.Max(top, o.box.Bottom)
			}
		}

	case EdgeBottom:
		limit := container.Depth
		for _, o := range obstacles {
			if o.box.Top >= box.Bottom-Tolerance && o.box.overlapsHorizontally(box, Tolerance) {
				limit = math.Min(limit, o.box.Top)
			}
		}
		top = limit - box.Height

	case EdgeCenterX:
		left = (container.Width - box.Width) / 2

	case EdgeCenterY:
		top = (container.Depth - box.Height) / 2
	}

	return left, top
}
