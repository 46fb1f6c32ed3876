package engine

import (
	"fmt"

	"github.com/piwi3910/StandPlan/internal/model"
)

// ViolationKind classifies a broken layout invariant.
type ViolationKind string

const (
	ViolationOutOfBounds      ViolationKind = "out-of-bounds"
	ViolationUnknownContainer ViolationKind = "unknown-container"
	ViolationOverlap          ViolationKind = "overlap"
)

// Violation describes one placed object, or pair of objects, that breaks
// the bounds or non-overlap rule.
type Violation struct {
	Kind    ViolationKind
	ID      string
	OtherID string // set for overlaps
}

func (v Violation) String() string {
	switch v.Kind {
	case ViolationOverlap:
		return fmt.Sprintf("%s: %s and %s", v.Kind, v.ID, v.OtherID)
	default:
		return fmt.Sprintf("%s: %s", v.Kind, v.ID)
	}
}

type placedBox struct {
	id          string
	containerID string
	box         Box
}

// Validate checks every placed object of the layout and returns the
// violations found, in layout order. Unplaced objects are ignored. A nil
// result means the layout is consistent.
func Validate(l model.Layout) []Violation {
	var violations []Violation
	var boxes []placedBox

	for _, p := range l.Placeables() {
		fp := p.Geometry()
		if !fp.IsPlaced() {
			continue
		}
		id := p.PlaceableID()
		container, ok := l.Container(fp.ContainerID)
		if !ok {
			violations = append(violations, Violation{Kind: ViolationUnknownContainer, ID: id})
			continue
		}
		box, _ := BoundingBoxInMeters(fp, container.Width, container.Depth)
		if !box.Within(container.Width, container.Depth, Tolerance) {
			violations = append(violations, Violation{Kind: ViolationOutOfBounds, ID: id})
		}
		boxes = append(boxes, placedBox{id: id, containerID: container.ID, box: box})
	}

	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			a, b := boxes[i], boxes[j]
			if a.containerID == b.containerID && a.box.Overlaps(b.box, Tolerance) {
				violations = append(violations, Violation{Kind: ViolationOverlap, ID: a.id, OtherID: b.id})
			}
		}
	}
	return violations
}
