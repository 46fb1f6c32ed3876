package engine

import "github.com/piwi3910/StandPlan/internal/model"

// Candidate describes a what-if placement: an object id (excluded from the
// obstacle set), a percentage position and the unrotated dimensions. An
// empty id is a brand-new object and excludes nothing.
type Candidate struct {
	ID       string
	X        float64 // percent of container width
	Y        float64 // percent of container depth
	Width    float64 // meters
	Depth    float64 // meters
	Rotation int
}

// CandidateOf builds a candidate from a placed footprint. The second
// result is false for unplaced footprints.
func CandidateOf(id string, fp model.Footprint) (Candidate, bool) {
	if !fp.IsPlaced() {
		return Candidate{}, false
	}
	return Candidate{
		ID:       id,
		X:        fp.Position.X,
		Y:        fp.Position.Y,
		Width:    fp.Width,
		Depth:    fp.Depth,
		Rotation: fp.Rotation,
	}, true
}

// Box returns the candidate's rotated AABB in meters.
func (c Candidate) Box(container model.Container) Box {
	return boxAt(c.X, c.Y, c.Width, c.Depth, c.Rotation, container.Width, container.Depth)
}

// IsColliding returns true if the candidate would leave the container or
// overlap any other placed stand or utility space in the same container.
// Collision uses the full rectangular footprint, including for L-shaped
// stands.
func IsColliding(c Candidate, container model.Container, stands []model.Stand, utilities []model.UtilitySpace) bool {
	box := c.Box(container)
	if !box.Within(container.Width, container.Depth, Tolerance) {
		return true
	}
	for _, s := range stands {
		if obstructs(c.ID, box, s.ID, s.Footprint, container) {
			return true
		}
	}
	for _, u := range utilities {
		if obstructs(c.ID, box, u.ID, u.Footprint, container) {
			return true
		}
	}
	return false
}

// obstructs reports whether the placed object id/fp overlaps box.
func obstructs(selfID string, box Box, id string, fp model.Footprint, container model.Container) bool {
	if (selfID != "" && id == selfID) || fp.ContainerID != container.ID {
		return false
	}
	other, ok := BoundingBoxInMeters(fp, container.Width, container.Depth)
	if !ok {
		return false
	}
	return box.Overlaps(other, Tolerance)
}

// IsLayoutColliding checks a placed object of the layout against the rest
// of the layout at its current position. Unplaced objects never collide;
// objects in an unknown container always do.
func IsLayoutColliding(l model.Layout, id string) bool {
	fp, ok := l.Footprint(id)
	if !ok || !fp.IsPlaced() {
		return false
	}
	container, ok := l.Container(fp.ContainerID)
	if !ok {
		return true
	}
	c, _ := CandidateOf(id, fp)
	return IsColliding(c, container, l.Stands, l.Utilities)
}
