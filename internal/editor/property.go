package editor

import (
	"strconv"
	"strings"

	"github.com/piwi3910/StandPlan/internal/engine"
	"github.com/piwi3910/StandPlan/internal/model"
)

// Property names accepted by SetProperty.
const (
	PropWidth       = "width"
	PropDepth       = "depth"
	PropCutoutWidth = "cutout-width"
	PropCutoutDepth = "cutout-depth"
	PropShape       = "shape"
	PropRotation    = "rotation"
	PropColor       = "color"
	PropLabel       = "label"
	PropNumber      = "number"
	PropOccupant    = "occupant"
	PropImage       = "image"
	PropMirrorH     = "mirror-h"
	PropMirrorV     = "mirror-v"
	PropCategory    = "category"
)

// minDimension replaces non-positive sizes, in meters.
const minDimension = 1.0

// SetProperty applies one field edit to every selected object. Values are
// parsed from form input: unparsable numbers keep the prior value,
// non-positive sizes fall back to 1 m and a non-positive cutout clears
// the cutout. Stand area follows every geometry change. Fields that do
// not apply to an object are skipped, and a resize that would collide is
// reverted for that object.
func (e *Editor) SetProperty(prop, value string) bool {
	prop = strings.ToLower(strings.TrimSpace(prop))
	value = strings.TrimSpace(value)
	return e.editSelection("Set "+prop, func(_ model.Layout, p model.Placeable) (model.Placeable, bool) {
		switch v := p.(type) {
		case model.Stand:
			return setStandProperty(v, prop, value)
		case model.UtilitySpace:
			return setUtilityProperty(v, prop, value)
		}
		return p, false
	})
}

func setStandProperty(s model.Stand, prop, value string) (model.Placeable, bool) {
	before := s
	if !setFootprintProperty(&s.Footprint, prop, value) {
		switch prop {
		case PropCutoutWidth:
			s.CutoutWidth = parseCutout(value, s.CutoutWidth)
		case PropCutoutDepth:
			s.CutoutDepth = parseCutout(value, s.CutoutDepth)
		case PropShape:
			s.Shape = model.ParseShape(value)
		case PropColor:
			s.Color = value
		case PropNumber:
			s.Number = value
		case PropOccupant:
			s.OccupantID = value
		case PropImage:
			s.ImageRef = value
		default:
			return s, false
		}
	}
	s.RecomputeArea()
	return s, !sameStand(before, s)
}

func setUtilityProperty(u model.UtilitySpace, prop, value string) (model.Placeable, bool) {
	before := u
	if !setFootprintProperty(&u.Footprint, prop, value) {
		switch prop {
		case PropColor:
			u.Color = value
		case PropLabel:
			u.Label = value
		case PropCategory:
			cat, ok := model.ParseUtilityCategory(value)
			if !ok {
				return u, false
			}
			u.Category = cat
		default:
			return u, false
		}
	}
	return u, !sameUtility(before, u)
}

// setFootprintProperty handles the fields shared by both variants and
// reports whether prop was one of them.
func setFootprintProperty(fp *model.Footprint, prop, value string) bool {
	switch prop {
	case PropWidth:
		fp.Width = parseDimension(value, fp.Width)
	case PropDepth:
		fp.Depth = parseDimension(value, fp.Depth)
	case PropRotation:
		if r, err := strconv.Atoi(value); err == nil {
			fp.Rotation = engine.NormalizeRotation(r)
		}
	case PropMirrorH:
		if b, err := strconv.ParseBool(value); err == nil {
			fp.MirrorH = b
		}
	case PropMirrorV:
		if b, err := strconv.ParseBool(value); err == nil {
			fp.MirrorV = b
		}
	default:
		return false
	}
	return true
}

// parseNumber reads a finite float; NaN and infinities count as unparsable.
func parseNumber(value string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || !model.IsFinite(v) {
		return 0, false
	}
	return v, true
}

func parseDimension(value string, prior float64) float64 {
	v, ok := parseNumber(value)
	if !ok {
		return prior
	}
	if v <= 0 {
		return minDimension
	}
	return v
}

func parseCutout(value string, prior float64) float64 {
	v, ok := parseNumber(value)
	if !ok {
		return prior
	}
	if v <= 0 {
		return 0
	}
	return v
}

func sameFootprint(a, b model.Footprint) bool {
	if a.IsPlaced() != b.IsPlaced() {
		return false
	}
	if a.IsPlaced() && *a.Position != *b.Position {
		return false
	}
	a.Position, b.Position = nil, nil
	return a == b
}

func sameStand(a, b model.Stand) bool {
	if !sameFootprint(a.Footprint, b.Footprint) {
		return false
	}
	a.Footprint, b.Footprint = model.Footprint{}, model.Footprint{}
	return a == b
}

func sameUtility(a, b model.UtilitySpace) bool {
	if !sameFootprint(a.Footprint, b.Footprint) {
		return false
	}
	a.Footprint, b.Footprint = model.Footprint{}, model.Footprint{}
	return a == b
}
