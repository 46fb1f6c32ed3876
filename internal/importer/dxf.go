package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/StandPlan/internal/model"
)

// dxfTolerance is the distance in drawing units under which two points
// are treated as the same vertex.
const dxfTolerance = 1e-6

type vertex struct {
	X, Y float64
}

// segment is a line between two vertices, used for chaining loose LINE
// entities into closed outlines.
type segment struct {
	start vertex
	end   vertex
}

// ImportDXF imports stands from a DXF drawing. Each closed LWPOLYLINE, and
// each closed chain of LINE entities, becomes one stand sized to its
// bounding box. Rectilinear six-vertex outlines become L stands with the
// cutout derived from the missing corner. metersPerUnit scales drawing
// units to meters; values <= 0 mean the drawing is already in meters.
func ImportDXF(path string, metersPerUnit float64) ImportResult {
	result := ImportResult{}
	if metersPerUnit <= 0 {
		metersPerUnit = 1
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]vertex
	var segments []segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineVertices(e)
			if !e.Closed && !closesOnItself(outline) {
				result.Warnings = append(result.Warnings, "Skipped open LWPOLYLINE")
				continue
			}
			outline = dropClosingVertex(outline)
			if len(outline) < 3 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
				continue
			}
			outlines = append(outlines, outline)
		case *entity.Line:
			segments = append(segments, segment{
				start: vertex{X: e.Start[0], Y: e.Start[1]},
				end:   vertex{X: e.End[0], Y: e.End[1]},
			})
		}
	}
	outlines = append(outlines, chainSegments(segments)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, outline := range outlines {
		s, warning, ok := outlineToStand(outline, metersPerUnit)
		label := fmt.Sprintf("Shape %d", i+1)
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", label, warning))
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", label, warning))
		}
		result.Stands = append(result.Stands, s)
	}
	return result
}

func lwPolylineVertices(lw *entity.LwPolyline) []vertex {
	out := make([]vertex, 0, len(lw.Vertices))
	for _, v := range lw.Vertices {
		if len(v) < 2 {
			continue
		}
		out = append(out, vertex{X: v[0], Y: v[1]})
	}
	return out
}

func closesOnItself(vs []vertex) bool {
	return len(vs) >= 4 && same(vs[0], vs[len(vs)-1])
}

func dropClosingVertex(vs []vertex) []vertex {
	if len(vs) >= 2 && same(vs[0], vs[len(vs)-1]) {
		return vs[:len(vs)-1]
	}
	return vs
}

func same(a, b vertex) bool {
	return math.Abs(a.X-b.X) <= dxfTolerance && math.Abs(a.Y-b.Y) <= dxfTolerance
}

// chainSegments connects loose segments into closed outlines. Chains that
// do not close are dropped.
func chainSegments(segs []segment) [][]vertex {
	used := make([]bool, len(segs))
	var outlines [][]vertex

	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		chain := []vertex{segs[start].start, segs[start].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				switch {
				case same(tail, seg.start):
					chain = append(chain, seg.end)
				case same(tail, seg.end):
					chain = append(chain, seg.start)
				default:
					continue
				}
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) >= 4 && same(chain[0], chain[len(chain)-1]) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}
	return outlines
}

// outlineToStand builds a stand from an outline given in drawing units
// with Y pointing up. The warning is set for outlines that were
// approximated; ok is false when the outline is unusable.
func outlineToStand(outline []vertex, scale float64) (model.Stand, string, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range outline {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}
	width := (maxX - minX) * scale
	depth := (maxY - minY) * scale
	if width < 0.01 || depth < 0.01 {
		return model.Stand{}, fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f m)", width, depth), false
	}

	s := model.NewStand(model.ShapeRectangle, "")
	s.Width = width
	s.Depth = depth

	var warning string
	switch {
	case !rectilinear(outline):
		warning = "Outline is not rectilinear, using its bounding box"
	case len(outline) == 6:
		if lShape(&s, outline, minX, minY, maxX, maxY, scale) {
			break
		}
		warning = "Six-vertex outline is not an L, using its bounding box"
	case len(outline) != 4:
		warning = fmt.Sprintf("Outline has %d vertices, using its bounding box", len(outline))
	}
	s.RecomputeArea()
	return s, warning, true
}

func rectilinear(outline []vertex) bool {
	for i, a := range outline {
		b := outline[(i+1)%len(outline)]
		if math.Abs(a.X-b.X) > dxfTolerance && math.Abs(a.Y-b.Y) > dxfTolerance {
			return false
		}
	}
	return true
}

// lShape turns s into an L stand if the outline is a rectangle missing one
// corner. Drawing Y points up, so the top edge of the stand is maxY. The
// cutout's canonical place is the top-right corner; other corners are
// expressed with the mirror flags.
func lShape(s *model.Stand, outline []vertex, minX, minY, maxX, maxY, scale float64) bool {
	corners := []struct {
		at               vertex
		mirrorH, mirrorV bool
	}{
		{vertex{maxX, maxY}, false, false},
		{vertex{minX, maxY}, true, false},
		{vertex{maxX, minY}, false, true},
		{vertex{minX, minY}, true, true},
	}

	var reflex *vertex
	for i := range outline {
		v := outline[i]
		inside := v.X > minX+dxfTolerance && v.X < maxX-dxfTolerance &&
			v.Y > minY+dxfTolerance && v.Y < maxY-dxfTolerance
		if inside {
			if reflex != nil {
				return false
			}
			reflex = &v
		}
	}
	if reflex == nil {
		return false
	}

	for _, c := range corners {
		if containsVertex(outline, c.at) {
			continue
		}
		s.Shape = model.ShapeL
		s.CutoutWidth = math.Abs(c.at.X-reflex.X) * scale
		s.CutoutDepth = math.Abs(c.at.Y-reflex.Y) * scale
		s.MirrorH = c.mirrorH
		s.MirrorV = c.mirrorV
		return true
	}
	return false
}

func containsVertex(outline []vertex, p vertex) bool {
	for _, v := range outline {
		if same(v, p) {
			return true
		}
	}
	return false
}
