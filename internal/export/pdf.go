// Package export renders floor plans to printable formats: a PDF plan with
// one page per pavilion and a sheet of QR-coded stand signs.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/StandPlan/internal/engine"
	"github.com/piwi3910/StandPlan/internal/model"
)

// rgb is a fill or stroke color.
type rgb struct {
	R, G, B int
}

var (
	standFallback   = rgb{R: 76, G: 175, B: 80}
	utilityFallback = rgb{R: 158, G: 158, B: 158}
	floorColor      = rgb{R: 245, G: 245, B: 240}
	gridColor       = rgb{R: 225, G: 225, B: 220}
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	gridMeters   = 5.0
)

// ContainerSummary holds occupancy figures for one pavilion.
type ContainerSummary struct {
	Container model.Container
	Stands    int
	Utilities int
	StandArea float64 // square meters of placed stands
	Occupancy float64 // percent of the floor covered by placed stands
}

// Summarize computes per-pavilion occupancy in container order.
func Summarize(l model.Layout) []ContainerSummary {
	out := make([]ContainerSummary, len(l.Containers))
	index := make(map[string]int, len(l.Containers))
	for i, c := range l.Containers {
		out[i].Container = c
		index[c.ID] = i
	}
	for _, s := range l.Stands {
		i, ok := index[s.ContainerID]
		if !ok || !s.IsPlaced() {
			continue
		}
		out[i].Stands++
		out[i].StandArea += s.ComputeArea()
	}
	for _, u := range l.Utilities {
		if i, ok := index[u.ContainerID]; ok && u.IsPlaced() {
			out[i].Utilities++
		}
	}
	for i := range out {
		floor := out[i].Container.Width * out[i].Container.Depth
		if floor > 0 {
			out[i].Occupancy = out[i].StandArea / floor * 100
		}
	}
	return out
}

// ExportPlanPDF writes the layout as a PDF document. Each pavilion is drawn
// on its own page, followed by a stand schedule.
func ExportPlanPDF(path string, l model.Layout) error {
	if len(l.Containers) == 0 {
		return fmt.Errorf("no pavilions to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(l.Name, true)

	for _, summary := range Summarize(l) {
		pdf.AddPage()
		renderContainerPage(pdf, l, summary)
	}

	pdf.AddPage()
	renderSchedulePage(pdf, l)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write plan PDF: %w", err)
	}
	return nil
}

func colorOf(hex string, fallback rgb) rgb {
	r, g, b, ok := model.ParseHexColor(hex)
	if !ok {
		return fallback
	}
	return rgb{R: int(r), G: int(g), B: int(b)}
}

func renderContainerPage(pdf *fpdf.Fpdf, l model.Layout, summary ContainerSummary) {
	c := summary.Container

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: %s (%s, %.1f x %.1f m)", l.Name, c.Name, c.Kind, c.Width, c.Depth)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Stands: %d | Utilities: %d | Stand area: %.1f m² | Occupancy: %.1f%%",
		summary.Stands, summary.Utilities, summary.StandArea, summary.Occupancy)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, pdf.UnicodeTranslatorFromDescriptor("")(stats), "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/c.Width, drawHeight/c.Depth)

	canvasW := c.Width * scale
	canvasH := c.Depth * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(floorColor.R, floorColor.G, floorColor.B)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.6)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")
	drawGrid(pdf, c, scale, offsetX, offsetY)

	toPage := func(v engine.Vec) fpdf.PointType {
		return fpdf.PointType{X: offsetX + v.X*scale, Y: offsetY + v.Y*scale}
	}

	for _, u := range l.Utilities {
		if u.ContainerID != c.ID {
			continue
		}
		box, ok := engine.BoundingBoxInMeters(u.Footprint, c.Width, c.Depth)
		if !ok {
			continue
		}
		col := colorOf(u.Color, utilityFallback)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(90, 90, 90)
		pdf.SetLineWidth(0.2)
		pdf.SetDashPattern([]float64{1, 1}, 0)
		pdf.Rect(offsetX+box.Left*scale, offsetY+box.Top*scale, box.Width*scale, box.Height*scale, "FD")
		pdf.SetDashPattern([]float64{}, 0)
		drawCenteredLabel(pdf, u.Label, "", box, scale, offsetX, offsetY)
	}

	for _, s := range l.Stands {
		if s.ContainerID != c.ID {
			continue
		}
		outline, ok := engine.StandOutline(s, c.Width, c.Depth)
		if !ok {
			continue
		}
		points := make([]fpdf.PointType, len(outline))
		for i, v := range outline {
			points[i] = toPage(v)
		}
		col := colorOf(s.Color, standFallback)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Polygon(points, "FD")

		box, _ := engine.BoundingBoxInMeters(s.Footprint, c.Width, c.Depth)
		drawCenteredLabel(pdf, s.Number, fmt.Sprintf("%.1f m²", s.ComputeArea()), box, scale, offsetX, offsetY)
	}

	drawDimensionAnnotations(pdf, c, offsetX, offsetY, canvasW, canvasH)
	drawScaleBar(pdf, scale, offsetY+canvasH+6)
}

// drawGrid draws light lines every gridMeters inside the floor.
func drawGrid(pdf *fpdf.Fpdf, c model.Container, scale, offsetX, offsetY float64) {
	pdf.SetDrawColor(gridColor.R, gridColor.G, gridColor.B)
	pdf.SetLineWidth(0.1)
	for x := gridMeters; x < c.Width; x += gridMeters {
		pdf.Line(offsetX+x*scale, offsetY, offsetX+x*scale, offsetY+c.Depth*scale)
	}
	for y := gridMeters; y < c.Depth; y += gridMeters {
		pdf.Line(offsetX, offsetY+y*scale, offsetX+c.Width*scale, offsetY+y*scale)
	}
}

// drawCenteredLabel writes up to two lines centered in the box, skipping
// lines that do not fit.
func drawCenteredLabel(pdf *fpdf.Fpdf, title, subtitle string, box engine.Box, scale, offsetX, offsetY float64) {
	pw := box.Width * scale
	ph := box.Height * scale
	if pw < 6 || ph < 4 || title == "" {
		return
	}
	px := offsetX + box.Left*scale
	py := offsetY + box.Top*scale

	pdf.SetFont("Helvetica", "B", labelFontSize(pw, ph))
	pdf.SetTextColor(0, 0, 0)
	if w := pdf.GetStringWidth(title); w < pw-1 {
		pdf.SetXY(px+(pw-w)/2, py+ph/2-4)
		pdf.CellFormat(w, 4, title, "", 0, "C", false, 0, "")
	}

	if subtitle == "" || ph < 10 {
		return
	}
	pdf.SetFont("Helvetica", "", labelFontSize(pw, ph)-1)
	subtitle = pdf.UnicodeTranslatorFromDescriptor("")(subtitle)
	if w := pdf.GetStringWidth(subtitle); w < pw-1 {
		pdf.SetXY(px+(pw-w)/2, py+ph/2)
		pdf.CellFormat(w, 4, subtitle, "", 0, "C", false, 0, "")
	}
}

// drawDimensionAnnotations adds width and depth labels outside the floor.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, c model.Container, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.1f m", c.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	depthLabel := fmt.Sprintf("%.1f m", c.Depth)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	dLabelW := pdf.GetStringWidth(depthLabel)
	pdf.SetXY(offsetX-3-dLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(dLabelW, 4, depthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawScaleBar draws a 10 m reference bar at the left margin.
func drawScaleBar(pdf *fpdf.Fpdf, scale, y float64) {
	const meters = 10.0
	length := meters * scale
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.4)
	pdf.Line(marginLeft, y, marginLeft+length, y)
	pdf.Line(marginLeft, y-1, marginLeft, y+1)
	pdf.Line(marginLeft+length, y-1, marginLeft+length, y+1)
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(marginLeft+length+2, y-2)
	pdf.CellFormat(20, 4, fmt.Sprintf("%.0f m", meters), "", 0, "L", false, 0, "")
}

// renderSchedulePage lists every stand with its pavilion and size. Unplaced
// stands are listed last and flagged.
func renderSchedulePage(pdf *fpdf.Fpdf, l model.Layout) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Stand Schedule", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	stands := make([]model.Stand, len(l.Stands))
	copy(stands, l.Stands)
	sort.SliceStable(stands, func(i, j int) bool {
		return stands[i].IsPlaced() && !stands[j].IsPlaced()
	})

	colWidths := []float64{25, 60, 40, 30, 30, 40, 42}
	headers := []string{"Stand", "Pavilion", "Size", "Shape", "Area", "Position", "Occupant"}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	y := marginTop + 18
	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		x := marginLeft
		for i, h := range headers {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
			x += colWidths[i]
		}
		y += 6
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	for i, s := range stands {
		if y > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = marginTop
			header()
		}
		pavilion := "-"
		if c, ok := l.Container(s.ContainerID); ok {
			pavilion = c.Name
		}
		position := "unplaced"
		if s.IsPlaced() {
			position = fmt.Sprintf("%.1f%%, %.1f%%", s.Position.X, s.Position.Y)
		}
		row := []string{
			s.Number,
			pavilion,
			fmt.Sprintf("%.1f x %.1f m", s.Width, s.Depth),
			string(s.Shape),
			tr(fmt.Sprintf("%.1f m²", s.ComputeArea())),
			position,
			s.OccupantID,
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		if !s.IsPlaced() {
			pdf.SetTextColor(200, 0, 0)
		}
		x := marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		pdf.SetTextColor(0, 0, 0)
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by StandPlan", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 9
	case minDim > 20:
		return 8
	default:
		return 7
	}
}
