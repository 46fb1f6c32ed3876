package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/StandPlan/internal/engine"
	"github.com/piwi3910/StandPlan/internal/model"
)

// LabelInfo holds the data encoded into each stand sign's QR code.
type LabelInfo struct {
	StandID     string  `json:"id"`
	Number      string  `json:"number"`
	Pavilion    string  `json:"pavilion"`
	ContainerID string  `json:"container_id"`
	Width       float64 `json:"width_m"`
	Depth       float64 `json:"depth_m"`
	Area        float64 `json:"area_m2"`
	X           float64 `json:"x_m"`
	Y           float64 `json:"y_m"`
	Occupant    string  `json:"occupant,omitempty"`
}

// Sign layout constants, two columns by four rows on A4 portrait.
const (
	signMarginTop  = 12.0
	signMarginLeft = 10.0
	signWidth      = 95.0
	signHeight     = 68.0
	signCols       = 2
	signRows       = 4
	signsPerPage   = signCols * signRows
	qrSize         = 40.0
	signPadding    = 4.0
)

// CollectLabelInfos returns one entry per placed stand in layout order.
// Stands in the backlog or in an unknown pavilion get no sign.
func CollectLabelInfos(l model.Layout) []LabelInfo {
	var labels []LabelInfo
	for _, s := range l.Stands {
		c, ok := l.Container(s.ContainerID)
		if !ok {
			continue
		}
		box, ok := engine.BoundingBoxInMeters(s.Footprint, c.Width, c.Depth)
		if !ok {
			continue
		}
		labels = append(labels, LabelInfo{
			StandID:     s.ID,
			Number:      s.Number,
			Pavilion:    c.Name,
			ContainerID: c.ID,
			Width:       s.Width,
			Depth:       s.Depth,
			Area:        s.ComputeArea(),
			X:           box.Left,
			Y:           box.Top,
			Occupant:    s.OccupantID,
		})
	}
	return labels
}

// ExportStandLabels generates a PDF of QR-coded stand signs. Each sign
// shows the stand number, pavilion and size, and a QR code encoding the
// stand metadata as JSON.
func ExportStandLabels(path string, l model.Layout) error {
	labels := CollectLabelInfos(l)
	if len(labels) == 0 {
		return fmt.Errorf("no placed stands to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, info := range labels {
		if i%signsPerPage == 0 {
			pdf.AddPage()
		}

		pos := i % signsPerPage
		x := signMarginLeft + float64(pos%signCols)*signWidth
		y := signMarginTop + float64(pos/signCols)*signHeight

		if err := renderSign(pdf, tr, x, y, info); err != nil {
			return fmt.Errorf("failed to render label for stand %q: %w", info.Number, err)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write labels PDF: %w", err)
	}
	return nil
}

func renderSign(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, signWidth, signHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := "qr_" + info.StandID
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(qrPNG))
	qrX := x + signWidth - qrSize - signPadding
	qrY := y + (signHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, opts, 0, "")

	textX := x + signPadding
	textW := signWidth - qrSize - 3*signPadding

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetXY(textX, y+signPadding+4)
	pdf.CellFormat(textW, 14, fit(pdf, info.Number, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(textX, y+signPadding+22)
	pdf.CellFormat(textW, 5, fit(pdf, info.Pavilion, textW), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+signPadding+28)
	dims := tr(fmt.Sprintf("%.1f x %.1f m (%.1f m²)", info.Width, info.Depth, info.Area))
	pdf.CellFormat(textW, 5, fit(pdf, dims, textW), "", 1, "L", false, 0, "")

	if info.Occupant != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(90, 90, 90)
		pdf.SetXY(textX, y+signPadding+36)
		pdf.CellFormat(textW, 5, fit(pdf, info.Occupant, textW), "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(textX, y+signHeight-signPadding-4)
	pdf.CellFormat(textW, 3, fmt.Sprintf("@ %.1f, %.1f m", info.X, info.Y), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// fit truncates s with an ellipsis so it renders within w at the current font.
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}
