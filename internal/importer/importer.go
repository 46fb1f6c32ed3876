// Package importer reads stand lists from CSV, Excel and DXF files. CSV
// and Excel imports detect the delimiter, accept flexible column headers
// and collect per-row problems instead of failing the whole file.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/StandPlan/internal/model"
)

// ImportResult holds the results of an import operation. Imported stands
// are unplaced and carry no container.
type ImportResult struct {
	Stands   []model.Stand
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Number      int
	Width       int
	Depth       int
	Shape       int
	CutoutWidth int
	CutoutDepth int
	Color       int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"number":       {"number", "no", "no.", "#", "stand", "stand number", "stand no", "id", "label"},
	"width":        {"width", "w", "length", "len", "x"},
	"depth":        {"depth", "d", "height", "h", "y"},
	"shape":        {"shape", "type", "form"},
	"cutout_width": {"cutout width", "cutout_width", "cut width", "cw"},
	"cutout_depth": {"cutout depth", "cutout_depth", "cut depth", "cd"},
	"color":        {"color", "colour", "fill"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive against the known aliases of each role.
// Returns the mapping and true if a header was detected, or the positional
// mapping (number, width, depth, shape, cutout width, cutout depth, color)
// and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1}
	slots := map[string]*int{
		"number":       &mapping.Number,
		"width":        &mapping.Width,
		"depth":        &mapping.Depth,
		"shape":        &mapping.Shape,
		"cutout_width": &mapping.CutoutWidth,
		"cutout_depth": &mapping.CutoutDepth,
		"color":        &mapping.Color,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if slot := slots[role]; *slot == -1 {
						*slot = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Number:      0,
			Width:       1,
			Depth:       2,
			Shape:       3,
			CutoutWidth: 4,
			CutoutDepth: 5,
			Color:       6,
		}, false
	}

	return mapping, true
}

// parseShape converts a shape cell to a model.Shape. The boolean reports
// whether the value was recognized.
func parseShape(s string) (model.Shape, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rect", "rectangle", "r", "box":
		return model.ShapeRectangle, true
	case "l", "l-shape", "l shape", "lshape", "corner":
		return model.ShapeL, true
	default:
		return model.ShapeRectangle, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseMeters(row []string, idx int, name, rowLabel string) (float64, string) {
	raw := getCell(row, idx)
	if raw == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || !model.IsFinite(v) {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, raw)
	}
	if v <= 0 {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, strings.ToUpper(name[:1])+name[1:])
	}
	return v, ""
}

// parseRow extracts a Stand from a row using the given column mapping.
// Returns the stand, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.Stand, string, []string) {
	var warnings []string

	width, errMsg := parseMeters(row, mapping.Width, "width", rowLabel)
	if errMsg != "" {
		return model.Stand{}, errMsg, nil
	}
	depth, errMsg := parseMeters(row, mapping.Depth, "depth", rowLabel)
	if errMsg != "" {
		return model.Stand{}, errMsg, nil
	}

	shapeStr := getCell(row, mapping.Shape)
	shape, ok := parseShape(shapeStr)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown shape '%s', defaulting to rectangle", rowLabel, shapeStr))
	}

	s := model.NewStand(shape, "")
	s.Number = getCell(row, mapping.Number)
	s.Width = width
	s.Depth = depth
	if c := getCell(row, mapping.Color); c != "" {
		s.Color = c
	}

	if shape == model.ShapeL {
		s.CutoutWidth, s.CutoutDepth = 0, 0
		cw, cwErr := parseMeters(row, mapping.CutoutWidth, "cutout width", rowLabel)
		cd, cdErr := parseMeters(row, mapping.CutoutDepth, "cutout depth", rowLabel)
		switch {
		case cwErr != "" || cdErr != "":
			warnings = append(warnings, fmt.Sprintf("%s: L stand without a usable cutout", rowLabel))
		case cw >= width || cd >= depth:
			warnings = append(warnings, fmt.Sprintf("%s: Cutout %.2f x %.2f does not fit the stand, ignored", rowLabel, cw, cd))
		default:
			s.CutoutWidth = cw
			s.CutoutDepth = cd
		}
	}
	s.RecomputeArea()
	return s, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports stands from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports stands from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports stands from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile picks the importer from the file extension.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xlsm"):
		return ImportExcel(path)
	case strings.HasSuffix(lower, ".dxf"):
		return ImportDXF(path, 1)
	default:
		return ImportCSV(path)
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Depth == -1 {
			missing = append(missing, "Depth")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// An unrecognized header still has a non-numeric width cell
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		s, errMsg, warnings := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Stands = append(result.Stands, s)
	}

	return result
}
