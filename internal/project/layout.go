package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/StandPlan/internal/model"
)

// LayoutExt is the file extension used for saved floor plans.
const LayoutExt = ".standplan.json"

// SaveLayout writes a layout to the given path as indented JSON.
func SaveLayout(path string, l model.Layout) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layout file: %w", err)
	}
	return nil
}

// LoadLayout reads a layout file. Containers and placeables get default
// dimensions where theirs are unusable, missing ids are generated and
// stand areas are recomputed from the geometry.
func LoadLayout(path string) (model.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Layout{}, fmt.Errorf("failed to read layout file: %w", err)
	}
	var l model.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return model.Layout{}, fmt.Errorf("failed to parse layout file: %w", err)
	}
	return normalizeLayout(l), nil
}

func normalizeLayout(l model.Layout) model.Layout {
	if l.Name == "" {
		l.Name = "Untitled"
	}
	if l.Containers == nil {
		l.Containers = []model.Container{}
	}
	if l.Stands == nil {
		l.Stands = []model.Stand{}
	}
	if l.Utilities == nil {
		l.Utilities = []model.UtilitySpace{}
	}
	for i := range l.Containers {
		l.Containers[i] = l.Containers[i].Normalized()
	}
	for i := range l.Stands {
		l.Stands[i] = l.Stands[i].Normalized()
	}
	for i := range l.Utilities {
		l.Utilities[i] = l.Utilities[i].Normalized()
	}
	return l
}
