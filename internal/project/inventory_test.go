package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/StandPlan/internal/model"
)

func TestSaveAndLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	inv := model.Inventory{
		Stands: []model.StandPreset{
			model.NewStandPreset("Booth", model.ShapeRectangle, 4, 2),
		},
		Pavilions: []model.PavilionPreset{
			model.NewPavilionPreset("Dome", model.StructureMarquee, 15, 15),
		},
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}
	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(loaded.Stands) != 1 || loaded.Stands[0].Name != "Booth" {
		t.Errorf("expected one Booth preset, got %+v", loaded.Stands)
	}
	if len(loaded.Pavilions) != 1 || loaded.Pavilions[0].Width != 15 {
		t.Errorf("expected one 15 m pavilion, got %+v", loaded.Pavilions)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(inv.Stands) != len(model.DefaultInventory().Stands) {
		t.Errorf("expected default stand presets, got %d", len(inv.Stands))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected default inventory to be saved: %v", err)
	}
}

func TestLoadInventoryInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInventory(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportInventoryMergesByID(t *testing.T) {
	dir := t.TempDir()
	existing := model.DefaultInventory()

	extra := model.NewStandPreset("Kiosk", model.ShapeRectangle, 2, 2)
	imported := model.Inventory{
		Stands:    []model.StandPreset{existing.Stands[0], extra},
		Pavilions: []model.PavilionPreset{existing.Pavilions[0]},
	}
	path := filepath.Join(dir, "import.json")
	if err := SaveInventory(path, imported); err != nil {
		t.Fatal(err)
	}

	merged, err := ImportInventory(path, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}
	if len(merged.Stands) != len(model.DefaultInventory().Stands)+1 {
		t.Errorf("expected one new stand preset, got %d total", len(merged.Stands))
	}
	if len(merged.Pavilions) != len(existing.Pavilions) {
		t.Errorf("expected duplicate pavilion to be skipped, got %d", len(merged.Pavilions))
	}
	if merged.FindStandByName("Kiosk") == nil {
		t.Error("expected Kiosk preset after merge")
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	got, err := ImportInventory(filepath.Join(t.TempDir(), "nope.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(got.Stands) != len(existing.Stands) {
		t.Error("expected existing inventory to be returned unchanged")
	}
}
