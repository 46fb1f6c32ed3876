package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/StandPlan/internal/model"
)

// DefaultInventoryPath returns the default file path for the preset inventory.
// This is located at ~/.standplan/inventory.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create inventory directory: %w", err)
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			return inv, SaveInventory(path, inv)
		}
		return model.Inventory{}, fmt.Errorf("failed to read inventory: %w", err)
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, fmt.Errorf("failed to parse inventory: %w", err)
	}
	if inv.Stands == nil {
		inv.Stands = []model.StandPreset{}
	}
	if inv.Pavilions == nil {
		inv.Pavilions = []model.PavilionPreset{}
	}
	return inv, nil
}

// LoadOrCreateInventory loads the inventory from the default path.
// If the file does not exist, it creates one with default entries.
func LoadOrCreateInventory() (model.Inventory, string, error) {
	path := DefaultInventoryPath()
	inv, err := LoadInventory(path)
	return inv, path, err
}

// ImportInventory imports an inventory from a user-specified JSON file,
// merging it with the existing inventory. Duplicate IDs are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, fmt.Errorf("failed to read inventory: %w", err)
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, fmt.Errorf("failed to parse inventory: %w", err)
	}

	standIDs := make(map[string]bool, len(existing.Stands))
	for _, s := range existing.Stands {
		standIDs[s.ID] = true
	}
	pavilionIDs := make(map[string]bool, len(existing.Pavilions))
	for _, p := range existing.Pavilions {
		pavilionIDs[p.ID] = true
	}

	for _, s := range imported.Stands {
		if !standIDs[s.ID] {
			existing.Stands = append(existing.Stands, s)
			standIDs[s.ID] = true
		}
	}
	for _, p := range imported.Pavilions {
		if !pavilionIDs[p.ID] {
			existing.Pavilions = append(existing.Pavilions, p)
			pavilionIDs[p.ID] = true
		}
	}

	return existing, nil
}
