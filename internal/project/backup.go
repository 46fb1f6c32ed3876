package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/StandPlan/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// ErrInvalidBackup is returned for a backup file without a version field.
var ErrInvalidBackup = errors.New("invalid backup file: missing version field")

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Config    model.AppConfig     `json:"config"`
	Layout    *model.Layout       `json:"layout,omitempty"`
	Inventory *model.Inventory    `json:"inventory,omitempty"`
	Templates model.TemplateStore `json:"templates"`
}

// NewBackup bundles the given data with the current version and time.
func NewBackup(config model.AppConfig, l *model.Layout, inv *model.Inventory, templates model.TemplateStore) BackupData {
	return BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Layout:    l,
		Inventory: inv,
		Templates: templates,
	}
}

// ExportBackup writes a backup to a single JSON file at the given path.
func ExportBackup(exportPath string, backup BackupData) error {
	if backup.Version == "" {
		backup.Version = BackupVersion
	}
	if backup.CreatedAt == "" {
		backup.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportBackup reads a backup JSON file and returns the contained data.
// The caller is responsible for applying it.
func ImportBackup(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, ErrInvalidBackup
	}
	backup.Config = backup.Config.Sanitized()
	if backup.Layout != nil {
		l := normalizeLayout(*backup.Layout)
		backup.Layout = &l
	}
	if backup.Templates.Templates == nil {
		backup.Templates = model.NewTemplateStore()
	}
	return backup, nil
}
