package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/StandPlan/internal/editor"
	"github.com/piwi3910/StandPlan/internal/model"
	"github.com/piwi3910/StandPlan/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%.2f", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil && model.IsFinite(v) {
				*val = v
			}
		}
		return e
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	levelSelect := widget.NewSelect([]string{"debug", "info", "warn", "error"}, func(selected string) {
		cfg.LogLevel = selected
	})
	levelSelect.SetSelected(cfg.LogLevel)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Log Level", levelSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Pavilion Width (m)", floatEntry(&cfg.DefaultContainerWidth)),
		widget.NewFormItem("Default Pavilion Depth (m)", floatEntry(&cfg.DefaultContainerDepth)),
		widget.NewFormItem("Default Stand Width (m)", floatEntry(&cfg.DefaultStandWidth)),
		widget.NewFormItem("Default Stand Depth (m)", floatEntry(&cfg.DefaultStandDepth)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Duplicate Offset (m)", floatEntry(&cfg.DuplicateOffset)),
		widget.NewFormItem("Nudge Step (m)", floatEntry(&cfg.NudgeStep)),
		widget.NewFormItem("Fine Nudge Step (m)", floatEntry(&cfg.FineNudgeStep)),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			a.applyConfig(cfg)
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(450, 500))
	d.Show()
}

// applyConfig makes a config current: editing defaults, theme and log
// level follow it immediately.
func (a *App) applyConfig(cfg model.AppConfig) {
	a.config = cfg.Sanitized()
	a.editor.SetOptions(editor.OptionsFromConfig(a.config))
	a.theme.SetVariantName(a.config.Theme)
	a.app.Settings().SetTheme(a.theme)
	if level, err := log.ParseLevel(a.config.LogLevel); err == nil {
		a.logger.SetLevel(level)
	}
	a.SetupMenus()
}

// showBackupDialog displays the backup and restore dialog.
func (a *App) showBackupDialog() {
	exportBtn := widget.NewButton("Export Backup...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			l := a.editor.Layout()
			inv := a.inventory
			backup := project.NewBackup(a.config, &l, &inv, a.templates)
			if err := project.ExportBackup(path, backup); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("Settings, layout, presets and templates exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("standplan-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Restore Backup...", func() {
		dialog.ShowConfirm("Restore Backup",
			"Restoring replaces your settings, presets, templates and the open layout.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					backup, err := project.ImportBackup(reader.URI().Path())
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.restoreBackup(backup)
					dialog.ShowInformation("Restore Complete",
						fmt.Sprintf("Data restored from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export settings, stand and pavilion presets, templates and the\nopen layout to one backup file, or restore a previous backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Backup / Restore", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

func (a *App) restoreBackup(backup project.BackupData) {
	a.applyConfig(backup.Config)
	if err := a.saveConfig(); err != nil {
		a.logger.Error("failed to save restored settings", "err", err)
	}
	if backup.Inventory != nil {
		a.inventory = *backup.Inventory
		a.saveInventory()
	}
	a.templates = backup.Templates
	a.saveTemplates()
	if backup.Layout != nil {
		a.editor.Load(*backup.Layout)
		a.layoutPath = ""
		a.ctrl.ResetView()
	}
	a.refresh()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(a.configPath, a.config)
}
