package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/StandPlan/internal/model"
	"github.com/piwi3910/StandPlan/internal/project"
)

var structureKinds = []string{
	string(model.StructureHall),
	string(model.StructureMarquee),
	string(model.StructureOpenAir),
}

// parseFloatOr returns the parsed value, or def when text is not a finite
// number.
func parseFloatOr(text string, def float64) float64 {
	if v, err := strconv.ParseFloat(text, 64); err == nil && model.IsFinite(v) {
		return v
	}
	return def
}

func boldLabel(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

// ─── Pavilions ─────────────────────────────────────────────

func (a *App) showAddPavilionDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(fmt.Sprintf("Pavilion %d", len(a.editor.Layout().Containers)+1))

	kindSelect := widget.NewSelect(structureKinds, nil)
	kindSelect.SetSelected(string(model.StructureHall))

	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.1f", a.config.DefaultContainerWidth))
	depthEntry := widget.NewEntry()
	depthEntry.SetText(fmt.Sprintf("%.1f", a.config.DefaultContainerDepth))

	items := []*widget.FormItem{
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Structure", kindSelect),
		widget.NewFormItem("Width (m)", widthEntry),
		widget.NewFormItem("Depth (m)", depthEntry),
	}
	d := dialog.NewForm("Add Pavilion", "Add", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		a.editor.AddContainer(nameEntry.Text, model.StructureKind(kindSelect.Selected),
			parseFloatOr(widthEntry.Text, 0), parseFloatOr(depthEntry.Text, 0))
		a.refresh()
	}, a.window)
	d.Resize(fyne.NewSize(380, 300))
	d.Show()
}

// ─── Pavilion Presets Dialog ───────────────────────────────

func (a *App) showPavilionPresetsDialog() {
	list := container.NewVBox()
	var d dialog.Dialog
	var refreshList func()

	refreshList = func() {
		list.RemoveAll()
		if len(a.inventory.Pavilions) == 0 {
			list.Add(widget.NewLabel("No pavilion presets defined."))
			return
		}
		list.Add(container.NewGridWithColumns(5,
			boldLabel("Name"), boldLabel("Structure"), boldLabel("Size"), boldLabel(""), boldLabel(""),
		))
		list.Add(widget.NewSeparator())
		for i := range a.inventory.Pavilions {
			idx := i
			p := a.inventory.Pavilions[idx]
			list.Add(container.NewGridWithColumns(5,
				widget.NewLabel(p.Name),
				widget.NewLabel(p.Kind.String()),
				widget.NewLabel(fmt.Sprintf("%.0f x %.0f m", p.Width, p.Depth)),
				widget.NewButtonWithIcon("Insert", theme.ContentAddIcon(), func() {
					a.editor.AddContainer(p.Name, p.Kind, p.Width, p.Depth)
					a.refresh()
					d.Hide()
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.inventory.Pavilions = append(a.inventory.Pavilions[:idx], a.inventory.Pavilions[idx+1:]...)
					a.saveInventory()
					refreshList()
				}),
			))
		}
	}
	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Preset", theme.ContentAddIcon(), func() {
		a.showAddPavilionPresetDialog(refreshList)
	})
	content := container.NewBorder(
		a.inventoryToolbar(addBtn, refreshList),
		nil, nil, nil,
		container.NewVScroll(list),
	)
	d = dialog.NewCustom("Pavilion Presets", "Close", content, a.window)
	d.Resize(fyne.NewSize(650, 420))
	d.Show()
}

func (a *App) showAddPavilionPresetDialog(onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Preset name")
	kindSelect := widget.NewSelect(structureKinds, nil)
	kindSelect.SetSelected(string(model.StructureHall))
	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.1f", a.config.DefaultContainerWidth))
	depthEntry := widget.NewEntry()
	depthEntry.SetText(fmt.Sprintf("%.1f", a.config.DefaultContainerDepth))

	items := []*widget.FormItem{
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Structure", kindSelect),
		widget.NewFormItem("Width (m)", widthEntry),
		widget.NewFormItem("Depth (m)", depthEntry),
	}
	d := dialog.NewForm("Add Pavilion Preset", "Add", "Cancel", items, func(ok bool) {
		if !ok || nameEntry.Text == "" {
			return
		}
		a.inventory.Pavilions = append(a.inventory.Pavilions, model.NewPavilionPreset(
			nameEntry.Text, model.StructureKind(kindSelect.Selected),
			parseFloatOr(widthEntry.Text, 0), parseFloatOr(depthEntry.Text, 0)))
		a.saveInventory()
		onDone()
	}, a.window)
	d.Resize(fyne.NewSize(380, 300))
	d.Show()
}

// ─── Stand Presets Dialog ──────────────────────────────────

func (a *App) showStandPresetsDialog() {
	list := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		list.RemoveAll()
		if len(a.inventory.Stands) == 0 {
			list.Add(widget.NewLabel("No stand presets defined."))
			return
		}
		list.Add(container.NewGridWithColumns(5,
			boldLabel("Name"), boldLabel("Shape"), boldLabel("Size"), boldLabel(""), boldLabel(""),
		))
		list.Add(widget.NewSeparator())
		for i := range a.inventory.Stands {
			idx := i
			p := a.inventory.Stands[idx]
			size := fmt.Sprintf("%.1f x %.1f m", p.Width, p.Depth)
			if p.Shape == model.ShapeL {
				size += fmt.Sprintf(" (-%.1f x %.1f)", p.CutoutWidth, p.CutoutDepth)
			}
			list.Add(container.NewGridWithColumns(5,
				widget.NewLabel(p.Name),
				widget.NewLabel(string(p.Shape)),
				widget.NewLabel(size),
				widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), func() {
					if _, placed := a.editor.AddPresetStand(p); !placed {
						if _, ok := a.editor.ActiveContainer(); !ok {
							dialog.ShowInformation("No pavilion", "Add a pavilion before adding stands.", a.window)
						}
					}
					a.refresh()
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.inventory.Stands = append(a.inventory.Stands[:idx], a.inventory.Stands[idx+1:]...)
					a.saveInventory()
					refreshList()
				}),
			))
		}
	}
	refreshList()

	addBtn := widget.NewButtonWithIcon("Add Preset", theme.ContentAddIcon(), func() {
		a.showAddStandPresetDialog(refreshList)
	})
	content := container.NewBorder(
		a.inventoryToolbar(addBtn, refreshList),
		nil, nil, nil,
		container.NewVScroll(list),
	)
	d := dialog.NewCustom("Stand Presets", "Close", content, a.window)
	d.Resize(fyne.NewSize(700, 450))
	d.Show()
}

func (a *App) showAddStandPresetDialog(onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Preset name")
	shapeSelect := widget.NewSelect([]string{string(model.ShapeRectangle), string(model.ShapeL)}, nil)
	shapeSelect.SetSelected(string(model.ShapeRectangle))
	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.1f", a.config.DefaultStandWidth))
	depthEntry := widget.NewEntry()
	depthEntry.SetText(fmt.Sprintf("%.1f", a.config.DefaultStandDepth))
	cutoutWEntry := widget.NewEntry()
	cutoutWEntry.SetText(fmt.Sprintf("%.1f", model.DefaultLCutoutWidth))
	cutoutDEntry := widget.NewEntry()
	cutoutDEntry.SetText(fmt.Sprintf("%.1f", model.DefaultLCutoutDepth))
	colorEntry := widget.NewEntry()
	colorEntry.SetText(model.DefaultStandColor)

	items := []*widget.FormItem{
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Shape", shapeSelect),
		widget.NewFormItem("Width (m)", widthEntry),
		widget.NewFormItem("Depth (m)", depthEntry),
		widget.NewFormItem("Cutout Width (m)", cutoutWEntry),
		widget.NewFormItem("Cutout Depth (m)", cutoutDEntry),
		widget.NewFormItem("Color", colorEntry),
	}
	d := dialog.NewForm("Add Stand Preset", "Add", "Cancel", items, func(ok bool) {
		if !ok || nameEntry.Text == "" {
			return
		}
		shape := model.ParseShape(shapeSelect.Selected)
		preset := model.NewStandPreset(nameEntry.Text, shape,
			parseFloatOr(widthEntry.Text, 0), parseFloatOr(depthEntry.Text, 0))
		if shape == model.ShapeL {
			preset = preset.WithCutout(parseFloatOr(cutoutWEntry.Text, 0), parseFloatOr(cutoutDEntry.Text, 0))
		}
		if _, _, _, valid := model.ParseHexColor(colorEntry.Text); valid {
			preset.Color = colorEntry.Text
		}
		a.inventory.Stands = append(a.inventory.Stands, preset)
		a.saveInventory()
		onDone()
	}, a.window)
	d.Resize(fyne.NewSize(400, 420))
	d.Show()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) inventoryToolbar(addBtn *widget.Button, onImport func()) fyne.CanvasObject {
	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importInventory(onImport)
	})
	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), func() {
		a.exportInventory()
	})
	return container.NewHBox(addBtn, layout.NewSpacer(), importBtn, exportBtn)
}

func (a *App) importInventory(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		merged, err := project.ImportInventory(reader.URI().Path(), a.inventory)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}

		a.inventory = merged
		a.saveInventory()
		onDone()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Inventory now contains %d stand presets and %d pavilion presets.",
				len(a.inventory.Stands), len(a.inventory.Pavilions)),
			a.window)
	}, a.window)
}

func (a *App) exportInventory() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()

		if err := project.SaveInventory(writer.URI().Path(), a.inventory); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Inventory exported to %s", writer.URI().Path()),
				a.window)
		}
	}, a.window)
	d.SetFileName("inventory.json")
	d.Show()
}

// saveInventory persists the current inventory to disk.
func (a *App) saveInventory() {
	if a.inventoryPath == "" {
		a.inventoryPath = project.DefaultInventoryPath()
	}
	if err := project.SaveInventory(a.inventoryPath, a.inventory); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save inventory: %w", err), a.window)
	}
}

// ─── Templates ─────────────────────────────────────────────

func (a *App) showSaveTemplateDialog() {
	l := a.editor.Layout()
	if len(l.Containers) == 0 {
		dialog.ShowInformation("Empty layout", "Add at least one pavilion before saving a template.", a.window)
		return
	}
	nameEntry := widget.NewEntry()
	nameEntry.SetText(l.Name)
	descEntry := widget.NewMultiLineEntry()
	descEntry.SetPlaceHolder("Venue, event series, notes...")

	items := []*widget.FormItem{
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("Description", descEntry),
	}
	d := dialog.NewForm("Save as Template", "Save", "Cancel", items, func(ok bool) {
		if !ok || nameEntry.Text == "" {
			return
		}
		if existing := a.templates.FindByName(nameEntry.Text); existing != nil {
			a.templates.Remove(existing.ID)
		}
		a.templates.Add(model.NewLayoutTemplate(nameEntry.Text, descEntry.Text, l))
		a.saveTemplates()
	}, a.window)
	d.Resize(fyne.NewSize(420, 300))
	d.Show()
}

func (a *App) showNewFromTemplateDialog() {
	if len(a.templates.Templates) == 0 {
		dialog.ShowInformation("No templates", "Save a layout as a template first.", a.window)
		return
	}
	templateSelect := widget.NewSelect(a.templates.Names(), nil)
	templateSelect.SetSelectedIndex(0)
	nameEntry := widget.NewEntry()
	nameEntry.SetText("Untitled")

	items := []*widget.FormItem{
		widget.NewFormItem("Template", templateSelect),
		widget.NewFormItem("Layout Name", nameEntry),
	}
	d := dialog.NewForm("New Layout from Template", "Create", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		t := a.templates.FindByName(templateSelect.Selected)
		if t == nil {
			return
		}
		a.editor.Load(t.ToLayout(nameEntry.Text))
		a.layoutPath = ""
		a.ctrl.ResetView()
		a.refresh()
	}, a.window)
	d.Resize(fyne.NewSize(400, 220))
	d.Show()
}

func (a *App) showTemplatesDialog() {
	list := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		list.RemoveAll()
		if len(a.templates.Templates) == 0 {
			list.Add(widget.NewLabel("No templates saved."))
			return
		}
		for _, t := range a.templates.Templates {
			id := t.ID
			summary := fmt.Sprintf("%d pavilions, %d stands", len(t.Layout.Containers), len(t.Layout.Stands))
			list.Add(container.NewBorder(nil, nil, nil,
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.templates.Remove(id)
					a.saveTemplates()
					refreshList()
				}),
				widget.NewLabel(fmt.Sprintf("%s  (%s)\n%s", t.Name, summary, t.Description)),
			))
		}
	}
	refreshList()

	d := dialog.NewCustom("Templates", "Close", container.NewVScroll(list), a.window)
	d.Resize(fyne.NewSize(500, 400))
	d.Show()
}

// saveTemplates persists the template store to disk.
func (a *App) saveTemplates() {
	if err := project.SaveDefaultTemplates(a.templates); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save templates: %w", err), a.window)
	}
}
