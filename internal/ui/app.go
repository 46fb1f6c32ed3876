package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/StandPlan/internal/editor"
	"github.com/piwi3910/StandPlan/internal/engine"
	"github.com/piwi3910/StandPlan/internal/export"
	standimporter "github.com/piwi3910/StandPlan/internal/importer"
	"github.com/piwi3910/StandPlan/internal/interact"
	"github.com/piwi3910/StandPlan/internal/model"
	"github.com/piwi3910/StandPlan/internal/project"
	"github.com/piwi3910/StandPlan/internal/ui/widgets"
)

// maxRecentLayouts bounds the File > Open Recent menu.
const maxRecentLayouts = 8

// App holds all application state and UI references.
type App struct {
	app    fyne.App
	window fyne.Window
	logger *log.Logger

	editor *editor.Editor
	ctrl   *interact.Controller
	canvas *widgets.FloorCanvas
	theme  *StandPlanTheme

	config        model.AppConfig
	configPath    string
	inventory     model.Inventory
	inventoryPath string
	templates     model.TemplateStore
	layoutPath    string
	fullScreen    bool

	// UI references for dynamic updates
	pavilionSelect *widget.Select
	backlogList    *fyne.Container
	propsContainer *fyne.Container
	statusLabel    *widget.Label
	propsKey       string
	refreshing     bool
}

// NewApp creates the editor host for the window. Inventory and templates
// are loaded from the config directory; failures fall back to defaults.
func NewApp(application fyne.App, window fyne.Window, cfg model.AppConfig, configPath string, logger *log.Logger) *App {
	if configPath == "" {
		configPath = project.DefaultConfigPath()
	}
	a := &App{
		app:        application,
		window:     window,
		logger:     logger,
		config:     cfg.Sanitized(),
		configPath: configPath,
		inventory:  model.DefaultInventory(),
		templates:  model.NewTemplateStore(),
	}

	if inv, path, err := project.LoadOrCreateInventory(); err != nil {
		logger.Warn("using default inventory", "err", err)
	} else {
		a.inventory, a.inventoryPath = inv, path
	}
	if store, err := project.LoadDefaultTemplates(); err != nil {
		logger.Warn("no templates loaded", "err", err)
	} else {
		a.templates = store
	}

	a.editor = editor.New(model.NewLayout(), editor.OptionsFromConfig(a.config))
	a.editor.SetLogger(logger)
	a.ctrl = interact.NewController(a.editor)
	a.ctrl.OnExitFullScreen = func() { a.setFullScreen(false) }
	a.canvas = widgets.NewFloorCanvas(a.ctrl)
	a.canvas.OnChanged = a.refresh

	a.theme = NewStandPlanThemeFromConfig(a.config.Theme)
	application.Settings().SetTheme(a.theme)
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	recent := fyne.NewMenuItem("Open Recent", nil)
	recent.ChildMenu = a.recentMenu()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Layout", a.newLayout),
		fyne.NewMenuItem("Open Layout...", a.openLayoutDialog),
		recent,
		fyne.NewMenuItem("Save", a.saveLayout),
		fyne.NewMenuItem("Save As...", a.saveLayoutAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Stands (CSV, Excel, DXF)...", a.importStands),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Floor Plan PDF...", a.exportPlan),
		fyne.NewMenuItem("Export Stand Labels PDF...", a.exportLabels),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup / Restore...", a.showBackupDialog),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() { a.dispatch(editor.Command{Kind: editor.CmdUndo}) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Duplicate", func() { a.dispatch(editor.Command{Kind: editor.CmdDuplicate}) }),
		fyne.NewMenuItem("Delete", func() { a.dispatch(editor.Command{Kind: editor.CmdDelete}) }),
		fyne.NewMenuItem("Remove from Layout", func() { a.dispatch(editor.Command{Kind: editor.CmdPurge}) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Selection", func() { a.dispatch(editor.Command{Kind: editor.CmdClearSelection}) }),
	)

	align := fyne.NewMenuItem("Align", nil)
	alignItems := make([]*fyne.MenuItem, 0, len(engine.Edges))
	for _, edge := range engine.Edges {
		edge := edge
		alignItems = append(alignItems, fyne.NewMenuItem(edgeLabel(edge), func() {
			a.dispatch(editor.Command{Kind: editor.CmdAlign, Edge: edge})
		}))
	}
	align.ChildMenu = fyne.NewMenu("", alignItems...)

	arrangeMenu := fyne.NewMenu("Arrange",
		fyne.NewMenuItem("Rotate 90°", func() {
			a.dispatch(editor.Command{Kind: editor.CmdRotate, Degrees: interact.RotateStep})
		}),
		align,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Place Backlog", a.placeBacklog),
	)

	utilities := fyne.NewMenuItem("Utility Space", nil)
	utilityItems := make([]*fyne.MenuItem, 0, len(model.UtilityCategories))
	for _, cat := range model.UtilityCategories {
		cat := cat
		utilityItems = append(utilityItems, fyne.NewMenuItem(cat.String(), func() {
			a.dispatch(editor.Command{Kind: editor.CmdAddUtility, Category: cat})
		}))
	}
	utilities.ChildMenu = fyne.NewMenu("", utilityItems...)

	insertMenu := fyne.NewMenu("Insert",
		fyne.NewMenuItem("Pavilion...", a.showAddPavilionDialog),
		fyne.NewMenuItem("Pavilion from Preset...", a.showPavilionPresetsDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Stand", func() { a.dispatch(editor.Command{Kind: editor.CmdAddStand, Shape: model.ShapeRectangle}) }),
		fyne.NewMenuItem("L Stand", func() { a.dispatch(editor.Command{Kind: editor.CmdAddStand, Shape: model.ShapeL}) }),
		fyne.NewMenuItem("Stand from Preset...", a.showStandPresetsDialog),
		utilities,
	)

	templatesMenu := fyne.NewMenu("Templates",
		fyne.NewMenuItem("Save Layout as Template...", a.showSaveTemplateDialog),
		fyne.NewMenuItem("New Layout from Template...", a.showNewFromTemplateDialog),
		fyne.NewMenuItem("Manage Templates...", a.showTemplatesDialog),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { a.ctrl.Zoom(interact.ZoomStep); a.refresh() }),
		fyne.NewMenuItem("Zoom Out", func() { a.ctrl.Zoom(1 / interact.ZoomStep); a.refresh() }),
		fyne.NewMenuItem("Reset View", func() { a.ctrl.ResetView(); a.refresh() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle Full Screen", func() { a.setFullScreen(!a.fullScreen) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Keyboard Shortcuts", a.showShortcutsDialog),
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(
		fileMenu, editMenu, arrangeMenu, insertMenu, templatesMenu, viewMenu, helpMenu,
	))
}

func (a *App) recentMenu() *fyne.Menu {
	if len(a.config.RecentLayouts) == 0 {
		item := fyne.NewMenuItem("(none)", nil)
		item.Disabled = true
		return fyne.NewMenu("", item)
	}
	items := make([]*fyne.MenuItem, 0, len(a.config.RecentLayouts))
	for _, path := range a.config.RecentLayouts {
		path := path
		items = append(items, fyne.NewMenuItem(filepath.Base(path), func() {
			if err := a.OpenLayout(path); err != nil {
				dialog.ShowError(err, a.window)
			}
		}))
	}
	return fyne.NewMenu("", items...)
}

func edgeLabel(e engine.Edge) string {
	switch e {
	case engine.EdgeLeft:
		return "Left"
	case engine.EdgeRight:
		return "Right"
	case engine.EdgeTop:
		return "Top"
	case engine.EdgeBottom:
		return "Bottom"
	case engine.EdgeCenterX:
		return "Center Horizontally"
	case engine.EdgeCenterY:
		return "Center Vertically"
	}
	return string(e)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About StandPlan",
		"StandPlan - Exhibition Floor Planner\n\n"+
			"Lay out stands and utility spaces in pavilions,\n"+
			"then export floor plans and stand signs.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

func (a *App) showShortcutsDialog() {
	text := strings.Join([]string{
		"Arrow keys\tNudge selection (Shift for fine steps)",
		"R\tRotate 90°",
		"Delete / Backspace\tDelete selection",
		"Ctrl+Z\tUndo",
		"Ctrl+D\tDuplicate",
		"Ctrl+Shift+R\tAdd stand",
		"Ctrl+Shift+L\tAdd L stand",
		"+ / -\tZoom",
		"0\tReset view",
		"Space + drag\tPan",
		"Escape\tClear selection or leave full screen",
	}, "\n")
	dialog.ShowInformation("Keyboard Shortcuts", text, a.window)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.statusLabel = widget.NewLabel("")

	center := container.NewHSplit(a.canvas, a.buildPropertiesPanel())
	center.Offset = 0.78
	split := container.NewHSplit(a.buildLeftPanel(), center)
	split.Offset = 0.18

	root := container.NewBorder(a.buildToolbar(), a.statusLabel, nil, nil, split)
	a.refresh()
	return withToolTipLayer(root, a.window.Canvas())
}

// SetupKeyboard routes key events to the controller unless a text field
// has focus.
func (a *App) SetupKeyboard() {
	dc, ok := a.window.Canvas().(desktop.Canvas)
	if !ok {
		return
	}
	dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
		a.ctrl.SetTextFocus(a.textFocused())
		if ev.Name == fyne.KeyEscape && a.canvas.Carrying() {
			a.canvas.CancelCarry()
			a.refresh()
			return
		}
		if a.ctrl.KeyDown(ev.Name, a.modifiers()) {
			a.refresh()
		}
	})
	dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
		a.ctrl.KeyUp(ev.Name)
	})
}

func (a *App) modifiers() fyne.KeyModifier {
	if d, ok := a.app.Driver().(desktop.Driver); ok {
		return d.CurrentKeyModifiers()
	}
	return 0
}

func (a *App) textFocused() bool {
	switch a.window.Canvas().Focused().(type) {
	case *widget.Entry, *widget.SelectEntry:
		return true
	}
	return false
}

func (a *App) setFullScreen(on bool) {
	a.fullScreen = on
	a.window.SetFullScreen(on)
}

// dispatch runs a command and refreshes the panels.
func (a *App) dispatch(cmd editor.Command) {
	a.editor.Dispatch(cmd)
	a.refresh()
}

// ─── Toolbar ───────────────────────────────────────────────

func (a *App) buildToolbar() fyne.CanvasObject {
	return container.NewHBox(
		newIconButtonWithTooltip(theme.DocumentCreateIcon(), "New layout", a.newLayout),
		newIconButtonWithTooltip(theme.FolderOpenIcon(), "Open layout", a.openLayoutDialog),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save layout", a.saveLayout),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo (Ctrl+Z)", func() {
			a.dispatch(editor.Command{Kind: editor.CmdUndo})
		}),
		newIconButtonWithTooltip(theme.ContentCopyIcon(), "Duplicate (Ctrl+D)", func() {
			a.dispatch(editor.Command{Kind: editor.CmdDuplicate})
		}),
		newIconButtonWithTooltip(theme.DeleteIcon(), "Delete (Del)", func() {
			a.dispatch(editor.Command{Kind: editor.CmdDelete})
		}),
		newIconButtonWithTooltip(theme.ViewRefreshIcon(), "Rotate 90° (R)", func() {
			a.dispatch(editor.Command{Kind: editor.CmdRotate, Degrees: interact.RotateStep})
		}),
		widget.NewSeparator(),
		newTextButtonWithTooltip("+ Pavilion", "Add a pavilion", a.showAddPavilionDialog),
		newTextButtonWithTooltip("+ Stand", "Add a rectangular stand (Ctrl+Shift+R)", func() {
			a.dispatch(editor.Command{Kind: editor.CmdAddStand, Shape: model.ShapeRectangle})
		}),
		newTextButtonWithTooltip("+ L Stand", "Add an L-shaped stand (Ctrl+Shift+L)", func() {
			a.dispatch(editor.Command{Kind: editor.CmdAddStand, Shape: model.ShapeL})
		}),
		newTextButtonWithTooltip("+ Door", "Add a door", func() {
			a.dispatch(editor.Command{Kind: editor.CmdAddUtility, Category: model.UtilityDoor})
		}),
		layout.NewSpacer(),
		newIconButtonWithTooltip(theme.ZoomOutIcon(), "Zoom out (-)", func() {
			a.ctrl.Zoom(1 / interact.ZoomStep)
			a.refresh()
		}),
		newIconButtonWithTooltip(theme.ZoomFitIcon(), "Reset view (0)", func() {
			a.ctrl.ResetView()
			a.refresh()
		}),
		newIconButtonWithTooltip(theme.ZoomInIcon(), "Zoom in (+)", func() {
			a.ctrl.Zoom(interact.ZoomStep)
			a.refresh()
		}),
		newIconButtonWithTooltip(theme.ViewFullScreenIcon(), "Full screen (Esc to leave)", func() {
			a.setFullScreen(!a.fullScreen)
		}),
	)
}

// ─── Left Panel ────────────────────────────────────────────

func (a *App) buildLeftPanel() fyne.CanvasObject {
	a.pavilionSelect = widget.NewSelect(nil, func(name string) {
		if a.refreshing {
			return
		}
		for _, c := range a.editor.Layout().Containers {
			if c.Name == name {
				a.editor.SetActiveContainer(c.ID)
				break
			}
		}
		a.refresh()
	})
	a.pavilionSelect.PlaceHolder = "No pavilions"

	a.backlogList = container.NewVBox()
	placeAll := widget.NewButtonWithIcon("Place All", theme.MediaPlayIcon(), a.placeBacklog)

	top := container.NewVBox(
		widget.NewLabelWithStyle("Active Pavilion", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.pavilionSelect,
		widget.NewSeparator(),
		container.NewHBox(
			widget.NewLabelWithStyle("Backlog", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			placeAll,
		),
	)
	return container.NewBorder(top, nil, nil, nil, container.NewVScroll(a.backlogList))
}

func (a *App) refreshLeftPanel(l model.Layout) {
	names := make([]string, len(l.Containers))
	for i, c := range l.Containers {
		names[i] = c.Name
	}
	a.pavilionSelect.Options = names
	if active, ok := a.editor.ActiveContainer(); ok {
		a.pavilionSelect.SetSelected(active.Name)
	} else {
		a.pavilionSelect.ClearSelected()
	}

	a.backlogList.RemoveAll()
	backlog := l.Backlog()
	if len(backlog) == 0 {
		a.backlogList.Add(widget.NewLabel("All objects are placed."))
		return
	}
	for _, p := range backlog {
		id := p.PlaceableID()
		place := widget.NewButtonWithIcon("", theme.MoveDownIcon(), func() {
			if a.canvas.StartCarry(id) {
				a.statusLabel.SetText("Click inside a pavilion to drop the object. Esc cancels.")
			}
		})
		a.backlogList.Add(container.NewBorder(nil, nil, nil, place, widget.NewLabel(describe(p))))
	}
}

func (a *App) placeBacklog() {
	n := a.editor.PlaceBacklog()
	a.refresh()
	if left := len(a.editor.Layout().Backlog()); left > 0 {
		dialog.ShowInformation("Place Backlog",
			fmt.Sprintf("Placed %d objects. %d did not fit and remain in the backlog.", n, left), a.window)
	}
}

func describe(p model.Placeable) string {
	fp := p.Geometry()
	switch v := p.(type) {
	case model.Stand:
		shape := ""
		if v.Shape == model.ShapeL {
			shape = " L"
		}
		return fmt.Sprintf("Stand %s%s  %.1f x %.1f m", v.Number, shape, fp.Width, fp.Depth)
	case model.UtilitySpace:
		return fmt.Sprintf("%s  %.1f x %.1f m", v.Label, fp.Width, fp.Depth)
	}
	return p.PlaceableID()
}

// ─── Properties Panel ──────────────────────────────────────

func (a *App) buildPropertiesPanel() fyne.CanvasObject {
	a.propsContainer = container.NewVBox()
	return container.NewBorder(
		widget.NewLabelWithStyle("Properties", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(a.propsContainer),
	)
}

func (a *App) refreshPropertiesPanel(l model.Layout) {
	sel := a.editor.Selection()
	var primary model.Placeable
	if id := sel.Primary(); id != "" {
		primary, _ = l.Placeable(id)
	}
	key := propsKey(sel.IDs(), primary)
	if key == a.propsKey {
		return
	}
	a.propsKey = key
	a.propsContainer.RemoveAll()

	if primary == nil {
		a.propsContainer.Add(widget.NewLabel("Nothing selected."))
		return
	}
	if n := sel.Len(); n > 1 {
		a.propsContainer.Add(widget.NewLabel(fmt.Sprintf("%d objects selected. Edits apply to all.", n)))
	}

	fp := primary.Geometry()
	form := widget.NewForm()
	switch v := primary.(type) {
	case model.Stand:
		form.Append("Number", a.propEntry(editor.PropNumber, v.Number))
		form.Append("Shape", a.propSelect(editor.PropShape, []string{string(model.ShapeRectangle), string(model.ShapeL)}, string(v.Shape)))
		form.Append("Width (m)", a.propEntry(editor.PropWidth, fmt.Sprintf("%.2f", fp.Width)))
		form.Append("Depth (m)", a.propEntry(editor.PropDepth, fmt.Sprintf("%.2f", fp.Depth)))
		if v.Shape == model.ShapeL {
			form.Append("Cutout Width (m)", a.propEntry(editor.PropCutoutWidth, fmt.Sprintf("%.2f", v.CutoutWidth)))
			form.Append("Cutout Depth (m)", a.propEntry(editor.PropCutoutDepth, fmt.Sprintf("%.2f", v.CutoutDepth)))
			form.Append("Mirror", container.NewHBox(
				a.propCheck(editor.PropMirrorH, "Horizontal", fp.MirrorH),
				a.propCheck(editor.PropMirrorV, "Vertical", fp.MirrorV),
			))
		}
		form.Append("Rotation (°)", a.propEntry(editor.PropRotation, fmt.Sprintf("%d", fp.Rotation)))
		form.Append("Color", a.propEntry(editor.PropColor, v.Color))
		form.Append("Occupant", a.propEntry(editor.PropOccupant, v.OccupantID))
		form.Append("Image", a.propEntry(editor.PropImage, v.ImageRef))
		form.Append("Area", widget.NewLabel(fmt.Sprintf("%.2f m²", v.Area)))
	case model.UtilitySpace:
		cats := make([]string, len(model.UtilityCategories))
		for i, c := range model.UtilityCategories {
			cats[i] = string(c)
		}
		form.Append("Category", a.propSelect(editor.PropCategory, cats, string(v.Category)))
		form.Append("Label", a.propEntry(editor.PropLabel, v.Label))
		form.Append("Width (m)", a.propEntry(editor.PropWidth, fmt.Sprintf("%.2f", fp.Width)))
		form.Append("Depth (m)", a.propEntry(editor.PropDepth, fmt.Sprintf("%.2f", fp.Depth)))
		form.Append("Rotation (°)", a.propEntry(editor.PropRotation, fmt.Sprintf("%d", fp.Rotation)))
		form.Append("Color", a.propEntry(editor.PropColor, v.Color))
	}
	a.propsContainer.Add(form)
	a.propsContainer.Add(widget.NewLabelWithStyle("Press Enter to apply a field.", fyne.TextAlignLeading, fyne.TextStyle{Italic: true}))

	if !fp.IsPlaced() {
		return
	}
	a.propsContainer.Add(widget.NewSeparator())
	a.propsContainer.Add(widget.NewLabelWithStyle("Align", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	grid := container.NewGridWithColumns(2)
	for _, edge := range engine.Edges {
		edge := edge
		grid.Add(widget.NewButton(edgeLabel(edge), func() {
			a.dispatch(editor.Command{Kind: editor.CmdAlign, Edge: edge})
		}))
	}
	a.propsContainer.Add(grid)
}

// propsKey identifies what the properties panel shows so it is only
// rebuilt when the selection or the primary object changes.
func propsKey(ids []string, p model.Placeable) string {
	if p == nil {
		return fmt.Sprint(ids)
	}
	pos := "backlog"
	if fp := p.Geometry(); fp.Position != nil {
		pos = fmt.Sprintf("%.3f,%.3f", fp.Position.X, fp.Position.Y)
	}
	var attrs string
	switch v := p.(type) {
	case model.Stand:
		v.Position = nil
		attrs = fmt.Sprintf("%+v", v)
	case model.UtilitySpace:
		v.Position = nil
		attrs = fmt.Sprintf("%+v", v)
	}
	return fmt.Sprint(ids, attrs, pos)
}

func (a *App) setProperty(prop, value string) {
	a.dispatch(editor.Command{Kind: editor.CmdSetProperty, Property: prop, Value: value})
}

func (a *App) propEntry(prop, value string) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(value)
	e.OnSubmitted = func(text string) { a.setProperty(prop, text) }
	return e
}

func (a *App) propSelect(prop string, options []string, value string) *widget.Select {
	s := widget.NewSelect(options, nil)
	s.Selected = value
	s.OnChanged = func(text string) { a.setProperty(prop, text) }
	return s
}

func (a *App) propCheck(prop, label string, value bool) *widget.Check {
	c := widget.NewCheck(label, nil)
	c.Checked = value
	c.OnChanged = func(on bool) { a.setProperty(prop, fmt.Sprintf("%t", on)) }
	return c
}

// ─── Refresh ───────────────────────────────────────────────

// refresh redraws the canvas and every panel from the editor state.
func (a *App) refresh() {
	if a.statusLabel == nil {
		return
	}
	a.refreshing = true
	defer func() { a.refreshing = false }()

	l := a.editor.Layout()
	a.canvas.Refresh()
	a.refreshLeftPanel(l)
	a.refreshPropertiesPanel(l)
	a.refreshStatus(l)

	title := "StandPlan - " + l.Name
	if a.layoutPath != "" {
		title += " (" + filepath.Base(a.layoutPath) + ")"
	}
	a.window.SetTitle(title)
}

func (a *App) refreshStatus(l model.Layout) {
	if a.canvas.Carrying() {
		return
	}
	parts := []string{
		fmt.Sprintf("%d pavilions", len(l.Containers)),
		fmt.Sprintf("%d stands", len(l.Stands)),
		fmt.Sprintf("%d utility spaces", len(l.Utilities)),
		fmt.Sprintf("%d in backlog", len(l.Backlog())),
		"selection: " + a.editor.Selection().State().String(),
		fmt.Sprintf("zoom %.0f%%", a.ctrl.Viewport().Scale*100),
	}
	if v := engine.Validate(l); len(v) > 0 {
		parts = append(parts, fmt.Sprintf("%d problems", len(v)))
	}
	a.statusLabel.SetText(strings.Join(parts, " | "))
}

// ─── Layout Files ──────────────────────────────────────────

func (a *App) newLayout() {
	a.editor.Load(model.NewLayout())
	a.layoutPath = ""
	a.ctrl.ResetView()
	a.refresh()
}

// OpenLayout loads a layout file into the editor and records it as recent.
func (a *App) OpenLayout(path string) error {
	l, err := project.LoadLayout(path)
	if err != nil {
		return err
	}
	a.editor.Load(l)
	a.layoutPath = path
	a.ctrl.ResetView()
	a.rememberLayout(path)
	a.refresh()
	a.logger.Info("opened layout", "path", path, "stands", len(l.Stands))
	return nil
}

func (a *App) openLayoutDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		if err := a.OpenLayout(reader.URI().Path()); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
}

func (a *App) saveLayout() {
	if a.layoutPath == "" {
		a.saveLayoutAs()
		return
	}
	a.writeLayout(a.layoutPath)
}

func (a *App) saveLayoutAs() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		a.writeLayout(writer.URI().Path())
	}, a.window)
	d.SetFileName(a.editor.Layout().Name + project.LayoutExt)
	d.Show()
}

func (a *App) writeLayout(path string) {
	if err := project.SaveLayout(path, a.editor.Layout()); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.layoutPath = path
	a.rememberLayout(path)
	a.refresh()
	a.logger.Info("saved layout", "path", path)
}

func (a *App) rememberLayout(path string) {
	a.config.AddRecentLayout(path, maxRecentLayouts)
	if err := a.saveConfig(); err != nil {
		a.logger.Warn("could not save recent layouts", "err", err)
	}
	a.SetupMenus()
}

// ─── Import / Export ───────────────────────────────────────

func (a *App) importStands() {
	if _, ok := a.editor.ActiveContainer(); !ok {
		dialog.ShowInformation("No pavilion", "Add a pavilion before importing stands.", a.window)
		return
	}
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(standimporter.ImportFile(reader.URI().Path()))
	}, a.window)
}

func (a *App) handleImportResult(result standimporter.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}
	for _, w := range result.Warnings {
		a.logger.Warn("import", "warning", w)
	}
	if len(result.Stands) == 0 {
		return
	}

	placed := a.editor.ImportStands(result.Stands)
	a.refresh()
	msg := fmt.Sprintf("Imported %d stands, %d placed.", len(result.Stands), placed)
	if rest := len(result.Stands) - placed; rest > 0 {
		msg += fmt.Sprintf("\n%d stands did not fit and wait in the backlog.", rest)
	}
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

func (a *App) exportPlan() {
	a.exportPDF("floor-plan.pdf", "Floor plan", export.ExportPlanPDF)
}

func (a *App) exportLabels() {
	a.exportPDF("stand-labels.pdf", "Stand labels", export.ExportStandLabels)
}

func (a *App) exportPDF(defaultName, what string, write func(string, model.Layout) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := write(path, a.editor.Layout()); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("%s saved to %s", what, path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}
