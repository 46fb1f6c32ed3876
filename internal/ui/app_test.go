package ui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/StandPlan/internal/editor"
	"github.com/piwi3910/StandPlan/internal/engine"
	"github.com/piwi3910/StandPlan/internal/model"
	"github.com/piwi3910/StandPlan/internal/project"
)

// newTestApp builds the editor host on the fyne test driver with HOME
// pointing at a temp dir so presets and templates stay isolated.
func newTestApp(t *testing.T) *App {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	application := test.NewApp()
	t.Cleanup(application.Quit)
	window := application.NewWindow("StandPlan")

	a := NewApp(application, window, model.DefaultAppConfig(), filepath.Join(home, "config.toml"), log.New(io.Discard))
	a.SetupMenus()
	window.SetContent(a.Build())
	return a
}

// ─── Theme ─────────────────────────────────────────────────

func TestStandPlanTheme_FixedVariant(t *testing.T) {
	th := NewStandPlanThemeFromConfig("light")
	base := theme.DefaultTheme()

	got := th.Color(theme.ColorNameBackground, theme.VariantDark)
	want := base.Color(theme.ColorNameBackground, theme.VariantLight)
	if got != want {
		t.Errorf("light theme background = %v, want %v", got, want)
	}

	th.SetVariantName("system")
	got = th.Color(theme.ColorNameBackground, theme.VariantDark)
	want = base.Color(theme.ColorNameBackground, theme.VariantDark)
	if got != want {
		t.Errorf("system theme should follow the requested variant")
	}
}

func TestStandPlanTheme_CompactSizes(t *testing.T) {
	th := NewStandPlanTheme()
	if got := th.Size(theme.SizeNameText); got != 12 {
		t.Errorf("text size = %v, want 12", got)
	}
	if got, want := th.Size(theme.SizeNameScrollBar), theme.DefaultTheme().Size(theme.SizeNameScrollBar); got != want {
		t.Errorf("unlisted sizes should delegate: got %v, want %v", got, want)
	}
}

// ─── Helpers ───────────────────────────────────────────────

func TestEdgeLabel_Distinct(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range engine.Edges {
		label := edgeLabel(e)
		if label == "" || label == string(e) {
			t.Errorf("edge %q has no display label", e)
		}
		if seen[label] {
			t.Errorf("duplicate label %q", label)
		}
		seen[label] = true
	}
}

func TestDescribe(t *testing.T) {
	s := model.NewStand(model.ShapeL, "hall")
	s.Number = "12"
	if got := describe(s); got != "Stand 12 L  5.0 x 4.0 m" {
		t.Errorf("describe(stand) = %q", got)
	}
	u := model.NewUtilitySpace(model.UtilityStage, "hall")
	if got := describe(u); !strings.HasPrefix(got, "Stage") {
		t.Errorf("describe(utility) = %q", got)
	}
}

func TestPropsKey_IgnoresPointerIdentity(t *testing.T) {
	s := model.NewStand(model.ShapeRectangle, "hall")
	s.Position = &model.Point{X: 10, Y: 20}
	clone := s
	clone.Position = &model.Point{X: 10, Y: 20}

	ids := []string{s.ID}
	if propsKey(ids, s) != propsKey(ids, clone) {
		t.Error("equal objects with distinct position pointers should share a key")
	}
	clone.Position = &model.Point{X: 15, Y: 20}
	if propsKey(ids, s) == propsKey(ids, clone) {
		t.Error("a moved object should change the key")
	}
	if propsKey(nil, nil) == propsKey(ids, s) {
		t.Error("empty selection should differ from a selection")
	}
}

func TestParseFloatOr(t *testing.T) {
	if got := parseFloatOr("2.5", 1); got != 2.5 {
		t.Errorf("parseFloatOr(2.5) = %v", got)
	}
	for _, text := range []string{"abc", "NaN", "Inf", "-inf"} {
		if got := parseFloatOr(text, 1); got != 1 {
			t.Errorf("parseFloatOr(%s) = %v, want default", text, got)
		}
	}
}

// ─── App ───────────────────────────────────────────────────

func TestApp_DispatchRefreshesStatus(t *testing.T) {
	a := newTestApp(t)
	a.editor.AddContainer("Hall A", model.StructureHall, 20, 10)
	a.dispatch(editor.Command{Kind: editor.CmdAddStand, Shape: model.ShapeRectangle})

	status := a.statusLabel.Text
	for _, want := range []string{"1 pavilions", "1 stands", "0 in backlog"} {
		if !strings.Contains(status, want) {
			t.Errorf("status %q missing %q", status, want)
		}
	}
	if got := a.pavilionSelect.Selected; got != "Hall A" {
		t.Errorf("active pavilion = %q, want Hall A", got)
	}
	if !strings.Contains(a.window.Title(), "Untitled") {
		t.Errorf("window title = %q", a.window.Title())
	}
}

func TestApp_SaveAndOpenLayout(t *testing.T) {
	a := newTestApp(t)
	a.editor.AddContainer("Hall A", model.StructureHall, 20, 10)
	a.editor.AddStand(model.ShapeL)

	path := filepath.Join(t.TempDir(), "fair"+project.LayoutExt)
	a.writeLayout(path)
	if a.layoutPath != path {
		t.Errorf("layoutPath = %q, want %q", a.layoutPath, path)
	}

	a.newLayout()
	if len(a.editor.Layout().Containers) != 0 {
		t.Fatal("new layout should be empty")
	}
	if err := a.OpenLayout(path); err != nil {
		t.Fatalf("OpenLayout: %v", err)
	}
	l := a.editor.Layout()
	if len(l.Stands) != 1 || l.Stands[0].Shape != model.ShapeL {
		t.Errorf("reopened layout stands = %+v", l.Stands)
	}
	if len(a.config.RecentLayouts) == 0 || a.config.RecentLayouts[0] != path {
		t.Errorf("recent layouts = %v", a.config.RecentLayouts)
	}

	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if len(cfg.RecentLayouts) == 0 || cfg.RecentLayouts[0] != path {
		t.Errorf("recent layouts not persisted: %v", cfg.RecentLayouts)
	}
}

func TestApp_ApplyConfigUpdatesEditor(t *testing.T) {
	a := newTestApp(t)
	cfg := a.config
	cfg.DuplicateOffset = 2.5
	cfg.Theme = "dark"
	a.applyConfig(cfg)

	if got := a.editor.Options().DuplicateOffset; got != 2.5 {
		t.Errorf("editor DuplicateOffset = %v, want 2.5", got)
	}
	if !a.theme.fixed || a.theme.variant != theme.VariantDark {
		t.Error("theme should be fixed to dark")
	}
}

func TestApp_RestoreBackup(t *testing.T) {
	a := newTestApp(t)

	l := model.NewLayout()
	l.Name = "Restored"
	l.Containers = append(l.Containers, model.NewContainer("Marquee", model.StructureMarquee, 15, 15))
	inv := model.DefaultInventory()
	inv.Stands = inv.Stands[:1]
	store := model.NewTemplateStore()
	store.Add(model.NewLayoutTemplate("Venue", "", l))

	a.restoreBackup(project.NewBackup(model.DefaultAppConfig(), &l, &inv, store))

	if got := a.editor.Layout().Name; got != "Restored" {
		t.Errorf("layout name = %q, want Restored", got)
	}
	if len(a.inventory.Stands) != 1 {
		t.Errorf("inventory stands = %d, want 1", len(a.inventory.Stands))
	}
	if a.templates.FindByName("Venue") == nil {
		t.Error("templates should be restored")
	}
	saved, err := project.LoadDefaultTemplates()
	if err != nil || saved.FindByName("Venue") == nil {
		t.Errorf("restored templates not persisted: %v", err)
	}
}
