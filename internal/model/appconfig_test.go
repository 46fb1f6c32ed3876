package model

import "testing"

func TestDefaultAppConfigMatchesModelDefaults(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.DefaultContainerWidth != DefaultContainerWidth {
		t.Errorf("container width mismatch: config=%f default=%f", cfg.DefaultContainerWidth, DefaultContainerWidth)
	}
	if cfg.DefaultStandWidth != DefaultStandWidth {
		t.Errorf("stand width mismatch: config=%f default=%f", cfg.DefaultStandWidth, DefaultStandWidth)
	}
	if cfg.NudgeStep != 1.0 || cfg.FineNudgeStep != 0.1 {
		t.Errorf("unexpected nudge steps %f / %f", cfg.NudgeStep, cfg.FineNudgeStep)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.RecentLayouts == nil {
		t.Error("RecentLayouts should not be nil")
	}
}

func TestSanitizedRestoresInvalidValues(t *testing.T) {
	cfg := AppConfig{
		DefaultContainerWidth: -5,
		DefaultStandDepth:     0,
		NudgeStep:             2.5,
	}
	got := cfg.Sanitized()

	if got.DefaultContainerWidth != DefaultContainerWidth {
		t.Errorf("expected container width reset, got %f", got.DefaultContainerWidth)
	}
	if got.DefaultStandDepth != DefaultStandDepth {
		t.Errorf("expected stand depth reset, got %f", got.DefaultStandDepth)
	}
	if got.NudgeStep != 2.5 {
		t.Errorf("valid nudge step should be kept, got %f", got.NudgeStep)
	}
	if got.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", got.LogLevel)
	}
}

func TestAddRecentLayout(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentLayout("a.json", 3)
	cfg.AddRecentLayout("b.json", 3)
	cfg.AddRecentLayout("a.json", 3)
	cfg.AddRecentLayout("c.json", 3)
	cfg.AddRecentLayout("d.json", 3)

	want := []string{"d.json", "c.json", "a.json"}
	if len(cfg.RecentLayouts) != len(want) {
		t.Fatalf("expected %d recent layouts, got %v", len(want), cfg.RecentLayouts)
	}
	for i, p := range want {
		if cfg.RecentLayouts[i] != p {
			t.Errorf("recent[%d] = %s, want %s", i, cfg.RecentLayouts[i], p)
		}
	}
}
