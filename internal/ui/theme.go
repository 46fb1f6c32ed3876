// Package ui provides the StandPlan desktop editor.
//
// This file defines a compact Fyne theme for a dense editing layout.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// StandPlanTheme wraps the default Fyne theme with compact sizing
// overrides and an optional fixed light/dark variant.
type StandPlanTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	fixed   bool // false follows the system variant
}

// NewStandPlanTheme creates a theme that follows the system variant.
func NewStandPlanTheme() *StandPlanTheme {
	return &StandPlanTheme{base: theme.DefaultTheme()}
}

// NewStandPlanThemeFromConfig maps the config theme name ("light", "dark"
// or "system") to a theme.
func NewStandPlanThemeFromConfig(name string) *StandPlanTheme {
	t := NewStandPlanTheme()
	t.SetVariantName(name)
	return t
}

// SetVariantName updates the variant from a config theme name. Unknown
// names follow the system.
func (t *StandPlanTheme) SetVariantName(name string) {
	switch name {
	case "light":
		t.variant, t.fixed = theme.VariantLight, true
	case "dark":
		t.variant, t.fixed = theme.VariantDark, true
	default:
		t.fixed = false
	}
}

// Color delegates to the base theme, forcing the configured variant.
func (t *StandPlanTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.fixed {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *StandPlanTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *StandPlanTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *StandPlanTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
