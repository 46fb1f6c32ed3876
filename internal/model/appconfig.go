package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new pavilions and stands
	DefaultContainerWidth float64 `toml:"default_container_width" json:"default_container_width"`
	DefaultContainerDepth float64 `toml:"default_container_depth" json:"default_container_depth"`
	DefaultStandWidth     float64 `toml:"default_stand_width" json:"default_stand_width"`
	DefaultStandDepth     float64 `toml:"default_stand_depth" json:"default_stand_depth"`

	// Editing steps, meters
	DuplicateOffset float64 `toml:"duplicate_offset" json:"duplicate_offset"`
	NudgeStep       float64 `toml:"nudge_step" json:"nudge_step"`
	FineNudgeStep   float64 `toml:"fine_nudge_step" json:"fine_nudge_step"`

	// Application preferences
	RecentLayouts []string `toml:"recent_layouts" json:"recent_layouts"`
	Theme         string   `toml:"theme" json:"theme"`         // "light", "dark", "system"
	LogLevel      string   `toml:"log_level" json:"log_level"` // "debug", "info", "warn", "error"
}

// DefaultAppConfig returns an AppConfig populated with the built-in defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultContainerWidth: DefaultContainerWidth,
		DefaultContainerDepth: DefaultContainerDepth,
		DefaultStandWidth:     DefaultStandWidth,
		DefaultStandDepth:     DefaultStandDepth,
		DuplicateOffset:       1.0,
		NudgeStep:             1.0,
		FineNudgeStep:         0.1,
		RecentLayouts:         []string{},
		Theme:                 "system",
		LogLevel:              "info",
	}
}

// Sanitized replaces non-positive numeric settings with the defaults.
func (c AppConfig) Sanitized() AppConfig {
	d := DefaultAppConfig()
	fix := func(v *float64, def float64) {
		if !validDimension(*v) {
			*v = def
		}
	}
	fix(&c.DefaultContainerWidth, d.DefaultContainerWidth)
	fix(&c.DefaultContainerDepth, d.DefaultContainerDepth)
	fix(&c.DefaultStandWidth, d.DefaultStandWidth)
	fix(&c.DefaultStandDepth, d.DefaultStandDepth)
	fix(&c.DuplicateOffset, d.DuplicateOffset)
	fix(&c.NudgeStep, d.NudgeStep)
	fix(&c.FineNudgeStep, d.FineNudgeStep)
	if c.RecentLayouts == nil {
		c.RecentLayouts = []string{}
	}
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	return c
}

// AddRecentLayout moves path to the front of the recent list, keeping at
// most max entries.
func (c *AppConfig) AddRecentLayout(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentLayouts {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentLayouts = recent
}
