package model

// StandPreset is a reusable stand type, e.g. "Corner 5x4".
type StandPreset struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Shape       Shape   `json:"shape"`
	Width       float64 `json:"width"`
	Depth       float64 `json:"depth"`
	CutoutWidth float64 `json:"cutout_width,omitempty"`
	CutoutDepth float64 `json:"cutout_depth,omitempty"`
	Color       string  `json:"color"`
}

// NewStandPreset creates a new StandPreset with a generated ID.
func NewStandPreset(name string, shape Shape, width, depth float64) StandPreset {
	return StandPreset{
		ID:    newID(),
		Name:  name,
		Shape: shape,
		Width: width,
		Depth: depth,
		Color: DefaultStandColor,
	}
}

// WithCutout returns a copy of the preset with the given L cutout.
func (sp StandPreset) WithCutout(w, d float64) StandPreset {
	sp.CutoutWidth = w
	sp.CutoutDepth = d
	return sp
}

// ToStand creates an unplaced stand from the preset.
func (sp StandPreset) ToStand(containerID string) Stand {
	s := NewStand(sp.Shape, containerID)
	s.Width = sp.Width
	s.Depth = sp.Depth
	if s.Shape == ShapeL {
		s.CutoutWidth = sp.CutoutWidth
		s.CutoutDepth = sp.CutoutDepth
	}
	if sp.Color != "" {
		s.Color = sp.Color
	}
	s.RecomputeArea()
	return s
}

// PavilionPreset is a reusable pavilion definition.
type PavilionPreset struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Kind  StructureKind `json:"kind"`
	Width float64       `json:"width"`
	Depth float64       `json:"depth"`
}

// NewPavilionPreset creates a new PavilionPreset with a generated ID.
func NewPavilionPreset(name string, kind StructureKind, width, depth float64) PavilionPreset {
	return PavilionPreset{
		ID:    newID(),
		Name:  name,
		Kind:  kind,
		Width: width,
		Depth: depth,
	}
}

// ToContainer converts the preset into a new pavilion.
func (pp PavilionPreset) ToContainer() Container {
	return NewContainer(pp.Name, pp.Kind, pp.Width, pp.Depth)
}

// Inventory holds the organizer's saved stand types and pavilions.
type Inventory struct {
	Stands    []StandPreset    `json:"stands"`
	Pavilions []PavilionPreset `json:"pavilions"`
}

// DefaultInventory returns an inventory populated with common stand sizes.
func DefaultInventory() Inventory {
	return Inventory{
		Stands: []StandPreset{
			NewStandPreset("Shell 3x2", ShapeRectangle, 3, 2),
			NewStandPreset("Shell 3x3", ShapeRectangle, 3, 3),
			NewStandPreset("Island 6x6", ShapeRectangle, 6, 6),
			NewStandPreset("Corner 5x4", ShapeL, 5, 4).WithCutout(2, 2),
			NewStandPreset("Corner 6x6", ShapeL, 6, 6).WithCutout(3, 3),
		},
		Pavilions: []PavilionPreset{
			NewPavilionPreset("Main Hall 40x30", StructureHall, 40, 30),
			NewPavilionPreset("Marquee 20x10", StructureMarquee, 20, 10),
			NewPavilionPreset("Open Lot 50x25", StructureOpenAir, 50, 25),
		},
	}
}

// FindStandByID returns a pointer to the stand preset with the given ID, or nil.
func (inv *Inventory) FindStandByID(id string) *StandPreset {
	for i := range inv.Stands {
		if inv.Stands[i].ID == id {
			return &inv.Stands[i]
		}
	}
	return nil
}

// FindStandByName returns a pointer to the first stand preset with the given name, or nil.
func (inv *Inventory) FindStandByName(name string) *StandPreset {
	for i := range inv.Stands {
		if inv.Stands[i].Name == name {
			return &inv.Stands[i]
		}
	}
	return nil
}

// FindPavilionByName returns a pointer to the first pavilion preset with the given name, or nil.
func (inv *Inventory) FindPavilionByName(name string) *PavilionPreset {
	for i := range inv.Pavilions {
		if inv.Pavilions[i].Name == name {
			return &inv.Pavilions[i]
		}
	}
	return nil
}

// StandNames returns the stand preset names for UI dropdowns.
func (inv *Inventory) StandNames() []string {
	names := make([]string, len(inv.Stands))
	for i, s := range inv.Stands {
		names[i] = s.Name
	}
	return names
}

// PavilionNames returns the pavilion preset names for UI dropdowns.
func (inv *Inventory) PavilionNames() []string {
	names := make([]string, len(inv.Pavilions))
	for i, p := range inv.Pavilions {
		names[i] = p.Name
	}
	return names
}
