package model

import "time"

// LayoutTemplate is a reusable venue setup: pavilions, utility spaces and
// the stand grid, without event-specific occupants.
type LayoutTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	Layout      Layout `json:"layout"`
}

// NewLayoutTemplate captures a copy of the layout. Stand occupants are
// dropped since they belong to a single event.
func NewLayoutTemplate(name, description string, l Layout) LayoutTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	cp := l.Clone()
	for i := range cp.Stands {
		cp.Stands[i].OccupantID = ""
	}
	return LayoutTemplate{
		ID:          newID(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Layout:      cp,
	}
}

// ToLayout creates a new layout from this template. Pavilions, stands and
// utility spaces get fresh IDs so they are independent of the template.
func (t LayoutTemplate) ToLayout(name string) Layout {
	src := t.Layout.Clone()
	out := NewLayout()
	out.Name = name

	ids := make(map[string]string, len(src.Containers))
	for _, c := range src.Containers {
		fresh := c
		fresh.ID = newID()
		ids[c.ID] = fresh.ID
		out.Containers = append(out.Containers, fresh.Normalized())
	}
	remap := func(id string) string {
		if mapped, ok := ids[id]; ok {
			return mapped
		}
		return id
	}
	for _, s := range src.Stands {
		s.ID = newID()
		s.ContainerID = remap(s.ContainerID)
		out.Stands = append(out.Stands, s)
	}
	for _, u := range src.Utilities {
		u.ID = newID()
		u.ContainerID = remap(u.ContainerID)
		out.Utilities = append(out.Utilities, u)
	}
	return out
}

// TemplateStore holds a collection of layout templates.
type TemplateStore struct {
	Templates []LayoutTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []LayoutTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t LayoutTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *LayoutTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}
