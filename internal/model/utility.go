package model

import "strings"

// UtilityCategory classifies a utility space.
type UtilityCategory string

const (
	UtilityDoor         UtilityCategory = "door"
	UtilityRestroom     UtilityCategory = "restroom"
	UtilityStage        UtilityCategory = "stage"
	UtilityInfoPoint    UtilityCategory = "info-point"
	UtilityEmergency    UtilityCategory = "emergency"
	UtilityExtinguisher UtilityCategory = "fire-extinguisher"
	UtilityConference   UtilityCategory = "conference"
	UtilityCatering     UtilityCategory = "catering"
	UtilityVIP          UtilityCategory = "vip"
	UtilityTechnical    UtilityCategory = "technical"
	UtilityStorage      UtilityCategory = "storage"
	UtilityElectrical   UtilityCategory = "electrical"
	UtilityWifi         UtilityCategory = "wifi"
	UtilityReception    UtilityCategory = "reception"
)

// UtilityDefaults holds the starting label, size and color of a category.
type UtilityDefaults struct {
	Label string
	Width float64 // meters
	Depth float64 // meters
	Color string
}

var utilityDefaults = map[UtilityCategory]UtilityDefaults{
	UtilityDoor:         {Label: "Door", Width: 2, Depth: 0.5, Color: "#795548"},
	UtilityRestroom:     {Label: "Restroom", Width: 4, Depth: 3, Color: "#00BCD4"},
	UtilityStage:        {Label: "Stage", Width: 8, Depth: 5, Color: "#9C27B0"},
	UtilityInfoPoint:    {Label: "Info Point", Width: 2, Depth: 2, Color: "#2196F3"},
	UtilityEmergency:    {Label: "Emergency Exit", Width: 2, Depth: 1, Color: "#F44336"},
	UtilityExtinguisher: {Label: "Fire Extinguisher", Width: 0.5, Depth: 0.5, Color: "#D32F2F"},
	UtilityConference:   {Label: "Conference Room", Width: 6, Depth: 5, Color: "#3F51B5"},
	UtilityCatering:     {Label: "Catering", Width: 5, Depth: 4, Color: "#FF9800"},
	UtilityVIP:          {Label: "VIP Lounge", Width: 5, Depth: 5, Color: "#FFC107"},
	UtilityTechnical:    {Label: "Technical", Width: 3, Depth: 2, Color: "#607D8B"},
	UtilityStorage:      {Label: "Storage", Width: 3, Depth: 3, Color: "#9E9E9E"},
	UtilityElectrical:   {Label: "Electrical", Width: 1, Depth: 1, Color: "#FFEB3B"},
	UtilityWifi:         {Label: "WiFi", Width: 1, Depth: 1, Color: "#03A9F4"},
	UtilityReception:    {Label: "Reception", Width: 4, Depth: 2, Color: "#8BC34A"},
}

// UtilityCategories lists every category in display order.
var UtilityCategories = []UtilityCategory{
	UtilityDoor, UtilityRestroom, UtilityStage, UtilityInfoPoint,
	UtilityEmergency, UtilityExtinguisher, UtilityConference, UtilityCatering,
	UtilityVIP, UtilityTechnical, UtilityStorage, UtilityElectrical,
	UtilityWifi, UtilityReception,
}

// Defaults returns the starting values for the category. Unknown
// categories get a 2x2 m grey box.
func (c UtilityCategory) Defaults() UtilityDefaults {
	if d, ok := utilityDefaults[c]; ok {
		return d
	}
	return UtilityDefaults{Label: "Utility", Width: 2, Depth: 2, Color: "#9E9E9E"}
}

func (c UtilityCategory) String() string {
	return c.Defaults().Label
}

// ParseUtilityCategory accepts a category id or its label, case-insensitive.
func ParseUtilityCategory(s string) (UtilityCategory, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, c := range UtilityCategories {
		if string(c) == norm || strings.ToLower(c.Defaults().Label) == norm {
			return c, true
		}
	}
	return "", false
}
