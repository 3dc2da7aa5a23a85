package timeline

// DefaultCategory is assigned to milestones with an absent or empty
// category column.
const DefaultCategory = "General"

// DefaultColor is the fallback display color for unrecognized categories.
const DefaultColor = "#7f8c8d"

// categoryColors is the fixed category-to-color mapping.
var categoryColors = map[string]string{
	"Founding":                     "#8e44ad",
	"Financial Milestones":         "#27ae60",
	"Collaborations and Workshops": "#2980b9",
	"Team Expansion":               "#e67e22",
	"Knowledge Expansion":          "#16a085",
	"Project Developments":         "#c0392b",
	"Publications and Media":       "#f39c12",
}

// CategoryColor returns the display color for a category name.
// Unrecognized categories fall back to DefaultColor.
func CategoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return DefaultColor
}

// Categories returns the enumerated category names with fixed colors.
// The result is a fresh slice; callers may reorder it.
func Categories() []string {
	out := make([]string, 0, len(categoryColors))
	for name := range categoryColors {
		out = append(out, name)
	}
	return out
}
