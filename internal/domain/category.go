package domain

import "strings"

// OtherCategoryID is the catch-all category. It always exists and cannot be deleted.
const OtherCategoryID = "Other"

// DefaultIcon is the last entry of every icon fallback chain.
const DefaultIcon = "Grid"

// Category is a top-level classification bucket for collections.
type Category struct {
	// ID is unique ignoring case.
	ID    string
	Label string

	// Theme is an opaque presentation tag chosen from ThemePalette.
	Theme string

	// Icon is optional; see ResolveIcon.
	Icon      string
	IsPinned  bool
	IsDefault bool
}

// IsOther reports whether c is the catch-all category.
func (c Category) IsOther() bool {
	return IsOtherCategory(c.ID)
}

// IsOtherCategory reports whether id names the catch-all category.
func IsOtherCategory(id string) bool {
	return strings.EqualFold(id, OtherCategoryID)
}

// ResolveIcon walks the icon fallback chain: the explicit icon, the built-in
// icon for a default category id, then DefaultIcon.
func (c Category) ResolveIcon() string {
	chain := []string{c.Icon, defaultIcons[strings.ToLower(c.ID)], DefaultIcon}
	for _, icon := range chain {
		if icon != "" {
			return icon
		}
	}

	return DefaultIcon
}

// SameID reports whether two category ids refer to the same category.
func SameID(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// ThemePalette is the fixed set of themes assigned to new categories.
var ThemePalette = []string{
	"rose", "amber", "violet", "yellow", "emerald",
	"sky", "indigo", "teal", "orange", "fuchsia",
}

// AvailableIcons lists the icon ids the icon suggester may choose from.
var AvailableIcons = []string{
	"Heart", "Zap", "User", "Star", "Brain", "Grid", "Briefcase", "Dumbbell",
	"Utensils", "Plane", "Book", "Music", "Palette", "Leaf", "Smartphone",
	"DollarSign", "Sun", "Moon", "Coffee", "Smile", "Camera", "Code", "Gamepad",
	"Headphones", "Home", "Key", "Lock", "Map", "Rocket", "ShoppingCart",
	"Terminal", "Truck", "Video", "Wallet", "Watch", "Wrench", "Laptop", "Car",
	"Baby", "Dog", "Cat", "Flower",
}

// IsAvailableIcon reports whether icon is in AvailableIcons.
func IsAvailableIcon(icon string) bool {
	for _, known := range AvailableIcons {
		if known == icon {
			return true
		}
	}

	return false
}

var defaultIcons = map[string]string{
	"flirty":        "Heart",
	"motivation":    "Zap",
	"relationships": "User",
	"confidence":    "Star",
	"mindset":       "Brain",
	"other":         DefaultIcon,
}

// DefaultCategories returns the categories seeded on first run, Other last.
func DefaultCategories() []Category {
	return []Category{
		{ID: "Flirty", Label: "Flirty", Theme: "rose", Icon: "Heart", IsDefault: true},
		{ID: "Motivation", Label: "Motivation", Theme: "amber", Icon: "Zap", IsDefault: true},
		{ID: "Relationships", Label: "Relationships", Theme: "violet", Icon: "User", IsDefault: true},
		{ID: "Confidence", Label: "Confidence", Theme: "yellow", Icon: "Star", IsDefault: true},
		{ID: "Mindset", Label: "Mindset", Theme: "emerald", Icon: "Brain", IsDefault: true},
		OtherCategory(),
	}
}

// OtherCategory returns a fresh copy of the catch-all category.
func OtherCategory() Category {
	return Category{
		ID:        OtherCategoryID,
		Label:     OtherCategoryID,
		Theme:     "slate",
		Icon:      DefaultIcon,
		IsDefault: true,
	}
}
