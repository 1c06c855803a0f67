package core

import "strings"

// Category is a member of the fixed expense category enumeration.
type Category struct {
	Label string
	Icon  string
}

// Categories is the canonical, ordered enumeration. Validation, reporting and
// display all read from here.
var Categories = []Category{
	{Label: "Food", Icon: "🍔"},
	{Label: "Travel", Icon: "🚌"},
	{Label: "Rent", Icon: "🏠"},
	{Label: "Utilities", Icon: "📱"},
	{Label: "Entertainment", Icon: "🎉"},
	{Label: "Shopping", Icon: "🛒"},
	{Label: "Health", Icon: "💊"},
}

// String returns the icon-decorated label for display.
func (c Category) String() string {
	if c.Icon == "" {
		return c.Label
	}
	return c.Icon + " " + c.Label
}

// LookupCategory resolves a user-supplied name to its canonical category.
// Matching ignores surrounding spaces and case.
func LookupCategory(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, false
	}
	for _, c := range Categories {
		if strings.EqualFold(c.Label, name) {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryLabels returns the enumeration labels in order.
func CategoryLabels() []string {
	labels := make([]string, len(Categories))
	for i, c := range Categories {
		labels[i] = c.Label
	}
	return labels
}
