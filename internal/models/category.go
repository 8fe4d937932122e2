// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Category is the topic classification of a question. The set is closed
// but advisory: a record carrying any other value is kept and simply never
// matches a category filter.
type Category string

const (
	CategoryBeginners  Category = "beginners"
	CategoryInsights   Category = "insights"
	CategoryInvestment Category = "investment"
	CategoryLegal      Category = "legal"
	CategoryFinancial  Category = "financial"
	CategoryOwnership  Category = "ownership"
)

// CategoryInfo describes a category as shown in the sidebar.
type CategoryInfo struct {
	ID    Category `json:"id"`
	Name  string   `json:"name"`
	Badge string   `json:"badge"` // CSS classes for the question-card badge
}

// Categories lists every category in sidebar order.
var Categories = []CategoryInfo{
	{ID: CategoryBeginners, Name: "For Beginners", Badge: "bg-blue-100 text-blue-700"},
	{ID: CategoryInsights, Name: "Real Estate Insights", Badge: "bg-purple-100 text-purple-700"},
	{ID: CategoryInvestment, Name: "Investment", Badge: "bg-green-100 text-green-700"},
	{ID: CategoryLegal, Name: "Legal", Badge: "bg-red-100 text-red-700"},
	{ID: CategoryFinancial, Name: "Financial", Badge: "bg-yellow-100 text-yellow-700"},
	{ID: CategoryOwnership, Name: "Ownership", Badge: "bg-indigo-100 text-indigo-700"},
}

// defaultBadge is used for categories outside the known set.
const defaultBadge = "bg-gray-100 text-gray-700"

// IsKnown reports whether c is one of the fixed categories.
func (c Category) IsKnown() bool {
	_, ok := categoryInfo(c)
	return ok
}

// Name returns the sidebar name, or the capitalized raw value when unknown.
func (c Category) Name() string {
	if info, ok := categoryInfo(c); ok {
		return info.Name
	}
	return Capitalize(string(c))
}

// Badge returns the badge CSS classes for the category.
func (c Category) Badge() string {
	if info, ok := categoryInfo(c); ok {
		return info.Badge
	}
	return defaultBadge
}

func categoryInfo(c Category) (CategoryInfo, bool) {
	for _, info := range Categories {
		if info.ID == c {
			return info, true
		}
	}
	return CategoryInfo{}, false
}
