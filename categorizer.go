package utilcss

import (
	"strings"

	"github.com/yacobolo/utilcss/decl"
)

// PropertyCategory groups related CSS properties
type PropertyCategory string

// Property categories, in the order GroupByCategory reports them
const (
	CategoryLayout     PropertyCategory = "Layout"
	CategoryTypography PropertyCategory = "Typography"
	CategoryVisual     PropertyCategory = "Visual"
	CategoryEffects    PropertyCategory = "Effects"
	CategoryInternal   PropertyCategory = "Internal"
	CategoryEmpty      PropertyCategory = "Empty"
)

var categoryOrder = []PropertyCategory{
	CategoryLayout, CategoryTypography, CategoryVisual, CategoryEffects, CategoryInternal, CategoryEmpty,
}

// propertyCategories maps CSS property names to categories
var propertyCategories = buildPropertyCategories(map[PropertyCategory][]string{
	CategoryVisual: {
		"background", "background-color", "background-image", "background-size",
		"background-position", "background-repeat", "color", "border", "border-color",
		"border-radius", "border-width", "border-style", "box-shadow", "opacity",
		"outline", "outline-color", "outline-width", "outline-style", "outline-offset",
		"fill", "stroke", "accent-color", "caret-color",
	},
	CategoryLayout: {
		"display", "flex", "justify-content", "justify-items", "align-items",
		"align-self", "align-content", "place-items", "place-content", "gap",
		"row-gap", "column-gap", "grid", "order", "position", "inset", "top",
		"right", "bottom", "left", "width", "height", "inline-size", "block-size",
		"min-width", "min-height", "max-width", "max-height", "padding", "margin",
		"overflow", "overflow-x", "overflow-y", "z-index", "aspect-ratio",
		"object-fit", "object-position", "box-sizing", "float", "clear",
		"visibility", "columns",
	},
	CategoryTypography: {
		"font", "font-family", "font-size", "font-weight", "font-style",
		"font-variant", "font-variant-numeric", "line-height", "letter-spacing",
		"text-align", "text-decoration", "text-transform", "text-overflow",
		"text-indent", "vertical-align", "white-space", "word-break", "word-wrap",
		"overflow-wrap", "hyphens", "list-style", "list-style-type",
	},
	CategoryEffects: {
		"transition", "transform", "transform-origin", "animation", "filter",
		"backdrop-filter", "mix-blend-mode", "clip-path", "mask", "cursor",
		"pointer-events", "user-select", "scroll-behavior", "will-change",
	},
})

func buildPropertyCategories(lists map[PropertyCategory][]string) map[string]PropertyCategory {
	categories := make(map[string]PropertyCategory)
	for category, properties := range lists {
		for _, property := range properties {
			categories[property] = category
		}
	}
	return categories
}

// categoryPrefixes catches property families by prefix, checked in order
var categoryPrefixes = []struct {
	prefix   string
	category PropertyCategory
}{
	{"-webkit-", CategoryInternal},
	{"-moz-", CategoryInternal},
	{"-ms-", CategoryInternal},
	{"--", CategoryInternal},
	{"flex-", CategoryLayout},
	{"grid-", CategoryLayout},
	{"padding-", CategoryLayout},
	{"margin-", CategoryLayout},
	{"inset-", CategoryLayout},
	{"border-", CategoryVisual},
	{"background-", CategoryVisual},
	{"font-", CategoryTypography},
	{"text-", CategoryTypography},
	{"transition-", CategoryEffects},
	{"animation-", CategoryEffects},
	{"scroll-", CategoryEffects},
}

// categorizeProperty determines the category of a CSS property
func categorizeProperty(name string) PropertyCategory {
	if cat, exists := propertyCategories[name]; exists {
		return cat
	}
	for _, p := range categoryPrefixes {
		if strings.HasPrefix(name, p.prefix) {
			return p.category
		}
	}
	// Default to Layout for unknown properties
	return CategoryLayout
}

// Categorize classifies a utility by its first property, looking inside
// nested blocks when the top level only holds selectors. A tree without
// any property is CategoryEmpty.
func Categorize(tree *decl.Tree) PropertyCategory {
	if property, ok := firstProperty(tree); ok {
		return categorizeProperty(property)
	}
	return CategoryEmpty
}

func firstProperty(tree *decl.Tree) (string, bool) {
	for key, node := range tree.All() {
		if !decl.IsSelectorKey(key) {
			return key, true
		}
		if node.IsBlock() {
			if property, ok := firstProperty(node.Block); ok {
				return property, true
			}
		}
	}
	return "", false
}

// CategoryGroup lists the classes of one category in registry order
type CategoryGroup struct {
	Category PropertyCategory
	Classes  []string
}

// GroupByCategory groups registry classes by Categorize. Empty groups are
// omitted.
func GroupByCategory(registry *Registry) []CategoryGroup {
	byCategory := make(map[PropertyCategory][]string)
	for className, tree := range registry.All() {
		category := Categorize(tree)
		byCategory[category] = append(byCategory[category], className)
	}

	var groups []CategoryGroup
	for _, category := range categoryOrder {
		if classes := byCategory[category]; len(classes) > 0 {
			groups = append(groups, CategoryGroup{Category: category, Classes: classes})
		}
	}
	return groups
}
