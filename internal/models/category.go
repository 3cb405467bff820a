package models

import "strings"

// Category classifies a product. Only the values below are accepted.
type Category string

const (
	Category1 Category = "category1"
	Category2 Category = "category2"
	Category3 Category = "category3"
)

// Categories lists the accepted categories in declaration order.
func Categories() []Category {
	return []Category{Category1, Category2, Category3}
}

// IsValid reports whether c is one of the accepted categories.
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryChoices renders the accepted values as "'a', 'b' or 'c'".
func CategoryChoices() string {
	categories := Categories()
	quoted := make([]string, len(categories))
	for i, c := range categories {
		quoted[i] = "'" + string(c) + "'"
	}
	if len(quoted) == 1 {
		return quoted[0]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}
