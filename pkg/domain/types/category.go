package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Category represents a bias category detected in analyzed content
type Category string

const (
	CategoryPolitical   Category = "political"
	CategoryGender      Category = "gender"
	CategoryReligious   Category = "religious"
	CategoryIdeological Category = "ideological"
)

// AllCategories returns all valid bias categories
func AllCategories() []Category {
	return []Category{
		CategoryPolitical,
		CategoryGender,
		CategoryReligious,
		CategoryIdeological,
	}
}

// IsValid checks if the category is one of the fixed bias categories
func (c Category) IsValid() bool {
	switch c {
	case CategoryPolitical,
		CategoryGender,
		CategoryReligious,
		CategoryIdeological:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category. Matching is
// case-insensitive and the result is the lowercase canonical form.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", goerr.New("invalid bias category", goerr.V("category", s))
	}
	return c, nil
}
