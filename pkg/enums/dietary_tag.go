package enums

import "fmt"

// DietaryTag is the closed set of dietary classifications an item can carry.
type DietaryTag string

const (
	DietaryTagVegetarian DietaryTag = "Vegetarian"
	DietaryTagVegan      DietaryTag = "Vegan"
	DietaryTagGlutenFree DietaryTag = "Gluten-Free"
)

var validDietaryTags = []DietaryTag{
	DietaryTagVegetarian,
	DietaryTagVegan,
	DietaryTagGlutenFree,
}

// AllDietaryTags returns the fixed tag enumeration in display order.
func AllDietaryTags() []DietaryTag {
	return append([]DietaryTag{}, validDietaryTags...)
}

// String implements fmt.Stringer.
func (d DietaryTag) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DietaryTag.
func (d DietaryTag) IsValid() bool {
	for _, candidate := range validDietaryTags {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDietaryTag converts raw input into a DietaryTag.
func ParseDietaryTag(value string) (DietaryTag, error) {
	for _, candidate := range validDietaryTags {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid dietary tag %q", value)
}
