package enums

import "fmt"

// LineSide identifies which serving line a food item belongs to.
type LineSide string

const (
	LineSideLeft  LineSide = "Left"
	LineSideRight LineSide = "Right"
)

var validLineSides = []LineSide{
	LineSideLeft,
	LineSideRight,
}

// String implements fmt.Stringer.
func (l LineSide) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LineSide.
func (l LineSide) IsValid() bool {
	for _, candidate := range validLineSides {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLineSide converts raw input into a LineSide.
func ParseLineSide(value string) (LineSide, error) {
	for _, candidate := range validLineSides {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line side %q", value)
}
