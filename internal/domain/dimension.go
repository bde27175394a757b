package domain

// Dimension is one of the independent rating axes a user can score a word on.
type Dimension string

const (
	DimensionOverall      Dimension = "overall"
	DimensionRelatability Dimension = "relatability"
	DimensionUsefulness   Dimension = "usefulness"
	DimensionName         Dimension = "name"
)

// AllDimensions lists every recognized dimension in presentation order.
var AllDimensions = []Dimension{
	DimensionOverall,
	DimensionRelatability,
	DimensionUsefulness,
	DimensionName,
}

// ParseDimension validates a wire-level rating_type value. The empty string
// resolves to 'overall', matching rows migrated from the single-axis era.
func ParseDimension(s string) (Dimension, error) {
	if s == "" {
		return DimensionOverall, nil
	}
	for _, d := range AllDimensions {
		if s == string(d) {
			return d, nil
		}
	}
	return "", ErrInvalidDimension
}

// Star value bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// ValidateRating checks a star value against the 1-5 range.
func ValidateRating(value int) error {
	if value < MinRating || value > MaxRating {
		return ErrInvalidRating
	}
	return nil
}
