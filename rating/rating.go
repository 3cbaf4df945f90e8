// Package rating computes risk ratings from probability and impact scores
// and classifies them into severity levels. It is the single source of the
// level thresholds used anywhere in the application.
package rating

import "fmt"

// Level is a severity bucket derived from a risk rating
type Level string

const (
	LevelLow      = Level("low")
	LevelMedium   = Level("medium")
	LevelHigh     = Level("high")
	LevelCritical = Level("critical")
)

// Probability and impact scores are limited to whole numbers 1 through 5
const (
	ScaleMin = 1
	ScaleMax = 5
)

// level thresholds, inclusive upper bounds on the rating
const (
	maxLowRating    = 4
	maxMediumRating = 9
	maxHighRating   = 16
)

// ErrInvalidInput is returned when a probability or impact score is outside
// the permitted scale.
type ErrInvalidInput struct {
	Value float64
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("probability and impact must be whole numbers between %d and %d, got %v",
		ScaleMin, ScaleMax, e.Value)
}

// Rate multiplies probability by impact, giving a rating between 1 and 25
func Rate(probability, impact int) (int, error) {
	if err := validScore(probability); err != nil {
		return 0, err
	}
	if err := validScore(impact); err != nil {
		return 0, err
	}
	return probability * impact, nil
}

// Classify buckets a (probability, impact) pair into a severity Level
func Classify(probability, impact int) (Level, error) {
	r, err := Rate(probability, impact)
	if err != nil {
		return "", err
	}
	return ClassifyRating(r), nil
}

// ClassifyRating buckets an already-computed rating into a severity Level.
// The rating must come from Rate, i.e. be in [1,25].
func ClassifyRating(rating int) Level {
	switch {
	case rating <= maxLowRating:
		return LevelLow
	case rating <= maxMediumRating:
		return LevelMedium
	case rating <= maxHighRating:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// ParseScale converts a JSON number into a valid probability or impact
// score, rejecting fractional and out-of-range values.
func ParseScale(value float64) (int, error) {
	n := int(value)
	if float64(n) != value {
		return 0, &ErrInvalidInput{Value: value}
	}
	if err := validScore(n); err != nil {
		return 0, err
	}
	return n, nil
}

// Text returns the display string for a Level, e.g. "High Risk"
func (l Level) Text() string {
	switch l {
	case LevelLow:
		return "Low Risk"
	case LevelMedium:
		return "Medium Risk"
	case LevelHigh:
		return "High Risk"
	case LevelCritical:
		return "Critical Risk"
	}
	return "Unknown"
}

func validScore(n int) error {
	if n < ScaleMin || n > ScaleMax {
		return &ErrInvalidInput{Value: float64(n)}
	}
	return nil
}
