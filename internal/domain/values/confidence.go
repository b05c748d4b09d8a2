package values

import (
	"fmt"

	"github.com/juggajay/risksure-backend/internal/domain/errors"
)

// Confidence represents an extraction confidence score in [0,1].
type Confidence struct {
	score float64
}

// ReviewConfidenceFloor is the confidence below which a compliance result is
// always forced to review, regardless of rule outcomes.
const ReviewConfidenceFloor = 0.70

// NewConfidence creates a Confidence value object with range validation
func NewConfidence(score float64) (Confidence, error) {
	if score < 0 || score > 1 {
		return Confidence{}, errors.NewValidationError("INVALID_CONFIDENCE",
			fmt.Sprintf("confidence must be in [0,1], got %v", score))
	}
	return Confidence{score: score}, nil
}

// MustNewConfidence creates a Confidence and panics on error (for constants/tests)
func MustNewConfidence(score float64) Confidence {
	c, err := NewConfidence(score)
	if err != nil {
		panic(err)
	}
	return c
}

// Score returns the raw score
func (c Confidence) Score() float64 {
	return c.score
}

// RequiresReview reports whether the extraction is below the review floor
func (c Confidence) RequiresReview() bool {
	return c.score < ReviewConfidenceFloor
}

// String returns a fixed-precision display form
func (c Confidence) String() string {
	return fmt.Sprintf("%.2f", c.score)
}
