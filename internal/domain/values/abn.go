package values

import (
	"fmt"
	"strings"

	"github.com/juggajay/risksure-backend/internal/domain/errors"
)

// ABN represents a validated Australian Business Number.
type ABN struct {
	digits string // 11 ASCII digits, no separators
}

// abnWeights is the fixed weight vector of the ABN check-digit algorithm.
var abnWeights = [11]int{10, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19}

const abnModulus = 89

// ABNValidation is the outcome of validating a candidate ABN. Invalid input
// is a normal result, not an error: callers branch on Valid and surface
// Reason to the operator.
type ABNValidation struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ValidateABN checks a candidate ABN string. All whitespace is stripped
// before validation; anything other than exactly 11 ASCII digits fails with
// a length/format reason and the checksum is never attempted.
func ValidateABN(raw string) ABNValidation {
	cleaned := stripWhitespace(raw)

	if len(cleaned) != 11 {
		return ABNValidation{
			Valid:  false,
			Reason: fmt.Sprintf("ABN must be exactly 11 digits, got %d", len(cleaned)),
		}
	}

	for _, ch := range cleaned {
		if ch < '0' || ch > '9' {
			return ABNValidation{
				Valid:  false,
				Reason: "ABN must contain only digits",
			}
		}
	}

	if !abnChecksumValid(cleaned) {
		return ABNValidation{
			Valid:  false,
			Reason: "ABN checksum failed",
		}
	}

	return ABNValidation{Valid: true}
}

// abnChecksumValid applies the weighted-modulus-89 test: the first digit is
// reduced by one, each digit is multiplied by its weight, and the sum must
// divide evenly by 89.
func abnChecksumValid(digits string) bool {
	sum := 0
	for i := 0; i < 11; i++ {
		d := int(digits[i] - '0')
		if i == 0 {
			d--
		}
		sum += d * abnWeights[i]
	}
	return sum%abnModulus == 0
}

// NewABN creates an ABN value object, rejecting anything that fails
// validation.
func NewABN(raw string) (ABN, error) {
	result := ValidateABN(raw)
	if !result.Valid {
		return ABN{}, errors.NewValidationError("INVALID_ABN", result.Reason)
	}
	return ABN{digits: stripWhitespace(raw)}, nil
}

// MustNewABN creates an ABN and panics on error (for constants/tests).
func MustNewABN(raw string) ABN {
	abn, err := NewABN(raw)
	if err != nil {
		panic(err)
	}
	return abn
}

// String returns the bare 11-digit form.
func (a ABN) String() string {
	return a.digits
}

// Formatted returns the conventional "NN NNN NNN NNN" display form.
func (a ABN) Formatted() string {
	if len(a.digits) != 11 {
		return a.digits
	}
	return a.digits[0:2] + " " + a.digits[2:5] + " " + a.digits[5:8] + " " + a.digits[8:11]
}

// IsEmpty checks if the ABN is unset.
func (a ABN) IsEmpty() bool {
	return a.digits == ""
}

// Equal checks two ABNs for equality.
func (a ABN) Equal(other ABN) bool {
	return a.digits == other.digits
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
