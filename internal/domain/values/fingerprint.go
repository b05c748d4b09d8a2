package values

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/juggajay/risksure-backend/internal/domain/errors"
)

// Fingerprint represents the SHA-256 content hash of a submitted certificate
// document, used to detect byte-identical resubmission.
type Fingerprint struct {
	hash string // Hex-encoded SHA-256 hash (64 characters)
}

// SHA-256 hex regex: exactly 64 hex characters
var sha256HexRegex = regexp.MustCompile(`^[a-f0-9]{64}$`)

// NewFingerprint creates a Fingerprint value object with validation
func NewFingerprint(hash string) (Fingerprint, error) {
	if hash == "" {
		return Fingerprint{}, errors.NewValidationError("EMPTY_FINGERPRINT",
			"fingerprint cannot be empty")
	}

	normalized := strings.ToLower(strings.TrimSpace(hash))

	if !sha256HexRegex.MatchString(normalized) {
		return Fingerprint{}, errors.NewValidationError("INVALID_FINGERPRINT",
			"fingerprint must be a 64-character hexadecimal string (SHA-256)")
	}

	return Fingerprint{hash: normalized}, nil
}

// ComputeFingerprint computes the SHA-256 fingerprint of document content
func ComputeFingerprint(content []byte) (Fingerprint, error) {
	if len(content) == 0 {
		return Fingerprint{}, errors.NewValidationError("EMPTY_CONTENT",
			"content to fingerprint cannot be empty")
	}

	sum := sha256.Sum256(content)
	return Fingerprint{hash: hex.EncodeToString(sum[:])}, nil
}

// MustNewFingerprint creates a Fingerprint and panics on error (for constants/tests)
func MustNewFingerprint(hash string) Fingerprint {
	f, err := NewFingerprint(hash)
	if err != nil {
		panic(err)
	}
	return f
}

// String returns the hex form
func (f Fingerprint) String() string {
	return f.hash
}

// IsEmpty checks if the fingerprint is unset
func (f Fingerprint) IsEmpty() bool {
	return f.hash == ""
}

// Equal checks two fingerprints for equality
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.hash == other.hash
}
