package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateABN(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantValid  bool
		wantReason string
	}{
		{
			name:      "known valid ABN",
			input:     "51824753556",
			wantValid: true,
		},
		{
			name:      "second known valid ABN",
			input:     "33102417032",
			wantValid: true,
		},
		{
			name:      "valid ABN with conventional spacing",
			input:     "51 824 753 556",
			wantValid: true,
		},
		{
			name:      "valid ABN with mixed whitespace",
			input:     "\t51 824\n753 556 ",
			wantValid: true,
		},
		{
			name:       "checksum failure",
			input:      "12345678901",
			wantValid:  false,
			wantReason: "ABN checksum failed",
		},
		{
			name:       "all zeros fails checksum",
			input:      "00000000000",
			wantValid:  false,
			wantReason: "ABN checksum failed",
		},
		{
			name:       "too short",
			input:      "5182475355",
			wantValid:  false,
			wantReason: "ABN must be exactly 11 digits, got 10",
		},
		{
			name:       "too long",
			input:      "518247535561",
			wantValid:  false,
			wantReason: "ABN must be exactly 11 digits, got 12",
		},
		{
			name:       "empty input",
			input:      "",
			wantValid:  false,
			wantReason: "ABN must be exactly 11 digits, got 0",
		},
		{
			name:       "non-digit characters fail before checksum",
			input:      "5182475355X",
			wantValid:  false,
			wantReason: "ABN must contain only digits",
		},
		{
			name:       "hyphenated input is not stripped",
			input:      "51-824-753-556",
			wantValid:  false,
			wantReason: "ABN must be exactly 11 digits, got 14",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateABN(tt.input)

			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				assert.Equal(t, tt.wantReason, result.Reason)
			} else {
				assert.Empty(t, result.Reason)
			}
		})
	}
}

func TestValidateABN_Stability(t *testing.T) {
	// Same input always yields the same outcome.
	for i := 0; i < 5; i++ {
		assert.True(t, ValidateABN("51824753556").Valid)
		assert.False(t, ValidateABN("12345678901").Valid)
	}
}

func TestNewABN(t *testing.T) {
	abn, err := NewABN("51 824 753 556")
	require.NoError(t, err)
	assert.Equal(t, "51824753556", abn.String())
	assert.Equal(t, "51 824 753 556", abn.Formatted())
	assert.False(t, abn.IsEmpty())
	assert.True(t, abn.Equal(MustNewABN("51824753556")))

	_, err = NewABN("12345678901")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum")
}

func TestMustNewABN_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		MustNewABN("not an abn")
	})
}
