package phone

import (
	"testing"

	"github.com/01moynul/bales-storefront/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0821234567", "27821234567"},
		{"27821234567", "27821234567"},
		{"+27821234567", "27821234567"},
		{"082 123 4567", "27821234567"},
		{"(082) 123-4567", "27821234567"},
		{"821234567", "27821234567"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeRejectsWrongLength(t *testing.T) {
	for _, input := range []string{"", "12345", "082123456789", "+1 415 555 0100 22"} {
		_, err := Normalize(input)
		assert.True(t, apperr.Is(err, apperr.KindInvalidPhoneFormat), "input %q", input)
	}
}

func TestCandidates(t *testing.T) {
	got, err := Candidates("0821234567")
	require.NoError(t, err)
	assert.Equal(t, []string{"+27821234567", "27821234567", "0821234567"}, got)

	same, err := Candidates("+27 82 123 4567")
	require.NoError(t, err)
	assert.Equal(t, got, same)
}
