package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLineType_String verifies the string form used in CLI and JSON output.
func TestLineType_String(t *testing.T) {
	tests := []struct {
		lineType LineType
		expected string
	}{
		{LineFixed, "fixed"},
		{LineMobile, "mobile"},
		{LineOther, "other"},
		{LineUnknown, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.lineType.String())
		})
	}
}

// TestLineType_IsValid checks that only canonical values pass validation.
func TestLineType_IsValid(t *testing.T) {
	assert.True(t, LineFixed.IsValid())
	assert.True(t, LineMobile.IsValid())
	assert.True(t, LineOther.IsValid())
	assert.True(t, LineUnknown.IsValid())
	assert.False(t, LineType("gsm").IsValid())
	assert.False(t, LineType("").IsValid())
}

// TestLineType_Predicates verifies IsFixed, IsMobile and IsHuman for every
// canonical value. IsHuman must be exactly IsFixed OR IsMobile.
func TestLineType_Predicates(t *testing.T) {
	tests := []struct {
		lineType LineType
		fixed    bool
		mobile   bool
		human    bool
	}{
		{LineFixed, true, false, true},
		{LineMobile, false, true, true},
		{LineOther, false, false, false},
		{LineUnknown, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.lineType.String(), func(t *testing.T) {
			assert.Equal(t, tt.fixed, tt.lineType.IsFixed())
			assert.Equal(t, tt.mobile, tt.lineType.IsMobile())
			assert.Equal(t, tt.human, tt.lineType.IsHuman())
			assert.Equal(t, tt.lineType.IsFixed() || tt.lineType.IsMobile(), tt.lineType.IsHuman())
		})
	}
}

// TestParseLineType verifies string-to-line-type conversion,
// including case normalization and error cases.
func TestParseLineType(t *testing.T) {
	tests := []struct {
		input    string
		expected LineType
		hasError bool
	}{
		{"fixed", LineFixed, false},
		{"mobile", LineMobile, false},
		{"other", LineOther, false},
		{"unknown", LineUnknown, false},
		{"Mobile", LineMobile, false}, // case insensitive
		{" FIXED ", LineFixed, false}, // surrounding space ignored
		{"landline", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseLineType(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestInvalidReason_String(t *testing.T) {
	assert.Equal(t, "too_short", ReasonTooShort.String())
	assert.Equal(t, "too_long", ReasonTooLong.String())
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitCountryNotFound, "unknown country code")
		assert.Equal(t, ExitCountryNotFound, err.Code)
		assert.Equal(t, "unknown country code", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("yaml: line 3: mapping values are not allowed")
		err := WrapCLIError(ExitTableError, "failed to load carrier table", inner)
		assert.Equal(t, ExitTableError, err.Code)
		assert.Contains(t, err.Error(), "mapping values")
		assert.Equal(t, inner, err.Unwrap())
	})

	t.Run("errors.Is chain", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitConfigError, "failed to read config", inner)
		assert.True(t, errors.Is(err, inner))
	})
}
