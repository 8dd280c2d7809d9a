package phonenumber

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/plnumbers/internal/carrier"
	"github.com/shinji-kodama/plnumbers/internal/country"
	"github.com/shinji-kodama/plnumbers/internal/model"
)

const validNumber = "601234567"

// TestParse_Scenarios covers the end-to-end cases of a bare domestic number,
// the same number with each international marker, and whitespace.
func TestParse_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		plus  bool
		zero  bool
	}{
		{"bare domestic", validNumber, false, false},
		{"leading plus", "+48" + validNumber, true, false},
		{"leading double zero", "0048" + validNumber, false, true},
		{"surrounding and inner whitespace", " 601   234 567 ", false, false},
		{"dashes and slash", " 601-234--567/", false, false},
		{"parentheses", "(601) 234 567", false, false},
		{"formatted international", "+48 (601) 234-567", true, false},
		{"tabs and newlines", "\t601\n234\r567", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse(tt.input)
			require.NoError(t, err)

			assert.Equal(t, validNumber, n.Digits())
			assert.Equal(t, "PL", n.Country())
			assert.Equal(t, "48", n.DialingPrefix())
			assert.Equal(t, tt.plus, n.HadLeadingPlus())
			assert.Equal(t, tt.zero, n.HadLeadingZero())
			assert.Equal(t, tt.input, n.RawInput())

			name, ok := n.Carrier()
			require.True(t, ok)
			assert.Equal(t, "Polkomtel", name)
			assert.True(t, n.IsMobile())
			assert.False(t, n.IsFixed())
			assert.True(t, n.IsHuman())
		})
	}
}

// TestParse_LengthBounds verifies that every digit count inside the bounds
// parses and every count outside fails with InvalidNumberError.
func TestParse_LengthBounds(t *testing.T) {
	for length := 1; length <= MaxLength+3; length++ {
		input := strings.Repeat("1", length)
		t.Run(fmt.Sprintf("%d digits", length), func(t *testing.T) {
			n, err := Parse(input)
			if length >= MinLength && length <= MaxLength {
				require.NoError(t, err)
				assert.NotNil(t, n)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidNumber))

			var invalid *InvalidNumberError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, length, invalid.Length)
			assert.Equal(t, MinLength, invalid.Min)
			assert.Equal(t, MaxLength, invalid.Max)
			if length < MinLength {
				assert.Equal(t, model.ReasonTooShort, invalid.Reason)
			} else {
				assert.Equal(t, model.ReasonTooLong, invalid.Reason)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason model.InvalidReason
		length int
	}{
		{"single digit", "1", model.ReasonTooShort, 1},
		{"plus only", "+", model.ReasonTooShort, 0},
		{"empty", "", model.ReasonTooShort, 0},
		{"letters only", "call me", model.ReasonTooShort, 0},
		{"marker eats a digit", "012", model.ReasonTooShort, 2},
		{"eighteen digits", strings.Repeat("1", 18), model.ReasonTooLong, 18},
		{"long after punctuation", "+48 " + strings.Repeat("12-", 8), model.ReasonTooLong, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)

			var invalid *InvalidNumberError
			require.True(t, errors.As(err, &invalid), "expected InvalidNumberError, got %v", err)
			assert.Equal(t, tt.reason, invalid.Reason)
			assert.Equal(t, tt.length, invalid.Length)
			assert.Equal(t, tt.input, invalid.Input)
		})
	}
}

func TestInvalidNumberError_Message(t *testing.T) {
	_, err := Parse("1")
	require.Error(t, err)
	assert.Equal(t, "phone number too short: 1 digits (minimum 3)", err.Error())

	_, err = Parse(strings.Repeat("9", 18))
	require.Error(t, err)
	assert.Equal(t, "phone number too long: 18 digits (maximum 17)", err.Error())
}

// TestParse_MarkerPrecedence checks that exactly one marker is consumed,
// with "+" taking priority over "00" and "00" over "0".
func TestParse_MarkerPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		plus     bool
		zero     bool
		digits   string
		country  string
		prefix   string
		leftover string
	}{
		{"plus", "+48601234567", true, false, validNumber, "PL", "48", ""},
		{"double zero", "0048601234567", false, true, validNumber, "PL", "48", ""},
		{"single zero trunk prefix", "0601234567", false, true, validNumber, "PL", "48", ""},
		{"plus with nine digits", "+601234567", true, false, validNumber, "PL", "48", ""},
		{"plus german number", "+4930123456", true, false, "30123456", "DE", "49", ""},
		{"plus then zeros is not repaired", "+0048601234567", true, false, "48601234567", "", "", "00"},
		{"double zero then zero", "00048601234567", false, true, "8601234567", "", "", "04"},
		{"no marker, prefixed", "48601234567", false, false, validNumber, "PL", "48", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.plus, n.HadLeadingPlus())
			assert.Equal(t, tt.zero, n.HadLeadingZero())
			assert.False(t, n.HadLeadingPlus() && n.HadLeadingZero(), "markers are mutually exclusive")
			assert.Equal(t, tt.digits, n.Digits())
			assert.Equal(t, tt.country, n.Country())
			assert.Equal(t, tt.prefix, n.DialingPrefix())
			assert.Equal(t, tt.leftover, n.UnresolvedPrefix())
		})
	}
}

// TestParse_UnresolvedCountry verifies that an unknown prefix is not an
// error and yields no country, no carrier and an unknown line type.
func TestParse_UnresolvedCountry(t *testing.T) {
	n, err := Parse("+0012345678")
	require.NoError(t, err)

	assert.Empty(t, n.Country())
	assert.Empty(t, n.DialingPrefix())
	_, ok := n.Carrier()
	assert.False(t, ok)
	assert.Equal(t, model.LineUnknown, n.LineType())
	assert.False(t, n.IsHuman())
	assert.Equal(t, "<None (None): 12345678>", n.Display())
}

func TestParse_ForeignCountryWithoutTable(t *testing.T) {
	n, err := Parse("+44 20 7946 0018")
	require.NoError(t, err)

	assert.Equal(t, "GB", n.Country())
	assert.Equal(t, "44", n.DialingPrefix())
	assert.Equal(t, "2079460018", n.Digits())
	assert.Equal(t, model.LineUnknown, n.LineType())
	assert.Equal(t, "<GB (None): 2079460018>", n.Display())
}

func TestParse_LineTypes(t *testing.T) {
	tests := []struct {
		input    string
		lineType model.LineType
		human    bool
	}{
		{"22 123 45 67", model.LineFixed, true},
		{"+48 601 234 567", model.LineMobile, true},
		{"800 123 456", model.LineOther, false},
		{"999 999 999", model.LineUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.lineType, n.LineType())
			assert.Equal(t, tt.human, n.IsHuman())
			assert.Equal(t, n.IsFixed() || n.IsMobile(), n.IsHuman())
		})
	}
}

// TestParse_RoundTrip verifies that re-parsing the plain string form of a
// domestic number gives back the same digits.
func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		validNumber,
		"+48601234567",
		"0048 22 123 45 67",
		"0 800-123-456",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := Parse(input)
			require.NoError(t, err)

			second, err := Parse(first.String())
			require.NoError(t, err)
			assert.Equal(t, first.Digits(), second.Digits())
			assert.Equal(t, first.Country(), second.Country())
		})
	}
}

func TestNumber_DisplayAndString(t *testing.T) {
	n, err := Parse("+48601234567")
	require.NoError(t, err)

	assert.Equal(t, validNumber, n.String())
	assert.Equal(t, "<PL (Polkomtel): 601234567>", n.Display())
	assert.Equal(t, "<PL (Polkomtel): 601234567>", fmt.Sprintf("%#v", n))
	assert.Equal(t, validNumber, fmt.Sprintf("%s", n))
}

func TestNumber_MarshalJSON(t *testing.T) {
	n, err := Parse("0048 601 234 567")
	require.NoError(t, err)

	data, err := json.Marshal(n)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"input": "0048 601 234 567",
		"digits": "601234567",
		"dialingPrefix": "48",
		"country": "PL",
		"hadLeadingPlus": false,
		"hadLeadingZero": true,
		"carrier": "Polkomtel",
		"lineType": "mobile"
	}`, string(data))
}

// TestParser_CustomTables wires a parser to a country override and a
// registry without the embedded tables.
func TestParser_CustomTables(t *testing.T) {
	countries, err := country.New(country.WithOverride("YU", "38"))
	require.NoError(t, err)

	p := NewParser(
		WithCountries(countries),
		WithClassifier(carrier.NewClassifier(carrier.NewRegistry(), nil)),
	)

	n, err := p.Parse(validNumber)
	require.NoError(t, err)
	assert.Equal(t, "PL", n.Country())
	assert.Equal(t, model.LineUnknown, n.LineType(), "no tables registered")

	n, err = p.Parse("+38 11 123 4567")
	require.NoError(t, err)
	assert.Equal(t, "YU", n.Country())
	assert.Equal(t, "38", n.DialingPrefix())
	assert.Equal(t, "111234567", n.Digits())
}

// TestParse_Concurrent runs Parse from many goroutines against the shared
// default parser; results must match the sequential ones.
func TestParse_Concurrent(t *testing.T) {
	inputs := []string{validNumber, "+48221234567", "0048800123456", "+4930123456", "1"}

	want := make(map[string]string, len(inputs))
	for _, in := range inputs {
		if n, err := Parse(in); err == nil {
			want[in] = n.Display()
		} else {
			want[in] = err.Error()
		}
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64*len(inputs))
	for i := 0; i < 64; i++ {
		for _, in := range inputs {
			wg.Add(1)
			go func(in string) {
				defer wg.Done()
				got := ""
				if n, err := Parse(in); err == nil {
					got = n.Display()
				} else {
					got = err.Error()
				}
				if got != want[in] {
					errs <- fmt.Sprintf("%s: got %s want %s", in, got, want[in])
				}
			}(in)
		}
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}
