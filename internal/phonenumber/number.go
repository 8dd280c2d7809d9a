package phonenumber

import (
	"encoding/json"
	"fmt"

	"github.com/shinji-kodama/plnumbers/internal/model"
)

// absent is how missing values appear in the display form.
const absent = "None"

// Number is a parsed and classified phone number. It is immutable: every
// field is set by the parser and only exposed through accessors.
type Number struct {
	raw              string
	digits           string
	prefix           string
	unresolvedPrefix string
	country          string
	leadingPlus      bool
	leadingZero      bool
	carrier          string
	lineType         model.LineType
}

// RawInput returns the string exactly as it was passed to Parse.
func (n *Number) RawInput() string { return n.raw }

// Digits returns the domestic subscriber number: digits only, with the
// leading marker and country prefix removed.
func (n *Number) Digits() string { return n.digits }

// DialingPrefix returns the country dialing prefix (e.g. "48"), or "" when
// the country could not be resolved.
func (n *Number) DialingPrefix() string { return n.prefix }

// UnresolvedPrefix returns the two digits that were split off as a dialing
// prefix but did not resolve to any country. It is "" otherwise.
func (n *Number) UnresolvedPrefix() string { return n.unresolvedPrefix }

// Country returns the ISO country code (e.g. "PL"), or "" when the dialing
// prefix is not in the reference table.
func (n *Number) Country() string { return n.country }

// HadLeadingPlus reports whether the input started with "+".
func (n *Number) HadLeadingPlus() bool { return n.leadingPlus }

// HadLeadingZero reports whether the input started with "00" or "0".
func (n *Number) HadLeadingZero() bool { return n.leadingZero }

// Carrier returns the carrier name and whether one was found.
func (n *Number) Carrier() (string, bool) { return n.carrier, n.carrier != "" }

// LineType returns the line classification.
func (n *Number) LineType() model.LineType { return n.lineType }

// IsFixed reports whether the number is a landline.
func (n *Number) IsFixed() bool { return n.lineType.IsFixed() }

// IsMobile reports whether the number is a mobile number.
func (n *Number) IsMobile() bool { return n.lineType.IsMobile() }

// IsHuman reports whether the number is fixed or mobile, as opposed to a
// special, premium or intelligent-network number.
func (n *Number) IsHuman() bool { return n.lineType.IsHuman() }

// String returns the domestic digits. Re-parsing the result of String for a
// domestic number yields the same digits.
func (n *Number) String() string { return n.digits }

// Display returns the debug form "<COUNTRY (CARRIER): DIGITS>". Missing
// country or carrier are shown as None.
func (n *Number) Display() string {
	country, carrier := n.country, n.carrier
	if country == "" {
		country = absent
	}
	if carrier == "" {
		carrier = absent
	}
	return fmt.Sprintf("<%s (%s): %s>", country, carrier, n.digits)
}

// GoString makes %#v print the display form.
func (n *Number) GoString() string { return n.Display() }

// numberJSON is the JSON form of a Number.
type numberJSON struct {
	Input          string `json:"input"`
	Digits         string `json:"digits"`
	DialingPrefix  string `json:"dialingPrefix,omitempty"`
	Country        string `json:"country,omitempty"`
	HadLeadingPlus bool   `json:"hadLeadingPlus"`
	HadLeadingZero bool   `json:"hadLeadingZero"`
	Carrier        string `json:"carrier,omitempty"`
	LineType       string `json:"lineType"`
}

// MarshalJSON implements json.Marshaler.
func (n *Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(numberJSON{
		Input:          n.raw,
		Digits:         n.digits,
		DialingPrefix:  n.prefix,
		Country:        n.country,
		HadLeadingPlus: n.leadingPlus,
		HadLeadingZero: n.leadingZero,
		Carrier:        n.carrier,
		LineType:       n.lineType.String(),
	})
}
