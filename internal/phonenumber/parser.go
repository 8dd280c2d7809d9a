// Package phonenumber normalizes free-form Polish phone numbers and
// classifies them by country, carrier and line type.
//
// Parsing happens in a fixed order:
//  1. Remove all whitespace.
//  2. Consume at most one leading marker: "+", else "00", else "0".
//  3. Drop every remaining non-digit character.
//  4. Reject inputs with fewer than MinLength or more than MaxLength digits.
//  5. Exactly DefaultLength digits is a domestic number of DefaultCountry.
//     Anything else has its first two digits split off as the dialing
//     prefix, which is resolved through the country reference table.
//  6. Classify the subscriber digits and build the immutable Number.
//
// Mixed markers are not repaired: "+0048601234567" consumes only the "+",
// leaving "00" to be read as an (unresolvable) dialing prefix.
package phonenumber

import (
	"strings"
	"sync"
	"unicode"

	"github.com/shinji-kodama/plnumbers/internal/carrier"
	"github.com/shinji-kodama/plnumbers/internal/country"
)

const (
	// MinLength is the minimum number of digits of a valid number.
	MinLength = 3

	// MaxLength is the maximum number of digits of a valid number.
	MaxLength = 17

	// DefaultLength is the length of a national number without any
	// country prefix.
	DefaultLength = 9

	// DefaultCountry is assumed for numbers of DefaultLength digits.
	DefaultCountry = "PL"

	// prefixLength is how many digits are split off as the dialing prefix
	// of a number that is not of DefaultLength.
	prefixLength = 2
)

// Parser turns raw strings into classified Numbers. A Parser is safe for
// concurrent use once built.
type Parser struct {
	countries  *country.Table
	classifier *carrier.Classifier
}

// Option customizes a Parser.
type Option func(*Parser)

// WithCountries sets the country reference table.
func WithCountries(t *country.Table) Option {
	return func(p *Parser) { p.countries = t }
}

// WithClassifier sets the carrier classifier.
func WithClassifier(c *carrier.Classifier) Option {
	return func(p *Parser) { p.classifier = c }
}

// NewParser returns a Parser. Without options it uses the default country
// table and a classifier over the embedded carrier tables.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.countries == nil {
		p.countries = country.Default()
	}
	if p.classifier == nil {
		p.classifier = carrier.NewClassifier(nil, nil)
	}
	return p
}

var (
	defaultParserOnce sync.Once
	defaultParser     *Parser
)

// Parse parses raw with the default Parser.
func Parse(raw string) (*Number, error) {
	defaultParserOnce.Do(func() {
		defaultParser = NewParser()
	})
	return defaultParser.Parse(raw)
}

// Parse normalizes, validates and classifies raw. The only error it returns
// is *InvalidNumberError. An unknown country or carrier is not an error; the
// corresponding fields of the Number are simply empty.
func (p *Parser) Parse(raw string) (*Number, error) {
	s := stripSpace(raw)

	n := &Number{raw: raw}
	switch {
	case strings.HasPrefix(s, "+"):
		n.leadingPlus = true
		s = s[1:]
	case strings.HasPrefix(s, "00"):
		n.leadingZero = true
		s = s[2:]
	case strings.HasPrefix(s, "0"):
		n.leadingZero = true
		s = s[1:]
	}

	digits := onlyDigits(s)
	if err := checkLength(raw, digits); err != nil {
		return nil, err
	}

	if len(digits) == DefaultLength {
		n.digits = digits
		if prefix, ok := p.countries.PrefixFor(DefaultCountry); ok {
			n.country = DefaultCountry
			n.prefix = prefix
		}
	} else {
		prefix := digits[:prefixLength]
		n.digits = digits[prefixLength:]
		if code, ok := p.countries.CodeFor(prefix); ok {
			n.country = code
			n.prefix = prefix
		} else {
			n.unresolvedPrefix = prefix
		}
	}

	res := p.classifier.Classify(n.country, n.digits)
	n.carrier = res.Carrier
	n.lineType = res.LineType
	return n, nil
}

// stripSpace removes every whitespace rune.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// onlyDigits keeps ASCII digits and drops everything else.
func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
