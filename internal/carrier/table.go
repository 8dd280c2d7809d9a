// table.go handles parsing and validation of carrier rule tables.
//
// A rule table is a YAML document with three sections:
//   - lineTypes: carrier type tag -> canonical line type
//   - carriers:  carrier id -> (name, type tag)
//   - rules:     ordered list of (pattern, carrier id)
//
// The rules section is a YAML sequence so the document order is kept
// verbatim; ranges may nest and the first matching rule wins.
package carrier

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/plnumbers/internal/model"
)

// rawTable mirrors the YAML layout of a rule table file.
type rawTable struct {
	Country   string                `yaml:"country"`
	LineTypes map[string]string     `yaml:"lineTypes"`
	Carriers  map[string]rawCarrier `yaml:"carriers"`
	Rules     []rawRule             `yaml:"rules"`
}

type rawCarrier struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type rawRule struct {
	Pattern string `yaml:"pattern"`
	Carrier string `yaml:"carrier"`
}

// Carrier is a single entry of the carrier lookup.
type Carrier struct {
	// ID is the key rules refer to.
	ID string `json:"id"`

	// Name is the display name of the carrier, e.g. "Polkomtel".
	Name string `json:"name"`

	// Tag is the carrier type tag, resolved through Table.LineTypes.
	Tag string `json:"tag"`
}

// Rule pairs a digit pattern with the carrier that owns matching numbers.
type Rule struct {
	// Pattern is applied with search semantics; anchors are part of the
	// pattern when a full match is wanted.
	Pattern *regexp.Regexp

	// CarrierID is a key of Table.Carriers.
	CarrierID string
}

// Table is the parsed, validated rule table for one country.
// It is read-only after ParseTable returns.
type Table struct {
	// Country is the ISO code declared by the document. May be empty.
	Country string

	// Rules are in scan order.
	Rules []Rule

	// Carriers maps carrier id to carrier.
	Carriers map[string]Carrier

	// LineTypes maps carrier type tags to canonical line types.
	LineTypes map[string]model.LineType
}

// ParseTable decodes and validates a YAML rule table.
//
// Validation rejects:
//   - patterns that do not compile
//   - rules referring to an undefined carrier
//   - carriers whose type tag has no line type
//   - line types that are not one of fixed, mobile, other, unknown
//   - tables with no rules
func ParseTable(data []byte) (*Table, error) {
	var raw rawTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse carrier table: %w", err)
	}

	t := &Table{
		Country:   raw.Country,
		Rules:     make([]Rule, 0, len(raw.Rules)),
		Carriers:  make(map[string]Carrier, len(raw.Carriers)),
		LineTypes: make(map[string]model.LineType, len(raw.LineTypes)),
	}

	for tag, value := range raw.LineTypes {
		lt, err := model.ParseLineType(value)
		if err != nil {
			return nil, fmt.Errorf("carrier table: lineTypes[%s]: %w", tag, err)
		}
		t.LineTypes[tag] = lt
	}

	for id, c := range raw.Carriers {
		if c.Name == "" {
			return nil, fmt.Errorf("carrier table: carrier %q has no name", id)
		}
		if _, ok := t.LineTypes[c.Type]; !ok {
			return nil, fmt.Errorf("carrier table: carrier %q has undefined type tag %q", id, c.Type)
		}
		t.Carriers[id] = Carrier{ID: id, Name: c.Name, Tag: c.Type}
	}

	if len(raw.Rules) == 0 {
		return nil, fmt.Errorf("carrier table: no rules defined")
	}

	for i, r := range raw.Rules {
		if _, ok := t.Carriers[r.Carrier]; !ok {
			return nil, fmt.Errorf("carrier table: rule %d refers to undefined carrier %q", i, r.Carrier)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("carrier table: rule %d: invalid pattern: %w", i, err)
		}
		t.Rules = append(t.Rules, Rule{Pattern: re, CarrierID: r.Carrier})
	}

	return t, nil
}

// LoadTableFile reads and parses a rule table from disk.
func LoadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read carrier table: %w", err)
	}
	t, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Match scans the rules in order and returns the carrier of the first rule
// whose pattern accepts digits, with its canonical line type.
// ok is false when no rule matches.
func (t *Table) Match(digits string) (c Carrier, lt model.LineType, ok bool) {
	for _, r := range t.Rules {
		if r.Pattern.MatchString(digits) {
			c = t.Carriers[r.CarrierID]
			return c, t.LineTypes[c.Tag], true
		}
	}
	return Carrier{}, model.LineUnknown, false
}
