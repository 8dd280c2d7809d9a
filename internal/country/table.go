package country

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"github.com/nyaruka/phonenumbers"
)

// unknownRegion is what libphonenumber returns for calling codes it has no
// region for.
const unknownRegion = "ZZ"

var (
	codeRegex   = regexp.MustCompile(`^[A-Z]{2}$`)
	prefixRegex = regexp.MustCompile(`^[0-9]{1,3}$`)
)

// Entry is a single row of the reference table.
type Entry struct {
	// Code is the ISO 3166-1 alpha-2 country code, e.g. "PL".
	Code string `json:"code" yaml:"code"`

	// Prefix is the international dialing prefix without any leading
	// marker, e.g. "48".
	Prefix string `json:"prefix" yaml:"prefix"`
}

// Table is the bidirectional country code <-> dialing prefix mapping.
type Table struct {
	byCode   map[string]string
	byPrefix map[string]string
}

// Option customizes table construction.
type Option func(*builder) error

type builder struct {
	overrides []Entry
}

// WithOverride adds or replaces the mapping for a single country. The
// override also becomes the reverse mapping for its prefix, so shared
// prefixes (e.g. "7" for RU and KZ) can be pointed at a different country.
func WithOverride(code, prefix string) Option {
	return func(b *builder) error {
		if err := ValidateEntry(Entry{Code: code, Prefix: prefix}); err != nil {
			return err
		}
		b.overrides = append(b.overrides, Entry{Code: code, Prefix: prefix})
		return nil
	}
}

// WithOverrides applies WithOverride for every entry of the map. Entries are
// applied in code order so the result does not depend on map iteration.
func WithOverrides(overrides map[string]string) Option {
	return func(b *builder) error {
		codes := make([]string, 0, len(overrides))
		for code := range overrides {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			if err := WithOverride(code, overrides[code])(b); err != nil {
				return err
			}
		}
		return nil
	}
}

// ValidateEntry checks that an entry has a two-letter upper-case code and a
// one to three digit prefix.
func ValidateEntry(e Entry) error {
	if !codeRegex.MatchString(e.Code) {
		return fmt.Errorf("invalid country code %q: must be two upper-case letters", e.Code)
	}
	if !prefixRegex.MatchString(e.Prefix) {
		return fmt.Errorf("invalid dialing prefix %q for %s: must be 1-3 digits", e.Prefix, e.Code)
	}
	return nil
}

// New builds a reference table from libphonenumber metadata and then
// applies the given options in order.
//
// For calling codes shared by several regions (e.g. "1" for the NANP
// countries) the reverse mapping points at libphonenumber's main region for
// that code.
func New(opts ...Option) (*Table, error) {
	b := &builder{}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	t := &Table{
		byCode:   make(map[string]string),
		byPrefix: make(map[string]string),
	}

	for region := range phonenumbers.GetSupportedRegions() {
		cc := phonenumbers.GetCountryCodeForRegion(region)
		if cc == 0 {
			continue
		}
		prefix := strconv.Itoa(cc)
		t.byCode[region] = prefix

		if _, ok := t.byPrefix[prefix]; ok {
			continue
		}
		if primary := phonenumbers.GetRegionCodeForCountryCode(cc); primary != "" && primary != unknownRegion {
			t.byPrefix[prefix] = primary
		}
	}

	for _, o := range b.overrides {
		t.byCode[o.Code] = o.Prefix
		t.byPrefix[o.Prefix] = o.Code
	}

	return t, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the shared table built without overrides. It is built on
// first use.
func Default() *Table {
	defaultOnce.Do(func() {
		// New cannot fail without options.
		defaultTable, _ = New()
	})
	return defaultTable
}

// PrefixFor returns the dialing prefix for a country code.
func (t *Table) PrefixFor(code string) (string, bool) {
	p, ok := t.byCode[code]
	return p, ok
}

// CodeFor returns the country code for a dialing prefix (reverse lookup).
func (t *Table) CodeFor(prefix string) (string, bool) {
	c, ok := t.byPrefix[prefix]
	return c, ok
}

// Len returns the number of country codes in the table.
func (t *Table) Len() int {
	return len(t.byCode)
}

// Entries returns every country code with its prefix, sorted by code.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.byCode))
	for code, prefix := range t.byCode {
		entries = append(entries, Entry{Code: code, Prefix: prefix})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Code < entries[j].Code
	})
	return entries
}
