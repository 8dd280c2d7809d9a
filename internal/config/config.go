// Package config loads the optional plnumbers configuration file.
//
// The file is JSONC (JSON with comments), so it is passed through
// github.com/tidwall/jsonc before being decoded with encoding/json. It can
// add or override country dialing prefixes and register carrier tables
// stored on disk:
//
//	{
//	  // ISO code -> dialing prefix
//	  "countries": {"YU": "38"},
//	  // ISO code -> YAML rule table, relative to this file
//	  "carrierTables": {"CZ": "tables/cz.yaml"}
//	}
//
// A missing file is not an error; the built-in defaults apply.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/plnumbers/internal/carrier"
	"github.com/shinji-kodama/plnumbers/internal/country"
	"github.com/shinji-kodama/plnumbers/internal/model"
)

// Config is the decoded configuration file.
type Config struct {
	// Path is the file the configuration was read from. Empty for defaults.
	Path string `json:"-"`

	// Countries maps ISO country codes to dialing prefixes. Entries are
	// applied on top of the libphonenumber-derived table.
	Countries map[string]string `json:"countries,omitempty"`

	// CarrierTables maps ISO country codes to YAML rule table paths.
	// Relative paths are resolved against the directory of Path.
	CarrierTables map[string]string `json:"carrierTables,omitempty"`
}

// candidateNames are searched, in order, in the working directory when no
// explicit path is given.
var candidateNames = []string{"plnumbers.jsonc", ".plnumbers.jsonc"}

// Find returns the first candidate config file that exists in dir, or ""
// when there is none.
func Find(dir string) string {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads and validates a configuration file.
//
// Returns a CLIError with ExitConfigError if the file cannot be read, is
// not valid JSONC, or fails validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to parse config file %s", path), err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid config file %s", path), err)
	}
	return &cfg, nil
}

// Resolve loads the file at path, or the first candidate in dir when path
// is empty. It returns an empty Config when neither exists.
func Resolve(path, dir string) (*Config, error) {
	if path == "" {
		path = Find(dir)
	}
	if path == "" {
		return &Config{}, nil
	}
	return Load(path)
}

// Validate checks country codes, prefixes and table paths.
func (c *Config) Validate() error {
	for _, code := range sortedKeys(c.Countries) {
		if err := country.ValidateEntry(country.Entry{Code: code, Prefix: c.Countries[code]}); err != nil {
			return fmt.Errorf("countries: %w", err)
		}
	}
	for _, code := range sortedKeys(c.CarrierTables) {
		if err := country.ValidateEntry(country.Entry{Code: code, Prefix: "0"}); err != nil {
			return fmt.Errorf("carrierTables: %w", err)
		}
		if c.CarrierTables[code] == "" {
			return fmt.Errorf("carrierTables: empty path for %s", code)
		}
	}
	return nil
}

// TablePath returns the absolute location of the carrier table configured
// for code.
func (c *Config) TablePath(code string) string {
	p := c.CarrierTables[code]
	if p == "" || filepath.IsAbs(p) || c.Path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.Path), p)
}

// CountryTable builds the reference table with the configured overrides.
func (c *Config) CountryTable() (*country.Table, error) {
	if len(c.Countries) == 0 {
		return country.Default(), nil
	}
	return country.New(country.WithOverrides(c.Countries))
}

// Registry returns a registry with the embedded tables plus the configured
// ones. A configured table replaces an embedded table for the same code.
func (c *Config) Registry() *carrier.Registry {
	if len(c.CarrierTables) == 0 {
		return carrier.Default()
	}
	r := carrier.NewDefaultRegistry()
	for _, code := range sortedKeys(c.CarrierTables) {
		r.Register(code, carrier.FileLoader(c.TablePath(code)))
	}
	return r
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
