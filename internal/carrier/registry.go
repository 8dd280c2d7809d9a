package carrier

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// ErrNoTable is returned by Registry.Load when no table is registered for
// the requested country.
var ErrNoTable = errors.New("no carrier table registered")

//go:embed data/*.yaml
var embeddedTables embed.FS

// Loader produces a rule table. It is called at most once per registration.
type Loader func() (*Table, error)

// entry memoizes the result of a single Loader.
type entry struct {
	load  Loader
	once  sync.Once
	table *Table
	err   error
}

// Registry maps country codes to their rule tables.
//
// Tables are registered explicitly and loaded lazily on first use. Each
// registration loads at most once; later calls return the same *Table (or
// the same error). All Register calls must happen before the registry is
// shared between goroutines; Load is safe for concurrent use afterwards.
type Registry struct {
	entries map[string]*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// NewDefaultRegistry returns a registry with every embedded table
// registered under its country code.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, code := range EmbeddedCodes() {
		r.Register(code, EmbeddedLoader(code))
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry holding the embedded tables.
// It must not be modified; build a NewDefaultRegistry to add tables.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewDefaultRegistry()
	})
	return defaultRegistry
}

// Register sets the loader for a country code, replacing any previous one.
// Codes are case-insensitive.
func (r *Registry) Register(code string, load Loader) {
	r.entries[strings.ToUpper(code)] = &entry{load: load}
}

// Has reports whether a table is registered for the code.
func (r *Registry) Has(code string) bool {
	_, ok := r.entries[strings.ToUpper(code)]
	return ok
}

// Codes returns the registered country codes, sorted.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.entries))
	for code := range r.entries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Load returns the table for a country, loading it on first use.
// It returns ErrNoTable when nothing is registered for the code.
func (r *Registry) Load(code string) (*Table, error) {
	code = strings.ToUpper(code)
	e, ok := r.entries[code]
	if !ok {
		return nil, fmt.Errorf("%w for %q", ErrNoTable, code)
	}

	e.once.Do(func() {
		t, err := e.load()
		if err != nil {
			e.err = fmt.Errorf("failed to load carrier table for %s: %w", code, err)
			return
		}
		if t.Country != "" && !strings.EqualFold(t.Country, code) {
			e.err = fmt.Errorf("carrier table registered for %s declares country %s", code, t.Country)
			return
		}
		e.table = t
	})
	return e.table, e.err
}

// EmbeddedCodes returns the country codes of the tables compiled into the
// binary, sorted.
func EmbeddedCodes() []string {
	files, err := fs.Glob(embeddedTables, "data/*.yaml")
	if err != nil {
		return nil
	}
	codes := make([]string, 0, len(files))
	for _, f := range files {
		codes = append(codes, strings.ToUpper(strings.TrimSuffix(path.Base(f), ".yaml")))
	}
	sort.Strings(codes)
	return codes
}

// EmbeddedLoader loads the embedded table for a country code.
func EmbeddedLoader(code string) Loader {
	return func() (*Table, error) {
		data, err := embeddedTables.ReadFile("data/" + strings.ToLower(code) + ".yaml")
		if err != nil {
			return nil, err
		}
		return ParseTable(data)
	}
}

// FileLoader loads a table from a YAML file on disk.
func FileLoader(path string) Loader {
	return func() (*Table, error) {
		return LoadTableFile(path)
	}
}
