package carrier

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/shinji-kodama/plnumbers/internal/model"
)

// Result is the outcome of a classification. An empty Carrier means the
// carrier is unknown.
type Result struct {
	Carrier  string         `json:"carrier,omitempty"`
	LineType model.LineType `json:"lineType"`
}

// unknown is returned whenever no classification is possible.
var unknown = Result{LineType: model.LineUnknown}

// Classifier resolves a carrier and line type for a domestic number.
type Classifier struct {
	registry *Registry
	logger   *slog.Logger

	// reported holds the country codes whose load failure was logged.
	reported sync.Map
}

// NewClassifier returns a classifier backed by the registry. A nil registry
// means Default(); a nil logger means slog.Default().
func NewClassifier(registry *Registry, logger *slog.Logger) *Classifier {
	if registry == nil {
		registry = Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{registry: registry, logger: logger}
}

// Registry returns the registry the classifier reads from.
func (c *Classifier) Registry() *Registry {
	return c.registry
}

// Classify looks up the carrier owning digits in the table for countryCode.
//
// It never fails. An empty country code, a country without a table, a table
// that could not be loaded and a number no rule matches all produce a
// result with no carrier and LineUnknown.
func (c *Classifier) Classify(countryCode, digits string) Result {
	if countryCode == "" {
		return unknown
	}

	t, err := c.registry.Load(countryCode)
	if err != nil {
		if !errors.Is(err, ErrNoTable) {
			if _, seen := c.reported.LoadOrStore(countryCode, true); !seen {
				c.logger.Warn("carrier table unavailable",
					slog.String("country", countryCode),
					slog.String("error", err.Error()))
			}
		}
		return unknown
	}

	carrier, lt, ok := t.Match(digits)
	if !ok {
		return unknown
	}
	return Result{Carrier: carrier.Name, LineType: lt}
}
