// Package carrier classifies domestic phone numbers by owning carrier and
// line type.
//
// Each country has an ordered rule table of (pattern, carrier id) pairs,
// a carrier id -> (name, type tag) lookup and a type tag -> line type
// lookup. Tables are YAML documents (parsed with gopkg.in/yaml.v3); the
// ones under data/ are embedded into the binary, others can be registered
// from disk.
//
// Tables are registered explicitly in a Registry and loaded lazily, at most
// once per country. Classification scans the rules in document order and
// the first match wins, because carrier ranges can nest.
package carrier
