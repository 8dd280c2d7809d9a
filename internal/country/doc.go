// Package country provides the country reference table: a read-only,
// bidirectional mapping between ISO 3166-1 alpha-2 country codes and their
// numeric international dialing prefixes (e.g. "PL" <-> "48").
//
// The table is built from the metadata shipped with
// github.com/nyaruka/phonenumbers, so no separate data file has to be
// maintained. Overrides (for codes libphonenumber does not know, or local
// conventions) can be applied while the table is being built. After New
// returns, the table is never mutated and is safe for concurrent use.
package country
