// Package model defines the domain value types for plnumbers.
//
// These types are shared by the parser, the carrier classifier and the CLI.
// They carry no behavior beyond validation and string conversion.
package model

import (
	"fmt"
	"strings"
)

// LineType is the canonical classification of a domestic number.
//
// Carrier tables tag each carrier with a short tag (e.g. "l", "m") and map
// those tags onto one of these canonical values.
type LineType string

const (
	// LineFixed is a landline number.
	LineFixed LineType = "fixed"

	// LineMobile is a GSM/mobile number.
	LineMobile LineType = "mobile"

	// LineOther covers special, premium, IVR and intelligent-network
	// numbers: anything tagged neither fixed nor mobile.
	LineOther LineType = "other"

	// LineUnknown is used when no table exists for the country or no rule
	// in the table matched.
	LineUnknown LineType = "unknown"
)

// String returns the string representation of LineType.
func (t LineType) String() string {
	return string(t)
}

// IsValid checks whether the LineType value is one of the canonical values.
func (t LineType) IsValid() bool {
	switch t {
	case LineFixed, LineMobile, LineOther, LineUnknown:
		return true
	default:
		return false
	}
}

// IsFixed reports whether the line is a landline.
func (t LineType) IsFixed() bool {
	return t == LineFixed
}

// IsMobile reports whether the line is a mobile number.
func (t LineType) IsMobile() bool {
	return t == LineMobile
}

// IsHuman reports whether the number most likely reaches a person, i.e. it
// is fixed or mobile. Special, premium and intelligent-network numbers are
// excluded, and so is anything unknown.
func (t LineType) IsHuman() bool {
	return t.IsFixed() || t.IsMobile()
}

// ParseLineType converts a string to a LineType.
// Returns an error if the string does not match any canonical value.
func ParseLineType(s string) (LineType, error) {
	lt := LineType(strings.ToLower(strings.TrimSpace(s)))
	if !lt.IsValid() {
		return "", fmt.Errorf("invalid line type: %q (valid: fixed, mobile, other, unknown)", s)
	}
	return lt, nil
}

// InvalidReason explains why a number was rejected by the length check.
type InvalidReason string

const (
	// ReasonTooShort means fewer digits than the minimum survived cleaning.
	ReasonTooShort InvalidReason = "too_short"

	// ReasonTooLong means more digits than the maximum survived cleaning.
	ReasonTooLong InvalidReason = "too_long"
)

// String returns the string representation of InvalidReason.
func (r InvalidReason) String() string {
	return string(r)
}

// ExitCode defines the CLI exit codes. Scripts can rely on them to tell a
// rejected number apart from a broken configuration.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidNumber indicates at least one input was rejected by the
	// parser (too short or too long).
	ExitInvalidNumber ExitCode = 2

	// ExitConfigError indicates the configuration file could not be read
	// or failed validation.
	ExitConfigError ExitCode = 3

	// ExitTableError indicates a carrier table could not be loaded.
	ExitTableError ExitCode = 4

	// ExitCountryNotFound indicates a requested country code or dialing
	// prefix is not in the reference table.
	ExitCountryNotFound ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
