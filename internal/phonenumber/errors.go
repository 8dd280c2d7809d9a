package phonenumber

import (
	"errors"
	"fmt"

	"github.com/shinji-kodama/plnumbers/internal/model"
)

// ErrInvalidNumber matches every *InvalidNumberError via errors.Is.
var ErrInvalidNumber = errors.New("invalid phone number")

// InvalidNumberError is returned by Parse when the number of digits left
// after cleaning is outside [Min, Max].
type InvalidNumberError struct {
	// Input is the raw string passed to Parse.
	Input string

	// Reason is too_short or too_long.
	Reason model.InvalidReason

	// Length is the number of digits that survived cleaning.
	Length int

	// Min and Max are the limits the length was checked against.
	Min int
	Max int
}

// Error implements the error interface.
func (e *InvalidNumberError) Error() string {
	switch e.Reason {
	case model.ReasonTooShort:
		return fmt.Sprintf("phone number too short: %d digits (minimum %d)", e.Length, e.Min)
	case model.ReasonTooLong:
		return fmt.Sprintf("phone number too long: %d digits (maximum %d)", e.Length, e.Max)
	default:
		return fmt.Sprintf("invalid phone number: %d digits (allowed %d-%d)", e.Length, e.Min, e.Max)
	}
}

// Is makes errors.Is(err, ErrInvalidNumber) true.
func (e *InvalidNumberError) Is(target error) bool {
	return target == ErrInvalidNumber
}

// checkLength validates the cleaned digit count.
func checkLength(input, digits string) error {
	n := len(digits)
	switch {
	case n < MinLength:
		return &InvalidNumberError{Input: input, Reason: model.ReasonTooShort, Length: n, Min: MinLength, Max: MaxLength}
	case n > MaxLength:
		return &InvalidNumberError{Input: input, Reason: model.ReasonTooLong, Length: n, Min: MinLength, Max: MaxLength}
	}
	return nil
}
