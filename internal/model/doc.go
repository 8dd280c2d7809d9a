// Package model defines the domain value types for the plnumbers module.
//
// This package contains pure data structures with no external dependencies:
// the canonical line types (fixed, mobile, other, unknown), the reasons a
// number can be rejected, and the CLI exit codes together with the CLIError
// type that carries them.
package model
