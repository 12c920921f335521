// Package diagnostic collects non-fatal findings produced while synthesizing
// declarations. A generation run degrades individual declarations and keeps
// going; the collected diagnostics tell the caller what was approximated.
package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostic codes recorded by the engine.
const (
	// CodeCompositionCycle marks an allOf/base chain that revisited a schema
	// already on the resolution path. The cycle is broken with an opaque
	// placeholder type.
	CodeCompositionCycle = "CompositionCycle"

	// CodeUnresolvedDiscriminatorTarget marks a discriminator mapping entry
	// pointing at a name with no corresponding declaration. The variant is
	// dropped from the union.
	CodeUnresolvedDiscriminatorTarget = "UnresolvedDiscriminatorTarget"

	// CodeNameExhaustion marks a collision group for which no non-colliding
	// identifier could be found. Fatal for the run.
	CodeNameExhaustion = "NameExhaustion"

	// CodeUnsupportedComposition marks a composition shape the engine can only
	// approximate, such as an untagged oneOf.
	CodeUnsupportedComposition = "UnsupportedComposition"

	// CodeUnrepresentableEnum marks an enum list whose base kind is neither
	// string nor integer; the member keeps its raw primitive type.
	CodeUnrepresentableEnum = "UnrepresentableEnum"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single finding.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity `json:"severity"`
	// Code is a unique identifier for this type of diagnostic.
	Code string `json:"code"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Schema identifies which top-level schema this relates to (if any).
	Schema string `json:"schema,omitempty"`
	// Member identifies which property or member this relates to (if any).
	Member string `json:"member,omitempty"`
}

// Diagnostics holds all findings from one generation run.
type Diagnostics struct {
	Warnings []Diagnostic `json:"warnings,omitempty"`
	Errors   []Diagnostic `json:"errors,omitempty"`
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, schema, member string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Schema:   schema,
		Member:   member,
	})
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, schema, member string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Schema:   schema,
		Member:   member,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Errors = append(d.Errors, other.Errors...)
}

// Error returns a combined error from all error diagnostics, or nil.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Schema != "" {
		prefix = append(prefix, "["+d.Schema+"]")
	}

	if d.Member != "" {
		prefix = append(prefix, d.Member)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
