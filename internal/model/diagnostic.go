package model

import "fmt"

// Severity splits diagnostics into the two regimes of the error model:
// errors are build-blocking (at the caller's discretion), warnings never
// are.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic kinds. Stable strings so callers can filter without parsing
// messages.
const (
	DiagMissingToken          = "missing-token"
	DiagMissingProp           = "missing-prop"
	DiagMissingComponent      = "missing-component"
	DiagMissingPackage        = "missing-package"
	DiagInvalidVariantDefault = "invalid-variant-default"
	DiagInvalidVariantValue   = "invalid-variant-value"
	DiagCircularReference     = "circular-reference"
	DiagMissingRequiredProp   = "missing-required-prop"
	DiagMissingRequiredSlot   = "missing-required-slot"
	DiagInvalidEnumValue      = "invalid-enum-value"
	DiagDeprecated            = "deprecated"
	DiagUndeclaredOperand     = "undeclared-operand"
	DiagAmbiguousStateShape   = "ambiguous-state-shape"
	DiagUnreadableSource      = "unreadable-source"
	DiagDuplicateComponent    = "duplicate-component"
)

// Diagnostic is one finding produced during resolution or validation.
type Diagnostic struct {
	Severity Severity

	// Kind is one of the Diag* constants.
	Kind string

	// Path locates the finding: "Component/node.child" or a token path.
	Path string

	// Reference renders the offending reference, when one exists.
	Reference string

	Message string
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s: %s", d.Severity, d.Kind, d.Message)
	if d.Path != "" {
		s += " (at " + d.Path + ")"
	}
	return s
}

// Diagnostics is an ordered collection of findings.
type Diagnostics []Diagnostic

// Errors returns only the error-severity findings.
func (ds Diagnostics) Errors() Diagnostics { return ds.filter(SeverityError) }

// Warnings returns only the warning-severity findings.
func (ds Diagnostics) Warnings() Diagnostics { return ds.filter(SeverityWarning) }

// HasErrors reports whether any finding is an error.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (ds Diagnostics) filter(sev Severity) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}
