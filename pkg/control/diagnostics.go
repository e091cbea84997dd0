package control

import "fmt"

// Diagnostic reports a configuration or synchronisation problem that was
// degraded instead of aborting: the offending field was skipped or left
// unset and the rest of the form carried on. Diagnostics are values, never
// panics, and the library does not log them; hosts decide what to surface.
type Diagnostic struct {
	Path   string
	Reason string
	Detail string
}

// Diagnostic reasons.
const (
	ReasonUnknownType    = "unknown-type"
	ReasonDuplicateField = "duplicate-field"
	ReasonMissingSubForm = "missing-subform"
	ReasonMalformedValue = "malformed-value"
	ReasonBadPattern     = "bad-pattern"
	ReasonBadVisibility  = "bad-visibility-rule"
)

func (d Diagnostic) String() string {
	if d.Detail == "" {
		return fmt.Sprintf("%s: %s", d.Path, d.Reason)
	}
	return fmt.Sprintf("%s: %s (%s)", d.Path, d.Reason, d.Detail)
}
