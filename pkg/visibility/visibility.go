// Package visibility defines the seam for conditional-visibility rules.
// Descriptors carry a rule string under the visibleWhen config key; an
// Evaluator decides whether the field is shown given the current values.
package visibility

// Evaluator determines whether a field should be visible based on a rule
// string and the evaluation context.
type Evaluator interface {
	Eval(fieldPath, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values is the form's current
// value object; Extras lets hosts inject out-of-form context such as roles
// or feature flags, addressed with the "extras." prefix.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldPath, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldPath, rule string, ctx Context) (bool, error) {
	return fn(fieldPath, rule, ctx)
}
