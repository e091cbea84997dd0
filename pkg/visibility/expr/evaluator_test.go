package expr_test

import (
	"testing"

	"github.com/Tonio993/dynamic-forms-app/pkg/visibility"
	"github.com/Tonio993/dynamic-forms-app/pkg/visibility/expr"
)

func TestEval(t *testing.T) {
	ctx := visibility.Context{
		Values: map[string]any{
			"status":   "active",
			"archived": false,
			"count":    float64(3),
			"profile": map[string]any{
				"admin": true,
			},
		},
		Extras: map[string]any{
			"beta": true,
		},
	}

	tests := []struct {
		name string
		rule string
		want bool
	}{
		{name: "empty rule is visible", rule: "", want: true},
		{name: "truthy string", rule: "status", want: true},
		{name: "missing identifier is false", rule: "nope", want: false},
		{name: "equality", rule: `status == "active"`, want: true},
		{name: "inequality", rule: `status != "draft"`, want: true},
		{name: "numeric comparison", rule: "count == 3", want: true},
		{name: "boolean literal", rule: "archived == false", want: true},
		{name: "negation", rule: "!archived", want: true},
		{name: "dot path", rule: "profile.admin", want: true},
		{name: "extras prefix", rule: "extras.beta == true", want: true},
		{name: "and", rule: `status == "active" && !archived`, want: true},
		{name: "or", rule: `status == "draft" || count == 3`, want: true},
		{name: "parens", rule: `(status == "draft" || count == 3) && !archived`, want: true},
		{name: "single quotes", rule: `status == 'active'`, want: true},
		{name: "failing and", rule: `status == "active" && archived`, want: false},
	}

	eval := expr.New()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := eval.Eval("field", tc.rule, ctx)
			if err != nil {
				t.Fatalf("Eval(%q) returned error: %v", tc.rule, err)
			}
			if got != tc.want {
				t.Fatalf("Eval(%q) = %v, want %v", tc.rule, got, tc.want)
			}
		})
	}
}

func TestEvalSyntaxErrors(t *testing.T) {
	eval := expr.New()
	for _, rule := range []string{
		`status == `,
		`status == "unterminated`,
		`(status`,
		`== "active"`,
		`status = "active"`,
	} {
		if _, err := eval.Eval("field", rule, visibility.Context{}); err == nil {
			t.Fatalf("Eval(%q) expected error, got none", rule)
		}
	}
}
