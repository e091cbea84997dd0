// Package expr is a small, dependency-free visibility evaluator.
//
// Supported syntax:
//   - bare identifiers as truthiness checks: `enabled`
//   - negation: `!archived`
//   - comparisons: `status == "active"`, `count != 3`
//   - composition with && and || plus parentheses
//
// Identifiers are dot-paths into Context.Values; the `extras.` prefix reads
// from Context.Extras instead.
package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Tonio993/dynamic-forms-app/pkg/visibility"
)

// Evaluator implements visibility.Evaluator. The zero value is ready to use.
type Evaluator struct{}

// New constructs an Evaluator.
func New() *Evaluator { return &Evaluator{} }

// Eval parses and evaluates a rule. Empty rules are visible. A syntax error
// yields (false, err); callers are expected to degrade to visible and report
// a diagnostic.
func (e *Evaluator) Eval(fieldPath, rule string, ctx visibility.Context) (bool, error) {
	_ = fieldPath
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}

	p := &parser{input: trimmed}
	node, err := p.parseOr()
	if err != nil {
		return false, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return false, fmt.Errorf("visibility/expr: unexpected %q at offset %d", p.input[p.pos], p.pos)
	}
	return node.eval(ctx), nil
}

type node interface {
	eval(ctx visibility.Context) bool
}

type boolOp struct {
	and         bool
	left, right node
}

func (n boolOp) eval(ctx visibility.Context) bool {
	if n.and {
		return n.left.eval(ctx) && n.right.eval(ctx)
	}
	return n.left.eval(ctx) || n.right.eval(ctx)
}

type notOp struct{ inner node }

func (n notOp) eval(ctx visibility.Context) bool { return !n.inner.eval(ctx) }

type comparison struct {
	path     string
	negated  bool
	expected any
}

func (n comparison) eval(ctx visibility.Context) bool {
	actual, _ := lookup(ctx, n.path)
	equal := looseEqual(actual, n.expected)
	if n.negated {
		return !equal
	}
	return equal
}

type truthy struct{ path string }

func (n truthy) eval(ctx visibility.Context) bool {
	value, ok := lookup(ctx, n.path)
	if !ok {
		return false
	}
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		return strings.TrimSpace(typed) != ""
	case float64:
		return typed != 0
	case int:
		return typed != 0
	case nil:
		return false
	default:
		return true
	}
}

type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !p.consumeLiteral("||") {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = boolOp{and: false, left: left, right: right}
	}
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !p.consumeLiteral("&&") {
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = boolOp{and: true, left: left, right: right}
	}
}

func (p *parser) parseUnary() (node, error) {
	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == '!' && !p.startsWith("!=") {
		p.pos++
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notOp{inner: inner}, nil
	}
	if p.consumeLiteral("(") {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if !p.consumeLiteral(")") {
			return nil, fmt.Errorf("visibility/expr: missing ')' at offset %d", p.pos)
		}
		return inner, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (node, error) {
	path, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	p.skipSpace()

	negated := false
	switch {
	case p.consumeLiteral("=="):
	case p.consumeLiteral("!="):
		negated = true
	default:
		return truthy{path: path}, nil
	}

	expected, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return comparison{path: path, negated: negated, expected: expected}, nil
}

func (p *parser) parseIdentifier() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) && isIdentRune(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("visibility/expr: expected identifier at offset %d", start)
	}
	return p.input[start:p.pos], nil
}

func (p *parser) parseValue() (any, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("visibility/expr: expected value at offset %d", p.pos)
	}

	if quote := p.input[p.pos]; quote == '"' || quote == '\'' {
		p.pos++
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] != quote {
			p.pos++
		}
		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("visibility/expr: unterminated string at offset %d", start)
		}
		value := p.input[start:p.pos]
		p.pos++
		return value, nil
	}

	start := p.pos
	for p.pos < len(p.input) && isValueRune(p.input[p.pos]) {
		p.pos++
	}
	raw := p.input[start:p.pos]
	switch raw {
	case "":
		return nil, fmt.Errorf("visibility/expr: expected value at offset %d", start)
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n, nil
	}
	return raw, nil
}

func (p *parser) consumeLiteral(literal string) bool {
	p.skipSpace()
	if p.startsWith(literal) {
		p.pos += len(literal)
		return true
	}
	return false
}

func (p *parser) startsWith(literal string) bool {
	return strings.HasPrefix(p.input[p.pos:], literal)
}

func isIdentRune(ch byte) bool {
	return ch == '_' || ch == '.' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

func isValueRune(ch byte) bool {
	return ch == '-' || ch == '+' || ch == '.' || isIdentRune(ch)
}

func lookup(ctx visibility.Context, path string) (any, bool) {
	source := ctx.Values
	if rest, ok := strings.CutPrefix(path, "extras."); ok {
		source = ctx.Extras
		path = rest
	}
	if source == nil {
		return nil, false
	}

	current := any(source)
	for _, segment := range strings.Split(path, ".") {
		record, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = record[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func looseEqual(actual, expected any) bool {
	if actual == nil || expected == nil {
		return actual == nil && expected == nil
	}
	if an, aok := asFloat(actual); aok {
		if en, eok := asFloat(expected); eok {
			return an == en
		}
	}
	if as, ok := actual.(string); ok {
		if es, ok := expected.(string); ok {
			return as == es
		}
	}
	if ab, ok := actual.(bool); ok {
		if eb, ok := expected.(bool); ok {
			return ab == eb
		}
	}
	return fmt.Sprint(actual) == fmt.Sprint(expected)
}

func asFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case float32:
		return float64(typed), true
	case float64:
		return typed, true
	default:
		return 0, false
	}
}
