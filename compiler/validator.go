package compiler

import (
	"fmt"
	"go/ast"
	"go/parser"
	"regexp"
	"strings"
)

var (
	reLoop       = regexp.MustCompile(`^\s*(?:\(\s*([A-Za-z_]\w*)\s*(?:,\s*([A-Za-z_]\w*)\s*)?\)|([A-Za-z_]\w*))\s+(?:in|of)\s+(.+?)\s*$`)
	reMemberPath = regexp.MustCompile(`^[A-Za-z_]\w*(\.[A-Za-z_]\w*)*$`)
	reEventArg   = regexp.MustCompile(`\$event\b`)
)

// validateExpression checks that a template expression is a Go expression.
func validateExpression(expr, directive string) error {
	if strings.TrimSpace(expr) == "" {
		return fmt.Errorf("%s expects an expression", directive)
	}
	if _, err := parser.ParseExpr(expr); err != nil {
		return fmt.Errorf("invalid expression in %s=%q: %v", directive, expr, err)
	}
	return nil
}

// parseLoop parses the value of v-for: "item in src", "(item, index) in src"
// ("of" is accepted in place of "in").
func parseLoop(value string) (*LoopBinding, error) {
	m := reLoop.FindStringSubmatch(value)
	if m == nil {
		return nil, fmt.Errorf("invalid v-for expression %q: expected \"item in source\" or \"(item, index) in source\"", value)
	}
	loop := &LoopBinding{Item: m[1], Index: m[2], Source: m[4]}
	if loop.Item == "" {
		loop.Item = m[3]
	}
	if loop.Item == loop.Index {
		return nil, fmt.Errorf("invalid v-for expression %q: item and index must have different names", value)
	}
	if err := validateExpression(loop.Source, "v-for"); err != nil {
		return nil, err
	}
	return loop, nil
}

// validateAssignable checks that a v-model target can be assigned to.
func validateAssignable(expr string) error {
	e, err := parser.ParseExpr(expr)
	if err != nil {
		return fmt.Errorf("invalid expression in v-model=%q: %v", expr, err)
	}
	for {
		p, ok := e.(*ast.ParenExpr)
		if !ok {
			break
		}
		e = p.X
	}
	switch e.(type) {
	case *ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.StarExpr:
		return nil
	}
	return fmt.Errorf("v-model=%q is not assignable", expr)
}

// normalizeHandler turns an event handler value into a Go expression.
// Member paths and function literals are used as they are; anything else is
// treated as inline statements and wrapped in a function literal, which
// receives the event as "event" when the statements mention $event.
func normalizeHandler(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("event handler expects an expression")
	}
	if reMemberPath.MatchString(v) {
		return v, nil
	}
	if strings.HasPrefix(v, "func") {
		if _, err := parser.ParseExpr(v); err == nil {
			return v, nil
		}
	}
	var code string
	if reEventArg.MatchString(v) {
		code = "func(event any) { " + reEventArg.ReplaceAllString(v, "event") + " }"
	} else {
		code = "func() { " + v + " }"
	}
	if _, err := parser.ParseExpr(code); err != nil {
		return "", fmt.Errorf("invalid event handler %q: %v", value, err)
	}
	return code, nil
}

// isBooleanAttribute checks if an attribute name is a standard HTML boolean attribute.
func isBooleanAttribute(attrName string) bool {
	return standardBooleanAttrs[strings.ToLower(attrName)]
}

// isComponentTag checks if a tag name follows the component naming convention (PascalCase).
func isComponentTag(tagName string) bool {
	if len(tagName) == 0 {
		return false
	}
	return tagName[0] >= 'A' && tagName[0] <= 'Z' || strings.Contains(tagName, "-")
}
