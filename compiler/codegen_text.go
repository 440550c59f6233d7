package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// textRun merges adjacent text and interpolation nodes into one string
// expression, e.g. "Count: " + _toDisplayString(count).
func (g *generator) textRun(run []*Node) string {
	parts := make([]string, 0, len(run))
	var literal strings.Builder
	flushLiteral := func() {
		if literal.Len() > 0 {
			parts = append(parts, strconv.Quote(literal.String()))
			literal.Reset()
		}
	}
	for _, n := range run {
		if n.Kind == TextNode {
			literal.WriteString(n.Data)
			continue
		}
		flushLiteral()
		parts = append(parts, g.interpolation(n))
	}
	flushLiteral()
	if len(parts) == 0 {
		return `""`
	}
	return strings.Join(parts, " + ")
}

// interpolation renders {{ expr }} through ToDisplayString.
func (g *generator) interpolation(n *Node) string {
	return fmt.Sprintf("%s(%s)", g.use(helperToDisplayString), n.Data)
}
