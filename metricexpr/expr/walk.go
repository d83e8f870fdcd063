package expr

import (
	"fmt"
	"strings"

	"github.com/nonibytes/metricexpr/metricexpr/field"
)

// String renders node back into expression syntax. Parsing the result with
// the same catalog yields a tree equal to node.
func String(node Node) string {
	var sb strings.Builder
	writeExpr(&sb, node)
	return sb.String()
}

func writeExpr(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case Constant:
		sb.WriteString(formatNumber(n.Value))
	case FieldAggregate:
		sb.WriteString(n.Fn.String())
		if n.Fn.RequiresField() {
			sb.WriteByte(':')
			sb.WriteString(n.Field.Name)
		}
	case Calculation:
		sb.WriteString(n.Fn.String())
		sb.WriteByte('(')
		writeExpr(sb, n.LHS)
		sb.WriteByte(',')
		writeExpr(sb, n.RHS)
		sb.WriteByte(')')
	default:
		panic(fmt.Sprintf("expr: unexpected node %T", node))
	}
}

// Walk visits node and its descendants in pre-order, left before right.
// Returning false from fn skips the children of the current node.
func Walk(node Node, fn func(Node) bool) {
	if !fn(node) {
		return
	}
	if c, ok := node.(Calculation); ok {
		Walk(c.LHS, fn)
		Walk(c.RHS, fn)
	}
}

// Fields returns the distinct fields referenced by node, in order of first appearance.
func Fields(node Node) []field.Field {
	var out []field.Field
	seen := make(map[string]bool)
	Walk(node, func(n Node) bool {
		if agg, ok := n.(FieldAggregate); ok && agg.Fn.RequiresField() && !seen[agg.Field.Name] {
			seen[agg.Field.Name] = true
			out = append(out, agg.Field)
		}
		return true
	})
	return out
}

// Depth is the number of nodes on the longest root-to-leaf path.
func Depth(node Node) int {
	c, ok := node.(Calculation)
	if !ok {
		return 1
	}
	return 1 + max(Depth(c.LHS), Depth(c.RHS))
}
