package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/nonibytes/metricexpr/internal/cliopt"
	"github.com/nonibytes/metricexpr/internal/cliutil"
	"github.com/nonibytes/metricexpr/metricexpr/expr"
)

func RunParse(ctx context.Context, g cliopt.GlobalOptions, streams IO, argv []string) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(streams.Stderr)
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	node, code := parseExpression(ctx, g, streams, fs.Args())
	if node == nil {
		return code
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(streams.Stdout, toView(node))
		return 0
	}
	printTree(streams.Stdout, node, 0)
	return 0
}

// nodeView is the JSON shape of an expression tree.
type nodeView struct {
	Kind  string    `json:"kind"`
	Fn    string    `json:"fn,omitempty"`
	Value *float64  `json:"value,omitempty"`
	Field string    `json:"field,omitempty"`
	Label string    `json:"label"`
	LHS   *nodeView `json:"lhs,omitempty"`
	RHS   *nodeView `json:"rhs,omitempty"`
}

func toView(node expr.Node) *nodeView {
	v := &nodeView{Label: expr.Label(node)}
	switch n := node.(type) {
	case expr.Constant:
		value := n.Value
		v.Kind = "constant"
		v.Value = &value
	case expr.FieldAggregate:
		v.Kind = "aggregate"
		v.Fn = n.Fn.String()
		v.Field = n.Field.Name
	case expr.Calculation:
		v.Kind = "calculation"
		v.Fn = n.Fn.String()
		v.LHS = toView(n.LHS)
		v.RHS = toView(n.RHS)
	}
	return v
}

func printTree(w io.Writer, node expr.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := node.(type) {
	case expr.Calculation:
		fmt.Fprintf(w, "%s%s  [%s]\n", indent, n.Fn, n.Fn.Operator())
		printTree(w, n.LHS, depth+1)
		printTree(w, n.RHS, depth+1)
	default:
		fmt.Fprintf(w, "%s%s  (%s)\n", indent, expr.String(node), expr.Label(node))
	}
}
