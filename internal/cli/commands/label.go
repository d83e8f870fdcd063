package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/nonibytes/metricexpr/internal/cliopt"
	"github.com/nonibytes/metricexpr/internal/cliutil"
	"github.com/nonibytes/metricexpr/metricexpr"
	"github.com/nonibytes/metricexpr/metricexpr/expr"
)

func RunLabel(ctx context.Context, g cliopt.GlobalOptions, streams IO, argv []string) int {
	fs := flag.NewFlagSet("label", flag.ContinueOnError)
	fs.SetOutput(streams.Stderr)
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	node, code := parseExpression(ctx, g, streams, fs.Args())
	if node == nil {
		return code
	}

	switch cliutil.ParseOutputFormat(g.Format) {
	case cliutil.FormatJSON:
		input, _ := cliutil.ExpressionArg(fs.Args())
		d, err := metricexpr.DescribeNode(input, node, metricexpr.DescribeOptions{})
		if err != nil {
			fmt.Fprintln(streams.Stderr, err)
			return 1
		}
		cliutil.PrintJSON(streams.Stdout, d)
	case cliutil.FormatHTML:
		fmt.Fprintln(streams.Stdout, expr.LabelHTML(node).String())
	default:
		fmt.Fprintln(streams.Stdout, expr.Label(node))
	}
	return 0
}
