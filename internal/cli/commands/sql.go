package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/nonibytes/metricexpr/internal/cliopt"
	"github.com/nonibytes/metricexpr/internal/cliutil"
	"github.com/nonibytes/metricexpr/metricexpr/expr"
	"github.com/nonibytes/metricexpr/metricexpr/planner"
)

func RunSQL(ctx context.Context, g cliopt.GlobalOptions, streams IO, argv []string) int {
	fs := flag.NewFlagSet("sql", flag.ContinueOnError)
	fs.SetOutput(streams.Stderr)
	var groupBy, alias string
	var explain bool
	fs.StringVar(&groupBy, "group-by", "", "comma-separated columns to group by")
	fs.StringVar(&alias, "alias", "", "result column name (default: the label)")
	fs.BoolVar(&explain, "explain", false, "print compilation steps")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if g.Table == "" {
		fmt.Fprintln(streams.Stderr, "missing --table")
		return 2
	}

	node, code := parseExpression(ctx, g, streams, fs.Args())
	if node == nil {
		return code
	}

	opts := planner.SelectOptions{
		Style: cliutil.PlaceholderStyle(g),
		Alias: alias,
	}
	if opts.Alias == "" {
		opts.Alias = expr.Label(node)
	}
	for _, col := range strings.Split(groupBy, ",") {
		if col = strings.TrimSpace(col); col != "" {
			opts.GroupBy = append(opts.GroupBy, col)
		}
	}

	stmt, err := planner.BuildSelect(g.Table, node, opts)
	if err != nil {
		fmt.Fprintln(streams.Stderr, err)
		return 1
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(streams.Stdout, stmt)
		return 0
	}

	fmt.Fprintln(streams.Stdout, stmt.SQL)
	for i, arg := range stmt.Args {
		fmt.Fprintf(streams.Stdout, "-- arg %d: %v\n", i+1, arg)
	}
	if explain {
		for _, step := range stmt.ExplainSteps {
			fmt.Fprintf(streams.Stdout, "-- %s\n", step)
		}
	}
	return 0
}
