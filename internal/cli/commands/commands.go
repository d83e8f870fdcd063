package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/nonibytes/metricexpr/internal/cliopt"
	"github.com/nonibytes/metricexpr/internal/cliutil"
	"github.com/nonibytes/metricexpr/internal/logging"
	"github.com/nonibytes/metricexpr/metricexpr/expr"
)

// IO carries the streams a command writes to.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
}

// parseExpression loads the catalog and parses the positional expression.
// It returns the exit code to use when it fails.
func parseExpression(ctx context.Context, g cliopt.GlobalOptions, streams IO, args []string) (expr.Node, int) {
	input, ok := cliutil.ExpressionArg(args)
	if !ok {
		fmt.Fprintln(streams.Stderr, "missing expression")
		return nil, 2
	}

	catalog, err := cliutil.LoadCatalog(ctx, g)
	if err != nil {
		fmt.Fprintln(streams.Stderr, err)
		return nil, 1
	}

	node, err := expr.Parse(catalog, input, cliutil.ParseOptions(g)...)
	if err != nil {
		logging.LoggerFromContext(ctx).DebugContext(ctx, "parse failed", "input", input, "error", fmt.Sprintf("%+v", err))
		fmt.Fprintln(streams.Stderr, err)
		return nil, 1
	}
	return node, 0
}
