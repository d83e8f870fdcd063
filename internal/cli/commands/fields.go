package commands

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/nonibytes/metricexpr/internal/cliopt"
	"github.com/nonibytes/metricexpr/internal/cliutil"
	"github.com/nonibytes/metricexpr/metricexpr/field"
)

func RunFields(ctx context.Context, g cliopt.GlobalOptions, streams IO, argv []string) int {
	fs := flag.NewFlagSet("fields", flag.ContinueOnError)
	fs.SetOutput(streams.Stderr)
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	catalog, err := cliutil.LoadCatalog(ctx, g)
	if err != nil {
		fmt.Fprintln(streams.Stderr, err)
		return 1
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		b, err := field.EncodeJSON(catalog)
		if err != nil {
			fmt.Fprintln(streams.Stderr, err)
			return 1
		}
		fmt.Fprintln(streams.Stdout, string(b))
		return 0
	}

	tw := tabwriter.NewWriter(streams.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLABEL\tTYPE\tNUMERIC")
	for _, f := range catalog {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", f.Name, f.DisplayLabel(), f.DataType, f.IsNumeric())
	}
	_ = tw.Flush()
	return 0
}
