package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/nonibytes/metricexpr/internal/cli/commands"
	"github.com/nonibytes/metricexpr/internal/cliopt"
	"github.com/nonibytes/metricexpr/internal/logging"
)

// Execute runs the CLI and returns an exit code.
func Execute(argv []string, stdout, stderr io.Writer) int {
	globalFS := flag.NewFlagSet("metricexpr", flag.ContinueOnError)
	globalFS.SetOutput(stderr)
	g := cliopt.DefaultGlobalOptions()
	cliopt.BindGlobalFlags(globalFS, &g)

	if err := globalFS.Parse(argv); err != nil {
		// flag package already printed the error
		return 2
	}

	args := globalFS.Args()
	if len(args) == 0 {
		PrintRootHelp(stdout)
		return 0
	}

	logger := logging.New(stderr, g.LogFormat, g.LogLevel)
	ctx := logging.StoreLoggerInContext(context.Background(), logger)
	streams := commands.IO{Stdout: stdout, Stderr: stderr}

	verb := args[0]
	rest := args[1:]

	switch verb {
	case "--help", "-h", "help":
		PrintRootHelp(stdout)
		return 0
	case "parse":
		return commands.RunParse(ctx, g, streams, rest)
	case "label":
		return commands.RunLabel(ctx, g, streams, rest)
	case "sql":
		return commands.RunSQL(ctx, g, streams, rest)
	case "fields":
		return commands.RunFields(ctx, g, streams, rest)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n\n", verb)
		PrintRootHelp(stderr)
		return 2
	}
}
