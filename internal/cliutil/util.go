package cliutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nonibytes/metricexpr/internal/cliopt"
	"github.com/nonibytes/metricexpr/metricexpr"
	"github.com/nonibytes/metricexpr/metricexpr/expr"
	"github.com/nonibytes/metricexpr/metricexpr/field"
	"github.com/nonibytes/metricexpr/metricexpr/storage"
	"github.com/nonibytes/metricexpr/metricexpr/storage/postgres"
	"github.com/nonibytes/metricexpr/metricexpr/storage/sqlite"
	"github.com/nonibytes/metricexpr/metricexpr/storage/sqlbuilder"
)

type OutputFormat string

const (
	FormatPretty OutputFormat = "pretty"
	FormatJSON   OutputFormat = "json"
	FormatHTML   OutputFormat = "html"
)

func ParseOutputFormat(s string) OutputFormat {
	switch OutputFormat(s) {
	case FormatPretty, FormatJSON, FormatHTML:
		return OutputFormat(s)
	default:
		return FormatPretty
	}
}

func PrintJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// CreateAdapter picks the storage adapter named by --backend.
func CreateAdapter(g cliopt.GlobalOptions) storage.Adapter {
	switch strings.ToLower(g.Backend) {
	case "postgres", "pg":
		return postgres.New(g.PostgresDSN, g.PgSchema)
	default:
		return sqlite.NewWithDriver(g.SQLitePath, g.SQLiteDriver)
	}
}

// PlaceholderStyle is the bind style of the configured backend.
func PlaceholderStyle(g cliopt.GlobalOptions) sqlbuilder.PlaceholderStyle {
	return CreateAdapter(g).PlaceholderStyle()
}

// LoadCatalog reads --catalog when set, otherwise discovers --table from the backend.
func LoadCatalog(ctx context.Context, g cliopt.GlobalOptions) (field.Catalog, error) {
	if g.Catalog != "" {
		return field.Load(g.Catalog)
	}
	if g.Table == "" {
		return nil, fmt.Errorf("no field catalog: pass --catalog <file> or --table <name>")
	}
	return metricexpr.DiscoverCatalog(ctx, CreateAdapter(g), g.Table)
}

func ParseOptions(g cliopt.GlobalOptions) []expr.Option {
	if g.Strict {
		return []expr.Option{expr.RequireNumeric()}
	}
	return nil
}

// ExpressionArg joins positional arguments so unquoted "add(count, 2)" works.
func ExpressionArg(args []string) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	return strings.Join(args, " "), true
}
