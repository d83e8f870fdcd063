package planner

import (
	"fmt"
	"strings"

	"github.com/nonibytes/metricexpr/metricexpr/expr"
	"github.com/nonibytes/metricexpr/metricexpr/storage"
	"github.com/nonibytes/metricexpr/metricexpr/storage/sqlbuilder"
)

// SelectOptions controls BuildSelect.
type SelectOptions struct {
	Style   sqlbuilder.PlaceholderStyle
	Alias   string   // defaults to "value"
	GroupBy []string // plain column names
}

// Statement is a ready-to-run query. It is never executed here.
type Statement struct {
	SQL          string   `json:"sql"`
	Args         []any    `json:"args"`
	Columns      []string `json:"columns"`
	ExplainSteps []string `json:"explain,omitempty"`
}

// BuildSelect wraps the compiled projection of node in a SELECT over table.
func BuildSelect(table string, node expr.Node, opts SelectOptions) (*Statement, error) {
	if !storage.ValidTableName(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	for _, col := range opts.GroupBy {
		if !storage.ValidTableName(col) {
			return nil, fmt.Errorf("invalid group by column %q", col)
		}
	}

	builder := sqlbuilder.New(opts.Style)
	compiled, err := Compile(node, builder)
	if err != nil {
		return nil, err
	}

	alias := opts.Alias
	if alias == "" {
		alias = "value"
	}

	var selectCols []string
	for _, col := range opts.GroupBy {
		selectCols = append(selectCols, sqlbuilder.QuoteIdent(col))
	}
	selectCols = append(selectCols, fmt.Sprintf("%s AS %s", compiled.SQL, sqlbuilder.QuoteIdent(alias)))

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(selectCols, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(sqlbuilder.QuoteIdent(table))
	if len(opts.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(selectCols[:len(opts.GroupBy)], ", "))
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(selectCols[:len(opts.GroupBy)], ", "))
	}

	return &Statement{
		SQL:          sb.String(),
		Args:         builder.Args(),
		Columns:      compiled.Columns,
		ExplainSteps: compiled.ExplainSteps,
	}, nil
}
