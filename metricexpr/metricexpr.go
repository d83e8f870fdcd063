// Package metricexpr parses aggregate expressions such as
// "ratio(sum:cost,count)" against a field catalog and names them for
// humans ("Total Cost / Count").
//
// Parsing and labelling are pure: they read the catalog, never write it,
// and are safe to call concurrently.
package metricexpr

import (
	"github.com/nonibytes/metricexpr/metricexpr/expr"
	"github.com/nonibytes/metricexpr/metricexpr/field"
	"github.com/nonibytes/metricexpr/metricexpr/planner"
)

type (
	Node    = expr.Node
	Field   = field.Field
	Catalog = field.Catalog
)

// Parse parses input against catalog. See expr.Parse.
func Parse(catalog Catalog, input string, opts ...expr.Option) (Node, error) {
	return expr.Parse(catalog, input, opts...)
}

// Label renders node as a human-readable title. See expr.Label.
func Label(node Node) string {
	return expr.Label(node)
}

// Description is everything the reporting layer needs about one metric.
type Description struct {
	Expression string   `json:"expression"`
	Canonical  string   `json:"canonical"`
	Label      string   `json:"label"`
	Fields     []string `json:"fields"`
	Depth      int      `json:"depth"`

	Statement *planner.Statement `json:"statement,omitempty"`
}

// DescribeOptions controls Describe. Table is optional; without it no SQL is built.
type DescribeOptions struct {
	Parse  []expr.Option
	Table  string
	Select planner.SelectOptions
}

// Describe parses input and gathers its label, canonical form, referenced
// fields and, when a table is given, the SQL that would compute it.
func Describe(catalog Catalog, input string, opts DescribeOptions) (*Description, error) {
	node, err := expr.Parse(catalog, input, opts.Parse...)
	if err != nil {
		return nil, err
	}
	return DescribeNode(input, node, opts)
}

// DescribeNode is Describe for an expression the caller already parsed.
// opts.Parse is ignored.
func DescribeNode(input string, node Node, opts DescribeOptions) (*Description, error) {
	d := &Description{
		Expression: input,
		Canonical:  expr.String(node),
		Label:      expr.Label(node),
		Fields:     field.Catalog(expr.Fields(node)).Names(),
		Depth:      expr.Depth(node),
	}

	if opts.Table != "" {
		sel := opts.Select
		if sel.Alias == "" {
			sel.Alias = d.Label
		}
		stmt, err := planner.BuildSelect(opts.Table, node, sel)
		if err != nil {
			return nil, err
		}
		d.Statement = stmt
	}
	return d, nil
}
