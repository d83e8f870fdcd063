package planner

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nonibytes/metricexpr/metricexpr/expr"
	"github.com/nonibytes/metricexpr/metricexpr/storage/sqlbuilder"
)

// CompileOutput is the SQL projection computing an expression.
type CompileOutput struct {
	SQL          string
	Columns      []string
	ExplainSteps []string
}

// Compiler renders expression trees into SQL aggregate projections.
// Constants become bind arguments on builder.
type Compiler struct {
	builder      *sqlbuilder.Builder
	columns      []string
	seen         map[string]bool
	explainSteps []string
}

// Compile renders node as a single SQL value expression.
func Compile(node expr.Node, builder *sqlbuilder.Builder) (*CompileOutput, error) {
	c := &Compiler{builder: builder, seen: make(map[string]bool)}

	sql, err := c.compileNode(node)
	if err != nil {
		return nil, err
	}

	return &CompileOutput{
		SQL:          sql,
		Columns:      c.columns,
		ExplainSteps: c.explainSteps,
	}, nil
}

func (c *Compiler) compileNode(node expr.Node) (string, error) {
	switch n := node.(type) {
	case expr.Constant:
		// NewFromFloat keeps the shortest decimal that round-trips, i.e. the
		// literal as written for up to 15 significant digits.
		d := decimal.NewFromFloat(n.Value)
		ph := c.builder.Arg(d)
		c.explainSteps = append(c.explainSteps, fmt.Sprintf("CONST %s", d))
		return ph, nil

	case expr.FieldAggregate:
		return c.compileAggregate(n)

	case expr.Calculation:
		lhs, err := c.compileNode(n.LHS)
		if err != nil {
			return "", err
		}
		rhs, err := c.compileNode(n.RHS)
		if err != nil {
			return "", err
		}
		c.explainSteps = append(c.explainSteps, fmt.Sprintf("CALC %s", n.Fn))

		switch n.Fn {
		case expr.Ratio:
			// * 1.0 keeps integer aggregates out of integer division; NULLIF maps x/0 to NULL.
			return fmt.Sprintf("(%s * 1.0 / NULLIF(%s, 0))", lhs, rhs), nil
		case expr.Mult, expr.Add, expr.Sub:
			return fmt.Sprintf("(%s %s %s)", lhs, n.Fn.Operator(), rhs), nil
		default:
			return "", fmt.Errorf("unsupported calculation: %s", n.Fn)
		}

	default:
		return "", fmt.Errorf("unsupported node: %T", node)
	}
}

func (c *Compiler) compileAggregate(n expr.FieldAggregate) (string, error) {
	if n.Fn == expr.Count {
		c.explainSteps = append(c.explainSteps, "AGG count(*)")
		return "COUNT(*)", nil
	}
	if n.Field.Name == "" {
		return "", fmt.Errorf("%s requires a field", n.Fn)
	}

	col := sqlbuilder.QuoteIdent(n.Field.Name)
	if !c.seen[n.Field.Name] {
		c.seen[n.Field.Name] = true
		c.columns = append(c.columns, n.Field.Name)
	}
	c.explainSteps = append(c.explainSteps, fmt.Sprintf("AGG %s(%s)", n.Fn, n.Field.Name))

	switch n.Fn {
	case expr.Sum:
		return "SUM(" + col + ")", nil
	case expr.Avg:
		return "AVG(" + col + ")", nil
	case expr.Max:
		return "MAX(" + col + ")", nil
	case expr.Min:
		return "MIN(" + col + ")", nil
	case expr.ValueCount:
		return "COUNT(" + col + ")", nil
	case expr.Cardinality:
		return "COUNT(DISTINCT " + col + ")", nil
	default:
		return "", fmt.Errorf("unsupported aggregate: %s", n.Fn)
	}
}
