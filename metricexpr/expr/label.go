package expr

import (
	"fmt"
	"math"
	"strconv"

	"github.com/google/safehtml"
)

var aggregatePhrases = [...]string{
	Sum:         "Total %s",
	Avg:         "Average %s",
	Max:         "Maximum %s",
	Min:         "Minimum %s",
	ValueCount:  "Count of %s",
	Cardinality: "Distinct %s",
}

const countPhrase = "Count"

// Label renders node as a chart axis title, e.g. "(Total Cost / Count) * 100".
// Calculation operands are parenthesized; leaves never are.
func Label(node Node) string {
	switch n := node.(type) {
	case Constant:
		return formatNumber(n.Value)
	case FieldAggregate:
		return aggregateLabel(n)
	case Calculation:
		return operandLabel(n.LHS) + " " + n.Fn.Operator() + " " + operandLabel(n.RHS)
	default:
		panic(fmt.Sprintf("expr: unexpected node %T", node))
	}
}

// LabelHTML is Label escaped for direct inclusion in an HTML page.
func LabelHTML(node Node) safehtml.HTML {
	return safehtml.HTMLEscaped(Label(node))
}

func operandLabel(node Node) string {
	if _, ok := node.(Calculation); ok {
		return "(" + Label(node) + ")"
	}
	return Label(node)
}

func aggregateLabel(n FieldAggregate) string {
	if !n.Fn.RequiresField() {
		return countPhrase
	}
	return fmt.Sprintf(aggregatePhrases[n.Fn], n.Field.DisplayLabel())
}

// formatNumber prints plain decimals, switching to exponent form outside
// [1e-6, 1e21) so "1e300" does not become a 301-digit label.
func formatNumber(v float64) string {
	if a := math.Abs(v); a != 0 && (a < 1e-6 || a >= 1e21) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
