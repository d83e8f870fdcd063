package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mxerrors "github.com/nonibytes/metricexpr/metricexpr/errors"
	"github.com/nonibytes/metricexpr/metricexpr/field"
)

var (
	revenue = field.Field{ID: 1, Name: "revenue", Label: "Revenue", DataType: field.TypeDouble, DatasetID: 1, Position: 1}
	cost    = field.Field{ID: 2, Name: "cost", Label: "Cost", DataType: field.TypeDouble, DatasetID: 1, Position: 1}
	cost2   = field.Field{ID: 3, Name: "cost2", Label: "Cost 2", DataType: field.TypeDouble, DatasetID: 4, Position: 4}
	region  = field.Field{ID: 4, Name: "region", Label: "Region", DataType: field.TypeKeyword, DatasetID: 1, Position: 2}

	datasetFields = field.Catalog{revenue, cost}
)

func agg(fn AggregateFn, f field.Field) FieldAggregate {
	return FieldAggregate{Fn: fn, Field: f}
}

var count = FieldAggregate{Fn: Count}

func TestParseSimpleExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected Node
	}{
		{"count", count},
		{"sum:cost", agg(Sum, cost)},
		{"avg:revenue", agg(Avg, revenue)},
		{"max:cost", agg(Max, cost)},
		{"min:revenue", agg(Min, revenue)},
		{"value_count:cost", agg(ValueCount, cost)},
		{"cardinality:revenue", agg(Cardinality, revenue)},
		{"  sum:cost  ", agg(Sum, cost)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := Parse(datasetFields, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, node)
		})
	}
}

func TestParseSimpleCalculations(t *testing.T) {
	tests := []struct {
		input string
		fn    CalculationFn
	}{
		{"ratio(sum:cost,count)", Ratio},
		{"mult(sum:cost,count)", Mult},
		{"add(sum:cost,count)", Add},
		{"sub(sum:cost,count)", Sub},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := Parse(datasetFields, tt.input)
			require.NoError(t, err)
			calc, ok := node.(Calculation)
			require.True(t, ok, "expected Calculation, got %T", node)
			assert.Equal(t, tt.fn, calc.Fn)
			assert.Equal(t, tt.fn.String(), tt.input[:len(tt.fn.String())])
			assert.Equal(t, agg(Sum, cost), calc.LHS)
			assert.Equal(t, count, calc.RHS)
		})
	}
}

func TestParseCalculationsWithConstants(t *testing.T) {
	maxCost := agg(Max, cost)
	tests := []struct {
		input    string
		expected Calculation
	}{
		{"ratio(max:cost,35)", Calculation{Fn: Ratio, LHS: maxCost, RHS: Constant{35}}},
		{"mult(3, max:cost)", Calculation{Fn: Mult, LHS: Constant{3}, RHS: maxCost}},
		{"add(max:cost,0.46)", Calculation{Fn: Add, LHS: maxCost, RHS: Constant{0.46}}},
		{"sub(1000.25, max:cost)", Calculation{Fn: Sub, LHS: Constant{1000.25}, RHS: maxCost}},
		{"sub(-2, max:cost)", Calculation{Fn: Sub, LHS: Constant{-2}, RHS: maxCost}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := Parse(datasetFields, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, node)
		})
	}
}

func TestParseNestedCalculations(t *testing.T) {
	sum := MustParse(datasetFields, "sum:revenue")
	minCost := MustParse(datasetFields, "min:cost")
	ratio := MustParse(datasetFields, "ratio(count,sum:revenue)")

	t.Run("constant times ratio", func(t *testing.T) {
		node, err := Parse(datasetFields, "mult(3,ratio(count,sum:revenue))")
		require.NoError(t, err)
		mult := node.(Calculation)
		assert.Equal(t, Mult, mult.Fn)
		assert.Equal(t, Constant{3}, mult.LHS)
		assert.Equal(t, ratio, mult.RHS)

		rhs := mult.RHS.(Calculation)
		assert.Equal(t, Ratio, rhs.Fn)
		assert.Equal(t, count, rhs.LHS)
		assert.Equal(t, sum, rhs.RHS)
	})

	t.Run("calculation on both sides", func(t *testing.T) {
		node, err := Parse(datasetFields, "ratio(sub(sum:revenue,min:cost),ratio(count,sum:revenue))")
		require.NoError(t, err)
		outer := node.(Calculation)
		assert.Equal(t, Ratio, outer.Fn)
		assert.Equal(t, Calculation{Fn: Sub, LHS: sum, RHS: minCost}, outer.LHS)
		assert.Equal(t, ratio, outer.RHS)
	})

	t.Run("repeated operands", func(t *testing.T) {
		node, err := Parse(datasetFields, "add(ratio(count,2),ratio(count,2))")
		require.NoError(t, err)
		half := Calculation{Fn: Ratio, LHS: count, RHS: Constant{2}}
		assert.Equal(t, Calculation{Fn: Add, LHS: half, RHS: half}, node)
	})

	t.Run("deep nesting with whitespace", func(t *testing.T) {
		node, err := Parse(datasetFields, " add( sub( mult(2, sum:cost) , 1 ) , ratio( max:revenue , min:cost ) ) ")
		require.NoError(t, err)
		assert.Equal(t, Calculation{
			Fn: Add,
			LHS: Calculation{
				Fn:  Sub,
				LHS: Calculation{Fn: Mult, LHS: Constant{2}, RHS: agg(Sum, cost)},
				RHS: Constant{1},
			},
			RHS: Calculation{Fn: Ratio, LHS: agg(Max, revenue), RHS: agg(Min, cost)},
		}, node)
		assert.Equal(t, 4, Depth(node))
	})
}

func TestParseIsNotCommutative(t *testing.T) {
	ab := MustParse(datasetFields, "sub(sum:cost,sum:revenue)")
	ba := MustParse(datasetFields, "sub(sum:revenue,sum:cost)")
	assert.NotEqual(t, ab, ba)
}

func TestParseIsDeterministic(t *testing.T) {
	const input = "ratio(sub(sum:revenue,min:cost),ratio(count,sum:revenue))"
	assert.Equal(t, MustParse(datasetFields, input), MustParse(datasetFields, input))
}

func TestParsedTreesAreComparable(t *testing.T) {
	for _, input := range []string{"count", "sum:cost", "ratio(sum:cost,count)", "mult(3,ratio(count,sum:revenue))"} {
		a := MustParse(datasetFields, input)
		b := MustParse(datasetFields, input)
		assert.True(t, a == b, input)
	}
	assert.False(t, MustParse(datasetFields, "sum:cost") == MustParse(datasetFields, "avg:cost"))
}

func TestParseFieldNameWithDigits(t *testing.T) {
	node, err := Parse(field.Catalog{cost2}, "sum:cost2")
	require.NoError(t, err)
	assert.Equal(t, agg(Sum, cost2), node)
}

func TestParseDoesNotAliasCatalog(t *testing.T) {
	catalog := field.Catalog{cost}
	node := MustParse(catalog, "sum:cost")
	catalog[0].Label = "Changed"
	assert.Equal(t, "Cost", node.(FieldAggregate).Field.Label)
}

func TestParseInvalidExpressions(t *testing.T) {
	tests := []struct {
		input string
		kind  mxerrors.Kind
	}{
		{"foo", mxerrors.KindSyntax},
		{"", mxerrors.KindSyntax},
		{"   ", mxerrors.KindSyntax},
		{"COUNT", mxerrors.KindSyntax},
		{"Sum:cost", mxerrors.KindSyntax},
		{"sum", mxerrors.KindSyntax},
		{"sum:", mxerrors.KindSyntax},
		{"count:cost", mxerrors.KindSyntax},
		{"ratio", mxerrors.KindSyntax},
		{"ratio(count)", mxerrors.KindSyntax},
		{"ratio(count,1", mxerrors.KindSyntax},
		{"ratio(count,1,2)", mxerrors.KindSyntax},
		{"ratio(count,1))", mxerrors.KindSyntax},
		{"pow(count,2)", mxerrors.KindSyntax},
		{"sum:cost count", mxerrors.KindSyntax},
		{"sum:cost$", mxerrors.KindSyntax},
		{"Inf", mxerrors.KindSyntax},
		{"sum:bogus", mxerrors.KindUnknownField},
		{"sum:Cost", mxerrors.KindUnknownField},
		{"add(count, ratio(sum:cost, avg:missing))", mxerrors.KindUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := Parse(datasetFields, tt.input)
			require.Error(t, err)
			assert.Nil(t, node)
			assert.True(t, mxerrors.IsKind(err, tt.kind), "got %v", err)

			var e *mxerrors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.input, e.Input)
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse(datasetFields, "foo")
	require.Error(t, err)
	assert.Equal(t, `"foo" is not a valid aggregate expression.`, err.Error())

	_, err = Parse(datasetFields, "mult(3, ratio(count, foo))")
	require.Error(t, err)
	assert.Equal(t, `"mult(3, ratio(count, foo))" is not a valid aggregate expression.`, err.Error())

	// The input is echoed as given, quotes and control characters included.
	_, err = Parse(datasetFields, `sum:"cost"`)
	require.Error(t, err)
	assert.Equal(t, `"sum:"cost"" is not a valid aggregate expression.`, err.Error())

	_, err = Parse(datasetFields, "\tfoo\n")
	require.Error(t, err)
	assert.Equal(t, "\"\tfoo\n\" is not a valid aggregate expression.", err.Error())

	_, err = Parse(datasetFields, "sum:bogus")
	require.Error(t, err)
	var e *mxerrors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "bogus", e.Field)
}

func TestParseEmptyCatalog(t *testing.T) {
	node, err := Parse(nil, "ratio(count, 2)")
	require.NoError(t, err)
	assert.Equal(t, Calculation{Fn: Ratio, LHS: count, RHS: Constant{2}}, node)

	_, err = Parse(nil, "sum:cost")
	assert.True(t, mxerrors.IsKind(err, mxerrors.KindUnknownField))
}

func TestParseRequireNumeric(t *testing.T) {
	catalog := field.Catalog{cost, region}

	// Permissive by default.
	_, err := Parse(catalog, "sum:region")
	require.NoError(t, err)

	_, err = Parse(catalog, "add(count, sum:region)", RequireNumeric())
	require.Error(t, err)
	assert.True(t, mxerrors.IsKind(err, mxerrors.KindTypeMismatch))
	assert.Equal(t, `"add(count, sum:region)" is not a valid aggregate expression. Field "region" is not numeric.`, err.Error())

	for _, input := range []string{"cardinality:region", "value_count:region", "sum:cost"} {
		_, err := Parse(catalog, input, RequireNumeric())
		assert.NoError(t, err, input)
	}
}
