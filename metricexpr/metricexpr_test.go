package metricexpr_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonibytes/metricexpr/metricexpr"
	"github.com/nonibytes/metricexpr/metricexpr/expr"
	"github.com/nonibytes/metricexpr/metricexpr/field"
	"github.com/nonibytes/metricexpr/metricexpr/planner"
	"github.com/nonibytes/metricexpr/metricexpr/storage/sqlbuilder"
)

var catalog = metricexpr.Catalog{
	{ID: 1, Name: "revenue", Label: "Revenue", DataType: field.TypeDouble, DatasetID: 1, Position: 1},
	{ID: 2, Name: "cost", Label: "Cost", DataType: field.TypeDouble, DatasetID: 1, Position: 1},
	{ID: 3, Name: "region", Label: "Region", DataType: field.TypeKeyword, DatasetID: 1, Position: 2},
}

func TestParseAndLabel(t *testing.T) {
	node, err := metricexpr.Parse(catalog, "add(ratio(sum:cost,avg:revenue), mult(count,4))")
	require.NoError(t, err)
	assert.Equal(t, "(Total Cost / Average Revenue) + (Count * 4)", metricexpr.Label(node))

	_, err = metricexpr.Parse(catalog, "foo")
	require.Error(t, err)
	assert.True(t, metricexpr.IsKind(err, metricexpr.ErrSyntax))
	assert.Equal(t, `"foo" is not a valid aggregate expression.`, err.Error())
}

func TestDescribe(t *testing.T) {
	desc, err := metricexpr.Describe(catalog, "mult(sub(sum:cost, avg:revenue), ratio(count, 4))", metricexpr.DescribeOptions{
		Table:  "orders",
		Select: planner.SelectOptions{Style: sqlbuilder.PlaceholderDollar},
	})
	require.NoError(t, err)

	assert.Equal(t, "mult(sub(sum:cost,avg:revenue),ratio(count,4))", desc.Canonical)
	assert.Equal(t, "(Total Cost - Average Revenue) * (Count / 4)", desc.Label)
	assert.Equal(t, []string{"cost", "revenue"}, desc.Fields)
	assert.Equal(t, 3, desc.Depth)
	require.NotNil(t, desc.Statement)
	assert.Equal(t,
		`SELECT ((SUM("cost") - AVG("revenue")) * (COUNT(*) * 1.0 / NULLIF($1, 0))) AS "(Total Cost - Average Revenue) * (Count / 4)" FROM "orders"`,
		desc.Statement.SQL)

	b, err := json.Marshal(desc)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"label":"(Total Cost - Average Revenue) * (Count / 4)"`)
}

func TestDescribeWithoutTable(t *testing.T) {
	desc, err := metricexpr.Describe(catalog, "count", metricexpr.DescribeOptions{})
	require.NoError(t, err)
	assert.Nil(t, desc.Statement)
	assert.Empty(t, desc.Fields)
}

func TestDescribeNodeMatchesDescribe(t *testing.T) {
	const input = "ratio(sum:cost, count)"
	opts := metricexpr.DescribeOptions{Table: "orders"}

	want, err := metricexpr.Describe(catalog, input, opts)
	require.NoError(t, err)

	got, err := metricexpr.DescribeNode(input, expr.MustParse(catalog, input), opts)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, input, got.Expression)
}

func TestDescribeStrict(t *testing.T) {
	_, err := metricexpr.Describe(catalog, "avg:region", metricexpr.DescribeOptions{
		Parse: []expr.Option{expr.RequireNumeric()},
	})
	assert.True(t, metricexpr.IsKind(err, metricexpr.ErrTypeMismatch))
}

func TestConcurrentParsingSharesCatalog(t *testing.T) {
	const input = "ratio(sub(sum:revenue,min:cost),ratio(count,sum:revenue))"
	want := metricexpr.Label(expr.MustParse(catalog, input))

	var wg sync.WaitGroup
	labels := make([]string, 32)
	for i := range labels {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			node, err := metricexpr.Parse(catalog, input)
			if err == nil {
				labels[i] = metricexpr.Label(node)
			}
		}(i)
	}
	wg.Wait()

	for _, got := range labels {
		assert.Equal(t, want, got)
	}
}
