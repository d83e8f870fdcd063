package field

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mxerrors "github.com/nonibytes/metricexpr/metricexpr/errors"
)

var testCatalog = Catalog{
	{ID: 1, Name: "revenue", Label: "Revenue", DataType: TypeDouble, DatasetID: 1, Position: 1},
	{ID: 2, Name: "cost", Label: "Cost", DataType: TypeDouble, DatasetID: 1, Position: 1},
	{ID: 3, Name: "region", Label: "Region", DataType: TypeKeyword, DatasetID: 1, Position: 2},
}

func TestLookup(t *testing.T) {
	f, ok := testCatalog.Lookup("cost")
	require.True(t, ok)
	assert.Equal(t, int64(2), f.ID)

	_, ok = testCatalog.Lookup("Cost")
	assert.False(t, ok, "lookup is case-sensitive")

	_, ok = Catalog(nil).Lookup("cost")
	assert.False(t, ok)
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		dataType DataType
		expected bool
	}{
		{TypeDouble, true},
		{TypeLong, true},
		{TypeScaledFloat, true},
		{TypeKeyword, false},
		{TypeDate, false},
		{TypeBoolean, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.dataType), func(t *testing.T) {
			assert.Equal(t, tt.expected, Field{DataType: tt.dataType}.IsNumeric())
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		field   string
	}{
		{
			name:    "empty catalog",
			catalog: Catalog{},
		},
		{
			name: "duplicate name",
			catalog: Catalog{
				{Name: "cost", DataType: TypeDouble},
				{Name: "cost", DataType: TypeLong},
			},
			field: "cost",
		},
		{
			name:    "invalid name",
			catalog: Catalog{{Name: "2cost", DataType: TypeDouble}},
			field:   "2cost",
		},
		{
			name:    "unknown data type",
			catalog: Catalog{{Name: "cost", DataType: "money"}},
			field:   "cost",
		},
		{
			name:    "missing data type",
			catalog: Catalog{{Name: "cost"}},
			field:   "cost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			require.Error(t, err)
			assert.True(t, mxerrors.IsKind(err, mxerrors.KindCatalog))
			var e *mxerrors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.field, e.Field)
		})
	}

	assert.NoError(t, testCatalog.Validate())
}

func TestDecodeJSON(t *testing.T) {
	c, err := DecodeJSON([]byte(`[
		{"id": 1, "name": "unit_cost", "dataType": "double", "position": 0},
		{"id": 2, "name": "region", "label": "Sales Region", "dataType": "keyword", "position": 1}
	]`))
	require.NoError(t, err)
	require.Len(t, c, 2)
	assert.Equal(t, "Unit Cost", c[0].Label)
	assert.Equal(t, "Sales Region", c[1].Label)

	wrapped, err := DecodeJSON([]byte(`{"fields": [{"name": "cost", "label": "Cost", "dataType": "double"}]}`))
	require.NoError(t, err)
	assert.Equal(t, Catalog{{Name: "cost", Label: "Cost", DataType: TypeDouble}}, wrapped)

	_, err = DecodeJSON([]byte(`{"fields": [`))
	assert.True(t, mxerrors.IsKind(err, mxerrors.KindCatalog))
}

func TestDecodeYAML(t *testing.T) {
	c, err := DecodeYAML([]byte(`
fields:
  - id: 1
    name: revenue
    label: Revenue
    dataType: double
  - id: 2
    name: cost2
    dataType: long
    position: 4
`))
	require.NoError(t, err)
	require.Len(t, c, 2)
	assert.Equal(t, "Revenue", c[0].Label)
	assert.Equal(t, "Cost2", c[1].Label)
	assert.Equal(t, 4, c[1].Position)

	list, err := DecodeYAML([]byte("- name: cost\n  dataType: double\n"))
	require.NoError(t, err)
	assert.Equal(t, "cost", list[0].Name)
}

func TestLoadRoundTrip(t *testing.T) {
	b, err := EncodeJSON(testCatalog)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, testCatalog, c)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, mxerrors.IsKind(err, mxerrors.KindIO))
}

func TestHumanizeName(t *testing.T) {
	assert.Equal(t, "Unit Cost", HumanizeName("unit_cost"))
	assert.Equal(t, "Revenue", HumanizeName("revenue"))
	assert.Equal(t, "Order Total Net", HumanizeName("order.total-net"))
	assert.Equal(t, "__", HumanizeName("__"))
}
