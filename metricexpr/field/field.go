package field

// DataType is the storage type of a dataset field.
type DataType string

const (
	TypeDouble      DataType = "double"
	TypeFloat       DataType = "float"
	TypeHalfFloat   DataType = "half_float"
	TypeScaledFloat DataType = "scaled_float"
	TypeLong        DataType = "long"
	TypeInteger     DataType = "integer"
	TypeShort       DataType = "short"
	TypeByte        DataType = "byte"
	TypeKeyword     DataType = "keyword"
	TypeText        DataType = "text"
	TypeDate        DataType = "date"
	TypeBoolean     DataType = "boolean"
)

// IsNumeric reports whether aggregates such as sum and avg are meaningful for t.
func (t DataType) IsNumeric() bool {
	switch t {
	case TypeDouble, TypeFloat, TypeHalfFloat, TypeScaledFloat,
		TypeLong, TypeInteger, TypeShort, TypeByte:
		return true
	default:
		return false
	}
}

// Field describes one column of a dataset. Name is unique within a Catalog;
// Label is what users see on chart axes.
type Field struct {
	ID        int64    `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name" validate:"required,fieldname"`
	Label     string   `json:"label" yaml:"label"`
	DataType  DataType `json:"dataType" yaml:"dataType" validate:"required,datatype"`
	DatasetID int64    `json:"datasetId,omitempty" yaml:"datasetId,omitempty"`
	Position  int      `json:"position" yaml:"position" validate:"gte=0"`
}

func (f Field) IsNumeric() bool {
	return f.DataType.IsNumeric()
}

// DisplayLabel falls back to the humanized name when no label was supplied.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return HumanizeName(f.Name)
}
