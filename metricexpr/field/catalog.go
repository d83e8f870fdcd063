package field

import (
	"fmt"
	"regexp"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-set/v2"

	mxerrors "github.com/nonibytes/metricexpr/metricexpr/errors"
)

// Catalog is the ordered set of fields an expression may reference.
type Catalog []Field

// Lookup resolves name by exact, case-sensitive equality. The first match wins.
func (c Catalog) Lookup(name string) (Field, bool) {
	for _, f := range c {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (c Catalog) Names() []string {
	out := make([]string, len(c))
	for i, f := range c {
		out[i] = f.Name
	}
	return out
}

var validFieldNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("fieldname", func(fl validator.FieldLevel) bool {
		return validFieldNameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("datatype", func(fl validator.FieldLevel) bool {
		return knownDataType(DataType(fl.Field().String()))
	})
	return v
}

func knownDataType(t DataType) bool {
	switch t {
	case TypeKeyword, TypeText, TypeDate, TypeBoolean:
		return true
	default:
		return t.IsNumeric()
	}
}

// Validate checks catalogs loaded from files or discovered from a backend.
// Catalogs handed directly to the parser are not validated.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return mxerrors.Catalog("catalog must have at least one field")
	}

	seen := set.New[string](len(c))
	for i, f := range c {
		if err := validate.Struct(f); err != nil {
			return fieldValidationError(i, f, err)
		}
		if !seen.Insert(f.Name) {
			return mxerrors.CatalogField(f.Name, "duplicate field name")
		}
	}
	return nil
}

func fieldValidationError(i int, f Field, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return mxerrors.Wrap(mxerrors.KindCatalog, fmt.Sprintf("field #%d", i), err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return mxerrors.CatalogField(f.Name, fmt.Sprintf("field #%d: %s is required", i, fe.Field()))
	case "fieldname":
		return mxerrors.CatalogField(f.Name, fmt.Sprintf("invalid field name %q (must match %s)", f.Name, validFieldNameRe.String()))
	case "datatype":
		return mxerrors.CatalogField(f.Name, fmt.Sprintf("unknown data type %q", f.DataType))
	default:
		return mxerrors.CatalogField(f.Name, fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()))
	}
}
