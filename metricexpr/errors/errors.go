package errors

import (
	"fmt"

	crerrors "github.com/cockroachdb/errors"
)

type Kind string

const (
	KindSyntax       Kind = "syntax"
	KindUnknownField Kind = "unknown_field"
	KindTypeMismatch Kind = "type_mismatch"
	KindCatalog      Kind = "catalog"
	KindBackend      Kind = "backend"
	KindIO           Kind = "io"
)

// Error is the single failure value surfaced by metricexpr. Input holds the
// full expression as given by the caller, never a sub-fragment.
type Error struct {
	Kind    Kind
	Input   string
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindSyntax, KindUnknownField:
		return invalidExpression(e.Input)
	case KindTypeMismatch:
		return fmt.Sprintf("%s Field \"%s\" is not numeric.", invalidExpression(e.Input), e.Field)
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Field != "" {
		base = fmt.Sprintf("%s (field=%s)", base, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error { return e.Cause }

// invalidExpression echoes input verbatim; it is not Go-quoted.
func invalidExpression(input string) string {
	return fmt.Sprintf("\"%s\" is not a valid aggregate expression.", input)
}

func Syntax(input string, cause error) *Error {
	return &Error{Kind: KindSyntax, Input: input, Message: "syntax error", Cause: cause}
}

func UnknownField(input, field string) *Error {
	return &Error{Kind: KindUnknownField, Input: input, Field: field, Message: "unknown field"}
}

func TypeMismatch(input, field string) *Error {
	return &Error{Kind: KindTypeMismatch, Input: input, Field: field, Message: "field is not numeric"}
}

func Catalog(msg string) *Error {
	return &Error{Kind: KindCatalog, Message: msg}
}

func CatalogField(field, msg string) *Error {
	return &Error{Kind: KindCatalog, Field: field, Message: msg}
}

func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if crerrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if crerrors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
