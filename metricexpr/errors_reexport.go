package metricexpr

import mxerrors "github.com/nonibytes/metricexpr/metricexpr/errors"

type Error = mxerrors.Error
type ErrorKind = mxerrors.Kind

const (
	ErrSyntax       = mxerrors.KindSyntax
	ErrUnknownField = mxerrors.KindUnknownField
	ErrTypeMismatch = mxerrors.KindTypeMismatch
	ErrCatalog      = mxerrors.KindCatalog
	ErrBackend      = mxerrors.KindBackend
	ErrIO           = mxerrors.KindIO
)

func IsKind(err error, kind ErrorKind) bool { return mxerrors.IsKind(err, kind) }
