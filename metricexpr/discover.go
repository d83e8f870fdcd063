package metricexpr

import (
	"context"
	"fmt"
	"time"

	"github.com/nonibytes/metricexpr/internal/logging"
	mxerrors "github.com/nonibytes/metricexpr/metricexpr/errors"
	"github.com/nonibytes/metricexpr/metricexpr/field"
	"github.com/nonibytes/metricexpr/metricexpr/storage"
)

// DiscoverCatalog builds a field catalog from the columns of table.
// Labels are humanized column names and positions follow column order.
func DiscoverCatalog(ctx context.Context, adapter storage.Adapter, table string) (Catalog, error) {
	logger := logging.LoggerFromContext(ctx).With("backend", adapter.Backend(), "table", table)

	if !storage.ValidTableName(table) {
		return nil, mxerrors.Catalog(fmt.Sprintf("invalid table name %q", table))
	}

	start := time.Now()
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, mxerrors.Wrap(mxerrors.KindBackend, "connect", err)
	}
	defer db.Close()
	defer adapter.Close()

	columns, err := adapter.Columns(ctx, db, table)
	if err != nil {
		return nil, mxerrors.Wrap(mxerrors.KindBackend, "list columns", err)
	}
	if len(columns) == 0 {
		return nil, mxerrors.Catalog(fmt.Sprintf("table %q not found or has no columns", table))
	}

	catalog := make(Catalog, 0, len(columns))
	for i, col := range columns {
		catalog = append(catalog, field.Field{
			ID:       int64(i + 1),
			Name:     col.Name,
			Label:    field.HumanizeName(col.Name),
			DataType: storage.DataTypeFor(col.Type),
			Position: col.Position,
		})
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "discovered field catalog",
		"fields", len(catalog), "duration", time.Since(start))
	return catalog, nil
}
