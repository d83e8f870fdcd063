package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/nonibytes/metricexpr/metricexpr/storage"
	"github.com/nonibytes/metricexpr/metricexpr/storage/sqlbuilder"
)

const (
	// DriverModernc is the pure-Go driver registered by modernc.org/sqlite.
	DriverModernc = "sqlite"
	// DriverMattn is the cgo driver registered by github.com/mattn/go-sqlite3.
	DriverMattn = "sqlite3"
)

type Adapter struct {
	Path       string
	DriverName string
}

func New(path string) *Adapter {
	return &Adapter{Path: path, DriverName: DriverModernc}
}

func NewWithDriver(path, driver string) *Adapter {
	return &Adapter{Path: path, DriverName: driver}
}

func (a *Adapter) Backend() storage.Backend {
	return storage.BackendSQLite
}

func (a *Adapter) PlaceholderStyle() sqlbuilder.PlaceholderStyle {
	return sqlbuilder.PlaceholderQuestion
}

func (a *Adapter) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(a.DriverName, a.dsn())
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite database %s", a.Path)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "ping sqlite database %s", a.Path)
	}
	return db, nil
}

// dsn adds a busy timeout using the parameter syntax of the selected driver.
func (a *Adapter) dsn() string {
	sep := "?"
	if strings.Contains(a.Path, "?") {
		sep = "&"
	}
	switch a.DriverName {
	case DriverMattn:
		return a.Path + sep + "_busy_timeout=5000"
	default:
		return a.Path + sep + "_pragma=busy_timeout(5000)"
	}
}

func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) Columns(ctx context.Context, db *sql.DB, table string) ([]storage.Column, error) {
	rows, err := db.QueryContext(ctx, columnsSQL, table)
	if err != nil {
		return nil, errors.Wrapf(err, "list columns of %s", table)
	}
	defer rows.Close()

	var out []storage.Column
	for rows.Next() {
		var c storage.Column
		if err := rows.Scan(&c.Position, &c.Name, &c.Type, &c.NotNull); err != nil {
			return nil, errors.Wrap(err, "scan column")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
