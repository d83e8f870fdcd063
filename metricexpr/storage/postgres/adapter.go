package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/nonibytes/metricexpr/metricexpr/storage"
	"github.com/nonibytes/metricexpr/metricexpr/storage/sqlbuilder"
)

const DefaultSchema = "public"

type Adapter struct {
	DSN    string
	Schema string // tables are looked up in this schema
}

func New(dsn, schema string) *Adapter {
	if schema == "" {
		schema = DefaultSchema
	}
	return &Adapter{DSN: dsn, Schema: schema}
}

func (a *Adapter) Backend() storage.Backend { return storage.BackendPostgres }

func (a *Adapter) PlaceholderStyle() sqlbuilder.PlaceholderStyle { return sqlbuilder.PlaceholderDollar }

func (a *Adapter) Close() error { return nil }

var schemaNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (a *Adapter) Connect(ctx context.Context) (*sql.DB, error) {
	if !schemaNameRe.MatchString(a.Schema) {
		return nil, fmt.Errorf("invalid postgres schema name %q (must match %s)", a.Schema, schemaNameRe.String())
	}

	cfg, err := pgx.ParseConfig(a.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "parse postgres DSN")
	}
	if cfg.RuntimeParams == nil {
		cfg.RuntimeParams = make(map[string]string)
	}
	cfg.RuntimeParams["search_path"] = SearchPath(a.Schema)

	db := stdlib.OpenDB(*cfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return db, nil
}

// SearchPath pins schema first and keeps public as a fallback for built-ins.
func SearchPath(schema string) string {
	if schema == DefaultSchema {
		return sqlbuilder.QuoteIdent(schema)
	}
	return fmt.Sprintf("%s,public", sqlbuilder.QuoteIdent(schema))
}

func (a *Adapter) Columns(ctx context.Context, db *sql.DB, table string) ([]storage.Column, error) {
	rows, err := db.QueryContext(ctx, columnsSQL, a.Schema, table)
	if err != nil {
		return nil, errors.Wrapf(err, "list columns of %s.%s", a.Schema, table)
	}
	defer rows.Close()

	var out []storage.Column
	for rows.Next() {
		var c storage.Column
		if err := rows.Scan(&c.Position, &c.Name, &c.Type, &c.NotNull); err != nil {
			return nil, errors.Wrap(err, "scan column")
		}
		// information_schema positions start at 1
		c.Position--
		out = append(out, c)
	}
	return out, rows.Err()
}
