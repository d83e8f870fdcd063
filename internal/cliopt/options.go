package cliopt

import "flag"

// GlobalOptions are parsed once at the CLI root and passed to subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the root
// command router and per-command code.
type GlobalOptions struct {
	Backend      string
	SQLitePath   string
	SQLiteDriver string
	PostgresDSN  string
	PgSchema     string

	Catalog string
	Table   string
	Strict  bool

	Format    string
	LogFormat string
	LogLevel  string
}

// DefaultGlobalOptions reads METRICEXPR_* environment variables; flags
// bound by BindGlobalFlags override them.
func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		Backend:      GetStringEnv("METRICEXPR_BACKEND", "sqlite"),
		SQLitePath:   GetStringEnv("METRICEXPR_SQLITE_PATH", "metrics.db"),
		SQLiteDriver: GetStringEnv("METRICEXPR_SQLITE_DRIVER", "sqlite"),
		PostgresDSN:  GetStringEnv("METRICEXPR_PG_DSN", ""),
		PgSchema:     GetStringEnv("METRICEXPR_PG_SCHEMA", "public"),
		Catalog:      GetStringEnv("METRICEXPR_CATALOG", ""),
		Table:        GetStringEnv("METRICEXPR_TABLE", ""),
		Strict:       GetBoolEnv("METRICEXPR_STRICT", false),
		Format:       "pretty",
		LogFormat:    GetStringEnv("METRICEXPR_LOG_FORMAT", "text"),
		LogLevel:     GetStringEnv("METRICEXPR_LOG_LEVEL", "warn"),
	}
}

func BindGlobalFlags(fs *flag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.Backend, "backend", g.Backend, "backend: sqlite|postgres")
	fs.StringVar(&g.SQLitePath, "sqlite-path", g.SQLitePath, "sqlite database file")
	fs.StringVar(&g.SQLiteDriver, "sqlite-driver", g.SQLiteDriver, "database/sql driver: sqlite (pure Go) or sqlite3 (cgo)")
	fs.StringVar(&g.PostgresDSN, "pg-dsn", g.PostgresDSN, "postgres DSN")
	fs.StringVar(&g.PgSchema, "pg-schema", g.PgSchema, "postgres schema holding the dataset table")

	fs.StringVar(&g.Catalog, "catalog", g.Catalog, "field catalog file (.json or .yaml); skips backend discovery")
	fs.StringVar(&g.Table, "table", g.Table, "dataset table to discover fields from")
	fs.BoolVar(&g.Strict, "strict", g.Strict, "reject sum/avg/max/min over non-numeric fields")

	fs.StringVar(&g.Format, "format", g.Format, "output: pretty|json|html")
	fs.StringVar(&g.LogFormat, "log-format", g.LogFormat, "log format: text|json")
	fs.StringVar(&g.LogLevel, "log-level", g.LogLevel, "log level: debug|info|warn|error")
}
