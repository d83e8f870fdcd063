package cli

import (
	"fmt"
	"io"
)

func PrintRootHelp(w io.Writer) {
	fmt.Fprintln(w, `metricexpr: parse aggregate expressions and name them for charts

USAGE
  metricexpr [global flags] <command> [args]

GLOBAL FLAGS
  --catalog <fields.json|fields.yaml>
  --table <name>                 discover fields from this table when no --catalog
  --backend sqlite|postgres
  --sqlite-path <file.db>
  --sqlite-driver sqlite|sqlite3  sqlite3 needs a cgo build
  --pg-dsn <dsn>
  --pg-schema <name>
  --strict                       reject sum/avg/max/min over non-numeric fields
  --format pretty|json|html
  --log-format text|json
  --log-level debug|info|warn|error

COMMANDS
  parse <expression>             print the expression tree
  label <expression>             print the chart label
  sql [--group-by a,b] <expression>
                                 print the SQL computing the expression over --table
  fields                         list the field catalog

EXAMPLES
  metricexpr --catalog fields.yaml label 'ratio(sum:cost,count)'
  metricexpr --sqlite-path shop.db --table orders sql 'avg:unit_cost'

Flags other than --format default to METRICEXPR_<FLAG> from the environment.`)
}
