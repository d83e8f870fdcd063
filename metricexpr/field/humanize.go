package field

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HumanizeName turns a column name into a display label: "unit_cost" -> "Unit Cost".
func HumanizeName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	if len(words) == 0 {
		return name
	}
	// cases.Caser is stateful, so one per call.
	return cases.Title(language.English).String(strings.Join(words, " "))
}
