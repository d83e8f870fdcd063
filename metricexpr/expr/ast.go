package expr

import "github.com/nonibytes/metricexpr/metricexpr/field"

// Node is one of Constant, FieldAggregate or Calculation.
// Nodes are comparable values: == on two trees compares their structure.
type Node interface {
	isNode()
}

// Constant is a numeric literal operand.
type Constant struct {
	Value float64
}

func (Constant) isNode() {}

// FieldAggregate applies an aggregate function to a field.
// Field is the zero Field exactly when Fn is Count.
type FieldAggregate struct {
	Fn    AggregateFn
	Field field.Field
}

func (FieldAggregate) isNode() {}

// Calculation combines two sub-expressions. Operand order is significant:
// Sub is LHS - RHS and Ratio is LHS / RHS.
type Calculation struct {
	Fn  CalculationFn
	LHS Node
	RHS Node
}

func (Calculation) isNode() {}

// AggregateFn is a leaf-level statistic over a field.
type AggregateFn int

const (
	Count AggregateFn = iota
	Sum
	Avg
	Max
	Min
	ValueCount
	Cardinality
)

var aggregateNames = [...]string{
	Count:       "count",
	Sum:         "sum",
	Avg:         "avg",
	Max:         "max",
	Min:         "min",
	ValueCount:  "value_count",
	Cardinality: "cardinality",
}

func (f AggregateFn) String() string {
	if f < 0 || int(f) >= len(aggregateNames) {
		return "?"
	}
	return aggregateNames[f]
}

// RequiresField is false only for Count.
func (f AggregateFn) RequiresField() bool {
	return f != Count
}

// numericOnly reports whether f only makes sense over numeric fields.
func (f AggregateFn) numericOnly() bool {
	switch f {
	case Sum, Avg, Max, Min:
		return true
	default:
		return false
	}
}

// ParseAggregateFn maps a case-sensitive function name to its tag.
func ParseAggregateFn(s string) (AggregateFn, bool) {
	for i, name := range aggregateNames {
		if name == s {
			return AggregateFn(i), true
		}
	}
	return 0, false
}

// CalculationFn is a binary combinator over two sub-expressions.
type CalculationFn int

const (
	Ratio CalculationFn = iota
	Mult
	Add
	Sub
)

var calculationNames = [...]string{
	Ratio: "ratio",
	Mult:  "mult",
	Add:   "add",
	Sub:   "sub",
}

func (f CalculationFn) String() string {
	if f < 0 || int(f) >= len(calculationNames) {
		return "?"
	}
	return calculationNames[f]
}

// Operator is the infix symbol used in labels.
func (f CalculationFn) Operator() string {
	switch f {
	case Ratio:
		return "/"
	case Mult:
		return "*"
	case Add:
		return "+"
	case Sub:
		return "-"
	default:
		return "?"
	}
}

// ParseCalculationFn maps a case-sensitive function name to its tag.
func ParseCalculationFn(s string) (CalculationFn, bool) {
	for i, name := range calculationNames {
		if name == s {
			return CalculationFn(i), true
		}
	}
	return 0, false
}
