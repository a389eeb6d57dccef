package model

// FilterOperator names a row-level predicate.
type FilterOperator string

const (
	OpEquals      FilterOperator = "equals"
	OpNotEquals   FilterOperator = "not_equals"
	OpGreaterThan FilterOperator = "greater_than"
	OpLessThan    FilterOperator = "less_than"
	OpContains    FilterOperator = "contains"
	OpNotContains FilterOperator = "not_contains"
	OpBetween     FilterOperator = "between"
	OpIn          FilterOperator = "in"
)

// FilterRule is a declarative, field-scoped predicate. All rules in a list
// are AND-combined. Value2 is only read by the between operator; the in
// operator requires Value to be an array.
type FilterRule struct {
	Field    string         `json:"field"`
	Operator FilterOperator `json:"operator"`
	Value    interface{}    `json:"value"`
	Value2   interface{}    `json:"value2,omitempty"`
}

// TransformOperator names a numeric row transformation.
type TransformOperator string

const (
	OpNormalize   TransformOperator = "normalize"
	OpStandardize TransformOperator = "standardize"
	OpLog         TransformOperator = "log"
	OpSqrt        TransformOperator = "sqrt"
	OpSquare      TransformOperator = "square"
	OpRound       TransformOperator = "round"
	OpFloor       TransformOperator = "floor"
	OpCeil        TransformOperator = "ceil"
)

// TransformRule rewrites one field of every row. An empty Target overwrites
// the source field. Rules in a list apply sequentially to a per-row working
// copy, so later rules see earlier rules' writes.
type TransformRule struct {
	Field    string            `json:"field"`
	Operator TransformOperator `json:"operator"`
	Target   string            `json:"target,omitempty"`
}
