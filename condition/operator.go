package condition

// Operator identifies the kind of leaf filter applied to a column.
// The string values match the operator names used by filter forms.
type Operator string

const (
	OpEq                 Operator = "eq"
	OpEqIgnoreCase       Operator = "eqIgnoreCase"
	OpNotEq              Operator = "notEq"
	OpNotEqIgnoreCase    Operator = "notEqIgnoreCase"
	OpLessThan           Operator = "lessThan"
	OpLessThanOrEqual    Operator = "lessThanOrEqualTo"
	OpGreaterThan        Operator = "greaterThan"
	OpGreaterThanOrEqual Operator = "greaterThanOrEqualTo"
	OpContains           Operator = "contains"
	OpNotContains        Operator = "notContains"
	OpStartsWith         Operator = "startsWith"
	OpEndsWith           Operator = "endsWith"
	OpIsTrue             Operator = "isTrue"
	OpIsFalse            Operator = "isFalse"
	OpIsNull             Operator = "isNull"
	OpIn                 Operator = "in"
	OpNotIn              Operator = "notIn"
)

// Valid reports whether o is one of the known operator kinds.
func (o Operator) Valid() bool {
	switch o {
	case OpEq, OpEqIgnoreCase, OpNotEq, OpNotEqIgnoreCase,
		OpLessThan, OpLessThanOrEqual, OpGreaterThan, OpGreaterThanOrEqual,
		OpContains, OpNotContains, OpStartsWith, OpEndsWith,
		OpIsTrue, OpIsFalse, OpIsNull, OpIn, OpNotIn:
		return true
	}
	return false
}

// JoinOperator combines two advanced filter items.
type JoinOperator string

const (
	JoinAnd JoinOperator = "and"
	JoinOr  JoinOperator = "or"
)
