package expr

import "github.com/hugr-lab/quickfilter/condition"

// ExpressionClass identifies the category of expression.
type ExpressionClass string

const (
	ClassColumnRef   ExpressionClass = "BOUND_COLUMN_REF"
	ClassComparison  ExpressionClass = "BOUND_COMPARISON"
	ClassConjunction ExpressionClass = "BOUND_CONJUNCTION"
	ClassConstant    ExpressionClass = "BOUND_CONSTANT"
	ClassFunction    ExpressionClass = "BOUND_FUNCTION"
	ClassOperator    ExpressionClass = "BOUND_OPERATOR"
)

// ExpressionType identifies the specific operation type.
type ExpressionType string

const (
	// Comparison operators
	TypeCompareEqual              ExpressionType = "COMPARE_EQUAL"
	TypeCompareNotEqual           ExpressionType = "COMPARE_NOTEQUAL"
	TypeCompareLessThan           ExpressionType = "COMPARE_LESSTHAN"
	TypeCompareGreaterThan        ExpressionType = "COMPARE_GREATERTHAN"
	TypeCompareLessThanOrEqual    ExpressionType = "COMPARE_LESSTHANOREQUALTO"
	TypeCompareGreaterThanOrEqual ExpressionType = "COMPARE_GREATERTHANOREQUALTO"
	TypeCompareEqualIgnoreCase    ExpressionType = "COMPARE_EQUAL_IGNORE_CASE"
	TypeCompareNotEqualIgnoreCase ExpressionType = "COMPARE_NOTEQUAL_IGNORE_CASE"
	TypeCompareIn                 ExpressionType = "COMPARE_IN"
	TypeCompareNotIn              ExpressionType = "COMPARE_NOT_IN"

	// Conjunction operators
	TypeConjunctionAnd ExpressionType = "CONJUNCTION_AND"
	TypeConjunctionOr  ExpressionType = "CONJUNCTION_OR"

	// Unary operators
	TypeOperatorNot     ExpressionType = "OPERATOR_NOT"
	TypeOperatorIsNull  ExpressionType = "OPERATOR_IS_NULL"
	TypeOperatorIsTrue  ExpressionType = "OPERATOR_IS_TRUE"
	TypeOperatorIsFalse ExpressionType = "OPERATOR_IS_FALSE"

	TypeValueConstant  ExpressionType = "VALUE_CONSTANT"
	TypeBoundFunction  ExpressionType = "BOUND_FUNCTION"
	TypeBoundColumnRef ExpressionType = "BOUND_COLUMN_REF"
)

// Function names understood by the encoders and the arrow evaluator, in
// addition to the condition.Func* names.
const (
	FuncContainsIgnoreCase = "containsIgnoreCase"
)

// Expression is the interface implemented by all filter expression types.
// Use type assertions or type switches to access specific expression data.
type Expression interface {
	// Class returns the expression class (e.g., BOUND_COMPARISON, BOUND_CONJUNCTION).
	Class() ExpressionClass

	// Type returns the specific expression type (e.g., COMPARE_EQUAL, CONJUNCTION_AND).
	Type() ExpressionType

	// expressionMarker is a marker method to prevent external implementation.
	expressionMarker()
}

// BaseExpression contains common fields for all expression types.
type BaseExpression struct {
	ExprClass ExpressionClass `json:"expression_class"`
	ExprType  ExpressionType  `json:"type"`
}

// Class returns the expression class.
func (b *BaseExpression) Class() ExpressionClass { return b.ExprClass }

// Type returns the expression type.
func (b *BaseExpression) Type() ExpressionType { return b.ExprType }

func (b *BaseExpression) expressionMarker() {}

// ColumnRefExpression represents a reference to a table column.
type ColumnRefExpression struct {
	BaseExpression
	Name    string
	TypeTag string
}

// ConstantExpression represents a literal value.
type ConstantExpression struct {
	BaseExpression
	Value condition.Value
}

// ComparisonExpression represents binary comparisons (=, <>, <, >, <=, >=)
// and their case-insensitive variants.
type ComparisonExpression struct {
	BaseExpression
	Left  Expression
	Right Expression
}

// ConjunctionExpression represents AND/OR with multiple children.
type ConjunctionExpression struct {
	BaseExpression
	Children []Expression
}

// OperatorExpression represents unary operators (IS NULL, IS TRUE, IS FALSE, NOT)
// and IN / NOT IN, where Children[0] is the tested expression and the
// remaining children are the list values.
type OperatorExpression struct {
	BaseExpression
	Children []Expression
}

// FunctionExpression represents an engine function call. Children[0] is the
// column the function was invoked on.
type FunctionExpression struct {
	BaseExpression
	Name     string
	Children []Expression
}

func newColumnRef(name, typeTag string) *ColumnRefExpression {
	return &ColumnRefExpression{
		BaseExpression: BaseExpression{ExprClass: ClassColumnRef, ExprType: TypeBoundColumnRef},
		Name:           name,
		TypeTag:        typeTag,
	}
}

func newConstant(v condition.Value) *ConstantExpression {
	return &ConstantExpression{
		BaseExpression: BaseExpression{ExprClass: ClassConstant, ExprType: TypeValueConstant},
		Value:          v,
	}
}

func newComparison(t ExpressionType, left, right Expression) *ComparisonExpression {
	return &ComparisonExpression{
		BaseExpression: BaseExpression{ExprClass: ClassComparison, ExprType: t},
		Left:           left,
		Right:          right,
	}
}

func newOperator(t ExpressionType, children ...Expression) *OperatorExpression {
	return &OperatorExpression{
		BaseExpression: BaseExpression{ExprClass: ClassOperator, ExprType: t},
		Children:       children,
	}
}

func newFunction(name string, children ...Expression) *FunctionExpression {
	return &FunctionExpression{
		BaseExpression: BaseExpression{ExprClass: ClassFunction, ExprType: TypeBoundFunction},
		Name:           name,
		Children:       children,
	}
}

// newConjunction builds an n-ary conjunction, flattening children that are
// conjunctions of the same type.
func newConjunction(t ExpressionType, children ...Expression) *ConjunctionExpression {
	flat := make([]Expression, 0, len(children))
	for _, child := range children {
		if c, ok := child.(*ConjunctionExpression); ok && c.Type() == t {
			flat = append(flat, c.Children...)
			continue
		}
		flat = append(flat, child)
	}
	return &ConjunctionExpression{
		BaseExpression: BaseExpression{ExprClass: ClassConjunction, ExprType: t},
		Children:       flat,
	}
}
