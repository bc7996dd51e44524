package expr

import (
	"fmt"

	"github.com/hugr-lab/quickfilter/columntype"
	"github.com/hugr-lab/quickfilter/condition"
)

// Column is a column handle whose builder produces expression trees.
type Column struct {
	name    string
	typeTag string
}

var _ condition.Column = (*Column)(nil)

// NewColumn creates a column handle for the given name and raw type tag.
func NewColumn(name, typeTag string) *Column {
	return &Column{name: name, typeTag: typeTag}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Type returns the raw type tag.
func (c *Column) Type() string { return c.typeTag }

// Filter returns a builder for leaf conditions on this column.
func (c *Column) Filter() condition.Builder {
	return &Builder{
		ref:  newColumnRef(c.name, c.typeTag),
		char: columntype.Classify(columntype.BaseType(c.typeTag)) == columntype.Char,
	}
}

// Condition wraps an Expression so it can be composed through the
// condition.Condition interface.
type Condition struct {
	Expr Expression
}

var _ condition.Condition = (*Condition)(nil)

// And returns the conjunction of c and others.
func (c *Condition) And(others ...condition.Condition) condition.Condition {
	return &Condition{Expr: newConjunction(TypeConjunctionAnd, c.children(others)...)}
}

// Or returns the disjunction of c and others.
func (c *Condition) Or(others ...condition.Condition) condition.Condition {
	return &Condition{Expr: newConjunction(TypeConjunctionOr, c.children(others)...)}
}

// Not returns the negation of c.
func (c *Condition) Not() condition.Condition {
	return &Condition{Expr: newOperator(TypeOperatorNot, c.Expr)}
}

// String renders the condition as DuckDB SQL.
func (c *Condition) String() string {
	return NewDuckDBEncoder(nil).Encode(c.Expr)
}

func (c *Condition) children(others []condition.Condition) []Expression {
	children := make([]Expression, 0, len(others)+1)
	children = append(children, c.Expr)
	for _, o := range others {
		children = append(children, Unwrap(o))
	}
	return children
}

// Unwrap returns the expression tree behind a condition produced by this
// package. It returns nil for a nil condition and panics for conditions
// built by another engine, which cannot be mixed into an expression tree.
func Unwrap(c condition.Condition) Expression {
	switch v := c.(type) {
	case nil:
		return nil
	case *Condition:
		if v == nil {
			return nil
		}
		return v.Expr
	default:
		panic(fmt.Sprintf("expr: cannot combine foreign condition %T", c))
	}
}

// Builder creates leaf expressions for a single column.
type Builder struct {
	ref  *ColumnRefExpression
	char bool
}

var _ condition.Builder = (*Builder)(nil)

func (b *Builder) compare(t ExpressionType, v condition.Value) condition.Condition {
	return &Condition{Expr: newComparison(t, b.ref, b.constant(v))}
}

// constant turns v into a constant expression. Character literals may arrive
// wrapped in quotes to keep them apart from operator tokens; the quotes are
// not part of the value.
func (b *Builder) constant(v condition.Value) *ConstantExpression {
	if b.char && v.Kind() == condition.KindString {
		s := v.Str()
		if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
			v = condition.String(s[1 : len(s)-1])
		}
	}
	return newConstant(v)
}

// Eq returns col = v.
func (b *Builder) Eq(v condition.Value) condition.Condition {
	return b.compare(TypeCompareEqual, v)
}

// EqIgnoreCase returns a case-insensitive col = v.
func (b *Builder) EqIgnoreCase(v condition.Value) condition.Condition {
	return b.compare(TypeCompareEqualIgnoreCase, v)
}

// NotEq returns col <> v.
func (b *Builder) NotEq(v condition.Value) condition.Condition {
	return b.compare(TypeCompareNotEqual, v)
}

// NotEqIgnoreCase returns a case-insensitive col <> v.
func (b *Builder) NotEqIgnoreCase(v condition.Value) condition.Condition {
	return b.compare(TypeCompareNotEqualIgnoreCase, v)
}

// LessThan returns col < v.
func (b *Builder) LessThan(v condition.Value) condition.Condition {
	return b.compare(TypeCompareLessThan, v)
}

// LessThanOrEqualTo returns col <= v.
func (b *Builder) LessThanOrEqualTo(v condition.Value) condition.Condition {
	return b.compare(TypeCompareLessThanOrEqual, v)
}

// GreaterThan returns col > v.
func (b *Builder) GreaterThan(v condition.Value) condition.Condition {
	return b.compare(TypeCompareGreaterThan, v)
}

// GreaterThanOrEqualTo returns col >= v.
func (b *Builder) GreaterThanOrEqualTo(v condition.Value) condition.Condition {
	return b.compare(TypeCompareGreaterThanOrEqual, v)
}

// In returns col IN (values...).
func (b *Builder) In(values []condition.Value) condition.Condition {
	return b.list(TypeCompareIn, values)
}

// NotIn returns col NOT IN (values...).
func (b *Builder) NotIn(values []condition.Value) condition.Condition {
	return b.list(TypeCompareNotIn, values)
}

func (b *Builder) list(t ExpressionType, values []condition.Value) condition.Condition {
	children := make([]Expression, 0, len(values)+1)
	children = append(children, b.ref)
	for _, v := range values {
		children = append(children, b.constant(v))
	}
	return &Condition{Expr: newOperator(t, children...)}
}

// ContainsIgnoreCase returns a case-insensitive substring match of v.
func (b *Builder) ContainsIgnoreCase(v condition.Value) condition.Condition {
	return b.Invoke(FuncContainsIgnoreCase, v)
}

// IsTrue returns col IS TRUE.
func (b *Builder) IsTrue() condition.Condition {
	return &Condition{Expr: newOperator(TypeOperatorIsTrue, b.ref)}
}

// IsFalse returns col IS FALSE.
func (b *Builder) IsFalse() condition.Condition {
	return &Condition{Expr: newOperator(TypeOperatorIsFalse, b.ref)}
}

// IsNull returns col IS NULL.
func (b *Builder) IsNull() condition.Condition {
	return &Condition{Expr: newOperator(TypeOperatorIsNull, b.ref)}
}

// Invoke returns a call of function with the column as the first argument.
func (b *Builder) Invoke(function string, args ...condition.Value) condition.Condition {
	children := make([]Expression, 0, len(args)+1)
	children = append(children, b.ref)
	for _, a := range args {
		children = append(children, newConstant(a))
	}
	return &Condition{Expr: newFunction(function, children...)}
}
