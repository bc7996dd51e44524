package expr

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hugr-lab/quickfilter/condition"
)

// DuckDBEncoder encodes expression trees to DuckDB SQL syntax.
type DuckDBEncoder struct {
	opts *EncoderOptions
}

var _ Encoder = (*DuckDBEncoder)(nil)

// NewDuckDBEncoder creates a new DuckDB SQL encoder.
// If opts is nil, default options are used.
func NewDuckDBEncoder(opts *EncoderOptions) *DuckDBEncoder {
	if opts == nil {
		opts = &EncoderOptions{}
	}
	return &DuckDBEncoder{opts: opts}
}

// EncodeConditions converts conditions to a WHERE clause body.
// Returns the condition portion without "WHERE" keyword.
// Returns empty string if any condition cannot be encoded.
func (e *DuckDBEncoder) EncodeConditions(conds ...condition.Condition) string {
	var parts []string
	for _, c := range conds {
		x := Unwrap(c)
		if x == nil {
			continue
		}
		encoded := e.Encode(x)
		if encoded == "" {
			return ""
		}
		parts = append(parts, encoded)
	}

	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, ") AND (") + ")"
}

// Encode converts a single expression to SQL.
// Returns empty string if expression is unsupported.
func (e *DuckDBEncoder) Encode(expr Expression) string {
	if expr == nil {
		return ""
	}

	switch ex := expr.(type) {
	case *ComparisonExpression:
		return e.encodeComparison(ex)
	case *ConjunctionExpression:
		return e.encodeConjunction(ex)
	case *ConstantExpression:
		return e.formatValue(ex.Value)
	case *ColumnRefExpression:
		return e.encodeColumnRef(ex)
	case *FunctionExpression:
		return e.encodeFunction(ex)
	case *OperatorExpression:
		return e.encodeOperator(ex)
	default:
		return ""
	}
}

// encodeComparison encodes a comparison expression.
func (e *DuckDBEncoder) encodeComparison(c *ComparisonExpression) string {
	left := e.Encode(c.Left)
	right := e.Encode(c.Right)

	if left == "" || right == "" {
		return ""
	}

	switch c.Type() {
	case TypeCompareEqual:
		return left + " = " + right
	case TypeCompareNotEqual:
		return left + " <> " + right
	case TypeCompareLessThan:
		return left + " < " + right
	case TypeCompareGreaterThan:
		return left + " > " + right
	case TypeCompareLessThanOrEqual:
		return left + " <= " + right
	case TypeCompareGreaterThanOrEqual:
		return left + " >= " + right
	case TypeCompareEqualIgnoreCase:
		return "lower(" + left + ") = lower(" + right + ")"
	case TypeCompareNotEqualIgnoreCase:
		return "lower(" + left + ") <> lower(" + right + ")"
	default:
		return ""
	}
}

// encodeConjunction encodes AND/OR conjunctions.
// A conjunction with an unsupported child is unsupported as a whole, since
// the result is the complete WHERE clause and no engine re-checks rows.
func (e *DuckDBEncoder) encodeConjunction(c *ConjunctionExpression) string {
	parts := make([]string, 0, len(c.Children))
	for _, child := range c.Children {
		encoded := e.Encode(child)
		if encoded == "" {
			return ""
		}
		parts = append(parts, encoded)
	}

	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}

	op := " AND "
	if c.Type() == TypeConjunctionOr {
		op = " OR "
	}
	return "(" + strings.Join(parts, op) + ")"
}

// encodeColumnRef encodes a column reference.
func (e *DuckDBEncoder) encodeColumnRef(c *ColumnRefExpression) string {
	colName := c.Name

	// Check for expression mapping first (takes precedence)
	if e.opts.ColumnExpressions != nil {
		if expr, ok := e.opts.ColumnExpressions[colName]; ok {
			return expr
		}
	}

	if e.opts.ColumnMapping != nil {
		if mapped, ok := e.opts.ColumnMapping[colName]; ok {
			colName = mapped
		}
	}

	return quoteIdentifier(colName)
}

// encodeFunction encodes engine functions invoked on a column.
func (e *DuckDBEncoder) encodeFunction(f *FunctionExpression) string {
	var args []string
	for _, child := range f.Children {
		encoded := e.Encode(child)
		if encoded == "" {
			return ""
		}
		args = append(args, encoded)
	}
	if len(args) == 0 {
		return ""
	}

	switch f.Name {
	case condition.FuncIsNaN:
		if len(args) == 1 {
			return "isnan(" + args[0] + ")"
		}
	case condition.FuncIsInf:
		if len(args) == 1 {
			return "isinf(" + args[0] + ")"
		}
	case condition.FuncMatches:
		if len(args) == 2 {
			return "regexp_full_match(" + args[0] + ", " + args[1] + ")"
		}
	case FuncContainsIgnoreCase:
		if len(args) == 2 {
			return "contains(lower(" + args[0] + "), lower(" + args[1] + "))"
		}
	default:
		return f.Name + "(" + strings.Join(args, ", ") + ")"
	}
	return ""
}

// encodeOperator encodes operator expressions (IS NULL, IS NOT NULL, NOT, IN, NOT IN, etc.).
func (e *DuckDBEncoder) encodeOperator(o *OperatorExpression) string {
	if len(o.Children) == 0 {
		return ""
	}

	switch o.Type() {
	case TypeOperatorIsNull:
		child := e.Encode(o.Children[0])
		if child == "" {
			return ""
		}
		return child + " IS NULL"

	case TypeOperatorIsTrue, TypeOperatorIsFalse:
		child := e.Encode(o.Children[0])
		if child == "" {
			return ""
		}
		if o.Type() == TypeOperatorIsTrue {
			return child + " = TRUE"
		}
		return child + " = FALSE"

	case TypeOperatorNot:
		// NOT (x IS NULL) reads better as x IS NOT NULL
		if inner, ok := o.Children[0].(*OperatorExpression); ok && inner.Type() == TypeOperatorIsNull && len(inner.Children) == 1 {
			child := e.Encode(inner.Children[0])
			if child == "" {
				return ""
			}
			return child + " IS NOT NULL"
		}
		child := e.Encode(o.Children[0])
		if child == "" {
			return ""
		}
		return "NOT (" + child + ")"

	case TypeCompareIn:
		return e.encodeInOperator(o, false)

	case TypeCompareNotIn:
		return e.encodeInOperator(o, true)

	default:
		return ""
	}
}

// encodeInOperator encodes IN/NOT IN operator expressions.
// Format: children[0] = column, children[1...n] = values
func (e *DuckDBEncoder) encodeInOperator(o *OperatorExpression, notIn bool) string {
	if len(o.Children) < 2 {
		return ""
	}

	left := e.Encode(o.Children[0])
	if left == "" {
		return ""
	}

	var values []string
	for i := 1; i < len(o.Children); i++ {
		encoded := e.Encode(o.Children[i])
		if encoded == "" {
			return ""
		}
		values = append(values, encoded)
	}

	op := " IN "
	if notIn {
		op = " NOT IN "
	}

	return left + op + "(" + strings.Join(values, ", ") + ")"
}

// formatValue formats a Value as a SQL literal.
func (e *DuckDBEncoder) formatValue(v condition.Value) string {
	switch v.Kind() {
	case condition.KindString:
		return quoteLiteral(v.Str())
	case condition.KindNumber:
		return e.formatFloatValue(v.Num())
	case condition.KindLong:
		return strconv.FormatInt(v.LongValue(), 10)
	case condition.KindBoolean:
		if v.BoolValue() {
			return "TRUE"
		}
		return "FALSE"
	case condition.KindInstant:
		return e.formatTimestampValue(v.InstantValue())
	default:
		return ""
	}
}

// formatFloatValue formats a floating-point value, spelling out the
// non-finite values DuckDB cannot parse as numeric literals.
func (e *DuckDBEncoder) formatFloatValue(f float64) string {
	switch {
	case math.IsNaN(f):
		return "'nan'::DOUBLE"
	case math.IsInf(f, 1):
		return "'inf'::DOUBLE"
	case math.IsInf(f, -1):
		return "'-inf'::DOUBLE"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// formatTimestampValue formats an instant as a UTC timestamp literal with
// microsecond precision.
func (e *DuckDBEncoder) formatTimestampValue(t time.Time) string {
	return "TIMESTAMP '" + t.UTC().Format("2006-01-02 15:04:05.999999") + "'"
}
