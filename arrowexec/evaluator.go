// Package arrowexec evaluates expression trees built by package expr against
// Arrow record batches.
//
// Evaluation is two-valued. A null cell never equals a literal, so
// NotEq, NotEqIgnoreCase and NotIn match null rows while every other leaf
// except IsNull rejects them. Not inverts the mask as is.
package arrowexec

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/quickfilter/condition"
	"github.com/hugr-lab/quickfilter/expr"
)

var (
	// ErrUnknownColumn is returned when an expression references a column
	// missing from the record schema.
	ErrUnknownColumn = errors.New("arrowexec: unknown column")

	// ErrUnsupportedType is returned for Arrow types the evaluator cannot read.
	ErrUnsupportedType = errors.New("arrowexec: unsupported arrow type")

	// ErrTypeMismatch is returned when a literal cannot be compared with a column.
	ErrTypeMismatch = errors.New("arrowexec: type mismatch")

	// ErrUnsupportedExpression is returned for nodes that are not predicates.
	ErrUnsupportedExpression = errors.New("arrowexec: unsupported expression")
)

// Evaluator computes selection masks. It is safe for concurrent use.
type Evaluator struct {
	mem memory.Allocator

	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

// NewEvaluator creates an evaluator that allocates result arrays from mem.
// If mem is nil, memory.DefaultAllocator is used.
func NewEvaluator(mem memory.Allocator) *Evaluator {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	return &Evaluator{mem: mem, patterns: make(map[string]*regexp.Regexp)}
}

// Evaluate returns a boolean array with one entry per row of rec, true where
// the row matches. The caller must Release the result.
func (e *Evaluator) Evaluate(x expr.Expression, rec arrow.RecordBatch) (*array.Boolean, error) {
	mask, err := e.mask(x, rec)
	if err != nil {
		return nil, err
	}

	b := array.NewBooleanBuilder(e.mem)
	defer b.Release()
	b.AppendValues(mask, nil)
	return b.NewBooleanArray(), nil
}

// Count returns the number of rows of rec that match x.
func (e *Evaluator) Count(x expr.Expression, rec arrow.RecordBatch) (int, error) {
	mask, err := e.mask(x, rec)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}
	return n, nil
}

// Indices returns the indices of the rows of rec that match x.
func (e *Evaluator) Indices(x expr.Expression, rec arrow.RecordBatch) ([]int, error) {
	mask, err := e.mask(x, rec)
	if err != nil {
		return nil, err
	}
	var out []int
	for i, m := range mask {
		if m {
			out = append(out, i)
		}
	}
	return out, nil
}

func (e *Evaluator) mask(x expr.Expression, rec arrow.RecordBatch) ([]bool, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: nil expression", ErrUnsupportedExpression)
	}
	return e.eval(x, rec, int(rec.NumRows()))
}

func (e *Evaluator) eval(x expr.Expression, rec arrow.RecordBatch, n int) ([]bool, error) {
	switch x := x.(type) {
	case *expr.ConjunctionExpression:
		return e.evalConjunction(x, rec, n)
	case *expr.ComparisonExpression:
		return e.evalComparison(x, rec, n)
	case *expr.OperatorExpression:
		return e.evalOperator(x, rec, n)
	case *expr.FunctionExpression:
		return e.evalFunction(x, rec, n)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExpression, x.Class())
	}
}

func (e *Evaluator) evalConjunction(x *expr.ConjunctionExpression, rec arrow.RecordBatch, n int) ([]bool, error) {
	if len(x.Children) == 0 {
		return nil, fmt.Errorf("%w: empty conjunction", ErrUnsupportedExpression)
	}
	or := x.Type() == expr.TypeConjunctionOr

	out, err := e.eval(x.Children[0], rec, n)
	if err != nil {
		return nil, err
	}
	for _, child := range x.Children[1:] {
		m, err := e.eval(child, rec, n)
		if err != nil {
			return nil, err
		}
		for i := range out {
			if or {
				out[i] = out[i] || m[i]
			} else {
				out[i] = out[i] && m[i]
			}
		}
	}
	return out, nil
}

func (e *Evaluator) evalComparison(x *expr.ComparisonExpression, rec arrow.RecordBatch, n int) ([]bool, error) {
	read, err := e.column(x.Left, rec)
	if err != nil {
		return nil, err
	}
	c, ok := x.Right.(*expr.ConstantExpression)
	if !ok {
		return nil, fmt.Errorf("%w: comparison right-hand side must be a constant, got %T", ErrUnsupportedExpression, x.Right)
	}
	v := c.Value

	var test func(cell) (bool, error)
	switch x.Type() {
	case expr.TypeCompareEqual:
		test = func(c cell) (bool, error) { return equal(c, v) }
	case expr.TypeCompareNotEqual:
		test = func(c cell) (bool, error) {
			eq, err := equal(c, v)
			return !eq, err
		}
	case expr.TypeCompareEqualIgnoreCase, expr.TypeCompareNotEqualIgnoreCase:
		negate := x.Type() == expr.TypeCompareNotEqualIgnoreCase
		test = func(c cell) (bool, error) {
			s, ok := c.text()
			if !ok || v.Kind() != condition.KindString {
				return false, fmt.Errorf("%w: case-insensitive comparison needs text", ErrTypeMismatch)
			}
			return strings.EqualFold(s, v.Str()) != negate, nil
		}
	case expr.TypeCompareLessThan:
		test = ordered(v, func(cmp int) bool { return cmp < 0 })
	case expr.TypeCompareLessThanOrEqual:
		test = ordered(v, func(cmp int) bool { return cmp <= 0 })
	case expr.TypeCompareGreaterThan:
		test = ordered(v, func(cmp int) bool { return cmp > 0 })
	case expr.TypeCompareGreaterThanOrEqual:
		test = ordered(v, func(cmp int) bool { return cmp >= 0 })
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExpression, x.Type())
	}

	nullResult := x.Type() == expr.TypeCompareNotEqual || x.Type() == expr.TypeCompareNotEqualIgnoreCase
	return scan(read, n, nullResult, test)
}

func ordered(v condition.Value, accept func(int) bool) func(cell) (bool, error) {
	return func(c cell) (bool, error) {
		cmp, ok, err := compare(c, v)
		if err != nil || !ok {
			return false, err
		}
		return accept(cmp), nil
	}
}

func (e *Evaluator) evalOperator(x *expr.OperatorExpression, rec arrow.RecordBatch, n int) ([]bool, error) {
	if len(x.Children) == 0 {
		return nil, fmt.Errorf("%w: operator without operand", ErrUnsupportedExpression)
	}

	switch x.Type() {
	case expr.TypeOperatorNot:
		m, err := e.eval(x.Children[0], rec, n)
		if err != nil {
			return nil, err
		}
		for i := range m {
			m[i] = !m[i]
		}
		return m, nil

	case expr.TypeOperatorIsNull:
		read, err := e.column(x.Children[0], rec)
		if err != nil {
			return nil, err
		}
		return scan(read, n, true, func(cell) (bool, error) { return false, nil })

	case expr.TypeOperatorIsTrue, expr.TypeOperatorIsFalse:
		read, err := e.column(x.Children[0], rec)
		if err != nil {
			return nil, err
		}
		want := x.Type() == expr.TypeOperatorIsTrue
		return scan(read, n, false, func(c cell) (bool, error) {
			if c.kind != cellBool {
				return false, fmt.Errorf("%w: %s needs a boolean column", ErrTypeMismatch, x.Type())
			}
			return c.b == want, nil
		})

	case expr.TypeCompareIn, expr.TypeCompareNotIn:
		read, err := e.column(x.Children[0], rec)
		if err != nil {
			return nil, err
		}
		values := make([]condition.Value, 0, len(x.Children)-1)
		for _, child := range x.Children[1:] {
			c, ok := child.(*expr.ConstantExpression)
			if !ok {
				return nil, fmt.Errorf("%w: list element must be a constant, got %T", ErrUnsupportedExpression, child)
			}
			values = append(values, c.Value)
		}
		negate := x.Type() == expr.TypeCompareNotIn
		return scan(read, n, negate, func(c cell) (bool, error) {
			for _, v := range values {
				eq, err := equal(c, v)
				if err != nil {
					return false, err
				}
				if eq {
					return !negate, nil
				}
			}
			return negate, nil
		})

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExpression, x.Type())
	}
}

func (e *Evaluator) evalFunction(x *expr.FunctionExpression, rec arrow.RecordBatch, n int) ([]bool, error) {
	if len(x.Children) == 0 {
		return nil, fmt.Errorf("%w: function %s without arguments", ErrUnsupportedExpression, x.Name)
	}
	read, err := e.column(x.Children[0], rec)
	if err != nil {
		return nil, err
	}
	args, err := constants(x.Children[1:])
	if err != nil {
		return nil, err
	}

	switch x.Name {
	case condition.FuncIsNaN:
		return scan(read, n, false, func(c cell) (bool, error) {
			return c.kind == cellFloat && math.IsNaN(c.f), nil
		})

	case condition.FuncIsInf:
		return scan(read, n, false, func(c cell) (bool, error) {
			return c.kind == cellFloat && math.IsInf(c.f, 0), nil
		})

	case condition.FuncMatches:
		if len(args) != 1 || args[0].Kind() != condition.KindString {
			return nil, fmt.Errorf("%w: %s takes one pattern argument", ErrUnsupportedExpression, x.Name)
		}
		re, err := e.pattern(args[0].Str())
		if err != nil {
			return nil, err
		}
		return scan(read, n, false, func(c cell) (bool, error) {
			s, ok := c.text()
			if !ok {
				return false, fmt.Errorf("%w: %s needs text", ErrTypeMismatch, x.Name)
			}
			return re.MatchString(s), nil
		})

	case expr.FuncContainsIgnoreCase:
		if len(args) != 1 || args[0].Kind() != condition.KindString {
			return nil, fmt.Errorf("%w: %s takes one string argument", ErrUnsupportedExpression, x.Name)
		}
		needle := strings.ToLower(args[0].Str())
		return scan(read, n, false, func(c cell) (bool, error) {
			s, ok := c.text()
			if !ok {
				return false, fmt.Errorf("%w: %s needs text", ErrTypeMismatch, x.Name)
			}
			return strings.Contains(strings.ToLower(s), needle), nil
		})

	default:
		return nil, fmt.Errorf("%w: function %s", ErrUnsupportedExpression, x.Name)
	}
}

// pattern compiles a full-match pattern, caching the result.
func (e *Evaluator) pattern(p string) (*regexp.Regexp, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if re, ok := e.patterns[p]; ok {
		return re, nil
	}
	re, err := regexp.Compile(`^(?:` + p + `)$`)
	if err != nil {
		return nil, fmt.Errorf("arrowexec: invalid pattern %q: %w", p, err)
	}
	e.patterns[p] = re
	return re, nil
}

// column resolves a column reference against the record schema.
func (e *Evaluator) column(x expr.Expression, rec arrow.RecordBatch) (reader, error) {
	ref, ok := x.(*expr.ColumnRefExpression)
	if !ok {
		return nil, fmt.Errorf("%w: expected column reference, got %T", ErrUnsupportedExpression, x)
	}
	idx := rec.Schema().FieldIndices(ref.Name)
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, ref.Name)
	}
	read, err := newReader(rec.Column(idx[0]), ref.TypeTag)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", ref.Name, err)
	}
	return read, nil
}

func constants(xs []expr.Expression) ([]condition.Value, error) {
	out := make([]condition.Value, 0, len(xs))
	for _, x := range xs {
		c, ok := x.(*expr.ConstantExpression)
		if !ok {
			return nil, fmt.Errorf("%w: function argument must be a constant, got %T", ErrUnsupportedExpression, x)
		}
		out = append(out, c.Value)
	}
	return out, nil
}

// scan applies test to every non-null row; null rows get nullResult.
func scan(read reader, n int, nullResult bool, test func(cell) (bool, error)) ([]bool, error) {
	out := make([]bool, n)
	for i := range out {
		c := read(i)
		if c.kind == cellNull {
			out[i] = nullResult
			continue
		}
		ok, err := test(c)
		if err != nil {
			return nil, err
		}
		out[i] = ok
	}
	return out, nil
}
