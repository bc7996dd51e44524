// Package condition defines the contract between the filter compiler and the
// query engine that owns the data.
//
// The compiler never inspects or evaluates a Condition. It only composes
// conditions with And, Or and Not and creates leaves through the Builder
// returned by Column.Filter. Any engine that implements these interfaces can
// consume compiled filters; package expr provides a reference implementation.
package condition

// Condition is an opaque predicate node owned by the query engine.
type Condition interface {
	// And returns a condition matching rows that match the receiver and every other condition.
	And(others ...Condition) Condition

	// Or returns a condition matching rows that match the receiver or any other condition.
	Or(others ...Condition) Condition

	// Not returns the negation of the receiver.
	Not() Condition
}

// Column is a handle to a single column of a table.
type Column interface {
	// Name returns the column name.
	Name() string

	// Type returns the raw backend type tag, e.g. "java.lang.String" or "int".
	Type() string

	// Filter returns a builder for leaf conditions on this column.
	Filter() Builder
}

// Builder creates leaf conditions for one column.
type Builder interface {
	Eq(v Value) Condition
	EqIgnoreCase(v Value) Condition
	NotEq(v Value) Condition
	NotEqIgnoreCase(v Value) Condition
	LessThan(v Value) Condition
	LessThanOrEqualTo(v Value) Condition
	GreaterThan(v Value) Condition
	GreaterThanOrEqualTo(v Value) Condition
	In(values []Value) Condition
	NotIn(values []Value) Condition
	ContainsIgnoreCase(v Value) Condition
	IsTrue() Condition
	IsFalse() Condition
	IsNull() Condition

	// Invoke calls a named engine function with the column as its first
	// argument followed by args. The compiler uses "isNaN", "isInf" and
	// "matches" (full match against a regular expression).
	Invoke(function string, args ...Value) Condition
}

// Engine function names passed to Builder.Invoke.
const (
	FuncIsNaN   = "isNaN"
	FuncIsInf   = "isInf"
	FuncMatches = "matches"
)
