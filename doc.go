// Package quickfilter compiles human-typed filter text and structured filter
// forms into predicate trees for a single table column.
//
// The compiler never evaluates anything. It classifies the column type tag,
// parses text with a small grammar per column category and builds leaves
// through the condition.Builder of the column handle. Any engine that
// implements the interfaces in package condition can consume the result;
// package expr is a reference engine that renders DuckDB SQL and package
// arrowexec evaluates expr trees against Arrow records.
//
// # Quick Start
//
//	compiler, err := quickfilter.New(quickfilter.Config{TimeZone: "America/New_York"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	price := expr.NewColumn("price", "double")
//	cond, err := compiler.MakeQuickFilter(price, ">= 10 && < 20 || null", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cond) // ((price >= 10 AND price < 20) OR price IS NULL)
//
// # Quick Filters
//
// A quick filter is free text with an optional leading operator per clause.
// Clauses are joined with "&&" and "||"; AND binds tighter and there are no
// parentheses. The grammar of a clause depends on the column category:
//
//   - Numbers: = != ! < <= =< > >= => with null, nan and ±infinity
//   - Booleans: = != ! with prefixes of true, false, yes, no, and 0, 1, null
//   - Characters: relational operators with a single or quoted character
//   - Dates: relational operators with partial dates such as "2024-03"
//   - Text: = != ~ !~ with leading and trailing * wildcards
//
// A compound filter with any clause that cannot be parsed is rejected with
// an error matching ErrInvalidFilterText.
//
// # Advanced Filters
//
// MakeAdvancedFilter folds rows of (operator, value) with explicit join
// operators and intersects the result with a value selection built by
// MakeSelectValueFilter. Rows that cannot be parsed are skipped.
//
// # Concurrency
//
// A Compiler holds no mutable state. All methods are safe for concurrent use.
package quickfilter
