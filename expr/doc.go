// Package expr is the reference query engine for compiled filters.
//
// It implements the condition contract by building a small expression tree
// and encodes that tree to DuckDB SQL. Trees can also be evaluated against
// Arrow records with package arrowexec.
//
// # Basic Usage
//
//	col := expr.NewColumn("price", "double")
//	cond := col.Filter().GreaterThan(condition.Number(10)).
//	    And(col.Filter().IsNull().Not())
//
//	enc := expr.NewDuckDBEncoder(nil)
//	where := enc.EncodeConditions(cond)
//	// (price > 10 AND price IS NOT NULL)
//
// # Column Mapping
//
// Map column names to backend storage names:
//
//	enc := expr.NewDuckDBEncoder(&expr.EncoderOptions{
//	    ColumnMapping: map[string]string{
//	        "Price": "price_usd",
//	    },
//	})
//
// # Column Expression Replacement
//
// Replace column names with SQL expressions for computed columns:
//
//	enc := expr.NewDuckDBEncoder(&expr.EncoderOptions{
//	    ColumnExpressions: map[string]string{
//	        "full_name": "CONCAT(first_name, ' ', last_name)",
//	    },
//	})
//
// # Engine Functions
//
// Functions invoked through Builder.Invoke are rendered as follows:
//   - isNaN: isnan(col)
//   - isInf: isinf(col)
//   - matches: regexp_full_match(col, pattern)
//   - containsIgnoreCase: contains(lower(col), lower(value))
//
// Any other function name is rendered as a plain call with the column as
// the first argument.
//
// # Unsupported Expression Handling
//
// The encoded text is a complete WHERE clause, so nothing is dropped silently:
//   - For AND and OR: If any child is unsupported, the whole conjunction is unsupported
//   - EncodeConditions returns empty string if any non-nil condition is unsupported
//
// # Thread Safety
//
// Expression trees are immutable once built. Encoders are stateless and
// safe for concurrent use.
package expr
