package quickfilter

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/hugr-lab/quickfilter/arrowexec"
	"github.com/hugr-lab/quickfilter/condition"
	"github.com/hugr-lab/quickfilter/expr"
)

// The same five rows are loaded into DuckDB and into an Arrow record.
const seedItems = `INSERT INTO items VALUES
	(1, 'Apple', 1.5, true, TIMESTAMP '2024-01-01 10:00:00'),
	(2, 'banana', 'nan'::DOUBLE, false, TIMESTAMP '2024-01-02 10:00:00'),
	(3, 'Cherry pie', 'inf'::DOUBLE, NULL, TIMESTAMP '2024-01-03 10:00:00'),
	(4, NULL, '-inf'::DOUBLE, true, NULL),
	(5, 'apple', NULL, false, TIMESTAMP '2024-01-02 23:59:59')`

func openItems(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("DuckDB not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	for _, stmt := range []string{
		`CREATE TABLE items (id INTEGER, name VARCHAR, price DOUBLE, active BOOLEAN, created TIMESTAMP)`,
		seedItems,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to seed table: %v", err)
		}
	}
	return db
}

func itemsRecord(t *testing.T, mem memory.Allocator) arrow.RecordBatch {
	t.Helper()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int32, Nullable: true},
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "price", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		{Name: "active", Type: arrow.FixedWidthTypes.Boolean, Nullable: true},
		{Name: "created", Type: &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}, Nullable: true},
	}, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	ts := func(s string) arrow.Timestamp {
		tm, err := time.Parse(time.DateTime, s)
		if err != nil {
			t.Fatalf("bad timestamp %s: %v", s, err)
		}
		return arrow.Timestamp(tm.UnixMicro())
	}

	b.Field(0).(*array.Int32Builder).AppendValues([]int32{1, 2, 3, 4, 5}, nil)
	b.Field(1).(*array.StringBuilder).AppendValues([]string{"Apple", "banana", "Cherry pie", "", "apple"}, []bool{true, true, true, false, true})
	b.Field(2).(*array.Float64Builder).AppendValues([]float64{1.5, math.NaN(), math.Inf(1), math.Inf(-1), 0}, []bool{true, true, true, true, false})
	b.Field(3).(*array.BooleanBuilder).AppendValues([]bool{true, false, false, true, false}, []bool{true, true, false, true, true})
	b.Field(4).(*array.TimestampBuilder).AppendValues([]arrow.Timestamp{
		ts("2024-01-01 10:00:00"), ts("2024-01-02 10:00:00"), ts("2024-01-03 10:00:00"), 0, ts("2024-01-02 23:59:59"),
	}, []bool{true, true, true, false, true})

	return b.NewRecordBatch()
}

// TestCompiledFiltersExecute runs compiled filters in DuckDB and in the Arrow
// evaluator. The engines differ where null meets a negation: SQL drops the
// row, the evaluator keeps it.
func TestCompiledFiltersExecute(t *testing.T) {
	c := newTestCompiler(t, Config{TimeZone: "UTC"})
	db := openItems(t)

	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	rec := itemsRecord(t, mem)
	defer rec.Release()
	eval := arrowexec.NewEvaluator(mem)

	id := expr.NewColumn("id", "int")
	name := expr.NewColumn("name", "java.lang.String")
	price := expr.NewColumn("price", "double")
	active := expr.NewColumn("active", "boolean")
	created := expr.NewColumn("created", "java.time.Instant")

	quick := func(col condition.Column, text string) func() (condition.Condition, error) {
		return func() (condition.Condition, error) { return c.MakeQuickFilter(col, text, "") }
	}

	tests := []struct {
		name  string
		build func() (condition.Condition, error)
		sql   int
		arrow int
	}{
		{"text eq", quick(name, "apple"), 2, 2},
		{"text contains", quick(name, "~AN"), 1, 1},
		{"text not contains", quick(name, "!~apple"), 3, 3},
		{"text starts with", quick(name, "ch*"), 1, 1},
		{"text ends with", quick(name, "*PIE"), 1, 1},
		{"text not eq", quick(name, "!=apple"), 2, 3},
		{"text null", quick(name, "null"), 1, 1},
		{"text or", quick(name, "apple || banana"), 3, 3},
		{"number nan", quick(price, "nan"), 1, 1},
		{"number not negative infinity", quick(price, "!=-inf"), 3, 4},
		{"number range", quick(price, ">1 && <2"), 1, 1},
		{"number or null", quick(price, "<2 || null"), 3, 3},
		{"boolean true", quick(active, "y"), 2, 2},
		{"boolean not true", quick(active, "!true"), 2, 3},
		{"date day", quick(created, "2024-01-02"), 2, 2},
		{"date from day", quick(created, ">=2024-01-02"), 3, 3},
		{"date not day", quick(created, "!=2024-01-02"), 2, 2},
		{"advanced", func() (condition.Condition, error) {
			return c.MakeAdvancedFilter(id, AdvancedFilterOptions{
				Items:           items("greaterThan", "1", "lessThan", "4"),
				Operators:       joins(condition.JoinAnd),
				InvertSelection: true,
				SelectedValues:  []any{3.0},
			}, "")
		}, 1, 1},
		{"selection with null", func() (condition.Condition, error) {
			return c.MakeSelectValueFilter(name, []any{nil, "Apple"}, false)
		}, 2, 2},
		{"never", func() (condition.Condition, error) {
			return c.MakeNeverFilter(price), nil
		}, 0, 0},
		{"search", func() (condition.Condition, error) {
			return c.MakeSearchTextFilter(name, "PLE", ""), nil
		}, 2, 2},
	}

	enc := expr.NewDuckDBEncoder(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := tt.build()
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			where := enc.EncodeConditions(cond)
			if where == "" {
				t.Fatal("empty WHERE clause")
			}

			var n int
			if err := db.QueryRow("SELECT count(*) FROM items WHERE " + where).Scan(&n); err != nil {
				t.Fatalf("query %q failed: %v", where, err)
			}
			if n != tt.sql {
				t.Errorf("%s: expected %d rows in DuckDB, got %d", where, tt.sql, n)
			}

			n, err = eval.Count(expr.Unwrap(cond), rec)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if n != tt.arrow {
				t.Errorf("%s: expected %d rows in Arrow, got %d", where, tt.arrow, n)
			}
		})
	}
}
