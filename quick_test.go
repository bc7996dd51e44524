package quickfilter

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hugr-lab/quickfilter/condition"
	"github.com/hugr-lab/quickfilter/daterange"
	"github.com/hugr-lab/quickfilter/expr"
	"github.com/hugr-lab/quickfilter/internal/recovery"
)

// newTestCompiler returns a compiler that logs nowhere.
func newTestCompiler(t *testing.T, config Config) *Compiler {
	t.Helper()
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c, err := New(config)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

// render returns the DuckDB SQL of cond, or "<nil>".
func render(cond condition.Condition) string {
	if cond == nil {
		return "<nil>"
	}
	return cond.(*expr.Condition).String()
}

type parseCase struct {
	text     string
	expected string
}

func runParseCases(t *testing.T, tests []parseCase, parse func(text string) condition.Condition) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := render(parse(tt.text)); got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestMakeQuickNumberFilter(t *testing.T) {
	c := newTestCompiler(t, Config{})
	col := expr.NewColumn("amount", "double")

	runParseCases(t, []parseCase{
		{"5", "amount = 5"},
		{"=5", "amount = 5"},
		{"!=5", "amount <> 5"},
		{"!5", "amount <> 5"},
		{"> 1,000", "amount > 1000"},
		{">= -2.5", "amount >= -2.5"},
		{"- 3", "amount = -3"},
		{"<3", "amount < 3"},
		{"=<3", "amount <= 3"},
		{"<=3", "amount <= 3"},
		{"=>3", "amount >= 3"},
		{"  7  ", "amount = 7"},
		{".5", "amount = 0.5"},
		{"nan", "isnan(amount)"},
		{"NaN", "isnan(amount)"},
		{"!nan", "NOT (isnan(amount))"},
		{"inf", "(isinf(amount) AND amount > 0)"},
		{"∞", "(isinf(amount) AND amount > 0)"},
		{"-Infinity", "(isinf(amount) AND amount < 0)"},
		{"!=-Infinity", "NOT ((isinf(amount) AND amount < 0))"},
		{"null", "amount IS NULL"},
		{"!=null", "amount IS NOT NULL"},
		{">nan", "<nil>"},
		{"<null", "<nil>"},
		{">=inf", "<nil>"},
		{"5abc", "<nil>"},
		{"abc", "<nil>"},
		{"1.2.3", "<nil>"},
		{"1,00", "<nil>"},
		{"", "<nil>"},
		{">", "<nil>"},
		{"-", "<nil>"},
	}, func(text string) condition.Condition {
		return c.MakeQuickNumberFilter(col, text)
	})
}

func TestMakeQuickNumberFilterLong(t *testing.T) {
	c := newTestCompiler(t, Config{})
	col := expr.NewColumn("total", "long")

	runParseCases(t, []parseCase{
		{"123", "total = 123"},
		{"-5", "total = -5"},
		{">9,223,372,036,854,775,807", "total > 9223372036854775807"},
		{"1.5", "<nil>"},
		{"99999999999999999999", "<nil>"},
	}, func(text string) condition.Condition {
		return c.MakeQuickNumberFilter(col, text)
	})
}

func TestMakeQuickBooleanFilter(t *testing.T) {
	c := newTestCompiler(t, Config{})
	col := expr.NewColumn("flag", "boolean")

	runParseCases(t, []parseCase{
		{"true", "flag = TRUE"},
		{"  Y  ", "flag = TRUE"},
		{"1", "flag = TRUE"},
		{"no", "flag = FALSE"},
		{"FAL", "flag = FALSE"},
		{"=0", "flag = FALSE"},
		{"!true", "NOT (flag = TRUE)"},
		{"!= f", "NOT (flag = FALSE)"},
		{"null", "flag IS NULL"},
		{"!null", "flag IS NOT NULL"},
		{"maybe", "<nil>"},
		{"truex", "<nil>"},
		{"", "<nil>"},
	}, func(text string) condition.Condition {
		return c.MakeQuickBooleanFilter(col, text)
	})
}

func TestMakeQuickCharFilter(t *testing.T) {
	c := newTestCompiler(t, Config{})
	col := expr.NewColumn("grade", "char")

	runParseCases(t, []parseCase{
		{"a", "grade = 'a'"},
		{"=a", "grade = 'a'"},
		{"!=a", "grade <> 'a'"},
		{"!a", "grade <> 'a'"},
		{">a", "grade > 'a'"},
		{"<= b", "<nil>"},
		{`>"b"`, "grade > 'b'"},
		{"<'='", "grade < '='"},
		{"'x'", "grade = 'x'"},
		{"null", "grade IS NULL"},
		{"!null", "grade IS NOT NULL"},
		{">null", "<nil>"},
		{"ab", "<nil>"},
		{"", "<nil>"},
		{"=", "<nil>"},
	}, func(text string) condition.Condition {
		return c.MakeQuickCharFilter(col, text)
	})
}

func TestMakeQuickTextFilter(t *testing.T) {
	c := newTestCompiler(t, Config{})
	col := expr.NewColumn("title", "java.lang.String")

	runParseCases(t, []parseCase{
		{"abc", "lower(title) = lower('abc')"},
		{"ABC", "lower(title) = lower('abc')"},
		{"=abc", "lower(title) = lower('abc')"},
		{"!=abc", "lower(title) <> lower('abc')"},
		{"~ab", `(title IS NOT NULL AND regexp_full_match(title, '(?s)(?i).*\Qab\E.*'))`},
		{"!~ab", `(title IS NULL OR NOT (regexp_full_match(title, '(?s)(?i).*\Qab\E.*')))`},
		{"*abc", `(title IS NOT NULL AND regexp_full_match(title, '(?s)(?i).*\Qabc\E$'))`},
		{"abc*", `(title IS NOT NULL AND regexp_full_match(title, '(?s)(?i)^\Qabc\E.*'))`},
		{"!=*abc", `(title IS NULL OR NOT (regexp_full_match(title, '(?s)(?i).*\Qabc\E$')))`},
		{"!=abc*", `(title IS NULL OR NOT (regexp_full_match(title, '(?s)(?i)^\Qabc\E.*')))`},
		{"null", "title IS NULL"},
		{"NULL", "title IS NULL"},
		{"!=null", "title IS NOT NULL"},
		{`\null`, "lower(title) = lower('null')"},
		{`abc\*`, "lower(title) = lower('abc*')"},
		{`\*abc`, "lower(title) = lower('*abc')"},
		{`\=abc`, "lower(title) = lower('=abc')"},
		{"=", "lower(title) = lower('')"},
		{"it's", "lower(title) = lower('it''s')"},
		{`~a\Eb`, `(title IS NOT NULL AND regexp_full_match(title, '(?s)(?i).*\Qa\E\\E\Qb\E.*'))`},
		{"~", "<nil>"},
		{"", "<nil>"},
	}, func(text string) condition.Condition {
		return c.MakeQuickTextFilter(col, text)
	})
}

func TestMakeQuickDateFilter(t *testing.T) {
	c := newTestCompiler(t, Config{TimeZone: "UTC"})
	col := expr.NewColumn("created", "java.time.Instant")

	tests := []parseCase{
		{"2024-01-02", "(created >= TIMESTAMP '2024-01-02 00:00:00' AND created < TIMESTAMP '2024-01-03 00:00:00')"},
		{"=2024-01-02", "(created >= TIMESTAMP '2024-01-02 00:00:00' AND created < TIMESTAMP '2024-01-03 00:00:00')"},
		{"<2024-01-02", "created < TIMESTAMP '2024-01-02 00:00:00'"},
		{"<=2024-01-02", "created < TIMESTAMP '2024-01-03 00:00:00'"},
		{"=<2024-01-02", "created < TIMESTAMP '2024-01-03 00:00:00'"},
		{"> 2024-01-02", "created >= TIMESTAMP '2024-01-03 00:00:00'"},
		{">=2024-01", "created >= TIMESTAMP '2024-01-01 00:00:00'"},
		{"!=2024", "(created < TIMESTAMP '2024-01-01 00:00:00' OR created >= TIMESTAMP '2025-01-01 00:00:00')"},
		{"!2024", "(created < TIMESTAMP '2024-01-01 00:00:00' OR created >= TIMESTAMP '2025-01-01 00:00:00')"},
		{"2024-01-02T03:04:05.123456789Z", "created = TIMESTAMP '2024-01-02 03:04:05.123456'"},
		{"<=2024-01-02T03:04:05.123456789Z", "created <= TIMESTAMP '2024-01-02 03:04:05.123456'"},
		{">2024-01-02T03:04:05.123456789Z", "created > TIMESTAMP '2024-01-02 03:04:05.123456'"},
		{"!=2024-01-02T03:04:05.123456789Z", "created <> TIMESTAMP '2024-01-02 03:04:05.123456'"},
		{"null", "created IS NULL"},
		{"!=null", "created IS NOT NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cond, err := c.MakeQuickDateFilter(col, tt.text, "")
			if err != nil {
				t.Fatalf("MakeQuickDateFilter failed: %v", err)
			}
			if got := render(cond); got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestMakeQuickDateFilterTimeZone(t *testing.T) {
	c := newTestCompiler(t, Config{TimeZone: "UTC"})
	col := expr.NewColumn("created", "java.time.Instant")

	cond, err := c.MakeQuickDateFilter(col, "2024-01-02", "America/New_York")
	if err != nil {
		t.Fatalf("MakeQuickDateFilter failed: %v", err)
	}
	expected := "(created >= TIMESTAMP '2024-01-02 05:00:00' AND created < TIMESTAMP '2024-01-03 05:00:00')"
	if got := render(cond); got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}

	if _, err := c.MakeQuickDateFilter(col, "2024-01-02", "Mars/Olympus_Mons"); !errors.Is(err, ErrInvalidTimeZone) {
		t.Errorf("expected ErrInvalidTimeZone, got %v", err)
	}
}

func TestMakeQuickDateFilterErrors(t *testing.T) {
	c := newTestCompiler(t, Config{TimeZone: "UTC"})
	col := expr.NewColumn("created", "java.time.Instant")

	if _, err := c.MakeQuickDateFilter(col, ">yesterdayish", ""); !errors.Is(err, daterange.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}

	// the resolver error surfaces through the combinator unchanged
	if _, err := c.MakeQuickFilter(col, "2024 || garbage", ""); !errors.Is(err, daterange.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate from MakeQuickFilter, got %v", err)
	}

	if _, err := c.MakeQuickDateFilterWithOperation(col, "2024", condition.OpContains, ""); !errors.Is(err, ErrUnknownOperator) {
		t.Errorf("expected ErrUnknownOperator, got %v", err)
	}
}

func TestMakeQuickDateFilterResolver(t *testing.T) {
	start := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	fixed := daterange.ResolverFunc(func(text string, loc *time.Location) (daterange.Range, error) {
		if text == "boom" {
			panic("resolver exploded")
		}
		return daterange.Range{Start: &start}, nil
	})
	c := newTestCompiler(t, Config{TimeZone: "UTC", DateResolver: fixed})
	col := expr.NewColumn("created", "java.time.Instant")

	cond, err := c.MakeQuickDateFilter(col, ">anything", "")
	if err != nil {
		t.Fatalf("MakeQuickDateFilter failed: %v", err)
	}
	if got, expected := render(cond), "created > TIMESTAMP '2020-05-01 00:00:00'"; got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}

	if _, err := c.MakeQuickDateFilter(col, "boom", ""); !errors.Is(err, recovery.ErrPanic) {
		t.Errorf("expected ErrPanic, got %v", err)
	}
}

func TestQuickFilterDateWithoutTimeZone(t *testing.T) {
	c := newTestCompiler(t, Config{})
	col := expr.NewColumn("created", "java.time.Instant")

	// without a known zone date columns fall back to text parsing
	cond, err := c.MakeQuickFilterFromComponent(col, "2024", "")
	if err != nil {
		t.Fatalf("MakeQuickFilterFromComponent failed: %v", err)
	}
	if got, expected := render(cond), "lower(created) = lower('2024')"; got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}

	cond, err = c.MakeQuickFilterFromComponent(col, "2024", "UTC")
	if err != nil {
		t.Fatalf("MakeQuickFilterFromComponent failed: %v", err)
	}
	expected := "(created >= TIMESTAMP '2024-01-01 00:00:00' AND created < TIMESTAMP '2025-01-01 00:00:00')"
	if got := render(cond); got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}
}

func TestMakeQuickFilter(t *testing.T) {
	c := newTestCompiler(t, Config{})
	col := expr.NewColumn("amount", "double")

	tests := []parseCase{
		{">1 && <5", "(amount > 1 AND amount < 5)"},
		{"=1||=2", "(amount = 1 OR amount = 2)"},
		{"=1 && ||=2", "(amount = 1 OR amount = 2)"},
		{"1 && 2 && 3", "(amount = 1 AND amount = 2 AND amount = 3)"},
		{">1 && <5 || null", "((amount > 1 AND amount < 5) OR amount IS NULL)"},
		{"|| 4 ||", "amount = 4"},
		{"7", "amount = 7"},
		{"", "<nil>"},
		{"  ||  && ", "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cond, err := c.MakeQuickFilter(col, tt.text, "")
			if err != nil {
				t.Fatalf("MakeQuickFilter failed: %v", err)
			}
			if got := render(cond); got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestMakeQuickFilterRejectsBadSegment(t *testing.T) {
	c := newTestCompiler(t, Config{})
	col := expr.NewColumn("amount", "double")

	for _, text := range []string{"1 && abc", "abc", "1 || >nan", "5 && 6x || 7"} {
		t.Run(text, func(t *testing.T) {
			cond, err := c.MakeQuickFilter(col, text, "")
			if !errors.Is(err, ErrInvalidFilterText) {
				t.Fatalf("expected ErrInvalidFilterText, got %v", err)
			}
			if cond != nil {
				t.Errorf("expected nil condition, got %s", render(cond))
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if perr.Text != text || perr.Column != "amount" {
				t.Errorf("unexpected parse error fields: %+v", perr)
			}
		})
	}
}

func TestMakeQuickFilterFromComponentDispatch(t *testing.T) {
	c := newTestCompiler(t, Config{})

	tests := []struct {
		typeTag  string
		text     string
		expected string
	}{
		{"int", ">2", "x > 2"},
		{"java.lang.Integer", "2", "x = 2"},
		{"java.math.BigDecimal", "2.5", "x = 2.5"},
		{"boolean", "yes", "x = TRUE"},
		{"java.lang.Character", "z", "x = 'z'"},
		{"java.lang.String", "z", "lower(x) = lower('z')"},
		{"some.unknown.Type", "z", "lower(x) = lower('z')"},
		{"int[]", "2", "lower(x) = lower('2')"},
	}

	for _, tt := range tests {
		t.Run(tt.typeTag, func(t *testing.T) {
			cond, err := c.MakeQuickFilterFromComponent(expr.NewColumn("x", tt.typeTag), tt.text, "")
			if err != nil {
				t.Fatalf("MakeQuickFilterFromComponent failed: %v", err)
			}
			if got := render(cond); got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestNewInvalidTimeZone(t *testing.T) {
	if _, err := New(Config{TimeZone: "Not/AZone"}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
