// Command quickfilter compiles quick filter text or advanced filter options
// for one column to a DuckDB WHERE clause, and optionally counts the rows of
// a DuckDB table that match it.
//
//	quickfilter --column price --type double --expr ">= 10 && < 20"
//	quickfilter --column name --options options.json --db items.duckdb --table items --run
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/spf13/pflag"

	"github.com/hugr-lab/quickfilter"
	"github.com/hugr-lab/quickfilter/condition"
	"github.com/hugr-lab/quickfilter/expr"
	"github.com/hugr-lab/quickfilter/internal/config"
	"github.com/hugr-lab/quickfilter/internal/payload"
)

var (
	errUsage       = errors.New("usage")
	errUnencodable = errors.New("filter cannot be expressed as DuckDB SQL")
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "quickfilter: %v\n", err)
		}
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	column      string
	typeTag     string
	timeZone    string
	text        string
	optionsPath string
	search      string
	logLevel    string
	dbPath      string
	table       string
	execute     bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options
	fs := pflag.NewFlagSet("quickfilter", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "config file (default quickfilter.yaml in the user config dir or .)")
	fs.StringVarP(&opts.column, "column", "c", "", "column name")
	fs.StringVarP(&opts.typeTag, "type", "t", "", "column type tag, e.g. double or java.lang.String")
	fs.StringVar(&opts.timeZone, "tz", "", "IANA time zone for date columns")
	fs.StringVarP(&opts.text, "expr", "e", "", "quick filter text")
	fs.StringVar(&opts.optionsPath, "options", "", "advanced filter options file (JSON or MessagePack, optionally zstd), - for stdin")
	fs.StringVar(&opts.search, "search", "", "table search text")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&opts.dbPath, "db", "", "DuckDB database file")
	fs.StringVar(&opts.table, "table", "", "DuckDB table to count matching rows in")
	fs.BoolVar(&opts.execute, "run", false, "count matching rows in DuckDB")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(fs, &opts, cfg)

	if opts.column == "" {
		fmt.Fprintln(stderr, "quickfilter: --column is required")
		fs.PrintDefaults()
		return errUsage
	}
	if opts.typeTag == "" {
		opts.typeTag = cfg.Columns[strings.ToLower(opts.column)]
	}
	if opts.typeTag == "" {
		return fmt.Errorf("no type for column %s: pass --type or list it under columns in the config", opts.column)
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	compiler, err := quickfilter.New(quickfilter.Config{
		Logger:   logger,
		TimeZone: cfg.TimeZone,
	})
	if err != nil {
		return err
	}

	cond, err := compile(compiler, &opts, stdin)
	if err != nil {
		return err
	}

	// viper lowercases map keys, so look the column up the same way
	mapping := map[string]string{}
	if target, ok := cfg.ColumnMapping[strings.ToLower(opts.column)]; ok {
		mapping[opts.column] = target
	}
	enc := expr.NewDuckDBEncoder(&expr.EncoderOptions{ColumnMapping: mapping})
	where, err := whereClause(enc, cond)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, where)

	if !opts.execute {
		return nil
	}
	n, err := count(ctx, cfg.DuckDB, where)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, n)
	return nil
}

// whereClause renders cond as a complete WHERE clause body. A nil cond
// matches every row.
func whereClause(enc expr.Encoder, cond condition.Condition) (string, error) {
	if cond == nil {
		return "TRUE", nil
	}
	where := enc.EncodeConditions(cond)
	if where == "" {
		return "", errUnencodable
	}
	return where, nil
}

// applyFlags lets explicitly set flags override the loaded config.
func applyFlags(fs *pflag.FlagSet, opts *options, cfg *config.Config) {
	if fs.Changed("tz") {
		cfg.TimeZone = opts.timeZone
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if fs.Changed("db") {
		cfg.DuckDB.Path = opts.dbPath
	}
	if fs.Changed("table") {
		cfg.DuckDB.Table = opts.table
	}
}

func compile(c *quickfilter.Compiler, opts *options, stdin io.Reader) (condition.Condition, error) {
	col := expr.NewColumn(opts.column, opts.typeTag)

	modes := 0
	for _, set := range []bool{opts.text != "", opts.optionsPath != "", opts.search != ""} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return nil, errors.New("exactly one of --expr, --options or --search is required")
	}

	switch {
	case opts.text != "":
		return c.MakeQuickFilter(col, opts.text, "")
	case opts.search != "":
		return c.MakeSearchTextFilter(col, opts.search, ""), nil
	}

	data, err := readOptions(opts.optionsPath, stdin)
	if err != nil {
		return nil, err
	}
	advanced, err := payload.Decode(data)
	if err != nil {
		return nil, err
	}
	return c.MakeAdvancedFilter(col, advanced, "")
}

func readOptions(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// count returns the number of rows of the configured table matching where.
func count(ctx context.Context, cfg config.DuckDBConfig, where string) (int64, error) {
	db, err := sql.Open("duckdb", cfg.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to open DuckDB: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var n int64
	query := "SELECT count(*) FROM " + quoteIdentifier(cfg.Table) + " WHERE " + where
	if err := db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("query failed: %w", err)
	}
	return n, nil
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
