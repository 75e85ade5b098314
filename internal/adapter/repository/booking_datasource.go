package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"booking-orchestrator/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingDataSource exposes the bookings schema and executes generated SQL
// against Postgres.
type BookingDataSource struct {
	pool   *pgxpool.Pool
	tables []string
}

// NewBookingDataSource scopes schema description to the given tables. With no
// tables it describes every table in the public schema.
func NewBookingDataSource(pool *pgxpool.Pool, tables ...string) *BookingDataSource {
	return &BookingDataSource{pool: pool, tables: tables}
}

// DescribeSchema renders the column layout of the configured tables as a
// compact DDL-like text block for prompt inclusion.
func (ds *BookingDataSource) DescribeSchema(ctx context.Context) (string, error) {
	query := `
		SELECT table_name, column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = 'public'
	`
	args := []any{}
	if len(ds.tables) > 0 {
		query += " AND table_name = ANY($1)"
		args = append(args, ds.tables)
	}
	query += " ORDER BY table_name, ordinal_position"

	rows, err := ds.pool.Query(ctx, query, args...)
	if err != nil {
		return "", fmt.Errorf("failed to read schema catalog: %w", err)
	}
	defer rows.Close()

	columns := make(map[string][]string)
	var order []string
	for rows.Next() {
		var table, column, dataType string
		if err := rows.Scan(&table, &column, &dataType); err != nil {
			return "", fmt.Errorf("failed to scan schema row: %w", err)
		}
		if _, seen := columns[table]; !seen {
			order = append(order, table)
		}
		columns[table] = append(columns[table], fmt.Sprintf("%s %s", column, dataType))
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("schema catalog read failed: %w", err)
	}
	if len(order) == 0 {
		return "", fmt.Errorf("no tables found in schema")
	}

	var b strings.Builder
	for _, table := range order {
		fmt.Fprintf(&b, "TABLE %s (\n  %s\n)\n", table, strings.Join(columns[table], ",\n  "))
	}
	return b.String(), nil
}

// Execute runs the query verbatim and returns a fully stringified result set.
func (ds *BookingDataSource) Execute(ctx context.Context, query string) (*domain.QueryResult, error) {
	rows, err := ds.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	result := &domain.QueryResult{
		Columns: make([]string, len(fields)),
	}
	for i, f := range fields {
		result.Columns[i] = f.Name
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read result row: %w", err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("result iteration failed: %w", err)
	}

	return result, nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

var _ domain.DataSource = (*BookingDataSource)(nil)
