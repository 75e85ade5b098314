package domain

import (
	"context"
	"strconv"
)

// DataSource is the schema-described relational store the structured path
// queries. Read intent is a convention expressed in the generation prompt,
// not enforced here.
type DataSource interface {
	// DescribeSchema returns a textual description of tables and columns
	// suitable for inclusion in a generation prompt.
	DescribeSchema(ctx context.Context) (string, error)
	// Execute runs the query text verbatim and returns the result set.
	Execute(ctx context.Context, query string) (*QueryResult, error)
}

// QueryResult is a tabular or scalar execution result with values already
// rendered as strings for display.
type QueryResult struct {
	Columns []string
	Rows    [][]string
}

// Scalar returns the single value of a 1x1 result as a float, and reports
// whether the result actually had that shape.
func (r *QueryResult) Scalar() (float64, bool) {
	if r == nil || len(r.Rows) != 1 || len(r.Rows[0]) != 1 {
		return 0, false
	}
	v, err := strconv.ParseFloat(r.Rows[0][0], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Empty reports whether the result carries no rows.
func (r *QueryResult) Empty() bool {
	return r == nil || len(r.Rows) == 0
}
