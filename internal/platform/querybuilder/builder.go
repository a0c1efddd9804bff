package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition renders a single WHERE predicate with $n placeholders.
type Condition func(args []any) (string, []any)

func Eq(column string, value any) Condition {
	return func(args []any) (string, []any) {
		args = append(args, value)
		return column + " = $" + strconv.Itoa(len(args)), args
	}
}

func In(column string, values []any) Condition {
	return func(args []any) (string, []any) {
		if len(values) == 0 {
			return "1=0", args
		}
		parts := make([]string, 0, len(values))
		for _, v := range values {
			args = append(args, v)
			parts = append(parts, "$"+strconv.Itoa(len(args)))
		}
		return column + " IN (" + strings.Join(parts, ", ") + ")", args
	}
}

func IsNull(column string) Condition {
	return func(args []any) (string, []any) {
		return column + " IS NULL", args
	}
}

func renderWhere(conditions []Condition, args []any) (string, []any) {
	if len(conditions) == 0 {
		return "", args
	}
	parts := make([]string, 0, len(conditions))
	for _, c := range conditions {
		var sql string
		sql, args = c(args)
		parts = append(parts, sql)
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select: columns are required")
	}
	if b.table == "" {
		return "", nil, fmt.Errorf("select: table is required")
	}

	sql := "SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table
	where, args := renderWhere(b.where, nil)
	sql += where
	if len(b.orderBy) > 0 {
		sql += " ORDER BY " + strings.Join(b.orderBy, ", ")
	}
	if b.limit > 0 {
		sql += " LIMIT " + strconv.Itoa(b.limit)
	}

	return sql, args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = columns
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, values)
	return b
}

// Suffix appends a raw trailing clause, e.g. ON CONFLICT handling.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, fmt.Errorf("insert: table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert: columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert: values are required")
	}

	var buf strings.Builder
	buf.WriteString("INSERT INTO ")
	buf.WriteString(b.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(") VALUES ")

	args := make([]any, 0, len(b.rows)*len(b.columns))
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert: row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				buf.WriteString(", ")
			}
			args = append(args, value)
			buf.WriteString("$" + strconv.Itoa(len(args)))
		}
		buf.WriteString(")")
	}

	if b.suffix != "" {
		buf.WriteString(" ")
		buf.WriteString(b.suffix)
	}

	return buf.String(), args, nil
}

type UpdateBuilder struct {
	table      string
	setColumns []string
	setValues  []any
	where      []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.setColumns = append(b.setColumns, column)
	b.setValues = append(b.setValues, value)
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, fmt.Errorf("update: table is required")
	}
	if len(b.setColumns) == 0 {
		return "", nil, fmt.Errorf("update: set clauses are required")
	}

	var buf strings.Builder
	buf.WriteString("UPDATE ")
	buf.WriteString(b.table)
	buf.WriteString(" SET ")

	args := make([]any, 0, len(b.setValues)+len(b.where))
	for i, column := range b.setColumns {
		if i > 0 {
			buf.WriteString(", ")
		}
		args = append(args, b.setValues[i])
		buf.WriteString(column + " = $" + strconv.Itoa(len(args)))
	}

	where, args := renderWhere(b.where, args)
	buf.WriteString(where)

	return buf.String(), args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if b.table == "" {
		return "", nil, fmt.Errorf("delete: table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete: refusing to build without conditions")
	}

	where, args := renderWhere(b.where, nil)
	return "DELETE FROM " + b.table + where, args, nil
}
