package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errTableRequired   = errors.New("table is required")
	errColumnsRequired = errors.New("columns are required")
)

// binder numbers positional placeholders across every clause of one
// statement.
type binder struct {
	sql  strings.Builder
	args []any
}

func (b *binder) bind(value any) {
	b.args = append(b.args, value)
	b.sql.WriteByte('$')
	b.sql.WriteString(strconv.Itoa(len(b.args)))
}

// expand writes expr, replacing each '?' with the next bound value. Extra
// '?' characters without a value are kept as-is.
func (b *binder) expand(expr string, values []any) {
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(values) {
			b.bind(values[next])
			next++
			continue
		}
		b.sql.WriteByte(expr[i])
	}
}

func (b *binder) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			b.sql.WriteString(" WHERE ")
		} else {
			b.sql.WriteString(" AND ")
		}
		c.write(b)
	}
}

func (b *binder) list(keyword string, parts []string) {
	if len(parts) == 0 {
		return
	}
	b.sql.WriteString(keyword)
	b.sql.WriteString(strings.Join(parts, ", "))
}

func (b *binder) result() (string, []any, error) {
	return b.sql.String(), b.args, nil
}

type Condition interface {
	write(b *binder)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) write(b *binder) {
	b.sql.WriteString(c.column)
	b.sql.WriteString(" = ")
	b.bind(c.value)
}

type inCondition struct {
	column string
	values []any
}

// In matches column against values. An empty set matches nothing.
func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

func (c inCondition) write(b *binder) {
	if len(c.values) == 0 {
		b.sql.WriteString("1=0")
		return
	}
	b.sql.WriteString(c.column)
	b.sql.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			b.sql.WriteString(", ")
		}
		b.bind(v)
	}
	b.sql.WriteByte(')')
}

type exprCondition struct {
	expr string
	args []any
}

// Expr is a raw predicate with '?' placeholders.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) write(b *binder) {
	b.expand(c.expr, c.args)
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	groupBy []string
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (s *SelectBuilder) From(table string) *SelectBuilder {
	s.table = table
	return s
}

func (s *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	s.where = append(s.where, conditions...)
	return s
}

func (s *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	s.groupBy = append(s.groupBy, parts...)
	return s
}

func (s *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	s.orderBy = append(s.orderBy, parts...)
	return s
}

func (s *SelectBuilder) Limit(limit int) *SelectBuilder {
	s.limit = limit
	return s
}

func (s *SelectBuilder) ToSQL() (string, []any, error) {
	if len(s.columns) == 0 {
		return "", nil, errColumnsRequired
	}
	if strings.TrimSpace(s.table) == "" {
		return "", nil, errTableRequired
	}

	var b binder
	b.list("SELECT ", s.columns)
	b.sql.WriteString(" FROM ")
	b.sql.WriteString(s.table)
	b.where(s.where)
	b.list(" GROUP BY ", s.groupBy)
	b.list(" ORDER BY ", s.orderBy)
	if s.limit > 0 {
		b.sql.WriteString(" LIMIT ")
		b.sql.WriteString(strconv.Itoa(s.limit))
	}
	return b.result()
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

func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	i.columns = append([]string(nil), columns...)
	return i
}

func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	i.rows = append(i.rows, append([]any(nil), values...))
	return i
}

// Suffix appends a trailing clause such as ON CONFLICT or RETURNING.
func (i *InsertBuilder) Suffix(sql string) *InsertBuilder {
	i.suffix = strings.TrimSpace(sql)
	return i
}

func (i *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(i.table) == "" {
		return "", nil, errTableRequired
	}
	if len(i.columns) == 0 {
		return "", nil, errColumnsRequired
	}
	if len(i.rows) == 0 {
		return "", nil, errors.New("insert values are required")
	}

	var b binder
	b.sql.WriteString("INSERT INTO ")
	b.sql.WriteString(i.table)
	b.sql.WriteString(" (")
	b.sql.WriteString(strings.Join(i.columns, ", "))
	b.sql.WriteString(") VALUES ")
	for rowIdx, row := range i.rows {
		if len(row) != len(i.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(i.columns))
		}
		if rowIdx > 0 {
			b.sql.WriteString(", ")
		}
		b.sql.WriteByte('(')
		for colIdx, value := range row {
			if colIdx > 0 {
				b.sql.WriteString(", ")
			}
			b.bind(value)
		}
		b.sql.WriteByte(')')
	}
	if i.suffix != "" {
		b.sql.WriteByte(' ')
		b.sql.WriteString(i.suffix)
	}
	return b.result()
}

type assignment struct {
	column string
	value  any
	expr   *exprCondition
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (u *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	u.sets = append(u.sets, assignment{column: column, value: value})
	return u
}

// SetExpr assigns a raw SQL expression, e.g. NOW().
func (u *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	u.sets = append(u.sets, assignment{column: column, expr: &exprCondition{expr: expr, args: args}})
	return u
}

func (u *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	u.where = append(u.where, conditions...)
	return u
}

func (u *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(u.table) == "" {
		return "", nil, errTableRequired
	}
	if len(u.sets) == 0 {
		return "", nil, errors.New("update assignments are required")
	}

	var b binder
	b.sql.WriteString("UPDATE ")
	b.sql.WriteString(u.table)
	b.sql.WriteString(" SET ")
	for i, set := range u.sets {
		if i > 0 {
			b.sql.WriteString(", ")
		}
		b.sql.WriteString(set.column)
		b.sql.WriteString(" = ")
		if set.expr != nil {
			set.expr.write(&b)
			continue
		}
		b.bind(set.value)
	}
	b.where(u.where)
	return b.result()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (d *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	d.where = append(d.where, conditions...)
	return d
}

// ToSQL refuses to build an unconditional delete.
func (d *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(d.table) == "" {
		return "", nil, errTableRequired
	}
	if len(d.where) == 0 {
		return "", nil, errors.New("delete conditions are required")
	}

	var b binder
	b.sql.WriteString("DELETE FROM ")
	b.sql.WriteString(d.table)
	b.where(d.where)
	return b.result()
}
