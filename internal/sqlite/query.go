package sqlite

import (
	"fmt"
	"strings"
)

// tableRef names a table and the alias it is bound to in a query.
type tableRef struct {
	name  string
	alias string
}

// join adds a table to a query's join graph.
type join struct {
	table tableRef
	on    string
	left  bool
}

// column is one SELECT expression and its output name.
type column struct {
	expr string
	as   string
}

// predicate is a WHERE term with its bound arguments in placeholder order.
type predicate struct {
	sql  string
	args []any
}

// ordering is one ORDER BY term.
type ordering struct {
	expr string
	desc bool
}

// query is a structured read-only aggregate query: a join graph rooted at
// from, output columns, a conjunction of predicates, grouping, ordering and
// an optional row limit. Values only ever enter through predicate args.
type query struct {
	from    tableRef
	joins   []join
	columns []column
	where   []predicate
	groupBy []string
	orderBy []ordering
	limit   int
}

// alias returns the alias bound to table in the join graph.
func (q *query) alias(table string) (string, bool) {
	if q.from.name == table {
		return q.from.alias, true
	}
	for _, j := range q.joins {
		if j.table.name == table {
			return j.table.alias, true
		}
	}
	return "", false
}

// ensureJoin returns table's alias, left-joining it under alias on the given
// condition if the graph does not contain it yet.
func (q *query) ensureJoin(table, alias, on string) string {
	if a, ok := q.alias(table); ok {
		return a
	}
	q.joins = append(q.joins, join{table: tableRef{table, alias}, on: on, left: true})
	return alias
}

// clone returns a copy whose slices can be appended to without touching q.
func (q query) clone() query {
	c := q
	c.joins = append([]join(nil), q.joins...)
	c.columns = append([]column(nil), q.columns...)
	c.where = append([]predicate(nil), q.where...)
	c.groupBy = append([]string(nil), q.groupBy...)
	c.orderBy = append([]ordering(nil), q.orderBy...)
	return c
}

// build renders the SQL text and its arguments.
func (q query) build() (string, []any) {
	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT ")
	for i, c := range q.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.expr)
		if c.as != "" {
			sb.WriteString(" AS ")
			sb.WriteString(c.as)
		}
	}

	fmt.Fprintf(&sb, " FROM %s %s", q.from.name, q.from.alias)
	for _, j := range q.joins {
		if j.left {
			sb.WriteString(" LEFT")
		}
		fmt.Fprintf(&sb, " JOIN %s %s ON %s", j.table.name, j.table.alias, j.on)
	}

	if len(q.where) > 0 {
		terms := make([]string, len(q.where))
		for i, p := range q.where {
			terms[i] = p.sql
			args = append(args, p.args...)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(terms, " AND "))
	}

	if len(q.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(q.groupBy, ", "))
	}

	if len(q.orderBy) > 0 {
		terms := make([]string, len(q.orderBy))
		for i, o := range q.orderBy {
			terms[i] = o.expr
			if o.desc {
				terms[i] += " DESC"
			} else {
				terms[i] += " ASC"
			}
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(terms, ", "))
	}

	if q.limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.limit)
	}

	return sb.String(), args
}
