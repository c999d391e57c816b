package resource

import (
	"strings"

	"library-service/internal/shared/utils"
)

// Query is SQL text with `?` placeholders and the values bound to them, in order.
// Values never appear in SQL; only table and column names from a Schema do.
type Query struct {
	SQL  string
	Args []any
}

func selectFrom(s Schema) string {
	return "SELECT " + utils.JoinList(s.selectColumns()) + " FROM " + s.Table
}

// BuildList returns the list query for s narrowed by f.
// Equality conditions come first as a WHERE clause, then LIMIT.
func BuildList(s Schema, f Filter) Query {
	var sb strings.Builder
	var args []any

	sb.WriteString(selectFrom(s))

	if conds := f.Conditions(); len(conds) > 0 {
		clauses := make([]string, 0, len(conds))
		for _, c := range conds {
			clauses = append(clauses, c.Column+" = ?")
			args = append(args, c.Value)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(utils.JoinWithAnd(clauses))
	}

	if limit := f.MaxRows(); limit != nil {
		sb.WriteString(" LIMIT ?")
		args = append(args, *limit)
	}

	return Query{SQL: sb.String(), Args: args}
}

// BuildGet returns the fetch-by-id query.
func BuildGet(s Schema, id int64) Query {
	return Query{
		SQL:  selectFrom(s) + " WHERE id = ?",
		Args: []any{id},
	}
}

// BuildCreate returns the insert query. Every field is bound, absent ones as NULL.
func BuildCreate(s Schema, fields []Field) Query {
	columns := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))

	for _, f := range fields {
		columns = append(columns, f.Column)
		if f.Set {
			args = append(args, f.Value)
		} else {
			args = append(args, nil)
		}
	}

	return Query{
		SQL: "INSERT INTO " + s.Table +
			" (" + utils.JoinList(columns) + ")" +
			" VALUES (" + utils.Placeholders(len(columns)) + ")" +
			" RETURNING id",
		Args: args,
	}
}

// BuildUpdate returns the update query for the present fields, with id bound
// last. ok is false when no field is present: the update is a no-op and there
// is nothing to execute.
func BuildUpdate(s Schema, id int64, fields []Field) (q Query, ok bool) {
	var setClauses []string
	var args []any

	for _, f := range fields {
		if !f.Set {
			continue
		}
		setClauses = append(setClauses, f.Column+" = ?")
		args = append(args, f.Value)
	}

	if len(setClauses) == 0 {
		return Query{}, false
	}

	args = append(args, id)
	return Query{
		SQL:  "UPDATE " + s.Table + " SET " + utils.JoinList(setClauses) + " WHERE id = ?",
		Args: args,
	}, true
}

// BuildDelete returns the delete-by-id query.
func BuildDelete(s Schema, id int64) Query {
	return Query{
		SQL:  "DELETE FROM " + s.Table + " WHERE id = ?",
		Args: []any{id},
	}
}
