package core

import (
	"fmt"
	"strings"
)

// WhereBuilder accumulates parameterized WHERE conditions.
// Values are always passed as $n arguments, never interpolated.
type WhereBuilder struct {
	conditions []string
	args       []any
	argIndex   int
}

// NewWhereBuilder creates an empty builder whose first placeholder is $1.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{argIndex: 1}
}

// Add appends "expr = $n". Empty values are skipped.
func (wb *WhereBuilder) Add(expr string, value any) {
	if s, ok := value.(string); ok && s == "" {
		return
	}
	wb.conditions = append(wb.conditions, fmt.Sprintf("%s = $%d", expr, wb.argIndex))
	wb.args = append(wb.args, value)
	wb.argIndex++
}

// AddRaw appends a static condition that carries no user input.
func (wb *WhereBuilder) AddRaw(cond string) {
	if cond == "" {
		return
	}
	wb.conditions = append(wb.conditions, cond)
}

// AddSearch appends a case-insensitive substring match over exprs,
// OR-ed together and sharing one placeholder. An empty query adds nothing.
func (wb *WhereBuilder) AddSearch(query string, exprs []string) {
	if query == "" || len(exprs) == 0 {
		return
	}

	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		parts[i] = fmt.Sprintf("(%s)::text ILIKE $%d", expr, wb.argIndex)
	}
	wb.conditions = append(wb.conditions, "("+strings.Join(parts, " OR ")+")")
	wb.args = append(wb.args, "%"+escapeLike(query)+"%")
	wb.argIndex++
}

// Build returns the WHERE clause (with leading space) and its arguments.
// Returns "" and nil when there are no conditions.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(wb.conditions, " AND "), wb.args
}

// NextArgIndex returns the next free placeholder number.
func (wb *WhereBuilder) NextArgIndex() int {
	return wb.argIndex
}

// escapeLike escapes LIKE wildcards so the query matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// quoteIdentifier quotes a SQL identifier.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// qualified returns "table"."column".
func qualified(table, column string) string {
	return quoteIdentifier(table) + "." + quoteIdentifier(column)
}

// searchExprs resolves the search column names of a definition to SQL expressions.
func searchExprs(def EntityDefinition) []string {
	exprs := make([]string, 0, len(def.List.Search))
	for _, name := range def.List.Search {
		for _, col := range def.List.Columns {
			if col.Name == name {
				exprs = append(exprs, col.Expr)
				break
			}
		}
	}
	return exprs
}
