package core

import "time"

// Record is a validated, typed set of column values ready for the store.
// Columns keep insertion order so generated SQL is deterministic.
type Record struct {
	Columns []string
	Values  []any
}

// Set assigns a column value, replacing any previous value.
func (r *Record) Set(col string, v any) {
	for i, c := range r.Columns {
		if c == col {
			r.Values[i] = v
			return
		}
	}
	r.Columns = append(r.Columns, col)
	r.Values = append(r.Values, v)
}

// Get returns the value for a column.
func (r Record) Get(col string) (any, bool) {
	for i, c := range r.Columns {
		if c == col {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Len returns the number of columns.
func (r Record) Len() int {
	return len(r.Columns)
}

// InsertEnv carries request-independent inputs for BeforeInsert hooks.
type InsertEnv struct {
	Now time.Time
}
