// Package coretest provides an in-memory core.Gateway for tests.
//
// MemStore mimics the PostgreSQL store closely enough for service and
// handler tests. Rows sort by the definition's descending sort keys, with
// created_at stamped on insert the way the column default does. Search is
// a case-insensitive substring match, paging uses limit/offset, foreign
// keys are checked on write and delete, and every injected failure is a
// *core.DatabaseError.
package coretest

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/storeadmin/internal/core"
)

// ErrInjected is the cause of failures configured with Fail.
var ErrInjected = errors.New("connection refused")

var exprPattern = regexp.MustCompile(`^"(\w+)"\."(\w+)"$`)

// createdBase is the created_at of the first stored row; each later row is
// one microsecond newer.
var createdBase = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const createdLayout = "2006-01-02 15:04:05.000000-07"

type table struct {
	rows   []core.Row
	serial int64
}

// MemStore is a concurrency-safe in-memory core.Gateway.
type MemStore struct {
	mu     sync.Mutex
	tables map[string]*table
	fail   map[string]error // "entity:op" or ":op" -> error
	clock  int64            // rows stamped with created_at so far
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		tables: make(map[string]*table),
		fail:   make(map[string]error),
	}
}

// Fail makes every subsequent op on entity fail. An empty entity matches all.
// Ops: Count, List, Get, Insert, Update, Delete, Options, ListBy, Overview, Ping.
func (m *MemStore) Fail(entity, op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[entity+":"+op] = ErrInjected
}

// Reset clears injected failures.
func (m *MemStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = make(map[string]error)
}

func (m *MemStore) failure(def core.EntityDefinition, op, label string) error {
	err, ok := m.fail[def.Info.Key+":"+op]
	if !ok {
		err, ok = m.fail[":"+op]
	}
	if !ok {
		return nil
	}
	return &core.DatabaseError{Entity: def.Info.Singular, Op: label, Err: err}
}

func (m *MemStore) table(key string) *table {
	t, ok := m.tables[key]
	if !ok {
		t = &table{}
		m.tables[key] = t
	}
	return t
}

// Seed inserts a row directly, bypassing validation. Missing id values are assigned.
// Returns the stored id.
func (m *MemStore) Seed(def core.EntityDefinition, values map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	row := make(core.Row, len(values)+1)
	for k, v := range values {
		row[k] = v
	}
	if row.ID() == "" {
		row["id"] = m.nextID(def)
	}
	m.add(def, row)
	return row.ID()
}

// Rows returns a copy of every stored row of an entity, newest first.
func (m *MemStore) Rows(entity string) []core.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	def, ok := core.Get(entity)
	if !ok {
		return nil
	}
	return m.sorted(def)
}

func (m *MemStore) nextID(def core.EntityDefinition) string {
	if def.Info.IDKind == core.IDUUID {
		return uuid.NewString()
	}
	t := m.table(def.Info.Key)
	t.serial++
	return strconv.FormatInt(t.serial, 10)
}

func (m *MemStore) add(def core.EntityDefinition, row core.Row) {
	t := m.table(def.Info.Key)
	if n, err := strconv.ParseInt(row.ID(), 10, 64); err == nil && n > t.serial {
		t.serial = n
	}
	for _, col := range sortColumns(def) {
		if col == "created_at" && row[col] == "" {
			row[col] = createdBase.Add(time.Duration(m.clock) * time.Microsecond).Format(createdLayout)
			m.clock++
		}
	}
	t.rows = append(t.rows, row)
}

// sortColumns returns the columns named by the definition's sort expressions.
func sortColumns(def core.EntityDefinition) []string {
	exprs := def.List.Order
	if len(exprs) == 0 {
		return []string{"id"}
	}
	cols := make([]string, 0, len(exprs))
	for _, e := range exprs {
		if match := exprPattern.FindStringSubmatch(e); match != nil {
			cols = append(cols, match[2])
		}
	}
	return cols
}

// sorted returns copies of the rows in listing order: every sort column
// descending, serial ids compared as numbers.
func (m *MemStore) sorted(def core.EntityDefinition) []core.Row {
	t := m.table(def.Info.Key)
	rows := make([]core.Row, len(t.rows))
	for i, r := range t.rows {
		rows[i] = copyRow(r)
	}

	cols := sortColumns(def)
	sort.SliceStable(rows, func(i, j int) bool {
		for _, col := range cols {
			a, b := rows[i][col], rows[j][col]
			if col == "id" && def.Info.IDKind == core.IDSerial {
				x, _ := strconv.ParseInt(a, 10, 64)
				y, _ := strconv.ParseInt(b, 10, 64)
				if x != y {
					return x > y
				}
				continue
			}
			if a != b {
				return a > b
			}
		}
		return false
	})
	return rows
}

func copyRow(r core.Row) core.Row {
	c := make(core.Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

func (m *MemStore) find(def core.EntityDefinition, id string) (int, bool) {
	t := m.table(def.Info.Key)
	for i, r := range t.rows {
		if r.ID() == id {
			return i, true
		}
	}
	return -1, false
}

// project resolves the listing columns of a stored row, following references
// for columns that live on another table.
func (m *MemStore) project(def core.EntityDefinition, row core.Row) core.Row {
	out := core.Row{"id": row.ID()}
	for _, col := range def.List.Columns {
		match := exprPattern.FindStringSubmatch(col.Expr)
		if match == nil {
			continue
		}
		tbl, column := match[1], match[2]
		if tbl == def.Info.Table {
			out[col.Name] = row[column]
			continue
		}
		out[col.Name] = m.joined(def, row, tbl, column)
	}
	return out
}

// joined returns column of the row that row references in table tbl.
func (m *MemStore) joined(def core.EntityDefinition, row core.Row, tbl, column string) string {
	for _, spec := range def.FieldSpecs {
		ref, ok := core.Get(spec.Options)
		if !ok || ref.Info.Table != tbl {
			continue
		}
		if i, ok := m.find(ref, row[spec.Column()]); ok {
			return m.table(ref.Info.Key).rows[i][column]
		}
	}
	return ""
}

func (m *MemStore) matching(def core.EntityDefinition, query string) []core.Row {
	var out []core.Row
	q := strings.ToLower(query)
	for _, r := range m.sorted(def) {
		p := m.project(def, r)
		if q == "" {
			out = append(out, p)
			continue
		}
		for _, name := range def.List.Search {
			if strings.Contains(strings.ToLower(p[name]), q) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Count implements core.Gateway.
func (m *MemStore) Count(_ context.Context, def core.EntityDefinition, query string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(def, "Count", "Count"); err != nil {
		return 0, err
	}
	return int64(len(m.matching(def, query))), nil
}

// List implements core.Gateway.
func (m *MemStore) List(_ context.Context, def core.EntityDefinition, query string, limit, offset int) ([]core.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(def, "List", "Fetch"); err != nil {
		return nil, err
	}

	rows := m.matching(def, query)
	if offset >= len(rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

// GetByID implements core.Gateway.
func (m *MemStore) GetByID(_ context.Context, def core.EntityDefinition, id string) (core.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(def, "Get", "Fetch"); err != nil {
		return nil, err
	}

	i, ok := m.find(def, id)
	if !ok {
		return nil, core.ErrNotFound
	}
	row := m.table(def.Info.Key).rows[i]
	out := core.Row{"id": row.ID()}
	for _, spec := range def.FieldSpecs {
		out[spec.Column()] = row[spec.Column()]
	}
	return out, nil
}

// checkRefs rejects records that reference missing rows.
func (m *MemStore) checkRefs(def core.EntityDefinition, rec core.Record) error {
	for _, spec := range def.FieldSpecs {
		ref, ok := core.Get(spec.Options)
		if !ok {
			continue
		}
		v, ok := rec.Get(spec.Column())
		if !ok || v == nil {
			continue
		}
		if _, found := m.find(ref, core.TextValue(v)); !found {
			return fmt.Errorf("insert or update on table %q violates foreign key constraint", def.Info.Table)
		}
	}
	return nil
}

func apply(row core.Row, rec core.Record) {
	for i, col := range rec.Columns {
		row[col] = core.TextValue(rec.Values[i])
	}
}

// Insert implements core.Gateway.
func (m *MemStore) Insert(_ context.Context, def core.EntityDefinition, rec core.Record) (core.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(def, "Insert", "Create"); err != nil {
		return nil, err
	}
	if err := m.checkRefs(def, rec); err != nil {
		return nil, &core.DatabaseError{Entity: def.Info.Singular, Op: "Create", Err: err}
	}

	row := core.Row{"id": m.nextID(def)}
	apply(row, rec)
	m.add(def, row)
	return copyRow(row), nil
}

// Update implements core.Gateway.
func (m *MemStore) Update(_ context.Context, def core.EntityDefinition, id string, rec core.Record) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(def, "Update", "Update"); err != nil {
		return 0, err
	}
	i, ok := m.find(def, id)
	if !ok {
		return 0, nil
	}
	if err := m.checkRefs(def, rec); err != nil {
		return 0, &core.DatabaseError{Entity: def.Info.Singular, Op: "Update", Err: err}
	}

	apply(m.table(def.Info.Key).rows[i], rec)
	return 1, nil
}

// referenced reports whether another entity still points at id.
func (m *MemStore) referenced(def core.EntityDefinition, id string) bool {
	for _, other := range core.All() {
		for _, spec := range other.FieldSpecs {
			if spec.Options != def.Info.Key {
				continue
			}
			for _, r := range m.table(other.Info.Key).rows {
				if r[spec.Column()] == id {
					return true
				}
			}
		}
	}
	return false
}

// Delete implements core.Gateway.
func (m *MemStore) Delete(_ context.Context, def core.EntityDefinition, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(def, "Delete", "Delete"); err != nil {
		return err
	}
	i, ok := m.find(def, id)
	if !ok {
		return nil
	}
	if m.referenced(def, id) {
		return &core.DatabaseError{
			Entity: def.Info.Singular,
			Op:     "Delete",
			Err:    fmt.Errorf("delete on table %q violates foreign key constraint", def.Info.Table),
		}
	}

	t := m.table(def.Info.Key)
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}

// Options implements core.Gateway. Only "status" filters are understood.
func (m *MemStore) Options(_ context.Context, def core.EntityDefinition) ([]core.Option, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(def, "Options", "Fetch"); err != nil {
		return nil, err
	}

	label := def.Options.LabelColumn
	if label == "" {
		label = "name"
	}
	var want string
	if strings.Contains(def.Options.Filter, `"status" = '`) {
		want = strings.TrimSuffix(strings.SplitN(def.Options.Filter, `'`, 2)[1], `'`)
	}

	var opts []core.Option
	for _, r := range m.sorted(def) {
		if want != "" && r["status"] != want {
			continue
		}
		opts = append(opts, core.Option{Value: r.ID(), Label: r[label]})
	}
	return opts, nil
}

// ListBy implements core.Gateway.
func (m *MemStore) ListBy(_ context.Context, def core.EntityDefinition, column, value string) ([]core.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(def, "ListBy", "Fetch"); err != nil {
		return nil, err
	}

	out := []core.Row{}
	for _, r := range m.sorted(def) {
		if r[column] == value {
			out = append(out, core.Row{"id": r.ID(), "name": r["name"], "status": r["status"]})
		}
	}
	return out, nil
}

// Overview implements core.Gateway.
func (m *MemStore) Overview(_ context.Context) (*core.Overview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.fail[":Overview"]; ok {
		return nil, &core.DatabaseError{Entity: "Card Data", Op: "Fetch", Err: err}
	}

	ov := &core.Overview{
		Invoices:   int64(len(m.table("invoices").rows)),
		Customers:  int64(len(m.table("customers").rows)),
		Categories: int64(len(m.table("categories").rows)),
		Products:   int64(len(m.table("products").rows)),
	}

	invoices, ok := core.Get("invoices")
	if !ok {
		return ov, nil
	}
	customers, _ := core.Get("customers")
	for _, r := range m.sorted(invoices) {
		cents, _ := strconv.ParseInt(r["amount"], 10, 64)
		switch r["status"] {
		case "paid":
			ov.PaidCents += cents
		case "pending":
			ov.PendingCents += cents
		}
		if len(ov.Latest) < core.LatestInvoiceCount {
			li := core.LatestInvoice{ID: r.ID(), AmountCents: cents}
			if i, ok := m.find(customers, r["customer_id"]); ok {
				c := m.table("customers").rows[i]
				li.Name, li.Email, li.ImageURL = c["name"], c["email"], c["image_url"]
			}
			ov.Latest = append(ov.Latest, li)
		}
	}
	return ov, nil
}

// Ping implements core.Gateway.
func (m *MemStore) Ping(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.fail[":Ping"]; ok {
		return err
	}
	return nil
}

var _ core.Gateway = (*MemStore)(nil)
