package core

// store.go is the persistence gateway: one parameterized statement per
// (entity, verb) pair, built from the EntityDefinition.
//
// Every failure leaves this file as *DatabaseError (or ErrNotFound for a
// missing single row); raw pgx errors never reach callers.

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// Gateway is the storage contract used by Service.
// Store implements it over PostgreSQL; tests use an in-memory version.
type Gateway interface {
	Count(ctx context.Context, def EntityDefinition, query string) (int64, error)
	List(ctx context.Context, def EntityDefinition, query string, limit, offset int) ([]Row, error)
	GetByID(ctx context.Context, def EntityDefinition, id string) (Row, error)
	Insert(ctx context.Context, def EntityDefinition, rec Record) (Row, error)
	Update(ctx context.Context, def EntityDefinition, id string, rec Record) (int64, error)
	Delete(ctx context.Context, def EntityDefinition, id string) error
	Options(ctx context.Context, def EntityDefinition) ([]Option, error)
	ListBy(ctx context.Context, def EntityDefinition, column, value string) ([]Row, error)
	Overview(ctx context.Context) (*Overview, error)
	Ping(ctx context.Context) error
}

// Store is the PostgreSQL Gateway.
type Store struct {
	db DBTX
}

// NewStore creates a Store over a pool or transaction.
func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

func dbError(def EntityDefinition, op string, err error) error {
	return &DatabaseError{Entity: def.Info.Singular, Op: op, Err: err}
}

// selectList renders the listing projection, every column cast to text.
func selectList(def EntityDefinition) string {
	parts := make([]string, 0, len(def.List.Columns)+1)
	parts = append(parts, fmt.Sprintf("%s::text AS id", qualified(def.Info.Table, "id")))
	for _, col := range def.List.Columns {
		parts = append(parts, fmt.Sprintf("COALESCE((%s)::text, '') AS %s", col.Expr, quoteIdentifier(col.Name)))
	}
	return strings.Join(parts, ", ")
}

// selectFields renders id plus every form field column, cast to text.
func selectFields(def EntityDefinition) string {
	parts := make([]string, 0, len(def.FieldSpecs)+1)
	parts = append(parts, fmt.Sprintf("%s::text AS id", qualified(def.Info.Table, "id")))
	for _, spec := range def.FieldSpecs {
		parts = append(parts, fmt.Sprintf("COALESCE(%s::text, '') AS %s",
			qualified(def.Info.Table, spec.Column()), quoteIdentifier(spec.Column())))
	}
	return strings.Join(parts, ", ")
}

func fromClause(def EntityDefinition) string {
	from := " FROM " + quoteIdentifier(def.Info.Table)
	if def.List.Joins != "" {
		from += " " + def.List.Joins
	}
	return from
}

// buildCountQuery returns the count statement for a listing search.
func buildCountQuery(def EntityDefinition, query string) (string, []any) {
	wb := NewWhereBuilder()
	wb.AddSearch(query, searchExprs(def))
	where, args := wb.Build()
	return "SELECT COUNT(*)" + fromClause(def) + where, args
}

// orderClause renders " ORDER BY" over the definition's sort expressions,
// newest first. Without any the table id is used.
func orderClause(def EntityDefinition) string {
	exprs := def.List.Order
	if len(exprs) == 0 {
		exprs = []string{qualified(def.Info.Table, "id")}
	}
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e + " DESC"
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// buildListQuery returns the page statement for a listing search.
func buildListQuery(def EntityDefinition, query string, limit, offset int) (string, []any) {
	wb := NewWhereBuilder()
	wb.AddSearch(query, searchExprs(def))
	where, args := wb.Build()

	idx := wb.NextArgIndex()
	sql := fmt.Sprintf("SELECT %s%s%s%s LIMIT $%d OFFSET $%d",
		selectList(def), fromClause(def), where, orderClause(def), idx, idx+1)
	return sql, append(args, limit, offset)
}

// buildInsertQuery returns INSERT ... RETURNING for a record.
func buildInsertQuery(def EntityDefinition, rec Record) (string, []any) {
	cols := make([]string, rec.Len())
	placeholders := make([]string, rec.Len())
	for i, c := range rec.Columns {
		cols[i] = quoteIdentifier(c)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		quoteIdentifier(def.Info.Table),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		selectFields(def),
	)
	return sql, rec.Values
}

// buildUpdateQuery returns UPDATE ... WHERE id = $n for a record.
func buildUpdateQuery(def EntityDefinition, id any, rec Record) (string, []any) {
	sets := make([]string, rec.Len())
	for i, c := range rec.Columns {
		sets[i] = fmt.Sprintf("%s = $%d", quoteIdentifier(c), i+1)
	}
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		quoteIdentifier(def.Info.Table),
		strings.Join(sets, ", "),
		quoteIdentifier("id"),
		rec.Len()+1,
	)
	args := make([]any, 0, rec.Len()+1)
	args = append(args, rec.Values...)
	return sql, append(args, id)
}

// collectRows reads text-cast rows into Row maps.
func collectRows(rows pgx.Rows) ([]Row, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var result []Row
	for rows.Next() {
		dest := make([]pgtype.Text, len(fields))
		ptrs := make([]any, len(fields))
		for i := range dest {
			ptrs[i] = &dest[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(fields))
		for i, fd := range fields {
			row[fd.Name] = dest[i].String
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// Count returns the number of rows matching a listing search.
func (s *Store) Count(ctx context.Context, def EntityDefinition, query string) (int64, error) {
	sql, args := buildCountQuery(def, query)
	var n int64
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, dbError(def, "Count", err)
	}
	return n, nil
}

// List returns one page of rows matching a listing search.
func (s *Store) List(ctx context.Context, def EntityDefinition, query string, limit, offset int) ([]Row, error) {
	sql, args := buildListQuery(def, query, limit, offset)
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbError(def, "Fetch", err)
	}
	result, err := collectRows(rows)
	if err != nil {
		return nil, dbError(def, "Fetch", err)
	}
	return result, nil
}

// GetByID returns the form fields of a single row, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, def EntityDefinition, id string) (Row, error) {
	arg, ok := parseID(def.Info.IDKind, id)
	if !ok {
		return nil, ErrNotFound
	}

	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		selectFields(def), quoteIdentifier(def.Info.Table), quoteIdentifier("id"))
	rows, err := s.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, dbError(def, "Fetch", err)
	}
	result, err := collectRows(rows)
	if err != nil {
		return nil, dbError(def, "Fetch", err)
	}
	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result[0], nil
}

// Insert creates a row and returns it as stored.
func (s *Store) Insert(ctx context.Context, def EntityDefinition, rec Record) (Row, error) {
	sql, args := buildInsertQuery(def, rec)
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbError(def, "Create", err)
	}
	result, err := collectRows(rows)
	if err != nil {
		return nil, dbError(def, "Create", err)
	}
	if len(result) == 0 {
		return nil, dbError(def, "Create", errors.New("insert returned no row"))
	}
	return result[0], nil
}

// Update overwrites the record's columns on one row and returns rows affected.
// A malformed id affects nothing.
func (s *Store) Update(ctx context.Context, def EntityDefinition, id string, rec Record) (int64, error) {
	arg, ok := parseID(def.Info.IDKind, id)
	if !ok {
		return 0, nil
	}

	sql, args := buildUpdateQuery(def, arg, rec)
	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, dbError(def, "Update", err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes a row. Deleting a missing or malformed id is not an error.
func (s *Store) Delete(ctx context.Context, def EntityDefinition, id string) error {
	arg, ok := parseID(def.Info.IDKind, id)
	if !ok {
		return nil
	}

	sql := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", quoteIdentifier(def.Info.Table), quoteIdentifier("id"))
	if _, err := s.db.Exec(ctx, sql, arg); err != nil {
		return dbError(def, "Delete", err)
	}
	return nil
}

// Options returns id/label pairs for select boxes in listing order.
func (s *Store) Options(ctx context.Context, def EntityDefinition) ([]Option, error) {
	label := def.Options.LabelColumn
	if label == "" {
		label = "name"
	}

	wb := NewWhereBuilder()
	wb.AddRaw(def.Options.Filter)
	where, args := wb.Build()

	sql := fmt.Sprintf("SELECT id::text, COALESCE(%s::text, '') FROM %s%s%s",
		quoteIdentifier(label), quoteIdentifier(def.Info.Table), where, orderClause(def))
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbError(def, "Fetch", err)
	}

	opts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Option, error) {
		var o Option
		err := row.Scan(&o.Value, &o.Label)
		return o, err
	})
	if err != nil {
		return nil, dbError(def, "Fetch", err)
	}
	return opts, nil
}

// ListBy returns id, name and status of rows whose column equals value.
// Backs the dependent subcategory lookup.
func (s *Store) ListBy(ctx context.Context, def EntityDefinition, column, value string) ([]Row, error) {
	spec, ok := def.Field(column)
	if !ok {
		return nil, dbError(def, "Fetch", fmt.Errorf("unknown column %q", column))
	}

	var arg any = value
	if spec.Type == FieldRef {
		n, ok := parseID(IDSerial, value)
		if !ok {
			return []Row{}, nil
		}
		arg = n
	} else if spec.Type == FieldUUID {
		u, ok := parseID(IDUUID, value)
		if !ok {
			return []Row{}, nil
		}
		arg = u
	}
	if value == "" {
		return []Row{}, nil
	}

	wb := NewWhereBuilder()
	wb.Add(qualified(def.Info.Table, spec.Column()), arg)
	where, args := wb.Build()

	sql := fmt.Sprintf(
		"SELECT id::text AS id, COALESCE(name::text, '') AS name, COALESCE(status::text, '') AS status FROM %s%s%s",
		quoteIdentifier(def.Info.Table), where, orderClause(def))
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbError(def, "Fetch", err)
	}
	result, err := collectRows(rows)
	if err != nil {
		return nil, dbError(def, "Fetch", err)
	}
	if result == nil {
		result = []Row{}
	}
	return result, nil
}

// Ping checks store connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.db.(*pgxpool.Pool); ok {
		return p.Ping(ctx)
	}
	var one int
	return s.db.QueryRow(ctx, "SELECT 1").Scan(&one)
}

// overviewDef labels overview failures.
var overviewDef = EntityDefinition{Info: EntityInfo{Singular: "Card Data"}}

// Overview gathers dashboard figures. Independent queries run concurrently
// and share the request context; the first failure cancels the rest.
func (s *Store) Overview(ctx context.Context) (*Overview, error) {
	var ov Overview
	g, gctx := errgroup.WithContext(ctx)

	counts := []struct {
		table string
		dest  *int64
	}{
		{"invoices", &ov.Invoices},
		{"customers", &ov.Customers},
		{"categories", &ov.Categories},
		{"products", &ov.Products},
	}
	for _, c := range counts {
		g.Go(func() error {
			return s.db.QueryRow(gctx, "SELECT COUNT(*) FROM "+quoteIdentifier(c.table)).Scan(c.dest)
		})
	}

	g.Go(func() error {
		return s.db.QueryRow(gctx, `SELECT
			COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0)::bigint,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0)::bigint
			FROM invoices`).Scan(&ov.PaidCents, &ov.PendingCents)
	})

	g.Go(func() error {
		rows, err := s.db.Query(gctx, `SELECT invoices.id::text, customers.name, customers.email,
			COALESCE(customers.image_url, ''), invoices.amount
			FROM invoices
			JOIN customers ON invoices.customer_id = customers.id
			ORDER BY invoices.date DESC, invoices.created_at DESC, invoices.id DESC
			LIMIT $1`, LatestInvoiceCount)
		if err != nil {
			return err
		}
		latest, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (LatestInvoice, error) {
			var li LatestInvoice
			err := row.Scan(&li.ID, &li.Name, &li.Email, &li.ImageURL, &li.AmountCents)
			return li, err
		})
		ov.Latest = latest
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, dbError(overviewDef, "Fetch", err)
	}
	return &ov, nil
}
