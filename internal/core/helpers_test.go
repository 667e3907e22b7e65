package core

import (
	"strings"
	"testing"
)

// ============================================================================
// WhereBuilder Tests
// ============================================================================

func TestNewWhereBuilder(t *testing.T) {
	wb := NewWhereBuilder()

	if wb == nil {
		t.Fatal("NewWhereBuilder returned nil")
	}

	if wb.argIndex != 1 {
		t.Errorf("expected argIndex to be 1, got %d", wb.argIndex)
	}

	if len(wb.conditions) != 0 {
		t.Errorf("expected empty conditions, got %d", len(wb.conditions))
	}
}

func TestWhereBuilder_Build_Empty(t *testing.T) {
	wb := NewWhereBuilder()
	whereClause, args := wb.Build()

	if whereClause != "" {
		t.Errorf("expected empty string for no conditions, got %q", whereClause)
	}

	if args != nil {
		t.Errorf("expected nil args for no conditions, got %v", args)
	}
}

func TestWhereBuilder_Add(t *testing.T) {
	wb := NewWhereBuilder()
	wb.Add(`"category_id"`, int64(4))
	wb.Add(`"status"`, "")

	whereClause, args := wb.Build()

	if whereClause != ` WHERE "category_id" = $1` {
		t.Errorf("unexpected clause %q", whereClause)
	}
	if len(args) != 1 || args[0] != int64(4) {
		t.Errorf("expected [4], got %v", args)
	}
}

func TestWhereBuilder_AddSearch(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		exprs      []string
		wantClause string
		wantArg    string
	}{
		{
			name:       "empty query adds nothing",
			query:      "",
			exprs:      []string{`"categories"."name"`},
			wantClause: "",
		},
		{
			name:       "single expression",
			query:      "cat",
			exprs:      []string{`"categories"."name"`},
			wantClause: ` WHERE (("categories"."name")::text ILIKE $1)`,
			wantArg:    "%cat%",
		},
		{
			name:       "expressions share one placeholder",
			query:      "ann",
			exprs:      []string{`"customers"."name"`, `"customers"."email"`},
			wantClause: ` WHERE (("customers"."name")::text ILIKE $1 OR ("customers"."email")::text ILIKE $1)`,
			wantArg:    "%ann%",
		},
		{
			name:       "wildcards are escaped",
			query:      "50%_off",
			exprs:      []string{`"products"."name"`},
			wantClause: ` WHERE (("products"."name")::text ILIKE $1)`,
			wantArg:    `%50\%\_off%`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := NewWhereBuilder()
			wb.AddSearch(tt.query, tt.exprs)
			clause, args := wb.Build()

			if clause != tt.wantClause {
				t.Errorf("clause = %q, want %q", clause, tt.wantClause)
			}
			if tt.wantArg == "" {
				if len(args) != 0 {
					t.Errorf("expected no args, got %v", args)
				}
				return
			}
			if len(args) != 1 || args[0] != tt.wantArg {
				t.Errorf("args = %v, want [%s]", args, tt.wantArg)
			}
		})
	}
}

func TestWhereBuilder_AddRaw(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddRaw(`"status" = '1'`)
	wb.AddRaw("")
	wb.AddSearch("x", []string{`"name"`})

	clause, args := wb.Build()
	want := ` WHERE "status" = '1' AND (("name")::text ILIKE $1)`
	if clause != want {
		t.Errorf("clause = %q, want %q", clause, want)
	}
	if len(args) != 1 {
		t.Errorf("expected 1 arg, got %d", len(args))
	}
	if wb.NextArgIndex() != 2 {
		t.Errorf("NextArgIndex = %d, want 2", wb.NextArgIndex())
	}
}

// ============================================================================
// Identifier Tests
// ============================================================================

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"name", `"name"`},
		{"image_url", `"image_url"`},
		{`we"ird`, `"we""ird"`},
	}
	for _, tt := range tests {
		if got := quoteIdentifier(tt.in); got != tt.want {
			t.Errorf("quoteIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQualified(t *testing.T) {
	if got := qualified("products", "id"); got != `"products"."id"` {
		t.Errorf("qualified = %q", got)
	}
}

// ============================================================================
// Statement Builder Tests
// ============================================================================

var testInvoiceDef = EntityDefinition{
	Info: EntityInfo{Key: "invoices", Table: "invoices", Singular: "Invoice", IDKind: IDUUID},
	FieldSpecs: []FieldSpec{
		{Name: "customer_id", Type: FieldUUID, Required: true},
		{Name: "amount", Type: FieldAmount, Required: true},
		{Name: "status", Type: FieldEnum, Required: true, EnumValues: []string{"pending", "paid"}},
	},
	List: ListSpec{
		Columns: []ListColumn{
			{Name: "customer_name", Expr: `"customers"."name"`},
			{Name: "email", Expr: `"customers"."email"`},
			{Name: "amount", Expr: `"invoices"."amount"`},
			{Name: "date", Expr: `"invoices"."date"`},
			{Name: "status", Expr: `"invoices"."status"`},
		},
		Joins:  `JOIN "customers" ON "invoices"."customer_id" = "customers"."id"`,
		Search: []string{"customer_name", "email", "amount", "date", "status"},
		Order:  []string{`"invoices"."date"`, `"invoices"."created_at"`, `"invoices"."id"`},
	},
}

func TestSearchExprs(t *testing.T) {
	exprs := searchExprs(testInvoiceDef)
	if len(exprs) != 5 {
		t.Fatalf("expected 5 expressions, got %d", len(exprs))
	}
	if exprs[0] != `"customers"."name"` || exprs[2] != `"invoices"."amount"` {
		t.Errorf("unexpected expressions %v", exprs)
	}
}

func TestBuildCountQuery(t *testing.T) {
	sql, args := buildCountQuery(testInvoiceDef, "")
	want := `SELECT COUNT(*) FROM "invoices" JOIN "customers" ON "invoices"."customer_id" = "customers"."id"`
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildListQuery(t *testing.T) {
	sql, args := buildListQuery(testInvoiceDef, "paid", PageSize, 20)

	for _, part := range []string{
		`"invoices"."id"::text AS id`,
		`COALESCE(("customers"."name")::text, '') AS "customer_name"`,
		`JOIN "customers" ON`,
		`("invoices"."date")::text ILIKE $1`,
		`("invoices"."status")::text ILIKE $1`,
		`ORDER BY "invoices"."date" DESC, "invoices"."created_at" DESC, "invoices"."id" DESC LIMIT $2 OFFSET $3`,
	} {
		if !strings.Contains(sql, part) {
			t.Errorf("sql missing %q:\n%s", part, sql)
		}
	}

	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[0] != "%paid%" || args[1] != PageSize || args[2] != 20 {
		t.Errorf("unexpected args %v", args)
	}
}

func TestOrderClause(t *testing.T) {
	def := EntityDefinition{Info: EntityInfo{Key: "categories", Table: "categories"}}
	if got := orderClause(def); got != ` ORDER BY "categories"."id" DESC` {
		t.Errorf("default order = %q", got)
	}

	def.List.Order = []string{`"categories"."created_at"`, `"categories"."id"`}
	want := ` ORDER BY "categories"."created_at" DESC, "categories"."id" DESC`
	if got := orderClause(def); got != want {
		t.Errorf("order = %q, want %q", got, want)
	}
}

func TestBuildInsertQuery(t *testing.T) {
	var rec Record
	rec.Set("name", "Electronics")
	rec.Set("status", "1")

	def := EntityDefinition{
		Info:       EntityInfo{Key: "categories", Table: "categories"},
		FieldSpecs: []FieldSpec{{Name: "name"}, {Name: "status"}},
	}
	sql, args := buildInsertQuery(def, rec)

	if !strings.HasPrefix(sql, `INSERT INTO "categories" ("name", "status") VALUES ($1, $2) RETURNING `) {
		t.Errorf("unexpected sql %q", sql)
	}
	if len(args) != 2 || args[0] != "Electronics" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestBuildUpdateQuery(t *testing.T) {
	var rec Record
	rec.Set("name", "Phones")
	rec.Set("category_id", int64(3))

	def := EntityDefinition{Info: EntityInfo{Key: "subcategories", Table: "subcategories"}}
	sql, args := buildUpdateQuery(def, int64(9), rec)

	want := `UPDATE "subcategories" SET "name" = $1, "category_id" = $2 WHERE "id" = $3`
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 3 || args[2] != int64(9) {
		t.Errorf("unexpected args %v", args)
	}
}
