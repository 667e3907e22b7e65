package core

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PageSize is the fixed number of rows returned per listing request.
const PageSize = 10

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// FieldType represents the expected data type for a form field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldEnum
	FieldEmail
	FieldURL
	FieldPrice  // decimal with up to two fraction digits
	FieldAmount // positive dollars, stored as integer cents
	FieldUUID   // reference to a row keyed by UUID
	FieldRef    // reference to a row keyed by a serial integer
)

// FieldSpec defines validation rules for a single form field.
type FieldSpec struct {
	Name       string            // Form field name
	DBColumn   string            // Database column name (defaults to Name)
	Label      string            // Display label
	Type       FieldType         // Expected data type
	Required   bool              // Empty values are rejected
	Default    string            // Used when an optional field is left empty
	EnumValues []string          // Valid values for FieldEnum
	EnumLabels map[string]string // Display labels for EnumValues
	Message    string            // Error shown when the field fails validation
	Input      string            // Widget override: "textarea", "select", "radio"
	Options    string            // Entity key that supplies select options
	DependsOn  string            // Field whose value filters Options (e.g. category_id)
}

// Column returns the database column backing the field.
func (f FieldSpec) Column() string {
	if f.DBColumn != "" {
		return f.DBColumn
	}
	return f.Name
}

// IDKind describes how the store assigns primary keys.
type IDKind int

const (
	IDSerial IDKind = iota
	IDUUID
)

// EntityInfo contains display information about an entity.
type EntityInfo struct {
	Key      string // URL segment and registry key: "categories"
	Table    string // Database table
	Label    string // Plural display name: "Categories"
	Singular string // Singular display name: "Category"
	IDKind   IDKind
}

// ListPath returns the listing page path for the entity.
func (i EntityInfo) ListPath() string {
	return "/dashboard/" + i.Key
}

// ColumnFormat controls how a listed value is rendered.
type ColumnFormat int

const (
	FormatText ColumnFormat = iota
	FormatStatus
	FormatCents
	FormatMoney
	FormatImage
)

// ListColumn is one projected column of a listing query.
type ListColumn struct {
	Name   string            // Key in the returned Row
	Label  string            // Table header
	Expr   string            // SQL expression, qualified with the table or join alias
	Format ColumnFormat      // Rendering hint
	Labels map[string]string // Value labels for FormatStatus
}

// ListSpec describes the listing query for an entity.
type ListSpec struct {
	Columns []ListColumn
	Joins   string   // Appended after FROM <table>
	Joined  []string // Entity keys whose columns the listing shows through Joins
	Search  []string // Column names matched with ILIKE
	Order   []string // Sort expressions, each descending; defaults to the table id
}

// OptionSpec describes how an entity is offered in select boxes.
type OptionSpec struct {
	LabelColumn string // Column shown to the user
	Filter      string // Optional static WHERE condition, e.g. status = '1'
}

// EntityDefinition contains everything needed to list and mutate an entity.
type EntityDefinition struct {
	Info       EntityInfo
	FieldSpecs []FieldSpec
	List       ListSpec
	Options    OptionSpec

	// StayOnUpdate keeps the user on the edit form after a successful update
	// instead of redirecting to the listing.
	StayOnUpdate bool

	// BeforeInsert may add store-computed columns (e.g. an invoice date).
	BeforeInsert func(rec *Record, env InsertEnv)
}

// Field returns the spec for a form field name.
func (d EntityDefinition) Field(name string) (FieldSpec, bool) {
	for _, spec := range d.FieldSpecs {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// Row is a single row returned by the store, every value rendered as text.
type Row map[string]string

// ID returns the row identifier.
func (r Row) ID() string {
	return r["id"]
}

// Option is one entry of a select box.
type Option struct {
	Value string `json:"id"`
	Label string `json:"name"`
}

// LookupItem is one element of the subcategory lookup response.
type LookupItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}
