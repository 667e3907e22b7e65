package core

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// ----------------------------------------------------------------------------
// ToPgNumeric Tests
// ----------------------------------------------------------------------------

func TestToPgNumeric(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "integer gets two places", input: "123", want: "123.00"},
		{name: "zero", input: "0", want: "0.00"},
		{name: "one place", input: "9.5", want: "9.50"},
		{name: "two places", input: "123.45", want: "123.45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := ToPgNumeric(decimal.RequireFromString(tt.input))
			if !n.Valid {
				t.Fatalf("ToPgNumeric(%q) returned invalid", tt.input)
			}
			if got := TextValue(n); got != tt.want {
				t.Errorf("TextValue = %q, want %q", got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// UUID Tests
// ----------------------------------------------------------------------------

func TestToPgUUID(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
	}{
		{"valid", "410544b2-4001-4271-9855-fec4b6a6442a", true},
		{"padded", "  410544b2-4001-4271-9855-fec4b6a6442a ", true},
		{"empty", "", false},
		{"garbage", "not-a-uuid", false},
		{"integer", "42", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := ToPgUUID(tt.input)
			if u.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", u.Valid, tt.wantValid)
			}
		})
	}
}

func TestPgUUIDToString_RoundTrip(t *testing.T) {
	const id = "410544b2-4001-4271-9855-fec4b6a6442a"
	if got := PgUUIDToString(ToPgUUID(id)); got != id {
		t.Errorf("got %q, want %q", got, id)
	}
	if got := PgUUIDToString(pgtype.UUID{}); got != "" {
		t.Errorf("invalid UUID should render empty, got %q", got)
	}
}

// ----------------------------------------------------------------------------
// Date Tests
// ----------------------------------------------------------------------------

func TestToPgDate(t *testing.T) {
	at := time.Date(2024, 3, 9, 17, 45, 0, 0, time.Local)
	d := ToPgDate(at)

	if !d.Valid {
		t.Fatal("expected valid date")
	}
	if got := TextValue(d); got != "2024-03-09" {
		t.Errorf("date = %q, want 2024-03-09", got)
	}
	if ToPgDate(time.Time{}).Valid {
		t.Error("zero time should be invalid")
	}
}

// ----------------------------------------------------------------------------
// Cents Tests
// ----------------------------------------------------------------------------

func TestCentsToDollars(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1250", "12.50"},
		{"5", "0.05"},
		{"0", "0.00"},
		{"100000", "1000.00"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CentsToDollars(tt.in); got != tt.want {
			t.Errorf("CentsToDollars(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// parseID Tests
// ----------------------------------------------------------------------------

func TestParseID(t *testing.T) {
	tests := []struct {
		name   string
		kind   IDKind
		raw    string
		wantOK bool
	}{
		{"serial", IDSerial, "12", true},
		{"serial zero", IDSerial, "0", false},
		{"serial negative", IDSerial, "-3", false},
		{"serial text", IDSerial, "abc", false},
		{"uuid", IDUUID, "410544b2-4001-4271-9855-fec4b6a6442a", true},
		{"uuid malformed", IDUUID, "12", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseID(tt.kind, tt.raw)
			if ok != tt.wantOK {
				t.Errorf("parseID(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
		})
	}
}

func TestTextValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "x", "x"},
		{"int64", int64(1250), "1250"},
		{"decimal", decimal.RequireFromString("3.1"), "3.10"},
		{"text", pgtype.Text{String: "t", Valid: true}, "t"},
		{"null text", pgtype.Text{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextValue(tt.in); got != tt.want {
				t.Errorf("TextValue = %q, want %q", got, tt.want)
			}
		})
	}
}
