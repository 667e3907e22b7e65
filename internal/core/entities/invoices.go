package entities

import "github.com/JonMunkholm/storeadmin/internal/core"

// Invoice status values.
const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
)

func registerInvoices() {
	core.Register(core.EntityDefinition{
		Info: core.EntityInfo{
			Key:      "invoices",
			Label:    "Invoices",
			Singular: "Invoice",
			IDKind:   core.IDUUID,
		},
		FieldSpecs: []core.FieldSpec{
			{
				Name: "customer_id", Label: "Customer", Type: core.FieldUUID, Required: true,
				Message: "Please select a customer.", Input: "select", Options: "customers",
			},
			{
				Name: "amount", Label: "Amount (USD)", Type: core.FieldAmount, Required: true,
				Message: "Please enter an amount greater than $0.",
			},
			{
				Name: "status", Label: "Status", Type: core.FieldEnum, Required: true,
				EnumValues: []string{InvoicePending, InvoicePaid},
				EnumLabels: map[string]string{InvoicePending: "Pending", InvoicePaid: "Paid"},
				Message:    "Please select an invoice status.",
				Input:      "select",
			},
		},
		List: core.ListSpec{
			Columns: []core.ListColumn{
				{Name: "customer_name", Label: "Customer", Expr: `"customers"."name"`},
				{Name: "email", Label: "Email", Expr: `"customers"."email"`},
				{Name: "amount", Label: "Amount", Expr: `"invoices"."amount"`, Format: core.FormatCents},
				{Name: "date", Label: "Date", Expr: `"invoices"."date"`},
				{Name: "status", Label: "Status", Expr: `"invoices"."status"`, Format: core.FormatStatus,
					Labels: map[string]string{InvoicePending: "pending", InvoicePaid: "paid"}},
			},
			Joins:  `JOIN "customers" ON "invoices"."customer_id" = "customers"."id"`,
			Joined: []string{"customers"},
			Search: []string{"customer_name", "email", "amount", "date", "status"},
			Order:  []string{`"invoices"."date"`, `"invoices"."created_at"`, `"invoices"."id"`},
		},
		BeforeInsert: stampInvoiceDate,
	})
}

// stampInvoiceDate dates a new invoice with the current day.
func stampInvoiceDate(rec *core.Record, env core.InsertEnv) {
	rec.Set("date", core.ToPgDate(env.Now))
}
