package entities

import "github.com/JonMunkholm/storeadmin/internal/core"

func registerCustomers() {
	core.Register(core.EntityDefinition{
		Info: core.EntityInfo{
			Key:      "customers",
			Label:    "Customers",
			Singular: "Customer",
			IDKind:   core.IDUUID,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "name", Label: "Name", Type: core.FieldText, Required: true, Message: "Please enter a customer name."},
			{Name: "email", Label: "Email", Type: core.FieldEmail, Required: true, Message: "Please enter a valid email address."},
			{Name: "image_url", Label: "Image URL", Type: core.FieldText},
		},
		List: core.ListSpec{
			Columns: []core.ListColumn{
				{Name: "name", Label: "Name", Expr: `"customers"."name"`},
				{Name: "email", Label: "Email", Expr: `"customers"."email"`},
				{Name: "image_url", Label: "Image", Expr: `"customers"."image_url"`, Format: core.FormatImage},
			},
			Search: []string{"name", "email"},
			Order:  []string{`"customers"."created_at"`, `"customers"."id"`},
		},
		Options: core.OptionSpec{LabelColumn: "name"},
	})
}
