package entities

import "github.com/JonMunkholm/storeadmin/internal/core"

func registerProducts() {
	core.Register(core.EntityDefinition{
		Info: core.EntityInfo{
			Key:      "products",
			Label:    "Products",
			Singular: "Product",
			IDKind:   core.IDSerial,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "name", Label: "Name", Type: core.FieldText, Required: true, Message: "Name is required"},
			statusField("Status is required"),
			{
				Name: "category_id", Label: "Category", Type: core.FieldRef, Required: true,
				Message: "Category ID is required", Input: "select", Options: "categories",
			},
			{
				Name: "subcategory_id", Label: "Subcategory", Type: core.FieldRef, Required: true,
				Message: "Subcategory ID is required", Input: "select", Options: "subcategories",
				DependsOn: "category_id",
			},
			{Name: "image", Label: "Image URL", Type: core.FieldURL, Required: true, Message: "Image must be a valid URL"},
			{Name: "description", Label: "Description", Type: core.FieldText, Input: "textarea"},
			{Name: "price", Label: "Price", Type: core.FieldPrice, Required: true, Message: "Price must be a valid number"},
		},
		List: core.ListSpec{
			Columns: []core.ListColumn{
				{Name: "name", Label: "Name", Expr: `"products"."name"`},
				{Name: "image", Label: "Image", Expr: `"products"."image"`, Format: core.FormatImage},
				{Name: "category_name", Label: "Category", Expr: `"categories"."name"`},
				{Name: "subcategory_name", Label: "Subcategory", Expr: `"subcategories"."name"`},
				{Name: "price", Label: "Price", Expr: `"products"."price"`, Format: core.FormatMoney},
				{Name: "status", Label: "Status", Expr: `"products"."status"`, Format: core.FormatStatus, Labels: StatusLabels},
			},
			Joins: `LEFT JOIN "categories" ON "products"."category_id" = "categories"."id" ` +
				`LEFT JOIN "subcategories" ON "products"."subcategory_id" = "subcategories"."id"`,
			Joined: []string{"categories", "subcategories"},
			Search: []string{"name"},
		},
		StayOnUpdate: true,
	})
}
