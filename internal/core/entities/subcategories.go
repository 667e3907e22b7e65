package entities

import "github.com/JonMunkholm/storeadmin/internal/core"

func registerSubcategories() {
	core.Register(core.EntityDefinition{
		Info: core.EntityInfo{
			Key:      "subcategories",
			Label:    "Subcategories",
			Singular: "Subcategory",
			IDKind:   core.IDSerial,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "name", Label: "Name", Type: core.FieldText, Required: true, Message: "Name is required"},
			statusField("Status is required"),
			{
				Name: "category_id", Label: "Category", Type: core.FieldRef, Required: true,
				Message: "Category ID is required", Input: "select", Options: "categories",
			},
		},
		List: core.ListSpec{
			Columns: []core.ListColumn{
				{Name: "name", Label: "Name", Expr: `"subcategories"."name"`},
				{Name: "category_name", Label: "Category", Expr: `"categories"."name"`},
				{Name: "status", Label: "Status", Expr: `"subcategories"."status"`, Format: core.FormatStatus, Labels: StatusLabels},
			},
			Joins:  `LEFT JOIN "categories" ON "subcategories"."category_id" = "categories"."id"`,
			Joined: []string{"categories"},
			Search: []string{"name"},
		},
		Options: core.OptionSpec{LabelColumn: "name"},
	})
}
