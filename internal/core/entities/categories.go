package entities

import "github.com/JonMunkholm/storeadmin/internal/core"

func registerCategories() {
	core.Register(core.EntityDefinition{
		Info: core.EntityInfo{
			Key:      "categories",
			Label:    "Categories",
			Singular: "Category",
			IDKind:   core.IDSerial,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "name", Label: "Category Name", Type: core.FieldText, Required: true, Message: "Please enter a category name."},
			statusField("Please select a category status."),
		},
		List: core.ListSpec{
			Columns: []core.ListColumn{
				{Name: "name", Label: "Name", Expr: `"categories"."name"`},
				{Name: "status", Label: "Status", Expr: `"categories"."status"`, Format: core.FormatStatus, Labels: StatusLabels},
			},
			Search: []string{"name"},
		},
		Options: core.OptionSpec{LabelColumn: "name", Filter: activeOnly},
	})
}
