// Package entities registers all entity definitions with the core registry.
// Import this package to ensure all entities are registered.
package entities

import "github.com/JonMunkholm/storeadmin/internal/core"

func init() {
	registerCustomers()
	registerInvoices()
	registerCategories()
	registerSubcategories()
	registerProducts()
}

// Status values shared by categories, subcategories and products.
const (
	StatusActive   = "1"
	StatusInactive = "2"
)

// StatusLabels maps stored status values to display labels.
var StatusLabels = map[string]string{
	StatusActive:   "Active",
	StatusInactive: "Inactive",
}

// statusField returns the Active/Inactive enum field with the given message.
func statusField(msg string) core.FieldSpec {
	return core.FieldSpec{
		Name:       "status",
		Label:      "Status",
		Type:       core.FieldEnum,
		Required:   true,
		EnumValues: []string{StatusActive, StatusInactive},
		EnumLabels: StatusLabels,
		Message:    msg,
		Input:      "radio",
	}
}

// activeOnly restricts select-box options to active rows.
const activeOnly = `"status" = '1'`
