// Package core provides the business logic for the catalog back-office.
//
// This package holds all domain logic independent of any UI or transport
// layer. Web handlers, the CLI and tests use it without modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Entity Definitions: Registered via the registry, each entity has field
//     specs, a listing projection, and option rules for select boxes.
//   - Store: The persistence gateway. One parameterized statement per entity
//     and verb, built from the definition.
//   - Service: The main entry point for listing and mutating entities.
//
// # Entity Registry
//
// Entities are registered at init time using [Register]. Each
// [EntityDefinition] contains everything needed to list and edit one table:
//
//	core.Register(EntityDefinition{
//	    Info: EntityInfo{Key: "categories", Label: "Categories", Singular: "Category"},
//	    FieldSpecs: []FieldSpec{
//	        {Name: "name", Required: true, Type: FieldText},
//	        {Name: "status", Required: true, Type: FieldEnum, EnumValues: []string{"1", "2"}},
//	    },
//	    List: ListSpec{
//	        Columns: []ListColumn{{Name: "name", Expr: `"categories"."name"`}},
//	        Search:  []string{"name"},
//	    },
//	})
//
// # Listing
//
// [Service.ListPage] returns at most [PageSize] rows matching a free-text
// query, newest identifier first, together with the total page count.
//
// # Mutations
//
// [Service.Create] and [Service.Update] validate form input, persist it and
// return a [FormState] describing where the user goes next. Successful
// mutations invalidate the entity's cached listings.
//
// # Error Handling
//
// Store failures surface as [*DatabaseError]. Technical errors are mapped to
// user-friendly messages using [MapError]:
//
//   - DB001-DB099: Database errors (duplicates, constraints, connections)
//   - NF001-NF002: Missing records and unknown entities
//   - ERR000: Anything else
package core
