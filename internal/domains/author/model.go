package author

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-service/internal/shared/resource"
)

// Schema is the authors table.
var Schema = resource.Schema{
	Table:   "authors",
	Columns: []string{"name"},
}

// Author represents a row of the authors table.
// ID is assigned by the store; a value sent on create or update is ignored.
type Author struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

func (a *Author) Fields() []resource.Field {
	return []resource.Field{
		resource.Optional("name", a.Name),
	}
}

func (a *Author) ScanTargets() []any {
	return []any{&a.ID, &a.Name}
}

// Filter holds the query-string filters of GET /authors.
type Filter struct {
	Limit *int `form:"limit"`
}

func (f Filter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Limit,
			validation.NilOrNotEmpty.Error("limit must be a positive integer"),
			validation.Min(1).Error("limit must be a positive integer"),
		),
	)
}

func (f Filter) Conditions() []resource.Condition {
	return nil
}

func (f Filter) MaxRows() *int {
	return f.Limit
}
