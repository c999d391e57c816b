package book

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-service/internal/shared/resource"
)

// Schema is the books table.
var Schema = resource.Schema{
	Table:   "books",
	Columns: []string{"title", "author"},
}

// Book represents a row of the books table.
//
// Author is free text. It is not a reference to the authors table and no
// integrity is enforced between the two.
type Book struct {
	ID     *int64  `json:"id"`
	Title  *string `json:"title"`
	Author *string `json:"author"`
}

func (b *Book) Fields() []resource.Field {
	return []resource.Field{
		resource.Optional("title", b.Title),
		resource.Optional("author", b.Author),
	}
}

func (b *Book) ScanTargets() []any {
	return []any{&b.ID, &b.Title, &b.Author}
}

// Filter holds the query-string filters of GET /books.
type Filter struct {
	Limit  *int    `form:"limit"`
	Author *string `form:"author"`
}

func (f Filter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Limit,
			validation.NilOrNotEmpty.Error("limit must be a positive integer"),
			validation.Min(1).Error("limit must be a positive integer"),
		),
	)
}

// Conditions returns the equality predicates: author, when present.
func (f Filter) Conditions() []resource.Condition {
	var conds []resource.Condition
	if f.Author != nil {
		conds = append(conds, resource.Condition{Column: "author", Value: *f.Author})
	}
	return conds
}

func (f Filter) MaxRows() *int {
	return f.Limit
}
