package resource

// Schema describes the static, trusted part of a resource's SQL: its table and
// the non-id columns in declaration order. The id column is always "id".
type Schema struct {
	Table   string
	Columns []string
}

// selectColumns returns id followed by the schema columns, the order in which
// Record.ScanTargets expects them.
func (s Schema) selectColumns() []string {
	cols := make([]string, 0, len(s.Columns)+1)
	cols = append(cols, "id")
	return append(cols, s.Columns...)
}

// Field is one non-id column of an entity together with its value.
// Set is false when the value was absent from the payload.
type Field struct {
	Column string
	Value  any
	Set    bool
}

// Optional builds a Field from an optional value.
func Optional[T any](column string, v *T) Field {
	if v == nil {
		return Field{Column: column}
	}
	return Field{Column: column, Value: *v, Set: true}
}

// Condition is an equality predicate applied to a list query.
type Condition struct {
	Column string
	Value  any
}

// Record is implemented by a pointer to an entity type.
//
// Fields must return every non-id column in the same order as Schema.Columns.
// ScanTargets must return the destinations for id followed by those columns.
type Record[E any] interface {
	*E
	Fields() []Field
	ScanTargets() []any
}

// Filter narrows a list operation. A nil MaxRows means no limit; Conditions
// returns only the predicates that are present, in a fixed order.
type Filter interface {
	Validate() error
	Conditions() []Condition
	MaxRows() *int
}
