package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildList(t *testing.T) {
	tests := []struct {
		name     string
		filter   widgetFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "no filter",
			filter:  widgetFilter{},
			wantSQL: "SELECT id, name, color FROM widgets",
		},
		{
			name:     "limit only",
			filter:   widgetFilter{Limit: ptr(3)},
			wantSQL:  "SELECT id, name, color FROM widgets LIMIT ?",
			wantArgs: []any{3},
		},
		{
			name:     "condition only",
			filter:   widgetFilter{Color: ptr("red")},
			wantSQL:  "SELECT id, name, color FROM widgets WHERE color = ?",
			wantArgs: []any{"red"},
		},
		{
			name:     "where precedes limit",
			filter:   widgetFilter{Limit: ptr(1), Color: ptr("red")},
			wantSQL:  "SELECT id, name, color FROM widgets WHERE color = ? LIMIT ?",
			wantArgs: []any{"red", 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildList(widgetSchema, tt.filter)
			assert.Equal(t, tt.wantSQL, q.SQL)
			assert.Equal(t, tt.wantArgs, q.Args)
		})
	}
}

func TestBuildList_ValuesAreNeverInterpolated(t *testing.T) {
	hostile := "x' OR 1=1; DROP TABLE widgets; --"

	q := BuildList(widgetSchema, widgetFilter{Color: &hostile})

	assert.Equal(t, "SELECT id, name, color FROM widgets WHERE color = ?", q.SQL)
	assert.NotContains(t, q.SQL, "DROP")
	assert.Equal(t, []any{hostile}, q.Args)
}

func TestBuildGet(t *testing.T) {
	q := BuildGet(widgetSchema, 7)

	assert.Equal(t, "SELECT id, name, color FROM widgets WHERE id = ?", q.SQL)
	assert.Equal(t, []any{int64(7)}, q.Args)
}

func TestBuildCreate(t *testing.T) {
	w := &widget{Name: ptr("gear")}

	q := BuildCreate(widgetSchema, w.Fields())

	assert.Equal(t, "INSERT INTO widgets (name, color) VALUES (?, ?) RETURNING id", q.SQL)
	assert.Equal(t, []any{"gear", nil}, q.Args)
}

func TestBuildUpdate(t *testing.T) {
	t.Run("present fields only, id last", func(t *testing.T) {
		w := &widget{Color: ptr("blue")}

		q, ok := BuildUpdate(widgetSchema, 4, w.Fields())

		assert.True(t, ok)
		assert.Equal(t, "UPDATE widgets SET color = ? WHERE id = ?", q.SQL)
		assert.Equal(t, []any{"blue", int64(4)}, q.Args)
	})

	t.Run("all fields", func(t *testing.T) {
		w := &widget{Name: ptr("gear"), Color: ptr("blue")}

		q, ok := BuildUpdate(widgetSchema, 4, w.Fields())

		assert.True(t, ok)
		assert.Equal(t, "UPDATE widgets SET name = ?, color = ? WHERE id = ?", q.SQL)
		assert.Equal(t, []any{"gear", "blue", int64(4)}, q.Args)
	})

	t.Run("no fields is a no-op", func(t *testing.T) {
		_, ok := BuildUpdate(widgetSchema, 4, (&widget{}).Fields())

		assert.False(t, ok)
	})
}

func TestBuildDelete(t *testing.T) {
	q := BuildDelete(widgetSchema, 9)

	assert.Equal(t, "DELETE FROM widgets WHERE id = ?", q.SQL)
	assert.Equal(t, []any{int64(9)}, q.Args)
}

func TestOptional(t *testing.T) {
	assert.Equal(t, Field{Column: "name"}, Optional[string]("name", nil))
	assert.Equal(t, Field{Column: "name", Value: "", Set: true}, Optional("name", ptr("")))
}
