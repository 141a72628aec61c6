package schema_test

import (
	"strings"
	"testing"

	"github.com/gnames/occdb/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func TestInferColumnType(t *testing.T) {
	long := strings.Repeat("x", 300)

	tests := []struct {
		name   string
		values []string
		want   schema.ColumnType
	}{
		{
			name:   "short strings",
			values: []string{"Carex prairea Dewey", "Betula pumila L."},
			want:   schema.ShortText,
		},
		{
			name:   "one long remark flips the column",
			values: []string{"short", long},
			want:   schema.LongText,
		},
		{
			name:   "value exactly at threshold is long",
			values: []string{strings.Repeat("y", 255)},
			want:   schema.LongText,
		},
		{
			name:   "value one under threshold is short",
			values: []string{strings.Repeat("y", 254)},
			want:   schema.ShortText,
		},
		{
			name:   "integers",
			values: []string{"1999", "2001", "2020"},
			want:   schema.Integer,
		},
		{
			name:   "coordinates are real",
			values: []string{"46.75", "-92.12"},
			want:   schema.Real,
		},
		{
			name:   "mixed numbers and text fall back to text",
			values: []string{"12", "BVF"},
			want:   schema.ShortText,
		},
		{
			name:   "empty values are skipped",
			values: []string{"", "7", ""},
			want:   schema.Integer,
		},
		{
			name:   "all empty is short text",
			values: []string{"", ""},
			want:   schema.ShortText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schema.InferColumnType(tt.values, 255)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInferColumns(t *testing.T) {
	tbl := &schema.Table{
		Name: "event",
		Columns: []schema.Column{
			{Name: "eventID"}, {Name: "year"}, {Name: "decimalLatitude"},
		},
		Rows: [][]string{
			{"BVF11", "2001", "46.75"},
			{"LAL9", "1999", "47.10"},
		},
	}

	cols := schema.InferColumns(tbl, 255)
	assert.Equal(t, schema.ShortText, cols[0].Type)
	assert.Equal(t, schema.Integer, cols[1].Type)
	assert.Equal(t, schema.Real, cols[2].Type)

	// original columns stay untyped
	assert.Equal(t, schema.ShortText, tbl.Columns[1].Type)
}

func TestValidIdent(t *testing.T) {
	assert.True(t, schema.ValidIdent("occurrence"))
	assert.True(t, schema.ValidIdent("import_meta"))
	assert.True(t, schema.ValidIdent("decimalLatitude"))
	assert.False(t, schema.ValidIdent("occurrence; DROP TABLE event"))
	assert.False(t, schema.ValidIdent("2fast"))
	assert.False(t, schema.ValidIdent(""))
}
