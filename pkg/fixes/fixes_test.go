package fixes_test

import (
	"testing"

	"github.com/gnames/occdb/pkg/fixes"
	"github.com/gnames/occdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occurrenceTable() *schema.Table {
	return &schema.Table{
		Name: "occurrence",
		Columns: []schema.Column{
			{Name: "scientificName"},
			{Name: "catalogNumber"},
			{Name: "eventID"},
		},
		Rows: [][]string{
			{"Carex prairea Dewey", "BVF11-2", "BVF11"},
			{"Betula pumila L.", "LAL9-4", "LAL9"},
			{"Betula pumila L.", "LAL9-5", "LAL9"},
		},
	}
}

func TestApply(t *testing.T) {
	t.Run("substitutes matching rows only", func(t *testing.T) {
		tbl := occurrenceTable()
		rules := []fixes.Rule{{
			Table:       "occurrence",
			WhereColumn: "catalogNumber",
			WhereValue:  "LAL9-4",
			SetColumn:   "scientificName",
			SetValue:    "Betula papyrifera Marshall",
		}}

		changed, err := fixes.Apply(tbl, rules)
		require.NoError(t, err)
		assert.Equal(t, 1, changed)
		assert.Equal(t, "Betula papyrifera Marshall", tbl.Rows[1][0])

		// other rows untouched
		assert.Equal(t, "Carex prairea Dewey", tbl.Rows[0][0])
		assert.Equal(t, "Betula pumila L.", tbl.Rows[2][0])
	})

	t.Run("rules for other tables are skipped", func(t *testing.T) {
		tbl := occurrenceTable()
		rules := []fixes.Rule{{
			Table:       "event",
			WhereColumn: "eventID",
			WhereValue:  "LAL9",
			SetColumn:   "eventID",
			SetValue:    "LAL10",
		}}

		changed, err := fixes.Apply(tbl, rules)
		require.NoError(t, err)
		assert.Zero(t, changed)
	})

	t.Run("unknown column is an error", func(t *testing.T) {
		tbl := occurrenceTable()
		rules := []fixes.Rule{{
			Table:       "occurrence",
			WhereColumn: "barcode",
			WhereValue:  "x",
			SetColumn:   "scientificName",
			SetValue:    "y",
		}}

		_, err := fixes.Apply(tbl, rules)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "barcode")
	})

	t.Run("applying twice changes nothing the second time", func(t *testing.T) {
		tbl := occurrenceTable()
		rules := []fixes.Rule{{
			Table:       "occurrence",
			WhereColumn: "catalogNumber",
			WhereValue:  "LAL9-4",
			SetColumn:   "scientificName",
			SetValue:    "Betula papyrifera Marshall",
		}}

		_, err := fixes.Apply(tbl, rules)
		require.NoError(t, err)
		changed, err := fixes.Apply(tbl, rules)
		require.NoError(t, err)
		assert.Zero(t, changed)
	})
}

func TestRuleValidate(t *testing.T) {
	valid := fixes.Rule{
		Table:       "occurrence",
		WhereColumn: "catalogNumber",
		WhereValue:  "LAL9-4",
		SetColumn:   "scientificName",
		SetValue:    "Betula papyrifera Marshall",
	}
	assert.NoError(t, valid.Validate())

	empty := valid
	empty.SetValue = ""
	assert.NoError(t, empty.Validate(), "empty set_value is allowed")

	noTable := valid
	noTable.Table = ""
	require.Error(t, noTable.Validate())

	noWhere := valid
	noWhere.WhereValue = ""
	require.Error(t, noWhere.Validate())
}
