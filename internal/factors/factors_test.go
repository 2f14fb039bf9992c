package factors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Factors(t *testing.T) {
	table := Default()

	tests := []struct {
		cat      Category
		activity string
		want     float64
	}{
		{Transportation, "car", 0.24},
		{Transportation, "bus", 0.05},
		{Transportation, "bicycle", 0},
		{Transportation, "walk", 0},
		{Energy, "electricity", 0.45},
		{Energy, "gas", 2.5},
		{Diet, "meat", 5.0},
		{Diet, "vegetarian", 2.0},
		{Diet, "vegan", 1.5},
	}

	for _, tt := range tests {
		t.Run(string(tt.cat)+"/"+tt.activity, func(t *testing.T) {
			got, ok := table.Factor(tt.cat, tt.activity)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDefault_Order(t *testing.T) {
	assert.Equal(t, []Category{Transportation, Energy, Diet}, Default().Categories())
}

func TestTable_Lookups(t *testing.T) {
	table := Default()

	_, ok := table.Factor(Transportation, "rocket")
	assert.False(t, ok)
	_, ok = table.Factor("travel", "car")
	assert.False(t, ok)

	assert.True(t, table.HasCategory(Diet))
	assert.False(t, table.HasCategory("travel"))
	assert.Equal(t, []string{"electricity", "gas"}, table.Activities(Energy))
	assert.Equal(t, []string{"bicycle", "bus", "car", "walk"}, table.Activities(Transportation))
}

func TestNewTable_CopiesInput(t *testing.T) {
	src := map[Category]map[string]float64{
		"water": {"shower": 0.1},
	}
	table := NewTable(src)
	src["water"]["shower"] = 99

	got, ok := table.Factor("water", "shower")
	require.True(t, ok)
	assert.InDelta(t, 0.1, got, 1e-9)
}

func TestNewTable_OrderFallsBackToSorted(t *testing.T) {
	table := NewTable(map[Category]map[string]float64{
		"b": {}, "a": {}, "c": {},
	}, "c")
	assert.Equal(t, []Category{"c", "a", "b"}, table.Categories())
}

func TestNilTable(t *testing.T) {
	var table *Table
	assert.False(t, table.HasCategory(Diet))
	assert.Nil(t, table.Categories())
	_, ok := table.Factor(Diet, "meat")
	assert.False(t, ok)
}

func TestSuggestions(t *testing.T) {
	s := DefaultSuggestions()
	assert.Contains(t, s.For(Transportation), "public transport")
	assert.Contains(t, s.For(Energy), "renewable")
	assert.Contains(t, s.For(Diet), "plant-based")
	assert.Equal(t, FallbackSuggestion, s.For("travel"))

	var none *Suggestions
	assert.Equal(t, FallbackSuggestion, none.For(Diet))
}
