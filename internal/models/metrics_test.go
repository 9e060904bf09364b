package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricSchemaShape(t *testing.T) {
	schema := MetricSchema()
	require.Len(t, schema, MetricSchemaSize())

	// six categories, each contiguous and in presentation order
	seen := map[MetricCategory]bool{}
	var last MetricCategory
	for _, def := range schema {
		if def.Category != last {
			assert.False(t, seen[def.Category], "category %s appears twice", def.Category)
			seen[def.Category] = true
			last = def.Category
		}
	}
	assert.Len(t, seen, len(CategoryOrder))

	// no duplicate (category, name) pairs
	pairs := map[string]bool{}
	for _, def := range schema {
		key := string(def.Category) + "/" + def.Name
		assert.False(t, pairs[key], "duplicate schema entry %s", key)
		pairs[key] = true
	}
}

func TestMetricValueJSON(t *testing.T) {
	data, err := json.Marshal(Present(42.5))
	require.NoError(t, err)
	assert.Equal(t, "42.5", string(data))

	data, err = json.Marshal(Unavailable())
	require.NoError(t, err)
	assert.Equal(t, `"unavailable"`, string(data))

	var v MetricValue
	require.NoError(t, json.Unmarshal([]byte("3.14"), &v))
	f, ok := v.Value()
	assert.True(t, ok)
	assert.Equal(t, 3.14, f)

	require.NoError(t, json.Unmarshal([]byte(`"unavailable"`), &v))
	assert.False(t, v.IsAvailable())

	assert.Error(t, json.Unmarshal([]byte(`"other"`), &v))
}

func TestMetricSetGet(t *testing.T) {
	set := MetricSet{
		{Category: CategoryRisk, Name: MetricBeta, Value: Present(1.2), Unit: UnitRatio},
	}

	m, ok := set.Get(CategoryRisk, MetricBeta)
	require.True(t, ok)
	v, _ := m.Value.Value()
	assert.Equal(t, 1.2, v)

	_, ok = set.Get(CategoryGrowth, MetricBeta)
	assert.False(t, ok)
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "INCOME STATEMENT", CategoryLabel(CategoryIncomeStatement))
	assert.Equal(t, "PROFITABILITY & MARGINS", CategoryLabel(CategoryProfitabilityMargins))
	assert.Equal(t, "custom", CategoryLabel(MetricCategory("custom")))
}
