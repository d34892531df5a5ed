package engine

import (
	"testing"

	"github.com/piwi3910/LoadDeck/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareStrategies_AllRegistered(t *testing.T) {
	items := eurPallets(12)

	results, err := CompareStrategies(items, model.DefaultSettings(), nil)

	require.NoError(t, err)
	require.Len(t, results, len(Strategies()))
	for i, r := range results {
		assert.Equal(t, Strategies()[i], r.Strategy)
		assert.Equal(t, r.Strategy, r.Result.Strategy)
		assert.Equal(t, len(items), r.PlacedCount+r.UnplacedCount)
	}
}

func TestCompareStrategies_UnknownName(t *testing.T) {
	_, err := CompareStrategies(eurPallets(1), model.DefaultSettings(), []string{"guillotine", "nope"})

	assert.Error(t, err)
}

func TestBestStrategy(t *testing.T) {
	results := []ComparisonResult{
		{Strategy: "a", PlacedCount: 3, LoadingMeters: 5},
		{Strategy: "b", PlacedCount: 4, LoadingMeters: 6},
		{Strategy: "c", PlacedCount: 4, LoadingMeters: 4.8},
		{Strategy: "d", PlacedCount: 4, LoadingMeters: 4.8},
	}

	best, ok := BestStrategy(results)

	require.True(t, ok)
	assert.Equal(t, "c", best.Strategy)

	_, ok = BestStrategy(nil)
	assert.False(t, ok)
}
