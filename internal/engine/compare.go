package engine

import (
	"fmt"

	"github.com/piwi3910/LoadDeck/internal/model"
)

// ComparisonResult holds the plan and computed statistics for a single strategy.
type ComparisonResult struct {
	Strategy      string
	Result        model.PlanResult
	PlacedCount   int
	UnplacedCount int
	LoadingMeters float64
	Efficiency    float64
}

// CompareStrategies plans the same items with each named packer and returns
// the results in the given order. An empty list compares every registered
// strategy.
func CompareStrategies(items []model.CargoItem, settings model.Settings, names []string) ([]ComparisonResult, error) {
	if len(names) == 0 {
		names = Strategies()
	}

	results := make([]ComparisonResult, 0, len(names))
	for _, name := range names {
		planner, err := NewWithStrategy(settings, name)
		if err != nil {
			return nil, fmt.Errorf("compare strategies: %w", err)
		}
		result := planner.Plan(items)

		results = append(results, ComparisonResult{
			Strategy:      name,
			Result:        result,
			PlacedCount:   len(result.Placed),
			UnplacedCount: len(result.NotPlaced),
			LoadingMeters: result.LoadingMeters(),
			Efficiency:    result.Efficiency(),
		})
	}

	return results, nil
}

// BestStrategy picks the result that places the most items, then the one
// using the fewest loading meters. Earlier entries win ties.
func BestStrategy(results []ComparisonResult) (ComparisonResult, bool) {
	if len(results) == 0 {
		return ComparisonResult{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		switch {
		case r.PlacedCount > best.PlacedCount:
			best = r
		case r.PlacedCount == best.PlacedCount && r.LoadingMeters < best.LoadingMeters-eps:
			best = r
		}
	}
	return best, true
}
