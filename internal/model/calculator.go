package model

import "math"

// LoadEstimate holds a quick area-based check of a cargo list against a trailer.
type LoadEstimate struct {
	TotalFloorArea     float64 `json:"total_floor_area"`     // sum of item footprints (m²)
	TrailerArea        float64 `json:"trailer_area"`         // floor area of the trailer (m²)
	MinLoadingMeters   float64 `json:"min_loading_meters"`   // area / trailer width, a lower bound
	FillPercent        float64 `json:"fill_percent"`         // footprint area as % of floor
	OversizedItems     int     `json:"oversized_items"`      // items that fit in no orientation
	ExceedsTrailerArea bool    `json:"exceeds_trailer_area"` // not everything can fit, whatever the layout
}

// EstimateLoad computes area-based bounds for a cargo list. It does not place
// anything; the planner decides the actual layout.
func EstimateLoad(items []CargoItem, trailer Trailer) LoadEstimate {
	var area float64
	oversized := 0
	for _, it := range items {
		area += it.Area()
		if !FitsTrailer(it, trailer) {
			oversized++
		}
	}

	est := LoadEstimate{
		TotalFloorArea: area,
		TrailerArea:    trailer.Area(),
		OversizedItems: oversized,
	}
	if trailer.Width <= 0 || trailer.Length <= 0 {
		return est
	}

	est.MinLoadingMeters = area / trailer.Width
	est.FillPercent = area / est.TrailerArea * 100.0
	est.ExceedsTrailerArea = area > est.TrailerArea+1e-9
	return est
}

// FitsTrailer reports whether the item fits the empty trailer in at least one
// orientation.
func FitsTrailer(it CargoItem, trailer Trailer) bool {
	const eps = 1e-6
	normal := it.Length <= trailer.Length+eps && it.Width <= trailer.Width+eps
	rotated := it.Width <= trailer.Length+eps && it.Length <= trailer.Width+eps
	return normal || rotated
}

// RoundTo rounds v to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
