package model

import (
	"sort"

	"github.com/google/uuid"
)

// UnorderedPriority is the unload order given to blocks without a "#<n>" marker.
// It sorts after every explicit order.
const UnorderedPriority = 999

// ItemKind records which marker in a text block produced a cargo item.
type ItemKind string

const (
	KindDimensions ItemKind = "dims" // explicit LxWxH triple in cm
	KindEUR        ItemKind = "eur"  // EUR pallet marker
	KindFIN        ItemKind = "fin"  // FIN pallet marker
	KindLDM        ItemKind = "ldm"  // linear meters of full-width floor
)

func (k ItemKind) String() string {
	switch k {
	case KindEUR:
		return "EUR pallet"
	case KindFIN:
		return "FIN pallet"
	case KindLDM:
		return "Loading meters"
	default:
		return "Dimensions"
	}
}

// CargoItem is a single footprint extracted from a text block. All sizes are meters.
type CargoItem struct {
	Index       int      `json:"index"` // stable identity assigned at extraction
	Client      string   `json:"client"`
	UnloadOrder int      `json:"unload_order"`
	Length      float64  `json:"length"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"` // advisory only, not used by the planner
	Kind        ItemKind `json:"kind"`
	Source      string   `json:"source,omitempty"`
}

// Area returns the floor footprint in square meters.
func (c CargoItem) Area() float64 {
	return c.Length * c.Width
}

// Unordered reports whether the item came from a block without an unload marker.
func (c CargoItem) Unordered() bool {
	return c.UnloadOrder >= UnorderedPriority
}

// PlacedItem is a cargo item with its position on the trailer floor.
type PlacedItem struct {
	Item    CargoItem `json:"item"`
	X       float64   `json:"x"`      // along the trailer length, from the front
	Y       float64   `json:"y"`      // across the trailer width
	Length  float64   `json:"length"` // footprint along X after rotation
	Width   float64   `json:"width"`  // footprint along Y after rotation
	Rotated bool      `json:"rotated"`
}

// Overlaps returns true if the two footprints share any interior area.
// Touching edges do not count.
func (p PlacedItem) Overlaps(o PlacedItem, eps float64) bool {
	return p.X < o.X+o.Length-eps && p.X+p.Length > o.X+eps &&
		p.Y < o.Y+o.Width-eps && p.Y+p.Width > o.Y+eps
}

// Trailer is the single bin the planner fills.
type Trailer struct {
	Name   string  `json:"name"`
	Length float64 `json:"length"` // m
	Width  float64 `json:"width"`  // m
}

// Area returns the floor area in square meters.
func (t Trailer) Area() float64 {
	return t.Length * t.Width
}

// Contains reports whether a placement lies fully inside the trailer floor.
func (t Trailer) Contains(p PlacedItem, eps float64) bool {
	return p.X >= -eps && p.Y >= -eps &&
		p.X+p.Length <= t.Length+eps &&
		p.Y+p.Width <= t.Width+eps
}

// PalletSize is a named standard pallet footprint.
type PalletSize struct {
	Name   string  `json:"name"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

// DefaultTrailer is a standard 13.6 m semi-trailer.
func DefaultTrailer() Trailer {
	return Trailer{Name: "Semi-trailer", Length: 13.6, Width: 2.45}
}

// DefaultPallets returns the standard pallet table.
func DefaultPallets() []PalletSize {
	return []PalletSize{
		{Name: "eur", Length: 1.2, Width: 0.8},
		{Name: "fin", Length: 1.2, Width: 1.0},
	}
}

// Settings is the immutable configuration shared by the extractor and planner.
type Settings struct {
	Trailer           Trailer      `json:"trailer"`
	Pallets           []PalletSize `json:"pallets"`
	PlaceholderHeight float64      `json:"placeholder_height"` // m, for pallet and ldm items
	Strategy          string       `json:"strategy"`
}

// Pallet returns the pallet size registered under name.
func (s Settings) Pallet(name string) (PalletSize, bool) {
	for _, p := range s.Pallets {
		if p.Name == name {
			return p, true
		}
	}
	return PalletSize{}, false
}

func DefaultSettings() Settings {
	return Settings{
		Trailer:           DefaultTrailer(),
		Pallets:           DefaultPallets(),
		PlaceholderHeight: 1.5,
		Strategy:          "guillotine",
	}
}

// PlanResult holds one planning run.
type PlanResult struct {
	ID        string       `json:"id"`
	Trailer   Trailer      `json:"trailer"`
	Strategy  string       `json:"strategy"`
	Placed    []PlacedItem `json:"placed"`
	NotPlaced []CargoItem  `json:"not_placed"`
}

// NewPlanResult returns an empty result with a fresh run ID.
func NewPlanResult(trailer Trailer, strategy string) PlanResult {
	return PlanResult{
		ID:        uuid.New().String()[:8],
		Trailer:   trailer,
		Strategy:  strategy,
		Placed:    []PlacedItem{},
		NotPlaced: []CargoItem{},
	}
}

// ItemCount returns the number of items that went into the run.
func (r PlanResult) ItemCount() int {
	return len(r.Placed) + len(r.NotPlaced)
}

// UsedArea returns the floor area covered by placed items.
func (r PlanResult) UsedArea() float64 {
	var total float64
	for _, p := range r.Placed {
		total += p.Length * p.Width
	}
	return total
}

// TotalArea returns the trailer floor area.
func (r PlanResult) TotalArea() float64 {
	return r.Trailer.Area()
}

// Efficiency returns the usage percentage.
func (r PlanResult) Efficiency() float64 {
	ta := r.TotalArea()
	if ta == 0 {
		return 0
	}
	return (r.UsedArea() / ta) * 100.0
}

// LoadingMeters returns how much of the trailer length the placed cargo occupies.
func (r PlanResult) LoadingMeters() float64 {
	var lm float64
	for _, p := range r.Placed {
		if end := p.X + p.Length; end > lm {
			lm = end
		}
	}
	return lm
}

// ClientArea is the floor area placed for one client.
type ClientArea struct {
	Client string  `json:"client"`
	Area   float64 `json:"area"`
	Items  int     `json:"items"`
}

// ByClient sums placed floor area per client, in order of first appearance.
func (r PlanResult) ByClient() []ClientArea {
	idx := make(map[string]int)
	var out []ClientArea
	for _, p := range r.Placed {
		i, ok := idx[p.Item.Client]
		if !ok {
			i = len(out)
			idx[p.Item.Client] = i
			out = append(out, ClientArea{Client: p.Item.Client})
		}
		out[i].Area += p.Length * p.Width
		out[i].Items++
	}
	return out
}

// Clients returns every client in the run, placed or not, in first-seen
// order of the placed list followed by the not-placed list.
func (r PlanResult) Clients() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.Placed {
		if !seen[p.Item.Client] {
			seen[p.Item.Client] = true
			out = append(out, p.Item.Client)
		}
	}
	for _, c := range r.NotPlaced {
		if !seen[c.Client] {
			seen[c.Client] = true
			out = append(out, c.Client)
		}
	}
	return out
}

// SortByUnloadOrder returns a copy of items stably sorted by unload order.
// Items sharing an order keep their extraction order.
func SortByUnloadOrder(items []CargoItem) []CargoItem {
	sorted := make([]CargoItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UnloadOrder < sorted[j].UnloadOrder
	})
	return sorted
}
