// Package engine plans cargo footprints onto a single trailer floor.
package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/piwi3910/LoadDeck/internal/importer"
	"github.com/piwi3910/LoadDeck/internal/model"
)

// DefaultStrategy is the packer used when settings name none or an unknown one.
const DefaultStrategy = "guillotine"

// ErrNoItems is returned by Run when the text yields no cargo items.
var ErrNoItems = errors.New("no items detected")

type packerFactory func(length, width float64) Packer

var strategies = map[string]packerFactory{
	DefaultStrategy:          newGuillotinePacker,
	"pak-best-area-fit":      newPakPacker(pakBestAreaFit),
	"pak-best-short-side":    newPakPacker(pakBestShortSide),
	"pak-best-long-side":     newPakPacker(pakBestLongSide),
	"pak-bottom-left":        newPakPacker(pakBottomLeft),
	"pak-best-similar-ratio": newPakPacker(pakBestSimilarRatio),
}

// Strategies returns the registered packer names, default first, rest sorted.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		if name != DefaultStrategy {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{DefaultStrategy}, names...)
}

// Planner runs the layout for one trailer.
type Planner struct {
	Settings  model.Settings
	strategy  string
	newPacker packerFactory
}

// New returns a planner for settings.Strategy, falling back to the default
// packer when the name is not registered.
func New(settings model.Settings) *Planner {
	p, err := NewWithStrategy(settings, settings.Strategy)
	if err != nil {
		p, _ = NewWithStrategy(settings, DefaultStrategy)
	}
	return p
}

// NewWithStrategy returns a planner using the named packer.
func NewWithStrategy(settings model.Settings, name string) (*Planner, error) {
	if name == "" {
		name = DefaultStrategy
	}
	factory, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown packing strategy %q", name)
	}
	settings.Strategy = name
	return &Planner{Settings: settings, strategy: name, newPacker: factory}, nil
}

// Strategy returns the packer name the planner uses.
func (p *Planner) Strategy() string {
	return p.strategy
}

// Plan places items on the trailer floor. Items are fed to the packer in
// unload order (stable), each at most once; every input item ends up in
// exactly one of Placed or NotPlaced. Placement records are tied back to
// items by the item itself, never by name or coordinates.
func (p *Planner) Plan(items []model.CargoItem) model.PlanResult {
	trailer := p.Settings.Trailer
	result := model.NewPlanResult(trailer, p.strategy)

	sorted := model.SortByUnloadOrder(items)
	if trailer.Length <= 0 || trailer.Width <= 0 {
		result.NotPlaced = append(result.NotPlaced, sorted...)
		return result
	}

	packer := p.newPacker(trailer.Length, trailer.Width)

	for _, it := range sorted {
		if it.Length <= 0 || it.Width <= 0 {
			result.NotPlaced = append(result.NotPlaced, it)
			continue
		}

		x, y, rotated, ok := packer.Insert(it.Length, it.Width)
		if !ok {
			result.NotPlaced = append(result.NotPlaced, it)
			continue
		}

		placed := model.PlacedItem{Item: it, X: x, Y: y, Length: it.Length, Width: it.Width, Rotated: rotated}
		if rotated {
			placed.Length, placed.Width = it.Width, it.Length
		}

		if !p.valid(placed, result.Placed) {
			result.NotPlaced = append(result.NotPlaced, it)
			continue
		}
		result.Placed = append(result.Placed, placed)
	}

	return result
}

// valid checks a placement against the trailer bounds and everything placed
// so far.
func (p *Planner) valid(pl model.PlacedItem, placed []model.PlacedItem) bool {
	if !p.Settings.Trailer.Contains(pl, eps) {
		return false
	}
	for _, other := range placed {
		if pl.Overlaps(other, eps) {
			return false
		}
	}
	return true
}

// Run is one full pass: extract items from text and plan them. It returns
// ErrNoItems when nothing was extracted.
func Run(text string, settings model.Settings) ([]model.CargoItem, model.PlanResult, error) {
	items := importer.ParseText(text, settings)
	if len(items) == 0 {
		return items, model.PlanResult{}, ErrNoItems
	}
	return items, New(settings).Plan(items), nil
}
