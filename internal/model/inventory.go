package model

import (
	"strings"

	"github.com/google/uuid"
)

// TrailerPreset represents a reusable trailer floor definition.
type TrailerPreset struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

// NewTrailerPreset creates a new TrailerPreset with a generated ID.
func NewTrailerPreset(name string, length, width float64) TrailerPreset {
	return TrailerPreset{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Length: length,
		Width:  width,
	}
}

// ToTrailer converts a TrailerPreset into the Trailer the planner uses.
func (tp TrailerPreset) ToTrailer() Trailer {
	return Trailer{Name: tp.Name, Length: tp.Length, Width: tp.Width}
}

// Inventory holds the user's saved trailer presets.
type Inventory struct {
	Trailers []TrailerPreset `json:"trailers"`
}

// DefaultInventory returns an inventory populated with common trailer floors.
func DefaultInventory() Inventory {
	return Inventory{
		Trailers: []TrailerPreset{
			NewTrailerPreset("Semi-trailer", 13.6, 2.45),
			NewTrailerPreset("Mega trailer", 13.6, 2.48),
			NewTrailerPreset("Box truck", 7.2, 2.45),
			NewTrailerPreset("40ft container", 12.03, 2.35),
			NewTrailerPreset("20ft container", 5.9, 2.35),
		},
	}
}

// FindTrailer looks a preset up by ID or case-insensitive name.
func (inv Inventory) FindTrailer(key string) (TrailerPreset, bool) {
	key = strings.TrimSpace(key)
	for _, t := range inv.Trailers {
		if t.ID == key || strings.EqualFold(t.Name, key) {
			return t, true
		}
	}
	return TrailerPreset{}, false
}

// TrailerNames returns the preset names in inventory order.
func (inv Inventory) TrailerNames() []string {
	names := make([]string, 0, len(inv.Trailers))
	for _, t := range inv.Trailers {
		names = append(names, t.Name)
	}
	return names
}
