package render

import (
	"fmt"

	"github.com/piwi3910/LoadDeck/internal/model"
)

// Color is an RGB fill used for one client across every output.
type Color struct {
	R, G, B int
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette is shared by the SVG, chart, PDF and DXF outputs.
var Palette = []Color{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// ClientColors assigns palette entries to clients in order of first
// appearance (placed items first, then not-placed). The palette wraps.
func ClientColors(r model.PlanResult) map[string]Color {
	colors := make(map[string]Color)
	for i, client := range r.Clients() {
		colors[client] = Palette[i%len(Palette)]
	}
	return colors
}
