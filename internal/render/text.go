// Package render turns a plan result into human-readable output: a text
// report, an SVG floor diagram and a per-client area chart.
package render

import (
	"fmt"
	"strings"

	"github.com/piwi3910/LoadDeck/internal/model"
)

// Label is the caption drawn on a placed item.
func Label(it model.CargoItem) string {
	return fmt.Sprintf("%s #%d", it.Client, it.UnloadOrder)
}

// Warnings lists the items that did not fit, one line each.
func Warnings(notPlaced []model.CargoItem) []string {
	out := make([]string, 0, len(notPlaced))
	for _, it := range notPlaced {
		out = append(out, fmt.Sprintf("- %s %gx%gm", it.Client, it.Length, it.Width))
	}
	return out
}

// Text returns the plain-text report printed by the CLI.
func Text(r model.PlanResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Trailer: %s %gx%gm (%s)\n", r.Trailer.Name, r.Trailer.Length, r.Trailer.Width, r.Strategy)
	fmt.Fprintf(&b, "Placed: %d of %d items\n", len(r.Placed), r.ItemCount())
	fmt.Fprintf(&b, "Loading meters: %.2f m\n", r.LoadingMeters())
	fmt.Fprintf(&b, "Floor usage: %.1f%%\n", r.Efficiency())

	if len(r.Placed) > 0 {
		b.WriteString("\nLayout:\n")
		for _, p := range r.Placed {
			rot := ""
			if p.Rotated {
				rot = " R"
			}
			fmt.Fprintf(&b, "  %-20s %gx%gm at (%.2f, %.2f)%s\n", Label(p.Item), p.Length, p.Width, p.X, p.Y, rot)
		}
	}

	if len(r.NotPlaced) > 0 {
		b.WriteString("\nNot placed:\n")
		for _, w := range Warnings(r.NotPlaced) {
			b.WriteString(w)
			b.WriteByte('\n')
		}
	}

	return b.String()
}
