package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/piwi3910/LoadDeck/internal/model"
)

// pxPerMeter sets the default rendered size; the drawing itself is in meters.
const pxPerMeter = 80.0

const outlineStyle = "stroke:gray;stroke-width:0.03;fill:none"

func svgStart(w, h float64) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %f %f">`,
		w*pxPerMeter, h*pxPerMeter, w, h)
}

func groupStart(attrs ...string) string {
	return fmt.Sprintf("<g %s>", strings.Join(attrs, " "))
}

func svgRect(x, y, w, h float64, style string) string {
	return fmt.Sprintf(`
<rect x="%f" y="%f" width="%f" height="%f" style="%s" />`, x, y, w, h, style)
}

func svgText(x, y, size float64, txt string) string {
	return fmt.Sprintf(`
<text x="%f" y="%f" style="text-anchor:middle;dominant-baseline:middle;font-size:%.2fpx;fill:#000">%s</text>`,
		x, y, size, html.EscapeString(txt))
}

// SVG draws the trailer floor seen from above, front on the left, with one
// colored and labeled rectangle per placed item.
func SVG(r model.PlanResult) string {
	t := r.Trailer
	colors := ClientColors(r)

	var b strings.Builder
	b.WriteString(svgStart(t.Length, t.Width))
	b.WriteString(svgRect(0, 0, t.Length, t.Width, "fill:#f5f5f5;stroke:none"))

	b.WriteString(groupStart(`id="cargo"`))
	for _, p := range r.Placed {
		fill := colors[p.Item.Client].Hex()
		b.WriteString(svgRect(p.X, p.Y, p.Length, p.Width, "fill:"+fill+";stroke:#1e1e1e;stroke-width:0.02"))
	}
	b.WriteString("</g>")

	b.WriteString(groupStart(`id="labels"`))
	for _, p := range r.Placed {
		label := Label(p.Item)
		size := labelSize(len(label), p.Length, p.Width)
		b.WriteString(svgText(p.X+p.Length/2, p.Y+p.Width/2, size, label))
	}
	b.WriteString("</g>")

	b.WriteString(svgRect(0, 0, t.Length, t.Width, outlineStyle))
	b.WriteString("</svg>")
	return b.String()
}

// labelSize fits a caption of n characters into a w x h box, capped so short
// labels on large items stay readable.
func labelSize(n int, w, h float64) float64 {
	if n == 0 {
		n = 1
	}
	size := 1.6 * w / float64(n)
	if limit := h / 3; size > limit {
		size = limit
	}
	if size > 0.3 {
		size = 0.3
	}
	return size
}
