package export

import (
	"fmt"
	"strings"

	"github.com/piwi3910/LoadDeck/internal/model"
	"github.com/piwi3910/LoadDeck/internal/render"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

// LayerTrailer holds the trailer floor outline in the DXF drawing.
const LayerTrailer = "TRAILER"

// ExportDXF writes the floor plan as a DXF drawing in meters: the trailer
// outline plus one rectangle and caption per placed item, each client on its
// own layer.
func ExportDXF(path string, result model.PlanResult) error {
	if len(result.Placed) == 0 {
		return errNothingToExport
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(LayerTrailer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerTrailer, err)
	}
	t := result.Trailer
	if err := drawRect(d, 0, 0, t.Length, t.Width); err != nil {
		return err
	}

	layers := ClientLayers(result.Clients())
	added := make(map[string]bool)
	for _, p := range result.Placed {
		layer := layers[p.Item.Client]
		if !added[layer] {
			if _, err := d.AddLayer(layer, dxf.DefaultColor, dxf.DefaultLineType, false); err != nil {
				return fmt.Errorf("add layer %s: %w", layer, err)
			}
			added[layer] = true
		}
		if err := d.ChangeLayer(layer); err != nil {
			return fmt.Errorf("select layer %s: %w", layer, err)
		}
		if err := drawRect(d, p.X, p.Y, p.Length, p.Width); err != nil {
			return err
		}

		height := p.Width / 6
		if height > 0.2 {
			height = 0.2
		}
		if _, err := d.Text(render.Label(p.Item), p.X+0.05, p.Y+p.Width/2, 0, height); err != nil {
			return fmt.Errorf("add caption for item %d: %w", p.Item.Index, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("write dxf %s: %w", path, err)
	}
	return nil
}

// drawRect adds the four edges of an axis-aligned rectangle on the current layer.
func drawRect(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i, a := range corners {
		b := corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return fmt.Errorf("add line: %w", err)
		}
	}
	return nil
}

// ClientLayer returns the DXF layer name for a client. Characters DXF does
// not allow in layer names become underscores; case is kept.
func ClientLayer(client string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>/\":;?*|=',`, r) || r < ' ' {
			return '_'
		}
		return r
	}, client)
	return "CLIENT_" + name
}

// ClientLayers assigns every client its own layer. CAD programs compare
// layer names without case, so a name that collides with an earlier one
// gets a numeric suffix.
func ClientLayers(clients []string) map[string]string {
	layers := make(map[string]string, len(clients))
	used := make(map[string]bool, len(clients))
	for _, c := range clients {
		if _, ok := layers[c]; ok {
			continue
		}
		base := ClientLayer(c)
		name := base
		for n := 2; used[strings.ToUpper(name)]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		used[strings.ToUpper(name)] = true
		layers[c] = name
	}
	return layers
}
