package export

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/piwi3910/LoadDeck/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF_Lines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.dxf")

	if err := ExportDXF(path, buildTestResult()); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot read back DXF: %v", err)
	}

	lines := 0
	for _, e := range drawing.Entities() {
		if _, ok := e.(*entity.Line); ok {
			lines++
		}
	}
	// trailer outline + 3 items, four edges each
	if lines != 16 {
		t.Errorf("expected 16 lines, got %d", lines)
	}
}

func TestExportDXF_NoPlacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")

	r := model.NewPlanResult(model.DefaultTrailer(), "guillotine")
	r.NotPlaced = []model.CargoItem{{Client: "Big", Length: 14, Width: 3}}

	if err := ExportDXF(path, r); !errors.Is(err, errNothingToExport) {
		t.Fatalf("expected %v, got %v", errNothingToExport, err)
	}
}

func TestClientLayer(t *testing.T) {
	tests := []struct {
		client string
		want   string
	}{
		{"Client1", "CLIENT_Client1"},
		{"a/b:c", "CLIENT_a_b_c"},
		{"Müller", "CLIENT_Müller"},
	}
	for _, tt := range tests {
		if got := ClientLayer(tt.client); got != tt.want {
			t.Errorf("ClientLayer(%q) = %q, want %q", tt.client, got, tt.want)
		}
	}
}

func TestClientLayers_CaseCollision(t *testing.T) {
	layers := ClientLayers([]string{"acme", "ACME", "Acme", "acme_2", "Beta", "acme"})

	want := map[string]string{
		"acme":   "CLIENT_acme",
		"ACME":   "CLIENT_ACME_2",
		"Acme":   "CLIENT_Acme_3",
		"acme_2": "CLIENT_acme_2_2",
		"Beta":   "CLIENT_Beta",
	}
	if len(layers) != len(want) {
		t.Fatalf("expected %d layers, got %v", len(want), layers)
	}
	for client, layer := range want {
		if layers[client] != layer {
			t.Errorf("layer for %q = %q, want %q", client, layers[client], layer)
		}
	}
}

func TestExportDXF_CaseDistinctClients(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.dxf")

	r := model.NewPlanResult(model.DefaultTrailer(), "guillotine")
	r.Placed = []model.PlacedItem{
		{Item: model.CargoItem{Index: 0, Client: "acme", UnloadOrder: 1, Length: 1.2, Width: 0.8}, Length: 1.2, Width: 0.8},
		{Item: model.CargoItem{Index: 1, Client: "ACME", UnloadOrder: 2, Length: 1.2, Width: 0.8}, X: 1.2, Length: 1.2, Width: 0.8},
	}

	if err := ExportDXF(path, r); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot read back DXF: %v", err)
	}

	perLayer := make(map[string]int)
	for _, e := range drawing.Entities() {
		if l, ok := e.(*entity.Line); ok && l.Layer() != nil {
			perLayer[l.Layer().Name()]++
		}
	}
	if perLayer["CLIENT_acme"] != 4 || perLayer["CLIENT_ACME_2"] != 4 {
		t.Errorf("expected four edges on each client layer, got %v", perLayer)
	}
}
