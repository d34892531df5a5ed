package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/LoadDeck/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestResult()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_NoPlacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.pdf")

	r := model.NewPlanResult(model.DefaultTrailer(), "guillotine")
	r.NotPlaced = []model.CargoItem{{Client: "Big", Length: 14, Width: 3}}

	if err := ExportLabels(path, r); !errors.Is(err, errNothingToExport) {
		t.Fatalf("expected %v, got %v", errNothingToExport, err)
	}
}

func TestCollectLabelInfos(t *testing.T) {
	result := buildTestResult()
	labels := CollectLabelInfos(result)

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}
	if labels[0].Client != "Client1" || labels[0].UnloadOrder != 2 {
		t.Errorf("unexpected first label: %+v", labels[0])
	}
	if labels[0].PlanID != result.ID {
		t.Errorf("expected plan id %q, got %q", result.ID, labels[0].PlanID)
	}
	if !labels[2].Rotated {
		t.Error("expected third label to be rotated")
	}
	if labels[2].Length != 1.0 || labels[2].Width != 1.2 {
		t.Errorf("expected footprint after rotation 1x1.2, got %gx%g", labels[2].Length, labels[2].Width)
	}
	if labels[2].Index != 2 {
		t.Errorf("expected item index 2, got %d", labels[2].Index)
	}
}

func TestLabelInfo_QRPayload(t *testing.T) {
	data, err := json.Marshal(LabelInfo{PlanID: "ab12cd34", Index: 4, Client: "Client1", UnloadOrder: 2, Length: 3, Width: 2})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	for _, key := range []string{"plan", "item", "client", "unload_order", "length_m", "width_m", "x_m", "y_m", "rotated"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("QR payload missing %q", key)
		}
	}
}

func TestExportLabels_MultiplePages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many_labels.pdf")

	r := model.NewPlanResult(model.DefaultTrailer(), "guillotine")
	for i := 0; i < 35; i++ {
		r.Placed = append(r.Placed, model.PlacedItem{
			Item: model.CargoItem{Index: i, Client: "Client", UnloadOrder: 1, Length: 0.3, Width: 0.2},
			X:    float64(i) * 0.3, Length: 0.3, Width: 0.2,
		})
	}

	if err := ExportLabels(path, r); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("PDF file missing or empty: %v", err)
	}
}
