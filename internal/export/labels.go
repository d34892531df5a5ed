package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/LoadDeck/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each item label's QR code.
type LabelInfo struct {
	PlanID      string  `json:"plan"`
	Index       int     `json:"item"`
	Client      string  `json:"client"`
	UnloadOrder int     `json:"unload_order"`
	Length      float64 `json:"length_m"`
	Width       float64 `json:"width_m"`
	Rotated     bool    `json:"rotated"`
	X           float64 `json:"x_m"`
	Y           float64 `json:"y_m"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // mm
	labelPadding    = 2.0  // mm
)

// ExportLabels generates a PDF of QR-coded labels, one per placed item, laid
// out on Avery 5160 sheets (3 x 10 on US Letter).
func ExportLabels(path string, result model.PlanResult) error {
	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return errNothingToExport
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("render label for item %d: %w", label.Index, err)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write labels %s: %w", path, err)
	}
	return nil
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.PlanID, info.Index)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	caption := fmt.Sprintf("%s #%d", info.Client, info.UnloadOrder)
	if pdf.GetStringWidth(caption) > textW {
		for len(caption) > 0 && pdf.GetStringWidth(caption+"...") > textW {
			caption = caption[:len(caption)-1]
		}
		caption += "..."
	}
	pdf.CellFormat(textW, 4.5, caption, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%g x %g m", info.Length, info.Width), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Plan %s @ (%.2f, %.2f)", info.PlanID, info.X, info.Y), "", 1, "L", false, 0, "")

	if info.Rotated {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Rotated 90\xb0", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos returns the label data for every placed item, in
// placement order.
func CollectLabelInfos(result model.PlanResult) []LabelInfo {
	labels := make([]LabelInfo, 0, len(result.Placed))
	for _, p := range result.Placed {
		labels = append(labels, LabelInfo{
			PlanID:      result.ID,
			Index:       p.Item.Index,
			Client:      p.Item.Client,
			UnloadOrder: p.Item.UnloadOrder,
			Length:      p.Length,
			Width:       p.Width,
			Rotated:     p.Rotated,
			X:           p.X,
			Y:           p.Y,
		})
	}
	return labels
}
