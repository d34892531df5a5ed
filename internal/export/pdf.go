// Package export writes plan results to files: a PDF load sheet, QR-coded
// item labels, an Excel workbook and a DXF floor drawing.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/LoadDeck/internal/model"
	"github.com/piwi3910/LoadDeck/internal/render"
)

// errNothingToExport is returned when a plan has nothing the export can show.
var errNothingToExport = errors.New("nothing to export")

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	maxDrawH     = 80.0
)

// ExportPDF writes a load sheet: the floor layout with a legend on the first
// page, followed by a summary page with per-client totals and the items that
// did not fit.
func ExportPDF(path string, result model.PlanResult) error {
	if result.ItemCount() == 0 {
		return errNothingToExport
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	colors := render.ClientColors(result)

	pdf.AddPage()
	renderLayoutPage(pdf, result, colors)

	pdf.AddPage()
	renderSummaryPage(pdf, result, colors)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

// renderLayoutPage draws the trailer floor on the current PDF page.
func renderLayoutPage(pdf *fpdf.Fpdf, result model.PlanResult, colors map[string]render.Color) {
	t := result.Trailer

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Load plan %s: %s (%.2f x %.2f m)", result.ID, t.Name, t.Length, t.Width)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d of %d | Loading meters: %.2f m | Floor used: %.2f of %.2f m² (%.1f%%) | Strategy: %s",
		len(result.Placed), result.ItemCount(), result.LoadingMeters(), result.UsedArea(), result.TotalArea(), result.Efficiency(), result.Strategy)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	if t.Length <= 0 || t.Width <= 0 {
		return
	}
	scale := math.Min(drawWidth/t.Length, maxDrawH/t.Width)
	canvasW := t.Length * scale
	canvasH := t.Width * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Trailer floor
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Front marker
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(offsetX, offsetY-5)
	pdf.CellFormat(20, 4, "FRONT", "", 0, "L", false, 0, "")

	for _, p := range result.Placed {
		col := colors[p.Item.Client]
		pw := p.Length * scale
		ph := p.Width * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 12 && ph > 6 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := render.Label(p.Item)
			dims := fmt.Sprintf("%gx%g", p.Length, p.Width)
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 12 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, t, offsetX, offsetY, canvasW, canvasH)
	drawClientLegend(pdf, result, colors, offsetY+canvasH+8)
}

// drawDimensionAnnotations adds length and width labels outside the floor rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, t model.Trailer, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	lengthLabel := fmt.Sprintf("%.2f m", t.Length)
	lw := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lw)/2, offsetY+canvasH+1)
	pdf.CellFormat(lw, 4, lengthLabel, "", 0, "C", false, 0, "")

	widthLabel := fmt.Sprintf("%.2f m", t.Width)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	ww := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX-3-ww/2, offsetY+canvasH/2-2)
	pdf.CellFormat(ww, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawClientLegend renders one swatch per client below the layout.
func drawClientLegend(pdf *fpdf.Fpdf, result model.PlanResult, colors map[string]render.Color, startY float64) {
	byClient := result.ByClient()
	if len(byClient) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Clients:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, ca := range byClient {
		col := colors[ca.Client]
		label := fmt.Sprintf("%s (%d, %.2f m²)", ca.Client, ca.Items, ca.Area)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws per-client totals and the not-placed list.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PlanResult, colors map[string]render.Color) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Load Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Trailer", fmt.Sprintf("%s (%.2f x %.2f m)", result.Trailer.Name, result.Trailer.Length, result.Trailer.Width)},
		{"Items Placed", fmt.Sprintf("%d", len(result.Placed))},
		{"Items Not Placed", fmt.Sprintf("%d", len(result.NotPlaced))},
		{"Loading Meters", fmt.Sprintf("%.2f m", result.LoadingMeters())},
		{"Floor Usage", fmt.Sprintf("%.1f%%", result.Efficiency())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Client Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{10, 80, 30, 40, 40}
	headers := []string{"", "Client", "Items", "Floor Area", "Share"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	used := result.UsedArea()
	for i, ca := range result.ByClient() {
		share := 0.0
		if used > 0 {
			share = ca.Area / used * 100
		}
		rowData := []string{
			"",
			ca.Client,
			fmt.Sprintf("%d", ca.Items),
			fmt.Sprintf("%.2f m²", ca.Area),
			fmt.Sprintf("%.1f%%", share),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		col := colors[ca.Client]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(marginLeft+3, y+1.5, 4, 3, "F")
		y += 6
	}

	if len(result.NotPlaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Items that did not fit", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, line := range render.Warnings(result.NotPlaced) {
			if y > pageHeight-marginBottom-8 {
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, line, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by LoadDeck - trailer floor planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 30:
		return 8
	case minDim > 15:
		return 7
	default:
		return 6
	}
}
