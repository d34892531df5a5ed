package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/piwi3910/LoadDeck/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []model.CargoItem
	Errors   []string
	Warnings []string
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// findColumn returns the index of the header cell matching name, ignoring case
// and surrounding whitespace, or -1.
func findColumn(header []string, name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, cell := range header {
		if strings.ToLower(strings.TrimSpace(cell)) == want {
			return i
		}
	}
	return -1
}

// ImportCSV imports cargo blocks from a CSV file.
// See importFromRows for how column selects the block text.
func ImportCSV(path, column string, settings model.Settings) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	result = ImportCSVFromReader(bytes.NewReader(data), delimiter, column, settings)
	result.Warnings = append(warnings, result.Warnings...)
	return result
}

// ImportCSVFromReader imports cargo blocks from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, column string, settings model.Settings) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, column, "Line", settings)
}

// ImportExcel imports cargo blocks from the first sheet of an Excel workbook.
func ImportExcel(path, column string, settings model.Settings) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, column, "Row", settings)
}

// importFromRows is the shared import logic for CSV and Excel data.
// With a column name, the first row is a header and each line of a row's
// cell in that column is one block. Without one, every row's non-empty cells
// are joined with spaces first.
func importFromRows(rows [][]string, column, rowPrefix string, settings model.Settings) ImportResult {
	result := ImportResult{Items: []model.CargoItem{}}

	colIndex := -1
	startRow := 0
	if strings.TrimSpace(column) != "" {
		colIndex = findColumn(rows[0], column)
		if colIndex == -1 {
			result.Errors = append(result.Errors, fmt.Sprintf("Column %q not found in header", column))
			return result
		}
		startRow = 1
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		var block string
		if colIndex >= 0 {
			if colIndex >= len(row) {
				continue
			}
			block = strings.TrimSpace(row[colIndex])
		} else {
			block = joinCells(row)
		}
		if block == "" {
			continue
		}

		// A cell may hold several cargo lines, each its own block.
		found := 0
		for _, line := range strings.Split(block, "\n") {
			for _, it := range ParseBlock(line, settings) {
				it.Index = len(result.Items)
				result.Items = append(result.Items, it)
				found++
			}
		}
		if found == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: no cargo detected in %q", rowLabel, block))
		}
	}

	return result
}

// joinCells joins the non-empty cells of a row with single spaces.
func joinCells(row []string) string {
	var parts []string
	for _, cell := range row {
		if c := strings.TrimSpace(cell); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}
