// Package importer turns pasted cargo text, or remark columns from CSV and
// Excel files, into cargo items. Unrecognized text is skipped silently; the
// extractor never fails on content.
package importer

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/piwi3910/LoadDeck/internal/model"
)

var (
	orderPattern = regexp.MustCompile(`#(\d+)`)
	dimsPattern  = regexp.MustCompile(`(\d+)\s*[xX]\s*(\d+)\s*[xX]\s*(\d+)`)
	ldmPattern   = regexp.MustCompile(`([\d.,]+)\s*ldm`)
)

// ParseText extracts cargo items from multi-line text, one block per line.
// Blank lines produce nothing. Item indices are assigned in output order.
func ParseText(text string, settings model.Settings) []model.CargoItem {
	return parseBlocks(strings.Split(text, "\n"), settings)
}

// ParseReader reads all of r and extracts cargo items from it.
func ParseReader(r io.Reader, settings model.Settings) ([]model.CargoItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read cargo text: %w", err)
	}
	return ParseText(string(data), settings), nil
}

// parseBlocks extracts items from each block in order and numbers them.
func parseBlocks(blocks []string, settings model.Settings) []model.CargoItem {
	items := []model.CargoItem{}
	for _, block := range blocks {
		for _, it := range ParseBlock(block, settings) {
			it.Index = len(items)
			items = append(items, it)
		}
	}
	return items
}

// ParseBlock extracts the items of a single block: dimension triples first,
// then the EUR marker, the FIN marker and finally the LDM marker. Returned
// items carry Index 0; callers number them.
func ParseBlock(block string, settings model.Settings) []model.CargoItem {
	block = strings.TrimRight(block, "\r")
	fields := strings.Fields(block)
	if len(fields) == 0 {
		return nil
	}

	client := fields[0]
	order := unloadOrder(block)
	source := strings.TrimSpace(block)
	lower := strings.ToLower(block)

	newItem := func(kind model.ItemKind, l, w, h float64) model.CargoItem {
		return model.CargoItem{
			Client:      client,
			UnloadOrder: order,
			Length:      l,
			Width:       w,
			Height:      h,
			Kind:        kind,
			Source:      source,
		}
	}

	var items []model.CargoItem

	// Dimension triples are centimeters
	for _, m := range dimsPattern.FindAllStringSubmatch(block, -1) {
		l, errL := strconv.Atoi(m[1])
		w, errW := strconv.Atoi(m[2])
		h, errH := strconv.Atoi(m[3])
		if errL != nil || errW != nil || errH != nil {
			continue
		}
		if l <= 0 || w <= 0 || h <= 0 {
			continue
		}
		items = append(items, newItem(model.KindDimensions, float64(l)/100, float64(w)/100, float64(h)/100))
	}

	for _, kind := range []model.ItemKind{model.KindEUR, model.KindFIN} {
		if !strings.Contains(lower, string(kind)) {
			continue
		}
		p, ok := settings.Pallet(string(kind))
		if !ok {
			continue
		}
		items = append(items, newItem(kind, p.Length, p.Width, settings.PlaceholderHeight))
	}

	if m := ldmPattern.FindStringSubmatch(lower); m != nil {
		ldm, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err == nil && ldm > 0 && settings.Trailer.Width > 0 {
			items = append(items, newItem(model.KindLDM, ldm, settings.Trailer.Width, settings.PlaceholderHeight))
		}
	}

	return items
}

// unloadOrder returns the first "#<n>" marker of the block, or the unordered
// sentinel when there is none or it does not fit an int.
func unloadOrder(block string) int {
	m := orderPattern.FindStringSubmatch(block)
	if m == nil {
		return model.UnorderedPriority
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return model.UnorderedPriority
	}
	return n
}
