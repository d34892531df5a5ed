package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/LoadDeck/internal/model"
)

// DefaultInventoryPath returns the default file path for the inventory file.
// This is located at ~/.loaddeck/inventory.json.
func DefaultInventoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".loaddeck", "inventory.json"), nil
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create inventory dir: %w", err)
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, fmt.Errorf("read inventory %s: %w", path, err)
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, fmt.Errorf("parse inventory %s: %w", path, err)
	}
	if err := ValidateInventory(inv); err != nil {
		return model.Inventory{}, fmt.Errorf("inventory %s: %w", path, err)
	}
	return inv, nil
}

// LoadOrCreateInventory loads the inventory from the default path.
// If the file does not exist, it creates one with default entries.
func LoadOrCreateInventory() (model.Inventory, string, error) {
	path, err := DefaultInventoryPath()
	if err != nil {
		return model.DefaultInventory(), "", err
	}
	inv, err := LoadInventory(path)
	return inv, path, err
}

// ValidateInventory rejects presets without a name or with a non-positive
// floor size.
func ValidateInventory(inv model.Inventory) error {
	for i, t := range inv.Trailers {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("trailer %d has no name", i+1)
		}
		if t.Length <= 0 || t.Width <= 0 {
			return fmt.Errorf("trailer %q has invalid size %gx%g", t.Name, t.Length, t.Width)
		}
	}
	return nil
}

// ImportInventory imports trailer presets from a user-specified JSON file,
// merging them into the existing inventory. Duplicate IDs and names are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, fmt.Errorf("read %s: %w", path, err)
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := ValidateInventory(imported); err != nil {
		return existing, err
	}

	seen := make(map[string]bool, len(existing.Trailers))
	for _, t := range existing.Trailers {
		seen[t.ID] = true
		seen[strings.ToLower(t.Name)] = true
	}

	merged := model.Inventory{Trailers: append([]model.TrailerPreset(nil), existing.Trailers...)}
	for _, t := range imported.Trailers {
		if seen[t.ID] || seen[strings.ToLower(t.Name)] {
			continue
		}
		merged.Trailers = append(merged.Trailers, t)
		seen[t.ID] = true
		seen[strings.ToLower(t.Name)] = true
	}

	return merged, nil
}
