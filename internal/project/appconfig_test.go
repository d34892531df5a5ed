package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/LoadDeck/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultTrailer = model.Trailer{Name: "Box truck", Length: 7.2, Width: 2.45}
	cfg.DefaultStrategy = "pak-bottom-left"
	cfg.ChartTheme = "dark"

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultTrailer != cfg.DefaultTrailer {
		t.Errorf("expected trailer %+v, got %+v", cfg.DefaultTrailer, loaded.DefaultTrailer)
	}
	if loaded.DefaultStrategy != "pak-bottom-left" {
		t.Errorf("expected strategy pak-bottom-left, got %s", loaded.DefaultStrategy)
	}
	if loaded.ChartTheme != "dark" {
		t.Errorf("expected ChartTheme=dark, got %s", loaded.ChartTheme)
	}
	if len(loaded.DefaultPallets) != 2 {
		t.Errorf("expected 2 pallets, got %d", len(loaded.DefaultPallets))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultTrailer != defaults.DefaultTrailer {
		t.Errorf("expected default trailer, got %+v", cfg.DefaultTrailer)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected listen addr :8080, got %s", cfg.ListenAddr)
	}
}

func TestLoadAppConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"default_strategy": "pak-best-area-fit"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if cfg.DefaultStrategy != "pak-best-area-fit" {
		t.Errorf("expected strategy from file, got %s", cfg.DefaultStrategy)
	}
	if cfg.DefaultTrailer != model.DefaultTrailer() {
		t.Errorf("missing fields should keep defaults, got trailer %+v", cfg.DefaultTrailer)
	}
	if cfg.DefaultPlaceholderHeight != 1.5 {
		t.Errorf("expected placeholder height 1.5, got %f", cfg.DefaultPlaceholderHeight)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAppConfig(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected config.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".loaddeck" {
		t.Errorf("expected .loaddeck directory, got %s", filepath.Dir(path))
	}
}
