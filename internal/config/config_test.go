package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Mavwarf/iconforge/internal/pngenc"
)

func TestUnmarshalDefaults(t *testing.T) {
	var cfg Config
	if err := json.Unmarshal([]byte(`{}`), &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.Color != DefaultColorHex {
		t.Errorf("Color = %q, want %q", cfg.Color, DefaultColorHex)
	}
	if cfg.OutDir != DefaultOutDir {
		t.Errorf("OutDir = %q, want %q", cfg.OutDir, DefaultOutDir)
	}
	if len(cfg.Variants) != 3 {
		t.Errorf("len(Variants) = %d, want 3", len(cfg.Variants))
	}
	if !cfg.Log {
		t.Error("Log should default to true")
	}
}

func TestUnmarshalOverrides(t *testing.T) {
	data := []byte(`{
		"color": "#ff0000",
		"out_dir": "assets/icons",
		"variants": [{"name": "64x64.png", "size": 64}]
	}`)
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.Color != "#ff0000" {
		t.Errorf("Color = %q", cfg.Color)
	}
	if cfg.OutDir != "assets/icons" {
		t.Errorf("OutDir = %q", cfg.OutDir)
	}
	if len(cfg.Variants) != 1 || cfg.Variants[0].Size != 64 {
		t.Errorf("Variants = %+v", cfg.Variants)
	}
}

func TestParseColor(t *testing.T) {
	cfg := Default()
	c, err := cfg.ParseColor()
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if (c != pngenc.Color{R: 0, G: 123, B: 255}) {
		t.Errorf("color = %+v, want 0,123,255", c)
	}

	cfg.Color = "nope"
	if _, err := cfg.ParseColor(); err == nil {
		t.Error("expected error for bad color")
	}
}

func TestLoadExplicitPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "iconforge.json")
	if err := os.WriteFile(p, []byte(`{"color": "#112233"}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Color != "#112233" {
		t.Errorf("Color = %q, want #112233", cfg.Color)
	}
	// Untouched fields keep defaults.
	if cfg.OutDir != DefaultOutDir {
		t.Errorf("OutDir = %q, want default", cfg.OutDir)
	}
}

func TestLoadExplicitPathMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestLoadExplicitPathInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(p, []byte("{nope"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(p); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
