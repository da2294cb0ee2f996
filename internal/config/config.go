package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/Mavwarf/iconforge/internal/icongen"
	"github.com/Mavwarf/iconforge/internal/paths"
	"github.com/Mavwarf/iconforge/internal/pngenc"
)

// DefaultColorHex is the default placeholder fill color.
const DefaultColorHex = "#007bff"

// DefaultOutDir is where icons land when no directory is configured.
const DefaultOutDir = "."

// Config holds iconforge settings parsed from iconforge.json. Every field
// has a working default; the config file is optional.
type Config struct {
	Color    string            `json:"color,omitempty"`    // hex fill for placeholders
	OutDir   string            `json:"out_dir,omitempty"`  // output directory
	Variants []icongen.Variant `json:"variants,omitempty"` // placeholder set override
	Log      bool              `json:"log,omitempty"`      // record icons in the cache store
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Color:    DefaultColorHex,
		OutDir:   DefaultOutDir,
		Variants: icongen.DefaultSet(),
		Log:      true,
	}
}

// ParseColor returns the configured fill color.
func (c Config) ParseColor() (pngenc.Color, error) {
	return pngenc.ParseHex(c.Color)
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty)
//  2. iconforge.json next to the running binary
//  3. ~/.config/iconforge/iconforge.json
//
// A missing config file is not an error: the built-in defaults apply.
// An explicit path that cannot be read is an error.
func Load(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	// User config directory
	home, err := os.UserHomeDir()
	if err == nil {
		var p string
		if runtime.GOOS == "windows" {
			p = filepath.Join(home, "AppData", "Roaming", paths.AppDirName, paths.ConfigFileName)
		} else {
			p = filepath.Join(home, ".config", paths.AppDirName, paths.ConfigFileName)
		}
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	return Default(), nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
