package main

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gltfdump.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
format: json
workers: 3
require_version2: true
supported_extensions:
  - KHR_materials_unlit
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Format != formatJSON || cfg.Workers != 3 || !cfg.RequireVersion2 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !slices.Equal(cfg.SupportedExtensions, []string{"KHR_materials_unlit"}) {
		t.Errorf("SupportedExtensions = %v", cfg.SupportedExtensions)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Format != "" || cfg.Workers != 0 {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}

	_, err := LoadConfig(writeConfig(t, "format: text\ncolour: blue\n"))
	if err == nil {
		t.Fatal("expected error for an unknown key")
	}
	if !strings.Contains(err.Error(), "colour") {
		t.Errorf("error %q does not name the unknown key", err)
	}
}

func TestResolve(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg Config
		if err := cfg.Resolve(Flags{}); err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if cfg.Format != formatText {
			t.Errorf("Format = %q, want %q", cfg.Format, formatText)
		}
		if cfg.Workers != 0 {
			t.Errorf("Workers = %d, want 0 so the importer default applies", cfg.Workers)
		}
	})

	t.Run("flags override file", func(t *testing.T) {
		cfg := Config{Format: formatJSON, Workers: 2, TextureDir: "from-file"}
		err := cfg.Resolve(Flags{Format: formatYAML, Workers: 8, TextureDir: "from-flag"})
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if cfg.Format != formatYAML || cfg.Workers != 8 || cfg.TextureDir != "from-flag" {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})

	t.Run("empty flags keep file values", func(t *testing.T) {
		cfg := Config{Format: formatJSON, Workers: 2, SkipImages: true}
		if err := cfg.Resolve(Flags{}); err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if cfg.Format != formatJSON || cfg.Workers != 2 || !cfg.SkipImages {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})

	t.Run("negative workers", func(t *testing.T) {
		cfg := Config{Workers: -1}
		if err := cfg.Resolve(Flags{}); err == nil {
			t.Error("expected error for a negative worker count")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		cfg := Config{Format: "xml"}
		if err := cfg.Resolve(Flags{}); err == nil {
			t.Error("expected error for unknown format")
		}
	})

	t.Run("skip images with texture export", func(t *testing.T) {
		var cfg Config
		if err := cfg.Resolve(Flags{SkipImages: true, TextureDir: "out"}); err == nil {
			t.Error("expected error when skipping images and exporting textures")
		}
	})
}
