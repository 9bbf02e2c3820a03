package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by -format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// Config holds the inspector settings read from a YAML file.
type Config struct {
	Format     string `yaml:"format"`
	TextureDir string `yaml:"texture_dir"`
	SkipImages bool   `yaml:"skip_images"`
	Profile    bool   `yaml:"profile"`

	// Workers is the image decode pool size; zero keeps the importer default.
	Workers int `yaml:"workers"`

	// RequireVersion2 rejects assets whose version is not 2.x.
	RequireVersion2 bool `yaml:"require_version2"`

	// SupportedExtensions, when set, rejects documents requiring any other extension.
	SupportedExtensions []string `yaml:"supported_extensions"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Format     string
	TextureDir string
	Workers    int
	SkipImages bool
}

// LoadConfig reads a YAML config file. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies CLI overrides and fills defaults.
func (c *Config) Resolve(flags Flags) error {
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.SkipImages {
		c.SkipImages = true
	}

	if c.Format == "" {
		c.Format = formatText
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}

	switch c.Format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("config: unknown format %q (want text, json or yaml)", c.Format)
	}
	if c.SkipImages && c.TextureDir != "" {
		return fmt.Errorf("config: texture export needs decoded images; drop skip_images or texture_dir")
	}
	return nil
}
