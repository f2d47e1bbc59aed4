// Package config holds the settings of a cocoa statistics run.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"cocoa/internal/table"
)

// Modes select which charts a run draws.
const (
	ModeIndividual = "individual"
	ModeComposite  = "composite"
	ModeAll        = "all"
)

// Entity is one area to tabulate and chart. Name must equal the Area column
// of the export exactly. Slug prefixes output file names and is derived from
// Label when empty.
type Entity struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
	Slug  string `yaml:"slug"`
	Color string `yaml:"color"`
}

// Config is the full run configuration.
type Config struct {
	InputPath  string   `yaml:"input_path"`
	OutputDir  string   `yaml:"output_dir"`
	Mode       string   `yaml:"mode"`
	Duplicates string   `yaml:"duplicates"`
	Workbook   string   `yaml:"workbook"`
	Entities   []Entity `yaml:"entities"`
}

// envOverrides are the environment variables Load honours. Unset variables
// leave the configured value alone.
type envOverrides struct {
	ConfigFile string `env:"COCOA_CONFIG_FILE"`
	InputPath  string `env:"COCOA_INPUT_PATH"`
	OutputDir  string `env:"COCOA_OUTPUT_DIR"`
	Mode       string `env:"COCOA_MODE"`
	Duplicates string `env:"COCOA_DUPLICATES"`
	Workbook   string `env:"COCOA_WORKBOOK"`
}

func (o envOverrides) apply(c *Config) {
	for _, f := range []struct {
		value  string
		target *string
	}{
		{o.InputPath, &c.InputPath},
		{o.OutputDir, &c.OutputDir},
		{o.Mode, &c.Mode},
		{o.Duplicates, &c.Duplicates},
		{o.Workbook, &c.Workbook},
	} {
		if f.value != "" {
			*f.target = f.value
		}
	}
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		InputPath:  "FAOSTAT_data_7-23-2022.csv",
		OutputDir:  ".",
		Mode:       ModeIndividual,
		Duplicates: table.KeepLast.String(),
		Entities: []Entity{
			{Name: "Ghana", Label: "Ghana", Slug: "ghana", Color: "#008000"},
			{Name: "Côte d'Ivoire", Label: "Côte d'Ivoire", Slug: "ivory_coast", Color: "#ffa500"},
		},
	}
}

// Load starts from Default, applies the YAML file named by COCOA_CONFIG_FILE
// if set, then the COCOA_* environment variables, and validates the result.
func Load() (Config, error) {
	cfg := Default()

	var overrides envOverrides
	if err := ParseEnv(&overrides); err != nil {
		return Config{}, err
	}
	if overrides.ConfigFile != "" {
		if err := cfg.mergeFile(overrides.ConfigFile); err != nil {
			return Config{}, err
		}
	}
	overrides.apply(&cfg)
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

// Normalize fills the settings that have a derived default: the output
// directory, the mode, and each entity's label and slug.
func (c *Config) Normalize() {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.Mode == "" {
		c.Mode = ModeIndividual
	}
	for i := range c.Entities {
		e := &c.Entities[i]
		if e.Label == "" {
			e.Label = e.Name
		}
		if e.Slug == "" {
			e.Slug = Slug(e.Label)
		}
	}
}

// Validate reports the first problem found in c.
func (c Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("config: input path is empty")
	}
	switch c.Mode {
	case ModeIndividual, ModeComposite, ModeAll:
	default:
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	if _, err := c.DuplicatePolicy(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if len(c.Entities) == 0 {
		return errors.New("config: no entities")
	}

	names := make(map[string]bool)
	slugs := make(map[string]bool)
	var sheets []string
	for i, e := range c.Entities {
		if e.Name == "" {
			return fmt.Errorf("config: entity %d has no name", i)
		}
		if e.Slug == "" {
			return fmt.Errorf("config: entity %q has no usable slug", e.Name)
		}
		if names[e.Name] {
			return fmt.Errorf("config: entity %q listed twice", e.Name)
		}
		slug := strings.ToLower(e.Slug)
		if slugs[slug] {
			return fmt.Errorf("config: slug %q used twice", e.Slug)
		}
		names[e.Name], slugs[slug] = true, true

		if c.Workbook != "" {
			sheet := table.SheetName(e.Label)
			for _, prev := range sheets {
				if strings.EqualFold(prev, sheet) {
					return fmt.Errorf("config: label %q gives workbook sheet %q twice", e.Label, sheet)
				}
			}
			sheets = append(sheets, sheet)
		}

		if e.Color != "" {
			if _, err := ParseColor(e.Color); err != nil {
				return fmt.Errorf("config: entity %q: %w", e.Name, err)
			}
		}
	}
	return nil
}

// DuplicatePolicy resolves the Duplicates setting.
func (c Config) DuplicatePolicy() (table.DuplicatePolicy, error) {
	return table.ParseDuplicatePolicy(c.Duplicates)
}

// Individual reports whether per-entity charts are drawn.
func (c Config) Individual() bool {
	return c.Mode == ModeIndividual || c.Mode == ModeAll
}

// Composite reports whether the combined chart is drawn.
func (c Config) Composite() bool {
	return c.Mode == ModeComposite || c.Mode == ModeAll
}

// RGBA returns the entity color, or nil when none is set.
func (e Entity) RGBA() color.Color {
	if e.Color == "" {
		return nil
	}
	c, err := ParseColor(e.Color)
	if err != nil {
		return nil
	}
	return c
}

// ParseColor parses "#rrggbb".
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
