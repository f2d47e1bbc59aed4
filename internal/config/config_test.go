package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cocoa/internal/table"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Individual() || cfg.Composite() {
		t.Fatalf("expected individual mode only, got %q", cfg.Mode)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("COCOA_INPUT_PATH", "data/cocoa.csv")
	t.Setenv("COCOA_OUTPUT_DIR", "out")
	t.Setenv("COCOA_MODE", ModeAll)
	t.Setenv("COCOA_DUPLICATES", "mean")
	t.Setenv("COCOA_WORKBOOK", "tables.xlsx")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.InputPath != "data/cocoa.csv" || cfg.OutputDir != "out" || cfg.Workbook != "tables.xlsx" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if !cfg.Individual() || !cfg.Composite() {
		t.Fatalf("expected both chart modes, got %q", cfg.Mode)
	}
	policy, err := cfg.DuplicatePolicy()
	if err != nil || policy != table.Mean {
		t.Fatalf("expected mean policy, got %v (%v)", policy, err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cocoa.yaml")
	content := `input_path: faostat.csv
mode: composite
entities:
  - name: Nigeria
    color: "#00ff00"
  - name: Côte d'Ivoire
    label: Ivory Coast
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COCOA_CONFIG_FILE", path)
	t.Setenv("COCOA_INPUT_PATH", "override.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []Entity{
		{Name: "Nigeria", Label: "Nigeria", Slug: "nigeria", Color: "#00ff00"},
		{Name: "Côte d'Ivoire", Label: "Ivory Coast", Slug: "ivory_coast"},
	}
	if diff := cmp.Diff(want, cfg.Entities); diff != "" {
		t.Fatalf("entities mismatch (-want +got):\n%s", diff)
	}
	if cfg.InputPath != "override.csv" {
		t.Fatalf("env should win over file, got %q", cfg.InputPath)
	}
	if cfg.Mode != ModeComposite || cfg.OutputDir != "." {
		t.Fatalf("unexpected mode/output dir: %+v", cfg)
	}
}

func TestLoadFileUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cocoa.yaml")
	content := "entites:\n  - name: Nigeria\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COCOA_CONFIG_FILE", path)

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "entites") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cocoa.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COCOA_CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize(t *testing.T) {
	cfg := Config{
		InputPath: "faostat.csv",
		Entities:  []Entity{{Name: "Côte d'Ivoire"}},
	}
	cfg.Normalize()

	if cfg.OutputDir != "." || cfg.Mode != ModeIndividual {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	want := Entity{Name: "Côte d'Ivoire", Label: "Côte d'Ivoire", Slug: "cote_d_ivoire"}
	if cfg.Entities[0] != want {
		t.Fatalf("expected %+v, got %+v", want, cfg.Entities[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("COCOA_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "config file") {
		t.Fatalf("expected config file error, got %v", err)
	}
}

func TestLoadInvalidMode(t *testing.T) {
	t.Setenv("COCOA_MODE", "gallery")

	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty input", func(c *Config) { c.InputPath = "" }, "input path"},
		{"bad policy", func(c *Config) { c.Duplicates = "sum" }, "duplicate policy"},
		{"no entities", func(c *Config) { c.Entities = nil }, "no entities"},
		{"unnamed", func(c *Config) { c.Entities[0].Name = "" }, "has no name"},
		{"duplicate name", func(c *Config) { c.Entities[1].Name = "Ghana" }, "listed twice"},
		{"duplicate slug", func(c *Config) { c.Entities[1].Slug = "ghana" }, "slug"},
		{"bad color", func(c *Config) { c.Entities[0].Color = "green" }, "#rrggbb"},
		{"slug case", func(c *Config) { c.Entities[1].Slug = "GHANA" }, "slug"},
		{"workbook labels", func(c *Config) {
			c.Workbook = "tables.xlsx"
			c.Entities[1].Label = "GHANA"
		}, "workbook sheet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

type envTestConfig struct {
	Port int `env:"COCOA_TEST_PORT" envDefault:"123"`
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("COCOA_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	got, err := ParseColor("#ffa500")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != (color.RGBA{R: 255, G: 165, B: 0, A: 255}) {
		t.Fatalf("unexpected color %v", got)
	}

	for _, bad := range []string{"ffa500", "#ffa50", "#gggggg", ""} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}

	if (Entity{}).RGBA() != nil {
		t.Fatal("entity without color should have nil RGBA")
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Ghana", "ghana"},
		{"Côte d'Ivoire", "cote_d_ivoire"},
		{"São Tomé and Príncipe", "sao_tome_and_principe"},
		{"  Papua New Guinea  ", "papua_new_guinea"},
		{"Venezuela (Bolivarian)", "venezuela_bolivarian"},
	}
	for _, tt := range tests {
		if got := Slug(tt.label); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
