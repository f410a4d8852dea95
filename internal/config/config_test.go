package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Point at a nonexistent config file path: defaults must apply.
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DataFile != "student-mat.csv" {
		t.Errorf("Expected default data file, got %q", cfg.DataFile)
	}
	if cfg.Delimiter != ";" {
		t.Errorf("Expected default delimiter ';', got %q", cfg.Delimiter)
	}
	if cfg.ShowPlots || cfg.SavePlots || cfg.SaveTables {
		t.Error("Expected all export flags off by default")
	}
	if cfg.Format != "text" {
		t.Errorf("Expected default format text, got %q", cfg.Format)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `data_file: student-por.csv
delimiter: ","
save_tables: true
output_dir: results
format: yaml
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DataFile != "student-por.csv" {
		t.Errorf("Expected student-por.csv, got %q", cfg.DataFile)
	}
	if !cfg.SaveTables {
		t.Error("Expected save_tables true")
	}
	if cfg.OutputDir != "results" {
		t.Errorf("Expected output dir results, got %q", cfg.OutputDir)
	}
	if cfg.Format != "yaml" {
		t.Errorf("Expected format yaml, got %q", cfg.Format)
	}
	if r, err := cfg.DelimiterRune(); err != nil || r != ',' {
		t.Errorf("Expected delimiter ',', got %q (%v)", r, err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad_delim.yaml")
	os.WriteFile(bad, []byte("delimiter: \";;\"\n"), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("Expected error for multi-character delimiter")
	}

	badFmt := filepath.Join(dir, "bad_format.yaml")
	os.WriteFile(badFmt, []byte("format: xml\n"), 0o644)
	if _, err := Load(badFmt); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.DataFile = "student-por.csv"
	c.SavePlots = true

	written, err := Save(&c, path)
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if written != path {
		t.Errorf("Expected write to %s, got %s", path, written)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() after Save failed: %v", err)
	}
	if loaded.DataFile != "student-por.csv" || !loaded.SavePlots {
		t.Errorf("Round trip lost values: %+v", loaded)
	}
}
