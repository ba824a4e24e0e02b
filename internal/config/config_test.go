package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ContentDir != "content" {
		t.Errorf("expected default content_dir %q, got %q", "content", cfg.ContentDir)
	}
	if cfg.Port != 4173 {
		t.Errorf("expected default port 4173, got %d", cfg.Port)
	}
	if cfg.Theme != ThemeAuto {
		t.Errorf("expected default theme %q, got %q", ThemeAuto, cfg.Theme)
	}
	if !cfg.Cleanup.PreserveEducationalValue {
		t.Error("expected educational value preservation enabled by default")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.knav.yml")

	original := DefaultConfig()
	original.Title = "Angular Field Notes"
	original.ContentDir = "notes"
	original.Port = 8123
	original.Theme = ThemeDark
	original.Include = []string{"core/**", "advanced/**"}
	original.Cleanup.RemoveDuplicateCode = false

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Title != original.Title {
		t.Errorf("title: got %q, want %q", loaded.Title, original.Title)
	}
	if loaded.ContentDir != original.ContentDir {
		t.Errorf("content_dir: got %q, want %q", loaded.ContentDir, original.ContentDir)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.Theme != original.Theme {
		t.Errorf("theme: got %q, want %q", loaded.Theme, original.Theme)
	}
	if loaded.Cleanup.RemoveDuplicateCode {
		t.Error("cleanup.remove_duplicate_code: got true, want false")
	}
	if len(loaded.Include) != len(original.Include) {
		t.Fatalf("include length: got %d, want %d", len(loaded.Include), len(original.Include))
	}
	for i, v := range loaded.Include {
		if v != original.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Include[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.ContentDir != "content" {
		t.Errorf("expected default content_dir, got %q", cfg.ContentDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	os.Setenv("KNAV_PORT", "9000")
	os.Setenv("KNAV_CONTENT_DIR", "material")
	defer os.Unsetenv("KNAV_PORT")
	defer os.Unsetenv("KNAV_CONTENT_DIR")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 9000 {
		t.Errorf("env override failed: got port %d, want 9000", loaded.Port)
	}
	if loaded.ContentDir != "material" {
		t.Errorf("env override failed: got content_dir %q, want %q", loaded.ContentDir, "material")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateEmptyContentDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContentDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty content_dir")
	}
}

func TestValidateEmptyManifest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ManifestPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty manifest")
	}
}

func TestValidatePortRange(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := DefaultConfig()
		cfg.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected validation error for port %d", port)
		}
	}
}

func TestValidateInvalidTheme(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme = "sepia"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid theme")
	}
}

func TestValidateNegativeMaxFileSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFileSize = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative max_file_size")
	}
}

func TestManifestFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContentDir = "notes"
	cfg.ManifestPath = "nav.json"
	if got := cfg.ManifestFile(); got != filepath.Join("notes", "nav.json") {
		t.Errorf("ManifestFile() = %q, want %q", got, filepath.Join("notes", "nav.json"))
	}

	abs := filepath.Join(string(filepath.Separator), "etc", "nav.json")
	cfg.ManifestPath = abs
	if got := cfg.ManifestFile(); got != abs {
		t.Errorf("ManifestFile() = %q, want %q", got, abs)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.md", []string{"**/*.md"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
