package config

import "github.com/socratesone/knowledge-navigator/internal/content"

// DefaultConfigFile is the conventional config file name in the
// project root.
const DefaultConfigFile = ".knav.yml"

// DefaultExcludes are glob patterns excluded from the content scan by
// default. Directory-level exclusions (.git, node_modules and friends)
// are handled by the walker; these cover files that live alongside the
// articles but are not topics.
var DefaultExcludes = []string{
	"README.md",
	"CHANGELOG.md",
	"**/_archive/**",
	"**/*.draft.md",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:        "Knowledge Navigator",
		ContentDir:   "content",
		ManifestPath: "navigation.json",
		OutputDir:    "_site",
		DataDir:      ".knav",
		Host:         "127.0.0.1",
		Port:         4173,
		Watch:        true,
		Theme:        ThemeAuto,
		Include:      []string{"**/*.md"},
		Exclude:      DefaultExcludes,
		MaxFileSize:  1 << 20,
		Cleanup: CleanupConfig{
			RemoveConstitutional:     true,
			RemoveInstructional:      true,
			RemoveDigitArtifacts:     true,
			RemoveDuplicateCode:      true,
			NormalizeWhitespace:      true,
			PreserveEducationalValue: true,
		},
	}
}

// Options converts the cleanup toggles into the sanitizer's option set.
func (c CleanupConfig) Options() *content.CleanupOptions {
	return &content.CleanupOptions{
		RemoveConstitutional:     c.RemoveConstitutional,
		RemoveInstructional:      c.RemoveInstructional,
		RemoveDigitArtifacts:     c.RemoveDigitArtifacts,
		RemoveDuplicateCode:      c.RemoveDuplicateCode,
		NormalizeWhitespace:      c.NormalizeWhitespace,
		PreserveEducationalValue: c.PreserveEducationalValue,
	}
}
