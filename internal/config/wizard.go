package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// candidateContentDirs are checked in order when guessing where the
// articles live.
var candidateContentDirs = []string{"content", "docs", "notes", "articles"}

// detectContentDir looks for a well-known content directory in the
// current working directory.
func detectContentDir() string {
	for _, dir := range candidateContentDirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "content"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .knav.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to knav! Let's configure your knowledge base.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Site title.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: defaults.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}

	// 2. Content directory.
	contentPrompt := promptui.Prompt{
		Label:   "Content directory",
		Default: detectContentDir(),
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}

	// 3. Navigation manifest, relative to the content directory.
	manifestPrompt := promptui.Prompt{
		Label:   "Navigation manifest",
		Default: defaults.ManifestPath,
	}
	manifest, err := manifestPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	// 4. Server port.
	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(defaults.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// 5. Theme.
	themePrompt := promptui.Select{
		Label: "Default theme",
		Items: []string{"auto", "light", "dark"},
	}
	_, themeStr, err := themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}

	// 6. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	exclude := defaults.Exclude
	if excludeStr != "" {
		exclude = append(exclude, splitAndTrim(excludeStr)...)
	}

	cfg := DefaultConfig()
	cfg.Title = title
	cfg.ContentDir = contentDir
	cfg.ManifestPath = manifest
	cfg.Port = port
	cfg.Theme = Theme(themeStr)
	cfg.Exclude = exclude

	if err := cfg.Save(DefaultConfigFile); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultConfigFile)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
