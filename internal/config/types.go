package config

// Theme selects the default color scheme served to readers.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// Config is the top-level viewer configuration, corresponding to .knav.yml.
type Config struct {
	Title        string        `yaml:"title" koanf:"title"`
	ContentDir   string        `yaml:"content_dir" koanf:"content_dir"`
	ManifestPath string        `yaml:"manifest" koanf:"manifest"`
	OutputDir    string        `yaml:"output_dir" koanf:"output_dir"`
	DataDir      string        `yaml:"data_dir" koanf:"data_dir"`
	Host         string        `yaml:"host" koanf:"host"`
	Port         int           `yaml:"port" koanf:"port"`
	Watch        bool          `yaml:"watch" koanf:"watch"`
	Theme        Theme         `yaml:"theme" koanf:"theme"`
	Include      []string      `yaml:"include" koanf:"include"`
	Exclude      []string      `yaml:"exclude" koanf:"exclude"`
	MaxFileSize  int64         `yaml:"max_file_size" koanf:"max_file_size"`
	Cleanup      CleanupConfig `yaml:"cleanup" koanf:"cleanup"`
}

// CleanupConfig toggles the individual content cleanup stages from the
// config file. All stages default to enabled.
type CleanupConfig struct {
	RemoveConstitutional     bool `yaml:"remove_constitutional" koanf:"remove_constitutional"`
	RemoveInstructional      bool `yaml:"remove_instructional" koanf:"remove_instructional"`
	RemoveDigitArtifacts     bool `yaml:"remove_digit_artifacts" koanf:"remove_digit_artifacts"`
	RemoveDuplicateCode      bool `yaml:"remove_duplicate_code" koanf:"remove_duplicate_code"`
	NormalizeWhitespace      bool `yaml:"normalize_whitespace" koanf:"normalize_whitespace"`
	PreserveEducationalValue bool `yaml:"preserve_educational_value" koanf:"preserve_educational_value"`
}
