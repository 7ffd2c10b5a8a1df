// Package config provides configuration management for the edtext CLI.
//
// Configuration is merged from four layers, highest priority first:
// command-line flags, EDTEXT_-prefixed environment variables, an
// edtext.yaml (or .yml) file found in or above the working directory, and
// built-in defaults.
package config

// TaskConfig declares an extra target in edtext.yaml.
type TaskConfig struct {
	Description string `koanf:"description"`
	Command     string `koanf:"command"`
}

// CleanConfig overrides what the clean target removes.
type CleanConfig struct {
	Patterns []string `koanf:"patterns"`
}

// Config holds all CLI configuration options.
type Config struct {
	// ProjectRoot is where the config file was found (or the CWD). All
	// relative paths resolve against it and targets run inside it.
	ProjectRoot string

	StatePath      string                `koanf:"state_path"`
	Verbose        bool                  `koanf:"verbose"`
	OutputFormat   string                `koanf:"output"`
	InstallCommand string                `koanf:"install_command"`
	TestCommand    string                `koanf:"test_command"`
	Clean          *CleanConfig          `koanf:"clean"`
	Tasks          map[string]TaskConfig `koanf:"tasks"`
	WatchIgnore    []string              `koanf:"watch_ignore"`
}

// Default configuration values.
const (
	DefaultStateFile      = ".edtext/history.db"
	DefaultOutput         = "auto" // TTY=text, non-TTY=markdown
	DefaultInstallCommand = "pip install -e '.[dev]'"
	DefaultTestCommand    = "pytest --cov=edtext --cov-report=term-missing"
)

// DefaultCleanPatterns are the artifacts the clean target removes when the
// config file does not override them.
func DefaultCleanPatterns() []string {
	return []string{
		"**/__pycache__",
		"**/.pytest_cache",
		"build",
		"dist",
		"*.egg-info",
		".coverage",
		"htmlcov",
	}
}

// DefaultWatchIgnore are path patterns the watch mode never reacts to.
func DefaultWatchIgnore() []string {
	return []string{
		"**/__pycache__/**",
		"build/**",
		"dist/**",
		"*.egg-info/**",
		"htmlcov/**",
	}
}

// CleanPatterns returns the configured clean patterns, falling back to the
// defaults.
func (c *Config) CleanPatterns() []string {
	if c.Clean != nil && len(c.Clean.Patterns) > 0 {
		return c.Clean.Patterns
	}
	return DefaultCleanPatterns()
}

// WatchIgnorePatterns returns the configured watch ignores, falling back to
// the defaults.
func (c *Config) WatchIgnorePatterns() []string {
	if len(c.WatchIgnore) > 0 {
		return c.WatchIgnore
	}
	return DefaultWatchIgnore()
}

// Default returns a config with only the built-in defaults applied.
func Default() *Config {
	return &Config{
		ProjectRoot:    ".",
		StatePath:      DefaultStateFile,
		OutputFormat:   DefaultOutput,
		InstallCommand: DefaultInstallCommand,
		TestCommand:    DefaultTestCommand,
	}
}
