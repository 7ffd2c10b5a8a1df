package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// maxUpwardSearchLevels limits how far up the directory tree to search for
// config files.
const maxUpwardSearchLevels = 10

var (
	configFileUsed string
	currentConfig  *Config
)

// loggerKey is the context key for the CLI logger.
type loggerKey struct{}

// configExistsIn checks if an edtext config file exists in the directory,
// returning its path.
func configExistsIn(dir string) string {
	for _, name := range []string{"edtext.yaml", "edtext.yml"} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigFile locates the config file: an explicit path wins, otherwise
// search upward from the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if found := configExistsIn(dir); found != "" {
			return found
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Load merges configuration from defaults, config file, environment and
// flags (lowest to highest priority).
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	configFileUsed = ""

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"state_path":      DefaultStateFile,
		"output":          DefaultOutput,
		"install_command": DefaultInstallCommand,
		"test_command":    DefaultTestCommand,
		"verbose":         false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, if any. Its directory becomes the project root.
	projectRoot, err := os.Getwd()
	if err != nil {
		projectRoot = "."
	}
	if found := findConfigFile(cfgFile); found != "" {
		if err := k.Load(file.Provider(found), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", found, err)
		}
		configFileUsed = found
		if abs, err := filepath.Abs(found); err == nil {
			projectRoot = filepath.Dir(abs)
		}
	}

	// 3. Environment variables: EDTEXT_STATE_PATH -> state_path.
	if err := k.Load(env.Provider("EDTEXT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "EDTEXT_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ProjectRoot = projectRoot
	if cfg.StatePath != "" && !filepath.IsAbs(cfg.StatePath) {
		cfg.StatePath = filepath.Join(projectRoot, cfg.StatePath)
	}

	currentConfig = &cfg
	return &cfg, nil
}

// GetConfigFileUsed returns the path of the config file loaded by the last
// Load call, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the configuration from the last Load call, or nil
// before any load.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key for the CLI logger. The root command
// stores the logger under it; commands retrieve it through GetLogger.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
