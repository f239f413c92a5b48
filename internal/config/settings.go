package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpgo/withholding-calculator/internal/logging"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. FISCAL_ACTOR.
const EnvPrefix = "FISCAL"

// DefaultActor is recorded when no identity is configured.
const DefaultActor = "anonymous"

// Settings holds the command line tool's configuration.
type Settings struct {
	Logging logging.Config  `mapstructure:"logging"`
	History HistorySettings `mapstructure:"history"`
	Actor   string          `mapstructure:"actor"`
}

// HistorySettings configures the calculation history database.
type HistorySettings struct {
	Path string `mapstructure:"path"`
}

// DefaultHistoryPath returns ~/.config/fiscal/history.db, or a file in the
// working directory when the home directory is unknown.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "fiscal-history.db"
	}
	return filepath.Join(home, ".config", "fiscal", "history.db")
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	def := logging.DefaultConfig()
	v.SetDefault("logging.level", def.Level)
	v.SetDefault("logging.format", def.Format)
	v.SetDefault("logging.output", def.Output)
	v.SetDefault("logging.development", false)
	v.SetDefault("history.path", DefaultHistoryPath())
	v.SetDefault("actor", DefaultActor)
}

// LoadSettings reads cfgFile (or config.yaml from ~/.config/fiscal and the
// working directory when empty) and applies FISCAL_* environment overrides.
// A missing default config file is not an error.
func LoadSettings(v *viper.Viper, cfgFile string) (Settings, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "fiscal"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if strings.TrimSpace(settings.Actor) == "" {
		settings.Actor = DefaultActor
	}
	return settings, nil
}
