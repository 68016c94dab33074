// Package settings loads optional persisted defaults. Flags always win;
// settings only fill the gaps below them.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = "minimon"
	envPrefix  = "MINIMON"
)

// Settings are session defaults read from the config file and the
// MINIMON_* environment. Zero values mean "not set".
type Settings struct {
	Port     string `toml:"port"`
	BaudRate int    `toml:"baudrate"`
	Newline  string `toml:"newline"`
}

// Load resolves settings with env overriding file. The file lives at
// <user config dir>/minimon/config.toml; a missing file is fine, a
// malformed one is not.
func Load(cfg *viper.Viper) (Settings, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	var s Settings

	if base, err := os.UserConfigDir(); err == nil {
		cfg.SetConfigName(configName)
		cfg.SetConfigType(configType)
		cfg.AddConfigPath(filepath.Join(base, configDir))

		if err := cfg.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("read settings file: %w", err)
			}
		} else {
			raw, err := os.ReadFile(cfg.ConfigFileUsed())
			if err != nil {
				return Settings{}, fmt.Errorf("read settings file: %w", err)
			}
			if err := toml.Unmarshal(raw, &s); err != nil {
				return Settings{}, fmt.Errorf("decode settings file %s: %w", cfg.ConfigFileUsed(), err)
			}
		}
	}

	cfg.SetEnvPrefix(envPrefix)
	cfg.AutomaticEnv()

	if v := os.Getenv(envPrefix + "_PORT"); v != "" {
		s.Port = cfg.GetString("port")
	}
	if v := os.Getenv(envPrefix + "_BAUDRATE"); v != "" {
		s.BaudRate = cfg.GetInt("baudrate")
	}
	if v := os.Getenv(envPrefix + "_NEWLINE"); v != "" {
		s.Newline = cfg.GetString("newline")
	}

	return s, nil
}
