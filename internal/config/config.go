// Package config loads the application preferences from config.yaml and
// FILEMANAGER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix for environment overrides, e.g.
	// FILEMANAGER_CONFIRM_DELETE=false or FILEMANAGER_LOG_LEVEL=debug.
	EnvPrefix = "FILEMANAGER"
	// AppDir is the directory under the user config dir holding config.yaml.
	AppDir = "filemanager"

	DefaultNewFolderName = "New Folder"
	DefaultOrganization  = "Dima Melkunas"
	DefaultApplication   = "File Manager"
)

// LogConfig controls the log file.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// StartConfig gives initial pane paths used when no state was saved.
type StartConfig struct {
	Left  string `mapstructure:"left"`
	Right string `mapstructure:"right"`
}

// Config holds the effective preferences.
type Config struct {
	NewFolderName         string      `mapstructure:"new_folder_name"`
	ConfirmDelete         bool        `mapstructure:"confirm_delete"`
	MirrorSystemClipboard bool        `mapstructure:"mirror_system_clipboard"`
	Watch                 bool        `mapstructure:"watch"`
	StateDir              string      `mapstructure:"state_dir"`
	Organization          string      `mapstructure:"organization"`
	Application           string      `mapstructure:"application"`
	Log                   LogConfig   `mapstructure:"log"`
	Start                 StartConfig `mapstructure:"start"`

	// Source is the config file that was read, empty when none was found.
	Source string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("new_folder_name", DefaultNewFolderName)
	v.SetDefault("confirm_delete", true)
	v.SetDefault("mirror_system_clipboard", true)
	v.SetDefault("watch", true)
	v.SetDefault("state_dir", "")
	v.SetDefault("organization", DefaultOrganization)
	v.SetDefault("application", DefaultApplication)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("start.left", "")
	v.SetDefault("start.right", "")
}

// Load reads path, or config.yaml from the default locations when path is
// empty. A missing default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("config: expand %s: %w", path, err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName("config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, AppDir))
		}
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	if cfg.Source != "" {
		if _, err := os.Stat(cfg.Source); err != nil {
			cfg.Source = ""
		}
	}

	for _, p := range []*string{&cfg.StateDir, &cfg.Log.File, &cfg.Start.Left, &cfg.Start.Right} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return nil, fmt.Errorf("config: expand %s: %w", *p, err)
		}
		*p = expanded
	}
	if strings.TrimSpace(cfg.NewFolderName) == "" {
		cfg.NewFolderName = DefaultNewFolderName
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		NewFolderName:         DefaultNewFolderName,
		ConfirmDelete:         true,
		MirrorSystemClipboard: true,
		Watch:                 true,
		Organization:          DefaultOrganization,
		Application:           DefaultApplication,
		Log:                   LogConfig{Level: "info"},
	}
}
