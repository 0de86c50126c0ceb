// Package config loads the command line configuration from defaults, an
// optional YAML file, SHORTCUT_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/andrewstucki/shortcut/internal"
)

const (
	// AppName is used for the config file name and directory.
	AppName = "shortcut"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "SHORTCUT"
)

// Configuration keys.
const (
	KeyFormat      = "format"
	KeyFull        = "full"
	KeyDebug       = "debug"
	KeyLogFormat   = "log_format"
	KeyRawStrings  = "raw_strings"
	KeyCodePage    = "codepage"
	KeyWorkers     = "workers"
	KeyMetricsFile = "metrics_file"
	KeyCommandOnly = "command_only"
)

// Config holds the command line configuration.
type Config struct {
	Format    string `mapstructure:"format"` // json, yaml or table
	Full      bool   `mapstructure:"full"`
	Debug     bool   `mapstructure:"debug"`
	LogFormat string `mapstructure:"log_format"`

	RawStrings bool `mapstructure:"raw_strings"`
	CodePage   int  `mapstructure:"codepage"`

	Workers     int    `mapstructure:"workers"`
	MetricsFile string `mapstructure:"metrics_file"`
	CommandOnly bool   `mapstructure:"command_only"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// New returns a viper instance with defaults and environment lookups set up.
// Flags are bound to it by the caller before Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyFormat, "json")
	v.SetDefault(KeyFull, false)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogFormat, "human")
	v.SetDefault(KeyRawStrings, false)
	v.SetDefault(KeyCodePage, 0)
	v.SetDefault(KeyWorkers, runtime.NumCPU())
	v.SetDefault(KeyMetricsFile, "")
	v.SetDefault(KeyCommandOnly, false)
}

func addSearchPaths(v *viper.Viper) {
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, AppName))
	}
}

// Load reads the config file, when one is given or found in the search
// paths, and unmarshals the merged settings.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	var config Config

	if cfgFile != "" {
		// an explicitly named file must exist
		if _, err := os.Stat(cfgFile); err != nil {
			return config, fmt.Errorf("error reading config file: %w", err)
		}
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		addSearchPaths(v)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		config.File = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("error parsing config: %w", err)
	}
	config.Format = strings.ToLower(strings.TrimSpace(config.Format))
	config.LogFormat = strings.ToLower(strings.TrimSpace(config.LogFormat))
	return config, config.Validate()
}

// Validate checks the values that cannot be caught by type conversion.
func (c Config) Validate() error {
	switch c.Format {
	case "json", "yaml", "table":
	default:
		return fmt.Errorf("invalid output format: %q (valid: json, yaml, table)", c.Format)
	}
	switch c.LogFormat {
	case "json", "human":
	default:
		return fmt.Errorf("invalid log format: %q (valid: json, human)", c.LogFormat)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.CodePage != 0 {
		if _, ok := internal.CodePage(c.CodePage); !ok {
			return fmt.Errorf("unsupported code page %d", c.CodePage)
		}
	}
	return nil
}
