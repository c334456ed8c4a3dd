// Package config loads the settings of the mediatype service and command line tool.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/indigo-web/mediatype"
)

const (
	configName      = "mediatype"
	configEnvPrefix = "mediatype"
)

type (
	// Mapping binds a suffix to a media type. Config keys are case-insensitive, suffixes are
	// not, so suffixes must be values rather than keys.
	Mapping struct {
		Suffix    string `mapstructure:"suffix"`
		MediaType string `mapstructure:"media_type"`
	}

	Types struct {
		// File is an Apache mime.types file to populate the table from. If empty, the
		// compiled-in table is used.
		File string `mapstructure:"file" test:"nullable"`
		// Default is the media type returned for suffixes without a mapping.
		Default string `mapstructure:"default"`
		// Extra mappings are added on top of either the file or the compiled-in table. They
		// take precedence over mappings of the same suffixes. Suffixes are kept as written.
		Extra []Mapping `mapstructure:"extra" test:"nullable"`
		// Watch enables reloading the table every time the File changes. Has no effect
		// if the File isn't set.
		Watch bool `mapstructure:"watch" test:"nullable"`
	}

	Log struct {
		// FilePath is the log file. Leave it empty in order to log to the standard error.
		FilePath string `mapstructure:"file_path" test:"nullable"`
		// Level is one of: debug, info, warn, error.
		Level string `mapstructure:"level"`
		// MaxSize is the maximal size of a log file in megabytes before it gets rotated.
		MaxSize int `mapstructure:"max_size"`
		// MaxBackups is the number of rotated files to keep.
		MaxBackups int `mapstructure:"max_backups"`
		// MaxAge is the number of days to keep rotated files for.
		MaxAge int `mapstructure:"max_age"`
		// Compress enables gzip compression of rotated files.
		Compress bool `mapstructure:"compress" test:"nullable"`
	}

	Autocert struct {
		// Domains enables automatic HTTPS via ACME for the listed domains.
		Domains []string `mapstructure:"domains" test:"nullable"`
		// CacheDir stores the obtained certificates. Defaults to the user cache directory.
		CacheDir string `mapstructure:"cache_dir" test:"nullable"`
	}

	HTTPD struct {
		// BindAddress is the address the lookup service listens on.
		BindAddress string `mapstructure:"bind_address"`
		// MetricsPath is where Prometheus metrics are exposed. Leave it empty to disable them.
		MetricsPath string `mapstructure:"metrics_path"`
		Autocert    Autocert `mapstructure:"autocert"`
	}
)

// Config holds settings of the table, logging and the lookup service.
type Config struct {
	Types Types `mapstructure:"types"`
	Log   Log   `mapstructure:"log"`
	HTTPD HTTPD `mapstructure:"httpd"`
}

// Default returns the default config.
func Default() *Config {
	return &Config{
		Types: Types{
			Default: mediatype.DefaultMediaType,
		},
		Log: Log{
			Level:      "info",
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
		},
		HTTPD: HTTPD{
			BindAddress: "127.0.0.1:8080",
			MetricsPath: "/metrics",
		},
	}
}

// Load reads the config. If configFile is set, it must exist, otherwise mediatype.{json,yaml,toml}
// is looked for in the configDir and silently skipped if there's none. Every setting might be
// overridden by MEDIATYPE_<SECTION>__<KEY> env vars, e.g. MEDIATYPE_LOG__LEVEL.
func Load(configDir, configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(configEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	if len(configFile) > 0 {
		if !filepath.IsAbs(configFile) && len(configDir) > 0 {
			configFile = filepath.Join(configDir, configFile)
		}

		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("types.file", cfg.Types.File)
	v.SetDefault("types.default", cfg.Types.Default)
	v.SetDefault("types.watch", cfg.Types.Watch)
	v.SetDefault("log.file_path", cfg.Log.FilePath)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.max_size", cfg.Log.MaxSize)
	v.SetDefault("log.max_backups", cfg.Log.MaxBackups)
	v.SetDefault("log.max_age", cfg.Log.MaxAge)
	v.SetDefault("log.compress", cfg.Log.Compress)
	v.SetDefault("httpd.bind_address", cfg.HTTPD.BindAddress)
	v.SetDefault("httpd.metrics_path", cfg.HTTPD.MetricsPath)
	v.SetDefault("httpd.autocert.domains", cfg.HTTPD.Autocert.Domains)
	v.SetDefault("httpd.autocert.cache_dir", cfg.HTTPD.Autocert.CacheDir)
}

// Apply installs the configured file, extra mappings and default media type into the table.
// If the file can't be loaded, the table is left unmodified.
func (t Types) Apply(table *mediatype.Table) error {
	if len(t.File) > 0 {
		if err := table.LoadFile(t.File); err != nil {
			return err
		}
	}

	for _, mapping := range t.Extra {
		table.Add(mapping.Suffix, mapping.MediaType)
	}

	if len(t.Default) > 0 {
		table.SetDefault(t.Default)
	}

	return nil
}
