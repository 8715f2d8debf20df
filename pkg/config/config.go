// Package config loads fileio settings from an optional file and FILEIO_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	fileio "github.com/goliatone/go-fileio"
	"github.com/goliatone/go-fileio/pkg/codec"
	"github.com/goliatone/go-fileio/pkg/userdir"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. FILEIO_APP_VERSION.
const EnvPrefix = "FILEIO"

// DefaultCodec is used when no codec is configured.
const DefaultCodec = "yaml"

// Config holds the settings a Store is built from.
type Config struct {
	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
	Codec      string `mapstructure:"codec"`
	DataDir    string `mapstructure:"data_dir"`
	Manifest   string `mapstructure:"manifest"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{Codec: DefaultCodec}
}

// Load reads path when it is not empty and applies environment overrides.
// The file format follows the extension (yaml, yml, json or toml).
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("app_name", defaults.AppName)
	v.SetDefault("app_version", defaults.AppVersion)
	v.SetDefault("codec", defaults.Codec)
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("manifest", defaults.Manifest)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// Version parses AppVersion.
func (c *Config) Version() (fileio.Version, error) {
	if strings.TrimSpace(c.AppVersion) == "" {
		return fileio.Version{}, fileio.ErrAppVersionNotSet
	}
	return fileio.ParseVersion(c.AppVersion)
}

// ResolveCodec returns the configured codec, YAML when empty.
func (c *Config) ResolveCodec() (codec.Codec, error) {
	name := strings.TrimSpace(c.Codec)
	if name == "" {
		name = DefaultCodec
	}
	return codec.ByName(name)
}

// StoreOptions translates the configuration into Store options. A missing
// app version is not an error here; the Store reports it on first use.
func (c *Config) StoreOptions() ([]fileio.Option, error) {
	enc, err := c.ResolveCodec()
	if err != nil {
		return nil, err
	}
	opts := []fileio.Option{fileio.WithCodec(enc)}
	if c.AppName != "" {
		opts = append(opts, fileio.WithAppName(c.AppName))
	}
	if c.DataDir != "" {
		opts = append(opts, fileio.WithDirResolver(userdir.Resolver{Base: c.DataDir}))
	}
	version, err := c.Version()
	switch {
	case err == nil:
		opts = append(opts, fileio.WithAppVersion(version))
	case !errors.Is(err, fileio.ErrAppVersionNotSet):
		return nil, err
	}
	return opts, nil
}
