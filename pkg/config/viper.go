package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papercomputeco/lenscap/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the LENSCAP_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (LENSCAP_ENCODER_MODEL, LENSCAP_ENCODER_DEVICE, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: LENSCAP_ENCODER_MODEL, LENSCAP_CACHE_SQLITE_PATH, etc.
	v.SetEnvPrefix("LENSCAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Encoder
	v.SetDefault("encoder.provider", d.Encoder.Provider)
	v.SetDefault("encoder.target", d.Encoder.Target)
	v.SetDefault("encoder.model", d.Encoder.Model)
	v.SetDefault("encoder.pretrained", d.Encoder.Pretrained)
	v.SetDefault("encoder.device", d.Encoder.Device)
	v.SetDefault("encoder.dimensions", d.Encoder.Dimensions)

	// Tagging
	v.SetDefault("tagging.top_k", d.Tagging.TopK)
	v.SetDefault("tagging.min_score", d.Tagging.MinScore)
	v.SetDefault("tagging.min_forced", d.Tagging.MinForced)

	// Cache
	v.SetDefault("cache.sqlite_path", d.Cache.SQLitePath)
}

// ViperConfig materializes a *Config from a viper instance, so commands can
// consume the flag/env/file/default precedence chain through the same struct
// LoadConfig returns.
func ViperConfig(v *viper.Viper) *Config {
	return &Config{
		Version: v.GetInt("version"),
		Encoder: EncoderConfig{
			Provider:   v.GetString("encoder.provider"),
			Target:     v.GetString("encoder.target"),
			Model:      v.GetString("encoder.model"),
			Pretrained: v.GetString("encoder.pretrained"),
			Device:     v.GetString("encoder.device"),
			Dimensions: v.GetUint("encoder.dimensions"),
		},
		Tagging: TaggingConfig{
			TopK:      v.GetUint("tagging.top_k"),
			MinScore:  v.GetFloat64("tagging.min_score"),
			MinForced: v.GetUint("tagging.min_forced"),
		},
		Cache: CacheConfig{
			SQLitePath: v.GetString("cache.sqlite_path"),
		},
	}
}
