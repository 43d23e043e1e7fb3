package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent lenscap configuration stored as
// config.toml in the .lenscap/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version int           `toml:"version"`
	Encoder EncoderConfig `toml:"encoder"`
	Tagging TaggingConfig `toml:"tagging"`
	Cache   CacheConfig   `toml:"cache"`
}

// EncoderConfig holds encoder provider settings.
type EncoderConfig struct {
	Provider   string `toml:"provider,omitempty"`
	Target     string `toml:"target,omitempty"`
	Model      string `toml:"model,omitempty"`
	Pretrained string `toml:"pretrained,omitempty"`
	Device     string `toml:"device,omitempty"`
	Dimensions uint   `toml:"dimensions,omitempty"`
}

// TaggingConfig holds the tag selection parameters.
type TaggingConfig struct {
	TopK      uint    `toml:"top_k,omitempty"`
	MinScore  float64 `toml:"min_score,omitempty"`
	MinForced uint    `toml:"min_forced,omitempty"`
}

// CacheConfig holds label-vector cache settings.
type CacheConfig struct {
	SQLitePath string `toml:"sqlite_path,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"encoder.provider": {
		get: func(c *Config) string { return c.Encoder.Provider },
		set: func(c *Config, v string) error { c.Encoder.Provider = v; return nil },
	},
	"encoder.target": {
		get: func(c *Config) string { return c.Encoder.Target },
		set: func(c *Config, v string) error { c.Encoder.Target = v; return nil },
	},
	"encoder.model": {
		get: func(c *Config) string { return c.Encoder.Model },
		set: func(c *Config, v string) error { c.Encoder.Model = v; return nil },
	},
	"encoder.pretrained": {
		get: func(c *Config) string { return c.Encoder.Pretrained },
		set: func(c *Config, v string) error { c.Encoder.Pretrained = v; return nil },
	},
	"encoder.device": {
		get: func(c *Config) string { return c.Encoder.Device },
		set: func(c *Config, v string) error { c.Encoder.Device = v; return nil },
	},
	"encoder.dimensions": {
		get: func(c *Config) string { return strconv.FormatUint(uint64(c.Encoder.Dimensions), 10) },
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid dimensions %q: %w", v, err)
			}
			c.Encoder.Dimensions = uint(n)
			return nil
		},
	},
	"tagging.top_k": {
		get: func(c *Config) string { return strconv.FormatUint(uint64(c.Tagging.TopK), 10) },
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid top_k %q: %w", v, err)
			}
			c.Tagging.TopK = uint(n)
			return nil
		},
	},
	"tagging.min_score": {
		get: func(c *Config) string { return strconv.FormatFloat(c.Tagging.MinScore, 'g', -1, 64) },
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid min_score %q: %w", v, err)
			}
			c.Tagging.MinScore = f
			return nil
		},
	},
	"tagging.min_forced": {
		get: func(c *Config) string { return strconv.FormatUint(uint64(c.Tagging.MinForced), 10) },
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid min_forced %q: %w", v, err)
			}
			c.Tagging.MinForced = uint(n)
			return nil
		},
	},
	"cache.sqlite_path": {
		get: func(c *Config) string { return c.Cache.SQLitePath },
		set: func(c *Config, v string) error { c.Cache.SQLitePath = v; return nil },
	},
}
