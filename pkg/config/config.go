package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/papercomputeco/lenscap/pkg/dotdir"
)

const (
	configFile = "config.toml"

	// cacheFile is the default label-vector cache database name inside
	// the .lenscap/ directory.
	cacheFile = "labelcache.db"

	// v0 is the alpha version of the config
	v0 = 0

	// CurrentV is the currently supported version, points to v0
	CurrentV = v0
)

type Configer struct {
	ddm        *dotdir.Manager
	targetDir  string
	targetPath string
}

func NewConfiger(override string) (*Configer, error) {
	cfger := &Configer{}

	cfger.ddm = dotdir.NewManager()
	target, err := cfger.ddm.Target(override)
	if err != nil {
		return nil, err
	}

	// If no .lenscap/ directory was resolved, targetPath stays empty;
	// LoadConfig will return defaults and SaveConfig will error clearly.
	if target == "" {
		return cfger, nil
	}

	path := filepath.Join(target, configFile)
	_, err = os.Stat(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Always set targetPath when the directory exists so SaveConfig
	// can create or overwrite the file.
	cfger.targetDir = target
	cfger.targetPath = path

	return cfger, nil
}

// ValidConfigKeys returns the sorted list of all supported configuration key names.
func ValidConfigKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}

	// Return in a stable, logical order matching the TOML section layout.
	ordered := []string{
		"encoder.provider",
		"encoder.target",
		"encoder.model",
		"encoder.pretrained",
		"encoder.device",
		"encoder.dimensions",
		"tagging.top_k",
		"tagging.min_score",
		"tagging.min_forced",
		"cache.sqlite_path",
	}

	// Sanity: only return keys that actually exist in the map.
	result := make([]string, 0, len(ordered))
	for _, k := range ordered {
		if _, ok := configKeys[k]; ok {
			result = append(result, k)
		}
	}

	// Append any keys in the map that we missed in the ordered list.
	seen := make(map[string]bool, len(result))
	for _, k := range result {
		seen[k] = true
	}
	for _, k := range keys {
		if !seen[k] {
			result = append(result, k)
		}
	}

	return result
}

// IsValidConfigKey returns true if the given key is a supported configuration key.
func IsValidConfigKey(key string) bool {
	_, ok := configKeys[key]
	return ok
}

func (c *Configer) GetTarget() string {
	return c.targetPath
}

// CachePath resolves the label-vector cache database path: the configured
// cache.sqlite_path if set, otherwise labelcache.db inside the resolved
// .lenscap/ directory, or ":memory:" when no directory was resolved.
func (c *Configer) CachePath(cfg *Config) string {
	if cfg.Cache.SQLitePath != "" {
		return cfg.Cache.SQLitePath
	}
	if c.targetDir == "" {
		return ":memory:"
	}
	return filepath.Join(c.targetDir, cacheFile)
}

// LoadConfig loads the configuration from config.toml in the target
// .lenscap/ directory. If the file does not exist, returns
// NewDefaultConfig() so callers always receive a fully-populated Config with
// sane defaults. Fields explicitly set in the file override the defaults.
func (c *Configer) LoadConfig() (*Config, error) {
	if c.targetPath == "" {
		return NewDefaultConfig(), nil
	}

	data, err := os.ReadFile(c.targetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := ParseConfigTOML(data)
	if err != nil {
		return nil, err
	}

	// Merge in defaults: fill in any zero-value fields from the loaded config
	applyDefaults(cfg)

	return cfg, nil
}

// ParseConfigTOML parses raw TOML bytes into a Config.
func ParseConfigTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// applyDefaults fills zero-value fields in cfg with values from NewDefaultConfig().
func applyDefaults(cfg *Config) {
	defaults := NewDefaultConfig()

	if cfg.Version == 0 {
		cfg.Version = defaults.Version
	}

	if cfg.Encoder.Provider == "" {
		cfg.Encoder.Provider = defaults.Encoder.Provider
	}
	if cfg.Encoder.Target == "" {
		cfg.Encoder.Target = defaults.Encoder.Target
	}
	if cfg.Encoder.Model == "" {
		cfg.Encoder.Model = defaults.Encoder.Model
	}
	if cfg.Encoder.Pretrained == "" {
		cfg.Encoder.Pretrained = defaults.Encoder.Pretrained
	}
	if cfg.Encoder.Device == "" {
		cfg.Encoder.Device = defaults.Encoder.Device
	}
	if cfg.Encoder.Dimensions == 0 {
		cfg.Encoder.Dimensions = defaults.Encoder.Dimensions
	}

	if cfg.Tagging.TopK == 0 {
		cfg.Tagging.TopK = defaults.Tagging.TopK
	}
	if cfg.Tagging.MinScore == 0 {
		cfg.Tagging.MinScore = defaults.Tagging.MinScore
	}
	if cfg.Tagging.MinForced == 0 {
		cfg.Tagging.MinForced = defaults.Tagging.MinForced
	}
}

// SaveConfig persists the configuration to config.toml in the target
// .lenscap/ directory.
func (c *Configer) SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("cannot save nil config")
	}

	if c.targetPath == "" {
		return errors.New("cannot save empty target path")
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(c.targetPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// SetConfigValue loads the config, sets the given key to the given value, and saves it.
// Returns an error if the key is not a valid config key.
func (c *Configer) SetConfigValue(key string, value string) error {
	info, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key: %q", key)
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return err
	}

	if err := info.set(cfg, value); err != nil {
		return err
	}

	return c.SaveConfig(cfg)
}

// GetConfigValue loads the config and returns the string representation of the given key.
// Returns an error if the key is not a valid config key.
func (c *Configer) GetConfigValue(key string) (string, error) {
	info, ok := configKeys[key]
	if !ok {
		return "", fmt.Errorf("unknown config key: %q", key)
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return "", err
	}

	return info.get(cfg), nil
}
