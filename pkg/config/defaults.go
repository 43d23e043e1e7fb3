package config

import (
	"github.com/papercomputeco/lenscap/pkg/encoder/openclip"
)

// NewDefaultConfig returns a fully-populated Config with the defaults used
// when no config file exists.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Encoder: EncoderConfig{
			Provider: "openclip",
			// Empty means "the provider's own default URL", so switching
			// providers doesn't drag the wrong endpoint along.
			Target:     "",
			Model:      openclip.DefaultModel,
			Pretrained: openclip.DefaultPretrained,
			Device:     openclip.DefaultDevice,
			Dimensions: 512,
		},
		Tagging: TaggingConfig{
			TopK:      12,
			MinScore:  0.03,
			MinForced: 5,
		},
		Cache: CacheConfig{
			// Empty means "labelcache.db inside the resolved .lenscap/ dir";
			// commands resolve it via Configer.CachePath.
			SQLitePath: "",
		},
	}
}
