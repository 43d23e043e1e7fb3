// Package encoderutils is the encoder utility package
package encoderutils

import (
	"fmt"

	"github.com/papercomputeco/lenscap/pkg/encoder"
	"github.com/papercomputeco/lenscap/pkg/encoder/ollama"
	"github.com/papercomputeco/lenscap/pkg/encoder/openclip"
)

type NewEncoderOpts struct {
	ProviderType string
	TargetURL    string
	Model        string
	Pretrained   string
	Device       string
}

func NewEncoder(o *NewEncoderOpts) (encoder.Encoder, error) {
	switch o.ProviderType {
	case "openclip":
		return openclip.NewClient(openclip.Config{
			BaseURL:    o.TargetURL,
			Model:      o.Model,
			Pretrained: o.Pretrained,
			Device:     o.Device,
		})
	case "ollama":
		return ollama.NewClient(ollama.Config{
			BaseURL: o.TargetURL,
			Model:   o.Model,
		})
	default:
		return nil, fmt.Errorf("unsupported encoder provider: %s", o.ProviderType)
	}
}
