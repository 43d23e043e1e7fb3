// Package embedcmder provides the embed command for one-shot image and text
// embedding invocations.
package embedcmder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/lenscap/pkg/config"
	"github.com/papercomputeco/lenscap/pkg/encoder"
	encoderutils "github.com/papercomputeco/lenscap/pkg/encoder/utils"
	"github.com/papercomputeco/lenscap/pkg/logger"
)

const embedLongDesc string = `Embed an image or a text query as a vector.

The resulting embedding is printed to stdout as a single JSON array of
floats. Vectors are L2-normalized, so dot products between them are cosine
similarities.

Examples:
  lenscap embed image vacation.jpg
  lenscap embed text "sunset over water"
  lenscap embed text "sunset over water" --provider ollama`

const embedShortDesc string = "Embed an image or text as a vector"

type embedCommander struct {
	provider   string
	target     string
	model      string
	pretrained string
	device     string

	v *viper.Viper
}

func NewEmbedCmd() *cobra.Command {
	cmder := &embedCommander{}

	cmd := &cobra.Command{
		Use:   "embed",
		Short: embedShortDesc,
		Long:  embedLongDesc,
	}

	cmd.AddCommand(cmder.newImageCmd())
	cmd.AddCommand(cmder.newTextCmd())

	return cmd
}

func (c *embedCommander) newImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "image <path>",
		Short:   "Embed an image file",
		Args:    cobra.ExactArgs(1),
		PreRunE: c.preRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			return c.run(debug, func(ctx context.Context, enc encoder.Encoder) ([]float32, error) {
				if _, err := os.Stat(args[0]); err != nil {
					return nil, fmt.Errorf("image not found: %s", args[0])
				}
				return enc.EncodeImage(ctx, args[0])
			})
		},
	}

	c.addFlags(cmd)
	return cmd
}

func (c *embedCommander) newTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "text <query>",
		Short:   "Embed a text query",
		Args:    cobra.ExactArgs(1),
		PreRunE: c.preRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			return c.run(debug, func(ctx context.Context, enc encoder.Encoder) ([]float32, error) {
				return enc.EncodeText(ctx, args[0])
			})
		},
	}

	c.addFlags(cmd)
	return cmd
}

func (c *embedCommander) addFlags(cmd *cobra.Command) {
	config.AddStringFlag(cmd, config.Flags, config.FlagEncoderProvider, &c.provider)
	config.AddStringFlag(cmd, config.Flags, config.FlagEncoderTarget, &c.target)
	config.AddStringFlag(cmd, config.Flags, config.FlagEncoderModel, &c.model)
	config.AddStringFlag(cmd, config.Flags, config.FlagEncoderPretrained, &c.pretrained)
	config.AddStringFlag(cmd, config.Flags, config.FlagEncoderDevice, &c.device)
}

func (c *embedCommander) preRun(cmd *cobra.Command, _ []string) error {
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	config.BindRegisteredFlags(v, cmd, config.Flags, []string{
		config.FlagEncoderProvider,
		config.FlagEncoderTarget,
		config.FlagEncoderModel,
		config.FlagEncoderPretrained,
		config.FlagEncoderDevice,
	})

	c.v = v
	return nil
}

func (c *embedCommander) run(debug bool, embed func(context.Context, encoder.Encoder) ([]float32, error)) error {
	log := logger.NewLogger(debug)
	defer func() { _ = log.Sync() }()

	cfg := config.ViperConfig(c.v)

	enc, err := encoderutils.NewEncoder(&encoderutils.NewEncoderOpts{
		ProviderType: cfg.Encoder.Provider,
		TargetURL:    cfg.Encoder.Target,
		Model:        cfg.Encoder.Model,
		Pretrained:   cfg.Encoder.Pretrained,
		Device:       cfg.Encoder.Device,
	})
	if err != nil {
		return err
	}
	defer enc.Close()

	vector, err := embed(context.Background(), enc)
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(vector)
}
