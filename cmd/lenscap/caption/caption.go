// Package captioncmder provides the caption command for zero-shot image
// tagging and caption assembly.
package captioncmder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/papercomputeco/lenscap/pkg/caption"
	"github.com/papercomputeco/lenscap/pkg/cliui"
	"github.com/papercomputeco/lenscap/pkg/config"
	"github.com/papercomputeco/lenscap/pkg/encoder"
	encoderutils "github.com/papercomputeco/lenscap/pkg/encoder/utils"
	"github.com/papercomputeco/lenscap/pkg/logger"
	"github.com/papercomputeco/lenscap/pkg/scoring"
	"github.com/papercomputeco/lenscap/pkg/tagger"
	"github.com/papercomputeco/lenscap/pkg/vocab/vocabcache"
)

var (
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

type captionCommander struct {
	imagePath string
	pretty    bool

	provider   string
	target     string
	model      string
	pretrained string
	device     string
	cachePath  string

	debug     bool
	configDir string
	v         *viper.Viper
	logger    *zap.Logger
}

const captionLongDesc string = `Tag an image against the candidate vocabulary and assemble a caption.

The image is embedded once, scored against the precomputed vocabulary prompt
embeddings, and the top-scoring labels become tags. The caption is assembled
from the leading tags; the final tag set merges selected tags with lexical
tokens mined from the caption itself.

Output is a single JSON line on stdout:
  {"caption": "photo of beach with ocean, sunset", "tags": ["beach", ...]}

Use --pretty for a styled human-readable rendering instead.

Examples:
  lenscap caption vacation.jpg
  lenscap caption vacation.jpg --pretty
  lenscap caption vacation.jpg --model ViT-B-32 --pretrained laion2b_s34b_b79k`

const captionShortDesc string = "Tag and caption an image"

func NewCaptionCmd() *cobra.Command {
	cmder := &captionCommander{}

	cmd := &cobra.Command{
		Use:   "caption <image>",
		Short: captionShortDesc,
		Long:  captionLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagEncoderProvider,
				config.FlagEncoderTarget,
				config.FlagEncoderModel,
				config.FlagEncoderPretrained,
				config.FlagEncoderDevice,
				config.FlagCacheSQLite,
			})

			cmder.v = v
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.imagePath = args[0]

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagEncoderProvider, &cmder.provider)
	config.AddStringFlag(cmd, config.Flags, config.FlagEncoderTarget, &cmder.target)
	config.AddStringFlag(cmd, config.Flags, config.FlagEncoderModel, &cmder.model)
	config.AddStringFlag(cmd, config.Flags, config.FlagEncoderPretrained, &cmder.pretrained)
	config.AddStringFlag(cmd, config.Flags, config.FlagEncoderDevice, &cmder.device)
	config.AddStringFlag(cmd, config.Flags, config.FlagCacheSQLite, &cmder.cachePath)
	cmd.Flags().BoolVar(&cmder.pretty, "pretty", false, "Render a styled human-readable view instead of JSON")

	return cmd
}

func (c *captionCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	if _, err := os.Stat(c.imagePath); err != nil {
		return fmt.Errorf("image not found: %s", c.imagePath)
	}

	ctx := context.Background()
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

	res, err := c.tagImage(ctx, cfg, enc)
	if err != nil {
		return err
	}

	if c.pretty {
		c.printPretty(res)
		return nil
	}

	return json.NewEncoder(os.Stdout).Encode(res)
}

func (c *captionCommander) tagImage(ctx context.Context, cfg *config.Config, enc encoder.Encoder) (*caption.Result, error) {
	cfger, err := config.NewConfiger(c.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving cache path: %w", err)
	}

	cache, err := vocabcache.New(vocabcache.Config{
		DBPath:     cfger.CachePath(cfg),
		Provider:   cfg.Encoder.Provider,
		Model:      cfg.Encoder.Model,
		Pretrained: cfg.Encoder.Pretrained,
	}, c.logger)
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	var labelVectors [][]float32
	warm := func() error {
		var warmErr error
		labelVectors, warmErr = cache.Warm(ctx, enc)
		return warmErr
	}

	if c.pretty {
		err = cliui.Step(os.Stderr, "warming label vectors", warm)
	} else {
		err = warm()
	}
	if err != nil {
		return nil, err
	}

	t, err := tagger.New(enc, labelVectors, scoring.SelectOpts{
		TopK:      int(cfg.Tagging.TopK),
		MinScore:  cfg.Tagging.MinScore,
		MinForced: int(cfg.Tagging.MinForced),
	}, c.logger)
	if err != nil {
		return nil, err
	}

	return t.Tag(ctx, c.imagePath)
}

func (c *captionCommander) printPretty(res *caption.Result) {
	fmt.Printf("\n  %s\n\n", captionStyle.Render(res.Caption))

	tags := make([]string, len(res.Tags))
	for i, t := range res.Tags {
		tags[i] = tagStyle.Render(t)
	}
	fmt.Printf("  %s\n\n", strings.Join(tags, cliui.DimStyle.Render(" · ")))
}
