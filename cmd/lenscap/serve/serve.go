// Package servecmder provides the serve command that runs the persistent
// text-embedding server over stdin/stdout.
package servecmder

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/papercomputeco/lenscap/pkg/config"
	encoderutils "github.com/papercomputeco/lenscap/pkg/encoder/utils"
	"github.com/papercomputeco/lenscap/pkg/logger"
	"github.com/papercomputeco/lenscap/pkg/textserver"
)

type serveCommander struct {
	provider   string
	target     string
	model      string
	pretrained string
	device     string

	debug bool
	v     *viper.Viper
}

const serveLongDesc string = `Run the persistent text-embedding server.

Reads newline-delimited JSON requests from stdin and writes one correlated
JSON response per request to stdout:

  {"id": 1, "q": "sunset over water"}   →  {"id": 1, "vector": [...]}
  {"id": 2, "q": ""}                    →  {"id": 2, "error": "empty query"}
  not json                              →  {"id": null, "error": "..."}

Blank lines are skipped. A failing request never terminates the loop; the
server exits 0 when stdin closes. Logs go to stderr only.

Examples:
  lenscap serve
  lenscap serve --provider ollama --model nomic-embed-text
  echo '{"id":1,"q":"hello"}' | lenscap serve`

const serveShortDesc string = "Run the text-embedding server over stdin/stdout"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
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

			cmder.v = v
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
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

	return cmd
}

func (c *serveCommander) run() error {
	log := logger.NewLogger(c.debug)
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

	// Session id distinguishes interleaved stderr logs when several server
	// instances share a terminal or log file.
	sessionLogger := log.With(zap.String("session", uuid.NewString()))

	sessionLogger.Info("text-embedding server started",
		zap.String("provider", cfg.Encoder.Provider),
		zap.String("model", cfg.Encoder.Model),
	)

	srv := textserver.New(enc, sessionLogger)
	if err := srv.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
		return err
	}

	sessionLogger.Info("text-embedding server stopped")
	return nil
}
