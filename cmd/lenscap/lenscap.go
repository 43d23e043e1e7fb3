// Package lenscapcmder
package lenscapcmder

import (
	"github.com/spf13/cobra"

	captioncmder "github.com/papercomputeco/lenscap/cmd/lenscap/caption"
	configcmder "github.com/papercomputeco/lenscap/cmd/lenscap/config"
	embedcmder "github.com/papercomputeco/lenscap/cmd/lenscap/embed"
	servecmder "github.com/papercomputeco/lenscap/cmd/lenscap/serve"
	versioncmder "github.com/papercomputeco/lenscap/cmd/lenscap/version"
)

const lenscapLongDesc string = `Lenscap is zero-shot image tagging and embedding over a CLIP-style encoder.

Tag and caption images, or embed images and text as vectors:
  lenscap caption <image>      Tag an image and assemble a caption
  lenscap embed image <path>   Print an image embedding as a JSON array
  lenscap embed text <query>   Print a text embedding as a JSON array
  lenscap serve                Run the persistent text-embedding server`

const lenscapShortDesc string = "Lenscap - Zero-shot image tagging"

func NewLenscapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lenscap",
		Short:         lenscapShortDesc,
		Long:          lenscapLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .lenscap/ config directory")

	// Add subcommands
	cmd.AddCommand(captioncmder.NewCaptionCmd())
	cmd.AddCommand(embedcmder.NewEmbedCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
