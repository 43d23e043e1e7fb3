// Package configcmder provides the config command for managing persistent
// lenscap configuration stored in the .lenscap/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent lenscap configuration.

Configuration is stored as config.toml in the .lenscap/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  encoder.provider, encoder.target, encoder.model,
  encoder.pretrained, encoder.device, encoder.dimensions,
  tagging.top_k, tagging.min_score, tagging.min_forced,
  cache.sqlite_path

Use subcommands to get, set, or list configuration values:
  lenscap config set <key> <value>    Set a configuration value
  lenscap config get <key>            Get a configuration value
  lenscap config list                 List all configuration values

Examples:
  lenscap config set encoder.model ViT-B-32
  lenscap config set encoder.device cuda
  lenscap config get encoder.pretrained
  lenscap config list`

const configShortDesc string = "Manage persistent lenscap configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
