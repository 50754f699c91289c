package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newScriptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scripts <model_path>",
		Short: "List the capability scripts available for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Scripts(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}
