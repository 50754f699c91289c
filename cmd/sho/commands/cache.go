package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the persisted metric cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Drop cached metrics of models that changed or no longer exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.CachePrune(cmd.Context(), c.opts)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Delete the metric cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.CacheClean(cmd.Context(), c.opts)
		},
	})

	return cmd
}
