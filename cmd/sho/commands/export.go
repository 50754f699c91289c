package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/sho/internal/app"
	"go.trai.ch/sho/internal/core/domain"
)

func (c *CLI) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the designs matching a search",
	}
	cmd.AddCommand(c.newExportPathsCmd())
	cmd.AddCommand(c.newExportFunnelsCmd())
	return cmd
}

func (c *CLI) newExportPathsCmd() *cobra.Command {
	var exp app.ExportOptions
	cmd := &cobra.Command{
		Use:   "paths <design_dirs>...",
		Short: "Write the best model path of each design",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ExportPaths(cmd.Context(), args, c.opts, exp)
		},
	}
	cmd.Flags().StringVarP(&exp.Output, "output", "o", domain.DefaultPathsExport, "File to write")
	cmd.Flags().StringVarP(&exp.Search, "search", "s", "", "Only export designs whose notes contain this text")
	return cmd
}

func (c *CLI) newExportFunnelsCmd() *cobra.Command {
	var exp app.ExportOptions
	cmd := &cobra.Command{
		Use:   "funnels <design_dirs>...",
		Short: "Write an HTML document with one funnel plot per design",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ExportFunnels(cmd.Context(), args, c.opts, exp)
		},
	}
	cmd.Flags().StringVarP(&exp.Output, "output", "o", domain.DefaultFunnelsExport, "File to write")
	cmd.Flags().StringVarP(&exp.Search, "search", "s", "", "Only export designs whose notes contain this text")
	return cmd
}
