// Package commands implements the CLI commands for the sho design browser.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/sho/internal/app"
	"go.trai.ch/sho/internal/build"
)

// CLI represents the command line interface for sho.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	opts    app.Options
}

// Application represents the application logic interface.
type Application interface {
	Show(ctx context.Context, dirs []string, opts app.Options) error
	ExportPaths(ctx context.Context, dirs []string, opts app.Options, exp app.ExportOptions) error
	ExportFunnels(ctx context.Context, dirs []string, opts app.Options, exp app.ExportOptions) error
	Scripts(ctx context.Context, w io.Writer, modelPath string) error
	CachePrune(ctx context.Context, opts app.Options) error
	CacheClean(ctx context.Context, opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "sho [flags] <design_dirs>...",
		Short: "Browse and judge forward-folded design candidates",
		Long: "sho loads every model in the given design directories, ranks them by the\n" +
			"primary metric and opens an interactive funnel plot browser. Outside a\n" +
			"terminal, or with --quiet, it fills the metric cache and prints a summary.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			return c.app.Show(cmd.Context(), args, c.opts)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.opts.ConfigPath, "config", "c", "", "Path to sho.yaml (default: nearest sho.yaml above the working directory)")
	flags.BoolVarP(&c.opts.Force, "force", "f", false, "Ignore cached metrics and re-extract every model")
	flags.BoolVarP(&c.opts.Quiet, "quiet", "q", false, "Load the designs and print a summary instead of opening the browser")
	flags.StringVarP(&c.opts.XMetric, "x-metric", "x", "", "Metric on the x axis")
	flags.StringVarP(&c.opts.YMetric, "y-metric", "y", "", "Metric on the y axis")
	flags.StringVar(&c.opts.Primary, "primary", "", "Metric that ranks the models of a design (default: total_score)")
	flags.StringVar(&c.opts.CacheBackend, "cache-backend", "", "Metric cache backend: sqlite, badger, json or memory")
	flags.StringVar(&c.opts.CachePath, "cache-path", "", "Location of the metric cache")
	flags.BoolVar(&c.opts.JSONLog, "json-log", false, "Log as JSON")
	flags.StringVar(&c.opts.TraceFile, "trace-file", "", "Write OpenTelemetry spans to this file")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newExportCmd())
	rootCmd.AddCommand(c.newScriptsCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
