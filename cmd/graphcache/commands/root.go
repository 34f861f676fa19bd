// Package commands implements the CLI commands for graphcache.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/graphcache/internal/app"
	"go.trai.ch/graphcache/internal/build"
)

// CLI represents the command line interface for graphcache.
type CLI struct {
	app     Application
	logs    LogSettings
	rootCmd *cobra.Command
}

// LogSettings is implemented by loggers that can switch verbosity and encoding.
type LogSettings interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// Application represents the application logic interface.
type Application interface {
	Write(ctx context.Context, path, session string) error
	Read(ctx context.Context, sessions []string, opts app.ReadOptions) error
	Clean(ctx context.Context) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "graphcache",
		Short:         "Store and inspect resolved dependency graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
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

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().Bool("verbose", false, "Print debug output")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write log lines as JSON")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if c.logs == nil {
			return
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		asJSON, _ := cmd.Flags().GetBool("log-json")
		c.logs.SetVerbose(verbose)
		c.logs.SetJSON(asJSON)
	}

	rootCmd.AddCommand(c.newWriteCmd())
	rootCmd.AddCommand(c.newReadCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// WithLogSettings lets the global flags configure the logger.
func (c *CLI) WithLogSettings(l LogSettings) *CLI {
	c.logs = l
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
