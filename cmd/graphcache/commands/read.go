package commands

import (
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/graphcache/internal/adapters/export" //nolint:depguard // Format names
	"go.trai.ch/graphcache/internal/app"
	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read [sessions...]",
		Short: "Decode and print stored sessions",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}

			format, _ := cmd.Flags().GetString("format")
			outPath, _ := cmd.Flags().GetString("out")

			opts := app.ReadOptions{Format: format, Out: cmd.OutOrStdout()}
			if outPath != "" {
				f, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePerm)
				if err != nil {
					return zerr.With(zerr.Wrap(err, "failed to open output file"), "path", outPath)
				}
				defer func() { _ = f.Close() }()
				opts.Out = f
			}

			return c.app.Read(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringP("format", "f", export.FormatText, "Output format (text, yaml, json, cbor)")
	cmd.Flags().StringP("out", "o", "", "Write to a file instead of stdout")

	return cmd
}
