package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/graphcache/internal/core/domain"
)

func (c *CLI) newWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write [file]",
		Short: "Encode a resolution file into a session",
		Long: "Encode the components of a resolution file into a named session.\n" +
			"A directory argument selects the resolution.yaml inside it.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := domain.ResolutionFileName
			if len(args) == 1 {
				path = args[0]
			}
			session, _ := cmd.Flags().GetString("session")
			return c.app.Write(cmd.Context(), path, session)
		},
	}

	cmd.Flags().StringP("session", "s", domain.DefaultSessionName, "Session to write the results to")

	return cmd
}
