package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/marpdeck/internal/config"
	"github.com/mithrel/marpdeck/internal/daemon"
)

func newDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the deck daemon (IPC socket and HTTP preview API)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if err := config.CheckConfigValidity(app.Cfg); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting marpdeck daemon...\n")
			return daemon.Run(cmd.Context(), app)
		},
	}
	return cmd
}
