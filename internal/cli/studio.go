package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mithrel/marpdeck/internal/present/tui"
)

func newStudioCmd() *cobra.Command {
	var from, out, style string
	cmd := &cobra.Command{
		Use:   "studio",
		Short: "Open the terminal slide studio",
		Long: "Open the full-screen editor: slide list, markdown editor and a live preview.\n" +
			"With --from the deck is loaded from a Marp file and \"w\" writes back to it\n" +
			"unless --out names another file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("studio needs an interactive terminal")
			}
			if from != "" {
				doc, err := os.ReadFile(from)
				if err != nil {
					return err
				}
				if err := app.Studio.Import(string(doc)); err != nil {
					return fmt.Errorf("%s: %w", from, err)
				}
				if out == "" {
					out = from
				}
			}
			if out == "" {
				out = app.Cfg.GetString("export.filename")
			}
			return tui.Run(cmd.Context(), app.Studio, tui.Options{
				Feed:         app.Feed,
				GlamourStyle: style,
				OutPath:      out,
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Marp markdown file to open")
	cmd.Flags().StringVar(&out, "out", "", "file written by \"w\" (default: --from, else export.filename)")
	cmd.Flags().StringVar(&style, "glamour-style", "", "preview theme (dark, light, dracula, notty, ...)")
	return cmd
}
