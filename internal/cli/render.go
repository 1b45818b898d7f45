package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mithrel/marpdeck/internal/present"
	"github.com/mithrel/marpdeck/internal/render"
)

func newRenderCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render slide markdown to sanitized HTML",
		Long: "Render one slide's markdown to the sanitized HTML fragment the preview shows.\n" +
			"Reads stdin when no file (or \"-\") is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			applyConfigFlagOverrides(cmd, app.Cfg, styleFlags)
			opts, err := out.options(cmd)
			if err != nil {
				return err
			}
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			engine, err := render.NewEngine(app.Cfg.GetString("render.engine"))
			if err != nil {
				return err
			}
			app.Log.Debug("render", "engine", engine.Name(), "bytes", len(src))
			return present.RenderHTML(cmd.Context(), cmd.OutOrStdout(), src, engine.Render(src), engine.Name(), opts)
		},
	}
	out.register(cmd, "plain")
	cmd.Flags().String("engine", "", "markdown engine: canonical|gfm (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("engine", completeOutput(render.Engines()...))
	return cmd
}

// readInput returns the file named by args[0], or stdin for "-" or no
// argument.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(b), nil
}
