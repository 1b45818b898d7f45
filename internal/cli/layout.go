package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/mithrel/marpdeck/internal/catalog"
	"github.com/mithrel/marpdeck/internal/config"
	"github.com/mithrel/marpdeck/internal/layout"
	"github.com/mithrel/marpdeck/internal/present"
)

func newLayoutCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print slide and content dimensions for a style",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			applyConfigFlagOverrides(cmd, app.Cfg, styleFlags)
			opts, err := out.options(cmd)
			if err != nil {
				return err
			}
			style := config.StyleFrom(app.Cfg)
			return present.RenderLayout(cmd.Context(), cmd.OutOrStdout(), style, layout.Calculate(style), opts)
		},
	}
	out.register(cmd, "plain")
	addStyleFlags(cmd)
	return cmd
}

func newTemplatesCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"tpl"},
		Short:   "List slide templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := out.options(cmd)
			if err != nil {
				return err
			}
			ts := catalog.Templates()
			if opts.Mode != present.ModePretty {
				return present.RenderTemplates(cmd.Context(), cmd.OutOrStdout(), ts, opts)
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderTemplates(cmd.Context(), w, ts, opts)
			})
		},
	}
	out.register(cmd, "plain")
	return cmd
}
