package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mithrel/marpdeck/internal/catalog"
	"github.com/mithrel/marpdeck/internal/config"
	"github.com/mithrel/marpdeck/internal/export"
	"github.com/mithrel/marpdeck/internal/studio"
	"github.com/mithrel/marpdeck/pkg/api"
)

func newExportCmd() *cobra.Command {
	var from, file string
	var kinds []string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a Marp document from templates or an existing deck file",
		Long: "Build a deck without the daemon and print it as a Marp document.\n" +
			"Slides come from --from (a Marp file) or one --slide per template kind;\n" +
			"with neither, the default cover slide is used.",
		Example: "  marpdeck export --slide cover --slide two --aspect-ratio 4:3 -f talk.md",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			applyConfigFlagOverrides(cmd, app.Cfg, styleFlags)
			style := config.StyleFrom(app.Cfg)

			var slides []api.Slide
			if from != "" {
				doc, err := os.ReadFile(from)
				if err != nil {
					return err
				}
				imp, err := export.Import(string(doc))
				if err != nil {
					return fmt.Errorf("%s: %w", from, err)
				}
				slides = imp.Slides
				// flags win over the file's own style block
				if !anyChanged(cmd, "aspect-ratio", "font-size", "line-spacing") {
					style = imp.Style
				}
			}
			for _, k := range kinds {
				kind, ok := catalog.Resolve(k)
				if !ok {
					return fmt.Errorf("unknown template %q", k)
				}
				text, kind := catalog.DefaultText(kind)
				slides = append(slides, api.Slide{ID: api.NewID(), Kind: kind, Text: text})
			}

			st := studio.New(studio.Options{Style: style, Slides: slides, Log: app.Log})
			defer st.Close()
			doc := st.Export()
			if file == "" || file == "-" {
				_, err := io.WriteString(cmd.OutOrStdout(), doc)
				return err
			}
			if err := os.WriteFile(file, []byte(doc), 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d slides)\n", file, len(st.Snapshot().Slides))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Marp markdown file to start from")
	cmd.Flags().StringArrayVar(&kinds, "slide", nil, "append a slide from a template kind (repeatable)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "write to file instead of stdout")
	addStyleFlags(cmd)
	_ = cmd.RegisterFlagCompletionFunc("slide", completeKinds)
	return cmd
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if f := cmd.Flags().Lookup(n); f != nil && f.Changed {
			return true
		}
	}
	return false
}
