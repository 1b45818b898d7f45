package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mithrel/marpdeck/internal/ipc"
	"github.com/mithrel/marpdeck/internal/present"
	"github.com/mithrel/marpdeck/internal/studio"
	"github.com/mithrel/marpdeck/internal/ui"
	"github.com/mithrel/marpdeck/pkg/api"
)

// newDeckCmd groups the commands that act on the daemon's deck. Slide
// indices are zero-based, as in "deck list".
func newDeckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Work with the deck held by the running daemon",
	}
	cmd.AddCommand(newDeckListCmd())
	cmd.AddCommand(newDeckShowCmd())
	cmd.AddCommand(newDeckAddCmd())
	cmd.AddCommand(newDeckUpdateCmd())
	cmd.AddCommand(newDeckEditCmd())
	cmd.AddCommand(newDeckDeleteCmd())
	cmd.AddCommand(newDeckMoveCmd())
	cmd.AddCommand(newDeckSelectCmd())
	cmd.AddCommand(newDeckStyleCmd())
	cmd.AddCommand(newDeckZoomCmd())
	cmd.AddCommand(newDeckExportCmd())
	cmd.AddCommand(newDeckImportCmd())
	return cmd
}

// request sends m to the daemon and turns a refused reply into an error.
func request(cmd *cobra.Command, m ipc.Message) (ipc.Response, error) {
	sock, err := ipc.SocketPath()
	if err != nil {
		return ipc.Response{}, err
	}
	resp, err := ipc.Request(cmd.Context(), sock, m)
	if err != nil {
		return ipc.Response{}, fmt.Errorf("daemon not reachable (start it with `marpdeck daemon`): %w", err)
	}
	if !resp.OK {
		if resp.Msg != "" {
			return resp, errors.New(resp.Msg)
		}
		return resp, fmt.Errorf("%s failed", m.Name)
	}
	return resp, nil
}

func viewOf(cmd *cobra.Command, m ipc.Message) (studio.View, string, error) {
	resp, err := request(cmd, m)
	if err != nil {
		return studio.View{}, "", err
	}
	if resp.View == nil {
		return studio.View{}, "", errors.New("daemon returned no deck")
	}
	return *resp.View, resp.Msg, nil
}

func slidesOf(v studio.View) []api.Slide {
	out := make([]api.Slide, len(v.Slides))
	for i, s := range v.Slides {
		out[i] = api.Slide{ID: s.ID, Kind: s.Kind, Text: s.Text}
	}
	return out
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("invalid slide index %q", s)
	}
	return i, nil
}

// report prints done, or a note that nothing changed.
func report(cmd *cobra.Command, msg, done string) {
	if msg == "no change" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No change.")
		return
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), done)
}

func newDeckListCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List slides",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out.interactive() {
				return pickSlide(cmd)
			}
			opts, err := out.options(cmd)
			if err != nil {
				return err
			}
			v, _, err := viewOf(cmd, ipc.Message{Name: ipc.CmdShow})
			if err != nil {
				return err
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderSlides(cmd.Context(), w, slidesOf(v), v.Selected, opts)
			})
		},
	}
	out.register(cmd, "plain")
	cmd.Flags().Lookup("output").Usage = "output mode: plain|pretty|json|ndjson|tui"
	return cmd
}

// pickSlide browses the deck in a table and selects the chosen slide.
func pickSlide(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("-o tui needs a terminal")
	}
	v, _, err := viewOf(cmd, ipc.Message{Name: ipc.CmdShow})
	if err != nil {
		return err
	}
	idx, ok, err := ui.PickSlide(cmd.Context(), slidesOf(v), v.Selected)
	if err != nil || !ok {
		return err
	}
	_, msg, err := viewOf(cmd, ipc.Message{Name: ipc.CmdSelect, Index: idx})
	if err != nil {
		return err
	}
	report(cmd, msg, fmt.Sprintf("Selected slide %d.", idx))
	return nil
}

func newDeckShowCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "show [index]",
		Short: "Show one slide (default: the selected one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := out.options(cmd)
			if err != nil {
				return err
			}
			v, _, err := viewOf(cmd, ipc.Message{Name: ipc.CmdShow})
			if err != nil {
				return err
			}
			idx := v.Selected
			if len(args) == 1 {
				if idx, err = parseIndex(args[0]); err != nil {
					return err
				}
			}
			if idx >= len(v.Slides) {
				return fmt.Errorf("slide %d: index out of range (deck has %d slides)", idx, len(v.Slides))
			}
			resp, err := request(cmd, ipc.Message{Name: ipc.CmdSlide, Index: idx})
			if err != nil {
				return err
			}
			s := slidesOf(v)[idx]
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderSlide(cmd.Context(), w, idx, s, resp.HTML, opts)
			})
		},
	}
	out.register(cmd, "plain")
	return cmd
}

func newDeckAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "add [kind]",
		Short:             "Append a slide from a template (default: custom, empty)",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := ipc.Message{Name: ipc.CmdAdd}
			if len(args) == 1 {
				m.Kind = args[0]
			}
			resp, err := request(cmd, m)
			if err != nil {
				return err
			}
			if resp.Slide == nil || resp.View == nil {
				return errors.New("daemon returned no slide")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", resp.View.Selected, resp.Slide.Kind, resp.Slide.ID)
			return nil
		},
	}
	return cmd
}

func newDeckUpdateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "update <index> [text]",
		Short: "Replace a slide's markdown (text argument, --file, or stdin)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			var text string
			switch {
			case len(args) == 2 && args[1] != "-":
				text = args[1]
			case file != "":
				if text, err = readInput(cmd, []string{file}); err != nil {
					return err
				}
			default:
				if text, err = readInput(cmd, nil); err != nil {
					return err
				}
			}
			_, msg, err := viewOf(cmd, ipc.Message{Name: ipc.CmdUpdate, Index: idx, Text: text})
			if err != nil {
				return err
			}
			report(cmd, msg, fmt.Sprintf("Updated slide %d.", idx))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the markdown from a file")
	return cmd
}

func newDeckDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <index>",
		Aliases: []string{"rm"},
		Short:   "Delete a slide (the last slide is kept)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			_, msg, err := viewOf(cmd, ipc.Message{Name: ipc.CmdDelete, Index: idx})
			if err != nil {
				return err
			}
			report(cmd, msg, fmt.Sprintf("Deleted slide %d.", idx))
			return nil
		},
	}
	return cmd
}

func newDeckMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a slide to another position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			to, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			_, msg, err := viewOf(cmd, ipc.Message{Name: ipc.CmdMove, From: from, To: to})
			if err != nil {
				return err
			}
			report(cmd, msg, fmt.Sprintf("Moved slide %d to %d.", from, to))
			return nil
		},
	}
	return cmd
}

func newDeckSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select <index>",
		Short: "Select the slide the preview shows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			_, msg, err := viewOf(cmd, ipc.Message{Name: ipc.CmdSelect, Index: idx})
			if err != nil {
				return err
			}
			report(cmd, msg, fmt.Sprintf("Selected slide %d.", idx))
			return nil
		},
	}
	return cmd
}

func newDeckStyleCmd() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "style [key value]",
		Short: "Show or change the deck style (aspect_ratio, font_size, line_spacing, engine)",
		Args: cobra.MatchAll(cobra.RangeArgs(0, 2), func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return errors.New("style takes a key and a value")
			}
			return nil
		}),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return []string{studio.KeyAspectRatio, studio.KeyFontSize, studio.KeyLineSpacing, studio.KeyEngine}, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := out.options(cmd)
			if err != nil {
				return err
			}
			m := ipc.Message{Name: ipc.CmdShow}
			if len(args) == 2 {
				m = ipc.Message{Name: ipc.CmdStyle, Key: args[0], Value: args[1]}
			}
			v, _, err := viewOf(cmd, m)
			if err != nil {
				return err
			}
			return present.RenderLayout(cmd.Context(), cmd.OutOrStdout(), v.Style, v.Dims, opts)
		},
	}
	out.register(cmd, "plain")
	return cmd
}

func newDeckZoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zoom in|out|fit|<percent>",
		Short: "Change the preview zoom",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"in", "out", "fit", "100%"}, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			v, label, err := viewOf(cmd, ipc.Message{Name: ipc.CmdZoom, Value: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d%%\n", label, int(v.Scale.Effective*100+0.5))
			return nil
		},
	}
	return cmd
}

func newDeckExportCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the daemon's deck as a Marp document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := request(cmd, ipc.Message{Name: ipc.CmdExport})
			if err != nil {
				return err
			}
			if file == "" || file == "-" {
				_, err := io.WriteString(cmd.OutOrStdout(), resp.Document)
				return err
			}
			if err := os.WriteFile(file, []byte(resp.Document), 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "write to file instead of stdout")
	return cmd
}

func newDeckImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the daemon's deck with a Marp document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			v, _, err := viewOf(cmd, ipc.Message{Name: ipc.CmdImport, Text: doc})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d slides.\n", len(v.Slides))
			return nil
		},
	}
	return cmd
}
