package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mithrel/marpdeck/internal/catalog"
	"github.com/mithrel/marpdeck/internal/editor"
	"github.com/mithrel/marpdeck/internal/ipc"
)

func newDeckEditCmd() *cobra.Command {
	var keepTmp bool
	cmd := &cobra.Command{
		Use:   "edit [index]",
		Short: "Edit a slide in $VISUAL/$EDITOR (default: the selected one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
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
			cur := v.Slides[idx]

			path, err := editor.PathForSlide(cur.ID)
			if err != nil {
				return err
			}
			initial := []byte(editor.ComposeSlide(idx, catalog.DisplayName(cur.Kind), cur.Text))
			keep := keepTmp
			defer func() {
				if !keep {
					_ = os.Remove(path)
				}
			}()
			out, changed, err := editor.OpenAt(path, initial)
			if err != nil {
				return err
			}
			text := editor.ParseEditedSlide(string(out))
			if !changed || text == cur.Text {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No edits; slide unchanged.")
				return nil
			}
			// The deck may have changed while the editor was open; address
			// the slide by the index it had when we read it only if the id
			// still matches.
			now, _, err := viewOf(cmd, ipc.Message{Name: ipc.CmdShow})
			if err != nil {
				return err
			}
			if idx >= len(now.Slides) || now.Slides[idx].ID != cur.ID {
				idx = -1
				for i, s := range now.Slides {
					if s.ID == cur.ID {
						idx = i
						break
					}
				}
				if idx < 0 {
					keep = true
					return fmt.Errorf("slide was deleted while editing; your text is in %s", path)
				}
			}
			if _, _, err := viewOf(cmd, ipc.Message{Name: ipc.CmdUpdate, Index: idx, Text: text}); err != nil {
				return err
			}
			app.Log.Debug("slide edited", "index", idx, "id", cur.ID)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated slide %d.\n", idx)
			return nil
		},
	}
	cmd.Flags().BoolVar(&keepTmp, "keep-tmp", false, "keep the temporary file after editing")
	return cmd
}
