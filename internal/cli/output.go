package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/marpdeck/internal/present"
)

// outputFlags are the --output/--indent/--noheaders trio shared by commands
// that print deck data.
type outputFlags struct {
	mode      string
	indent    bool
	noHeaders bool
}

func (o *outputFlags) register(cmd *cobra.Command, def string) {
	cmd.Flags().StringVarP(&o.mode, "output", "o", def, "output mode: plain|pretty|json|ndjson")
	cmd.Flags().BoolVar(&o.indent, "indent", false, "indent json output")
	cmd.Flags().BoolVar(&o.noHeaders, "noheaders", false, "hide column headers (plain)")
	_ = cmd.RegisterFlagCompletionFunc("output", completeOutput("plain", "pretty", "json", "ndjson"))
}

// interactive reports whether -o tui was requested.
func (o *outputFlags) interactive() bool {
	return strings.EqualFold(o.mode, "tui")
}

func (o *outputFlags) options(cmd *cobra.Command) (present.Options, error) {
	mode, ok := present.ParseMode(strings.ToLower(o.mode))
	if !ok || mode == present.ModeTUI {
		return present.Options{}, fmt.Errorf("invalid --output: %s", o.mode)
	}
	return present.Options{
		Mode:       mode,
		JSONIndent: o.indent,
		Headers:    !o.noHeaders,
		Width:      termWidth(cmd.OutOrStdout()),
	}, nil
}
