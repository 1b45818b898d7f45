package present

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mithrel/marpdeck/internal/catalog"
	"github.com/mithrel/marpdeck/internal/present/format"
	"github.com/mithrel/marpdeck/pkg/api"
)

type Mode int

const (
	ModePlain Mode = iota
	ModePretty
	ModeJSON
	ModeNDJSON
	ModeTUI
)

// ErrTUIUnsupported is returned for outputs that have no interactive form.
var ErrTUIUnsupported = errors.New("tui output is only available through the studio command")

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	// Width is the wrap width for pretty output.
	Width int
}

// ParseMode parses a string like "plain", "pretty", "json", "ndjson", "tui".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "plain":
		return ModePlain, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	case "ndjson":
		return ModeNDJSON, true
	case "tui":
		return ModeTUI, true
	default:
		return ModePlain, false
	}
}

func (o Options) width() int {
	if o.Width <= 0 {
		return 80
	}
	return o.Width
}

// RenderSlides renders the deck listing.
func RenderSlides(_ context.Context, w io.Writer, slides []api.Slide, selected int, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSON(w, struct {
			Selected int         `json:"selected"`
			Slides   []api.Slide `json:"slides"`
		}{selected, slides}, opts.JSONIndent)
	case ModeNDJSON:
		return format.WriteNDJSONSlides(w, slides)
	case ModePretty:
		for i, s := range slides {
			hdr := fmt.Sprintf("%d · %s", i, catalog.DisplayName(s.Kind))
			if i == selected {
				hdr += " · selected"
			}
			if err := format.WritePrettySlide(w, hdr, s.Text, opts.width()); err != nil {
				return err
			}
		}
		return nil
	case ModeTUI:
		return ErrTUIUnsupported
	default:
		return format.WritePlainSlides(w, slides, selected, opts.Headers)
	}
}

// RenderSlide renders one slide; html is used by the plain and json modes.
func RenderSlide(_ context.Context, w io.Writer, index int, s api.Slide, html string, opts Options) error {
	switch opts.Mode {
	case ModeJSON, ModeNDJSON:
		return format.WriteJSON(w, struct {
			Index int    `json:"index"`
			ID    string `json:"id"`
			Kind  string `json:"kind"`
			Text  string `json:"text"`
			HTML  string `json:"html"`
		}{index, s.ID, s.Kind, s.Text, html}, opts.JSONIndent && opts.Mode == ModeJSON)
	case ModePretty:
		return format.WritePrettySlide(w, fmt.Sprintf("%d · %s", index, catalog.DisplayName(s.Kind)), s.Text, opts.width())
	case ModeTUI:
		return ErrTUIUnsupported
	default:
		_, err := io.WriteString(w, s.Text+"\n")
		return err
	}
}

// RenderHTML writes the result of rendering markdown. Plain output is the
// HTML itself; pretty output previews the source in the terminal.
func RenderHTML(_ context.Context, w io.Writer, source, html, engine string, opts Options) error {
	switch opts.Mode {
	case ModeJSON, ModeNDJSON:
		return format.WriteJSON(w, struct {
			Engine string `json:"engine"`
			HTML   string `json:"html"`
		}{engine, html}, opts.JSONIndent && opts.Mode == ModeJSON)
	case ModePretty:
		return format.WritePrettySlide(w, "", source, opts.width())
	case ModeTUI:
		return ErrTUIUnsupported
	default:
		_, err := io.WriteString(w, html+"\n")
		return err
	}
}

// RenderTemplates lists the template catalog.
func RenderTemplates(_ context.Context, w io.Writer, ts []catalog.Template, opts Options) error {
	switch opts.Mode {
	case ModeJSON, ModeNDJSON:
		return format.WriteJSON(w, ts, opts.JSONIndent && opts.Mode == ModeJSON)
	case ModePretty:
		for _, t := range ts {
			if err := format.WritePrettySlide(w, t.Kind+" · "+t.DisplayName, t.DefaultText, opts.width()); err != nil {
				return err
			}
		}
		return nil
	case ModeTUI:
		return ErrTUIUnsupported
	default:
		return format.WritePlainTemplates(w, ts, opts.Headers)
	}
}

// RenderLayout prints the style and the content dimensions it implies.
func RenderLayout(_ context.Context, w io.Writer, style api.StyleSettings, d api.ContentDimensions, opts Options) error {
	switch opts.Mode {
	case ModeJSON, ModeNDJSON:
		return format.WriteJSON(w, struct {
			Style      api.StyleSettings     `json:"style"`
			Dimensions api.ContentDimensions `json:"dimensions"`
		}{style, d}, opts.JSONIndent && opts.Mode == ModeJSON)
	case ModeTUI:
		return ErrTUIUnsupported
	default:
		return format.WritePlainDims(w, style, d)
	}
}
