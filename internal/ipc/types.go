package ipc

import (
	"github.com/mithrel/marpdeck/internal/studio"
	"github.com/mithrel/marpdeck/pkg/api"
)

// Command names understood by the daemon.
const (
	CmdShow   = "deck.show"
	CmdAdd    = "deck.add"
	CmdUpdate = "deck.update"
	CmdDelete = "deck.delete"
	CmdMove   = "deck.move"
	CmdSelect = "deck.select"
	CmdStyle  = "deck.style"
	CmdZoom   = "deck.zoom"
	CmdExport = "deck.export"
	CmdImport = "deck.import"
	CmdSlide  = "slide.render"
	CmdLayout = "layout"
	CmdResize = "viewport.resize"
	CmdPing   = "ping"
)

// Message is a command payload sent from the CLI to the daemon.
// Index, From and To are always sent so that slide 0 is addressable.
type Message struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
	From  int    `json:"from"`
	To    int    `json:"to"`
	Kind  string `json:"kind,omitempty"`
	Text  string `json:"text,omitempty"`
	// Key/Value carry a style setting (aspect_ratio, font_size,
	// line_spacing, engine) or a zoom action (in, out, fit, or a percentage).
	Key    string  `json:"key,omitempty"`
	Value  string  `json:"value,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Response is the daemon reply.
type Response struct {
	OK       bool                   `json:"ok"`
	Msg      string                 `json:"msg,omitempty"`
	View     *studio.View           `json:"view,omitempty"`
	Slide    *api.Slide             `json:"slide,omitempty"`
	HTML     string                 `json:"html,omitempty"`
	Document string                 `json:"document,omitempty"`
	Dims     *api.ContentDimensions `json:"dimensions,omitempty"`
}

// Fail builds a failed response from err.
func Fail(err error) Response { return Response{OK: false, Msg: err.Error()} }
