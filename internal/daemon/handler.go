package daemon

import (
	"context"
	"errors"
	"fmt"

	"github.com/mithrel/marpdeck/internal/catalog"
	"github.com/mithrel/marpdeck/internal/ipc"
	"github.com/mithrel/marpdeck/internal/logger"
	"github.com/mithrel/marpdeck/internal/scale"
	"github.com/mithrel/marpdeck/internal/studio"
	"github.com/mithrel/marpdeck/pkg/api"
)

// Handler answers IPC messages against one studio.
type Handler struct {
	st   *studio.Studio
	feed *scale.Feed
	log  *logger.Logger
}

func NewHandler(st *studio.Studio, feed *scale.Feed, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{st: st, feed: feed, log: log.With("component", "ipc")}
}

// view replies with the current view; changed=false notes a no-op.
func (h *Handler) view(changed bool) ipc.Response {
	v := h.st.Snapshot()
	r := ipc.Response{OK: true, View: &v}
	if !changed {
		r.Msg = "no change"
	}
	return r
}

func (h *Handler) Handle(_ context.Context, m ipc.Message) ipc.Response {
	h.log.Debug("ipc request", "cmd", m.Name)
	switch m.Name {
	case ipc.CmdPing:
		return ipc.Response{OK: true, Msg: "pong"}
	case ipc.CmdShow:
		return h.view(true)
	case ipc.CmdAdd:
		kind := api.KindCustom
		if m.Kind != "" {
			k, ok := catalog.Resolve(m.Kind)
			if !ok {
				return ipc.Fail(fmt.Errorf("unknown template %q", m.Kind))
			}
			kind = k
		}
		sl := h.st.AddSlide(kind)
		r := h.view(true)
		r.Slide = &sl
		return r
	case ipc.CmdUpdate:
		before := h.st.Snapshot().Revision
		if err := h.st.UpdateContent(m.Index, m.Text); err != nil {
			return ipc.Fail(fmt.Errorf("slide %d: %w", m.Index, err))
		}
		return h.view(h.st.Snapshot().Revision != before)
	case ipc.CmdDelete:
		return h.view(h.st.DeleteSlide(m.Index))
	case ipc.CmdMove:
		return h.view(h.st.MoveSlide(m.From, m.To))
	case ipc.CmdSelect:
		return h.view(h.st.SelectSlide(m.Index))
	case ipc.CmdStyle:
		if err := h.st.SetStyleValue(m.Key, m.Value); err != nil {
			return ipc.Fail(err)
		}
		return h.view(true)
	case ipc.CmdZoom:
		z, err := h.st.ApplyZoom(m.Value)
		if err != nil {
			return ipc.Fail(err)
		}
		r := h.view(true)
		r.Msg = z.String()
		return r
	case ipc.CmdExport:
		return ipc.Response{OK: true, Document: h.st.Export()}
	case ipc.CmdImport:
		if err := h.st.Import(m.Text); err != nil {
			return ipc.Fail(err)
		}
		return h.view(true)
	case ipc.CmdSlide:
		html, err := h.st.RenderSlide(m.Index)
		if err != nil {
			return ipc.Fail(fmt.Errorf("slide %d: %w", m.Index, err))
		}
		return ipc.Response{OK: true, HTML: html}
	case ipc.CmdLayout:
		d := h.st.Snapshot().Dims
		return ipc.Response{OK: true, Dims: &d}
	case ipc.CmdResize:
		if m.Width < 0 || m.Height < 0 {
			return ipc.Fail(errors.New("viewport size must not be negative"))
		}
		box := api.Box{Width: m.Width, Height: m.Height}
		if h.feed != nil {
			h.feed.Publish(box)
		} else {
			h.st.Resize(box)
		}
		return h.view(true)
	default:
		h.log.Warn("unknown IPC cmd", "cmd", m.Name)
		return ipc.Response{OK: false, Msg: "unknown command"}
	}
}
