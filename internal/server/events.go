package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mithrel/marpdeck/internal/studio"
)

// events streams views as server-sent events. The current view is sent
// first; later views arrive in revision order and never repeat a revision.
func (s *Server) events(c *gin.Context) {
	ch, cancel := s.cfg.Studio.Subscribe(16)
	defer cancel()

	h := c.Writer.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	cur := s.cfg.Studio.Snapshot()
	if err := writeView(c.Writer, cur); err != nil {
		return
	}
	c.Writer.Flush()
	last := cur.Revision

	heartbeat := time.NewTicker(s.cfg.Heartbeat)
	defer heartbeat.Stop()
	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			_, _ = fmt.Fprint(c.Writer, ": ping\n\n")
			c.Writer.Flush()
		case v, ok := <-ch:
			if !ok {
				return
			}
			if v.Revision <= last {
				continue
			}
			last = v.Revision
			if err := writeView(c.Writer, v); err != nil {
				s.cfg.Log.Warn("sse write failed", "error", err)
				return
			}
			c.Writer.Flush()
		}
	}
}

func writeView(w io.Writer, v studio.View) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: view\ndata: %s\n\n", v.Revision, b)
	return err
}
