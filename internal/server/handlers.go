package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mithrel/marpdeck/internal/deck"
	"github.com/mithrel/marpdeck/internal/export"
	"github.com/mithrel/marpdeck/internal/render"
	"github.com/mithrel/marpdeck/internal/studio"
	"github.com/mithrel/marpdeck/pkg/api"
)

// maxBody bounds markdown and document uploads.
const maxBody = 4 << 20

// Mutation reports whether a deck operation changed anything, with the
// view after it.
type Mutation struct {
	Changed bool        `json:"changed"`
	View    studio.View `json:"view"`
}

func (s *Server) mutation(c *gin.Context, changed bool) {
	RespondOK(c, Mutation{Changed: changed, View: s.cfg.Studio.Snapshot()})
}

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func readBody(c *gin.Context) (string, error) {
	b, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBody+1))
	if err != nil {
		return "", err
	}
	if len(b) > maxBody {
		return "", fmt.Errorf("body exceeds %d bytes", maxBody)
	}
	return string(b), nil
}

func indexParam(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_index", fmt.Errorf("index %q: not an integer", c.Param("index")))
		return 0, false
	}
	return i, true
}

func (s *Server) renderMarkdown(c *gin.Context) {
	e, err := render.NewEngine(c.Query("engine"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_engine", err)
		return
	}
	text, err := readBody(c)
	if err != nil {
		RespondError(c, http.StatusRequestEntityTooLarge, "body_too_large", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(e.Render(text)))
}

func (s *Server) getDeck(c *gin.Context) {
	RespondOK(c, s.cfg.Studio.Snapshot())
}

type addRequest struct {
	Kind string `json:"kind"`
}

func (s *Server) addSlide(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	sl := s.cfg.Studio.AddSlide(req.Kind)
	c.JSON(http.StatusCreated, gin.H{"slide": sl, "view": s.cfg.Studio.Snapshot()})
}

type updateRequest struct {
	Text *string `json:"text"`
}

func (s *Server) updateSlide(c *gin.Context) {
	i, ok := indexParam(c)
	if !ok {
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil {
		RespondError(c, http.StatusBadRequest, "bad_request", errors.New("body must be {\"text\": string}"))
		return
	}
	before := s.cfg.Studio.Snapshot().Revision
	if err := s.cfg.Studio.UpdateContent(i, *req.Text); err != nil {
		if errors.Is(err, deck.ErrOutOfRange) {
			RespondError(c, http.StatusNotFound, "out_of_range", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	v := s.cfg.Studio.Snapshot()
	RespondOK(c, Mutation{Changed: v.Revision != before, View: v})
}

func (s *Server) deleteSlide(c *gin.Context) {
	i, ok := indexParam(c)
	if !ok {
		return
	}
	s.mutation(c, s.cfg.Studio.DeleteSlide(i))
}

type moveRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (s *Server) moveSlide(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	s.mutation(c, s.cfg.Studio.MoveSlide(req.From, req.To))
}

type selectRequest struct {
	Index int `json:"index"`
}

func (s *Server) selectSlide(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	s.mutation(c, s.cfg.Studio.SelectSlide(req.Index))
}

type styleRequest struct {
	AspectRatio *string  `json:"aspect_ratio"`
	FontSize    *int     `json:"font_size"`
	LineSpacing *float64 `json:"line_spacing"`
	Engine      *string  `json:"engine"`
}

// putStyle validates every field before applying any of them.
func (s *Server) putStyle(c *gin.Context) {
	var req styleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.AspectRatio != nil {
		if _, ok := api.LookupAspectRatio(*req.AspectRatio); !ok {
			RespondError(c, http.StatusBadRequest, "bad_aspect_ratio", fmt.Errorf("%w: %q", studio.ErrUnknownRatio, *req.AspectRatio))
			return
		}
	}
	if req.Engine != nil {
		if _, err := render.NewEngine(*req.Engine); err != nil {
			RespondError(c, http.StatusBadRequest, "bad_engine", err)
			return
		}
	}
	st := s.cfg.Studio
	before := st.Snapshot().Revision
	if req.AspectRatio != nil {
		_ = st.SetAspectRatio(*req.AspectRatio)
	}
	if req.FontSize != nil {
		st.SetFontSize(*req.FontSize)
	}
	if req.LineSpacing != nil {
		st.SetLineSpacing(*req.LineSpacing)
	}
	if req.Engine != nil {
		_ = st.SetEngine(*req.Engine)
	}
	v := st.Snapshot()
	RespondOK(c, Mutation{Changed: v.Revision != before, View: v})
}

func (s *Server) getLayout(c *gin.Context) {
	RespondOK(c, s.cfg.Studio.Snapshot().Dims)
}

func (s *Server) putViewport(c *gin.Context) {
	var box api.Box
	if err := c.ShouldBindJSON(&box); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if box.Width < 0 || box.Height < 0 {
		RespondError(c, http.StatusBadRequest, "bad_viewport", errors.New("viewport size must not be negative"))
		return
	}
	if s.cfg.Feed != nil {
		s.cfg.Feed.Publish(box)
	} else {
		s.cfg.Studio.Resize(box)
	}
	RespondOK(c, s.cfg.Studio.Snapshot().Scale)
}

type zoomRequest struct {
	Action string `json:"action"`
}

func (s *Server) postZoom(c *gin.Context) {
	var req zoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if _, err := s.cfg.Studio.ApplyZoom(req.Action); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_zoom", err)
		return
	}
	RespondOK(c, s.cfg.Studio.Snapshot().Scale)
}

func (s *Server) slideHTML(c *gin.Context) {
	i, ok := indexParam(c)
	if !ok {
		return
	}
	html, err := s.cfg.Studio.RenderSlide(i)
	if err != nil {
		RespondError(c, http.StatusNotFound, "out_of_range", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) exportDeck(c *gin.Context) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.cfg.ExportFilename))
	c.Data(http.StatusOK, export.MediaType, []byte(s.cfg.Studio.Export()))
}

func (s *Server) importDeck(c *gin.Context) {
	doc, err := readBody(c)
	if err != nil {
		RespondError(c, http.StatusRequestEntityTooLarge, "body_too_large", err)
		return
	}
	if err := s.cfg.Studio.Import(doc); err != nil {
		if errors.Is(err, export.ErrNoSlides) {
			RespondError(c, http.StatusUnprocessableEntity, "no_slides", err)
			return
		}
		RespondError(c, http.StatusBadRequest, "bad_document", err)
		return
	}
	s.mutation(c, true)
}
