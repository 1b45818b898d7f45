package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/mithrel/marpdeck/internal/observability"
)

func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if s.cfg.Tracer != nil {
		r.Use(otelgin.Middleware(observability.ServiceName, otelgin.WithTracerProvider(s.cfg.Tracer)))
	}
	r.Use(AttachRequestID())
	r.Use(RequestLogger(s.cfg.Log))
	r.Use(CORS())

	r.GET("/healthz", s.health)

	v1 := r.Group("/v1")
	{
		v1.POST("/render", s.renderMarkdown)

		v1.GET("/deck", s.getDeck)
		v1.POST("/deck/slides", s.addSlide)
		v1.PUT("/deck/slides/:index", s.updateSlide)
		v1.DELETE("/deck/slides/:index", s.deleteSlide)
		v1.POST("/deck/move", s.moveSlide)
		v1.POST("/deck/select", s.selectSlide)

		v1.PUT("/style", s.putStyle)
		v1.GET("/layout", s.getLayout)
		v1.PUT("/viewport", s.putViewport)
		v1.POST("/zoom", s.postZoom)

		v1.GET("/slides/:index/html", s.slideHTML)
		v1.GET("/export", s.exportDeck)
		v1.POST("/import", s.importDeck)

		v1.GET("/events", s.events)
	}
	return r
}
