package wire

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/mithrel/marpdeck/internal/config"
	"github.com/mithrel/marpdeck/internal/logger"
	"github.com/mithrel/marpdeck/internal/observability"
	"github.com/mithrel/marpdeck/internal/render"
	"github.com/mithrel/marpdeck/internal/scale"
	"github.com/mithrel/marpdeck/internal/studio"
)

// Version is stamped at build time.
var Version = "dev"

// App aggregates the major services for easy injection.
type App struct {
	Cfg     *viper.Viper
	Log     *logger.Logger
	Studio  *studio.Studio
	Feed    *scale.Feed
	Tracing *observability.Tracing

	detach func()
}

// BuildApp wires dependencies with the provided config. The studio's
// preview is attached to Feed, so container sizes published there drive
// the fit scale.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	log, err := logger.New(v.GetString("log.mode"))
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	engine, err := render.NewEngine(v.GetString("render.engine"))
	if err != nil {
		return nil, fmt.Errorf("render.engine: %w", err)
	}
	st := studio.New(studio.Options{
		Style:        config.StyleFrom(v),
		Engine:       engine,
		Margin:       v.GetFloat64("preview.margin"),
		ZoomStep:     v.GetFloat64("preview.zoom_step"),
		EditorRatio:  v.GetFloat64("layout.editor_ratio"),
		SidebarWidth: v.GetFloat64("layout.sidebar_width"),
		Log:          log,
	})
	feed := scale.NewFeed()
	detach, err := st.Attach(feed)
	if err != nil {
		return nil, err
	}
	tr := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     v.GetBool("otel.enabled"),
		SampleRatio: v.GetFloat64("otel.sample_ratio"),
		Version:     Version,
		Writer:      os.Stderr,
	})
	log.Debug("app wired", "engine", engine.Name(), "config", v.ConfigFileUsed())
	return &App{
		Cfg:     v,
		Log:     log,
		Studio:  st,
		Feed:    feed,
		Tracing: tr,
		detach:  detach,
	}, nil
}

// Close releases the studio and flushes tracing and logs.
func (a *App) Close(ctx context.Context) {
	if a.detach != nil {
		a.detach()
	}
	a.Studio.Close()
	if err := a.Tracing.Shutdown(ctx); err != nil {
		a.Log.Warn("tracing shutdown", "error", err)
	}
	a.Log.Sync()
}
