package wire

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/marpdeck/internal/config"
	"github.com/mithrel/marpdeck/pkg/api"
)

func loadConfig(t *testing.T, set map[string]any) *viper.Viper {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	v := viper.New()
	require.NoError(t, config.Load(context.Background(), v))
	for k, val := range set {
		v.Set(k, val)
	}
	return v
}

func TestBuildAppFromConfig(t *testing.T) {
	v := loadConfig(t, map[string]any{
		"style.aspect_ratio": "4:3",
		"style.font_size":    24,
		"render.engine":      "gfm",
	})
	app, err := BuildApp(context.Background(), v)
	require.NoError(t, err)
	defer app.Close(context.Background())

	view := app.Studio.Snapshot()
	assert.Equal(t, "4:3", view.Style.AspectRatio().Key)
	assert.Equal(t, 24, view.Style.FontSizePx())
	assert.Equal(t, "gfm", view.Engine)

	app.Feed.Publish(api.Box{Width: 656, Height: 976})
	assert.InDelta(t, 0.5, app.Studio.Snapshot().Scale.Effective, 1e-9)
}

func TestBuildAppRejectsUnknownEngine(t *testing.T) {
	v := loadConfig(t, map[string]any{"render.engine": "marked"})
	_, err := BuildApp(context.Background(), v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render.engine")
}
