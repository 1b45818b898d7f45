package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mithrel/marpdeck/pkg/api"
)

const appName = "marpdeck"

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// If SetConfigFile was provided upstream it takes precedence; these
	// paths are fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, appName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	// A missing file is fine; defaults and env still apply.
	_ = v.ReadInConfig()

	// MARPDECK_STYLE_FONT_SIZE overrides style.font_size, and so on.
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(v.GetString("render.engine")) == "" {
		v.Set("render.engine", "canonical")
	}
	return nil
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, appName, "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for defaults and generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "http_addr", Default: "127.0.0.1:7466", Comment: "HTTP listen address for the daemon's preview API"},

		{Key: "style.aspect_ratio", Default: api.DefaultRatioKey, Comment: "Slide aspect ratio: 16:9, 4:3 or 16:10"},
		{Key: "style.font_size", Default: api.DefaultFontSize, Comment: "Base font size in px (10-48)"},
		{Key: "style.line_spacing", Default: api.DefaultSpacing, Comment: "Line height multiplier (1.0-2.5)"},

		{Key: "render.engine", Default: "canonical", Comment: "Markdown engine: canonical or gfm"},

		{Key: "preview.margin", Default: 16.0, Comment: "Pixels kept free around the slide when fitting the preview"},
		{Key: "preview.zoom_step", Default: 0.1, Comment: "Zoom in/out increment"},

		{Key: "layout.editor_ratio", Default: 0.5, Comment: "Initial editor share of the editor/preview split (0.1-0.9)"},
		{Key: "layout.sidebar_width", Default: 256, Comment: "Initial sidebar width in px (200-500)"},

		{Key: "export.filename", Default: "presentation.md", Comment: "Default file name for exported decks"},

		{Key: "log.mode", Default: "dev", Comment: "Log format: dev (console) or prod (JSON)"},

		{Key: "otel.enabled", Default: false, Comment: "Export request traces to stdout"},
		{Key: "otel.sample_ratio", Default: 1.0, Comment: "Fraction of requests traced (0-1)"},
	}
}

// StyleFrom builds deck style settings from config. Out-of-range values are
// clamped by the setters; unknown ratios keep the default.
func StyleFrom(v *viper.Viper) api.StyleSettings {
	s := api.DefaultStyle()
	s.SetAspectRatio(v.GetString("style.aspect_ratio"))
	if px := v.GetInt("style.font_size"); px != 0 {
		s.SetFontSize(px)
	}
	if sp := v.GetFloat64("style.line_spacing"); sp != 0 {
		s.SetLineSpacing(sp)
	}
	return s
}
