package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/mithrel/marpdeck/internal/render"
	"github.com/mithrel/marpdeck/pkg/api"
)

// CheckConfigValidity reports every problem found in v as one joined error.
// Style values outside their range are reported even though the setters
// would clamp them, so a typo in the file does not go unnoticed.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error

	if strings.TrimSpace(v.GetString("http_addr")) == "" {
		errs = append(errs, errors.New("http_addr is required"))
	}

	if key := v.GetString("style.aspect_ratio"); key != "" {
		if _, ok := api.LookupAspectRatio(key); !ok {
			errs = append(errs, fmt.Errorf("style.aspect_ratio %q is not one of 16:9, 4:3, 16:10", key))
		}
	}
	if v.IsSet("style.font_size") {
		if px := v.GetInt("style.font_size"); px < api.MinFontSizePx || px > api.MaxFontSizePx {
			errs = append(errs, fmt.Errorf("style.font_size must be within %d-%d, got %d", api.MinFontSizePx, api.MaxFontSizePx, px))
		}
	}
	if v.IsSet("style.line_spacing") {
		if sp := v.GetFloat64("style.line_spacing"); sp < api.MinLineSpacing || sp > api.MaxLineSpacing {
			errs = append(errs, fmt.Errorf("style.line_spacing must be within %.1f-%.1f, got %v", api.MinLineSpacing, api.MaxLineSpacing, sp))
		}
	}

	if _, err := render.NewEngine(v.GetString("render.engine")); err != nil {
		errs = append(errs, fmt.Errorf("render.engine: %w", err))
	}

	if v.IsSet("preview.margin") && v.GetFloat64("preview.margin") < 0 {
		errs = append(errs, errors.New("preview.margin must not be negative"))
	}
	if v.IsSet("preview.zoom_step") && v.GetFloat64("preview.zoom_step") <= 0 {
		errs = append(errs, errors.New("preview.zoom_step must be greater than 0"))
	}
	if v.IsSet("layout.editor_ratio") {
		if r := v.GetFloat64("layout.editor_ratio"); r < 0.1 || r > 0.9 {
			errs = append(errs, errors.New("layout.editor_ratio must be within 0.1-0.9"))
		}
	}
	if v.IsSet("layout.sidebar_width") {
		if w := v.GetInt("layout.sidebar_width"); w < 200 || w > 500 {
			errs = append(errs, errors.New("layout.sidebar_width must be within 200-500"))
		}
	}

	switch m := v.GetString("log.mode"); m {
	case "", "dev", "prod":
	default:
		errs = append(errs, fmt.Errorf("log.mode %q must be dev or prod", m))
	}

	if v.GetBool("otel.enabled") {
		if r := v.GetFloat64("otel.sample_ratio"); r < 0 || r > 1 {
			errs = append(errs, errors.New("otel.sample_ratio must be within 0-1"))
		}
	}

	if strings.ContainsAny(v.GetString("export.filename"), `/\`) {
		errs = append(errs, errors.New("export.filename must be a bare file name"))
	}

	return errors.Join(errs...)
}
