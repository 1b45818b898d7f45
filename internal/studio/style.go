package studio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mithrel/marpdeck/internal/render"
	"github.com/mithrel/marpdeck/pkg/api"
)

// updateStyle applies fn to a copy of the style and recomputes layout and
// fit when the result differs.
func (s *Studio) updateStyle(fn func(*api.StyleSettings)) bool {
	return s.commit(func() bool {
		next := s.style
		fn(&next)
		if next == s.style {
			return false
		}
		s.style = next
		s.scale.SetDimensions(s.memo.Get(s.style))
		return true
	})
}

func (s *Studio) SetAspectRatio(key string) error {
	if _, ok := api.LookupAspectRatio(key); !ok {
		return ErrUnknownRatio
	}
	s.updateStyle(func(st *api.StyleSettings) { st.SetAspectRatio(key) })
	return nil
}

func (s *Studio) SetFontSize(px int) bool {
	return s.updateStyle(func(st *api.StyleSettings) { st.SetFontSize(px) })
}

func (s *Studio) SetLineSpacing(v float64) bool {
	return s.updateStyle(func(st *api.StyleSettings) { st.SetLineSpacing(v) })
}

// SetEngine switches the markdown engine by name.
func (s *Studio) SetEngine(name string) error {
	e, err := render.NewEngine(name)
	if err != nil {
		return err
	}
	if s.commit(func() bool {
		if s.engine.Name() == e.Name() {
			return false
		}
		s.engine = e
		return true
	}) {
		s.log.Info("render engine selected", "engine", e.Name())
	}
	return nil
}

// Style setting keys accepted by SetStyleValue.
const (
	KeyAspectRatio = "aspect_ratio"
	KeyFontSize    = "font_size"
	KeyLineSpacing = "line_spacing"
	KeyEngine      = "engine"
)

// SetStyleValue applies a textual setting as sent by the CLI. Numeric
// values outside their range are clamped like the typed setters.
func (s *Studio) SetStyleValue(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case KeyAspectRatio:
		return s.SetAspectRatio(value)
	case KeyFontSize:
		px, err := strconv.Atoi(strings.TrimSuffix(value, "px"))
		if err != nil {
			return fmt.Errorf("font_size %q: %w", value, err)
		}
		s.SetFontSize(px)
	case KeyLineSpacing:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("line_spacing %q: %w", value, err)
		}
		s.SetLineSpacing(v)
	case KeyEngine:
		return s.SetEngine(value)
	default:
		return fmt.Errorf("unknown style key %q", key)
	}
	return nil
}
