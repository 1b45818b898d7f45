package studio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mithrel/marpdeck/internal/scale"
	"github.com/mithrel/marpdeck/pkg/api"
)

// Resize reports the preview container size directly.
func (s *Studio) Resize(box api.Box) { s.scale.Resize(box) }

// Attach subscribes the preview to a container size source. Only one
// source may be attached at a time.
func (s *Studio) Attach(src scale.SizeSource) (detach func(), err error) {
	return s.scale.Attach(src)
}

func (s *Studio) ZoomIn() api.ZoomState {
	var z api.ZoomState
	s.commit(func() bool {
		z = s.scale.ZoomIn()
		return true
	})
	s.log.Debug("zoom", "state", z.String())
	return z
}

func (s *Studio) ZoomOut() api.ZoomState {
	var z api.ZoomState
	s.commit(func() bool {
		z = s.scale.ZoomOut()
		return true
	})
	s.log.Debug("zoom", "state", z.String())
	return z
}

func (s *Studio) ZoomFit() {
	s.commit(func() bool {
		s.scale.ZoomFit()
		return true
	})
	s.log.Debug("zoom", "state", "Fit")
}

// SetZoom applies a Fit or Manual zoom directly.
func (s *Studio) SetZoom(z api.ZoomState) {
	s.commit(func() bool {
		s.scale.SetZoom(z)
		return true
	})
}

// ApplyZoom interprets a textual zoom action: "in", "out", "fit", a
// percentage such as "150%", or a plain factor such as "1.5".
func (s *Studio) ApplyZoom(action string) (api.ZoomState, error) {
	a := strings.ToLower(strings.TrimSpace(action))
	switch a {
	case "in", "+":
		return s.ZoomIn(), nil
	case "out", "-":
		return s.ZoomOut(), nil
	case "fit", "0", "":
		s.ZoomFit()
		return api.Fit(), nil
	}
	pct := strings.HasSuffix(a, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
	if err != nil || v <= 0 {
		return api.ZoomState{}, fmt.Errorf("invalid zoom %q", action)
	}
	if pct {
		v /= 100
	}
	z := api.Manual(v)
	s.SetZoom(z)
	s.log.Debug("zoom", "state", z.String())
	return z, nil
}
