package api

import (
	"fmt"
	"math"
)

const (
	MinZoom = 0.1
	MaxZoom = 3.0
)

// ZoomState is either Fit or an explicit Manual scale in [0.1, 3.0].
// The zero value is Fit.
type ZoomState struct {
	manual bool
	scale  float64
}

// Fit returns the fit sentinel.
func Fit() ZoomState { return ZoomState{} }

// Manual returns an explicit scale, clamped to [0.1, 3.0].
func Manual(scale float64) ZoomState {
	return ZoomState{manual: true, scale: ClampZoom(scale)}
}

// Frozen pins the scale to v exactly, without clamping. It records a fit
// scale taken over before a panel resize; only zoom steps clamp.
func Frozen(v float64) ZoomState {
	return ZoomState{manual: true, scale: v}
}

// ClampZoom limits v to [MinZoom, MaxZoom].
func ClampZoom(v float64) float64 {
	if math.IsNaN(v) {
		return MinZoom
	}
	return math.Min(MaxZoom, math.Max(MinZoom, v))
}

func (z ZoomState) IsFit() bool { return !z.manual }

// Scale returns the manual value; it is 0 for Fit.
func (z ZoomState) Scale() float64 {
	if !z.manual {
		return 0
	}
	return z.scale
}

// String renders "Fit" or a whole percentage such as "125%".
func (z ZoomState) String() string {
	if !z.manual {
		return "Fit"
	}
	return fmt.Sprintf("%d%%", int(math.Round(z.scale*100)))
}
