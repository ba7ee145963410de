// Package controls holds the settings edits behind the desktop window's key
// bindings, apart from the window so they build without a display.
package controls

import (
	"fmt"

	"mandelbrot/mandelbrot"
)

const (
	MoreIterations Key = iota
	FewerIterations
	WiderRadius
	NarrowerRadius
	ToggleGrayScale
	NextColoring
)

// Key is an editing action bound to a keyboard key
type Key int

func (k Key) String() string {
	switch k {
	case MoreIterations:
		return "MoreIterations"
	case FewerIterations:
		return "FewerIterations"
	case WiderRadius:
		return "WiderRadius"
	case NarrowerRadius:
		return "NarrowerRadius"
	case ToggleGrayScale:
		return "ToggleGrayScale"
	case NextColoring:
		return "NextColoring"
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

const (
	iterationStep = 10
	radiusStep    = 1
)

// Apply edits s once per key, in order, and clamps the result to the ranges
// Verify allows
func Apply(s mandelbrot.Settings, keys []Key) mandelbrot.Settings {
	for _, k := range keys {
		switch k {
		case MoreIterations:
			s.MaxIterations += iterationStep
		case FewerIterations:
			if s.MaxIterations > iterationStep {
				s.MaxIterations -= iterationStep
			} else {
				s.MaxIterations = 0
			}
		case WiderRadius:
			s.EscapeRadius += radiusStep
		case NarrowerRadius:
			s.EscapeRadius -= radiusStep
		case ToggleGrayScale:
			s.GrayScale = !s.GrayScale
		case NextColoring:
			s.Coloring = (s.Coloring + 1) % (mandelbrot.Silhouette + 1)
		}
	}

	if s.MaxIterations < mandelbrot.MinIterations {
		s.MaxIterations = mandelbrot.MinIterations
	}
	if s.MaxIterations > mandelbrot.MaxIterationCap {
		s.MaxIterations = mandelbrot.MaxIterationCap
	}
	if s.EscapeRadius < mandelbrot.MinEscapeRadius {
		s.EscapeRadius = mandelbrot.MinEscapeRadius
	}
	if s.EscapeRadius > mandelbrot.MaxEscapeRadius {
		s.EscapeRadius = mandelbrot.MaxEscapeRadius
	}
	return s
}
