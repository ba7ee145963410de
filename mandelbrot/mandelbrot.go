package mandelbrot

import (
	"math"
)

type Mandelbrot struct {
	escapeSquared float64
	settings      Settings
}

// NewMandelbrot expects settings that already went through Verify
func NewMandelbrot(settings Settings) Mandelbrot {
	mandelbrot := Mandelbrot{
		escapeSquared: settings.EscapeRadius * settings.EscapeRadius,
		settings:      settings,
	}

	return mandelbrot
}

func (m *Mandelbrot) Settings() Settings {
	return m.settings
}

// PixelToComplex maps column i in [0, Width) and row j in [0, Height) linearly onto the complex window
func (m *Mandelbrot) PixelToComplex(i uint, j uint) (float64, float64) {
	bounds := m.settings.Bounds
	a := bounds.RealMin + (float64(i)/float64(m.settings.Width))*(bounds.RealMax-bounds.RealMin)
	b := bounds.ImagMin + (float64(j)/float64(m.settings.Height))*(bounds.ImagMax-bounds.ImagMin)
	return a, b
}

func (m *Mandelbrot) EscapeTimeAt(i uint, j uint) uint {
	return m.EscapeTime(m.PixelToComplex(i, j))
}

// EscapeTime iterates z = z^2 + c starting from z = c. A return value of MaxIterations means the point never escaped.
func (m *Mandelbrot) EscapeTime(ca float64, cb float64) uint {
	a, b := ca, cb
	n := uint(0)
	for n < m.settings.MaxIterations {
		a, b = a*a-b*b+ca, 2*a*b+cb
		if m.settings.DoubleStep {
			a, b = a*a-b*b+ca, 2*a*b+cb
		}

		if m.escaped(a, b) {
			break
		}
		n++
	}
	return n
}

func (m *Mandelbrot) escaped(a float64, b float64) bool {
	// NaN compares false against everything so check for it before the radius test
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return true
	}

	switch m.settings.Divergence {
	case SumAbs:
		return math.Abs(a+b) > m.settings.EscapeRadius
	case Taxicab:
		return math.Abs(a)+math.Abs(b) > m.settings.EscapeRadius
	default:
		return a*a+b*b > m.escapeSquared
	}
}
