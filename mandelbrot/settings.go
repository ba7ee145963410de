package mandelbrot

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/BrugadaSyndrome/bslogger"
)

// Limits enforced by Verify. They mirror the ranges of the panel sliders.
const (
	MinIterations   = 10
	MaxIterationCap = 1000
	MinEscapeRadius = 1.0
	MaxEscapeRadius = 100.0
)

const (
	defaultEscapeRadius  = 2.0
	defaultHeight        = 400
	defaultMaxIterations = 100
	defaultWidth         = 720
)

type Bounds struct {
	RealMin float64
	RealMax float64
	ImagMin float64
	ImagMax float64
}

var (
	// Framed puts the main cardioid in the middle of a 720x400 canvas
	Framed = Bounds{RealMin: -2.5, RealMax: 1.5, ImagMin: -1.5, ImagMax: 1.5}
	Square = Bounds{RealMin: -2, RealMax: 2, ImagMin: -2, ImagMax: 2}
)

func (b Bounds) String() string {
	return fmt.Sprintf("[%g,%g]x[%g,%g]", b.RealMin, b.RealMax, b.ImagMin, b.ImagMax)
}

const (
	UltraFractal Coloring = iota
	TwoTone
	RandomPalette
	Silhouette
)

// Coloring picks the color strategy used when gray scale is off
type Coloring int

func (c Coloring) String() string {
	if c < 0 || int(c) >= len(colorings) {
		return fmt.Sprintf("Coloring(%d)", int(c))
	}
	return colorings[c]
}

var colorings = []string{
	"UltraFractal", "TwoTone", "RandomPalette", "Silhouette",
}

func ParseColoring(name string) (Coloring, error) {
	for i, v := range colorings {
		if strings.EqualFold(v, name) {
			return Coloring(i), nil
		}
	}
	return 0, fmt.Errorf("unknown coloring %q", name)
}

func (c Coloring) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(colorings) {
		return nil, fmt.Errorf("unknown coloring %d", int(c))
	}
	return []byte(colorings[c]), nil
}

func (c *Coloring) UnmarshalText(text []byte) error {
	parsed, err := ParseColoring(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

const (
	Modulus Divergence = iota
	SumAbs
	Taxicab
)

// Divergence picks the escape test applied after every update of z
type Divergence int

var divergences = []string{
	"Modulus", "SumAbs", "Taxicab",
}

func (d Divergence) String() string {
	if d < 0 || int(d) >= len(divergences) {
		return fmt.Sprintf("Divergence(%d)", int(d))
	}
	return divergences[d]
}

func ParseDivergence(name string) (Divergence, error) {
	for i, v := range divergences {
		if strings.EqualFold(v, name) {
			return Divergence(i), nil
		}
	}
	return 0, fmt.Errorf("unknown divergence test %q", name)
}

func (d Divergence) MarshalText() ([]byte, error) {
	if d < 0 || int(d) >= len(divergences) {
		return nil, fmt.Errorf("unknown divergence test %d", int(d))
	}
	return []byte(divergences[d]), nil
}

func (d *Divergence) UnmarshalText(text []byte) error {
	parsed, err := ParseDivergence(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Settings struct {
	Bounds        Bounds
	Coloring      Coloring
	Divergence    Divergence
	DoubleStep    bool
	EscapeRadius  float64
	GrayScale     bool
	Height        uint
	MaxIterations uint
	Seed          int64
	Width         uint
}

func DefaultSettings() Settings {
	s := Settings{}
	_ = s.Verify()
	return s
}

func (s *Settings) String() string {
	output := "{Settings "
	output += fmt.Sprintf("Bounds: %s ", s.Bounds)
	output += fmt.Sprintf("Coloring: %s ", s.Coloring)
	output += fmt.Sprintf("Divergence: %s ", s.Divergence)
	output += fmt.Sprintf("DoubleStep: %t ", s.DoubleStep)
	output += fmt.Sprintf("EscapeRadius: %g ", s.EscapeRadius)
	output += fmt.Sprintf("GrayScale: %t ", s.GrayScale)
	output += fmt.Sprintf("Height: %d ", s.Height)
	output += fmt.Sprintf("MaxIterations: %d ", s.MaxIterations)
	output += fmt.Sprintf("Seed: %d ", s.Seed)
	output += fmt.Sprintf("Width: %d}", s.Width)
	return output
}

// Verify fills in defaults and clamps values into the ranges the panel allows.
// Only malformed bounds or an oversized canvas are reported as errors.
func (s *Settings) Verify() error {
	logger := bslogger.NewLogger("MandelbrotSettings", bslogger.Normal, nil)

	if s.Bounds == (Bounds{}) {
		s.Bounds = Framed
	}
	for _, v := range []float64{s.Bounds.RealMin, s.Bounds.RealMax, s.Bounds.ImagMin, s.Bounds.ImagMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("bounds %s are not finite", s.Bounds)
		}
	}
	if s.Bounds.RealMin >= s.Bounds.RealMax || s.Bounds.ImagMin >= s.Bounds.ImagMax {
		return fmt.Errorf("bounds %s are empty", s.Bounds)
	}
	if s.Coloring < UltraFractal || s.Coloring > Silhouette {
		logger.Warning(fmt.Sprintf("Unknown coloring %d, using %s", int(s.Coloring), UltraFractal))
		s.Coloring = UltraFractal
	}
	if s.Divergence < Modulus || s.Divergence > Taxicab {
		logger.Warning(fmt.Sprintf("Unknown divergence test %d, using %s", int(s.Divergence), Modulus))
		s.Divergence = Modulus
	}
	// s.DoubleStep defaults to false already
	if s.EscapeRadius == 0 || math.IsNaN(s.EscapeRadius) {
		s.EscapeRadius = defaultEscapeRadius
	}
	if s.EscapeRadius < MinEscapeRadius {
		s.EscapeRadius = MinEscapeRadius
	}
	if s.EscapeRadius > MaxEscapeRadius {
		s.EscapeRadius = MaxEscapeRadius
	}
	// s.GrayScale defaults to false already
	if s.Height == 0 {
		s.Height = defaultHeight
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = defaultMaxIterations
	}
	if s.MaxIterations < MinIterations {
		s.MaxIterations = MinIterations
	}
	if s.MaxIterations > MaxIterationCap {
		s.MaxIterations = MaxIterationCap
	}
	// s.Seed of zero means seed from the clock on every reset
	if s.Width == 0 {
		s.Width = defaultWidth
	}

	if s.Width > 1<<14 || s.Height > 1<<14 {
		return errors.New("canvas is larger than 16384 pixels on a side")
	}

	return nil
}
