package mandelbrot

import (
	"image/color"
	"math"
	"sort"

	"mandelbrot/misc"
)

// Anchors of the Ultra Fractal style gradient, from the outside of the set inwards
var UltraFractalAnchors = []color.RGBA{
	{R: 0, G: 7, B: 100, A: 255},
	{R: 32, G: 107, B: 203, A: 255},
	{R: 237, G: 255, B: 255, A: 255},
	{R: 255, G: 170, B: 0, A: 255},
	{R: 0, G: 2, B: 0, A: 255},
}

var ultraFractalStops = []float64{0, 0.16, 0.42, 0.6425, 0.8575, 1}

type segment struct {
	Start float64
	End   float64
	From  color.RGBA
	To    color.RGBA
}

// Gradient is an ordered table of segments covering [0, 1]
type Gradient struct {
	segments []segment
}

// NewGradient pairs consecutive anchors over consecutive stops. The final
// segment holds the last anchor when there is one more stop interval than
// anchor pairs.
func NewGradient(anchors []color.RGBA, stops []float64) Gradient {
	segments := make([]segment, 0, len(stops)-1)
	for i := 0; i+1 < len(stops); i++ {
		from := anchors[min(i, len(anchors)-1)]
		to := anchors[min(i+1, len(anchors)-1)]
		segments = append(segments, segment{
			Start: stops[i],
			End:   stops[i+1],
			From:  from,
			To:    to,
		})
	}
	return Gradient{segments: segments}
}

func NewUltraFractalGradient() Gradient {
	return NewGradient(UltraFractalAnchors, ultraFractalStops)
}

// At returns the color for factor in [0, 1]. Inside a segment the
// renormalised factor is cubed, so most of the change happens near the end.
func (g Gradient) At(factor float64) color.RGBA {
	if len(g.segments) == 0 {
		return black
	}
	factor = math.Max(0, math.Min(1, factor))

	i := sort.Search(len(g.segments), func(i int) bool {
		return factor <= g.segments[i].End
	})
	if i == len(g.segments) {
		i = len(g.segments) - 1
	}

	s := g.segments[i]
	t := 0.0
	if s.End > s.Start {
		t = (factor - s.Start) / (s.End - s.Start)
	}
	return misc.LinearInterpolationRGB(s.From, s.To, t*t*t)
}

var DuotoneAnchors = [2]color.RGBA{
	{R: 255, G: 214, B: 90, A: 255},
	{R: 24, G: 16, B: 96, A: 255},
}

// Duotone fades from the first anchor towards the second with weight 1/8^factor
type Duotone struct {
	First  color.RGBA
	Second color.RGBA
}

func NewDuotone() Duotone {
	return Duotone{First: DuotoneAnchors[0], Second: DuotoneAnchors[1]}
}

func (d Duotone) At(factor float64) color.RGBA {
	return misc.LinearInterpolationRGB(d.Second, d.First, math.Pow(8, -factor))
}

// GrayLevel brightens low iteration counts with a square root
func GrayLevel(iterations uint, maxIterations uint) color.RGBA {
	if maxIterations == 0 {
		return black
	}
	factor := float64(iterations) / float64(maxIterations)
	bright := misc.LerpUint8(0, 255, math.Sqrt(factor))
	return color.RGBA{R: bright, G: bright, B: bright, A: 255}
}
