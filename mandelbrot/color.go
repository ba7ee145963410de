package mandelbrot

import (
	"image/color"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

type ColorMapper interface {
	Color(iterations uint) color.RGBA
}

// NewColorMapper picks the strategy for settings. Gray scale wins over the
// coloring choice. The cache is only consulted by RandomPalette; a nil cache
// gets a fresh one.
func NewColorMapper(settings Settings, cache *ColorCache) ColorMapper {
	if settings.GrayScale {
		return grayScaleMapper{maxIterations: settings.MaxIterations}
	}

	switch settings.Coloring {
	case TwoTone:
		return duotoneMapper{maxIterations: settings.MaxIterations, duotone: NewDuotone()}
	case RandomPalette:
		if cache == nil {
			cache = NewColorCache(settings)
		}
		return paletteMapper{cache: cache}
	case Silhouette:
		return silhouetteMapper{maxIterations: settings.MaxIterations}
	default:
		return gradientMapper{maxIterations: settings.MaxIterations, gradient: NewUltraFractalGradient()}
	}
}

type grayScaleMapper struct {
	maxIterations uint
}

func (g grayScaleMapper) Color(iterations uint) color.RGBA {
	return GrayLevel(iterations, g.maxIterations)
}

type gradientMapper struct {
	gradient      Gradient
	maxIterations uint
}

func (g gradientMapper) Color(iterations uint) color.RGBA {
	if iterations >= g.maxIterations {
		return black
	}
	return g.gradient.At(float64(iterations) / float64(g.maxIterations))
}

type duotoneMapper struct {
	duotone       Duotone
	maxIterations uint
}

func (d duotoneMapper) Color(iterations uint) color.RGBA {
	if iterations >= d.maxIterations {
		return black
	}
	return d.duotone.At(float64(iterations) / float64(d.maxIterations))
}

type paletteMapper struct {
	cache *ColorCache
}

func (p paletteMapper) Color(iterations uint) color.RGBA {
	return p.cache.Lookup(iterations)
}

type silhouetteMapper struct {
	maxIterations uint
}

func (s silhouetteMapper) Color(iterations uint) color.RGBA {
	if iterations >= s.maxIterations {
		return white
	}
	return black
}
