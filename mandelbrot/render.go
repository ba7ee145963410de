package mandelbrot

import (
	"image"
)

// NewCanvas returns a zeroed pixel buffer sized for settings
func NewCanvas(settings Settings) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, int(settings.Width), int(settings.Height)))
}

// Render computes every pixel of one image on the calling goroutine. The
// cache is reset first so a discrete palette starts over for each render.
func Render(settings Settings, cache *ColorCache) *image.RGBA {
	if cache == nil {
		cache = NewColorCache(settings)
	} else {
		cache.Reset(settings)
	}

	m := NewMandelbrot(settings)
	img := NewCanvas(settings)
	m.RenderColumns(img, NewColorMapper(settings, cache), 0, settings.Width)
	return img
}

// RenderColumns fills columns [start, end) of img, walking each column top to bottom.
// img must have its origin at (0, 0) and the size the settings describe.
func (m *Mandelbrot) RenderColumns(img *image.RGBA, mapper ColorMapper, start uint, end uint) {
	width := m.settings.Width
	if end > width {
		end = width
	}

	for i := start; i < end; i++ {
		for j := uint(0); j < m.settings.Height; j++ {
			c := mapper.Color(m.EscapeTimeAt(i, j))

			offset := 4 * (i + j*width)
			img.Pix[offset] = c.R
			img.Pix[offset+1] = c.G
			img.Pix[offset+2] = c.B
			img.Pix[offset+3] = 255
		}
	}
}
