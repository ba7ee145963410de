package misc

import (
	"image"

	"github.com/fogleman/gg"
)

// Caption stamps text onto the bottom left corner of img, in place
func Caption(img *image.RGBA, text string) {
	if text == "" {
		return
	}

	dc := gg.NewContextForRGBA(img)
	w, h := dc.MeasureString(text)
	height := float64(img.Bounds().Dy())

	const margin = 4
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, height-h-2*margin, w+2*margin, h+2*margin)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(text, margin, height-margin, 0, 0)
}
