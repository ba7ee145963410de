package misc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

func LerpFloat64(v1 float64, v2 float64, fraction float64) float64 {
	return v1 + (v2-v1)*fraction
}

func LerpUint8(v1 uint8, v2 uint8, fraction float64) uint8 {
	return uint8(LerpFloat64(float64(v1), float64(v2), fraction))
}

// LinearInterpolationRGB mixes two colors channel by channel. The result is always opaque.
func LinearInterpolationRGB(color1 color.RGBA, color2 color.RGBA, fraction float64) color.RGBA {
	return color.RGBA{
		R: LerpUint8(color1.R, color2.R, fraction),
		G: LerpUint8(color1.G, color2.G, fraction),
		B: LerpUint8(color1.B, color2.B, fraction),
		A: 255,
	}
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("unable to encode png - %w", err)
	}
	return buf.Bytes(), nil
}

func DecodePNG(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode png - %w", err)
	}
	return img, nil
}

func SavePNG(fileName string, img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	_, err = WriteFile(fileName, data)
	return err
}
