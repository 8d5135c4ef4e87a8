package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"path"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// Decode decodes raster bytes. TGA is chosen by the ".tga" extension of
// name, every other format is sniffed from the data.
func Decode(name string, data []byte) (image.Image, error) {
	if strings.EqualFold(path.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		return img, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// ToRGBA converts any image to an *image.RGBA with its origin at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x-b.Min.X, y-b.Min.Y, color.RGBAModel.Convert(img.At(x, y)))
		}
	}
	return out
}
