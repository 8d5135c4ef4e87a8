// Package texture provides raster decoding and the per-image preparation
// steps applied before a texture is packed into the atlas.
package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// DecodeTGA decodes a TGA image file.
// Supports uncompressed true-color (type 2) and RLE compressed (type 10)
// images with 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		bpp:         bpp / 8,
		width:       width,
		total:       width * height,
		topToBottom: topToBottom,
	}
	if imageType == TGATypeUncompressed {
		if len(d.src) < d.total*d.bpp {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for d.n < d.total {
			d.put(d.read())
		}
	} else {
		d.decodeRLE()
	}
	return d.img, nil
}

// tgaDecoder writes BGR(A) pixels into img in file order.
type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	pos         int
	bpp         int
	width       int
	total       int
	n           int
	topToBottom bool
}

func (d *tgaDecoder) avail() bool {
	return d.pos+d.bpp <= len(d.src)
}

func (d *tgaDecoder) read() color.RGBA {
	p := d.src[d.pos : d.pos+d.bpp]
	d.pos += d.bpp
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bpp == 4 {
		c.A = p[3]
	}
	return c
}

func (d *tgaDecoder) put(c color.RGBA) {
	x, y := d.n%d.width, d.n/d.width
	if !d.topToBottom {
		y = d.img.Rect.Dy() - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.n++
}

// decodeRLE stops quietly at truncated input, leaving the rest transparent.
func (d *tgaDecoder) decodeRLE() {
	for d.n < d.total && d.pos < len(d.src) {
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if !d.avail() {
				return
			}
			c := d.read()
			for i := 0; i < count && d.n < d.total; i++ {
				d.put(c)
			}
			continue
		}
		for i := 0; i < count && d.n < d.total; i++ {
			if !d.avail() {
				return
			}
			d.put(d.read())
		}
	}
}
