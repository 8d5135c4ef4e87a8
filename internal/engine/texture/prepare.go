package texture

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// IsTransparent reports whether any pixel of img is less than fully opaque.
func IsTransparent(img image.Image) bool {
	switch m := img.(type) {
	case *image.RGBA:
		return anyAlphaBelow(m.Pix, m.Stride, m.Rect, 3)
	case *image.NRGBA:
		return anyAlphaBelow(m.Pix, m.Stride, m.Rect, 3)
	case *image.Paletted:
		translucent := make([]bool, len(m.Palette))
		for i, c := range m.Palette {
			_, _, _, a := c.RGBA()
			translucent[i] = a < 0xffff
		}
		b := m.Rect
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := m.Pix[m.PixOffset(b.Min.X, y):m.PixOffset(b.Max.X, y)]
			for _, idx := range row {
				if int(idx) < len(translucent) && translucent[idx] {
					return true
				}
			}
		}
		return false
	}

	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return false
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a < 0xffff {
				return true
			}
		}
	}
	return false
}

func anyAlphaBelow(pix []byte, stride int, r image.Rectangle, alphaOffset int) bool {
	w := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		row := pix[y*stride : y*stride+w]
		for i := alphaOffset; i < len(row); i += 4 {
			if row[i] != 0xff {
				return true
			}
		}
	}
	return false
}

// Repeat tiles img nx times horizontally and ny times vertically. A 2×2
// repeat lets the four-tap shader sample across tile borders at every mip
// level without pulling in neighbouring tiles.
func Repeat(img image.Image, nx, ny int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w*nx, h*ny))
	for ty := 0; ty < ny; ty++ {
		for tx := 0; tx < nx; tx++ {
			draw.Copy(out, image.Pt(tx*w, ty*h), img, b, draw.Src, nil)
		}
	}
	return out
}

// Tile is one cell cut from a sprite sheet.
type Tile struct {
	Name  string
	X, Y  int
	Image *image.RGBA
}

// TileName names the cell of sheet at pixel offset (x, y).
func TileName(sheet string, x, y int) string {
	return fmt.Sprintf("%s_%d_%d", sheet, x, y)
}

// Slice cuts img into w×h cells, column by column (x outer, y inner).
// Cells overhanging the right or bottom edge are kept and padded with
// transparent pixels.
func Slice(sheet string, img image.Image, w, h int) []Tile {
	if w <= 0 || h <= 0 {
		return nil
	}
	b := img.Bounds()
	var tiles []Tile
	for x := 0; x < b.Dx(); x += w {
		for y := 0; y < b.Dy(); y += h {
			cell := image.NewRGBA(image.Rect(0, 0, w, h))
			sr := image.Rect(b.Min.X+x, b.Min.Y+y, b.Min.X+x+w, b.Min.Y+y+h).Intersect(b)
			draw.Copy(cell, image.Point{}, img, sr, draw.Src, nil)
			tiles = append(tiles, Tile{Name: TileName(sheet, x, y), X: x, Y: y, Image: cell})
		}
	}
	return tiles
}

// Fill returns a w×h image of one colour.
func Fill(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}
