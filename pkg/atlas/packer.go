// Package atlas packs named raster images into one shared RGBA surface.
//
// A Packer places images into free space using a guillotine binary tree.
// When an image does not fit, Place returns ErrFull and the caller replaces
// the packer with the one returned by Expand, which owns a larger surface.
package atlas

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/Faultbox/voxeltex/pkg/uv"
)

// DefaultPadding is the border reserved around each tile when TilePad is set
// and Options.Padding is zero.
const DefaultPadding = 1

// Rect is a placement rectangle in surface pixels.
type Rect struct {
	X, Y, W, H int
}

// Bounds converts r to an image.Rectangle.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

func rectFrom(b image.Rectangle) Rect {
	return Rect{X: b.Min.X, Y: b.Min.Y, W: b.Dx(), H: b.Dy()}
}

// Entry is one placed image.
type Entry struct {
	Name string
	Rect Rect
}

// Options configures a Packer.
type Options struct {
	// TilePad reserves a border around every tile and fills it with the
	// tile's edge pixels, so filtering does not pull in neighbours.
	TilePad bool

	// Padding is the border width in pixels used when TilePad is set.
	Padding int

	// Background fills surface area that holds no tile. Nil leaves it
	// transparent.
	Background color.Color
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	return nil
}

func (o Options) padding() int {
	if !o.TilePad {
		return 0
	}
	if o.Padding == 0 {
		return DefaultPadding
	}
	return o.Padding
}

// Packer owns an atlas surface and the placement of every image on it.
// It is not safe for concurrent use.
type Packer struct {
	surface  *image.RGBA
	root     *node
	opts     Options
	entries  []Entry
	byName   map[string]int
	usedArea int
}

// NewSurface allocates a w×h surface filled with bg (nil = transparent).
func NewSurface(w, h int, bg color.Color) *image.RGBA {
	s := image.NewRGBA(image.Rect(0, 0, w, h))
	if bg != nil {
		draw.Draw(s, s.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	return s
}

// New returns a packer bound to surface. The surface origin must be (0,0).
func New(surface *image.RGBA, opts Options) *Packer {
	b := surface.Bounds()
	return &Packer{
		surface: surface,
		root:    &node{rect: image.Rect(0, 0, b.Dx(), b.Dy())},
		opts:    opts,
		byName:  make(map[string]int),
	}
}

// Options returns the packer configuration.
func (p *Packer) Options() Options { return p.opts }

// SetTilePad toggles tile padding for subsequent placements.
func (p *Packer) SetTilePad(on bool) { p.opts.TilePad = on }

// Surface returns the backing surface. It is replaced, not resized, by Expand.
func (p *Packer) Surface() *image.RGBA { return p.surface }

// Size returns the surface dimensions.
func (p *Packer) Size() (w, h int) {
	b := p.surface.Bounds()
	return b.Dx(), b.Dy()
}

// Len returns the number of placed images.
func (p *Packer) Len() int { return len(p.entries) }

// Place reserves space for img, draws it and records it under name.
// The returned rectangle is the image area, excluding any tile padding.
func (p *Packer) Place(name string, img image.Image) (Rect, error) {
	src := img.Bounds()
	if src.Empty() {
		return Rect{}, ErrEmptyImage
	}
	if _, dup := p.byName[name]; dup {
		return Rect{}, fmt.Errorf("%w: %s", ErrDuplicate, name)
	}

	pad := p.opts.padding()
	outer, ok := p.root.insert(src.Dx()+2*pad, src.Dy()+2*pad)
	if !ok {
		return Rect{}, ErrFull
	}

	inner := image.Rectangle{
		Min: outer.Min.Add(image.Pt(pad, pad)),
		Max: outer.Max.Sub(image.Pt(pad, pad)),
	}
	draw.Copy(p.surface, inner.Min, img, src, draw.Src, nil)
	if pad > 0 {
		extrude(p.surface, inner, pad)
	}

	r := rectFrom(inner)
	p.byName[name] = len(p.entries)
	p.entries = append(p.entries, Entry{Name: name, Rect: r})
	p.usedArea += outer.Dx() * outer.Dy()
	return r, nil
}

// CanFit reports whether an image of the given size would be placed.
func (p *Packer) CanFit(w, h int) bool {
	pad := p.opts.padding()
	return p.root.canFit(w+2*pad, h+2*pad)
}

// Expand returns a packer bound to a new, larger surface on which img is
// guaranteed to fit. Width and height are doubled, the shorter side first,
// until there is room. Existing tiles are re-rendered onto the new surface;
// UVs derived from the old packer are void because the surface size changed.
// The receiver must not be used afterwards.
func (p *Packer) Expand(img image.Image) *Packer {
	b := img.Bounds()
	pad := p.opts.padding()
	need := image.Pt(b.Dx()+2*pad, b.Dy()+2*pad)

	w, h := p.Size()
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	root := p.root.clone()
	for {
		if w <= h {
			w *= 2
		} else {
			h *= 2
		}
		if grow(root, w, h).canFit(need.X, need.Y) {
			break
		}
	}

	surface := NewSurface(w, h, p.opts.Background)
	draw.Copy(surface, image.Point{}, p.surface, p.surface.Bounds(), draw.Src, nil)

	next := &Packer{
		surface:  surface,
		root:     grow(root, w, h),
		opts:     p.opts,
		entries:  append([]Entry(nil), p.entries...),
		byName:   make(map[string]int, len(p.byName)),
		usedArea: p.usedArea,
	}
	for name, i := range p.byName {
		next.byName[name] = i
	}
	return next
}

// Normalize grows the surface to the smallest power-of-two square that
// bounds both current dimensions. Existing pixels keep their positions;
// nothing is cropped. It reports whether the surface changed.
func (p *Packer) Normalize() bool {
	w, h := p.Size()
	size := NextPowerOfTwo(max(w, h))
	if size == w && size == h {
		return false
	}

	surface := NewSurface(size, size, p.opts.Background)
	draw.Copy(surface, image.Point{}, p.surface, p.surface.Bounds(), draw.Src, nil)
	p.surface = surface
	p.root = grow(p.root, size, size)
	return true
}

// Index returns every placed entry in placement order.
func (p *Packer) Index() []Entry {
	return append([]Entry(nil), p.entries...)
}

// Lookup returns the placement of name.
func (p *Packer) Lookup(name string) (Rect, bool) {
	i, ok := p.byName[name]
	if !ok {
		return Rect{}, false
	}
	return p.entries[i].Rect, true
}

// Utilization returns the fraction of the surface reserved by tiles.
func (p *Packer) Utilization() float64 {
	w, h := p.Size()
	if w <= 0 || h <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(w*h)
}

// UV converts entries to UV quads relative to a w×h surface.
func UV(entries []Entry, w, h int) map[string]uv.Quad {
	out := make(map[string]uv.Quad, len(entries))
	for _, e := range entries {
		out[e.Name] = uv.FromPixels(e.Rect.X, e.Rect.Y, e.Rect.W, e.Rect.H, w, h)
	}
	return out
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (n *node) clone() *node {
	if n == nil {
		return nil
	}
	return &node{
		rect:   n.rect,
		left:   n.left.clone(),
		right:  n.right.clone(),
		filled: n.filled,
	}
}

// extrude fills a pad-wide border around inner with the nearest edge pixels.
func extrude(s *image.RGBA, inner image.Rectangle, pad int) {
	for i := 1; i <= pad; i++ {
		top := image.Rect(inner.Min.X, inner.Min.Y, inner.Max.X, inner.Min.Y+1)
		draw.Copy(s, image.Pt(inner.Min.X, inner.Min.Y-i), s, top, draw.Src, nil)
		bottom := image.Rect(inner.Min.X, inner.Max.Y-1, inner.Max.X, inner.Max.Y)
		draw.Copy(s, image.Pt(inner.Min.X, inner.Max.Y-1+i), s, bottom, draw.Src, nil)
	}
	// Columns span the padded height so the corners are filled too.
	outerMinY, outerMaxY := inner.Min.Y-pad, inner.Max.Y+pad
	for i := 1; i <= pad; i++ {
		left := image.Rect(inner.Min.X, outerMinY, inner.Min.X+1, outerMaxY)
		draw.Copy(s, image.Pt(inner.Min.X-i, outerMinY), s, left, draw.Src, nil)
		right := image.Rect(inner.Max.X-1, outerMinY, inner.Max.X, outerMaxY)
		draw.Copy(s, image.Pt(inner.Max.X-1+i, outerMinY), s, right, draw.Src, nil)
	}
}
