// Package voxeltex maintains a growing texture atlas for voxel meshes.
//
// A Texture fetches named rasters, packs them into one shared atlas, tracks
// which voxel types contain transparent pixels and paints mesh faces with
// the UVs of their material. Loading is asynchronous; paint requests made
// while any batch is in flight are queued and applied, in order, once the
// last batch finishes.
package voxeltex

import (
	"context"
	"image"
	"image/color"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/voxeltex/internal/logger"
	"github.com/Faultbox/voxeltex/pkg/atlas"
	"github.com/Faultbox/voxeltex/pkg/material"
	"github.com/Faultbox/voxeltex/pkg/uv"
)

// Texture is the load and paint coordinator. All methods are safe for
// concurrent use.
type Texture struct {
	opts Options
	log  *zap.Logger

	mu          sync.Mutex
	packer      *atlas.Packer
	gen         uint64 // bumped whenever the surface pixels or size change
	materials   []material.Slot
	specs       []material.Spec
	sprites     []spriteRequest
	scheduled   map[string]bool
	transparent map[string]bool
	uvs         map[string]uv.Quad
	loading     int
	queue       []paintRequest

	animMu     sync.Mutex
	animations []*Animation
}

// paintRequest holds the slot expanded at Paint time.
type paintRequest struct {
	mesh     Renderable
	explicit bool
	slot     material.Slot
}

type spriteRequest struct {
	name          string
	width, height int
}

// New creates an empty Texture with an opaque black atlas of the configured
// size. Nothing is fetched until Load is called.
func New(opts Options) (*Texture, error) {
	if opts.Source == nil {
		return nil, ErrNoRasterSource
	}
	opts.applyDefaults()

	packOpts := atlas.Options{
		TilePad:    opts.TilePad,
		Padding:    opts.Padding,
		Background: color.RGBA{A: 0xff},
	}
	if err := packOpts.Validate(); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.Named("voxeltex")
	}

	return &Texture{
		opts:        opts,
		log:         log,
		packer:      atlas.New(atlas.NewSurface(opts.Width, opts.Height, packOpts.Background), packOpts),
		scheduled:   make(map[string]bool),
		transparent: make(map[string]bool),
		uvs:         make(map[string]uv.Quad),
	}, nil
}

// Options returns the options the texture was created with, defaults applied.
func (t *Texture) Options() Options { return t.opts }

// Loading returns the number of batches in flight.
func (t *Texture) Loading() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

// Pending returns the number of queued paint requests.
func (t *Texture) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.queue)
}

// Materials returns a copy of the material slots in voxel type order.
// Voxel type N uses slot N-1.
func (t *Texture) Materials() []material.Slot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]material.Slot(nil), t.materials...)
}

// Find returns the voxel type (1-based) of the first slot that uses name,
// or 0.
func (t *Texture) Find(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, slot := range t.materials {
		if slot.Contains(name) {
			return i + 1
		}
	}
	return 0
}

// TransparentVoxelTypes returns the voxel types with at least one face
// raster that contains a transparent pixel.
func (t *Texture) TransparentVoxelTypes() map[int]bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[int]bool)
	for i, slot := range t.materials {
		for _, name := range slot {
			if t.transparent[name] {
				out[i+1] = true
				break
			}
		}
	}
	return out
}

// Transparent reports whether the raster name contained a transparent pixel.
func (t *Texture) Transparent(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.transparent[name]
}

// UV returns the published UV quad of name. Quads are published when a
// batch finishes, not when the raster is placed.
func (t *Texture) UV(name string) (uv.Quad, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	q, ok := t.uvs[name]
	return q, ok
}

// Size returns the atlas dimensions.
func (t *Texture) Size() (w, h int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.packer.Size()
}

// TileSize returns the shader uniform: tile edge divided by atlas width.
func (t *Texture) TileSize() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tileSizeLocked()
}

func (t *Texture) tileSizeLocked() float32 {
	w, _ := t.packer.Size()
	return float32(t.opts.TileSize) / float32(w)
}

// Surface returns a copy of the atlas pixels.
func (t *Texture) Surface() *image.RGBA {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneRGBA(t.packer.Surface())
}

// Reconfigure builds a fresh Texture with the same options and reloads every
// material and sprite sheet loaded so far. The receiver is left untouched.
func (t *Texture) Reconfigure(ctx context.Context) (*Texture, *Batch, error) {
	next, err := New(t.opts)
	if err != nil {
		return nil, nil, err
	}
	t.mu.Lock()
	specs := append([]material.Spec(nil), t.specs...)
	sprites := append([]spriteRequest(nil), t.sprites...)
	t.mu.Unlock()

	for _, s := range sprites {
		if _, err := next.Sprite(ctx, s.name, s.width, s.height); err != nil {
			next.log.Warn("sprite reload failed", zap.String("sheet", s.name), zap.Error(err))
		}
	}
	return next, next.Load(ctx, specs...), nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := &image.RGBA{
		Pix:    make([]uint8, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)
	return dst
}
