package voxeltex

import (
	"context"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/voxeltex/internal/engine/model"
)

// Defaults applied by New to zero-valued options.
const (
	DefaultAtlasSize            = 2048
	DefaultTileSize             = 16
	DefaultMaxConcurrentFetches = 8
	DefaultAnimationDelay       = time.Second
)

// Material variants selected per face through Face.MaterialIndex.
const (
	MaterialOpaque      = 0
	MaterialTransparent = 1
)

// RasterSource fetches and decodes a named raster.
type RasterSource interface {
	Image(ctx context.Context, name string) (image.Image, error)
}

// Binding receives the atlas whenever its pixels or dimensions change.
// tileSize is the shader uniform: tile edge / surface edge.
type Binding interface {
	Invalidate(surface *image.RGBA, tileSize float32)
}

// Committer is implemented by bindings that can acknowledge that the last
// invalidated surface reached the renderer. Batches wait for it before
// publishing new UVs.
type Committer interface {
	Commit(ctx context.Context) error
}

// Renderable is a mesh whose faces can be painted from the atlas.
type Renderable interface {
	NumFaces() int
	Face(i int) *model.Face
	MarkUVsDirty()
}

// colorMarker is implemented by meshes that track vertex colour updates.
type colorMarker interface {
	MarkColorsDirty()
}

// Options configures a Texture.
type Options struct {
	// Source is required.
	Source RasterSource

	// Binding is optional; nil runs headless.
	Binding Binding

	// Width and Height are the initial atlas size.
	Width  int
	Height int

	// TileSize is the edge of one source texture in pixels.
	TileSize int

	// TilePad reserves a padded border around each tile. It is switched on
	// permanently the first time the atlas has to expand.
	TilePad bool
	Padding int

	// MaxConcurrentFetches bounds raster fetches per batch. Zero uses the default.
	MaxConcurrentFetches int

	// SettleDelay is waited after invalidating the binding when it does not
	// implement Committer.
	SettleDelay time.Duration

	Logger *zap.Logger
}

func (o *Options) applyDefaults() {
	if o.Width <= 0 {
		o.Width = DefaultAtlasSize
	}
	if o.Height <= 0 {
		o.Height = DefaultAtlasSize
	}
	if o.TileSize <= 0 {
		o.TileSize = DefaultTileSize
	}
	if o.MaxConcurrentFetches <= 0 {
		o.MaxConcurrentFetches = DefaultMaxConcurrentFetches
	}
}
