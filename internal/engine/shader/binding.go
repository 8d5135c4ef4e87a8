package shader

import (
	"context"
	"image"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/voxeltex/internal/logger"
)

// Binding owns the GPU copy of the atlas. Invalidate and Commit may be
// called from any goroutine; Upload must run on the thread that owns the
// GL context.
type Binding struct {
	fourTap bool
	log     *zap.Logger

	mu          sync.Mutex
	pending     *image.RGBA
	tileSize    float32
	invalidated uint64
	uploaded    uint64
	notify      chan struct{}

	texture     uint32
	program     uint32
	tileSizeLoc int32
	upload      func(surface *image.RGBA, tileSize float32) error
}

// NewBinding creates a binding. Nothing touches GL until Upload.
func NewBinding(fourTap bool) *Binding {
	b := &Binding{
		fourTap: fourTap,
		log:     logger.Named("shader"),
		notify:  make(chan struct{}),
	}
	b.upload = b.glUpload
	return b
}

// Invalidate records a new atlas surface for the next Upload.
func (b *Binding) Invalidate(surface *image.RGBA, tileSize float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = surface
	b.tileSize = tileSize
	b.invalidated++
}

// Commit blocks until the last invalidated surface has been uploaded.
func (b *Binding) Commit(ctx context.Context) error {
	b.mu.Lock()
	target := b.invalidated
	for b.uploaded < target {
		ch := b.notify
		b.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
		b.mu.Lock()
	}
	b.mu.Unlock()
	return nil
}

// Upload sends a pending surface to the GPU. It reports whether anything
// was uploaded. Call it once per frame from the render thread.
func (b *Binding) Upload() (bool, error) {
	b.mu.Lock()
	surface, tileSize, gen := b.pending, b.tileSize, b.invalidated
	b.pending = nil
	b.mu.Unlock()

	if surface == nil {
		return false, nil
	}
	if err := b.upload(surface, tileSize); err != nil {
		b.mu.Lock()
		if b.pending == nil {
			b.pending = surface
		}
		b.mu.Unlock()
		return false, err
	}

	b.mu.Lock()
	b.uploaded = gen
	close(b.notify)
	b.notify = make(chan struct{})
	b.mu.Unlock()
	return true, nil
}

// Texture returns the GL texture name, zero before the first upload.
func (b *Binding) Texture() uint32 { return b.texture }

// Program returns the atlas shader program, zero before the first upload.
func (b *Binding) Program() uint32 { return b.program }

func (b *Binding) glUpload(surface *image.RGBA, tileSize float32) error {
	if b.program == 0 {
		program, err := CompileProgram(VertexSource, FragmentSource(b.fourTap))
		if err != nil {
			return err
		}
		b.program = program
		b.tileSizeLoc = Uniform(program, UniformTileSize)
	}
	if b.texture == 0 {
		gl.GenTextures(1, &b.texture)
	}

	size := surface.Bounds().Size()
	gl.BindTexture(gl.TEXTURE_2D, b.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(size.X), int32(size.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(surface.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.UseProgram(b.program)
	gl.Uniform1f(b.tileSizeLoc, tileSize)

	b.log.Debug("atlas uploaded", zap.Int("width", size.X), zap.Int("height", size.Y))
	return nil
}
