package voxeltex

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/voxeltex/internal/engine/texture"
	"github.com/Faultbox/voxeltex/pkg/atlas"
	"github.com/Faultbox/voxeltex/pkg/material"
)

// Batch tracks one Load call.
type Batch struct {
	done   chan struct{}
	slots  []material.Slot
	failed []string
	err    error
}

func newBatch() *Batch {
	return &Batch{done: make(chan struct{})}
}

func (b *Batch) finish(slots []material.Slot, failed []string, err error) {
	b.slots = slots
	b.failed = failed
	b.err = err
	close(b.done)
}

// Done is closed once every raster of the batch has been placed or has
// failed, and the new UVs are published.
func (b *Batch) Done() <-chan struct{} { return b.done }

// Wait blocks until the batch is done or ctx is cancelled, and returns the
// slots created by the batch.
func (b *Batch) Wait(ctx context.Context) ([]material.Slot, error) {
	select {
	case <-b.done:
		return b.slots, b.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Slots returns the slots created by the batch. Valid after Done.
func (b *Batch) Slots() []material.Slot { return b.slots }

// Failed returns the rasters that could not be fetched. Valid after Done.
func (b *Batch) Failed() []string { return b.failed }

// Err returns the error that rejected the batch, if any. Valid after Done.
func (b *Batch) Err() error { return b.err }

// Load expands specs into material slots, appends them to the material list
// and fetches every raster they name that is not already scheduled. It
// returns at once; the loading count is incremented before Load returns, so
// a Paint issued afterwards is deferred until the batch is done.
//
// An invalid spec rejects the whole batch before anything is appended.
// Rasters that fail to load are logged and skipped.
func (t *Texture) Load(ctx context.Context, specs ...material.Spec) *Batch {
	b := newBatch()
	if len(specs) == 0 {
		b.finish(nil, nil, nil)
		return b
	}

	slots := make([]material.Slot, 0, len(specs))
	for _, s := range specs {
		slot, err := material.Expand(s)
		if err != nil {
			b.finish(nil, nil, err)
			return b
		}
		slots = append(slots, slot)
	}

	t.mu.Lock()
	t.specs = append(t.specs, specs...)
	t.materials = append(t.materials, slots...)
	var names []string
	for _, slot := range slots {
		for _, name := range slot.Names() {
			if !t.scheduled[name] {
				t.scheduled[name] = true
				names = append(names, name)
			}
		}
	}
	t.loading++
	t.mu.Unlock()

	t.log.Debug("batch started",
		zap.Int("materials", len(slots)),
		zap.Int("rasters", len(names)))

	go func() {
		failed := t.fetchAll(ctx, names)
		t.finalize(ctx)
		b.finish(slots, failed, nil)
	}()
	return b
}

// fetchAll packs names concurrently and returns the ones that failed.
func (t *Texture) fetchAll(ctx context.Context, names []string) []string {
	var (
		g      errgroup.Group
		mu     sync.Mutex
		failed []string
	)
	g.SetLimit(t.opts.MaxConcurrentFetches)
	for _, name := range names {
		g.Go(func() error {
			if err := t.packRaster(ctx, name); err != nil {
				t.log.Warn("raster skipped", zap.String("name", name), zap.Error(err))
				mu.Lock()
				failed = append(failed, name)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return failed
}

// Pack fetches one raster and places it. Names already scheduled are
// ignored. The UV of the raster is published by the next finishing batch
// or by Refresh.
func (t *Texture) Pack(ctx context.Context, name string) error {
	t.mu.Lock()
	if t.scheduled[name] {
		t.mu.Unlock()
		return nil
	}
	t.scheduled[name] = true
	t.mu.Unlock()
	return t.packRaster(ctx, name)
}

// PackImage places a prepared image as is, without the 2×2 repeat.
func (t *Texture) PackImage(name string, img image.Image) error {
	t.mu.Lock()
	if t.scheduled[name] {
		t.mu.Unlock()
		return nil
	}
	t.scheduled[name] = true
	t.mu.Unlock()

	if err := t.place(name, img, false); err != nil {
		t.unschedule(name)
		return err
	}
	return nil
}

// Refresh publishes UVs for everything placed so far, as a batch without
// rasters would.
func (t *Texture) Refresh(ctx context.Context) {
	t.mu.Lock()
	t.loading++
	t.mu.Unlock()
	t.finalize(ctx)
}

// Sprite fetches a sprite sheet, slices it into tiles of w×h pixels and
// packs every tile under "<name>_<col>_<row>". Each tile becomes a material
// slot with the tile on all six faces. Zero w uses the tile size; zero h
// uses w. It blocks until the tiles are published and returns their names.
func (t *Texture) Sprite(ctx context.Context, name string, w, h int) ([]string, error) {
	if w <= 0 {
		w = t.opts.TileSize
	}
	if h <= 0 {
		h = w
	}

	t.mu.Lock()
	t.loading++
	t.mu.Unlock()

	img, err := t.opts.Source.Image(ctx, name)
	if err != nil {
		t.finalize(ctx)
		return nil, &FetchError{Name: name, Err: err}
	}

	tiles := texture.Slice(name, img, w, h)
	names := make([]string, 0, len(tiles))

	var g errgroup.Group
	g.SetLimit(t.opts.MaxConcurrentFetches)
	for _, tile := range tiles {
		t.mu.Lock()
		fresh := !t.scheduled[tile.Name]
		t.scheduled[tile.Name] = true
		t.mu.Unlock()
		names = append(names, tile.Name)
		if !fresh {
			continue
		}
		g.Go(func() error {
			if err := t.place(tile.Name, tile.Image, true); err != nil {
				t.unschedule(tile.Name)
				t.log.Warn("sprite tile skipped", zap.String("name", tile.Name), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	t.mu.Lock()
	for _, n := range names {
		t.materials = append(t.materials, material.MustExpand(material.Name(n)))
	}
	t.sprites = append(t.sprites, spriteRequest{name: name, width: w, height: h})
	t.mu.Unlock()

	t.finalize(ctx)
	t.log.Debug("sprite sheet loaded", zap.String("sheet", name), zap.Int("tiles", len(names)))
	return names, nil
}

func (t *Texture) packRaster(ctx context.Context, name string) error {
	img, err := t.opts.Source.Image(ctx, name)
	if err == nil && img == nil {
		err = errors.New("source returned no image")
	}
	if err != nil {
		t.unschedule(name)
		return &FetchError{Name: name, Err: err}
	}
	if err := t.place(name, img, true); err != nil {
		t.unschedule(name)
		return err
	}
	return nil
}

func (t *Texture) unschedule(name string) {
	t.mu.Lock()
	delete(t.scheduled, name)
	t.mu.Unlock()
}

// place classifies img, optionally repeats it 2×2 and packs it, expanding
// the atlas when it is full. Expansion switches tile padding on for good.
func (t *Texture) place(name string, img image.Image, repeat bool) error {
	transparent := texture.IsTransparent(img)
	if repeat {
		img = texture.Repeat(img, 2, 2)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := t.packer.Place(name, img)
	if errors.Is(err, atlas.ErrFull) {
		w, h := t.packer.Size()
		t.packer.SetTilePad(true)
		t.packer = t.packer.Expand(img)
		nw, nh := t.packer.Size()
		t.log.Info("atlas expanded",
			zap.String("trigger", name),
			zap.Int("from_w", w), zap.Int("from_h", h),
			zap.Int("to_w", nw), zap.Int("to_h", nh))
		_, err = t.packer.Place(name, img)
	}
	if errors.Is(err, atlas.ErrDuplicate) {
		return nil
	}
	if err != nil {
		return err
	}
	t.gen++
	if transparent {
		t.transparent[name] = true
	}
	return nil
}

// finalize ends one batch: the atlas is normalised to a power-of-two square,
// the binding is invalidated and committed, then the loading count drops,
// UVs are rebuilt and, when nothing else is loading, queued paints run.
// Invalidation repeats if another batch changed the surface meanwhile.
func (t *Texture) finalize(ctx context.Context) {
	for {
		t.mu.Lock()
		if t.packer.Normalize() {
			t.gen++
		}
		gen := t.gen
		var surface *image.RGBA
		if t.opts.Binding != nil {
			surface = cloneRGBA(t.packer.Surface())
		}
		tileSize := t.tileSizeLocked()
		t.mu.Unlock()

		t.commit(ctx, surface, tileSize)

		t.mu.Lock()
		if t.gen == gen {
			break
		}
		t.mu.Unlock()
	}
	defer t.mu.Unlock()

	t.loading--
	w, h := t.packer.Size()
	t.uvs = atlas.UV(t.packer.Index(), w, h)
	if t.loading == 0 {
		t.flushLocked()
	}
}

func (t *Texture) commit(ctx context.Context, surface *image.RGBA, tileSize float32) {
	if t.opts.Binding == nil {
		return
	}
	t.opts.Binding.Invalidate(surface, tileSize)

	if c, ok := t.opts.Binding.(Committer); ok {
		if err := c.Commit(ctx); err != nil {
			t.log.Warn("atlas commit failed", zap.Error(err))
		}
		return
	}
	if t.opts.SettleDelay <= 0 {
		return
	}
	timer := time.NewTimer(t.opts.SettleDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
