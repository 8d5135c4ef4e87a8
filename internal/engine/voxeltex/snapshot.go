package voxeltex

import (
	"image"

	"github.com/Faultbox/voxeltex/pkg/atlas"
	"github.com/Faultbox/voxeltex/pkg/material"
	"github.com/Faultbox/voxeltex/pkg/uv"
)

// SnapshotEntry is one placed raster.
type SnapshotEntry struct {
	Name        string     `json:"name"`
	Rect        atlas.Rect `json:"rect"`
	UV          uv.Quad    `json:"uv"`
	Transparent bool       `json:"transparent,omitempty"`
}

// Snapshot is a consistent copy of the atlas state.
type Snapshot struct {
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	TileSize  float32         `json:"tileSize"`
	Entries   []SnapshotEntry `json:"entries"`
	Materials []material.Slot `json:"materials"`
	Surface   *image.RGBA     `json:"-"`
}

// Snapshot copies the surface, placements and materials. UVs are computed
// for the current surface, so rasters placed since the last batch are
// included.
func (t *Texture) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.packer.Size()
	index := t.packer.Index()
	uvs := atlas.UV(index, w, h)

	entries := make([]SnapshotEntry, 0, len(index))
	for _, e := range index {
		entries = append(entries, SnapshotEntry{
			Name:        e.Name,
			Rect:        e.Rect,
			UV:          uvs[e.Name],
			Transparent: t.transparent[e.Name],
		})
	}
	return Snapshot{
		Width:     w,
		Height:    h,
		TileSize:  t.tileSizeLocked(),
		Entries:   entries,
		Materials: append([]material.Slot(nil), t.materials...),
		Surface:   cloneRGBA(t.packer.Surface()),
	}
}
