package export

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/voxeltex/internal/engine/voxeltex"
	"github.com/Faultbox/voxeltex/pkg/atlas"
	"github.com/Faultbox/voxeltex/pkg/material"
	"github.com/Faultbox/voxeltex/pkg/uv"
)

func testSnapshot() voxeltex.Snapshot {
	surface := image.NewRGBA(image.Rect(0, 0, 8, 8))
	surface.SetRGBA(1, 1, color.RGBA{R: 0xff, A: 0xff})
	return voxeltex.Snapshot{
		Width:    8,
		Height:   8,
		TileSize: 0.5,
		Entries: []voxeltex.SnapshotEntry{
			{Name: "dirt", Rect: atlas.Rect{X: 0, Y: 0, W: 4, H: 4}, UV: uv.FromPixels(0, 0, 4, 4, 8, 8)},
			{Name: "glass", Rect: atlas.Rect{X: 4, Y: 0, W: 4, H: 4}, UV: uv.FromPixels(4, 0, 4, 4, 8, 8), Transparent: true},
		},
		Materials: []material.Slot{
			material.MustExpand(material.Name("dirt")),
			material.MustExpand(material.Tuple("dirt", "glass")),
		},
		Surface: surface,
	}
}

func TestWrite(t *testing.T) {
	for _, compress := range []bool{false, true} {
		name := "plain"
		if compress {
			name = "zstd"
		}
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			want := testSnapshot()

			paths, err := Write(dir, want, compress)
			if err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if len(paths) != 2 {
				t.Fatalf("expected 2 files, got %v", paths)
			}

			idx, err := FindIndex(dir)
			if err != nil {
				t.Fatalf("FindIndex failed: %v", err)
			}
			if idx != paths[1] {
				t.Errorf("expected index %s, got %s", paths[1], idx)
			}

			got, err := ReadIndex(idx)
			if err != nil {
				t.Fatalf("ReadIndex failed: %v", err)
			}
			if got.Width != 8 || got.Height != 8 || got.TileSize != 0.5 {
				t.Errorf("unexpected header %dx%d %v", got.Width, got.Height, got.TileSize)
			}
			if len(got.Entries) != 2 {
				t.Fatalf("expected 2 entries, got %d", len(got.Entries))
			}
			for i := range want.Entries {
				if got.Entries[i] != want.Entries[i] {
					t.Errorf("entry %d: expected %+v, got %+v", i, want.Entries[i], got.Entries[i])
				}
			}
			if len(got.Materials) != 2 || got.Materials[1] != want.Materials[1] {
				t.Errorf("unexpected materials %v", got.Materials)
			}
			if got.Surface != nil {
				t.Error("index must not carry the surface")
			}

			f, err := os.Open(filepath.Join(dir, ImageFile))
			if err != nil {
				t.Fatalf("open png failed: %v", err)
			}
			defer f.Close()
			img, err := png.Decode(f)
			if err != nil {
				t.Fatalf("png decode failed: %v", err)
			}
			if img.Bounds().Dx() != 8 {
				t.Errorf("expected 8px wide png, got %d", img.Bounds().Dx())
			}
			if r, _, _, _ := img.At(1, 1).RGBA(); r != 0xffff {
				t.Errorf("expected red pixel, got r=%x", r)
			}
		})
	}
}

func TestWriteWithoutSurface(t *testing.T) {
	snap := testSnapshot()
	snap.Surface = nil
	if _, err := Write(t.TempDir(), snap, false); err == nil {
		t.Error("expected error for missing surface")
	}
}

func TestFindIndexMissing(t *testing.T) {
	if _, err := FindIndex(t.TempDir()); err == nil {
		t.Error("expected error for empty directory")
	}
}
