package material

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseManifest(t *testing.T) {
	data := []byte(`
materials:
  - dirt
  - [grass_side, grass_top]
  - "#ff0000"
  - {top: crate_top, front: crate, back: crate, left: crate, right: crate, bottom: crate}
sprites:
  - name: atlas16
    tile_width: 16
  - name: fire
    tile_width: 8
    tile_height: 4
`)
	m, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}
	if len(m.Materials) != 4 {
		t.Fatalf("expected 4 materials, got %d", len(m.Materials))
	}
	if m.Materials[2].Kind() != KindName || !IsFlatColor(MustExpand(m.Materials[2])[0]) {
		t.Errorf("expected flat colour name, got %v", m.Materials[2])
	}
	if len(m.Sprites) != 2 {
		t.Fatalf("expected 2 sprites, got %d", len(m.Sprites))
	}
	if m.Sprites[0].TileHeight != 16 {
		t.Errorf("expected tile height to default to width, got %d", m.Sprites[0].TileHeight)
	}
	if m.Sprites[1].TileWidth != 8 || m.Sprites[1].TileHeight != 4 {
		t.Errorf("unexpected sprite tile size %dx%d", m.Sprites[1].TileWidth, m.Sprites[1].TileHeight)
	}
}

func TestParseManifestRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"5-tuple", "materials:\n  - [a, b, c, d, e]\n"},
		{"empty tuple", "materials:\n  - []\n"},
		{"numeric name", "materials:\n  - 42\n"},
		{"unknown face", "materials:\n  - {top: a, sideways: b}\n"},
		{"record without top", "materials:\n  - {front: a}\n"},
		{"bad sprite size", "sprites:\n  - {name: s, tile_width: 0}\n"},
		{"unknown key", "textures:\n  - a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestLoadManifestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.yaml")
	if err := os.WriteFile(path, []byte("materials:\n  - stone\n"), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	if len(m.Materials) != 1 || m.Materials[0].String() != "stone" {
		t.Errorf("unexpected manifest %+v", m)
	}

	if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing manifest")
	}
}
