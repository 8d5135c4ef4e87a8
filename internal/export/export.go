// Package export dumps an atlas snapshot to disk for inspection: the
// surface as PNG and the placement and material index as JSON, optionally
// zstd-compressed.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/Faultbox/voxeltex/internal/engine/voxeltex"
)

// File names written by Write.
const (
	ImageFile           = "atlas.png"
	IndexFile           = "materials.json"
	CompressedIndexFile = IndexFile + ".zst"
)

var errNoSurface = errors.New("export: snapshot has no surface")

// Write stores snap in dir and returns the paths written.
func Write(dir string, snap voxeltex.Snapshot, compress bool) ([]string, error) {
	if snap.Surface == nil {
		return nil, errNoSurface
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	imgPath := filepath.Join(dir, ImageFile)
	if err := writePNG(imgPath, snap); err != nil {
		return nil, fmt.Errorf("writing %s: %w", imgPath, err)
	}

	idxPath := filepath.Join(dir, IndexFile)
	if compress {
		idxPath = filepath.Join(dir, CompressedIndexFile)
	}
	if err := writeIndex(idxPath, snap, compress); err != nil {
		return nil, fmt.Errorf("writing %s: %w", idxPath, err)
	}
	return []string{imgPath, idxPath}, nil
}

func writePNG(path string, snap voxeltex.Snapshot) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, snap.Surface); err != nil {
		return err
	}
	return f.Close()
}

func writeIndex(path string, snap voxeltex.Snapshot, compress bool) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.Writer = f
	var zw *zstd.Encoder
	if compress {
		zw, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		w = zw
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		if zw != nil {
			zw.Close()
		}
		return err
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return err
		}
	}
	return f.Close()
}

// ReadIndex reads an index written by Write. Files ending in ".zst" are
// decompressed. The returned snapshot has no surface.
func ReadIndex(path string) (voxeltex.Snapshot, error) {
	var snap voxeltex.Snapshot
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return snap, err
		}
		defer dec.Close()
		r = dec
	}

	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decoding %s: %w", path, err)
	}
	return snap, nil
}

// FindIndex returns the index file inside a dump directory.
func FindIndex(dir string) (string, error) {
	for _, name := range []string{IndexFile, CompressedIndexFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("export: no index in %s", dir)
}
