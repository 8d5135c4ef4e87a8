package grf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func buildArchive(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	w := NewWriter()
	for name, data := range files {
		if err := w.Add(name, data); err != nil {
			t.Fatalf("Add(%s) failed: %v", name, err)
		}
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	return buf.Bytes()
}

var testFiles = map[string][]byte{
	"textures/blocks/dirt.png":  bytes.Repeat([]byte("dirt"), 64),
	"textures/blocks/stone.png": []byte("stone"),
	`Textures\Items\Apple.png`:  []byte("apple"),
	"텍스처/돌.png":                 []byte("korean stone"),
	"empty.txt":                 {},
}

func TestRoundTrip(t *testing.T) {
	data := buildArchive(t, testFiles)
	a, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer a.Close()

	if a.Len() != len(testFiles) {
		t.Errorf("expected %d files, got %d", len(testFiles), a.Len())
	}
	for name, want := range testFiles {
		got, err := a.Read(name)
		if err != nil {
			t.Errorf("Read(%s) failed: %v", name, err)
			continue
		}
		if !bytes.Equal(got, want) {
			t.Errorf("Read(%s): expected %q, got %q", name, want, got)
		}
	}
}

func TestListNormalized(t *testing.T) {
	a, err := NewReader(bytes.NewReader(buildArchive(t, testFiles)))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	want := []string{
		"empty.txt",
		"textures/blocks/dirt.png",
		"textures/blocks/stone.png",
		"textures/items/apple.png",
		"텍스처/돌.png",
	}
	got := a.List()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestContainsIgnoresCase(t *testing.T) {
	a, err := NewReader(bytes.NewReader(buildArchive(t, testFiles)))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	for _, p := range []string{"TEXTURES/BLOCKS/DIRT.PNG", `textures\items\apple.png`} {
		if !a.Contains(p) {
			t.Errorf("expected Contains(%q)", p)
		}
	}
	if a.Contains("textures/blocks/lava.png") {
		t.Error("unexpected Contains for missing file")
	}
	if e, ok := a.Stat("textures/blocks/dirt.png"); !ok || e.UncompressedSize != 256 {
		t.Errorf("unexpected entry %+v %v", e, ok)
	}
}

func TestReadMissing(t *testing.T) {
	a, err := NewReader(bytes.NewReader(buildArchive(t, testFiles)))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if _, err := a.Read("nope.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBadHeader(t *testing.T) {
	data := buildArchive(t, testFiles)

	bad := append([]byte(nil), data...)
	copy(bad, "Master of Magik")
	if _, err := NewReader(bytes.NewReader(bad)); !errors.Is(err, ErrBadMagic) {
		t.Errorf("expected ErrBadMagic, got %v", err)
	}

	old := append([]byte(nil), data...)
	old[42] = 0x03
	if _, err := NewReader(bytes.NewReader(old)); !errors.Is(err, ErrVersion) {
		t.Errorf("expected ErrVersion, got %v", err)
	}

	if _, err := NewReader(bytes.NewReader(data[:20])); err == nil {
		t.Error("expected error for truncated header")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.grf")
	if err := os.WriteFile(path, buildArchive(t, testFiles), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer a.Close()
	if got, err := a.Read("textures/blocks/stone.png"); err != nil || string(got) != "stone" {
		t.Errorf("expected stone, got %q %v", got, err)
	}
}
