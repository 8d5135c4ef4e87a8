// Package grf reads and writes GRF 0x200 archives ("Master of Magic"),
// the zlib-compressed container texture packs are distributed in.
package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Faultbox/voxeltex/pkg/encoding"
)

const (
	magic      = "Master of Magic"
	version    = 0x200
	headerSize = 46
	entrySize  = 17

	// FlagFile marks a table entry as a regular file.
	FlagFile = 0x01
	// FlagEncrypted marks DES-encrypted entries, which are not supported.
	FlagEncrypted = 0x02
)

var (
	ErrBadMagic  = errors.New("grf: not a GRF archive")
	ErrVersion   = errors.New("grf: unsupported version")
	ErrNotFound  = errors.New("grf: file not found")
	ErrEncrypted = errors.New("grf: encrypted entries are not supported")
	ErrCorrupt   = errors.New("grf: corrupt file table")
)

type header struct {
	Magic         [15]byte
	EncryptionKey [15]byte
	TableOffset   uint32
	Seed          uint32
	FileCount     uint32
	Version       uint32
}

// Entry describes one file stored in an archive.
type Entry struct {
	Name             string
	CompressedSize   uint32
	AlignedSize      uint32
	UncompressedSize uint32
	Flags            uint8
	Offset           uint32
}

// Archive is an opened GRF archive. Read is safe for concurrent use.
type Archive struct {
	r       io.ReaderAt
	closer  io.Closer
	entries map[string]*Entry
}

// Open opens the archive at path.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	a, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.closer = f
	return a, nil
}

// NewReader reads the header and file table from r.
func NewReader(r io.ReaderAt) (*Archive, error) {
	var h header
	if err := binary.Read(io.NewSectionReader(r, 0, headerSize), binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if string(h.Magic[:]) != magic {
		return nil, ErrBadMagic
	}
	if h.Version != version {
		return nil, fmt.Errorf("%w: 0x%x", ErrVersion, h.Version)
	}

	a := &Archive{r: r, entries: make(map[string]*Entry)}
	if err := a.readTable(h); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Archive) readTable(h header) error {
	off := int64(h.TableOffset) + headerSize
	var sizes [8]byte
	if _, err := a.r.ReadAt(sizes[:], off); err != nil {
		return fmt.Errorf("reading table size: %w", err)
	}
	compressed := binary.LittleEndian.Uint32(sizes[0:])
	uncompressed := binary.LittleEndian.Uint32(sizes[4:])

	table, err := inflate(io.NewSectionReader(a.r, off+8, int64(compressed)), uncompressed)
	if err != nil {
		return fmt.Errorf("reading table: %w", err)
	}

	count := int(h.FileCount) - int(h.Seed) - 7
	for i, p := 0, 0; i < count; i++ {
		end := bytes.IndexByte(table[p:], 0)
		if end < 0 || p+end+1+entrySize > len(table) {
			return fmt.Errorf("%w: entry %d", ErrCorrupt, i)
		}
		name := encoding.DecodeName(table[p : p+end])
		p += end + 1

		e := &Entry{
			Name:             encoding.NormalizePath(name),
			CompressedSize:   binary.LittleEndian.Uint32(table[p:]),
			AlignedSize:      binary.LittleEndian.Uint32(table[p+4:]),
			UncompressedSize: binary.LittleEndian.Uint32(table[p+8:]),
			Flags:            table[p+12],
			Offset:           binary.LittleEndian.Uint32(table[p+13:]),
		}
		p += entrySize

		if e.Flags&FlagFile != 0 {
			a.entries[e.Name] = e
		}
	}
	return nil
}

// Close releases the underlying file, if the archive owns one.
func (a *Archive) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// Len returns the number of files.
func (a *Archive) Len() int { return len(a.entries) }

// List returns every file path, sorted.
func (a *Archive) List() []string {
	out := make([]string, 0, len(a.entries))
	for name := range a.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether path exists. Lookups ignore case and accept
// either slash.
func (a *Archive) Contains(path string) bool {
	_, ok := a.entries[encoding.NormalizePath(path)]
	return ok
}

// Stat returns the table entry of path.
func (a *Archive) Stat(path string) (Entry, bool) {
	e, ok := a.entries[encoding.NormalizePath(path)]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Read returns the uncompressed contents of path.
func (a *Archive) Read(path string) ([]byte, error) {
	e, ok := a.entries[encoding.NormalizePath(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if e.Flags&FlagEncrypted != 0 {
		return nil, fmt.Errorf("%w: %s", ErrEncrypted, path)
	}

	off := int64(e.Offset) + headerSize
	if e.CompressedSize == e.UncompressedSize {
		buf := make([]byte, e.UncompressedSize)
		if _, err := a.r.ReadAt(buf, off); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return buf, nil
	}

	data, err := inflate(io.NewSectionReader(a.r, off, int64(e.CompressedSize)), e.UncompressedSize)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func inflate(r io.Reader, size uint32) ([]byte, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out := make([]byte, size)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, err
	}
	return out, nil
}
