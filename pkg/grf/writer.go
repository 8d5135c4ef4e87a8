package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Faultbox/voxeltex/pkg/encoding"
)

// Writer builds an archive in memory. Files are compressed as they are
// added and written out, followed by the file table, by WriteTo.
type Writer struct {
	entries []Entry
	names   [][]byte
	data    bytes.Buffer
}

// NewWriter returns an empty archive writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Add compresses data and stores it under name. Names are stored EUC-KR
// encoded when possible.
func (w *Writer) Add(name string, data []byte) error {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("compressing %s: %w", name, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing %s: %w", name, err)
	}

	stored := buf.Bytes()
	if len(stored) == len(data) {
		// Equal sizes mean "stored" to readers.
		stored = data
	}

	w.entries = append(w.entries, Entry{
		Name:             name,
		CompressedSize:   uint32(len(stored)),
		AlignedSize:      uint32(len(stored)),
		UncompressedSize: uint32(len(data)),
		Flags:            FlagFile,
		Offset:           uint32(w.data.Len()),
	})
	w.names = append(w.names, encoding.EncodeName(name))
	w.data.Write(stored)
	return nil
}

// WriteTo writes the complete archive to out.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	var table bytes.Buffer
	for i, e := range w.entries {
		table.Write(w.names[i])
		table.WriteByte(0)
		var rec [entrySize]byte
		binary.LittleEndian.PutUint32(rec[0:], e.CompressedSize)
		binary.LittleEndian.PutUint32(rec[4:], e.AlignedSize)
		binary.LittleEndian.PutUint32(rec[8:], e.UncompressedSize)
		rec[12] = e.Flags
		binary.LittleEndian.PutUint32(rec[13:], e.Offset)
		table.Write(rec[:])
	}

	var packed bytes.Buffer
	zw := zlib.NewWriter(&packed)
	if _, err := zw.Write(table.Bytes()); err != nil {
		return 0, fmt.Errorf("compressing table: %w", err)
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("compressing table: %w", err)
	}

	h := header{
		TableOffset: uint32(w.data.Len()),
		FileCount:   uint32(len(w.entries) + 7),
		Version:     version,
	}
	copy(h.Magic[:], magic)

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &h); err != nil {
		return 0, err
	}
	buf.Write(w.data.Bytes())
	var sizes [8]byte
	binary.LittleEndian.PutUint32(sizes[0:], uint32(packed.Len()))
	binary.LittleEndian.PutUint32(sizes[4:], uint32(table.Len()))
	buf.Write(sizes[:])
	buf.Write(packed.Bytes())

	n, err := out.Write(buf.Bytes())
	return int64(n), err
}
