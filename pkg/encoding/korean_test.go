package encoding

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeName(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"textures/blocks/dirt.png", []byte("textures/blocks/dirt.png")},
		{"텍스처/돌.png", []byte{0xc5, 0xd8, 0xbd, 0xba, 0xc3, 0xb3, '/', 0xb5, 0xb9, '.', 'p', 'n', 'g'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeName(tt.name)
			if !bytes.Equal(got, tt.raw) {
				t.Errorf("expected % x, got % x", tt.raw, got)
			}
			if back := DecodeName(got); back != tt.name {
				t.Errorf("expected %q, got %q", tt.name, back)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	if got := NormalizePath(`Textures\Blocks\Dirt.PNG`); got != "textures/blocks/dirt.png" {
		t.Errorf("expected textures/blocks/dirt.png, got %q", got)
	}
}
