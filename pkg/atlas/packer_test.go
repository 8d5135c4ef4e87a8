package atlas

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

func overlaps(a, b Rect) bool {
	return a.Bounds().Overlaps(b.Bounds())
}

func TestPlaceNoOverlap(t *testing.T) {
	p := New(NewSurface(64, 64, nil), Options{})
	var placed []Rect
	for i := 0; i < 16; i++ {
		r, err := p.Place(string(rune('a'+i)), solid(16, 16, red))
		if err != nil {
			t.Fatalf("place %d: %v", i, err)
		}
		for _, prev := range placed {
			if overlaps(r, prev) {
				t.Fatalf("rect %v overlaps %v", r, prev)
			}
		}
		if !r.Bounds().In(image.Rect(0, 0, 64, 64)) {
			t.Fatalf("rect %v outside surface", r)
		}
		placed = append(placed, r)
	}

	if _, err := p.Place("overflow", solid(16, 16, red)); !errors.Is(err, ErrFull) {
		t.Errorf("expected ErrFull on a full surface, got %v", err)
	}
	if u := p.Utilization(); u != 1 {
		t.Errorf("expected utilization 1, got %v", u)
	}
}

func TestPlaceDrawsPixels(t *testing.T) {
	p := New(NewSurface(32, 32, color.Black), Options{})
	r, err := p.Place("red", solid(8, 4, red))
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if r.W != 8 || r.H != 4 {
		t.Errorf("expected 8x4 rect, got %dx%d", r.W, r.H)
	}
	s := p.Surface()
	if got := s.RGBAAt(r.X, r.Y); got != red {
		t.Errorf("expected red at tile origin, got %v", got)
	}
	if got := s.RGBAAt(31, 31); got != (color.RGBA{A: 255}) {
		t.Errorf("expected black background, got %v", got)
	}
}

func TestPlaceErrors(t *testing.T) {
	p := New(NewSurface(16, 16, nil), Options{})
	if _, err := p.Place("empty", image.NewRGBA(image.Rect(0, 0, 0, 0))); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("expected ErrEmptyImage, got %v", err)
	}
	if _, err := p.Place("a", solid(4, 4, red)); err != nil {
		t.Fatalf("place: %v", err)
	}
	if _, err := p.Place("a", solid(4, 4, red)); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if _, err := p.Place("huge", solid(32, 4, red)); !errors.Is(err, ErrFull) {
		t.Errorf("expected ErrFull, got %v", err)
	}
}

func TestTilePadExtrudesEdges(t *testing.T) {
	p := New(NewSurface(32, 32, nil), Options{TilePad: true, Padding: 2})
	img := solid(4, 4, red)
	img.SetRGBA(0, 0, blue)
	img.SetRGBA(3, 3, green)

	r, err := p.Place("tile", img)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if r.X != 2 || r.Y != 2 || r.W != 4 || r.H != 4 {
		t.Fatalf("expected inner rect {2 2 4 4}, got %+v", r)
	}
	s := p.Surface()
	if got := s.RGBAAt(0, 0); got != blue {
		t.Errorf("expected top-left corner extruded blue, got %v", got)
	}
	if got := s.RGBAAt(7, 7); got != green {
		t.Errorf("expected bottom-right corner extruded green, got %v", got)
	}
	if got := s.RGBAAt(3, 0); got != red {
		t.Errorf("expected top border extruded red, got %v", got)
	}

	// the padded footprint is reserved: next tile starts past the border
	r2, err := p.Place("next", solid(4, 4, green))
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if overlaps(Rect{r.X - 2, r.Y - 2, r.W + 4, r.H + 4}, Rect{r2.X - 2, r2.Y - 2, r2.W + 4, r2.H + 4}) {
		t.Errorf("padded tiles overlap: %+v %+v", r, r2)
	}
}

func TestExpandFitsFailingImage(t *testing.T) {
	p := New(NewSurface(16, 16, nil), Options{TilePad: true})
	if _, err := p.Place("a", solid(12, 12, red)); err != nil {
		t.Fatalf("place: %v", err)
	}
	big := solid(30, 10, blue)
	if _, err := p.Place("big", big); !errors.Is(err, ErrFull) {
		t.Fatalf("expected ErrFull before expand, got %v", err)
	}

	next := p.Expand(big)
	w, h := next.Size()
	if w < 32 || h < 16 {
		t.Errorf("expected surface to grow, got %dx%d", w, h)
	}
	if !next.Options().TilePad {
		t.Error("expected tile padding to stay enabled after expand")
	}
	r, err := next.Place("big", big)
	if err != nil {
		t.Fatalf("place after expand: %v", err)
	}

	prev, ok := next.Lookup("a")
	if !ok {
		t.Fatal("expected earlier entry to survive expand")
	}
	if overlaps(prev, r) {
		t.Errorf("expanded placement %v overlaps %v", r, prev)
	}
	if got := next.Surface().RGBAAt(prev.X, prev.Y); got != red {
		t.Errorf("expected earlier tile pixels on new surface, got %v", got)
	}
	if next.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", next.Len())
	}
}

func TestExpandRepeatedGrowth(t *testing.T) {
	p := New(NewSurface(8, 8, nil), Options{})
	for i := 0; i < 40; i++ {
		name := string(rune('A' + i))
		img := solid(8, 8, green)
		if _, err := p.Place(name, img); errors.Is(err, ErrFull) {
			p = p.Expand(img)
			if _, err := p.Place(name, img); err != nil {
				t.Fatalf("place %s after expand: %v", name, err)
			}
		} else if err != nil {
			t.Fatalf("place %s: %v", name, err)
		}
	}
	entries := p.Index()
	if len(entries) != 40 {
		t.Fatalf("expected 40 entries, got %d", len(entries))
	}
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			if overlaps(entries[i].Rect, entries[j].Rect) {
				t.Fatalf("%s overlaps %s", entries[i].Name, entries[j].Name)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	p := New(NewSurface(48, 20, color.Black), Options{})
	r, err := p.Place("a", solid(10, 10, red))
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if !p.Normalize() {
		t.Fatal("expected Normalize to change a 48x20 surface")
	}
	w, h := p.Size()
	if w != 64 || h != 64 {
		t.Errorf("expected 64x64, got %dx%d", w, h)
	}
	if got := p.Surface().RGBAAt(r.X, r.Y); got != red {
		t.Errorf("expected content preserved at origin, got %v", got)
	}
	if p.Normalize() {
		t.Error("expected second Normalize to be a no-op")
	}

	// the grown area is usable
	if _, err := p.Place("wide", solid(60, 40, blue)); err != nil {
		t.Errorf("expected grown area to accept a 60x40 tile: %v", err)
	}
}

func TestUV(t *testing.T) {
	entries := []Entry{{Name: "a", Rect: Rect{X: 16, Y: 0, W: 16, H: 16}}}
	q := UV(entries, 64, 64)["a"]
	if !q.Within01() {
		t.Errorf("expected UV within unit square, got %v", q)
	}
	if q[0].X != 0.25 || q[0].Y != 0 || q[2].X != 0.5 || q[2].Y != 0.25 {
		t.Errorf("unexpected quad %v", q)
	}
	want := float32(16*16) / float32(64*64)
	if a := q.Area(); a != want {
		t.Errorf("expected area %v, got %v", want, a)
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 16: 16, 17: 32, 1000: 1024, 2048: 2048}
	for in, want := range tests {
		if got := NextPowerOfTwo(in); got != want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := (Options{Padding: -1}).Validate(); err == nil {
		t.Error("expected error for negative padding")
	}
	if err := (Options{TilePad: true}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
