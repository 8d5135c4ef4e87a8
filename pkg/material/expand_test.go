package material

import (
	"encoding/json"
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want Slot
	}{
		{"none", None(), Slot{}},
		{"bare name", Name("stone"), Slot{"stone", "stone", "stone", "stone", "stone", "stone"}},
		{"1-tuple", Tuple("dirt"), Slot{"dirt", "dirt", "dirt", "dirt", "dirt", "dirt"}},
		{"2-tuple", Tuple("grass_side", "grass_top"),
			Slot{"grass_side", "grass_side", "grass_top", "grass_top", "grass_side", "grass_side"}},
		{"3-tuple", Tuple("log_top", "log_bottom", "log_side"),
			Slot{"log_side", "log_side", "log_top", "log_bottom", "log_side", "log_side"}},
		{"4-tuple", Tuple("t", "b", "fb", "lr"),
			Slot{"fb", "fb", "t", "b", "lr", "lr"}},
		{"6-tuple", Tuple("bk", "fr", "tp", "bt", "lf", "rt"),
			Slot{"bk", "fr", "tp", "bt", "lf", "rt"}},
		{"faces", Faces(FaceSet{Back: "bk", Front: "fr", Top: "tp", Bottom: "bt", Left: "lf", Right: "rt"}),
			Slot{"bk", "fr", "tp", "bt", "lf", "rt"}},
		{"flat colour", Name("#ff0000"),
			Slot{"#ff0000", "#ff0000", "#ff0000", "#ff0000", "#ff0000", "#ff0000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.spec)
			if err != nil {
				t.Fatalf("Expand(%v) returned error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Expand(%v) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestExpandIdempotent(t *testing.T) {
	specs := []Spec{
		Name("stone"),
		Tuple("a", "b"),
		Tuple("a", "b", "c"),
		Tuple("a", "b", "c", "d"),
		Tuple("a", "b", "c", "d", "e", "f"),
	}
	for _, s := range specs {
		once := MustExpand(s)
		twice := MustExpand(once.Spec())
		if once != twice {
			t.Errorf("expanding %v twice: got %v, want %v", s, twice, once)
		}
	}
}

func TestExpandInvalid(t *testing.T) {
	for _, n := range []int{0, 5, 7} {
		names := make([]string, n)
		for i := range names {
			names[i] = "x"
		}
		_, err := Expand(Tuple(names...))
		if err == nil {
			t.Errorf("expected error for %d-tuple", n)
			continue
		}
		var specErr *SpecError
		if !errors.As(err, &specErr) {
			t.Errorf("expected *SpecError, got %T", err)
		} else if specErr.Len != n {
			t.Errorf("expected Len %d, got %d", n, specErr.Len)
		}
		if !errors.Is(err, ErrInvalidSpec) {
			t.Error("expected error to wrap ErrInvalidSpec")
		}
	}
}

func TestMustExpandPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustExpand to panic on a 5-tuple")
		}
	}()
	MustExpand(Tuple("a", "b", "c", "d", "e"))
}

func TestSlotNames(t *testing.T) {
	slot := Slot{"a", "a", "#00ff00", "", "b", "a"}
	names := slot.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected [a b], got %v", names)
	}
	if !slot.Contains("b") {
		t.Error("expected slot to contain b")
	}
	if slot.Contains("c") {
		t.Error("expected slot not to contain c")
	}
}

func TestIsFlatColor(t *testing.T) {
	if !IsFlatColor("#ff0000") {
		t.Error("expected #ff0000 to be a flat colour")
	}
	if IsFlatColor("stone") || IsFlatColor("") {
		t.Error("expected raster names not to be flat colours")
	}
}

func TestSpecYAML(t *testing.T) {
	doc := `
- stone
- [grass_side, grass_top]
- {top: log_top, bottom: log_top, front: log_side, back: log_side, left: log_side, right: log_side}
- null
`
	var specs []Spec
	if err := yaml.Unmarshal([]byte(doc), &specs); err != nil {
		t.Fatalf("failed to decode specs: %v", err)
	}
	if len(specs) != 4 {
		t.Fatalf("expected 4 specs, got %d", len(specs))
	}
	wantKinds := []Kind{KindName, KindTuple, KindFaces, KindNone}
	for i, k := range wantKinds {
		if specs[i].Kind() != k {
			t.Errorf("spec %d: expected kind %s, got %s", i, k, specs[i].Kind())
		}
	}
	slot := MustExpand(specs[2])
	if slot[FaceTop] != "log_top" || slot[FaceLeft] != "log_side" {
		t.Errorf("unexpected face expansion %v", slot)
	}
}

func TestSpecJSONRoundTrip(t *testing.T) {
	in := []Spec{Name("stone"), Tuple("a", "b", "c"), None()}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["stone",["a","b","c"],null]` {
		t.Errorf("unexpected JSON %s", data)
	}

	var out []Spec
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for i := range in {
		if MustExpand(in[i]) != MustExpand(out[i]) {
			t.Errorf("spec %d changed across JSON: %v -> %v", i, in[i], out[i])
		}
	}
}
