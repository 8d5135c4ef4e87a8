package voxeltex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/voxeltex/internal/engine/model"
	"github.com/Faultbox/voxeltex/pkg/material"
	"github.com/Faultbox/voxeltex/pkg/math"
	"github.com/Faultbox/voxeltex/pkg/uv"
)

// Paint assigns atlas UVs to every face of mesh.
//
// With a nil spec the mesh is a voxel mesh: each face's voxel type is
// decoded from its colour and selects a material slot, and the UV quad is
// inverted. With a spec every face uses that spec's slot and the quad is
// rotated by -90 degrees. The face normal picks the slot entry.
//
// While any batch is loading the request is queued and Paint returns false.
// Queued requests run in order when loading reaches zero.
func (t *Texture) Paint(mesh Renderable, spec *material.Spec) (bool, error) {
	var slot material.Slot
	if spec != nil {
		s, err := material.Expand(*spec)
		if err != nil {
			return false, err
		}
		slot = s
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.loading > 0 {
		t.queue = append(t.queue, paintRequest{mesh: mesh, explicit: spec != nil, slot: slot})
		return false, nil
	}
	t.paintLocked(mesh, spec != nil, slot)
	return true, nil
}

func (t *Texture) flushLocked() {
	queue := t.queue
	t.queue = nil
	for _, req := range queue {
		t.paintLocked(req.mesh, req.explicit, req.slot)
	}
}

func (t *Texture) paintLocked(mesh Renderable, explicit bool, slot material.Slot) {
	colorsDirty := false
	for i := 0; i < mesh.NumFaces(); i++ {
		f := mesh.Face(i)
		if len(f.UVs) == 0 {
			continue
		}
		if !explicit {
			slot = t.slotForLocked(model.DecodeVoxelType(f.Color))
		}
		name := slot[uv.SlotForNormal(f.Normal)]
		if material.IsFlatColor(name) {
			if paintFlat(f, name) {
				colorsDirty = true
			}
			continue
		}

		q, ok := t.uvs[name]
		if !ok {
			continue
		}
		if t.transparent[name] {
			f.MaterialIndex = MaterialTransparent
		} else {
			f.MaterialIndex = MaterialOpaque
		}
		if explicit {
			q = uv.Rotate(q, -90)
		} else {
			q = uv.Invert(q)
		}
		// Every vertex gets the tile origin; the shader tiles from there.
		o := q.Origin()
		for j := range f.UVs {
			f.UVs[j] = math.Vec2{X: o.X, Y: 1 - o.Y}
		}
	}
	mesh.MarkUVsDirty()
	if cm, ok := mesh.(colorMarker); ok && colorsDirty {
		cm.MarkColorsDirty()
	}
}

// slotForLocked maps a voxel type to its slot; out of range types use the
// first slot.
func (t *Texture) slotForLocked(voxelType int) material.Slot {
	if len(t.materials) == 0 {
		return material.Slot{}
	}
	i := voxelType - 1
	if i < 0 || i >= len(t.materials) {
		i = 0
	}
	return t.materials[i]
}

// Shade factors for flat coloured faces, by slot.
var faceShade = [material.NumFaces]float32{
	uv.SlotBack:   0.85,
	uv.SlotFront:  0.85,
	uv.SlotTop:    1.0,
	uv.SlotBottom: 0.5,
	uv.SlotLeft:   0.7,
	uv.SlotRight:  0.7,
}

// paintFlat fills the vertex colours of f with the shaded colour name.
func paintFlat(f *model.Face, name string) bool {
	c, err := ParseColor(name)
	if err != nil {
		return false
	}
	s := faceShade[uv.SlotForNormal(f.Normal)]
	shaded := model.Color{R: c.R * s, G: c.G * s, B: c.B * s}
	f.VertexColors = f.VertexColors[:0]
	for range f.UVs {
		f.VertexColors = append(f.VertexColors, shaded)
	}
	return true
}

// ParseColor parses "#rgb" or "#rrggbb" into a colour with components in [0,1].
func ParseColor(s string) (model.Color, error) {
	hex, ok := strings.CutPrefix(s, material.FlatColorPrefix)
	if !ok {
		return model.Color{}, fmt.Errorf("voxeltex: colour %q has no %q prefix", s, material.FlatColorPrefix)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return model.Color{}, fmt.Errorf("voxeltex: colour %q must have 3 or 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return model.Color{}, fmt.Errorf("voxeltex: colour %q: %w", s, err)
	}
	return model.Color{
		R: float32(v>>16&0xff) / 255,
		G: float32(v>>8&0xff) / 255,
		B: float32(v&0xff) / 255,
	}, nil
}
