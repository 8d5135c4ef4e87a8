// Package model provides the renderable voxel mesh representation that the
// texture atlas paints: quad faces with a normal, per-vertex UVs and colours.
package model

import (
	gomath "math"

	"github.com/Faultbox/voxeltex/pkg/math"
)

// Color is a linear RGB colour with components in [0,1].
type Color struct {
	R, G, B float32
}

// Face is one quad of a mesh.
type Face struct {
	Normal    math.Vec3
	Positions []math.Vec3
	UVs       []math.Vec2

	// Color carries the voxel type id on meshes produced by the voxel mesher.
	Color Color

	// VertexColors holds per-vertex shading for flat-coloured faces.
	VertexColors []Color

	// MaterialIndex selects between the opaque (0) and transparent (1) material.
	MaterialIndex int
}

// Mesh is a list of faces plus the dirty flags a renderer polls.
type Mesh struct {
	Faces            []Face
	UVsNeedUpdate    bool
	ColorsNeedUpdate bool
}

// NumFaces returns the number of faces.
func (m *Mesh) NumFaces() int { return len(m.Faces) }

// Face returns a pointer to face i.
func (m *Mesh) Face(i int) *Face { return &m.Faces[i] }

// MarkUVsDirty flags the UV buffer for re-upload.
func (m *Mesh) MarkUVsDirty() { m.UVsNeedUpdate = true }

// MarkColorsDirty flags the colour buffer for re-upload.
func (m *Mesh) MarkColorsDirty() { m.ColorsNeedUpdate = true }

const voxelBase = 255

// EncodeVoxelType packs a voxel type id into a face colour, least
// significant digit in blue.
func EncodeVoxelType(id int) Color {
	b := id % voxelBase
	g := (id / voxelBase) % voxelBase
	r := (id / (voxelBase * voxelBase)) % voxelBase
	return Color{
		R: float32(r) / voxelBase,
		G: float32(g) / voxelBase,
		B: float32(b) / voxelBase,
	}
}

// DecodeVoxelType recovers the id stored by EncodeVoxelType:
// round(B·255 + G·255² + R·255³).
func DecodeVoxelType(c Color) int {
	v := float64(c.B)*voxelBase +
		float64(c.G)*voxelBase*voxelBase +
		float64(c.R)*voxelBase*voxelBase*voxelBase
	return int(gomath.Round(v))
}
