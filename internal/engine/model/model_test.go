package model

import (
	"testing"

	"github.com/Faultbox/voxeltex/pkg/math"
)

func TestVoxelTypeRoundTrip(t *testing.T) {
	for _, id := range []int{0, 1, 2, 254, 255, 256, 1000, 65024, 70000} {
		c := EncodeVoxelType(id)
		if got := DecodeVoxelType(c); got != id {
			t.Errorf("DecodeVoxelType(EncodeVoxelType(%d)) = %d", id, got)
		}
	}
}

func TestCubeNormals(t *testing.T) {
	faces := Cube(math.Vec3{}, 3)
	if len(faces) != 6 {
		t.Fatalf("expected 6 faces, got %d", len(faces))
	}
	for i, f := range faces {
		// normal must agree with the winding of the corners
		e1 := f.Positions[1].Sub(f.Positions[0])
		e2 := f.Positions[2].Sub(f.Positions[0])
		n := e1.Cross(e2).Normalize()
		if n != f.Normal {
			t.Errorf("face %d: winding normal %v, declared %v", i, n, f.Normal)
		}
		if DecodeVoxelType(f.Color) != 3 {
			t.Errorf("face %d: expected voxel type 3, got %d", i, DecodeVoxelType(f.Color))
		}
		if len(f.UVs) != 4 {
			t.Errorf("face %d: expected 4 UVs, got %d", i, len(f.UVs))
		}
	}
}

func TestBuildMeshCulling(t *testing.T) {
	c := NewChunk(2, 1, 1)
	c.Set(0, 0, 0, 1)
	c.Set(1, 0, 0, 2)

	m := BuildMesh(c)
	// two cubes sharing one side: 12 - 2 hidden faces
	if m.NumFaces() != 10 {
		t.Fatalf("expected 10 faces, got %d", m.NumFaces())
	}
	for i := 0; i < m.NumFaces(); i++ {
		f := m.Face(i)
		id := DecodeVoxelType(f.Color)
		if id == 1 && f.Normal.X == 1 {
			t.Error("expected +x face of voxel 1 to be culled")
		}
		if id == 2 && f.Normal.X == -1 {
			t.Error("expected -x face of voxel 2 to be culled")
		}
	}

	if c.At(-1, 0, 0) != 0 || c.At(5, 0, 0) != 0 {
		t.Error("expected out-of-range voxels to read as empty")
	}
}

func TestMeshDirtyFlags(t *testing.T) {
	m := &Mesh{}
	m.MarkUVsDirty()
	m.MarkColorsDirty()
	if !m.UVsNeedUpdate || !m.ColorsNeedUpdate {
		t.Error("expected dirty flags to be set")
	}
}
