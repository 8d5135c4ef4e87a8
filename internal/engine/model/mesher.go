package model

import "github.com/Faultbox/voxeltex/pkg/math"

// faceDirs lists the six axis directions with the quad corners of the
// matching unit-cube face, wound so that (p1-p0)×(p2-p0) points along the normal.
var faceDirs = [6]struct {
	normal  math.Vec3
	offset  [3]int
	corners [4]math.Vec3
}{
	{math.Vec3{Z: -1}, [3]int{0, 0, -1}, [4]math.Vec3{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {}}},
	{math.Vec3{Z: 1}, [3]int{0, 0, 1}, [4]math.Vec3{{X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}}},
	{math.Vec3{Y: 1}, [3]int{0, 1, 0}, [4]math.Vec3{{X: 0, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}}},
	{math.Vec3{Y: -1}, [3]int{0, -1, 0}, [4]math.Vec3{{}, {X: 1}, {X: 1, Z: 1}, {Z: 1}}},
	{math.Vec3{X: -1}, [3]int{-1, 0, 0}, [4]math.Vec3{{Y: 1, Z: 1}, {Y: 1}, {}, {Z: 1}}},
	{math.Vec3{X: 1}, [3]int{1, 0, 0}, [4]math.Vec3{{X: 1, Y: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Z: 1}, {X: 1}}},
}

// Cube returns the six faces of a unit voxel at origin, tagged with voxelType.
func Cube(origin math.Vec3, voxelType int) []Face {
	faces := make([]Face, 0, 6)
	for i := range faceDirs {
		faces = append(faces, newFace(i, origin, voxelType))
	}
	return faces
}

func newFace(dir int, origin math.Vec3, voxelType int) Face {
	d := faceDirs[dir]
	pos := make([]math.Vec3, 4)
	for i, c := range d.corners {
		pos[i] = origin.Add(c)
	}
	return Face{
		Normal:    d.normal,
		Positions: pos,
		UVs:       make([]math.Vec2, 4),
		Color:     EncodeVoxelType(voxelType),
	}
}

// Chunk is a dense block of voxel type ids, x fastest then y then z.
// Zero means empty.
type Chunk struct {
	Dims   [3]int
	Voxels []int
}

// NewChunk allocates an empty chunk.
func NewChunk(x, y, z int) *Chunk {
	return &Chunk{Dims: [3]int{x, y, z}, Voxels: make([]int, x*y*z)}
}

// At returns the voxel at (x,y,z), or 0 outside the chunk.
func (c *Chunk) At(x, y, z int) int {
	if x < 0 || y < 0 || z < 0 || x >= c.Dims[0] || y >= c.Dims[1] || z >= c.Dims[2] {
		return 0
	}
	return c.Voxels[x+c.Dims[0]*(y+c.Dims[1]*z)]
}

// Set stores a voxel type at (x,y,z).
func (c *Chunk) Set(x, y, z, voxelType int) {
	c.Voxels[x+c.Dims[0]*(y+c.Dims[1]*z)] = voxelType
}

// BuildMesh emits one face for every voxel side that borders empty space.
func BuildMesh(c *Chunk) *Mesh {
	m := &Mesh{}
	for z := 0; z < c.Dims[2]; z++ {
		for y := 0; y < c.Dims[1]; y++ {
			for x := 0; x < c.Dims[0]; x++ {
				t := c.At(x, y, z)
				if t == 0 {
					continue
				}
				origin := math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
				for i, d := range faceDirs {
					if c.At(x+d.offset[0], y+d.offset[1], z+d.offset[2]) != 0 {
						continue
					}
					m.Faces = append(m.Faces, newFace(i, origin, t))
				}
			}
		}
	}
	return m
}
