// Package renderer draws painted voxel meshes with the atlas shader.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/voxeltex/internal/engine/model"
	"github.com/Faultbox/voxeltex/internal/engine/shader"
	"github.com/Faultbox/voxeltex/internal/logger"
	"github.com/Faultbox/voxeltex/pkg/math"
)

// FloatsPerVertex is the interleaved vertex layout: position (3), normal
// (3), tile offset (2), colour (3).
const FloatsPerVertex = 11

// quadOrder splits a quad into two counter-clockwise triangles.
var quadOrder = [6]int{0, 1, 2, 0, 2, 3}

var white = model.Color{R: 1, G: 1, B: 1}

// Vertices flattens the faces of mesh that use the given material index
// into interleaved triangle vertices.
func Vertices(mesh *model.Mesh, material int) []float32 {
	out := make([]float32, 0, len(mesh.Faces)*len(quadOrder)*FloatsPerVertex)
	for i := range mesh.Faces {
		f := &mesh.Faces[i]
		if f.MaterialIndex != material || len(f.Positions) < 4 {
			continue
		}
		n := f.Normal
		for _, k := range quadOrder {
			p := f.Positions[k]
			var offset math.Vec2
			if k < len(f.UVs) {
				offset = f.UVs[k]
			}
			c := white
			if k < len(f.VertexColors) {
				c = f.VertexColors[k]
			}
			out = append(out,
				p.X, p.Y, p.Z,
				n.X, n.Y, n.Z,
				offset.X, offset.Y,
				c.R, c.G, c.B)
		}
	}
	return out
}

// Renderer owns the vertex buffers of one mesh.
// IMPORTANT: create and use it on the thread that owns the GL context.
type Renderer struct {
	vao, vbo uint32
	mesh     *model.Mesh
	opaque   int32
	blended  int32

	program    uint32
	mvpLoc     int32
	tileMapLoc int32

	log *zap.Logger
}

// New initializes OpenGL and allocates the vertex buffers.
func New() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{log: logger.Named("renderer")}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(FloatsPerVertex * 4)
	attribs := []struct {
		loc, size, offset uint32
	}{
		{shader.AttribPosition, 3, 0},
		{shader.AttribNormal, 3, 3},
		{shader.AttribTileOffset, 2, 6},
		{shader.AttribColor, 3, 8},
	}
	for _, a := range attribs {
		gl.VertexAttribPointerWithOffset(a.loc, int32(a.size), gl.FLOAT, false, stride, uintptr(a.offset*4))
		gl.EnableVertexAttribArray(a.loc)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return r, nil
}

// Close releases the GL objects.
func (r *Renderer) Close() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
}

// Resize sets the viewport.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Sync uploads mesh when it is new or its UVs or colours changed, and
// clears the dirty flags.
func (r *Renderer) Sync(mesh *model.Mesh) {
	if mesh == r.mesh && !mesh.UVsNeedUpdate && !mesh.ColorsNeedUpdate {
		return
	}
	opaque := Vertices(mesh, 0)
	blended := Vertices(mesh, 1)
	data := append(opaque, blended...)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.mesh = mesh
	r.opaque = int32(len(opaque) / FloatsPerVertex)
	r.blended = int32(len(blended) / FloatsPerVertex)
	mesh.UVsNeedUpdate = false
	mesh.ColorsNeedUpdate = false
	r.log.Debug("mesh uploaded", zap.Int32("opaque", r.opaque), zap.Int32("blended", r.blended))
}

// Draw clears the frame and draws the synced mesh with the atlas program
// of b. Nothing but the clear happens before the first atlas upload.
func (r *Renderer) Draw(b *shader.Binding, mvp math.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	program := b.Program()
	if program == 0 || r.opaque+r.blended == 0 {
		return
	}
	if program != r.program {
		r.program = program
		r.mvpLoc = shader.Uniform(program, shader.UniformMVP)
		r.tileMapLoc = shader.Uniform(program, shader.UniformTileMap)
	}

	gl.UseProgram(program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, mvp.Ptr())
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.Texture())
	gl.Uniform1i(r.tileMapLoc, 0)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, r.opaque)
	if r.blended > 0 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
		gl.DrawArrays(gl.TRIANGLES, r.opaque, r.blended)
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}
	gl.BindVertexArray(0)
}
