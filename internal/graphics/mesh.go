package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// boxVertices is a unit cube centered at the origin, interleaved as
// position (3) + normal (3), 36 vertices.
var boxVertices = []float32{
	-0.5, -0.5, 0.5, 0, 0, 1,
	0.5, -0.5, 0.5, 0, 0, 1,
	0.5, 0.5, 0.5, 0, 0, 1,
	0.5, 0.5, 0.5, 0, 0, 1,
	-0.5, 0.5, 0.5, 0, 0, 1,
	-0.5, -0.5, 0.5, 0, 0, 1,
	0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, 0.5, -0.5, 0, 0, -1,
	-0.5, 0.5, -0.5, 0, 0, -1,
	0.5, 0.5, -0.5, 0, 0, -1,
	0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, -0.5, -0.5, -1, 0, 0,
	-0.5, -0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, -0.5, -1, 0, 0,
	-0.5, -0.5, -0.5, -1, 0, 0,
	0.5, -0.5, 0.5, 1, 0, 0,
	0.5, -0.5, -0.5, 1, 0, 0,
	0.5, 0.5, -0.5, 1, 0, 0,
	0.5, 0.5, -0.5, 1, 0, 0,
	0.5, 0.5, 0.5, 1, 0, 0,
	0.5, -0.5, 0.5, 1, 0, 0,
	-0.5, 0.5, 0.5, 0, 1, 0,
	0.5, 0.5, 0.5, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0,
	-0.5, 0.5, -0.5, 0, 1, 0,
	-0.5, 0.5, 0.5, 0, 1, 0,
	-0.5, -0.5, -0.5, 0, -1, 0,
	0.5, -0.5, -0.5, 0, -1, 0,
	0.5, -0.5, 0.5, 0, -1, 0,
	0.5, -0.5, 0.5, 0, -1, 0,
	-0.5, -0.5, 0.5, 0, -1, 0,
	-0.5, -0.5, -0.5, 0, -1, 0,
}

const boxVertexCount = 36

// BoxMesh is the shared unit-cube VAO used for single-primitive objects.
type BoxMesh struct {
	vao uint32
	vbo uint32
}

// NewBoxMesh uploads the unit cube.
func NewBoxMesh() *BoxMesh {
	m := &BoxMesh{}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(boxVertices)*4, gl.Ptr(boxVertices), gl.STATIC_DRAW)
	bindBoxAttribs()
	gl.BindVertexArray(0)
	return m
}

// Draw issues one non-instanced draw of the cube.
func (m *BoxMesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, boxVertexCount)
}

// Delete releases the GPU buffers.
func (m *BoxMesh) Delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
}

// InstancedMesh is one hardware-instanced draw group: the unit cube plus
// a per-instance model matrix buffer.
type InstancedMesh struct {
	vao         uint32
	vbo         uint32
	instanceVBO uint32
	count       int32
}

// NewInstancedMesh uploads the cube and one model matrix per instance.
func NewInstancedMesh(models []mgl32.Mat4) *InstancedMesh {
	m := &InstancedMesh{count: int32(len(models))}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.instanceVBO)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(boxVertices)*4, gl.Ptr(boxVertices), gl.STATIC_DRAW)
	bindBoxAttribs()

	gl.BindBuffer(gl.ARRAY_BUFFER, m.instanceVBO)
	if len(models) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(models)*16*4, gl.Ptr(&models[0][0]), gl.STATIC_DRAW)
	}
	// A mat4 attribute occupies four consecutive vec4 slots.
	for i := uint32(0); i < 4; i++ {
		attr := 2 + i
		gl.EnableVertexAttribArray(attr)
		gl.VertexAttribPointerWithOffset(attr, 4, gl.FLOAT, false, 64, uintptr(i*16))
		gl.VertexAttribDivisor(attr, 1)
	}
	gl.BindVertexArray(0)
	return m
}

// Draw issues one instanced draw over every instance in the group.
func (m *InstancedMesh) Draw() {
	if m.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, boxVertexCount, m.count)
}

// Delete releases the GPU buffers.
func (m *InstancedMesh) Delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.instanceVBO != 0 {
		gl.DeleteBuffers(1, &m.instanceVBO)
		m.instanceVBO = 0
	}
}

func bindBoxAttribs() {
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 24, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 24, 12)
}
