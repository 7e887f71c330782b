package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// lineBuffer is a streamed vertex buffer for debug lines.
type lineBuffer struct {
	vao      uint32
	vbo      uint32
	capacity int // floats
}

func newLineBuffer() *lineBuffer {
	b := &lineBuffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	return b
}

// draw uploads vertices and draws them as GL_LINES.
func (b *lineBuffer) draw(vertices []float32) {
	if len(vertices) < 6 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(vertices) > b.capacity {
		b.capacity = len(vertices)
		gl.BufferData(gl.ARRAY_BUFFER, b.capacity*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	}
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/3))
	gl.BindVertexArray(0)
}

func (b *lineBuffer) free() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
}
