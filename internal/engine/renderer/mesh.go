package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/explode-viewer/internal/scene"
	"github.com/Faultbox/explode-viewer/pkg/math"
)

// floatsPerVertex is position + normal.
const floatsPerVertex = 6

// gpuPrimitive is one uploaded primitive.
type gpuPrimitive struct {
	src        *scene.Primitive
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// gpuMesh groups the uploaded primitives of one mesh node.
type gpuMesh struct {
	mesh  *scene.Mesh
	prims []gpuPrimitive
}

func uploadScene(s *scene.Scene) []gpuMesh {
	meshes := make([]gpuMesh, 0, len(s.Meshes()))
	for _, m := range s.Meshes() {
		gm := gpuMesh{mesh: m}
		for _, p := range m.Primitives {
			if len(p.Positions) == 0 || len(p.Indices) == 0 {
				continue
			}
			gm.prims = append(gm.prims, uploadPrimitive(p))
		}
		meshes = append(meshes, gm)
	}
	return meshes
}

func uploadPrimitive(p *scene.Primitive) gpuPrimitive {
	vertices := interleave(p.Positions, vertexNormals(p.Positions, p.Normals, p.Indices))
	gp := gpuPrimitive{src: p, indexCount: int32(len(p.Indices))}

	gl.GenVertexArrays(1, &gp.vao)
	gl.BindVertexArray(gp.vao)

	gl.GenBuffers(1, &gp.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gp.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &gp.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gp.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(p.Indices)*4, gl.Ptr(p.Indices), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, floatsPerVertex*4, 0)
	gl.EnableVertexAttribArray(0)
	// Normal attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, floatsPerVertex*4, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return gp
}

func freeScene(meshes []gpuMesh) {
	for _, m := range meshes {
		for i := range m.prims {
			p := &m.prims[i]
			gl.DeleteVertexArrays(1, &p.vao)
			gl.DeleteBuffers(1, &p.vbo)
			gl.DeleteBuffers(1, &p.ebo)
		}
	}
}

// vertexNormals returns normals, computing smooth ones from the triangle
// list when the primitive carries none.
func vertexNormals(positions, normals [][3]float32, indices []uint32) [][3]float32 {
	if len(normals) == len(positions) {
		return normals
	}

	acc := make([]math.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= len(positions) || int(b) >= len(positions) || int(c) >= len(positions) {
			continue
		}
		pa, pb, pc := math.FromArray(positions[a]), math.FromArray(positions[b]), math.FromArray(positions[c])
		// Area-weighted face normal.
		n := cross(pb.Sub(pa), pc.Sub(pa))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}

	out := make([][3]float32, len(positions))
	for i, n := range acc {
		if n.IsZero() {
			out[i] = [3]float32{0, 1, 0}
			continue
		}
		out[i] = n.Normalize().Array()
	}
	return out
}

func cross(a, b math.Vec3) math.Vec3 {
	return math.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func interleave(positions, normals [][3]float32) []float32 {
	out := make([]float32, 0, len(positions)*floatsPerVertex)
	for i, p := range positions {
		n := normals[i]
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2])
	}
	return out
}
