// Package renderer draws the active scene with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/explode-viewer/internal/engine/debug"
	"github.com/Faultbox/explode-viewer/internal/engine/lighting"
	"github.com/Faultbox/explode-viewer/internal/engine/shader"
	"github.com/Faultbox/explode-viewer/internal/logger"
	"github.com/Faultbox/explode-viewer/internal/scene"
	"github.com/Faultbox/explode-viewer/pkg/math"
)

// Frame is everything needed to draw one frame.
type Frame struct {
	Scene *scene.Scene // nil draws only the environment

	View mgl32.Mat4
	Proj mgl32.Mat4
	Eye  math.Vec3

	Env    lighting.Environment
	Lights *lighting.PointLightBuffer

	Grid   []float32 // line vertices, nil to skip
	Bounds []float32 // line vertices, nil to skip

	// Wireframe applies to primitives without a material.
	Wireframe bool

	Loading bool
	Time    float32 // seconds since start, animates the loading indicator
}

// Stats describes the last drawn frame.
type Stats struct {
	Meshes    int
	Triangles int
	DrawCalls int
}

var defaultBaseColor = [4]float32{0.8, 0.8, 0.8, 1}

// Renderer handles all OpenGL rendering.
// New must be called after the OpenGL context is created.
type Renderer struct {
	width, height int

	meshProgram uint32
	locModel    int32
	locViewProj int32
	locBase     int32
	locSunDir   int32
	locSunColor int32
	locAmbient  int32
	locEye      int32
	locWire     int32
	locPLCount  int32
	locPLPos    int32
	locPLColor  int32
	locPLRange  int32

	lineProgram uint32
	locLineMVP  int32
	locColor    int32
	lines       *lineBuffer

	uploaded *scene.Scene
	meshes   []gpuMesh
}

// New initializes OpenGL and compiles the shader programs.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.For("renderer").Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	var err error
	r.meshProgram, err = shader.CompileProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.locModel = shader.GetUniform(r.meshProgram, "uModel")
	r.locViewProj = shader.GetUniform(r.meshProgram, "uViewProj")
	r.locBase = shader.GetUniform(r.meshProgram, "uBaseColor")
	r.locSunDir = shader.GetUniform(r.meshProgram, "uSunDir")
	r.locSunColor = shader.GetUniform(r.meshProgram, "uSunColor")
	r.locAmbient = shader.GetUniform(r.meshProgram, "uAmbient")
	r.locEye = shader.GetUniform(r.meshProgram, "uEye")
	r.locWire = shader.GetUniform(r.meshProgram, "uWireframe")
	r.locPLCount = shader.GetUniform(r.meshProgram, "uPointLightCount")
	r.locPLPos = shader.GetUniform(r.meshProgram, "uPointLightPositions")
	r.locPLColor = shader.GetUniform(r.meshProgram, "uPointLightColors")
	r.locPLRange = shader.GetUniform(r.meshProgram, "uPointLightRanges")

	r.lineProgram, err = shader.CompileProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		gl.DeleteProgram(r.meshProgram)
		return nil, fmt.Errorf("line shader: %w", err)
	}
	r.locLineMVP = shader.GetUniform(r.lineProgram, "uMVP")
	r.locColor = shader.GetUniform(r.lineProgram, "uColor")
	r.lines = newLineBuffer()

	r.Resize(width, height)
	return r, nil
}

// Close releases every GL object.
func (r *Renderer) Close() {
	logger.For("renderer").Info("closing renderer")
	freeScene(r.meshes)
	r.meshes = nil
	r.uploaded = nil
	r.lines.free()
	gl.DeleteProgram(r.meshProgram)
	gl.DeleteProgram(r.lineProgram)
}

// Resize sets the viewport to the drawable size.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.For("renderer").Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.height == 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

// Draw renders f and returns what was drawn.
func (r *Renderer) Draw(f Frame) Stats {
	sky := f.Env.Sky
	gl.ClearColor(sky[0], sky[1], sky[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.sync(f.Scene)

	var stats Stats
	viewProj := f.Proj.Mul4(f.View)
	if f.Scene != nil {
		stats = r.drawMeshes(f, viewProj)
	}

	grid := f.Env.Grid
	r.drawLines(f.Grid, viewProj, [4]float32{grid[0], grid[1], grid[2], 0.6})
	r.drawLines(f.Bounds, viewProj, [4]float32{1, 0.85, 0.2, 1})

	if f.Loading {
		r.drawLoading(f.Time)
	}
	return stats
}

// sync uploads s when it differs from the scene on the GPU.
func (r *Renderer) sync(s *scene.Scene) {
	if s == r.uploaded {
		return
	}
	freeScene(r.meshes)
	r.meshes = nil
	r.uploaded = s
	if s != nil {
		r.meshes = uploadScene(s)
		logger.For("renderer").Debug("scene uploaded", zap.String("scene", s.Name), zap.Int("meshes", len(r.meshes)))
	}
}

func (r *Renderer) drawMeshes(f Frame, viewProj mgl32.Mat4) Stats {
	var stats Stats

	gl.UseProgram(r.meshProgram)
	gl.UniformMatrix4fv(r.locViewProj, 1, false, &viewProj[0])

	sun := f.Env.SunDir()
	gl.Uniform3f(r.locSunDir, sun[0], sun[1], sun[2])
	gl.Uniform3f(r.locSunColor, f.Env.SunColor[0], f.Env.SunColor[1], f.Env.SunColor[2])
	gl.Uniform3f(r.locAmbient, f.Env.Ambient[0], f.Env.Ambient[1], f.Env.Ambient[2])
	gl.Uniform3f(r.locEye, f.Eye.X, f.Eye.Y, f.Eye.Z)

	if f.Lights != nil && f.Lights.Count > 0 {
		positions, colors, ranges := f.Lights.Positions(), f.Lights.Colors(), f.Lights.Ranges()
		gl.Uniform1i(r.locPLCount, int32(f.Lights.Count))
		gl.Uniform3fv(r.locPLPos, lighting.MaxPointLights, &positions[0])
		gl.Uniform3fv(r.locPLColor, lighting.MaxPointLights, &colors[0])
		gl.Uniform1fv(r.locPLRange, lighting.MaxPointLights, &ranges[0])
	} else {
		gl.Uniform1i(r.locPLCount, 0)
	}

	// Wireframe edges must stay visible from behind.
	gl.Disable(gl.CULL_FACE)

	for _, m := range r.meshes {
		model := f.Scene.WorldMatrix(m.mesh.Node)
		gl.UniformMatrix4fv(r.locModel, 1, false, &model[0])
		stats.Meshes++

		for _, p := range m.prims {
			base, wire := defaultBaseColor, f.Wireframe
			if mat := p.src.Material; mat != nil {
				base, wire = mat.BaseColor, mat.Wireframe
			}

			if wire {
				gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
				gl.Uniform1i(r.locWire, 1)
			} else {
				gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
				gl.Uniform1i(r.locWire, 0)
			}
			gl.Uniform4f(r.locBase, base[0], base[1], base[2], base[3])

			gl.BindVertexArray(p.vao)
			gl.DrawElements(gl.TRIANGLES, p.indexCount, gl.UNSIGNED_INT, nil)
			stats.DrawCalls++
			stats.Triangles += int(p.indexCount / 3)
		}
	}

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.BindVertexArray(0)
	return stats
}

func (r *Renderer) drawLines(vertices []float32, mvp mgl32.Mat4, color [4]float32) {
	if len(vertices) == 0 {
		return
	}
	gl.UseProgram(r.lineProgram)
	gl.UniformMatrix4fv(r.locLineMVP, 1, false, &mvp[0])
	gl.Uniform4f(r.locColor, color[0], color[1], color[2], color[3])
	r.lines.draw(vertices)
}

var loadingCube = debug.BBoxLines(math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, 0)

// drawLoading draws a spinning wire cube in front of the camera,
// independent of the scene's scale.
func (r *Renderer) drawLoading(t float32) {
	proj := mgl32.Perspective(mgl32.DegToRad(45), r.Aspect(), 0.1, 10)
	model := mgl32.Translate3D(0, 0, -4).
		Mul4(mgl32.HomogRotate3DY(t * 1.5)).
		Mul4(mgl32.HomogRotate3DX(t * 0.7))

	gl.Clear(gl.DEPTH_BUFFER_BIT)
	r.drawLines(loadingCube, proj.Mul4(model), [4]float32{1, 1, 1, 0.9})
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	pixels := make([]byte, r.width*r.height*4)
	if len(pixels) == 0 {
		return pixels, r.width, r.height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, r.width, r.height
}
