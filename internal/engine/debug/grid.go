package debug

import (
	gomath "math"

	"github.com/Faultbox/explode-viewer/pkg/math"
)

// GridLines generates a square ground grid on the plane y = height centered
// below center. The cell size is a power of ten picked so that the grid
// spans radius with between 5 and 50 cells per side. Format: [x, y, z] per
// vertex, two vertices per line.
func GridLines(center math.Vec3, radius, height float32) []float32 {
	if radius <= 0 {
		radius = 1
	}
	cell := GridCell(radius)
	half := int(gomath.Ceil(float64(radius / cell)))
	extent := float32(half) * cell

	// Snap the grid origin to whole cells so lines stay put while the
	// model explodes.
	ox := float32(gomath.Round(float64(center.X/cell))) * cell
	oz := float32(gomath.Round(float64(center.Z/cell))) * cell

	vertices := make([]float32, 0, (2*half+1)*12)
	for i := -half; i <= half; i++ {
		d := float32(i) * cell
		vertices = append(vertices,
			ox+d, height, oz-extent, ox+d, height, oz+extent,
			ox-extent, height, oz+d, ox+extent, height, oz+d,
		)
	}
	return vertices
}

// GridCell returns the grid cell size for a model of the given radius.
func GridCell(radius float32) float32 {
	if radius <= 0 {
		return 1
	}
	exp := gomath.Floor(gomath.Log10(float64(radius) / 5))
	return float32(gomath.Pow(10, exp))
}
