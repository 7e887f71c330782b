// Package debug provides debug visualization geometry and screenshots.
package debug

import (
	"github.com/Faultbox/explode-viewer/pkg/math"
)

// BBoxVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxVertexCount = 24

// BBoxLines creates line vertices for the box min..max grown by padding on
// every side. Format: [x, y, z] per vertex, two vertices per edge.
func BBoxLines(min, max math.Vec3, padding float32) []float32 {
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	lo, hi := min.Sub(pad), max.Add(pad)
	minX, minY, minZ := lo.X, lo.Y, lo.Z
	maxX, maxY, maxZ := hi.X, hi.Y, hi.Z

	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}
