// Package lighting provides the environment lighting presets.
package lighting

import "math"

// SunDirection converts longitude/latitude angles in degrees to a unit
// direction pointing towards the sun. Longitude rotates around Y,
// latitude is elevation above the horizon.
func SunDirection(longitude, latitude float32) [3]float32 {
	lonRad := float64(longitude) * math.Pi / 180.0
	latRad := float64(latitude) * math.Pi / 180.0

	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return [3]float32{x, y, z}
}
