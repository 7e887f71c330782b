package renderer

import (
	"testing"

	"github.com/Faultbox/explode-viewer/pkg/math"
)

func TestVertexNormals_Provided(t *testing.T) {
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	normals := [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}

	got := vertexNormals(positions, normals, []uint32{0, 1, 2})
	if &got[0] != &normals[0] {
		t.Error("provided normals should be used as is")
	}
}

func TestVertexNormals_Computed(t *testing.T) {
	// Counter-clockwise triangle in the XY plane faces +Z.
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {5, 5, 5}}

	got := vertexNormals(positions, nil, []uint32{0, 1, 2})
	for i := 0; i < 3; i++ {
		if !math.FromArray(got[i]).ApproxEqual(math.Vec3{Z: 1}, 1e-6) {
			t.Errorf("normal %d = %v, want +Z", i, got[i])
		}
	}
	// Unreferenced vertex falls back to up.
	if got[3] != [3]float32{0, 1, 0} {
		t.Errorf("unreferenced normal = %v", got[3])
	}
}

func TestVertexNormals_SkipsBadIndices(t *testing.T) {
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	got := vertexNormals(positions, nil, []uint32{0, 1, 9})
	if len(got) != 3 || got[0] != [3]float32{0, 1, 0} {
		t.Errorf("normals = %v", got)
	}
}

func TestInterleave(t *testing.T) {
	v := interleave([][3]float32{{1, 2, 3}, {4, 5, 6}}, [][3]float32{{0, 0, 1}, {0, 1, 0}})
	want := []float32{1, 2, 3, 0, 0, 1, 4, 5, 6, 0, 1, 0}
	if len(v) != len(want) {
		t.Fatalf("len = %d, want %d", len(v), len(want))
	}
	for i := range want {
		if v[i] != want[i] {
			t.Errorf("v[%d] = %v, want %v", i, v[i], want[i])
		}
	}
}
