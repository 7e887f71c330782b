package scene

import "github.com/Faultbox/explode-viewer/pkg/math"

// restArena stores the authored local position of every mesh node. It is
// filled once, the first time the scene is observed with at least one mesh,
// and never written again.
type restArena struct {
	positions map[MeshID]math.Vec3
	captured  bool
}

// RestPose is a read-only view of a scene's rest positions.
type RestPose struct {
	positions map[MeshID]math.Vec3
}

// Len returns the number of captured meshes.
func (r RestPose) Len() int {
	return len(r.positions)
}

// Get returns the rest position of a mesh.
func (r RestPose) Get(id MeshID) (math.Vec3, bool) {
	p, ok := r.positions[id]
	return p, ok
}

// Snapshot returns a copy of the mapping.
func (r RestPose) Snapshot() map[MeshID]math.Vec3 {
	out := make(map[MeshID]math.Vec3, len(r.positions))
	for id, p := range r.positions {
		out[id] = p
	}
	return out
}

// RestPose returns the scene's rest positions, capturing them on the first
// call that finds mesh nodes. A scene without meshes yields an empty pose and
// stays uncaptured.
func (s *Scene) RestPose() RestPose {
	if !s.rest.captured {
		s.captureRestPose()
	}
	return RestPose{positions: s.rest.positions}
}

// RestCaptured reports whether the rest pose has been recorded.
func (s *Scene) RestCaptured() bool {
	return s.rest.captured
}

func (s *Scene) captureRestPose() {
	positions := make(map[MeshID]math.Vec3, len(s.meshes))
	s.Walk(func(n *Node) bool {
		if n.Mesh != nil {
			positions[n.Mesh.ID] = n.Position
		}
		return true
	})
	if len(positions) == 0 {
		return
	}
	s.rest = restArena{positions: positions, captured: true}
}
