// Package scene holds a loaded model asset: its node hierarchy, drawable
// meshes, shared materials and the rest pose captured for explode view.
//
// A Scene is owned by the render loop and is not safe for concurrent use.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/explode-viewer/pkg/math"
)

// NoParent marks a root node.
const NoParent = -1

// MeshID identifies a mesh node within its owning Scene. It is the node's
// index in the scene and is only meaningful for that scene.
type MeshID int

// Node is an element of the scene hierarchy.
type Node struct {
	Index    int
	Name     string
	Parent   int
	Children []int

	// Position is the mutable local translation.
	Position math.Vec3
	Rotation mgl32.Quat
	Scale    math.Vec3

	// Mesh is nil for grouping nodes, cameras and lights.
	Mesh *Mesh
}

// LocalMatrix returns the node transform relative to its parent.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X, n.Position.Y, n.Position.Z)
	r := n.Rotation.Mat4()
	s := mgl32.Scale3D(n.Scale.X, n.Scale.Y, n.Scale.Z)
	return t.Mul4(r).Mul4(s)
}

// Mesh is a drawable node.
type Mesh struct {
	ID         MeshID
	Name       string
	Node       *Node
	Primitives []*Primitive
}

// Position returns the mesh node's current local position.
func (m *Mesh) Position() math.Vec3 {
	return m.Node.Position
}

// SetPosition moves the mesh node.
func (m *Mesh) SetPosition(p math.Vec3) {
	m.Node.Position = p
}

// Primitive is one triangle list of a mesh.
type Primitive struct {
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32
	Material  *Material // nil draws with the default material
	Bounds    Bounds    // local space
}

// Material is shared between primitives. Wireframe is written by the
// material mode controller and read by the renderer.
type Material struct {
	Index     int
	Name      string
	BaseColor [4]float32
	Wireframe bool

	users int
}

// Bounds is an axis-aligned box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Empty reports whether no point was ever added.
func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X
}

// Center returns the box center.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func emptyBounds() Bounds {
	return Bounds{
		Min: math.Vec3{X: 1e30, Y: 1e30, Z: 1e30},
		Max: math.Vec3{X: -1e30, Y: -1e30, Z: -1e30},
	}
}

func (b *Bounds) extend(p [3]float32) {
	b.Min.X = min(b.Min.X, p[0])
	b.Min.Y = min(b.Min.Y, p[1])
	b.Min.Z = min(b.Min.Z, p[2])
	b.Max.X = max(b.Max.X, p[0])
	b.Max.Y = max(b.Max.Y, p[1])
	b.Max.Z = max(b.Max.Z, p[2])
}

// Scene is a loaded asset. Exactly one Scene is active in the viewer at a
// time; replacing it discards its rest pose with it.
type Scene struct {
	Name string

	nodes     []*Node
	roots     []int
	meshes    []*Mesh
	materials []*Material

	rest restArena
}

// New creates an empty scene.
func New(name string) *Scene {
	return &Scene{Name: name}
}

// AddNode appends a node under parent (NoParent for a root) with an identity
// rotation and unit scale.
func (s *Scene) AddNode(name string, parent int, position math.Vec3) *Node {
	n := &Node{
		Index:    len(s.nodes),
		Name:     name,
		Parent:   parent,
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
	s.nodes = append(s.nodes, n)
	if parent == NoParent {
		s.roots = append(s.roots, n.Index)
	} else {
		s.nodes[parent].Children = append(s.nodes[parent].Children, n.Index)
	}
	return n
}

// AddMaterial appends a material.
func (s *Scene) AddMaterial(name string) *Material {
	m := &Material{
		Index:     len(s.materials),
		Name:      name,
		BaseColor: [4]float32{0.8, 0.8, 0.8, 1},
	}
	s.materials = append(s.materials, m)
	return m
}

// AttachMesh makes n drawable with the given primitives.
func (s *Scene) AttachMesh(n *Node, prims ...*Primitive) *Mesh {
	m := &Mesh{
		ID:         MeshID(n.Index),
		Name:       n.Name,
		Node:       n,
		Primitives: prims,
	}
	for _, p := range prims {
		p.Bounds = emptyBounds()
		for _, v := range p.Positions {
			p.Bounds.extend(v)
		}
		if p.Material != nil {
			p.Material.users++
		}
	}
	n.Mesh = m
	s.meshes = append(s.meshes, m)
	return m
}

// Node returns the node at index i, or nil.
func (s *Scene) Node(i int) *Node {
	if i < 0 || i >= len(s.nodes) {
		return nil
	}
	return s.nodes[i]
}

// NodeCount returns the number of nodes.
func (s *Scene) NodeCount() int {
	return len(s.nodes)
}

// Mesh looks up a mesh node by identity.
func (s *Scene) Mesh(id MeshID) *Mesh {
	n := s.Node(int(id))
	if n == nil {
		return nil
	}
	return n.Mesh
}

// Meshes returns the drawable nodes in insertion order.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// Materials returns the materials used by at least one primitive.
func (s *Scene) Materials() []*Material {
	used := make([]*Material, 0, len(s.materials))
	for _, m := range s.materials {
		if m.users > 0 {
			used = append(used, m)
		}
	}
	return used
}

// AllMaterials returns every material, including ones no primitive uses.
func (s *Scene) AllMaterials() []*Material {
	return s.materials
}

// Walk visits every node depth first from the roots. Returning false from
// fn skips the node's children.
func (s *Scene) Walk(fn func(n *Node) bool) {
	var visit func(i int)
	visit = func(i int) {
		n := s.nodes[i]
		if !fn(n) {
			return
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, r := range s.roots {
		visit(r)
	}
}

// WorldMatrix returns the node transform in model space.
func (s *Scene) WorldMatrix(n *Node) mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.Parent; p != NoParent; p = s.nodes[p].Parent {
		m = s.nodes[p].LocalMatrix().Mul4(m)
	}
	return m
}

// Bounds returns the model space box of all primitives at their current
// positions.
func (s *Scene) Bounds() Bounds {
	b := emptyBounds()
	for _, m := range s.meshes {
		world := s.WorldMatrix(m.Node)
		for _, p := range m.Primitives {
			if p.Bounds.Empty() {
				continue
			}
			for _, c := range corners(p.Bounds) {
				w := world.Mul4x1(mgl32.Vec4{c[0], c[1], c[2], 1})
				b.extend([3]float32{w[0], w[1], w[2]})
			}
		}
	}
	return b
}

func corners(b Bounds) [8][3]float32 {
	lo, hi := b.Min, b.Max
	return [8][3]float32{
		{lo.X, lo.Y, lo.Z}, {hi.X, lo.Y, lo.Z}, {lo.X, hi.Y, lo.Z}, {hi.X, hi.Y, lo.Z},
		{lo.X, lo.Y, hi.Z}, {hi.X, lo.Y, hi.Z}, {lo.X, hi.Y, hi.Z}, {hi.X, hi.Y, hi.Z},
	}
}
