package scene

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/explode-viewer/pkg/math"
)

// ErrNoScene is returned for documents without any node to display.
var ErrNoScene = errors.New("document has no scene nodes")

// Open decodes a .gltf or .glb file. External buffers of .gltf files are
// resolved relative to the file.
func Open(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	return FromDocument(doc, filepath.Base(path))
}

// Decode decodes a self-contained document (GLB or .gltf with embedded
// buffers) from memory.
func Decode(data []byte, name string) (*Scene, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return FromDocument(doc, name)
}

// FromDocument builds a Scene from the document's default scene, or from
// every parentless node when the document names no scene.
func FromDocument(doc *gltf.Document, name string) (*Scene, error) {
	roots, err := rootNodes(doc)
	if err != nil {
		return nil, err
	}

	s := New(name)
	for _, m := range doc.Materials {
		mat := s.AddMaterial(m.Name)
		if m.PBRMetallicRoughness != nil {
			c := m.PBRMetallicRoughness.BaseColorFactorOrDefault()
			mat.BaseColor = [4]float32{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
		}
	}

	b := &docBuilder{doc: doc, scene: s, visited: make(map[int]bool)}
	for _, r := range roots {
		if err := b.addNode(r, NoParent); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func rootNodes(doc *gltf.Document) ([]int, error) {
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		roots := doc.Scenes[*doc.Scene].Nodes
		if len(roots) == 0 {
			return nil, ErrNoScene
		}
		return indices(roots), nil
	}
	if len(doc.Scenes) > 0 && len(doc.Scenes[0].Nodes) > 0 {
		return indices(doc.Scenes[0].Nodes), nil
	}

	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if int(c) < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	if len(roots) == 0 {
		return nil, ErrNoScene
	}
	return roots, nil
}

// indices converts glTF's uint32 references to slice indices.
func indices(refs []uint32) []int {
	out := make([]int, len(refs))
	for i, r := range refs {
		out[i] = int(r)
	}
	return out
}

type docBuilder struct {
	doc     *gltf.Document
	scene   *Scene
	visited map[int]bool
}

func (b *docBuilder) addNode(index, parent int) error {
	if index < 0 || index >= len(b.doc.Nodes) {
		return fmt.Errorf("node %d out of range", index)
	}
	if b.visited[index] {
		return fmt.Errorf("node %d referenced twice", index)
	}
	b.visited[index] = true

	src := b.doc.Nodes[index]
	pos, rot, scale := nodeTransform(src)

	n := b.scene.AddNode(src.Name, parent, pos)
	n.Rotation = rot
	n.Scale = scale

	if src.Mesh != nil {
		if err := b.addMesh(n, int(*src.Mesh)); err != nil {
			return fmt.Errorf("node %q: %w", src.Name, err)
		}
	}
	for _, c := range src.Children {
		if err := b.addNode(int(c), n.Index); err != nil {
			return err
		}
	}
	return nil
}

func (b *docBuilder) addMesh(n *Node, meshIndex int) error {
	if meshIndex >= len(b.doc.Meshes) {
		return fmt.Errorf("mesh %d out of range", meshIndex)
	}
	var prims []*Primitive
	for i, p := range b.doc.Meshes[meshIndex].Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			continue
		}
		prim, err := b.readPrimitive(p)
		if err != nil {
			return fmt.Errorf("primitive %d: %w", i, err)
		}
		prims = append(prims, prim)
	}
	if n.Name == "" {
		n.Name = b.doc.Meshes[meshIndex].Name
	}
	b.scene.AttachMesh(n, prims...)
	return nil
}

func (b *docBuilder) readPrimitive(p *gltf.Primitive) (*Primitive, error) {
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, errors.New("no POSITION attribute")
	}
	if !b.hasAccessor(posIdx) {
		return nil, fmt.Errorf("POSITION accessor %d out of range", posIdx)
	}
	positions, err := modeler.ReadPosition(b.doc, b.doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}
	prim := &Primitive{Positions: positions}

	if normIdx, ok := p.Attributes[gltf.NORMAL]; ok && b.hasAccessor(normIdx) {
		normals, err := modeler.ReadNormal(b.doc, b.doc.Accessors[normIdx], nil)
		if err == nil && len(normals) == len(positions) {
			prim.Normals = normals
		}
	}

	if p.Indices != nil {
		if !b.hasAccessor(*p.Indices) {
			return nil, fmt.Errorf("index accessor %d out of range", *p.Indices)
		}
		prim.Indices, err = modeler.ReadIndices(b.doc, b.doc.Accessors[*p.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		prim.Indices = make([]uint32, len(positions))
		for i := range prim.Indices {
			prim.Indices[i] = uint32(i)
		}
	}

	if p.Material != nil && int(*p.Material) < len(b.scene.materials) {
		prim.Material = b.scene.materials[*p.Material]
	}
	return prim, nil
}

func (b *docBuilder) hasAccessor(i uint32) bool {
	return int(i) < len(b.doc.Accessors)
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// nodeTransform returns the local TRS of a node, decomposing the matrix form
// when the node uses one.
func nodeTransform(n *gltf.Node) (math.Vec3, mgl32.Quat, math.Vec3) {
	if n.Matrix != [16]float64{} && n.Matrix != identityMatrix {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		pos := math.Vec3{X: m[12], Y: m[13], Z: m[14]}
		scale := math.Vec3{
			X: m.Col(0).Vec3().Len(),
			Y: m.Col(1).Vec3().Len(),
			Z: m.Col(2).Vec3().Len(),
		}
		if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
			return pos, mgl32.QuatIdent(), scale
		}
		rot := mgl32.Mat4ToQuat(mgl32.Mat4FromCols(
			m.Col(0).Mul(1/scale.X),
			m.Col(1).Mul(1/scale.Y),
			m.Col(2).Mul(1/scale.Z),
			mgl32.Vec4{0, 0, 0, 1},
		))
		return pos, rot.Normalize(), scale
	}

	r := n.RotationOrDefault()
	rot := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return math.FromFloat64(n.Translation), rot, math.FromFloat64(n.ScaleOrDefault())
}
