// Package loader reads glTF 2.0 and GLB models far enough to place their meshes in world
// space and report the bounding box the viewer frames.
package loader

import (
	"io"
	"os"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// ErrNoGeometry is returned when a model has no mesh with POSITION bounds in its scene.
var ErrNoGeometry = errors.New("model has no positioned geometry")

// Model summarizes a loaded glTF scene.
type Model struct {
	// Name is the scene name, or empty.
	Name string
	// Bounds is the world-space box around every mesh in the scene.
	Bounds common.Box3
	// Meshes counts mesh instances, so a mesh used by two nodes counts twice.
	Meshes int
	// Primitives counts the primitives that contributed to Bounds.
	Primitives int
}

// Load reads the glTF (.gltf) or GLB (.glb) file at path.
//
// Parameters:
//   - path: the model file
//
// Returns:
//   - *Model: the scene summary
//   - error: if the file cannot be read or parsed, or ErrNoGeometry
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read model %s", path)
	}
	m, err := decode(data)
	return m, errors.Wrap(err, path)
}

// Read is Load for a stream. The format is detected from the content.
func Read(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read model")
	}
	return decode(data)
}

func decode(data []byte) (*Model, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	return summarize(doc)
}

// summarize walks the default scene, or every root node when the document has no scene.
func summarize(doc *gltfDocument) (*Model, error) {
	m := &Model{Bounds: common.EmptyBox3()}

	var roots []int
	switch {
	case len(doc.Scenes) > 0:
		index := 0
		if doc.Scene != nil {
			index = *doc.Scene
		}
		if index < 0 || index >= len(doc.Scenes) {
			return nil, errors.Errorf("scene %d out of range", index)
		}
		m.Name = doc.Scenes[index].Name
		roots = doc.Scenes[index].Nodes
	default:
		roots = rootNodes(doc)
	}

	visited := make(map[int]bool, len(doc.Nodes))
	for _, root := range roots {
		if err := m.visit(doc, root, mgl64.Ident4(), visited); err != nil {
			return nil, err
		}
	}
	if m.Primitives == 0 {
		return nil, ErrNoGeometry
	}
	return m, nil
}

// visit accumulates the bounds of node and its children. visited guards against cycles in
// malformed files.
func (m *Model) visit(doc *gltfDocument, index int, parent mgl64.Mat4, visited map[int]bool) error {
	if index < 0 || index >= len(doc.Nodes) {
		return errors.Errorf("node %d out of range", index)
	}
	if visited[index] {
		return errors.Errorf("node %d visited twice", index)
	}
	visited[index] = true

	node := &doc.Nodes[index]
	world := parent.Mul4(nodeTransform(node))

	if node.Mesh != nil {
		if *node.Mesh < 0 || *node.Mesh >= len(doc.Meshes) {
			return errors.Errorf("node %d: mesh %d out of range", index, *node.Mesh)
		}
		m.Meshes++
		for _, prim := range doc.Meshes[*node.Mesh].Primitives {
			accessorIndex, ok := prim.Attributes[gltfAttributePosition]
			if !ok {
				continue
			}
			box, err := positionBounds(doc, accessorIndex)
			if err != nil {
				return errors.Wrapf(err, "node %d", index)
			}
			for _, corner := range box.Corners() {
				m.Bounds = m.Bounds.ExpandByPoint(mgl64.TransformCoordinate(corner, world))
			}
			m.Primitives++
		}
	}

	for _, child := range node.Children {
		if err := m.visit(doc, child, world, visited); err != nil {
			return err
		}
	}
	return nil
}

// positionBounds reads the local-space box of a POSITION accessor.
func positionBounds(doc *gltfDocument, index int) (common.Box3, error) {
	if index < 0 || index >= len(doc.Accessors) {
		return common.Box3{}, errors.Errorf("accessor %d out of range", index)
	}
	a := doc.Accessors[index]
	if a.Type != gltfTypeVec3 || len(a.Min) != 3 || len(a.Max) != 3 {
		return common.Box3{}, errors.Errorf("accessor %d: POSITION needs VEC3 min and max", index)
	}
	return common.NewBox3(
		mgl64.Vec3{a.Min[0], a.Min[1], a.Min[2]},
		mgl64.Vec3{a.Max[0], a.Max[1], a.Max[2]},
	), nil
}

// nodeTransform returns the node's local matrix: Matrix when set, otherwise T * R * S.
func nodeTransform(node *gltfNode) mgl64.Mat4 {
	if node.Matrix != nil {
		return mgl64.Mat4(*node.Matrix)
	}
	transform := mgl64.Ident4()
	if t := node.Translation; t != nil {
		transform = mgl64.Translate3D(t[0], t[1], t[2])
	}
	if r := node.Rotation; r != nil {
		q := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Normalize()
		transform = transform.Mul4(q.Mat4())
	}
	if s := node.Scale; s != nil {
		transform = transform.Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
	}
	return transform
}

// rootNodes returns the nodes no other node lists as a child.
func rootNodes(doc *gltfDocument) []int {
	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return roots
}
