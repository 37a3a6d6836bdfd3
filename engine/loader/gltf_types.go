// gltf_types.go holds the subset of the glTF 2.0 JSON schema needed to place meshes in the
// scene and read their position bounds.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
package loader

// --- glTF Root Structure ---

// gltfDocument represents the root of a glTF JSON document.
type gltfDocument struct {
	Asset     gltfAsset      `json:"asset"`
	Scene     *int           `json:"scene,omitempty"`
	Scenes    []gltfScene    `json:"scenes,omitempty"`
	Nodes     []gltfNode     `json:"nodes,omitempty"`
	Meshes    []gltfMesh     `json:"meshes,omitempty"`
	Accessors []gltfAccessor `json:"accessors,omitempty"`
}

type gltfAsset struct {
	// Version is the glTF version (required, must be "2.0").
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

// --- Scene Graph ---

type gltfScene struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
}

// gltfNode is a node in the node hierarchy. A node carries either Matrix or any of
// Translation, Rotation and Scale.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-node
type gltfNode struct {
	Name     string `json:"name,omitempty"`
	Children []int  `json:"children,omitempty"`
	Mesh     *int   `json:"mesh,omitempty"`

	// Matrix is a 4x4 transformation matrix (column-major).
	Matrix *[16]float64 `json:"matrix,omitempty"`
	// Rotation is a quaternion (x, y, z, w).
	Rotation    *[4]float64 `json:"rotation,omitempty"`
	Translation *[3]float64 `json:"translation,omitempty"`
	Scale       *[3]float64 `json:"scale,omitempty"`
}

// --- Mesh Data ---

type gltfMesh struct {
	Name       string          `json:"name,omitempty"`
	Primitives []gltfPrimitive `json:"primitives"`
}

type gltfPrimitive struct {
	// Attributes maps an attribute semantic (POSITION, NORMAL, ...) to an accessor index.
	Attributes map[string]int `json:"attributes"`
}

// gltfAccessor describes typed data in a buffer. Only the bounds are read here; POSITION
// accessors are required to carry them.
type gltfAccessor struct {
	Count int       `json:"count"`
	Type  string    `json:"type"`
	Max   []float64 `json:"max,omitempty"`
	Min   []float64 `json:"min,omitempty"`
}

// --- GLB Container ---

// gltfGLBHeader is the header of a GLB file (12 bytes).
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
type gltfGLBHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

// gltfGLBChunkHeader is the header of a GLB chunk (8 bytes).
type gltfGLBChunkHeader struct {
	ChunkLength uint32
	ChunkType   uint32
}

const (
	gltfGLBMagic     = 0x46546C67 // "glTF"
	gltfGLBVersion   = 2
	gltfGLBChunkJSON = 0x4E4F534A // "JSON"

	gltfAttributePosition = "POSITION"
	gltfTypeVec3          = "VEC3"
)
