// Package mesh builds line-list geometry for the viewer: ground grid, axes and box outlines.
package mesh

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/go-gl/mathgl/mgl64"
)

// VertexSize is the size in bytes of one marshalled Vertex.
const VertexSize = 24

// Vertex is a colored line endpoint. Matches the viewer shader's vertex input
// (location 0: vec3<f32> position, location 1: vec3<f32> color).
type Vertex struct {
	Position [3]float32
	Color    [3]float32
}

// Lines is a line list: vertices 2i and 2i+1 form segment i.
type Lines []Vertex

var (
	ColorGrid  = [3]float32{0.35, 0.35, 0.35}
	ColorX     = [3]float32{0.9, 0.2, 0.2}
	ColorY     = [3]float32{0.2, 0.9, 0.2}
	ColorZ     = [3]float32{0.2, 0.4, 0.95}
	ColorFocus = [3]float32{0.95, 0.8, 0.2}
)

func vertex(p mgl64.Vec3, color [3]float32) Vertex {
	return Vertex{Position: [3]float32{float32(p[0]), float32(p[1]), float32(p[2])}, Color: color}
}

// Segment appends one segment.
func (l Lines) Segment(a, b mgl64.Vec3, color [3]float32) Lines {
	return append(l, vertex(a, color), vertex(b, color))
}

// Grid returns a square grid on the XZ plane centered on the origin.
//
// Parameters:
//   - halfExtent: distance from the center to each edge
//   - divisions: number of cells along each side (values < 1 mean 1)
//   - color: line color
//
// Returns:
//   - Lines: 2 * (divisions + 1) segments
func Grid(halfExtent float64, divisions int, color [3]float32) Lines {
	divisions = max(divisions, 1)
	step := 2 * halfExtent / float64(divisions)
	lines := make(Lines, 0, 4*(divisions+1))
	for i := range divisions + 1 {
		offset := -halfExtent + float64(i)*step
		lines = lines.Segment(mgl64.Vec3{offset, 0, -halfExtent}, mgl64.Vec3{offset, 0, halfExtent}, color)
		lines = lines.Segment(mgl64.Vec3{-halfExtent, 0, offset}, mgl64.Vec3{halfExtent, 0, offset}, color)
	}
	return lines
}

// Axes returns the positive X, Y and Z axes in red, green and blue.
func Axes(length float64) Lines {
	var lines Lines
	lines = lines.Segment(mgl64.Vec3{}, mgl64.Vec3{length, 0, 0}, ColorX)
	lines = lines.Segment(mgl64.Vec3{}, mgl64.Vec3{0, length, 0}, ColorY)
	lines = lines.Segment(mgl64.Vec3{}, mgl64.Vec3{0, 0, length}, ColorZ)
	return lines
}

// boxEdges lists corner index pairs into common.Box3.Corners.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along Z
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along Y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along X
}

// Box returns the 12 edges of b. An empty box yields no lines.
func Box(b common.Box3, color [3]float32) Lines {
	if b.IsEmpty() {
		return nil
	}
	corners := b.Corners()
	lines := make(Lines, 0, 2*len(boxEdges))
	for _, e := range boxEdges {
		lines = lines.Segment(corners[e[0]], corners[e[1]], color)
	}
	return lines
}

// Bounds returns the smallest box containing every vertex.
func (l Lines) Bounds() common.Box3 {
	box := common.EmptyBox3()
	for _, v := range l {
		box = box.ExpandByPoint(mgl64.Vec3{float64(v.Position[0]), float64(v.Position[1]), float64(v.Position[2])})
	}
	return box
}

// Marshal packs the vertices little-endian for a GPU vertex buffer.
func (l Lines) Marshal() []byte {
	buf := make([]byte, len(l)*VertexSize)
	for i, v := range l {
		offset := i * VertexSize
		for j := range 3 {
			binary.LittleEndian.PutUint32(buf[offset+j*4:], math.Float32bits(v.Position[j]))
			binary.LittleEndian.PutUint32(buf[offset+12+j*4:], math.Float32bits(v.Color[j]))
		}
	}
	return buf
}
