package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxycam/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	lines := Grid(5, 10, ColorGrid)
	assert.Len(t, lines, 4*11)

	bounds := lines.Bounds()
	assert.Equal(t, mgl64.Vec3{-5, 0, -5}, bounds.Min)
	assert.Equal(t, mgl64.Vec3{5, 0, 5}, bounds.Max)

	assert.Len(t, Grid(1, 0, ColorGrid), 4*2, "at least one cell")
}

func TestAxes(t *testing.T) {
	lines := Axes(2)
	require.Len(t, lines, 6)
	assert.Equal(t, [3]float32{2, 0, 0}, lines[1].Position)
	assert.Equal(t, ColorY, lines[3].Color)
	assert.Equal(t, [3]float32{0, 0, 2}, lines[5].Position)
}

func TestBox(t *testing.T) {
	b := common.NewBox3(mgl64.Vec3{-1, 0, 2}, mgl64.Vec3{1, 3, 4})
	lines := Box(b, ColorFocus)
	require.Len(t, lines, 24)
	assert.Equal(t, b, lines.Bounds())

	for i := 0; i < len(lines); i += 2 {
		a, c := lines[i].Position, lines[i+1].Position
		differing := 0
		for j := range 3 {
			if a[j] != c[j] {
				differing++
			}
		}
		assert.Equal(t, 1, differing, "edge %d runs along one axis", i/2)
	}

	assert.Empty(t, Box(common.EmptyBox3(), ColorFocus))
}

func TestMarshal(t *testing.T) {
	lines := Lines{}.Segment(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{4, 5, 6}, ColorX)
	buf := lines.Marshal()
	require.Len(t, buf, 2*VertexSize)

	read := func(offset int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
	}
	assert.Equal(t, float32(1), read(0))
	assert.Equal(t, float32(3), read(8))
	assert.Equal(t, ColorX[0], read(12))
	assert.Equal(t, float32(4), read(VertexSize))
	assert.Equal(t, ColorX[2], read(VertexSize+20))
}
