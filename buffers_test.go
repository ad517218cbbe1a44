package trigvk

import (
	"math"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestVertexLayout(t *testing.T) {
	assert.EqualValues(t, 8, vertexStride)
	assert.EqualValues(t, 0, unsafe.Offsetof(Vertex{}.Pos))

	bindings := vertexBindings()
	require.Len(t, bindings, 1)
	assert.Equal(t, vertexStride, bindings[0].Stride)

	attrs := vertexAttributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, vk.FormatR32g32Sfloat, attrs[0].Format)
	assert.EqualValues(t, 0, attrs[0].Location)
}

func TestVertexBytes(t *testing.T) {
	assert.Nil(t, vertexBytes(nil))

	data := vertexBytes([]Vertex{{Pos: mgl32.Vec2{1, -0.5}}, {Pos: mgl32.Vec2{0.25, 2}}})
	require.Len(t, data, 16)
	word := func(i int) float32 {
		return math.Float32frombits(uint32(data[i]) | uint32(data[i+1])<<8 | uint32(data[i+2])<<16 | uint32(data[i+3])<<24)
	}
	assert.Equal(t, float32(1), word(0))
	assert.Equal(t, float32(-0.5), word(4))
	assert.Equal(t, float32(0.25), word(8))
	assert.Equal(t, float32(2), word(12))
}

func TestPickMemoryType(t *testing.T) {
	hostVisible := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)
	coherent := vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit)
	local := vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	types := []vk.MemoryPropertyFlags{local, hostVisible, hostVisible | coherent, hostVisible | coherent | local}
	want := hostVisible | coherent

	i, ok := pickMemoryType(types, 0xF, want)
	require.True(t, ok)
	assert.EqualValues(t, 2, i)

	i, ok = pickMemoryType(types, 0x8, want)
	require.True(t, ok)
	assert.EqualValues(t, 3, i)

	_, ok = pickMemoryType(types, 0x3, want)
	assert.False(t, ok)
}
