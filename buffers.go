package trigvk

import (
	"unsafe"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// VertexBuffer is a host visible, host coherent buffer rewritten every frame.
type VertexBuffer struct {
	device   vk.Device
	buffer   vk.Buffer
	memory   vk.DeviceMemory
	size     vk.DeviceSize
	capacity int
}

// pickMemoryType returns the first allowed type whose flags include all of want.
func pickMemoryType(types []vk.MemoryPropertyFlags, typeBits uint32, want vk.MemoryPropertyFlags) (uint32, bool) {
	for i, flags := range types {
		if i >= 32 {
			break
		}
		if typeBits&(1<<uint(i)) != 0 && flags&want == want {
			return uint32(i), true
		}
	}
	return 0, false
}

// NewVertexBuffer reserves room for capacity vertices.
func NewVertexBuffer(device vk.Device, memoryTypes []vk.MemoryPropertyFlags, capacity int) (*VertexBuffer, error) {
	size := vk.DeviceSize(capacity) * vk.DeviceSize(vertexStride)

	var buffer vk.Buffer
	ret := vk.CreateBuffer(device, &vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit),
		SharingMode: vk.SharingModeExclusive,
	}, nil, &buffer)
	if err := NewError(ret); err != nil {
		return nil, errors.Wrap(err, "create buffer")
	}

	var memReqs vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(device, buffer, &memReqs)
	memReqs.Deref()

	want := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	memType, ok := pickMemoryType(memoryTypes, memReqs.MemoryTypeBits, want)
	if !ok {
		vk.DestroyBuffer(device, buffer, nil)
		return nil, errors.New("no host visible and coherent memory type for vertex buffer")
	}

	var memory vk.DeviceMemory
	ret = vk.AllocateMemory(device, &vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memReqs.Size,
		MemoryTypeIndex: memType,
	}, nil, &memory)
	if err := NewError(ret); err != nil {
		vk.DestroyBuffer(device, buffer, nil)
		return nil, errors.Wrap(err, "allocate memory")
	}

	ret = vk.BindBufferMemory(device, buffer, memory, 0)
	if err := NewError(ret); err != nil {
		vk.FreeMemory(device, memory, nil)
		vk.DestroyBuffer(device, buffer, nil)
		return nil, errors.Wrap(err, "bind memory")
	}

	return &VertexBuffer{
		device:   device,
		buffer:   buffer,
		memory:   memory,
		size:     size,
		capacity: capacity,
	}, nil
}

// Capacity is the number of vertices the buffer holds.
func (b *VertexBuffer) Capacity() int {
	return b.capacity
}

// Update maps the whole buffer, copies vertices to its start and unmaps.
func (b *VertexBuffer) Update(vertices []Vertex) error {
	if len(vertices) > b.capacity {
		return errors.Wrapf(ErrCapacityExceeded, "%d > %d", len(vertices), b.capacity)
	}
	var pData unsafe.Pointer
	ret := vk.MapMemory(b.device, b.memory, 0, b.size, 0, &pData)
	if err := NewError(ret); err != nil {
		return errors.Wrap(err, "map vertex memory")
	}
	data := vertexBytes(vertices)
	n := vk.Memcopy(pData, data)
	vk.UnmapMemory(b.device, b.memory)
	if n != len(data) {
		return errors.Errorf("copied %d of %d vertex bytes", n, len(data))
	}
	return nil
}

func (b *VertexBuffer) Destroy() {
	vk.DestroyBuffer(b.device, b.buffer, nil)
	vk.FreeMemory(b.device, b.memory, nil)
}

// vertexBytes views the vertex slice as raw bytes without copying.
func vertexBytes(vertices []Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*int(vertexStride))
}

func (c *GraphicsContext) createVertexBuffer() error {
	buffer, err := NewVertexBuffer(c.device.handle, c.device.memoryTypeFlags(), c.cfg.Points)
	if err != nil {
		return err
	}
	c.vertices = buffer
	c.release.push("vertex buffer", buffer.Destroy)
	return nil
}
