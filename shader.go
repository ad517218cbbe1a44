package trigvk

//go:generate glslc shaders/shader.vert -o shaders/vert.spv
//go:generate glslc shaders/shader.frag -o shaders/frag.spv

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

const (
	VertexShaderFile   = "vert.spv"
	FragmentShaderFile = "frag.spv"

	spirvMagic = 0x07230203
	// magic, version, generator, bound, schema
	spirvHeaderWords = 5
)

// ShaderProgram is the vertex/fragment module pair of the line pipeline.
// Modules only live until the pipeline has been created.
type ShaderProgram struct {
	vertex   vk.ShaderModule
	fragment vk.ShaderModule
}

// loadSPIRV reads a SPIR-V binary and checks its header.
func loadSPIRV(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrBadShader, "%s: %v", path, err)
	}
	if err := validateSPIRV(data); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return data, nil
}

func validateSPIRV(data []byte) error {
	if len(data)%4 != 0 {
		return errors.Wrapf(ErrBadShader, "size %d is not a multiple of 4", len(data))
	}
	if len(data) < spirvHeaderWords*4 {
		return errors.Wrapf(ErrBadShader, "size %d is shorter than the header", len(data))
	}
	if magic := binary.LittleEndian.Uint32(data); magic != spirvMagic {
		return errors.Wrapf(ErrBadShader, "bad magic %#08x", magic)
	}
	return nil
}

// sliceUint32 reinterprets validated SPIR-V bytes as the words Vulkan expects.
func sliceUint32(data []byte) []uint32 {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), len(data)/4)
}

func LoadShaderModule(device vk.Device, data []byte) (vk.ShaderModule, error) {
	var module vk.ShaderModule
	ret := vk.CreateShaderModule(device, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(data)),
		PCode:    sliceUint32(data),
	}, nil, &module)
	if isError(ret) {
		return vk.NullShaderModule, NewError(ret)
	}
	return module, nil
}

func (c *GraphicsContext) loadShaderProgram() (*ShaderProgram, error) {
	var program ShaderProgram
	var err error
	load := func(name string) (vk.ShaderModule, error) {
		data, err := loadSPIRV(filepath.Join(c.cfg.ShaderDir, name))
		if err != nil {
			return vk.NullShaderModule, err
		}
		return LoadShaderModule(c.device.handle, data)
	}

	if program.vertex, err = load(VertexShaderFile); err != nil {
		return nil, err
	}
	if program.fragment, err = load(FragmentShaderFile); err != nil {
		program.destroy(c.device.handle)
		return nil, err
	}
	return &program, nil
}

func (p *ShaderProgram) destroy(device vk.Device) {
	if p.vertex != vk.NullShaderModule {
		vk.DestroyShaderModule(device, p.vertex, nil)
		p.vertex = vk.NullShaderModule
	}
	if p.fragment != vk.NullShaderModule {
		vk.DestroyShaderModule(device, p.fragment, nil)
		p.fragment = vk.NullShaderModule
	}
}
