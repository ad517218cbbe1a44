package trigvk

import (
	"unsafe"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

const vertexStride = uint32(unsafe.Sizeof(Vertex{}))

// CorePipeline is the line strip pipeline and its (empty) layout.
type CorePipeline struct {
	layout   vk.PipelineLayout
	pipeline vk.Pipeline
}

type PipelineBuilder struct {
	_shaderStages         []vk.PipelineShaderStageCreateInfo
	_vertexBindings       []vk.VertexInputBindingDescription
	_vertexAttributes     []vk.VertexInputAttributeDescription
	_inputAssembly        vk.PipelineInputAssemblyStateCreateInfo
	_rasterizer           vk.PipelineRasterizationStateCreateInfo
	_colorBlendAttachment vk.PipelineColorBlendAttachmentState
	_multisampling        vk.PipelineMultisampleStateCreateInfo
	_dynamicStates        []vk.DynamicState
}

// NewPipelineBuilder describes a line strip over Vertex positions with no
// depth test and no blending.
func NewPipelineBuilder(program *ShaderProgram) *PipelineBuilder {
	pb := PipelineBuilder{}

	pb._shaderStages = []vk.PipelineShaderStageCreateInfo{
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageVertexBit,
			Module: program.vertex,
			PName:  safeString("main"),
		},
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageFragmentBit,
			Module: program.fragment,
			PName:  safeString("main"),
		},
	}

	pb._vertexBindings = vertexBindings()
	pb._vertexAttributes = vertexAttributes()

	pb._inputAssembly = vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               vk.PrimitiveTopologyLineStrip,
		PrimitiveRestartEnable: vk.False,
	}

	pb._rasterizer = vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             vk.PolygonModeFill,
		CullMode:                vk.CullModeFlags(vk.CullModeNone),
		FrontFace:               vk.FrontFaceClockwise,
		DepthBiasEnable:         vk.False,
		LineWidth:               1.0,
	}

	pb._multisampling = vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: vk.SampleCount1Bit,
		SampleShadingEnable:  vk.False,
		MinSampleShading:     1.0,
	}

	pb._colorBlendAttachment = vk.PipelineColorBlendAttachmentState{
		BlendEnable: vk.False,
		ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit |
			vk.ColorComponentBBit | vk.ColorComponentABit),
	}

	// Viewport and scissor are set per frame so a swapchain rebuild keeps the pipeline.
	pb._dynamicStates = []vk.DynamicState{vk.DynamicStateViewport, vk.DynamicStateScissor}

	return &pb
}

// vertexBindings is a single per-vertex binding of one Vertex stride.
func vertexBindings() []vk.VertexInputBindingDescription {
	return []vk.VertexInputBindingDescription{{
		Binding:   0,
		Stride:    vertexStride,
		InputRate: vk.VertexInputRateVertex,
	}}
}

// vertexAttributes maps Vertex.Pos to shader location 0.
func vertexAttributes() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{{
		Location: 0,
		Binding:  0,
		Format:   vk.FormatR32g32Sfloat,
		Offset:   uint32(unsafe.Offsetof(Vertex{}.Pos)),
	}}
}

func (p *PipelineBuilder) BuildPipeline(device vk.Device, renderPass vk.RenderPass, layout vk.PipelineLayout) (vk.Pipeline, error) {
	vertexInput := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   uint32(len(p._vertexBindings)),
		PVertexBindingDescriptions:      p._vertexBindings,
		VertexAttributeDescriptionCount: uint32(len(p._vertexAttributes)),
		PVertexAttributeDescriptions:    p._vertexAttributes,
	}

	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	blendState := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		LogicOp:         vk.LogicOpCopy,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{p._colorBlendAttachment},
	}

	dynamicState := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(p._dynamicStates)),
		PDynamicStates:    p._dynamicStates,
	}

	info := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(p._shaderStages)),
		PStages:             p._shaderStages,
		PVertexInputState:   &vertexInput,
		PInputAssemblyState: &p._inputAssembly,
		PViewportState:      &viewportState,
		PRasterizationState: &p._rasterizer,
		PMultisampleState:   &p._multisampling,
		PColorBlendState:    &blendState,
		PDynamicState:       &dynamicState,
		Layout:              layout,
		RenderPass:          renderPass,
		Subpass:             0,
	}

	pipelines := []vk.Pipeline{vk.NullPipeline}
	ret := vk.CreateGraphicsPipelines(device, nil, 1, []vk.GraphicsPipelineCreateInfo{info}, nil, pipelines)
	if err := NewError(ret); err != nil {
		return vk.NullPipeline, err
	}
	return pipelines[0], nil
}

// createPipeline loads the shaders, builds the pipeline once and drops the
// shader modules again.
func (c *GraphicsContext) createPipeline() error {
	program, err := c.loadShaderProgram()
	if err != nil {
		return errors.Wrap(err, "load shaders")
	}
	defer program.destroy(c.device.handle)

	device := c.device.handle
	var layout vk.PipelineLayout
	ret := vk.CreatePipelineLayout(device, &vk.PipelineLayoutCreateInfo{
		SType: vk.StructureTypePipelineLayoutCreateInfo,
	}, nil, &layout)
	if err := NewError(ret); err != nil {
		return errors.Wrap(err, "create pipeline layout")
	}
	c.pipeline = &CorePipeline{layout: layout}
	c.release.push("pipeline layout", func() {
		vk.DestroyPipelineLayout(device, layout, nil)
	})

	pipeline, err := NewPipelineBuilder(program).BuildPipeline(device, c.render_pass, layout)
	if err != nil {
		return errors.Wrap(err, "create graphics pipeline")
	}
	c.pipeline.pipeline = pipeline
	c.release.push("pipeline", func() {
		vk.DestroyPipeline(device, pipeline, nil)
	})
	return nil
}
