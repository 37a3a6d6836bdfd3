// Package renderer draws line geometry through a WebGPU surface using a camera uniform.
package renderer

import (
	_ "embed"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxycam/engine/camera"
	"github.com/Carmen-Shannon/oxycam/engine/mesh"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

//go:embed assets/lines.wgsl
var lineShaderSource string

// PresentMode controls how frames are delivered to the display.
type PresentMode int

const (
	// PresentModeVSync waits for vertical blank.
	PresentModeVSync PresentMode = iota
	// PresentModeUncapped presents immediately.
	PresentModeUncapped
)

// Renderer draws a fixed line list from the point of view of a camera.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	Resize(width, height int)

	// SetLines replaces the drawn geometry.
	//
	// Parameters:
	//   - lines: the line list to draw
	//
	// Returns:
	//   - error: if the vertex buffer cannot be created
	SetLines(lines mesh.Lines) error

	// Render uploads the camera uniform and draws one frame.
	//
	// Parameters:
	//   - cam: the camera whose view-projection is used
	//
	// Returns:
	//   - error: if the surface texture cannot be acquired or the frame cannot be encoded
	Render(cam camera.Camera) error

	// Release frees every GPU resource held by the renderer.
	Release()
}

// renderer is the wgpu implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat        wgpu.TextureFormat
	presentMode          wgpu.PresentMode
	forceFallbackAdapter bool
	clearColor           wgpu.Color

	pipeline     *wgpu.RenderPipeline
	bindGroup    *wgpu.BindGroup
	cameraBuffer *wgpu.Buffer
	vertexBuffer *wgpu.Buffer
	vertexCount  uint32

	width, height int
}

var _ Renderer = &renderer{}

// NewRenderer creates the device, configures the surface and builds the line pipeline.
//
// Parameters:
//   - surfaceDescriptor: the window's surface descriptor
//   - width, height: initial framebuffer size in pixels
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the ready renderer
//   - error: if no adapter or device is available or the pipeline cannot be built
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("renderer requires a surface descriptor")
	}
	runtime.LockOSThread()

	r := &renderer{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}
	for _, option := range options {
		option(r)
	}
	r.surface = r.instance.CreateSurface(surfaceDescriptor)

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: r.forceFallbackAdapter,
		CompatibleSurface:    r.surface,
	})
	if err != nil {
		r.Release()
		return nil, errors.Wrap(err, "request adapter")
	}
	r.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "oxycam device"})
	if err != nil {
		r.Release()
		return nil, errors.Wrap(err, "request device")
	}
	r.device = device
	r.queue = device.GetQueue()

	capabilities := r.surface.GetCapabilities(r.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		r.Release()
		return nil, errors.New("surface reports no formats")
	}
	r.surfaceFormat = capabilities.Formats[0]
	r.Resize(width, height)

	if err := r.createPipeline(); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

// createPipeline builds the camera uniform buffer, its bind group and the line-list pipeline.
func (r *renderer) createPipeline() error {
	uniform := camera.GPUCameraUniform{}
	cameraBuffer, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Camera Uniform Buffer",
		Size:  uint64(uniform.Size()),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return errors.Wrap(err, "create camera buffer")
	}
	r.cameraBuffer = cameraBuffer

	module, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "lines",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: camera.GPUCameraUniformSource + "\n" + lineShaderSource,
		},
	})
	if err != nil {
		return errors.Wrap(err, "create shader module")
	}
	defer module.Release()

	layout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: uint64(uniform.Size()),
			},
		}},
	})
	if err != nil {
		return errors.Wrap(err, "create bind group layout")
	}
	defer layout.Release()

	r.bindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Camera Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  r.cameraBuffer,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		return errors.Wrap(err, "create bind group")
	}

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "lines",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return errors.Wrap(err, "create pipeline layout")
	}
	defer pipelineLayout.Release()

	r.pipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "lines Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: mesh.VertexSize,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	return errors.Wrap(err, "create render pipeline")
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width, r.height = width, height
	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: r.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
}

func (r *renderer) SetLines(lines mesh.Lines) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.vertexBuffer != nil {
		r.vertexBuffer.Release()
		r.vertexBuffer = nil
		r.vertexCount = 0
	}
	if len(lines) == 0 {
		return nil
	}

	data := lines.Marshal()
	buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Line Vertex Buffer",
		Size:  uint64(len(data)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return errors.Wrap(err, "create vertex buffer")
	}
	r.queue.WriteBuffer(buf, 0, data)
	r.vertexBuffer = buf
	r.vertexCount = uint32(len(lines))
	return nil
}

func (r *renderer) Render(cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	uniform := camera.NewGPUCameraUniform(cam)
	r.queue.WriteBuffer(r.cameraBuffer, 0, uniform.Marshal())

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return errors.Wrap(err, "acquire surface texture")
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return errors.Wrap(err, "create surface view")
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return errors.Wrap(err, "create command encoder")
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: r.clearColor,
		}},
	})
	if r.vertexBuffer != nil {
		pass.SetPipeline(r.pipeline)
		pass.SetBindGroup(0, r.bindGroup, nil)
		pass.SetVertexBuffer(0, r.vertexBuffer, 0, wgpu.WholeSize)
		pass.Draw(r.vertexCount, 1, 0, 0)
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return errors.Wrap(err, "finish frame")
	}
	defer commandBuffer.Release()

	r.queue.Submit(commandBuffer)
	r.surface.Present()
	return nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.vertexBuffer != nil {
		r.vertexBuffer.Release()
		r.vertexBuffer = nil
	}
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
	if r.bindGroup != nil {
		r.bindGroup.Release()
		r.bindGroup = nil
	}
	if r.cameraBuffer != nil {
		r.cameraBuffer.Release()
		r.cameraBuffer = nil
	}
	r.queue = nil
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
	if r.adapter != nil {
		r.adapter.Release()
		r.adapter = nil
	}
	if r.surface != nil {
		r.surface.Release()
		r.surface = nil
	}
	if r.instance != nil {
		r.instance.Release()
		r.instance = nil
	}
}
