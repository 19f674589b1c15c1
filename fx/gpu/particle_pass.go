package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/blaster/fx/core"
	"github.com/gekko3d/blaster/fx/shaders"
	"github.com/gekko3d/blaster/logging"
)

// QuadVertex matches the per-vertex input of particle.wgsl: xy corner, zw uv.
type QuadVertex struct {
	Corner [4]float32
}

var quadVertices = [core.QuadVertexCount]QuadVertex{
	{Corner: [4]float32{-0.5, -0.5, 0, 1}},
	{Corner: [4]float32{0.5, -0.5, 1, 1}},
	{Corner: [4]float32{0.5, 0.5, 1, 0}},
	{Corner: [4]float32{-0.5, -0.5, 0, 1}},
	{Corner: [4]float32{0.5, 0.5, 1, 0}},
	{Corner: [4]float32{-0.5, 0.5, 0, 0}},
}

// TextureSource supplies RGBA8 texels for a texture handle.
type TextureSource interface {
	TextureRGBA(handle core.TextureHandle) (texels []byte, width, height uint32, ok bool)
}

type spriteTexture struct {
	texture   *wgpu.Texture
	view      *wgpu.TextureView
	bindGroup *wgpu.BindGroup
}

func (s *spriteTexture) release() {
	if s.bindGroup != nil {
		s.bindGroup.Release()
	}
	if s.view != nil {
		s.view.Release()
	}
	if s.texture != nil {
		s.texture.Release()
	}
}

// InstanceBuffer is a per-group vertex buffer of instance records with a CPU
// shadow copy that the simulation writes into.
type InstanceBuffer struct {
	label   string
	records []core.InstanceRecord
	buffer  *wgpu.Buffer
	queue   *wgpu.Queue
}

func (b *InstanceBuffer) Records() []core.InstanceRecord { return b.records }

func (b *InstanceBuffer) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
	b.records = nil
}

func (b *InstanceBuffer) upload(count uint32) {
	if count == 0 || b.buffer == nil {
		return
	}
	b.queue.WriteBuffer(b.buffer, 0, wgpu.ToBytes(b.records[:count]))
}

// ParticlePass draws every particle group with one instanced draw per group.
// It also allocates the groups' instance buffers.
type ParticlePass struct {
	Device     *wgpu.Device
	Queue      *wgpu.Queue
	Pipeline   *wgpu.RenderPipeline
	QuadBuffer *wgpu.Buffer
	Sampler    *wgpu.Sampler

	source   TextureSource
	textures map[core.TextureHandle]*spriteTexture
	fallback *spriteTexture
	logger   logging.Logger
}

func NewParticlePass(device *wgpu.Device, format wgpu.TextureFormat, source TextureSource, logger logging.Logger) (*ParticlePass, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "ParticleShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.ParticleWGSL},
	})
	if err != nil {
		return nil, err
	}
	defer shaderModule.Release()

	instanceAttrs := make([]wgpu.VertexAttribute, 0, 9)
	for i := 0; i < 9; i++ {
		instanceAttrs = append(instanceAttrs, wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(i * 16),
			ShaderLocation: uint32(i + 1),
		})
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "ParticlePipeline",
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(QuadVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
					},
				},
				{
					ArrayStride: uint64(unsafe.Sizeof(core.InstanceRecord{})),
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes:  instanceAttrs,
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					// Additive: particles only ever brighten what is behind them.
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOne,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOne,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	quadBuffer, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "ParticleQuadBuffer",
		Contents: wgpu.ToBytes(quadVertices[:]),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		pipeline.Release()
		return nil, err
	}

	sampler, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		quadBuffer.Release()
		pipeline.Release()
		return nil, err
	}

	p := &ParticlePass{
		Device:     device,
		Queue:      device.GetQueue(),
		Pipeline:   pipeline,
		QuadBuffer: quadBuffer,
		Sampler:    sampler,
		source:     source,
		textures:   make(map[core.TextureHandle]*spriteTexture),
		logger:     logging.OrNop(logger),
	}

	p.fallback, err = p.createTexture("ParticleWhite", []byte{0xff, 0xff, 0xff, 0xff}, 1, 1)
	if err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

// Allocate implements core.InstanceAllocator.
func (p *ParticlePass) Allocate(name string, capacity int) (core.InstanceBuffer, error) {
	size := uint64(capacity) * uint64(unsafe.Sizeof(core.InstanceRecord{}))
	buf, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "ParticleInstances:" + name,
		Size:  size,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	return &InstanceBuffer{
		label:   name,
		records: make([]core.InstanceRecord, capacity),
		buffer:  buf,
		queue:   p.Queue,
	}, nil
}

func (p *ParticlePass) createTexture(label string, texels []byte, width, height uint32) (*spriteTexture, error) {
	extent := wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}
	tex, err := p.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          extent,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}
	p.Queue.WriteTexture(tex.AsImageCopy(), texels, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  width * 4,
		RowsPerImage: height,
	}, &extent)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}

	bg, err := p.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: p.Pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: p.Sampler},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return nil, err
	}
	return &spriteTexture{texture: tex, view: view, bindGroup: bg}, nil
}

// bindGroup returns the texture bind group for handle, uploading it on first
// use. Unknown or empty handles draw with a white texel.
func (p *ParticlePass) bindGroup(handle core.TextureHandle) *wgpu.BindGroup {
	if handle == "" || p.source == nil {
		return p.fallback.bindGroup
	}
	if t, ok := p.textures[handle]; ok {
		return t.bindGroup
	}

	texels, w, h, ok := p.source.TextureRGBA(handle)
	if !ok {
		p.logger.Warnf("particle texture %s not found; using white", handle)
		p.textures[handle] = p.fallback
		return p.fallback.bindGroup
	}
	t, err := p.createTexture(fmt.Sprintf("ParticleTexture:%s", handle), texels, w, h)
	if err != nil {
		p.logger.Errorf("particle texture %s upload failed: %v", handle, err)
		p.textures[handle] = p.fallback
		return p.fallback.bindGroup
	}
	p.textures[handle] = t
	return t.bindGroup
}

type passSubmitter struct {
	p    *ParticlePass
	pass *wgpu.RenderPassEncoder
}

func (s *passSubmitter) DrawInstanced(g *core.Group, vertexCount, instanceCount uint32) {
	buf, ok := g.Buffer().(*InstanceBuffer)
	if !ok || buf.buffer == nil {
		s.p.logger.Warnf("particle group %q has no GPU instance buffer", g.Name())
		return
	}
	buf.upload(instanceCount)

	s.pass.SetPipeline(s.p.Pipeline)
	s.pass.SetBindGroup(0, s.p.bindGroup(g.Texture()), nil)
	s.pass.SetVertexBuffer(0, s.p.QuadBuffer, 0, s.p.QuadBuffer.GetSize())
	s.pass.SetVertexBuffer(1, buf.buffer, 0, buf.buffer.GetSize())
	s.pass.Draw(vertexCount, instanceCount, 0, 0)
}

// Draw records one instanced draw per non-empty group of particles into pass
// and returns the number of draws.
func (p *ParticlePass) Draw(pass *wgpu.RenderPassEncoder, particles *core.Manager) int {
	return particles.Submit(&passSubmitter{p: p, pass: pass})
}

func (p *ParticlePass) Release() {
	for handle, t := range p.textures {
		if t != p.fallback {
			t.release()
		}
		delete(p.textures, handle)
	}
	if p.fallback != nil {
		p.fallback.release()
		p.fallback = nil
	}
	if p.Sampler != nil {
		p.Sampler.Release()
	}
	if p.QuadBuffer != nil {
		p.QuadBuffer.Release()
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
	}
}
