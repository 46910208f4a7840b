// SPDX-License-Identifier: Unlicense OR MIT

package driver

import (
	"errors"
	"image"

	"gioui.org/gldevice/internal/caps"
	"gioui.org/gldevice/internal/dispose"
)

// Device is a GL device. Every method except DisposeResource and the
// Create methods must be called on the thread that created the device.
type Device interface {
	Caps() *caps.Caps
	// Resize records the size of the default framebuffer.
	Resize(size image.Point)

	CreateTexture(desc TextureDesc) (Texture, error)
	CreateBuffer(typ BufferType, dynamic bool, size int) (Buffer, error)
	CreateShader(src ShaderSource) (Shader, error)
	CreateQuery() (Query, error)
	CreateRenderTarget(desc RenderTargetDesc) (RenderTarget, error)
	DeleteRenderTarget(rt RenderTarget)

	// ApplyRenderTargets binds the framebuffer for set, creating it on
	// first use. An empty set selects the default framebuffer. It returns
	// the first bound target or nil.
	ApplyRenderTargets(set []Binding) RenderTarget
	// ResolveRenderTargets resolves multisampled targets of the current
	// set and regenerates their mipmaps.
	ResolveRenderTargets()
	ApplyVertexAttributes(shaders ShaderPair, bindings []VertexBinding, baseVertex int) error

	SetViewport(r image.Rectangle)
	SetScissor(r image.Rectangle)
	SetBlendState(s BlendState)
	SetDepthStencilState(s DepthStencilState)
	SetRasterizerState(s RasterizerState)
	SetShaders(p ShaderPair)
	SetUniforms(stage ShaderStage, vec4s []float32)
	SetTexture(slot int, t Texture, s SamplerState)
	SetIndexBuffer(b Buffer, size IndexSize)
	SetVertexBuffers(bindings []VertexBinding)

	Clear(opts ClearOptions, color [4]float32, depth float32, stencil int)
	DrawPrimitives(mode PrimitiveType, first, primitives int) error
	DrawIndexedPrimitives(mode PrimitiveType, baseVertex, minVertex, numVertices, startIndex, primitives int) error
	DrawInstancedPrimitives(mode PrimitiveType, baseVertex, minVertex, numVertices, startIndex, primitives, instances int) error
	// ReadPixels reads RGBA8 pixels from the current framebuffer. Rows are
	// returned top to bottom.
	ReadPixels(r image.Rectangle, pixels []byte) error

	// DisposeResource may be called from any goroutine.
	DisposeResource(h dispose.Handle)
	// Present swaps buffers and is the disposal boundary.
	Present() error
	// Flush finishes all GL work and releases every pending resource.
	Flush()
	// Service runs creation requests queued by other goroutines.
	Service()
	Release()
}

// Texture is a GL texture. Release may be called from any goroutine.
type Texture interface {
	Size() image.Point
	Levels() int
	// Upload replaces the pixels of r in a mip level. Face selects the
	// cube face and is zero for 2D textures.
	Upload(face, level int, r image.Rectangle, pixels []byte)
	Handle() dispose.Handle
	Release()
}

// RenderTarget is a texture that can be bound as a color attachment.
type RenderTarget interface {
	Texture
	SampleCount() int
	Usage() RenderTargetUsage
}

type Buffer interface {
	Upload(offset int, data []byte)
	Handle() dispose.Handle
	Release()
}

type Shader interface {
	Stage() ShaderStage
	Release()
}

// Query is an occlusion query.
type Query interface {
	Begin()
	End()
	// Result returns the number of samples passed, and whether the result
	// is available.
	Result() (uint, bool)
	Release()
}

// Binding selects a render target and the cube face or slice to render
// to.
type Binding struct {
	Target RenderTarget
	Slice  int
}

// MaxRenderTargets is the maximum length of a binding set.
const MaxRenderTargets = 4

type ShaderPair struct {
	Vertex   Shader
	Fragment Shader
}

type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
)

// ShaderSource is GLSL source and the reflection data needed to bind its
// inputs.
type ShaderSource struct {
	Stage ShaderStage
	GLSL  string
	// Inputs maps vertex attribute names to element usages. Only vertex
	// shaders have inputs.
	Inputs []InputLocation
	// Uniforms is the name of the vec4 array holding the stage's
	// constants, and Size its length in vec4s.
	Uniforms     string
	UniformsSize int
	Samplers     []SamplerLocation
}

type InputLocation struct {
	Name       string
	Usage      VertexUsage
	UsageIndex int
}

type SamplerLocation struct {
	Name string
	Slot int
}

type TextureDesc struct {
	Format SurfaceFormat
	Width  int
	Height int
	// Levels is the number of mip levels. Zero means 1.
	Levels int
	Cube   bool
}

type RenderTargetDesc struct {
	Width       int
	Height      int
	Mipmap      bool
	ColorFormat SurfaceFormat
	DepthFormat DepthFormat
	SampleCount int
	Usage       RenderTargetUsage
	Cube        bool
}

type SurfaceFormat uint8

const (
	FormatRGBA8 SurfaceFormat = iota
	FormatSRGBA8
	FormatR8
	FormatRGB565
	FormatRGBA16F
	FormatRGBA32F
	FormatR32F
)

type DepthFormat uint8

const (
	DepthNone DepthFormat = iota
	Depth16
	Depth24
	Depth24Stencil8
)

type RenderTargetUsage uint8

const (
	// DiscardContents allows the device to drop a target's multisample
	// contents once resolved.
	DiscardContents RenderTargetUsage = iota
	PreserveContents
)

type BufferType uint8

const (
	BufferVertex BufferType = iota
	BufferIndex
)

type IndexSize uint8

const (
	Index16 IndexSize = iota
	Index32
)

type PrimitiveType uint8

const (
	Triangles PrimitiveType = iota
	TriangleStrip
	Lines
	LineStrip
)

// VertexLayout describes the vertices of a buffer. Layouts are compared
// by pointer.
type VertexLayout struct {
	Stride   int
	Elements []VertexElement
}

type VertexElement struct {
	Offset     int
	Format     ElementFormat
	Usage      VertexUsage
	UsageIndex int
}

type ElementFormat uint8

const (
	ElementFloat ElementFormat = iota
	ElementVec2
	ElementVec3
	ElementVec4
	// ElementColor is 4 normalized unsigned bytes.
	ElementColor
	ElementByte4
	ElementShort2
	ElementShort4
	ElementNormalizedShort2
	ElementNormalizedShort4
	ElementHalf2
	ElementHalf4
)

type VertexUsage uint8

const (
	UsagePosition VertexUsage = iota
	UsageColor
	UsageTexCoord
	UsageNormal
	UsageTangent
	UsageBinormal
	UsageBlendIndices
	UsageBlendWeight
	UsagePointSize
)

type VertexBinding struct {
	Buffer       Buffer
	Layout       *VertexLayout
	VertexOffset int
	// InstanceFrequency is the number of instances drawn per attribute
	// advance. Zero means per vertex.
	InstanceFrequency int
}

type BlendFactor uint8

const (
	BlendOne BlendFactor = iota
	BlendZero
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstColor
	BlendOneMinusDstColor
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendFactorColor
	BlendOneMinusFactorColor
	BlendSrcAlphaSaturate
)

type BlendOp uint8

const (
	BlendAdd BlendOp = iota
	BlendSubtract
	BlendReverseSubtract
	BlendMin
	BlendMax
)

type ColorMask uint8

const (
	MaskRed ColorMask = 1 << iota
	MaskGreen
	MaskBlue
	MaskAlpha

	MaskAll = MaskRed | MaskGreen | MaskBlue | MaskAlpha
)

type TargetBlend struct {
	Enable             bool
	SrcColor, DstColor BlendFactor
	SrcAlpha, DstAlpha BlendFactor
	ColorOp, AlphaOp   BlendOp
	WriteMask          ColorMask
}

// BlendState is the blend configuration. Targets[0] applies to every
// attachment unless the context supports separate blend states.
type BlendState struct {
	Targets [MaxRenderTargets]TargetBlend
	Factor  [4]float32
}

type CompareFunc uint8

const (
	CompareAlways CompareFunc = iota
	CompareNever
	CompareLess
	CompareLessEqual
	CompareEqual
	CompareGreaterEqual
	CompareGreater
	CompareNotEqual
)

type StencilOp uint8

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncrement
	StencilDecrement
	StencilIncrementSaturate
	StencilDecrementSaturate
	StencilInvert
)

type StencilFace struct {
	Func                  CompareFunc
	Fail, DepthFail, Pass StencilOp
}

type DepthStencilState struct {
	DepthTest  bool
	DepthWrite bool
	DepthFunc  CompareFunc

	Stencil   bool
	Ref       int
	ReadMask  uint
	WriteMask uint
	Front     StencilFace
	// Back is used when TwoSided is set, otherwise Front applies to both
	// faces.
	Back     StencilFace
	TwoSided bool
}

type CullMode uint8

const (
	CullNone CullMode = iota
	// CullClockwise culls faces that are clockwise on screen.
	CullClockwise
	CullCounterClockwise
)

type RasterizerState struct {
	Cull            CullMode
	Scissor         bool
	DepthBias       float32
	SlopeScaleDepth float32
}

type TextureFilter uint8

const (
	FilterLinear TextureFilter = iota
	FilterNearest
	FilterLinearMipLinear
	FilterNearestMipNearest
	FilterAnisotropic
)

type TextureWrap uint8

const (
	WrapClamp TextureWrap = iota
	WrapRepeat
	WrapMirror
)

type SamplerState struct {
	Filter        TextureFilter
	WrapU, WrapV  TextureWrap
	MaxAnisotropy int
	// MaxMipLevel limits sampling to levels up to and including it.
	// Zero means unlimited.
	MaxMipLevel int
}

type ClearOptions uint8

const (
	ClearColor ClearOptions = 1 << iota
	ClearDepth
	ClearStencil
)

var (
	ErrDeviceReleased        = errors.New("device released")
	ErrInstancingUnsupported = errors.New("instanced drawing is not supported by the context")
)
