// SPDX-License-Identifier: Unlicense OR MIT

package gldevice

import (
	"gioui.org/gldevice/internal/caps"
	"gioui.org/gldevice/internal/dispose"
	"gioui.org/gldevice/internal/driver"
)

// An API carries the API specific resources needed to create a Device.
type API = driver.API

// OpenGL selects the OpenGL backend.
type OpenGL = driver.OpenGL

type (
	Device       = driver.Device
	Caps         = caps.Caps
	Features     = caps.Features
	Texture      = driver.Texture
	RenderTarget = driver.RenderTarget
	Buffer       = driver.Buffer
	Shader       = driver.Shader
	Query        = driver.Query

	// Handle names a native object for deferred deletion.
	Handle       = dispose.Handle
	ResourceKind = dispose.Kind

	Binding           = driver.Binding
	ShaderPair        = driver.ShaderPair
	ShaderStage       = driver.ShaderStage
	ShaderSource      = driver.ShaderSource
	InputLocation     = driver.InputLocation
	SamplerLocation   = driver.SamplerLocation
	TextureDesc       = driver.TextureDesc
	RenderTargetDesc  = driver.RenderTargetDesc
	SurfaceFormat     = driver.SurfaceFormat
	DepthFormat       = driver.DepthFormat
	RenderTargetUsage = driver.RenderTargetUsage
	BufferType        = driver.BufferType
	IndexSize         = driver.IndexSize
	PrimitiveType     = driver.PrimitiveType

	VertexLayout  = driver.VertexLayout
	VertexElement = driver.VertexElement
	ElementFormat = driver.ElementFormat
	VertexUsage   = driver.VertexUsage
	VertexBinding = driver.VertexBinding

	BlendFactor       = driver.BlendFactor
	BlendOp           = driver.BlendOp
	ColorMask         = driver.ColorMask
	TargetBlend       = driver.TargetBlend
	BlendState        = driver.BlendState
	CompareFunc       = driver.CompareFunc
	StencilOp         = driver.StencilOp
	StencilFace       = driver.StencilFace
	DepthStencilState = driver.DepthStencilState
	CullMode          = driver.CullMode
	RasterizerState   = driver.RasterizerState
	TextureFilter     = driver.TextureFilter
	TextureWrap       = driver.TextureWrap
	SamplerState      = driver.SamplerState
	ClearOptions      = driver.ClearOptions
)

// MaxRenderTargets is the maximum length of a binding set.
const MaxRenderTargets = driver.MaxRenderTargets

const (
	StageVertex   = driver.StageVertex
	StageFragment = driver.StageFragment
)

const (
	FormatRGBA8   = driver.FormatRGBA8
	FormatSRGBA8  = driver.FormatSRGBA8
	FormatR8      = driver.FormatR8
	FormatRGB565  = driver.FormatRGB565
	FormatRGBA16F = driver.FormatRGBA16F
	FormatRGBA32F = driver.FormatRGBA32F
	FormatR32F    = driver.FormatR32F
)

const (
	DepthNone       = driver.DepthNone
	Depth16         = driver.Depth16
	Depth24         = driver.Depth24
	Depth24Stencil8 = driver.Depth24Stencil8
)

const (
	DiscardContents  = driver.DiscardContents
	PreserveContents = driver.PreserveContents
)

const (
	BufferVertex = driver.BufferVertex
	BufferIndex  = driver.BufferIndex
	Index16      = driver.Index16
	Index32      = driver.Index32
)

const (
	Triangles     = driver.Triangles
	TriangleStrip = driver.TriangleStrip
	Lines         = driver.Lines
	LineStrip     = driver.LineStrip
)

const (
	ElementFloat            = driver.ElementFloat
	ElementVec2             = driver.ElementVec2
	ElementVec3             = driver.ElementVec3
	ElementVec4             = driver.ElementVec4
	ElementColor            = driver.ElementColor
	ElementByte4            = driver.ElementByte4
	ElementShort2           = driver.ElementShort2
	ElementShort4           = driver.ElementShort4
	ElementNormalizedShort2 = driver.ElementNormalizedShort2
	ElementNormalizedShort4 = driver.ElementNormalizedShort4
	ElementHalf2            = driver.ElementHalf2
	ElementHalf4            = driver.ElementHalf4
)

const (
	UsagePosition     = driver.UsagePosition
	UsageColor        = driver.UsageColor
	UsageTexCoord     = driver.UsageTexCoord
	UsageNormal       = driver.UsageNormal
	UsageTangent      = driver.UsageTangent
	UsageBinormal     = driver.UsageBinormal
	UsageBlendIndices = driver.UsageBlendIndices
	UsageBlendWeight  = driver.UsageBlendWeight
	UsagePointSize    = driver.UsagePointSize
)

const (
	BlendOne                 = driver.BlendOne
	BlendZero                = driver.BlendZero
	BlendSrcColor            = driver.BlendSrcColor
	BlendOneMinusSrcColor    = driver.BlendOneMinusSrcColor
	BlendSrcAlpha            = driver.BlendSrcAlpha
	BlendOneMinusSrcAlpha    = driver.BlendOneMinusSrcAlpha
	BlendDstColor            = driver.BlendDstColor
	BlendOneMinusDstColor    = driver.BlendOneMinusDstColor
	BlendDstAlpha            = driver.BlendDstAlpha
	BlendOneMinusDstAlpha    = driver.BlendOneMinusDstAlpha
	BlendFactorColor         = driver.BlendFactorColor
	BlendOneMinusFactorColor = driver.BlendOneMinusFactorColor
	BlendSrcAlphaSaturate    = driver.BlendSrcAlphaSaturate

	BlendAdd             = driver.BlendAdd
	BlendSubtract        = driver.BlendSubtract
	BlendReverseSubtract = driver.BlendReverseSubtract
	BlendMin             = driver.BlendMin
	BlendMax             = driver.BlendMax

	MaskRed   = driver.MaskRed
	MaskGreen = driver.MaskGreen
	MaskBlue  = driver.MaskBlue
	MaskAlpha = driver.MaskAlpha
	MaskAll   = driver.MaskAll
)

const (
	CompareAlways       = driver.CompareAlways
	CompareNever        = driver.CompareNever
	CompareLess         = driver.CompareLess
	CompareLessEqual    = driver.CompareLessEqual
	CompareEqual        = driver.CompareEqual
	CompareGreaterEqual = driver.CompareGreaterEqual
	CompareGreater      = driver.CompareGreater
	CompareNotEqual     = driver.CompareNotEqual

	StencilKeep              = driver.StencilKeep
	StencilZero              = driver.StencilZero
	StencilReplace           = driver.StencilReplace
	StencilIncrement         = driver.StencilIncrement
	StencilDecrement         = driver.StencilDecrement
	StencilIncrementSaturate = driver.StencilIncrementSaturate
	StencilDecrementSaturate = driver.StencilDecrementSaturate
	StencilInvert            = driver.StencilInvert
)

const (
	CullNone             = driver.CullNone
	CullClockwise        = driver.CullClockwise
	CullCounterClockwise = driver.CullCounterClockwise
)

const (
	FilterLinear            = driver.FilterLinear
	FilterNearest           = driver.FilterNearest
	FilterLinearMipLinear   = driver.FilterLinearMipLinear
	FilterNearestMipNearest = driver.FilterNearestMipNearest
	FilterAnisotropic       = driver.FilterAnisotropic

	WrapClamp  = driver.WrapClamp
	WrapRepeat = driver.WrapRepeat
	WrapMirror = driver.WrapMirror
)

const (
	ClearColor   = driver.ClearColor
	ClearDepth   = driver.ClearDepth
	ClearStencil = driver.ClearStencil
)

const (
	KindTexture      = dispose.KindTexture
	KindBuffer       = dispose.KindBuffer
	KindRenderbuffer = dispose.KindRenderbuffer
	KindShader       = dispose.KindShader
	KindProgram      = dispose.KindProgram
	KindFramebuffer  = dispose.KindFramebuffer
	KindQuery        = dispose.KindQuery
)

const (
	FeatureFramebufferObject  = caps.FeatureFramebufferObject
	FeatureBlit               = caps.FeatureBlit
	FeatureMultisample        = caps.FeatureMultisample
	FeatureInvalidate         = caps.FeatureInvalidate
	FeatureDrawBuffers        = caps.FeatureDrawBuffers
	FeatureReadBuffer         = caps.FeatureReadBuffer
	FeatureInstancing         = caps.FeatureInstancing
	FeatureBaseVertex         = caps.FeatureBaseVertex
	FeatureBaseInstance       = caps.FeatureBaseInstance
	FeatureSeparateBlend      = caps.FeatureSeparateBlend
	FeaturePackedDepthStencil = caps.FeaturePackedDepthStencil
	FeatureAnisotropy         = caps.FeatureAnisotropy
	FeatureSRGB               = caps.FeatureSRGB
	FeatureQuery              = caps.FeatureQuery
)
