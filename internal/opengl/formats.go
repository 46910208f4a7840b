// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"errors"
	"fmt"

	"gioui.org/gldevice/internal/caps"
	"gioui.org/gldevice/internal/driver"
	"gioui.org/gldevice/internal/fbo"
	"gioui.org/gldevice/internal/gl"
)

// textureTriple holds the type settings for
// a TexImage2D call.
type textureTriple struct {
	internalFormat gl.Enum
	format         gl.Enum
	typ            gl.Enum
	// pixelSize is the size in bytes of one pixel of upload data.
	pixelSize int
}

func tripleFor(c *caps.Caps, f driver.SurfaceFormat) (textureTriple, error) {
	gl3 := c.Version[0] >= 3
	switch f {
	case driver.FormatRGBA8:
		if c.ES && !gl3 {
			return textureTriple{gl.RGBA, gl.RGBA, gl.UNSIGNED_BYTE, 4}, nil
		}
		return textureTriple{gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, 4}, nil
	case driver.FormatSRGBA8:
		switch {
		case gl3:
			return textureTriple{gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE, 4}, nil
		case c.HasExtension("GL_EXT_sRGB"):
			return textureTriple{gl.SRGB_ALPHA_EXT, gl.SRGB_ALPHA_EXT, gl.UNSIGNED_BYTE, 4}, nil
		}
		return textureTriple{}, errors.New("no sRGB texture formats found")
	case driver.FormatR8:
		if !gl3 {
			// R8, RED not supported on OpenGL ES 2.0.
			return textureTriple{gl.LUMINANCE, gl.LUMINANCE, gl.UNSIGNED_BYTE, 1}, nil
		}
		return textureTriple{gl.R8, gl.RED, gl.UNSIGNED_BYTE, 1}, nil
	case driver.FormatRGB565:
		if !gl3 {
			return textureTriple{gl.RGB, gl.RGB, gl.UNSIGNED_SHORT_5_6_5, 2}, nil
		}
		return textureTriple{gl.RGB565, gl.RGB, gl.UNSIGNED_SHORT_5_6_5, 2}, nil
	case driver.FormatRGBA16F:
		switch {
		case gl3:
			return textureTriple{gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT, 8}, nil
		case c.HasExtension("GL_OES_texture_half_float"):
			return textureTriple{gl.RGBA, gl.RGBA, gl.HALF_FLOAT_OES, 8}, nil
		}
	case driver.FormatRGBA32F:
		switch {
		case gl3:
			return textureTriple{gl.RGBA32F, gl.RGBA, gl.FLOAT, 16}, nil
		case c.HasExtension("GL_OES_texture_float"):
			return textureTriple{gl.RGBA, gl.RGBA, gl.FLOAT, 16}, nil
		}
	case driver.FormatR32F:
		if gl3 {
			return textureTriple{gl.R32F, gl.RED, gl.FLOAT, 4}, nil
		}
	default:
		return textureTriple{}, fmt.Errorf("unknown surface format %d", f)
	}
	return textureTriple{}, fmt.Errorf("surface format %d not supported by the context", f)
}

// depthFormat maps a depth format to the renderbuffer storage format and
// whether the store carries stencil bits.
func depthFormat(ops fbo.Ops, f driver.DepthFormat) (gl.Enum, bool) {
	switch f {
	case driver.Depth16:
		return ops.DepthFormat(false, false)
	case driver.Depth24:
		return ops.DepthFormat(true, false)
	case driver.Depth24Stencil8:
		return ops.DepthFormat(true, true)
	default:
		panic("unsupported depth format")
	}
}

func toGLBlendFactor(f driver.BlendFactor) gl.Enum {
	switch f {
	case driver.BlendOne:
		return gl.ONE
	case driver.BlendZero:
		return gl.ZERO
	case driver.BlendSrcColor:
		return gl.SRC_COLOR
	case driver.BlendOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case driver.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case driver.BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case driver.BlendDstColor:
		return gl.DST_COLOR
	case driver.BlendOneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case driver.BlendDstAlpha:
		return gl.DST_ALPHA
	case driver.BlendOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case driver.BlendFactorColor:
		return gl.CONSTANT_COLOR
	case driver.BlendOneMinusFactorColor:
		return gl.ONE_MINUS_CONSTANT_COLOR
	case driver.BlendSrcAlphaSaturate:
		return gl.SRC_ALPHA_SATURATE
	default:
		panic("unsupported blend factor")
	}
}

func toGLBlendOp(op driver.BlendOp) gl.Enum {
	switch op {
	case driver.BlendAdd:
		return gl.FUNC_ADD
	case driver.BlendSubtract:
		return gl.FUNC_SUBTRACT
	case driver.BlendReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	case driver.BlendMin:
		return gl.MIN
	case driver.BlendMax:
		return gl.MAX
	default:
		panic("unsupported blend operation")
	}
}

func toGLCompare(f driver.CompareFunc) gl.Enum {
	switch f {
	case driver.CompareAlways:
		return gl.ALWAYS
	case driver.CompareNever:
		return gl.NEVER
	case driver.CompareLess:
		return gl.LESS
	case driver.CompareLessEqual:
		return gl.LEQUAL
	case driver.CompareEqual:
		return gl.EQUAL
	case driver.CompareGreaterEqual:
		return gl.GEQUAL
	case driver.CompareGreater:
		return gl.GREATER
	case driver.CompareNotEqual:
		return gl.NOTEQUAL
	default:
		panic("unsupported compare function")
	}
}

func toGLStencilOp(op driver.StencilOp) gl.Enum {
	switch op {
	case driver.StencilKeep:
		return gl.KEEP
	case driver.StencilZero:
		return gl.ZERO
	case driver.StencilReplace:
		return gl.REPLACE
	case driver.StencilIncrement:
		return gl.INCR_WRAP
	case driver.StencilDecrement:
		return gl.DECR_WRAP
	case driver.StencilIncrementSaturate:
		return gl.INCR
	case driver.StencilDecrementSaturate:
		return gl.DECR
	case driver.StencilInvert:
		return gl.INVERT
	default:
		panic("unsupported stencil operation")
	}
}

func toGLDrawMode(mode driver.PrimitiveType) gl.Enum {
	switch mode {
	case driver.Triangles:
		return gl.TRIANGLES
	case driver.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case driver.Lines:
		return gl.LINES
	case driver.LineStrip:
		return gl.LINE_STRIP
	default:
		panic("unsupported draw mode")
	}
}

// vertexCount returns the number of vertices drawn for the given number
// of primitives.
func vertexCount(mode driver.PrimitiveType, primitives int) int {
	switch mode {
	case driver.Triangles:
		return primitives * 3
	case driver.TriangleStrip:
		return primitives + 2
	case driver.Lines:
		return primitives * 2
	case driver.LineStrip:
		return primitives + 1
	default:
		panic("unsupported draw mode")
	}
}

func toGLIndexType(s driver.IndexSize) (gl.Enum, int) {
	if s == driver.Index32 {
		return gl.UNSIGNED_INT, 4
	}
	return gl.UNSIGNED_SHORT, 2
}

// toGLElement returns the component count, type and normalization of a
// vertex element.
func toGLElement(f driver.ElementFormat) (int, gl.Enum, bool) {
	switch f {
	case driver.ElementFloat:
		return 1, gl.FLOAT, false
	case driver.ElementVec2:
		return 2, gl.FLOAT, false
	case driver.ElementVec3:
		return 3, gl.FLOAT, false
	case driver.ElementVec4:
		return 4, gl.FLOAT, false
	case driver.ElementColor:
		return 4, gl.UNSIGNED_BYTE, true
	case driver.ElementByte4:
		return 4, gl.UNSIGNED_BYTE, false
	case driver.ElementShort2:
		return 2, gl.SHORT, false
	case driver.ElementShort4:
		return 4, gl.SHORT, false
	case driver.ElementNormalizedShort2:
		return 2, gl.SHORT, true
	case driver.ElementNormalizedShort4:
		return 4, gl.SHORT, true
	case driver.ElementHalf2:
		return 2, gl.HALF_FLOAT, false
	case driver.ElementHalf4:
		return 4, gl.HALF_FLOAT, false
	default:
		panic("unsupported vertex element format")
	}
}

func toTexFilter(f driver.TextureFilter, mipmapped bool) (minFilter, magFilter int) {
	switch f {
	case driver.FilterNearest:
		return gl.NEAREST, gl.NEAREST
	case driver.FilterLinear:
		return gl.LINEAR, gl.LINEAR
	case driver.FilterLinearMipLinear, driver.FilterAnisotropic:
		if !mipmapped {
			return gl.LINEAR, gl.LINEAR
		}
		return gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR
	case driver.FilterNearestMipNearest:
		if !mipmapped {
			return gl.NEAREST, gl.NEAREST
		}
		return gl.NEAREST_MIPMAP_NEAREST, gl.NEAREST
	default:
		panic("unsupported texture filter")
	}
}

func toTexWrap(w driver.TextureWrap) int {
	switch w {
	case driver.WrapClamp:
		return gl.CLAMP_TO_EDGE
	case driver.WrapRepeat:
		return gl.REPEAT
	case driver.WrapMirror:
		return gl.MIRRORED_REPEAT
	default:
		panic("unsupported texture wrap")
	}
}
