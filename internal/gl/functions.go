// SPDX-License-Identifier: Unlicense OR MIT

package gl

// Family identifies a group of entry points that drivers export under
// alternative names. A loader binds every function of a family with the
// same suffix, or none of them.
type Family uint8

const (
	FamilyFramebufferObject Family = iota
	FamilyBlit
	FamilyMultisample
	FamilyMultisampleResolve
	FamilyMultisampleTexture
	FamilyInvalidate
	FamilyDrawBuffers
	FamilyReadBuffer
	FamilyInstancing
	FamilyBaseVertex
	FamilyBaseInstance
	FamilySeparateBlend
	FamilyQuery
	FamilyVertexArray

	familyCount
)

func (f Family) String() string {
	switch f {
	case FamilyFramebufferObject:
		return "framebuffer_object"
	case FamilyBlit:
		return "framebuffer_blit"
	case FamilyMultisample:
		return "framebuffer_multisample"
	case FamilyMultisampleResolve:
		return "multisample_resolve"
	case FamilyMultisampleTexture:
		return "multisampled_render_to_texture"
	case FamilyInvalidate:
		return "invalidate_framebuffer"
	case FamilyDrawBuffers:
		return "draw_buffers"
	case FamilyReadBuffer:
		return "read_buffer"
	case FamilyInstancing:
		return "instanced_arrays"
	case FamilyBaseVertex:
		return "draw_elements_base_vertex"
	case FamilyBaseInstance:
		return "base_instance"
	case FamilySeparateBlend:
		return "draw_buffers_blend"
	case FamilyQuery:
		return "occlusion_query"
	case FamilyVertexArray:
		return "vertex_array_object"
	default:
		return "unknown"
	}
}

// Functions is the native GL vocabulary. Entry points of a Family are
// only valid to call when Bound reports the family as available; the
// remaining entry points are assumed present in every supported context.
type Functions interface {
	// Bound reports the name suffix ("", "EXT", "ANGLE", ...) the family
	// was resolved with, and whether it was resolved at all.
	Bound(f Family) (suffix string, ok bool)

	ActiveTexture(texture Enum)
	AttachShader(p Program, s Shader)
	BeginQuery(target Enum, query Query)
	BindAttribLocation(p Program, a Attrib, name string)
	BindBuffer(target Enum, b Buffer)
	BindFramebuffer(target Enum, fb Framebuffer)
	BindRenderbuffer(target Enum, rb Renderbuffer)
	BindTexture(target Enum, t Texture)
	BindVertexArray(a VertexArray)
	BlendColor(r, g, b, a float32)
	BlendEquationSeparate(modeRGB, modeAlpha Enum)
	BlendEquationSeparatei(buf int, modeRGB, modeAlpha Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum)
	BlendFuncSeparatei(buf int, srcRGB, dstRGB, srcA, dstA Enum)
	BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask, filter Enum)
	BufferData(target Enum, size int, usage Enum, data []byte)
	BufferSubData(target Enum, offset int, src []byte)
	CheckFramebufferStatus(target Enum) Enum
	Clear(mask Enum)
	ClearColor(r, g, b, a float32)
	ClearDepthf(d float32)
	ClearStencil(s int)
	ColorMask(r, g, b, a bool)
	CompileShader(s Shader)
	CreateBuffer() Buffer
	CreateFramebuffer() Framebuffer
	CreateProgram() Program
	CreateQuery() Query
	CreateRenderbuffer() Renderbuffer
	CreateShader(ty Enum) Shader
	CreateTexture() Texture
	CreateVertexArray() VertexArray
	CullFace(mode Enum)
	DeleteBuffer(v Buffer)
	DeleteFramebuffer(v Framebuffer)
	DeleteProgram(p Program)
	DeleteQuery(query Query)
	DeleteRenderbuffer(r Renderbuffer)
	DeleteShader(s Shader)
	DeleteTexture(v Texture)
	DeleteVertexArray(a VertexArray)
	DepthFunc(f Enum)
	DepthMask(mask bool)
	Disable(cap Enum)
	DisableVertexAttribArray(a Attrib)
	DrawArrays(mode Enum, first, count int)
	DrawBuffers(bufs []Enum)
	DrawElements(mode Enum, count int, ty Enum, offset int)
	DrawElementsInstanced(mode Enum, count int, ty Enum, offset, instances int)
	DrawElementsInstancedBaseInstance(mode Enum, count int, ty Enum, offset, instances, baseInstance int)
	DrawRangeElementsBaseVertex(mode Enum, start, end, count int, ty Enum, offset, baseVertex int)
	Enable(cap Enum)
	EnableVertexAttribArray(a Attrib)
	EndQuery(target Enum)
	Finish()
	Flush()
	FramebufferRenderbuffer(target, attachment, renderbuffertarget Enum, renderbuffer Renderbuffer)
	FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int)
	FramebufferTexture2DMultisample(target, attachment, texTarget Enum, t Texture, level, samples int)
	FrontFace(mode Enum)
	GenerateMipmap(target Enum)
	GetError() Enum
	GetFloat(pname Enum) float32
	GetInteger(pname Enum) int
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	GetQueryObjectuiv(query Query, pname Enum) uint
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	GetString(pname Enum) string
	GetStringi(pname Enum, index int) string
	GetUniformLocation(p Program, name string) Uniform
	InvalidateFramebuffer(target Enum, attachments []Enum)
	LinkProgram(p Program)
	PixelStorei(pname Enum, param int)
	PolygonOffset(factor, units float32)
	ReadBuffer(src Enum)
	ReadPixels(x, y, width, height int, format, ty Enum, data []byte)
	RenderbufferStorage(target, internalformat Enum, width, height int)
	RenderbufferStorageMultisample(target Enum, samples int, internalformat Enum, width, height int)
	ResolveMultisampleFramebuffer()
	Scissor(x, y, width, height int)
	ShaderSource(s Shader, src string)
	StencilFuncSeparate(face, fn Enum, ref int, mask uint)
	StencilMask(mask uint)
	StencilOpSeparate(face, sfail, dpfail, dppass Enum)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum)
	TexParameterf(target, pname Enum, param float32)
	TexParameteri(target, pname Enum, param int)
	TexSubImage2D(target Enum, level, x, y, width, height int, format, ty Enum, data []byte)
	Uniform1i(dst Uniform, v int)
	Uniform4fv(dst Uniform, src []float32)
	UseProgram(p Program)
	VertexAttribDivisor(dst Attrib, divisor int)
	VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int)
	Viewport(x, y, width, height int)
}
