// SPDX-License-Identifier: Unlicense OR MIT

// Package glfake implements gl.Functions by recording calls, for tests
// that run without a GL context.
package glfake

import (
	"strings"
	"sync"

	"golang.org/x/exp/slices"

	"gioui.org/gldevice/internal/gl"
	"gioui.org/gldevice/internal/thread"
)

// Config describes the simulated context.
type Config struct {
	// Version is the GL_VERSION string. Empty means "3.3".
	Version    string
	Extensions []string
	// Missing lists entry points the driver does not export.
	Missing []string
	// Ints overrides glGetIntegerv results.
	Ints map[gl.Enum]int
	// FramebufferStatus is returned by glCheckFramebufferStatus. Zero
	// means complete.
	FramebufferStatus gl.Enum
}

// Call is a recorded GL call.
type Call struct {
	Name   string
	Args   []any
	Thread int64
}

// Upload is a recorded glUniform4fv call.
type Upload struct {
	Program gl.Program
	Name    string
	Values  []float32
}

var _ gl.Functions = (*Functions)(nil)

// Functions is a fake GL context.
type Functions struct {
	*gl.Resolution

	cfg  Config
	exts []string

	mu      sync.Mutex
	calls   []Call
	uploads []Upload
	nextID  uint

	program  gl.Program
	sources  map[gl.Shader]string
	attached map[gl.Program][]gl.Shader
	uniforms map[gl.Program]map[string]int
}

// New returns a fake context described by cfg.
func New(cfg Config) *Functions {
	if cfg.Version == "" {
		cfg.Version = "3.3"
	}
	if cfg.FramebufferStatus == 0 {
		cfg.FramebufferStatus = gl.FRAMEBUFFER_COMPLETE
	}
	f := &Functions{
		cfg:      cfg,
		exts:     slices.Clone(cfg.Extensions),
		sources:  make(map[gl.Shader]string),
		attached: make(map[gl.Program][]gl.Shader),
		uniforms: make(map[gl.Program]map[string]int),
	}
	ver, es, err := gl.ParseGLVersion(cfg.Version)
	if err != nil {
		panic(err)
	}
	f.Resolution = gl.Resolve(ver, es, f.exts, func(name string) bool {
		return !slices.Contains(cfg.Missing, name)
	})
	return f
}

func (f *Functions) record(name string, args ...any) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Name: name, Args: args, Thread: thread.ID()})
	f.mu.Unlock()
}

// Calls returns a copy of the recorded calls.
func (f *Functions) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// Named returns the recorded calls with the given name.
func (f *Functions) Named(name string) []Call {
	var calls []Call
	for _, c := range f.Calls() {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}

// Count returns the number of recorded calls with the given name.
func (f *Functions) Count(name string) int {
	return len(f.Named(name))
}

// Reset forgets the recorded calls and uploads.
func (f *Functions) Reset() {
	f.mu.Lock()
	f.calls = nil
	f.uploads = nil
	f.mu.Unlock()
}

// Uploads returns the recorded uniform uploads of the named uniform.
func (f *Functions) Uploads(name string) []Upload {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ups []Upload
	for _, u := range f.uploads {
		if u.Name == name {
			ups = append(ups, u)
		}
	}
	return ups
}

func (f *Functions) newID() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return f.nextID
}

func (f *Functions) ActiveTexture(texture gl.Enum) { f.record("ActiveTexture", texture) }

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	f.record("AttachShader", p, s)
	f.mu.Lock()
	f.attached[p] = append(f.attached[p], s)
	f.mu.Unlock()
}

func (f *Functions) BeginQuery(target gl.Enum, query gl.Query) { f.record("BeginQuery", target, query) }

func (f *Functions) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	f.record("BindAttribLocation", p, a, name)
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) { f.record("BindBuffer", target, b) }

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	f.record("BindFramebuffer", target, fb)
}

func (f *Functions) BindRenderbuffer(target gl.Enum, rb gl.Renderbuffer) {
	f.record("BindRenderbuffer", target, rb)
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) { f.record("BindTexture", target, t) }

func (f *Functions) BlendColor(r, g, b, a float32) { f.record("BlendColor", r, g, b, a) }

func (f *Functions) BlendEquationSeparate(modeRGB, modeAlpha gl.Enum) {
	f.record("BlendEquationSeparate", modeRGB, modeAlpha)
}

func (f *Functions) BlendEquationSeparatei(buf int, modeRGB, modeAlpha gl.Enum) {
	f.record("BlendEquationSeparatei", buf, modeRGB, modeAlpha)
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) {
	f.record("BlendFuncSeparate", srcRGB, dstRGB, srcA, dstA)
}

func (f *Functions) BlendFuncSeparatei(buf int, srcRGB, dstRGB, srcA, dstA gl.Enum) {
	f.record("BlendFuncSeparatei", buf, srcRGB, dstRGB, srcA, dstA)
}

func (f *Functions) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask, filter gl.Enum) {
	f.record("BlitFramebuffer", sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1, mask, filter)
}

func (f *Functions) BufferData(target gl.Enum, size int, usage gl.Enum, data []byte) {
	f.record("BufferData", target, size, usage)
}

func (f *Functions) BufferSubData(target gl.Enum, offset int, src []byte) {
	f.record("BufferSubData", target, offset, len(src))
}

func (f *Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	f.record("CheckFramebufferStatus", target)
	return f.cfg.FramebufferStatus
}

func (f *Functions) Clear(mask gl.Enum) { f.record("Clear", mask) }

func (f *Functions) ClearColor(r, g, b, a float32) { f.record("ClearColor", r, g, b, a) }

func (f *Functions) ClearDepthf(d float32) { f.record("ClearDepthf", d) }

func (f *Functions) ClearStencil(s int) { f.record("ClearStencil", s) }

func (f *Functions) ColorMask(r, g, b, a bool) { f.record("ColorMask", r, g, b, a) }

func (f *Functions) CompileShader(s gl.Shader) { f.record("CompileShader", s) }

func (f *Functions) CreateBuffer() gl.Buffer {
	b := gl.Buffer{V: f.newID()}
	f.record("CreateBuffer", b)
	return b
}

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	fb := gl.Framebuffer{V: f.newID()}
	f.record("CreateFramebuffer", fb)
	return fb
}

func (f *Functions) CreateProgram() gl.Program {
	p := gl.Program{V: f.newID()}
	f.record("CreateProgram", p)
	return p
}

func (f *Functions) CreateQuery() gl.Query {
	q := gl.Query{V: f.newID()}
	f.record("CreateQuery", q)
	return q
}

func (f *Functions) CreateRenderbuffer() gl.Renderbuffer {
	rb := gl.Renderbuffer{V: f.newID()}
	f.record("CreateRenderbuffer", rb)
	return rb
}

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	s := gl.Shader{V: f.newID()}
	f.record("CreateShader", ty, s)
	return s
}

func (f *Functions) CreateTexture() gl.Texture {
	t := gl.Texture{V: f.newID()}
	f.record("CreateTexture", t)
	return t
}

func (f *Functions) CreateVertexArray() gl.VertexArray {
	a := gl.VertexArray{V: f.newID()}
	f.record("CreateVertexArray", a)
	return a
}

func (f *Functions) BindVertexArray(a gl.VertexArray) { f.record("BindVertexArray", a) }

func (f *Functions) DeleteVertexArray(a gl.VertexArray) { f.record("DeleteVertexArray", a) }

func (f *Functions) CullFace(mode gl.Enum) { f.record("CullFace", mode) }

func (f *Functions) DeleteBuffer(v gl.Buffer) { f.record("DeleteBuffer", v) }

func (f *Functions) DeleteFramebuffer(v gl.Framebuffer) { f.record("DeleteFramebuffer", v) }

func (f *Functions) DeleteProgram(p gl.Program) { f.record("DeleteProgram", p) }

func (f *Functions) DeleteQuery(query gl.Query) { f.record("DeleteQuery", query) }

func (f *Functions) DeleteRenderbuffer(r gl.Renderbuffer) { f.record("DeleteRenderbuffer", r) }

func (f *Functions) DeleteShader(s gl.Shader) { f.record("DeleteShader", s) }

func (f *Functions) DeleteTexture(v gl.Texture) { f.record("DeleteTexture", v) }

func (f *Functions) DepthFunc(fn gl.Enum) { f.record("DepthFunc", fn) }

func (f *Functions) DepthMask(mask bool) { f.record("DepthMask", mask) }

func (f *Functions) Disable(cap gl.Enum) { f.record("Disable", cap) }

func (f *Functions) DisableVertexAttribArray(a gl.Attrib) { f.record("DisableVertexAttribArray", a) }

func (f *Functions) DrawArrays(mode gl.Enum, first, count int) {
	f.record("DrawArrays", mode, first, count)
}

func (f *Functions) DrawBuffers(bufs []gl.Enum) { f.record("DrawBuffers", slices.Clone(bufs)) }

func (f *Functions) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.record("DrawElements", mode, count, ty, offset)
}

func (f *Functions) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) {
	f.record("DrawElementsInstanced", mode, count, ty, offset, instances)
}

func (f *Functions) DrawElementsInstancedBaseInstance(mode gl.Enum, count int, ty gl.Enum, offset, instances, baseInstance int) {
	f.record("DrawElementsInstancedBaseInstance", mode, count, ty, offset, instances, baseInstance)
}

func (f *Functions) DrawRangeElementsBaseVertex(mode gl.Enum, start, end, count int, ty gl.Enum, offset, baseVertex int) {
	f.record("DrawRangeElementsBaseVertex", mode, start, end, count, ty, offset, baseVertex)
}

func (f *Functions) Enable(cap gl.Enum) { f.record("Enable", cap) }

func (f *Functions) EnableVertexAttribArray(a gl.Attrib) { f.record("EnableVertexAttribArray", a) }

func (f *Functions) EndQuery(target gl.Enum) { f.record("EndQuery", target) }

func (f *Functions) Finish() { f.record("Finish") }

func (f *Functions) Flush() { f.record("Flush") }

func (f *Functions) FramebufferRenderbuffer(target, attachment, renderbuffertarget gl.Enum, renderbuffer gl.Renderbuffer) {
	f.record("FramebufferRenderbuffer", target, attachment, renderbuffertarget, renderbuffer)
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	f.record("FramebufferTexture2D", target, attachment, texTarget, t, level)
}

func (f *Functions) FramebufferTexture2DMultisample(target, attachment, texTarget gl.Enum, t gl.Texture, level, samples int) {
	f.record("FramebufferTexture2DMultisample", target, attachment, texTarget, t, level, samples)
}

func (f *Functions) FrontFace(mode gl.Enum) { f.record("FrontFace", mode) }

func (f *Functions) GenerateMipmap(target gl.Enum) { f.record("GenerateMipmap", target) }

func (f *Functions) GetError() gl.Enum { return gl.NO_ERROR }

func (f *Functions) GetFloat(pname gl.Enum) float32 {
	if pname == gl.MAX_TEXTURE_MAX_ANISOTROPY_EXT {
		return 16
	}
	return 0
}

func (f *Functions) GetInteger(pname gl.Enum) int {
	if v, ok := f.cfg.Ints[pname]; ok {
		return v
	}
	switch pname {
	case gl.MAX_SAMPLES:
		return 8
	case gl.MAX_VERTEX_ATTRIBS:
		return 16
	case gl.MAX_DRAW_BUFFERS, gl.MAX_COLOR_ATTACHMENTS:
		return 4
	case gl.MAX_TEXTURE_SIZE:
		return 4096
	case gl.MAX_TEXTURE_IMAGE_UNITS:
		return 16
	case gl.NUM_EXTENSIONS:
		return len(f.exts)
	}
	return 0
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	if pname == gl.LINK_STATUS {
		return gl.TRUE
	}
	return 0
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string { return "" }

func (f *Functions) GetQueryObjectuiv(query gl.Query, pname gl.Enum) uint {
	f.record("GetQueryObjectuiv", query, pname)
	switch pname {
	case gl.QUERY_RESULT_AVAILABLE:
		return gl.TRUE
	case gl.QUERY_RESULT:
		return 42
	}
	return 0
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	if pname == gl.COMPILE_STATUS {
		return gl.TRUE
	}
	return 0
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string { return "" }

func (f *Functions) GetString(pname gl.Enum) string {
	switch pname {
	case gl.VERSION:
		return f.cfg.Version
	case gl.EXTENSIONS:
		return strings.Join(f.exts, " ")
	case gl.RENDERER:
		return "glfake"
	case gl.VENDOR:
		return "gioui.org"
	}
	return ""
}

func (f *Functions) GetStringi(pname gl.Enum, index int) string {
	if pname == gl.EXTENSIONS && index >= 0 && index < len(f.exts) {
		return f.exts[index]
	}
	return ""
}

// GetUniformLocation returns a location for every uniform name that
// occurs in the source of a shader attached to p.
func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	f.mu.Lock()
	defer f.mu.Unlock()
	found := false
	for _, s := range f.attached[p] {
		if strings.Contains(f.sources[s], name) {
			found = true
			break
		}
	}
	if !found {
		return gl.NoUniform
	}
	locs := f.uniforms[p]
	if locs == nil {
		locs = make(map[string]int)
		f.uniforms[p] = locs
	}
	loc, ok := locs[name]
	if !ok {
		loc = len(locs)
		locs[name] = loc
	}
	return gl.Uniform{V: loc}
}

func (f *Functions) InvalidateFramebuffer(target gl.Enum, attachments []gl.Enum) {
	f.record("InvalidateFramebuffer", target, slices.Clone(attachments))
}

func (f *Functions) LinkProgram(p gl.Program) { f.record("LinkProgram", p) }

func (f *Functions) PixelStorei(pname gl.Enum, param int) { f.record("PixelStorei", pname, param) }

func (f *Functions) PolygonOffset(factor, units float32) { f.record("PolygonOffset", factor, units) }

func (f *Functions) ReadBuffer(src gl.Enum) { f.record("ReadBuffer", src) }

// ReadPixels fills data with the row index of every pixel, so callers
// can check row order.
func (f *Functions) ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("ReadPixels", x, y, width, height, format, ty)
	stride := width * 4
	for row := 0; row < height && (row+1)*stride <= len(data); row++ {
		for i := row * stride; i < (row+1)*stride; i++ {
			data[i] = byte(row)
		}
	}
}

func (f *Functions) RenderbufferStorage(target, internalformat gl.Enum, width, height int) {
	f.record("RenderbufferStorage", target, internalformat, width, height)
}

func (f *Functions) RenderbufferStorageMultisample(target gl.Enum, samples int, internalformat gl.Enum, width, height int) {
	f.record("RenderbufferStorageMultisample", target, samples, internalformat, width, height)
}

func (f *Functions) ResolveMultisampleFramebuffer() { f.record("ResolveMultisampleFramebuffer") }

func (f *Functions) Scissor(x, y, width, height int) { f.record("Scissor", x, y, width, height) }

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	f.record("ShaderSource", s)
	f.mu.Lock()
	f.sources[s] = src
	f.mu.Unlock()
}

func (f *Functions) StencilFuncSeparate(face, fn gl.Enum, ref int, mask uint) {
	f.record("StencilFuncSeparate", face, fn, ref, mask)
}

func (f *Functions) StencilMask(mask uint) { f.record("StencilMask", mask) }

func (f *Functions) StencilOpSeparate(face, sfail, dpfail, dppass gl.Enum) {
	f.record("StencilOpSeparate", face, sfail, dpfail, dppass)
}

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum) {
	f.record("TexImage2D", target, level, internalFormat, width, height, format, ty)
}

func (f *Functions) TexParameterf(target, pname gl.Enum, param float32) {
	f.record("TexParameterf", target, pname, param)
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) {
	f.record("TexParameteri", target, pname, param)
}

func (f *Functions) TexSubImage2D(target gl.Enum, level, x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("TexSubImage2D", target, level, x, y, width, height, format, ty)
}

func (f *Functions) Uniform1i(dst gl.Uniform, v int) { f.record("Uniform1i", dst, v) }

func (f *Functions) Uniform4fv(dst gl.Uniform, src []float32) {
	f.record("Uniform4fv", dst, len(src))
	f.mu.Lock()
	defer f.mu.Unlock()
	name := ""
	for n, loc := range f.uniforms[f.program] {
		if loc == dst.V {
			name = n
			break
		}
	}
	f.uploads = append(f.uploads, Upload{Program: f.program, Name: name, Values: slices.Clone(src)})
}

func (f *Functions) UseProgram(p gl.Program) {
	f.record("UseProgram", p)
	f.mu.Lock()
	f.program = p
	f.mu.Unlock()
}

func (f *Functions) VertexAttribDivisor(dst gl.Attrib, divisor int) {
	f.record("VertexAttribDivisor", dst, divisor)
}

func (f *Functions) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.record("VertexAttribPointer", dst, size, ty, normalized, stride, offset)
}

func (f *Functions) Viewport(x, y, width, height int) { f.record("Viewport", x, y, width, height) }
