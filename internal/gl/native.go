// SPDX-License-Identifier: Unlicense OR MIT

//go:build darwin || linux || freebsd

package gl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Native implements Functions on top of entry points bound with purego.
type Native struct {
	*Resolution

	glActiveTexture                     func(texture uint32)
	glAttachShader                      func(p, s uint32)
	glBeginQuery                        func(target, query uint32)
	glBindAttribLocation                func(p, a uint32, name string)
	glBindBuffer                        func(target, b uint32)
	glBindFramebuffer                   func(target, fb uint32)
	glBindRenderbuffer                  func(target, rb uint32)
	glBindTexture                       func(target, t uint32)
	glBlendColor                        func(r, g, b, a float32)
	glBlendEquationSeparate             func(modeRGB, modeAlpha uint32)
	glBlendEquationSeparatei            func(buf, modeRGB, modeAlpha uint32)
	glBlendFuncSeparate                 func(srcRGB, dstRGB, srcA, dstA uint32)
	glBlendFuncSeparatei                func(buf, srcRGB, dstRGB, srcA, dstA uint32)
	glBlitFramebuffer                   func(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int32, mask, filter uint32)
	glBufferData                        func(target uint32, size uintptr, data unsafe.Pointer, usage uint32)
	glBufferSubData                     func(target uint32, offset, size uintptr, data unsafe.Pointer)
	glCheckFramebufferStatus            func(target uint32) uint32
	glClear                             func(mask uint32)
	glClearColor                        func(r, g, b, a float32)
	glClearDepthf                       func(d float32)
	glClearDepth                        func(d float64)
	glClearStencil                      func(s int32)
	glColorMask                         func(r, g, b, a bool)
	glCompileShader                     func(s uint32)
	glCreateProgram                     func() uint32
	glCreateShader                      func(ty uint32) uint32
	glCullFace                          func(mode uint32)
	glDeleteBuffers                     func(n int32, v *uint32)
	glDeleteFramebuffers                func(n int32, v *uint32)
	glDeleteProgram                     func(p uint32)
	glDeleteQueries                     func(n int32, v *uint32)
	glDeleteRenderbuffers               func(n int32, v *uint32)
	glDeleteShader                      func(s uint32)
	glDeleteTextures                    func(n int32, v *uint32)
	glDepthFunc                         func(f uint32)
	glDepthMask                         func(mask bool)
	glDisable                           func(cap uint32)
	glDisableVertexAttribArray          func(a uint32)
	glDrawArrays                        func(mode uint32, first, count int32)
	glDrawBuffers                       func(n int32, bufs *uint32)
	glDrawElements                      func(mode uint32, count int32, ty uint32, offset uintptr)
	glDrawElementsInstanced             func(mode uint32, count int32, ty uint32, offset uintptr, instances int32)
	glDrawElementsInstancedBaseInstance func(mode uint32, count int32, ty uint32, offset uintptr, instances int32, baseInstance uint32)
	glDrawRangeElementsBaseVertex       func(mode, start, end uint32, count int32, ty uint32, offset uintptr, baseVertex int32)
	glEnable                            func(cap uint32)
	glEnableVertexAttribArray           func(a uint32)
	glEndQuery                          func(target uint32)
	glFinish                            func()
	glFlush                             func()
	glFramebufferRenderbuffer           func(target, attachment, rbTarget, rb uint32)
	glFramebufferTexture2D              func(target, attachment, texTarget, t uint32, level int32)
	glFramebufferTexture2DMultisample   func(target, attachment, texTarget, t uint32, level, samples int32)
	glFrontFace                         func(mode uint32)
	glGenBuffers                        func(n int32, v *uint32)
	glGenFramebuffers                   func(n int32, v *uint32)
	glGenQueries                        func(n int32, v *uint32)
	glGenVertexArrays                   func(n int32, v *uint32)
	glBindVertexArray                   func(a uint32)
	glDeleteVertexArrays                func(n int32, v *uint32)
	glGenRenderbuffers                  func(n int32, v *uint32)
	glGenTextures                       func(n int32, v *uint32)
	glGenerateMipmap                    func(target uint32)
	glGetError                          func() uint32
	glGetFloatv                         func(pname uint32, v *float32)
	glGetIntegerv                       func(pname uint32, v *int32)
	glGetProgramInfoLog                 func(p uint32, bufSize int32, length *int32, log unsafe.Pointer)
	glGetProgramiv                      func(p, pname uint32, v *int32)
	glGetQueryObjectuiv                 func(query, pname uint32, v *uint32)
	glGetShaderInfoLog                  func(s uint32, bufSize int32, length *int32, log unsafe.Pointer)
	glGetShaderiv                       func(s, pname uint32, v *int32)
	glGetString                         func(pname uint32) string
	glGetStringi                        func(pname, index uint32) string
	glGetUniformLocation                func(p uint32, name string) int32
	glInvalidateFramebuffer             func(target uint32, n int32, attachments *uint32)
	glLinkProgram                       func(p uint32)
	glPixelStorei                       func(pname uint32, param int32)
	glPolygonOffset                     func(factor, units float32)
	glReadBuffer                        func(src uint32)
	glReadPixels                        func(x, y, width, height int32, format, ty uint32, data unsafe.Pointer)
	glRenderbufferStorage               func(target, internalformat uint32, width, height int32)
	glRenderbufferStorageMultisample    func(target uint32, samples int32, internalformat uint32, width, height int32)
	glResolveMultisampleFramebuffer     func()
	glScissor                           func(x, y, width, height int32)
	glShaderSource                      func(s uint32, count int32, src **byte, length *int32)
	glStencilFuncSeparate               func(face, fn uint32, ref int32, mask uint32)
	glStencilMask                       func(mask uint32)
	glStencilOpSeparate                 func(face, sfail, dpfail, dppass uint32)
	glTexImage2D                        func(target uint32, level, internalFormat, width, height, border int32, format, ty uint32, data unsafe.Pointer)
	glTexParameterf                     func(target, pname uint32, param float32)
	glTexParameteri                     func(target, pname uint32, param int32)
	glTexSubImage2D                     func(target uint32, level, x, y, width, height int32, format, ty uint32, data unsafe.Pointer)
	glUniform1i                         func(dst, v int32)
	glUniform4fv                        func(dst, count int32, v *float32)
	glUseProgram                        func(p uint32)
	glVertexAttribDivisor               func(dst, divisor uint32)
	glVertexAttribPointer               func(dst uint32, size int32, ty uint32, normalized bool, stride int32, offset uintptr)
	glViewport                          func(x, y, width, height int32)
}

// Load binds the GL entry points of the current context.
// getProcAddress may be nil, in which case the symbols are looked up in
// the system GL library.
func Load(getProcAddress func(name string) unsafe.Pointer) (*Native, error) {
	lib, libErr := openLibrary()
	if getProcAddress == nil && libErr != nil {
		return nil, libErr
	}
	lookup := func(name string) uintptr {
		if getProcAddress != nil {
			if p := getProcAddress(name); p != nil {
				return uintptr(p)
			}
		}
		if lib == 0 {
			return 0
		}
		addr, err := purego.Dlsym(lib, name)
		if err != nil {
			return 0
		}
		return addr
	}
	f := new(Native)
	var missing []string
	must := func(fptr any, name string) {
		addr := lookup(name)
		if addr == 0 {
			missing = append(missing, name)
			return
		}
		purego.RegisterFunc(fptr, addr)
	}
	load := func(fptr any, name string) bool {
		addr := lookup(name)
		if addr == 0 {
			return false
		}
		purego.RegisterFunc(fptr, addr)
		return true
	}
	must(&f.glActiveTexture, "glActiveTexture")
	must(&f.glAttachShader, "glAttachShader")
	must(&f.glBindAttribLocation, "glBindAttribLocation")
	must(&f.glBindBuffer, "glBindBuffer")
	must(&f.glBindTexture, "glBindTexture")
	must(&f.glBlendColor, "glBlendColor")
	must(&f.glBlendEquationSeparate, "glBlendEquationSeparate")
	must(&f.glBlendFuncSeparate, "glBlendFuncSeparate")
	must(&f.glBufferData, "glBufferData")
	must(&f.glBufferSubData, "glBufferSubData")
	must(&f.glClear, "glClear")
	must(&f.glClearColor, "glClearColor")
	if !load(&f.glClearDepthf, "glClearDepthf") {
		must(&f.glClearDepth, "glClearDepth")
	}
	must(&f.glClearStencil, "glClearStencil")
	must(&f.glColorMask, "glColorMask")
	must(&f.glCompileShader, "glCompileShader")
	must(&f.glCreateProgram, "glCreateProgram")
	must(&f.glCreateShader, "glCreateShader")
	must(&f.glCullFace, "glCullFace")
	must(&f.glDeleteBuffers, "glDeleteBuffers")
	must(&f.glDeleteProgram, "glDeleteProgram")
	must(&f.glDeleteShader, "glDeleteShader")
	must(&f.glDeleteTextures, "glDeleteTextures")
	must(&f.glDepthFunc, "glDepthFunc")
	must(&f.glDepthMask, "glDepthMask")
	must(&f.glDisable, "glDisable")
	must(&f.glDisableVertexAttribArray, "glDisableVertexAttribArray")
	must(&f.glDrawArrays, "glDrawArrays")
	must(&f.glDrawElements, "glDrawElements")
	must(&f.glEnable, "glEnable")
	must(&f.glEnableVertexAttribArray, "glEnableVertexAttribArray")
	must(&f.glFinish, "glFinish")
	must(&f.glFlush, "glFlush")
	must(&f.glFrontFace, "glFrontFace")
	must(&f.glGenBuffers, "glGenBuffers")
	must(&f.glGenTextures, "glGenTextures")
	must(&f.glGetError, "glGetError")
	must(&f.glGetFloatv, "glGetFloatv")
	must(&f.glGetIntegerv, "glGetIntegerv")
	must(&f.glGetProgramInfoLog, "glGetProgramInfoLog")
	must(&f.glGetProgramiv, "glGetProgramiv")
	must(&f.glGetShaderInfoLog, "glGetShaderInfoLog")
	must(&f.glGetShaderiv, "glGetShaderiv")
	must(&f.glGetString, "glGetString")
	load(&f.glGetStringi, "glGetStringi")
	must(&f.glGetUniformLocation, "glGetUniformLocation")
	must(&f.glLinkProgram, "glLinkProgram")
	must(&f.glPixelStorei, "glPixelStorei")
	must(&f.glPolygonOffset, "glPolygonOffset")
	must(&f.glReadPixels, "glReadPixels")
	must(&f.glScissor, "glScissor")
	must(&f.glShaderSource, "glShaderSource")
	must(&f.glStencilFuncSeparate, "glStencilFuncSeparate")
	must(&f.glStencilMask, "glStencilMask")
	must(&f.glStencilOpSeparate, "glStencilOpSeparate")
	must(&f.glTexImage2D, "glTexImage2D")
	must(&f.glTexParameterf, "glTexParameterf")
	must(&f.glTexParameteri, "glTexParameteri")
	must(&f.glTexSubImage2D, "glTexSubImage2D")
	must(&f.glUniform1i, "glUniform1i")
	must(&f.glUniform4fv, "glUniform4fv")
	must(&f.glUseProgram, "glUseProgram")
	must(&f.glVertexAttribPointer, "glVertexAttribPointer")
	must(&f.glViewport, "glViewport")
	if len(missing) > 0 {
		return nil, fmt.Errorf("gl: missing entry points: %s", strings.Join(missing, ", "))
	}

	ver, es, err := ParseGLVersion(f.GetString(VERSION))
	if err != nil {
		return nil, err
	}
	exts := Extensions(f, ver, es)
	f.Resolution = Resolve(ver, es, exts, func(name string) bool {
		return lookup(name) != 0
	})
	f.bindFamilies(must)
	if len(missing) > 0 {
		return nil, fmt.Errorf("gl: missing entry points: %s", strings.Join(missing, ", "))
	}
	return f, nil
}

func (f *Native) bindFamilies(must func(fptr any, name string)) {
	bind := func(fam Family, fptrs ...any) {
		suffix, ok := f.Bound(fam)
		if !ok {
			return
		}
		for i, name := range EntryPoints(fam, suffix) {
			must(fptrs[i], name)
		}
	}
	bind(FamilyFramebufferObject,
		&f.glGenFramebuffers, &f.glBindFramebuffer, &f.glDeleteFramebuffers,
		&f.glGenRenderbuffers, &f.glBindRenderbuffer, &f.glDeleteRenderbuffers,
		&f.glRenderbufferStorage, &f.glFramebufferTexture2D,
		&f.glFramebufferRenderbuffer, &f.glCheckFramebufferStatus, &f.glGenerateMipmap)
	bind(FamilyBlit, &f.glBlitFramebuffer)
	bind(FamilyMultisample, &f.glRenderbufferStorageMultisample)
	bind(FamilyMultisampleResolve, &f.glResolveMultisampleFramebuffer)
	bind(FamilyMultisampleTexture, &f.glFramebufferTexture2DMultisample)
	bind(FamilyInvalidate, &f.glInvalidateFramebuffer)
	bind(FamilyDrawBuffers, &f.glDrawBuffers)
	bind(FamilyReadBuffer, &f.glReadBuffer)
	bind(FamilyInstancing, &f.glDrawElementsInstanced, &f.glVertexAttribDivisor)
	bind(FamilyBaseVertex, &f.glDrawRangeElementsBaseVertex)
	bind(FamilyBaseInstance, &f.glDrawElementsInstancedBaseInstance)
	bind(FamilySeparateBlend, &f.glBlendFuncSeparatei, &f.glBlendEquationSeparatei)
	bind(FamilyQuery, &f.glGenQueries, &f.glDeleteQueries, &f.glBeginQuery, &f.glEndQuery, &f.glGetQueryObjectuiv)
	bind(FamilyVertexArray, &f.glGenVertexArrays, &f.glBindVertexArray, &f.glDeleteVertexArrays)
}

func (f *Native) ActiveTexture(texture Enum) {
	f.glActiveTexture(uint32(texture))
}

func (f *Native) AttachShader(p Program, s Shader) {
	f.glAttachShader(uint32(p.V), uint32(s.V))
}

func (f *Native) BeginQuery(target Enum, query Query) {
	f.glBeginQuery(uint32(target), uint32(query.V))
}

func (f *Native) BindAttribLocation(p Program, a Attrib, name string) {
	f.glBindAttribLocation(uint32(p.V), uint32(a), name)
}

func (f *Native) BindBuffer(target Enum, b Buffer) {
	f.glBindBuffer(uint32(target), uint32(b.V))
}

func (f *Native) BindFramebuffer(target Enum, fb Framebuffer) {
	f.glBindFramebuffer(uint32(target), uint32(fb.V))
}

func (f *Native) BindRenderbuffer(target Enum, rb Renderbuffer) {
	f.glBindRenderbuffer(uint32(target), uint32(rb.V))
}

func (f *Native) BindTexture(target Enum, t Texture) {
	f.glBindTexture(uint32(target), uint32(t.V))
}

func (f *Native) BlendColor(r, g, b, a float32) {
	f.glBlendColor(r, g, b, a)
}

func (f *Native) BlendEquationSeparate(modeRGB, modeAlpha Enum) {
	f.glBlendEquationSeparate(uint32(modeRGB), uint32(modeAlpha))
}

func (f *Native) BlendEquationSeparatei(buf int, modeRGB, modeAlpha Enum) {
	f.glBlendEquationSeparatei(uint32(buf), uint32(modeRGB), uint32(modeAlpha))
}

func (f *Native) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum) {
	f.glBlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcA), uint32(dstA))
}

func (f *Native) BlendFuncSeparatei(buf int, srcRGB, dstRGB, srcA, dstA Enum) {
	f.glBlendFuncSeparatei(uint32(buf), uint32(srcRGB), uint32(dstRGB), uint32(srcA), uint32(dstA))
}

func (f *Native) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask, filter Enum) {
	f.glBlitFramebuffer(int32(sx0), int32(sy0), int32(sx1), int32(sy1), int32(dx0), int32(dy0), int32(dx1), int32(dy1), uint32(mask), uint32(filter))
}

func (f *Native) BufferData(target Enum, size int, usage Enum, data []byte) {
	f.glBufferData(uint32(target), uintptr(size), bytesPtr(data), uint32(usage))
}

func (f *Native) BufferSubData(target Enum, offset int, src []byte) {
	f.glBufferSubData(uint32(target), uintptr(offset), uintptr(len(src)), bytesPtr(src))
}

func (f *Native) CheckFramebufferStatus(target Enum) Enum {
	return Enum(f.glCheckFramebufferStatus(uint32(target)))
}

func (f *Native) Clear(mask Enum) {
	f.glClear(uint32(mask))
}

func (f *Native) ClearColor(r, g, b, a float32) {
	f.glClearColor(r, g, b, a)
}

func (f *Native) ClearDepthf(d float32) {
	if f.glClearDepthf != nil {
		f.glClearDepthf(d)
		return
	}
	f.glClearDepth(float64(d))
}

func (f *Native) ClearStencil(s int) {
	f.glClearStencil(int32(s))
}

func (f *Native) ColorMask(r, g, b, a bool) {
	f.glColorMask(r, g, b, a)
}

func (f *Native) CompileShader(s Shader) {
	f.glCompileShader(uint32(s.V))
}

func (f *Native) CreateBuffer() Buffer {
	var id uint32
	f.glGenBuffers(1, &id)
	return Buffer{uint(id)}
}

func (f *Native) CreateFramebuffer() Framebuffer {
	var id uint32
	f.glGenFramebuffers(1, &id)
	return Framebuffer{uint(id)}
}

func (f *Native) CreateProgram() Program {
	return Program{uint(f.glCreateProgram())}
}

func (f *Native) CreateQuery() Query {
	var id uint32
	f.glGenQueries(1, &id)
	return Query{uint(id)}
}

func (f *Native) CreateRenderbuffer() Renderbuffer {
	var id uint32
	f.glGenRenderbuffers(1, &id)
	return Renderbuffer{uint(id)}
}

func (f *Native) CreateShader(ty Enum) Shader {
	return Shader{uint(f.glCreateShader(uint32(ty)))}
}

func (f *Native) CreateTexture() Texture {
	var id uint32
	f.glGenTextures(1, &id)
	return Texture{uint(id)}
}

func (f *Native) CreateVertexArray() VertexArray {
	var id uint32
	f.glGenVertexArrays(1, &id)
	return VertexArray{uint(id)}
}

func (f *Native) BindVertexArray(a VertexArray) {
	f.glBindVertexArray(uint32(a.V))
}

func (f *Native) DeleteVertexArray(a VertexArray) {
	id := uint32(a.V)
	f.glDeleteVertexArrays(1, &id)
}

func (f *Native) CullFace(mode Enum) {
	f.glCullFace(uint32(mode))
}

func (f *Native) DeleteBuffer(v Buffer) {
	id := uint32(v.V)
	f.glDeleteBuffers(1, &id)
}

func (f *Native) DeleteFramebuffer(v Framebuffer) {
	id := uint32(v.V)
	f.glDeleteFramebuffers(1, &id)
}

func (f *Native) DeleteProgram(p Program) {
	f.glDeleteProgram(uint32(p.V))
}

func (f *Native) DeleteQuery(query Query) {
	id := uint32(query.V)
	f.glDeleteQueries(1, &id)
}

func (f *Native) DeleteRenderbuffer(r Renderbuffer) {
	id := uint32(r.V)
	f.glDeleteRenderbuffers(1, &id)
}

func (f *Native) DeleteShader(s Shader) {
	f.glDeleteShader(uint32(s.V))
}

func (f *Native) DeleteTexture(v Texture) {
	id := uint32(v.V)
	f.glDeleteTextures(1, &id)
}

func (f *Native) DepthFunc(fn Enum) {
	f.glDepthFunc(uint32(fn))
}

func (f *Native) DepthMask(mask bool) {
	f.glDepthMask(mask)
}

func (f *Native) Disable(cap Enum) {
	f.glDisable(uint32(cap))
}

func (f *Native) DisableVertexAttribArray(a Attrib) {
	f.glDisableVertexAttribArray(uint32(a))
}

func (f *Native) DrawArrays(mode Enum, first, count int) {
	f.glDrawArrays(uint32(mode), int32(first), int32(count))
}

func (f *Native) DrawBuffers(bufs []Enum) {
	if len(bufs) == 0 {
		return
	}
	ids := make([]uint32, len(bufs))
	for i, b := range bufs {
		ids[i] = uint32(b)
	}
	f.glDrawBuffers(int32(len(ids)), &ids[0])
}

func (f *Native) DrawElements(mode Enum, count int, ty Enum, offset int) {
	f.glDrawElements(uint32(mode), int32(count), uint32(ty), uintptr(offset))
}

func (f *Native) DrawElementsInstanced(mode Enum, count int, ty Enum, offset, instances int) {
	f.glDrawElementsInstanced(uint32(mode), int32(count), uint32(ty), uintptr(offset), int32(instances))
}

func (f *Native) DrawElementsInstancedBaseInstance(mode Enum, count int, ty Enum, offset, instances, baseInstance int) {
	f.glDrawElementsInstancedBaseInstance(uint32(mode), int32(count), uint32(ty), uintptr(offset), int32(instances), uint32(baseInstance))
}

func (f *Native) DrawRangeElementsBaseVertex(mode Enum, start, end, count int, ty Enum, offset, baseVertex int) {
	f.glDrawRangeElementsBaseVertex(uint32(mode), uint32(start), uint32(end), int32(count), uint32(ty), uintptr(offset), int32(baseVertex))
}

func (f *Native) Enable(cap Enum) {
	f.glEnable(uint32(cap))
}

func (f *Native) EnableVertexAttribArray(a Attrib) {
	f.glEnableVertexAttribArray(uint32(a))
}

func (f *Native) EndQuery(target Enum) {
	f.glEndQuery(uint32(target))
}

func (f *Native) Finish() {
	f.glFinish()
}

func (f *Native) Flush() {
	f.glFlush()
}

func (f *Native) FramebufferRenderbuffer(target, attachment, renderbuffertarget Enum, renderbuffer Renderbuffer) {
	f.glFramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(renderbuffertarget), uint32(renderbuffer.V))
}

func (f *Native) FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int) {
	f.glFramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), uint32(t.V), int32(level))
}

func (f *Native) FramebufferTexture2DMultisample(target, attachment, texTarget Enum, t Texture, level, samples int) {
	f.glFramebufferTexture2DMultisample(uint32(target), uint32(attachment), uint32(texTarget), uint32(t.V), int32(level), int32(samples))
}

func (f *Native) FrontFace(mode Enum) {
	f.glFrontFace(uint32(mode))
}

func (f *Native) GenerateMipmap(target Enum) {
	f.glGenerateMipmap(uint32(target))
}

func (f *Native) GetError() Enum {
	return Enum(f.glGetError())
}

func (f *Native) GetFloat(pname Enum) float32 {
	var v float32
	f.glGetFloatv(uint32(pname), &v)
	return v
}

func (f *Native) GetInteger(pname Enum) int {
	var v int32
	f.glGetIntegerv(uint32(pname), &v)
	return int(v)
}

func (f *Native) GetProgrami(p Program, pname Enum) int {
	var v int32
	f.glGetProgramiv(uint32(p.V), uint32(pname), &v)
	return int(v)
}

func (f *Native) GetProgramInfoLog(p Program) string {
	n := f.GetProgrami(p, INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	f.glGetProgramInfoLog(uint32(p.V), int32(len(buf)), nil, unsafe.Pointer(&buf[0]))
	return goString(buf)
}

func (f *Native) GetQueryObjectuiv(query Query, pname Enum) uint {
	var v uint32
	f.glGetQueryObjectuiv(uint32(query.V), uint32(pname), &v)
	return uint(v)
}

func (f *Native) GetShaderi(s Shader, pname Enum) int {
	var v int32
	f.glGetShaderiv(uint32(s.V), uint32(pname), &v)
	return int(v)
}

func (f *Native) GetShaderInfoLog(s Shader) string {
	n := f.GetShaderi(s, INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	f.glGetShaderInfoLog(uint32(s.V), int32(len(buf)), nil, unsafe.Pointer(&buf[0]))
	return goString(buf)
}

func (f *Native) GetString(pname Enum) string {
	return f.glGetString(uint32(pname))
}

func (f *Native) GetStringi(pname Enum, index int) string {
	if f.glGetStringi == nil {
		return ""
	}
	return f.glGetStringi(uint32(pname), uint32(index))
}

func (f *Native) GetUniformLocation(p Program, name string) Uniform {
	return Uniform{int(f.glGetUniformLocation(uint32(p.V), name))}
}

func (f *Native) InvalidateFramebuffer(target Enum, attachments []Enum) {
	if len(attachments) == 0 {
		return
	}
	ids := make([]uint32, len(attachments))
	for i, a := range attachments {
		ids[i] = uint32(a)
	}
	f.glInvalidateFramebuffer(uint32(target), int32(len(ids)), &ids[0])
}

func (f *Native) LinkProgram(p Program) {
	f.glLinkProgram(uint32(p.V))
}

func (f *Native) PixelStorei(pname Enum, param int) {
	f.glPixelStorei(uint32(pname), int32(param))
}

func (f *Native) PolygonOffset(factor, units float32) {
	f.glPolygonOffset(factor, units)
}

func (f *Native) ReadBuffer(src Enum) {
	f.glReadBuffer(uint32(src))
}

func (f *Native) ReadPixels(x, y, width, height int, format, ty Enum, data []byte) {
	f.glReadPixels(int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), bytesPtr(data))
}

func (f *Native) RenderbufferStorage(target, internalformat Enum, width, height int) {
	f.glRenderbufferStorage(uint32(target), uint32(internalformat), int32(width), int32(height))
}

func (f *Native) RenderbufferStorageMultisample(target Enum, samples int, internalformat Enum, width, height int) {
	f.glRenderbufferStorageMultisample(uint32(target), int32(samples), uint32(internalformat), int32(width), int32(height))
}

func (f *Native) ResolveMultisampleFramebuffer() {
	f.glResolveMultisampleFramebuffer()
}

func (f *Native) Scissor(x, y, width, height int) {
	f.glScissor(int32(x), int32(y), int32(width), int32(height))
}

func (f *Native) ShaderSource(s Shader, src string) {
	b := append([]byte(src), 0)
	p := &b[0]
	n := int32(len(src))
	f.glShaderSource(uint32(s.V), 1, &p, &n)
}

func (f *Native) StencilFuncSeparate(face, fn Enum, ref int, mask uint) {
	f.glStencilFuncSeparate(uint32(face), uint32(fn), int32(ref), uint32(mask))
}

func (f *Native) StencilMask(mask uint) {
	f.glStencilMask(uint32(mask))
}

func (f *Native) StencilOpSeparate(face, sfail, dpfail, dppass Enum) {
	f.glStencilOpSeparate(uint32(face), uint32(sfail), uint32(dpfail), uint32(dppass))
}

func (f *Native) TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum) {
	f.glTexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(ty), nil)
}

func (f *Native) TexParameterf(target, pname Enum, param float32) {
	f.glTexParameterf(uint32(target), uint32(pname), param)
}

func (f *Native) TexParameteri(target, pname Enum, param int) {
	f.glTexParameteri(uint32(target), uint32(pname), int32(param))
}

func (f *Native) TexSubImage2D(target Enum, level, x, y, width, height int, format, ty Enum, data []byte) {
	f.glTexSubImage2D(uint32(target), int32(level), int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), bytesPtr(data))
}

func (f *Native) Uniform1i(dst Uniform, v int) {
	f.glUniform1i(int32(dst.V), int32(v))
}

func (f *Native) Uniform4fv(dst Uniform, src []float32) {
	if len(src) < 4 {
		return
	}
	f.glUniform4fv(int32(dst.V), int32(len(src)/4), &src[0])
}

func (f *Native) UseProgram(p Program) {
	f.glUseProgram(uint32(p.V))
}

func (f *Native) VertexAttribDivisor(dst Attrib, divisor int) {
	f.glVertexAttribDivisor(uint32(dst), uint32(divisor))
}

func (f *Native) VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int) {
	f.glVertexAttribPointer(uint32(dst), int32(size), uint32(ty), normalized, int32(stride), uintptr(offset))
}

func (f *Native) Viewport(x, y, width, height int) {
	f.glViewport(int32(x), int32(y), int32(width), int32(height))
}

func bytesPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

// goString converts a NUL-terminated buffer to a Go string.
func goString(s []byte) string {
	for i, c := range s {
		if c == 0 {
			return string(s[:i])
		}
	}
	return string(s)
}
