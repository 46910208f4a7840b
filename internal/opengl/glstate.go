// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"gioui.org/gldevice/internal/fbo"
	"gioui.org/gldevice/internal/gl"
)

// glState shadows the GL bindings so redundant calls are skipped. It
// assumes the context is at its defaults when the device is created.
type glState struct {
	drawFBO  gl.Framebuffer
	readFBO  gl.Framebuffer
	arrayBuf gl.Buffer
	elemBuf  gl.Buffer
	prog     gl.Program
	texUnits struct {
		active gl.Enum
		binds  []texBinding
	}
	enabled    map[gl.Enum]bool
	depthMask  bool
	colorMask  [4]bool
	stencilMsk uint
	clearColor [4]float32
	clearDepth float32
	clearStncl int
	viewport   [4]int
	scissor    [4]int
}

type texBinding struct {
	target gl.Enum
	obj    gl.Texture
}

func newGLState(texUnits int) glState {
	s := glState{
		depthMask:  true,
		colorMask:  [4]bool{true, true, true, true},
		stencilMsk: ^uint(0),
		clearDepth: 1,
		enabled:    make(map[gl.Enum]bool),
	}
	s.texUnits.active = gl.TEXTURE0
	s.texUnits.binds = make([]texBinding, texUnits)
	return s
}

func (s *glState) activeTexture(f gl.Functions, unit gl.Enum) {
	if unit != s.texUnits.active {
		f.ActiveTexture(unit)
		s.texUnits.active = unit
	}
}

func (s *glState) bindTexture(f gl.Functions, unit int, target gl.Enum, t gl.Texture) {
	// Callers modify the texture through the active unit.
	s.activeTexture(f, gl.TEXTURE0+gl.Enum(unit))
	b := &s.texUnits.binds[unit]
	if b.obj == t && b.target == target {
		return
	}
	if b.target != target && b.obj.Valid() {
		// Unbind the previous target so the unit samples one texture.
		f.BindTexture(b.target, gl.Texture{})
	}
	f.BindTexture(target, t)
	*b = texBinding{target: target, obj: t}
}

// forgetTextures marks every texture binding unknown, so the next
// bindTexture on each unit issues a call.
func (s *glState) forgetTextures() {
	for i := range s.texUnits.binds {
		b := &s.texUnits.binds[i]
		if b.obj.Valid() {
			b.obj = gl.Texture{V: ^uint(0)}
		}
	}
}

func (s *glState) bindFramebuffer(ops fbo.Ops, target gl.Enum, fb gl.Framebuffer) {
	switch target {
	case gl.FRAMEBUFFER:
		if fb == s.drawFBO && fb == s.readFBO {
			return
		}
		s.drawFBO = fb
		s.readFBO = fb
	case gl.READ_FRAMEBUFFER:
		if fb == s.readFBO {
			return
		}
		s.readFBO = fb
	case gl.DRAW_FRAMEBUFFER:
		if fb == s.drawFBO {
			return
		}
		s.drawFBO = fb
	default:
		panic("unknown framebuffer target")
	}
	ops.BindFramebuffer(target, fb)
}

func (s *glState) bindBuffer(f gl.Functions, target gl.Enum, buf gl.Buffer) {
	switch target {
	case gl.ARRAY_BUFFER:
		if buf == s.arrayBuf {
			return
		}
		s.arrayBuf = buf
	case gl.ELEMENT_ARRAY_BUFFER:
		if buf == s.elemBuf {
			return
		}
		s.elemBuf = buf
	default:
		panic("unknown buffer target")
	}
	f.BindBuffer(target, buf)
}

func (s *glState) useProgram(f gl.Functions, p gl.Program) {
	if p != s.prog {
		f.UseProgram(p)
		s.prog = p
	}
}

func (s *glState) set(f gl.Functions, cap gl.Enum, enable bool) {
	if s.enabled[cap] == enable {
		return
	}
	s.enabled[cap] = enable
	if enable {
		f.Enable(cap)
	} else {
		f.Disable(cap)
	}
}

func (s *glState) isEnabled(cap gl.Enum) bool {
	return s.enabled[cap]
}

func (s *glState) setDepthMask(f gl.Functions, enable bool) {
	if enable != s.depthMask {
		f.DepthMask(enable)
		s.depthMask = enable
	}
}

func (s *glState) setColorMask(f gl.Functions, mask [4]bool) {
	if mask != s.colorMask {
		f.ColorMask(mask[0], mask[1], mask[2], mask[3])
		s.colorMask = mask
	}
}

func (s *glState) setStencilMask(f gl.Functions, mask uint) {
	if mask != s.stencilMsk {
		f.StencilMask(mask)
		s.stencilMsk = mask
	}
}

func (s *glState) setClearColor(f gl.Functions, c [4]float32) {
	if c != s.clearColor {
		f.ClearColor(c[0], c[1], c[2], c[3])
		s.clearColor = c
	}
}

func (s *glState) setClearDepth(f gl.Functions, d float32) {
	if d != s.clearDepth {
		f.ClearDepthf(d)
		s.clearDepth = d
	}
}

func (s *glState) setClearStencil(f gl.Functions, v int) {
	if v != s.clearStncl {
		f.ClearStencil(v)
		s.clearStncl = v
	}
}

func (s *glState) setViewport(f gl.Functions, x, y, width, height int) {
	view := [4]int{x, y, width, height}
	if view != s.viewport {
		f.Viewport(x, y, width, height)
		s.viewport = view
	}
}

func (s *glState) setScissor(f gl.Functions, x, y, width, height int) {
	r := [4]int{x, y, width, height}
	if r != s.scissor {
		f.Scissor(x, y, width, height)
		s.scissor = r
	}
}

func (s *glState) deleteFramebuffer(ops fbo.Ops, fb gl.Framebuffer) {
	ops.DeleteFramebuffer(fb)
	if fb == s.drawFBO {
		s.drawFBO = gl.Framebuffer{}
	}
	if fb == s.readFBO {
		s.readFBO = gl.Framebuffer{}
	}
}

func (s *glState) deleteBuffer(f gl.Functions, b gl.Buffer) {
	f.DeleteBuffer(b)
	if b == s.arrayBuf {
		s.arrayBuf = gl.Buffer{}
	}
	if b == s.elemBuf {
		s.elemBuf = gl.Buffer{}
	}
}

func (s *glState) deleteProgram(f gl.Functions, p gl.Program) {
	f.DeleteProgram(p)
	if p == s.prog {
		s.prog = gl.Program{}
	}
}

func (s *glState) deleteTexture(f gl.Functions, t gl.Texture) {
	f.DeleteTexture(t)
	for i, b := range s.texUnits.binds {
		if b.obj == t {
			s.texUnits.binds[i] = texBinding{}
		}
	}
}
