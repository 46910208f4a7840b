// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"fmt"
	"image"

	"gioui.org/gldevice/internal/caps"
	"gioui.org/gldevice/internal/dispose"
	"gioui.org/gldevice/internal/driver"
	"gioui.org/gldevice/internal/gl"
	"gioui.org/gldevice/internal/log"
)

// pipeline holds the requested render state. Each sub-state is issued
// to GL by its apply method, only when it changed since the last draw
// unless forced.
type pipeline struct {
	blend    blendState
	depth    depthStencilState
	raster   rasterState
	scissor  scissorState
	index    indexState
	program  programState
	uniforms uniformState
	textures textureState
}

// apply issues the pending state in draw order.
func (p *pipeline) apply(b *Backend, force bool) error {
	p.blend.apply(b, force)
	p.depth.apply(b, force)
	p.raster.apply(b, force)
	p.scissor.apply(b, force)
	p.index.apply(b, force)
	if err := p.program.apply(b, force); err != nil {
		return err
	}
	prog := p.program.current
	applyFixup(b, prog)
	p.uniforms.apply(b, prog)
	p.textures.apply(b, force)
	return nil
}

// targetChanged records a render target switch. Winding and scissor
// origin depend on the bound target.
func (p *pipeline) targetChanged() {
	p.raster.dirty = true
	p.scissor.dirty = true
	p.textures.dirty = ^uint32(0)
}

type blendState struct {
	want  driver.BlendState
	dirty bool
}

func (s *blendState) set(bs driver.BlendState) {
	if bs != s.want {
		s.want = bs
		s.dirty = true
	}
}

func (s *blendState) apply(b *Backend, force bool) {
	if !s.dirty && !force {
		return
	}
	s.dirty = false
	f := b.funcs
	bs := s.want
	t0 := bs.Targets[0]
	separate := false
	if b.caps.Features.Has(caps.FeatureSeparateBlend) {
		for _, t := range bs.Targets[1:] {
			separate = separate || t != t0
		}
	}
	enable := t0.Enable
	if separate {
		for _, t := range bs.Targets[1:] {
			enable = enable || t.Enable
		}
	}
	b.glstate.set(f, gl.BLEND, enable)
	if separate {
		for i, t := range bs.Targets[:min(len(bs.Targets), b.caps.MaxDrawBuffers)] {
			if !t.Enable {
				t = driver.TargetBlend{SrcColor: driver.BlendOne, DstColor: driver.BlendZero, SrcAlpha: driver.BlendOne, DstAlpha: driver.BlendZero}
			}
			f.BlendFuncSeparatei(i, toGLBlendFactor(t.SrcColor), toGLBlendFactor(t.DstColor), toGLBlendFactor(t.SrcAlpha), toGLBlendFactor(t.DstAlpha))
			f.BlendEquationSeparatei(i, toGLBlendOp(t.ColorOp), toGLBlendOp(t.AlphaOp))
		}
	} else {
		f.BlendFuncSeparate(toGLBlendFactor(t0.SrcColor), toGLBlendFactor(t0.DstColor), toGLBlendFactor(t0.SrcAlpha), toGLBlendFactor(t0.DstAlpha))
		f.BlendEquationSeparate(toGLBlendOp(t0.ColorOp), toGLBlendOp(t0.AlphaOp))
	}
	m := t0.WriteMask
	b.glstate.setColorMask(f, [4]bool{m&driver.MaskRed != 0, m&driver.MaskGreen != 0, m&driver.MaskBlue != 0, m&driver.MaskAlpha != 0})
	f.BlendColor(bs.Factor[0], bs.Factor[1], bs.Factor[2], bs.Factor[3])
}

type depthStencilState struct {
	want  driver.DepthStencilState
	dirty bool
}

func (s *depthStencilState) set(ds driver.DepthStencilState) {
	if ds != s.want {
		s.want = ds
		s.dirty = true
	}
}

func (s *depthStencilState) apply(b *Backend, force bool) {
	if !s.dirty && !force {
		return
	}
	s.dirty = false
	f := b.funcs
	ds := s.want
	b.glstate.set(f, gl.DEPTH_TEST, ds.DepthTest)
	if ds.DepthTest {
		f.DepthFunc(toGLCompare(ds.DepthFunc))
	}
	b.glstate.setDepthMask(f, ds.DepthWrite)
	b.glstate.set(f, gl.STENCIL_TEST, ds.Stencil)
	if !ds.Stencil {
		return
	}
	back := ds.Front
	if ds.TwoSided {
		back = ds.Back
	}
	for _, face := range []struct {
		face gl.Enum
		st   driver.StencilFace
	}{{gl.FRONT, ds.Front}, {gl.BACK, back}} {
		st := face.st
		f.StencilFuncSeparate(face.face, toGLCompare(st.Func), ds.Ref, ds.ReadMask)
		f.StencilOpSeparate(face.face, toGLStencilOp(st.Fail), toGLStencilOp(st.DepthFail), toGLStencilOp(st.Pass))
	}
	b.glstate.setStencilMask(f, ds.WriteMask)
}

type rasterState struct {
	want  driver.RasterizerState
	dirty bool
}

func (s *rasterState) set(rs driver.RasterizerState) {
	if rs != s.want {
		s.want = rs
		s.dirty = true
	}
}

func (s *rasterState) apply(b *Backend, force bool) {
	if !s.dirty && !force {
		return
	}
	s.dirty = false
	f := b.funcs
	rs := s.want
	b.glstate.set(f, gl.CULL_FACE, rs.Cull != driver.CullNone)
	if rs.Cull != driver.CullNone {
		// Culling clockwise faces means counter-clockwise faces are front
		// facing. Off-screen targets are rendered upside down, which
		// inverts the winding.
		ccw := rs.Cull == driver.CullClockwise
		if b.targets.current != nil {
			ccw = !ccw
		}
		front := gl.Enum(gl.CW)
		if ccw {
			front = gl.CCW
		}
		f.CullFace(gl.BACK)
		f.FrontFace(front)
	}
	b.glstate.set(f, gl.SCISSOR_TEST, rs.Scissor)
	offset := rs.DepthBias != 0 || rs.SlopeScaleDepth != 0
	b.glstate.set(f, gl.POLYGON_OFFSET_FILL, offset)
	if offset {
		f.PolygonOffset(rs.SlopeScaleDepth, rs.DepthBias)
	}
}

type scissorState struct {
	rect  image.Rectangle
	dirty bool
}

func (s *scissorState) set(r image.Rectangle) {
	if r != s.rect {
		s.rect = r
		s.dirty = true
	}
}

func (s *scissorState) apply(b *Backend, force bool) {
	if !s.dirty && !force {
		return
	}
	s.dirty = false
	r := s.rect
	y := r.Min.Y
	if b.targets.current == nil {
		// The default framebuffer has its origin at the lower left.
		y = b.backBuffer.Y - r.Max.Y
	}
	b.glstate.setScissor(b.funcs, r.Min.X, y, r.Dx(), r.Dy())
}

type indexState struct {
	buf   *buffer
	size  driver.IndexSize
	dirty bool
}

func (s *indexState) set(buf *buffer, size driver.IndexSize) {
	if buf != s.buf || size != s.size {
		s.buf = buf
		s.size = size
		s.dirty = true
	}
}

func (s *indexState) apply(b *Backend, force bool) {
	if (!s.dirty && !force) || s.buf == nil {
		return
	}
	s.dirty = false
	b.glstate.bindBuffer(b.funcs, gl.ELEMENT_ARRAY_BUFFER, s.buf.obj)
}

type programKey struct {
	vs, fs uint64
}

type program struct {
	obj    gl.Program
	vs, fs *shader
	fixup  gl.Uniform
	// fixupValue is the fixup vector last uploaded to the program.
	fixupValue [4]float32
	hasFixup   bool
	uniforms   [2]programUniforms
}

type programUniforms struct {
	loc gl.Uniform
	// size in vec4s.
	size    int
	version int
}

type programState struct {
	vs, fs  *shader
	current *program
	cache   map[programKey]*program
	dirty   bool
}

func (s *programState) set(pair driver.ShaderPair) {
	vs, _ := pair.Vertex.(*shader)
	fs, _ := pair.Fragment.(*shader)
	if vs != s.vs || fs != s.fs {
		s.vs, s.fs = vs, fs
		s.dirty = true
	}
}

func (s *programState) apply(b *Backend, force bool) error {
	if s.vs == nil || s.fs == nil {
		panic("draw without both a vertex and a fragment shader")
	}
	if !s.dirty && !force && s.current != nil {
		b.glstate.useProgram(b.funcs, s.current.obj)
		return nil
	}
	p, err := s.lookup(b, s.vs, s.fs)
	if err != nil {
		return err
	}
	s.dirty = false
	if p != s.current {
		s.current = p
		// Attribute locations are program specific.
		b.attribs.dirty = true
	}
	b.glstate.useProgram(b.funcs, p.obj)
	return nil
}

// lookup returns the program linked from vs and fs, linking it on first
// use.
func (s *programState) lookup(b *Backend, vs, fs *shader) (*program, error) {
	key := programKey{vs: vs.id, fs: fs.id}
	if p, ok := s.cache[key]; ok {
		return p, nil
	}
	attribs := make([]string, len(vs.src.Inputs))
	for i, in := range vs.src.Inputs {
		attribs[i] = in.Name
	}
	obj, err := gl.LinkProgram(b.funcs, vs.obj, fs.obj, attribs)
	if err != nil {
		log.Logger().Warn("program link failed", "err", err)
		return nil, fmt.Errorf("opengl: %w", err)
	}
	p := &program{obj: obj, vs: vs, fs: fs, fixup: b.funcs.GetUniformLocation(obj, fixupUniform)}
	b.glstate.useProgram(b.funcs, obj)
	for i, sh := range []*shader{vs, fs} {
		if sh.src.Uniforms != "" {
			p.uniforms[i] = programUniforms{
				loc:  b.funcs.GetUniformLocation(obj, sh.src.Uniforms),
				size: sh.src.UniformsSize,
			}
		} else {
			p.uniforms[i].loc = gl.NoUniform
		}
		for _, smp := range sh.src.Samplers {
			if loc := b.funcs.GetUniformLocation(obj, smp.Name); loc.Valid() {
				b.funcs.Uniform1i(loc, smp.Slot)
			}
		}
	}
	if s.cache == nil {
		s.cache = make(map[programKey]*program)
	}
	s.cache[key] = p
	log.Logger().Debug("linked program", "program", obj.V, "vertex", vs.id, "fragment", fs.id)
	return p, nil
}

// evictShader disposes the programs linked from sh.
func (s *programState) evictShader(b *Backend, sh *shader) {
	for k, p := range s.cache {
		if p.vs != sh && p.fs != sh {
			continue
		}
		delete(s.cache, k)
		b.queue.Dispose(dispose.Handle{Kind: dispose.KindProgram, ID: p.obj.V})
		if p == s.current {
			s.current = nil
			s.dirty = true
		}
	}
	if s.vs == sh {
		s.vs = nil
	}
	if s.fs == sh {
		s.fs = nil
	}
}

// uniformState holds the constants of each stage as vec4 arrays.
type uniformState struct {
	stages [2]struct {
		data    []float32
		version int
	}
}

func (s *uniformState) set(stage driver.ShaderStage, vec4s []float32) {
	st := &s.stages[stage]
	st.data = append(st.data[:0], vec4s...)
	st.version++
}

// apply uploads the constants that changed since they were last uploaded
// to prog.
func (s *uniformState) apply(b *Backend, prog *program) {
	for i := range s.stages {
		st := &s.stages[i]
		u := &prog.uniforms[i]
		if !u.loc.Valid() || u.version == st.version || len(st.data) == 0 {
			continue
		}
		data := st.data
		if u.size > 0 {
			data = data[:min(len(data), u.size*4)]
		}
		b.funcs.Uniform4fv(u.loc, data)
		u.version = st.version
	}
}

type textureSlot struct {
	tex     *texture
	sampler driver.SamplerState
}

// textureState binds textures to units. Bit i of dirty marks unit i.
type textureState struct {
	slots []textureSlot
	dirty uint32
}

func (s *textureState) set(slot int, t *texture, smp driver.SamplerState) {
	if slot < 0 || slot >= len(s.slots) {
		panic(fmt.Errorf("texture slot %d out of range", slot))
	}
	ts := textureSlot{tex: t, sampler: smp}
	if s.slots[slot] != ts {
		s.slots[slot] = ts
		s.dirty |= 1 << uint(slot)
	}
}

func (s *textureState) apply(b *Backend, force bool) {
	if force {
		s.dirty = ^uint32(0)
	}
	for i, ts := range s.slots {
		if s.dirty&(1<<uint(i)) == 0 || ts.tex == nil {
			continue
		}
		b.glstate.bindTexture(b.funcs, i, ts.tex.target, ts.tex.obj)
		b.applySampler(ts.tex, ts.sampler)
	}
	s.dirty = 0
}

// forget clears the slots that reference t, whose id may be reused.
func (s *textureState) forget(t gl.Texture) {
	for i := range s.slots {
		if tex := s.slots[i].tex; tex != nil && tex.obj == t {
			s.slots[i] = textureSlot{}
		}
	}
}
