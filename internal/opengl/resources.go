// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/exp/slices"

	"gioui.org/gldevice/internal/caps"
	"gioui.org/gldevice/internal/dispose"
	"gioui.org/gldevice/internal/driver"
	"gioui.org/gldevice/internal/fbo"
	"gioui.org/gldevice/internal/gl"
	"gioui.org/gldevice/internal/log"
)

type texture struct {
	backend *Backend
	obj     gl.Texture
	// target is TEXTURE_2D or TEXTURE_CUBE_MAP.
	target gl.Enum
	triple textureTriple
	width  int
	height int
	levels int

	// sampler is the sampler state last applied to the texture object.
	sampler    driver.SamplerState
	hasSampler bool
}

type renderTarget struct {
	*texture
	id      uint64
	samples int
	usage   driver.RenderTargetUsage
	// colorRB is the multisampled color store, resolved into the texture.
	colorRB gl.Renderbuffer
	depthRB gl.Renderbuffer
	stencil bool
	deleted bool
}

type buffer struct {
	backend *Backend
	obj     gl.Buffer
	target  gl.Enum
	size    int
}

type shader struct {
	backend *Backend
	id      uint64
	stage   driver.ShaderStage
	obj     gl.Shader
	src     driver.ShaderSource
}

type query struct {
	backend *Backend
	obj     gl.Query
	target  gl.Enum
}

func (b *Backend) CreateTexture(desc driver.TextureDesc) (driver.Texture, error) {
	var (
		t   *texture
		err error
	)
	b.owner.Do(func() {
		t, err = b.newTexture(desc)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (b *Backend) newTexture(desc driver.TextureDesc) (*texture, error) {
	if b.released {
		return nil, driver.ErrDeviceReleased
	}
	triple, err := tripleFor(b.caps, desc.Format)
	if err != nil {
		return nil, fmt.Errorf("opengl: %w", err)
	}
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("opengl: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	if limit := b.caps.MaxTextureSize; desc.Width > limit || desc.Height > limit {
		return nil, fmt.Errorf("opengl: texture size %dx%d exceeds the maximum of %d", desc.Width, desc.Height, limit)
	}
	if b.opts.Debug {
		glErr(b.funcs)
	}
	t := &texture{
		backend: b,
		obj:     b.funcs.CreateTexture(),
		target:  gl.TEXTURE_2D,
		triple:  triple,
		width:   desc.Width,
		height:  desc.Height,
		levels:  min(max(desc.Levels, 1), mipLevels(desc.Width, desc.Height)),
	}
	faces := 1
	if desc.Cube {
		t.target = gl.TEXTURE_CUBE_MAP
		faces = 6
	}
	b.bindScratch(t)
	b.applySampler(t, driver.SamplerState{})
	for face := 0; face < faces; face++ {
		w, h := t.width, t.height
		for level := 0; level < t.levels; level++ {
			b.funcs.TexImage2D(t.faceTarget(face), level, triple.internalFormat, w, h, triple.format, triple.typ)
			w, h = max(w/2, 1), max(h/2, 1)
		}
	}
	if b.opts.Debug {
		if err := glErr(b.funcs); err != nil {
			b.glstate.deleteTexture(b.funcs, t.obj)
			return nil, err
		}
	}
	return t, nil
}

// bindScratch binds t to the first texture unit for modification.
func (b *Backend) bindScratch(t *texture) {
	b.glstate.bindTexture(b.funcs, 0, t.target, t.obj)
	b.pipe.textures.dirty |= 1
}

// applySampler sets the sampling parameters of t, which must be bound.
func (b *Backend) applySampler(t *texture, s driver.SamplerState) {
	if t.hasSampler && t.sampler == s {
		return
	}
	f := b.funcs
	minf, magf := toTexFilter(s.Filter, t.levels > 1)
	f.TexParameteri(t.target, gl.TEXTURE_MIN_FILTER, minf)
	f.TexParameteri(t.target, gl.TEXTURE_MAG_FILTER, magf)
	f.TexParameteri(t.target, gl.TEXTURE_WRAP_S, toTexWrap(s.WrapU))
	f.TexParameteri(t.target, gl.TEXTURE_WRAP_T, toTexWrap(s.WrapV))
	if !b.caps.ES || b.caps.Version[0] >= 3 {
		maxLevel := t.levels - 1
		if s.MaxMipLevel > 0 {
			maxLevel = min(maxLevel, s.MaxMipLevel)
		}
		f.TexParameteri(t.target, gl.TEXTURE_MAX_LEVEL, maxLevel)
	}
	if b.caps.MaxAnisotropy > 0 {
		aniso := float32(1)
		if s.Filter == driver.FilterAnisotropic {
			aniso = min(float32(max(s.MaxAnisotropy, 1)), b.caps.MaxAnisotropy)
		}
		f.TexParameterf(t.target, gl.TEXTURE_MAX_ANISOTROPY_EXT, aniso)
	}
	t.sampler = s
	t.hasSampler = true
}

func mipLevels(width, height int) int {
	n := 1
	for s := max(width, height); s > 1; s /= 2 {
		n++
	}
	return n
}

func (t *texture) faceTarget(face int) gl.Enum {
	if t.target == gl.TEXTURE_CUBE_MAP {
		return gl.TEXTURE_CUBE_MAP_POSITIVE_X + gl.Enum(face)
	}
	return t.target
}

func (t *texture) Size() image.Point {
	return image.Pt(t.width, t.height)
}

func (t *texture) Levels() int {
	return t.levels
}

func (t *texture) Handle() dispose.Handle {
	return dispose.Handle{Kind: dispose.KindTexture, ID: t.obj.V}
}

func (t *texture) Upload(face, level int, r image.Rectangle, pixels []byte) {
	if n := r.Dx() * r.Dy() * t.triple.pixelSize; n > len(pixels) {
		panic(fmt.Errorf("size %d larger than data %d", n, len(pixels)))
	}
	b := t.backend
	b.owner.Do(func() {
		b.bindScratch(t)
		b.funcs.TexSubImage2D(t.faceTarget(face), level, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), t.triple.format, t.triple.typ, pixels)
	})
}

func (t *texture) Release() {
	t.backend.DisposeResource(t.Handle())
}

func (b *Backend) CreateRenderTarget(desc driver.RenderTargetDesc) (driver.RenderTarget, error) {
	var (
		rt  *renderTarget
		err error
	)
	b.owner.Do(func() {
		rt, err = b.newRenderTarget(desc)
	})
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (b *Backend) newRenderTarget(desc driver.RenderTargetDesc) (*renderTarget, error) {
	levels := 1
	if desc.Mipmap {
		levels = mipLevels(desc.Width, desc.Height)
	}
	t, err := b.newTexture(driver.TextureDesc{
		Format: desc.ColorFormat,
		Width:  desc.Width,
		Height: desc.Height,
		Levels: levels,
		Cube:   desc.Cube,
	})
	if err != nil {
		return nil, err
	}
	rt := &renderTarget{
		texture: t,
		id:      b.serial.Add(1),
		usage:   desc.Usage,
	}
	if desc.SampleCount > 0 {
		if b.caps.MaxSamples == 0 {
			log.Logger().Warn("multisampling unavailable, rendering single-sampled", "samples", desc.SampleCount)
		} else {
			rt.samples = min(desc.SampleCount, b.caps.MaxSamples)
		}
	}
	if rt.samples > 0 && b.fbo.Multisample() == fbo.MultisampleRenderbuffer {
		rt.colorRB = b.fbo.CreateRenderbuffer()
		b.fbo.RenderbufferStorage(rt.colorRB, rt.samples, renderbufferFormat(t.triple), t.width, t.height)
	}
	if desc.DepthFormat != driver.DepthNone {
		format, stencil := depthFormat(b.fbo, desc.DepthFormat)
		rt.depthRB = b.fbo.CreateRenderbuffer()
		rt.stencil = stencil
		b.fbo.RenderbufferStorage(rt.depthRB, rt.samples, format, t.width, t.height)
	}
	if b.opts.Debug {
		if err := glErr(b.funcs); err != nil {
			b.deleteRenderTarget(rt)
			return nil, err
		}
	}
	return rt, nil
}

// renderbufferFormat returns the sized equivalent of an unsized texture
// format.
func renderbufferFormat(t textureTriple) gl.Enum {
	if t.internalFormat == gl.RGBA {
		return gl.RGBA8
	}
	return t.internalFormat
}

func (b *Backend) DeleteRenderTarget(rt driver.RenderTarget) {
	b.owner.Check()
	b.deleteRenderTarget(rt.(*renderTarget))
}

func (b *Backend) deleteRenderTarget(rt *renderTarget) {
	if rt.deleted {
		return
	}
	rt.deleted = true
	b.targets.evictForTarget(rt)
	b.queue.Dispose(rt.Handle())
	b.queue.Dispose(dispose.Handle{Kind: dispose.KindRenderbuffer, ID: rt.colorRB.V})
	b.queue.Dispose(dispose.Handle{Kind: dispose.KindRenderbuffer, ID: rt.depthRB.V})
}

func (rt *renderTarget) SampleCount() int {
	return rt.samples
}

func (rt *renderTarget) Usage() driver.RenderTargetUsage {
	return rt.usage
}

// Release deletes the render target. Off the owning thread the deletion
// runs at the next Service.
func (rt *renderTarget) Release() {
	b := rt.backend
	if b.owner.IsCurrent() {
		b.deleteRenderTarget(rt)
		return
	}
	b.owner.Post(func() {
		b.deleteRenderTarget(rt)
	})
}

func (b *Backend) CreateBuffer(typ driver.BufferType, dynamic bool, size int) (driver.Buffer, error) {
	var (
		buf *buffer
		err error
	)
	b.owner.Do(func() {
		buf, err = b.newBuffer(typ, dynamic, size)
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (b *Backend) newBuffer(typ driver.BufferType, dynamic bool, size int) (*buffer, error) {
	if b.released {
		return nil, driver.ErrDeviceReleased
	}
	if size <= 0 {
		return nil, fmt.Errorf("opengl: invalid buffer size %d", size)
	}
	target := gl.Enum(gl.ARRAY_BUFFER)
	if typ == driver.BufferIndex {
		target = gl.ELEMENT_ARRAY_BUFFER
	}
	usage := gl.Enum(gl.STATIC_DRAW)
	if dynamic {
		usage = gl.DYNAMIC_DRAW
	}
	if b.opts.Debug {
		glErr(b.funcs)
	}
	buf := &buffer{backend: b, obj: b.funcs.CreateBuffer(), target: target, size: size}
	b.glstate.bindBuffer(b.funcs, target, buf.obj)
	b.funcs.BufferData(target, size, usage, nil)
	if b.opts.Debug {
		if err := glErr(b.funcs); err != nil {
			b.glstate.deleteBuffer(b.funcs, buf.obj)
			return nil, err
		}
	}
	return buf, nil
}

func (buf *buffer) Upload(offset int, data []byte) {
	if offset < 0 || offset+len(data) > buf.size {
		panic(fmt.Errorf("upload of %d bytes at %d overflows buffer of size %d", len(data), offset, buf.size))
	}
	b := buf.backend
	b.owner.Do(func() {
		b.glstate.bindBuffer(b.funcs, buf.target, buf.obj)
		b.funcs.BufferSubData(buf.target, offset, data)
	})
}

func (buf *buffer) Handle() dispose.Handle {
	return dispose.Handle{Kind: dispose.KindBuffer, ID: buf.obj.V}
}

func (buf *buffer) Release() {
	buf.backend.DisposeResource(buf.Handle())
}

func (b *Backend) CreateShader(src driver.ShaderSource) (driver.Shader, error) {
	var (
		sh  *shader
		err error
	)
	b.owner.Do(func() {
		sh, err = b.newShader(src)
	})
	if err != nil {
		return nil, err
	}
	return sh, nil
}

func (b *Backend) newShader(src driver.ShaderSource) (*shader, error) {
	if b.released {
		return nil, driver.ErrDeviceReleased
	}
	typ := gl.Enum(gl.VERTEX_SHADER)
	if src.Stage == driver.StageFragment {
		typ = gl.FRAGMENT_SHADER
	}
	obj, err := gl.CompileShader(b.funcs, typ, src.GLSL)
	if err != nil {
		log.Logger().Warn("shader compilation failed", "stage", src.Stage, "err", err)
		return nil, fmt.Errorf("opengl: %w", err)
	}
	src.Inputs = slices.Clone(src.Inputs)
	src.Samplers = slices.Clone(src.Samplers)
	return &shader{
		backend: b,
		id:      b.serial.Add(1),
		stage:   src.Stage,
		obj:     obj,
		src:     src,
	}, nil
}

// attribLocation returns the location bound to the input with the given
// usage.
func (s *shader) attribLocation(usage driver.VertexUsage, index int) (gl.Attrib, bool) {
	for i, in := range s.src.Inputs {
		if in.Usage == usage && in.UsageIndex == index {
			return gl.Attrib(i), true
		}
	}
	return 0, false
}

func (s *shader) Stage() driver.ShaderStage {
	return s.stage
}

// Release deletes the shader and the programs linked from it.
func (s *shader) Release() {
	b := s.backend
	b.DisposeResource(dispose.Handle{Kind: dispose.KindShader, ID: s.obj.V})
	if b.owner.IsCurrent() {
		b.pipe.program.evictShader(b, s)
		return
	}
	b.owner.Post(func() {
		b.pipe.program.evictShader(b, s)
	})
}

func (b *Backend) CreateQuery() (driver.Query, error) {
	if !b.caps.Features.Has(caps.FeatureQuery) {
		return nil, errors.New("opengl: occlusion queries are not supported by the context")
	}
	var q *query
	b.owner.Do(func() {
		target := gl.Enum(gl.SAMPLES_PASSED)
		if b.caps.ES {
			target = gl.ANY_SAMPLES_PASSED
		}
		q = &query{backend: b, obj: b.funcs.CreateQuery(), target: target}
	})
	return q, nil
}

func (q *query) Begin() {
	q.backend.owner.Check()
	q.backend.funcs.BeginQuery(q.target, q.obj)
}

func (q *query) End() {
	q.backend.owner.Check()
	q.backend.funcs.EndQuery(q.target)
}

func (q *query) Result() (uint, bool) {
	f := q.backend.funcs
	q.backend.owner.Check()
	if f.GetQueryObjectuiv(q.obj, gl.QUERY_RESULT_AVAILABLE) != gl.TRUE {
		return 0, false
	}
	return f.GetQueryObjectuiv(q.obj, gl.QUERY_RESULT), true
}

func (q *query) Release() {
	q.backend.DisposeResource(dispose.Handle{Kind: dispose.KindQuery, ID: q.obj.V})
}
