// SPDX-License-Identifier: Unlicense OR MIT

// Package opengl implements driver.Device on top of a GL context.
package opengl

import (
	"fmt"
	"image"
	"sync/atomic"

	"gioui.org/gldevice/internal/caps"
	"gioui.org/gldevice/internal/dispose"
	"gioui.org/gldevice/internal/driver"
	"gioui.org/gldevice/internal/fbo"
	"gioui.org/gldevice/internal/gl"
	"gioui.org/gldevice/internal/log"
	"gioui.org/gldevice/internal/thread"
)

// Backend implements driver.Device. Its caches are owned by the thread
// that created it.
type Backend struct {
	funcs gl.Functions
	caps  *caps.Caps
	fbo   fbo.Ops
	opts  driver.Options
	swap  func() error
	owner *thread.Owner
	queue dispose.Queue
	// serial numbers render targets and shaders.
	serial atomic.Uint64

	glstate   glState
	targets   *renderTargetCache
	attribs   attribCache
	pipe      pipeline
	vertArray gl.VertexArray

	vertexBindings []driver.VertexBinding
	backBuffer     image.Point
	viewport       image.Rectangle
	released       bool
}

var _ driver.Device = (*Backend)(nil)

func init() {
	driver.NewOpenGLDevice = newOpenGLDevice
}

func newOpenGLDevice(api driver.OpenGL, opts driver.Options) (driver.Device, error) {
	f, err := gl.Load(api.GetProcAddress)
	if err != nil {
		return nil, err
	}
	b, err := NewWithFunctions(f, api.SwapBuffers, opts)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// NewWithFunctions creates a device on f. The calling goroutine becomes
// the owner and must stay locked to its thread.
func NewWithFunctions(f gl.Functions, swap func() error, opts driver.Options) (*Backend, error) {
	c, err := caps.Probe(f)
	if err != nil {
		return nil, fmt.Errorf("opengl: %w", err)
	}
	ops, err := fbo.New(f, c)
	if err != nil {
		return nil, fmt.Errorf("opengl: %w", err)
	}
	if opts.FramebufferCacheSize <= 0 {
		opts.FramebufferCacheSize = driver.DefaultFramebufferCacheSize
	}
	b := &Backend{
		funcs:   f,
		caps:    c,
		fbo:     ops,
		opts:    opts,
		swap:    swap,
		owner:   thread.NewOwner(),
		glstate: newGLState(c.MaxTextureUnits),
		attribs: newAttribCache(c.MaxVertexAttribs),
	}
	b.pipe.textures.slots = make([]textureSlot, min(c.MaxTextureUnits, 32))
	if b.targets, err = newRenderTargetCache(b, opts.FramebufferCacheSize); err != nil {
		return nil, err
	}
	// Core profiles have no default vertex array.
	if _, ok := f.Bound(gl.FamilyVertexArray); ok && !c.ES && c.Version[0] >= 3 {
		b.vertArray = f.CreateVertexArray()
		f.BindVertexArray(b.vertArray)
	}
	f.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	f.PixelStorei(gl.PACK_ALIGNMENT, 1)
	b.pipe.blend.want = driver.BlendState{
		Targets: [driver.MaxRenderTargets]driver.TargetBlend{
			{WriteMask: driver.MaskAll}, {WriteMask: driver.MaskAll},
			{WriteMask: driver.MaskAll}, {WriteMask: driver.MaskAll},
		},
	}
	b.pipe.depth.want = driver.DepthStencilState{DepthWrite: true, DepthFunc: driver.CompareLess, ReadMask: ^uint(0), WriteMask: ^uint(0)}
	b.pipe.blend.apply(b, true)
	b.pipe.depth.apply(b, true)
	b.pipe.raster.apply(b, true)
	if opts.Debug {
		if err := glErr(f); err != nil {
			return nil, fmt.Errorf("opengl: device setup: %w", err)
		}
	}
	log.Logger().Info("created OpenGL device",
		"version", fmt.Sprintf("%d.%d", c.Version[0], c.Version[1]),
		"es", c.ES,
		"renderer", c.Renderer,
		"vendor", c.Vendor,
		"framebuffer", ops.String(),
		"features", c.Features.String(),
	)
	for _, fam := range []gl.Family{gl.FamilyBlit, gl.FamilyInstancing, gl.FamilyInvalidate, gl.FamilySeparateBlend} {
		if _, ok := c.Variant(fam); !ok {
			log.Logger().Warn("feature unavailable", "family", fam.String())
		}
	}
	return b, nil
}

func glErr(f gl.Functions) error {
	if st := f.GetError(); st != gl.NO_ERROR {
		return fmt.Errorf("glGetError: %#x", st)
	}
	return nil
}

func (b *Backend) Caps() *caps.Caps {
	return b.caps
}

// Resize records the size of the default framebuffer.
func (b *Backend) Resize(size image.Point) {
	b.owner.Check()
	b.backBuffer = size
	if b.targets.current == nil {
		b.SetViewport(image.Rectangle{Max: size})
		b.pipe.scissor.dirty = true
	}
}

func (b *Backend) ApplyRenderTargets(set []driver.Binding) driver.RenderTarget {
	b.owner.Check()
	b.flushIfPending()
	b.bindTargets(set)
	if len(set) == 0 {
		return nil
	}
	return set[0].Target
}

// bindTargets binds set and resets the viewport to the extent of its
// first target.
func (b *Backend) bindTargets(set []driver.Binding) {
	b.targets.apply(set)
	b.pipe.targetChanged()
	b.glstate.forgetTextures()
	size := b.backBuffer
	if len(set) > 0 {
		size = set[0].Target.Size()
	}
	b.SetViewport(image.Rectangle{Max: size})
}

func (b *Backend) ResolveRenderTargets() {
	b.owner.Check()
	b.targets.resolveCurrent()
}

func (b *Backend) ApplyVertexAttributes(shaders driver.ShaderPair, bindings []driver.VertexBinding, baseVertex int) error {
	b.owner.Check()
	b.pipe.program.set(shaders)
	if err := b.pipe.program.apply(b, false); err != nil {
		return err
	}
	return b.attribs.apply(b, b.pipe.program.current, bindings, baseVertex)
}

func (b *Backend) SetViewport(r image.Rectangle) {
	b.owner.Check()
	b.viewport = r
	y := r.Min.Y
	if b.targets.current == nil {
		y = b.backBuffer.Y - r.Max.Y
	}
	b.glstate.setViewport(b.funcs, r.Min.X, y, r.Dx(), r.Dy())
}

func (b *Backend) SetScissor(r image.Rectangle) {
	b.owner.Check()
	b.pipe.scissor.set(r)
}

func (b *Backend) SetBlendState(s driver.BlendState) {
	b.owner.Check()
	b.pipe.blend.set(s)
}

func (b *Backend) SetDepthStencilState(s driver.DepthStencilState) {
	b.owner.Check()
	b.pipe.depth.set(s)
}

func (b *Backend) SetRasterizerState(s driver.RasterizerState) {
	b.owner.Check()
	b.pipe.raster.set(s)
}

func (b *Backend) SetShaders(p driver.ShaderPair) {
	b.owner.Check()
	b.pipe.program.set(p)
}

func (b *Backend) SetUniforms(stage driver.ShaderStage, vec4s []float32) {
	b.owner.Check()
	b.pipe.uniforms.set(stage, vec4s)
}

func (b *Backend) SetTexture(slot int, t driver.Texture, s driver.SamplerState) {
	b.owner.Check()
	var tex *texture
	switch t := t.(type) {
	case *texture:
		tex = t
	case *renderTarget:
		tex = t.texture
	}
	b.pipe.textures.set(slot, tex, s)
}

func (b *Backend) SetIndexBuffer(buf driver.Buffer, size driver.IndexSize) {
	b.owner.Check()
	ib, _ := buf.(*buffer)
	b.pipe.index.set(ib, size)
}

func (b *Backend) SetVertexBuffers(bindings []driver.VertexBinding) {
	b.owner.Check()
	b.vertexBindings = append(b.vertexBindings[:0], bindings...)
}

func (b *Backend) Clear(opts driver.ClearOptions, color [4]float32, depth float32, stencil int) {
	b.owner.Check()
	f := b.funcs
	s := &b.glstate
	colorMask, depthMask, stencilMask := s.colorMask, s.depthMask, s.stencilMsk
	var mask gl.Enum
	if opts&driver.ClearColor != 0 {
		s.setClearColor(f, color)
		s.setColorMask(f, [4]bool{true, true, true, true})
		mask |= gl.COLOR_BUFFER_BIT
	}
	if opts&driver.ClearDepth != 0 {
		s.setClearDepth(f, depth)
		s.setDepthMask(f, true)
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if opts&driver.ClearStencil != 0 {
		s.setClearStencil(f, stencil)
		s.setStencilMask(f, ^uint(0))
		mask |= gl.STENCIL_BUFFER_BIT
	}
	if mask == 0 {
		return
	}
	f.Clear(mask)
	s.setColorMask(f, colorMask)
	s.setDepthMask(f, depthMask)
	s.setStencilMask(f, stencilMask)
}

// prepareDraw applies the pending state and the vertex attributes of the
// bound vertex buffers.
func (b *Backend) prepareDraw(baseVertex int) error {
	b.owner.Check()
	if b.released {
		return driver.ErrDeviceReleased
	}
	b.flushIfPending()
	if err := b.pipe.apply(b, false); err != nil {
		return err
	}
	return b.attribs.apply(b, b.pipe.program.current, b.vertexBindings, baseVertex)
}

func (b *Backend) DrawPrimitives(mode driver.PrimitiveType, first, primitives int) error {
	if err := b.prepareDraw(0); err != nil {
		return err
	}
	b.funcs.DrawArrays(toGLDrawMode(mode), first, vertexCount(mode, primitives))
	return nil
}

func (b *Backend) DrawIndexedPrimitives(mode driver.PrimitiveType, baseVertex, minVertex, numVertices, startIndex, primitives int) error {
	baseVertexDraw := b.caps.Features.Has(caps.FeatureBaseVertex)
	attribBase := baseVertex
	if baseVertexDraw {
		attribBase = 0
	}
	if err := b.prepareDraw(attribBase); err != nil {
		return err
	}
	ib := b.pipe.index
	if ib.buf == nil {
		panic("indexed draw without an index buffer")
	}
	typ, size := toGLIndexType(ib.size)
	count := vertexCount(mode, primitives)
	if baseVertexDraw {
		b.funcs.DrawRangeElementsBaseVertex(toGLDrawMode(mode), minVertex, minVertex+numVertices-1, count, typ, startIndex*size, baseVertex)
	} else {
		b.funcs.DrawElements(toGLDrawMode(mode), count, typ, startIndex*size)
	}
	return nil
}

func (b *Backend) DrawInstancedPrimitives(mode driver.PrimitiveType, baseVertex, minVertex, numVertices, startIndex, primitives, instances int) error {
	if !b.caps.Features.Has(caps.FeatureInstancing) {
		return fmt.Errorf("opengl: %w", driver.ErrInstancingUnsupported)
	}
	if err := b.prepareDraw(baseVertex); err != nil {
		return err
	}
	ib := b.pipe.index
	if ib.buf == nil {
		panic("indexed draw without an index buffer")
	}
	typ, size := toGLIndexType(ib.size)
	b.funcs.DrawElementsInstanced(toGLDrawMode(mode), vertexCount(mode, primitives), typ, startIndex*size, instances)
	return nil
}

func (b *Backend) ReadPixels(r image.Rectangle, pixels []byte) error {
	b.owner.Check()
	w, h := r.Dx(), r.Dy()
	stride := w * 4
	if n := stride * h; n > len(pixels) {
		return fmt.Errorf("opengl: read of %d bytes into buffer of %d", n, len(pixels))
	}
	if b.targets.current == nil {
		y := b.backBuffer.Y - r.Max.Y
		b.funcs.ReadPixels(r.Min.X, y, w, h, gl.RGBA, gl.UNSIGNED_BYTE, pixels)
		flipRows(pixels[:stride*h], stride)
	} else {
		b.funcs.ReadPixels(r.Min.X, r.Min.Y, w, h, gl.RGBA, gl.UNSIGNED_BYTE, pixels)
	}
	if b.opts.Debug {
		return glErr(b.funcs)
	}
	return nil
}

// flipRows reverses the order of the rows of pix.
func flipRows(pix []byte, stride int) {
	tmp := make([]byte, stride)
	for top, bot := 0, len(pix)-stride; top < bot; top, bot = top+stride, bot-stride {
		copy(tmp, pix[top:top+stride])
		copy(pix[top:top+stride], pix[bot:bot+stride])
		copy(pix[bot:bot+stride], tmp)
	}
}

func (b *Backend) DisposeResource(h dispose.Handle) {
	b.queue.Dispose(h)
}

// deleteHandle deletes the native object of h. It runs on the owner.
func (b *Backend) deleteHandle(h dispose.Handle) {
	f := b.funcs
	switch h.Kind {
	case dispose.KindTexture:
		t := gl.Texture{V: h.ID}
		b.glstate.deleteTexture(f, t)
		b.pipe.textures.forget(t)
	case dispose.KindBuffer:
		buf := gl.Buffer{V: h.ID}
		b.glstate.deleteBuffer(f, buf)
		b.attribs.forgetBuffer(buf)
		if ib := b.pipe.index.buf; ib != nil && ib.obj == buf {
			b.pipe.index.buf = nil
		}
	case dispose.KindRenderbuffer:
		b.fbo.DeleteRenderbuffer(gl.Renderbuffer{V: h.ID})
	case dispose.KindShader:
		f.DeleteShader(gl.Shader{V: h.ID})
	case dispose.KindProgram:
		b.glstate.deleteProgram(f, gl.Program{V: h.ID})
	case dispose.KindFramebuffer:
		fb := gl.Framebuffer{V: h.ID}
		b.glstate.deleteFramebuffer(b.fbo, fb)
		if cur := b.targets.current; cur != nil && cur.obj == fb {
			b.targets.current = nil
			b.targets.currentKey = bindingKey{}
		}
	case dispose.KindQuery:
		f.DeleteQuery(gl.Query{V: h.ID})
	}
}

func (b *Backend) Present() error {
	b.owner.Check()
	if b.released {
		return driver.ErrDeviceReleased
	}
	b.owner.Service()
	var err error
	if b.swap != nil {
		if serr := b.swap(); serr != nil {
			err = fmt.Errorf("opengl: swap buffers: %w", serr)
		}
	}
	// The frame ends even if the swap failed.
	if n := b.queue.Boundary(b.deleteHandle); n > 0 {
		log.Logger().Debug("disposed resources", "count", n)
	}
	return err
}

func (b *Backend) Flush() {
	b.owner.Check()
	b.owner.Service()
	b.flushDisposals()
}

func (b *Backend) flushDisposals() {
	b.funcs.Finish()
	if n := b.queue.Flush(b.deleteHandle); n > 0 {
		log.Logger().Debug("flushed disposals", "count", n)
	}
}

// flushIfPending forces a disposal flush when more handles are pending
// than the configured limit, for render loops that rarely present.
func (b *Backend) flushIfPending() {
	if limit := b.opts.MaxPendingDisposals; limit > 0 && b.queue.Len() > limit {
		b.flushDisposals()
	}
}

func (b *Backend) Service() {
	b.owner.Service()
}

// Release deletes the cached objects and every pending resource. Later
// calls return ErrDeviceReleased.
func (b *Backend) Release() {
	b.owner.Check()
	if b.released {
		return
	}
	b.owner.Service()
	b.bindTargets(nil)
	b.targets.purge()
	for k, p := range b.pipe.program.cache {
		delete(b.pipe.program.cache, k)
		b.queue.Dispose(dispose.Handle{Kind: dispose.KindProgram, ID: p.obj.V})
	}
	b.pipe.program.current = nil
	b.flushDisposals()
	if b.vertArray.Valid() {
		b.funcs.DeleteVertexArray(b.vertArray)
	}
	b.released = true
}
