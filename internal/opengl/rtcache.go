// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"fmt"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"golang.org/x/exp/slices"

	"gioui.org/gldevice/internal/caps"
	"gioui.org/gldevice/internal/dispose"
	"gioui.org/gldevice/internal/driver"
	"gioui.org/gldevice/internal/fbo"
	"gioui.org/gldevice/internal/gl"
	"gioui.org/gldevice/internal/log"
)

// bindingKey identifies a binding set by value. Targets are named by
// their serial numbers, which are never reused.
type bindingKey struct {
	n     int
	slots [driver.MaxRenderTargets]slotKey
}

type slotKey struct {
	target uint64
	slice  int
}

func keyOf(set []driver.Binding) bindingKey {
	if len(set) > driver.MaxRenderTargets {
		panic(fmt.Errorf("%d render targets bound, at most %d supported", len(set), driver.MaxRenderTargets))
	}
	k := bindingKey{n: len(set)}
	for i, bnd := range set {
		k.slots[i] = slotKey{target: bnd.Target.(*renderTarget).id, slice: bnd.Slice}
	}
	return k
}

func (k bindingKey) references(id uint64) bool {
	for _, s := range k.slots[:k.n] {
		if s.target == id {
			return true
		}
	}
	return false
}

type framebuffer struct {
	obj gl.Framebuffer
	// set is owned by the framebuffer.
	set []driver.Binding
	// uncached framebuffers reference deleted targets. They are already
	// queued for disposal.
	uncached bool
}

func hasDeleted(set []driver.Binding) bool {
	for _, bnd := range set {
		if bnd.Target.(*renderTarget).deleted {
			return true
		}
	}
	return false
}

// renderTargetCache maps binding sets to framebuffers. The resolve table
// holds the single-sampled framebuffers multisampled sets resolve into.
type renderTargetCache struct {
	b       *Backend
	primary *simplelru.LRU[bindingKey, *framebuffer]
	resolve *simplelru.LRU[bindingKey, *framebuffer]
	// current is nil when the default framebuffer is bound.
	current    *framebuffer
	currentKey bindingKey
}

func newRenderTargetCache(b *Backend, size int) (*renderTargetCache, error) {
	c := &renderTargetCache{b: b}
	evict := func(_ bindingKey, fb *framebuffer) {
		b.queue.Dispose(dispose.Handle{Kind: dispose.KindFramebuffer, ID: fb.obj.V})
	}
	var err error
	if c.primary, err = simplelru.NewLRU[bindingKey, *framebuffer](size, evict); err != nil {
		return nil, fmt.Errorf("opengl: framebuffer cache: %w", err)
	}
	if c.resolve, err = simplelru.NewLRU[bindingKey, *framebuffer](size, evict); err != nil {
		return nil, fmt.Errorf("opengl: framebuffer cache: %w", err)
	}
	return c, nil
}

// apply binds the framebuffer for set, creating it on a miss.
func (c *renderTargetCache) apply(set []driver.Binding) {
	b := c.b
	if len(set) == 0 {
		c.current = nil
		c.currentKey = bindingKey{}
		b.glstate.bindFramebuffer(b.fbo, gl.FRAMEBUFFER, gl.Framebuffer{})
		return
	}
	key := keyOf(set)
	fb, ok := c.primary.Get(key)
	switch {
	case ok:
		b.glstate.bindFramebuffer(b.fbo, gl.FRAMEBUFFER, fb.obj)
	case hasDeleted(set):
		fb = c.createUncached(set, false)
		log.Logger().Warn("render target bound after deletion", "framebuffer", fb.obj.V)
	default:
		fb = c.create(set, false)
		c.primary.Add(key, fb)
		log.Logger().Debug("framebuffer cache miss", "targets", len(set), "framebuffer", fb.obj.V)
	}
	c.current = fb
	c.currentKey = key
}

// create builds and binds a framebuffer for set. Resolve framebuffers
// attach the single-sampled textures even when a multisampled store
// exists.
func (c *renderTargetCache) create(set []driver.Binding, resolve bool) *framebuffer {
	b := c.b
	fb := &framebuffer{obj: b.fbo.CreateFramebuffer(), set: slices.Clone(set)}
	b.glstate.bindFramebuffer(b.fbo, gl.FRAMEBUFFER, fb.obj)
	for i, bnd := range set {
		rt := bnd.Target.(*renderTarget)
		att := gl.COLOR_ATTACHMENT0 + gl.Enum(i)
		switch {
		case resolve:
			b.fbo.AttachTexture(att, rt.faceTarget(bnd.Slice), rt.obj, 0)
		case rt.colorRB.Valid():
			b.fbo.AttachRenderbuffer(att, rt.colorRB)
		default:
			b.fbo.AttachTexture(att, rt.faceTarget(bnd.Slice), rt.obj, rt.samples)
		}
	}
	if first := set[0].Target.(*renderTarget); !resolve && first.depthRB.Valid() {
		b.fbo.AttachDepthStencil(first.depthRB, first.stencil)
	}
	if len(set) > 1 {
		b.fbo.DrawBuffers(len(set))
	}
	if b.opts.Debug {
		if st := b.fbo.CheckStatus(); st != gl.FRAMEBUFFER_COMPLETE {
			panic(fmt.Errorf("framebuffer incomplete: %s", fbo.StatusString(st)))
		}
	}
	return fb
}

// createUncached creates a framebuffer that is never entered into a
// table. It stays valid until the end of the next frame.
func (c *renderTargetCache) createUncached(set []driver.Binding, resolve bool) *framebuffer {
	fb := c.create(set, resolve)
	fb.uncached = true
	c.b.queue.Dispose(dispose.Handle{Kind: dispose.KindFramebuffer, ID: fb.obj.V})
	return fb
}

// resolveCurrent resolves the multisampled targets of the bound set and
// regenerates the mipmaps of its targets.
func (c *renderTargetCache) resolveCurrent() {
	fb := c.current
	if fb == nil {
		return
	}
	b := c.b
	multisampled := false
	for _, bnd := range fb.set {
		if bnd.Target.(*renderTarget).colorRB.Valid() {
			multisampled = true
			break
		}
	}
	if multisampled {
		var rfb *framebuffer
		if fb.uncached {
			rfb = c.createUncached(fb.set, true)
		} else if cached, ok := c.resolve.Get(c.currentKey); ok {
			rfb = cached
		} else {
			rfb = c.create(fb.set, true)
			c.resolve.Add(c.currentKey, rfb)
		}
		scissor := b.glstate.isEnabled(gl.SCISSOR_TEST)
		b.glstate.set(b.funcs, gl.SCISSOR_TEST, false)
		b.glstate.bindFramebuffer(b.fbo, gl.READ_FRAMEBUFFER, fb.obj)
		b.glstate.bindFramebuffer(b.fbo, gl.DRAW_FRAMEBUFFER, rfb.obj)
		discard := true
		for i, bnd := range fb.set {
			rt := bnd.Target.(*renderTarget)
			b.fbo.Resolve(i, rt.width, rt.height)
			discard = discard && rt.usage == driver.DiscardContents
		}
		if discard {
			atts := fbo.ColorAttachments(len(fb.set))
			if first := fb.set[0].Target.(*renderTarget); first.depthRB.Valid() {
				atts = append(atts, gl.DEPTH_ATTACHMENT)
				if first.stencil {
					atts = append(atts, gl.STENCIL_ATTACHMENT)
				}
			}
			b.fbo.Invalidate(gl.READ_FRAMEBUFFER, atts)
		}
		b.glstate.set(b.funcs, gl.SCISSOR_TEST, scissor)
		b.glstate.bindFramebuffer(b.fbo, gl.FRAMEBUFFER, fb.obj)
		if len(fb.set) > 1 && b.caps.Features.Has(caps.FeatureReadBuffer) {
			b.funcs.ReadBuffer(gl.COLOR_ATTACHMENT0)
		}
	}
	for _, bnd := range fb.set {
		rt := bnd.Target.(*renderTarget)
		if rt.levels > 1 {
			b.bindScratch(rt.texture)
			b.fbo.GenerateMipmap(rt.target)
		}
	}
}

// evictForTarget removes every entry of both tables whose set references
// rt. The removed framebuffers are disposed by the eviction callback.
func (c *renderTargetCache) evictForTarget(rt *renderTarget) {
	for _, tbl := range []*simplelru.LRU[bindingKey, *framebuffer]{c.primary, c.resolve} {
		for _, k := range tbl.Keys() {
			if k.references(rt.id) {
				tbl.Remove(k)
			}
		}
	}
	if c.current != nil && c.currentKey.references(rt.id) {
		c.b.bindTargets(nil)
	}
}

// purge disposes every cached framebuffer.
func (c *renderTargetCache) purge() {
	c.primary.Purge()
	c.resolve.Purge()
	c.current = nil
	c.currentKey = bindingKey{}
}
