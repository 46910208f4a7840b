// SPDX-License-Identifier: Unlicense OR MIT

// Package fbo hides the framebuffer extension variants of GL behind a
// single interface chosen once per context.
package fbo

import (
	"errors"
	"fmt"

	"gioui.org/gldevice/internal/caps"
	"gioui.org/gldevice/internal/gl"
)

// ErrUnsupportedPlatform is returned when the context has no form of
// framebuffer objects.
var ErrUnsupportedPlatform = errors.New("unsupported platform: no framebuffer object support")

// MultisampleMode describes how multisampled render targets are stored.
type MultisampleMode uint8

const (
	// MultisampleNone means sample counts are ignored.
	MultisampleNone MultisampleMode = iota
	// MultisampleRenderbuffer stores samples in a separate renderbuffer
	// that is resolved into the backing texture explicitly.
	MultisampleRenderbuffer
	// MultisampleTexture renders to the backing texture through an
	// implicitly resolved multisample attachment.
	MultisampleTexture
)

// Ops is the framebuffer interface used by the render target cache.
type Ops interface {
	CreateFramebuffer() gl.Framebuffer
	DeleteFramebuffer(fb gl.Framebuffer)
	BindFramebuffer(target gl.Enum, fb gl.Framebuffer)
	CreateRenderbuffer() gl.Renderbuffer
	DeleteRenderbuffer(rb gl.Renderbuffer)
	// RenderbufferStorage binds rb and allocates its storage. Samples
	// above zero request a multisampled store.
	RenderbufferStorage(rb gl.Renderbuffer, samples int, format gl.Enum, width, height int)
	// AttachTexture attaches level 0 of t. Samples above zero request an
	// implicitly resolved attachment and are only valid in
	// MultisampleTexture mode.
	AttachTexture(attachment, texTarget gl.Enum, t gl.Texture, samples int)
	AttachRenderbuffer(attachment gl.Enum, rb gl.Renderbuffer)
	// AttachDepthStencil attaches a depth or packed depth-stencil store.
	AttachDepthStencil(rb gl.Renderbuffer, stencil bool)
	// DepthFormat returns the renderbuffer format for a depth store and
	// whether it carries stencil bits.
	DepthFormat(depth24, stencil bool) (gl.Enum, bool)
	CheckStatus() gl.Enum
	// Resolve copies color attachment i of the multisampled framebuffer
	// bound to READ_FRAMEBUFFER into the framebuffer bound to
	// DRAW_FRAMEBUFFER.
	Resolve(i, width, height int)
	// Invalidate discards the contents of attachments. It is a no-op
	// without invalidate support.
	Invalidate(target gl.Enum, attachments []gl.Enum)
	GenerateMipmap(texTarget gl.Enum)
	// DrawBuffers enables the first n color attachments.
	DrawBuffers(n int)
	Multisample() MultisampleMode
	String() string
}

type ops struct {
	f       gl.Functions
	caps    *caps.Caps
	variant string
	// combined reports whether DEPTH_STENCIL_ATTACHMENT exists.
	combined bool
	res      resolver
}

type resolver interface {
	mode() MultisampleMode
	resolve(o *ops, i, width, height int)
	name() string
}

// New selects the framebuffer implementation for the probed context.
func New(f gl.Functions, c *caps.Caps) (Ops, error) {
	variant, ok := c.Variant(gl.FamilyFramebufferObject)
	if !ok {
		return nil, ErrUnsupportedPlatform
	}
	o := &ops{
		f:       f,
		caps:    c,
		variant: variant,
		// EXT_framebuffer_object and ES 2 lack a combined attachment point.
		combined: variant == "" && c.Version[0] >= 3,
		res:      noResolver{},
	}
	if c.Features.Has(caps.FeatureMultisample) && c.MaxSamples > 0 {
		switch {
		case c.Features.Has(caps.FeatureBlit):
			o.res = blitResolver{}
		case hasVariant(c, gl.FamilyMultisampleResolve):
			o.res = appleResolver{}
		case hasVariant(c, gl.FamilyMultisampleTexture):
			o.res = textureResolver{}
		}
	}
	return o, nil
}

func hasVariant(c *caps.Caps, fam gl.Family) bool {
	_, ok := c.Variant(fam)
	return ok
}

func (o *ops) String() string {
	v := o.variant
	if v == "" {
		v = "core"
	}
	return fmt.Sprintf("%s+%s", v, o.res.name())
}

func (o *ops) Multisample() MultisampleMode {
	return o.res.mode()
}

func (o *ops) CreateFramebuffer() gl.Framebuffer {
	return o.f.CreateFramebuffer()
}

func (o *ops) DeleteFramebuffer(fb gl.Framebuffer) {
	o.f.DeleteFramebuffer(fb)
}

func (o *ops) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	o.f.BindFramebuffer(target, fb)
}

func (o *ops) CreateRenderbuffer() gl.Renderbuffer {
	return o.f.CreateRenderbuffer()
}

func (o *ops) DeleteRenderbuffer(rb gl.Renderbuffer) {
	o.f.DeleteRenderbuffer(rb)
}

func (o *ops) RenderbufferStorage(rb gl.Renderbuffer, samples int, format gl.Enum, width, height int) {
	o.f.BindRenderbuffer(gl.RENDERBUFFER, rb)
	if samples > 0 && o.res.mode() != MultisampleNone {
		o.f.RenderbufferStorageMultisample(gl.RENDERBUFFER, min(samples, o.caps.MaxSamples), format, width, height)
	} else {
		o.f.RenderbufferStorage(gl.RENDERBUFFER, format, width, height)
	}
}

func (o *ops) AttachTexture(attachment, texTarget gl.Enum, t gl.Texture, samples int) {
	if samples > 0 && o.res.mode() == MultisampleTexture {
		o.f.FramebufferTexture2DMultisample(gl.FRAMEBUFFER, attachment, texTarget, t, 0, min(samples, o.caps.MaxSamples))
		return
	}
	o.f.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, texTarget, t, 0)
}

func (o *ops) AttachRenderbuffer(attachment gl.Enum, rb gl.Renderbuffer) {
	o.f.FramebufferRenderbuffer(gl.FRAMEBUFFER, attachment, gl.RENDERBUFFER, rb)
}

func (o *ops) AttachDepthStencil(rb gl.Renderbuffer, stencil bool) {
	switch {
	case !stencil:
		o.AttachRenderbuffer(gl.DEPTH_ATTACHMENT, rb)
	case o.combined:
		o.AttachRenderbuffer(gl.DEPTH_STENCIL_ATTACHMENT, rb)
	default:
		o.AttachRenderbuffer(gl.DEPTH_ATTACHMENT, rb)
		o.AttachRenderbuffer(gl.STENCIL_ATTACHMENT, rb)
	}
}

func (o *ops) DepthFormat(depth24, stencil bool) (gl.Enum, bool) {
	if stencil && o.caps.Features.Has(caps.FeaturePackedDepthStencil) {
		return gl.DEPTH24_STENCIL8, true
	}
	if depth24 && (!o.caps.ES || o.caps.Version[0] >= 3) {
		return gl.DEPTH_COMPONENT24, false
	}
	return gl.DEPTH_COMPONENT16, false
}

func (o *ops) CheckStatus() gl.Enum {
	return o.f.CheckFramebufferStatus(gl.FRAMEBUFFER)
}

func (o *ops) Resolve(i, width, height int) {
	o.res.resolve(o, i, width, height)
}

func (o *ops) Invalidate(target gl.Enum, attachments []gl.Enum) {
	if !o.caps.Features.Has(caps.FeatureInvalidate) || len(attachments) == 0 {
		return
	}
	o.f.InvalidateFramebuffer(target, attachments)
}

func (o *ops) GenerateMipmap(texTarget gl.Enum) {
	o.f.GenerateMipmap(texTarget)
}

func (o *ops) DrawBuffers(n int) {
	if !o.caps.Features.Has(caps.FeatureDrawBuffers) {
		return
	}
	o.f.DrawBuffers(ColorAttachments(n))
}

// ColorAttachments returns the first n color attachment points.
func ColorAttachments(n int) []gl.Enum {
	bufs := make([]gl.Enum, n)
	for i := range bufs {
		bufs[i] = gl.COLOR_ATTACHMENT0 + gl.Enum(i)
	}
	return bufs
}

// StatusString describes a glCheckFramebufferStatus result.
func StatusString(st gl.Enum) string {
	switch st {
	case gl.FRAMEBUFFER_COMPLETE:
		return "complete"
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACH:
		return "incomplete attachment"
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING:
		return "missing attachment"
	case gl.FRAMEBUFFER_INCOMPLETE_MULTISAMP:
		return "incomplete multisample"
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return "unsupported"
	default:
		return fmt.Sprintf("status %#x", uint(st))
	}
}
