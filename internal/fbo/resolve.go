// SPDX-License-Identifier: Unlicense OR MIT

package fbo

import (
	"gioui.org/gldevice/internal/caps"
	"gioui.org/gldevice/internal/gl"
)

type noResolver struct{}

func (noResolver) mode() MultisampleMode { return MultisampleNone }
func (noResolver) name() string          { return "nomsaa" }

func (noResolver) resolve(o *ops, i, width, height int) {}

// blitResolver resolves with glBlitFramebuffer and its EXT, ANGLE and NV
// variants.
type blitResolver struct{}

func (blitResolver) mode() MultisampleMode { return MultisampleRenderbuffer }
func (blitResolver) name() string          { return "blit" }

func (blitResolver) resolve(o *ops, i, width, height int) {
	att := gl.COLOR_ATTACHMENT0 + gl.Enum(i)
	if o.caps.Features.Has(caps.FeatureReadBuffer) {
		o.f.ReadBuffer(att)
	}
	if o.caps.Features.Has(caps.FeatureDrawBuffers) {
		bufs := make([]gl.Enum, i+1)
		bufs[i] = att
		o.f.DrawBuffers(bufs)
	} else if i > 0 {
		return
	}
	o.f.BlitFramebuffer(0, 0, width, height, 0, 0, width, height, gl.COLOR_BUFFER_BIT, gl.LINEAR)
}

// appleResolver resolves with APPLE_framebuffer_multisample, which
// always resolves the whole framebuffer and only has one color
// attachment.
type appleResolver struct{}

func (appleResolver) mode() MultisampleMode { return MultisampleRenderbuffer }
func (appleResolver) name() string          { return "apple" }

func (appleResolver) resolve(o *ops, i, width, height int) {
	if i > 0 {
		return
	}
	o.f.ResolveMultisampleFramebuffer()
}

// textureResolver covers the multisampled render-to-texture extensions,
// which resolve implicitly when the framebuffer is flushed.
type textureResolver struct{}

func (textureResolver) mode() MultisampleMode { return MultisampleTexture }
func (textureResolver) name() string          { return "implicit" }

func (textureResolver) resolve(o *ops, i, width, height int) {}
