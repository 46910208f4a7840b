// SPDX-License-Identifier: Unlicense OR MIT

// Package caps probes the capabilities of a GL context once, at device
// creation.
package caps

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"gioui.org/gldevice/internal/gl"
)

type Features uint32

const (
	FeatureFramebufferObject Features = 1 << iota
	FeatureBlit
	FeatureMultisample
	FeatureInvalidate
	FeatureDrawBuffers
	FeatureReadBuffer
	FeatureInstancing
	FeatureBaseVertex
	FeatureBaseInstance
	FeatureSeparateBlend
	FeaturePackedDepthStencil
	FeatureAnisotropy
	FeatureSRGB
	FeatureQuery
)

// Caps is immutable after Probe returns.
type Caps struct {
	Version  [2]int
	ES       bool
	Renderer string
	Vendor   string
	Features Features
	// Extensions is the extension list of the context.
	Extensions []string
	// Variants maps each bound family to its name suffix.
	Variants map[gl.Family]string

	MaxSamples       int
	MaxVertexAttribs int
	MaxDrawBuffers   int
	MaxTextureSize   int
	MaxTextureUnits  int
	MaxAnisotropy    float32
}

func (f Features) Has(feats Features) bool {
	return f&feats == feats
}

func (f Features) String() string {
	names := []string{
		"framebuffer_object", "blit", "multisample", "invalidate",
		"draw_buffers", "read_buffer", "instancing", "base_vertex",
		"base_instance", "separate_blend", "packed_depth_stencil",
		"anisotropy", "srgb", "query",
	}
	var set []string
	for i, n := range names {
		if f&(1<<i) != 0 {
			set = append(set, n)
		}
	}
	return strings.Join(set, ",")
}

// HasExtension reports whether the context advertises ext.
func (c *Caps) HasExtension(ext string) bool {
	return slices.Contains(c.Extensions, ext)
}

// Variant returns the suffix family f was bound with.
func (c *Caps) Variant(f gl.Family) (string, bool) {
	s, ok := c.Variants[f]
	return s, ok
}

// Probe queries the version, extensions and limits of the current
// context. It never fails for missing features; the caller decides
// which absent features are fatal.
func Probe(f gl.Functions) (*Caps, error) {
	ver, es, err := gl.ParseGLVersion(f.GetString(gl.VERSION))
	if err != nil {
		return nil, fmt.Errorf("caps: %w", err)
	}
	exts := gl.Extensions(f, ver, es)
	has := func(names ...string) bool {
		for _, n := range names {
			if slices.Contains(exts, n) {
				return true
			}
		}
		return false
	}
	c := &Caps{
		Version:  ver,
		ES:       es,
		Renderer: f.GetString(gl.RENDERER),
		Vendor:   f.GetString(gl.VENDOR),
		Variants: make(map[gl.Family]string),

		Extensions: exts,
	}
	feature := func(fam gl.Family, feat Features) bool {
		suffix, ok := f.Bound(fam)
		if ok {
			c.Variants[fam] = suffix
			c.Features |= feat
		}
		return ok
	}
	feature(gl.FamilyFramebufferObject, FeatureFramebufferObject)
	blit := feature(gl.FamilyBlit, FeatureBlit)
	feature(gl.FamilyInvalidate, FeatureInvalidate)
	feature(gl.FamilyDrawBuffers, FeatureDrawBuffers)
	feature(gl.FamilyReadBuffer, FeatureReadBuffer)
	feature(gl.FamilyInstancing, FeatureInstancing)
	feature(gl.FamilyBaseVertex, FeatureBaseVertex)
	feature(gl.FamilyBaseInstance, FeatureBaseInstance)
	feature(gl.FamilySeparateBlend, FeatureSeparateBlend)
	feature(gl.FamilyQuery, FeatureQuery)
	// Multisample storage is only useful with a way to resolve it.
	_, ms := f.Bound(gl.FamilyMultisample)
	_, appleResolve := f.Bound(gl.FamilyMultisampleResolve)
	_, msTexture := f.Bound(gl.FamilyMultisampleTexture)
	if ms && (blit || appleResolve || msTexture) {
		feature(gl.FamilyMultisample, FeatureMultisample)
		if appleResolve {
			feature(gl.FamilyMultisampleResolve, 0)
		}
		if msTexture {
			feature(gl.FamilyMultisampleTexture, 0)
		}
		c.MaxSamples = f.GetInteger(gl.MAX_SAMPLES)
	}
	atLeast3 := ver[0] >= 3
	if atLeast3 || has("GL_EXT_packed_depth_stencil", "GL_OES_packed_depth_stencil") {
		c.Features |= FeaturePackedDepthStencil
	}
	if atLeast3 || has("GL_EXT_sRGB", "GL_ARB_framebuffer_sRGB", "GL_EXT_texture_sRGB") {
		c.Features |= FeatureSRGB
	}
	if has("GL_EXT_texture_filter_anisotropic", "GL_ARB_texture_filter_anisotropic") {
		c.Features |= FeatureAnisotropy
		c.MaxAnisotropy = f.GetFloat(gl.MAX_TEXTURE_MAX_ANISOTROPY_EXT)
	}
	c.MaxVertexAttribs = f.GetInteger(gl.MAX_VERTEX_ATTRIBS)
	c.MaxTextureSize = f.GetInteger(gl.MAX_TEXTURE_SIZE)
	c.MaxTextureUnits = f.GetInteger(gl.MAX_TEXTURE_IMAGE_UNITS)
	c.MaxDrawBuffers = 1
	if c.Features.Has(FeatureDrawBuffers) {
		c.MaxDrawBuffers = min(f.GetInteger(gl.MAX_DRAW_BUFFERS), f.GetInteger(gl.MAX_COLOR_ATTACHMENTS))
	}
	return c, nil
}
