// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"golang.org/x/exp/slices"
)

// Variant is one naming of a Family's entry points.
type Variant struct {
	Suffix string
	// Extensions lists the extensions exporting the variant; any one of
	// them is enough.
	Extensions []string
	// Names overrides the family's entry point names for variants that
	// do not follow the suffix convention.
	Names []string
}

type familySpec struct {
	names []string
	// variants in priority order.
	variants []Variant
	// Minimum core versions exporting the unsuffixed names. The zero
	// value means the family is never core.
	coreGL, coreES [2]int
}

var families = [familyCount]familySpec{
	FamilyFramebufferObject: {
		names: []string{
			"glGenFramebuffers", "glBindFramebuffer", "glDeleteFramebuffers",
			"glGenRenderbuffers", "glBindRenderbuffer", "glDeleteRenderbuffers",
			"glRenderbufferStorage", "glFramebufferTexture2D",
			"glFramebufferRenderbuffer", "glCheckFramebufferStatus", "glGenerateMipmap",
		},
		variants: []Variant{
			{"", []string{"GL_ARB_framebuffer_object"}, nil},
			{"EXT", []string{"GL_EXT_framebuffer_object"}, nil},
			{"OES", []string{"GL_OES_framebuffer_object"}, nil},
		},
		coreGL: [2]int{3, 0}, coreES: [2]int{2, 0},
	},
	FamilyBlit: {
		names: []string{"glBlitFramebuffer"},
		variants: []Variant{
			{"", []string{"GL_ARB_framebuffer_object"}, nil},
			{"EXT", []string{"GL_EXT_framebuffer_blit"}, nil},
			{"ANGLE", []string{"GL_ANGLE_framebuffer_blit"}, nil},
			{"NV", []string{"GL_NV_framebuffer_blit"}, nil},
		},
		coreGL: [2]int{3, 0}, coreES: [2]int{3, 0},
	},
	FamilyMultisample: {
		names: []string{"glRenderbufferStorageMultisample"},
		variants: []Variant{
			{"", []string{"GL_ARB_framebuffer_object"}, nil},
			{"EXT", []string{"GL_EXT_framebuffer_multisample", "GL_EXT_multisampled_render_to_texture"}, nil},
			{"ANGLE", []string{"GL_ANGLE_framebuffer_multisample"}, nil},
			{"APPLE", []string{"GL_APPLE_framebuffer_multisample"}, nil},
			{"NV", []string{"GL_NV_framebuffer_multisample"}, nil},
			{"IMG", []string{"GL_IMG_multisampled_render_to_texture"}, nil},
		},
		coreGL: [2]int{3, 0}, coreES: [2]int{3, 0},
	},
	FamilyMultisampleResolve: {
		names: []string{"glResolveMultisampleFramebuffer"},
		variants: []Variant{
			{"APPLE", []string{"GL_APPLE_framebuffer_multisample"}, nil},
		},
	},
	FamilyMultisampleTexture: {
		names: []string{"glFramebufferTexture2DMultisample"},
		variants: []Variant{
			{"EXT", []string{"GL_EXT_multisampled_render_to_texture"}, nil},
			{"IMG", []string{"GL_IMG_multisampled_render_to_texture"}, nil},
		},
	},
	FamilyInvalidate: {
		names: []string{"glInvalidateFramebuffer"},
		variants: []Variant{
			{"", []string{"GL_ARB_invalidate_subdata"}, nil},
			{"EXT", []string{"GL_EXT_discard_framebuffer"}, []string{"glDiscardFramebufferEXT"}},
		},
		coreGL: [2]int{4, 3}, coreES: [2]int{3, 0},
	},
	FamilyDrawBuffers: {
		names: []string{"glDrawBuffers"},
		variants: []Variant{
			{"", nil, nil},
			{"ARB", []string{"GL_ARB_draw_buffers"}, nil},
			{"EXT", []string{"GL_EXT_draw_buffers"}, nil},
			{"NV", []string{"GL_NV_draw_buffers"}, nil},
		},
		coreGL: [2]int{2, 0}, coreES: [2]int{3, 0},
	},
	FamilyReadBuffer: {
		names: []string{"glReadBuffer"},
		variants: []Variant{
			{"", nil, nil},
			{"NV", []string{"GL_NV_read_buffer"}, nil},
		},
		coreGL: [2]int{1, 0}, coreES: [2]int{3, 0},
	},
	FamilyInstancing: {
		names: []string{"glDrawElementsInstanced", "glVertexAttribDivisor"},
		variants: []Variant{
			{"", nil, nil},
			{"ARB", []string{"GL_ARB_instanced_arrays"}, nil},
			{"EXT", []string{"GL_EXT_instanced_arrays"}, nil},
			{"ANGLE", []string{"GL_ANGLE_instanced_arrays"}, nil},
			{"NV", []string{"GL_NV_instanced_arrays"}, nil},
		},
		coreGL: [2]int{3, 3}, coreES: [2]int{3, 0},
	},
	FamilyBaseVertex: {
		names: []string{"glDrawRangeElementsBaseVertex"},
		variants: []Variant{
			{"", []string{"GL_ARB_draw_elements_base_vertex"}, nil},
			{"EXT", []string{"GL_EXT_draw_elements_base_vertex"}, nil},
			{"OES", []string{"GL_OES_draw_elements_base_vertex"}, nil},
		},
		coreGL: [2]int{3, 2}, coreES: [2]int{3, 2},
	},
	FamilyBaseInstance: {
		names: []string{"glDrawElementsInstancedBaseInstance"},
		variants: []Variant{
			{"", []string{"GL_ARB_base_instance"}, nil},
			{"EXT", []string{"GL_EXT_base_instance"}, nil},
		},
		coreGL: [2]int{4, 2},
	},
	FamilySeparateBlend: {
		names: []string{"glBlendFuncSeparatei", "glBlendEquationSeparatei"},
		variants: []Variant{
			{"", nil, nil},
			{"ARB", []string{"GL_ARB_draw_buffers_blend"}, nil},
			{"EXT", []string{"GL_EXT_draw_buffers_indexed"}, nil},
			{"OES", []string{"GL_OES_draw_buffers_indexed"}, nil},
		},
		coreGL: [2]int{4, 0}, coreES: [2]int{3, 2},
	},
	FamilyQuery: {
		names: []string{"glGenQueries", "glDeleteQueries", "glBeginQuery", "glEndQuery", "glGetQueryObjectuiv"},
		variants: []Variant{
			{"", nil, nil},
			{"ARB", []string{"GL_ARB_occlusion_query"}, nil},
			{"EXT", []string{"GL_EXT_occlusion_query_boolean"}, nil},
		},
		coreGL: [2]int{1, 5}, coreES: [2]int{3, 0},
	},
	FamilyVertexArray: {
		names: []string{"glGenVertexArrays", "glBindVertexArray", "glDeleteVertexArrays"},
		variants: []Variant{
			{"", []string{"GL_ARB_vertex_array_object"}, nil},
			{"OES", []string{"GL_OES_vertex_array_object"}, nil},
			{"APPLE", []string{"GL_APPLE_vertex_array_object"}, nil},
		},
		coreGL: [2]int{3, 0}, coreES: [2]int{3, 0},
	},
}

// Resolution records the variant bound for every Family.
type Resolution struct {
	suffix [familyCount]string
	ok     [familyCount]bool
}

// Bound implements the Bound method of Functions.
func (r *Resolution) Bound(f Family) (string, bool) {
	if f >= familyCount {
		return "", false
	}
	return r.suffix[f], r.ok[f]
}

// EntryPoints returns the names of family f's entry points under the
// variant with the given suffix.
func EntryPoints(f Family, suffix string) []string {
	fs := families[f]
	for _, v := range fs.variants {
		if v.Suffix == suffix {
			return fs.entryPoints(v)
		}
	}
	return nil
}

func (s familySpec) entryPoints(v Variant) []string {
	if v.Names != nil {
		return v.Names
	}
	names := make([]string, len(s.names))
	for i, n := range s.names {
		names[i] = n + v.Suffix
	}
	return names
}

// Resolve selects, per family, the first variant the context supports
// (by core version or advertised extension) and for which lookup finds
// every entry point. Drivers may return addresses for names they do not
// implement, so symbol presence alone is never sufficient.
func Resolve(ver [2]int, es bool, exts []string, lookup func(name string) bool) *Resolution {
	r := new(Resolution)
	for f := Family(0); f < familyCount; f++ {
		fs := families[f]
		for _, v := range fs.variants {
			if !variantSupported(fs, v, ver, es, exts) {
				continue
			}
			found := true
			for _, name := range fs.entryPoints(v) {
				if !lookup(name) {
					found = false
					break
				}
			}
			if found {
				r.suffix[f] = v.Suffix
				r.ok[f] = true
				break
			}
		}
	}
	return r
}

func variantSupported(fs familySpec, v Variant, ver [2]int, es bool, exts []string) bool {
	if v.Suffix == "" {
		core := fs.coreGL
		if es {
			core = fs.coreES
		}
		if core != [2]int{} && versionAtLeast(ver, core) {
			return true
		}
	}
	for _, e := range v.Extensions {
		if slices.Contains(exts, e) {
			return true
		}
	}
	return false
}

func versionAtLeast(ver, min [2]int) bool {
	return ver[0] > min[0] || ver[0] == min[0] && ver[1] >= min[1]
}
