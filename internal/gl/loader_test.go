// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"strings"
	"testing"
)

func anySymbol(string) bool { return true }

func TestResolvePriority(t *testing.T) {
	tests := []struct {
		name   string
		ver    [2]int
		es     bool
		exts   []string
		lookup func(string) bool
		fam    Family
		suffix string
		ok     bool
	}{
		{"core desktop", [2]int{3, 3}, false, nil, anySymbol, FamilyFramebufferObject, "", true},
		{"arb before ext", [2]int{2, 1}, false, []string{"GL_EXT_framebuffer_object", "GL_ARB_framebuffer_object"}, anySymbol, FamilyFramebufferObject, "", true},
		{"ext only", [2]int{2, 1}, false, []string{"GL_EXT_framebuffer_object"}, anySymbol, FamilyFramebufferObject, "EXT", true},
		{"none", [2]int{2, 1}, false, nil, anySymbol, FamilyFramebufferObject, "", false},
		{"es2 core fbo", [2]int{2, 0}, true, nil, anySymbol, FamilyFramebufferObject, "", true},
		{"es2 angle blit", [2]int{2, 0}, true, []string{"GL_ANGLE_framebuffer_blit", "GL_NV_framebuffer_blit"}, anySymbol, FamilyBlit, "ANGLE", true},
		{"es2 apple multisample", [2]int{2, 0}, true, []string{"GL_APPLE_framebuffer_multisample"}, anySymbol, FamilyMultisample, "APPLE", true},
		{"es2 apple resolve", [2]int{2, 0}, true, []string{"GL_APPLE_framebuffer_multisample"}, anySymbol, FamilyMultisampleResolve, "APPLE", true},
		{"es2 img", [2]int{2, 0}, true, []string{"GL_IMG_multisampled_render_to_texture"}, anySymbol, FamilyMultisampleTexture, "IMG", true},
		{"es2 discard", [2]int{2, 0}, true, []string{"GL_EXT_discard_framebuffer"}, anySymbol, FamilyInvalidate, "EXT", true},
		{"es3 invalidate", [2]int{3, 0}, true, []string{"GL_EXT_discard_framebuffer"}, anySymbol, FamilyInvalidate, "", true},
		{"missing symbol falls through", [2]int{2, 0}, true, []string{"GL_ANGLE_framebuffer_blit", "GL_NV_framebuffer_blit"},
			func(name string) bool { return !strings.HasSuffix(name, "ANGLE") }, FamilyBlit, "NV", true},
		{"es2 no instancing", [2]int{2, 0}, true, nil, anySymbol, FamilyInstancing, "", false},
		{"es2 angle instancing", [2]int{2, 0}, true, []string{"GL_ANGLE_instanced_arrays"}, anySymbol, FamilyInstancing, "ANGLE", true},
		{"gl3.3 instancing", [2]int{3, 3}, false, nil, anySymbol, FamilyInstancing, "", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := Resolve(test.ver, test.es, test.exts, test.lookup)
			suffix, ok := r.Bound(test.fam)
			if ok != test.ok || suffix != test.suffix {
				t.Errorf("Bound(%v) = %q, %v; want %q, %v", test.fam, suffix, ok, test.suffix, test.ok)
			}
		})
	}
}

func TestEntryPoints(t *testing.T) {
	if got := EntryPoints(FamilyInvalidate, "EXT"); len(got) != 1 || got[0] != "glDiscardFramebufferEXT" {
		t.Errorf("discard entry points: %v", got)
	}
	if got := EntryPoints(FamilyInstancing, "ANGLE"); len(got) != 2 || got[1] != "glVertexAttribDivisorANGLE" {
		t.Errorf("instancing entry points: %v", got)
	}
	if got := EntryPoints(FamilyBlit, "IMG"); got != nil {
		t.Errorf("unknown variant: %v", got)
	}
}

func TestParseGLVersion(t *testing.T) {
	tests := []struct {
		in  string
		ver [2]int
		es  bool
	}{
		{"OpenGL ES 3.2 Mesa 23.0", [2]int{3, 2}, true},
		{"WebGL 1.0", [2]int{2, 0}, true},
		{"4.6.0 NVIDIA 535.54", [2]int{4, 6}, false},
		{"2.1 Metal - 83.1", [2]int{2, 1}, false},
	}
	for _, test := range tests {
		ver, es, err := ParseGLVersion(test.in)
		if err != nil {
			t.Fatalf("%q: %v", test.in, err)
		}
		if ver != test.ver || es != test.es {
			t.Errorf("%q: got %v %v, want %v %v", test.in, ver, es, test.ver, test.es)
		}
	}
	if _, _, err := ParseGLVersion("garbage"); err == nil {
		t.Error("expected error for unparsable version")
	}
}
