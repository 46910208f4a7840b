// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"errors"
	"image"
	"runtime"
	"strings"
	"testing"

	"golang.org/x/sync/errgroup"

	"gioui.org/gldevice/internal/dispose"
	"gioui.org/gldevice/internal/driver"
	"gioui.org/gldevice/internal/fbo"
	"gioui.org/gldevice/internal/gl"
	"gioui.org/gldevice/internal/glfake"
	"gioui.org/gldevice/internal/thread"
)

const (
	vertexGLSL = `
attribute vec4 position;
attribute vec2 texCoord;
uniform vec4 posFixup;
uniform vec4 vsConsts[2];
varying vec2 vUV;
void main() {
	vUV = texCoord;
	gl_Position = position;
	gl_Position.y = gl_Position.y * posFixup.y;
	gl_Position.xy += posFixup.zw * gl_Position.ww;
}`
	fragmentGLSL = `
uniform sampler2D tex;
varying vec2 vUV;
void main() {
	gl_FragColor = texture2D(tex, vUV);
}`
)

var (
	posLayout = &driver.VertexLayout{Stride: 16, Elements: []driver.VertexElement{
		{Format: driver.ElementVec4, Usage: driver.UsagePosition},
	}}
	uvLayout = &driver.VertexLayout{Stride: 8, Elements: []driver.VertexElement{
		{Format: driver.ElementVec2, Usage: driver.UsageTexCoord},
	}}
)

// newTestBackend creates a device on a fake context. The test goroutine
// is locked to its thread and owns the device.
func newTestBackend(t *testing.T, cfg glfake.Config, opts driver.Options) (*Backend, *glfake.Functions) {
	t.Helper()
	runtime.LockOSThread()
	t.Cleanup(runtime.UnlockOSThread)
	f := glfake.New(cfg)
	b, err := NewWithFunctions(f, nil, opts)
	if err != nil {
		t.Fatal(err)
	}
	b.Resize(image.Pt(64, 48))
	f.Reset()
	return b, f
}

func newTarget(t *testing.T, b *Backend, desc driver.RenderTargetDesc) driver.RenderTarget {
	t.Helper()
	if desc.Width == 0 {
		desc.Width, desc.Height = 32, 16
	}
	rt, err := b.CreateRenderTarget(desc)
	if err != nil {
		t.Fatal(err)
	}
	return rt
}

func newShaders(t *testing.T, b *Backend) driver.ShaderPair {
	t.Helper()
	vs, err := b.CreateShader(driver.ShaderSource{
		Stage: driver.StageVertex,
		GLSL:  vertexGLSL,
		Inputs: []driver.InputLocation{
			{Name: "position", Usage: driver.UsagePosition},
			{Name: "texCoord", Usage: driver.UsageTexCoord},
		},
		Uniforms:     "vsConsts",
		UniformsSize: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	fs, err := b.CreateShader(driver.ShaderSource{
		Stage:    driver.StageFragment,
		GLSL:     fragmentGLSL,
		Samplers: []driver.SamplerLocation{{Name: "tex", Slot: 0}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return driver.ShaderPair{Vertex: vs, Fragment: fs}
}

func newVertexBuffer(t *testing.T, b *Backend) driver.Buffer {
	t.Helper()
	buf, err := b.CreateBuffer(driver.BufferVertex, false, 256)
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

// setupDraw binds shaders and two vertex buffers.
func setupDraw(t *testing.T, b *Backend) []driver.VertexBinding {
	t.Helper()
	b.SetShaders(newShaders(t, b))
	bindings := []driver.VertexBinding{
		{Buffer: newVertexBuffer(t, b), Layout: posLayout},
		{Buffer: newVertexBuffer(t, b), Layout: uvLayout},
	}
	b.SetVertexBuffers(bindings)
	return bindings
}

func draw(t *testing.T, b *Backend) {
	t.Helper()
	if err := b.DrawPrimitives(driver.Triangles, 0, 2); err != nil {
		t.Fatal(err)
	}
}

func createdFramebuffers(f *glfake.Functions) []gl.Framebuffer {
	var fbs []gl.Framebuffer
	for _, c := range f.Named("CreateFramebuffer") {
		fbs = append(fbs, c.Args[0].(gl.Framebuffer))
	}
	return fbs
}

func TestRenderTargetCacheDistinctSets(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	t1 := newTarget(t, b, driver.RenderTargetDesc{})
	t2 := newTarget(t, b, driver.RenderTargetDesc{})
	t3 := newTarget(t, b, driver.RenderTargetDesc{})
	f.Reset()

	sets := [][]driver.Binding{
		{{Target: t1}},
		{{Target: t2}},
		{{Target: t1}, {Target: t2}},
		{{Target: t2}, {Target: t1}},
		{{Target: t3, Slice: 0}},
	}
	order := []int{0, 1, 0, 2, 3, 2, 4, 0, 4, 3, 1}
	for _, i := range order {
		if got := b.ApplyRenderTargets(sets[i]); got != sets[i][0].Target {
			t.Fatalf("ApplyRenderTargets returned %v, want %v", got, sets[i][0].Target)
		}
	}
	if n := len(createdFramebuffers(f)); n != len(sets) {
		t.Errorf("created %d framebuffers for %d distinct sets", n, len(sets))
	}
	if got := b.ApplyRenderTargets(nil); got != nil {
		t.Errorf("ApplyRenderTargets(nil) = %v, want nil", got)
	}
}

func TestRenderTargetCacheReuse(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	t1 := newTarget(t, b, driver.RenderTargetDesc{})
	t2 := newTarget(t, b, driver.RenderTargetDesc{})
	f.Reset()

	b.ApplyRenderTargets([]driver.Binding{{Target: t1}})
	b.ApplyRenderTargets([]driver.Binding{{Target: t2}})
	f.Reset()
	b.ApplyRenderTargets([]driver.Binding{{Target: t1}})
	if n := f.Count("CreateFramebuffer"); n != 0 {
		t.Fatalf("third apply created %d framebuffers", n)
	}
	binds := f.Named("BindFramebuffer")
	if len(binds) != 1 {
		t.Fatalf("got %d framebuffer binds, want 1", len(binds))
	}
	if got, want := binds[0].Args[1], b.targets.current.obj; got != want || want.V == 0 {
		t.Errorf("bound %v, want the first framebuffer %v", got, want)
	}
}

func TestRenderTargetCacheOwnsKey(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	t1 := newTarget(t, b, driver.RenderTargetDesc{})
	t2 := newTarget(t, b, driver.RenderTargetDesc{})
	f.Reset()

	set := []driver.Binding{{Target: t1}}
	b.ApplyRenderTargets(set)
	// Reusing the caller's slice must not alter the cached entry.
	set[0].Target = t2
	b.ApplyRenderTargets(set)
	set[0].Target = t1
	b.ApplyRenderTargets(set)
	if n := f.Count("CreateFramebuffer"); n != 2 {
		t.Errorf("created %d framebuffers, want 2", n)
	}
	if got := b.targets.current.set[0].Target; got != t1 {
		t.Errorf("cached set references %v, want %v", got, t1)
	}
}

func TestDeleteRenderTargetEvicts(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	t1 := newTarget(t, b, driver.RenderTargetDesc{SampleCount: 4})
	t2 := newTarget(t, b, driver.RenderTargetDesc{SampleCount: 4})
	f.Reset()

	for _, rt := range []driver.RenderTarget{t1, t2} {
		b.ApplyRenderTargets([]driver.Binding{{Target: rt}})
		b.ResolveRenderTargets()
	}
	b.ApplyRenderTargets([]driver.Binding{{Target: t1}, {Target: t2}})
	if got := b.targets.primary.Len(); got != 3 {
		t.Fatalf("primary table has %d entries, want 3", got)
	}
	if got := b.targets.resolve.Len(); got != 2 {
		t.Fatalf("resolve table has %d entries, want 2", got)
	}
	b.DeleteRenderTarget(t1)
	if got := b.targets.primary.Len(); got != 1 {
		t.Errorf("primary table has %d entries after delete, want 1", got)
	}
	if got := b.targets.resolve.Len(); got != 1 {
		t.Errorf("resolve table has %d entries after delete, want 1", got)
	}
	if b.targets.current != nil {
		t.Errorf("deleted target is still bound")
	}
	for i := 0; i < 2; i++ {
		if err := b.Present(); err != nil {
			t.Fatal(err)
		}
	}
	if got := f.Count("DeleteFramebuffer"); got != 3 {
		t.Errorf("deleted %d framebuffers, want 3", got)
	}
	f.Reset()
	b.ApplyRenderTargets([]driver.Binding{{Target: t2}})
	if n := f.Count("CreateFramebuffer"); n != 0 {
		t.Errorf("surviving set recreated %d framebuffers", n)
	}
	b.ApplyRenderTargets([]driver.Binding{{Target: t1}})
	if n := f.Count("CreateFramebuffer"); n != 1 {
		t.Errorf("evicted set created %d framebuffers, want a fresh one", n)
	}
}

func TestRenderTargetCacheCapacityEviction(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{FramebufferCacheSize: 1})
	t1 := newTarget(t, b, driver.RenderTargetDesc{})
	t2 := newTarget(t, b, driver.RenderTargetDesc{})
	f.Reset()

	for _, rt := range []driver.RenderTarget{t1, t2, t1} {
		b.ApplyRenderTargets([]driver.Binding{{Target: rt}})
	}
	if f.Count("DeleteFramebuffer") != 0 {
		t.Fatal("evicted framebuffer deleted before the frame ended")
	}
	for i := 0; i < 2; i++ {
		if err := b.Present(); err != nil {
			t.Fatal(err)
		}
	}
	if n := len(createdFramebuffers(f)); n != 3 {
		t.Errorf("created %d framebuffers, want 3", n)
	}
	if n := f.Count("DeleteFramebuffer"); n != 2 {
		t.Errorf("deleted %d framebuffers, want 2", n)
	}
	if n := b.targets.primary.Len(); n != 1 {
		t.Errorf("primary table has %d entries, want 1", n)
	}
}

func TestApplyDeletedTarget(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	rt := newTarget(t, b, driver.RenderTargetDesc{SampleCount: 4})
	b.ApplyRenderTargets([]driver.Binding{{Target: rt}})
	b.DeleteRenderTarget(rt)
	f.Reset()

	b.ApplyRenderTargets([]driver.Binding{{Target: rt}})
	b.ResolveRenderTargets()
	if n := len(createdFramebuffers(f)); n != 2 {
		t.Fatalf("created %d framebuffers, want 2", n)
	}
	if n := b.targets.primary.Len() + b.targets.resolve.Len(); n != 0 {
		t.Errorf("deleted target left %d cache entries", n)
	}
	for i := 0; i < 2; i++ {
		if err := b.Present(); err != nil {
			t.Fatal(err)
		}
	}
	// The framebuffer evicted by the deletion and the two uncached ones.
	if n := f.Count("DeleteFramebuffer"); n != 3 {
		t.Errorf("deleted %d framebuffers, want 3", n)
	}
	if b.targets.current != nil {
		t.Error("deleted framebuffer is still current")
	}
}

func TestResolve(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{Version: "4.3"}, driver.Options{})
	rt := newTarget(t, b, driver.RenderTargetDesc{Width: 32, Height: 16, SampleCount: 4, Mipmap: true, DepthFormat: driver.Depth24Stencil8})
	b.ApplyRenderTargets([]driver.Binding{{Target: rt}})
	b.glstate.set(f, gl.SCISSOR_TEST, true)
	f.Reset()

	b.ResolveRenderTargets()
	blits := f.Named("BlitFramebuffer")
	if len(blits) != 1 {
		t.Fatalf("got %d blits, want 1", len(blits))
	}
	if w, h := blits[0].Args[2], blits[0].Args[3]; w != 32 || h != 16 {
		t.Errorf("blit extent %vx%v, want 32x16", w, h)
	}
	var order []string
	for _, c := range f.Calls() {
		switch c.Name {
		case "Disable", "Enable":
			if c.Args[0] == gl.Enum(gl.SCISSOR_TEST) {
				order = append(order, c.Name)
			}
		case "BlitFramebuffer", "InvalidateFramebuffer", "GenerateMipmap":
			order = append(order, c.Name)
		}
	}
	want := "Disable BlitFramebuffer InvalidateFramebuffer Enable GenerateMipmap"
	if got := strings.Join(order, " "); got != want {
		t.Errorf("resolve order %q, want %q", got, want)
	}
	inv := f.Named("InvalidateFramebuffer")[0]
	if got := len(inv.Args[1].([]gl.Enum)); got != 3 {
		t.Errorf("invalidated %d attachments, want color, depth and stencil", got)
	}
	if !b.glstate.isEnabled(gl.SCISSOR_TEST) {
		t.Error("scissor test not restored")
	}

	// The resolve framebuffer is cached under the same key.
	f.Reset()
	b.ResolveRenderTargets()
	if n := f.Count("CreateFramebuffer"); n != 0 {
		t.Errorf("second resolve created %d framebuffers", n)
	}
}

func TestResolvePreserveContents(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{Version: "4.3"}, driver.Options{})
	rt := newTarget(t, b, driver.RenderTargetDesc{SampleCount: 4, Usage: driver.PreserveContents})
	b.ApplyRenderTargets([]driver.Binding{{Target: rt}})
	f.Reset()
	b.ResolveRenderTargets()
	if n := f.Count("InvalidateFramebuffer"); n != 0 {
		t.Errorf("preserved target invalidated %d times", n)
	}
}

func TestMipmapsSingleSampled(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	rt := newTarget(t, b, driver.RenderTargetDesc{Mipmap: true})
	b.ApplyRenderTargets([]driver.Binding{{Target: rt}})
	f.Reset()
	b.ResolveRenderTargets()
	if n := f.Count("BlitFramebuffer"); n != 0 {
		t.Errorf("single-sampled target blitted %d times", n)
	}
	if n := f.Count("GenerateMipmap"); n != 1 {
		t.Errorf("GenerateMipmap called %d times, want 1", n)
	}
}

// unitTracker replays ActiveTexture and BindTexture calls to find the
// texture each recorded call operated on.
type unitTracker struct {
	active gl.Enum
	bound  map[gl.Enum]gl.Texture
}

func trackUnits(b *Backend) *unitTracker {
	u := &unitTracker{active: b.glstate.texUnits.active, bound: make(map[gl.Enum]gl.Texture)}
	for i, tb := range b.glstate.texUnits.binds {
		u.bound[gl.TEXTURE0+gl.Enum(i)] = tb.obj
	}
	return u
}

// targets returns the texture bound to the active unit at every call
// named name.
func (u *unitTracker) targets(calls []glfake.Call, name string) []gl.Texture {
	var texs []gl.Texture
	for _, c := range calls {
		switch c.Name {
		case "ActiveTexture":
			u.active = c.Args[0].(gl.Enum)
		case "BindTexture":
			u.bound[u.active] = c.Args[1].(gl.Texture)
		case name:
			texs = append(texs, u.bound[u.active])
		}
	}
	return texs
}

func newTexture(t *testing.T, b *Backend) driver.Texture {
	t.Helper()
	tex, err := b.CreateTexture(driver.TextureDesc{Width: 8, Height: 8})
	if err != nil {
		t.Fatal(err)
	}
	return tex
}

func TestTextureCallsUseTheirUnit(t *testing.T) {
	tests := []struct {
		name string
		call string
		// texture creates the texture bound to unit 0.
		texture func(t *testing.T, b *Backend) driver.Texture
		run     func(t *testing.T, b *Backend, tex driver.Texture)
	}{
		{
			name:    "upload",
			call:    "TexSubImage2D",
			texture: newTexture,
			run: func(t *testing.T, b *Backend, tex driver.Texture) {
				tex.Upload(0, 0, image.Rect(0, 0, 2, 2), make([]byte, 16))
			},
		},
		{
			name:    "sampler",
			call:    "TexParameteri",
			texture: newTexture,
			run: func(t *testing.T, b *Backend, tex driver.Texture) {
				b.SetTexture(0, tex, driver.SamplerState{Filter: driver.FilterNearest})
				draw(t, b)
			},
		},
		{
			name: "mipmaps",
			call: "GenerateMipmap",
			texture: func(t *testing.T, b *Backend) driver.Texture {
				rt := newTarget(t, b, driver.RenderTargetDesc{Mipmap: true})
				b.ApplyRenderTargets([]driver.Binding{{Target: rt}})
				return rt
			},
			run: func(t *testing.T, b *Backend, tex driver.Texture) {
				b.ResolveRenderTargets()
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
			setupDraw(t, b)
			tex := tc.texture(t, b)
			b.SetTexture(0, tex, driver.SamplerState{})
			b.SetTexture(1, newTexture(t, b), driver.SamplerState{})
			draw(t, b)
			if b.glstate.texUnits.active != gl.TEXTURE0+1 {
				t.Fatalf("active unit %#x after draw, want TEXTURE1", b.glstate.texUnits.active)
			}
			units := trackUnits(b)
			f.Reset()

			tc.run(t, b, tex)
			var want gl.Texture
			switch tex := tex.(type) {
			case *texture:
				want = tex.obj
			case *renderTarget:
				want = tex.obj
			}
			got := units.targets(f.Calls(), tc.call)
			if len(got) == 0 {
				t.Fatalf("no %s calls", tc.call)
			}
			for i, g := range got {
				if g != want {
					t.Errorf("%s call %d modified texture %d, want %d", tc.call, i, g.V, want.V)
				}
			}
		})
	}
}

func TestDebugCompleteness(t *testing.T) {
	cfg := glfake.Config{FramebufferStatus: gl.FRAMEBUFFER_INCOMPLETE_ATTACH}
	t.Run("release", func(t *testing.T) {
		b, f := newTestBackend(t, cfg, driver.Options{})
		rt := newTarget(t, b, driver.RenderTargetDesc{})
		b.ApplyRenderTargets([]driver.Binding{{Target: rt}})
		if n := f.Count("CheckFramebufferStatus"); n != 0 {
			t.Errorf("release build checked completeness %d times", n)
		}
	})
	t.Run("debug", func(t *testing.T) {
		b, _ := newTestBackend(t, cfg, driver.Options{Debug: true})
		rt := newTarget(t, b, driver.RenderTargetDesc{})
		defer func() {
			err, _ := recover().(error)
			if err == nil || !strings.Contains(err.Error(), "incomplete attachment") {
				t.Errorf("recovered %v, want an incomplete attachment panic", err)
			}
		}()
		b.ApplyRenderTargets([]driver.Binding{{Target: rt}})
	})
}

func TestUnsupportedPlatform(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	_, err := NewWithFunctions(glfake.New(glfake.Config{Version: "2.1"}), nil, driver.Options{})
	if !errors.Is(err, fbo.ErrUnsupportedPlatform) {
		t.Errorf("NewWithFunctions = %v, want ErrUnsupportedPlatform", err)
	}
}

func TestAttributeCache(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	bindings := setupDraw(t, b)
	draw(t, b)
	if n := f.Count("VertexAttribPointer"); n != 2 {
		t.Fatalf("first draw issued %d attribute pointers, want 2", n)
	}

	f.Reset()
	draw(t, b)
	for _, name := range []string{"BindBuffer", "VertexAttribPointer", "EnableVertexAttribArray", "DisableVertexAttribArray"} {
		if n := f.Count(name); n != 0 {
			t.Errorf("identical draw issued %d %s calls", n, name)
		}
	}

	f.Reset()
	bindings[1].VertexOffset = 3
	b.SetVertexBuffers(bindings)
	draw(t, b)
	ptrs := f.Named("VertexAttribPointer")
	if len(ptrs) != 1 {
		t.Fatalf("changed slot issued %d attribute pointers, want 1", len(ptrs))
	}
	if loc, off := ptrs[0].Args[0], ptrs[0].Args[5]; loc != gl.Attrib(1) || off != 3*uvLayout.Stride {
		t.Errorf("rebound location %v at offset %v, want 1 at %d", loc, off, 3*uvLayout.Stride)
	}

	f.Reset()
	b.SetVertexBuffers(bindings[:1])
	draw(t, b)
	if n := f.Count("EnableVertexAttribArray"); n != 0 {
		t.Errorf("dropping a slot enabled %d attributes", n)
	}
	dis := f.Named("DisableVertexAttribArray")
	if len(dis) != 1 || dis[0].Args[0] != gl.Attrib(1) {
		t.Errorf("dropping a slot disabled %v, want location 1 only", dis)
	}
}

func TestBaseVertexOffsets(t *testing.T) {
	// Without native base vertex draws the base vertex moves the
	// attribute offsets.
	b, f := newTestBackend(t, glfake.Config{Version: "3.0"}, driver.Options{})
	setupDraw(t, b)
	ib, err := b.CreateBuffer(driver.BufferIndex, false, 64)
	if err != nil {
		t.Fatal(err)
	}
	b.SetIndexBuffer(ib, driver.Index16)
	f.Reset()
	if err := b.DrawIndexedPrimitives(driver.Triangles, 5, 0, 4, 6, 2); err != nil {
		t.Fatal(err)
	}
	ptrs := f.Named("VertexAttribPointer")
	if len(ptrs) != 2 || ptrs[0].Args[5] != 5*posLayout.Stride {
		t.Errorf("attribute pointers %v, want position offset %d", ptrs, 5*posLayout.Stride)
	}
	elems := f.Named("DrawElements")
	if len(elems) != 1 || elems[0].Args[1] != 6 || elems[0].Args[3] != 12 {
		t.Errorf("DrawElements calls %v, want 6 indices at byte offset 12", elems)
	}
}

func TestNativeBaseVertex(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	setupDraw(t, b)
	ib, err := b.CreateBuffer(driver.BufferIndex, false, 64)
	if err != nil {
		t.Fatal(err)
	}
	b.SetIndexBuffer(ib, driver.Index32)
	if err := b.DrawIndexedPrimitives(driver.Triangles, 0, 0, 4, 0, 2); err != nil {
		t.Fatal(err)
	}
	f.Reset()
	if err := b.DrawIndexedPrimitives(driver.Triangles, 7, 0, 4, 0, 2); err != nil {
		t.Fatal(err)
	}
	if n := f.Count("VertexAttribPointer"); n != 0 {
		t.Errorf("base vertex change rebound %d attributes", n)
	}
	calls := f.Named("DrawRangeElementsBaseVertex")
	if len(calls) != 1 || calls[0].Args[6] != 7 {
		t.Errorf("DrawRangeElementsBaseVertex calls %v, want base vertex 7", calls)
	}
}

func TestFixup(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	setupDraw(t, b)
	rt := newTarget(t, b, driver.RenderTargetDesc{Width: 32, Height: 16})

	lastFixup := func() []float32 {
		t.Helper()
		ups := f.Uploads(fixupUniform)
		if len(ups) == 0 {
			t.Fatal("no fixup uploaded")
		}
		return ups[len(ups)-1].Values
	}
	draw(t, b)
	if v := lastFixup(); v[1] <= 0 || v[2] != 1.0/64 {
		t.Errorf("default target fixup %v, want positive flip and 1/64 x offset", v)
	}
	f.Reset()
	draw(t, b)
	if n := len(f.Uploads(fixupUniform)); n != 0 {
		t.Errorf("unchanged fixup uploaded %d times", n)
	}

	b.ApplyRenderTargets([]driver.Binding{{Target: rt}})
	draw(t, b)
	if v := lastFixup(); v[1] >= 0 || v[3] != 1.0/16 {
		t.Errorf("render target fixup %v, want negative flip and 1/16 y offset", v)
	}
	b.ApplyRenderTargets(nil)
	draw(t, b)
	if v := lastFixup(); v[1] <= 0 {
		t.Errorf("fixup %v after unbinding, want positive flip", v)
	}
}

func TestUniformUpload(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	setupDraw(t, b)
	b.SetUniforms(driver.StageVertex, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	draw(t, b)
	draw(t, b)
	ups := f.Uploads("vsConsts")
	if len(ups) != 1 {
		t.Fatalf("uploaded constants %d times, want 1", len(ups))
	}
	if n := len(ups[0].Values); n != 8 {
		t.Errorf("uploaded %d floats, want the 8 the shader declares", n)
	}
}

func TestStateGating(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	setupDraw(t, b)
	blend := driver.BlendState{}
	blend.Targets[0] = driver.TargetBlend{
		Enable:    true,
		SrcColor:  driver.BlendSrcAlpha,
		DstColor:  driver.BlendOneMinusSrcAlpha,
		SrcAlpha:  driver.BlendOne,
		DstAlpha:  driver.BlendOneMinusSrcAlpha,
		WriteMask: driver.MaskAll,
	}
	b.SetBlendState(blend)
	draw(t, b)
	if n := f.Count("BlendFuncSeparate"); n != 1 {
		t.Errorf("blend applied %d times, want 1", n)
	}
	f.Reset()
	b.SetBlendState(blend)
	draw(t, b)
	if n := f.Count("BlendFuncSeparate"); n != 0 {
		t.Errorf("unchanged blend applied %d times", n)
	}
}

func TestScissorOrigin(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	setupDraw(t, b)
	rt := newTarget(t, b, driver.RenderTargetDesc{Width: 32, Height: 16})
	b.SetRasterizerState(driver.RasterizerState{Scissor: true})
	b.SetScissor(image.Rect(2, 4, 12, 10))
	draw(t, b)
	b.ApplyRenderTargets([]driver.Binding{{Target: rt}})
	draw(t, b)
	sc := f.Named("Scissor")
	if len(sc) != 2 {
		t.Fatalf("got %d scissor calls, want 2", len(sc))
	}
	if y := sc[0].Args[1]; y != 48-10 {
		t.Errorf("default target scissor y = %v, want %d", y, 48-10)
	}
	if y := sc[1].Args[1]; y != 4 {
		t.Errorf("render target scissor y = %v, want 4", y)
	}
}

func TestDrawWithoutShadersPanics(t *testing.T) {
	b, _ := newTestBackend(t, glfake.Config{}, driver.Options{})
	defer func() {
		if recover() == nil {
			t.Error("draw without shaders did not panic")
		}
	}()
	b.DrawPrimitives(driver.Triangles, 0, 1)
}

func TestInstancingUnsupported(t *testing.T) {
	b, _ := newTestBackend(t, glfake.Config{Version: "OpenGL ES 2.0"}, driver.Options{})
	bindings := setupDraw(t, b)
	err := b.DrawInstancedPrimitives(driver.Triangles, 0, 0, 4, 0, 2, 10)
	if !errors.Is(err, driver.ErrInstancingUnsupported) {
		t.Errorf("instanced draw = %v, want ErrInstancingUnsupported", err)
	}
	bindings[1].InstanceFrequency = 1
	b.SetVertexBuffers(bindings)
	if err := b.DrawPrimitives(driver.Triangles, 0, 2); !errors.Is(err, driver.ErrInstancingUnsupported) {
		t.Errorf("draw with per-instance data = %v, want ErrInstancingUnsupported", err)
	}
}

func TestInstancedDraw(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	bindings := setupDraw(t, b)
	bindings[1].InstanceFrequency = 1
	b.SetVertexBuffers(bindings)
	ib, err := b.CreateBuffer(driver.BufferIndex, true, 64)
	if err != nil {
		t.Fatal(err)
	}
	b.SetIndexBuffer(ib, driver.Index16)
	if err := b.DrawInstancedPrimitives(driver.Triangles, 0, 0, 4, 0, 2, 10); err != nil {
		t.Fatal(err)
	}
	var divisors []int
	for _, c := range f.Named("VertexAttribDivisor") {
		divisors = append(divisors, c.Args[1].(int))
	}
	if len(divisors) != 2 || divisors[0] != 0 || divisors[1] != 1 {
		t.Errorf("divisors %v, want [0 1]", divisors)
	}
	if n := f.Count("DrawElementsInstanced"); n != 1 {
		t.Errorf("DrawElementsInstanced called %d times", n)
	}
}

func TestDisposalDeferral(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	buf := newVertexBuffer(t, b)
	buf.Release()
	if err := b.Present(); err != nil {
		t.Fatal(err)
	}
	if n := f.Count("DeleteBuffer"); n != 0 {
		t.Fatalf("buffer deleted at the boundary ending its frame")
	}
	if err := b.Present(); err != nil {
		t.Fatal(err)
	}
	if n := f.Count("DeleteBuffer"); n != 1 {
		t.Errorf("buffer deleted %d times by the following boundary, want 1", n)
	}
	b.DisposeResource(dispose.Handle{})
	b.DisposeResource(dispose.Handle{Kind: dispose.KindBuffer})
	if n := b.queue.Len(); n != 0 {
		t.Errorf("inert handles queued: %d", n)
	}
}

func TestDisposalOwnerThread(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	owner := thread.ID()

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 4; j++ {
				buf, err := b.CreateBuffer(driver.BufferVertex, true, 16)
				if err != nil {
					return err
				}
				buf.Upload(0, make([]byte, 16))
				buf.Release()
			}
			return nil
		})
	}
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	for waiting := true; waiting; {
		select {
		case err := <-done:
			if err != nil {
				t.Fatal(err)
			}
			waiting = false
		default:
			b.Service()
			runtime.Gosched()
		}
	}
	for i := 0; i < 2; i++ {
		if err := b.Present(); err != nil {
			t.Fatal(err)
		}
	}
	if n := f.Count("DeleteBuffer"); n != 32 {
		t.Errorf("deleted %d buffers, want 32", n)
	}
	for _, c := range f.Calls() {
		if c.Thread != owner {
			t.Fatalf("%s ran on thread %d, owner is %d", c.Name, c.Thread, owner)
		}
	}
}

func TestOffThreadStatePanics(t *testing.T) {
	b, _ := newTestBackend(t, glfake.Config{}, driver.Options{})
	var g errgroup.Group
	g.Go(func() (err error) {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer func() {
			if recover() == nil {
				err = errors.New("SetViewport off the owner thread did not panic")
			}
		}()
		b.SetViewport(image.Rect(0, 0, 1, 1))
		return nil
	})
	if err := g.Wait(); err != nil {
		t.Error(err)
	}
}

func TestRenderTargetReleaseOffThread(t *testing.T) {
	b, _ := newTestBackend(t, glfake.Config{}, driver.Options{})
	rt := newTarget(t, b, driver.RenderTargetDesc{})
	b.ApplyRenderTargets([]driver.Binding{{Target: rt}})
	var g errgroup.Group
	g.Go(func() error {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		rt.Release()
		return nil
	})
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if b.targets.primary.Len() != 1 {
		t.Fatal("release evicted before the owner serviced it")
	}
	if err := b.Present(); err != nil {
		t.Fatal(err)
	}
	if n := b.targets.primary.Len(); n != 0 {
		t.Errorf("primary table has %d entries after release, want 0", n)
	}
}

func TestMaxPendingDisposals(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{MaxPendingDisposals: 2})
	for i := 0; i < 3; i++ {
		newVertexBuffer(t, b).Release()
	}
	b.ApplyRenderTargets(nil)
	if n := f.Count("Finish"); n != 1 {
		t.Errorf("Finish called %d times, want 1", n)
	}
	if n := f.Count("DeleteBuffer"); n != 3 {
		t.Errorf("deleted %d buffers, want 3", n)
	}
}

func TestFlush(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	newVertexBuffer(t, b).Release()
	b.Flush()
	if n := f.Count("DeleteBuffer"); n != 1 {
		t.Errorf("Flush deleted %d buffers, want 1", n)
	}
}

func TestPresentSwapErrorEndsFrame(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	errSwap := errors.New("surface lost")
	f := glfake.New(glfake.Config{})
	b, err := NewWithFunctions(f, func() error { return errSwap }, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	newVertexBuffer(t, b).Release()
	for i := 0; i < 2; i++ {
		if err := b.Present(); !errors.Is(err, errSwap) {
			t.Fatalf("Present returned %v, want %v", err, errSwap)
		}
	}
	if n := f.Count("DeleteBuffer"); n != 1 {
		t.Errorf("deleted %d buffers across failed swaps, want 1", n)
	}
	if n := b.queue.Len(); n != 0 {
		t.Errorf("%d disposals pending", n)
	}
}

func TestShaderReleaseDisposesPrograms(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	setupDraw(t, b)
	draw(t, b)
	b.pipe.program.vs.Release()
	for i := 0; i < 2; i++ {
		if err := b.Present(); err != nil {
			t.Fatal(err)
		}
	}
	if n := f.Count("DeleteProgram"); n != 1 {
		t.Errorf("deleted %d programs, want 1", n)
	}
	if n := f.Count("DeleteShader"); n != 1 {
		t.Errorf("deleted %d shaders, want 1", n)
	}
}

func TestClearRestoresMasks(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	b.glstate.setDepthMask(f, false)
	f.Reset()
	b.Clear(driver.ClearDepth, [4]float32{}, 1, 0)
	var names []string
	for _, c := range f.Calls() {
		names = append(names, c.Name)
	}
	if got, want := strings.Join(names, " "), "DepthMask Clear DepthMask"; got != want {
		t.Errorf("clear issued %q, want %q", got, want)
	}
	if b.glstate.depthMask {
		t.Error("depth mask not restored")
	}
}

func TestReadPixelsFlip(t *testing.T) {
	b, _ := newTestBackend(t, glfake.Config{}, driver.Options{})
	pix := make([]byte, 2*3*4)
	if err := b.ReadPixels(image.Rect(0, 0, 2, 3), pix); err != nil {
		t.Fatal(err)
	}
	if pix[0] != 2 || pix[len(pix)-1] != 0 {
		t.Errorf("default target rows not flipped: first %d, last %d", pix[0], pix[len(pix)-1])
	}
	rt := newTarget(t, b, driver.RenderTargetDesc{})
	b.ApplyRenderTargets([]driver.Binding{{Target: rt}})
	if err := b.ReadPixels(image.Rect(0, 0, 2, 3), pix); err != nil {
		t.Fatal(err)
	}
	if pix[0] != 0 || pix[len(pix)-1] != 2 {
		t.Errorf("render target rows flipped: first %d, last %d", pix[0], pix[len(pix)-1])
	}
	if err := b.ReadPixels(image.Rect(0, 0, 4, 4), pix); err == nil {
		t.Error("short buffer accepted")
	}
}

func TestQuery(t *testing.T) {
	b, _ := newTestBackend(t, glfake.Config{}, driver.Options{})
	q, err := b.CreateQuery()
	if err != nil {
		t.Fatal(err)
	}
	q.Begin()
	q.End()
	if n, ok := q.Result(); !ok || n != 42 {
		t.Errorf("Result = %d, %v, want 42, true", n, ok)
	}
}

func TestRelease(t *testing.T) {
	b, f := newTestBackend(t, glfake.Config{}, driver.Options{})
	setupDraw(t, b)
	rt := newTarget(t, b, driver.RenderTargetDesc{})
	b.ApplyRenderTargets([]driver.Binding{{Target: rt}})
	draw(t, b)
	b.Release()
	if n := f.Count("DeleteFramebuffer"); n != 1 {
		t.Errorf("Release deleted %d framebuffers, want 1", n)
	}
	if n := f.Count("DeleteProgram"); n != 1 {
		t.Errorf("Release deleted %d programs, want 1", n)
	}
	if _, err := b.CreateTexture(driver.TextureDesc{Width: 1, Height: 1}); !errors.Is(err, driver.ErrDeviceReleased) {
		t.Errorf("CreateTexture after Release = %v, want ErrDeviceReleased", err)
	}
	if err := b.Present(); !errors.Is(err, driver.ErrDeviceReleased) {
		t.Errorf("Present after Release = %v, want ErrDeviceReleased", err)
	}
}
