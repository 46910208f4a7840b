// SPDX-License-Identifier: Unlicense OR MIT

package gldevice

import (
	"errors"
	"image"
	"runtime"
	"testing"

	"gioui.org/gldevice/internal/driver"
	"gioui.org/gldevice/internal/glfake"
	"gioui.org/gldevice/internal/opengl"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvFramebufferCache, "64")
	t.Setenv(EnvMaxPendingDisposals, "1024")
	t.Setenv(EnvLogLevel, "debug")
	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug || cfg.FramebufferCacheSize != 64 || cfg.MaxPendingDisposals != 1024 {
		t.Errorf("ConfigFromEnv = %+v", cfg)
	}
	if cfg.Logger == nil {
		t.Error("no logger for GLDEVICE_LOG_LEVEL")
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	for _, e := range []string{EnvDebug, EnvFramebufferCache, EnvMaxPendingDisposals, EnvLogLevel, EnvLogFile} {
		t.Setenv(e, "")
	}
	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg != (Config{}) {
		t.Errorf("ConfigFromEnv = %+v, want the zero config", cfg)
	}
}

func TestConfigFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name, value string
	}{
		{EnvDebug, "maybe"},
		{EnvFramebufferCache, "many"},
		{EnvMaxPendingDisposals, "-3"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv(test.name, test.value)
			if _, err := ConfigFromEnv(); err == nil {
				t.Errorf("%s=%s accepted", test.name, test.value)
			}
		})
	}
}

func TestNewDeviceRejectsNegativeLimits(t *testing.T) {
	if _, err := NewDevice(OpenGL{}, Config{FramebufferCacheSize: -1}); err == nil {
		t.Error("negative cache size accepted")
	}
}

func TestErrorsMatchBackend(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	_, err := opengl.NewWithFunctions(glfake.New(glfake.Config{Version: "2.1"}), nil, driver.Options{})
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("device on GL 2.1 without framebuffer objects = %v, want ErrUnsupportedPlatform", err)
	}
}

// TestFrame renders an offscreen pass, samples it on the default
// framebuffer and presents, using only the exported API.
func TestFrame(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	f := glfake.New(glfake.Config{})
	var swaps int
	b, err := opengl.NewWithFunctions(f, func() error { swaps++; return nil }, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var dev Device = b
	defer dev.Release()
	dev.Resize(image.Pt(320, 240))

	rt, err := dev.CreateRenderTarget(RenderTargetDesc{Width: 128, Height: 128, SampleCount: 4, DepthFormat: Depth24Stencil8})
	if err != nil {
		t.Fatal(err)
	}
	vs, err := dev.CreateShader(ShaderSource{
		Stage:  StageVertex,
		GLSL:   "attribute vec2 pos; uniform vec4 posFixup; void main() {}",
		Inputs: []InputLocation{{Name: "pos", Usage: UsagePosition}},
	})
	if err != nil {
		t.Fatal(err)
	}
	fs, err := dev.CreateShader(ShaderSource{
		Stage:    StageFragment,
		GLSL:     "uniform sampler2D src; void main() {}",
		Samplers: []SamplerLocation{{Name: "src"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	vb, err := dev.CreateBuffer(BufferVertex, false, 6*8)
	if err != nil {
		t.Fatal(err)
	}
	vb.Upload(0, make([]byte, 6*8))
	layout := &VertexLayout{Stride: 8, Elements: []VertexElement{{Format: ElementVec2, Usage: UsagePosition}}}

	shaders := ShaderPair{Vertex: vs, Fragment: fs}
	if got := dev.ApplyRenderTargets([]Binding{{Target: rt}}); got != rt {
		t.Fatalf("ApplyRenderTargets = %v, want %v", got, rt)
	}
	dev.Clear(ClearColor|ClearDepth|ClearStencil, [4]float32{}, 1, 0)
	dev.SetDepthStencilState(DepthStencilState{DepthTest: true, DepthWrite: true, DepthFunc: CompareLessEqual})
	if err := dev.ApplyVertexAttributes(shaders, []VertexBinding{{Buffer: vb, Layout: layout}}, 0); err != nil {
		t.Fatal(err)
	}
	dev.SetShaders(shaders)
	dev.SetVertexBuffers([]VertexBinding{{Buffer: vb, Layout: layout}})
	if err := dev.DrawPrimitives(Triangles, 0, 2); err != nil {
		t.Fatal(err)
	}
	dev.ResolveRenderTargets()

	dev.ApplyRenderTargets(nil)
	dev.SetDepthStencilState(DepthStencilState{})
	dev.SetTexture(0, rt, SamplerState{Filter: FilterLinear})
	if err := dev.DrawPrimitives(Triangles, 0, 2); err != nil {
		t.Fatal(err)
	}
	rt.Release()
	vb.Release()
	for i := 0; i < 2; i++ {
		if err := dev.Present(); err != nil {
			t.Fatal(err)
		}
	}
	if swaps != 2 {
		t.Errorf("swapped %d times, want 2", swaps)
	}
	if n := f.Count("BlitFramebuffer"); n != 1 {
		t.Errorf("resolved %d times, want 1", n)
	}
	if n := f.Count("DeleteFramebuffer"); n != 2 {
		t.Errorf("deleted %d framebuffers, want the primary and resolve framebuffers", n)
	}
	if n := f.Count("DeleteBuffer"); n != 1 {
		t.Errorf("deleted %d buffers, want 1", n)
	}
}
