// SPDX-License-Identifier: Unlicense OR MIT

//go:build !openbsd && !freebsd && !android && !ios && !js

// Command gldemo drives a device from a GLFW window. It renders a
// multisampled offscreen pass, composites it to the window and keeps a
// set of background goroutines creating and releasing vertex buffers, so
// that cross-goroutine creation and deferred disposal run every frame.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/sync/errgroup"

	"gioui.org/gldevice"
	"gioui.org/gldevice/internal/log"
)

var (
	debug    = flag.Bool("debug", false, "check framebuffer completeness and GL errors")
	samples  = flag.Int("samples", 4, "samples of the offscreen target")
	fboCache = flag.Int("fbo-cache", 0, "framebuffer cache size per table (0 for the default)")
	pending  = flag.Int("max-pending", 0, "flush disposals when more are pending (0 disables)")
	loaders  = flag.Int("loaders", 4, "background goroutines creating and releasing buffers")
	frames   = flag.Int("frames", 0, "exit after this many frames (0 runs until the window closes)")
	logLevel = flag.String("log-level", "info", "log level: debug, info, warn or error")
	logFile  = flag.String("log-file", "", "log to a rotating file instead of stderr")
)

func init() {
	// GLFW and the device must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	logger := log.New(*logLevel, *logFile)
	if err := run(logger); err != nil {
		logger.Error("gldemo failed", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const (
	vertexShader = `#version 150
in vec2 position;
in vec4 color;
uniform vec4 posFixup;
uniform vec4 vsConsts[1];
out vec4 vColor;
out vec2 vUV;
void main() {
	float s = sin(vsConsts[0].x), c = cos(vsConsts[0].x);
	vec2 p = mat2(c, s, -s, c) * position * vsConsts[0].y;
	vColor = color;
	vUV = position * 0.5 + 0.5;
	gl_Position = vec4(p, 0.0, 1.0);
	gl_Position.y = gl_Position.y * posFixup.y;
	gl_Position.xy += posFixup.zw * gl_Position.ww;
}`
	fragmentShader = `#version 150
in vec4 vColor;
in vec2 vUV;
uniform sampler2D scene;
uniform vec4 fsConsts[1];
out vec4 fragColor;
void main() {
	fragColor = mix(vColor, texture(scene, vUV), fsConsts[0].x);
}`
)

type demo struct {
	dev     gldevice.Device
	shaders gldevice.ShaderPair
	quad    gldevice.Buffer
	index   gldevice.Buffer
	layout  *gldevice.VertexLayout
	target  gldevice.RenderTarget
	dummy   gldevice.Texture
}

func run(logger *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(800, 600, "gldemo", nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	dev, err := gldevice.NewDevice(gldevice.OpenGL{
		GetProcAddress: glfw.GetProcAddress,
		SwapBuffers: func() error {
			window.SwapBuffers()
			return nil
		},
	}, gldevice.Config{
		Debug:                *debug,
		FramebufferCacheSize: *fboCache,
		MaxPendingDisposals:  *pending,
		Logger:               logger,
	})
	if err != nil {
		return err
	}
	defer dev.Release()

	d := &demo{dev: dev}
	if err := d.init(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < *loaders; i++ {
		g.Go(func() error {
			return churn(ctx, dev)
		})
	}
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	start := time.Now()
	var loopErr error
	for n := 0; !window.ShouldClose() && (*frames == 0 || n < *frames); n++ {
		glfw.PollEvents()
		w, h := window.GetFramebufferSize()
		if err := d.frame(image.Pt(w, h), time.Since(start)); err != nil {
			loopErr = err
			break
		}
		if err := dev.Present(); err != nil {
			loopErr = err
			break
		}
	}
	cancel()
	// Loaders block in Create calls until the owner services them.
	for {
		select {
		case err := <-done:
			if loopErr == nil {
				loopErr = err
			}
			dev.Flush()
			return loopErr
		default:
			dev.Service()
			time.Sleep(time.Millisecond)
		}
	}
}

func (d *demo) init() error {
	dev := d.dev
	vs, err := dev.CreateShader(gldevice.ShaderSource{
		Stage: gldevice.StageVertex,
		GLSL:  vertexShader,
		Inputs: []gldevice.InputLocation{
			{Name: "position", Usage: gldevice.UsagePosition},
			{Name: "color", Usage: gldevice.UsageColor},
		},
		Uniforms:     "vsConsts",
		UniformsSize: 1,
	})
	if err != nil {
		return err
	}
	fs, err := dev.CreateShader(gldevice.ShaderSource{
		Stage:        gldevice.StageFragment,
		GLSL:         fragmentShader,
		Uniforms:     "fsConsts",
		UniformsSize: 1,
		Samplers:     []gldevice.SamplerLocation{{Name: "scene", Slot: 0}},
	})
	if err != nil {
		return err
	}
	d.shaders = gldevice.ShaderPair{Vertex: vs, Fragment: fs}
	d.layout = &gldevice.VertexLayout{Stride: 12, Elements: []gldevice.VertexElement{
		{Offset: 0, Format: gldevice.ElementVec2, Usage: gldevice.UsagePosition},
		{Offset: 8, Format: gldevice.ElementColor, Usage: gldevice.UsageColor},
	}}
	if d.quad, err = dev.CreateBuffer(gldevice.BufferVertex, false, 4*12); err != nil {
		return err
	}
	d.quad.Upload(0, quadVertices())
	if d.index, err = dev.CreateBuffer(gldevice.BufferIndex, false, 6*2); err != nil {
		return err
	}
	idx := make([]byte, 12)
	for i, v := range []uint16{0, 1, 2, 2, 1, 3} {
		binary.LittleEndian.PutUint16(idx[i*2:], v)
	}
	d.index.Upload(0, idx)
	if d.dummy, err = dev.CreateTexture(gldevice.TextureDesc{Width: 1, Height: 1}); err != nil {
		return err
	}
	d.dummy.Upload(0, 0, image.Rect(0, 0, 1, 1), []byte{255, 255, 255, 255})
	d.target, err = dev.CreateRenderTarget(gldevice.RenderTargetDesc{
		Width:       512,
		Height:      512,
		Mipmap:      true,
		SampleCount: *samples,
		DepthFormat: gldevice.Depth24Stencil8,
	})
	return err
}

func quadVertices() []byte {
	pos := [4][2]float32{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	colors := [4]uint32{0xff0000ff, 0xff00ff00, 0xffff0000, 0xffffffff}
	data := make([]byte, 4*12)
	for i, p := range pos {
		v := data[i*12:]
		binary.LittleEndian.PutUint32(v[0:], math.Float32bits(p[0]))
		binary.LittleEndian.PutUint32(v[4:], math.Float32bits(p[1]))
		binary.LittleEndian.PutUint32(v[8:], colors[i])
	}
	return data
}

func (d *demo) frame(size image.Point, t time.Duration) error {
	dev := d.dev
	dev.Resize(size)
	angle := float32(t.Seconds())
	binding := []gldevice.VertexBinding{{Buffer: d.quad, Layout: d.layout}}

	dev.ApplyRenderTargets([]gldevice.Binding{{Target: d.target}})
	dev.Clear(gldevice.ClearColor|gldevice.ClearDepth|gldevice.ClearStencil, [4]float32{0.1, 0.1, 0.1, 1}, 1, 0)
	dev.SetDepthStencilState(gldevice.DepthStencilState{DepthTest: true, DepthWrite: true, DepthFunc: gldevice.CompareLessEqual})
	dev.SetBlendState(opaque())
	dev.SetRasterizerState(gldevice.RasterizerState{})
	dev.SetShaders(d.shaders)
	dev.SetTexture(0, d.dummy, gldevice.SamplerState{Filter: gldevice.FilterNearest})
	dev.SetUniforms(gldevice.StageVertex, []float32{angle, 0.7, 0, 0})
	dev.SetUniforms(gldevice.StageFragment, []float32{0, 0, 0, 0})
	dev.SetIndexBuffer(d.index, gldevice.Index16)
	dev.SetVertexBuffers(binding)
	if err := dev.DrawIndexedPrimitives(gldevice.Triangles, 0, 0, 4, 0, 2); err != nil {
		return err
	}
	dev.ResolveRenderTargets()

	dev.ApplyRenderTargets(nil)
	dev.Clear(gldevice.ClearColor, [4]float32{0, 0, 0, 1}, 1, 0)
	dev.SetDepthStencilState(gldevice.DepthStencilState{})
	dev.SetTexture(0, d.target, gldevice.SamplerState{Filter: gldevice.FilterLinearMipLinear})
	dev.SetUniforms(gldevice.StageVertex, []float32{-angle * 0.25, 0.9, 0, 0})
	dev.SetUniforms(gldevice.StageFragment, []float32{1, 0, 0, 0})
	return dev.DrawIndexedPrimitives(gldevice.Triangles, 0, 0, 4, 0, 2)
}

func opaque() gldevice.BlendState {
	var s gldevice.BlendState
	for i := range s.Targets {
		s.Targets[i].WriteMask = gldevice.MaskAll
	}
	return s
}

// churn creates and releases vertex buffers until ctx is done.
func churn(ctx context.Context, dev gldevice.Device) error {
	data := quadVertices()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(5 * time.Millisecond):
		}
		buf, err := dev.CreateBuffer(gldevice.BufferVertex, true, len(data))
		if err != nil {
			return err
		}
		buf.Upload(0, data)
		buf.Release()
	}
}
