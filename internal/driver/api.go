// SPDX-License-Identifier: Unlicense OR MIT

package driver

import (
	"errors"
	"unsafe"
)

type API interface {
	implementsAPI()
}

// OpenGL selects the OpenGL backend. The context must be current on the
// calling thread when NewDevice is called, and stay current on it.
type OpenGL struct {
	// GetProcAddress resolves entry points of the current context. When
	// nil, symbols are looked up in the system GL library.
	GetProcAddress func(name string) unsafe.Pointer
	// SwapBuffers presents the default framebuffer. Nil for off-screen
	// contexts.
	SwapBuffers func() error
}

// Options configure a device independent of the API.
type Options struct {
	// Debug enables framebuffer completeness and glGetError checks.
	Debug bool
	// FramebufferCacheSize bounds each framebuffer table.
	FramebufferCacheSize int
	// MaxPendingDisposals triggers a forced disposal flush when more
	// handles are pending. Zero disables the limit.
	MaxPendingDisposals int
}

// DefaultFramebufferCacheSize is used when Options.FramebufferCacheSize
// is zero.
const DefaultFramebufferCacheSize = 256

// NewOpenGLDevice is set by the OpenGL backend.
var NewOpenGLDevice func(api OpenGL, opts Options) (Device, error)

// NewDevice creates a new Device given the api.
func NewDevice(api API, opts Options) (Device, error) {
	switch api := api.(type) {
	case OpenGL:
		if NewOpenGLDevice != nil {
			return NewOpenGLDevice(api, opts)
		}
	}
	return nil, errors.New("no available GPU driver")
}

func (OpenGL) implementsAPI() {}
