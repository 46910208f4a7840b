// SPDX-License-Identifier: Unlicense OR MIT

// Package gldevice implements a graphics device over OpenGL and OpenGL
// ES contexts. It owns render targets and the framebuffers composed from
// them, binds vertex attributes and keeps the render state of the
// context in sync with the state requested by its caller.
//
// A device is owned by the goroutine that creates it, which must be
// locked to the thread the context is current on. Resources may be
// created and released from any goroutine; native deletion is deferred
// to the owner and happens one Present after the release.
package gldevice

import (
	"errors"
	"fmt"

	"gioui.org/gldevice/internal/driver"
	"gioui.org/gldevice/internal/fbo"
	"gioui.org/gldevice/internal/log"

	// Register the OpenGL backend.
	_ "gioui.org/gldevice/internal/opengl"
)

var (
	// ErrUnsupportedPlatform is returned by NewDevice when the context
	// has no framebuffer object support.
	ErrUnsupportedPlatform = fbo.ErrUnsupportedPlatform
	// ErrInstancingUnsupported is returned by draws that need instanced
	// arrays on contexts without them.
	ErrInstancingUnsupported = driver.ErrInstancingUnsupported
	// ErrDeviceReleased is returned by calls on a released device.
	ErrDeviceReleased = driver.ErrDeviceReleased
)

// NewDevice creates a device for api. For OpenGL, the context must be
// current on the calling thread.
func NewDevice(api API, cfg Config) (Device, error) {
	if cfg.Logger != nil {
		log.Set(cfg.Logger)
	}
	if cfg.FramebufferCacheSize < 0 || cfg.MaxPendingDisposals < 0 {
		return nil, errors.New("gldevice: negative limit in config")
	}
	d, err := driver.NewDevice(api, driver.Options{
		Debug:                cfg.Debug,
		FramebufferCacheSize: cfg.FramebufferCacheSize,
		MaxPendingDisposals:  cfg.MaxPendingDisposals,
	})
	if err != nil {
		return nil, fmt.Errorf("gldevice: %w", err)
	}
	return d, nil
}
