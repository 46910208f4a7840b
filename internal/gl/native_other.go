// SPDX-License-Identifier: Unlicense OR MIT

//go:build !darwin && !linux && !freebsd

package gl

import (
	"errors"
	"unsafe"
)

// Native is not available on this platform.
type Native struct {
	Functions
}

func Load(getProcAddress func(name string) unsafe.Pointer) (*Native, error) {
	return nil, errors.New("gl: native entry points are not supported on this platform")
}
