// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux || freebsd

package gl

import (
	"fmt"

	"github.com/ebitengine/purego"
)

var libraryNames = []string{"libGL.so.1", "libGL.so", "libGLESv2.so.2", "libGLESv2.so"}

func openLibrary() (uintptr, error) {
	var firstErr error
	for _, name := range libraryNames {
		lib, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			return lib, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return 0, fmt.Errorf("gl: failed to load OpenGL library: %w", firstErr)
}
