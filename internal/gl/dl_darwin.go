// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"fmt"

	"github.com/ebitengine/purego"
)

func openLibrary() (uintptr, error) {
	lib, err := purego.Dlopen("/System/Library/Frameworks/OpenGL.framework/OpenGL", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, fmt.Errorf("gl: failed to load OpenGL framework: %w", err)
	}
	return lib, nil
}
