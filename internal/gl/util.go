// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"errors"
	"fmt"
	"strings"
)

// LinkProgram links a program from compiled stages. Attribute i of
// attribs is bound to location i before linking.
func LinkProgram(f Functions, vs, fs Shader, attribs []string) (Program, error) {
	prog := f.CreateProgram()
	if !prog.Valid() {
		return Program{}, errors.New("glCreateProgram failed")
	}
	f.AttachShader(prog, vs)
	f.AttachShader(prog, fs)
	for i, a := range attribs {
		if a == "" {
			continue
		}
		f.BindAttribLocation(prog, Attrib(i), a)
	}
	f.LinkProgram(prog)
	if f.GetProgrami(prog, LINK_STATUS) == 0 {
		log := f.GetProgramInfoLog(prog)
		f.DeleteProgram(prog)
		return Program{}, fmt.Errorf("program link failed: %s", strings.TrimSpace(log))
	}
	return prog, nil
}

// CompileShader creates and compiles a shader stage of type typ.
func CompileShader(f Functions, typ Enum, src string) (Shader, error) {
	sh := f.CreateShader(typ)
	if !sh.Valid() {
		return Shader{}, errors.New("glCreateShader failed")
	}
	f.ShaderSource(sh, src)
	f.CompileShader(sh)
	if f.GetShaderi(sh, COMPILE_STATUS) == 0 {
		log := f.GetShaderInfoLog(sh)
		f.DeleteShader(sh)
		return Shader{}, fmt.Errorf("shader compilation failed: %s", strings.TrimSpace(log))
	}
	return sh, nil
}

// ParseGLVersion parses a GL_VERSION string. The boolean result reports
// whether the context is OpenGL ES.
func ParseGLVersion(glVer string) ([2]int, bool, error) {
	var ver [2]int
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &ver[0], &ver[1]); err == nil {
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "OpenGL ES-CM %d.%d", &ver[0], &ver[1]); err == nil {
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "WebGL %d.%d", &ver[0], &ver[1]); err == nil {
		// WebGL major version v corresponds to OpenGL ES version v + 1
		ver[0]++
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &ver[0], &ver[1]); err == nil {
		return ver, false, nil
	}
	return ver, false, fmt.Errorf("failed to parse OpenGL version (%s)", glVer)
}

// Extensions returns the extension names of the current context. Core
// profiles of desktop GL 3.0 and later only expose the indexed list.
func Extensions(f Functions, ver [2]int, es bool) []string {
	if !es && ver[0] >= 3 {
		n := f.GetInteger(NUM_EXTENSIONS)
		exts := make([]string, 0, n)
		for i := 0; i < n; i++ {
			exts = append(exts, f.GetStringi(EXTENSIONS, i))
		}
		if len(exts) > 0 {
			return exts
		}
	}
	return strings.Fields(f.GetString(EXTENSIONS))
}
