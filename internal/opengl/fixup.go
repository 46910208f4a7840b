// SPDX-License-Identifier: Unlicense OR MIT

package opengl

// fixupUniform is the vec4 uniform shaders use to map positions from the
// device convention to GL clip space:
//
//	gl_Position.y = gl_Position.y * posFixup.y;
//	gl_Position.xy += posFixup.zw * gl_Position.ww;
const fixupUniform = "posFixup"

// fixupVector returns the fixup for the current viewport. Off-screen
// targets are rendered upside down so that their texture rows run top
// to bottom.
func fixupVector(b *Backend) [4]float32 {
	flip := float32(1)
	if b.targets.current != nil {
		flip = -1
	}
	v := [4]float32{1, flip, 0, 0}
	if w, h := b.viewport.Dx(), b.viewport.Dy(); w > 0 && h > 0 {
		// Shift by half a pixel so pixel centers land on integer
		// coordinates.
		v[2] = 1 / float32(w)
		v[3] = -flip / float32(h)
	}
	return v
}

// applyFixup uploads the fixup vector to p if it exposes the uniform and
// the vector differs from the one last uploaded to p.
func applyFixup(b *Backend, p *program) {
	if !p.fixup.Valid() {
		return
	}
	v := fixupVector(b)
	if p.hasFixup && p.fixupValue == v {
		return
	}
	b.funcs.Uniform4fv(p.fixup, v[:])
	p.fixupValue = v
	p.hasFixup = true
}
