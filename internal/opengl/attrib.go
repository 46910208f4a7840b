// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"fmt"

	"gioui.org/gldevice/internal/caps"
	"gioui.org/gldevice/internal/driver"
	"gioui.org/gldevice/internal/gl"
)

// attribSlot is the state of one vertex buffer binding as last issued.
type attribSlot struct {
	buf       gl.Buffer
	offset    int
	frequency int
	layout    *driver.VertexLayout
	prog      gl.Program
}

// attribCache skips attribute setup for vertex buffer slots whose state
// is unchanged since the previous draw.
type attribCache struct {
	slots []attribSlot
	// dirty forces every slot to be reissued.
	dirty   bool
	enabled []bool
	want    []bool
}

func newAttribCache(maxAttribs int) attribCache {
	return attribCache{
		enabled: make([]bool, maxAttribs),
		want:    make([]bool, maxAttribs),
	}
}

// apply binds bindings for the inputs of vs.
func (c *attribCache) apply(b *Backend, prog *program, bindings []driver.VertexBinding, baseVertex int) error {
	instancing := b.caps.Features.Has(caps.FeatureInstancing)
	for i := range c.want {
		c.want[i] = false
	}
	for i, vb := range bindings {
		if vb.InstanceFrequency > 0 && !instancing {
			return fmt.Errorf("opengl: vertex binding %d: %w", i, driver.ErrInstancingUnsupported)
		}
		buf := vb.Buffer.(*buffer)
		layout := vb.Layout
		st := attribSlot{
			buf:       buf.obj,
			offset:    layout.Stride * (baseVertex + vb.VertexOffset),
			frequency: vb.InstanceFrequency,
			layout:    layout,
			prog:      prog.obj,
		}
		for _, e := range layout.Elements {
			if loc, ok := prog.vs.attribLocation(e.Usage, e.UsageIndex); ok && int(loc) < len(c.want) {
				c.want[loc] = true
			}
		}
		if i < len(c.slots) && c.slots[i] == st && !c.dirty {
			continue
		}
		b.glstate.bindBuffer(b.funcs, gl.ARRAY_BUFFER, buf.obj)
		for _, e := range layout.Elements {
			loc, ok := prog.vs.attribLocation(e.Usage, e.UsageIndex)
			if !ok || int(loc) >= len(c.want) {
				continue
			}
			size, typ, norm := toGLElement(e.Format)
			b.funcs.VertexAttribPointer(loc, size, typ, norm, layout.Stride, st.offset+e.Offset)
			if instancing {
				b.funcs.VertexAttribDivisor(loc, st.frequency)
			}
		}
		if i < len(c.slots) {
			c.slots[i] = st
		} else {
			c.slots = append(c.slots, st)
		}
	}
	// Forget slots beyond the bound set so rebinding them reissues state.
	c.slots = c.slots[:len(bindings)]
	c.dirty = false
	for loc, want := range c.want {
		if want == c.enabled[loc] {
			continue
		}
		if want {
			b.funcs.EnableVertexAttribArray(gl.Attrib(loc))
		} else {
			b.funcs.DisableVertexAttribArray(gl.Attrib(loc))
		}
		c.enabled[loc] = want
	}
	return nil
}

// forgetBuffer drops the slots that reference buf, whose id may be
// reused.
func (c *attribCache) forgetBuffer(buf gl.Buffer) {
	for i := range c.slots {
		if c.slots[i].buf == buf {
			c.slots[i] = attribSlot{}
		}
	}
}
