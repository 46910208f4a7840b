// SPDX-License-Identifier: Unlicense OR MIT

// Package dispose implements frame-deferred release of GL objects.
package dispose

import "fmt"

// Kind tags the native object type of a Handle.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindTexture
	KindBuffer
	KindRenderbuffer
	KindShader
	KindProgram
	KindFramebuffer
	KindQuery
)

func (k Kind) String() string {
	switch k {
	case KindTexture:
		return "texture"
	case KindBuffer:
		return "buffer"
	case KindRenderbuffer:
		return "renderbuffer"
	case KindShader:
		return "shader"
	case KindProgram:
		return "program"
	case KindFramebuffer:
		return "framebuffer"
	case KindQuery:
		return "query"
	default:
		return "invalid"
	}
}

// Handle names a native object. The zero ID is never a live object.
type Handle struct {
	Kind Kind
	ID   uint
}

// Inert reports whether releasing h is a no-op.
func (h Handle) Inert() bool {
	return h.ID == 0 || h.Kind == KindInvalid
}

func (h Handle) String() string {
	return fmt.Sprintf("%s(%d)", h.Kind, h.ID)
}
