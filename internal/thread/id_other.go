// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux

package thread

import "runtime"

// ID returns an identifier of the calling goroutine. A goroutine locked
// with runtime.LockOSThread is the only one running on its thread, so
// the goroutine identifies the GL thread.
func ID() int64 {
	var buf [64]byte
	return parseGoroutineID(buf[:runtime.Stack(buf[:], false)])
}
