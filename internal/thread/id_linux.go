// SPDX-License-Identifier: Unlicense OR MIT

package thread

import "golang.org/x/sys/unix"

// ID returns an identifier of the calling OS thread.
func ID() int64 {
	return int64(unix.Gettid())
}
