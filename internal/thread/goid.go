// SPDX-License-Identifier: Unlicense OR MIT

package thread

import (
	"bytes"
	"fmt"
	"strconv"
)

// parseGoroutineID extracts the id from a stack header such as
// "goroutine 18 [running]:". It panics on anything else, since a zero id
// would match every goroutine.
func parseGoroutineID(header []byte) int64 {
	b, ok := bytes.CutPrefix(header, []byte("goroutine "))
	if !ok {
		panic(fmt.Errorf("thread: unexpected stack header %q", header))
	}
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil || id <= 0 {
		panic(fmt.Errorf("thread: parse goroutine id from %q", header))
	}
	return id
}
