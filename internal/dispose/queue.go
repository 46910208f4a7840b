// SPDX-License-Identifier: Unlicense OR MIT

package dispose

import "sync"

// Queue defers deletion of handles by one presentation boundary.
// Dispose may be called from any goroutine; Boundary and Flush only from
// the thread that owns the GL context.
type Queue struct {
	mu sync.Mutex
	// next is filled by Dispose during the current frame.
	next []Handle
	// ready was filled during the previous frame and is deleted at the
	// next boundary.
	ready []Handle
	// spare is the drained list kept for reuse.
	spare []Handle
}

// Dispose schedules h for deletion. Inert handles are ignored.
func (q *Queue) Dispose(h Handle) {
	if h.Inert() {
		return
	}
	q.mu.Lock()
	q.next = append(q.next, h)
	q.mu.Unlock()
}

// Len returns the number of handles not yet deleted.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.next) + len(q.ready)
}

// Boundary deletes the handles disposed before the previous boundary and
// promotes the handles disposed since then. It returns the number of
// handles deleted.
func (q *Queue) Boundary(del func(Handle)) int {
	q.mu.Lock()
	drain := q.ready
	q.ready = q.next
	q.next = q.spare[:0]
	q.spare = nil
	q.mu.Unlock()
	n := deleteAll(drain, del)
	q.mu.Lock()
	if q.spare == nil {
		q.spare = drain[:0]
	}
	q.mu.Unlock()
	return n
}

// Flush deletes every pending handle. It is only safe when no submitted
// GL command may still reference them, for example after glFinish.
func (q *Queue) Flush(del func(Handle)) int {
	q.mu.Lock()
	drain := append(q.ready, q.next...)
	q.ready = nil
	q.next = nil
	q.mu.Unlock()
	return deleteAll(drain, del)
}

func deleteAll(hs []Handle, del func(Handle)) int {
	if len(hs) == 0 {
		return 0
	}
	seen := make(map[Handle]struct{}, len(hs))
	for i, h := range hs {
		hs[i] = Handle{}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		del(h)
	}
	return len(seen)
}
