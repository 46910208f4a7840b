// SPDX-License-Identifier: Unlicense OR MIT

package dispose

import (
	"testing"

	"golang.org/x/sync/errgroup"
)

type recorder struct {
	deleted []Handle
}

func (r *recorder) del(h Handle) {
	r.deleted = append(r.deleted, h)
}

func TestOneFrameDeferral(t *testing.T) {
	var q Queue
	var r recorder
	h := Handle{Kind: KindTexture, ID: 7}

	// Frame N.
	q.Dispose(h)
	if n := q.Boundary(r.del); n != 0 {
		t.Fatalf("boundary ending frame N deleted %d handles", n)
	}
	// Frame N+1.
	if n := q.Boundary(r.del); n != 1 {
		t.Fatalf("boundary ending frame N+1 deleted %d handles, want 1", n)
	}
	if len(r.deleted) != 1 || r.deleted[0] != h {
		t.Fatalf("deleted %v, want [%v]", r.deleted, h)
	}
	if n := q.Boundary(r.del); n != 0 {
		t.Errorf("handle deleted again: %d", n)
	}
}

func TestInterleavedFrames(t *testing.T) {
	var q Queue
	var r recorder
	a := Handle{Kind: KindBuffer, ID: 1}
	b := Handle{Kind: KindBuffer, ID: 2}
	q.Dispose(a)
	q.Boundary(r.del)
	q.Dispose(b)
	q.Boundary(r.del)
	if len(r.deleted) != 1 || r.deleted[0] != a {
		t.Fatalf("after two boundaries deleted %v, want [%v]", r.deleted, a)
	}
	q.Boundary(r.del)
	if len(r.deleted) != 2 || r.deleted[1] != b {
		t.Fatalf("after three boundaries deleted %v", r.deleted)
	}
}

func TestInertHandles(t *testing.T) {
	var q Queue
	var r recorder
	q.Dispose(Handle{})
	q.Dispose(Handle{Kind: KindTexture})
	q.Dispose(Handle{ID: 4})
	if q.Len() != 0 {
		t.Fatalf("inert handles queued: %d", q.Len())
	}
	q.Boundary(r.del)
	q.Boundary(r.del)
	if len(r.deleted) != 0 {
		t.Errorf("deleted inert handles %v", r.deleted)
	}
}

func TestDuplicateDisposeDeletesOnce(t *testing.T) {
	var q Queue
	var r recorder
	h := Handle{Kind: KindFramebuffer, ID: 3}
	q.Dispose(h)
	q.Dispose(h)
	q.Boundary(r.del)
	q.Boundary(r.del)
	if len(r.deleted) != 1 {
		t.Errorf("deleted %v, want a single deletion", r.deleted)
	}
}

func TestFlush(t *testing.T) {
	var q Queue
	var r recorder
	q.Dispose(Handle{Kind: KindShader, ID: 1})
	q.Boundary(r.del)
	q.Dispose(Handle{Kind: KindShader, ID: 2})
	if n := q.Flush(r.del); n != 2 {
		t.Fatalf("Flush deleted %d, want 2", n)
	}
	if q.Len() != 0 {
		t.Errorf("%d handles left after Flush", q.Len())
	}
}

func TestConcurrentDispose(t *testing.T) {
	var q Queue
	var r recorder
	const (
		workers = 16
		each    = 100
	)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < each; i++ {
				q.Dispose(Handle{Kind: KindBuffer, ID: uint(w*each + i + 1)})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	q.Boundary(r.del)
	q.Boundary(r.del)
	if len(r.deleted) != workers*each {
		t.Errorf("deleted %d handles, want %d", len(r.deleted), workers*each)
	}
}
