// SPDX-License-Identifier: Unlicense OR MIT

// Package thread tracks the OS thread that owns a GL context and lets
// other goroutines rendezvous with it.
package thread

import (
	"fmt"
	"sync"
)

// Owner records the thread that created it. Calls that must run on that
// thread from elsewhere are queued with Do and executed by Service.
type Owner struct {
	id int64

	mu    sync.Mutex
	calls []*call
}

type call struct {
	f    func()
	done chan struct{}
	// panicked holds a recovered panic value re-raised in the caller.
	panicked any
}

// NewOwner returns an Owner bound to the calling thread. The caller is
// expected to have locked its goroutine to the thread.
func NewOwner() *Owner {
	return &Owner{id: ID()}
}

// IsCurrent reports whether the caller runs on the owning thread.
func (o *Owner) IsCurrent() bool {
	return ID() == o.id
}

// Check panics if the caller does not run on the owning thread.
func (o *Owner) Check() {
	if id := ID(); id != o.id {
		panic(fmt.Errorf("gl call from thread %d, context is owned by thread %d", id, o.id))
	}
}

// Do runs f on the owning thread. Called from the owner it runs f
// immediately; otherwise it blocks until the owner calls Service.
func (o *Owner) Do(f func()) {
	if o.IsCurrent() {
		f()
		return
	}
	c := &call{f: f, done: make(chan struct{})}
	o.mu.Lock()
	o.calls = append(o.calls, c)
	o.mu.Unlock()
	<-c.done
	if c.panicked != nil {
		panic(c.panicked)
	}
}

// Post queues f to run on the owning thread at the next Service and
// returns immediately. A panic in f propagates out of Service.
func (o *Owner) Post(f func()) {
	o.mu.Lock()
	o.calls = append(o.calls, &call{f: f})
	o.mu.Unlock()
}

// Pending returns the number of queued calls.
func (o *Owner) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.calls)
}

// Service runs every queued call. It must be called from the owner.
func (o *Owner) Service() {
	o.Check()
	o.mu.Lock()
	calls := o.calls
	o.calls = nil
	o.mu.Unlock()
	for _, c := range calls {
		c.run()
	}
}

func (c *call) run() {
	if c.done == nil {
		c.f()
		return
	}
	defer close(c.done)
	defer func() {
		c.panicked = recover()
	}()
	c.f()
}
