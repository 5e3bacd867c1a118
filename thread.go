// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package threads

import "runtime"

// A Thread is a handle to one running thread of control. Use [Spawn]
// or [SpawnOSThread] to create one; the entry function starts
// immediately. There is no cancellation: a Thread runs until its
// entry function returns, and the only lifecycle transition is
// running to joined.
type Thread struct {
	done chan struct{} // closed when the entry function has returned
}

// Spawn runs fn on a new goroutine and returns its handle. Callers
// that need fn finished before leaving a scope pair Spawn with a
// deferred Join:
//
//	t := threads.Spawn(work)
//	defer t.Join()
func Spawn(fn func()) *Thread {
	t := &Thread{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		fn()
	}()
	return t
}

// SpawnOSThread is like [Spawn], but fn runs wired to a dedicated OS
// thread for its whole life, and the thread is torn down when fn
// returns. It exists for entry functions that require thread-affine
// state, such as native libraries keyed on thread-local storage.
// [Spawn] is the right default; OS threads aren't free.
func SpawnOSThread(fn func()) *Thread {
	t := &Thread{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		// No matching UnlockOSThread: the goroutine exits with the
		// thread still wired, so the runtime discards the thread
		// rather than returning it to the scheduler pool.
		runtime.LockOSThread()
		fn()
	}()
	return t
}

// Join blocks until the entry function has returned. It may be called
// any number of times, from any number of goroutines; every call
// blocks until termination.
//
// Join is the ordering edge: memory writes made by the entry function
// are visible to any goroutine after its Join returns.
func (t *Thread) Join() {
	<-t.done
}

// Done returns a channel that is closed when the entry function has
// returned, for use in select. Join is the blocking equivalent.
func (t *Thread) Done() <-chan struct{} {
	return t.done
}
