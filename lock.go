// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build !ts_mutex_debug

package threads

import "sync"

// DebugEnabled indicates whether the debug Lock implementation is in
// use.
//
// It's only true when built with the ts_mutex_debug build tag.
const DebugEnabled = false

// A Lock is a mutual exclusion lock sheltering shared state.
// The zero value is an unheld Lock.
//
// A Lock must not be copied after first use, and unlike a bare
// sync.Mutex it is not meant to be embedded: hand out methods that
// take the Lock instead.
type Lock struct {
	mu sync.Mutex
}

// Acquire blocks until the caller holds l.
//
// There is no timeout and no cancellation. Acquiring a Lock the
// caller already holds deadlocks.
func (l *Lock) Acquire() {
	l.mu.Lock()
}

// Release relinquishes l, which must be held.
//
// It is a run-time error to release a Lock that is not held.
func (l *Lock) Release() {
	l.mu.Unlock()
}
