// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package threads provides scoped wrappers around mutual exclusion,
// condition signaling, and thread lifetime.
//
// The types here more or less mimic the shape of their standard
// counterparts:
//   - [Lock] is similar to sync.Mutex
//   - [Signal] is similar to sync.Cond, but waits can carry a deadline
//     on the monotonic clock
//   - [Hold] and [HoldLocker] are similar to a lock guard paired with
//     defer
//
// There are some extensions:
//   - [Spawn] returns a [Thread] whose Join blocks until the entry
//     function has returned. This comes in handy during unit tests. It
//     should be used cautiously, if at all, in production code paths
//     that are better served by plain goroutines.
//   - [Semaphore] is a counting resource gate that satisfies [Lockable],
//     so the same guard works for it.
//
// Example:
//
//	type Resource struct {
//	  mu    threads.Lock
//	  ready *threads.Signal
//	  value int
//	}
//
//	func NewResource() *Resource {
//	  r := new(Resource)
//	  r.ready = threads.NewSignal(&r.mu)
//	  return r
//	}
//
//	func (r *Resource) SetValue(v int) {
//	  g := threads.Hold(&r.mu)
//	  defer g.Release()
//	  r.value = v
//	  r.ready.NotifyAll()
//	}
//
//	func (r *Resource) WaitValue(deadline mono.Time) (int, error) {
//	  g := threads.Hold(&r.mu)
//	  defer g.Release()
//	  for r.value == 0 {
//	    if err := r.ready.WaitUntil(deadline); err != nil {
//	      return 0, err
//	    }
//	  }
//	  return r.value, nil
//	}
//
// Lock has two implementations selected at build time. The default
// delegates to sync.Mutex. Builds with the ts_mutex_debug tag swap in a
// potential-deadlock detector and report critical sections held longer
// than a threshold. [DebugEnabled] indicates which one is in use.
package threads
