// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package threads

import "sync"

// Lockable is anything acquired and released in pairs. [*Lock] and
// [Semaphore] satisfy it.
type Lockable interface {
	Acquire()
	Release()
}

// A Guard pins a [Lockable] as held for the span of a scope. Use
// [Hold] to create one, and release it with a defer in the same
// scope:
//
//	g := threads.Hold(&r.mu)
//	defer g.Release()
//
// A Guard is a single-use value. Don't copy it, store it, or release
// it more than once.
type Guard[L Lockable] struct {
	l L
}

// Hold acquires l, blocking as l does, and returns the Guard that
// releases it.
func Hold[L Lockable](l L) Guard[L] {
	l.Acquire()
	return Guard[L]{l: l}
}

// Release releases the held Lockable. It must be called exactly once,
// normally by defer.
func (g Guard[L]) Release() {
	g.l.Release()
}

// A TryLocker is a lock that can be acquired without blocking.
// *sync.Mutex satisfies it.
type TryLocker interface {
	TryLock() bool
	Unlock()
}

// A LockerGuard scopes a lock that can't be upgraded to a [Lock],
// typically a bare sync.Mutex owned by other code. Use [HoldLocker]
// or [TryHoldLocker] to create one.
//
// Like [Guard], it is a single-use value: one Release per guard, on
// every exit path.
type LockerGuard struct {
	unlock func()
	held   bool
}

// HoldLocker acquires l and returns the LockerGuard that releases it.
func HoldLocker(l sync.Locker) LockerGuard {
	l.Lock()
	return LockerGuard{unlock: l.Unlock, held: true}
}

// TryHoldLocker attempts to acquire l without blocking. Whether the
// attempt succeeded is recorded in the guard: Held reports it, and
// Release releases l only if the guard holds it. Callers therefore
// defer Release unconditionally and branch on Held:
//
//	g := threads.TryHoldLocker(&mu)
//	defer g.Release()
//	if !g.Held() {
//	  return errBusy
//	}
func TryHoldLocker(l TryLocker) LockerGuard {
	if !l.TryLock() {
		return LockerGuard{}
	}
	return LockerGuard{unlock: l.Unlock, held: true}
}

// Held reports whether the guard holds its lock.
func (g LockerGuard) Held() bool { return g.held }

// Release releases the lock if the guard holds it and is otherwise a
// no-op. It must be called exactly once.
func (g LockerGuard) Release() {
	if g.held {
		g.unlock()
	}
}
