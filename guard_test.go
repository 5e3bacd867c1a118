// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package threads

import (
	"sync"
	"testing"
)

func wantPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		recover()
	}()
	fn()
	t.Fatal("failed to panic")
}

func TestHold(t *testing.T) {
	var (
		mu    Lock
		value int // guarded by mu
	)
	func() {
		g := Hold(&mu)
		defer g.Release()
		value = 1
	}()

	// The guard released on scope exit, so a plain Acquire succeeds.
	mu.Acquire()
	if value != 1 {
		t.Errorf("value = %d, want 1", value)
	}
	mu.Release()
}

func TestHoldReleasesOnPanic(t *testing.T) {
	var mu Lock
	wantPanic(t, func() {
		g := Hold(&mu)
		defer g.Release()
		panic("poisoned critical section")
	})

	// The deferred Release ran while the panic unwound, so the Lock
	// is free again.
	mu.Acquire()
	mu.Release()
}

func TestHoldAllocs(t *testing.T) {
	if DebugEnabled {
		t.Skip("debug Lock allocates for detector bookkeeping")
	}
	var mu Lock
	if n := int(testing.AllocsPerRun(1000, func() {
		g := Hold(&mu)
		g.Release()
	})); n != 0 {
		t.Errorf("AllocsPerRun = %d, want 0", n)
	}
}

func TestHoldSemaphore(t *testing.T) {
	sem := NewSemaphore(2)
	g1 := Hold(sem)
	g2 := Hold(sem)
	if sem.TryAcquire() {
		t.Fatal("third acquire succeeded on a two-resource semaphore")
	}
	g2.Release()
	if !sem.TryAcquire() {
		t.Fatal("acquire failed after guard release")
	}
	sem.Release()
	g1.Release()
}

func TestHoldLocker(t *testing.T) {
	var mu sync.Mutex
	g := HoldLocker(&mu)
	if !g.Held() {
		t.Fatal("blocking guard reports not held")
	}
	if mu.TryLock() {
		t.Fatal("mutex free while guard held")
	}
	g.Release()
	if !mu.TryLock() {
		t.Fatal("mutex still held after guard release")
	}
	mu.Unlock()
}

func TestTryHoldLocker(t *testing.T) {
	var mu sync.Mutex
	g := TryHoldLocker(&mu)
	if !g.Held() {
		t.Fatal("try-acquire of a free mutex failed")
	}
	g.Release()

	mu.Lock() // now owned by someone else
	g = TryHoldLocker(&mu)
	if g.Held() {
		t.Fatal("try-acquire of a held mutex succeeded")
	}
	g.Release()
	if mu.TryLock() {
		t.Fatal("failed guard's Release unlocked a mutex it never held")
	}
	mu.Unlock()
}

func TestTryHoldLockerReleaseCount(t *testing.T) {
	f := new(fakeTryLocker)
	g := TryHoldLocker(f)
	if g.Held() {
		t.Fatal("guard claims to hold a lock that refused it")
	}
	g.Release()
	if f.unlocks != 0 {
		t.Fatalf("unlocks = %d, want 0", f.unlocks)
	}

	f.ok = true
	g = TryHoldLocker(f)
	if !g.Held() {
		t.Fatal("guard failed to take a willing lock")
	}
	g.Release()
	if f.unlocks != 1 {
		t.Fatalf("unlocks = %d, want 1", f.unlocks)
	}
}

type fakeTryLocker struct {
	ok      bool
	unlocks int
}

func (f *fakeTryLocker) TryLock() bool { return f.ok }
func (f *fakeTryLocker) Unlock()       { f.unlocks++ }
