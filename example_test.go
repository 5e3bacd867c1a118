// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package threads_test

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tailscale/threads"
	"github.com/tailscale/threads/mono"
)

func ExampleHold() {
	var mu threads.Lock
	counter := 0

	bump := func() {
		g := threads.Hold(&mu)
		defer g.Release()
		counter++
	}
	bump()
	bump()

	fmt.Println(counter)
	// Output: 2
}

func ExampleSignal() {
	var mu threads.Lock
	ready := threads.NewSignal(&mu)
	value := 0

	th := threads.Spawn(func() {
		g := threads.Hold(&mu)
		defer g.Release()
		value = 42
		ready.NotifyOne()
	})
	defer th.Join()

	mu.Acquire()
	for value == 0 {
		ready.Wait()
	}
	fmt.Println(value)
	mu.Release()
	// Output: 42
}

func ExampleSignal_WaitUntil() {
	var mu threads.Lock
	s := threads.NewSignal(&mu)

	// Nobody will notify, so the wait runs out its deadline.
	mu.Acquire()
	err := s.WaitUntil(mono.Now().Add(10 * time.Millisecond))
	mu.Release()

	fmt.Println(errors.Is(err, os.ErrDeadlineExceeded))
	// Output: true
}

func ExampleTryHoldLocker() {
	// A bare mutex owned by other code still gets scoped release
	// semantics.
	var legacy sync.Mutex
	g := threads.TryHoldLocker(&legacy)
	defer g.Release()
	fmt.Println(g.Held())
	// Output: true
}
