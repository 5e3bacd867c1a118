// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build ts_mutex_debug

package threads

import (
	"log"
	"os"
	"time"

	"github.com/sasha-s/go-deadlock"
	"github.com/tailscale/threads/logger"
	"github.com/tailscale/threads/mono"
)

// DebugEnabled indicates whether the debug Lock implementation is in
// use.
//
// It's only true when built with the ts_mutex_debug build tag.
const DebugEnabled = true

// slowHold is how long a critical section may run before the debug
// build complains about it. THREADS_DEBUG_SLOW_HOLD overrides the
// default.
var slowHold = envDuration("THREADS_DEBUG_SLOW_HOLD", 100*time.Millisecond)

// slowHoldLogf rate-limits the complaints so a hot lock doesn't flood
// the log.
var slowHoldLogf logger.Logf = logger.RateLimitedFn(logger.WithPrefix(log.Printf, "threads: "), 5*time.Second, 2, 32)

func envDuration(name string, def time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func init() {
	// Exiting the process on a suspected deadlock is too blunt for a
	// library. Log and keep going.
	deadlock.Opts.LogBuf = logger.FuncWriter(logger.WithPrefix(log.Printf, "threads: "))
	deadlock.Opts.OnPotentialDeadlock = func() {}
	deadlock.Opts.DeadlockTimeout = 30 * time.Second
}

// A Lock is a mutual exclusion lock sheltering shared state.
// The zero value is an unheld Lock.
//
// A Lock must not be copied after first use, and unlike a bare
// sync.Mutex it is not meant to be embedded: hand out methods that
// take the Lock instead.
//
// This is the ts_mutex_debug implementation. Blocking acquisition
// goes through a potential-deadlock detector, and releases report
// critical sections held longer than slowHold.
type Lock struct {
	mu       deadlock.Mutex
	acquired mono.Time // set while held; guarded by mu
}

// Acquire blocks until the caller holds l.
//
// There is no timeout and no cancellation. Acquiring a Lock the
// caller already holds deadlocks.
func (l *Lock) Acquire() {
	l.mu.Lock()
	l.acquired = mono.Now()
}

// Release relinquishes l, which must be held.
//
// It is a run-time error to release a Lock that is not held.
func (l *Lock) Release() {
	if held := mono.Since(l.acquired); held > slowHold {
		slowHoldLogf("lock held for %v (threshold %v)", held, slowHold)
	}
	l.mu.Unlock()
}
