// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package threads

import (
	"os"
	"sync"
	"time"

	"github.com/tailscale/threads/mono"
)

// A Signal is a condition variable: a rendezvous point for goroutines
// waiting for or announcing a change to state sheltered by a [Lock].
// Unlike sync.Cond, waits can carry a deadline on the monotonic clock.
//
// Each Signal is bound at construction to exactly one Lock, which must
// outlive it. Wait and WaitUntil assume, without checking, that the
// caller holds that Lock. Notify methods may be called with or without
// the Lock held; holding it gives the usual predictable scheduling.
//
// Because a wait can end for reasons other than the awaited change
// (another waiter won the race to the Lock), callers must re-check
// their predicate in a loop:
//
//	for !condition() {
//	  s.Wait()
//	}
type Signal struct {
	l *Lock

	// qmu shelters waiters. It is never held while blocking, and
	// never while acquiring or releasing l.
	qmu     sync.Mutex
	waiters []chan struct{} // FIFO; a waiter is woken by closing its channel
}

// NewSignal returns a Signal bound to l.
func NewSignal(l *Lock) *Signal {
	return &Signal{l: l}
}

// enqueue registers the caller as a waiter and returns the channel a
// notifier will close to wake it.
func (s *Signal) enqueue() chan struct{} {
	ch := make(chan struct{})
	s.qmu.Lock()
	s.waiters = append(s.waiters, ch)
	s.qmu.Unlock()
	return ch
}

// claim removes ch from the waiter queue, reporting whether it was
// still there. A channel no longer queued has been taken by a
// notifier, and the wakeup it carries belongs to this waiter.
func (s *Signal) claim(ch chan struct{}) bool {
	s.qmu.Lock()
	defer s.qmu.Unlock()
	for i, w := range s.waiters {
		if w == ch {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			return true
		}
	}
	return false
}

// NotifyOne wakes the longest-waiting goroutine blocked in Wait or
// WaitUntil, if there is one. The woken goroutine does not return from
// its wait until it reacquires the Lock.
func (s *Signal) NotifyOne() {
	s.notifyOne()
}

// notifyOne reports whether a waiter consumed the wakeup.
func (s *Signal) notifyOne() bool {
	s.qmu.Lock()
	defer s.qmu.Unlock()
	if len(s.waiters) == 0 {
		return false
	}
	close(s.waiters[0])
	s.waiters = s.waiters[1:]
	return true
}

// NotifyAll wakes every goroutine currently blocked in Wait or
// WaitUntil. Each woken goroutine reacquires the Lock before returning
// from its wait, so they drain one at a time.
func (s *Signal) NotifyAll() {
	s.qmu.Lock()
	for _, ch := range s.waiters {
		close(ch)
	}
	s.waiters = nil
	s.qmu.Unlock()
}

// Wait releases the Lock and blocks the caller until another goroutine
// calls NotifyOne or NotifyAll, then reacquires the Lock before
// returning. The caller must hold the Lock.
//
// A notifier that runs any time after Wait releases the Lock is
// guaranteed to see this waiter; the wakeup cannot slip through the
// gap between releasing and blocking.
func (s *Signal) Wait() {
	ch := s.enqueue()
	s.l.Release()
	<-ch
	s.l.Acquire()
}

// WaitUntil is like [Signal.Wait] with a deadline on the monotonic
// clock. It returns nil if the caller was notified, or
// os.ErrDeadlineExceeded if tp passed first. On both paths the caller
// holds the Lock again when WaitUntil returns.
//
// A deadline already in the past does not block beyond reacquiring the
// Lock. A notification racing the deadline is never lost: if a
// notifier claimed this waiter, WaitUntil reports it was notified.
func (s *Signal) WaitUntil(tp mono.Time) error {
	ch := s.enqueue()
	s.l.Release()

	timer := time.NewTimer(mono.Until(tp))
	defer timer.Stop()
	select {
	case <-ch:
		s.l.Acquire()
		return nil
	case <-timer.C:
		// Deregister before deciding. If the channel is already gone
		// from the queue, a notifier spent its wakeup on us between
		// the timer firing and now; report success so the wakeup
		// isn't lost.
		notified := !s.claim(ch)
		s.l.Acquire()
		if notified {
			return nil
		}
		return os.ErrDeadlineExceeded
	}
}
