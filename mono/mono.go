// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package mono provides a monotonic time point for measuring elapsed
// time and for bounded waits, immune to steps of the wall clock.
//
// The zero Time means "unset"; Now never returns it.
package mono

import "time"

// Time is a point on the process's monotonic clock: nanoseconds
// elapsed since an unspecified start. Times from different processes
// are not comparable.
type Time int64

// baseline anchors the clock; Times count from roughly process start.
var baseline = time.Now()

// Now returns the current monotonic time.
func Now() Time {
	// time.Since reads only the monotonic reading carried inside
	// baseline, so steps of the wall clock never disturb the result.
	// The +1 keeps a Time read at startup from being the zero Time.
	return Time(int64(time.Since(baseline)) + 1)
}

// Since returns the time elapsed since t.
func Since(t Time) time.Duration {
	return time.Duration(Now() - t)
}

// Until returns the duration until t.
// It is negative or zero if t is not in the future.
func Until(t Time) time.Duration {
	return time.Duration(t - Now())
}

// Add returns the Time t+d.
func (t Time) Add(d time.Duration) Time {
	return t + Time(d)
}

// Sub returns the duration t-n.
func (t Time) Sub(n Time) time.Duration {
	return time.Duration(t - n)
}

// After reports whether t is after n.
func (t Time) After(n Time) bool { return t > n }

// Before reports whether t is before n.
func (t Time) Before(n Time) bool { return t < n }

// IsZero reports whether t is the zero (unset) Time.
func (t Time) IsZero() bool { return t == 0 }

// baseWall and baseMono are a correlated wall/monotonic pair captured
// at package init. They exist only so a Time can be rendered on the
// wall clock; nothing else in this package consults the wall clock.
var (
	baseWall = time.Now()
	baseMono = Now()
)

// WallTime returns an approximate wall clock rendering of t, derived
// from the wall/monotonic correlation captured at process start.
// The zero Time renders as the zero time.Time.
func (t Time) WallTime() time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return baseWall.Add(t.Sub(baseMono))
}

func (t Time) String() string {
	return t.WallTime().Format(time.RFC3339Nano)
}

// MarshalJSON formats t on the wall clock, like a time.Time.
func (t Time) MarshalJSON() ([]byte, error) {
	return t.WallTime().MarshalJSON()
}

// UnmarshalJSON accepts what MarshalJSON produces.
// The zero time.Time unmarshals to the zero Time.
func (t *Time) UnmarshalJSON(b []byte) error {
	var tt time.Time
	if err := tt.UnmarshalJSON(b); err != nil {
		return err
	}
	if tt.IsZero() {
		*t = 0
		return nil
	}
	*t = baseMono.Add(tt.Sub(baseWall))
	return nil
}
