// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package mono

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNow(t *testing.T) {
	start := Now()
	time.Sleep(100 * time.Millisecond)
	if elapsed := Since(start); elapsed < 100*time.Millisecond {
		t.Errorf("short sleep: %v elapsed, want min %v", elapsed, 100*time.Millisecond)
	}
}

func TestMonotonic(t *testing.T) {
	prev := Now()
	for range 1000 {
		now := Now()
		if now.Before(prev) {
			t.Fatalf("clock ran backward: %d then %d", prev, now)
		}
		prev = now
	}
}

func TestUntil(t *testing.T) {
	now := Now()
	if d := Until(now.Add(time.Second)); d <= 0 || d > time.Second {
		t.Errorf("Until(now+1s) = %v, want in (0, 1s]", d)
	}
	if d := Until(now.Add(-time.Second)); d > -time.Second+time.Millisecond*100 {
		t.Errorf("Until(now-1s) = %v, want about -1s", d)
	}
}

func TestArithmetic(t *testing.T) {
	a := Now()
	b := a.Add(time.Minute)
	if !b.After(a) || !a.Before(b) {
		t.Errorf("ordering broken: a=%d b=%d", a, b)
	}
	if d := b.Sub(a); d != time.Minute {
		t.Errorf("Sub = %v, want %v", d, time.Minute)
	}
	if a.IsZero() {
		t.Error("Now returned the zero Time")
	}
}

func TestUnmarshalZero(t *testing.T) {
	var tt time.Time
	buf, err := json.Marshal(tt)
	if err != nil {
		t.Fatal(err)
	}
	var m Time
	err = json.Unmarshal(buf, &m)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsZero() {
		t.Errorf("expected unmarshal of zero time to be 0, got %d (~=%v)", m, m)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	in := Now()
	buf, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out Time
	if err := json.Unmarshal(buf, &out); err != nil {
		t.Fatal(err)
	}
	// The round trip goes through the wall clock's lower resolution,
	// so allow a little slack.
	if d := out.Sub(in); d < -time.Millisecond || d > time.Millisecond {
		t.Errorf("round trip moved time by %v: in=%d out=%d", d, in, out)
	}
}

func BenchmarkMonoNow(b *testing.B) {
	for b.Loop() {
		Now()
	}
}

func BenchmarkTimeNow(b *testing.B) {
	for b.Loop() {
		time.Now()
	}
}
