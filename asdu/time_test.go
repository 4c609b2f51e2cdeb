// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"bytes"
	"testing"
	"time"
)

func TestCP56Time2aRoundTrip(t *testing.T) {
	want := time.Date(2019, time.June, 5, 4, 3, 2, 1*int(time.Millisecond), time.UTC)
	raw := CP56Time2a(want, time.UTC)
	if len(raw) != 7 {
		t.Fatalf("encoded length: got %d, want 7", len(raw))
	}
	if got := ParseCP56Time2a(raw, time.UTC); !got.Equal(want) {
		t.Errorf("round trip: got %v, want %v", got, want)
	}
}

func TestCP56Time2aEncoding(t *testing.T) {
	// 2019-06-05 is a Wednesday, ISO day 3
	ts := time.Date(2019, time.June, 5, 4, 3, 0, 0, time.UTC)
	raw := CP56Time2a(ts, time.UTC)
	want := []byte{0x00, 0x00, 0x03, 0x04, 0x05 | 3<<5, 0x06, 19}
	if !bytes.Equal(raw, want) {
		t.Errorf("encoding: got [% X], want [% X]", raw, want)
	}
}

func TestCP56Time2aInvalid(t *testing.T) {
	raw := CP56Time2a(time.Now(), time.UTC)
	raw[2] |= 0x80 // invalid flag
	if got := ParseCP56Time2a(raw, time.UTC); !got.IsZero() {
		t.Errorf("invalid flag: got %v, want zero time", got)
	}
	if got := ParseCP56Time2a(raw[:6], time.UTC); !got.IsZero() {
		t.Errorf("short buffer: got %v, want zero time", got)
	}
}

func TestCP24Time2aWithinHour(t *testing.T) {
	now := time.Now().UTC()
	raw := CP24Time2a(now, time.UTC)
	got := ParseCP24Time2a(raw, time.UTC)
	if got.IsZero() {
		t.Fatal("got zero time")
	}
	diff := now.Sub(got)
	if diff < 0 {
		diff = -diff
	}
	// reconstruction may land in the previous hour around a minute rollover
	if diff > time.Hour {
		t.Errorf("reconstructed %v too far from %v", got, now)
	}
	if got.Minute() != now.Minute() || got.Second() != now.Second() {
		t.Errorf("minute/second mismatch: got %v, want %v", got, now)
	}
}

func TestCP24Time2aInvalid(t *testing.T) {
	raw := []byte{0x00, 0x00, 0x80}
	if got := ParseCP24Time2a(raw, time.UTC); !got.IsZero() {
		t.Errorf("invalid flag: got %v, want zero time", got)
	}
}

func TestCP16Time2aRoundTrip(t *testing.T) {
	for _, msec := range []uint16{0, 1, 1000, 0x55aa, 65535} {
		if got := ParseCP16Time2a(CP16Time2a(msec)); got != msec {
			t.Errorf("round trip %d: got %d", msec, got)
		}
	}
	if got := ParseCP16Time2a([]byte{0x01}); got != 0 {
		t.Errorf("short buffer: got %d, want 0", got)
	}
}
