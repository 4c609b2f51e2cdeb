// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"bytes"
	"errors"
	"testing"
)

func TestUFrameFixtures(t *testing.T) {
	tests := []struct {
		name     string
		function byte
		want     []byte
	}{
		{"startdt act", uStartDtActive, []byte{0x68, 0x04, 0x07, 0x00, 0x00, 0x00}},
		{"startdt con", uStartDtConfirm, []byte{0x68, 0x04, 0x0B, 0x00, 0x00, 0x00}},
		{"stopdt act", uStopDtActive, []byte{0x68, 0x04, 0x13, 0x00, 0x00, 0x00}},
		{"stopdt con", uStopDtConfirm, []byte{0x68, 0x04, 0x23, 0x00, 0x00, 0x00}},
		{"testfr act", uTestFrActive, []byte{0x68, 0x04, 0x43, 0x00, 0x00, 0x00}},
		{"testfr con", uTestFrConfirm, []byte{0x68, 0x04, 0x83, 0x00, 0x00, 0x00}},
	}
	for _, tt := range tests {
		got := newUFrame(tt.function)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("%s: got [% X], want [% X]", tt.name, got, tt.want)
		}
		ctl, _, n, err := DissectAPDU(got)
		if err != nil || n != 6 {
			t.Fatalf("%s: dissect err=%v n=%d", tt.name, err, n)
		}
		u, ok := ctl.(uAPCI)
		if !ok || u.function != tt.function {
			t.Errorf("%s: parsed %v", tt.name, ctl)
		}
	}
}

func TestIFrameSequenceEncoding(t *testing.T) {
	tests := []struct {
		sendSN, rcvSN uint16
	}{
		{0, 0},
		{1, 2},
		{127, 128},
		{16383, 16384},
		{32767, 32767},
	}
	asdus := []byte{0x01, 0x02, 0x03}
	for _, tt := range tests {
		raw, err := newIFrame(tt.sendSN, tt.rcvSN, asdus)
		if err != nil {
			t.Fatal(err)
		}
		if raw[0] != startFrame || int(raw[1]) != 4+len(asdus) {
			t.Fatalf("header: [% X]", raw[:2])
		}
		ctl, apdu, n, err := DissectAPDU(raw)
		if err != nil || n != len(raw) {
			t.Fatalf("dissect: err=%v n=%d", err, n)
		}
		i, ok := ctl.(iAPCI)
		if !ok {
			t.Fatalf("parsed %v, want iAPCI", ctl)
		}
		if i.sendSN != tt.sendSN || i.rcvSN != tt.rcvSN {
			t.Errorf("seq: got %d/%d, want %d/%d", i.sendSN, i.rcvSN, tt.sendSN, tt.rcvSN)
		}
		if !bytes.Equal(apdu.ASDU, asdus) {
			t.Errorf("asdu: got [% X]", apdu.ASDU)
		}
	}
}

func TestIFrameWirePacking(t *testing.T) {
	// seq 5 packs as 0x0A 0x00, seq 300 as 0x58 0x02
	raw, err := newIFrame(5, 300, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x68, 0x04, 0x0A, 0x00, 0x58, 0x02}
	if !bytes.Equal(raw, want) {
		t.Fatalf("got [% X], want [% X]", raw, want)
	}
}

func TestIFrameOversizedASDU(t *testing.T) {
	if _, err := newIFrame(0, 0, make([]byte, 250)); !errors.Is(err, ErrLengthOutOfRange) {
		t.Errorf("got %v, want ErrLengthOutOfRange", err)
	}
	if _, err := newIFrame(0, 0, make([]byte, 249)); err != nil {
		t.Errorf("249 octets: got %v", err)
	}
}

func TestSFrameEncoding(t *testing.T) {
	raw := newSFrame(32767)
	ctl, _, _, err := DissectAPDU(raw)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := ctl.(sAPCI)
	if !ok || s.rcvSN != 32767 {
		t.Errorf("parsed %v", ctl)
	}
}

func TestReadAPDU(t *testing.T) {
	raw, _ := newIFrame(1, 2, []byte{0xAA})
	apdu, err := readAPDU(bytes.NewReader(raw), make([]byte, APDUSizeMax))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(apdu.ASDU, []byte{0xAA}) {
		t.Errorf("asdu: got [% X]", apdu.ASDU)
	}
}

func TestReadAPDUBadStart(t *testing.T) {
	_, err := readAPDU(bytes.NewReader([]byte{0x69, 0x04, 0x07, 0x00, 0x00, 0x00}), make([]byte, APDUSizeMax))
	if !errors.Is(err, ErrInvalidStartFrame) {
		t.Errorf("got %v, want ErrInvalidStartFrame", err)
	}
}

func TestReadAPDUBadLength(t *testing.T) {
	_, err := readAPDU(bytes.NewReader([]byte{0x68, 0x03, 0x07, 0x00, 0x00}), make([]byte, APDUSizeMax))
	if !errors.Is(err, ErrAPDULengthOutOfRange) {
		t.Errorf("length 3: got %v, want ErrAPDULengthOutOfRange", err)
	}
	_, err = readAPDU(bytes.NewReader([]byte{0x68, 0xFE}), make([]byte, APDUSizeMax))
	if !errors.Is(err, ErrAPDULengthOutOfRange) {
		t.Errorf("length 254: got %v, want ErrAPDULengthOutOfRange", err)
	}
}

func TestDissectAPDUIncomplete(t *testing.T) {
	raw, _ := newIFrame(0, 0, []byte{1, 2, 3, 4})
	for cut := 0; cut < len(raw); cut++ {
		if _, _, _, err := DissectAPDU(raw[:cut]); !errors.Is(err, ErrIncompleteFrame) {
			t.Errorf("cut %d: got %v, want ErrIncompleteFrame", cut, err)
		}
	}
	if _, _, n, err := DissectAPDU(raw); err != nil || n != len(raw) {
		t.Errorf("full frame: err=%v n=%d", err, n)
	}
}
