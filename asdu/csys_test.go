// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"errors"
	"testing"
	"time"
)

func TestInterrogationCmd(t *testing.T) {
	c := newFakeConn()
	if err := InterrogationCmd(c, CauseOfTransmission{Cause: Activation}, 1, QOIStation); err != nil {
		t.Fatal(err)
	}
	sent := c.lastSent(t)
	if sent.Type != C_IC_NA_1 {
		t.Fatalf("type: got %s", sent.Type)
	}
	ioa, qoi, err := sent.GetInterrogationCmd()
	if err != nil {
		t.Fatal(err)
	}
	if ioa != InfoObjAddrIrrelevant || qoi != QOIStation {
		t.Errorf("got ioa=%d qoi=%d", ioa, qoi)
	}

	if err := InterrogationCmd(c, CauseOfTransmission{Cause: Spontaneous}, 1, QOIStation); !errors.Is(err, ErrCmdCause) {
		t.Errorf("spontaneous cause: got %v, want ErrCmdCause", err)
	}
}

func TestInterrogationCmdBroadcast(t *testing.T) {
	c := newFakeConn()
	if err := InterrogationCmd(c, CauseOfTransmission{Cause: Activation}, GlobalCommonAddr, QOIGroup1); err != nil {
		t.Fatal(err)
	}
	if c.lastSent(t).CommonAddr != GlobalCommonAddr {
		t.Errorf("common addr: got %d", c.lastSent(t).CommonAddr)
	}
}

func TestCounterInterrogationCmd(t *testing.T) {
	c := newFakeConn()
	qcc := QualifierCountCall{Request: QCCTotal, Freeze: QCCFrzRead}
	if err := CounterInterrogationCmd(c, CauseOfTransmission{Cause: Activation}, 1, qcc); err != nil {
		t.Fatal(err)
	}
	_, got, err := c.lastSent(t).GetCounterInterrogationCmd()
	if err != nil {
		t.Fatal(err)
	}
	if got != qcc {
		t.Errorf("QCC: got %+v, want %+v", got, qcc)
	}
}

func TestReadCmd(t *testing.T) {
	c := newFakeConn()
	if err := ReadCmd(c, CauseOfTransmission{Cause: Request}, 1, 5000); err != nil {
		t.Fatal(err)
	}
	sent := c.lastSent(t)
	if sent.Type != C_RD_NA_1 {
		t.Fatalf("type: got %s", sent.Type)
	}
	ioa, err := sent.GetReadCmd()
	if err != nil {
		t.Fatal(err)
	}
	if ioa != 5000 {
		t.Errorf("ioa: got %d, want 5000", ioa)
	}
}

func TestClockSynchronizationCmd(t *testing.T) {
	c := newFakeConn()
	ts := time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC)
	if err := ClockSynchronizationCmd(c, CauseOfTransmission{Cause: Activation}, 1, ts); err != nil {
		t.Fatal(err)
	}
	_, got, err := c.lastSent(t).GetClockSynchronizationCmd()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(ts) {
		t.Errorf("time: got %v, want %v", got, ts)
	}
}

func TestTestCommandPattern(t *testing.T) {
	c := newFakeConn()
	if err := TestCommand(c, CauseOfTransmission{Cause: Activation}, 1); err != nil {
		t.Fatal(err)
	}
	sent := c.lastSent(t)
	// FBP is the fixed pattern 0xAA 0x55 on the wire
	info := sent.InfoObjBytes()
	if len(info) != 5 || info[3] != 0xaa || info[4] != 0x55 {
		t.Fatalf("wire pattern: got [% X]", info)
	}
	_, ok, err := sent.GetTestCommand()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("pattern did not verify")
	}
}

func TestTestCommandCP56Time2a(t *testing.T) {
	c := newFakeConn()
	ts := time.Date(2023, time.May, 4, 3, 2, 1, 0, time.UTC)
	if err := TestCommandCP56Time2a(c, CauseOfTransmission{Cause: Activation}, 1, ts); err != nil {
		t.Fatal(err)
	}
	_, ok, got, err := c.lastSent(t).GetTestCommandCP56Time2a()
	if err != nil {
		t.Fatal(err)
	}
	if !ok || !got.Equal(ts) {
		t.Errorf("got ok=%t time=%v", ok, got)
	}
}

func TestResetProcessCmd(t *testing.T) {
	c := newFakeConn()
	if err := ResetProcessCmd(c, CauseOfTransmission{Cause: Activation}, 1, QRPGeneralReset); err != nil {
		t.Fatal(err)
	}
	_, qrp, err := c.lastSent(t).GetResetProcessCmd()
	if err != nil {
		t.Fatal(err)
	}
	if qrp != QRPGeneralReset {
		t.Errorf("QRP: got %d", qrp)
	}
}

func TestDelayAcquireCommand(t *testing.T) {
	c := newFakeConn()
	if err := DelayAcquireCommand(c, CauseOfTransmission{Cause: Activation}, 1, 1250); err != nil {
		t.Fatal(err)
	}
	_, msec, err := c.lastSent(t).GetDelayAcquireCommand()
	if err != nil {
		t.Fatal(err)
	}
	if msec != 1250 {
		t.Errorf("delay: got %d, want 1250", msec)
	}

	if err := DelayAcquireCommand(c, CauseOfTransmission{Cause: Request}, 1, 1); !errors.Is(err, ErrCmdCause) {
		t.Errorf("request cause: got %v, want ErrCmdCause", err)
	}
}
