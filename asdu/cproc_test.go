// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"errors"
	"io"
	"testing"
	"time"
)

// fakeConn captures sent ASDUs for inspection.
type fakeConn struct {
	p    *Params
	sent []*ASDU
}

func newFakeConn() *fakeConn { return &fakeConn{p: ParamsStandard104} }

func (sf *fakeConn) Params() *Params                  { return sf.p }
func (sf *fakeConn) Send(a *ASDU) error               { sf.sent = append(sf.sent, a); return nil }
func (sf *fakeConn) UnderlyingConn() io.ReadWriteCloser { return nil }

func (sf *fakeConn) lastSent(t *testing.T) *ASDU {
	t.Helper()
	if len(sf.sent) == 0 {
		t.Fatal("nothing sent")
	}
	return sf.sent[len(sf.sent)-1]
}

func TestSingleCmdRoundTrip(t *testing.T) {
	c := newFakeConn()
	cmd := SingleCommandInfo{
		Ioa:   6000,
		Value: true,
		Qoc:   QualifierOfCommand{Qual: QOCShortPulseDuration, InSelect: true},
	}
	if err := SingleCmd(c, C_SC_NA_1, CauseOfTransmission{Cause: Activation}, 3, cmd); err != nil {
		t.Fatal(err)
	}
	sent := c.lastSent(t)
	if sent.Type != C_SC_NA_1 || sent.CommonAddr != 3 {
		t.Fatalf("identifier: %s", sent.Identifier)
	}
	got, err := sent.GetSingleCmd()
	if err != nil {
		t.Fatal(err)
	}
	if got.Ioa != cmd.Ioa || got.Value != cmd.Value || got.Qoc != cmd.Qoc {
		t.Errorf("got %+v, want %+v", got, cmd)
	}
}

func TestSingleCmdWithTimeTag(t *testing.T) {
	c := newFakeConn()
	ts := time.Date(2023, time.January, 15, 8, 30, 0, 0, time.UTC)
	cmd := SingleCommandInfo{Ioa: 1, Value: false, Time: ts}
	if err := SingleCmd(c, C_SC_TA_1, CauseOfTransmission{Cause: Activation}, 1, cmd); err != nil {
		t.Fatal(err)
	}
	got, err := c.lastSent(t).GetSingleCmd()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Time.Equal(ts) {
		t.Errorf("time tag: got %v, want %v", got.Time, ts)
	}
}

func TestCommandCauseRejected(t *testing.T) {
	c := newFakeConn()
	err := SingleCmd(c, C_SC_NA_1, CauseOfTransmission{Cause: Spontaneous}, 1, SingleCommandInfo{Ioa: 1})
	if !errors.Is(err, ErrCmdCause) {
		t.Errorf("spontaneous cause: got %v, want ErrCmdCause", err)
	}
	if len(c.sent) != 0 {
		t.Error("ASDU sent despite invalid cause")
	}
}

func TestDoubleCmdRoundTrip(t *testing.T) {
	c := newFakeConn()
	cmd := DoubleCommandInfo{
		Ioa:   7000,
		Value: DPDeterminedOn,
		Qoc:   QualifierOfCommand{Qual: QOCPersistentOutput},
	}
	if err := DoubleCmd(c, C_DC_NA_1, CauseOfTransmission{Cause: Activation}, 1, cmd); err != nil {
		t.Fatal(err)
	}
	got, err := c.lastSent(t).GetDoubleCmd()
	if err != nil {
		t.Fatal(err)
	}
	if got.Ioa != cmd.Ioa || got.Value != cmd.Value || got.Qoc != cmd.Qoc {
		t.Errorf("got %+v, want %+v", got, cmd)
	}
}

func TestStepCmdRoundTrip(t *testing.T) {
	c := newFakeConn()
	cmd := StepCommandInfo{Ioa: 8, Value: SCHigherStep}
	if err := StepCmd(c, CauseOfTransmission{Cause: Activation}, 1, cmd); err != nil {
		t.Fatal(err)
	}
	got, err := c.lastSent(t).GetStepCmd()
	if err != nil {
		t.Fatal(err)
	}
	if got.Value != SCHigherStep {
		t.Errorf("step: got %d", got.Value)
	}
}

func TestSetpointCmdRoundTrips(t *testing.T) {
	c := newFakeConn()

	if err := SetpointCmdNormal(c, CauseOfTransmission{Cause: Activation}, 1,
		SetpointCommandNormalInfo{Ioa: 10, Value: 16384}); err != nil {
		t.Fatal(err)
	}
	gn, err := c.lastSent(t).GetSetpointNormalCmd()
	if err != nil {
		t.Fatal(err)
	}
	if gn.Value != 16384 {
		t.Errorf("normalized: got %d", gn.Value)
	}

	if err := SetpointCmdScaled(c, CauseOfTransmission{Cause: Activation}, 1,
		SetpointCommandScaledInfo{Ioa: 11, Value: -42}); err != nil {
		t.Fatal(err)
	}
	gs, err := c.lastSent(t).GetSetpointScaledCmd()
	if err != nil {
		t.Fatal(err)
	}
	if gs.Value != -42 {
		t.Errorf("scaled: got %d", gs.Value)
	}

	if err := SetpointCmdFloat(c, C_SE_NC_1, CauseOfTransmission{Cause: Activation}, 1,
		SetpointCommandFloatInfo{Ioa: 12, Value: 2.5, Qos: QualifierOfSetpointCmd{InSelect: true}}); err != nil {
		t.Fatal(err)
	}
	gf, err := c.lastSent(t).GetSetpointFloatCmd()
	if err != nil {
		t.Fatal(err)
	}
	if gf.Value != 2.5 || !gf.Qos.InSelect {
		t.Errorf("float: got %+v", gf)
	}
}

func TestBitsString32CmdRoundTrip(t *testing.T) {
	c := newFakeConn()
	if err := BitsString32Cmd(c, CauseOfTransmission{Cause: Activation}, 1,
		BitsString32CommandInfo{Ioa: 13, Value: 0x01020304}); err != nil {
		t.Fatal(err)
	}
	got, err := c.lastSent(t).GetBitsString32Cmd()
	if err != nil {
		t.Fatal(err)
	}
	if got.Value != 0x01020304 {
		t.Errorf("bitstring: got 0x%08X", got.Value)
	}
}
