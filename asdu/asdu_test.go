// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"bytes"
	"errors"
	"testing"
)

func TestParamsValid(t *testing.T) {
	for _, p := range []*Params{ParamsNarrow, ParamsWide, ParamsStandard101, ParamsStandard104} {
		if err := p.Valid(); err != nil {
			t.Errorf("predefined params %+v invalid: %v", p, err)
		}
	}
	bad := Params{CauseSize: 3, CommonAddrSize: 1, InfoObjAddrSize: 2}
	if err := bad.Valid(); !errors.Is(err, ErrParam) {
		t.Errorf("CauseSize 3: got %v, want ErrParam", err)
	}
	bad = *ParamsWide
	bad.InfoObjTimeZone = nil
	if err := bad.Valid(); !errors.Is(err, ErrParam) {
		t.Errorf("nil time zone: got %v, want ErrParam", err)
	}
}

func TestParamsValidCommonAddr(t *testing.T) {
	if err := ParamsWide.ValidCommonAddr(InvalidCommonAddr); !errors.Is(err, ErrCommonAddrZero) {
		t.Errorf("zero common addr: got %v, want ErrCommonAddrZero", err)
	}
	if err := ParamsNarrow.ValidCommonAddr(256); !errors.Is(err, ErrParam) {
		t.Errorf("256 with 1 octet: got %v, want ErrParam", err)
	}
	if err := ParamsNarrow.ValidCommonAddr(GlobalCommonAddr); err != nil {
		t.Errorf("broadcast with 1 octet: got %v, want nil", err)
	}
}

func TestASDUMarshalUnmarshalRoundTrip(t *testing.T) {
	u := NewASDU(ParamsStandard104, Identifier{
		Type:       M_SP_NA_1,
		Variable:   VariableStruct{Number: 1},
		Coa:        CauseOfTransmission{Cause: Spontaneous},
		OrigAddr:   7,
		CommonAddr: 0x0102,
	})
	if err := u.AppendInfoObjAddr(0x030201); err != nil {
		t.Fatal(err)
	}
	u.AppendBytes(0x01)

	raw, err := u.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x01, 0x01, 0x03, 0x07, 0x02, 0x01, 0x01, 0x02, 0x03, 0x01}
	if !bytes.Equal(raw, want) {
		t.Fatalf("marshal: got [% X], want [% X]", raw, want)
	}

	back := NewEmptyASDU(ParamsStandard104)
	if err := back.UnmarshalBinary(raw); err != nil {
		t.Fatal(err)
	}
	if back.Identifier != u.Identifier {
		t.Errorf("identifier: got %+v, want %+v", back.Identifier, u.Identifier)
	}
	if !bytes.Equal(back.InfoObjBytes(), []byte{0x01, 0x02, 0x03, 0x01}) {
		t.Errorf("info obj: got [% X]", back.InfoObjBytes())
	}
}

func TestASDUMarshalRejects(t *testing.T) {
	u := NewASDU(ParamsStandard104, Identifier{
		Type: M_SP_NA_1, Variable: VariableStruct{Number: 1}, CommonAddr: 1,
	})
	if _, err := u.MarshalBinary(); !errors.Is(err, ErrCauseZero) {
		t.Errorf("cause zero: got %v", err)
	}

	u = NewASDU(ParamsStandard104, Identifier{
		Type: M_SP_NA_1, Variable: VariableStruct{Number: 1},
		Coa: CauseOfTransmission{Cause: Spontaneous},
	})
	if _, err := u.MarshalBinary(); !errors.Is(err, ErrCommonAddrZero) {
		t.Errorf("common addr zero: got %v", err)
	}

	u = NewASDU(ParamsStandard101, Identifier{
		Type: M_SP_NA_1, Variable: VariableStruct{Number: 1},
		Coa: CauseOfTransmission{Cause: Spontaneous}, OrigAddr: 1, CommonAddr: 1,
	})
	if _, err := u.MarshalBinary(); !errors.Is(err, ErrOriginAddr) {
		t.Errorf("originator with 1 octet cause: got %v", err)
	}
}

func TestASDUBroadcastOneOctet(t *testing.T) {
	u := NewASDU(ParamsNarrow, Identifier{
		Type:       C_IC_NA_1,
		Variable:   VariableStruct{Number: 1},
		Coa:        CauseOfTransmission{Cause: Activation},
		CommonAddr: GlobalCommonAddr,
	})
	if err := u.AppendInfoObjAddr(0); err != nil {
		t.Fatal(err)
	}
	u.AppendBytes(byte(QOIStation))
	raw, err := u.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if raw[3] != 255 {
		t.Fatalf("broadcast octet: got %d, want 255", raw[3])
	}

	back := NewEmptyASDU(ParamsNarrow)
	if err := back.UnmarshalBinary(raw); err != nil {
		t.Fatal(err)
	}
	if back.CommonAddr != GlobalCommonAddr {
		t.Errorf("broadcast mapping: got %d, want %d", back.CommonAddr, GlobalCommonAddr)
	}
}

func TestASDUUnmarshalRejects(t *testing.T) {
	back := NewEmptyASDU(ParamsStandard104)
	if err := back.UnmarshalBinary([]byte{0x01, 0x01}); !errors.Is(err, ErrInfoObjTruncated) {
		t.Errorf("short header: got %v", err)
	}

	// zero information object count
	raw := []byte{0x01, 0x00, 0x03, 0x00, 0x01, 0x00}
	if err := back.UnmarshalBinary(raw); !errors.Is(err, ErrInfoObjNumberFit) {
		t.Errorf("zero count: got %v", err)
	}

	// unregistered type identification
	raw = []byte{0xff, 0x01, 0x03, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x01}
	if err := back.UnmarshalBinary(raw); !errors.Is(err, ErrTypeIDUnknown) {
		t.Errorf("unknown type: got %v", err)
	}

	// truncated information objects for the declared count
	raw = []byte{0x01, 0x02, 0x03, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x01}
	if err := back.UnmarshalBinary(raw); !errors.Is(err, ErrInfoObjTruncated) {
		t.Errorf("truncated objects: got %v", err)
	}
}

func TestASDUSequenceEncodingSize(t *testing.T) {
	u := NewASDU(ParamsStandard104, Identifier{
		Type: M_SP_NA_1, Coa: CauseOfTransmission{Cause: Spontaneous}, CommonAddr: 1,
	})
	if err := u.setVariableNumber(3, true); err != nil {
		t.Fatal(err)
	}
	if got := u.objSize(3, 1); got != 3+3*1 {
		t.Errorf("sequence size: got %d, want 6", got)
	}
	u.Variable.IsSequence = false
	if got := u.objSize(3, 1); got != 3*(3+1) {
		t.Errorf("non sequence size: got %d, want 12", got)
	}
}

func TestVariableStructNumberLimit(t *testing.T) {
	u := NewASDU(ParamsStandard104, Identifier{Type: M_SP_NA_1})
	if err := u.setVariableNumber(0, false); !errors.Is(err, ErrInfoObjNumberFit) {
		t.Errorf("count 0: got %v", err)
	}
	if err := u.setVariableNumber(128, false); !errors.Is(err, ErrInfoObjNumberFit) {
		t.Errorf("count 128: got %v", err)
	}
	if err := u.setVariableNumber(127, true); err != nil {
		t.Errorf("count 127: got %v", err)
	}
	if u.Variable.Value() != 0x80|127 {
		t.Errorf("qualifier octet: got 0x%02X", u.Variable.Value())
	}
}

func TestCauseOfTransmissionOctet(t *testing.T) {
	cot := CauseOfTransmission{Cause: Activation, IsTest: true, IsNegative: true}
	b := cot.Value()
	if b != 0x80|0x40|byte(Activation) {
		t.Fatalf("COT octet: got 0x%02X", b)
	}
	if got := ParseCauseOfTransmission(b); got != cot {
		t.Errorf("COT parse: got %+v, want %+v", got, cot)
	}
}

func TestStepPositionSignExtension(t *testing.T) {
	tests := []struct {
		val       int
		transient bool
	}{
		{-64, false}, {-1, true}, {0, false}, {63, true},
	}
	for _, tt := range tests {
		sp := StepPosition{Val: tt.val, HasTransient: tt.transient}
		if got := ParseStepPosition(sp.Value()); got != sp {
			t.Errorf("step position %+v: round trip got %+v", sp, got)
		}
	}
}

func TestNormalizeFloat64(t *testing.T) {
	if got := Normalize(-32768).Float64(); got != -1 {
		t.Errorf("min: got %v, want -1", got)
	}
	if got := Normalize(32767).Float64(); got >= 1 {
		t.Errorf("max: got %v, want < 1", got)
	}
}
