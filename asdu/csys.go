// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"time"
)

// System commands in control direction. They address the station, so the
// information object address is irrelevant and sent as zero.

// TestCommandPattern is the fixed test sequence of C_TS_NA_1 (FBP).
const TestCommandPattern uint16 = 0x55aa

// newSystemCmdASDU builds the common shell of a one-object system command.
func newSystemCmdASDU(c Connect, typeID TypeID, coa CauseOfTransmission,
	ca CommonAddr) (*ASDU, error) {
	if err := c.Params().ValidCommonAddr(ca); err != nil {
		return nil, err
	}
	u := NewASDU(c.Params(), Identifier{
		Type:     typeID,
		Variable: VariableStruct{Number: 1},
		Coa:      coa, CommonAddr: ca,
	})
	if err := u.AppendInfoObjAddr(InfoObjAddrIrrelevant); err != nil {
		return nil, err
	}
	return u, nil
}

// InterrogationCmd sends a C_IC_NA_1 command. Use QOIStation for a station
// interrogation or QOIGroup1 through QOIGroup16 for one group.
func InterrogationCmd(c Connect, coa CauseOfTransmission, ca CommonAddr,
	qoi QualifierOfInterrogation) error {
	if coa.Cause != Activation && coa.Cause != Deactivation {
		return ErrCmdCause
	}
	u, err := newSystemCmdASDU(c, C_IC_NA_1, coa, ca)
	if err != nil {
		return err
	}
	u.AppendBytes(byte(qoi))
	return c.Send(u)
}

// GetInterrogationCmd decodes a C_IC_NA_1 ASDU.
func (sf *ASDU) GetInterrogationCmd() (InfoObjAddr, QualifierOfInterrogation, error) {
	if sf.Type != C_IC_NA_1 {
		return 0, 0, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return 0, 0, err
	}
	ioa := sf.DecodeInfoObjAddr()
	return ioa, QualifierOfInterrogation(sf.DecodeByte()), nil
}

// CounterInterrogationCmd sends a C_CI_NA_1 command.
func CounterInterrogationCmd(c Connect, coa CauseOfTransmission, ca CommonAddr,
	qcc QualifierCountCall) error {
	coa.Cause = Activation
	u, err := newSystemCmdASDU(c, C_CI_NA_1, coa, ca)
	if err != nil {
		return err
	}
	u.AppendBytes(qcc.Value())
	return c.Send(u)
}

// GetCounterInterrogationCmd decodes a C_CI_NA_1 ASDU.
func (sf *ASDU) GetCounterInterrogationCmd() (InfoObjAddr, QualifierCountCall, error) {
	if sf.Type != C_CI_NA_1 {
		return 0, QualifierCountCall{}, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return 0, QualifierCountCall{}, err
	}
	ioa := sf.DecodeInfoObjAddr()
	return ioa, ParseQualifierCountCall(sf.DecodeByte()), nil
}

// ReadCmd sends a C_RD_NA_1 command requesting one information object.
func ReadCmd(c Connect, coa CauseOfTransmission, ca CommonAddr, ioa InfoObjAddr) error {
	coa.Cause = Request
	if err := c.Params().ValidCommonAddr(ca); err != nil {
		return err
	}
	u := NewASDU(c.Params(), Identifier{
		Type:     C_RD_NA_1,
		Variable: VariableStruct{Number: 1},
		Coa:      coa, CommonAddr: ca,
	})
	if err := u.AppendInfoObjAddr(ioa); err != nil {
		return err
	}
	return c.Send(u)
}

// GetReadCmd decodes a C_RD_NA_1 ASDU.
func (sf *ASDU) GetReadCmd() (InfoObjAddr, error) {
	if sf.Type != C_RD_NA_1 {
		return 0, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return 0, err
	}
	return sf.DecodeInfoObjAddr(), nil
}

// ClockSynchronizationCmd sends a C_CS_NA_1 command carrying the given time.
func ClockSynchronizationCmd(c Connect, coa CauseOfTransmission, ca CommonAddr,
	t time.Time) error {
	coa.Cause = Activation
	u, err := newSystemCmdASDU(c, C_CS_NA_1, coa, ca)
	if err != nil {
		return err
	}
	u.AppendCP56Time2a(t, u.InfoObjTimeZone)
	return c.Send(u)
}

// GetClockSynchronizationCmd decodes a C_CS_NA_1 ASDU.
func (sf *ASDU) GetClockSynchronizationCmd() (InfoObjAddr, time.Time, error) {
	if sf.Type != C_CS_NA_1 {
		return 0, time.Time{}, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return 0, time.Time{}, err
	}
	ioa := sf.DecodeInfoObjAddr()
	return ioa, sf.DecodeCP56Time2a(), nil
}

// TestCommand sends a C_TS_NA_1 command with the fixed test pattern.
func TestCommand(c Connect, coa CauseOfTransmission, ca CommonAddr) error {
	coa.Cause = Activation
	u, err := newSystemCmdASDU(c, C_TS_NA_1, coa, ca)
	if err != nil {
		return err
	}
	u.AppendUint16(TestCommandPattern)
	return c.Send(u)
}

// GetTestCommand decodes a C_TS_NA_1 ASDU and reports whether the pattern
// matches.
func (sf *ASDU) GetTestCommand() (InfoObjAddr, bool, error) {
	if sf.Type != C_TS_NA_1 {
		return 0, false, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return 0, false, err
	}
	ioa := sf.DecodeInfoObjAddr()
	return ioa, sf.DecodeUint16() == TestCommandPattern, nil
}

// TestCommandCP56Time2a sends a C_TS_TA_1 command with the test pattern and a
// time tag.
func TestCommandCP56Time2a(c Connect, coa CauseOfTransmission, ca CommonAddr,
	t time.Time) error {
	coa.Cause = Activation
	u, err := newSystemCmdASDU(c, C_TS_TA_1, coa, ca)
	if err != nil {
		return err
	}
	u.AppendUint16(TestCommandPattern)
	u.AppendCP56Time2a(t, u.InfoObjTimeZone)
	return c.Send(u)
}

// GetTestCommandCP56Time2a decodes a C_TS_TA_1 ASDU.
func (sf *ASDU) GetTestCommandCP56Time2a() (InfoObjAddr, bool, time.Time, error) {
	if sf.Type != C_TS_TA_1 {
		return 0, false, time.Time{}, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return 0, false, time.Time{}, err
	}
	ioa := sf.DecodeInfoObjAddr()
	ok := sf.DecodeUint16() == TestCommandPattern
	return ioa, ok, sf.DecodeCP56Time2a(), nil
}

// ResetProcessCmd sends a C_RP_NA_1 command.
func ResetProcessCmd(c Connect, coa CauseOfTransmission, ca CommonAddr,
	qrp QualifierOfResetProcessCmd) error {
	coa.Cause = Activation
	u, err := newSystemCmdASDU(c, C_RP_NA_1, coa, ca)
	if err != nil {
		return err
	}
	u.AppendBytes(byte(qrp))
	return c.Send(u)
}

// GetResetProcessCmd decodes a C_RP_NA_1 ASDU.
func (sf *ASDU) GetResetProcessCmd() (InfoObjAddr, QualifierOfResetProcessCmd, error) {
	if sf.Type != C_RP_NA_1 {
		return 0, 0, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return 0, 0, err
	}
	ioa := sf.DecodeInfoObjAddr()
	return ioa, QualifierOfResetProcessCmd(sf.DecodeByte()), nil
}

// DelayAcquireCommand sends a C_CD_NA_1 command carrying the transmission
// delay in milliseconds.
func DelayAcquireCommand(c Connect, coa CauseOfTransmission, ca CommonAddr,
	msec uint16) error {
	if coa.Cause != Activation && coa.Cause != Spontaneous {
		return ErrCmdCause
	}
	u, err := newSystemCmdASDU(c, C_CD_NA_1, coa, ca)
	if err != nil {
		return err
	}
	u.AppendCP16Time2a(msec)
	return c.Send(u)
}

// GetDelayAcquireCommand decodes a C_CD_NA_1 ASDU.
func (sf *ASDU) GetDelayAcquireCommand() (InfoObjAddr, uint16, error) {
	if sf.Type != C_CD_NA_1 {
		return 0, 0, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return 0, 0, err
	}
	ioa := sf.DecodeInfoObjAddr()
	return ioa, sf.DecodeCP16Time2a(), nil
}
