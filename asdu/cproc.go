// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"time"
)

// Control direction process commands. Each XxxCmd function builds the single
// information object ASDU and hands it to the connection for transmission.
// Commands carry exactly one information object.

// SingleCommandInfo is the payload of a single command.
type SingleCommandInfo struct {
	Ioa   InfoObjAddr
	Value bool
	Qoc   QualifierOfCommand
	Time  time.Time
}

// DoubleCommandInfo is the payload of a double command.
type DoubleCommandInfo struct {
	Ioa   InfoObjAddr
	Value DoublePoint
	Qoc   QualifierOfCommand
	Time  time.Time
}

// StepCommandInfo is the payload of a regulating step command.
type StepCommandInfo struct {
	Ioa   InfoObjAddr
	Value StepCommand
	Qoc   QualifierOfCommand
	Time  time.Time
}

// StepCommand is the regulating step command state (RCS).
type StepCommand byte

// Regulating step command states. 0 and 3 are not permitted.
const (
	SCLowerStep  StepCommand = 1
	SCHigherStep StepCommand = 2
)

// SetpointCommandNormalInfo is the payload of a normalized set-point command.
type SetpointCommandNormalInfo struct {
	Ioa   InfoObjAddr
	Value Normalize
	Qos   QualifierOfSetpointCmd
	Time  time.Time
}

// SetpointCommandScaledInfo is the payload of a scaled set-point command.
type SetpointCommandScaledInfo struct {
	Ioa   InfoObjAddr
	Value int16
	Qos   QualifierOfSetpointCmd
	Time  time.Time
}

// SetpointCommandFloatInfo is the payload of a short floating point set-point
// command.
type SetpointCommandFloatInfo struct {
	Ioa   InfoObjAddr
	Value float32
	Qos   QualifierOfSetpointCmd
	Time  time.Time
}

// BitsString32CommandInfo is the payload of a 32-bit bitstring command.
type BitsString32CommandInfo struct {
	Ioa   InfoObjAddr
	Value uint32
}

// checkCommandCoa admits the causes a command may be sent with.
func checkCommandCoa(coa CauseOfTransmission) error {
	if coa.Cause != Activation && coa.Cause != Deactivation {
		return ErrCmdCause
	}
	return nil
}

// SingleCmd sends a C_SC_NA_1 or C_SC_TA_1 command.
func SingleCmd(c Connect, typeID TypeID, coa CauseOfTransmission,
	ca CommonAddr, cmd SingleCommandInfo) error {
	if typeID != C_SC_NA_1 && typeID != C_SC_TA_1 {
		return ErrTypeIDNotMatch
	}
	if err := checkCommandCoa(coa); err != nil {
		return err
	}
	if err := c.Params().ValidCommonAddr(ca); err != nil {
		return err
	}
	u := NewASDU(c.Params(), Identifier{
		Type:     typeID,
		Variable: VariableStruct{Number: 1},
		Coa:      coa, CommonAddr: ca,
	})
	if err := u.AppendInfoObjAddr(cmd.Ioa); err != nil {
		return err
	}
	sco := cmd.Qoc.Value()
	if cmd.Value {
		sco |= 0x01
	}
	u.AppendBytes(sco)
	if typeID == C_SC_TA_1 {
		u.AppendCP56Time2a(cmd.Time, u.InfoObjTimeZone)
	}
	return c.Send(u)
}

// GetSingleCmd decodes a single command ASDU.
func (sf *ASDU) GetSingleCmd() (SingleCommandInfo, error) {
	if sf.Type != C_SC_NA_1 && sf.Type != C_SC_TA_1 {
		return SingleCommandInfo{}, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return SingleCommandInfo{}, err
	}
	var cmd SingleCommandInfo
	cmd.Ioa = sf.DecodeInfoObjAddr()
	sco := sf.DecodeByte()
	cmd.Value = sco&0x01 != 0
	cmd.Qoc = ParseQualifierOfCommand(sco & 0xfc)
	if sf.Type == C_SC_TA_1 {
		cmd.Time = sf.DecodeCP56Time2a()
	}
	return cmd, nil
}

// DoubleCmd sends a C_DC_NA_1 or C_DC_TA_1 command.
func DoubleCmd(c Connect, typeID TypeID, coa CauseOfTransmission,
	ca CommonAddr, cmd DoubleCommandInfo) error {
	if typeID != C_DC_NA_1 && typeID != C_DC_TA_1 {
		return ErrTypeIDNotMatch
	}
	if err := checkCommandCoa(coa); err != nil {
		return err
	}
	if err := c.Params().ValidCommonAddr(ca); err != nil {
		return err
	}
	u := NewASDU(c.Params(), Identifier{
		Type:     typeID,
		Variable: VariableStruct{Number: 1},
		Coa:      coa, CommonAddr: ca,
	})
	if err := u.AppendInfoObjAddr(cmd.Ioa); err != nil {
		return err
	}
	u.AppendBytes(cmd.Qoc.Value() | cmd.Value.Value())
	if typeID == C_DC_TA_1 {
		u.AppendCP56Time2a(cmd.Time, u.InfoObjTimeZone)
	}
	return c.Send(u)
}

// GetDoubleCmd decodes a double command ASDU.
func (sf *ASDU) GetDoubleCmd() (DoubleCommandInfo, error) {
	if sf.Type != C_DC_NA_1 && sf.Type != C_DC_TA_1 {
		return DoubleCommandInfo{}, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return DoubleCommandInfo{}, err
	}
	var cmd DoubleCommandInfo
	cmd.Ioa = sf.DecodeInfoObjAddr()
	dco := sf.DecodeByte()
	cmd.Value = DoublePoint(dco & 0x03)
	cmd.Qoc = ParseQualifierOfCommand(dco & 0xfc)
	if sf.Type == C_DC_TA_1 {
		cmd.Time = sf.DecodeCP56Time2a()
	}
	return cmd, nil
}

// StepCmd sends a C_RC_NA_1 command.
func StepCmd(c Connect, coa CauseOfTransmission, ca CommonAddr, cmd StepCommandInfo) error {
	if err := checkCommandCoa(coa); err != nil {
		return err
	}
	if err := c.Params().ValidCommonAddr(ca); err != nil {
		return err
	}
	u := NewASDU(c.Params(), Identifier{
		Type:     C_RC_NA_1,
		Variable: VariableStruct{Number: 1},
		Coa:      coa, CommonAddr: ca,
	})
	if err := u.AppendInfoObjAddr(cmd.Ioa); err != nil {
		return err
	}
	u.AppendBytes(cmd.Qoc.Value() | byte(cmd.Value)&0x03)
	return c.Send(u)
}

// GetStepCmd decodes a regulating step command ASDU.
func (sf *ASDU) GetStepCmd() (StepCommandInfo, error) {
	if sf.Type != C_RC_NA_1 {
		return StepCommandInfo{}, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return StepCommandInfo{}, err
	}
	var cmd StepCommandInfo
	cmd.Ioa = sf.DecodeInfoObjAddr()
	rco := sf.DecodeByte()
	cmd.Value = StepCommand(rco & 0x03)
	cmd.Qoc = ParseQualifierOfCommand(rco & 0xfc)
	return cmd, nil
}

// SetpointCmdNormal sends a C_SE_NA_1 command.
func SetpointCmdNormal(c Connect, coa CauseOfTransmission, ca CommonAddr,
	cmd SetpointCommandNormalInfo) error {
	if err := checkCommandCoa(coa); err != nil {
		return err
	}
	if err := c.Params().ValidCommonAddr(ca); err != nil {
		return err
	}
	u := NewASDU(c.Params(), Identifier{
		Type:     C_SE_NA_1,
		Variable: VariableStruct{Number: 1},
		Coa:      coa, CommonAddr: ca,
	})
	if err := u.AppendInfoObjAddr(cmd.Ioa); err != nil {
		return err
	}
	u.AppendNormalize(cmd.Value).AppendBytes(cmd.Qos.Value())
	return c.Send(u)
}

// GetSetpointNormalCmd decodes a normalized set-point command ASDU.
func (sf *ASDU) GetSetpointNormalCmd() (SetpointCommandNormalInfo, error) {
	if sf.Type != C_SE_NA_1 {
		return SetpointCommandNormalInfo{}, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return SetpointCommandNormalInfo{}, err
	}
	var cmd SetpointCommandNormalInfo
	cmd.Ioa = sf.DecodeInfoObjAddr()
	cmd.Value = sf.DecodeNormalize()
	cmd.Qos = ParseQualifierOfSetpointCmd(sf.DecodeByte())
	return cmd, nil
}

// SetpointCmdScaled sends a C_SE_NB_1 command.
func SetpointCmdScaled(c Connect, coa CauseOfTransmission, ca CommonAddr,
	cmd SetpointCommandScaledInfo) error {
	if err := checkCommandCoa(coa); err != nil {
		return err
	}
	if err := c.Params().ValidCommonAddr(ca); err != nil {
		return err
	}
	u := NewASDU(c.Params(), Identifier{
		Type:     C_SE_NB_1,
		Variable: VariableStruct{Number: 1},
		Coa:      coa, CommonAddr: ca,
	})
	if err := u.AppendInfoObjAddr(cmd.Ioa); err != nil {
		return err
	}
	u.AppendScaled(cmd.Value).AppendBytes(cmd.Qos.Value())
	return c.Send(u)
}

// GetSetpointScaledCmd decodes a scaled set-point command ASDU.
func (sf *ASDU) GetSetpointScaledCmd() (SetpointCommandScaledInfo, error) {
	if sf.Type != C_SE_NB_1 {
		return SetpointCommandScaledInfo{}, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return SetpointCommandScaledInfo{}, err
	}
	var cmd SetpointCommandScaledInfo
	cmd.Ioa = sf.DecodeInfoObjAddr()
	cmd.Value = sf.DecodeScaled()
	cmd.Qos = ParseQualifierOfSetpointCmd(sf.DecodeByte())
	return cmd, nil
}

// SetpointCmdFloat sends a C_SE_NC_1 or C_SE_TC_1 command.
func SetpointCmdFloat(c Connect, typeID TypeID, coa CauseOfTransmission,
	ca CommonAddr, cmd SetpointCommandFloatInfo) error {
	if typeID != C_SE_NC_1 && typeID != C_SE_TC_1 {
		return ErrTypeIDNotMatch
	}
	if err := checkCommandCoa(coa); err != nil {
		return err
	}
	if err := c.Params().ValidCommonAddr(ca); err != nil {
		return err
	}
	u := NewASDU(c.Params(), Identifier{
		Type:     typeID,
		Variable: VariableStruct{Number: 1},
		Coa:      coa, CommonAddr: ca,
	})
	if err := u.AppendInfoObjAddr(cmd.Ioa); err != nil {
		return err
	}
	u.AppendFloat32(cmd.Value).AppendBytes(cmd.Qos.Value())
	if typeID == C_SE_TC_1 {
		u.AppendCP56Time2a(cmd.Time, u.InfoObjTimeZone)
	}
	return c.Send(u)
}

// GetSetpointFloatCmd decodes a short floating point set-point command ASDU.
func (sf *ASDU) GetSetpointFloatCmd() (SetpointCommandFloatInfo, error) {
	if sf.Type != C_SE_NC_1 && sf.Type != C_SE_TC_1 {
		return SetpointCommandFloatInfo{}, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return SetpointCommandFloatInfo{}, err
	}
	var cmd SetpointCommandFloatInfo
	cmd.Ioa = sf.DecodeInfoObjAddr()
	cmd.Value = sf.DecodeFloat32()
	cmd.Qos = ParseQualifierOfSetpointCmd(sf.DecodeByte())
	if sf.Type == C_SE_TC_1 {
		cmd.Time = sf.DecodeCP56Time2a()
	}
	return cmd, nil
}

// BitsString32Cmd sends a C_BO_NA_1 command.
func BitsString32Cmd(c Connect, coa CauseOfTransmission, ca CommonAddr,
	cmd BitsString32CommandInfo) error {
	if err := checkCommandCoa(coa); err != nil {
		return err
	}
	if err := c.Params().ValidCommonAddr(ca); err != nil {
		return err
	}
	u := NewASDU(c.Params(), Identifier{
		Type:     C_BO_NA_1,
		Variable: VariableStruct{Number: 1},
		Coa:      coa, CommonAddr: ca,
	})
	if err := u.AppendInfoObjAddr(cmd.Ioa); err != nil {
		return err
	}
	u.AppendBitsString32(cmd.Value)
	return c.Send(u)
}

// GetBitsString32Cmd decodes a 32-bit bitstring command ASDU.
func (sf *ASDU) GetBitsString32Cmd() (BitsString32CommandInfo, error) {
	if sf.Type != C_BO_NA_1 {
		return BitsString32CommandInfo{}, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return BitsString32CommandInfo{}, err
	}
	var cmd BitsString32CommandInfo
	cmd.Ioa = sf.DecodeInfoObjAddr()
	cmd.Value = sf.DecodeBitsString32()
	return cmd, nil
}
