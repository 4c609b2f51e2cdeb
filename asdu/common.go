// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"fmt"
)

// TypeID is the ASDU type identification.
type TypeID uint8

// Type identifications in use. Monitor direction types carry process
// information towards the controlling station, control direction types carry
// commands towards the controlled station.
const (
	_ TypeID = iota

	// M_SP_NA_1 single-point information
	M_SP_NA_1 // 1
	// M_SP_TA_1 single-point information with CP24Time2a time tag
	M_SP_TA_1 // 2
	// M_DP_NA_1 double-point information
	M_DP_NA_1 // 3
	// M_DP_TA_1 double-point information with CP24Time2a time tag
	M_DP_TA_1 // 4
	// M_ST_NA_1 step position information
	M_ST_NA_1 // 5
)

const (
	// M_BO_NA_1 bitstring of 32 bits
	M_BO_NA_1 TypeID = 7
	// M_ME_NA_1 measured value, normalized
	M_ME_NA_1 TypeID = 9
	// M_ME_TA_1 measured value, normalized with CP24Time2a time tag
	M_ME_TA_1 TypeID = 10
	// M_ME_NB_1 measured value, scaled
	M_ME_NB_1 TypeID = 11
	// M_ME_TB_1 measured value, scaled with CP24Time2a time tag
	M_ME_TB_1 TypeID = 12
	// M_ME_NC_1 measured value, short floating point
	M_ME_NC_1 TypeID = 13
	// M_ME_TC_1 measured value, short floating point with CP24Time2a time tag
	M_ME_TC_1 TypeID = 14
	// M_IT_NA_1 integrated totals
	M_IT_NA_1 TypeID = 15
	// M_SP_TB_1 single-point information with CP56Time2a time tag
	M_SP_TB_1 TypeID = 30
	// M_DP_TB_1 double-point information with CP56Time2a time tag
	M_DP_TB_1 TypeID = 31
	// M_ME_TF_1 measured value, short floating point with CP56Time2a time tag
	M_ME_TF_1 TypeID = 36

	// C_SC_NA_1 single command
	C_SC_NA_1 TypeID = 45
	// C_DC_NA_1 double command
	C_DC_NA_1 TypeID = 46
	// C_RC_NA_1 regulating step command
	C_RC_NA_1 TypeID = 47
	// C_SE_NA_1 set-point command, normalized
	C_SE_NA_1 TypeID = 48
	// C_SE_NB_1 set-point command, scaled
	C_SE_NB_1 TypeID = 49
	// C_SE_NC_1 set-point command, short floating point
	C_SE_NC_1 TypeID = 50
	// C_BO_NA_1 bitstring of 32 bits command
	C_BO_NA_1 TypeID = 51
	// C_SC_TA_1 single command with CP56Time2a time tag
	C_SC_TA_1 TypeID = 58
	// C_DC_TA_1 double command with CP56Time2a time tag
	C_DC_TA_1 TypeID = 59
	// C_SE_TC_1 set-point command, short floating point with CP56Time2a time tag
	C_SE_TC_1 TypeID = 63

	// M_EI_NA_1 end of initialization
	M_EI_NA_1 TypeID = 70

	// C_IC_NA_1 interrogation command
	C_IC_NA_1 TypeID = 100
	// C_CI_NA_1 counter interrogation command
	C_CI_NA_1 TypeID = 101
	// C_RD_NA_1 read command
	C_RD_NA_1 TypeID = 102
	// C_CS_NA_1 clock synchronization command
	C_CS_NA_1 TypeID = 103
	// C_TS_NA_1 test command
	C_TS_NA_1 TypeID = 104
	// C_RP_NA_1 reset process command
	C_RP_NA_1 TypeID = 105
	// C_CD_NA_1 delay acquisition command
	C_CD_NA_1 TypeID = 106
	// C_TS_TA_1 test command with CP56Time2a time tag
	C_TS_TA_1 TypeID = 107
)

var typeIDName = map[TypeID]string{
	M_SP_NA_1: "M_SP_NA_1", M_SP_TA_1: "M_SP_TA_1",
	M_DP_NA_1: "M_DP_NA_1", M_DP_TA_1: "M_DP_TA_1",
	M_ST_NA_1: "M_ST_NA_1", M_BO_NA_1: "M_BO_NA_1",
	M_ME_NA_1: "M_ME_NA_1", M_ME_TA_1: "M_ME_TA_1",
	M_ME_NB_1: "M_ME_NB_1", M_ME_TB_1: "M_ME_TB_1",
	M_ME_NC_1: "M_ME_NC_1", M_ME_TC_1: "M_ME_TC_1",
	M_IT_NA_1: "M_IT_NA_1", M_SP_TB_1: "M_SP_TB_1",
	M_DP_TB_1: "M_DP_TB_1", M_ME_TF_1: "M_ME_TF_1",
	C_SC_NA_1: "C_SC_NA_1", C_DC_NA_1: "C_DC_NA_1",
	C_RC_NA_1: "C_RC_NA_1", C_SE_NA_1: "C_SE_NA_1",
	C_SE_NB_1: "C_SE_NB_1", C_SE_NC_1: "C_SE_NC_1",
	C_BO_NA_1: "C_BO_NA_1", C_SC_TA_1: "C_SC_TA_1",
	C_DC_TA_1: "C_DC_TA_1", C_SE_TC_1: "C_SE_TC_1",
	M_EI_NA_1: "M_EI_NA_1",
	C_IC_NA_1: "C_IC_NA_1", C_CI_NA_1: "C_CI_NA_1",
	C_RD_NA_1: "C_RD_NA_1", C_CS_NA_1: "C_CS_NA_1",
	C_TS_NA_1: "C_TS_NA_1", C_RP_NA_1: "C_RP_NA_1",
	C_CD_NA_1: "C_CD_NA_1", C_TS_TA_1: "C_TS_TA_1",
}

func (sf TypeID) String() string {
	if name, ok := typeIDName[sf]; ok {
		return name
	}
	return fmt.Sprintf("TID<%d>", uint8(sf))
}

// infoObjElement describes the fixed wire layout of one information object
// element for a type identification: the element size in octets excluding the
// information object address, and the appended time tag size (0, 3 or 7).
type infoObjElement struct {
	size     int
	timeSize int
}

// infoObjLayout is the registry of supported type identifications. A type
// absent from this table decodes with ErrTypeIDUnknown.
var infoObjLayout = map[TypeID]infoObjElement{
	M_SP_NA_1: {1, 0}, M_SP_TA_1: {1, 3}, M_SP_TB_1: {1, 7},
	M_DP_NA_1: {1, 0}, M_DP_TA_1: {1, 3}, M_DP_TB_1: {1, 7},
	M_ST_NA_1: {2, 0},
	M_BO_NA_1: {5, 0},
	M_ME_NA_1: {3, 0}, M_ME_TA_1: {3, 3},
	M_ME_NB_1: {3, 0}, M_ME_TB_1: {3, 3},
	M_ME_NC_1: {5, 0}, M_ME_TC_1: {5, 3}, M_ME_TF_1: {5, 7},
	M_IT_NA_1: {5, 0},
	C_SC_NA_1: {1, 0}, C_SC_TA_1: {1, 7},
	C_DC_NA_1: {1, 0}, C_DC_TA_1: {1, 7},
	C_RC_NA_1: {1, 0},
	C_SE_NA_1: {3, 0}, C_SE_NB_1: {3, 0},
	C_SE_NC_1: {5, 0}, C_SE_TC_1: {5, 7},
	C_BO_NA_1: {4, 0},
	M_EI_NA_1: {1, 0},
	C_IC_NA_1: {1, 0}, C_CI_NA_1: {1, 0},
	C_RD_NA_1: {0, 0},
	C_CS_NA_1: {7, 0},
	C_TS_NA_1: {2, 0}, C_TS_TA_1: {2, 7},
	C_RP_NA_1: {1, 0},
	C_CD_NA_1: {2, 0},
}

// Cause is the 6-bit cause of transmission code.
type Cause byte

// Causes of transmission.
const (
	Unused               Cause = iota // 0: not defined
	Periodic                          // 1: periodic, cyclic
	Background                        // 2: background scan
	Spontaneous                       // 3: spontaneous
	Initialized                       // 4: initialized
	Request                           // 5: request or requested
	Activation                        // 6: activation
	ActivationCon                     // 7: activation confirmation
	Deactivation                      // 8: deactivation
	DeactivationCon                   // 9: deactivation confirmation
	ActivationTerm                    // 10: activation termination
	ReturnInfoRemote                  // 11: return information caused by a remote command
	ReturnInfoLocal                   // 12: return information caused by a local command
	FileTransfer                      // 13: file transfer
)

const (
	InterrogatedByStation Cause = 20 + iota
	InterrogatedByGroup1
	InterrogatedByGroup2
	InterrogatedByGroup3
	InterrogatedByGroup4
	InterrogatedByGroup5
	InterrogatedByGroup6
	InterrogatedByGroup7
	InterrogatedByGroup8
	InterrogatedByGroup9
	InterrogatedByGroup10
	InterrogatedByGroup11
	InterrogatedByGroup12
	InterrogatedByGroup13
	InterrogatedByGroup14
	InterrogatedByGroup15
	InterrogatedByGroup16
	RequestByGeneralCounter
	RequestByGroup1Counter
	RequestByGroup2Counter
	RequestByGroup3Counter
	RequestByGroup4Counter
)

const (
	UnknownTypeID Cause = 44 + iota
	UnknownCOT
	UnknownCA
	UnknownIOA
)

// CauseOfTransmission is the cause code together with the test and
// positive/negative confirmation flags packed into the first COT octet.
type CauseOfTransmission struct {
	Cause      Cause
	IsTest     bool
	IsNegative bool
}

// ParseCauseOfTransmission unpacks the first COT octet.
func ParseCauseOfTransmission(b byte) CauseOfTransmission {
	return CauseOfTransmission{
		Cause:      Cause(b & 0x3f),
		IsTest:     b&0x80 != 0,
		IsNegative: b&0x40 != 0,
	}
}

// Value packs the cause and flags back into one octet.
func (sf CauseOfTransmission) Value() byte {
	v := byte(sf.Cause) & 0x3f
	if sf.IsTest {
		v |= 0x80
	}
	if sf.IsNegative {
		v |= 0x40
	}
	return v
}

func (sf CauseOfTransmission) String() string {
	s := fmt.Sprintf("COT<%d>", byte(sf.Cause))
	if sf.IsTest {
		s += ",test"
	}
	if sf.IsNegative {
		s += ",neg"
	}
	return s
}

// VariableStruct is the variable structure qualifier: the information object
// count and the sequence flag selecting contiguous-address encoding.
type VariableStruct struct {
	IsSequence bool
	// Number of information objects, [1, 127]
	Number byte
}

// ParseVariableStruct unpacks the variable structure qualifier octet.
func ParseVariableStruct(b byte) VariableStruct {
	return VariableStruct{
		IsSequence: b&0x80 != 0,
		Number:     b & 0x7f,
	}
}

// Value packs the qualifier back into one octet.
func (sf VariableStruct) Value() byte {
	v := sf.Number & 0x7f
	if sf.IsSequence {
		v |= 0x80
	}
	return v
}

func (sf VariableStruct) String() string {
	if sf.IsSequence {
		return fmt.Sprintf("VSQ<sq,%d>", sf.Number)
	}
	return fmt.Sprintf("VSQ<%d>", sf.Number)
}

// OriginatorAddr is the originator address, the optional second COT octet.
type OriginatorAddr uint8

// CommonAddr is the common address of ASDU, the station address.
type CommonAddr uint16

// Common address values with reserved meaning.
const (
	// InvalidCommonAddr is the invalid common address value.
	InvalidCommonAddr CommonAddr = 0
	// GlobalCommonAddr is the broadcast address. Use is restricted to
	// C_IC_NA_1, C_CI_NA_1, C_CS_NA_1 and C_RP_NA_1 in control direction.
	GlobalCommonAddr CommonAddr = 65535
)

// InfoObjAddr is the information object address.
type InfoObjAddr uint

// InfoObjAddrIrrelevant is the zero address used by system commands that
// address the station rather than a point.
const InfoObjAddrIrrelevant InfoObjAddr = 0

// QualityDescriptor flags describe the validity of a monitored value. For
// single/double point information the overflow flag is not applicable.
type QualityDescriptor byte

const (
	// QDSOverflow marks a value beyond a predefined range (OV).
	QDSOverflow QualityDescriptor = 1 << iota
	_
	_
	_
	// QDSBlocked marks a value blocked for transmission (BL).
	QDSBlocked
	// QDSSubstituted marks a value provided by input substitution (SB).
	QDSSubstituted
	// QDSNotTopical marks a value not updated within a defined interval (NT).
	QDSNotTopical
	// QDSInvalid marks an invalid value (IV).
	QDSInvalid

	// QDSGood means no flags, no problems.
	QDSGood QualityDescriptor = 0
)

// DoublePoint is a double-point information value.
type DoublePoint byte

// Double-point states.
const (
	DPIndeterminateOrIntermediate DoublePoint = iota // 00
	DPDeterminedOff                                  // 01
	DPDeterminedOn                                   // 10
	DPIndeterminate                                  // 11
)

// Value packs the state into the low bits of a DIQ octet.
func (sf DoublePoint) Value() byte { return byte(sf & 0x03) }

// StepPosition is a transmitter position with a transient flag (VTI).
type StepPosition struct {
	// Val is the position in [-64, 63].
	Val int
	// HasTransient is set while the equipment is in transient state.
	HasTransient bool
}

// ParseStepPosition unpacks a value/transient octet.
func ParseStepPosition(b byte) StepPosition {
	p := StepPosition{HasTransient: b&0x80 != 0}
	v := int(b & 0x7f)
	if v >= 64 { // sign extend the 7-bit value
		v -= 128
	}
	p.Val = v
	return p
}

// Value packs the position back into one octet. Values outside [-64, 63]
// oscillate in a strange way.
func (sf StepPosition) Value() byte {
	v := byte(sf.Val) & 0x7f
	if sf.HasTransient {
		v |= 0x80
	}
	return v
}

// Normalize is a 16-bit normalized value in [-1, 1-2^-15].
type Normalize int16

// Float64 returns the value scaled to [-1, 1).
func (sf Normalize) Float64() float64 { return float64(sf) / 32768 }

// BinaryCounterReading is an integrated total with its sequence notation (BCR).
type BinaryCounterReading struct {
	CounterReading int32
	SeqNumber      byte // [0, 31]
	HasCarry       bool
	IsAdjusted     bool
	IsInvalid      bool
}

// SingleCommand is the command state of a single command (SCS).
type SingleCommand = bool

// QOCQual is the qualifier of command value.
type QOCQual byte

// Qualifier of command values. 3 and [8, 15] are reserved, [16, 31] for
// special use.
const (
	// QOCNoAdditionalDefinition no additional definition
	QOCNoAdditionalDefinition QOCQual = iota
	// QOCShortPulseDuration short pulse duration, circuit-breaker
	QOCShortPulseDuration
	// QOCLongPulseDuration long pulse duration
	QOCLongPulseDuration
	// QOCPersistentOutput persistent output
	QOCPersistentOutput
)

// QualifierOfCommand is the qualifier of command (QOC) with select/execute.
type QualifierOfCommand struct {
	Qual QOCQual
	// InSelect is true for select, false for execute.
	InSelect bool
}

// ParseQualifierOfCommand unpacks the QOC bits of a command octet.
func ParseQualifierOfCommand(b byte) QualifierOfCommand {
	return QualifierOfCommand{
		Qual:     QOCQual((b >> 2) & 0x1f),
		InSelect: b&0x80 != 0,
	}
}

// Value packs the qualifier back into the QOC bits.
func (sf QualifierOfCommand) Value() byte {
	v := (byte(sf.Qual) & 0x1f) << 2
	if sf.InSelect {
		v |= 0x80
	}
	return v
}

// QualifierOfSetpointCmd is the qualifier of set-point command (QOS).
type QualifierOfSetpointCmd struct {
	// Qual is 0 for default, [1, 63] reserved/special.
	Qual byte
	// InSelect is true for select, false for execute.
	InSelect bool
}

// ParseQualifierOfSetpointCmd unpacks a QOS octet.
func ParseQualifierOfSetpointCmd(b byte) QualifierOfSetpointCmd {
	return QualifierOfSetpointCmd{
		Qual:     b & 0x7f,
		InSelect: b&0x80 != 0,
	}
}

// Value packs the qualifier back into one octet.
func (sf QualifierOfSetpointCmd) Value() byte {
	v := sf.Qual & 0x7f
	if sf.InSelect {
		v |= 0x80
	}
	return v
}

// QualifierOfInterrogation is the qualifier of a C_IC_NA_1 command (QOI).
type QualifierOfInterrogation byte

const (
	// QOIStation requests a station interrogation (global).
	QOIStation QualifierOfInterrogation = 20
	// QOIGroup1 requests interrogation of group 1; groups 2 to 16 follow.
	QOIGroup1 QualifierOfInterrogation = 21
	// QOIGroup16 requests interrogation of group 16.
	QOIGroup16 QualifierOfInterrogation = 36
)

// QCCRequest is the request part of the counter interrogation qualifier.
type QCCRequest byte

// QCCFreeze is the freeze part of the counter interrogation qualifier.
type QCCFreeze byte

// Counter interrogation request and freeze values.
const (
	QCCGroup1 QCCRequest = iota + 1
	QCCGroup2
	QCCGroup3
	QCCGroup4
	QCCTotal

	QCCFrzRead          QCCFreeze = 0x00
	QCCFrzFreezeNoReset QCCFreeze = 0x40
	QCCFrzFreezeReset   QCCFreeze = 0x80
	QCCFrzReset         QCCFreeze = 0xc0
)

// QualifierCountCall is the qualifier of a C_CI_NA_1 command (QCC).
type QualifierCountCall struct {
	Request QCCRequest
	Freeze  QCCFreeze
}

// ParseQualifierCountCall unpacks a QCC octet.
func ParseQualifierCountCall(b byte) QualifierCountCall {
	return QualifierCountCall{
		Request: QCCRequest(b & 0x3f),
		Freeze:  QCCFreeze(b & 0xc0),
	}
}

// Value packs the qualifier back into one octet.
func (sf QualifierCountCall) Value() byte {
	return byte(sf.Request)&0x3f | byte(sf.Freeze)&0xc0
}

// QualifierOfResetProcessCmd is the qualifier of a C_RP_NA_1 command (QRP).
type QualifierOfResetProcessCmd byte

const (
	// QRPGeneralReset requests a total reset of the process.
	QRPGeneralReset QualifierOfResetProcessCmd = 1
	// QRPResetPendingInfoWithTimeTag discards pending time-tagged information.
	QRPResetPendingInfoWithTimeTag QualifierOfResetProcessCmd = 2
)

// CauseOfInitialization is the COI octet of M_EI_NA_1.
type CauseOfInitialization struct {
	// Cause: 0 local power on, 1 local manual reset, 2 remote reset.
	Cause byte
	// IsLocalChange is set when parameters changed since the last init.
	IsLocalChange bool
}

// ParseCauseOfInitialization unpacks a COI octet.
func ParseCauseOfInitialization(b byte) CauseOfInitialization {
	return CauseOfInitialization{
		Cause:         b & 0x7f,
		IsLocalChange: b&0x80 != 0,
	}
}

// Value packs the cause back into one octet.
func (sf CauseOfInitialization) Value() byte {
	v := sf.Cause & 0x7f
	if sf.IsLocalChange {
		v |= 0x80
	}
	return v
}
