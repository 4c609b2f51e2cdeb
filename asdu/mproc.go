// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"time"
)

// Monitor direction information. Each GetXxx accessor decodes the full
// information object buffer of a received ASDU into typed values, honoring the
// sequence flag of the variable structure qualifier. Each NewXxx builder
// produces a sendable ASDU from the same typed values.

// SinglePointInfo is a single-point information object. Time is the zero value
// for types without a time tag or when the tag is marked invalid.
type SinglePointInfo struct {
	Ioa   InfoObjAddr
	Value bool
	// Qds contains the quality flags, overflow not applicable.
	Qds  QualityDescriptor
	Time time.Time
}

// DoublePointInfo is a double-point information object.
type DoublePointInfo struct {
	Ioa   InfoObjAddr
	Value DoublePoint
	Qds   QualityDescriptor
	Time  time.Time
}

// StepPositionInfo is a step position information object.
type StepPositionInfo struct {
	Ioa   InfoObjAddr
	Value StepPosition
	Qds   QualityDescriptor
	Time  time.Time
}

// BitString32Info is a 32-bit bitstring information object.
type BitString32Info struct {
	Ioa   InfoObjAddr
	Value uint32
	Qds   QualityDescriptor
	Time  time.Time
}

// MeasuredValueNormalInfo is a normalized measured value information object.
type MeasuredValueNormalInfo struct {
	Ioa   InfoObjAddr
	Value Normalize
	Qds   QualityDescriptor
	Time  time.Time
}

// MeasuredValueScaledInfo is a scaled measured value information object.
type MeasuredValueScaledInfo struct {
	Ioa   InfoObjAddr
	Value int16
	Qds   QualityDescriptor
	Time  time.Time
}

// MeasuredValueFloatInfo is a short floating point measured value information
// object.
type MeasuredValueFloatInfo struct {
	Ioa   InfoObjAddr
	Value float32
	Qds   QualityDescriptor
	Time  time.Time
}

// BinaryCounterReadingInfo is an integrated totals information object.
type BinaryCounterReadingInfo struct {
	Ioa   InfoObjAddr
	Value BinaryCounterReading
	Time  time.Time
}

// decodeSeqIoa yields the information object address for object i of n under
// sequence encoding, where only the first address is on the wire.
func (sf *ASDU) decodeSeqIoa(i int, base *InfoObjAddr) InfoObjAddr {
	if sf.Variable.IsSequence {
		if i == 0 {
			*base = sf.DecodeInfoObjAddr()
		}
		return *base + InfoObjAddr(i)
	}
	return sf.DecodeInfoObjAddr()
}

// appendSeqIoa writes the information object address for object i under the
// configured encoding.
func (sf *ASDU) appendSeqIoa(i int, ioa InfoObjAddr) error {
	if sf.Variable.IsSequence && i > 0 {
		return nil
	}
	return sf.AppendInfoObjAddr(ioa)
}

// NewSinglePoint builds a single-point ASDU of type M_SP_NA_1, M_SP_TA_1 or
// M_SP_TB_1. Under sequence encoding the addresses of infos must be
// contiguous from the first.
func NewSinglePoint(p *Params, typeID TypeID, isSequence bool, coa CauseOfTransmission,
	ca CommonAddr, infos ...SinglePointInfo) (*ASDU, error) {
	if typeID != M_SP_NA_1 && typeID != M_SP_TA_1 && typeID != M_SP_TB_1 {
		return nil, ErrTypeIDNotMatch
	}
	u := NewASDU(p, Identifier{Type: typeID, Coa: coa, CommonAddr: ca})
	if err := u.setVariableNumber(len(infos), isSequence); err != nil {
		return nil, err
	}
	for i, v := range infos {
		if err := u.appendSeqIoa(i, v.Ioa); err != nil {
			return nil, err
		}
		siq := byte(v.Qds) &^ byte(QDSOverflow)
		if v.Value {
			siq |= 0x01
		}
		u.AppendBytes(siq)
		switch typeID {
		case M_SP_TA_1:
			u.AppendCP24Time2a(v.Time, u.InfoObjTimeZone)
		case M_SP_TB_1:
			u.AppendCP56Time2a(v.Time, u.InfoObjTimeZone)
		}
	}
	return u, nil
}

// GetSinglePoint decodes a single-point ASDU.
func (sf *ASDU) GetSinglePoint() ([]SinglePointInfo, error) {
	if sf.Type != M_SP_NA_1 && sf.Type != M_SP_TA_1 && sf.Type != M_SP_TB_1 {
		return nil, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return nil, err
	}
	var base InfoObjAddr
	info := make([]SinglePointInfo, 0, sf.Variable.Number)
	for i := 0; i < int(sf.Variable.Number); i++ {
		v := SinglePointInfo{Ioa: sf.decodeSeqIoa(i, &base)}
		siq := sf.DecodeByte()
		v.Value = siq&0x01 != 0
		v.Qds = QualityDescriptor(siq & 0xf0)
		switch sf.Type {
		case M_SP_TA_1:
			v.Time = sf.DecodeCP24Time2a()
		case M_SP_TB_1:
			v.Time = sf.DecodeCP56Time2a()
		}
		info = append(info, v)
	}
	return info, nil
}

// NewDoublePoint builds a double-point ASDU of type M_DP_NA_1, M_DP_TA_1 or
// M_DP_TB_1.
func NewDoublePoint(p *Params, typeID TypeID, isSequence bool, coa CauseOfTransmission,
	ca CommonAddr, infos ...DoublePointInfo) (*ASDU, error) {
	if typeID != M_DP_NA_1 && typeID != M_DP_TA_1 && typeID != M_DP_TB_1 {
		return nil, ErrTypeIDNotMatch
	}
	u := NewASDU(p, Identifier{Type: typeID, Coa: coa, CommonAddr: ca})
	if err := u.setVariableNumber(len(infos), isSequence); err != nil {
		return nil, err
	}
	for i, v := range infos {
		if err := u.appendSeqIoa(i, v.Ioa); err != nil {
			return nil, err
		}
		diq := byte(v.Qds)&^byte(QDSOverflow) | v.Value.Value()
		u.AppendBytes(diq)
		switch typeID {
		case M_DP_TA_1:
			u.AppendCP24Time2a(v.Time, u.InfoObjTimeZone)
		case M_DP_TB_1:
			u.AppendCP56Time2a(v.Time, u.InfoObjTimeZone)
		}
	}
	return u, nil
}

// GetDoublePoint decodes a double-point ASDU.
func (sf *ASDU) GetDoublePoint() ([]DoublePointInfo, error) {
	if sf.Type != M_DP_NA_1 && sf.Type != M_DP_TA_1 && sf.Type != M_DP_TB_1 {
		return nil, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return nil, err
	}
	var base InfoObjAddr
	info := make([]DoublePointInfo, 0, sf.Variable.Number)
	for i := 0; i < int(sf.Variable.Number); i++ {
		v := DoublePointInfo{Ioa: sf.decodeSeqIoa(i, &base)}
		diq := sf.DecodeByte()
		v.Value = DoublePoint(diq & 0x03)
		v.Qds = QualityDescriptor(diq & 0xf0)
		switch sf.Type {
		case M_DP_TA_1:
			v.Time = sf.DecodeCP24Time2a()
		case M_DP_TB_1:
			v.Time = sf.DecodeCP56Time2a()
		}
		info = append(info, v)
	}
	return info, nil
}

// NewStepPosition builds a step position ASDU of type M_ST_NA_1.
func NewStepPosition(p *Params, isSequence bool, coa CauseOfTransmission,
	ca CommonAddr, infos ...StepPositionInfo) (*ASDU, error) {
	u := NewASDU(p, Identifier{Type: M_ST_NA_1, Coa: coa, CommonAddr: ca})
	if err := u.setVariableNumber(len(infos), isSequence); err != nil {
		return nil, err
	}
	for i, v := range infos {
		if err := u.appendSeqIoa(i, v.Ioa); err != nil {
			return nil, err
		}
		u.AppendBytes(v.Value.Value(), byte(v.Qds))
	}
	return u, nil
}

// GetStepPosition decodes a step position ASDU.
func (sf *ASDU) GetStepPosition() ([]StepPositionInfo, error) {
	if sf.Type != M_ST_NA_1 {
		return nil, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return nil, err
	}
	var base InfoObjAddr
	info := make([]StepPositionInfo, 0, sf.Variable.Number)
	for i := 0; i < int(sf.Variable.Number); i++ {
		v := StepPositionInfo{Ioa: sf.decodeSeqIoa(i, &base)}
		v.Value = ParseStepPosition(sf.DecodeByte())
		v.Qds = QualityDescriptor(sf.DecodeByte())
		info = append(info, v)
	}
	return info, nil
}

// NewBitString32 builds a 32-bit bitstring ASDU of type M_BO_NA_1.
func NewBitString32(p *Params, isSequence bool, coa CauseOfTransmission,
	ca CommonAddr, infos ...BitString32Info) (*ASDU, error) {
	u := NewASDU(p, Identifier{Type: M_BO_NA_1, Coa: coa, CommonAddr: ca})
	if err := u.setVariableNumber(len(infos), isSequence); err != nil {
		return nil, err
	}
	for i, v := range infos {
		if err := u.appendSeqIoa(i, v.Ioa); err != nil {
			return nil, err
		}
		u.AppendBitsString32(v.Value).AppendBytes(byte(v.Qds))
	}
	return u, nil
}

// GetBitString32 decodes a 32-bit bitstring ASDU.
func (sf *ASDU) GetBitString32() ([]BitString32Info, error) {
	if sf.Type != M_BO_NA_1 {
		return nil, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return nil, err
	}
	var base InfoObjAddr
	info := make([]BitString32Info, 0, sf.Variable.Number)
	for i := 0; i < int(sf.Variable.Number); i++ {
		v := BitString32Info{Ioa: sf.decodeSeqIoa(i, &base)}
		v.Value = sf.DecodeBitsString32()
		v.Qds = QualityDescriptor(sf.DecodeByte())
		info = append(info, v)
	}
	return info, nil
}

// NewMeasuredValueNormal builds a normalized measured value ASDU of type
// M_ME_NA_1 or M_ME_TA_1.
func NewMeasuredValueNormal(p *Params, typeID TypeID, isSequence bool, coa CauseOfTransmission,
	ca CommonAddr, infos ...MeasuredValueNormalInfo) (*ASDU, error) {
	if typeID != M_ME_NA_1 && typeID != M_ME_TA_1 {
		return nil, ErrTypeIDNotMatch
	}
	u := NewASDU(p, Identifier{Type: typeID, Coa: coa, CommonAddr: ca})
	if err := u.setVariableNumber(len(infos), isSequence); err != nil {
		return nil, err
	}
	for i, v := range infos {
		if err := u.appendSeqIoa(i, v.Ioa); err != nil {
			return nil, err
		}
		u.AppendNormalize(v.Value).AppendBytes(byte(v.Qds))
		if typeID == M_ME_TA_1 {
			u.AppendCP24Time2a(v.Time, u.InfoObjTimeZone)
		}
	}
	return u, nil
}

// GetMeasuredValueNormal decodes a normalized measured value ASDU.
func (sf *ASDU) GetMeasuredValueNormal() ([]MeasuredValueNormalInfo, error) {
	if sf.Type != M_ME_NA_1 && sf.Type != M_ME_TA_1 {
		return nil, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return nil, err
	}
	var base InfoObjAddr
	info := make([]MeasuredValueNormalInfo, 0, sf.Variable.Number)
	for i := 0; i < int(sf.Variable.Number); i++ {
		v := MeasuredValueNormalInfo{Ioa: sf.decodeSeqIoa(i, &base)}
		v.Value = sf.DecodeNormalize()
		v.Qds = QualityDescriptor(sf.DecodeByte())
		if sf.Type == M_ME_TA_1 {
			v.Time = sf.DecodeCP24Time2a()
		}
		info = append(info, v)
	}
	return info, nil
}

// NewMeasuredValueScaled builds a scaled measured value ASDU of type
// M_ME_NB_1 or M_ME_TB_1.
func NewMeasuredValueScaled(p *Params, typeID TypeID, isSequence bool, coa CauseOfTransmission,
	ca CommonAddr, infos ...MeasuredValueScaledInfo) (*ASDU, error) {
	if typeID != M_ME_NB_1 && typeID != M_ME_TB_1 {
		return nil, ErrTypeIDNotMatch
	}
	u := NewASDU(p, Identifier{Type: typeID, Coa: coa, CommonAddr: ca})
	if err := u.setVariableNumber(len(infos), isSequence); err != nil {
		return nil, err
	}
	for i, v := range infos {
		if err := u.appendSeqIoa(i, v.Ioa); err != nil {
			return nil, err
		}
		u.AppendScaled(v.Value).AppendBytes(byte(v.Qds))
		if typeID == M_ME_TB_1 {
			u.AppendCP24Time2a(v.Time, u.InfoObjTimeZone)
		}
	}
	return u, nil
}

// GetMeasuredValueScaled decodes a scaled measured value ASDU.
func (sf *ASDU) GetMeasuredValueScaled() ([]MeasuredValueScaledInfo, error) {
	if sf.Type != M_ME_NB_1 && sf.Type != M_ME_TB_1 {
		return nil, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return nil, err
	}
	var base InfoObjAddr
	info := make([]MeasuredValueScaledInfo, 0, sf.Variable.Number)
	for i := 0; i < int(sf.Variable.Number); i++ {
		v := MeasuredValueScaledInfo{Ioa: sf.decodeSeqIoa(i, &base)}
		v.Value = sf.DecodeScaled()
		v.Qds = QualityDescriptor(sf.DecodeByte())
		if sf.Type == M_ME_TB_1 {
			v.Time = sf.DecodeCP24Time2a()
		}
		info = append(info, v)
	}
	return info, nil
}

// NewMeasuredValueFloat builds a short floating point measured value ASDU of
// type M_ME_NC_1, M_ME_TC_1 or M_ME_TF_1.
func NewMeasuredValueFloat(p *Params, typeID TypeID, isSequence bool, coa CauseOfTransmission,
	ca CommonAddr, infos ...MeasuredValueFloatInfo) (*ASDU, error) {
	if typeID != M_ME_NC_1 && typeID != M_ME_TC_1 && typeID != M_ME_TF_1 {
		return nil, ErrTypeIDNotMatch
	}
	u := NewASDU(p, Identifier{Type: typeID, Coa: coa, CommonAddr: ca})
	if err := u.setVariableNumber(len(infos), isSequence); err != nil {
		return nil, err
	}
	for i, v := range infos {
		if err := u.appendSeqIoa(i, v.Ioa); err != nil {
			return nil, err
		}
		u.AppendFloat32(v.Value).AppendBytes(byte(v.Qds))
		switch typeID {
		case M_ME_TC_1:
			u.AppendCP24Time2a(v.Time, u.InfoObjTimeZone)
		case M_ME_TF_1:
			u.AppendCP56Time2a(v.Time, u.InfoObjTimeZone)
		}
	}
	return u, nil
}

// GetMeasuredValueFloat decodes a short floating point measured value ASDU.
func (sf *ASDU) GetMeasuredValueFloat() ([]MeasuredValueFloatInfo, error) {
	if sf.Type != M_ME_NC_1 && sf.Type != M_ME_TC_1 && sf.Type != M_ME_TF_1 {
		return nil, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return nil, err
	}
	var base InfoObjAddr
	info := make([]MeasuredValueFloatInfo, 0, sf.Variable.Number)
	for i := 0; i < int(sf.Variable.Number); i++ {
		v := MeasuredValueFloatInfo{Ioa: sf.decodeSeqIoa(i, &base)}
		v.Value = sf.DecodeFloat32()
		v.Qds = QualityDescriptor(sf.DecodeByte())
		switch sf.Type {
		case M_ME_TC_1:
			v.Time = sf.DecodeCP24Time2a()
		case M_ME_TF_1:
			v.Time = sf.DecodeCP56Time2a()
		}
		info = append(info, v)
	}
	return info, nil
}

// NewIntegratedTotals builds an integrated totals ASDU of type M_IT_NA_1.
func NewIntegratedTotals(p *Params, isSequence bool, coa CauseOfTransmission,
	ca CommonAddr, infos ...BinaryCounterReadingInfo) (*ASDU, error) {
	u := NewASDU(p, Identifier{Type: M_IT_NA_1, Coa: coa, CommonAddr: ca})
	if err := u.setVariableNumber(len(infos), isSequence); err != nil {
		return nil, err
	}
	for i, v := range infos {
		if err := u.appendSeqIoa(i, v.Ioa); err != nil {
			return nil, err
		}
		u.AppendBinaryCounterReading(v.Value)
	}
	return u, nil
}

// GetIntegratedTotals decodes an integrated totals ASDU.
func (sf *ASDU) GetIntegratedTotals() ([]BinaryCounterReadingInfo, error) {
	if sf.Type != M_IT_NA_1 {
		return nil, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return nil, err
	}
	var base InfoObjAddr
	info := make([]BinaryCounterReadingInfo, 0, sf.Variable.Number)
	for i := 0; i < int(sf.Variable.Number); i++ {
		v := BinaryCounterReadingInfo{Ioa: sf.decodeSeqIoa(i, &base)}
		v.Value = sf.DecodeBinaryCounterReading()
		info = append(info, v)
	}
	return info, nil
}

// NewEndOfInitialization builds an M_EI_NA_1 ASDU.
func NewEndOfInitialization(p *Params, coa CauseOfTransmission, ca CommonAddr,
	ioa InfoObjAddr, coi CauseOfInitialization) (*ASDU, error) {
	u := NewASDU(p, Identifier{
		Type:     M_EI_NA_1,
		Variable: VariableStruct{Number: 1},
		Coa:      coa, CommonAddr: ca,
	})
	if err := u.AppendInfoObjAddr(ioa); err != nil {
		return nil, err
	}
	u.AppendBytes(coi.Value())
	return u, nil
}

// GetEndOfInitialization decodes an M_EI_NA_1 ASDU.
func (sf *ASDU) GetEndOfInitialization() (InfoObjAddr, CauseOfInitialization, error) {
	if sf.Type != M_EI_NA_1 {
		return 0, CauseOfInitialization{}, ErrTypeIDNotMatch
	}
	if err := sf.checkRemaining(); err != nil {
		return 0, CauseOfInitialization{}, err
	}
	ioa := sf.DecodeInfoObjAddr()
	return ioa, ParseCauseOfInitialization(sf.DecodeByte()), nil
}
