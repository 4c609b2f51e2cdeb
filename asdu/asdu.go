// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package asdu provides the application service data unit codec for
// IEC 60870-5 companion standards, covering type identification, cause of
// transmission, addressing and the per-type information element layouts.
package asdu

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// ASDUSizeMax is the largest ASDU that fits one APDU: the 253-octet maximum
// APDU length minus the 4-octet control field.
const ASDUSizeMax = 249

// Params defines the fixed system parameters of a connection. The addressing
// octet sizes are configured per link and never negotiated.
type Params struct {
	// CauseSize is the cause of transmission size in octets, 1 or 2. With
	// size 2 the second octet carries the originator address.
	CauseSize int
	// CommonAddrSize is the common address size in octets, 1 or 2.
	CommonAddrSize int
	// InfoObjAddrSize is the information object address size in octets,
	// 1, 2 or 3.
	InfoObjAddrSize int
	// InfoObjTimeZone is the time zone applied to time tags.
	InfoObjTimeZone *time.Location
}

// Predefined parameter sets.
var (
	// ParamsNarrow is the smallest configuration.
	ParamsNarrow = &Params{CauseSize: 1, CommonAddrSize: 1, InfoObjAddrSize: 1, InfoObjTimeZone: time.UTC}
	// ParamsWide is the largest configuration.
	ParamsWide = &Params{CauseSize: 2, CommonAddrSize: 2, InfoObjAddrSize: 3, InfoObjTimeZone: time.UTC}
	// ParamsStandard101 is the default for IEC 60870-5-101 links.
	ParamsStandard101 = &Params{CauseSize: 1, CommonAddrSize: 1, InfoObjAddrSize: 2, InfoObjTimeZone: time.UTC}
	// ParamsStandard104 is the fixed profile of IEC 60870-5-104.
	ParamsStandard104 = &Params{CauseSize: 2, CommonAddrSize: 2, InfoObjAddrSize: 3, InfoObjTimeZone: time.UTC}
)

// Valid checks the parameter combination.
func (sf Params) Valid() error {
	if (sf.CauseSize != 1 && sf.CauseSize != 2) ||
		(sf.CommonAddrSize != 1 && sf.CommonAddrSize != 2) ||
		(sf.InfoObjAddrSize < 1 || sf.InfoObjAddrSize > 3) ||
		sf.InfoObjTimeZone == nil {
		return ErrParam
	}
	return nil
}

// ValidCommonAddr checks the common address against the configured size.
func (sf Params) ValidCommonAddr(addr CommonAddr) error {
	if addr == InvalidCommonAddr {
		return ErrCommonAddrZero
	}
	if sf.CommonAddrSize == 1 && addr > 255 && addr != GlobalCommonAddr {
		return ErrParam
	}
	return nil
}

// IdentifierSize returns the serialized size of the data unit identifier.
func (sf Params) IdentifierSize() int {
	return 2 + sf.CauseSize + sf.CommonAddrSize
}

// Identifier is the data unit identifier of an ASDU.
type Identifier struct {
	// Type is the type identification selecting the information element layout.
	Type TypeID
	// Variable is the variable structure qualifier.
	Variable VariableStruct
	// Coa is the cause of transmission.
	Coa CauseOfTransmission
	// OrigAddr is the originator address, sent only with CauseSize 2.
	OrigAddr OriginatorAddr
	// CommonAddr is the common address of ASDU.
	CommonAddr CommonAddr
}

// String returns a compact identifier rendering like
// "M_SP_NA_1 VSQ<1> COT<3> OA:0 CA:1".
func (id Identifier) String() string {
	return fmt.Sprintf("%s %s %s OA:%d CA:%d",
		id.Type, id.Variable, id.Coa, id.OrigAddr, id.CommonAddr)
}

// ASDU is one application service data unit: the identifier plus the raw
// information object octets, together with the system parameters needed to
// interpret them.
type ASDU struct {
	*Params
	Identifier
	infoObj []byte
}

// NewEmptyASDU returns an ASDU ready for UnmarshalBinary.
func NewEmptyASDU(p *Params) *ASDU {
	return &ASDU{Params: p}
}

// NewASDU returns an ASDU with the given identifier and an empty information
// object buffer.
func NewASDU(p *Params, identifier Identifier) *ASDU {
	a := NewEmptyASDU(p)
	a.Identifier = identifier
	a.infoObj = make([]byte, 0, ASDUSizeMax-p.IdentifierSize())
	return a
}

// Clone returns a deep copy sharing only the immutable parameters.
func (sf *ASDU) Clone() *ASDU {
	r := &ASDU{Params: sf.Params, Identifier: sf.Identifier}
	r.infoObj = append(r.infoObj, sf.infoObj...)
	return r
}

// InfoObjBytes exposes the raw information object octets.
func (sf *ASDU) InfoObjBytes() []byte { return sf.infoObj }

// AppendInfoObjAddr appends the information object address using the
// configured octet size. It fails when the address does not fit.
func (sf *ASDU) AppendInfoObjAddr(addr InfoObjAddr) error {
	switch sf.InfoObjAddrSize {
	case 1:
		if addr > 255 {
			return ErrInfoObjAddrFit
		}
		sf.infoObj = append(sf.infoObj, byte(addr))
	case 2:
		if addr > 65535 {
			return ErrInfoObjAddrFit
		}
		sf.infoObj = append(sf.infoObj, byte(addr), byte(addr>>8))
	case 3:
		if addr > 16777215 {
			return ErrInfoObjAddrFit
		}
		sf.infoObj = append(sf.infoObj, byte(addr), byte(addr>>8), byte(addr>>16))
	default:
		return ErrParam
	}
	return nil
}

// DecodeInfoObjAddr consumes one information object address from the buffer.
func (sf *ASDU) DecodeInfoObjAddr() InfoObjAddr {
	var addr InfoObjAddr
	switch sf.InfoObjAddrSize {
	case 1:
		addr = InfoObjAddr(sf.infoObj[0])
		sf.infoObj = sf.infoObj[1:]
	case 2:
		addr = InfoObjAddr(sf.infoObj[0]) | InfoObjAddr(sf.infoObj[1])<<8
		sf.infoObj = sf.infoObj[2:]
	case 3:
		addr = InfoObjAddr(sf.infoObj[0]) | InfoObjAddr(sf.infoObj[1])<<8 |
			InfoObjAddr(sf.infoObj[2])<<16
		sf.infoObj = sf.infoObj[3:]
	}
	return addr
}

// AppendBytes appends raw octets to the information object buffer.
func (sf *ASDU) AppendBytes(b ...byte) *ASDU {
	sf.infoObj = append(sf.infoObj, b...)
	return sf
}

// DecodeByte consumes one octet.
func (sf *ASDU) DecodeByte() byte {
	v := sf.infoObj[0]
	sf.infoObj = sf.infoObj[1:]
	return v
}

// AppendUint16 appends a little-endian 16-bit value.
func (sf *ASDU) AppendUint16(v uint16) *ASDU {
	sf.infoObj = append(sf.infoObj, byte(v), byte(v>>8))
	return sf
}

// DecodeUint16 consumes a little-endian 16-bit value.
func (sf *ASDU) DecodeUint16() uint16 {
	v := binary.LittleEndian.Uint16(sf.infoObj)
	sf.infoObj = sf.infoObj[2:]
	return v
}

// AppendNormalize appends a normalized value.
func (sf *ASDU) AppendNormalize(v Normalize) *ASDU {
	return sf.AppendUint16(uint16(v))
}

// DecodeNormalize consumes a normalized value.
func (sf *ASDU) DecodeNormalize() Normalize {
	return Normalize(sf.DecodeUint16())
}

// AppendScaled appends a scaled 16-bit value.
func (sf *ASDU) AppendScaled(v int16) *ASDU {
	return sf.AppendUint16(uint16(v))
}

// DecodeScaled consumes a scaled 16-bit value.
func (sf *ASDU) DecodeScaled() int16 {
	return int16(sf.DecodeUint16())
}

// AppendFloat32 appends a short floating point value.
func (sf *ASDU) AppendFloat32(v float32) *ASDU {
	bits := math.Float32bits(v)
	sf.infoObj = append(sf.infoObj, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	return sf
}

// DecodeFloat32 consumes a short floating point value.
func (sf *ASDU) DecodeFloat32() float32 {
	v := math.Float32frombits(binary.LittleEndian.Uint32(sf.infoObj))
	sf.infoObj = sf.infoObj[4:]
	return v
}

// AppendBitsString32 appends a 32-bit bitstring value.
func (sf *ASDU) AppendBitsString32(v uint32) *ASDU {
	sf.infoObj = append(sf.infoObj, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	return sf
}

// DecodeBitsString32 consumes a 32-bit bitstring value.
func (sf *ASDU) DecodeBitsString32() uint32 {
	v := binary.LittleEndian.Uint32(sf.infoObj)
	sf.infoObj = sf.infoObj[4:]
	return v
}

// AppendBinaryCounterReading appends a BCR element.
func (sf *ASDU) AppendBinaryCounterReading(v BinaryCounterReading) *ASDU {
	value := uint32(v.CounterReading)
	sf.infoObj = append(sf.infoObj, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
	b := v.SeqNumber & 0x1f
	if v.HasCarry {
		b |= 0x20
	}
	if v.IsAdjusted {
		b |= 0x40
	}
	if v.IsInvalid {
		b |= 0x80
	}
	sf.infoObj = append(sf.infoObj, b)
	return sf
}

// DecodeBinaryCounterReading consumes a BCR element.
func (sf *ASDU) DecodeBinaryCounterReading() BinaryCounterReading {
	v := int32(binary.LittleEndian.Uint32(sf.infoObj))
	b := sf.infoObj[4]
	sf.infoObj = sf.infoObj[5:]
	return BinaryCounterReading{
		CounterReading: v,
		SeqNumber:      b & 0x1f,
		HasCarry:       b&0x20 != 0,
		IsAdjusted:     b&0x40 != 0,
		IsInvalid:      b&0x80 != 0,
	}
}

// AppendCP56Time2a appends a 7-octet time tag.
func (sf *ASDU) AppendCP56Time2a(t time.Time, loc *time.Location) *ASDU {
	sf.infoObj = append(sf.infoObj, CP56Time2a(t, loc)...)
	return sf
}

// DecodeCP56Time2a consumes a 7-octet time tag.
func (sf *ASDU) DecodeCP56Time2a() time.Time {
	t := ParseCP56Time2a(sf.infoObj, sf.InfoObjTimeZone)
	sf.infoObj = sf.infoObj[7:]
	return t
}

// AppendCP24Time2a appends a 3-octet time tag.
func (sf *ASDU) AppendCP24Time2a(t time.Time, loc *time.Location) *ASDU {
	sf.infoObj = append(sf.infoObj, CP24Time2a(t, loc)...)
	return sf
}

// DecodeCP24Time2a consumes a 3-octet time tag.
func (sf *ASDU) DecodeCP24Time2a() time.Time {
	t := ParseCP24Time2a(sf.infoObj, sf.InfoObjTimeZone)
	sf.infoObj = sf.infoObj[3:]
	return t
}

// AppendCP16Time2a appends a 2-octet millisecond value.
func (sf *ASDU) AppendCP16Time2a(msec uint16) *ASDU {
	sf.infoObj = append(sf.infoObj, CP16Time2a(msec)...)
	return sf
}

// DecodeCP16Time2a consumes a 2-octet millisecond value.
func (sf *ASDU) DecodeCP16Time2a() uint16 {
	v := ParseCP16Time2a(sf.infoObj)
	sf.infoObj = sf.infoObj[2:]
	return v
}

// setVariableNumber fills the qualifier after validating the object count.
func (sf *ASDU) setVariableNumber(n int, isSequence bool) error {
	if n < 1 || n > 127 {
		return ErrInfoObjNumberFit
	}
	sf.Variable.Number = byte(n)
	sf.Variable.IsSequence = isSequence
	return nil
}

// objSize returns the serialized octets required by n information objects of
// the given element size under the current qualifier encoding.
func (sf *ASDU) objSize(n, elemSize int) int {
	if sf.Variable.IsSequence {
		return sf.InfoObjAddrSize + n*elemSize
	}
	return n * (sf.InfoObjAddrSize + elemSize)
}

// checkRemaining verifies the buffer holds exactly what the qualifier
// declares for the registered layout of the type.
func (sf *ASDU) checkRemaining() error {
	layout, ok := infoObjLayout[sf.Type]
	if !ok {
		return ErrTypeIDUnknown
	}
	need := sf.objSize(int(sf.Variable.Number), layout.size+layout.timeSize)
	if len(sf.infoObj) < need {
		return ErrInfoObjTruncated
	}
	return nil
}

// MarshalBinary honors the encoding.BinaryMarshaler interface.
func (sf *ASDU) MarshalBinary() ([]byte, error) {
	switch {
	case sf.Coa.Cause == Unused:
		return nil, ErrCauseZero
	case sf.CommonAddr == InvalidCommonAddr:
		return nil, ErrCommonAddrZero
	case sf.CauseSize == 1 && sf.OrigAddr != 0:
		return nil, ErrOriginAddr
	}
	if err := sf.Params.Valid(); err != nil {
		return nil, err
	}

	raw := make([]byte, 0, sf.IdentifierSize()+len(sf.infoObj))
	raw = append(raw, byte(sf.Type), sf.Variable.Value(), sf.Coa.Value())
	if sf.CauseSize == 2 {
		raw = append(raw, byte(sf.OrigAddr))
	}
	if sf.CommonAddrSize == 1 {
		if sf.CommonAddr == GlobalCommonAddr {
			raw = append(raw, 255)
		} else {
			raw = append(raw, byte(sf.CommonAddr))
		}
	} else {
		raw = append(raw, byte(sf.CommonAddr), byte(sf.CommonAddr>>8))
	}
	if len(raw)+len(sf.infoObj) > ASDUSizeMax {
		return nil, ErrLengthOutOfRange
	}
	return append(raw, sf.infoObj...), nil
}

// UnmarshalBinary honors the encoding.BinaryUnmarshaler interface.
// ParseInfoObj* methods consume the remaining buffer afterwards.
func (sf *ASDU) UnmarshalBinary(rawASDU []byte) error {
	if sf.Params == nil {
		return ErrParam
	}
	if err := sf.Params.Valid(); err != nil {
		return err
	}
	if len(rawASDU) < sf.IdentifierSize() {
		return ErrInfoObjTruncated
	}
	if len(rawASDU) > ASDUSizeMax {
		return ErrLengthOutOfRange
	}

	sf.Type = TypeID(rawASDU[0])
	sf.Variable = ParseVariableStruct(rawASDU[1])
	sf.Coa = ParseCauseOfTransmission(rawASDU[2])
	offset := 3
	if sf.CauseSize == 2 {
		sf.OrigAddr = OriginatorAddr(rawASDU[offset])
		offset++
	} else {
		sf.OrigAddr = 0
	}
	if sf.CommonAddrSize == 1 {
		sf.CommonAddr = CommonAddr(rawASDU[offset])
		if sf.CommonAddr == 255 { // map the 1-octet broadcast value
			sf.CommonAddr = GlobalCommonAddr
		}
		offset++
	} else {
		sf.CommonAddr = CommonAddr(rawASDU[offset]) | CommonAddr(rawASDU[offset+1])<<8
		offset += 2
	}

	if sf.Variable.Number == 0 {
		return ErrInfoObjNumberFit
	}
	sf.infoObj = append(sf.infoObj[:0], rawASDU[offset:]...)
	return sf.checkRemaining()
}
