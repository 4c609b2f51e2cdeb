// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"fmt"
	"io"

	"github.com/riclolsen/go-iec104/asdu"
)

// startFrame is the fixed first octet of every APDU.
const startFrame byte = 0x68

const (
	// APCICtlFiledSize is the fixed control field size in octets.
	APCICtlFiledSize = 4
	// APDUFieldLenMax is the largest valid value of the APDU length octet,
	// counting the control field and the ASDU.
	APDUFieldLenMax = 253
	// APDUSizeMax is the largest frame on the wire including the start octet
	// and the length octet.
	APDUSizeMax = 2 + APDUFieldLenMax
)

// U-frame function bits of the first control octet.
const (
	uStartDtActive  byte = 4 << iota // 0x04 start data transfer activation
	uStartDtConfirm                  // 0x08 start data transfer confirmation
	uStopDtActive                    // 0x10 stop data transfer activation
	uStopDtConfirm                   // 0x20 stop data transfer confirmation
	uTestFrActive                    // 0x40 test frame activation
	uTestFrConfirm                   // 0x80 test frame confirmation
)

// seqNoMask keeps send and receive sequence numbers in [0, 32767].
const seqNoMask = 0x7fff

// iAPCI is the control information of an I format frame.
type iAPCI struct {
	sendSN, rcvSN uint16
}

func (sf iAPCI) String() string {
	return fmt.Sprintf("I[sendNO: %d, rcvNO: %d]", sf.sendSN, sf.rcvSN)
}

// sAPCI is the control information of an S format frame.
type sAPCI struct {
	rcvSN uint16
}

func (sf sAPCI) String() string {
	return fmt.Sprintf("S[rcvNO: %d]", sf.rcvSN)
}

// uAPCI is the control information of a U format frame.
type uAPCI struct {
	function byte
}

func (sf uAPCI) String() string {
	var s string
	switch sf.function {
	case uStartDtActive:
		s = "StartDtActive"
	case uStartDtConfirm:
		s = "StartDtConfirm"
	case uStopDtActive:
		s = "StopDtActive"
	case uStopDtConfirm:
		s = "StopDtConfirm"
	case uTestFrActive:
		s = "TestFrActive"
	case uTestFrConfirm:
		s = "TestFrConfirm"
	default:
		s = "Unknown"
	}
	return fmt.Sprintf("U[function: %s]", s)
}

// newIFrame assembles a raw I format APDU carrying the given ASDU octets.
func newIFrame(sendSN, rcvSN uint16, asdus []byte) ([]byte, error) {
	if len(asdus) > asdu.ASDUSizeMax {
		return nil, ErrLengthOutOfRange
	}
	b := make([]byte, 0, 6+len(asdus))
	b = append(b, startFrame, byte(APCICtlFiledSize+len(asdus)),
		byte(sendSN<<1), byte(sendSN>>7),
		byte(rcvSN<<1), byte(rcvSN>>7))
	return append(b, asdus...), nil
}

// newSFrame assembles a raw S format APDU acknowledging up to rcvSN.
func newSFrame(rcvSN uint16) []byte {
	return []byte{startFrame, APCICtlFiledSize, 0x01, 0x00, byte(rcvSN << 1), byte(rcvSN >> 7)}
}

// newUFrame assembles a raw U format APDU with the given function bit.
func newUFrame(which byte) []byte {
	return []byte{startFrame, APCICtlFiledSize, which | 0x03, 0x00, 0x00, 0x00}
}

// APCI is the raw six octet application protocol control information.
type APCI struct {
	start                  byte
	apduFiledLen           byte
	ctr1, ctr2, ctr3, ctr4 byte
}

// parse returns the typed control information of the APCI. The low two bits
// of the first control octet select the format: xxxxxxx0 I, xxxxxx01 S,
// xxxxxx11 U.
func (sf APCI) parse() interface{} {
	if sf.ctr1&0x01 == 0 {
		return iAPCI{
			sendSN: uint16(sf.ctr1)>>1 | uint16(sf.ctr2)<<7,
			rcvSN:  uint16(sf.ctr3)>>1 | uint16(sf.ctr4)<<7,
		}
	}
	if sf.ctr1&0x03 == 0x01 {
		return sAPCI{
			rcvSN: uint16(sf.ctr3)>>1 | uint16(sf.ctr4)<<7,
		}
	}
	// U format, high six bits carry the function
	return uAPCI{function: sf.ctr1 & 0xfc}
}

// APDU is one decoded application protocol data unit.
type APDU struct {
	APCI
	// ASDU is the raw application service data unit of an I frame, empty for
	// S and U frames.
	ASDU []byte
}

// DissectAPDU extracts the first APDU from buf and returns the typed control
// information, the decoded APDU and the number of octets consumed. A short
// buffer yields ErrIncompleteFrame so callers feeding from a byte stream can
// wait for more data.
func DissectAPDU(buf []byte) (interface{}, APDU, int, error) {
	if len(buf) < 2 {
		return nil, APDU{}, 0, ErrIncompleteFrame
	}
	if buf[0] != startFrame {
		return nil, APDU{}, 0, ErrInvalidStartFrame
	}
	length := int(buf[1])
	if length < APCICtlFiledSize || length > APDUFieldLenMax {
		return nil, APDU{}, 0, ErrAPDULengthOutOfRange
	}
	if len(buf) < 2+length {
		return nil, APDU{}, 0, ErrIncompleteFrame
	}
	apdu := APDU{
		APCI: APCI{
			start:        buf[0],
			apduFiledLen: buf[1],
			ctr1:         buf[2], ctr2: buf[3], ctr3: buf[4], ctr4: buf[5],
		},
		ASDU: buf[6 : 2+length],
	}
	return apdu.parse(), apdu, 2 + length, nil
}

// readAPDU reads exactly one APDU from the transport. A wrong start octet or
// an out of range length octet poisons the octet stream, so both are fatal to
// the connection.
func readAPDU(r io.Reader, head []byte) (APDU, error) {
	var apdu APDU

	if _, err := io.ReadFull(r, head[:2]); err != nil {
		return apdu, err
	}
	if head[0] != startFrame {
		return apdu, ErrInvalidStartFrame
	}
	length := int(head[1])
	if length < APCICtlFiledSize || length > APDUFieldLenMax {
		return apdu, ErrAPDULengthOutOfRange
	}
	if _, err := io.ReadFull(r, head[2:2+length]); err != nil {
		return apdu, err
	}

	apdu.APCI = APCI{
		start:        head[0],
		apduFiledLen: head[1],
		ctr1:         head[2], ctr2: head[3], ctr3: head[4], ctr4: head[5],
	}
	apdu.ASDU = append(apdu.ASDU, head[6:2+length]...)
	return apdu, nil
}
