// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"errors"
)

// error defined
var (
	ErrUseClosedConnection = errors.New("use of closed connection")
	ErrBufferFulled        = errors.New("send buffer is full")
	ErrNotActive           = errors.New("data transfer is not active")
	ErrSendWindowFull      = errors.New("send window is full (k unacknowledged I frames)")
	ErrLengthOutOfRange    = errors.New("ASDU does not fit in one APDU")
)

// frame and sequence errors, all fatal to the connection
var (
	ErrInvalidStartFrame    = errors.New("invalid start frame octet")
	ErrAPDULengthOutOfRange = errors.New("APDU length octet out of range [4, 253]")
	ErrIncompleteFrame      = errors.New("incomplete frame")
	ErrUnknownControlField  = errors.New("unknown control field format")
	ErrSeqNoMismatch        = errors.New("received send sequence number does not match expected")
	ErrAckOutOfRange        = errors.New("acknowledge sequence number outside the send window")
	ErrUnexpectedFrame      = errors.New("unexpected frame for current link state")
)

// timeout errors
var (
	ErrTimeoutT0 = errors.New("connect timeout (t0)")
	ErrTimeoutT1 = errors.New("acknowledge timeout (t1)")
)
