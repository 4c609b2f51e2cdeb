// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"errors"
)

// error defined
var (
	ErrParam            = errors.New("invalid system parameter")
	ErrTypeIDNotMatch   = errors.New("type identification does not match call")
	ErrTypeIDUnknown    = errors.New("unknown type identification")
	ErrCauseZero        = errors.New("cause of transmission is zero")
	ErrCommonAddrZero   = errors.New("common address is zero")
	ErrOriginAddr       = errors.New("originator address not in [0, 255]")
	ErrInfoObjAddrFit   = errors.New("information object address exceeds configured octet size")
	ErrInfoObjNumberFit = errors.New("information object count not in [1, 127]")
	ErrLengthOutOfRange = errors.New("serialized ASDU exceeds the APDU payload budget")
	ErrInfoObjTruncated = errors.New("information objects truncated")
	ErrNotAnyObjInfo    = errors.New("no information object available")
	ErrCmdCause         = errors.New("cause of transmission not usable for commands")
)
