// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

import (
	"io"
)

// Connect is the link surface command builders send through. A client (or
// server) session implements it.
type Connect interface {
	Params() *Params
	Send(a *ASDU) error
	UnderlyingConn() io.ReadWriteCloser
}
