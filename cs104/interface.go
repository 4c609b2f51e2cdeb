// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"github.com/riclolsen/go-iec104/asdu"
)

// ClientHandlerInterface is the interface of the client (controlling station)
// handler. The dispatch loop routes received ASDUs by type identification and
// cause of transmission; ASDUHandlerAll sees every ASDU before the specific
// handler runs.
type ClientHandlerInterface interface {
	// InterrogationHandler receives interrogation responses.
	InterrogationHandler(asdu.Connect, *asdu.ASDU) error
	// CounterInterrogationHandler receives counter interrogation responses.
	CounterInterrogationHandler(asdu.Connect, *asdu.ASDU) error
	// ReadHandler receives responses to read commands.
	ReadHandler(asdu.Connect, *asdu.ASDU) error
	// TestCommandHandler receives test command confirmations.
	TestCommandHandler(asdu.Connect, *asdu.ASDU) error
	// ClockSyncHandler receives clock synchronization confirmations.
	ClockSyncHandler(asdu.Connect, *asdu.ASDU) error
	// ResetProcessHandler receives reset process confirmations.
	ResetProcessHandler(asdu.Connect, *asdu.ASDU) error
	// DelayAcquisitionHandler receives delay acquisition confirmations.
	DelayAcquisitionHandler(asdu.Connect, *asdu.ASDU) error
	// ASDUHandler receives everything without a specific handler, including
	// spontaneous and cyclic process information.
	ASDUHandler(asdu.Connect, *asdu.ASDU) error
	// ASDUHandlerAll receives every ASDU.
	ASDUHandlerAll(asdu.Connect, *asdu.ASDU) error
}
