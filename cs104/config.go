// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"errors"
	"time"
)

// Constants defining default values and ranges for the CS104 protocol
// parameters t0, t1, t2, t3, k and w.
const (
	// DefaultConnectTimeout0 is the connection establishment timeout "t0",
	// range [1, 255]s.
	DefaultConnectTimeout0 = 30 * time.Second
	ConnectTimeout0Min     = 1 * time.Second
	ConnectTimeout0Max     = 255 * time.Second

	// DefaultSendUnAckLimitK is the maximum number of outstanding
	// unacknowledged I frames "k", range [1, 32767].
	DefaultSendUnAckLimitK = 12
	SendUnAckLimitKMin     = 1
	SendUnAckLimitKMax     = 32767

	// DefaultSendUnAckTimeout1 is the acknowledge timeout "t1",
	// range [1, 255]s.
	DefaultSendUnAckTimeout1 = 15 * time.Second
	SendUnAckTimeout1Min     = 1 * time.Second
	SendUnAckTimeout1Max     = 255 * time.Second

	// DefaultRecvUnAckLimitW is the number of received I frames after which
	// an acknowledge is sent at the latest "w", range [1, 32767], w < k.
	DefaultRecvUnAckLimitW = 8
	RecvUnAckLimitWMin     = 1
	RecvUnAckLimitWMax     = 32767

	// DefaultRecvUnAckTimeout2 is the acknowledge send timeout "t2",
	// range [1, 255]s, t2 < t1.
	DefaultRecvUnAckTimeout2 = 10 * time.Second
	RecvUnAckTimeout2Min     = 1 * time.Second
	RecvUnAckTimeout2Max     = 255 * time.Second

	// DefaultIdleTimeout3 is the idle test frame timeout "t3",
	// range [1s, 48h].
	DefaultIdleTimeout3 = 20 * time.Second
	IdleTimeout3Min     = 1 * time.Second
	IdleTimeout3Max     = 172800 * time.Second
)

// Config defines an IEC 60870-5-104 configuration.
type Config struct {
	// ConnectTimeout0 "t0" connection establishment timeout.
	// Range [1, 255]s, default 30s.
	ConnectTimeout0 time.Duration

	// SendUnAckLimitK "k" maximum outstanding unacknowledged I frames.
	// Range [1, 32767], default 12.
	SendUnAckLimitK uint16

	// SendUnAckTimeout1 "t1" timeout waiting for the acknowledge of a sent
	// I frame or of a U frame activation. Expiry is fatal to the connection.
	// Range [1, 255]s, default 15s.
	SendUnAckTimeout1 time.Duration

	// RecvUnAckLimitW "w" received I frame count forcing an acknowledge.
	// Range [1, 32767], w < k, default 8.
	RecvUnAckLimitW uint16

	// RecvUnAckTimeout2 "t2" longest time a received I frame stays
	// unacknowledged. Range [1, 255]s, t2 < t1, default 10s.
	RecvUnAckTimeout2 time.Duration

	// IdleTimeout3 "t3" idle time before a TESTFR activation is sent.
	// Range [1s, 48h], default 20s.
	IdleTimeout3 time.Duration
}

// Valid applies defaults for zero fields and checks configuration validity.
func (sf *Config) Valid() error {
	if sf == nil {
		return errors.New("invalid nil config")
	}

	if sf.ConnectTimeout0 == 0 {
		sf.ConnectTimeout0 = DefaultConnectTimeout0
	} else if sf.ConnectTimeout0 < ConnectTimeout0Min || sf.ConnectTimeout0 > ConnectTimeout0Max {
		return errors.New("connect timeout t0 out of range [1, 255]s")
	}

	if sf.SendUnAckLimitK == 0 {
		sf.SendUnAckLimitK = DefaultSendUnAckLimitK
	} else if sf.SendUnAckLimitK < SendUnAckLimitKMin || sf.SendUnAckLimitK > SendUnAckLimitKMax {
		return errors.New("send un-acknowledge limit k out of range [1, 32767]")
	}

	if sf.SendUnAckTimeout1 == 0 {
		sf.SendUnAckTimeout1 = DefaultSendUnAckTimeout1
	} else if sf.SendUnAckTimeout1 < SendUnAckTimeout1Min || sf.SendUnAckTimeout1 > SendUnAckTimeout1Max {
		return errors.New("acknowledge timeout t1 out of range [1, 255]s")
	}

	if sf.RecvUnAckLimitW == 0 {
		sf.RecvUnAckLimitW = DefaultRecvUnAckLimitW
	} else if sf.RecvUnAckLimitW < RecvUnAckLimitWMin || sf.RecvUnAckLimitW > RecvUnAckLimitWMax {
		return errors.New("receive un-acknowledge limit w out of range [1, 32767]")
	}
	if sf.RecvUnAckLimitW >= sf.SendUnAckLimitK {
		return errors.New("receive un-acknowledge limit w must be less than k")
	}

	if sf.RecvUnAckTimeout2 == 0 {
		sf.RecvUnAckTimeout2 = DefaultRecvUnAckTimeout2
	} else if sf.RecvUnAckTimeout2 < RecvUnAckTimeout2Min || sf.RecvUnAckTimeout2 > RecvUnAckTimeout2Max {
		return errors.New("acknowledge send timeout t2 out of range [1, 255]s")
	}
	if sf.RecvUnAckTimeout2 >= sf.SendUnAckTimeout1 {
		return errors.New("timeout t2 must be less than t1")
	}

	if sf.IdleTimeout3 == 0 {
		sf.IdleTimeout3 = DefaultIdleTimeout3
	} else if sf.IdleTimeout3 < IdleTimeout3Min || sf.IdleTimeout3 > IdleTimeout3Max {
		return errors.New("idle timeout t3 out of range [1s, 48h]")
	}

	return nil
}

// DefaultConfig provides the default CS104 configuration.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout0:   DefaultConnectTimeout0,
		SendUnAckLimitK:   DefaultSendUnAckLimitK,
		SendUnAckTimeout1: DefaultSendUnAckTimeout1,
		RecvUnAckLimitW:   DefaultRecvUnAckLimitW,
		RecvUnAckTimeout2: DefaultRecvUnAckTimeout2,
		IdleTimeout3:      DefaultIdleTimeout3,
	}
}
