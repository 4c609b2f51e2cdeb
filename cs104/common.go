// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package cs104 implements the controlling station side of the IEC
// 60870-5-104 transmission protocol: APCI framing, sequence numbers with k/w
// flow control, the t0 to t3 timers and the STARTDT/STOPDT/TESTFR procedures
// over TCP or a serial bridge.
package cs104

import (
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
	"time"

	"go.bug.st/serial"
)

// DefaultReconnectInterval defined default value
const DefaultReconnectInterval = 1 * time.Minute

// DefaultServerPort is the IANA registered IEC 60870-5-104 port.
const DefaultServerPort = "2404"

// seqPending records one transmitted I frame awaiting acknowledge.
type seqPending struct {
	seq      uint16
	sendTime time.Time
}

// openEndpoint dials the remote station named by a tcp:// or serial:// URL.
// TCP connections disable Nagle so small APDUs leave immediately. Serial
// endpoints accept baud, databits, parity and stopbits query parameters, for
// example serial:///dev/ttyUSB0?baud=115200&parity=N.
func openEndpoint(server *url.URL, timeout time.Duration) (io.ReadWriteCloser, error) {
	switch server.Scheme {
	case "serial":
		return openSerialPort(server)
	case "tcp":
		conn, err := net.DialTimeout("tcp", server.Host, timeout)
		if err != nil {
			return nil, err
		}
		if tcp, ok := conn.(*net.TCPConn); ok {
			_ = tcp.SetNoDelay(true)
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported endpoint scheme %q", server.Scheme)
	}
}

// openSerialPort opens the port named by the URL path with the mode encoded
// in the query string.
func openSerialPort(server *url.URL) (io.ReadWriteCloser, error) {
	name := server.Host + server.Path
	if name == "" {
		return nil, fmt.Errorf("serial endpoint has no port name")
	}

	mode := &serial.Mode{
		BaudRate: 9600,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	q := server.Query()
	if v := q.Get("baud"); v != "" {
		baud, err := strconv.Atoi(v)
		if err != nil || baud <= 0 {
			return nil, fmt.Errorf("invalid baud rate %q", v)
		}
		mode.BaudRate = baud
	}
	if v := q.Get("databits"); v != "" {
		bits, err := strconv.Atoi(v)
		if err != nil || bits < 5 || bits > 8 {
			return nil, fmt.Errorf("invalid data bits %q", v)
		}
		mode.DataBits = bits
	}
	if v := q.Get("parity"); v != "" {
		switch v {
		case "N", "n":
			mode.Parity = serial.NoParity
		case "O", "o":
			mode.Parity = serial.OddParity
		case "E", "e":
			mode.Parity = serial.EvenParity
		default:
			return nil, fmt.Errorf("invalid parity %q", v)
		}
	}
	if v := q.Get("stopbits"); v != "" {
		switch v {
		case "1":
			mode.StopBits = serial.OneStopBit
		case "2":
			mode.StopBits = serial.TwoStopBits
		default:
			return nil, fmt.Errorf("invalid stop bits %q", v)
		}
	}

	return serial.Open(name, mode)
}
