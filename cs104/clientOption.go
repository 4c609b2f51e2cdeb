// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/riclolsen/go-iec104/asdu"
)

// ClientOption client (controlling station) configuration options
type ClientOption struct {
	config            Config
	params            asdu.Params
	server            *url.URL      // remote controlled station endpoint
	autoReconnect     bool          // reconnect on connection loss
	reconnectInterval time.Duration // reconnect attempt interval
}

// NewOption creates a ClientOption with the default CS104 config and the
// standard CS104 ASDU params. The remote server must be set with
// AddRemoteServer.
func NewOption() *ClientOption {
	return &ClientOption{
		config:            DefaultConfig(),
		params:            *asdu.ParamsStandard104,
		autoReconnect:     true,
		reconnectInterval: DefaultReconnectInterval,
	}
}

// SetConfig sets the CS104 configuration. Uses DefaultConfig() if the
// provided cfg is invalid.
func (sf *ClientOption) SetConfig(cfg Config) *ClientOption {
	if err := cfg.Valid(); err != nil {
		sf.config = DefaultConfig()
	} else {
		sf.config = cfg
	}
	return sf
}

// SetParams sets the ASDU parameters. Uses asdu.ParamsStandard104 if the
// provided p is invalid.
func (sf *ClientOption) SetParams(p *asdu.Params) *ClientOption {
	if err := p.Valid(); err != nil {
		sf.params = *asdu.ParamsStandard104
	} else {
		sf.params = *p
	}
	return sf
}

// SetReconnectInterval sets the interval between reconnection attempts.
func (sf *ClientOption) SetReconnectInterval(t time.Duration) *ClientOption {
	if t > 0 {
		sf.reconnectInterval = t
	}
	return sf
}

// SetAutoReconnect enables or disables automatic reconnection.
func (sf *ClientOption) SetAutoReconnect(b bool) *ClientOption {
	sf.autoReconnect = b
	return sf
}

// AddRemoteServer sets the remote controlled station endpoint. Accepts a
// tcp:// or serial:// URL, a host:port pair or a bare host, which gets the
// default port 2404.
func (sf *ClientOption) AddRemoteServer(server string) error {
	if !strings.Contains(server, "://") {
		if _, _, err := net.SplitHostPort(server); err != nil {
			server = net.JoinHostPort(server, DefaultServerPort)
		}
		server = "tcp://" + server
	}
	remote, err := url.Parse(server)
	if err != nil {
		return err
	}
	switch remote.Scheme {
	case "tcp":
		if _, _, err := net.SplitHostPort(remote.Host); err != nil {
			remote.Host = net.JoinHostPort(remote.Host, DefaultServerPort)
		}
	case "serial":
	default:
		return fmt.Errorf("unsupported endpoint scheme %q", remote.Scheme)
	}
	sf.server = remote
	return nil
}
