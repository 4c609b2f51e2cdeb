// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/riclolsen/go-iec104/cs104"
)

// protocolConfig mirrors the cs104.Config timer and window parameters.
type protocolConfig struct {
	ConnectTimeout0   time.Duration `yaml:"t0"`
	SendUnAckLimitK   uint16        `yaml:"k"`
	SendUnAckTimeout1 time.Duration `yaml:"t1"`
	RecvUnAckLimitW   uint16        `yaml:"w"`
	RecvUnAckTimeout2 time.Duration `yaml:"t2"`
	IdleTimeout3      time.Duration `yaml:"t3"`
}

// toolConfig is the YAML configuration of the monitor command.
type toolConfig struct {
	// Server is the controlled station endpoint, tcp://host:port or
	// serial:///dev/ttyUSB0?baud=115200.
	Server string `yaml:"server"`
	// CommonAddr is the common address interrogated on connect.
	CommonAddr uint16 `yaml:"common_addr"`
	// GeneralInterrogation sends a station interrogation when data transfer
	// becomes active.
	GeneralInterrogation bool `yaml:"general_interrogation"`
	// ClockSyncInterval sends periodic clock synchronization commands when
	// nonzero.
	ClockSyncInterval time.Duration `yaml:"clock_sync_interval"`
	// Reconnect re-establishes lost connections.
	Reconnect bool `yaml:"reconnect"`
	// ReconnectInterval is the pause between reconnection attempts.
	ReconnectInterval time.Duration `yaml:"reconnect_interval"`
	// Debug enables protocol level logging.
	Debug bool `yaml:"debug"`

	Protocol protocolConfig `yaml:"protocol"`
}

func defaultToolConfig() *toolConfig {
	return &toolConfig{
		CommonAddr:           1,
		GeneralInterrogation: true,
		Reconnect:            true,
		ReconnectInterval:    10 * time.Second,
	}
}

// loadConfig reads the YAML file at path, or returns the defaults when path
// is empty.
func loadConfig(path string) (*toolConfig, error) {
	cfg := defaultToolConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write a configuration file skeleton with the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaultToolConfig()
			cfg.Server = "tcp://127.0.0.1:2404"
			raw, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = os.Stdout.Write(raw)
				return err
			}
			return os.WriteFile(out, raw, 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "file to write, stdout when empty")
	return cmd
}

// cs104Config converts the protocol section into a cs104.Config, leaving
// zero fields for Valid to default.
func (sf *toolConfig) cs104Config() cs104.Config {
	return cs104.Config{
		ConnectTimeout0:   sf.Protocol.ConnectTimeout0,
		SendUnAckLimitK:   sf.Protocol.SendUnAckLimitK,
		SendUnAckTimeout1: sf.Protocol.SendUnAckTimeout1,
		RecvUnAckLimitW:   sf.Protocol.RecvUnAckLimitW,
		RecvUnAckTimeout2: sf.Protocol.RecvUnAckTimeout2,
		IdleTimeout3:      sf.Protocol.IdleTimeout3,
	}
}
