// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cs104

import (
	"testing"
	"time"
)

func TestConfigValidDefaults(t *testing.T) {
	var cfg Config
	if err := cfg.Valid(); err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	if cfg != want {
		t.Errorf("defaults: got %+v, want %+v", cfg, want)
	}
}

func TestConfigValidRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"t0 too large", func(c *Config) { c.ConnectTimeout0 = 256 * time.Second }},
		{"t1 too small", func(c *Config) { c.SendUnAckTimeout1 = 500 * time.Millisecond }},
		{"t2 not less than t1", func(c *Config) { c.RecvUnAckTimeout2 = c.SendUnAckTimeout1 }},
		{"t3 too large", func(c *Config) { c.IdleTimeout3 = 49 * time.Hour }},
		{"w not less than k", func(c *Config) { c.RecvUnAckLimitW = c.SendUnAckLimitK }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		if err := cfg.Valid(); err == nil {
			t.Errorf("%s: config accepted", tt.name)
		}
	}
}

func TestConfigValidCustom(t *testing.T) {
	cfg := Config{
		ConnectTimeout0:   10 * time.Second,
		SendUnAckLimitK:   32767,
		SendUnAckTimeout1: 30 * time.Second,
		RecvUnAckLimitW:   21844,
		RecvUnAckTimeout2: 5 * time.Second,
		IdleTimeout3:      48 * time.Hour,
	}
	if err := cfg.Valid(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}
