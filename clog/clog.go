// Copyright 2025 Ricardo L. Olsen. All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package clog provides the leveled logging facility embedded by the
// protocol clients. It wraps logrus behind a printf-style surface so the
// protocol packages never depend on the logging backend directly.
package clog

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Clog is embedded by clients to provide prefixed, switchable logging.
// The zero value is unusable; create one with NewLogger.
type Clog struct {
	prefix  string
	enabled *uint32
	logger  *logrus.Logger
}

// NewLogger creates a logger with the given message prefix. Logging is
// disabled until LogMode(true) is called.
func NewLogger(prefix string) Clog {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	l.SetLevel(logrus.DebugLevel)
	return Clog{
		prefix:  prefix,
		enabled: new(uint32),
		logger:  l,
	}
}

// LogMode enables or disables log output.
func (sf Clog) LogMode(enable bool) {
	if enable {
		atomic.StoreUint32(sf.enabled, 1)
	} else {
		atomic.StoreUint32(sf.enabled, 0)
	}
}

func (sf Clog) mode() bool {
	return sf.enabled != nil && atomic.LoadUint32(sf.enabled) == 1
}

// Debug logs a debug-level message.
func (sf Clog) Debug(format string, v ...interface{}) {
	if sf.mode() {
		sf.logger.Debugf(sf.prefix+format, v...)
	}
}

// Warn logs a warning-level message.
func (sf Clog) Warn(format string, v ...interface{}) {
	if sf.mode() {
		sf.logger.Warnf(sf.prefix+format, v...)
	}
}

// Error logs an error-level message.
func (sf Clog) Error(format string, v ...interface{}) {
	if sf.mode() {
		sf.logger.Errorf(sf.prefix+format, v...)
	}
}

// Critical logs an error that indicates a programming fault, such as a
// recovered panic in a user handler. It is emitted even when LogMode is off.
func (sf Clog) Critical(format string, v ...interface{}) {
	sf.logger.Errorf(sf.prefix+"CRITICAL: "+format, v...)
}
