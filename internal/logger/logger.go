/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides a configurable logger that can be silenced when
// stylus-lookup is embedded in other build tools.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// DebugSection is the NODE_DEBUG section name that enables lookup tracing.
const DebugSection = "stylus-lookup"

var (
	mu sync.RWMutex
	// Default logs to stderr. Set to io.Discard for silent mode.
	output io.Writer = os.Stderr
	logger *log.Logger
	debug  bool

	warnColor = color.New(color.FgYellow)
)

func init() {
	logger = log.New(output, "", 0)
	debug = debugFromEnv()
}

// debugFromEnv honours STYLUS_LOOKUP_DEBUG and the NODE_DEBUG section list.
func debugFromEnv() bool {
	if v := os.Getenv("STYLUS_LOOKUP_DEBUG"); v != "" && v != "0" && v != "false" {
		return true
	}
	for _, section := range strings.Split(os.Getenv("NODE_DEBUG"), ",") {
		if strings.TrimSpace(section) == DebugSection {
			return true
		}
	}
	return false
}

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	logger = log.New(output, "", 0)
}

// SetDebug enables or disables Debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debug = enabled
}

// DebugEnabled reports whether Debug output is on.
func DebugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return debug
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	logger.Print(warnColor.Sprint("warning: ") + msg)
}

// Debug logs a debug message when debug output is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !debug {
		return
	}
	logger.Printf(format, args...)
}

// Tracer returns a lookup tracer that writes through Debug, prefixed the
// way NODE_DEBUG output is.
func Tracer() *DebugTracer {
	return &DebugTracer{prefix: strings.ToUpper(DebugSection) + " " + strconv.Itoa(os.Getpid()) + ": "}
}

// DebugTracer forwards lookup traces to Debug.
type DebugTracer struct {
	prefix string
}

// Trace implements lookup.Tracer.
func (t *DebugTracer) Trace(format string, args ...any) {
	Debug(t.prefix+format, args...)
}
