// SPDX-License-Identifier: Unlicense OR MIT

package gldevice

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gioui.org/gldevice/internal/driver"
	"gioui.org/gldevice/internal/log"
)

// DefaultFramebufferCacheSize bounds each framebuffer table when
// Config.FramebufferCacheSize is zero.
const DefaultFramebufferCacheSize = driver.DefaultFramebufferCacheSize

// Config configures a device.
type Config struct {
	// Debug enables framebuffer completeness checks, which panic on
	// incomplete framebuffers, and glGetError checks after resource
	// creation.
	Debug bool
	// FramebufferCacheSize bounds the number of cached framebuffers per
	// table. Zero means DefaultFramebufferCacheSize.
	FramebufferCacheSize int
	// MaxPendingDisposals forces a disposal flush when more released
	// resources are pending. Zero disables the limit.
	MaxPendingDisposals int
	// Logger replaces the package logger when set. The default logger
	// discards everything.
	Logger *slog.Logger
}

// Environment variables read by ConfigFromEnv.
const (
	EnvDebug               = "GLDEVICE_DEBUG"
	EnvFramebufferCache    = "GLDEVICE_FBO_CACHE"
	EnvMaxPendingDisposals = "GLDEVICE_MAX_PENDING_DISPOSALS"
	EnvLogLevel            = "GLDEVICE_LOG_LEVEL"
	EnvLogFile             = "GLDEVICE_LOG_FILE"
)

// ConfigFromEnv returns the configuration described by the GLDEVICE_
// environment variables. A logger is only created when a log level or
// file is set.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("gldevice: %s: %w", EnvDebug, err)
		}
		cfg.Debug = debug
	}
	for _, e := range []struct {
		name string
		dst  *int
	}{
		{EnvFramebufferCache, &cfg.FramebufferCacheSize},
		{EnvMaxPendingDisposals, &cfg.MaxPendingDisposals},
	} {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("gldevice: %s: %w", e.name, err)
		}
		if n < 0 {
			return Config{}, fmt.Errorf("gldevice: %s: negative value %d", e.name, n)
		}
		*e.dst = n
	}
	level, file := os.Getenv(EnvLogLevel), os.Getenv(EnvLogFile)
	if level != "" || file != "" {
		cfg.Logger = log.New(level, file)
	}
	return cfg, nil
}

// SetLogger replaces the package logger. A nil logger restores the
// default, which discards everything.
func SetLogger(l *slog.Logger) {
	log.Set(l)
}
