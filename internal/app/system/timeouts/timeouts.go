// Package timeouts provides centralized timeout values for handler and
// store operations.
//
// Timeouts can be configured at startup using Configure or
// ConfigureFromEnv. If not configured, the defaults below are used.
//
//   - Ping: health checks and the startup backend probe
//   - Read: loading submissions, single lookups, catalog reads
//   - Upload: one full submission save, all file uploads included
//   - Write: document writes and deletes
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values.
const (
	DefaultPing   = 2 * time.Second
	DefaultRead   = 10 * time.Second
	DefaultUpload = 10 * time.Minute
	DefaultWrite  = 15 * time.Second
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	read   = DefaultRead
	upload = DefaultUpload
	write  = DefaultWrite
)

// Ping returns the timeout for connectivity checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Read returns the timeout for loads and lookups.
func Read() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return read
}

// Upload returns the timeout for a whole submission save. Source data can
// be large, so this is much longer than the others.
func Upload() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return upload
}

// Write returns the timeout for document writes and deletes.
func Write() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return write
}

// Config holds timeout values. Zero values are ignored.
type Config struct {
	Ping   time.Duration
	Read   time.Duration
	Upload time.Duration
	Write  time.Duration
}

// Configure sets custom timeout values, keeping the current value for any
// zero field.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Read > 0 {
		read = cfg.Read
	}
	if cfg.Upload > 0 {
		upload = cfg.Upload
	}
	if cfg.Write > 0 {
		write = cfg.Write
	}
}

// Reset restores all timeouts to their default values.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	read = DefaultRead
	upload = DefaultUpload
	write = DefaultWrite
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_READ, TIMEOUT_UPLOAD and
// TIMEOUT_WRITE (Go duration strings such as "500ms" or "2m"). Unset or
// invalid values are ignored. Returns the number of values applied.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()

	configured := 0
	for _, e := range []struct {
		name string
		dst  *time.Duration
	}{
		{"TIMEOUT_PING", &ping},
		{"TIMEOUT_READ", &read},
		{"TIMEOUT_UPLOAD", &upload},
		{"TIMEOUT_WRITE", &write},
	} {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*e.dst = d
			configured++
		}
	}
	return configured
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{
		Ping:   ping,
		Read:   read,
		Upload: upload,
		Write:  write,
	}
}

// WithTimeout creates a context with timeout whose cancel function logs a
// warning if the deadline was exceeded.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "save submission")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
