// Package timeouts provides centralized timeout values for handler
// operations, used with context.WithTimeout around database calls.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads and writes
//   - Medium: list queries and count+find pairs
package timeouts

import "time"

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return DefaultPing }

// Short returns the timeout for simple single-document operations.
func Short() time.Duration { return DefaultShort }

// Medium returns the timeout for list queries and multi-step reads.
func Medium() time.Duration { return DefaultMedium }
