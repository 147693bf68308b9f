// Package testutils provides deterministic generators and helpers for console
// testing. Test mode builds use the generators so logs and golden output stay
// stable across runs.
package testutils

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDSource returns UUIDs in v4 layout from a private counter:
// 00000001-0000-4000-8000-000000000001, 00000002-0000-4000-8000-000000000002, ...
// It is safe for concurrent use.
func IDSource() func() uuid.UUID {
	var (
		mu      sync.Mutex
		counter uint64
	)
	return func() uuid.UUID {
		mu.Lock()
		defer mu.Unlock()

		counter++
		return uuid.MustParse(fmt.Sprintf("%08x-0000-4000-8000-%012x", counter, counter))
	}
}

// Clock returns a clock that starts at 2025-01-01T00:00:00Z and advances one
// second per call. It is safe for concurrent use.
func Clock() func() time.Time {
	var (
		mu      sync.Mutex
		counter int64
	)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()

		counter++
		return base.Add(time.Duration(counter) * time.Second)
	}
}
