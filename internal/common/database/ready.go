// internal/common/database/ready.go
package database

import (
	"context"
	"fmt"
	"time"
)

// Pinger is any backend that answers a liveness ping.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// WaitReady pings p until it answers, doubling delay between attempts.
func WaitReady(ctx context.Context, p Pinger, attempts int, delay time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = p.Ping(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-time.After(delay):
			delay *= 2
		case <-ctx.Done():
			return fmt.Errorf("%s not ready: %w", p.Name(), ctx.Err())
		}
	}
	return fmt.Errorf("%s not ready after %d attempts: %w", p.Name(), attempts, err)
}

// CheckAll pings every backend once and returns the failures by name.
func CheckAll(ctx context.Context, pingers ...Pinger) map[string]error {
	failures := make(map[string]error)
	for _, p := range pingers {
		if err := p.Ping(ctx); err != nil {
			failures[p.Name()] = err
		}
	}
	return failures
}
