/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package retry implements the exponential-backoff polling loop used to
// wait out statements that the execution service reports as still pending.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
)

// ErrStillPending reports that an operation has not produced a result yet
// and should be polled again after a backoff.
var ErrStillPending = errors.New("operation still pending")

// Config configures the polling loop.
type Config struct {
	// MaxRetries is the maximum number of poll attempts after the initial
	// call (default: 6). 0 means do not poll at all.
	MaxRetries int
	// BaseBackoff is the wait before the first poll; each subsequent poll
	// doubles it (default: 2s).
	BaseBackoff time.Duration
	// MaxBackoff caps the doubling (default: 64s).
	MaxBackoff time.Duration
}

// Validate checks that the polling configuration has valid values.
func (c Config) Validate() error {
	if c.MaxRetries < 0 {
		return errors.New("max retries cannot be negative")
	}
	if c.BaseBackoff < 0 {
		return errors.New("base backoff cannot be negative")
	}
	if c.MaxBackoff < 0 {
		return errors.New("max backoff cannot be negative")
	}
	return nil
}

// DefaultConfig returns a polling configuration tuned for statement
// execution: the backoff sequence is 2s, 4s, 8s, ... capped at 64s.
func DefaultConfig() Config {
	return Config{
		MaxRetries:  6,
		BaseBackoff: 2 * time.Second,
		MaxBackoff:  64 * time.Second,
	}
}

// Poll repeatedly invokes fn until it returns a result, a terminal error,
// or the attempts are exhausted. Each attempt is preceded by an
// exponentially growing wait, since fn is only ever called after an
// initial request already came back pending. fn signals "not done yet" by
// returning an error wrapping ErrStillPending; any other error is
// terminal.
func Poll[T any](ctx context.Context, cfg Config, operation string, fn func() (T, error)) (T, error) {
	var result T
	lastErr := ErrStillPending

	for attempt := 0; attempt < cfg.MaxRetries; attempt++ {
		backoff := min(cfg.BaseBackoff<<attempt, cfg.MaxBackoff)

		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt+1).
			With("max_retries", cfg.MaxRetries).
			With("backoff", backoff).
			Debug("Waiting for pending operation")

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(backoff):
		}

		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}
		if !errors.Is(lastErr, ErrStillPending) {
			return result, lastErr
		}
	}

	return result, fmt.Errorf("%s after %d retries: %w", operation, cfg.MaxRetries, lastErr)
}
