// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// RetryPolicy bounds RetryWithBackoff.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts (must be > 0)
	MaxAttempts int

	// BaseDelay is the delay before the second attempt; it doubles on each retry
	BaseDelay time.Duration

	// MaxDelay caps a single delay. Zero means uncapped.
	MaxDelay time.Duration
}

// DefaultRetryPolicy returns the policy used for transactional writes.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   10 * time.Millisecond,
		MaxDelay:    time.Second,
	}
}

// Retryable reports whether err is a transient storage failure worth another attempt.
// Only conflicts qualify; a failed transaction fails the same way when resent.
func Retryable(err error) bool {
	return errors.Is(err, ErrConflict)
}

// RetryWithBackoff runs operation until it succeeds, returns an error that is
// not Retryable, or the policy's attempts are exhausted.
// Returns the error from the last attempt if all attempts fail.
func RetryWithBackoff(ctx context.Context, operation func() error, policy RetryPolicy) error {
	if policy.MaxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	var lastErr error
	delay := policy.BaseDelay
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				slog.Debug("storage operation succeeded after retry", "attempt", attempt)
			}
			return nil
		}
		if !Retryable(lastErr) {
			return lastErr
		}

		slog.Debug("storage operation conflicted", "attempt", attempt, "maxAttempts", policy.MaxAttempts, "error", lastErr)

		if attempt == policy.MaxAttempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if policy.MaxDelay > 0 && delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
	}

	return lastErr
}
