// ABOUTME: Retry utilities for API calls with exponential backoff
// ABOUTME: Shared by the embedding client for consistent retry behavior
package util

import "time"

// CalculateBackoff returns exponential backoff for the given attempt.
// Base delay is doubled each attempt and capped at 30 seconds.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Cap attempt to avoid overflow in bit shift (max 30 for safety)
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	return backoff
}
