package utils

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Retry runs fn up to maxAttempts times, sleeping delay between attempts,
// and returns the last error when every attempt fails.
func Retry(logger *logrus.Logger, maxAttempts int, delay time.Duration, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err
			logger.Errorf("Attempt %d/%d failed: %v", attempt, maxAttempts, err)
			if attempt < maxAttempts {
				time.Sleep(delay)
			}
			continue
		}
		return nil
	}
	return fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}
