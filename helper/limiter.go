package helper

import (
	"golang.org/x/time/rate"
)

// NewRateLimiter returns a limiter allowing requestsPerSecond calls with a burst of one.
// A non-positive rate disables limiting.
func NewRateLimiter(requestsPerSecond float64) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
}
