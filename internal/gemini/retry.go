package gemini

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

// retryableStatus lists the HTTP statuses worth retrying. Anything else
// carried by a googleapi.Error (auth failures, bad requests, quota-exceeded
// project states) will not improve on retry.
var retryableStatus = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// isRetryable classifies an API call failure. Errors that are not
// googleapi.Error values are transport-level (timeouts, connection resets)
// and always retryable.
func isRetryable(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return retryableStatus[apiErr.Code]
	}
	return true
}

// retrier runs a generation call up to maxRetries+1 times with exponential
// backoff and per-attempt jitter. sleep and jitter are injectable for tests.
type retrier struct {
	maxRetries int
	base       time.Duration
	max        time.Duration
	sleep      func(time.Duration)
	jitter     func() time.Duration
	logger     *zap.Logger
}

func newRetrier(maxRetries int, base, max time.Duration, logger *zap.Logger) *retrier {
	return &retrier{
		maxRetries: maxRetries,
		base:       base,
		max:        max,
		sleep:      time.Sleep,
		jitter: func() time.Duration {
			return time.Duration(rand.Float64() * float64(time.Second))
		},
		logger: logger,
	}
}

// backoff computes the delay before retry attempt (0-indexed):
// min(max, base*2^attempt) plus up to one second of jitter, so concurrent
// workers do not retry in lockstep.
func (r *retrier) backoff(attempt int) time.Duration {
	delay := r.base << attempt
	if delay <= 0 || delay > r.max {
		delay = r.max
	}
	return delay + r.jitter()
}

func (r *retrier) do(ctx context.Context, call func(context.Context) (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		resp, err := call(ctx)
		if err == nil {
			return resp, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err

		if attempt == r.maxRetries {
			break
		}

		delay := r.backoff(attempt)
		r.logger.Debug("retrying generation call",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", r.maxRetries),
			zap.Duration("delay", delay),
			zap.Error(err))
		r.sleep(delay)
	}
	return nil, lastErr
}
