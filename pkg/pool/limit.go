package pool

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"retrofire/pkg/request"
)

type limited struct {
	next    Client
	limiter *rate.Limiter
}

// Limit wraps c with a token bucket of rps requests per second and the given
// burst. It returns c unchanged when rps is not positive.
func Limit(c Client, rps float64, burst int) Client {
	if c == nil || rps <= 0 {
		return c
	}
	if burst <= 0 {
		burst = 1
	}
	return &limited{next: c, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (l *limited) Do(ctx context.Context, req request.Descriptor) (Response, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	return l.next.Do(ctx, req)
}

func (l *limited) Close() { l.next.Close() }
