// Package remote turns request descriptors into deferred, typed calls.
//
// A Base owns a pool.Client. Single, List and Status wrap a descriptor into a
// *Call whose execution sends the request, checks the status code and decodes
// the body:
//
//	call := remote.Single(base, desc, postMapping).
//		OnSuccess(func(p Post) { ... }).
//		OnFailed(func(err error) { ... }).
//		Call()
//
// Failures arrive as *TransportError (no response), *ErrorResponse (status
// outside 2xx) or *decode.Error (unusable body).
package remote

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"retrofire/pkg/config"
	"retrofire/pkg/decode"
	"retrofire/pkg/fiberpool"
	"retrofire/pkg/pool"
	"retrofire/pkg/request"
	"retrofire/pkg/restypool"
)

type Base struct {
	client  pool.Client
	log     *zap.Logger
	metrics *Metrics
	ctx     context.Context
}

type Option func(*Base)

func WithLogger(l *zap.Logger) Option {
	return func(b *Base) {
		if l != nil {
			b.log = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(b *Base) { b.metrics = m }
}

// WithContext sets the context used by Call.Call. Call.Start overrides it.
func WithContext(ctx context.Context) Option {
	return func(b *Base) {
		if ctx != nil {
			b.ctx = ctx
		}
	}
}

func NewBase(client pool.Client, opts ...Option) *Base {
	b := &Base{
		client: client,
		log:    zap.NewNop(),
		ctx:    context.Background(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// NewBaseFromConfig builds the transport pool named by cfg.Transport,
// applies the configured rate limit and wraps it in a Base.
func NewBaseFromConfig(cfg config.Config, opts ...Option) (*Base, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var client pool.Client
	switch cfg.Transport {
	case config.TransportFiber:
		client = fiberpool.New(cfg)
	default:
		client = restypool.New(cfg)
	}
	client = pool.Limit(client, cfg.RateLimit, cfg.RateBurst)
	return NewBase(client, opts...), nil
}

func (b *Base) Close() {
	if b == nil || b.client == nil {
		return
	}
	b.client.Close()
}

// Single returns a call that decodes a JSON object body with m.
func Single[T any](b *Base, desc request.Descriptor, m decode.Mapping[T]) *Call[T] {
	return dispatch(b, desc, "single", func(body []byte) (T, error) {
		return decode.One(body, m)
	})
}

// List returns a call that decodes a JSON array body, element by element, with m.
func List[T any](b *Base, desc request.Descriptor, m decode.Mapping[T]) *Call[[]T] {
	return dispatch(b, desc, "list", func(body []byte) ([]T, error) {
		return decode.List(body, m)
	})
}

// Status returns a call that succeeds with true on any 2xx status and
// ignores the body.
func Status(b *Base, desc request.Descriptor) *Call[bool] {
	return dispatch(b, desc, "status", func([]byte) (bool, error) {
		return true, nil
	})
}

func dispatch[T any](b *Base, desc request.Descriptor, kind string, decodeBody func([]byte) (T, error)) *Call[T] {
	if b == nil || b.client == nil {
		return Rejected[T](ErrNotDispatchable)
	}
	if desc.IsZero() {
		return Rejected[T](fmt.Errorf("%w: empty descriptor", ErrNotDispatchable))
	}

	var c *Call[T]
	c = newCall(b.ctx, desc, func(ctx context.Context) (T, error) {
		return execute(ctx, b, c.id, desc, kind, decodeBody)
	})
	return c
}

func execute[T any](ctx context.Context, b *Base, id string, desc request.Descriptor, kind string,
	decodeBody func([]byte) (T, error)) (T, error) {
	var zero T
	method, url := string(desc.Method()), desc.URL()
	log := b.log.With(
		zap.String("call_id", id),
		zap.String("method", method),
		zap.String("url", url),
		zap.String("kind", kind),
	)

	start := time.Now()
	b.metrics.begin()
	log.Debug("dispatching call")

	resp, err := b.client.Do(ctx, desc)
	if err != nil {
		b.metrics.end(method, "transport_error", 0, time.Since(start))
		log.Warn("call failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return zero, &TransportError{Method: method, URL: url, Err: err}
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		b.metrics.end(method, "http_error", status, time.Since(start))
		log.Warn("call failed",
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)))
		return zero, &ErrorResponse{
			StatusCode:    status,
			URL:           url,
			DetailMessage: decode.Message(resp.Body()),
		}
	}

	v, err := decodeBody(resp.Body())
	if err != nil {
		b.metrics.end(method, "decode_error", status, time.Since(start))
		log.Warn("call failed", zap.Int("status", status), zap.Error(err))
		return zero, err
	}

	b.metrics.end(method, "ok", status, time.Since(start))
	log.Debug("call succeeded",
		zap.Int("status", status),
		zap.Int("bytes", len(resp.Body())),
		zap.Duration("duration", time.Since(start)))
	return v, nil
}
