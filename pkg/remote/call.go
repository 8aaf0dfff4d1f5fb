package remote

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"retrofire/pkg/request"
)

type State int

const (
	Unstarted State = iota
	InFlight
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case InFlight:
		return "in-flight"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Call is a deferred, single-shot request. Nothing is sent until Call or
// Start is invoked; later triggers are no-ops.
//
// Continuations registered with OnSuccess and OnFailed before the call
// resolves run once, in registration order, on the goroutine that completed
// the request. Registrations made after resolution are dropped; use Wait or
// Result to observe an already resolved call.
//
// All methods are safe on a nil *Call and from multiple goroutines.
type Call[T any] struct {
	id   string
	desc request.Descriptor
	exec func(ctx context.Context) (T, error)
	ctx  context.Context

	mu      sync.Mutex
	state   State
	success []func(T)
	failure []func(error)
	value   T
	err     error
	done    chan struct{}
}

func newCall[T any](ctx context.Context, desc request.Descriptor, exec func(context.Context) (T, error)) *Call[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Call[T]{
		id:   uuid.NewString(),
		desc: desc,
		exec: exec,
		ctx:  ctx,
		done: make(chan struct{}),
	}
}

// Rejected returns a call that fails with err once triggered. It lets
// request-building errors travel the same path as transport errors.
func Rejected[T any](err error) *Call[T] {
	return newCall(context.Background(), request.Descriptor{}, func(context.Context) (T, error) {
		var zero T
		return zero, err
	})
}

func (c *Call[T]) OnSuccess(fn func(T)) *Call[T] {
	if c == nil || fn == nil {
		return c
	}
	c.mu.Lock()
	if c.state < Succeeded {
		c.success = append(c.success, fn)
	}
	c.mu.Unlock()
	return c
}

func (c *Call[T]) OnFailed(fn func(error)) *Call[T] {
	if c == nil || fn == nil {
		return c
	}
	c.mu.Lock()
	if c.state < Succeeded {
		c.failure = append(c.failure, fn)
	}
	c.mu.Unlock()
	return c
}

// Call triggers the request with the context the call was created with.
func (c *Call[T]) Call() *Call[T] {
	if c == nil {
		return nil
	}
	return c.Start(c.ctx)
}

// Start triggers the request with ctx. It never blocks on the network.
func (c *Call[T]) Start(ctx context.Context) *Call[T] {
	if c == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	if c.state != Unstarted {
		c.mu.Unlock()
		return c
	}
	c.state = InFlight
	c.lazyDone()
	c.mu.Unlock()

	go func() {
		var (
			v   T
			err error
		)
		if c.exec == nil {
			err = ErrNotDispatchable
		} else {
			v, err = c.exec(ctx)
		}
		c.resolve(v, err)
	}()
	return c
}

func (c *Call[T]) resolve(v T, err error) {
	c.mu.Lock()
	c.value, c.err = v, err
	if err != nil {
		c.state = Failed
	} else {
		c.state = Succeeded
	}
	success, failure := c.success, c.failure
	c.success, c.failure = nil, nil
	close(c.lazyDone())
	c.mu.Unlock()

	if err != nil {
		for _, fn := range failure {
			fn(err)
		}
		return
	}
	for _, fn := range success {
		fn(v)
	}
}

// lazyDone must be called with mu held.
func (c *Call[T]) lazyDone() chan struct{} {
	if c.done == nil {
		c.done = make(chan struct{})
	}
	return c.done
}

// Done is closed once the call has resolved. A nil call never resolves.
func (c *Call[T]) Done() <-chan struct{} {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lazyDone()
}

// Wait blocks until the call resolves or ctx is done. It does not trigger
// the call.
func (c *Call[T]) Wait(ctx context.Context) (T, error) {
	var zero T
	if c == nil {
		return zero, ErrNotDispatchable
	}
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-c.Done():
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.value, c.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Result returns the outcome without blocking; ok is false until resolved.
func (c *Call[T]) Result() (v T, err error, ok bool) {
	if c == nil {
		return v, ErrNotDispatchable, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state < Succeeded {
		return v, nil, false
	}
	return c.value, c.err, true
}

func (c *Call[T]) State() State {
	if c == nil {
		return Unstarted
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Call[T]) Request() request.Descriptor {
	if c == nil {
		return request.Descriptor{}
	}
	return c.desc
}

func (c *Call[T]) ID() string {
	if c == nil {
		return ""
	}
	return c.id
}
