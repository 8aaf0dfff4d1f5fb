package pool

import (
	"context"

	"retrofire/pkg/request"
)

// Client dispatches a request descriptor and returns the raw response.
// A non-2xx status is not an error at this level.
type Client interface {
	Do(ctx context.Context, req request.Descriptor) (Response, error)
	Close()
}

type Response interface {
	StatusCode() int
	Body() []byte
}

// Snapshot is a detached copy of a transport response.
type Snapshot struct {
	Status int
	Bytes  []byte
}

func (s Snapshot) StatusCode() int { return s.Status }
func (s Snapshot) Body() []byte    { return s.Bytes }

// NewSnapshot copies body so the transport may recycle its buffers.
func NewSnapshot(status int, body []byte) Snapshot {
	return Snapshot{Status: status, Bytes: append([]byte(nil), body...)}
}
