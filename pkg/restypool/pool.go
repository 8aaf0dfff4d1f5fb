package restypool

import (
	"context"
	"sync"

	resty "resty.dev/v3"

	"retrofire/pkg/config"
	"retrofire/pkg/pool"
	"retrofire/pkg/request"
	"retrofire/pkg/rr"
)

var _ pool.Client = (*ClientPool)(nil)

// ClientPool spreads requests over Size independent resty clients, each
// with its own net/http transport and connection set.
type ClientPool struct {
	clients   []*resty.Client
	spin      rr.RR
	cfg       config.Config
	closeOnce sync.Once
}

func New(cfg config.Config) *ClientPool {
	if cfg.Size <= 0 {
		cfg.Size = config.DefaultConfig().Size
	}

	cs := make([]*resty.Client, 0, cfg.Size)
	for i := 0; i < cfg.Size; i++ {
		cs = append(cs, newRestyClient(cfg))
	}
	return &ClientPool{clients: cs, cfg: cfg}
}

// Do sends req through the next client in the pool. The target is
// req.URL(), so the query on the wire is the one the descriptor reports.
// Body parameters are encoded as a JSON object.
func (p *ClientPool) Do(ctx context.Context, req request.Descriptor) (pool.Response, error) {
	c := rr.Pick(&p.spin, p.clients)

	r := c.R().SetContext(ctx)
	if req.HasBody() {
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body())
	}

	res, err := r.Execute(string(req.Method()), req.URL())
	if err != nil {
		return nil, err
	}
	return pool.NewSnapshot(res.StatusCode(), res.Bytes()), nil
}

func (p *ClientPool) Close() {
	p.closeOnce.Do(func() {
		for _, c := range p.clients {
			_ = c.Close()
		}
	})
}
