package fiberpool

import (
	"context"
	"sync"

	fibercli "github.com/gofiber/fiber/v3/client"
	"github.com/valyala/fasthttp"

	"retrofire/pkg/config"
	"retrofire/pkg/pool"
	"retrofire/pkg/request"
	"retrofire/pkg/rr"
)

var _ pool.Client = (*ClientPool)(nil)

type ClientPool struct {
	clients   []*fibercli.Client
	bases     []*fasthttp.Client
	spin      rr.RR
	cfg       config.Config
	closeOnce sync.Once
}

func New(cfg config.Config) *ClientPool {
	if cfg.Size <= 0 {
		cfg.Size = config.DefaultConfig().Size
	}
	cs := make([]*fibercli.Client, 0, cfg.Size)
	bs := make([]*fasthttp.Client, 0, cfg.Size)
	for i := 0; i < cfg.Size; i++ {
		base := newFiberBase(cfg)
		bs = append(bs, base)
		cs = append(cs, newFiberClient(base, cfg))
	}
	return &ClientPool{clients: cs, bases: bs, cfg: cfg}
}

// Do sends req to req.URL() through the next fiber client. fasthttp has no
// per-request cancellation, so ctx is only checked before dispatch.
func (p *ClientPool) Do(ctx context.Context, req request.Descriptor) (pool.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := rr.Pick(&p.spin, p.clients)

	cfg := fibercli.Config{}
	if req.HasBody() {
		cfg.Body = req.Body()
	}

	res, err := c.Custom(req.URL(), string(req.Method()), cfg)
	if err != nil {
		return nil, err
	}
	defer res.Close()
	return pool.NewSnapshot(res.StatusCode(), res.Body()), nil
}

func (p *ClientPool) Close() {
	p.closeOnce.Do(func() {
		for _, b := range p.bases {
			b.CloseIdleConnections()
		}
	})
}
