package client

import (
	"context"
	"errors"
	"time"
)

// Poller calls Fetch once immediately and then every Interval until the
// context passed to Run is cancelled.
type Poller struct {
	Interval time.Duration
	Fetch    func(ctx context.Context) error
	// OnError, when set, receives each failed fetch. Polling continues.
	OnError func(err error)
}

func NewPoller(interval time.Duration, fetch func(ctx context.Context) error) (*Poller, error) {
	p := &Poller{Interval: interval, Fetch: fetch}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Poller) validate() error {
	if p.Interval <= 0 {
		return errors.New("poller interval must be positive")
	}
	if p.Fetch == nil {
		return errors.New("poller fetch func is required")
	}
	return nil
}

// Run blocks until ctx is done and returns ctx.Err(). Fetches never overlap.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.validate(); err != nil {
		return err
	}

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Fetch(ctx); err != nil && ctx.Err() == nil && p.OnError != nil {
			p.OnError(err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
