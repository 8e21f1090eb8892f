// Package poller periodically re-fetches and decodes the on-chain accounts.
// Polls are idempotent reads: they can overlap an in-flight submission
// without coordination, a stale snapshot is simply superseded by the next
// tick.
package poller

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iqbalbaharum/predictr-client/internal/coder"
	"github.com/iqbalbaharum/predictr-client/internal/market"
	"github.com/iqbalbaharum/predictr-client/internal/types"
)

type Poller struct {
	service  *market.Service
	interval time.Duration
	out      chan<- types.Snapshot
}

func New(service *market.Service, interval time.Duration, out chan<- types.Snapshot) *Poller {
	return &Poller{
		service:  service,
		interval: interval,
		out:      out,
	}
}

// Run polls until ctx is cancelled. Fetch failures are logged and skipped;
// the next tick retries.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		snapshot, err := p.poll(ctx)
		if err != nil {
			log.Printf("poll failed: %v", err)
		} else {
			select {
			case p.out <- snapshot:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *Poller) poll(ctx context.Context) (types.Snapshot, error) {
	var (
		event *coder.EventAccount
		token *coder.TokenAccount
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		event, err = p.service.FetchEventData(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		token, err = p.service.FetchTokenData(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return types.Snapshot{}, err
	}

	return types.Snapshot{
		Event:     event,
		Token:     token,
		FetchedAt: time.Now().UTC(),
	}, nil
}
