package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/payportal/internal/metrics"
)

const sendTimeout = 5 * time.Second

type Broadcaster struct {
	sinks   []Sink
	metrics *metrics.Registry
	wg      sync.WaitGroup
}

func NewBroadcaster(reg *metrics.Registry, sinks ...Sink) *Broadcaster {
	return &Broadcaster{sinks: sinks, metrics: reg}
}

// Publish hands event to every sink in the background and returns at once.
func (b *Broadcaster) Publish(ctx context.Context, event Event) {
	if len(b.sinks) == 0 {
		return
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.deliver(ctx, event)
	}()
}

// Close waits for deliveries in flight.
func (b *Broadcaster) Close() {
	b.wg.Wait()
}

// deliver sends event to all sinks concurrently. Sink failures are logged and
// counted, never returned.
func (b *Broadcaster) deliver(ctx context.Context, event Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()

	var g errgroup.Group
	for _, sink := range b.sinks {
		sink := sink
		g.Go(func() error {
			if err := sink.Send(ctx, event); err != nil {
				b.metrics.NotifyFailure(sink.Name())
				zap.L().Warn("notification not delivered",
					zap.String("sink", sink.Name()),
					zap.String("reference", event.Reference),
					zap.Error(err),
				)
				return fmt.Errorf("%s: %w", sink.Name(), err)
			}
			return nil
		})
	}
	_ = g.Wait()
}
