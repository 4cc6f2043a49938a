package client

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval matches the storefront's 30-second refresh cadence.
const DefaultPollInterval = 30 * time.Second

// Poller periodically re-fetches the caller's active orders and hands each
// snapshot to a callback. Its lifecycle is explicit: Start when the view
// becomes active, Stop when it goes away. A Poller must not be reused after
// Stop.
type Poller struct {
	client   *Client
	interval time.Duration
	onUpdate func([]Order)
	onError  func(error)

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewPoller creates a poller. onError may be nil; a zero interval falls back
// to DefaultPollInterval.
func NewPoller(client *Client, interval time.Duration, onUpdate func([]Order), onError func(error)) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		client:   client,
		interval: interval,
		onUpdate: onUpdate,
		onError:  onError,
	}
}

// Start fetches once immediately, then on every tick until Stop is called or
// the context is cancelled. Start is a no-op when already running.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	go p.run(ctx)
}

// Stop terminates the polling loop and waits for it to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	cancel()
	<-done
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	orders, err := p.client.ActiveOrders(ctx)
	if err != nil {
		if p.onError != nil && ctx.Err() == nil {
			p.onError(err)
		}
		return
	}
	p.onUpdate(orders)
}
