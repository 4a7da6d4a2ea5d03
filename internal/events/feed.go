package events

import (
	"context"
	"sync"

	"github.com/sonuarjun3120/krishpafoods/internal/logs"
)

type FeedItem struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}

const (
	FeedOrderCreated     = "order_created"
	FeedPaymentConfirmed = "payment_confirmed"
)

// Feed fans order events out to any number of live admin subscribers. A slow
// subscriber drops events rather than blocking the rest.
type Feed struct {
	mu     sync.Mutex
	subs   map[chan FeedItem]struct{}
	logger logs.Logger
}

func NewFeed(logger logs.Logger) *Feed {
	return &Feed{
		subs:   make(map[chan FeedItem]struct{}),
		logger: logger,
	}
}

// Run consumes the watcher until the context is cancelled.
func (f *Feed) Run(ctx context.Context, watcher OrderWatcher) error {
	return watcher.Watch(ctx, WatchHandlers{
		OnInsert: func(ctx context.Context, e OrderCreatedEvent) {
			f.broadcast(FeedItem{Kind: FeedOrderCreated, Payload: e})
		},
		OnUpdate: func(ctx context.Context, e PaymentConfirmedEvent) {
			f.broadcast(FeedItem{Kind: FeedPaymentConfirmed, Payload: e})
		},
	})
}

func (f *Feed) Subscribe() (<-chan FeedItem, func()) {
	ch := make(chan FeedItem, 16)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subs[ch]; ok {
			delete(f.subs, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

func (f *Feed) broadcast(item FeedItem) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for ch := range f.subs {
		select {
		case ch <- item:
		default:
			f.logger.Warn("dropping feed event for slow subscriber", "kind", item.Kind)
		}
	}
}
