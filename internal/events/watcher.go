package events

import (
	"context"
	"encoding/json"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sonuarjun3120/krishpafoods/internal/logs"
)

// OrderWatcher lets the admin back-office react to order changes without
// depending on a particular push transport. OnInsert fires for new orders,
// OnUpdate for payment confirmations.
type OrderWatcher interface {
	Watch(ctx context.Context, handlers WatchHandlers) error
}

type WatchHandlers struct {
	OnInsert func(ctx context.Context, e OrderCreatedEvent)
	OnUpdate func(ctx context.Context, e PaymentConfirmedEvent)
}

type Subscriber interface {
	Subscribe(ctx context.Context, exchange, queueName, consumerTag string, handler func(ctx context.Context, d amqp091.Delivery)) error
}

type BrokerOrderWatcher struct {
	logger     logs.Logger
	subscriber Subscriber
	queueTag   string
}

func NewBrokerOrderWatcher(logger logs.Logger, subscriber Subscriber, queueTag string) *BrokerOrderWatcher {
	return &BrokerOrderWatcher{
		logger:     logger,
		subscriber: subscriber,
		queueTag:   queueTag,
	}
}

func (w *BrokerOrderWatcher) Watch(ctx context.Context, handlers WatchHandlers) error {
	errChan := make(chan error, 2)

	go func() {
		errChan <- w.subscriber.Subscribe(ctx, OrderCreatedExchange, w.queueTag+"_order_created", w.queueTag+"_insert_watcher",
			func(ctx context.Context, d amqp091.Delivery) {
				var event OrderCreatedEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					w.logger.Error("failed to unmarshal OrderCreatedEvent", "error", err)
					d.Nack(false, false)
					return
				}
				if handlers.OnInsert != nil {
					handlers.OnInsert(ctx, event)
				}
				d.Ack(false)
			})
	}()

	go func() {
		errChan <- w.subscriber.Subscribe(ctx, PaymentConfirmedExchange, w.queueTag+"_payment_confirmed", w.queueTag+"_update_watcher",
			func(ctx context.Context, d amqp091.Delivery) {
				var event PaymentConfirmedEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					w.logger.Error("failed to unmarshal PaymentConfirmedEvent", "error", err)
					d.Nack(false, false)
					return
				}
				if handlers.OnUpdate != nil {
					handlers.OnUpdate(ctx, event)
				}
				d.Ack(false)
			})
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}
