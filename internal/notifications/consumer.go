package notifications

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"github.com/sonuarjun3120/krishpafoods/internal/events"
	"github.com/sonuarjun3120/krishpafoods/internal/logs"
)

const (
	orderCreatedQueue     = "notification_order_created_queue"
	paymentConfirmedQueue = "notification_payment_confirmed_queue"
	consumerName          = "notification_dispatcher_consumer"
)

type MessageSubscriber interface {
	Subscribe(ctx context.Context, exchangeName, queueName, consumerName string, handler func(ctx context.Context, d amqp091.Delivery)) error
}

// CheckoutEventsConsumer triggers a queue drain whenever a checkout event
// arrives, so notifications go out promptly instead of waiting for the next
// poll tick.
type CheckoutEventsConsumer struct {
	logger     logs.Logger
	dispatcher *Dispatcher
	subscriber MessageSubscriber
}

func NewCheckoutEventsConsumer(logger logs.Logger, dispatcher *Dispatcher, subscriber MessageSubscriber) *CheckoutEventsConsumer {
	return &CheckoutEventsConsumer{
		logger:     logger,
		dispatcher: dispatcher,
		subscriber: subscriber,
	}
}

func (c *CheckoutEventsConsumer) Start(ctx context.Context) error {
	err := c.subscriber.Subscribe(ctx, events.OrderCreatedExchange, orderCreatedQueue, consumerName, c.handleEvent)
	if err != nil {
		return err
	}
	return c.subscriber.Subscribe(ctx, events.PaymentConfirmedExchange, paymentConfirmedQueue, consumerName, c.handleEvent)
}

func (c *CheckoutEventsConsumer) handleEvent(ctx context.Context, d amqp091.Delivery) {
	processed, err := c.dispatcher.DrainPending(ctx)
	if err != nil {
		c.logger.Error("failed to drain notifications after checkout event", "error", err)
		d.Nack(false, true)
		return
	}

	c.logger.Info("drained notifications after checkout event", "processed", processed)
	d.Ack(false)
}
