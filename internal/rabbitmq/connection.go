package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sonuarjun3120/krishpafoods/internal/logs"
)

const handlerTimeout = 30 * time.Second

type RabbitMQ struct {
	logger     logs.Logger
	connection *amqp091.Connection
	channel    *amqp091.Channel
}

func NewConnection(logger logs.Logger, url string) (*RabbitMQ, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	logger.Info("connected to RabbitMQ")
	return &RabbitMQ{
		logger:     logger,
		connection: conn,
		channel:    ch,
	}, nil
}

func (r *RabbitMQ) Publish(ctx context.Context, exchange string, body []byte) error {
	if err := r.channel.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
		Timestamp:    time.Now(),
	}

	return r.channel.PublishWithContext(ctx,
		exchange,
		"",
		false,
		false,
		publishing,
	)
}

func (r *RabbitMQ) Subscribe(ctx context.Context, exchange, queueName, consumerTag string, handler func(ctx context.Context, d amqp091.Delivery)) error {
	if err := r.setupQueue(exchange, queueName); err != nil {
		return err
	}

	msgs, err := r.channel.Consume(
		queueName,
		consumerTag,
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	r.logger.Info("consumer subscribed", "consumerTag", consumerTag, "queue", queueName)
	return r.consumeMessages(ctx, consumerTag, msgs, handler)
}

// setupQueue declares the fanout exchange, a dead-letter pair for poison
// messages, and binds the durable queue.
func (r *RabbitMQ) setupQueue(exchange, queueName string) error {
	dlxName := exchange + ".dlx"
	dlqName := queueName + ".dlq"

	if err := r.channel.ExchangeDeclare(dlxName, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare DLX %s: %w", dlxName, err)
	}

	if _, err := r.channel.QueueDeclare(dlqName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare DLQ %s: %w", dlqName, err)
	}

	if err := r.channel.QueueBind(dlqName, "", dlxName, false, nil); err != nil {
		return fmt.Errorf("failed to bind DLQ to DLX: %w", err)
	}

	if err := r.channel.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	args := amqp091.Table{"x-dead-letter-exchange": dlxName}
	if _, err := r.channel.QueueDeclare(queueName, true, false, false, false, args); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	if err := r.channel.QueueBind(queueName, "", exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue to exchange: %w", err)
	}

	return nil
}

func (r *RabbitMQ) consumeMessages(ctx context.Context, consumerTag string, msgs <-chan amqp091.Delivery, handler func(ctx context.Context, d amqp091.Delivery)) error {
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("context cancelled, stopping consumer", "consumerTag", consumerTag)
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				r.logger.Error("message channel closed, stopping consumer", "consumerTag", consumerTag)
				return fmt.Errorf("rabbitmq channel closed for consumer %s", consumerTag)
			}
			go func(delivery amqp091.Delivery) {
				handlerCtx, cancel := context.WithTimeout(ctx, handlerTimeout)
				defer cancel()
				handler(handlerCtx, delivery)
			}(d)
		}
	}
}

func (r *RabbitMQ) Close() {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.connection != nil {
		r.connection.Close()
	}
	r.logger.Info("rabbitmq connection closed")
}

func (r *RabbitMQ) Ping() error {
	if r.connection.IsClosed() {
		return fmt.Errorf("rabbitmq connection is closed")
	}
	return nil
}
