package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/sonuarjun3120/krishpafoods/internal/logs"
	"github.com/sonuarjun3120/krishpafoods/internal/repository"
)

const (
	defaultBatchSize = 50

	statusSent   = "sent"
	statusFailed = "failed"
)

// Dispatcher drains pending notification rows and hands each one to its
// channel. Every record ends in a terminal state after one attempt: sent on
// success, failed otherwise. There is no retry.
type Dispatcher struct {
	queries   repository.Querier
	channels  map[string]Channel
	batchSize int32
	logger    logs.Logger
}

func NewDispatcher(queries repository.Querier, channels map[string]Channel, logger logs.Logger) *Dispatcher {
	return &Dispatcher{
		queries:   queries,
		channels:  channels,
		batchSize: defaultBatchSize,
		logger:    logger,
	}
}

// Start polls for pending rows until the context is cancelled. Event
// consumers may also trigger DrainPending directly, so the interval only
// bounds how stale a missed event can leave the queue.
func (d *Dispatcher) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("notification dispatcher stopped")
			return
		case <-ticker.C:
			if _, err := d.DrainPending(ctx); err != nil {
				d.logger.Error("failed to drain pending notifications", "error", err)
			}
		}
	}
}

// DrainPending processes one batch of pending rows and returns how many it
// handled. Failures of individual records do not stop the batch.
func (d *Dispatcher) DrainPending(ctx context.Context) (int, error) {
	pending, err := d.queries.GetPendingNotifications(ctx, d.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to load pending notifications: %w", err)
	}

	for _, record := range pending {
		d.dispatch(ctx, record)
	}

	return len(pending), nil
}

func (d *Dispatcher) dispatch(ctx context.Context, record repository.Notification) {
	status := statusSent
	if err := d.deliver(ctx, record); err != nil {
		d.logger.Error("notification delivery failed",
			"notificationId", record.ID.String(),
			"type", record.Type,
			"recipient", record.Recipient,
			"error", err,
		)
		status = statusFailed
	}

	err := d.queries.UpdateNotificationStatus(ctx, repository.UpdateNotificationStatusParams{
		ID:     record.ID,
		Status: status,
	})
	if err != nil {
		d.logger.Error("failed to update notification status",
			"notificationId", record.ID.String(),
			"status", status,
			"error", err,
		)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, record repository.Notification) error {
	channel, ok := d.channels[record.Type]
	if !ok {
		return fmt.Errorf("no channel registered for type %q", record.Type)
	}

	message, subject, err := d.resolveMessage(ctx, record)
	if err != nil {
		return err
	}

	return channel.Deliver(ctx, record.Recipient, subject, message)
}

// resolveMessage renders rows that were enqueued without a message. Those
// are the order-received rows written at submission time, before payment
// details exist.
func (d *Dispatcher) resolveMessage(ctx context.Context, record repository.Notification) (string, string, error) {
	if record.Message.Valid {
		return record.Message.String, ConfirmationEmailSubject, nil
	}

	if !record.OrderID.Valid {
		return "", "", fmt.Errorf("notification %s has no message and no order", record.ID.String())
	}

	order, err := d.queries.GetOrderByID(ctx, record.OrderID)
	if err != nil {
		return "", "", fmt.Errorf("failed to load order for notification: %w", err)
	}

	digest := DigestFromOrder(order)

	switch {
	case record.Type == "email":
		return PendingEmailHTML(digest), PendingEmailSubject, nil
	case record.Recipient == order.UserPhone:
		return CustomerPendingMessage(digest), PendingEmailSubject, nil
	default:
		return StorePendingMessage(digest), PendingEmailSubject, nil
	}
}
