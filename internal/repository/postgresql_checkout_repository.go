package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationSeed is one notification row created alongside an order
// mutation, inside the same transaction.
type NotificationSeed struct {
	Type      string
	Recipient string
	Message   pgtype.Text
}

type PostgreSQLCheckoutRepository struct {
	*Queries
	db *pgxpool.Pool
}

func NewPostgreSQLCheckoutRepository(db *pgxpool.Pool) *PostgreSQLCheckoutRepository {
	return &PostgreSQLCheckoutRepository{
		Queries: New(db),
		db:      db,
	}
}

func (r *PostgreSQLCheckoutRepository) execTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	q := r.Queries.WithTx(tx)
	if err := fn(q); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// CreateOrderWithNotifications writes the order row and its notification
// rows atomically, so a half-created checkout can never exist.
func (r *PostgreSQLCheckoutRepository) CreateOrderWithNotifications(ctx context.Context, arg CreateOrderParams, seeds []NotificationSeed) (Order, error) {
	var createdOrder Order
	err := r.execTx(ctx, func(q *Queries) error {
		order, err := q.CreateOrder(ctx, arg)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if err := createNotificationSeeds(ctx, q, order.ID, seeds); err != nil {
			return err
		}

		createdOrder = order
		return nil
	})
	if err != nil {
		return Order{}, err
	}
	return createdOrder, nil
}

// ConfirmOrderWithNotifications transitions the order to confirmed,
// records the gateway identifiers and enqueues the rendered notification
// rows in one transaction.
func (r *PostgreSQLCheckoutRepository) ConfirmOrderWithNotifications(ctx context.Context, arg ConfirmOrderPaymentParams, seeds []NotificationSeed) (Order, error) {
	var confirmedOrder Order
	err := r.execTx(ctx, func(q *Queries) error {
		order, err := q.ConfirmOrderPayment(ctx, arg)
		if err != nil {
			return fmt.Errorf("failed to confirm order payment: %w", err)
		}

		if err := createNotificationSeeds(ctx, q, order.ID, seeds); err != nil {
			return err
		}

		confirmedOrder = order
		return nil
	})
	if err != nil {
		return Order{}, err
	}
	return confirmedOrder, nil
}

func createNotificationSeeds(ctx context.Context, q *Queries, orderID pgtype.UUID, seeds []NotificationSeed) error {
	for _, seed := range seeds {
		_, err := q.CreateNotification(ctx, CreateNotificationParams{
			OrderID:   orderID,
			Type:      seed.Type,
			Recipient: seed.Recipient,
			Message:   seed.Message,
		})
		if err != nil {
			return fmt.Errorf("failed to create %s notification: %w", seed.Type, err)
		}
	}
	return nil
}
