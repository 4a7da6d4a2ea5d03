package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createNotification = `
INSERT INTO notifications (order_id, type, recipient, message)
VALUES ($1, $2, $3, $4)
RETURNING id, order_id, type, recipient, message, status, created_at, updated_at
`

type CreateNotificationParams struct {
	OrderID   pgtype.UUID
	Type      string
	Recipient string
	Message   pgtype.Text
}

func (q *Queries) CreateNotification(ctx context.Context, arg CreateNotificationParams) (Notification, error) {
	row := q.db.QueryRow(ctx, createNotification, arg.OrderID, arg.Type, arg.Recipient, arg.Message)
	return scanNotification(row)
}

const getPendingNotifications = `
SELECT id, order_id, type, recipient, message, status, created_at, updated_at
FROM notifications
WHERE status = 'pending'
ORDER BY created_at
LIMIT $1
`

func (q *Queries) GetPendingNotifications(ctx context.Context, limit int32) ([]Notification, error) {
	rows, err := q.db.Query(ctx, getPendingNotifications, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

const updateNotificationStatus = `
UPDATE notifications
SET status = $2, updated_at = now()
WHERE id = $1
`

type UpdateNotificationStatusParams struct {
	ID     pgtype.UUID
	Status string
}

func (q *Queries) UpdateNotificationStatus(ctx context.Context, arg UpdateNotificationStatusParams) error {
	_, err := q.db.Exec(ctx, updateNotificationStatus, arg.ID, arg.Status)
	return err
}

const getNotificationsByOrderID = `
SELECT id, order_id, type, recipient, message, status, created_at, updated_at
FROM notifications
WHERE order_id = $1
ORDER BY created_at
`

func (q *Queries) GetNotificationsByOrderID(ctx context.Context, orderID pgtype.UUID) ([]Notification, error) {
	rows, err := q.db.Query(ctx, getNotificationsByOrderID, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func scanNotification(row rowScanner) (Notification, error) {
	var n Notification
	err := row.Scan(
		&n.ID,
		&n.OrderID,
		&n.Type,
		&n.Recipient,
		&n.Message,
		&n.Status,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	return n, err
}
