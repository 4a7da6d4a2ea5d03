package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createOrder = `
INSERT INTO orders (user_name, user_phone, user_email, total_amount, items, shipping_address, payment_method)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, user_name, user_phone, user_email, total_amount, items, shipping_address, payment_method,
          status, payment_status, razorpay_order_id, razorpay_payment_id, created_at, updated_at
`

type CreateOrderParams struct {
	UserName        string
	UserPhone       string
	UserEmail       pgtype.Text
	TotalAmount     pgtype.Numeric
	Items           []byte
	ShippingAddress []byte
	PaymentMethod   string
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder,
		arg.UserName,
		arg.UserPhone,
		arg.UserEmail,
		arg.TotalAmount,
		arg.Items,
		arg.ShippingAddress,
		arg.PaymentMethod,
	)
	return scanOrder(row)
}

const getOrderByID = `
SELECT id, user_name, user_phone, user_email, total_amount, items, shipping_address, payment_method,
       status, payment_status, razorpay_order_id, razorpay_payment_id, created_at, updated_at
FROM orders
WHERE id = $1
`

func (q *Queries) GetOrderByID(ctx context.Context, id pgtype.UUID) (Order, error) {
	row := q.db.QueryRow(ctx, getOrderByID, id)
	return scanOrder(row)
}

const getOrdersByPhone = `
SELECT id, user_name, user_phone, user_email, total_amount, items, shipping_address, payment_method,
       status, payment_status, razorpay_order_id, razorpay_payment_id, created_at, updated_at
FROM orders
WHERE user_phone = $1
ORDER BY created_at DESC
`

func (q *Queries) GetOrdersByPhone(ctx context.Context, userPhone string) ([]Order, error) {
	rows, err := q.db.Query(ctx, getOrdersByPhone, userPhone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const listOrders = `
SELECT id, user_name, user_phone, user_email, total_amount, items, shipping_address, payment_method,
       status, payment_status, razorpay_order_id, razorpay_payment_id, created_at, updated_at
FROM orders
ORDER BY created_at DESC
LIMIT $1
`

func (q *Queries) ListOrders(ctx context.Context, limit int32) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrders, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const updateOrderStatus = `
UPDATE orders
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING id, user_name, user_phone, user_email, total_amount, items, shipping_address, payment_method,
          status, payment_status, razorpay_order_id, razorpay_payment_id, created_at, updated_at
`

type UpdateOrderStatusParams struct {
	ID     pgtype.UUID
	Status string
}

func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	row := q.db.QueryRow(ctx, updateOrderStatus, arg.ID, arg.Status)
	return scanOrder(row)
}

const confirmOrderPayment = `
UPDATE orders
SET status = 'confirmed',
    payment_status = 'completed',
    razorpay_order_id = $2,
    razorpay_payment_id = $3,
    updated_at = now()
WHERE id = $1
RETURNING id, user_name, user_phone, user_email, total_amount, items, shipping_address, payment_method,
          status, payment_status, razorpay_order_id, razorpay_payment_id, created_at, updated_at
`

type ConfirmOrderPaymentParams struct {
	ID                pgtype.UUID
	RazorpayOrderID   pgtype.Text
	RazorpayPaymentID pgtype.Text
}

func (q *Queries) ConfirmOrderPayment(ctx context.Context, arg ConfirmOrderPaymentParams) (Order, error) {
	row := q.db.QueryRow(ctx, confirmOrderPayment, arg.ID, arg.RazorpayOrderID, arg.RazorpayPaymentID)
	return scanOrder(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.UserName,
		&o.UserPhone,
		&o.UserEmail,
		&o.TotalAmount,
		&o.Items,
		&o.ShippingAddress,
		&o.PaymentMethod,
		&o.Status,
		&o.PaymentStatus,
		&o.RazorpayOrderID,
		&o.RazorpayPaymentID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}
