package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type Querier interface {
	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	GetOrderByID(ctx context.Context, id pgtype.UUID) (Order, error)
	GetOrdersByPhone(ctx context.Context, userPhone string) ([]Order, error)
	ListOrders(ctx context.Context, limit int32) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error)
	ConfirmOrderPayment(ctx context.Context, arg ConfirmOrderPaymentParams) (Order, error)

	CreateNotification(ctx context.Context, arg CreateNotificationParams) (Notification, error)
	GetPendingNotifications(ctx context.Context, limit int32) ([]Notification, error)
	GetNotificationsByOrderID(ctx context.Context, orderID pgtype.UUID) ([]Notification, error)
	UpdateNotificationStatus(ctx context.Context, arg UpdateNotificationStatusParams) error

	CreateOtpVerification(ctx context.Context, arg CreateOtpVerificationParams) (OtpVerification, error)
	GetActiveOtpVerification(ctx context.Context, arg GetActiveOtpVerificationParams) (OtpVerification, error)
	ConsumeOtpVerification(ctx context.Context, id pgtype.UUID) error

	GetProductByID(ctx context.Context, id pgtype.UUID) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	GetProductVariant(ctx context.Context, arg GetProductVariantParams) (ProductVariant, error)
	ListProductVariants(ctx context.Context, productID pgtype.UUID) ([]ProductVariant, error)

	GetAdminUserByEmail(ctx context.Context, email string) (AdminUser, error)
}

var _ Querier = (*Queries)(nil)
