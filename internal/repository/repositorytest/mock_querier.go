// Package repositorytest provides a testify mock of repository.Querier for
// handler and service tests.
package repositorytest

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/mock"

	"github.com/sonuarjun3120/krishpafoods/internal/repository"
)

type MockQuerier struct {
	mock.Mock
}

var _ repository.Querier = (*MockQuerier)(nil)

func (m *MockQuerier) CreateOrder(ctx context.Context, arg repository.CreateOrderParams) (repository.Order, error) {
	args := m.Called(ctx, arg)
	if o, ok := args.Get(0).(repository.Order); ok {
		return o, args.Error(1)
	}
	return repository.Order{}, args.Error(1)
}

func (m *MockQuerier) GetOrderByID(ctx context.Context, id pgtype.UUID) (repository.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(repository.Order); ok {
		return o, args.Error(1)
	}
	return repository.Order{}, args.Error(1)
}

func (m *MockQuerier) GetOrdersByPhone(ctx context.Context, userPhone string) ([]repository.Order, error) {
	args := m.Called(ctx, userPhone)
	if o, ok := args.Get(0).([]repository.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuerier) ListOrders(ctx context.Context, limit int32) ([]repository.Order, error) {
	args := m.Called(ctx, limit)
	if o, ok := args.Get(0).([]repository.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuerier) UpdateOrderStatus(ctx context.Context, arg repository.UpdateOrderStatusParams) (repository.Order, error) {
	args := m.Called(ctx, arg)
	if o, ok := args.Get(0).(repository.Order); ok {
		return o, args.Error(1)
	}
	return repository.Order{}, args.Error(1)
}

func (m *MockQuerier) ConfirmOrderPayment(ctx context.Context, arg repository.ConfirmOrderPaymentParams) (repository.Order, error) {
	args := m.Called(ctx, arg)
	if o, ok := args.Get(0).(repository.Order); ok {
		return o, args.Error(1)
	}
	return repository.Order{}, args.Error(1)
}

func (m *MockQuerier) CreateNotification(ctx context.Context, arg repository.CreateNotificationParams) (repository.Notification, error) {
	args := m.Called(ctx, arg)
	if n, ok := args.Get(0).(repository.Notification); ok {
		return n, args.Error(1)
	}
	return repository.Notification{}, args.Error(1)
}

func (m *MockQuerier) GetPendingNotifications(ctx context.Context, limit int32) ([]repository.Notification, error) {
	args := m.Called(ctx, limit)
	if n, ok := args.Get(0).([]repository.Notification); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuerier) GetNotificationsByOrderID(ctx context.Context, orderID pgtype.UUID) ([]repository.Notification, error) {
	args := m.Called(ctx, orderID)
	if n, ok := args.Get(0).([]repository.Notification); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuerier) UpdateNotificationStatus(ctx context.Context, arg repository.UpdateNotificationStatusParams) error {
	args := m.Called(ctx, arg)
	return args.Error(0)
}

func (m *MockQuerier) CreateOtpVerification(ctx context.Context, arg repository.CreateOtpVerificationParams) (repository.OtpVerification, error) {
	args := m.Called(ctx, arg)
	if o, ok := args.Get(0).(repository.OtpVerification); ok {
		return o, args.Error(1)
	}
	return repository.OtpVerification{}, args.Error(1)
}

func (m *MockQuerier) GetActiveOtpVerification(ctx context.Context, arg repository.GetActiveOtpVerificationParams) (repository.OtpVerification, error) {
	args := m.Called(ctx, arg)
	if o, ok := args.Get(0).(repository.OtpVerification); ok {
		return o, args.Error(1)
	}
	return repository.OtpVerification{}, args.Error(1)
}

func (m *MockQuerier) ConsumeOtpVerification(ctx context.Context, id pgtype.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuerier) GetProductByID(ctx context.Context, id pgtype.UUID) (repository.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(repository.Product); ok {
		return p, args.Error(1)
	}
	return repository.Product{}, args.Error(1)
}

func (m *MockQuerier) ListProducts(ctx context.Context) ([]repository.Product, error) {
	args := m.Called(ctx)
	if p, ok := args.Get(0).([]repository.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuerier) GetProductVariant(ctx context.Context, arg repository.GetProductVariantParams) (repository.ProductVariant, error) {
	args := m.Called(ctx, arg)
	if v, ok := args.Get(0).(repository.ProductVariant); ok {
		return v, args.Error(1)
	}
	return repository.ProductVariant{}, args.Error(1)
}

func (m *MockQuerier) ListProductVariants(ctx context.Context, productID pgtype.UUID) ([]repository.ProductVariant, error) {
	args := m.Called(ctx, productID)
	if v, ok := args.Get(0).([]repository.ProductVariant); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuerier) GetAdminUserByEmail(ctx context.Context, email string) (repository.AdminUser, error) {
	args := m.Called(ctx, email)
	if a, ok := args.Get(0).(repository.AdminUser); ok {
		return a, args.Error(1)
	}
	return repository.AdminUser{}, args.Error(1)
}
