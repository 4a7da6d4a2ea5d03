package orders_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sonuarjun3120/krishpafoods/internal/orders"
	"github.com/sonuarjun3120/krishpafoods/internal/repository"
)

func pendingUPIOrder(t *testing.T) repository.Order {
	order := pendingOrder(t)
	order.PaymentMethod = "upi"
	return order
}

func TestAcknowledgePayment(t *testing.T) {
	t.Run("UPI Order Reaches Completed Payment", func(t *testing.T) {
		repo := new(mockCheckoutRepository)
		publisher := &stubPublisher{}
		service := newTestService(repo, stubVerifier{}, publisher, &stubOTPVerifier{}, false)

		confirmed := pendingUPIOrder(t)
		confirmed.Status = "confirmed"
		confirmed.PaymentStatus = "completed"

		repo.On("GetOrderByID", mock.Anything, mustUUID(t, testOrderID)).
			Return(pendingUPIOrder(t), nil).Once()
		repo.On("ConfirmOrderWithNotifications", mock.Anything, repository.ConfirmOrderPaymentParams{
			ID: mustUUID(t, testOrderID),
		}, mock.MatchedBy(func(seeds []repository.NotificationSeed) bool {
			if len(seeds) != 4 {
				return false
			}
			for _, seed := range seeds {
				if !seed.Message.Valid || seed.Message.String == "" {
					return false
				}
			}
			return true
		})).Return(confirmed, nil).Once()

		err := service.AcknowledgePayment(context.Background(), testOrderID)

		assert.NoError(t, err)
		assert.Equal(t, []string{"payment_confirmed_exchange"}, publisher.exchanges)
		repo.AssertExpectations(t)
	})

	t.Run("Bank Transfer Order Is Acknowledgeable", func(t *testing.T) {
		repo := new(mockCheckoutRepository)
		service := newTestService(repo, stubVerifier{}, &stubPublisher{}, &stubOTPVerifier{}, false)

		bankOrder := pendingOrder(t)
		bankOrder.PaymentMethod = "bank"
		repo.On("GetOrderByID", mock.Anything, mock.Anything).
			Return(bankOrder, nil).Once()
		repo.On("ConfirmOrderWithNotifications", mock.Anything, mock.Anything, mock.Anything).
			Return(bankOrder, nil).Once()

		err := service.AcknowledgePayment(context.Background(), testOrderID)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Gateway Order Rejected", func(t *testing.T) {
		repo := new(mockCheckoutRepository)
		service := newTestService(repo, stubVerifier{}, &stubPublisher{}, &stubOTPVerifier{}, false)

		repo.On("GetOrderByID", mock.Anything, mock.Anything).
			Return(pendingOrder(t), nil).Once()

		err := service.AcknowledgePayment(context.Background(), testOrderID)

		assert.ErrorIs(t, err, orders.ErrGatewayOrder)
		repo.AssertNotCalled(t, "ConfirmOrderWithNotifications", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown Order", func(t *testing.T) {
		repo := new(mockCheckoutRepository)
		service := newTestService(repo, stubVerifier{}, &stubPublisher{}, &stubOTPVerifier{}, false)

		repo.On("GetOrderByID", mock.Anything, mock.Anything).
			Return(repository.Order{}, pgx.ErrNoRows).Once()

		err := service.AcknowledgePayment(context.Background(), testOrderID)

		assert.ErrorIs(t, err, orders.ErrOrderNotFound)
	})

	t.Run("Replay On Confirmed Order Is Idempotent", func(t *testing.T) {
		repo := new(mockCheckoutRepository)
		service := newTestService(repo, stubVerifier{}, &stubPublisher{}, &stubOTPVerifier{}, false)

		confirmed := pendingUPIOrder(t)
		confirmed.Status = "confirmed"
		repo.On("GetOrderByID", mock.Anything, mock.Anything).
			Return(confirmed, nil).Once()

		err := service.AcknowledgePayment(context.Background(), testOrderID)

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "ConfirmOrderWithNotifications", mock.Anything, mock.Anything, mock.Anything)
	})
}
