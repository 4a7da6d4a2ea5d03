package notifications_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sonuarjun3120/krishpafoods/internal/logs"
	"github.com/sonuarjun3120/krishpafoods/internal/notifications"
	"github.com/sonuarjun3120/krishpafoods/internal/repository"
	"github.com/sonuarjun3120/krishpafoods/internal/repository/repositorytest"
)

const (
	testOrderID = "3f1a9c7e-42d5-4c0a-9b8f-6a2d1e0c5b4a"
	testPhone   = "9876543210"
	ownerEmail  = "orders@krishpafoods.example"
)

type recordedDelivery struct {
	recipient string
	subject   string
	message   string
}

type fakeChannel struct {
	deliveries []recordedDelivery
	err        error
}

func (c *fakeChannel) Deliver(ctx context.Context, recipient, subject, message string) error {
	if c.err != nil {
		return c.err
	}
	c.deliveries = append(c.deliveries, recordedDelivery{recipient: recipient, subject: subject, message: message})
	return nil
}

func mustUUID(t *testing.T, value string) pgtype.UUID {
	t.Helper()
	var id pgtype.UUID
	if err := id.Scan(value); err != nil {
		t.Fatalf("invalid uuid fixture %q: %v", value, err)
	}
	return id
}

func testOrder(t *testing.T) repository.Order {
	var total pgtype.Numeric
	if err := total.Scan("708.00"); err != nil {
		t.Fatalf("invalid numeric fixture: %v", err)
	}
	return repository.Order{
		ID:            mustUUID(t, testOrderID),
		UserName:      "Lakshmi",
		UserPhone:     testPhone,
		TotalAmount:   total,
		Items:         []byte(`[{"quantity":2}]`),
		PaymentMethod: "upi",
		Status:        "pending",
	}
}

func TestDrainPending(t *testing.T) {
	logger := logs.NewSlogLogger()

	t.Run("Delivers Rendered Message As Is", func(t *testing.T) {
		mockQuerier := new(repositorytest.MockQuerier)
		whatsapp := &fakeChannel{}
		dispatcher := notifications.NewDispatcher(mockQuerier, map[string]notifications.Channel{
			"whatsapp": whatsapp,
		}, logger)

		record := repository.Notification{
			ID:        mustUUID(t, "61b7f0d3-5a8e-4c21-9f6b-0e4d2c8a7b19"),
			OrderID:   mustUUID(t, testOrderID),
			Type:      "whatsapp",
			Recipient: testPhone,
			Message:   pgtype.Text{String: "Your payment is confirmed.", Valid: true},
			Status:    "pending",
		}

		mockQuerier.On("GetPendingNotifications", mock.Anything, int32(50)).
			Return([]repository.Notification{record}, nil).Once()
		mockQuerier.On("UpdateNotificationStatus", mock.Anything, repository.UpdateNotificationStatusParams{
			ID:     record.ID,
			Status: "sent",
		}).Return(nil).Once()

		processed, err := dispatcher.DrainPending(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 1, processed)
		assert.Len(t, whatsapp.deliveries, 1)
		assert.Equal(t, "Your payment is confirmed.", whatsapp.deliveries[0].message)
		mockQuerier.AssertExpectations(t)
	})

	t.Run("Renders Null Message From Order", func(t *testing.T) {
		mockQuerier := new(repositorytest.MockQuerier)
		email := &fakeChannel{}
		dispatcher := notifications.NewDispatcher(mockQuerier, map[string]notifications.Channel{
			"email": email,
		}, logger)

		record := repository.Notification{
			ID:        mustUUID(t, "61b7f0d3-5a8e-4c21-9f6b-0e4d2c8a7b19"),
			OrderID:   mustUUID(t, testOrderID),
			Type:      "email",
			Recipient: ownerEmail,
			Status:    "pending",
		}

		mockQuerier.On("GetPendingNotifications", mock.Anything, int32(50)).
			Return([]repository.Notification{record}, nil).Once()
		mockQuerier.On("GetOrderByID", mock.Anything, record.OrderID).
			Return(testOrder(t), nil).Once()
		mockQuerier.On("UpdateNotificationStatus", mock.Anything, repository.UpdateNotificationStatusParams{
			ID:     record.ID,
			Status: "sent",
		}).Return(nil).Once()

		processed, err := dispatcher.DrainPending(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 1, processed)
		assert.Len(t, email.deliveries, 1)
		assert.Equal(t, notifications.PendingEmailSubject, email.deliveries[0].subject)
		assert.True(t, strings.Contains(email.deliveries[0].message, testOrderID))
		mockQuerier.AssertExpectations(t)
	})

	t.Run("Failed Delivery Is Terminal", func(t *testing.T) {
		mockQuerier := new(repositorytest.MockQuerier)
		sms := &fakeChannel{err: errors.New("provider unavailable")}
		dispatcher := notifications.NewDispatcher(mockQuerier, map[string]notifications.Channel{
			"sms": sms,
		}, logger)

		record := repository.Notification{
			ID:        mustUUID(t, "61b7f0d3-5a8e-4c21-9f6b-0e4d2c8a7b19"),
			Type:      "sms",
			Recipient: testPhone,
			Message:   pgtype.Text{String: "Your code is 482913.", Valid: true},
			Status:    "pending",
		}

		mockQuerier.On("GetPendingNotifications", mock.Anything, int32(50)).
			Return([]repository.Notification{record}, nil).Once()
		mockQuerier.On("UpdateNotificationStatus", mock.Anything, repository.UpdateNotificationStatusParams{
			ID:     record.ID,
			Status: "failed",
		}).Return(nil).Once()

		processed, err := dispatcher.DrainPending(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 1, processed)

		// The row is terminal now, so a second drain sees nothing.
		mockQuerier.On("GetPendingNotifications", mock.Anything, int32(50)).
			Return([]repository.Notification{}, nil).Once()

		processed, err = dispatcher.DrainPending(context.Background())

		assert.NoError(t, err)
		assert.Zero(t, processed)
		mockQuerier.AssertExpectations(t)
	})

	t.Run("Unregistered Channel Marks Failed", func(t *testing.T) {
		mockQuerier := new(repositorytest.MockQuerier)
		dispatcher := notifications.NewDispatcher(mockQuerier, map[string]notifications.Channel{}, logger)

		record := repository.Notification{
			ID:        mustUUID(t, "61b7f0d3-5a8e-4c21-9f6b-0e4d2c8a7b19"),
			Type:      "whatsapp",
			Recipient: testPhone,
			Message:   pgtype.Text{String: "hello", Valid: true},
			Status:    "pending",
		}

		mockQuerier.On("GetPendingNotifications", mock.Anything, int32(50)).
			Return([]repository.Notification{record}, nil).Once()
		mockQuerier.On("UpdateNotificationStatus", mock.Anything, repository.UpdateNotificationStatusParams{
			ID:     record.ID,
			Status: "failed",
		}).Return(nil).Once()

		processed, err := dispatcher.DrainPending(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 1, processed)
		mockQuerier.AssertExpectations(t)
	})
}
