package otp_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sonuarjun3120/krishpafoods/internal/logs"
	"github.com/sonuarjun3120/krishpafoods/internal/otp"
	"github.com/sonuarjun3120/krishpafoods/internal/repository"
	"github.com/sonuarjun3120/krishpafoods/internal/repository/repositorytest"
)

const testPhone = "9876543210"

type stubLimiter struct {
	allowed int
	err     error
}

func (s stubLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &redis_rate.Result{Allowed: s.allowed}, nil
}

func TestIssue(t *testing.T) {
	logger := logs.NewSlogLogger()

	t.Run("Success", func(t *testing.T) {
		mockQuerier := new(repositorytest.MockQuerier)
		service := otp.NewService(mockQuerier, stubLimiter{allowed: 1}, 3, logger)

		var verificationID pgtype.UUID
		_ = verificationID.Scan("7f6af8e9-9c1b-4f68-a3c2-2e5a0df76c01")

		mockQuerier.On("CreateOtpVerification", mock.Anything, mock.MatchedBy(func(arg repository.CreateOtpVerificationParams) bool {
			return arg.Phone == testPhone && len(arg.OtpCode) == 6 && arg.ExpiresAt.Time.After(time.Now())
		})).Return(repository.OtpVerification{ID: verificationID, Phone: testPhone}, nil).Once()
		mockQuerier.On("CreateNotification", mock.Anything, mock.MatchedBy(func(arg repository.CreateNotificationParams) bool {
			return arg.Type == "sms" && arg.Recipient == testPhone && arg.Message.Valid
		})).Return(repository.Notification{}, nil).Once()

		err := service.Issue(context.Background(), testPhone)

		assert.NoError(t, err)
		mockQuerier.AssertExpectations(t)
	})

	t.Run("Rate Limited", func(t *testing.T) {
		mockQuerier := new(repositorytest.MockQuerier)
		service := otp.NewService(mockQuerier, stubLimiter{allowed: 0}, 3, logger)

		err := service.Issue(context.Background(), testPhone)

		assert.ErrorIs(t, err, otp.ErrRateLimited)
		mockQuerier.AssertNotCalled(t, "CreateOtpVerification", mock.Anything, mock.Anything)
	})

	t.Run("Limiter Error", func(t *testing.T) {
		mockQuerier := new(repositorytest.MockQuerier)
		service := otp.NewService(mockQuerier, stubLimiter{err: errors.New("redis down")}, 3, logger)

		err := service.Issue(context.Background(), testPhone)

		assert.Error(t, err)
	})
}

func TestVerify(t *testing.T) {
	logger := logs.NewSlogLogger()

	t.Run("Success Consumes Code", func(t *testing.T) {
		mockQuerier := new(repositorytest.MockQuerier)
		service := otp.NewService(mockQuerier, stubLimiter{allowed: 1}, 3, logger)

		var verificationID pgtype.UUID
		_ = verificationID.Scan("7f6af8e9-9c1b-4f68-a3c2-2e5a0df76c01")

		mockQuerier.On("GetActiveOtpVerification", mock.Anything, repository.GetActiveOtpVerificationParams{
			Phone:   testPhone,
			OtpCode: "482913",
		}).Return(repository.OtpVerification{ID: verificationID}, nil).Once()
		mockQuerier.On("ConsumeOtpVerification", mock.Anything, verificationID).Return(nil).Once()

		err := service.Verify(context.Background(), testPhone, "482913")

		assert.NoError(t, err)
		mockQuerier.AssertExpectations(t)
	})

	t.Run("Unknown Code", func(t *testing.T) {
		mockQuerier := new(repositorytest.MockQuerier)
		service := otp.NewService(mockQuerier, stubLimiter{allowed: 1}, 3, logger)

		mockQuerier.On("GetActiveOtpVerification", mock.Anything, mock.Anything).
			Return(repository.OtpVerification{}, pgx.ErrNoRows).Once()

		err := service.Verify(context.Background(), testPhone, "000000")

		assert.ErrorIs(t, err, otp.ErrInvalidOTP)
		mockQuerier.AssertNotCalled(t, "ConsumeOtpVerification", mock.Anything, mock.Anything)
	})
}
