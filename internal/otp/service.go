package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sonuarjun3120/krishpafoods/internal/logs"
	"github.com/sonuarjun3120/krishpafoods/internal/repository"
)

const (
	otpLength = 6
	otpTTL    = 10 * time.Minute

	rateLimitKeyPrefix = "otp:"
)

var (
	ErrRateLimited = errors.New("too many OTP requests for this phone number")
	ErrInvalidOTP  = errors.New("invalid or expired OTP")
)

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// Service issues and verifies one-time codes gating phone-indexed order
// history. Codes are single use and expire after ten minutes. Issuance is
// rate limited per phone so the SMS channel cannot be used as a flood
// vector.
type Service struct {
	queries repository.Querier
	limiter RateLimiter
	limit   redis_rate.Limit
	logger  logs.Logger
}

func NewService(queries repository.Querier, limiter RateLimiter, perMinute int, logger logs.Logger) *Service {
	return &Service{
		queries: queries,
		limiter: limiter,
		limit:   redis_rate.Limit{Rate: perMinute, Period: time.Minute, Burst: perMinute},
		logger:  logger,
	}
}

// Issue stores a fresh OTP for the phone and enqueues an SMS notification
// record carrying the code. The code itself is never returned to the
// caller.
func (s *Service) Issue(ctx context.Context, phone string) error {
	res, err := s.limiter.Allow(ctx, rateLimitKeyPrefix+phone, s.limit)
	if err != nil {
		return fmt.Errorf("failed to check OTP rate limit: %w", err)
	}
	if res.Allowed == 0 {
		return ErrRateLimited
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	expiresAt := pgtype.Timestamptz{Time: time.Now().Add(otpTTL), Valid: true}
	verification, err := s.queries.CreateOtpVerification(ctx, repository.CreateOtpVerificationParams{
		Phone:     phone,
		OtpCode:   code,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	message := pgtype.Text{String: "Your Krishpa Foods verification code is " + code + ". It expires in 10 minutes.", Valid: true}
	_, err = s.queries.CreateNotification(ctx, repository.CreateNotificationParams{
		Type:      "sms",
		Recipient: phone,
		Message:   message,
	})
	if err != nil {
		return fmt.Errorf("failed to enqueue OTP notification: %w", err)
	}

	s.logger.Info("otp issued", "phone", phone, "verificationId", verification.ID.String())
	return nil
}

// Verify consumes the OTP on success; a second verification with the same
// code fails.
func (s *Service) Verify(ctx context.Context, phone, code string) error {
	verification, err := s.queries.GetActiveOtpVerification(ctx, repository.GetActiveOtpVerificationParams{
		Phone:   phone,
		OtpCode: code,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to look up OTP: %w", err)
	}

	if err := s.queries.ConsumeOtpVerification(ctx, verification.ID); err != nil {
		return fmt.Errorf("failed to consume OTP: %w", err)
	}

	return nil
}

func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpLength; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", otpLength, n), nil
}
