package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/sonuarjun3120/krishpafoods/internal/otp"
	"github.com/sonuarjun3120/krishpafoods/internal/repository"
)

// History returns the phone's orders, newest first. When the OTP gate is
// enabled the caller must present a valid code, which is consumed on use.
func (s *Service) History(ctx context.Context, phone, otpCode string) ([]repository.Order, error) {
	if phone == "" {
		return nil, ErrMissingPhone
	}

	if s.otpGated {
		if otpCode == "" {
			return nil, ErrOTPRequired
		}
		if err := s.otpVerifier.Verify(ctx, phone, otpCode); err != nil {
			if errors.Is(err, otp.ErrInvalidOTP) {
				return nil, ErrInvalidOTP
			}
			return nil, fmt.Errorf("failed to verify OTP: %w", err)
		}
	}

	history, err := s.repo.GetOrdersByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to load order history: %w", err)
	}

	return history, nil
}
