package orders

import (
	"context"
	"errors"

	"github.com/sonuarjun3120/krishpafoods/internal/logs"
	"github.com/sonuarjun3120/krishpafoods/internal/repository"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrMissingPhone     = errors.New("mobile number is required")
	ErrUnknownProduct   = errors.New("unknown product or weight in cart")
	ErrTotalMismatch    = errors.New("order total does not match catalog prices")
	ErrSubmissionFailed = errors.New("failed to submit order")
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidSignature = errors.New("payment signature verification failed")
	ErrGatewayOrder     = errors.New("gateway orders are confirmed by signature verification only")
	ErrOTPRequired      = errors.New("OTP is required to view order history")
	ErrInvalidOTP       = errors.New("invalid or expired OTP")
)

// CheckoutRepository is the order store plus the transactional writes that
// pair order mutations with notification rows.
type CheckoutRepository interface {
	repository.Querier
	CreateOrderWithNotifications(ctx context.Context, arg repository.CreateOrderParams, seeds []repository.NotificationSeed) (repository.Order, error)
	ConfirmOrderWithNotifications(ctx context.Context, arg repository.ConfirmOrderPaymentParams, seeds []repository.NotificationSeed) (repository.Order, error)
}

type SignatureVerifier interface {
	VerifyCallback(gatewayOrderID, paymentID, signature string) bool
}

type Publisher interface {
	Publish(ctx context.Context, exchange string, body []byte) error
}

type OTPVerifier interface {
	Verify(ctx context.Context, phone, code string) error
}

// StoreContacts are the back-office recipients for checkout notifications.
type StoreContacts struct {
	OwnerPhone string
	OwnerEmail string
}

type Service struct {
	repo        CheckoutRepository
	verifier    SignatureVerifier
	publisher   Publisher
	otpVerifier OTPVerifier
	contacts    StoreContacts
	otpGated    bool
	logger      logs.Logger
}

func NewService(
	repo CheckoutRepository,
	verifier SignatureVerifier,
	publisher Publisher,
	otpVerifier OTPVerifier,
	contacts StoreContacts,
	otpGated bool,
	logger logs.Logger,
) *Service {
	return &Service{
		repo:        repo,
		verifier:    verifier,
		publisher:   publisher,
		otpVerifier: otpVerifier,
		contacts:    contacts,
		otpGated:    otpGated,
		logger:      logger,
	}
}
