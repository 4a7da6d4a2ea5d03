package handlers

import (
	"context"

	"github.com/sonuarjun3120/krishpafoods/internal/auth"
	"github.com/sonuarjun3120/krishpafoods/internal/cart"
	"github.com/sonuarjun3120/krishpafoods/internal/delivery"
	"github.com/sonuarjun3120/krishpafoods/internal/logs"
	"github.com/sonuarjun3120/krishpafoods/internal/orders"
	"github.com/sonuarjun3120/krishpafoods/internal/payments"
	"github.com/sonuarjun3120/krishpafoods/internal/repository"
)

const (
	requestTimeoutMsg      = "Request Timeout"
	internalServerErrorMsg = "Internal Server Error"
	invalidRequestBodyMsg  = "Invalid Request Body"

	sessionHeader = "X-Session-ID"
)

type CheckoutService interface {
	Submit(ctx context.Context, params orders.SubmitParams) (orders.OrderRef, error)
	VerifyPayment(ctx context.Context, params orders.VerifyPaymentParams) error
	AcknowledgePayment(ctx context.Context, orderID string) error
	History(ctx context.Context, phone, otpCode string) ([]repository.Order, error)
}

type OTPIssuer interface {
	Issue(ctx context.Context, phone string) error
}

type GatewayClient interface {
	CreateOrder(ctx context.Context, internalOrderID string, amount float64) (payments.GatewayOrder, error)
}

type Handler struct {
	queries  repository.Querier
	checkout CheckoutService
	carts    *cart.Store
	otp      OTPIssuer
	gateway  GatewayClient
	jwt      *auth.JWTManager
	geocoder delivery.ReverseGeocoder
	upi      payments.UPIDetails
	bank     payments.BankTransferDetails
	logger   logs.Logger
}

type Config struct {
	Queries  repository.Querier
	Checkout CheckoutService
	Carts    *cart.Store
	OTP      OTPIssuer
	Gateway  GatewayClient
	JWT      *auth.JWTManager
	Geocoder delivery.ReverseGeocoder
	UPI      payments.UPIDetails
	Bank     payments.BankTransferDetails
	Logger   logs.Logger
}

func NewHandler(cfg Config) *Handler {
	return &Handler{
		queries:  cfg.Queries,
		checkout: cfg.Checkout,
		carts:    cfg.Carts,
		otp:      cfg.OTP,
		gateway:  cfg.Gateway,
		jwt:      cfg.JWT,
		geocoder: cfg.Geocoder,
		upi:      cfg.UPI,
		bank:     cfg.Bank,
		logger:   cfg.Logger,
	}
}
