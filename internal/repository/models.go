package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Order struct {
	ID                pgtype.UUID
	UserName          string
	UserPhone         string
	UserEmail         pgtype.Text
	TotalAmount       pgtype.Numeric
	Items             []byte
	ShippingAddress   []byte
	PaymentMethod     string
	Status            string
	PaymentStatus     string
	RazorpayOrderID   pgtype.Text
	RazorpayPaymentID pgtype.Text
	CreatedAt         pgtype.Timestamptz
	UpdatedAt         pgtype.Timestamptz
}

type Notification struct {
	ID        pgtype.UUID
	OrderID   pgtype.UUID
	Type      string
	Recipient string
	Message   pgtype.Text
	Status    string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type OtpVerification struct {
	ID        pgtype.UUID
	Phone     string
	OtpCode   string
	ExpiresAt pgtype.Timestamptz
	Verified  bool
	CreatedAt pgtype.Timestamptz
}

type Product struct {
	ID          pgtype.UUID
	Name        string
	Description string
	Category    string
	ImageUrl    string
	CreatedAt   pgtype.Timestamptz
}

type ProductVariant struct {
	ID          pgtype.UUID
	ProductID   pgtype.UUID
	WeightLabel string
	Price       pgtype.Numeric
}

type AdminUser struct {
	ID        pgtype.UUID
	Email     string
	Password  string
	CreatedAt pgtype.Timestamptz
}
