package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createOtpVerification = `
INSERT INTO otp_verifications (phone, otp_code, expires_at)
VALUES ($1, $2, $3)
RETURNING id, phone, otp_code, expires_at, verified, created_at
`

type CreateOtpVerificationParams struct {
	Phone     string
	OtpCode   string
	ExpiresAt pgtype.Timestamptz
}

func (q *Queries) CreateOtpVerification(ctx context.Context, arg CreateOtpVerificationParams) (OtpVerification, error) {
	row := q.db.QueryRow(ctx, createOtpVerification, arg.Phone, arg.OtpCode, arg.ExpiresAt)
	return scanOtpVerification(row)
}

const getActiveOtpVerification = `
SELECT id, phone, otp_code, expires_at, verified, created_at
FROM otp_verifications
WHERE phone = $1 AND otp_code = $2 AND verified = FALSE AND expires_at > now()
ORDER BY created_at DESC
LIMIT 1
`

type GetActiveOtpVerificationParams struct {
	Phone   string
	OtpCode string
}

func (q *Queries) GetActiveOtpVerification(ctx context.Context, arg GetActiveOtpVerificationParams) (OtpVerification, error) {
	row := q.db.QueryRow(ctx, getActiveOtpVerification, arg.Phone, arg.OtpCode)
	return scanOtpVerification(row)
}

const consumeOtpVerification = `
UPDATE otp_verifications
SET verified = TRUE
WHERE id = $1
`

func (q *Queries) ConsumeOtpVerification(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, consumeOtpVerification, id)
	return err
}

func scanOtpVerification(row rowScanner) (OtpVerification, error) {
	var o OtpVerification
	err := row.Scan(
		&o.ID,
		&o.Phone,
		&o.OtpCode,
		&o.ExpiresAt,
		&o.Verified,
		&o.CreatedAt,
	)
	return o, err
}
