package db

import (
	"context"

	"github.com/otpflow/otpflow/internal/otp/entity"
)

func (s *DB) CreateOTP(ctx context.Context, otp entity.OTP) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "CreateOTP")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO otps (id, customer_id, msisdn, pin, application_id, status, attempt_count, created_on, expires)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + otpColumns

	var saved entity.OTP
	err = s.conn.QueryRow(ctx, query,
		otp.ID,
		otp.CustomerID,
		otp.MSISDN,
		otp.Pin,
		otp.ApplicationID,
		otp.Status,
		otp.AttemptCount,
		otp.CreatedOn,
		otp.Expires,
	).Scan(
		&saved.ID,
		&saved.CustomerID,
		&saved.MSISDN,
		&saved.Pin,
		&saved.ApplicationID,
		&saved.Status,
		&saved.AttemptCount,
		&saved.CreatedOn,
		&saved.Expires,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &saved, nil
}
