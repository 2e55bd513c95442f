package db

import (
	"context"

	"github.com/otpflow/otpflow/internal/otp/entity"
)

const otpColumns = `id, customer_id, msisdn, pin, application_id, status, attempt_count, created_on, expires`

func (s *DB) GetOTP(ctx context.Context, id int64) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "GetOTP")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + otpColumns + ` FROM otps WHERE id = $1`

	var otp entity.OTP
	err = s.conn.QueryRow(ctx, query, id).Scan(
		&otp.ID,
		&otp.CustomerID,
		&otp.MSISDN,
		&otp.Pin,
		&otp.ApplicationID,
		&otp.Status,
		&otp.AttemptCount,
		&otp.CreatedOn,
		&otp.Expires,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &otp, nil
}

func (s *DB) GetOTPsByNumber(ctx context.Context, msisdn string) (_ []entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "GetOTPsByNumber")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + otpColumns + ` FROM otps WHERE msisdn = $1 ORDER BY created_on DESC`

	rows, err := s.conn.Query(ctx, query, msisdn)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	otps := make([]entity.OTP, 0)
	for rows.Next() {
		var otp entity.OTP
		if err = rows.Scan(
			&otp.ID,
			&otp.CustomerID,
			&otp.MSISDN,
			&otp.Pin,
			&otp.ApplicationID,
			&otp.Status,
			&otp.AttemptCount,
			&otp.CreatedOn,
			&otp.Expires,
		); err != nil {
			return nil, s.mapError(err)
		}
		otps = append(otps, otp)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return otps, nil
}

func (s *DB) GetApplication(ctx context.Context, id string) (_ *entity.Application, err error) {
	ctx, span := s.startSpan(ctx, "GetApplication")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT id, attempts_allowed FROM applications WHERE id = $1`

	var app entity.Application
	err = s.conn.QueryRow(ctx, query, id).Scan(&app.ID, &app.AttemptsAllowed)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &app, nil
}
