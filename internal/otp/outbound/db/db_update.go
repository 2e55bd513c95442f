package db

import (
	"context"

	"github.com/otpflow/otpflow/internal/otp/entity"
	"github.com/otpflow/otpflow/internal/pkg/goerror"
)

func (s *DB) UpdateOTPState(ctx context.Context, id int64, status entity.Status, attemptCount int32) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateOTPState")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE otps SET status = $2, attempt_count = $3 WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id, status, attemptCount)
	if err != nil {
		return s.mapError(err)
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
