package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/otpflow/otpflow/internal/otp/entity"
	"github.com/otpflow/otpflow/internal/pkg/goerror"
)

type GetInput struct {
	ID int64 `validate:"required"`
}

type GetOutput struct {
	OTP entity.OTP
}

func (s *Usecase) Get(ctx context.Context, in GetInput) (*GetOutput, error) {
	ctx, span := s.startSpan(ctx, "Get")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	otp, err := s.repoDB.GetOTP(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, entity.NewFault(entity.FaultNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp", "otp_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &GetOutput{OTP: *otp}, nil
}

type GetAllInput struct {
	MSISDN string `validate:"required,e164"`
}

type GetAllOutput struct {
	OTPs []entity.OTP
}

// GetAll returns every otp issued for a number; absence is a NOT_FOUND
// fault, never an empty success.
func (s *Usecase) GetAll(ctx context.Context, in GetAllInput) (*GetAllOutput, error) {
	ctx, span := s.startSpan(ctx, "GetAll")
	defer span.End()

	in.MSISDN = strings.TrimSpace(in.MSISDN)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	otps, err := s.repoDB.GetOTPsByNumber(ctx, in.MSISDN)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get otps by number", "msisdn", in.MSISDN, "error", err)
		return nil, goerror.NewServer(err)
	}

	if len(otps) == 0 {
		return nil, entity.NewFault(entity.FaultNotFound)
	}

	return &GetAllOutput{OTPs: otps}, nil
}
