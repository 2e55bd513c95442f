package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/otpflow/otpflow/internal/otp/entity"
	"github.com/otpflow/otpflow/internal/pkg/goerror"
)

type ValidateInput struct {
	ID  int64 `validate:"required"`
	Pin int32 `validate:"required"`
}

type ValidateOutput struct {
	OTP entity.OTP
}

// Validate runs one validation attempt through the OTP state machine.
// Failed attempts still consume the counter (except once the ceiling is
// already exceeded) and are persisted without blocking the caller's error.
func (s *Usecase) Validate(ctx context.Context, in ValidateInput) (*ValidateOutput, error) {
	ctx, span := s.startSpan(ctx, "Validate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	otp, err := s.repoDB.GetOTP(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp not found for validation", "otp_id", in.ID)
		return nil, entity.NewFault(entity.FaultNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp", "otp_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	app, err := s.repoDB.GetApplication(ctx, otp.ApplicationID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get application policy",
			"otp_id", in.ID, "application_id", otp.ApplicationID, "error", err)
		return nil, goerror.NewServer(err)
	}

	outcome := entity.EvaluateValidation(*otp, *app, in.Pin, s.clock.Now())
	mutated := otp.Apply(outcome)

	if outcome.Fault != entity.FaultNone {
		slog.WarnContext(ctx, "otp validation failed",
			"otp_id", mutated.ID, "fault", outcome.Fault.String(),
			"status", mutated.Status.String(), "attempt_count", mutated.AttemptCount)

		// the attempt counter and terminal statuses must survive the failed
		// call, but the caller's error does not wait on this write
		s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
			if err := s.repoDB.UpdateOTPState(ctx, mutated.ID, mutated.Status, mutated.AttemptCount); err != nil {
				slog.ErrorContext(ctx, "failed to persist otp state after failed validation",
					"otp_id", mutated.ID, "error", err)
			}
			return nil
		})

		return nil, entity.NewFaultWithOTP(outcome.Fault, mutated)
	}

	if err := s.repoDB.UpdateOTPState(ctx, mutated.ID, mutated.Status, mutated.AttemptCount); err != nil {
		slog.ErrorContext(ctx, "failed to repo update verified otp", "otp_id", mutated.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishOTPVerified(ctx, OTPVerifiedEvent{
			OTPID:        mutated.ID,
			CustomerID:   mutated.CustomerID,
			MSISDN:       mutated.MSISDN,
			AttemptCount: mutated.AttemptCount,
		}); err != nil {
			slog.WarnContext(ctx, "failed to publish otp verified event", "otp_id", mutated.ID, "error", err)
		}
		return nil
	})

	return &ValidateOutput{OTP: mutated}, nil
}
