package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/otpflow/otpflow/internal/otp/entity"
	"github.com/otpflow/otpflow/internal/pkg/goerror"
	"github.com/otpflow/otpflow/internal/pkg/idempotency"
	"golang.org/x/sync/errgroup"
)

type SendInput struct {
	MSISDN         string `validate:"required,e164"`
	IdempotencyKey string `validate:"omitempty,max=128"`
}

type SendOutput struct {
	OTP entity.OTP
}

// Send issues a new OTP for the given number: both collaborator lookups must
// succeed, then the record is persisted and the pin is dispatched on the
// default channel. The persisted record is returned even when delivery fails.
func (s *Usecase) Send(ctx context.Context, in SendInput) (*SendOutput, error) {
	ctx, span := s.startSpan(ctx, "Send")
	defer span.End()

	in.MSISDN = strings.TrimSpace(in.MSISDN)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.IdempotencyKey == "" {
		return s.send(ctx, in.MSISDN)
	}

	var out *SendOutput
	err := s.idemp.Exec(ctx, "otp:send:"+in.IdempotencyKey, func(ctx context.Context) error {
		res, err := s.send(ctx, in.MSISDN)
		if err != nil {
			return err
		}
		out = res
		return nil
	},
		idempotency.WithLockDuration(s.cfg.GetSecond("modules.otp.idempotency_lock_seconds")),
		idempotency.WithStateTTL(s.cfg.GetMinute("modules.otp.idempotency_state_ttl_minutes")),
	)
	switch {
	case err == nil:
		return out, nil

	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		return nil, goerror.NewBusiness("Otp issuance already in progress for this key", goerror.CodeConflict)

	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		return nil, goerror.NewBusiness("Otp issuance already completed for this key", goerror.CodeConflict)

	case errors.Is(err, idempotency.ErrAlreadyFailed):
		return nil, goerror.NewBusiness("Otp issuance previously failed for this key", goerror.CodeConflict)
	}

	var fault *entity.Fault
	var gerr *goerror.Error
	if errors.As(err, &fault) || errors.As(err, &gerr) {
		return nil, err
	}

	slog.ErrorContext(ctx, "failed to guard otp issuance with idempotency key", "error", err)
	return nil, goerror.NewServer(err)
}

func (s *Usecase) send(ctx context.Context, msisdn string) (*SendOutput, error) {
	var accountID int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		id, err := s.customer.AccountID(gctx, msisdn)
		if err != nil {
			slog.WarnContext(ctx, "customer lookup failed", "msisdn", msisdn, "error", err)
			return entity.NewFault(entity.FaultCustomerError)
		}
		accountID = id
		return nil
	})
	g.Go(func() error {
		status, err := s.numberInfo.Status(gctx, msisdn)
		if err != nil {
			slog.WarnContext(ctx, "number information lookup failed", "msisdn", msisdn, "error", err)
			return entity.NewFault(entity.FaultNumberInformationError)
		}
		slog.InfoContext(ctx, "number information resolved", "msisdn", msisdn, "status", status)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	record := entity.OTP{
		ID:            s.uid.Generate(),
		CustomerID:    accountID,
		MSISDN:        msisdn,
		Pin:           s.pin.Generate(),
		ApplicationID: s.cfg.GetString("modules.otp.application_id"),
		Status:        entity.StatusActive,
		AttemptCount:  0,
		CreatedOn:     now,
		Expires:       now.Add(s.cfg.GetSecond("modules.otp.pin_ttl_seconds")),
	}

	var saved *entity.OTP
	var wg errgroup.Group
	wg.Go(func() error {
		res, err := s.repoDB.CreateOTP(ctx, record)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo create otp", "msisdn", msisdn, "error", err)
			return goerror.NewServer(err)
		}
		saved = res
		return nil
	})
	wg.Go(func() error {
		channel := entity.Channel(s.cfg.GetString("modules.otp.default_channel"))
		res, err := s.notifier.Dispatch(ctx, channel, msisdn, strconv.Itoa(int(record.Pin)))
		if err != nil {
			// the otp must exist to be validated even when the user has to be
			// reached through another channel, so delivery failure is not surfaced
			slog.WarnContext(ctx, "failed to dispatch otp notification", "otp_id", record.ID, "channel", string(channel), "error", err)
			return nil
		}
		slog.InfoContext(ctx, "otp notification dispatched",
			"otp_id", record.ID, "channel", string(channel), "delivery_id", res.ID, "delivery_status", res.Status)
		return nil
	})
	if err := wg.Wait(); err != nil {
		return nil, err
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishOTPIssued(ctx, OTPIssuedEvent{
			OTPID:      saved.ID,
			CustomerID: saved.CustomerID,
			MSISDN:     saved.MSISDN,
		}); err != nil {
			slog.WarnContext(ctx, "failed to publish otp issued event", "otp_id", saved.ID, "error", err)
		}
		return nil
	})

	return &SendOutput{OTP: *saved}, nil
}
