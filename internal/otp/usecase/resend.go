package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/otpflow/otpflow/internal/otp/entity"
	"github.com/otpflow/otpflow/internal/pkg/goerror"
	"github.com/otpflow/otpflow/internal/pkg/goroutine"
	"github.com/samber/lo"
)

type ResendInput struct {
	ID       int64    `validate:"required"`
	Channels []string `validate:"required,min=1"`
	Mail     string   `validate:"omitempty,email"`
}

type ResendOutput struct {
	OTP entity.OTP
}

// Resend re-delivers the stored pin of an ACTIVE otp over each requested
// channel. Dispatches run concurrently and individual failures are swallowed;
// the call fails only when every channel failed. The otp itself is untouched.
func (s *Usecase) Resend(ctx context.Context, in ResendInput) (*ResendOutput, error) {
	ctx, span := s.startSpan(ctx, "Resend")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	channels := lo.FilterMap(in.Channels, func(raw string, _ int) (entity.Channel, bool) {
		c := strings.ToUpper(strings.TrimSpace(raw))
		return entity.Channel(c), c != ""
	})
	if len(channels) == 0 {
		return nil, goerror.NewInvalidInput(nil, "channels", "must contain at least one channel")
	}
	if lo.Contains(channels, entity.ChannelEmail) && in.Mail == "" {
		return nil, goerror.NewInvalidInput(nil, "mail", "required when the EMAIL channel is requested")
	}

	otp, err := s.repoDB.GetOTP(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp not found for resend", "otp_id", in.ID)
		return nil, entity.NewFault(entity.FaultNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp", "otp_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if otp.Status != entity.StatusActive {
		slog.WarnContext(ctx, "otp is not active for resend", "otp_id", otp.ID, "status", otp.Status.String())
		return nil, entity.NewFaultWithOTP(entity.FaultInvalidStatus, *otp)
	}

	// a slot no worker reached (canceled context, exhausted manager) must
	// count as a failed delivery, not a silent success
	errSkipped := errors.New("dispatch not attempted")
	results := make([]error, len(channels))
	for i := range results {
		results[i] = errSkipped
	}

	mgr := goroutine.NewManager(len(channels))
	for i, ch := range channels {
		mgr.Go(ctx, func(ctx context.Context) error {
			destination := otp.MSISDN
			if ch == entity.ChannelEmail {
				destination = in.Mail
			}

			res, err := s.notifier.Dispatch(ctx, ch, destination, strconv.Itoa(int(otp.Pin)))
			if err != nil {
				slog.WarnContext(ctx, "failed to resend otp notification",
					"otp_id", otp.ID, "channel", string(ch), "error", err)
				results[i] = err
				return nil
			}
			results[i] = nil

			slog.InfoContext(ctx, "otp notification resent",
				"otp_id", otp.ID, "channel", string(ch), "delivery_id", res.ID, "delivery_status", res.Status)
			return nil
		})
	}
	//nolint:errcheck // workers report through results, never through errors
	mgr.Wait()

	failed := lo.CountBy(results, func(err error) bool { return err != nil })
	if failed == len(channels) {
		return nil, entity.NewFaultWithOTP(entity.FaultNotification, *otp)
	}

	return &ResendOutput{OTP: *otp}, nil
}
