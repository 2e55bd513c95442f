package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/otpflow/otpflow/internal/otp/entity"
	"github.com/otpflow/otpflow/internal/pkg/goerror"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResend(t *testing.T) {
	t.Run("dispatches to every requested channel", func(t *testing.T) {
		env := newTestEnv(t)
		seedOTP(env, nil)

		out, err := env.uc.Resend(context.Background(), ResendInput{
			ID:       7,
			Channels: []string{"sms", " EMAIL "},
			Mail:     "user@example.com",
		})
		require.NoError(t, err)

		assert.Equal(t, entity.StatusActive, out.OTP.Status)
		assert.Equal(t, int32(0), out.OTP.AttemptCount)

		sent := env.notifier.sent()
		require.Len(t, sent, 2)
		destinations := lo.Map(sent, func(d dispatch, _ int) string { return d.Destination })
		assert.ElementsMatch(t, []string{"+306912345678", "user@example.com"}, destinations)
		for _, d := range sent {
			assert.Equal(t, "123456", d.Message)
		}
	})

	t.Run("one failed channel is still a success", func(t *testing.T) {
		env := newTestEnv(t)
		seedOTP(env, nil)
		env.notifier.errByChan = map[entity.Channel]error{entity.ChannelViber: errors.New("viber down")}

		out, err := env.uc.Resend(context.Background(), ResendInput{
			ID:       7,
			Channels: []string{"SMS", "VIBER"},
		})
		require.NoError(t, err)

		assert.Equal(t, entity.StatusActive, out.OTP.Status)
		sent := env.notifier.sent()
		require.Len(t, sent, 1)
		assert.Equal(t, entity.ChannelSMS, sent[0].Channel)
	})

	t.Run("every channel failing is a notification fault", func(t *testing.T) {
		env := newTestEnv(t)
		seedOTP(env, nil)
		env.notifier.err = errors.New("provider outage")

		_, err := env.uc.Resend(context.Background(), ResendInput{
			ID:       7,
			Channels: []string{"SMS", "VIBER"},
		})

		var fault *entity.Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, entity.FaultNotification, fault.Reason)
	})

	t.Run("canceled context counts undispatched channels as failures", func(t *testing.T) {
		env := newTestEnv(t)
		seedOTP(env, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := env.uc.Resend(ctx, ResendInput{ID: 7, Channels: []string{"SMS", "VIBER"}})

		var fault *entity.Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, entity.FaultNotification, fault.Reason)
		assert.Empty(t, env.notifier.sent())
	})

	t.Run("non active otp faults before any dispatch", func(t *testing.T) {
		env := newTestEnv(t)
		seedOTP(env, func(o *entity.OTP) { o.Status = entity.StatusVerified })

		_, err := env.uc.Resend(context.Background(), ResendInput{ID: 7, Channels: []string{"SMS"}})

		var fault *entity.Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, entity.FaultInvalidStatus, fault.Reason)
		assert.Empty(t, env.notifier.sent())
	})

	t.Run("unknown otp faults as not found", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.uc.Resend(context.Background(), ResendInput{ID: 404, Channels: []string{"SMS"}})

		var fault *entity.Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, entity.FaultNotFound, fault.Reason)
	})

	t.Run("email channel without a mail address is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		seedOTP(env, nil)

		_, err := env.uc.Resend(context.Background(), ResendInput{ID: 7, Channels: []string{"EMAIL"}})

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
		assert.Empty(t, env.notifier.sent())
	})

	t.Run("blank channels are rejected", func(t *testing.T) {
		env := newTestEnv(t)
		seedOTP(env, nil)

		_, err := env.uc.Resend(context.Background(), ResendInput{ID: 7, Channels: []string{"  ", ""}})

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
	})
}
