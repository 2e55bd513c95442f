package usecase

import (
	"context"
	"testing"

	"github.com/otpflow/otpflow/internal/otp/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	t.Run("returns the stored otp", func(t *testing.T) {
		env := newTestEnv(t)
		want := seedOTP(env, nil)

		out, err := env.uc.Get(context.Background(), GetInput{ID: 7})
		require.NoError(t, err)

		assert.Equal(t, want, out.OTP)
	})

	t.Run("unknown id faults as not found", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.uc.Get(context.Background(), GetInput{ID: 404})

		var fault *entity.Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, entity.FaultNotFound, fault.Reason)
	})
}

func TestGetAll(t *testing.T) {
	t.Run("returns every otp issued for the number", func(t *testing.T) {
		env := newTestEnv(t)
		seedOTP(env, nil)
		seedOTP(env, func(o *entity.OTP) {
			o.ID = 8
			o.Status = entity.StatusVerified
		})
		seedOTP(env, func(o *entity.OTP) {
			o.ID = 9
			o.MSISDN = "+306900000000"
		})

		out, err := env.uc.GetAll(context.Background(), GetAllInput{MSISDN: "+306912345678"})
		require.NoError(t, err)

		assert.Len(t, out.OTPs, 2)
	})

	t.Run("number without otps faults as not found", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.uc.GetAll(context.Background(), GetAllInput{MSISDN: "+306912345678"})

		var fault *entity.Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, entity.FaultNotFound, fault.Reason)
	})
}
