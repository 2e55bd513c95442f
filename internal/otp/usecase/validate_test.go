package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/otpflow/otpflow/internal/otp/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOTP(env *testEnv, mutate func(*entity.OTP)) entity.OTP {
	otp := entity.OTP{
		ID:            7,
		CustomerID:    42,
		MSISDN:        "+306912345678",
		Pin:           123456,
		ApplicationID: "PPR",
		Status:        entity.StatusActive,
		AttemptCount:  0,
		CreatedOn:     testNow.Add(-10 * time.Second),
		Expires:       testNow.Add(50 * time.Second),
	}
	if mutate != nil {
		mutate(&otp)
	}
	env.db.otps[otp.ID] = otp
	return otp
}

func TestValidate(t *testing.T) {
	t.Run("correct pin verifies and persists the attempt", func(t *testing.T) {
		env := newTestEnv(t)
		seedOTP(env, nil)

		out, err := env.uc.Validate(context.Background(), ValidateInput{ID: 7, Pin: 123456})
		require.NoError(t, err)

		assert.Equal(t, entity.StatusVerified, out.OTP.Status)
		assert.Equal(t, int32(1), out.OTP.AttemptCount)

		stored := env.db.otps[7]
		assert.Equal(t, entity.StatusVerified, stored.Status)
		assert.Equal(t, int32(1), stored.AttemptCount)

		env.flush()
		require.Len(t, env.msg.verified, 1)
		assert.Equal(t, int64(7), env.msg.verified[0].OTPID)
		assert.Equal(t, int32(1), env.msg.verified[0].AttemptCount)
	})

	t.Run("wrong pin faults but still consumes the attempt", func(t *testing.T) {
		env := newTestEnv(t)
		seedOTP(env, nil)

		_, err := env.uc.Validate(context.Background(), ValidateInput{ID: 7, Pin: 999999})

		var fault *entity.Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, entity.FaultInvalidPin, fault.Reason)
		require.NotNil(t, fault.OTP)
		assert.Equal(t, entity.StatusActive, fault.OTP.Status)
		assert.Equal(t, int32(1), fault.OTP.AttemptCount)

		env.flush()
		stored := env.db.otps[7]
		assert.Equal(t, int32(1), stored.AttemptCount)
		assert.Empty(t, env.msg.verified)
	})

	t.Run("attempts over the ceiling fault without consuming another attempt", func(t *testing.T) {
		env := newTestEnv(t)
		seedOTP(env, func(o *entity.OTP) { o.AttemptCount = 4 })

		_, err := env.uc.Validate(context.Background(), ValidateInput{ID: 7, Pin: 123456})

		var fault *entity.Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, entity.FaultTooManyAttempts, fault.Reason)
		assert.Equal(t, int32(4), fault.OTP.AttemptCount)

		env.flush()
		assert.Equal(t, entity.StatusTooManyAttempts, env.db.otps[7].Status)
		assert.Equal(t, int32(4), env.db.otps[7].AttemptCount)
	})

	t.Run("expired otp faults with the right pin", func(t *testing.T) {
		env := newTestEnv(t)
		seedOTP(env, func(o *entity.OTP) { o.Expires = testNow.Add(-time.Second) })

		_, err := env.uc.Validate(context.Background(), ValidateInput{ID: 7, Pin: 123456})

		var fault *entity.Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, entity.FaultExpired, fault.Reason)

		env.flush()
		assert.Equal(t, entity.StatusExpired, env.db.otps[7].Status)
		assert.Equal(t, int32(1), env.db.otps[7].AttemptCount)
	})

	t.Run("already verified otp faults even with the right pin", func(t *testing.T) {
		env := newTestEnv(t)
		seedOTP(env, func(o *entity.OTP) { o.Status = entity.StatusVerified })

		_, err := env.uc.Validate(context.Background(), ValidateInput{ID: 7, Pin: 123456})

		var fault *entity.Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, entity.FaultInvalidStatus, fault.Reason)
	})

	t.Run("unknown otp faults as not found without any writes", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.uc.Validate(context.Background(), ValidateInput{ID: 404, Pin: 123456})

		var fault *entity.Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, entity.FaultNotFound, fault.Reason)
		assert.Nil(t, fault.OTP)

		env.flush()
		assert.Zero(t, env.db.updateCount())
	})
}
