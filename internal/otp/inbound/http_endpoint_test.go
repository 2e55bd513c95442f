package inbound

import (
	"errors"
	"testing"

	"github.com/otpflow/otpflow/internal/otp/entity"
	"github.com/otpflow/otpflow/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFault(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantFields map[string]string
	}{
		{
			name:       "not found",
			err:        entity.NewFault(entity.FaultNotFound),
			wantStatus: 404,
			wantFields: map[string]string{"fault_reason": "NOT_FOUND"},
		},
		{
			name: "invalid pin carries the otp snapshot",
			err: entity.NewFaultWithOTP(entity.FaultInvalidPin, entity.OTP{
				Status:       entity.StatusActive,
				AttemptCount: 2,
			}),
			wantStatus: 422,
			wantFields: map[string]string{
				"fault_reason":  "INVALID_PIN",
				"status":        "ACTIVE",
				"attempt_count": "2",
			},
		},
		{
			name:       "invalid status",
			err:        entity.NewFaultWithOTP(entity.FaultInvalidStatus, entity.OTP{Status: entity.StatusVerified}),
			wantStatus: 409,
		},
		{
			name:       "expired",
			err:        entity.NewFaultWithOTP(entity.FaultExpired, entity.OTP{Status: entity.StatusExpired}),
			wantStatus: 409,
		},
		{
			name:       "too many attempts",
			err:        entity.NewFaultWithOTP(entity.FaultTooManyAttempts, entity.OTP{Status: entity.StatusTooManyAttempts}),
			wantStatus: 429,
		},
		{
			name:       "notification failure",
			err:        entity.NewFaultWithOTP(entity.FaultNotification, entity.OTP{Status: entity.StatusActive}),
			wantStatus: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapFault(tt.err)

			var gerr *goerror.Error
			require.ErrorAs(t, got, &gerr)
			assert.Equal(t, tt.wantStatus, gerr.StatusCode())
			for k, v := range tt.wantFields {
				assert.Equal(t, v, gerr.Fields()[k])
			}
		})
	}

	t.Run("non fault errors pass through untouched", func(t *testing.T) {
		err := goerror.NewServer(errors.New("boom"))
		assert.Same(t, err, mapFault(err))
	})
}
