package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateValidation(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	base := OTP{
		ID:            1,
		CustomerID:    77,
		MSISDN:        "+306912345678",
		Pin:           123456,
		ApplicationID: "PPR",
		Status:        StatusActive,
		AttemptCount:  0,
		CreatedOn:     now.Add(-10 * time.Second),
		Expires:       now.Add(50 * time.Second),
	}
	app := Application{ID: "PPR", AttemptsAllowed: 3}

	tests := []struct {
		name string
		otp  func() OTP
		pin  int32
		want ValidationOutcome
	}{
		{
			name: "correct pin on fresh active otp verifies",
			otp:  func() OTP { return base },
			pin:  123456,
			want: ValidationOutcome{Status: StatusVerified, Fault: FaultNone, AttemptDelta: 1},
		},
		{
			name: "wrong pin keeps status and consumes an attempt",
			otp:  func() OTP { return base },
			pin:  654321,
			want: ValidationOutcome{Status: StatusActive, Fault: FaultInvalidPin, AttemptDelta: 1},
		},
		{
			name: "attempt ceiling exceeded wins over everything and does not increment",
			otp: func() OTP {
				o := base
				o.AttemptCount = 4
				o.Pin = 999999 // would otherwise be an invalid pin
				return o
			},
			pin:  123456,
			want: ValidationOutcome{Status: StatusTooManyAttempts, Fault: FaultTooManyAttempts, AttemptDelta: 0},
		},
		{
			name: "attempt count equal to ceiling still evaluates",
			otp: func() OTP {
				o := base
				o.AttemptCount = 3
				return o
			},
			pin:  123456,
			want: ValidationOutcome{Status: StatusVerified, Fault: FaultNone, AttemptDelta: 1},
		},
		{
			name: "non-active status beats expiry check",
			otp: func() OTP {
				o := base
				o.Status = StatusVerified
				o.Expires = now.Add(-time.Minute)
				return o
			},
			pin:  123456,
			want: ValidationOutcome{Status: StatusVerified, Fault: FaultInvalidStatus, AttemptDelta: 1},
		},
		{
			name: "expired otp with correct pin moves to expired",
			otp: func() OTP {
				o := base
				o.Expires = now.Add(-time.Second)
				return o
			},
			pin:  123456,
			want: ValidationOutcome{Status: StatusExpired, Fault: FaultExpired, AttemptDelta: 1},
		},
		{
			name: "wrong pin on expired otp reports invalid pin first",
			otp: func() OTP {
				o := base
				o.Expires = now.Add(-time.Second)
				return o
			},
			pin:  111111,
			want: ValidationOutcome{Status: StatusActive, Fault: FaultInvalidPin, AttemptDelta: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateValidation(tt.otp(), app, tt.pin, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOTPApply(t *testing.T) {
	otp := OTP{Status: StatusActive, AttemptCount: 2}

	got := otp.Apply(ValidationOutcome{Status: StatusVerified, Fault: FaultNone, AttemptDelta: 1})

	assert.Equal(t, StatusVerified, got.Status)
	assert.Equal(t, int32(3), got.AttemptCount)
	assert.Equal(t, StatusActive, otp.Status, "receiver must not be mutated")
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusUnknown:         "UNKNOWN",
		StatusActive:          "ACTIVE",
		StatusVerified:        "VERIFIED",
		StatusExpired:         "EXPIRED",
		StatusTooManyAttempts: "TOO_MANY_ATTEMPTS",
	}

	for status, want := range tests {
		assert.Equal(t, want, status.String())
	}
}

func TestFaultError(t *testing.T) {
	f := NewFaultWithOTP(FaultInvalidPin, OTP{ID: 9})

	assert.Equal(t, "Invalid pin", f.Error())
	assert.Equal(t, int64(9), f.OTP.ID)
	assert.Nil(t, NewFault(FaultNotFound).OTP)
}
