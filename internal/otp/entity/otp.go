package entity

import "time"

// OTP is a one-time passcode issued against a phone number. It is created
// only by issuance, mutated only by validation, and never deleted; expiry
// and attempt exhaustion are terminal statuses, not removals.
type OTP struct {
	ID            int64
	CustomerID    int64
	MSISDN        string
	Pin           int32
	ApplicationID string
	Status        Status
	AttemptCount  int32
	CreatedOn     time.Time
	Expires       time.Time
}

// Expired reports whether the validity window has passed at the given time.
func (o OTP) Expired(now time.Time) bool {
	return o.Expires.Before(now)
}

// Application holds the validation policy that governs OTPs issued under it.
type Application struct {
	ID              string
	AttemptsAllowed int32
}

// ValidationOutcome is the result of evaluating a validation attempt:
// the status the OTP moves to, the fault reason (FaultNone on success),
// and how much the attempt counter advances.
type ValidationOutcome struct {
	Status       Status
	Fault        FaultReason
	AttemptDelta int32
}

// EvaluateValidation computes the outcome of a validation attempt as a pure
// function of the OTP, the owning application's policy, the submitted pin,
// and the current time. Rules apply in strict priority order; every branch
// except the exhausted-attempts one consumes an attempt, including success.
func EvaluateValidation(otp OTP, app Application, pin int32, now time.Time) ValidationOutcome {
	if otp.AttemptCount > app.AttemptsAllowed {
		return ValidationOutcome{Status: StatusTooManyAttempts, Fault: FaultTooManyAttempts, AttemptDelta: 0}
	}

	if otp.Pin != pin {
		return ValidationOutcome{Status: otp.Status, Fault: FaultInvalidPin, AttemptDelta: 1}
	}

	if otp.Status != StatusActive {
		return ValidationOutcome{Status: otp.Status, Fault: FaultInvalidStatus, AttemptDelta: 1}
	}

	if otp.Expired(now) {
		return ValidationOutcome{Status: StatusExpired, Fault: FaultExpired, AttemptDelta: 1}
	}

	return ValidationOutcome{Status: StatusVerified, Fault: FaultNone, AttemptDelta: 1}
}

// Apply returns a copy of the OTP with the outcome's mutation applied.
func (o OTP) Apply(out ValidationOutcome) OTP {
	o.Status = out.Status
	o.AttemptCount += out.AttemptDelta
	return o
}
