package entity

// Fault is a classified operation failure. Validation faults carry the
// mutated OTP snapshot so callers can observe the attempted transition;
// NOT_FOUND never carries one.
type Fault struct {
	Reason FaultReason
	OTP    *OTP
}

// NewFault creates a fault without an OTP snapshot.
func NewFault(reason FaultReason) *Fault {
	return &Fault{Reason: reason}
}

// NewFaultWithOTP creates a fault carrying the OTP state at failure time.
func NewFaultWithOTP(reason FaultReason, otp OTP) *Fault {
	return &Fault{Reason: reason, OTP: &otp}
}

func (f *Fault) Error() string {
	return f.Reason.Message()
}
