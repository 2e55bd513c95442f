package entity

// Status is the lifecycle state of an OTP.
type Status int16

const (
	// StatusUnknown is mean status is not known / not set.
	StatusUnknown Status = 0

	// StatusActive mean the OTP can still be validated or resent.
	StatusActive Status = 1

	// StatusVerified mean the OTP was validated successfully (terminal).
	StatusVerified Status = 2

	// StatusExpired mean the validity window passed before verification (terminal).
	StatusExpired Status = 3

	// StatusTooManyAttempts mean the attempt ceiling was exceeded (terminal).
	StatusTooManyAttempts Status = 4
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "ACTIVE"
	case StatusVerified:
		return "VERIFIED"
	case StatusExpired:
		return "EXPIRED"
	case StatusTooManyAttempts:
		return "TOO_MANY_ATTEMPTS"
	default:
		return "UNKNOWN"
	}
}

// Channel identifies a notification delivery channel.
type Channel string

const (
	ChannelAuto  Channel = "AUTO"
	ChannelSMS   Channel = "SMS"
	ChannelEmail Channel = "EMAIL"
	ChannelViber Channel = "VIBER"
)

// FaultReason classifies why an OTP operation failed, distinct from raw
// transport or storage errors.
type FaultReason int16

const (
	FaultNone FaultReason = iota
	FaultCustomerError
	FaultNumberInformationError
	FaultNotFound
	FaultTooManyAttempts
	FaultInvalidPin
	FaultInvalidStatus
	FaultExpired
	FaultNotification
)

func (f FaultReason) String() string {
	switch f {
	case FaultCustomerError:
		return "CUSTOMER_ERROR"
	case FaultNumberInformationError:
		return "NUMBER_INFORMATION_ERROR"
	case FaultNotFound:
		return "NOT_FOUND"
	case FaultTooManyAttempts:
		return "TOO_MANY_ATTEMPTS"
	case FaultInvalidPin:
		return "INVALID_PIN"
	case FaultInvalidStatus:
		return "INVALID_STATUS"
	case FaultExpired:
		return "EXPIRED"
	case FaultNotification:
		return "NOTIFICATION_ERROR"
	default:
		return "NONE"
	}
}

// Message returns the human-readable description for the fault reason.
func (f FaultReason) Message() string {
	switch f {
	case FaultCustomerError:
		return "Customer lookup failed"
	case FaultNumberInformationError:
		return "Number information lookup failed"
	case FaultNotFound:
		return "Otp not found"
	case FaultTooManyAttempts:
		return "Too many validation attempts"
	case FaultInvalidPin:
		return "Invalid pin"
	case FaultInvalidStatus:
		return "Otp is not active"
	case FaultExpired:
		return "Otp has expired"
	case FaultNotification:
		return "Notification dispatch failed"
	default:
		return "No fault"
	}
}
