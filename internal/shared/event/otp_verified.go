package event

const OTPVerifiedDestination string = "otp_verified"

type OTPVerifiedMessage struct {
	OTPID        int64  `json:"otp_id"`
	CustomerID   int64  `json:"customer_id"`
	MSISDN       string `json:"msisdn"`
	AttemptCount int32  `json:"attempt_count"`
}
