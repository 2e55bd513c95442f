package event

const OTPIssuedDestination string = "otp_issued"

type OTPIssuedMessage struct {
	OTPID      int64  `json:"otp_id"`
	CustomerID int64  `json:"customer_id"`
	MSISDN     string `json:"msisdn"`
}
