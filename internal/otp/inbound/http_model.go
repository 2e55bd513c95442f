package inbound

import (
	"net/http"
	"strconv"
	"time"

	"github.com/otpflow/otpflow/internal/otp/entity"
	"github.com/samber/lo"
)

type SendRequest struct {
	MSISDN string `json:"msisdn"`
}

type ValidateRequest struct {
	Pin int32 `json:"pin"`
}

type ResendRequest struct {
	Channels []string `json:"channels"`
	Mail     string   `json:"mail"`
}

// OTPResponse is the wire shape of an OTP. Identifiers are rendered as
// strings so snowflake ids survive JSON number precision; the pin is never
// exposed.
type OTPResponse struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customer_id"`
	MSISDN        string    `json:"msisdn"`
	ApplicationID string    `json:"application_id"`
	Status        string    `json:"status"`
	AttemptCount  int32     `json:"attempt_count"`
	CreatedOn     time.Time `json:"created_on"`
	Expires       time.Time `json:"expires"`
}

func newOTPResponse(otp entity.OTP) OTPResponse {
	return OTPResponse{
		ID:            strconv.FormatInt(otp.ID, 10),
		CustomerID:    strconv.FormatInt(otp.CustomerID, 10),
		MSISDN:        otp.MSISDN,
		ApplicationID: otp.ApplicationID,
		Status:        otp.Status.String(),
		AttemptCount:  otp.AttemptCount,
		CreatedOn:     otp.CreatedOn,
		Expires:       otp.Expires,
	}
}

func newOTPListResponse(otps []entity.OTP) []OTPResponse {
	return lo.Map(otps, func(otp entity.OTP, _ int) OTPResponse {
		return newOTPResponse(otp)
	})
}

type SendResponse struct {
	OTPResponse
}

func (SendResponse) Message() string {
	return "Otp has been issued"
}

func (SendResponse) StatusCode() int {
	return http.StatusCreated
}

type ValidateResponse struct {
	OTPResponse
}

func (ValidateResponse) Message() string {
	return "Otp has been verified"
}

type ResendResponse struct {
	OTPResponse
}

func (ResendResponse) Message() string {
	return "Otp has been resent"
}
