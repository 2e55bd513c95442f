package inbound

import (
	"errors"
	"strconv"

	"github.com/otpflow/otpflow/internal/otp/entity"
	"github.com/otpflow/otpflow/internal/otp/usecase"
	"github.com/otpflow/otpflow/internal/pkg/goerror"
	"github.com/otpflow/otpflow/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the OTP lifecycle.
type HTTPEndpoint struct {
	uc uc
}

// mapFault rewraps domain faults into the transport error taxonomy. Validation
// faults additionally expose the otp snapshot state in the error fields.
func mapFault(err error) error {
	var fault *entity.Fault
	if !errors.As(err, &fault) {
		return err
	}

	var code goerror.Code
	switch fault.Reason {
	case entity.FaultNotFound:
		code = goerror.CodeNotFound
	case entity.FaultInvalidPin:
		code = goerror.CodeInvalidInput
	case entity.FaultInvalidStatus, entity.FaultExpired:
		code = goerror.CodeConflict
	case entity.FaultTooManyAttempts:
		code = goerror.CodeTooManyRequest
	default:
		code = goerror.CodeInternal
	}

	kv := []string{"fault_reason", fault.Reason.String()}
	if fault.OTP != nil {
		kv = append(kv,
			"status", fault.OTP.Status.String(),
			"attempt_count", strconv.Itoa(int(fault.OTP.AttemptCount)),
		)
	}

	return goerror.NewBusinessWithFields(fault.Reason.Message(), code, kv...)
}

// Send issues a new OTP for a phone number.
// @Summary Issue OTP
// @Description Resolves the customer and number information, persists a new ACTIVE OTP and dispatches its pin.
// @Tags OTP
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Optional issuance idempotency key"
// @Param request body SendRequest true "Issuance payload"
// @Success 201 {object} router.successResponse{data=OTPResponse} "Persisted OTP"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Duplicate idempotency key"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Collaborator or storage failure"
// @Router /api/v1/otps [post]
func (h *HTTPEndpoint) Send(r *router.Request) (any, error) {
	var req SendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Send(r.Context(), usecase.SendInput{
		MSISDN:         req.MSISDN,
		IdempotencyKey: r.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		return nil, mapFault(err)
	}

	return SendResponse{OTPResponse: newOTPResponse(resp.OTP)}, nil
}

// Validate runs one validation attempt against a stored OTP.
// @Summary Validate OTP
// @Description Checks the submitted pin against the stored OTP and advances its state machine.
// @Tags OTP
// @Accept json
// @Produce json
// @Param id path string true "OTP id"
// @Param request body ValidateRequest true "Validation payload"
// @Success 200 {object} router.successResponse{data=OTPResponse} "Verified OTP"
// @Failure 404 {object} router.errorResponse "OTP not found"
// @Failure 409 {object} router.errorResponse "OTP not active or expired"
// @Failure 422 {object} router.errorResponse "Invalid pin"
// @Failure 429 {object} router.errorResponse "Attempt ceiling exceeded"
// @Router /api/v1/otps/{id}/validate [post]
func (h *HTTPEndpoint) Validate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req ValidateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Validate(r.Context(), usecase.ValidateInput{ID: id, Pin: req.Pin})
	if err != nil {
		return nil, mapFault(err)
	}

	return ValidateResponse{OTPResponse: newOTPResponse(resp.OTP)}, nil
}

// Resend re-delivers the stored pin over the requested channels.
// @Summary Resend OTP
// @Description Dispatches the existing pin over each requested channel without touching the OTP state.
// @Tags OTP
// @Accept json
// @Produce json
// @Param id path string true "OTP id"
// @Param request body ResendRequest true "Resend payload"
// @Success 200 {object} router.successResponse{data=OTPResponse} "OTP unchanged"
// @Failure 404 {object} router.errorResponse "OTP not found"
// @Failure 409 {object} router.errorResponse "OTP not active"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/otps/{id}/resend [post]
func (h *HTTPEndpoint) Resend(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req ResendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Resend(r.Context(), usecase.ResendInput{
		ID:       id,
		Channels: req.Channels,
		Mail:     req.Mail,
	})
	if err != nil {
		return nil, mapFault(err)
	}

	return ResendResponse{OTPResponse: newOTPResponse(resp.OTP)}, nil
}

// Get fetches one OTP by id.
// @Summary Get OTP
// @Tags OTP
// @Produce json
// @Param id path string true "OTP id"
// @Success 200 {object} router.successResponse{data=OTPResponse}
// @Failure 404 {object} router.errorResponse "OTP not found"
// @Router /api/v1/otps/{id} [get]
func (h *HTTPEndpoint) Get(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Get(r.Context(), usecase.GetInput{ID: id})
	if err != nil {
		return nil, mapFault(err)
	}

	return newOTPResponse(resp.OTP), nil
}

// GetAll fetches every OTP issued for a phone number.
// @Summary List OTPs by number
// @Tags OTP
// @Produce json
// @Param number query string true "Phone number in E.164 form"
// @Success 200 {object} router.successResponse{data=[]OTPResponse}
// @Failure 404 {object} router.errorResponse "No OTPs for this number"
// @Router /api/v1/otps [get]
func (h *HTTPEndpoint) GetAll(r *router.Request) (any, error) {
	resp, err := h.uc.GetAll(r.Context(), usecase.GetAllInput{MSISDN: r.GetQuery("number")})
	if err != nil {
		return nil, mapFault(err)
	}

	return newOTPListResponse(resp.OTPs), nil
}
