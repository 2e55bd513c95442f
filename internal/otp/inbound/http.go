package inbound

import (
	"context"

	"github.com/otpflow/otpflow/internal/otp/usecase"
	"github.com/otpflow/otpflow/internal/pkg/router"
)

type uc interface {
	Send(ctx context.Context, in usecase.SendInput) (*usecase.SendOutput, error)
	Validate(ctx context.Context, in usecase.ValidateInput) (*usecase.ValidateOutput, error)
	Resend(ctx context.Context, in usecase.ResendInput) (*usecase.ResendOutput, error)
	Get(ctx context.Context, in usecase.GetInput) (*usecase.GetOutput, error)
	GetAll(ctx context.Context, in usecase.GetAllInput) (*usecase.GetAllOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// OTP lifecycle
	r.POST("/api/v1/otps", end.Send)
	r.POST("/api/v1/otps/:id/validate", end.Validate)
	r.POST("/api/v1/otps/:id/resend", end.Resend)

	// Reads
	r.GET("/api/v1/otps", end.GetAll)
	r.GET("/api/v1/otps/:id", end.Get)
}
