package usecase

import (
	"context"

	"github.com/otpflow/otpflow/internal/otp/entity"
	"github.com/otpflow/otpflow/internal/pkg/clock"
	"github.com/otpflow/otpflow/internal/pkg/config"
	"github.com/otpflow/otpflow/internal/pkg/goroutine"
	"github.com/otpflow/otpflow/internal/pkg/idempotency"
	"github.com/otpflow/otpflow/internal/pkg/instrument"
	"github.com/otpflow/otpflow/internal/pkg/pin"
	"github.com/otpflow/otpflow/internal/pkg/uid"
	"github.com/otpflow/otpflow/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type OTPIssuedEvent struct {
	OTPID      int64
	CustomerID int64
	MSISDN     string
}

type OTPVerifiedEvent struct {
	OTPID        int64
	CustomerID   int64
	MSISDN       string
	AttemptCount int32
}

// DeliveryResult is the notification dispatcher's report for one dispatch.
type DeliveryResult struct {
	ID     string
	Status string
}

type repoMessaging interface {
	PublishOTPIssued(ctx context.Context, msg OTPIssuedEvent) error
	PublishOTPVerified(ctx context.Context, msg OTPVerifiedEvent) error
}

type repoDB interface {
	GetOTP(ctx context.Context, id int64) (*entity.OTP, error)
	GetOTPsByNumber(ctx context.Context, msisdn string) ([]entity.OTP, error)
	GetApplication(ctx context.Context, id string) (*entity.Application, error)

	CreateOTP(ctx context.Context, otp entity.OTP) (*entity.OTP, error)
	UpdateOTPState(ctx context.Context, id int64, status entity.Status, attemptCount int32) error
}

type customerLookup interface {
	AccountID(ctx context.Context, msisdn string) (int64, error)
}

type numberInformation interface {
	Status(ctx context.Context, msisdn string) (string, error)
}

type notificationDispatcher interface {
	Dispatch(ctx context.Context, channel entity.Channel, destination, message string) (*DeliveryResult, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	customer      customerLookup
	numberInfo    numberInformation
	notifier      notificationDispatcher
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	uid           uid.NumberID
	pin           pin.Generator
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Customer      customerLookup
	NumberInfo    numberInformation
	Notifier      notificationDispatcher
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	UID           uid.NumberID
	Pin           pin.Generator
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		customer:      dep.Customer,
		numberInfo:    dep.NumberInfo,
		notifier:      dep.Notifier,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		uid:           dep.UID,
		pin:           dep.Pin,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("otp.usecase").Start(ctx, name)
}
