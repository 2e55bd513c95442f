package otp

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/otpflow/otpflow/internal/otp/inbound"
	"github.com/otpflow/otpflow/internal/otp/outbound/db"
	"github.com/otpflow/otpflow/internal/otp/outbound/mq"
	"github.com/otpflow/otpflow/internal/otp/outbound/rest"
	"github.com/otpflow/otpflow/internal/otp/usecase"
	"github.com/otpflow/otpflow/internal/pkg/clock"
	"github.com/otpflow/otpflow/internal/pkg/config"
	"github.com/otpflow/otpflow/internal/pkg/goroutine"
	"github.com/otpflow/otpflow/internal/pkg/idempotency"
	"github.com/otpflow/otpflow/internal/pkg/instrument"
	"github.com/otpflow/otpflow/internal/pkg/messaging"
	"github.com/otpflow/otpflow/internal/pkg/pin"
	"github.com/otpflow/otpflow/internal/pkg/router"
	"github.com/otpflow/otpflow/internal/pkg/uid"
	"github.com/otpflow/otpflow/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	CacheConn   *redis.Client              `validate:"required"`
	HTTPClient  *http.Client               `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Publisher        `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Pin         pin.Generator              `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	store := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	maxRetries := uint64(dep.Config.GetInt("modules.otp.lookup_max_retries"))
	customer := rest.NewCustomer(
		dep.HTTPClient, dep.Config.GetString("modules.otp.customer_base_url"), maxRetries, dep.Instrument)
	numberInfo := rest.NewNumberInformation(
		dep.HTTPClient, dep.Config.GetString("modules.otp.number_information_url"), maxRetries, dep.Instrument)
	notifier := rest.NewNotification(
		dep.HTTPClient, dep.Config.GetString("modules.otp.notification_url"), dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        store,
		RepoMessaging: repoMsg,
		Customer:      customer,
		NumberInfo:    numberInfo,
		Notifier:      notifier,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		UID:           dep.UID,
		Pin:           dep.Pin,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
