package inbound

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/otpflow/otpflow/internal/otp/entity"
	"github.com/otpflow/otpflow/internal/otp/usecase"
	"github.com/otpflow/otpflow/internal/pkg/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

type fakeUC struct {
	sendIn  usecase.SendInput
	sendOut *usecase.SendOutput
	sendErr error

	validateOut *usecase.ValidateOutput
	validateErr error

	resendIn  usecase.ResendInput
	resendOut *usecase.ResendOutput
	resendErr error

	getOut *usecase.GetOutput
	getErr error

	getAllOut *usecase.GetAllOutput
	getAllErr error
}

func (f *fakeUC) Send(_ context.Context, in usecase.SendInput) (*usecase.SendOutput, error) {
	f.sendIn = in
	return f.sendOut, f.sendErr
}

func (f *fakeUC) Validate(_ context.Context, _ usecase.ValidateInput) (*usecase.ValidateOutput, error) {
	return f.validateOut, f.validateErr
}

func (f *fakeUC) Resend(_ context.Context, in usecase.ResendInput) (*usecase.ResendOutput, error) {
	f.resendIn = in
	return f.resendOut, f.resendErr
}

func (f *fakeUC) Get(_ context.Context, _ usecase.GetInput) (*usecase.GetOutput, error) {
	return f.getOut, f.getErr
}

func (f *fakeUC) GetAll(_ context.Context, _ usecase.GetAllInput) (*usecase.GetAllOutput, error) {
	return f.getAllOut, f.getAllErr
}

type stubConfig struct{}

func (stubConfig) Close() error { return nil }

func (stubConfig) GetBool(string) bool { return false }

func (stubConfig) GetString(string) string { return "" }

func (stubConfig) GetInt(string) int { return 0 }

func (stubConfig) GetInt32(string) int32 { return 0 }

func (stubConfig) GetInt64(string) int64 { return 0 }

func (stubConfig) GetFloat64(string) float64 { return 0 }

func (stubConfig) GetSecond(string) time.Duration { return 0 }

func (stubConfig) GetMinute(string) time.Duration { return 0 }

func (stubConfig) GetArray(string) []string { return nil }

type stubUUID struct{}

func (stubUUID) Generate() string { return "test-cid" }

type stubInstrument struct{}

func (stubInstrument) Tracer(name string) trace.Tracer {
	return tracenoop.NewTracerProvider().Tracer(name)
}

func (stubInstrument) Meter(name string) metric.Meter {
	return metricnoop.NewMeterProvider().Meter(name)
}

func (stubInstrument) Shutdown(context.Context) error { return nil }

func newTestServer(t *testing.T, uc uc) *httptest.Server {
	t.Helper()

	r := router.NewRouter(router.Config{
		Config:     stubConfig{},
		UUID:       stubUUID{},
		Instrument: stubInstrument{},
	})
	RegisterHTTPEndpoint(r, uc)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func testOTP() entity.OTP {
	return entity.OTP{
		ID:            7,
		CustomerID:    42,
		MSISDN:        "+306912345678",
		Pin:           123456,
		ApplicationID: "PPR",
		Status:        entity.StatusActive,
		CreatedOn:     time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
		Expires:       time.Date(2026, time.March, 10, 12, 1, 0, 0, time.UTC),
	}
}

func TestSendEndpoint(t *testing.T) {
	uc := &fakeUC{sendOut: &usecase.SendOutput{OTP: testOTP()}}
	srv := newTestServer(t, uc)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/otps",
		bytes.NewBufferString(`{"msisdn":"+306912345678"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "k-1")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "+306912345678", uc.sendIn.MSISDN)
	assert.Equal(t, "k-1", uc.sendIn.IdempotencyKey)

	var body struct {
		Message string `json:"message"`
		Data    struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Otp has been issued", body.Message)
	assert.Equal(t, "7", body.Data.ID)
	assert.Equal(t, "ACTIVE", body.Data.Status)
}

func TestValidateEndpoint(t *testing.T) {
	t.Run("invalid pin surfaces the fault reason and snapshot", func(t *testing.T) {
		snapshot := testOTP()
		snapshot.AttemptCount = 2
		uc := &fakeUC{validateErr: entity.NewFaultWithOTP(entity.FaultInvalidPin, snapshot)}
		srv := newTestServer(t, uc)

		resp, err := srv.Client().Post(srv.URL+"/api/v1/otps/7/validate",
			"application/json", bytes.NewBufferString(`{"pin":999999}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body struct {
			Message string            `json:"message"`
			Error   map[string]string `json:"error"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "INVALID_PIN", body.Error["fault_reason"])
		assert.Equal(t, "ACTIVE", body.Error["status"])
		assert.Equal(t, "2", body.Error["attempt_count"])
	})

	t.Run("attempt ceiling maps to 429", func(t *testing.T) {
		uc := &fakeUC{validateErr: entity.NewFaultWithOTP(entity.FaultTooManyAttempts, testOTP())}
		srv := newTestServer(t, uc)

		resp, err := srv.Client().Post(srv.URL+"/api/v1/otps/7/validate",
			"application/json", bytes.NewBufferString(`{"pin":123456}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	})
}

func TestResendEndpoint(t *testing.T) {
	uc := &fakeUC{resendOut: &usecase.ResendOutput{OTP: testOTP()}}
	srv := newTestServer(t, uc)

	resp, err := srv.Client().Post(srv.URL+"/api/v1/otps/7/resend",
		"application/json", bytes.NewBufferString(`{"channels":["SMS","EMAIL"],"mail":"a@b.c"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(7), uc.resendIn.ID)
	assert.Equal(t, []string{"SMS", "EMAIL"}, uc.resendIn.Channels)
	assert.Equal(t, "a@b.c", uc.resendIn.Mail)
}

func TestGetEndpoints(t *testing.T) {
	t.Run("get by id returns 404 for unknown otps", func(t *testing.T) {
		uc := &fakeUC{getErr: entity.NewFault(entity.FaultNotFound)}
		srv := newTestServer(t, uc)

		resp, err := srv.Client().Get(srv.URL + "/api/v1/otps/404")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("list by number returns every otp", func(t *testing.T) {
		uc := &fakeUC{getAllOut: &usecase.GetAllOutput{OTPs: []entity.OTP{testOTP(), testOTP()}}}
		srv := newTestServer(t, uc)

		resp, err := srv.Client().Get(srv.URL + "/api/v1/otps?number=%2B306912345678")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data []json.RawMessage `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Len(t, body.Data, 2)
	})
}
