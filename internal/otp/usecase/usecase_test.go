package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/otpflow/otpflow/internal/otp/entity"
	"github.com/otpflow/otpflow/internal/pkg/goerror"
	"github.com/otpflow/otpflow/internal/pkg/goroutine"
	"github.com/otpflow/otpflow/internal/pkg/idempotency"
	"github.com/otpflow/otpflow/internal/pkg/validator"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

type fakeDB struct {
	mu        sync.Mutex
	otps      map[int64]entity.OTP
	apps      map[string]entity.Application
	getErr    error
	createErr error
	updateErr error
	updates   []entity.OTP
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		otps: make(map[int64]entity.OTP),
		apps: map[string]entity.Application{"PPR": {ID: "PPR", AttemptsAllowed: 3}},
	}
}

func (f *fakeDB) GetOTP(_ context.Context, id int64) (*entity.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	otp, ok := f.otps[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &otp, nil
}

func (f *fakeDB) GetOTPsByNumber(_ context.Context, msisdn string) ([]entity.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	var out []entity.OTP
	for _, otp := range f.otps {
		if otp.MSISDN == msisdn {
			out = append(out, otp)
		}
	}
	return out, nil
}

func (f *fakeDB) GetApplication(_ context.Context, id string) (*entity.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	app, ok := f.apps[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &app, nil
}

func (f *fakeDB) CreateOTP(_ context.Context, otp entity.OTP) (*entity.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	f.otps[otp.ID] = otp
	return &otp, nil
}

func (f *fakeDB) UpdateOTPState(_ context.Context, id int64, status entity.Status, attemptCount int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return f.updateErr
	}
	otp, ok := f.otps[id]
	if !ok {
		return goerror.ErrNotFound
	}
	otp.Status = status
	otp.AttemptCount = attemptCount
	f.otps[id] = otp
	f.updates = append(f.updates, otp)
	return nil
}

func (f *fakeDB) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

type fakeMessaging struct {
	mu       sync.Mutex
	issued   []OTPIssuedEvent
	verified []OTPVerifiedEvent
	err      error
}

func (f *fakeMessaging) PublishOTPIssued(_ context.Context, msg OTPIssuedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.issued = append(f.issued, msg)
	return nil
}

func (f *fakeMessaging) PublishOTPVerified(_ context.Context, msg OTPVerifiedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.verified = append(f.verified, msg)
	return nil
}

type fakeCustomer struct {
	accountID int64
	err       error
}

func (f *fakeCustomer) AccountID(context.Context, string) (int64, error) {
	return f.accountID, f.err
}

type fakeNumberInfo struct {
	status string
	err    error
}

func (f *fakeNumberInfo) Status(context.Context, string) (string, error) {
	return f.status, f.err
}

type dispatch struct {
	Channel     entity.Channel
	Destination string
	Message     string
}

type fakeNotifier struct {
	mu         sync.Mutex
	dispatches []dispatch
	err        error
	errByChan  map[entity.Channel]error
}

func (f *fakeNotifier) Dispatch(_ context.Context, ch entity.Channel, destination, message string) (*DeliveryResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if err, ok := f.errByChan[ch]; ok {
		return nil, err
	}
	f.dispatches = append(f.dispatches, dispatch{Channel: ch, Destination: destination, Message: message})
	return &DeliveryResult{ID: "d-1", Status: "SENT"}, nil
}

func (f *fakeNotifier) sent() []dispatch {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dispatch(nil), f.dispatches...)
}

type fakeIdemp struct {
	mu     sync.Mutex
	states map[string]idempotency.State
}

func newFakeIdemp() *fakeIdemp {
	return &fakeIdemp{states: make(map[string]idempotency.State)}
}

func (f *fakeIdemp) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if state, ok := f.states[key]; ok {
		return state, nil
	}
	f.states[key] = idempotency.StateInProgress
	return idempotency.StateNone, nil
}

func (f *fakeIdemp) MarkCompleted(_ context.Context, key string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[key] = idempotency.StateCompleted
	return nil
}

func (f *fakeIdemp) MarkFailed(_ context.Context, key string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[key] = idempotency.StateFailed
	return nil
}

func (f *fakeIdemp) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	state, err := f.Acquire(ctx, key, 0)
	if err != nil {
		return err
	}
	switch state {
	case idempotency.StateInProgress:
		return idempotency.ErrAlreadyInProgress
	case idempotency.StateCompleted:
		return idempotency.ErrAlreadyCompleted
	case idempotency.StateFailed:
		return idempotency.ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		_ = f.MarkFailed(ctx, key, 0)
		return err
	}
	return f.MarkCompleted(ctx, key, 0)
}

type fakeConfig struct {
	strings   map[string]string
	ints      map[string]int
	durations map[string]time.Duration
}

func newFakeConfig() *fakeConfig {
	return &fakeConfig{
		strings: map[string]string{
			"modules.otp.application_id":  "PPR",
			"modules.otp.default_channel": "AUTO",
		},
		ints: map[string]int{},
		durations: map[string]time.Duration{
			"modules.otp.pin_ttl_seconds": 60 * time.Second,
		},
	}
}

func (f *fakeConfig) Close() error { return nil }
func (f *fakeConfig) GetBool(string) bool { return false }
func (f *fakeConfig) GetString(key string) string { return f.strings[key] }
func (f *fakeConfig) GetInt(key string) int { return f.ints[key] }
func (f *fakeConfig) GetInt32(key string) int32 { return int32(f.ints[key]) }
func (f *fakeConfig) GetInt64(key string) int64 { return int64(f.ints[key]) }
func (f *fakeConfig) GetFloat64(string) float64 { return 0 }
func (f *fakeConfig) GetSecond(key string) time.Duration { return f.durations[key] }
func (f *fakeConfig) GetMinute(key string) time.Duration { return f.durations[key] }
func (f *fakeConfig) GetArray(string) []string { return nil }

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeUID struct {
	mu   sync.Mutex
	next int64
}

func (f *fakeUID) Generate() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return f.next
}

type fakePin struct {
	pin int32
}

func (f *fakePin) Generate() int32 { return f.pin }

type noopInstrument struct{}

func (noopInstrument) Tracer(name string) trace.Tracer {
	return tracenoop.NewTracerProvider().Tracer(name)
}

func (noopInstrument) Meter(name string) metric.Meter {
	return metricnoop.NewMeterProvider().Meter(name)
}

func (noopInstrument) Shutdown(context.Context) error { return nil }

type testEnv struct {
	db       *fakeDB
	msg      *fakeMessaging
	customer *fakeCustomer
	number   *fakeNumberInfo
	notifier *fakeNotifier
	idemp    *fakeIdemp
	mgr      *goroutine.Manager
	uc       *Usecase
}

func newTestEnv(t interface{ Fatalf(string, ...any) }) *testEnv {
	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	env := &testEnv{
		db:       newFakeDB(),
		msg:      &fakeMessaging{},
		customer: &fakeCustomer{accountID: 42},
		number:   &fakeNumberInfo{status: "VALID"},
		notifier: &fakeNotifier{},
		idemp:    newFakeIdemp(),
		mgr:      goroutine.NewManager(16),
	}

	env.uc = New(Dependency{
		RepoDB:        env.db,
		RepoMessaging: env.msg,
		Customer:      env.customer,
		NumberInfo:    env.number,
		Notifier:      env.notifier,
		Idempotency:   env.idemp,
		Validator:     v10,
		Config:        newFakeConfig(),
		UID:           &fakeUID{},
		Pin:           &fakePin{pin: 123456},
		Clock:         &fakeClock{now: testNow},
		Instrument:    noopInstrument{},
		Goroutine:     env.mgr,
	})

	return env
}

// flush waits for fire-and-forget goroutines scheduled through the manager.
func (e *testEnv) flush() {
	_ = e.mgr.Wait()
}
