// Package rest holds the HTTP clients for the collaborators the otp module
// depends on: customer lookup, number information and notification dispatch.
// Errors escape as plain call failures; classification into fault reasons
// happens in the usecase layer.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/otpflow/otpflow/internal/pkg/instrument"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const retryBaseDelay = 100 * time.Millisecond

type client struct {
	http *http.Client
	ins  instrument.Instrumentation
}

func (c *client) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("otp.outbound.rest").Start(ctx, name)
}

func (c *client) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// getJSON performs a GET with bounded exponential backoff. Server-side and
// transport failures are retried; 4xx responses are permanent.
func (c *client) getJSON(ctx context.Context, url string, maxRetries uint64, dst any) error {
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(retryBaseDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer drainClose(resp.Body)

		switch {
		case resp.StatusCode >= http.StatusInternalServerError:
			return retry.RetryableError(fmt.Errorf("unexpected status %d", resp.StatusCode))
		case resp.StatusCode >= http.StatusBadRequest:
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		if dst == nil {
			return nil
		}

		return json.NewDecoder(resp.Body).Decode(dst)
	})
}

func drainClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
