package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/otpflow/otpflow/internal/otp/entity"
	"github.com/otpflow/otpflow/internal/otp/usecase"
	"github.com/otpflow/otpflow/internal/pkg/instrument"
)

// Notification dispatches a message over a delivery channel. Dispatches are
// never retried here: delivery is at-most-once from this service's point of
// view, retry policy belongs to the notification collaborator.
type Notification struct {
	client
	baseURL string
}

func NewNotification(httpClient *http.Client, baseURL string, ins instrument.Instrumentation) *Notification {
	return &Notification{
		client:  client{http: httpClient, ins: ins},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type dispatchRequest struct {
	Channel     string `json:"channel"`
	Destination string `json:"destination"`
	Message     string `json:"message"`
}

func (c *Notification) Dispatch(ctx context.Context, channel entity.Channel, destination, message string) (_ *usecase.DeliveryResult, err error) {
	ctx, span := c.startSpan(ctx, "NotificationDispatch")
	defer func() { c.endSpan(span, err) }()

	body, err := json.Marshal(dispatchRequest{
		Channel:     string(channel),
		Destination: destination,
		Message:     message,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer drainClose(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		err = fmt.Errorf("unexpected status %d", resp.StatusCode)
		return nil, err
	}

	var result struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &usecase.DeliveryResult{ID: result.ID, Status: result.Status}, nil
}
