package rest

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/otpflow/otpflow/internal/pkg/instrument"
)

// Customer resolves a phone number to the owning account identifier.
type Customer struct {
	client
	baseURL    string
	maxRetries uint64
}

func NewCustomer(httpClient *http.Client, baseURL string, maxRetries uint64, ins instrument.Instrumentation) *Customer {
	return &Customer{
		client:     client{http: httpClient, ins: ins},
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxRetries: maxRetries,
	}
}

func (c *Customer) AccountID(ctx context.Context, msisdn string) (_ int64, err error) {
	ctx, span := c.startSpan(ctx, "CustomerAccountID")
	defer func() { c.endSpan(span, err) }()

	var result struct {
		AccountID int64 `json:"accountId"`
	}

	target := c.baseURL + "/customers?number=" + url.QueryEscape(msisdn)
	if err = c.getJSON(ctx, target, c.maxRetries, &result); err != nil {
		return 0, err
	}

	return result.AccountID, nil
}
