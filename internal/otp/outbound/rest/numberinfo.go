package rest

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/otpflow/otpflow/internal/pkg/instrument"
)

// NumberInformation resolves a phone number to its validity status string.
// The status is reported back verbatim; interpreting it is the caller's
// concern.
type NumberInformation struct {
	client
	baseURL    string
	maxRetries uint64
}

func NewNumberInformation(httpClient *http.Client, baseURL string, maxRetries uint64, ins instrument.Instrumentation) *NumberInformation {
	return &NumberInformation{
		client:     client{http: httpClient, ins: ins},
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxRetries: maxRetries,
	}
}

func (c *NumberInformation) Status(ctx context.Context, msisdn string) (_ string, err error) {
	ctx, span := c.startSpan(ctx, "NumberInformationStatus")
	defer func() { c.endSpan(span, err) }()

	var result struct {
		Status string `json:"status"`
	}

	target := c.baseURL + "?msisdn=" + url.QueryEscape(msisdn)
	if err = c.getJSON(ctx, target, c.maxRetries, &result); err != nil {
		return "", err
	}

	return result.Status, nil
}
