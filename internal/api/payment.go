package api

import (
	"context"
	"net/http"
	"net/url"
)

// PaymentClient talks to the provider-integration endpoints. Initiation
// hands the browser off to a provider-hosted page; Check reconciles the
// redirect back.
type PaymentClient struct {
	c *Client
}

func NewPaymentClient(c *Client) *PaymentClient {
	return &PaymentClient{c: c}
}

type requestBody struct {
	Payload string `json:"payload"`
}

// Request submits the URL-encoded checkout payload and returns the
// provider-hosted payment URL to redirect to.
func (pc *PaymentClient) Request(ctx context.Context, token, encodedPayload string) (string, error) {
	var redirectURL string
	body := requestBody{Payload: encodedPayload}
	if err := pc.c.do(ctx, http.MethodPost, "/api/linepay/request", token, nil, body, &redirectURL); err != nil {
		return "", err
	}
	return redirectURL, nil
}

// CheckResult carries the provider's raw status for a transaction.
type CheckResult struct {
	Raw struct {
		ReturnCode    string `json:"returnCode"`
		ReturnMessage string `json:"returnMessage"`
	} `json:"raw"`
}

func (pc *PaymentClient) Check(ctx context.Context, token, transactionID string) (CheckResult, error) {
	var res CheckResult
	q := url.Values{"transactionId": {transactionID}}
	if err := pc.c.do(ctx, http.MethodGet, "/api/linepay/check", token, q, nil, &res); err != nil {
		return CheckResult{}, err
	}
	return res, nil
}
