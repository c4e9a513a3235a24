package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerTransport trips after repeated backend failures so a dead
// backend fails fast instead of holding every storefront request for
// the full client timeout.
type BreakerTransport struct {
	base http.RoundTripper
	cb   *gobreaker.CircuitBreaker[*http.Response]
}

func NewBreakerTransport(base http.RoundTripper) *BreakerTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "commerce-backend",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &BreakerTransport{base: base, cb: cb}
}

func (t *BreakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.cb.Execute(func() (*http.Response, error) {
		resp, err := t.base.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		// 5xx counts against the breaker; 4xx is the caller's problem.
		if resp.StatusCode >= 500 {
			return resp, errServerStatus
		}
		return resp, nil
	})
	if errors.Is(err, errServerStatus) {
		// The breaker counted the failure; the caller still gets the
		// response to map the status itself.
		return resp, nil
	}
	return resp, err
}

type serverStatusError struct{}

func (serverStatusError) Error() string { return "server status" }

var errServerStatus error = serverStatusError{}
