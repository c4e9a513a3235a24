// Package session keeps the authenticated visitor's token and user id
// with a sliding expiry, the way the browser kept them in cookies.
package session

import (
	"context"
	"errors"

	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
)

// ErrNoSession is returned when the session id is unknown or expired.
// Callers treat it as "anonymous", not as a failure.
var ErrNoSession = errors.New("no session")

type Store interface {
	Get(ctx context.Context, sid string) (domain.Session, error)
	Put(ctx context.Context, sid string, s domain.Session) error
	// Touch extends the session's expiry by the store's sliding window.
	Touch(ctx context.Context, sid string) error
	Delete(ctx context.Context, sid string) error
}
