package checkout

import (
	"context"
	"errors"

	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
)

// ErrNoPayload means the payment step loaded with nothing in the slot;
// the flow halts and the user restarts from the cart.
var ErrNoPayload = errors.New("no pending checkout payload")

// PayloadStore is the single-slot handoff between the cart step and the
// payment step. Put overwrites whatever the previous checkout left
// behind; no two payloads exist for one user at a time.
type PayloadStore interface {
	Put(ctx context.Context, userID int64, p domain.CheckoutPayload) error
	Get(ctx context.Context, userID int64) (domain.CheckoutPayload, error)
	Clear(ctx context.Context, userID int64) error
}
