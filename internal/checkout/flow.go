// Package checkout orchestrates the linear checkout flow: build the
// payload from the cart snapshot, hand it to the payment provider, and
// reconcile the redirect back.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/swdadsa/Shoppping-system-frontend/internal/api"
	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
	"github.com/swdadsa/Shoppping-system-frontend/internal/session"
)

var (
	// ErrMethodNotAvailable rejects a displayed-but-unsupported payment
	// method before any network call is made.
	ErrMethodNotAvailable = errors.New("payment method not yet available")
	// ErrMissingTransaction fails the result page closed when the
	// provider redirect carries no transaction id.
	ErrMissingTransaction = errors.New("missing transaction id")
	// ErrEmptyCart blocks checkout on a cart with nothing in it.
	ErrEmptyCart = errors.New("cart is empty")
)

type AccountAPI interface {
	Profile(ctx context.Context, token string, userID int64) (api.Profile, error)
}

type PaymentAPI interface {
	Request(ctx context.Context, token, encodedPayload string) (string, error)
	Check(ctx context.Context, token, transactionID string) (api.CheckResult, error)
}

// Flow drives one checkout at a time per user. Each Begin overwrites
// the previous payload slot, so no two checkouts run concurrently for
// the same user.
type Flow struct {
	payloads PayloadStore
	accounts AccountAPI
	payments PaymentAPI
}

func NewFlow(payloads PayloadStore, accounts AccountAPI, payments PaymentAPI) *Flow {
	return &Flow{
		payloads: payloads,
		accounts: accounts,
		payments: payments,
	}
}

// Begin builds the checkout payload from the cart snapshot and parks it
// in the slot. An anonymous session builds nothing.
func (f *Flow) Begin(ctx context.Context, sess domain.Session, total int64, items []domain.PayloadItem) (domain.CheckoutPayload, error) {
	if sess.Anonymous() {
		return domain.CheckoutPayload{}, session.ErrNoSession
	}
	if len(items) == 0 {
		return domain.CheckoutPayload{}, ErrEmptyCart
	}

	payload := domain.CheckoutPayload{
		UserID:     sess.UserID,
		TotalPrice: total,
		Items:      items,
	}
	if err := f.payloads.Put(ctx, sess.UserID, payload); err != nil {
		return domain.CheckoutPayload{}, fmt.Errorf("store checkout payload: %w", err)
	}
	return payload, nil
}

// PaymentView is everything the payment step displays: the parked
// payload, the buyer's profile, and the method catalogue.
type PaymentView struct {
	Payload  domain.CheckoutPayload     `json:"payload"`
	Profile  api.Profile                `json:"profile"`
	Methods  []domain.PaymentMethodMeta `json:"methods"`
	Selected domain.PaymentMethodMeta   `json:"selected"`
}

// PreparePayment loads the parked payload and the user's profile for
// display. A stored method the storefront no longer knows degrades to
// the default wallet method.
func (f *Flow) PreparePayment(ctx context.Context, sess domain.Session) (PaymentView, error) {
	if sess.Anonymous() {
		return PaymentView{}, session.ErrNoSession
	}

	payload, err := f.payloads.Get(ctx, sess.UserID)
	if err != nil {
		return PaymentView{}, err
	}

	profile, err := f.accounts.Profile(ctx, sess.Token, sess.UserID)
	if err != nil {
		log.Printf("profile fetch failed for user %d: %v", sess.UserID, err)
		return PaymentView{}, fmt.Errorf("fetch profile: %w", err)
	}

	selected, ok := domain.MethodMeta(payload.PaymentMethod)
	if !ok {
		selected, _ = domain.MethodMeta(domain.MethodWallet)
	}

	return PaymentView{
		Payload:  payload,
		Profile:  profile,
		Methods:  domain.PaymentMethods(),
		Selected: selected,
	}, nil
}

// ConfirmAndInitiate fixes method and address on the parked payload and
// submits it to the provider. Unsupported methods are rejected before
// any network call. The returned URL is the provider-hosted payment
// page the browser must be sent to.
func (f *Flow) ConfirmAndInitiate(ctx context.Context, sess domain.Session, method domain.PaymentMethod, address string) (string, error) {
	if sess.Anonymous() {
		return "", session.ErrNoSession
	}

	meta, known := domain.MethodMeta(method)
	if !known || !meta.Supported {
		return "", ErrMethodNotAvailable
	}

	payload, err := f.payloads.Get(ctx, sess.UserID)
	if err != nil {
		return "", err
	}

	payload.PaymentMethod = method
	if address != "" {
		payload.Address = address
	}
	if err := f.payloads.Put(ctx, sess.UserID, payload); err != nil {
		return "", fmt.Errorf("store checkout payload: %w", err)
	}

	encoded, err := encodePayload(payload)
	if err != nil {
		return "", err
	}

	redirectURL, err := f.payments.Request(ctx, sess.Token, encoded)
	if err != nil {
		// the flow stays where it is; the user may submit again
		log.Printf("payment initiation failed for user %d: %v", sess.UserID, err)
		return "", fmt.Errorf("initiate payment: %w", err)
	}
	return redirectURL, nil
}

// ResolveResult queries the provider status for the transaction the
// redirect back carried and maps it to a terminal presentation. Fails
// closed on a missing transaction id or session.
func (f *Flow) ResolveResult(ctx context.Context, sess domain.Session, transactionID string) (Result, error) {
	if transactionID == "" {
		return Result{}, ErrMissingTransaction
	}
	if sess.Anonymous() {
		return Result{}, session.ErrNoSession
	}

	res, err := f.payments.Check(ctx, sess.Token, transactionID)
	if err != nil {
		log.Printf("payment status check failed for transaction %s: %v", transactionID, err)
		return Result{}, fmt.Errorf("check payment status: %w", err)
	}

	result := mapReturnCode(res.Raw.ReturnCode)
	if result.Outcome == OutcomeCompleted {
		// the slot is spent; a later checkout starts from the cart
		if err := f.payloads.Clear(ctx, sess.UserID); err != nil {
			log.Printf("payload clear failed for user %d: %v", sess.UserID, err)
		}
	}
	return result, nil
}

// encodePayload matches the wire contract: the payload travels as
// URL-encoded JSON inside the initiation request.
func encodePayload(p domain.CheckoutPayload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal checkout payload: %w", err)
	}
	return url.QueryEscape(string(data)), nil
}
