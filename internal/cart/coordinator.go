// Package cart is the single source of truth for the visitor's cart:
// the item list, the derived aggregate, and the badge count broadcast
// to the rest of the storefront.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/swdadsa/Shoppping-system-frontend/internal/api"
	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrAuthRequired gates cart mutation for anonymous visitors. The
	// caller prompts sign-in; it never navigates away on its own.
	ErrAuthRequired = errors.New("authentication required")
	// ErrItemBusy means a quantity change for the same item is already
	// in flight. The request is dropped, never queued.
	ErrItemBusy = errors.New("item update in flight")
)

// API is the slice of the cart resource client the coordinator needs.
type API interface {
	Show(ctx context.Context, token string, userID int64) ([]domain.CartItem, error)
	Count(ctx context.Context, token string, userID int64) (int, error)
	Store(ctx context.Context, token string, userID, itemID int64, amount int) error
	Update(ctx context.Context, token string, userID, itemID int64, movement api.Movement) error
	Remove(ctx context.Context, token string, userID, itemID int64) error
}

// Coordinator owns one user's cart state. Mutations call the backend
// first and then re-fetch canonical truth; nothing is patched locally.
type Coordinator struct {
	client API

	mu        sync.RWMutex
	session   domain.Session
	items     []domain.CartItem
	aggregate domain.CartAggregate

	busyMu sync.Mutex
	busy   map[int64]bool

	sfg singleflight.Group

	subMu  sync.Mutex
	nextID int
	subs   map[int]chan int
	closed bool
}

func NewCoordinator(client API, session domain.Session) *Coordinator {
	return &Coordinator{
		client:  client,
		session: session,
		busy:    make(map[int64]bool),
		subs:    make(map[int]chan int),
	}
}

func (c *Coordinator) sess() domain.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Coordinator) setToken(token string) {
	c.mu.Lock()
	c.session.Token = token
	c.mu.Unlock()
}

// Load fetches the full cart. An anonymous session means an empty cart
// with no backend call. On failure the prior state stays untouched.
func (c *Coordinator) Load(ctx context.Context) error {
	sess := c.sess()
	if sess.Anonymous() {
		c.setItems(nil, 0)
		return nil
	}

	items, err := c.client.Show(ctx, sess.Token, sess.UserID)
	if err != nil {
		log.Printf("cart load failed for user %d: %v", sess.UserID, err)
		return fmt.Errorf("load cart: %w", err)
	}

	c.setItems(items, sumAmounts(items))
	return nil
}

// Add puts amount units of an item into the cart and refreshes the
// canonical count from the backend.
func (c *Coordinator) Add(ctx context.Context, itemID int64, amount int) error {
	sess := c.sess()
	if sess.Anonymous() {
		return ErrAuthRequired
	}

	if err := c.client.Store(ctx, sess.Token, sess.UserID, itemID, amount); err != nil {
		log.Printf("add to cart failed for user %d item %d: %v", sess.UserID, itemID, err)
		return fmt.Errorf("add to cart: %w", err)
	}

	return c.refreshCount(ctx, sess)
}

// ChangeQuantity moves an item's quantity one step. Changes are
// serialized per item: a second change while one is in flight is
// dropped with ErrItemBusy. On success both the item list and the
// count come back from the backend, never from a local patch.
func (c *Coordinator) ChangeQuantity(ctx context.Context, itemID int64, movement api.Movement) error {
	sess := c.sess()
	if sess.Anonymous() {
		return ErrAuthRequired
	}

	if !c.beginItem(itemID) {
		return ErrItemBusy
	}
	defer c.endItem(itemID)

	if err := c.client.Update(ctx, sess.Token, sess.UserID, itemID, movement); err != nil {
		log.Printf("quantity change failed for user %d item %d: %v", sess.UserID, itemID, err)
		return fmt.Errorf("change quantity: %w", err)
	}

	return c.refresh(ctx, sess)
}

// Remove deletes an item server-side, then re-fetches cart and count.
func (c *Coordinator) Remove(ctx context.Context, itemID int64) error {
	sess := c.sess()
	if sess.Anonymous() {
		return ErrAuthRequired
	}

	if err := c.client.Remove(ctx, sess.Token, sess.UserID, itemID); err != nil {
		log.Printf("remove item failed for user %d item %d: %v", sess.UserID, itemID, err)
		return fmt.Errorf("remove item: %w", err)
	}

	return c.refresh(ctx, sess)
}

// Items returns a snapshot copy of the current item list.
func (c *Coordinator) Items() []domain.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]domain.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Coordinator) Aggregate() domain.CartAggregate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.aggregate
}

// Snapshot produces the checkout view of the cart: the client-computed
// total and the ordered {id, amount} list.
func (c *Coordinator) Snapshot() (int64, []domain.PayloadItem) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]domain.PayloadItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, domain.PayloadItem{ID: item.ID, Amount: item.Amount})
	}
	return c.aggregate.Total, items
}

// Subscribe registers a badge-count observer. Sends never block: a slow
// subscriber keeps only the latest count. The returned func unsubscribes.
// Subscribing to a closed coordinator yields an already-closed channel.
func (c *Coordinator) Subscribe() (<-chan int, func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	if c.closed {
		ch := make(chan int)
		close(ch)
		return ch, func() {}
	}
	id := c.nextID
	c.nextID++
	ch := make(chan int, 1)
	c.subs[id] = ch
	return ch, func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

// Close ends the broadcast: every subscriber channel is closed so
// attached observers stop. Called when the coordinator is dropped.
func (c *Coordinator) Close() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for _, ch := range c.subs {
		close(ch)
	}
	c.subs = nil
}

// refresh re-fetches the full item list, recomputes the aggregate and
// refreshes the canonical count.
func (c *Coordinator) refresh(ctx context.Context, sess domain.Session) error {
	items, err := c.client.Show(ctx, sess.Token, sess.UserID)
	if err != nil {
		log.Printf("cart refresh failed for user %d: %v", sess.UserID, err)
		return fmt.Errorf("refresh cart: %w", err)
	}
	c.setItems(items, -1)
	return c.refreshCount(ctx, sess)
}

// refreshCount fetches the backend-sourced count, collapsing concurrent
// refreshes into a single request.
func (c *Coordinator) refreshCount(ctx context.Context, sess domain.Session) error {
	v, err, _ := c.sfg.Do("count", func() (interface{}, error) {
		return c.client.Count(ctx, sess.Token, sess.UserID)
	})
	if err != nil {
		log.Printf("cart count refresh failed for user %d: %v", sess.UserID, err)
		return fmt.Errorf("refresh count: %w", err)
	}

	count := v.(int)
	c.mu.Lock()
	c.aggregate.Count = count
	c.mu.Unlock()
	c.broadcast(count)
	return nil
}

// setItems replaces the item list and recomputes the total client-side.
// count < 0 keeps the previous backend-sourced count.
func (c *Coordinator) setItems(items []domain.CartItem, count int) {
	var total int64
	for _, item := range items {
		total += item.TotalPrice
	}

	c.mu.Lock()
	c.items = items
	c.aggregate.Total = total
	if count >= 0 {
		c.aggregate.Count = count
	}
	count = c.aggregate.Count
	c.mu.Unlock()

	c.broadcast(count)
}

func (c *Coordinator) broadcast(count int) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- count:
		default:
			// drop the stale value so the latest one fits
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- count:
			default:
			}
		}
	}
}

func (c *Coordinator) beginItem(itemID int64) bool {
	c.busyMu.Lock()
	defer c.busyMu.Unlock()
	if c.busy[itemID] {
		return false
	}
	c.busy[itemID] = true
	return true
}

func (c *Coordinator) endItem(itemID int64) {
	c.busyMu.Lock()
	defer c.busyMu.Unlock()
	delete(c.busy, itemID)
}

func sumAmounts(items []domain.CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Amount
	}
	return count
}
