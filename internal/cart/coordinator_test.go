package cart

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdadsa/Shoppping-system-frontend/internal/api"
	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
)

// mockAPI implements API with a server-side cart the backend would own.
type mockAPI struct {
	m     sync.Mutex
	items map[int64]domain.CartItem
	order []int64
	err   error

	updateCalls atomic.Int32
	updateGate  chan struct{}
}

func newMockAPI() *mockAPI {
	return &mockAPI{items: make(map[int64]domain.CartItem)}
}

func (m *mockAPI) seed(items ...domain.CartItem) {
	m.m.Lock()
	defer m.m.Unlock()
	for _, item := range items {
		if _, ok := m.items[item.ID]; !ok {
			m.order = append(m.order, item.ID)
		}
		m.items[item.ID] = item
	}
}

func (m *mockAPI) Show(context.Context, string, int64) ([]domain.CartItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.CartItem, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out, nil
}

func (m *mockAPI) Count(ctx context.Context, token string, userID int64) (int, error) {
	items, err := m.Show(ctx, token, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, item := range items {
		count += item.Amount
	}
	return count, nil
}

func (m *mockAPI) Store(_ context.Context, _ string, _ int64, itemID int64, amount int) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	item, ok := m.items[itemID]
	if !ok {
		item = domain.CartItem{ID: itemID, Price: 100}
		m.order = append(m.order, itemID)
	}
	item.Amount += amount
	item.TotalPrice = int64(item.Amount) * item.Price
	m.items[itemID] = item
	return nil
}

func (m *mockAPI) Update(_ context.Context, _ string, _ int64, itemID int64, movement api.Movement) error {
	if m.updateGate != nil {
		<-m.updateGate
	}
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.updateCalls.Add(1)
	item := m.items[itemID]
	if movement == api.MovementIncrease {
		item.Amount++
	} else if item.Amount > 0 {
		item.Amount--
	}
	item.TotalPrice = int64(item.Amount) * item.Price
	m.items[itemID] = item
	return nil
}

func (m *mockAPI) Remove(_ context.Context, _ string, _ int64, itemID int64) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.items, itemID)
	for i, id := range m.order {
		if id == itemID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockAPI) setErr(err error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.err = err
}

func signedIn() domain.Session {
	return domain.Session{Token: "tok", UserID: 42}
}

func item(id int64, price int64, amount int) domain.CartItem {
	return domain.CartItem{ID: id, Price: price, Amount: amount, TotalPrice: price * int64(amount)}
}

func TestLoad_AnonymousIsEmptyWithoutBackendCall(t *testing.T) {
	mock := newMockAPI()
	mock.setErr(errors.New("backend must not be reached"))
	c := NewCoordinator(mock, domain.Session{})

	require.NoError(t, c.Load(context.Background()))
	assert.Empty(t, c.Items())
	assert.Equal(t, domain.CartAggregate{}, c.Aggregate())
}

func TestLoad_FailureLeavesPriorState(t *testing.T) {
	mock := newMockAPI()
	mock.seed(item(1, 250, 2))
	c := NewCoordinator(mock, signedIn())
	require.NoError(t, c.Load(context.Background()))
	before := c.Aggregate()

	mock.setErr(errors.New("boom"))
	err := c.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, before, c.Aggregate())
	assert.Len(t, c.Items(), 1)
}

func TestAdd_RequiresSession(t *testing.T) {
	c := NewCoordinator(newMockAPI(), domain.Session{})
	assert.ErrorIs(t, c.Add(context.Background(), 1, 1), ErrAuthRequired)
}

func TestAdd_RefreshesCanonicalCount(t *testing.T) {
	mock := newMockAPI()
	c := NewCoordinator(mock, signedIn())

	require.NoError(t, c.Add(context.Background(), 1, 2))
	assert.Equal(t, 2, c.Aggregate().Count)

	require.NoError(t, c.Add(context.Background(), 2, 1))
	assert.Equal(t, 3, c.Aggregate().Count)
}

func TestChangeQuantity_AggregateMatchesLineTotals(t *testing.T) {
	mock := newMockAPI()
	mock.seed(item(1, 250, 2), item(2, 300, 1))
	c := NewCoordinator(mock, signedIn())
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, int64(800), c.Aggregate().Total)

	require.NoError(t, c.ChangeQuantity(context.Background(), 1, api.MovementIncrease))
	agg := c.Aggregate()
	assert.Equal(t, int64(1050), agg.Total)
	assert.Equal(t, 4, agg.Count)

	var want int64
	for _, it := range c.Items() {
		want += int64(it.Amount) * it.Price
	}
	assert.Equal(t, want, agg.Total)
}

func TestChangeQuantity_DropsConcurrentSameItem(t *testing.T) {
	mock := newMockAPI()
	mock.seed(item(1, 100, 1))
	c := NewCoordinator(mock, signedIn())
	require.NoError(t, c.Load(context.Background()))

	gate := make(chan struct{})
	mock.updateGate = gate
	firstDone := make(chan error, 1)
	go func() {
		firstDone <- c.ChangeQuantity(context.Background(), 1, api.MovementIncrease)
	}()

	// second change for the same item while the first holds the flag
	require.Eventually(t, func() bool {
		err := c.ChangeQuantity(context.Background(), 1, api.MovementIncrease)
		return errors.Is(err, ErrItemBusy)
	}, time.Second, time.Millisecond)

	close(gate)
	require.NoError(t, <-firstDone)
	assert.Equal(t, int32(1), mock.updateCalls.Load(), "dropped request must not reach the backend")
	assert.Equal(t, 2, c.Aggregate().Count)
}

func TestChangeQuantity_DifferentItemsProceed(t *testing.T) {
	mock := newMockAPI()
	mock.seed(item(1, 100, 1), item(2, 100, 1))
	c := NewCoordinator(mock, signedIn())
	require.NoError(t, c.Load(context.Background()))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []int64{1, 2} {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			errs[i] = c.ChangeQuantity(context.Background(), id, api.MovementIncrease)
		}(i, id)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 4, c.Aggregate().Count)
}

func TestRemove_RefreshesCartAndCount(t *testing.T) {
	mock := newMockAPI()
	mock.seed(item(1, 250, 2), item(2, 300, 1))
	c := NewCoordinator(mock, signedIn())
	require.NoError(t, c.Load(context.Background()))

	require.NoError(t, c.Remove(context.Background(), 1))
	agg := c.Aggregate()
	assert.Equal(t, 1, agg.Count)
	assert.Equal(t, int64(300), agg.Total)
	assert.Len(t, c.Items(), 1)
}

func TestSubscribe_BroadcastsLatestCount(t *testing.T) {
	mock := newMockAPI()
	c := NewCoordinator(mock, signedIn())

	ch, cancel := c.Subscribe()
	defer cancel()

	require.NoError(t, c.Add(context.Background(), 1, 2))
	select {
	case count := <-ch:
		assert.Equal(t, 2, count)
	case <-time.After(time.Second):
		t.Fatal("no count broadcast")
	}

	// a slow subscriber only ever sees the latest value
	require.NoError(t, c.Add(context.Background(), 1, 1))
	require.NoError(t, c.Add(context.Background(), 1, 1))
	select {
	case count := <-ch:
		assert.Equal(t, 4, count)
	case <-time.After(time.Second):
		t.Fatal("no count broadcast")
	}
}

func TestSnapshot(t *testing.T) {
	mock := newMockAPI()
	mock.seed(item(1, 250, 2), item(2, 300, 1))
	c := NewCoordinator(mock, signedIn())
	require.NoError(t, c.Load(context.Background()))

	total, items := c.Snapshot()
	assert.Equal(t, int64(800), total)
	assert.Equal(t, []domain.PayloadItem{{ID: 1, Amount: 2}, {ID: 2, Amount: 1}}, items)
}

func TestRegistry_SharesCoordinatorPerUser(t *testing.T) {
	reg := NewRegistry(newMockAPI())

	a := reg.For(domain.Session{Token: "t1", UserID: 42})
	b := reg.For(domain.Session{Token: "t2", UserID: 42})
	other := reg.For(domain.Session{Token: "t3", UserID: 7})

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
	assert.Equal(t, "t2", a.sess().Token, "registry keeps the freshest token")

	reg.Drop(42)
	assert.NotSame(t, a, reg.For(domain.Session{Token: "t4", UserID: 42}))
}

func TestRegistry_DropClosesSubscribers(t *testing.T) {
	reg := NewRegistry(newMockAPI())
	c := reg.For(signedIn())

	ch, cancel := c.Subscribe()
	defer cancel()

	reg.Drop(42)

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "drop should close subscriber channels")
	case <-time.After(time.Second):
		t.Fatal("subscriber channel not closed on drop")
	}

	// a late subscriber on the dead coordinator sees a closed channel too
	late, cancelLate := c.Subscribe()
	defer cancelLate()
	_, ok := <-late
	assert.False(t, ok)
}
