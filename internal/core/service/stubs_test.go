package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/plantnet/plantnet-server/internal/core/domain"
	"github.com/plantnet/plantnet-server/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory repositories
// ---------------------------------------------------------------------------

type memUsers struct {
	byEmail map[string]*domain.User
	err     error
}

func newMemUsers(users ...*domain.User) *memUsers {
	r := &memUsers{byEmail: map[string]*domain.User{}}
	for _, u := range users {
		r.byEmail[u.Email] = u
	}
	return r
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	cp := *u
	cp.ID = fmt.Sprintf("u%d", len(r.byEmail)+1)
	r.byEmail[u.Email] = &cp
	return &cp, nil
}

func (r *memUsers) SetStatus(_ context.Context, email string, status domain.UserStatus) (*domain.UpdateResult, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return &domain.UpdateResult{}, nil
	}
	u.Status = status
	return &domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *memUsers) SetRole(_ context.Context, email, role string, status domain.UserStatus) (*domain.UpdateResult, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return &domain.UpdateResult{}, nil
	}
	u.Role, u.Status = role, status
	return &domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *memUsers) ListExcept(_ context.Context, email string) ([]*domain.User, error) {
	var out []*domain.User
	for e, u := range r.byEmail {
		if e != email {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUsers) Count(context.Context) (int64, error) { return int64(len(r.byEmail)), r.err }

type memPlants struct {
	byID map[string]*domain.Plant
	seq  int
	err  error
}

func newMemPlants(plants ...*domain.Plant) *memPlants {
	r := &memPlants{byID: map[string]*domain.Plant{}}
	for _, p := range plants {
		r.byID[p.ID] = p
	}
	return r
}

func (r *memPlants) Create(_ context.Context, p *domain.Plant) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.seq++
	cp := *p
	cp.ID = fmt.Sprintf("p%d", r.seq)
	r.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (r *memPlants) sorted() []*domain.Plant {
	out := make([]*domain.Plant, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memPlants) List(_ context.Context, limit int64) ([]*domain.Plant, error) {
	if r.err != nil {
		return nil, r.err
	}
	all := r.sorted()
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memPlants) FindByID(_ context.Context, id string) (*domain.Plant, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPlantNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPlants) ListBySeller(_ context.Context, email string) ([]*domain.Plant, error) {
	var out []*domain.Plant
	for _, p := range r.sorted() {
		if p.Seller.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPlants) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

func (r *memPlants) IncrementQuantity(_ context.Context, id string, delta int) (*domain.UpdateResult, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.byID[id]
	if !ok {
		return &domain.UpdateResult{}, nil
	}
	p.Quantity += delta
	return &domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *memPlants) Count(context.Context) (int64, error) { return int64(len(r.byID)), nil }

type memOrders struct {
	byID      map[string]*domain.Order
	seq       int
	err       error
	createErr error
	totals    *domain.OrderTotals
	chart     []domain.ChartPoint
}

func newMemOrders(orders ...*domain.Order) *memOrders {
	r := &memOrders{byID: map[string]*domain.Order{}}
	for _, o := range orders {
		r.byID[o.ID] = o
	}
	return r
}

func (r *memOrders) Create(_ context.Context, o *domain.Order) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if r.createErr != nil {
		return "", r.createErr
	}
	r.seq++
	cp := *o
	cp.ID = fmt.Sprintf("o%d", r.seq)
	r.byID[cp.ID] = &cp
	return cp.ID, nil
}

func (r *memOrders) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *memOrders) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

func (r *memOrders) SetStatus(_ context.Context, id, status string) (*domain.UpdateResult, error) {
	o, ok := r.byID[id]
	if !ok {
		return &domain.UpdateResult{}, nil
	}
	o.Status = status
	return &domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *memOrders) MarkPaymentVerified(_ context.Context, txID string) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var n int64
	for _, o := range r.byID {
		if o.TransactionID == txID && !o.PaymentVerified {
			o.PaymentVerified = true
			n++
		}
	}
	return n, nil
}

func (r *memOrders) ExistsByTransactionID(_ context.Context, txID string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, o := range r.byID {
		if o.TransactionID == txID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memOrders) list(match func(*domain.Order) bool) []*domain.OrderView {
	var out []*domain.OrderView
	for _, o := range r.byID {
		if match(o) {
			out = append(out, &domain.OrderView{Order: *o})
		}
	}
	return out
}

func (r *memOrders) ListByCustomer(_ context.Context, email string) ([]*domain.OrderView, error) {
	return r.list(func(o *domain.Order) bool { return o.Customer.Email == email }), r.err
}

func (r *memOrders) ListBySeller(_ context.Context, email string) ([]*domain.OrderView, error) {
	return r.list(func(o *domain.Order) bool { return o.Seller == email }), r.err
}

func (r *memOrders) Totals(context.Context) (*domain.OrderTotals, error) {
	if r.totals == nil {
		return &domain.OrderTotals{}, nil
	}
	return r.totals, nil
}

func (r *memOrders) DailyChart(context.Context) ([]domain.ChartPoint, error) { return r.chart, nil }

// ---------------------------------------------------------------------------
// Gateway, notifier, publisher and idempotency stubs
// ---------------------------------------------------------------------------

type stubGateway struct {
	intents   map[string]*ports.PaymentIntent
	createErr error
	lookupErr error
	amounts   []int64
	currency  string

	event     *ports.PaymentEvent
	verifyErr error
}

func (g *stubGateway) CreatePaymentIntent(_ context.Context, amount int64, currency string) (*ports.PaymentIntent, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.amounts = append(g.amounts, amount)
	g.currency = currency
	return &ports.PaymentIntent{
		ID:           "pi_1",
		ClientSecret: "pi_1_secret_abc",
		Amount:       amount,
		Currency:     currency,
		Status:       "requires_payment_method",
	}, nil
}

func (g *stubGateway) GetPaymentIntent(_ context.Context, id string) (*ports.PaymentIntent, error) {
	if g.lookupErr != nil {
		return nil, g.lookupErr
	}
	pi, ok := g.intents[id]
	if !ok {
		return nil, fmt.Errorf("no such payment_intent: %s", id)
	}
	return pi, nil
}

func (g *stubGateway) VerifyWebhook(_ []byte, _ string) (*ports.PaymentEvent, error) {
	return g.event, g.verifyErr
}

type recNotifier struct {
	sent []ports.Email
}

func (n *recNotifier) Enqueue(e ports.Email) { n.sent = append(n.sent, e) }

type recPublisher struct {
	published []*domain.Order
	err       error
}

func (p *recPublisher) PublishOrderPlaced(_ context.Context, o *domain.Order) error {
	p.published = append(p.published, o)
	return p.err
}

type memIdempotency struct {
	seen     map[string]bool
	err      error
	released []string
}

func newMemIdempotency() *memIdempotency { return &memIdempotency{seen: map[string]bool{}} }

func (m *memIdempotency) Reserve(_ context.Context, scope, key string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	k := scope + ":" + key
	if m.seen[k] {
		return false, nil
	}
	m.seen[k] = true
	return true, nil
}

func (m *memIdempotency) Release(_ context.Context, scope, key string) error {
	k := scope + ":" + key
	delete(m.seen, k)
	m.released = append(m.released, k)
	return nil
}

type recMetrics struct {
	orders     int
	intents    map[string]int
	adjustment map[string]int
}

func newRecMetrics() *recMetrics {
	return &recMetrics{intents: map[string]int{}, adjustment: map[string]int{}}
}

func (m *recMetrics) OrderPlaced()                       { m.orders++ }
func (m *recMetrics) PaymentIntent(result string)        { m.intents[result]++ }
func (m *recMetrics) InventoryAdjusted(direction string) { m.adjustment[direction]++ }
