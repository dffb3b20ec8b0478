package handler

import (
	"context"
	"io"
	"time"

	"github.com/plantnet/plantnet-server/internal/core/domain"
	"github.com/plantnet/plantnet-server/internal/core/ports"
)

type stubSessions struct {
	issued string
}

func (s *stubSessions) Issue(email string) (string, error) {
	s.issued = email
	return "signed-" + email, nil
}

func (s *stubSessions) Verify(token string) (string, error) { return "", domain.ErrUnauthorized }

func (s *stubSessions) TTL() time.Duration { return 24 * time.Hour }

type stubUserService struct {
	upsertFn        func(ctx context.Context, u domain.User) (*domain.User, bool, error)
	requestStatusFn func(ctx context.Context, email string) (*domain.UpdateResult, error)
	updateRoleFn    func(ctx context.Context, email, role string) (*domain.UpdateResult, error)
	roles           map[string]string
	users           []*domain.User
}

func (s *stubUserService) Upsert(ctx context.Context, u domain.User) (*domain.User, bool, error) {
	return s.upsertFn(ctx, u)
}

func (s *stubUserService) RequestStatus(ctx context.Context, email string) (*domain.UpdateResult, error) {
	return s.requestStatusFn(ctx, email)
}

func (s *stubUserService) UpdateRole(ctx context.Context, email, role string) (*domain.UpdateResult, error) {
	return s.updateRoleFn(ctx, email, role)
}

func (s *stubUserService) GetRole(_ context.Context, email string) (string, error) {
	return s.roles[email], nil
}

func (s *stubUserService) ListExcept(_ context.Context, _ string) ([]*domain.User, error) {
	return s.users, nil
}

func (s *stubUserService) Get(_ context.Context, email string) (*domain.User, error) {
	return &domain.User{Email: email, Role: s.roles[email]}, nil
}

type stubPlantService struct {
	plants   map[string]*domain.Plant
	created  *domain.Plant
	adjusted *ports.AdjustQuantityInput
	adjustFn func(in ports.AdjustQuantityInput) (*domain.UpdateResult, error)
}

func (s *stubPlantService) Create(_ context.Context, p domain.Plant) (string, error) {
	s.created = &p
	return "665f1c2e8b3c4a0012345678", nil
}

func (s *stubPlantService) List(context.Context) ([]*domain.Plant, error) {
	out := []*domain.Plant{}
	for _, p := range s.plants {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubPlantService) Get(_ context.Context, id string) (*domain.Plant, error) {
	if id == "bad" {
		return nil, domain.ErrInvalidID
	}
	p, ok := s.plants[id]
	if !ok {
		return nil, domain.ErrPlantNotFound
	}
	return p, nil
}

func (s *stubPlantService) ListBySeller(_ context.Context, email string) ([]*domain.Plant, error) {
	out := []*domain.Plant{}
	for _, p := range s.plants {
		if p.Seller.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPlantService) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := s.plants[id]; !ok {
		return 0, domain.ErrPlantNotFound
	}
	return 1, nil
}

func (s *stubPlantService) AdjustQuantity(_ context.Context, in ports.AdjustQuantityInput) (*domain.UpdateResult, error) {
	s.adjusted = &in
	if s.adjustFn != nil {
		return s.adjustFn(in)
	}
	return &domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

type stubImages struct {
	name, contentType string
	body              []byte
}

func (s *stubImages) Upload(_ context.Context, name, contentType string, body io.Reader, _ int64) (string, error) {
	s.name, s.contentType = name, contentType
	b, err := io.ReadAll(body)
	s.body = b
	return "https://cdn.example.com/plants/abc.png", err
}

type stubPaymentService struct {
	plantID   string
	quantity  int
	payload   []byte
	signature string
	err       error
}

func (s *stubPaymentService) CreateIntent(_ context.Context, plantID string, quantity int) (*ports.PaymentIntent, error) {
	s.plantID, s.quantity = plantID, quantity
	if s.err != nil {
		return nil, s.err
	}
	return &ports.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil
}

func (s *stubPaymentService) HandleWebhook(_ context.Context, payload []byte, signature string) error {
	s.payload, s.signature = payload, signature
	return s.err
}

type stubOrderService struct {
	placed   *ports.PlaceOrderInput
	placeErr error
	views    []*domain.OrderView
	status   string
	cancelFn func(id string) (int64, error)
}

func (s *stubOrderService) Place(_ context.Context, in ports.PlaceOrderInput) (string, error) {
	s.placed = &in
	if s.placeErr != nil {
		return "", s.placeErr
	}
	return "665f1c2e8b3c4a00aaaaaaaa", nil
}

func (s *stubOrderService) CustomerOrders(context.Context, string) ([]*domain.OrderView, error) {
	return s.views, nil
}

func (s *stubOrderService) SellerOrders(context.Context, string) ([]*domain.OrderView, error) {
	return s.views, nil
}

func (s *stubOrderService) UpdateStatus(_ context.Context, _ string, status string) (*domain.UpdateResult, error) {
	s.status = status
	return &domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *stubOrderService) Cancel(_ context.Context, id string) (int64, error) {
	return s.cancelFn(id)
}
