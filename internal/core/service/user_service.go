package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/plantnet/plantnet-server/internal/core/domain"
	"github.com/plantnet/plantnet-server/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Upsert returns the stored user for u.Email untouched, or creates it as a
// customer when it does not exist yet.
func (s *UserService) Upsert(ctx context.Context, u domain.User) (*domain.User, bool, error) {
	existing, err := s.repo.FindByEmail(ctx, u.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, fmt.Errorf("upsert user: %w", err)
	}

	u.ID = ""
	u.Role = domain.RoleCustomer
	u.Status = domain.UserStatusNone
	u.Timestamp = time.Now().UTC()

	created, err := s.repo.Create(ctx, &u)
	if err != nil {
		return nil, false, fmt.Errorf("upsert user: %w", err)
	}
	s.logger.Info().Str("email", u.Email).Msg("user created")
	return created, true, nil
}

// RequestStatus records a role-elevation request. A second request while one
// is pending is rejected.
func (s *UserService) RequestStatus(ctx context.Context, email string) (*domain.UpdateResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("request status: %w", err)
	}
	if user.Status == domain.UserStatusRequested {
		return nil, domain.ErrAlreadyRequested
	}

	res, err := s.repo.SetStatus(ctx, email, domain.UserStatusRequested)
	if err != nil {
		return nil, fmt.Errorf("request status: %w", err)
	}
	s.logger.Info().Str("email", email).Msg("role elevation requested")
	return res, nil
}

// UpdateRole sets the target's role and marks it verified. Callers must
// already be authorised as admin.
func (s *UserService) UpdateRole(ctx context.Context, email, role string) (*domain.UpdateResult, error) {
	res, err := s.repo.SetRole(ctx, email, role, domain.UserStatusVerified)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	s.logger.Info().Str("email", email).Str("role", role).Msg("role updated")
	return res, nil
}

// GetRole returns the stored role, or "" for an unknown email.
func (s *UserService) GetRole(ctx context.Context, email string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get role: %w", err)
	}
	return user.Role, nil
}

func (s *UserService) ListExcept(ctx context.Context, email string) ([]*domain.User, error) {
	users, err := s.repo.ListExcept(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}
