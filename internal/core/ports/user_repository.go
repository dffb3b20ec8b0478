package ports

import (
	"context"

	"github.com/plantnet/plantnet-server/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	SetStatus(ctx context.Context, email string, status domain.UserStatus) (*domain.UpdateResult, error)
	SetRole(ctx context.Context, email, role string, status domain.UserStatus) (*domain.UpdateResult, error)
	// ListExcept returns every user whose email differs from email.
	ListExcept(ctx context.Context, email string) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
