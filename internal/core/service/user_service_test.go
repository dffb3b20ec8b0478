package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/plantnet/plantnet-server/internal/core/domain"
)

func TestUserService_Upsert_CreatesCustomer(t *testing.T) {
	repo := newMemUsers()
	svc := NewUserService(repo, zerolog.Nop())

	u, created, err := svc.Upsert(context.Background(), domain.User{
		Email: "alice@example.com",
		Name:  "Alice",
		Role:  domain.RoleAdmin, // client-supplied role must be ignored
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Errorf("expected created=true")
	}
	if u.Role != domain.RoleCustomer || u.Status != domain.UserStatusNone {
		t.Errorf("expected customer/none, got %s/%s", u.Role, u.Status)
	}
	if u.Timestamp.IsZero() {
		t.Errorf("expected timestamp to be set")
	}
}

func TestUserService_Upsert_ReturnsExistingUnchanged(t *testing.T) {
	repo := newMemUsers(&domain.User{ID: "u1", Email: "bob@example.com", Name: "Bob", Role: domain.RoleSeller})
	svc := NewUserService(repo, zerolog.Nop())

	u, created, err := svc.Upsert(context.Background(), domain.User{Email: "bob@example.com", Name: "Robert"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Errorf("expected created=false")
	}
	if u.Name != "Bob" || u.Role != domain.RoleSeller {
		t.Errorf("existing record modified: %+v", u)
	}
}

func TestUserService_Upsert_StoreError(t *testing.T) {
	repo := newMemUsers()
	repo.err = errors.New("db down")
	svc := NewUserService(repo, zerolog.Nop())

	if _, _, err := svc.Upsert(context.Background(), domain.User{Email: "x@example.com"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestUserService_RequestStatus(t *testing.T) {
	repo := newMemUsers(&domain.User{Email: "c@example.com", Role: domain.RoleCustomer, Status: domain.UserStatusNone})
	svc := NewUserService(repo, zerolog.Nop())
	ctx := context.Background()

	res, err := svc.RequestStatus(ctx, "c@example.com")
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	if res.ModifiedCount != 1 {
		t.Errorf("expected one modification, got %d", res.ModifiedCount)
	}
	if repo.byEmail["c@example.com"].Status != domain.UserStatusRequested {
		t.Errorf("status not stored")
	}

	if _, err := svc.RequestStatus(ctx, "c@example.com"); !errors.Is(err, domain.ErrAlreadyRequested) {
		t.Fatalf("expected ErrAlreadyRequested, got %v", err)
	}
}

func TestUserService_RequestStatus_UnknownUser(t *testing.T) {
	svc := NewUserService(newMemUsers(), zerolog.Nop())
	if _, err := svc.RequestStatus(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdateRole_SetsVerified(t *testing.T) {
	repo := newMemUsers(&domain.User{Email: "c@example.com", Role: domain.RoleCustomer, Status: domain.UserStatusRequested})
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.UpdateRole(context.Background(), "c@example.com", domain.RoleSeller); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u := repo.byEmail["c@example.com"]
	if u.Role != domain.RoleSeller || u.Status != domain.UserStatusVerified {
		t.Errorf("expected seller/Verified, got %s/%s", u.Role, u.Status)
	}
}

func TestUserService_UpdateRole_UnknownUser(t *testing.T) {
	svc := NewUserService(newMemUsers(), zerolog.Nop())
	if _, err := svc.UpdateRole(context.Background(), "ghost@example.com", domain.RoleAdmin); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_GetRole(t *testing.T) {
	repo := newMemUsers(&domain.User{Email: "a@example.com", Role: domain.RoleAdmin})
	svc := NewUserService(repo, zerolog.Nop())
	ctx := context.Background()

	role, err := svc.GetRole(ctx, "a@example.com")
	if err != nil || role != domain.RoleAdmin {
		t.Fatalf("expected admin, got %q (%v)", role, err)
	}

	role, err = svc.GetRole(ctx, "ghost@example.com")
	if err != nil || role != "" {
		t.Fatalf("expected empty role for unknown user, got %q (%v)", role, err)
	}
}

func TestUserService_ListExcept(t *testing.T) {
	repo := newMemUsers(
		&domain.User{Email: "a@example.com"},
		&domain.User{Email: "b@example.com"},
	)
	svc := NewUserService(repo, zerolog.Nop())

	users, err := svc.ListExcept(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].Email != "b@example.com" {
		t.Errorf("expected only b@example.com, got %+v", users)
	}

	users, _ = NewUserService(newMemUsers(), zerolog.Nop()).ListExcept(context.Background(), "a@example.com")
	if users == nil {
		t.Errorf("expected empty slice, got nil")
	}
}
