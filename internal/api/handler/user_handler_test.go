package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantnet/plantnet-server/internal/core/domain"
)

func TestUserHandler_Upsert_StatusReflectsCreation(t *testing.T) {
	for _, created := range []bool{true, false} {
		stub := &stubUserService{
			upsertFn: func(_ context.Context, u domain.User) (*domain.User, bool, error) {
				assert.Equal(t, "alice@example.com", u.Email)
				assert.Equal(t, "Alice", u.Name)
				return &domain.User{Email: u.Email, Name: u.Name, Role: domain.RoleCustomer}, created, nil
			},
		}
		e := newTestEcho()
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/", `{"name":"Alice","image":"a.png"}`), rec)
		c.SetPath("/users/:email")
		c.SetParamNames("email")
		c.SetParamValues("alice@example.com")

		require.NoError(t, NewUserHandler(stub).Upsert(c))
		want := http.StatusOK
		if created {
			want = http.StatusCreated
		}
		assert.Equal(t, want, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"customer"`)
	}
}

func TestUserHandler_UpdateRole_RejectsUnknownRole(t *testing.T) {
	stub := &stubUserService{
		updateRoleFn: func(context.Context, string, string) (*domain.UpdateResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	e := newTestEcho()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/", `{"role":"superuser"}`), httptest.NewRecorder())
	c.SetParamNames("email")
	c.SetParamValues("bob@example.com")

	err := NewUserHandler(stub).UpdateRole(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestUserHandler_UpdateRole(t *testing.T) {
	var gotEmail, gotRole string
	stub := &stubUserService{
		updateRoleFn: func(_ context.Context, email, role string) (*domain.UpdateResult, error) {
			gotEmail, gotRole = email, role
			return &domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}
	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/", `{"role":"seller"}`), rec)
	c.SetParamNames("email")
	c.SetParamValues("bob@example.com")

	require.NoError(t, NewUserHandler(stub).UpdateRole(c))
	assert.Equal(t, "bob@example.com", gotEmail)
	assert.Equal(t, "seller", gotRole)
	assert.JSONEq(t, `{"matchedCount":1,"modifiedCount":1}`, rec.Body.String())
}

func TestUserHandler_RequestStatus_PropagatesConflict(t *testing.T) {
	stub := &stubUserService{
		requestStatusFn: func(context.Context, string) (*domain.UpdateResult, error) {
			return nil, domain.ErrAlreadyRequested
		},
	}
	e := newTestEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodPatch, "/", nil), httptest.NewRecorder())
	c.SetParamNames("email")
	c.SetParamValues("c@example.com")

	assert.ErrorIs(t, NewUserHandler(stub).RequestStatus(c), domain.ErrAlreadyRequested)
}

func TestUserHandler_GetRole(t *testing.T) {
	stub := &stubUserService{roles: map[string]string{"a@example.com": "admin"}}
	cases := map[string]string{
		"a@example.com":     `{"role":"admin"}`,
		"ghost@example.com": `{"role":null}`,
	}
	for email, want := range cases {
		e := newTestEcho()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.SetParamNames("email")
		c.SetParamValues(email)

		require.NoError(t, NewUserHandler(stub).GetRole(c))
		assert.JSONEq(t, want, rec.Body.String())
	}
}
