package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/locustfarm/farm-accounts/internal/api/middleware"
	"github.com/locustfarm/farm-accounts/internal/core/domain"
	"github.com/locustfarm/farm-accounts/internal/core/ports"
)

var (
	testAdmin  = &domain.User{ID: 1, Email: "admin@locust.farm", FullName: "Admin", Role: domain.RoleAdmin, IsActive: true}
	testFarmer = &domain.User{ID: 2, Email: "farmer@locust.farm", FullName: "Farmer", Role: domain.RoleFarmer, IsActive: true}
)

func newUserContext(e *echo.Echo, method, target, body string, actor *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		middleware.SetCurrentUser(c, actor)
	}
	return c, rec
}

func TestUserHandler_Me(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	c, rec := newUserContext(e, http.MethodGet, "/users/me", "", testFarmer)
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != testFarmer.ID || resp.Role != "FARMER" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUserHandler_Me_RequiresUser(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	c, _ := newUserContext(e, http.MethodGet, "/users/me", "", nil)
	var he *echo.HTTPError
	if err := h.Me(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestUserHandler_UpdateMe_OnlyFullName(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateSelfFn: func(_ context.Context, actor *domain.User, fullName domain.Optional[string]) (*domain.User, error) {
			name, ok := fullName.Get()
			if actor.ID != testFarmer.ID || !ok || name != "New Name" {
				t.Fatalf("unexpected args: %d %q %v", actor.ID, name, ok)
			}
			u := *actor
			u.FullName = name
			return &u, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newUserContext(e, http.MethodPut, "/users/me", `{"full_name":"New Name","role":"ADMIN","is_active":false}`, testFarmer)
	if err := h.UpdateMe(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.FullName != "New Name" || resp.Role != "FARMER" || !resp.IsActive {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUserHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		listFn: func(_ context.Context, in ports.ListUsersInput) (*ports.UserPage, error) {
			if in.Skip != 1 || in.Limit != 1 {
				t.Fatalf("unexpected page request: %+v", in)
			}
			return &ports.UserPage{Items: []*domain.User{testFarmer}, Total: 2, Skip: 1, Limit: 1}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newUserContext(e, http.MethodGet, "/users?skip=1&limit=1", "", testAdmin)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Header().Get(HeaderTotalCount); got != "2" {
		t.Fatalf("expected X-Total-Count 2, got %q", got)
	}

	var resp []userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != testFarmer.ID {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUserHandler_List_Defaults(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		listFn: func(_ context.Context, in ports.ListUsersInput) (*ports.UserPage, error) {
			if in.Skip != 0 || in.Limit != ports.DefaultPageLimit {
				t.Fatalf("unexpected defaults: %+v", in)
			}
			return &ports.UserPage{Items: []*domain.User{}}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newUserContext(e, http.MethodGet, "/users", "", testAdmin)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestUserHandler_List_BadQuery(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	c, _ := newUserContext(e, http.MethodGet, "/users?limit=ten", "", testAdmin)
	if err := h.List(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserHandler_Get_InvalidID(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	c, _ := newUserContext(e, http.MethodGet, "/users/abc", "", testAdmin)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.Get(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		getFn: func(context.Context, int64) (*domain.User, error) { return nil, domain.ErrUserNotFound },
	}
	h := NewUserHandler(stub)

	c, _ := newUserContext(e, http.MethodGet, "/users/99", "", testAdmin)
	c.SetParamNames("id")
	c.SetParamValues("99")
	if err := h.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(_ context.Context, in ports.CreateUserInput) (*domain.User, error) {
			if in.Role != domain.RoleAdmin {
				t.Fatalf("expected ADMIN role, got %q", in.Role)
			}
			return &domain.User{ID: 3, Email: in.Email, FullName: in.FullName, Role: in.Role, IsActive: true}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newUserContext(e, http.MethodPost, "/users",
		`{"email":"second@locust.farm","full_name":"Second","password":"pw","role":"ADMIN"}`, testAdmin)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_Update_PassesPatch(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(_ context.Context, actor *domain.User, id int64, patch domain.UserPatch) (*domain.User, error) {
			if actor.ID != testAdmin.ID || id != testFarmer.ID {
				t.Fatalf("unexpected ids: actor=%d id=%d", actor.ID, id)
			}
			if patch.FullName.Present() {
				t.Fatalf("full_name should be absent")
			}
			if role, ok := patch.Role.Get(); !ok || role != domain.RoleAdmin {
				t.Fatalf("expected role ADMIN in patch")
			}
			if !patch.IsActive.IsNull() {
				t.Fatalf("expected explicit null is_active")
			}
			u := *testFarmer
			u.Role = domain.RoleAdmin
			return &u, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newUserContext(e, http.MethodPut, "/users/2", `{"role":"ADMIN","is_active":null}`, testAdmin)
	c.SetParamNames("id")
	c.SetParamValues("2")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Update_SelfDeactivation(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(context.Context, *domain.User, int64, domain.UserPatch) (*domain.User, error) {
			return nil, domain.ErrCannotDeactivateSelf
		},
	}
	h := NewUserHandler(stub)

	c, _ := newUserContext(e, http.MethodPut, "/users/1", `{"is_active":false}`, testAdmin)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Update(c); !errors.Is(err, domain.ErrSelfProtection) {
		t.Fatalf("expected ErrSelfProtection, got %v", err)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	e := newTestEcho()
	var deleted int64
	stub := &stubUserService{
		deleteFn: func(_ context.Context, _ *domain.User, id int64) error {
			deleted = id
			return nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newUserContext(e, http.MethodDelete, "/users/2", "", testAdmin)
	c.SetParamNames("id")
	c.SetParamValues("2")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != 2 {
		t.Fatalf("expected 204 for id 2, got %d for %d", rec.Code, deleted)
	}
}
