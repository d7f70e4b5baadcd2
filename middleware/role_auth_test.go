package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskory/models"
	"taskory/utils"
)

func requestWithRole(role string) *http.Request {
	req := httptest.NewRequest("GET", "http://example.local/admin/users", nil)
	ctx := context.WithValue(req.Context(), utils.UserIDKey, "u-1")
	ctx = context.WithValue(ctx, utils.UserRoleKey, role)
	return req.WithContext(ctx)
}

func TestRequireRole_AllowsEqualOrHigher(t *testing.T) {
	called := false
	h := RequireRole(models.RoleManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	for _, role := range []string{models.RoleManager, models.RoleAdmin, models.RoleSuperadmin} {
		called = false
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestWithRole(role))
		if !called {
			t.Fatalf("expected handler to run for role %s", role)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for role %s, got %d", role, rec.Code)
		}
	}
}

func TestRequireRole_RejectsLowerOrUnknown(t *testing.T) {
	h := RequireRole(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	for _, role := range []string{models.RoleUser, models.RoleManager, "intern", ""} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestWithRole(role))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for role %q, got %d", role, rec.Code)
		}
	}
}

func TestRequireRole_RejectsMissingIdentity(t *testing.T) {
	h := RequireRole(models.RoleUser)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "http://example.local/", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without identity, got %d", rec.Code)
	}
}
