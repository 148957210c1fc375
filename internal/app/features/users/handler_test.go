package users_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	uierrors "github.com/nolanmercer/taskforge/internal/app/features/errors"
	"github.com/nolanmercer/taskforge/internal/app/features/users"
	userstore "github.com/nolanmercer/taskforge/internal/app/store/users"
	"github.com/nolanmercer/taskforge/internal/domain/models"
	"github.com/nolanmercer/taskforge/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*users.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)

	handler := users.NewHandler(userstore.New(db), errLog, logger)
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func TestServeProfile(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateTeamMember(ctx, "Alice", "alice@example.com")

	req := testutil.WithUser(testutil.NewRequest("GET", "/api/users/profile"), alice)
	rec := httptest.NewRecorder()
	handler.ServeProfile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var got models.User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != alice.ID || got.Email != "alice@example.com" {
		t.Errorf("profile: got %+v", got)
	}
}

func TestServeUpdateProfile(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateTeamMember(ctx, "Alice", "alice@example.com")

	body := `{"name":"Alice Cooper","mobileNumber":"555-0100"}`
	req := httptest.NewRequest("PUT", "/api/users/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithUser(req, alice)
	rec := httptest.NewRecorder()
	handler.ServeUpdateProfile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var got models.User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Name != "Alice Cooper" || got.MobileNumber != "555-0100" {
		t.Errorf("updated profile: got %+v", got)
	}
	// Role can never change through the profile endpoint.
	if got.Role != models.RoleTeamMember {
		t.Errorf("Role: got %q, want %q", got.Role, models.RoleTeamMember)
	}
}

func TestServeUpdateProfile_ShortPassword(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateTeamMember(ctx, "Alice", "alice@example.com")

	req := httptest.NewRequest("PUT", "/api/users/profile", strings.NewReader(`{"password":"short"}`))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithUser(req, alice)
	rec := httptest.NewRecorder()
	handler.ServeUpdateProfile(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeUpdate_RoleChange(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateTeamMember(ctx, "Alice", "alice@example.com")

	body := `{"role":"admin"}`
	req := httptest.NewRequest("PUT", "/api/users/"+alice.ID.Hex(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithAdmin(req)
	req = testutil.WithChiURLParam(req, "userID", alice.ID.Hex())
	rec := httptest.NewRecorder()
	handler.ServeUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	var got models.User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("Role: got %q, want %q", got.Role, models.RoleAdmin)
	}
}

func TestServeDelete_SelfForbidden(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	root := fixtures.CreateAdmin(ctx, "Root", "root@example.com")

	req := testutil.WithUser(testutil.NewRequest("DELETE", "/api/users/"+root.ID.Hex()), root)
	req = testutil.WithChiURLParam(req, "userID", root.ID.Hex())
	rec := httptest.NewRecorder()
	handler.ServeDelete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("self delete: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
