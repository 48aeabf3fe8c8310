package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"docportal/internal/auth"
	"docportal/pkg/logger"
	"docportal/pkg/model"
)

type mockUserService struct {
	isAdminFunc  func(ctx context.Context, email string) (bool, error)
	isAdminCalls int
}

func (m *mockUserService) Register(ctx context.Context, user *model.User) (bool, error) {
	return true, nil
}

func (m *mockUserService) GetAll(ctx context.Context) ([]*model.User, error) {
	return []*model.User{}, nil
}

func (m *mockUserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return &model.User{UID: "uid-1", Email: email}, nil
}

func (m *mockUserService) ToggleRole(ctx context.Context, targetEmail, changedBy string) (*model.User, error) {
	return &model.User{UID: "uid-1", Email: targetEmail}, nil
}

func (m *mockUserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	m.isAdminCalls++
	if m.isAdminFunc != nil {
		return m.isAdminFunc(ctx, email)
	}
	return false, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
}

func adminRouter(service *mockUserService) (*httprouter.Router, *auth.TokenService) {
	log := testLogger()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	guard := auth.NewGuard(tokens, service, log)

	router := httprouter.New()
	NewUserHandler(service, guard, log).RegisterRoutes(router)
	return router, tokens
}

func TestCheckAdmin_ReportsStoredRole(t *testing.T) {
	tests := []struct {
		name    string
		isAdmin bool
	}{
		{"admin caller", true},
		{"regular caller", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockUserService{
				isAdminFunc: func(ctx context.Context, email string) (bool, error) {
					if email != "jane@example.com" {
						t.Errorf("expected lookup for token identity, got %q", email)
					}
					return tt.isAdmin, nil
				},
			}
			router, tokens := adminRouter(service)

			signed, err := tokens.Issue("jane@example.com", "uid-1")
			if err != nil {
				t.Fatalf("Issue returned error: %v", err)
			}

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+signed)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			// A regular user gets a negative answer, not a 403.
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}

			var body adminResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body.IsAdmin != tt.isAdmin {
				t.Errorf("expected isAdmin=%v, got %v", tt.isAdmin, body.IsAdmin)
			}
			if service.isAdminCalls != 1 {
				t.Errorf("expected one role lookup, got %d", service.isAdminCalls)
			}
		})
	}
}

func TestCheckAdmin_NoTokenIs401(t *testing.T) {
	service := &mockUserService{}
	router, _ := adminRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if service.isAdminCalls != 0 {
		t.Error("role lookup must not run without a token")
	}
}
