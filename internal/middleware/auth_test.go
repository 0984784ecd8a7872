package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/and161185/autotrade/internal/auth"
	"github.com/and161185/autotrade/internal/errs"
	"github.com/and161185/autotrade/internal/model"
)

type mockStorage struct {
	GetUserFunc func(ctx context.Context, id string) (model.User, error)
}

func (m *mockStorage) GetUserByID(ctx context.Context, id string) (model.User, error) {
	return m.GetUserFunc(ctx, id)
}

func TestAuthMiddleware(t *testing.T) {
	tm := auth.NewTokenManager("test-secret")
	validToken, _ := tm.GenerateToken(model.User{ID: "user-001", Role: model.Admin})

	tests := []struct {
		name           string
		authHeader     string
		storage        Storage
		expectedStatus int
	}{
		{
			name:           "no header",
			authHeader:     "",
			storage:        &mockStorage{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalidtoken",
			storage:        &mockStorage{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "user not found",
			authHeader: "Bearer " + validToken,
			storage: &mockStorage{
				GetUserFunc: func(ctx context.Context, id string) (model.User, error) {
					return model.User{}, errs.ErrUserNotFound
				},
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "storage error",
			authHeader: "Bearer " + validToken,
			storage: &mockStorage{
				GetUserFunc: func(ctx context.Context, id string) (model.User, error) {
					return model.User{}, errors.New("some db error")
				},
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:       "inactive user",
			authHeader: "Bearer " + validToken,
			storage: &mockStorage{
				GetUserFunc: func(ctx context.Context, id string) (model.User, error) {
					return model.User{ID: id, Role: model.Admin, IsActive: false}, nil
				},
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "ok",
			authHeader: "Bearer " + validToken,
			storage: &mockStorage{
				GetUserFunc: func(ctx context.Context, id string) (model.User, error) {
					return model.User{ID: id, Email: "admin@example.com", Role: model.Admin, IsActive: true}, nil
				},
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rr := httptest.NewRecorder()
			mw := AuthMiddleware(tt.storage, tm)
			handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, ok := UserFromContext(r.Context()); !ok {
					t.Error("user missing from context")
				}
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("expected %d, got %d", tt.expectedStatus, rr.Code)
			}
		})
	}
}

func TestRoleGroups(t *testing.T) {
	tests := []struct {
		name           string
		user           *model.User
		mw             func(http.Handler) http.Handler
		expectedStatus int
	}{
		{"staff admitted", &model.User{Role: model.Office}, StaffOnly(), http.StatusOK},
		{"customer kept out of staff area", &model.User{Role: model.Customer, ClientID: "client-001"}, StaffOnly(), http.StatusForbidden},
		{"customer admitted to portal", &model.User{Role: model.Customer, ClientID: "client-001"}, PortalOnly(), http.StatusOK},
		{"vendor without client", &model.User{Role: model.Vendor}, PortalOnly(), http.StatusForbidden},
		{"staff kept out of portal", &model.User{Role: model.Admin}, PortalOnly(), http.StatusForbidden},
		{"anonymous", nil, StaffOnly(), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), UserContextKey, *tt.user))
			}

			rr := httptest.NewRecorder()
			tt.mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("expected %d, got %d", tt.expectedStatus, rr.Code)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rr.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("request id not propagated: ctx=%q header=%q", seen, rr.Header().Get(RequestIDHeader))
	}

	const incoming = "0b7e6a52-6f4c-4d7b-9a51-7a2f3c1d9e10"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if seen != incoming {
		t.Fatalf("incoming request id replaced: %q", seen)
	}
}
