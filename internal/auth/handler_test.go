package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/vendata/vendata/internal/auth"
	"github.com/vendata/vendata/internal/platform/httpx"
	"github.com/vendata/vendata/internal/shared"
)

type stubRepo struct {
	user *auth.User
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, shared.ErrNotFound
	}
	return s.user, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, shared.ErrNotFound
	}
	return s.user, nil
}

func newAuthRouter(t *testing.T, repo auth.Repository) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	tokens := auth.NewTokenStore(client, time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := auth.NewHandler(logger, auth.NewService(repo, tokens))

	r := chi.NewRouter()
	handler.MountRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(handler.RequireAuth)
		r.Get("/guarded", func(w http.ResponseWriter, r *http.Request) {
			httpx.OK(w, "ok", nil)
		})
	})
	return r
}

func seedUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &auth.User{ID: 1, Name: "Admin", Email: "admin@test.local", PasswordHash: string(hashed), IsActive: true}
}

func login(t *testing.T, h http.Handler, email, password string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)

	var envelope struct {
		Status bool `json:"status"`
		Data   struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	_ = json.Unmarshal(res.Body.Bytes(), &envelope)
	return res, envelope.Data.Token
}

func TestLoginIssuesToken(t *testing.T) {
	h := newAuthRouter(t, &stubRepo{user: seedUser(t, "correct-password")})

	res, token := login(t, h, "admin@test.local", "correct-password")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if token == "" {
		t.Fatal("expected a bearer token in the response")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h := newAuthRouter(t, &stubRepo{user: seedUser(t, "correct-password")})

	res, _ := login(t, h, "admin@test.local", "wrong-password")
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	user := seedUser(t, "correct-password")
	user.IsActive = false
	h := newAuthRouter(t, &stubRepo{user: user})

	res, _ := login(t, h, "admin@test.local", "correct-password")
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for inactive user, got %d", res.Code)
	}
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	h := newAuthRouter(t, &stubRepo{user: seedUser(t, "correct-password")})

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	res = httptest.NewRecorder()
	h.ServeHTTP(res, req)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown token, got %d", res.Code)
	}
}

func TestRequireAuthAcceptsIssuedToken(t *testing.T) {
	h := newAuthRouter(t, &stubRepo{user: seedUser(t, "correct-password")})

	_, token := login(t, h, "admin@test.local", "correct-password")

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	h := newAuthRouter(t, &stubRepo{user: seedUser(t, "correct-password")})

	_, token := login(t, h, "admin@test.local", "correct-password")

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 on logout, got %d", res.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res = httptest.NewRecorder()
	h.ServeHTTP(res, req)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", res.Code)
	}
}
