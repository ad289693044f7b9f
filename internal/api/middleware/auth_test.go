package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

type stubAuthenticator struct {
	fn func(ctx context.Context, token string) (*domain.Claims, error)
}

func (s stubAuthenticator) Authenticate(ctx context.Context, token string) (*domain.Claims, error) {
	return s.fn(ctx, token)
}

func acceptOnly(valid string) stubAuthenticator {
	return stubAuthenticator{fn: func(_ context.Context, token string) (*domain.Claims, error) {
		if token != valid {
			return nil, domain.ErrInvalidToken
		}
		return &domain.Claims{Subject: "user-1", Email: "alice@example.com"}, nil
	}}
}

func runAuth(t *testing.T, authn Authenticator, header string) (*httptest.ResponseRecorder, echo.Context, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := Auth(authn)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, c, called, err
}

func assertUnauthorized(t *testing.T, err error, msg string) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", he.Code)
	}
	if he.Message != msg {
		t.Fatalf("expected %q, got %v", msg, he.Message)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	rec, c, called, err := runAuth(t, acceptOnly("good"), "Bearer good")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	claims, ok := c.Get(ClaimsKey).(*domain.Claims)
	if !ok || claims.Subject != "user-1" || claims.Email != "alice@example.com" {
		t.Fatalf("claims not set: %+v", c.Get(ClaimsKey))
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	_, _, called, err := runAuth(t, acceptOnly("good"), "")
	if called {
		t.Fatalf("next should not be called")
	}
	assertUnauthorized(t, err, "token not provided")
}

func TestAuthMiddleware_InvalidFormat(t *testing.T) {
	for _, header := range []string{"good", "Basic good", "bearer good", "Bearer ", "Bearer"} {
		t.Run(header, func(t *testing.T) {
			_, _, called, err := runAuth(t, acceptOnly("good"), header)
			if called {
				t.Fatalf("next should not be called")
			}
			assertUnauthorized(t, err, "invalid token format")
		})
	}
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	_, _, called, err := runAuth(t, acceptOnly("good"), "Bearer forged")
	if called {
		t.Fatalf("next should not be called")
	}
	assertUnauthorized(t, err, "invalid or expired token")
}
