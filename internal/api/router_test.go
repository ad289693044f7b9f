package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/engnet/backoffice-api/internal/core/domain"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

type routerAuth struct{}

func (routerAuth) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return nil, domain.ErrInvalidCredentials
}

func (routerAuth) Authenticate(_ context.Context, token string) (*domain.Claims, error) {
	if token != "valid" {
		return nil, domain.ErrInvalidToken
	}
	return &domain.Claims{Subject: "u-1", Email: "ana@x.com", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (routerAuth) Logout(context.Context, *domain.Claims) error { return nil }

type routerUsers struct {
	ports.UserService
}

func (routerUsers) Create(_ context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return &domain.User{ID: "u-1", Name: in.Name, Email: in.Email}, nil
}

func newTestRouter() *echo.Echo {
	return NewRouter(Services{Auth: routerAuth{}, Users: routerUsers{}}, Options{
		CORSOrigins: []string{"*"},
		Registerer:  prometheus.NewRegistry(),
	}, zerolog.Nop())
}

func serve(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	e := newTestRouter()

	for _, target := range []string{"/users", "/auth/me", "/dashboard/summary", "/reports/summary"} {
		t.Run(target, func(t *testing.T) {
			rec := serve(e, http.MethodGet, target, "", "")
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["error"] != "token not provided" || body["url"] != target {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

func TestRouter_SignUpIsPublic(t *testing.T) {
	rec := serve(newTestRouter(), http.MethodPost, "/users", `{"name":"Ana","email":"ana@x.com","password":"secret1"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_Me(t *testing.T) {
	e := newTestRouter()

	rec := serve(e, http.MethodGet, "/auth/me", "", "valid")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"sub":"u-1"`) {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}

	rec = serve(e, http.MethodGet, "/auth/me", "", "forged")
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "invalid or expired token") {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_LoginFailureEnvelope(t *testing.T) {
	rec := serve(newTestRouter(), http.MethodPost, "/auth/login", `{"email":"ana@x.com","password":"wrong"}`, "")
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), `"error":"invalid credentials"`) {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_Health(t *testing.T) {
	e := newTestRouter()
	if rec := serve(e, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := serve(e, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with no dependencies, got %d", rec.Code)
	}
}

func TestRouter_SwaggerDoc(t *testing.T) {
	rec := serve(newTestRouter(), http.MethodGet, "/api/docs/doc.json", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var doc struct {
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]struct {
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"definitions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc.json is not valid JSON: %v", err)
	}
	for path, method := range map[string]string{
		"/auth/logout":          "post",
		"/refunds/{id}/history": "get",
		"/reports/summary":      "get",
	} {
		if _, ok := doc.Paths[path][method]; !ok {
			t.Fatalf("missing %s %s", method, path)
		}
	}
	if _, ok := doc.Definitions["handler.createRefundRequest"].Properties["status"]; ok {
		t.Fatalf("create refund payload must not document a status")
	}
}
