package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/engnet/backoffice-api/internal/core/domain"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

func assertHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
	return he
}

type stubAuthService struct {
	loginFn  func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn func(ctx context.Context, claims *domain.Claims) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.Claims, error) {
	return nil, domain.ErrInvalidToken
}

func (s *stubAuthService) Logout(ctx context.Context, claims *domain.Claims) error {
	return s.logoutFn(ctx, claims)
}

type stubUserService struct {
	createFn   func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	findAllFn  func(ctx context.Context) ([]domain.User, error)
	findByIDFn func(ctx context.Context, id string) (*domain.User, error)
	updateFn   func(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) FindAll(ctx context.Context) ([]domain.User, error) {
	return s.findAllFn(ctx)
}

func (s *stubUserService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubClientService struct {
	createFn   func(ctx context.Context, in ports.CreateClientInput) (*domain.Client, error)
	findAllFn  func(ctx context.Context) ([]domain.Client, error)
	findByIDFn func(ctx context.Context, id string) (*domain.Client, error)
	updateFn   func(ctx context.Context, id string, in ports.UpdateClientInput) (*domain.Client, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *stubClientService) Create(ctx context.Context, in ports.CreateClientInput) (*domain.Client, error) {
	return s.createFn(ctx, in)
}

func (s *stubClientService) FindAll(ctx context.Context) ([]domain.Client, error) {
	return s.findAllFn(ctx)
}

func (s *stubClientService) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubClientService) Update(ctx context.Context, id string, in ports.UpdateClientInput) (*domain.Client, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubClientService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubRefundService struct {
	createFn     func(ctx context.Context, in ports.CreateRefundInput) (*domain.Refund, error)
	findAllFn    func(ctx context.Context) ([]domain.Refund, error)
	findByIDFn   func(ctx context.Context, id string) (*domain.Refund, error)
	findByUserFn func(ctx context.Context, userID string) ([]domain.Refund, error)
	updateFn     func(ctx context.Context, id string, in ports.UpdateRefundInput) (*domain.Refund, error)
	deleteFn     func(ctx context.Context, id string) error
	historyFn    func(ctx context.Context, id string) ([]domain.AuditEvent, error)
}

func (s *stubRefundService) Create(ctx context.Context, in ports.CreateRefundInput) (*domain.Refund, error) {
	return s.createFn(ctx, in)
}

func (s *stubRefundService) FindAll(ctx context.Context) ([]domain.Refund, error) {
	return s.findAllFn(ctx)
}

func (s *stubRefundService) FindByID(ctx context.Context, id string) (*domain.Refund, error) {
	return s.findByIDFn(ctx, id)
}

func (s *stubRefundService) FindByUser(ctx context.Context, userID string) ([]domain.Refund, error) {
	return s.findByUserFn(ctx, userID)
}

func (s *stubRefundService) Update(ctx context.Context, id string, in ports.UpdateRefundInput) (*domain.Refund, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubRefundService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubRefundService) History(ctx context.Context, id string) ([]domain.AuditEvent, error) {
	return s.historyFn(ctx, id)
}
