package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/engnet/backoffice-api/internal/api/middleware"
	"github.com/engnet/backoffice-api/internal/core/domain"
)

// ctxClaims returns the token payload stored by the Auth middleware.
// Absent claims mean the route was registered without the middleware.
func ctxClaims(c echo.Context) (*domain.Claims, error) {
	claims, _ := c.Get(middleware.ClaimsKey).(*domain.Claims)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token not provided")
	}
	return claims, nil
}

// bindAndValidate decodes the JSON body into req and runs the struct
// validator. Both failures are reported as 400.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// ErrorResponse is the envelope of every error reply.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Method    string    `json:"method"`
	URL       string    `json:"url"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
}
