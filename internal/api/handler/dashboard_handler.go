package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/engnet/backoffice-api/internal/core/ports"
)

type DashboardHandler struct {
	dashboard ports.DashboardService
	now       func() time.Time
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, now: time.Now}
}

// Summary returns refund, user and client aggregates.
//
// @Summary      Dashboard summary
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardSummaryResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /dashboard/summary [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	summary, err := h.dashboard.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDashboardSummaryResponse(summary))
}

// RefundReport lists refunds, optionally filtered by status.
//
// @Summary      Refund report
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "PENDING, APPROVED or REJECTED"
// @Success      200     {array}   refundReportRow
// @Failure      400     {object}  ErrorResponse
// @Router       /dashboard/refunds/report [get]
func (h *DashboardHandler) RefundReport(c echo.Context) error {
	refunds, err := h.dashboard.RefundReport(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRefundReportRows(refunds, h.now()))
}

// RefundsByStatus lists refunds in one status.
//
// @Summary      Refunds by status
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        status  path      string  true  "pending, approved or rejected"
// @Success      200     {array}   refundReportRow
// @Failure      400     {object}  ErrorResponse
// @Router       /dashboard/refunds/by-status/{status} [get]
func (h *DashboardHandler) RefundsByStatus(c echo.Context) error {
	refunds, err := h.dashboard.RefundsByStatus(c.Request().Context(), c.Param("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRefundReportRows(refunds, h.now()))
}

// RefundsByUser lists the refunds of one user.
//
// @Summary      Refunds by user
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200     {array}   refundReportRow
// @Failure      400     {object}  ErrorResponse
// @Router       /dashboard/refunds/by-user/{userId} [get]
func (h *DashboardHandler) RefundsByUser(c echo.Context) error {
	refunds, err := h.dashboard.RefundsByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRefundReportRows(refunds, h.now()))
}

// RefundsByDateRange lists refunds created within an inclusive range.
//
// @Summary      Refunds by date range
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        startDate  query     string  true  "YYYY-MM-DD or RFC 3339"
// @Param        endDate    query     string  true  "YYYY-MM-DD or RFC 3339"
// @Success      200        {array}   refundReportRow
// @Failure      400        {object}  ErrorResponse
// @Router       /dashboard/refunds/by-date-range [get]
func (h *DashboardHandler) RefundsByDateRange(c echo.Context) error {
	refunds, err := h.dashboard.RefundsByDateRange(c.Request().Context(), c.QueryParam("startDate"), c.QueryParam("endDate"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRefundReportRows(refunds, h.now()))
}
