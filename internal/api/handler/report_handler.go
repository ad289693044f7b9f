package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/engnet/backoffice-api/internal/api/metrics"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

type ReportHandler struct {
	reports ports.ReportService
}

func NewReportHandler(reports ports.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RefundsExcel downloads the refund workbook.
//
// @Summary      Refund workbook
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        status     query     string  false  "PENDING, APPROVED or REJECTED"
// @Param        startDate  query     string  false  "YYYY-MM-DD or RFC 3339"
// @Param        endDate    query     string  false  "YYYY-MM-DD or RFC 3339"
// @Success      200        {file}    binary
// @Failure      400        {object}  ErrorResponse
// @Router       /reports/refunds/excel [get]
func (h *ReportHandler) RefundsExcel(c echo.Context) error {
	report, err := h.reports.RefundsWorkbook(c.Request().Context(), ports.RefundReportQuery{
		Status:    c.QueryParam("status"),
		StartDate: c.QueryParam("startDate"),
		EndDate:   c.QueryParam("endDate"),
	})
	if err != nil {
		return err
	}
	return sendReport(c, report)
}

// RefundsDetailed downloads the detailed refund workbook.
//
// @Summary      Detailed refund workbook
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        userId  query     string  false  "User ID"
// @Success      200     {file}    binary
// @Failure      400     {object}  ErrorResponse
// @Router       /reports/refunds/detailed [get]
func (h *ReportHandler) RefundsDetailed(c echo.Context) error {
	report, err := h.reports.DetailedWorkbook(c.Request().Context(), c.QueryParam("userId"))
	if err != nil {
		return err
	}
	return sendReport(c, report)
}

// Summary downloads the summary workbook.
//
// @Summary      Summary workbook
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      401  {object}  ErrorResponse
// @Router       /reports/summary [get]
func (h *ReportHandler) Summary(c echo.Context) error {
	report, err := h.reports.SummaryWorkbook(c.Request().Context())
	if err != nil {
		return err
	}
	return sendReport(c, report)
}

func sendReport(c echo.Context, report *ports.Report) error {
	metrics.ReportsGeneratedTotal.WithLabelValues(report.Kind).Inc()
	metrics.ReportSizeBytes.WithLabelValues(report.Kind).Observe(float64(len(report.Data)))

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Filename))
	return c.Blob(http.StatusOK, report.ContentType, report.Data)
}
